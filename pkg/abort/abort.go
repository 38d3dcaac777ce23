// Package abort provides cooperative cancellation switches polled by the
// expansion driver between faces.
package abort

import (
	"context"
	"sync/atomic"

	"github.com/aretw0/xgenseed/pkg/ports"
)

// Never is a switch that is never aborted.
var Never ports.AbortSwitch = never{}

type never struct{}

func (never) IsAborted() bool { return false }

// Flag is a manually triggered switch. The zero value is not aborted.
type Flag struct {
	aborted atomic.Bool
}

// Abort trips the flag.
func (f *Flag) Abort() { f.aborted.Store(true) }

// Clear resets the flag.
func (f *Flag) Clear() { f.aborted.Store(false) }

// IsAborted reports whether Abort was called.
func (f *Flag) IsAborted() bool { return f.aborted.Load() }

// FromContext returns a switch that is aborted once ctx is done.
func FromContext(ctx context.Context) ports.AbortSwitch {
	return contextSwitch{ctx: ctx}
}

type contextSwitch struct {
	ctx context.Context
}

func (c contextSwitch) IsAborted() bool { return c.ctx.Err() != nil }

// Any returns a switch that is aborted when any of the given switches is.
// Nil switches are ignored.
func Any(switches ...ports.AbortSwitch) ports.AbortSwitch {
	var live anySwitch
	for _, s := range switches {
		if s != nil {
			live = append(live, s)
		}
	}
	if len(live) == 0 {
		return Never
	}
	if len(live) == 1 {
		return live[0]
	}
	return live
}

type anySwitch []ports.AbortSwitch

func (a anySwitch) IsAborted() bool {
	for _, s := range a {
		if s.IsAborted() {
			return true
		}
	}
	return false
}
