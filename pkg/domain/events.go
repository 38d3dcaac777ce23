package domain

import (
	"context"
	"time"
)

// EventType defines the category of the event.
type EventType string

const (
	EventExpandStart EventType = "expand_start"
	EventExpandEnd   EventType = "expand_end"
	EventFace        EventType = "face"
	EventFlush       EventType = "flush"
)

// FaceStatus is the outcome of a single generated face.
type FaceStatus string

const (
	FaceRendered FaceStatus = "rendered"
	FaceSkipped  FaceStatus = "skipped"
	FaceFailed   FaceStatus = "failed"
)

// FlushRoute is the handler a geometry flush was dispatched to.
type FlushRoute string

const (
	RouteSpline  FlushRoute = "spline"
	RouteCard    FlushRoute = "card"
	RouteSphere  FlushRoute = "sphere"
	RouteArchive FlushRoute = "archive"
	RouteDropped FlushRoute = "dropped"
)

// EventBase contains common fields for all events.
type EventBase struct {
	Timestamp time.Time `json:"timestamp"`
	Type      EventType `json:"type"`
	Assembly  string    `json:"assembly"`
}

// ExpandEvent marks the start or end of one expansion call.
type ExpandEvent struct {
	EventBase
	Success  bool          `json:"success"`
	Aborted  bool          `json:"aborted,omitempty"`
	Duration time.Duration `json:"duration,omitempty"`
	Err      error         `json:"-"`
}

// FaceEvent reports the outcome of one face.
type FaceEvent struct {
	EventBase
	FaceID uint32     `json:"face_id"`
	Status FaceStatus `json:"status"`
}

// FlushEvent reports one geometry flush.
type FlushEvent struct {
	EventBase
	PrimitiveType string     `json:"primitive_type"`
	Route         FlushRoute `json:"route"`
}

// Hooks defines callbacks for expansion observability. Nil fields are skipped.
type Hooks struct {
	OnExpandStart func(context.Context, *ExpandEvent)
	OnExpandEnd   func(context.Context, *ExpandEvent)
	OnFace        func(context.Context, *FaceEvent)
	OnFlush       func(context.Context, *FlushEvent)
}

// Merge returns hooks that call h first and then other.
func (h Hooks) Merge(other Hooks) Hooks {
	return Hooks{
		OnExpandStart: chain(h.OnExpandStart, other.OnExpandStart),
		OnExpandEnd:   chain(h.OnExpandEnd, other.OnExpandEnd),
		OnFace:        chain(h.OnFace, other.OnFace),
		OnFlush:       chain(h.OnFlush, other.OnFlush),
	}
}

func chain[E any](a, b func(context.Context, E)) func(context.Context, E) {
	switch {
	case a == nil:
		return b
	case b == nil:
		return a
	}
	return func(ctx context.Context, e E) {
		a(ctx, e)
		b(ctx, e)
	}
}
