package abort

import (
	"context"
	"os"
	"os/signal"
	"syscall"
)

// SignalSwitch is aborted when the process receives SIGINT or SIGTERM.
type SignalSwitch struct {
	ctx    context.Context
	cancel context.CancelFunc
}

// NewSignalSwitch creates a switch and immediately starts listening for signals.
func NewSignalSwitch() *SignalSwitch {
	s := &SignalSwitch{}
	s.Reset()
	return s
}

// Context returns the current signal context.
func (s *SignalSwitch) Context() context.Context {
	return s.ctx
}

// IsAborted reports whether a signal arrived since the last Reset.
func (s *SignalSwitch) IsAborted() bool {
	return s.ctx.Err() != nil
}

// Reset re-arms the signal listener.
func (s *SignalSwitch) Reset() {
	if s.cancel != nil {
		s.cancel()
	}
	s.ctx, s.cancel = signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
}

// Stop permanently stops the signal listener. The switch reads as aborted afterwards.
func (s *SignalSwitch) Stop() {
	if s.cancel != nil {
		s.cancel()
	}
}
