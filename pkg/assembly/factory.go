package assembly

import (
	"log/slog"
	"sync/atomic"

	"github.com/aretw0/xgenseed/internal/bridge"
	"github.com/aretw0/xgenseed/internal/logging"
	"github.com/aretw0/xgenseed/pkg/domain"
	"github.com/aretw0/xgenseed/pkg/params"
	"github.com/aretw0/xgenseed/pkg/ports"
)

// InputField describes one user-facing input of the model. The patch
// assembly declares none.
type InputField struct {
	Name    string
	Label   string
	Type    string
	Default string
}

// Factory creates patch assemblies bound to one generator backend.
type Factory struct {
	generator ports.Generator
	hooks     domain.Hooks
	handlers  bridge.FlushHandlers
	logger    *slog.Logger
	released  atomic.Bool
}

// Option configures a Factory.
type Option func(*Factory)

// WithLogger sets the host logger.
func WithLogger(logger *slog.Logger) Option {
	return func(f *Factory) {
		f.logger = logger
	}
}

// WithHooks registers observability hooks for every expansion.
func WithHooks(hooks domain.Hooks) Option {
	return func(f *Factory) {
		f.hooks = hooks
	}
}

// WithFlushHandlers installs the geometry handlers used by every expansion.
func WithFlushHandlers(h bridge.FlushHandlers) Option {
	return func(f *Factory) {
		f.handlers = h
	}
}

// NewFactory creates a factory for gen.
func NewFactory(gen ports.Generator, opts ...Option) *Factory {
	f := &Factory{generator: gen}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = logging.NewNop()
	}
	return f
}

// Model returns the model identifier.
func (f *Factory) Model() string {
	return domain.ModelID
}

// Metadata returns the model registration metadata.
func (f *Factory) Metadata() map[string]string {
	return map[string]string{
		domain.MetadataName:  domain.ModelID,
		domain.MetadataLabel: domain.ModelLabel,
	}
}

// InputMetadata returns the input schema of the model.
func (f *Factory) InputMetadata() []InputField {
	return []InputField{}
}

// Create returns a new patch assembly named name. A nil p yields an empty
// parameter set.
func (f *Factory) Create(name string, p *params.Array) *PatchAssembly {
	if p == nil {
		p = params.New(nil)
	}
	return &PatchAssembly{
		name:    name,
		params:  p,
		factory: f,
	}
}

// Release disposes of the factory. Only the first call succeeds.
func (f *Factory) Release() error {
	if !f.released.CompareAndSwap(false, true) {
		return domain.ErrAlreadyReleased
	}
	return nil
}
