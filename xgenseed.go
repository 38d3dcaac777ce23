package xgenseed

import (
	"fmt"
	"log/slog"
	"sync"

	"github.com/aretw0/xgenseed/internal/bridge"
	"github.com/aretw0/xgenseed/internal/logging"
	"github.com/aretw0/xgenseed/pkg/adapters/memory"
	"github.com/aretw0/xgenseed/pkg/assembly"
	"github.com/aretw0/xgenseed/pkg/domain"
	"github.com/aretw0/xgenseed/pkg/ports"
	"github.com/aretw0/xgenseed/pkg/registry"
)

// Version is the plugin version.
const Version = "0.1.0"

// DefaultGenerator is the name of the built-in scripted backend.
const DefaultGenerator = "memory"

// Plugin owns the generator backends available to assembly factories.
type Plugin struct {
	mu       sync.RWMutex
	registry *registry.Registry
	extra    map[string]ports.Generator
	loaded   bool
	hooks    domain.Hooks
	handlers bridge.FlushHandlers
	logger   *slog.Logger
}

// Option configures a Plugin.
type Option func(*Plugin)

// WithLogger sets the host logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Plugin) {
		p.logger = logger
	}
}

// WithHooks registers observability hooks on every factory.
func WithHooks(hooks domain.Hooks) Option {
	return func(p *Plugin) {
		p.hooks = p.hooks.Merge(hooks)
	}
}

// WithFlushHandlers installs the geometry handlers used by every factory.
func WithFlushHandlers(h bridge.FlushHandlers) Option {
	return func(p *Plugin) {
		p.handlers = h
	}
}

// WithGenerator adds a backend registered on Load. A backend named
// DefaultGenerator replaces the built-in one.
func WithGenerator(name string, gen ports.Generator) Option {
	return func(p *Plugin) {
		p.extra[name] = gen
	}
}

// New creates an unloaded plugin.
func New(opts ...Option) *Plugin {
	p := &Plugin{
		registry: registry.NewRegistry(),
		extra:    make(map[string]ports.Generator),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Load registers the generator backends. Loading a loaded plugin is a no-op.
func (p *Plugin) Load() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.loaded {
		return nil
	}
	p.registry.Register(DefaultGenerator, memory.New())
	for name, gen := range p.extra {
		p.registry.Register(name, gen)
	}
	p.loaded = true
	logging.Component(p.logger, "xgenseed").Debug("plugin loaded", "version", Version, "generators", p.registry.Names())
	return nil
}

// Unload removes every backend. Factories created earlier keep working.
func (p *Plugin) Unload() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if !p.loaded {
		return domain.ErrPluginNotLoaded
	}
	p.registry.Clear()
	p.loaded = false
	logging.Component(p.logger, "xgenseed").Debug("plugin unloaded")
	return nil
}

// Loaded reports whether Load has been called without a matching Unload.
func (p *Plugin) Loaded() bool {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.loaded
}

// Generators returns the registered backend names.
func (p *Plugin) Generators() []string {
	return p.registry.Names()
}

// NewAssemblyFactory returns a new factory bound to the named backend.
func (p *Plugin) NewAssemblyFactory(generator string) (*assembly.Factory, error) {
	p.mu.RLock()
	defer p.mu.RUnlock()
	if !p.loaded {
		return nil, domain.ErrPluginNotLoaded
	}
	gen, err := p.registry.Get(generator)
	if err != nil {
		return nil, fmt.Errorf("failed to create assembly factory: %w", err)
	}
	return assembly.NewFactory(gen,
		assembly.WithLogger(p.logger),
		assembly.WithHooks(p.hooks),
		assembly.WithFlushHandlers(p.handlers),
	), nil
}
