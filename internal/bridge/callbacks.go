// Package bridge implements the callback surface the procedural generator
// polls while an assembly is being expanded.
package bridge

import (
	"context"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"cogentcore.org/core/math32"
	"github.com/aretw0/xgenseed/internal/logging"
	"github.com/aretw0/xgenseed/pkg/domain"
	"github.com/aretw0/xgenseed/pkg/params"
	"github.com/aretw0/xgenseed/pkg/ports"
	"github.com/aretw0/xgenseed/pkg/xform"
)

// FlushHandler consumes one batch of generated geometry.
type FlushHandler func(geom string, cache ports.PrimitiveCache)

// FlushHandlers routes flushed batches by primitive kind. Nil handlers fall
// back to a debug log line.
type FlushHandlers struct {
	Splines  FlushHandler
	Cards    FlushHandler
	Spheres  FlushHandler
	Archives FlushHandler
}

// Callbacks answers generator queries from an immutable parameter snapshot
// and a composed transform sequence. It implements ports.Callbacks.
type Callbacks struct {
	// ctx is the context of the one expansion these callbacks serve. The
	// generator's Flush carries no context, so hooks fired from it use this.
	ctx        context.Context
	assembly   string
	params     *params.Snapshot
	transforms xform.Sequence
	handlers   FlushHandlers
	hooks      domain.Hooks
	logger     *slog.Logger
	genLogger  *slog.Logger
	dropped    atomic.Int64
}

var _ ports.Callbacks = (*Callbacks)(nil)

// Option configures Callbacks.
type Option func(*Callbacks)

// WithLogger sets the host logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Callbacks) {
		c.logger = logger
	}
}

// WithFlushHandlers installs geometry handlers.
func WithFlushHandlers(h FlushHandlers) Option {
	return func(c *Callbacks) {
		c.handlers = h
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.Hooks) Option {
	return func(c *Callbacks) {
		c.hooks = hooks
	}
}

// New creates the callbacks for one expansion of the named assembly.
// snap and transforms must not change for the lifetime of the callbacks.
func New(ctx context.Context, assembly string, snap *params.Snapshot, transforms xform.Sequence, opts ...Option) *Callbacks {
	c := &Callbacks{
		ctx:        ctx,
		assembly:   assembly,
		params:     snap,
		transforms: transforms,
	}
	if c.ctx == nil {
		c.ctx = context.Background()
	}
	for _, opt := range opts {
		opt(c)
	}
	base := c.logger
	if base == nil {
		base = logging.NewNop()
	}
	base = base.With("assembly", assembly)
	c.logger = logging.Component(base, "xgenseed")
	c.genLogger = logging.Component(base, "xgen")
	return c
}

// Params returns the parameter snapshot.
func (c *Callbacks) Params() *params.Snapshot {
	return c.params
}

// Dropped returns the number of flushes discarded for an unknown primitive type.
func (c *Callbacks) Dropped() int {
	return int(c.dropped.Load())
}

// Bool answers boolean attributes. None are enabled by this bridge.
func (c *Callbacks) Bool(attr domain.BoolAttr) bool {
	switch attr {
	case domain.ClearDescriptionCache, domain.DontUsePaletteRefCounting:
		return false
	}
	return false
}

// Float answers scalar attributes.
func (c *Callbacks) Float(attr domain.FloatAttr) float32 {
	switch attr {
	case domain.ShadowMotionBlur:
		return c.params.Float(domain.KeyShadowMotionBlur, 0)
	case domain.ShutterOffset:
		return c.params.Float(domain.KeyShutterOffset, 0)
	}
	return 0
}

// String answers string attributes.
func (c *Callbacks) String(attr domain.StringAttr) string {
	switch attr {
	case domain.BypassFXModulesAfterBGM:
		return c.params.String(domain.KeyBypassFXModulesAfterBGM, "")
	case domain.CacheDir:
		return c.params.String(domain.KeyCacheDir, "xgenCache/")
	case domain.Generator:
		return c.params.String(domain.KeyGenerator, "undefined")
	case domain.Off:
		if v, ok := c.params.LookupString(domain.KeyOff); ok {
			if off, _ := params.ParseBool(v); off {
				return domain.OffToken
			}
		}
		return ""
	case domain.Phase:
		return c.params.String(domain.KeyPhase, "color")
	case domain.RenderCam:
		return c.params.String(domain.KeyRenderCam, "")
	case domain.RenderCamFOV:
		return c.params.String(domain.KeyRenderCamFOV, "")
	case domain.RenderCamRatio:
		return c.params.String(domain.KeyRenderCamRatio, "")
	case domain.RenderCamXform:
		return c.params.String(domain.KeyRenderCamXform, "")
	case domain.RenderMethod:
		return c.params.String(domain.KeyRenderMethod, "")
	}
	return ""
}

// FloatArray reports no data for every float array attribute.
func (c *Callbacks) FloatArray(attr domain.FloatArrayAttr) []float32 {
	return nil
}

// FloatArraySize reports zero length for every float array attribute.
func (c *Callbacks) FloatArraySize(attr domain.FloatArrayAttr) int {
	return 0
}

// Override looks up a generator extension key.
func (c *Callbacks) Override(name string) string {
	return c.params.String(name, "")
}

// Transform writes the world transform at time in the generator's layout,
// which is the transpose of the column-vector matrix.
func (c *Callbacks) Transform(time float32, out *ports.Mat44) {
	tr := c.transforms.Evaluate(time)
	for row := 0; row < 4; row++ {
		for col := 0; col < 4; col++ {
			out[row][col] = tr.At(col, row)
		}
	}
}

// ArchiveBoundingBox always reports unavailable bounds.
func (c *Callbacks) ArchiveBoundingBox(filename string) (math32.Box3, bool) {
	c.logger.Debug("archive bounding box requested", "file", filename)
	return math32.B3Empty(), false
}

// Log forwards a generator message to the host log.
func (c *Callbacks) Log(msg string) {
	c.genLogger.Info(msg)
}

// Flush routes one batch to exactly one handler. An unknown primitive type
// is logged and dropped; it does not fail the expansion. Handler panics are
// recovered and logged.
func (c *Callbacks) Flush(geom string, cache ports.PrimitiveCache) {
	var (
		primType string
		route    = domain.RouteDropped
	)
	defer func() {
		if r := recover(); r != nil {
			c.logger.Error("flush handler panicked", "route", route, "primitive_type", primType, "panic", fmt.Sprint(r))
		}
	}()

	if cache == nil {
		c.dropped.Add(1)
		c.logger.Error("flush called without a primitive cache")
		c.fireFlush(primType, route)
		return
	}

	var handler FlushHandler
	if cache.IsSpline() {
		route, handler = domain.RouteSpline, c.handlers.Splines
	} else {
		primType = cache.PrimitiveType()
		switch primType {
		case domain.PrimitiveCard:
			route, handler = domain.RouteCard, c.handlers.Cards
		case domain.PrimitiveSphere:
			route, handler = domain.RouteSphere, c.handlers.Spheres
		case domain.PrimitiveArchive:
			route, handler = domain.RouteArchive, c.handlers.Archives
		default:
			c.dropped.Add(1)
			c.logger.Error("unknown primitive type found", "primitive_type", primType)
			c.fireFlush(primType, route)
			return
		}
	}

	c.fireFlush(primType, route)
	if handler == nil {
		c.logger.Debug("flush", "route", route)
		return
	}
	handler(geom, cache)
}

func (c *Callbacks) fireFlush(primType string, route domain.FlushRoute) {
	if c.hooks.OnFlush == nil {
		return
	}
	c.hooks.OnFlush(c.ctx, &domain.FlushEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      domain.EventFlush,
			Assembly:  c.assembly,
		},
		PrimitiveType: primType,
		Route:         route,
	})
}
