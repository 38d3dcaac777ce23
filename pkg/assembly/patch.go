package assembly

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/aretw0/xgenseed/internal/bridge"
	"github.com/aretw0/xgenseed/internal/logging"
	"github.com/aretw0/xgenseed/internal/runtime"
	"github.com/aretw0/xgenseed/pkg/abort"
	"github.com/aretw0/xgenseed/pkg/domain"
	"github.com/aretw0/xgenseed/pkg/params"
	"github.com/aretw0/xgenseed/pkg/ports"
	"github.com/aretw0/xgenseed/pkg/scene"
)

// Report is the outcome of one expansion.
type Report struct {
	runtime.Report
	// DroppedFlushes counts geometry batches with an unknown primitive type.
	DroppedFlushes int
	// SeededKeys lists the camera parameters derived for this expansion.
	SeededKeys []string
}

// PatchAssembly is an assembly whose contents are produced by the generator.
type PatchAssembly struct {
	name     string
	params   *params.Array
	factory  *Factory
	released atomic.Bool
}

// Name returns the assembly name.
func (a *PatchAssembly) Name() string {
	return a.name
}

// Params returns the mutable parameters of the assembly. They must not be
// modified while an expansion is running.
func (a *PatchAssembly) Params() *params.Array {
	return a.params
}

// Expand generates the contents of the assembly and reports whether every
// face succeeded.
func (a *PatchAssembly) Expand(ctx context.Context, sc *scene.Scene, parent scene.AssemblyID, sw ports.AbortSwitch) bool {
	return a.ExpandReport(ctx, sc, parent, sw).Success
}

// ExpandReport is Expand with the detailed outcome.
func (a *PatchAssembly) ExpandReport(ctx context.Context, sc *scene.Scene, parent scene.AssemblyID, sw ports.AbortSwitch) Report {
	if ctx == nil {
		ctx = context.Background()
	}
	f := a.factory
	logger := logging.Component(f.logger, "xgenseed").With("assembly", a.name)
	report := Report{Report: runtime.Report{Assembly: a.name}}

	if a.released.Load() {
		logger.Error("expand called on a released assembly")
		report.Err = domain.ErrAlreadyReleased
		return report
	}
	if !a.params.Exists(domain.KeyGeneratorArgs) {
		logger.Error("missing required parameter", "key", domain.KeyGeneratorArgs)
		report.Err = fmt.Errorf("%w: %s", domain.ErrMissingParameter, domain.KeyGeneratorArgs)
		return report
	}
	if sc == nil {
		sc = scene.New()
	}

	p := a.params.Clone()
	if cam := sc.ActiveCamera(); cam != nil {
		report.SeededKeys = bridge.SeedCameraParams(p, cam)
	} else {
		logger.Warn("no active camera, camera parameters not set")
	}
	snap := p.Freeze()

	args, err := snap.Required(domain.KeyGeneratorArgs)
	if err != nil {
		logger.Error("invalid generator arguments", "error", err)
		report.Err = err
		return report
	}

	transforms, err := sc.ComposeTransforms(a.name, parent)
	if err != nil {
		logger.Error("failed to compose assembly transform", "error", err)
		report.Err = err
		return report
	}

	cb := bridge.New(ctx, a.name, snap, transforms,
		bridge.WithLogger(f.logger),
		bridge.WithFlushHandlers(f.handlers),
		bridge.WithHooks(f.hooks),
	)
	driver := runtime.NewDriver(f.generator,
		runtime.WithLogger(f.logger),
		runtime.WithHooks(f.hooks),
	)
	report.Report = driver.Expand(ctx, a.name, cb, args, abort.Any(abort.FromContext(ctx), sw))
	report.DroppedFlushes = cb.Dropped()
	return report
}

// Release disposes of the assembly. Only the first call succeeds.
func (a *PatchAssembly) Release() error {
	if !a.released.CompareAndSwap(false, true) {
		return domain.ErrAlreadyReleased
	}
	return nil
}
