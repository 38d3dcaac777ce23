// Package runtime drives a generator session over the faces of one patch.
package runtime

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"cogentcore.org/core/math32"
	"github.com/aretw0/xgenseed/internal/logging"
	"github.com/aretw0/xgenseed/pkg/domain"
	"github.com/aretw0/xgenseed/pkg/ports"
)

// FaceResult records the outcome of one face.
type FaceResult struct {
	ID       uint32
	Assembly string
	Instance string
	Status   domain.FaceStatus
	Err      error
}

// Report summarizes one expansion.
type Report struct {
	Assembly string
	Success  bool
	Aborted  bool
	Faces    []FaceResult
	Rendered int
	Skipped  int
	Failed   int
	Duration time.Duration
	Err      error
}

// FaceAssemblyName returns the name given to the geometry of one face.
func FaceAssemblyName(faceID uint32) string {
	return fmt.Sprintf("xgen_face_assembly_%d", faceID)
}

// FaceInstanceName returns the name of the instance placing one face assembly.
func FaceInstanceName(faceID uint32) string {
	return FaceAssemblyName(faceID) + "_instance"
}

// Driver pulls faces from a generator session and aggregates their results.
// A Driver holds no per-expansion state and may be shared between goroutines.
type Driver struct {
	generator ports.Generator
	hooks     domain.Hooks
	logger    *slog.Logger
}

// DriverOption configures a Driver.
type DriverOption func(*Driver)

// WithLogger sets the host logger.
func WithLogger(logger *slog.Logger) DriverOption {
	return func(d *Driver) {
		d.logger = logger
	}
}

// WithHooks registers observability hooks.
func WithHooks(hooks domain.Hooks) DriverOption {
	return func(d *Driver) {
		d.hooks = hooks
	}
}

// NewDriver creates a driver for the given generator.
func NewDriver(generator ports.Generator, opts ...DriverOption) *Driver {
	d := &Driver{
		generator: generator,
	}
	for _, opt := range opts {
		opt(d)
	}
	d.logger = logging.Component(d.logger, "xgenseed")
	return d
}

// Expand creates a session from args, renders every non-empty face and
// returns the aggregate result. A failing face marks the report failed but
// does not stop the remaining faces. The abort switch is polled before each
// face; once aborted no further faces are pulled and the report fails.
// The session is released exactly once on every path.
func (d *Driver) Expand(ctx context.Context, assembly string, cb ports.Callbacks, args string, sw ports.AbortSwitch) (report Report) {
	start := time.Now()
	logger := d.logger.With("assembly", assembly)
	report = Report{Assembly: assembly}

	d.fireExpand(ctx, d.hooks.OnExpandStart, domain.EventExpandStart, &report)
	defer func() {
		report.Duration = time.Since(start)
		d.fireExpand(ctx, d.hooks.OnExpandEnd, domain.EventExpandEnd, &report)
	}()

	session, err := d.newSession(cb, args)
	if err != nil {
		logger.Error("error creating generator session", "error", err)
		report.Err = err
		return report
	}
	defer release(logger, "session", session.Release)

	report.Success = true
	for {
		if sw != nil && sw.IsAborted() {
			logger.Warn("expansion aborted", "faces", len(report.Faces))
			report.Aborted = true
			report.Success = false
			report.Err = context.Canceled
			return report
		}

		bbox, faceID, ok, err := nextFace(session)
		if err != nil {
			logger.Error("generator failed while pulling faces", "error", err)
			report.Success = false
			report.Err = err
			return report
		}
		if !ok {
			return report
		}

		res := FaceResult{ID: faceID}
		if bbox.IsEmpty() {
			res.Status = domain.FaceSkipped
			report.Skipped++
		} else {
			res.Assembly = FaceAssemblyName(faceID)
			res.Instance = FaceInstanceName(faceID)
			if err := renderFace(session, faceID); err != nil {
				logger.Error("face failed", "face_id", faceID, "error", err)
				res.Status = domain.FaceFailed
				res.Err = err
				report.Failed++
				report.Success = false
			} else {
				res.Status = domain.FaceRendered
				report.Rendered++
			}
		}
		report.Faces = append(report.Faces, res)
		d.fireFace(ctx, assembly, res)
	}
}

func (d *Driver) newSession(cb ports.Callbacks, args string) (session ports.Session, err error) {
	defer func() {
		if r := recover(); r != nil {
			session, err = nil, fmt.Errorf("%w: panic: %v", domain.ErrSessionCreate, r)
		}
	}()
	session, err = d.generator.NewSession(cb, args)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", domain.ErrSessionCreate, err)
	}
	if session == nil {
		return nil, domain.ErrSessionCreate
	}
	return session, nil
}

func nextFace(session ports.Session) (bbox math32.Box3, faceID uint32, ok bool, err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic in next face: %v", r)
		}
	}()
	bbox, faceID, ok = session.NextFace()
	return bbox, faceID, ok, nil
}

// renderFace builds, runs and releases the renderer of one face.
func renderFace(session ports.Session, faceID uint32) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic while rendering face %d: %v", faceID, r)
		}
	}()
	renderer, err := session.NewFaceRenderer(faceID)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrFaceRenderer, err)
	}
	if renderer == nil {
		return domain.ErrFaceRenderer
	}
	defer renderer.Release()
	if !renderer.Render() {
		return fmt.Errorf("face %d reported failure", faceID)
	}
	return nil
}

// release runs a generator release function, logging instead of
// propagating a panic.
func release(logger *slog.Logger, what string, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			logger.Error("panic while releasing "+what, "panic", fmt.Sprint(r))
		}
	}()
	fn()
}

func (d *Driver) fireExpand(ctx context.Context, hook func(context.Context, *domain.ExpandEvent), typ domain.EventType, r *Report) {
	if hook == nil {
		return
	}
	hook(ctx, &domain.ExpandEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      typ,
			Assembly:  r.Assembly,
		},
		Success:  r.Success,
		Aborted:  r.Aborted,
		Duration: r.Duration,
		Err:      r.Err,
	})
}

func (d *Driver) fireFace(ctx context.Context, assembly string, res FaceResult) {
	if d.hooks.OnFace == nil {
		return
	}
	d.hooks.OnFace(ctx, &domain.FaceEvent{
		EventBase: domain.EventBase{
			Timestamp: time.Now(),
			Type:      domain.EventFace,
			Assembly:  assembly,
		},
		FaceID: res.ID,
		Status: res.Status,
	})
}
