package assembly_test

import (
	"context"
	"sync"
	"testing"

	"github.com/aretw0/xgenseed/internal/bridge"
	"github.com/aretw0/xgenseed/internal/testutils"
	"github.com/aretw0/xgenseed/pkg/abort"
	"github.com/aretw0/xgenseed/pkg/adapters/memory"
	"github.com/aretw0/xgenseed/pkg/assembly"
	"github.com/aretw0/xgenseed/pkg/domain"
	"github.com/aretw0/xgenseed/pkg/params"
	"github.com/aretw0/xgenseed/pkg/ports"
	"github.com/aretw0/xgenseed/pkg/scene"
	"github.com/aretw0/xgenseed/pkg/xform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const twoFaces = `
faces:
  - id: 1
    primitives:
      - type: CardPrimitive
      - type: Mystery
  - id: 2
    empty: true
`

// capturing records the callbacks handed to the last session.
type capturing struct {
	*memory.Generator
	cb   ports.Callbacks
	args string
}

func (c *capturing) NewSession(cb ports.Callbacks, args string) (ports.Session, error) {
	c.cb, c.args = cb, args
	return c.Generator.NewSession(cb, args)
}

func testScene(t *testing.T) (*scene.Scene, scene.AssemblyID) {
	t.Helper()
	return testutils.PatchScene(t,
		xform.Constant(xform.Translation(10, 0, 0)),
		xform.Constant(xform.Translation(1, 2, 3)),
		nil,
	)
}

func TestFactoryMetadata(t *testing.T) {
	f := assembly.NewFactory(memory.New())
	assert.Equal(t, "xgen_patch_assembly", f.Model())
	assert.Equal(t, map[string]string{
		"name":  "xgen_patch_assembly",
		"label": "XGen Patch Assembly",
	}, f.Metadata())
	assert.Empty(t, f.InputMetadata())
}

func TestReleaseExactlyOnce(t *testing.T) {
	f := assembly.NewFactory(memory.New())
	a := f.Create("hair", nil)

	require.NoError(t, a.Release())
	assert.ErrorIs(t, a.Release(), domain.ErrAlreadyReleased)
	require.NoError(t, f.Release())
	assert.ErrorIs(t, f.Release(), domain.ErrAlreadyReleased)
}

func TestExpand(t *testing.T) {
	sc, world := testScene(t)
	gen := &capturing{Generator: memory.New()}
	var cards int
	f := assembly.NewFactory(gen, assembly.WithFlushHandlers(bridge.FlushHandlers{
		Cards: func(geom string, cache ports.PrimitiveCache) { cards++ },
	}))
	a := f.Create("hair", params.New(map[string]any{
		domain.KeyGeneratorArgs: twoFaces,
		domain.KeyRenderCamFOV:  "35",
	}))

	report := a.ExpandReport(context.Background(), sc, world, abort.Never)

	require.NoError(t, report.Err)
	assert.True(t, report.Success)
	assert.Equal(t, 1, report.Rendered)
	assert.Equal(t, 1, report.Skipped)
	assert.Equal(t, 1, report.DroppedFlushes, "unknown primitive type is dropped without failing")
	assert.Equal(t, 1, cards)
	assert.Equal(t, twoFaces, gen.args)
	assert.True(t, gen.Stats().Balanced())

	// The renderCamFOV set by the user wins over the derived default.
	assert.ElementsMatch(t, []string{
		domain.KeyRenderCam, domain.KeyRenderCamRatio, domain.KeyRenderCamXform,
	}, report.SeededKeys)
	require.NotNil(t, gen.cb)
	assert.Equal(t, "false, 0, 0, 5", gen.cb.String(domain.RenderCam))
	assert.Equal(t, "35", gen.cb.String(domain.RenderCamFOV))

	var m ports.Mat44
	gen.cb.Transform(0, &m)
	assert.Equal(t, [4]float32{11, 2, 3, 1}, m[3])
	assert.Equal(t, [4]float32{1, 0, 0, 0}, m[0])

	// Seeding works on a copy.
	assert.False(t, a.Params().Exists(domain.KeyRenderCam))
}

func TestExpandMissingArgs(t *testing.T) {
	sc, world := testScene(t)
	gen := memory.New()
	a := assembly.NewFactory(gen).Create("hair", params.New(nil))

	report := a.ExpandReport(context.Background(), sc, world, nil)

	assert.False(t, report.Success)
	assert.ErrorIs(t, report.Err, domain.ErrMissingParameter)
	assert.Zero(t, gen.Stats().SessionsCreated)
}

func TestExpandCompositionErrors(t *testing.T) {
	sc, world := testScene(t)
	_, err := sc.AddInstance(world, scene.None, "hair_inst2", "hair", xform.Identity())
	require.NoError(t, err)
	gen := memory.New()
	a := assembly.NewFactory(gen).Create("hair", params.New(map[string]any{
		domain.KeyGeneratorArgs: twoFaces,
	}))

	assert.False(t, a.Expand(context.Background(), sc, world, nil))
	report := a.ExpandReport(context.Background(), sc, world, nil)
	assert.ErrorIs(t, report.Err, domain.ErrAmbiguousInstance)
	assert.Zero(t, gen.Stats().SessionsCreated)

	other := assembly.NewFactory(gen).Create("fur", params.New(map[string]any{
		domain.KeyGeneratorArgs: twoFaces,
	}))
	report = other.ExpandReport(context.Background(), sc, world, nil)
	assert.ErrorIs(t, report.Err, domain.ErrNoMatchingInstance)
}

func TestExpandAtSceneRoot(t *testing.T) {
	gen := memory.New()
	a := assembly.NewFactory(gen).Create("world", params.New(map[string]any{
		domain.KeyGeneratorArgs: "faces: [{id: 3}]",
	}))

	report := a.ExpandReport(context.Background(), nil, scene.None, nil)

	assert.True(t, report.Success)
	assert.Empty(t, report.SeededKeys)
	require.Len(t, report.Faces, 1)
	assert.Equal(t, "xgen_face_assembly_3", report.Faces[0].Assembly)
}

func TestExpandCanceledContext(t *testing.T) {
	sc, world := testScene(t)
	gen := memory.New()
	a := assembly.NewFactory(gen).Create("hair", params.New(map[string]any{
		domain.KeyGeneratorArgs: twoFaces,
	}))
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	report := a.ExpandReport(ctx, sc, world, nil)

	assert.False(t, report.Success)
	assert.True(t, report.Aborted)
	assert.Zero(t, gen.Stats().FacesPulled)
	assert.True(t, gen.Stats().Balanced())
}

func TestExpandReleasedAssembly(t *testing.T) {
	sc, world := testScene(t)
	gen := memory.New()
	a := assembly.NewFactory(gen).Create("hair", params.New(map[string]any{
		domain.KeyGeneratorArgs: twoFaces,
	}))
	require.NoError(t, a.Release())

	assert.False(t, a.Expand(context.Background(), sc, world, nil))
	assert.Zero(t, gen.Stats().SessionsCreated)
}

func TestExpandHooks(t *testing.T) {
	sc, world := testScene(t)
	var routes []domain.FlushRoute
	var ends int
	f := assembly.NewFactory(memory.New(), assembly.WithHooks(domain.Hooks{
		OnFlush:     func(ctx context.Context, e *domain.FlushEvent) { routes = append(routes, e.Route) },
		OnExpandEnd: func(ctx context.Context, e *domain.ExpandEvent) { ends++ },
	}))
	a := f.Create("hair", params.New(map[string]any{domain.KeyGeneratorArgs: twoFaces}))

	assert.True(t, a.Expand(context.Background(), sc, world, nil))
	assert.Equal(t, []domain.FlushRoute{domain.RouteCard, domain.RouteDropped}, routes)
	assert.Equal(t, 1, ends)
}

func TestExpandConcurrent(t *testing.T) {
	const workers = 16
	sc, world := testScene(t)
	gen := memory.New()
	f := assembly.NewFactory(gen)
	a := f.Create("hair", params.New(map[string]any{domain.KeyGeneratorArgs: twoFaces}))

	results := make([]bool, workers)
	var wg sync.WaitGroup
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = a.Expand(context.Background(), sc, world, nil)
		}(i)
	}
	wg.Wait()

	for i, ok := range results {
		assert.True(t, ok, "expansion %d", i)
	}
	stats := gen.Stats()
	assert.Equal(t, workers, stats.SessionsCreated)
	assert.Equal(t, workers, stats.FacesRendered)
	assert.True(t, stats.Balanced())
	assert.False(t, a.Params().Exists(domain.KeyRenderCam))
}

func TestReleaseConcurrent(t *testing.T) {
	const workers = 16
	f := assembly.NewFactory(memory.New())
	a := f.Create("hair", nil)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		released int
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errA, errF := a.Release(), f.Release()
			mu.Lock()
			defer mu.Unlock()
			if errA == nil {
				released++
			}
			if errF == nil {
				released++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 2, released, "assembly and factory each release exactly once")
}
