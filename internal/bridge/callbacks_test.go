package bridge_test

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"

	"github.com/aretw0/xgenseed/internal/bridge"
	"github.com/aretw0/xgenseed/internal/logging"
	"github.com/aretw0/xgenseed/pkg/domain"
	"github.com/aretw0/xgenseed/pkg/params"
	"github.com/aretw0/xgenseed/pkg/ports"
	"github.com/aretw0/xgenseed/pkg/xform"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeCache struct {
	spline   bool
	primType string
}

func (f fakeCache) IsSpline() bool        { return f.spline }
func (f fakeCache) PrimitiveType() string { return f.primType }

type recorder struct {
	calls map[string]int
}

func newRecorder() *recorder {
	return &recorder{calls: make(map[string]int)}
}

func (r *recorder) handler(name string) bridge.FlushHandler {
	return func(geom string, cache ports.PrimitiveCache) {
		r.calls[name]++
	}
}

func (r *recorder) handlers() bridge.FlushHandlers {
	return bridge.FlushHandlers{
		Splines:  r.handler("splines"),
		Cards:    r.handler("cards"),
		Spheres:  r.handler("spheres"),
		Archives: r.handler("archives"),
	}
}

func newCallbacks(t *testing.T, values map[string]any, opts ...bridge.Option) (*bridge.Callbacks, *bytes.Buffer) {
	t.Helper()
	var buf bytes.Buffer
	logger := logging.NewWithWriter(&buf, slog.LevelDebug)
	opts = append([]bridge.Option{bridge.WithLogger(logger)}, opts...)
	return bridge.New(context.Background(), "hair", params.New(values).Freeze(), xform.Identity(), opts...), &buf
}

func countLevel(buf *bytes.Buffer, level string) int {
	return strings.Count(buf.String(), "level="+level)
}

func TestCallbacks_Bool(t *testing.T) {
	cb, _ := newCallbacks(t, map[string]any{"clearDescriptionCache": "true"})
	assert.False(t, cb.Bool(domain.ClearDescriptionCache))
	assert.False(t, cb.Bool(domain.DontUsePaletteRefCounting))
	assert.False(t, cb.Bool(domain.BoolAttr(99)))
}

func TestCallbacks_Float(t *testing.T) {
	cb, _ := newCallbacks(t, nil)
	assert.Equal(t, float32(0), cb.Float(domain.ShadowMotionBlur))
	assert.Equal(t, float32(0), cb.Float(domain.ShutterOffset))

	cb, _ = newCallbacks(t, map[string]any{
		domain.KeyShadowMotionBlur: "1",
		domain.KeyShutterOffset:    -0.5,
	})
	assert.Equal(t, float32(1), cb.Float(domain.ShadowMotionBlur))
	assert.Equal(t, float32(-0.5), cb.Float(domain.ShutterOffset))
	assert.Equal(t, float32(0), cb.Float(domain.FloatAttr(42)))
}

func TestCallbacks_StringDefaults(t *testing.T) {
	cb, _ := newCallbacks(t, nil)

	tests := []struct {
		attr domain.StringAttr
		want string
	}{
		{domain.BypassFXModulesAfterBGM, ""},
		{domain.CacheDir, "xgenCache/"},
		{domain.Generator, "undefined"},
		{domain.Off, ""},
		{domain.Phase, "color"},
		{domain.RenderCam, ""},
		{domain.RenderCamFOV, ""},
		{domain.RenderCamRatio, ""},
		{domain.RenderCamXform, ""},
		{domain.RenderMethod, ""},
		{domain.StringAttr(77), ""},
	}
	for _, tt := range tests {
		t.Run(tt.attr.String(), func(t *testing.T) {
			assert.Equal(t, tt.want, cb.String(tt.attr))
		})
	}
}

func TestCallbacks_StringValues(t *testing.T) {
	cb, _ := newCallbacks(t, map[string]any{
		domain.KeyCacheDir:     "/cache/",
		domain.KeyGenerator:    "SplinePrimitive",
		domain.KeyPhase:        "Pixar",
		domain.KeyRenderMethod: "1",
		domain.KeyRenderCamFOV: "35.0",
	})
	assert.Equal(t, "/cache/", cb.String(domain.CacheDir))
	assert.Equal(t, "SplinePrimitive", cb.String(domain.Generator))
	assert.Equal(t, "Pixar", cb.String(domain.Phase))
	assert.Equal(t, "1", cb.String(domain.RenderMethod))
	assert.Equal(t, "35.0", cb.String(domain.RenderCamFOV))
}

func TestCallbacks_Off(t *testing.T) {
	tests := []struct {
		name  string
		value any
		set   bool
		want  string
	}{
		{"absent", nil, false, ""},
		{"true", "true", true, domain.OffToken},
		{"one", "1", true, domain.OffToken},
		{"false", "false", true, ""},
		{"garbage", "sometimes", true, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			values := map[string]any{}
			if tt.set {
				values[domain.KeyOff] = tt.value
			}
			cb, _ := newCallbacks(t, values)
			assert.Equal(t, tt.want, cb.String(domain.Off))
		})
	}
}

func TestCallbacks_FloatArrayHasNoData(t *testing.T) {
	cb, _ := newCallbacks(t, map[string]any{"lodHi": []any{1.0}})
	for _, attr := range []domain.FloatArrayAttr{domain.DensityFalloff, domain.LodHi, domain.LodLow, domain.LodMed, domain.Shutter} {
		assert.Nil(t, cb.FloatArray(attr), attr.String())
		assert.Zero(t, cb.FloatArraySize(attr), attr.String())
	}
}

func TestCallbacks_Override(t *testing.T) {
	cb, _ := newCallbacks(t, map[string]any{"custom_key": "v"})
	assert.Equal(t, "v", cb.Override("custom_key"))
	assert.Equal(t, "", cb.Override("missing"))
}

func TestCallbacks_ArchiveBoundingBoxUnavailable(t *testing.T) {
	cb, _ := newCallbacks(t, nil)
	box, ok := cb.ArchiveBoundingBox("tree.abc")
	assert.False(t, ok)
	assert.True(t, box.IsEmpty())
}

func TestCallbacks_LogForwardsAtInfo(t *testing.T) {
	cb, buf := newCallbacks(t, nil)
	cb.Log("generating 10 primitives")

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "component=xgen")
	assert.Contains(t, out, "generating 10 primitives")
}

func TestCallbacks_Transform(t *testing.T) {
	var seq xform.Sequence
	seq.Set(0, xform.Translation(1, 2, 3))
	seq.Set(1, xform.Translation(4, 5, 6))
	cb := bridge.New(context.Background(), "hair", params.New(nil).Freeze(), seq)

	var out ports.Mat44
	cb.Transform(1, &out)

	want := ports.Mat44{
		{1, 0, 0, 0},
		{0, 1, 0, 0},
		{0, 0, 1, 0},
		{4, 5, 6, 1},
	}
	assert.Equal(t, want, out)

	tr := seq.Evaluate(1)
	for r := 0; r < 4; r++ {
		for c := 0; c < 4; c++ {
			assert.Equal(t, tr.At(c, r), out[r][c])
		}
	}
}

func TestCallbacks_TransformIsDeterministic(t *testing.T) {
	a := xform.Constant(xform.Translation(0.1, 0.2, 0.3))
	s, err := xform.Scaling(1.1, 1.3, 1.7)
	require.NoError(t, err)
	seq := xform.Compose(a, xform.Constant(s))
	cb := bridge.New(context.Background(), "hair", params.New(nil).Freeze(), seq)

	var first, second ports.Mat44
	cb.Transform(0.37, &first)
	cb.Transform(0.37, &second)
	assert.Equal(t, first, second)
}

func TestCallbacks_FlushRouting(t *testing.T) {
	tests := []struct {
		name  string
		cache fakeCache
		want  string
	}{
		{"spline wins over tag", fakeCache{spline: true, primType: domain.PrimitiveCard}, "splines"},
		{"card", fakeCache{primType: domain.PrimitiveCard}, "cards"},
		{"sphere", fakeCache{primType: domain.PrimitiveSphere}, "spheres"},
		{"archive", fakeCache{primType: domain.PrimitiveArchive}, "archives"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := newRecorder()
			cb, buf := newCallbacks(t, nil, bridge.WithFlushHandlers(rec.handlers()))

			cb.Flush("geom", tt.cache)

			assert.Equal(t, map[string]int{tt.want: 1}, rec.calls)
			assert.Zero(t, countLevel(buf, "ERROR"))
			assert.Zero(t, cb.Dropped())
		})
	}
}

func TestCallbacks_FlushUnknownTag(t *testing.T) {
	rec := newRecorder()
	var routes []domain.FlushRoute
	hooks := domain.Hooks{
		OnFlush: func(ctx context.Context, e *domain.FlushEvent) {
			routes = append(routes, e.Route)
		},
	}
	cb, buf := newCallbacks(t, nil, bridge.WithFlushHandlers(rec.handlers()), bridge.WithHooks(hooks))

	cb.Flush("geom", fakeCache{primType: "cardprimitive"})

	assert.Empty(t, rec.calls)
	assert.Equal(t, 1, countLevel(buf, "ERROR"))
	assert.Contains(t, buf.String(), "cardprimitive")
	assert.Equal(t, 1, cb.Dropped())
	assert.Equal(t, []domain.FlushRoute{domain.RouteDropped}, routes)
}

func TestCallbacks_FlushRecoversHandlerPanic(t *testing.T) {
	handlers := bridge.FlushHandlers{
		Cards: func(string, ports.PrimitiveCache) { panic("bad geometry") },
	}
	cb, buf := newCallbacks(t, nil, bridge.WithFlushHandlers(handlers))

	assert.NotPanics(t, func() {
		cb.Flush("geom", fakeCache{primType: domain.PrimitiveCard})
	})
	assert.Contains(t, buf.String(), "bad geometry")
}

func TestCallbacks_FlushWithoutHandlersLogsDebug(t *testing.T) {
	cb, buf := newCallbacks(t, nil)
	cb.Flush("geom", fakeCache{primType: domain.PrimitiveSphere})
	assert.Equal(t, 1, countLevel(buf, "DEBUG"))
	assert.Zero(t, countLevel(buf, "ERROR"))
}

func TestCallbacks_FlushNilCache(t *testing.T) {
	cb, buf := newCallbacks(t, nil)
	cb.Flush("geom", nil)
	assert.Equal(t, 1, countLevel(buf, "ERROR"))
	assert.Equal(t, 1, cb.Dropped())
}

type ctxKey struct{}

func TestCallbacks_FlushHookReceivesExpansionContext(t *testing.T) {
	var got []context.Context
	hooks := domain.Hooks{
		OnFlush: func(ctx context.Context, e *domain.FlushEvent) { got = append(got, ctx) },
	}
	ctx := context.WithValue(context.Background(), ctxKey{}, "expansion-1")
	cb := bridge.New(ctx, "hair", params.New(nil).Freeze(), xform.Identity(), bridge.WithHooks(hooks))

	cb.Flush("a", fakeCache{spline: true})
	cb.Flush("b", fakeCache{primType: "Unknown"})

	require.Len(t, got, 2)
	for _, c := range got {
		assert.Equal(t, "expansion-1", c.Value(ctxKey{}))
	}

	//nolint:staticcheck // a nil context falls back to Background
	cb = bridge.New(nil, "hair", params.New(nil).Freeze(), xform.Identity(), bridge.WithHooks(hooks))
	cb.Flush("c", fakeCache{spline: true})
	require.Len(t, got, 3)
	assert.NotNil(t, got[2])
}
