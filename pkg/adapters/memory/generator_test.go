package memory_test

import (
	"testing"

	"cogentcore.org/core/math32"
	"github.com/aretw0/xgenseed/pkg/adapters/memory"
	"github.com/aretw0/xgenseed/pkg/domain"
	"github.com/aretw0/xgenseed/pkg/ports"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubCallbacks struct {
	flushed []string
	logs    []string
}

func (s *stubCallbacks) Bool(domain.BoolAttr) bool                  { return false }
func (s *stubCallbacks) Float(domain.FloatAttr) float32             { return 0 }
func (s *stubCallbacks) String(domain.StringAttr) string            { return "" }
func (s *stubCallbacks) FloatArray(domain.FloatArrayAttr) []float32 { return nil }
func (s *stubCallbacks) FloatArraySize(domain.FloatArrayAttr) int   { return 0 }
func (s *stubCallbacks) Override(name string) string                { return "value-of-" + name }
func (s *stubCallbacks) Transform(float32, *ports.Mat44)            {}
func (s *stubCallbacks) ArchiveBoundingBox(string) (math32.Box3, bool) {
	return math32.B3Empty(), false
}
func (s *stubCallbacks) Log(msg string) { s.logs = append(s.logs, msg) }
func (s *stubCallbacks) Flush(geom string, cache ports.PrimitiveCache) {
	s.flushed = append(s.flushed, cache.PrimitiveType())
}

const script = `
log: [hello]
queries: [cacheDir]
faces:
  - id: 3
    min: [0, 0, 0]
    max: [1, 2, 3]
    primitives:
      - type: CardPrimitive
      - type: SpherePrimitive
  - id: 4
    empty: true
  - id: 5
    fail: construct
`

func TestParseScript(t *testing.T) {
	s, err := memory.ParseScript(script)
	require.NoError(t, err)

	require.Len(t, s.Faces, 3)
	assert.Equal(t, uint32(3), s.Faces[0].ID)
	assert.Equal(t, math32.B3(0, 0, 0, 1, 2, 3), s.Faces[0].Bounds())
	assert.True(t, s.Faces[1].Bounds().IsEmpty())
	assert.Equal(t, memory.FailConstruct, s.Faces[2].Fail)
	assert.Equal(t, []string{"hello"}, s.Messages)
}

func TestParseScript_Invalid(t *testing.T) {
	tests := map[string]string{
		"not yaml":      "faces: [",
		"unknown field": "colour: red",
		"bad bounds":    "faces: [{id: 1, min: [0, 0]}]",
		"bad failure":   "faces: [{id: 1, fail: sometimes}]",
	}
	for name, args := range tests {
		t.Run(name, func(t *testing.T) {
			_, err := memory.ParseScript(args)
			assert.Error(t, err)
		})
	}
}

func TestGenerator_SessionLifecycle(t *testing.T) {
	gen := memory.New()
	cb := &stubCallbacks{}

	sess, err := gen.NewSession(cb, script)
	require.NoError(t, err)
	assert.Equal(t, []string{"hello", "cacheDir=value-of-cacheDir"}, cb.logs)

	box, id, ok := sess.NextFace()
	require.True(t, ok)
	assert.Equal(t, uint32(3), id)
	assert.False(t, box.IsEmpty())

	r, err := sess.NewFaceRenderer(id)
	require.NoError(t, err)
	assert.True(t, r.Render())
	r.Release()
	assert.Equal(t, []string{domain.PrimitiveCard, domain.PrimitiveSphere}, cb.flushed)

	_, id, ok = sess.NextFace()
	require.True(t, ok)
	_, id, ok = sess.NextFace()
	require.True(t, ok)
	_, err = sess.NewFaceRenderer(id)
	assert.ErrorIs(t, err, memory.ErrScriptedFailure)

	_, _, ok = sess.NextFace()
	assert.False(t, ok)
	sess.Release()

	stats := gen.Stats()
	assert.True(t, stats.Balanced())
	assert.Equal(t, 3, stats.FacesPulled)
	assert.Equal(t, 1, stats.FacesRendered)
}

func TestGenerator_DoubleReleaseIsCounted(t *testing.T) {
	gen := memory.New(memory.WithScript(memory.Script{}))
	sess, err := gen.NewSession(&stubCallbacks{}, "")
	require.NoError(t, err)

	sess.Release()
	sess.Release()
	assert.Equal(t, 1, gen.Stats().DoubleReleases)
	assert.False(t, gen.Stats().Balanced())
}

func TestGenerator_FailSession(t *testing.T) {
	gen := memory.New()
	_, err := gen.NewSession(&stubCallbacks{}, "fail_session: true")
	assert.ErrorIs(t, err, memory.ErrScriptedFailure)
	assert.Zero(t, gen.Stats().SessionsCreated)
}

func TestGenerator_PullHook(t *testing.T) {
	var pulls []int
	gen := memory.New(
		memory.WithScript(memory.Script{Faces: []memory.Face{{ID: 1}, {ID: 2}}}),
		memory.WithPullHook(func(n int) { pulls = append(pulls, n) }),
	)
	sess, err := gen.NewSession(&stubCallbacks{}, "")
	require.NoError(t, err)
	defer sess.Release()

	for {
		if _, _, ok := sess.NextFace(); !ok {
			break
		}
	}
	assert.Equal(t, []int{1, 2}, pulls)
}
