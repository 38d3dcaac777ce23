package ports

import (
	"cogentcore.org/core/math32"
	"github.com/aretw0/xgenseed/pkg/domain"
)

// Mat44 is a 4x4 matrix in the generator's row-vector layout:
// translation lives in row 3.
type Mat44 [4][4]float32

// PrimitiveCache is one flushed batch of generated geometry.
type PrimitiveCache interface {
	// IsSpline reports whether the batch is a curve/spline group.
	IsSpline() bool
	// PrimitiveType returns the primitive tag, e.g. "CardPrimitive".
	PrimitiveType() string
}

// Callbacks is the capability set a generator queries during expansion.
// Implementations must tolerate any call order and repeated calls.
type Callbacks interface {
	Bool(attr domain.BoolAttr) bool
	Float(attr domain.FloatAttr) float32
	String(attr domain.StringAttr) string
	// FloatArray returns nil when no data is available; the generator then
	// uses its internal default.
	FloatArray(attr domain.FloatArrayAttr) []float32
	FloatArraySize(attr domain.FloatArrayAttr) int
	// Override looks up a generator-specific extension key.
	Override(name string) string
	// Transform writes the world transform at time into out.
	Transform(time float32, out *Mat44)
	// ArchiveBoundingBox reports false when bounds are unavailable.
	ArchiveBoundingBox(filename string) (math32.Box3, bool)
	Log(msg string)
	Flush(geom string, cache PrimitiveCache)
}

// Generator creates sessions on a procedural content generator.
type Generator interface {
	// NewSession creates a session from the opaque argument blob.
	NewSession(cb Callbacks, args string) (Session, error)
}

// Session is a live generator instance for one expansion call.
type Session interface {
	// NextFace returns the next face and false once the sequence is exhausted.
	NextFace() (bbox math32.Box3, faceID uint32, ok bool)
	// NewFaceRenderer builds the renderer for one face.
	NewFaceRenderer(faceID uint32) (FaceRenderer, error)
	// Release frees the session. It is called exactly once.
	Release()
}

// FaceRenderer renders the primitives of one face, flushing them through the
// session's Callbacks.
type FaceRenderer interface {
	Render() bool
	Release()
}

// AbortSwitch is a cooperative cancellation flag.
type AbortSwitch interface {
	IsAborted() bool
}
