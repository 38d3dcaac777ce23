package xform

import (
	"fmt"

	"cogentcore.org/core/math32"
)

// Transform is a local-to-parent matrix and its parent-to-local inverse.
type Transform struct {
	localToParent math32.Matrix4
	parentToLocal math32.Matrix4
}

// IdentityTransform returns the identity transform.
func IdentityTransform() Transform {
	var t Transform
	t.localToParent.SetIdentity()
	t.parentToLocal.SetIdentity()
	return t
}

// NewTransform builds a transform from a local-to-parent matrix.
// It fails when the matrix is not invertible.
func NewTransform(localToParent math32.Matrix4) (Transform, error) {
	inv, err := localToParent.Inverse()
	if err != nil {
		return Transform{}, fmt.Errorf("matrix is not invertible: %w", err)
	}
	return Transform{localToParent: localToParent, parentToLocal: *inv}, nil
}

// NewTransformPair builds a transform from a matrix and a known inverse.
func NewTransformPair(localToParent, parentToLocal math32.Matrix4) Transform {
	return Transform{localToParent: localToParent, parentToLocal: parentToLocal}
}

// Translation returns a pure translation.
func Translation(x, y, z float32) Transform {
	t := IdentityTransform()
	t.localToParent[12], t.localToParent[13], t.localToParent[14] = x, y, z
	t.parentToLocal[12], t.parentToLocal[13], t.parentToLocal[14] = -x, -y, -z
	return t
}

// Scaling returns a pure non-uniform scale. Zero factors are not invertible.
func Scaling(x, y, z float32) (Transform, error) {
	if x == 0 || y == 0 || z == 0 {
		return Transform{}, fmt.Errorf("scale factors must be non-zero: %v, %v, %v", x, y, z)
	}
	t := IdentityTransform()
	t.localToParent[0], t.localToParent[5], t.localToParent[10] = x, y, z
	t.parentToLocal[0], t.parentToLocal[5], t.parentToLocal[10] = 1/x, 1/y, 1/z
	return t, nil
}

// Rotation returns a rotation of angle radians around the X (0), Y (1) or Z (2) axis.
func Rotation(axis int, angle float32) (Transform, error) {
	c, s := math32.Cos(angle), math32.Sin(angle)
	var i, j int
	switch axis {
	case 0:
		i, j = 1, 2
	case 1:
		i, j = 2, 0
	case 2:
		i, j = 0, 1
	default:
		return Transform{}, fmt.Errorf("invalid rotation axis %d", axis)
	}
	t := IdentityTransform()
	// Column-major: element (row, col) lives at col*4+row.
	t.localToParent[i*4+i], t.localToParent[j*4+i] = c, -s
	t.localToParent[i*4+j], t.localToParent[j*4+j] = s, c
	t.parentToLocal[i*4+i], t.parentToLocal[j*4+i] = c, s
	t.parentToLocal[i*4+j], t.parentToLocal[j*4+j] = -s, c
	return t, nil
}

// LocalToParent returns the local-to-parent matrix.
func (t Transform) LocalToParent() math32.Matrix4 {
	return t.localToParent
}

// ParentToLocal returns the parent-to-local matrix.
func (t Transform) ParentToLocal() math32.Matrix4 {
	return t.parentToLocal
}

// Mul returns t * other: other is applied first, then t.
func (t Transform) Mul(other Transform) Transform {
	var out Transform
	out.localToParent.MulMatrices(&t.localToParent, &other.localToParent)
	out.parentToLocal.MulMatrices(&other.parentToLocal, &t.parentToLocal)
	return out
}

// TranslationPart returns the translation of the local-to-parent matrix.
func (t Transform) TranslationPart() math32.Vector3 {
	return math32.Vec3(t.localToParent[12], t.localToParent[13], t.localToParent[14])
}

// VectorToParent transforms a direction from local to parent space.
func (t Transform) VectorToParent(v math32.Vector3) math32.Vector3 {
	r := math32.Vector4FromVector3(v, 0).MulMatrix4(&t.localToParent)
	return math32.Vec3(r.X, r.Y, r.Z)
}

// At returns the local-to-parent element at row, col.
func (t Transform) At(row, col int) float32 {
	return t.localToParent[col*4+row]
}

// IsIdentity reports whether the local-to-parent matrix is exactly the identity.
func (t Transform) IsIdentity() bool {
	for i, v := range t.localToParent {
		want := float32(0)
		if i%5 == 0 {
			want = 1
		}
		if v != want {
			return false
		}
	}
	return true
}
