package bridge

import (
	"strings"

	"cogentcore.org/core/math32"
	"github.com/aretw0/xgenseed/pkg/domain"
	"github.com/aretw0/xgenseed/pkg/params"
	"github.com/aretw0/xgenseed/pkg/scene"
	"github.com/spf13/cast"
)

// Field of view and aspect ratio handed to the generator when the user did
// not set them.
const (
	PerspectiveFOV  = "54.0"
	OrthographicFOV = "90.0"
	DefaultRatio    = "1.0"
)

// SeedCameraParams fills the camera-derived keys that are absent from p,
// using the earliest transform of cam. It returns the keys it inserted.
// A nil camera inserts nothing.
func SeedCameraParams(p *params.Array, cam *scene.Camera) []string {
	if cam == nil {
		return nil
	}
	var inserted []string
	insert := func(key, value string) {
		if p.Exists(key) {
			return
		}
		p.Insert(key, value)
		inserted = append(inserted, key)
	}

	persp := cam.IsPerspective()
	tr := cam.Transforms.Earliest()

	if !p.Exists(domain.KeyRenderCam) {
		var v math32.Vector3
		if persp {
			v = tr.TranslationPart()
		} else {
			v = tr.VectorToParent(math32.Vec3(0, 0, 1))
		}
		// The leading flag is true for directional (orthographic) cameras.
		insert(domain.KeyRenderCam, strings.Join([]string{
			cast.ToString(!persp),
			cast.ToString(v.X),
			cast.ToString(v.Y),
			cast.ToString(v.Z),
		}, ", "))
	}

	if persp {
		insert(domain.KeyRenderCamFOV, PerspectiveFOV)
	} else {
		insert(domain.KeyRenderCamFOV, OrthographicFOV)
	}

	insert(domain.KeyRenderCamRatio, DefaultRatio)

	if !p.Exists(domain.KeyRenderCamXform) {
		m := tr.ParentToLocal()
		values := make([]string, 0, 16)
		for row := 0; row < 4; row++ {
			for col := 0; col < 4; col++ {
				values = append(values, cast.ToString(m[col*4+row]))
			}
		}
		insert(domain.KeyRenderCamXform, strings.Join(values, ","))
	}

	return inserted
}
