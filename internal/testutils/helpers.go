package testutils

import (
	"testing"

	"github.com/aretw0/xgenseed/pkg/domain"
	"github.com/aretw0/xgenseed/pkg/params"
	"github.com/aretw0/xgenseed/pkg/scene"
	"github.com/aretw0/xgenseed/pkg/xform"
	"github.com/stretchr/testify/require"
)

// PatchScene builds a scene where the patch assembly "hair" is instanced by
// "hair_inst" inside "world", and "world" is instanced at scene level by
// "world_inst". The active camera "persp" is a pinhole camera at (0, 0, 5).
// It returns the scene and the id of "world", the parent to expand "hair"
// under. It fails the test immediately on error.
func PatchScene(t *testing.T, world, hair xform.Sequence, hairParams *params.Array) (*scene.Scene, scene.AssemblyID) {
	t.Helper()

	sc := scene.New()
	worldID, err := sc.AddAssembly(scene.None, "world", "", nil)
	require.NoError(t, err)
	worldInst, err := sc.AddInstance(scene.None, scene.None, "world_inst", "world", world)
	require.NoError(t, err)
	_, err = sc.AddAssembly(worldID, "hair", domain.ModelID, hairParams)
	require.NoError(t, err)
	_, err = sc.AddInstance(worldID, worldInst, "hair_inst", "hair", hair)
	require.NoError(t, err)

	sc.AddCamera(scene.Camera{
		Name:       "persp",
		Model:      domain.CameraPinhole,
		Transforms: xform.Constant(xform.Translation(0, 0, 5)),
	})
	return sc, worldID
}
