package domain

// ModelID is the model identifier advertised by the assembly factory.
const ModelID = "xgen_patch_assembly"

// ModelLabel is the human readable name shown in host registration UIs.
const ModelLabel = "XGen Patch Assembly"

// Factory metadata keys.
const (
	MetadataName  = "name"
	MetadataLabel = "label"
)

// KeyGeneratorArgs is the required parameter holding the opaque generator argument blob.
const KeyGeneratorArgs = "generator_args"

// Camera-derived parameter keys, seeded from the active camera when absent.
const (
	KeyRenderCam      = "renderCam"
	KeyRenderCamFOV   = "renderCamFOV"
	KeyRenderCamRatio = "renderCamRatio"
	KeyRenderCamXform = "renderCamXform"
)

// Generator extension keys.
const (
	KeyShadowMotionBlur        = "shadowMotionBlur"
	KeyShutterOffset           = "shutterOffset"
	KeyBypassFXModulesAfterBGM = "bypassFXModulesAfterBGM"
	KeyCacheDir                = "cacheDir"
	KeyGenerator               = "generator"
	KeyOff                     = "off"
	KeyPhase                   = "phase"
	KeyRenderMethod            = "renderMethod"
)

// Primitive type tags reported by a primitive cache.
const (
	PrimitiveCard    = "CardPrimitive"
	PrimitiveSphere  = "SpherePrimitive"
	PrimitiveArchive = "ArchivePrimitive"
)

// OffToken is returned for the Off attribute when the off parameter parses as true.
const OffToken = "xgen_OFF"

// Camera model names treated as perspective cameras.
const (
	CameraPinhole  = "pinhole_camera"
	CameraThinLens = "thinlens_camera"
)
