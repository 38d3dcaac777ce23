package domain

// BoolAttr identifies a boolean attribute queried by the generator.
type BoolAttr int

const (
	ClearDescriptionCache BoolAttr = iota
	DontUsePaletteRefCounting
)

func (a BoolAttr) String() string {
	switch a {
	case ClearDescriptionCache:
		return "ClearDescriptionCache"
	case DontUsePaletteRefCounting:
		return "DontUsePaletteRefCounting"
	default:
		return "unknown"
	}
}

// FloatAttr identifies a scalar attribute queried by the generator.
type FloatAttr int

const (
	ShadowMotionBlur FloatAttr = iota
	ShutterOffset
)

func (a FloatAttr) String() string {
	switch a {
	case ShadowMotionBlur:
		return "ShadowMotionBlur"
	case ShutterOffset:
		return "ShutterOffset"
	default:
		return "unknown"
	}
}

// StringAttr identifies a string attribute queried by the generator.
type StringAttr int

const (
	BypassFXModulesAfterBGM StringAttr = iota
	CacheDir
	Generator
	Off
	Phase
	RenderCam
	RenderCamFOV
	RenderCamRatio
	RenderCamXform
	RenderMethod
)

func (a StringAttr) String() string {
	switch a {
	case BypassFXModulesAfterBGM:
		return "BypassFXModulesAfterBGM"
	case CacheDir:
		return "CacheDir"
	case Generator:
		return "Generator"
	case Off:
		return "Off"
	case Phase:
		return "Phase"
	case RenderCam:
		return "RenderCam"
	case RenderCamFOV:
		return "RenderCamFOV"
	case RenderCamRatio:
		return "RenderCamRatio"
	case RenderCamXform:
		return "RenderCamXform"
	case RenderMethod:
		return "RenderMethod"
	default:
		return "unknown"
	}
}

// FloatArrayAttr identifies a float array attribute queried by the generator.
type FloatArrayAttr int

const (
	DensityFalloff FloatArrayAttr = iota
	LodHi
	LodLow
	LodMed
	Shutter
)

func (a FloatArrayAttr) String() string {
	switch a {
	case DensityFalloff:
		return "DensityFalloff"
	case LodHi:
		return "LodHi"
	case LodLow:
		return "LodLow"
	case LodMed:
		return "LodMed"
	case Shutter:
		return "Shutter"
	default:
		return "unknown"
	}
}
