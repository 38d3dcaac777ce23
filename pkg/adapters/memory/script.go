package memory

import (
	"fmt"

	"cogentcore.org/core/math32"
	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// Failure modes a scripted face can simulate.
const (
	FailConstruct = "construct"
	FailRender    = "render"
	FailPanic     = "panic"
)

// Primitive is one flushed batch within a face.
type Primitive struct {
	Type   string `mapstructure:"type" yaml:"type"`
	Spline bool   `mapstructure:"spline" yaml:"spline,omitempty"`
	Geom   string `mapstructure:"geom" yaml:"geom,omitempty"`
}

// Face describes one generated face.
type Face struct {
	ID         uint32      `mapstructure:"id" yaml:"id"`
	Min        []float32   `mapstructure:"min" yaml:"min,omitempty"`
	Max        []float32   `mapstructure:"max" yaml:"max,omitempty"`
	Empty      bool        `mapstructure:"empty" yaml:"empty,omitempty"`
	Fail       string      `mapstructure:"fail" yaml:"fail,omitempty"`
	Primitives []Primitive `mapstructure:"primitives" yaml:"primitives,omitempty"`
}

// Bounds returns the face bounding box. Empty faces and faces without
// explicit bounds report an empty and a unit box respectively.
func (f Face) Bounds() math32.Box3 {
	if f.Empty {
		return math32.B3Empty()
	}
	if len(f.Min) != 3 || len(f.Max) != 3 {
		return math32.B3(0, 0, 0, 1, 1, 1)
	}
	return math32.B3(f.Min[0], f.Min[1], f.Min[2], f.Max[0], f.Max[1], f.Max[2])
}

// Script drives a scripted session.
type Script struct {
	// FailSession makes session creation fail.
	FailSession bool `mapstructure:"fail_session" yaml:"fail_session,omitempty"`
	// Messages are sent to the callbacks' Log when the session starts.
	Messages []string `mapstructure:"log" yaml:"log,omitempty"`
	// Queries lists override keys read through the callbacks when the session starts.
	Queries []string `mapstructure:"queries" yaml:"queries,omitempty"`
	Faces   []Face   `mapstructure:"faces" yaml:"faces"`
}

// ParseScript decodes a YAML script from the generator argument blob.
func ParseScript(args string) (Script, error) {
	var raw map[string]any
	if err := yaml.Unmarshal([]byte(args), &raw); err != nil {
		return Script{}, fmt.Errorf("failed to parse generator script: %w", err)
	}

	var script Script
	dec, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		WeaklyTypedInput: true,
		ErrorUnused:      true,
		Result:           &script,
	})
	if err != nil {
		return Script{}, err
	}
	if err := dec.Decode(raw); err != nil {
		return Script{}, fmt.Errorf("invalid generator script: %w", err)
	}
	for i, f := range script.Faces {
		if (len(f.Min) != 0 && len(f.Min) != 3) || (len(f.Max) != 0 && len(f.Max) != 3) {
			return Script{}, fmt.Errorf("face %d: bounds need three coordinates", i)
		}
		switch f.Fail {
		case "", FailConstruct, FailRender, FailPanic:
		default:
			return Script{}, fmt.Errorf("face %d: unknown failure mode %q", i, f.Fail)
		}
	}
	return script, nil
}
