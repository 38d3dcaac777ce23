// Package scenefile loads a scene description from YAML.
package scenefile

import (
	"bytes"
	"errors"
	"fmt"
	"os"

	"cogentcore.org/core/math32"
	"github.com/aretw0/xgenseed/pkg/params"
	"github.com/aretw0/xgenseed/pkg/scene"
	"github.com/aretw0/xgenseed/pkg/xform"
	"gopkg.in/yaml.v3"
)

// Sample is one time-keyed transform. Components compose as
// translate * rotX * rotY * rotZ * scale, with rotations in degrees.
// A matrix, given as 16 row-major values, replaces the components.
type Sample struct {
	Time      float32   `yaml:"time"`
	Translate []float32 `yaml:"translate,omitempty"`
	Rotate    []float32 `yaml:"rotate,omitempty"`
	Scale     []float32 `yaml:"scale,omitempty"`
	Matrix    []float32 `yaml:"matrix,omitempty"`
}

// AssemblyConfig describes one assembly. Parent names an assembly declared
// earlier in the file, empty for scene level.
type AssemblyConfig struct {
	Name   string         `yaml:"name"`
	Parent string         `yaml:"parent,omitempty"`
	Model  string         `yaml:"model,omitempty"`
	Params map[string]any `yaml:"params,omitempty"`
}

// InstanceConfig places an assembly. Container and ParentInstance are
// empty for scene-level instances.
type InstanceConfig struct {
	Name           string   `yaml:"name"`
	Assembly       string   `yaml:"assembly"`
	Container      string   `yaml:"container,omitempty"`
	ParentInstance string   `yaml:"parent_instance,omitempty"`
	Transform      []Sample `yaml:"transform,omitempty"`
}

// CameraConfig describes a camera.
type CameraConfig struct {
	Name      string   `yaml:"name"`
	Model     string   `yaml:"model"`
	Transform []Sample `yaml:"transform,omitempty"`
}

// File is the root of a scene description.
type File struct {
	ActiveCamera string           `yaml:"active_camera,omitempty"`
	Cameras      []CameraConfig   `yaml:"cameras,omitempty"`
	Assemblies   []AssemblyConfig `yaml:"assemblies"`
	Instances    []InstanceConfig `yaml:"instances,omitempty"`
}

// Load reads and builds the scene at path.
func Load(path string) (*scene.Scene, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read scene file: %w", err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, err
	}
	return f.Build()
}

// Parse decodes a scene description. Unknown fields are rejected.
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		return nil, fmt.Errorf("failed to parse scene file: %w", err)
	}
	return &f, nil
}

// Build creates the scene. Assembly names must be unique within the file.
func (f *File) Build() (*scene.Scene, error) {
	sc := scene.New()

	assemblies := make(map[string]scene.AssemblyID, len(f.Assemblies))
	for _, cfg := range f.Assemblies {
		if cfg.Name == "" {
			return nil, errors.New("assembly without a name")
		}
		if _, dup := assemblies[cfg.Name]; dup {
			return nil, fmt.Errorf("duplicate assembly %q", cfg.Name)
		}
		parent, err := resolve(assemblies, cfg.Parent)
		if err != nil {
			return nil, fmt.Errorf("assembly %q: %w", cfg.Name, err)
		}
		id, err := sc.AddAssembly(parent, cfg.Name, cfg.Model, params.New(cfg.Params))
		if err != nil {
			return nil, fmt.Errorf("assembly %q: %w", cfg.Name, err)
		}
		assemblies[cfg.Name] = id
	}

	instances := make(map[string]scene.InstanceID, len(f.Instances))
	for _, cfg := range f.Instances {
		if _, dup := instances[cfg.Name]; dup || cfg.Name == "" {
			return nil, fmt.Errorf("instance name %q is empty or duplicated", cfg.Name)
		}
		container, err := resolve(assemblies, cfg.Container)
		if err != nil {
			return nil, fmt.Errorf("instance %q: %w", cfg.Name, err)
		}
		seq, err := Sequence(cfg.Transform)
		if err != nil {
			return nil, fmt.Errorf("instance %q: %w", cfg.Name, err)
		}
		id, err := sc.AddInstance(container, scene.None, cfg.Name, cfg.Assembly, seq)
		if err != nil {
			return nil, fmt.Errorf("instance %q: %w", cfg.Name, err)
		}
		instances[cfg.Name] = id
	}

	// Parent instances may reference instances declared later.
	for _, cfg := range f.Instances {
		if cfg.ParentInstance == "" {
			continue
		}
		parent, ok := instances[cfg.ParentInstance]
		if !ok {
			return nil, fmt.Errorf("instance %q: unknown parent instance %q", cfg.Name, cfg.ParentInstance)
		}
		if err := sc.SetParentInstance(instances[cfg.Name], parent); err != nil {
			return nil, err
		}
	}

	for _, cfg := range f.Cameras {
		seq, err := Sequence(cfg.Transform)
		if err != nil {
			return nil, fmt.Errorf("camera %q: %w", cfg.Name, err)
		}
		sc.AddCamera(scene.Camera{Name: cfg.Name, Model: cfg.Model, Transforms: seq})
	}
	if f.ActiveCamera != "" {
		sc.SetActiveCamera(f.ActiveCamera)
	}
	return sc, nil
}

func resolve(assemblies map[string]scene.AssemblyID, name string) (scene.AssemblyID, error) {
	if name == "" {
		return scene.None, nil
	}
	id, ok := assemblies[name]
	if !ok {
		return scene.None, fmt.Errorf("unknown assembly %q", name)
	}
	return id, nil
}

// Sequence converts samples into a transform sequence.
func Sequence(samples []Sample) (xform.Sequence, error) {
	var seq xform.Sequence
	for i, s := range samples {
		tr, err := s.Transform()
		if err != nil {
			return xform.Sequence{}, fmt.Errorf("sample %d: %w", i, err)
		}
		seq.Set(s.Time, tr)
	}
	return seq, nil
}

// Transform builds the transform of one sample.
func (s Sample) Transform() (xform.Transform, error) {
	if len(s.Matrix) > 0 {
		if len(s.Matrix) != 16 {
			return xform.Transform{}, fmt.Errorf("matrix needs 16 values, got %d", len(s.Matrix))
		}
		var m math32.Matrix4
		for row := 0; row < 4; row++ {
			for col := 0; col < 4; col++ {
				m[col*4+row] = s.Matrix[row*4+col]
			}
		}
		return xform.NewTransform(m)
	}

	tr := xform.IdentityTransform()
	if s.Translate != nil {
		v, err := vec3("translate", s.Translate)
		if err != nil {
			return xform.Transform{}, err
		}
		tr = xform.Translation(v.X, v.Y, v.Z)
	}
	if s.Rotate != nil {
		v, err := vec3("rotate", s.Rotate)
		if err != nil {
			return xform.Transform{}, err
		}
		for axis, deg := range []float32{v.X, v.Y, v.Z} {
			if deg == 0 {
				continue
			}
			r, err := xform.Rotation(axis, deg*math32.Pi/180)
			if err != nil {
				return xform.Transform{}, err
			}
			tr = tr.Mul(r)
		}
	}
	if s.Scale != nil {
		v, err := vec3("scale", s.Scale)
		if err != nil {
			return xform.Transform{}, err
		}
		sc, err := xform.Scaling(v.X, v.Y, v.Z)
		if err != nil {
			return xform.Transform{}, err
		}
		tr = tr.Mul(sc)
	}
	return tr, nil
}

func vec3(field string, v []float32) (math32.Vector3, error) {
	if len(v) != 3 {
		return math32.Vector3{}, fmt.Errorf("%s needs 3 values, got %d", field, len(v))
	}
	return math32.Vec3(v[0], v[1], v[2]), nil
}
