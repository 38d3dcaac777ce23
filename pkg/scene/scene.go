package scene

import (
	"fmt"
	"slices"

	"github.com/aretw0/xgenseed/pkg/domain"
	"github.com/aretw0/xgenseed/pkg/params"
	"github.com/aretw0/xgenseed/pkg/xform"
)

// AssemblyID indexes an assembly in a Scene.
type AssemblyID int

// InstanceID indexes an assembly instance in a Scene.
type InstanceID int

// None marks an absent parent.
const None = -1

// Assembly is a scene-graph node that owns parameters and can be expanded.
type Assembly struct {
	Name      string
	Parent    AssemblyID
	Model     string
	Params    *params.Array
	Instances []InstanceID
}

// AssemblyInstance places the assembly named Assembly inside Container at a
// time-varying transform. Container is None for scene-level instances.
// ParentInstance is the instance placing Container in its own parent, or None
// for scene-level instances.
type AssemblyInstance struct {
	Name           string
	Assembly       string
	Container      AssemblyID
	ParentInstance InstanceID
	Transforms     xform.Sequence
}

// Camera is a scene camera.
type Camera struct {
	Name       string
	Model      string
	Transforms xform.Sequence
}

// IsPerspective reports whether the camera model projects from a point.
func (c *Camera) IsPerspective() bool {
	return c.Model == domain.CameraPinhole || c.Model == domain.CameraThinLens
}

// Scene is an arena of assemblies, instances and cameras.
type Scene struct {
	assemblies   []Assembly
	instances    []AssemblyInstance
	rootInsts    []InstanceID
	cameras      []Camera
	activeCamera string
}

// New creates an empty scene.
func New() *Scene {
	return &Scene{}
}

// AddAssembly adds an assembly under parent (None for scene root level).
func (s *Scene) AddAssembly(parent AssemblyID, name, model string, p *params.Array) (AssemblyID, error) {
	if parent != None && !s.validAssembly(parent) {
		return None, fmt.Errorf("%w: parent index %d", domain.ErrUnknownAssembly, parent)
	}
	if p == nil {
		p = params.New(nil)
	}
	s.assemblies = append(s.assemblies, Assembly{
		Name:   name,
		Parent: parent,
		Model:  model,
		Params: p,
	})
	return AssemblyID(len(s.assemblies) - 1), nil
}

// AddInstance places the assembly named assembly inside container, or at
// scene level when container is None. parentInstance is the instance placing
// container in its own parent, or None.
func (s *Scene) AddInstance(container AssemblyID, parentInstance InstanceID, name, assembly string, transforms xform.Sequence) (InstanceID, error) {
	if container != None && !s.validAssembly(container) {
		return None, fmt.Errorf("%w: container index %d", domain.ErrUnknownAssembly, container)
	}
	if parentInstance != None && !s.validInstance(parentInstance) {
		return None, fmt.Errorf("unknown parent instance index %d", parentInstance)
	}
	s.instances = append(s.instances, AssemblyInstance{
		Name:           name,
		Assembly:       assembly,
		Container:      container,
		ParentInstance: parentInstance,
		Transforms:     transforms,
	})
	id := InstanceID(len(s.instances) - 1)
	if container == None {
		s.rootInsts = append(s.rootInsts, id)
	} else {
		s.assemblies[container].Instances = append(s.assemblies[container].Instances, id)
	}
	return id, nil
}

// SetParentInstance rewires the parent instance of id. Loaders use it to
// resolve forward references once every instance exists.
func (s *Scene) SetParentInstance(id, parent InstanceID) error {
	if !s.validInstance(id) {
		return fmt.Errorf("unknown instance index %d", id)
	}
	if parent != None && !s.validInstance(parent) {
		return fmt.Errorf("unknown parent instance index %d", parent)
	}
	s.instances[id].ParentInstance = parent
	return nil
}

// AddCamera adds a camera. The first camera added becomes active unless one is set.
func (s *Scene) AddCamera(c Camera) {
	s.cameras = append(s.cameras, c)
	if s.activeCamera == "" {
		s.activeCamera = c.Name
	}
}

// SetActiveCamera selects the frame's active camera by name.
func (s *Scene) SetActiveCamera(name string) {
	s.activeCamera = name
}

// ActiveCamera returns the frame's active camera, or nil when none resolves.
func (s *Scene) ActiveCamera() *Camera {
	for i := range s.cameras {
		if s.cameras[i].Name == s.activeCamera {
			return &s.cameras[i]
		}
	}
	return nil
}

// Assembly returns the assembly at id.
func (s *Scene) Assembly(id AssemblyID) (*Assembly, bool) {
	if !s.validAssembly(id) {
		return nil, false
	}
	return &s.assemblies[id], true
}

// FindAssembly returns the first assembly with the given name under parent.
func (s *Scene) FindAssembly(parent AssemblyID, name string) (AssemblyID, bool) {
	for i := range s.assemblies {
		if s.assemblies[i].Parent == parent && s.assemblies[i].Name == name {
			return AssemblyID(i), true
		}
	}
	return None, false
}

// Instance returns the instance at id.
func (s *Scene) Instance(id InstanceID) (*AssemblyInstance, bool) {
	if !s.validInstance(id) {
		return nil, false
	}
	return &s.instances[id], true
}

// FindInstance returns the first instance with the given name.
func (s *Scene) FindInstance(name string) (InstanceID, bool) {
	for i := range s.instances {
		if s.instances[i].Name == name {
			return InstanceID(i), true
		}
	}
	return None, false
}

// RootInstances returns the scene-level instances.
func (s *Scene) RootInstances() []InstanceID {
	return slices.Clone(s.rootInsts)
}

// NumAssemblies returns the number of assemblies.
func (s *Scene) NumAssemblies() int { return len(s.assemblies) }

// NumInstances returns the number of instances.
func (s *Scene) NumInstances() int { return len(s.instances) }

func (s *Scene) validAssembly(id AssemblyID) bool {
	return id >= 0 && int(id) < len(s.assemblies)
}

func (s *Scene) validInstance(id InstanceID) bool {
	return id >= 0 && int(id) < len(s.instances)
}
