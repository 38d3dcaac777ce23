package scene

import (
	"fmt"

	"github.com/aretw0/xgenseed/pkg/domain"
	"github.com/aretw0/xgenseed/pkg/xform"
)

// MaxInstanceDepth bounds the parent-instance walk.
const MaxInstanceDepth = 1024

// ComposeTransforms returns the world-space transform sequence of the
// assembly named name whose parent assembly is parent.
//
// The single instance of parent that references name is located, then the
// walk climbs parent instances toward the root, composing each instance's
// transform outside the running result. A root-level assembly (parent ==
// None) composes to the identity.
func (s *Scene) ComposeTransforms(name string, parent AssemblyID) (xform.Sequence, error) {
	if parent == None {
		return xform.Identity(), nil
	}
	start, err := s.locateInstance(name, parent)
	if err != nil {
		return xform.Sequence{}, err
	}

	running := xform.Identity()
	visited := make(map[InstanceID]struct{})
	for id := start; id != None; id = s.instances[id].ParentInstance {
		if !s.validInstance(id) {
			return xform.Sequence{}, fmt.Errorf("unknown instance index %d", id)
		}
		if _, seen := visited[id]; seen {
			return xform.Sequence{}, fmt.Errorf("%w: instance %q revisited", domain.ErrInstanceCycle, s.instances[id].Name)
		}
		if len(visited) >= MaxInstanceDepth {
			return xform.Sequence{}, fmt.Errorf("%w: more than %d levels", domain.ErrInstanceDepth, MaxInstanceDepth)
		}
		visited[id] = struct{}{}
		running = xform.Compose(s.instances[id].Transforms, running)
	}
	return running, nil
}

func (s *Scene) locateInstance(name string, parent AssemblyID) (InstanceID, error) {
	p, ok := s.Assembly(parent)
	if !ok {
		return None, fmt.Errorf("%w: parent index %d", domain.ErrUnknownAssembly, parent)
	}
	found := InstanceID(None)
	for _, id := range p.Instances {
		if s.instances[id].Assembly != name {
			continue
		}
		if found != None {
			return None, fmt.Errorf("%w: %q has several instances in %q", domain.ErrAmbiguousInstance, name, p.Name)
		}
		found = id
	}
	if found == None {
		return None, fmt.Errorf("%w: %q in %q", domain.ErrNoMatchingInstance, name, p.Name)
	}
	return found, nil
}
