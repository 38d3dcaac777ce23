package validator

import (
	"fmt"
	"strings"

	"github.com/aretw0/xgenseed/pkg/domain"
	"github.com/aretw0/xgenseed/pkg/scene"
)

// ValidateScene checks that every patch assembly in sc can be expanded:
// it carries generator arguments, and its world transform composes
// without missing, ambiguous or cyclic instances. It also reports
// instances of undeclared assemblies and an unresolved active camera.
func ValidateScene(sc *scene.Scene) error {
	var errors []string

	declared := make(map[string]bool, sc.NumAssemblies())
	for i := 0; i < sc.NumAssemblies(); i++ {
		a, _ := sc.Assembly(scene.AssemblyID(i))
		declared[a.Name] = true
	}

	for i := 0; i < sc.NumInstances(); i++ {
		inst, _ := sc.Instance(scene.InstanceID(i))
		if !declared[inst.Assembly] {
			errors = append(errors, fmt.Sprintf("instance '%s' references unknown assembly '%s'", inst.Name, inst.Assembly))
		}
	}

	for i := 0; i < sc.NumAssemblies(); i++ {
		a, _ := sc.Assembly(scene.AssemblyID(i))
		if a.Model != domain.ModelID {
			continue
		}
		if !a.Params.Exists(domain.KeyGeneratorArgs) {
			errors = append(errors, fmt.Sprintf("assembly '%s': missing parameter '%s'", a.Name, domain.KeyGeneratorArgs))
		}
		if _, err := sc.ComposeTransforms(a.Name, a.Parent); err != nil {
			errors = append(errors, fmt.Sprintf("assembly '%s': %v", a.Name, err))
		}
	}

	if sc.ActiveCamera() == nil {
		errors = append(errors, "no active camera")
	}

	if len(errors) > 0 {
		return fmt.Errorf("found %d errors:\n- %s", len(errors), strings.Join(errors, "\n- "))
	}
	return nil
}
