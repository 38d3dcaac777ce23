package domain

import "errors"

// ErrMissingParameter is returned when a required parameter is absent from the snapshot.
var ErrMissingParameter = errors.New("missing required parameter")

// ErrNoMatchingInstance is returned when no instance in the parent assembly references the expanding assembly.
var ErrNoMatchingInstance = errors.New("no matching assembly instance")

// ErrAmbiguousInstance is returned when more than one instance in the parent assembly references the expanding assembly.
var ErrAmbiguousInstance = errors.New("ambiguous assembly instance")

// ErrInstanceCycle is returned when the parent-instance chain loops back on itself.
var ErrInstanceCycle = errors.New("assembly instance cycle")

// ErrInstanceDepth is returned when the parent-instance chain exceeds the maximum depth.
var ErrInstanceDepth = errors.New("assembly instance chain too deep")

// ErrUnknownAssembly is returned when an assembly index or name does not resolve.
var ErrUnknownAssembly = errors.New("unknown assembly")

// ErrSessionCreate is returned when the generator fails to create a session.
var ErrSessionCreate = errors.New("failed to create generator session")

// ErrFaceRenderer is returned when a per-face renderer cannot be constructed.
var ErrFaceRenderer = errors.New("failed to create face renderer")

// ErrAlreadyReleased is returned when a factory or assembly is released twice.
var ErrAlreadyReleased = errors.New("already released")

// ErrGeneratorNotFound is returned when no generator backend is registered under a name.
var ErrGeneratorNotFound = errors.New("generator not found")

// ErrPluginNotLoaded is returned when the plugin is used before Load or after Unload.
var ErrPluginNotLoaded = errors.New("plugin not loaded")
