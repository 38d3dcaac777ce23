/*
Package scene models the part of the host scene graph the expansion bridge
reads: assemblies, assembly instances, cameras and the frame's active camera.

The graph is an arena. Assemblies and instances are addressed by integer
indices and refer to their parents by index, so ancestry walks are bounded and
cycle-checked instead of following raw back-references.

A Scene is built once by the host and is read-only while expansions run, so
concurrent expansions of different assemblies need no locking.
*/
package scene
