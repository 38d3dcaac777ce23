/*
Package ports defines the interfaces between the expansion bridge and its
external collaborators.

The generator side (Generator, Session, FaceRenderer, PrimitiveCache) is
implemented by a procedural content generator backend. The bridge side
(Callbacks) is implemented by xgenseed and polled synchronously by the
generator while it produces geometry.

# Key Interfaces

  - Generator: creates one Session per expansion call from an opaque argument blob.
  - Session: yields (bounding box, face id) pairs and builds per-face renderers.
  - Callbacks: the typed capability set the generator queries during expansion.
  - AbortSwitch: cooperative cancellation polled between faces.
*/
package ports
