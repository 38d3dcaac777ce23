/*
Package domain contains the vocabulary shared by every part of the xgenseed
expansion bridge.

It defines the attribute identifiers the procedural generator queries, the
parameter keys and primitive tags exchanged with the host renderer, the
sentinel errors of the expansion pipeline, and the lifecycle hooks used for
observability. The package is free of I/O and third-party dependencies.

# Key Entities

  - BoolAttr, FloatAttr, StringAttr, FloatArrayAttr: typed attribute categories.
  - Hooks: callbacks fired by the expansion driver and the callback bridge.
  - Face statuses: rendered, skipped or failed.
*/
package domain
