/*
Package observability exports expansion activity as Prometheus metrics.

Metrics are fed by lifecycle hooks: install Metrics.Hooks on the assembly
factory (or merge them with your own hooks) and register the collectors on
any prometheus.Registerer.
*/
package observability
