/*
Package xgenseed bridges a renderer's procedural assemblies to a procedural
geometry generator.

At render time the renderer asks a patch assembly to expand. The bridge
takes a snapshot of the assembly parameters, seeds camera-derived
parameters, composes the world transform of the assembly, opens a session on
the generator and answers the generator's callback queries while it pulls
faces one at a time. The expansion reports a single success flag.

# Lifecycle

A Plugin owns the generator backends. Load registers them, Unload clears
them, and NewAssemblyFactory binds a factory to one backend by name.

	p := xgenseed.New(xgenseed.WithLogger(logger))
	if err := p.Load(); err != nil {
		log.Fatal(err)
	}
	defer p.Unload()

	factory, err := p.NewAssemblyFactory(xgenseed.DefaultGenerator)
	if err != nil {
		log.Fatal(err)
	}
	defer factory.Release()

	patch := factory.Create("hair", params.New(map[string]any{
		"generator_args": args,
	}))
	ok := patch.Expand(ctx, sc, parent, abort.Never)

# Packages

  - pkg/params: parameter arrays and immutable snapshots.
  - pkg/xform and pkg/scene: time-sampled transforms and the scene arena.
  - pkg/assembly: the factory and patch assembly.
  - pkg/ports: the generator contract.
  - pkg/adapters/memory: a scripted generator backend.
  - pkg/observability: Prometheus metrics fed by lifecycle hooks.
*/
package xgenseed
