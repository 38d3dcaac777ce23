/*
Package assembly exposes the patch assembly model to a host renderer.

A Factory is created once per plugin load and hands out PatchAssembly
values. When the renderer reaches a patch assembly in the scene it calls
Expand, which snapshots the assembly parameters, seeds camera-derived
parameters, composes the world transform of the assembly, and drives one
generator session over every face of the patch.

	factory := assembly.NewFactory(gen, assembly.WithLogger(logger))
	defer factory.Release()

	patch := factory.Create("hair", params.New(map[string]any{
		"generator_args": args,
	}))
	defer patch.Release()

	ok := patch.Expand(ctx, sc, parentID, abort.Never)
*/
package assembly
