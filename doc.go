/*
Package slab implements an archetype-based entity-component store.

Components live in per-type byte stores, each subdivided into contiguous
ranges owned by the archetypes that declare the component. Creating an
entity pushes one instance into each of its archetype's ranges,
cascading neighboring ranges out of the way as needed; destroying one
swap-removes it. Iteration is compiled ahead of time into flat per-
archetype records, so a Foreach walk never touches a map or does a type
switch per entity.

Basic Usage:

	ctx := slab.NewContext(slab.Options{})

	position := slab.NewComponentType[Position]()
	velocity := slab.NewComponentType[Velocity]()

	moving, _ := ctx.DeclareArchetype(position, velocity)
	walk, _ := slab.DeclareForeach2(ctx, position, velocity)

	if err := ctx.Setup(); err != nil {
		log.Fatal(err)
	}

	e, _ := ctx.Create(moving)
	position.Get(ctx, e).X = 1

	walk.Each(ctx, func(pos *Position, vel *Velocity) {
		pos.X += vel.X
		pos.Y += vel.Y
	})

A Context moves through declaration, then Setup, then operation, and
never back. It is not safe for concurrent use.
*/
package slab
