// Profiling:
//
//	go build ./cmd/slabprofile
//	go tool pprof -http=":8000" -nodefraction=0.001 ./slabprofile mem.pprof
package main

import (
	"log"

	"github.com/brinepack/slab"
	"github.com/pkg/profile"
)

type comp1 struct {
	V int64
	W int64
}

type comp2 struct {
	V int64
	W int64
}

func main() {
	const (
		rounds   = 50
		iters    = 10000
		entities = 1000
	)
	p := profile.Start(profile.MemProfileAllocs, profile.ProfilePath("."), profile.NoShutdownHook)
	run(rounds, iters, entities)
	p.Stop()
}

// run repeatedly sets up a fresh Context, creates a batch of entities,
// walks and mutates them, then destroys the whole batch — the same
// create/iterate/destroy cycle teishoku's profile/entities command
// drives against its own world.
func run(rounds, iters, numEntities int) {
	a := slab.NewComponentType[comp1]()
	b := slab.NewComponentType[comp2]()

	for r := 0; r < rounds; r++ {
		ctx := slab.NewContext(slab.Options{InitialCapacity: numEntities})
		archetype, err := ctx.DeclareArchetype(a, b)
		if err != nil {
			log.Fatalf("declare archetype: %v", err)
		}
		walk, err := slab.DeclareForeach2(ctx, a, b)
		if err != nil {
			log.Fatalf("declare foreach: %v", err)
		}
		if err := ctx.Setup(); err != nil {
			log.Fatalf("setup: %v", err)
		}

		for i := 0; i < iters; i++ {
			entities := make([]slab.Entity, 0, numEntities)
			for n := 0; n < numEntities; n++ {
				e, err := ctx.Create(archetype)
				if err != nil {
					log.Fatalf("create: %v", err)
				}
				entities = append(entities, e)
			}
			walk.Each(ctx, func(c1 *comp1, c2 *comp2) {
				c1.V += c2.V
				c1.W += c2.W
			})
			for _, e := range entities {
				if err := ctx.Destroy(e); err != nil {
					log.Fatalf("destroy: %v", err)
				}
			}
		}
	}
}
