package bench

import (
	"testing"

	"github.com/brinepack/slab"
)

type Position struct {
	X float64
	Y float64
}

type Velocity struct {
	X float64
	Y float64
}

const (
	nPos    = 9000
	nPosVel = 1000
)

func BenchmarkIterSlab(b *testing.B) {
	b.StopTimer()

	position := slab.NewComponentType[Position]()
	velocity := slab.NewComponentType[Velocity]()

	ctx := slab.NewContext(slab.Options{InitialCapacity: nPos + nPosVel})
	stationary, err := ctx.DeclareArchetype(position)
	if err != nil {
		b.Fatalf("declare stationary archetype: %v", err)
	}
	moving, err := ctx.DeclareArchetype(position, velocity)
	if err != nil {
		b.Fatalf("declare moving archetype: %v", err)
	}
	walk, err := slab.DeclareForeach2(ctx, position, velocity)
	if err != nil {
		b.Fatalf("declare foreach: %v", err)
	}
	if err := ctx.Setup(); err != nil {
		b.Fatalf("setup: %v", err)
	}

	for i := 0; i < nPos; i++ {
		if _, err := ctx.Create(stationary); err != nil {
			b.Fatalf("create stationary: %v", err)
		}
	}
	for i := 0; i < nPosVel; i++ {
		if _, err := ctx.Create(moving); err != nil {
			b.Fatalf("create moving: %v", err)
		}
	}

	b.StartTimer()
	for i := 0; i < b.N; i++ {
		walk.Each(ctx, func(pos *Position, vel *Velocity) {
			pos.X += vel.X
			pos.Y += vel.Y
		})
	}
}
