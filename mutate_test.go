package slab

import "testing"

func newMovingContext(t *testing.T, initialCapacity int) (*Context, ArchetypeID, ComponentType[position], ComponentType[velocity]) {
	t.Helper()
	pos := NewComponentType[position]()
	vel := NewComponentType[velocity]()
	ctx := NewContext(Options{InitialCapacity: initialCapacity})
	moving, err := ctx.DeclareArchetype(pos, vel)
	if err != nil {
		t.Fatalf("declare archetype: %v", err)
	}
	if err := ctx.Setup(); err != nil {
		t.Fatalf("setup: %v", err)
	}
	return ctx, moving, pos, vel
}

func TestCreateIsAliveDestroy(t *testing.T) {
	ctx, moving, pos, _ := newMovingContext(t, 4)

	e, err := ctx.Create(moving)
	if err != nil {
		t.Fatalf("create: %v", err)
	}
	if !ctx.IsAlive(e) {
		t.Fatal("freshly created entity should be alive")
	}

	pos.Get(ctx, e).X = 7
	if got := pos.Get(ctx, e).X; got != 7 {
		t.Fatalf("X = %v, want 7", got)
	}

	if err := ctx.Destroy(e); err != nil {
		t.Fatalf("destroy: %v", err)
	}
	if ctx.IsAlive(e) {
		t.Fatal("destroyed entity should not be alive")
	}
}

func TestDestroyDeadEntityPanics(t *testing.T) {
	ctx, moving, _, _ := newMovingContext(t, 4)
	e, _ := ctx.Create(moving)
	if err := ctx.Destroy(e); err != nil {
		t.Fatalf("destroy: %v", err)
	}

	defer func() {
		if r := recover(); r == nil {
			t.Fatal("expected panic destroying an already-dead entity")
		} else if _, ok := r.(DeadEntityError); !ok {
			t.Fatalf("expected DeadEntityError, got %T: %v", r, r)
		}
	}()
	ctx.Destroy(e)
}

func TestRecycledIndexGetsFreshGeneration(t *testing.T) {
	ctx, moving, _, _ := newMovingContext(t, 4)

	first, _ := ctx.Create(moving)
	ctx.Destroy(first)
	second, _ := ctx.Create(moving)

	if second.Index != first.Index {
		t.Fatalf("expected FIFO reuse of index %d, got %d", first.Index, second.Index)
	}
	if second.Generation == first.Generation {
		t.Fatal("recycled index must carry a bumped generation")
	}
	if ctx.IsAlive(first) {
		t.Fatal("stale identifier for a recycled index must read as dead")
	}
	if !ctx.IsAlive(second) {
		t.Fatal("newly created entity should be alive")
	}
}

func TestSwapRemovePreservesSurvivorData(t *testing.T) {
	ctx, moving, pos, _ := newMovingContext(t, 8)

	var entities []Entity
	for i := 0; i < 5; i++ {
		e, err := ctx.Create(moving)
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		pos.Get(ctx, e).X = float64(i)
		entities = append(entities, e)
	}

	// Destroy the middle entity; the last live entity (index 4) should be
	// swapped into its slot, keeping its own X value intact.
	if err := ctx.Destroy(entities[2]); err != nil {
		t.Fatalf("destroy: %v", err)
	}

	for i, e := range entities {
		if i == 2 {
			continue
		}
		if got := pos.Get(ctx, e).X; got != float64(i) {
			t.Errorf("entity %d: X = %v, want %v", i, got, i)
		}
	}
}

func TestClearInvalidatesEveryIdentifierAndAllowsReuse(t *testing.T) {
	ctx, moving, _, _ := newMovingContext(t, 4)

	var entities []Entity
	for i := 0; i < 3; i++ {
		e, _ := ctx.Create(moving)
		entities = append(entities, e)
	}

	ctx.Clear()
	for _, e := range entities {
		if ctx.IsAlive(e) {
			t.Fatalf("entity %v should not be alive after Clear", e)
		}
	}

	fresh, err := ctx.Create(moving)
	if err != nil {
		t.Fatalf("create after clear: %v", err)
	}
	if !ctx.IsAlive(fresh) {
		t.Fatal("entity created after Clear should be alive")
	}
}

func TestCreateGrowsStoreBeyondInitialCapacity(t *testing.T) {
	ctx, moving, pos, _ := newMovingContext(t, 2)

	var entities []Entity
	for i := 0; i < 20; i++ {
		e, err := ctx.Create(moving)
		if err != nil {
			t.Fatalf("create %d: %v", i, err)
		}
		pos.Get(ctx, e).X = float64(i)
		entities = append(entities, e)
	}

	for i, e := range entities {
		if got := pos.Get(ctx, e).X; got != float64(i) {
			t.Errorf("entity %d: X = %v, want %v", i, got, i)
		}
	}
}

// TestCascadeAcrossSharedStore exercises the push-back cascade directly:
// two archetypes share the position store, and interleaved creation
// forces one archetype's range to make room by displacing the other's.
func TestCascadeAcrossSharedStore(t *testing.T) {
	pos := NewComponentType[position]()
	vel := NewComponentType[velocity]()
	hp := NewComponentType[health]()

	ctx := NewContext(Options{InitialCapacity: 4})
	moving, err := ctx.DeclareArchetype(pos, vel)
	if err != nil {
		t.Fatalf("declare moving: %v", err)
	}
	stationary, err := ctx.DeclareArchetype(pos, hp)
	if err != nil {
		t.Fatalf("declare stationary: %v", err)
	}
	if err := ctx.Setup(); err != nil {
		t.Fatalf("setup: %v", err)
	}

	var movingEntities, stationaryEntities []Entity
	for round := 0; round < 6; round++ {
		m, err := ctx.Create(moving)
		if err != nil {
			t.Fatalf("create moving round %d: %v", round, err)
		}
		pos.Get(ctx, m).X = float64(1000 + round)
		movingEntities = append(movingEntities, m)

		s, err := ctx.Create(stationary)
		if err != nil {
			t.Fatalf("create stationary round %d: %v", round, err)
		}
		pos.Get(ctx, s).X = float64(2000 + round)
		stationaryEntities = append(stationaryEntities, s)
	}

	for i, e := range movingEntities {
		if got := pos.Get(ctx, e).X; got != float64(1000+i) {
			t.Errorf("moving %d: X = %v, want %v", i, got, 1000+i)
		}
	}
	for i, e := range stationaryEntities {
		if got := pos.Get(ctx, e).X; got != float64(2000+i) {
			t.Errorf("stationary %d: X = %v, want %v", i, got, 2000+i)
		}
	}
}
