package slab

import "testing"

// TestSetupRejectsInitialCapacityAboveMaxInstanceCount exercises the
// AllocFailure kind spec.md documents: Setup must refuse an
// InitialCapacity beyond maxInstanceCount without allocating anything,
// so a caller-supplied absurd capacity fails cheaply rather than
// attempting an allocation no platform could satisfy.
func TestSetupRejectsInitialCapacityAboveMaxInstanceCount(t *testing.T) {
	pos := NewComponentType[position]()
	ctx := NewContext(Options{InitialCapacity: maxInstanceCount + 1})
	if _, err := ctx.DeclareArchetype(pos); err != nil {
		t.Fatalf("declare archetype: %v", err)
	}

	err := ctx.Setup()
	if err == nil {
		t.Fatal("expected AllocFailureError, got nil")
	}
	afe, ok := err.(AllocFailureError)
	if !ok {
		t.Fatalf("expected AllocFailureError, got %T: %v", err, err)
	}
	if afe.Requested != maxInstanceCount+1 {
		t.Errorf("Requested = %d, want %d", afe.Requested, maxInstanceCount+1)
	}
	if ctx.setUp {
		t.Error("setUp should remain false after a failed Setup, per the no-partial-mutation guarantee")
	}
}

// TestStoreGrowRejectsCapacityAboveMaxInstanceCount drives
// componentStore.grow directly at the boundary, since reaching it
// through Create would require actually allocating on the order of
// maxInstanceCount instances first. This exercises the same bound
// grow() enforces during a live cascadePushBack.
func TestStoreGrowRejectsCapacityAboveMaxInstanceCount(t *testing.T) {
	pos := NewComponentType[position]()
	store := newComponentStore(pos.ID())
	store.allocateInitial(4)
	store.arrayCapacity = maxInstanceCount

	err := store.grow()
	if err == nil {
		t.Fatal("expected AllocFailureError, got nil")
	}
	if _, ok := err.(AllocFailureError); !ok {
		t.Fatalf("expected AllocFailureError, got %T: %v", err, err)
	}
	if store.arrayCapacity != maxInstanceCount {
		t.Errorf("arrayCapacity mutated to %d after a failed grow, want unchanged %d", store.arrayCapacity, maxInstanceCount)
	}
}
