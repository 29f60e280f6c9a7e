package slab

import "unsafe"

// Foreach walks every entity matched by plan id. fn is called once per
// matching entity with the archetype it belongs to and one pointer per
// component the plan requested, in declaration order. ptrs is reused
// across calls within the same walk and must not be retained past the
// call it was handed to. The Context is locked for the duration of the
// walk: fn may read and write component data in place but must not call
// Create, Destroy or Clear — spec.md forbids structural mutation during
// a plain Foreach.
func (c *Context) Foreach(id ForeachID, fn func(archetype ArchetypeID, ptrs []unsafe.Pointer)) error {
	c.requireSetUp()
	if int(id) >= len(c.foreaches) {
		panic(UnknownForeachError{Foreach: id})
	}
	plan := c.foreaches[id]

	c.locked = true
	defer func() { c.locked = false }()

	ptrs := make([]unsafe.Pointer, len(plan.components))
	for i := 0; i < plan.recordsCount; i++ {
		rec := c.iterationRecords[plan.recordsFirst+i]
		a := c.archetypes[rec.archetype]
		positions := c.positionPool[rec.positionsFirst : rec.positionsFirst+rec.positionsCount]
		for slot := 0; slot < a.aliveCount; slot++ {
			c.fillPointers(a, positions, slot, ptrs)
			fn(rec.archetype, ptrs)
		}
	}
	return nil
}

// ForeachControl walks every entity matched by plan id like Foreach, but
// hands fn a Control that permits Destroy and Create mid-walk. The
// Context is not locked. After a Destroy, the driver does not advance
// past the visited slot — swap-remove relocated the archetype's former
// last live instance into it, and that instance is visited next in its
// place. The archetype's aliveCount is re-read every iteration, so
// entities created mid-walk into an already-matched archetype may be
// visited later in the same walk if they land before the cursor reaches
// the new tail.
func (c *Context) ForeachControl(id ForeachID, fn func(ctl *Control, archetype ArchetypeID, ptrs []unsafe.Pointer)) error {
	c.requireSetUp()
	if int(id) >= len(c.foreaches) {
		panic(UnknownForeachError{Foreach: id})
	}
	plan := c.foreaches[id]

	ptrs := make([]unsafe.Pointer, len(plan.components))
	for i := 0; i < plan.recordsCount; i++ {
		rec := c.iterationRecords[plan.recordsFirst+i]
		a := c.archetypes[rec.archetype]
		positions := c.positionPool[rec.positionsFirst : rec.positionsFirst+rec.positionsCount]
		slot := 0
		for slot < a.aliveCount {
			e := c.entityAtSlot(a, rec.archetype, slot)
			ctl := &Control{c: c, e: e}
			c.fillPointers(a, positions, slot, ptrs)
			fn(ctl, rec.archetype, ptrs)
			if !ctl.dead {
				slot++
			}
		}
	}
	return nil
}

// fillPointers resolves, into ptrs, the raw pointer for each requested
// component position in a's sorted component list, for the entity at
// physical slot of a's range in the store of a's first sorted component.
// Each pointer is looked up through that entity's logical index, since a
// cascade relocates instances in one store only and the same slot of two
// ranges of a may hold different entities.
func (c *Context) fillPointers(a *archetypeEntry, positions []int, slot int, ptrs []unsafe.Pointer) {
	lead := a.components[0]
	leadStore := c.stores[lead.storeIndex]
	index := leadStore.physicalToLogical[leadStore.ranges[lead.rangeIndex].first+slot]
	for k, pos := range positions {
		ref := a.components[pos]
		store := c.stores[ref.storeIndex]
		r := store.ranges[ref.rangeIndex]
		ptrs[k] = store.slotPtr(int(r.logicalToPhysical[index]))
	}
}

// entityAtSlot reconstructs the Entity identifier currently occupying the
// given physical slot of archetype a, by way of the component store that
// backs a's first component in sorted order — the same store fillPointers
// walks by.
func (c *Context) entityAtSlot(a *archetypeEntry, archetype ArchetypeID, slot int) Entity {
	ref := a.components[0]
	store := c.stores[ref.storeIndex]
	r := store.ranges[ref.rangeIndex]
	p := r.first + slot
	index := store.physicalToLogical[p]
	return Entity{Archetype: archetype, Generation: a.generation[index], Index: index}
}
