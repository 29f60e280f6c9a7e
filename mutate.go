package slab

import "unsafe"

// cascadePushBack makes room for one more instance at the tail of the
// range store.ranges[rangeIdx] and returns the physical offset of the
// newly available, zero-filled slot. It is the Go translation of
// entity::Context::component_push_back from the C++ reference: if the
// range is tight against its successor, it recurses to make room in the
// successor first, relocates the successor's boundary instance into the
// space that freed up, and only then claims the slot for this range. If
// this is the store's last range, it grows the backing array instead.
//
// Relocation here always goes through the explicit logicalToPhysical/
// physicalToLogical tables rather than through first/offset arithmetic —
// spec.md's Open Questions flag the original's shift-based scheme as not
// provably equivalent under nested cascades, and mandate this explicit
// scheme as normative.
func (c *Context) cascadePushBack(store *componentStore, rangeIdx int) (int, error) {
	r := store.ranges[rangeIdx]
	aliveCount := c.archetypes[r.archetype].aliveCount
	backIndex := r.first + aliveCount

	if rangeIdx+1 < len(store.ranges) {
		next := store.ranges[rangeIdx+1]
		if backIndex >= next.first {
			if _, err := c.cascadePushBack(store, rangeIdx+1); err != nil {
				return 0, err
			}
			nextAlive := c.archetypes[next.archetype].aliveCount
			if nextAlive > 0 {
				movedLogical := store.physicalToLogical[backIndex]
				dst := next.first + nextAlive
				store.copyInstance(dst, backIndex)
				next.logicalToPhysical[movedLogical] = uint32(dst)
				store.physicalToLogical[dst] = movedLogical
			}
			next.first++
		}
	} else if backIndex >= store.arrayCapacity {
		oldCap := store.arrayCapacity
		if err := store.grow(); err != nil {
			return 0, err
		}
		Config.events.onStoreGrow(store.id, oldCap, store.arrayCapacity)
	}

	store.zero(backIndex)
	return backIndex, nil
}

// allocateLogicalIndex obtains a logical index for archetype a, reusing
// the head of its free queue (FIFO) when non-empty, else minting a fresh
// index and growing every one of the archetype's range tables by one
// slot, per spec.md §4.D.
func (a *archetypeEntry) allocateLogicalIndex(c *Context) uint32 {
	if !a.free.empty() {
		return a.free.pop()
	}
	index := uint32(len(a.generation))
	a.generation = append(a.generation, 0)
	for _, ref := range a.components {
		r := c.stores[ref.storeIndex].ranges[ref.rangeIndex]
		r.logicalToPhysical = append(r.logicalToPhysical, 0)
	}
	return index
}

// Create allocates a new entity of the given archetype: a logical index,
// then one pushed-back instance per component the archetype declares.
func (c *Context) Create(archetype ArchetypeID) (Entity, error) {
	c.requireSetUp()
	c.requireUnlocked()
	if int(archetype) >= len(c.archetypes) {
		panic(UnknownArchetypeError{Archetype: archetype})
	}
	a := c.archetypes[archetype]

	index := a.allocateLogicalIndex(c)

	for _, ref := range a.components {
		store := c.stores[ref.storeIndex]
		r := store.ranges[ref.rangeIndex]
		p, err := c.cascadePushBack(store, ref.rangeIndex)
		if err != nil {
			return Entity{}, err
		}
		r.logicalToPhysical[index] = uint32(p)
		store.physicalToLogical[p] = index
	}

	a.aliveCount++
	return Entity{Archetype: archetype, Generation: a.generation[index], Index: index}, nil
}

// Destroy removes a live entity via swap-remove on every component range
// of its archetype: the last live instance in each range is copied into
// the freed slot, both index tables are fixed up for the displaced
// entity, the logical index's generation is bumped, and the index is
// enqueued for FIFO reuse.
func (c *Context) Destroy(e Entity) error {
	c.requireSetUp()
	c.requireUnlocked()
	if !c.IsAlive(e) {
		panic(DeadEntityError{Entity: e})
	}
	a := c.archetypes[e.Archetype]

	for _, ref := range a.components {
		store := c.stores[ref.storeIndex]
		r := store.ranges[ref.rangeIndex]

		pDel := int(r.logicalToPhysical[e.Index])
		pBack := r.first + a.aliveCount - 1

		if pDel != pBack {
			store.copyInstance(pDel, pBack)
			movedLogical := store.physicalToLogical[pBack]
			r.logicalToPhysical[movedLogical] = uint32(pDel)
			store.physicalToLogical[pDel] = movedLogical
		}
	}

	a.aliveCount--
	a.generation[e.Index]++
	a.free.push(e.Index)
	return nil
}

// Clear kills every outstanding entity identifier without releasing any
// allocation. Per the original reference (and spec.md's Open Questions),
// generation is bumped only for logical indices that were ever actually
// allocated — never-issued indices beyond the archetype's current
// high-water mark are left untouched, since there is no outstanding
// identifier to invalidate for them.
func (c *Context) Clear() {
	c.requireSetUp()
	c.requireUnlocked()
	for _, a := range c.archetypes {
		a.free = freeQueue{}
		for i := range a.generation {
			a.generation[i]++
			a.free.push(uint32(i))
		}
		a.aliveCount = 0
	}
}

// IsAlive reports whether e refers to a currently live entity. It is
// defined for any identifier, including forged or stale ones, as long as
// e.Index is within the archetype's generation vector.
func (c *Context) IsAlive(e Entity) bool {
	c.requireSetUp()
	if int(e.Archetype) >= len(c.archetypes) {
		return false
	}
	a := c.archetypes[e.Archetype]
	return int(e.Index) < len(a.generation) && a.generation[e.Index] == e.Generation
}

// get resolves a raw pointer to entity e's instance of component id, or
// nil if e does not carry that component. It panics if e is not alive,
// the caller-contract violation spec.md calls DeadEntity.
func (c *Context) get(e Entity, id ComponentID) unsafe.Pointer {
	c.requireSetUp()
	if !c.IsAlive(e) {
		panic(DeadEntityError{Entity: e})
	}
	a := c.archetypes[e.Archetype]
	ref, _, found := a.componentRefFor(id)
	if !found {
		return nil
	}
	store := c.stores[ref.storeIndex]
	r := store.ranges[ref.rangeIndex]
	p := int(r.logicalToPhysical[e.Index])
	return store.slotPtr(p)
}
