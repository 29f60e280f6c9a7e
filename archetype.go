package slab

import (
	"encoding/binary"
	"sort"
)

// componentRef is one member of an archetype's sorted component list. Id,
// storeIndex and rangeIndex are all resolved by DeclareArchetype, at
// declaration time. rangeIndex is local to the owning store's ranges slice —
// the Go equivalent of the spec's single "global range index into a
// shared range table", flattened here into a (store, local index) pair
// since Go has no need for the extra indirection a shared C-array table
// gives a systems language.
type componentRef struct {
	id         ComponentID
	storeIndex int
	rangeIndex int
}

// archetypeEntry is one declared, unordered set of component types.
type archetypeEntry struct {
	id         ArchetypeID
	components []componentRef // sorted by id
	mask       bitset
	aliveCount int
	generation []uint32
	free       freeQueue
}

func archetypeKey(ids []ComponentID) string {
	buf := make([]byte, 4*len(ids))
	for i, id := range ids {
		binary.LittleEndian.PutUint32(buf[i*4:], uint32(id))
	}
	return string(buf)
}

// DeclareArchetype registers the unordered set of components as an
// archetype and returns its id. Declaring the same set more than once,
// in any order, returns the same id (spec.md invariant 6). Must be
// called before Setup.
func (c *Context) DeclareArchetype(components ...Component) (ArchetypeID, error) {
	if c.setUp {
		panic(AlreadySetUpError{})
	}

	ids := make([]ComponentID, len(components))
	for i, comp := range components {
		ids[i] = comp.componentID()
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	for i := 1; i < len(ids); i++ {
		if ids[i] == ids[i-1] {
			panic(DuplicateComponentError{Component: ids[i]})
		}
	}

	key := archetypeKey(ids)
	if handle, ok := c.archetypeCache.lookup(key); ok {
		return ArchetypeID(handle), nil
	}

	entry := &archetypeEntry{
		id:         ArchetypeID(len(c.archetypes)),
		components: make([]componentRef, len(ids)),
	}
	for i, id := range ids {
		store := c.ensureStore(id)
		storeIdx := c.storeIndexByID[id]
		rangeIdx := len(store.ranges)
		store.ranges = append(store.ranges, &componentRange{archetype: entry.id})
		entry.components[i] = componentRef{id: id, storeIndex: storeIdx, rangeIndex: rangeIdx}
		entry.mask.set(id)
	}
	c.archetypes = append(c.archetypes, entry)
	if err := c.archetypeCache.register(key, int(entry.id)); err != nil {
		return 0, err
	}
	Config.events.onArchetypeDeclared(entry.id, ids)
	return entry.id, nil
}

// ensureStore returns the componentStore for id, creating it (idempotent
// registration, spec.md 4.B) if this is the first time id has been seen
// by this Context.
func (c *Context) ensureStore(id ComponentID) *componentStore {
	if idx, ok := c.storeIndexByID[id]; ok {
		return c.stores[idx]
	}
	idx := len(c.stores)
	store := newComponentStore(id)
	c.stores = append(c.stores, store)
	c.storeIndexByID[id] = idx
	return store
}

// componentRefFor binary-searches an archetype's sorted component list
// for id, mirroring Context::get's lower_bound in the C++ reference. It
// returns both the ref and its position in the list, the latter being
// exactly what the foreach planner records for each requested component.
func (a *archetypeEntry) componentRefFor(id ComponentID) (componentRef, int, bool) {
	lo, hi := 0, len(a.components)
	for lo < hi {
		mid := (lo + hi) / 2
		if a.components[mid].id < id {
			lo = mid + 1
		} else {
			hi = mid
		}
	}
	if lo < len(a.components) && a.components[lo].id == id {
		return a.components[lo], lo, true
	}
	return componentRef{}, -1, false
}
