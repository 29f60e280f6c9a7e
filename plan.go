package slab

// iterationRecord is one per-archetype walk within a compiled foreach
// plan: which archetype, and where in the shared positionPool its list
// of per-requested-component positions begins.
type iterationRecord struct {
	archetype      ArchetypeID
	positionsFirst int
	positionsCount int
}

// foreachPlan is a declared, order-significant component tuple compiled
// to a flat list of iterationRecords, one per archetype whose component
// set is a superset of the tuple.
type foreachPlan struct {
	id           ForeachID
	components   []ComponentID
	recordsFirst int
	recordsCount int
}

func foreachKey(ids []ComponentID) string {
	// Order-significant: unlike archetypeKey, ids here are NOT sorted.
	return archetypeKey(ids)
}

// DeclareForeach compiles an iteration plan over the given component
// tuple, in the order given — that order becomes the callback parameter
// order for every generated Foreach1..Foreach4 wrapper built on top of
// this plan. Canonicalization is by exact list equality, not by set:
// DeclareForeach(A, B) and DeclareForeach(B, A) are distinct plans. Must
// be called before Setup.
func (c *Context) DeclareForeach(components ...Component) (ForeachID, error) {
	if c.setUp {
		panic(AlreadySetUpError{})
	}

	ids := make([]ComponentID, len(components))
	for i, comp := range components {
		ids[i] = comp.componentID()
	}

	key := foreachKey(ids)
	if handle, ok := c.foreachCache.lookup(key); ok {
		return ForeachID(handle), nil
	}

	plan := &foreachPlan{
		id:           ForeachID(len(c.foreaches)),
		components:   ids,
		recordsFirst: len(c.iterationRecords),
	}

	var want bitset
	for _, id := range ids {
		want.set(id)
	}

	matched := 0
	for _, arch := range c.archetypes {
		if !arch.mask.contains(want) {
			continue
		}
		positionsFirst := len(c.positionPool)
		for _, id := range ids {
			_, pos, found := arch.componentRefFor(id)
			if !found {
				panic("slab: archetype mask reported a superset that its component list does not contain")
			}
			c.positionPool = append(c.positionPool, pos)
		}
		c.iterationRecords = append(c.iterationRecords, iterationRecord{
			archetype:      arch.id,
			positionsFirst: positionsFirst,
			positionsCount: len(ids),
		})
		matched++
	}

	plan.recordsCount = len(c.iterationRecords) - plan.recordsFirst
	c.foreaches = append(c.foreaches, plan)
	if err := c.foreachCache.register(key, int(plan.id)); err != nil {
		return 0, err
	}
	Config.events.onForeachDeclared(plan.id, ids, matched)
	return plan.id, nil
}
