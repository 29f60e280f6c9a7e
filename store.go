package slab

import (
	"math"
	"unsafe"
)

const defaultInitialCapacity = 16

// maxInstanceCount is the largest number of instances any one component
// store may hold. logicalToPhysical/physicalToLogical entries are
// uint32, but the bound is pinned to math.MaxInt32 rather than
// math.MaxUint32 — SPEC_FULL.md §4.I's AllocFailure fires "when a store's
// required capacity would overflow math.MaxInt32 instances," matching the
// original reference's signed 32-bit instance-count arithmetic.
const maxInstanceCount = math.MaxInt32

// componentRange is a contiguous sub-region of a componentStore's byte
// buffer owned by one archetype. Its occupancy is always the owning
// archetype's aliveCount; the range carries no size field of its own.
type componentRange struct {
	archetype ArchetypeID
	first     int
	// logicalToPhysical maps a live logical index of the owning
	// archetype to its physical offset inside this range's component
	// store. Sized to the archetype's generation vector. This is the
	// "explicit-table scheme" spec.md adopts as normative.
	logicalToPhysical []uint32
}

// componentStore owns one growable byte buffer for a single component
// type, subdivided into the ranges of every archetype that uses it.
type componentStore struct {
	id            ComponentID
	instanceSize  uintptr
	array         []byte
	arrayCapacity int
	// physicalToLogical maps a physical slot in array to the logical
	// index of whichever archetype's range currently owns that slot.
	physicalToLogical []uint32
	ranges            []*componentRange
}

func newComponentStore(id ComponentID) *componentStore {
	return &componentStore{id: id, instanceSize: componentSizeOf(id)}
}

// allocateInitial allocates the byte buffer and physicalToLogical table
// at the given capacity. Called exactly once per store during Setup.
func (s *componentStore) allocateInitial(capacity int) {
	s.arrayCapacity = capacity
	s.array = make([]byte, s.instanceSize*uintptr(capacity))
	s.physicalToLogical = make([]uint32, capacity)
}

// grow doubles arrayCapacity, reallocating both the byte buffer and the
// physicalToLogical table. Only legal when called on the last range's
// store, about to push at the high end.
func (s *componentStore) grow() error {
	if s.arrayCapacity >= maxInstanceCount {
		return AllocFailureError{Component: s.id, Requested: s.arrayCapacity * 2}
	}
	newCap := s.arrayCapacity * 2
	if newCap <= s.arrayCapacity || newCap > maxInstanceCount {
		newCap = maxInstanceCount
	}
	if newCap <= s.arrayCapacity {
		return AllocFailureError{Component: s.id, Requested: newCap}
	}
	newArray := make([]byte, s.instanceSize*uintptr(newCap))
	copy(newArray, s.array)
	s.array = newArray

	newP2L := make([]uint32, newCap)
	copy(newP2L, s.physicalToLogical)
	s.physicalToLogical = newP2L

	s.arrayCapacity = newCap
	return nil
}

// slotPtr returns a raw pointer to the instance at physical offset p.
// The pointer is invalidated by any structural mutation on this store.
func (s *componentStore) slotPtr(p int) unsafe.Pointer {
	return unsafe.Pointer(&s.array[uintptr(p)*s.instanceSize])
}

func (s *componentStore) zero(p int) {
	off := uintptr(p) * s.instanceSize
	clear(s.array[off : off+s.instanceSize])
}

func (s *componentStore) copyInstance(dst, src int) {
	if dst == src {
		return
	}
	dstOff := uintptr(dst) * s.instanceSize
	srcOff := uintptr(src) * s.instanceSize
	copy(s.array[dstOff:dstOff+s.instanceSize], s.array[srcOff:srcOff+s.instanceSize])
}
