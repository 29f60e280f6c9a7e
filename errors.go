package slab

import "fmt"

// NotSetUpError is panicked by any operational call (Create, Destroy,
// Clear, Get, IsAlive, Foreach, ForeachControl) made before Setup.
type NotSetUpError struct{}

func (e NotSetUpError) Error() string {
	return "slab: context is not set up yet"
}

// AlreadySetUpError is panicked by a declaration call made after Setup.
type AlreadySetUpError struct{}

func (e AlreadySetUpError) Error() string {
	return "slab: context is already set up, declarations are closed"
}

// UnknownArchetypeError is panicked by Create with an archetype id that
// was never returned by DeclareArchetype.
type UnknownArchetypeError struct {
	Archetype ArchetypeID
}

func (e UnknownArchetypeError) Error() string {
	return fmt.Sprintf("slab: unknown archetype id %d", e.Archetype)
}

// DeadEntityError is panicked by Destroy or Get on an identifier that is
// not currently alive.
type DeadEntityError struct {
	Entity Entity
}

func (e DeadEntityError) Error() string {
	return fmt.Sprintf("slab: entity %v is not alive", e.Entity)
}

// UnknownForeachError is panicked by Foreach/ForeachControl with a plan
// id that was never returned by DeclareForeach.
type UnknownForeachError struct {
	Foreach ForeachID
}

func (e UnknownForeachError) Error() string {
	return fmt.Sprintf("slab: unknown foreach id %d", e.Foreach)
}

// DuplicateComponentError is panicked by DeclareArchetype when the same
// component id appears more than once in the requested set. The original
// C++ reference leaves this case to undefined behavior; the Go port
// rejects it explicitly.
type DuplicateComponentError struct {
	Component ComponentID
}

func (e DuplicateComponentError) Error() string {
	return fmt.Sprintf("slab: component %d declared more than once in the same archetype", e.Component)
}

// LockedError is panicked by Create, Destroy, or Clear called from inside
// a Foreach walk, which forbids structural mutation. ForeachControl does
// not hold this lock.
type LockedError struct{}

func (e LockedError) Error() string {
	return "slab: context is locked for a non-mutating foreach walk"
}

// AllocFailureError is returned (not panicked) by Setup or Create when a
// component store's required capacity would overflow the maximum
// representable instance count. This is the one failure kind spec.md
// marks as "propagate to caller as fatal" rather than assert-and-abort.
type AllocFailureError struct {
	Component ComponentID
	Requested int
}

func (e AllocFailureError) Error() string {
	return fmt.Sprintf("slab: component %d cannot grow to %d instances", e.Component, e.Requested)
}
