package slab

import (
	"fmt"
	"reflect"
	"unsafe"
)

// ComponentID is the stable, process-unique identifier assigned to a
// component type the first time it is registered. IDs are never reused
// and are totally ordered, which lets archetype declarations canonicalize
// a component set by sorting on this value.
type ComponentID uint32

// Component is implemented by ComponentType[T]. DeclareArchetype and
// DeclareForeach accept any mix of Components; the concrete T is only
// needed again when a caller wants a typed pointer out of Get.
type Component interface {
	componentID() ComponentID
	componentSize() uintptr
}

type componentTypeInfo struct {
	typ  reflect.Type
	size uintptr
}

// registry assigns ComponentIDs to distinct reflect.Types. It is
// deliberately a package-level table rather than per-Context state: the
// spec requires ids to be "process-unique across all types ever
// declared", and a process normally runs one component vocabulary
// regardless of how many Contexts it constructs.
var (
	registryByType = map[reflect.Type]ComponentID{}
	registryInfo   []componentTypeInfo
)

const maxComponentAlignment = unsafe.Sizeof(float64(0))

func registerComponentType(t reflect.Type) ComponentID {
	if id, ok := registryByType[t]; ok {
		return id
	}
	if align := uintptr(t.Align()); align > maxComponentAlignment {
		panic(fmt.Sprintf("slab: component type %s has alignment %d, exceeds the 64-bit scalar bound", t, align))
	}
	id := ComponentID(len(registryInfo))
	registryInfo = append(registryInfo, componentTypeInfo{typ: t, size: t.Size()})
	registryByType[t] = id
	return id
}

func componentSizeOf(id ComponentID) uintptr {
	return registryInfo[id].size
}

// ComponentType[T] is the handle callers use to declare archetypes and
// foreaches and to fetch typed pointers out of a Context. It is the
// generic counterpart of the spec's "type registry entry": registering a
// type is idempotent, re-declaring the same T anywhere returns the same
// ComponentType value.
type ComponentType[T any] struct {
	id ComponentID
}

// NewComponentType registers T — or retrieves its existing id if T has
// already been registered anywhere in this process — and returns a
// typed handle onto it. T must be trivially copyable: it may not contain
// pointers, slices, maps, interfaces or any other reference type, since
// the store moves instances by raw byte copy and never runs a
// destructor.
func NewComponentType[T any]() ComponentType[T] {
	t := reflect.TypeOf((*T)(nil)).Elem()
	return ComponentType[T]{id: registerComponentType(t)}
}

// ID returns the component's stable identifier.
func (c ComponentType[T]) ID() ComponentID { return c.id }

func (c ComponentType[T]) componentID() ComponentID { return c.id }
func (c ComponentType[T]) componentSize() uintptr    { return componentSizeOf(c.id) }

// Get returns a pointer to entity e's instance of T, or nil if e does not
// carry this component. It panics with DeadEntityError if e is not alive.
// The pointer is ephemeral: it is invalidated by the next Create, Destroy
// or Clear on ctx and must be re-fetched afterward (spec.md P3).
func (c ComponentType[T]) Get(ctx *Context, e Entity) *T {
	p := ctx.get(e, c.id)
	if p == nil {
		return nil
	}
	return (*T)(p)
}
