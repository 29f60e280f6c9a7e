package slab

import "unsafe"

// Foreach1 is a typed wrapper around a declared single-component
// iteration plan, sparing callers the unsafe.Pointer bookkeeping Foreach
// and ForeachControl deal in directly. Generated counterparts for larger
// tuples live in foreach_generated.go, following the fixed-arity pattern
// the component-store corpus uses for filters and builders rather than a
// variadic or reflective signature.
type Foreach1[A any] struct {
	id ForeachID
}

// DeclareForeach1 compiles a one-component iteration plan. Must be
// called before Setup.
func DeclareForeach1[A any](c *Context, a ComponentType[A]) (Foreach1[A], error) {
	id, err := c.DeclareForeach(a)
	if err != nil {
		return Foreach1[A]{}, err
	}
	return Foreach1[A]{id: id}, nil
}

// Each visits every matching entity, handing fn a pointer to its A
// instance. No structural mutation is permitted from fn.
func (f Foreach1[A]) Each(c *Context, fn func(a *A)) error {
	return c.Foreach(f.id, func(_ ArchetypeID, ptrs []unsafe.Pointer) {
		fn((*A)(ptrs[0]))
	})
}

// EachControl visits every matching entity, handing fn both a Control
// and a pointer to its A instance. fn may call ctl.Destroy or ctl.Create.
func (f Foreach1[A]) EachControl(c *Context, fn func(ctl *Control, a *A)) error {
	return c.ForeachControl(f.id, func(ctl *Control, _ ArchetypeID, ptrs []unsafe.Pointer) {
		fn(ctl, (*A)(ptrs[0]))
	})
}
