package slab

import "unsafe"

// Foreach2, Foreach3 and Foreach4 follow Foreach1's shape exactly, one
// per supported tuple arity. Hand-expanded rather than code-generated by
// a go:generate directive, matching how the component-store corpus keeps
// its fixed-arity filter and builder families — see
// edwinsyarief-lazyecs' filter_generated.go and functions_generated.go
// for the pattern this mirrors.

type Foreach2[A, B any] struct {
	id ForeachID
}

func DeclareForeach2[A, B any](c *Context, a ComponentType[A], b ComponentType[B]) (Foreach2[A, B], error) {
	id, err := c.DeclareForeach(a, b)
	if err != nil {
		return Foreach2[A, B]{}, err
	}
	return Foreach2[A, B]{id: id}, nil
}

func (f Foreach2[A, B]) Each(c *Context, fn func(a *A, b *B)) error {
	return c.Foreach(f.id, func(_ ArchetypeID, ptrs []unsafe.Pointer) {
		fn((*A)(ptrs[0]), (*B)(ptrs[1]))
	})
}

func (f Foreach2[A, B]) EachControl(c *Context, fn func(ctl *Control, a *A, b *B)) error {
	return c.ForeachControl(f.id, func(ctl *Control, _ ArchetypeID, ptrs []unsafe.Pointer) {
		fn(ctl, (*A)(ptrs[0]), (*B)(ptrs[1]))
	})
}

type Foreach3[A, B, C any] struct {
	id ForeachID
}

func DeclareForeach3[A, B, C any](c *Context, a ComponentType[A], b ComponentType[B], cc ComponentType[C]) (Foreach3[A, B, C], error) {
	id, err := c.DeclareForeach(a, b, cc)
	if err != nil {
		return Foreach3[A, B, C]{}, err
	}
	return Foreach3[A, B, C]{id: id}, nil
}

func (f Foreach3[A, B, C]) Each(c *Context, fn func(a *A, b *B, cc *C)) error {
	return c.Foreach(f.id, func(_ ArchetypeID, ptrs []unsafe.Pointer) {
		fn((*A)(ptrs[0]), (*B)(ptrs[1]), (*C)(ptrs[2]))
	})
}

func (f Foreach3[A, B, C]) EachControl(c *Context, fn func(ctl *Control, a *A, b *B, cc *C)) error {
	return c.ForeachControl(f.id, func(ctl *Control, _ ArchetypeID, ptrs []unsafe.Pointer) {
		fn(ctl, (*A)(ptrs[0]), (*B)(ptrs[1]), (*C)(ptrs[2]))
	})
}

type Foreach4[A, B, C, D any] struct {
	id ForeachID
}

func DeclareForeach4[A, B, C, D any](c *Context, a ComponentType[A], b ComponentType[B], cc ComponentType[C], d ComponentType[D]) (Foreach4[A, B, C, D], error) {
	id, err := c.DeclareForeach(a, b, cc, d)
	if err != nil {
		return Foreach4[A, B, C, D]{}, err
	}
	return Foreach4[A, B, C, D]{id: id}, nil
}

func (f Foreach4[A, B, C, D]) Each(c *Context, fn func(a *A, b *B, cc *C, d *D)) error {
	return c.Foreach(f.id, func(_ ArchetypeID, ptrs []unsafe.Pointer) {
		fn((*A)(ptrs[0]), (*B)(ptrs[1]), (*C)(ptrs[2]), (*D)(ptrs[3]))
	})
}

func (f Foreach4[A, B, C, D]) EachControl(c *Context, fn func(ctl *Control, a *A, b *B, cc *C, d *D)) error {
	return c.ForeachControl(f.id, func(ctl *Control, _ ArchetypeID, ptrs []unsafe.Pointer) {
		fn(ctl, (*A)(ptrs[0]), (*B)(ptrs[1]), (*C)(ptrs[2]), (*D)(ptrs[3]))
	})
}
