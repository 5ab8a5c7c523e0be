package region

import "github.com/joshuapare/scopekit/internal/format"

// Object is a zero-copy view of a heap block's common header and payload.
// All accessors read directly from arena memory; the view is invalidated
// when the block is freed.
type Object struct {
	raw []byte
}

// Object returns a header view of the block addressed by ref.
func (rt *Runtime) Object(ref Ref) (Object, error) {
	b, err := rt.header(ref)
	if err != nil {
		return Object{}, err
	}
	if err := format.CheckHeader(b); err != nil {
		return Object{}, err
	}
	return Object{raw: b}, nil
}

// Depth returns the scope depth stamped in the header.
func (o Object) Depth() uint32 { return format.ReadDepth(o.raw) }

// RefCount returns the reference count.
func (o Object) RefCount() uint64 { return format.ReadRefCount(o.raw) }

// TableID returns the dispatch table ID; 0 means no table.
func (o Object) TableID() uint64 { return format.ReadDispatch(o.raw) }

// Payload returns the block's bytes past the common header.
func (o Object) Payload() []byte { return o.raw[format.HeaderSize:] }

// NewObject allocates a base object: a bare header carrying the empty base
// table and no payload.
func (rt *Runtime) NewObject() Ref {
	return rt.InitObject(Nil)
}

// InitObject initializes ref as a base object, allocating a fresh block when
// ref is Nil. Generated constructors pass a pre-allocated block when the
// concrete type embeds the base; the header is restamped with the current
// depth either way.
func (rt *Runtime) InitObject(ref Ref) Ref {
	if ref == Nil {
		ref = rt.Malloc(format.HeaderSize)
	}
	b := rt.mustHeader(ref)
	format.PutDepth(b, rt.depth)
	format.PutDispatch(b, ObjectTableID)
	return ref
}

// Retain increments an object's reference count. A nonzero count at
// collection time keeps the block allocated (and leaks it).
func (rt *Runtime) Retain(ref Ref) {
	b := rt.mustHeader(ref)
	format.PutRefCount(b, format.ReadRefCount(b)+1)
}

// Release decrements an object's reference count. Releasing below zero is a
// caller contract violation.
func (rt *Runtime) Release(ref Ref) {
	b := rt.mustHeader(ref)
	n := format.ReadRefCount(b)
	if n == 0 {
		panic("region: Release on object with zero reference count")
	}
	format.PutRefCount(b, n-1)
}

// setTable stamps a dispatch table ID into an object's header.
func (rt *Runtime) setTable(ref Ref, id uint64) {
	format.PutDispatch(rt.mustHeader(ref), id)
}
