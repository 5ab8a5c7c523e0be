package region

import (
	"fmt"

	"github.com/joshuapare/scopekit/internal/buf"
	"github.com/joshuapare/scopekit/internal/format"
)

// ListStartCap is a fresh list's element capacity.
const ListStartCap = 16

// listScaleFactor doubles the element buffer when the list fills. The list
// never shrinks; only the runtime's tracker has a shrink policy.
const listScaleFactor = 2

// List is a zero-copy view over a list object. The element buffer is a
// separate, list-owned arena block holding 8-byte handles; the elements
// themselves are tracker-owned allocations the list only references. When
// the collector frees a list it frees the header block alone - the element
// buffer is leaked with it, as the original runtime's buffers were.
type List struct {
	rt  *Runtime
	raw []byte // header + payload of the list block
}

// NewList allocates a list through the tracked allocator: length 0,
// capacity ListStartCap, list dispatch table installed.
func (rt *Runtime) NewList() Ref {
	ref := rt.Malloc(format.HeaderSize + format.ListPayloadSize)
	elems := rt.allocRaw(ListStartCap * format.ListElemSize)

	p := rt.mustHeader(ref)[format.HeaderSize:]
	format.PutListLen(p, 0)
	format.PutListCap(p, ListStartCap)
	format.PutListElems(p, uint64(elems))
	rt.setTable(ref, ListTableID)
	return ref
}

// List returns a view of the list addressed by ref, validating the dispatch
// table, the payload size, and that the stored length fits the element
// buffer.
func (rt *Runtime) List(ref Ref) (List, error) {
	o, err := rt.Object(ref)
	if err != nil {
		return List{}, err
	}
	if o.TableID() != ListTableID {
		return List{}, ErrNotList
	}
	if len(o.Payload()) < format.ListPayloadSize {
		return List{}, fmt.Errorf("list: %w", format.ErrTruncated)
	}
	l := List{rt: rt, raw: o.raw}
	eb, err := l.elems()
	if err != nil {
		return List{}, err
	}
	if _, err := buf.CheckElemBounds(len(eb), 0, l.Len(), format.ListElemSize); err != nil {
		return List{}, fmt.Errorf("list: %w", err)
	}
	return l, nil
}

// Len returns the number of stored elements.
func (l List) Len() int { return int(format.ReadListLen(l.payload())) }

// Cap returns the element buffer capacity in elements.
func (l List) Cap() int { return int(format.ReadListCap(l.payload())) }

// Append stores v at the tail, doubling the element buffer when full.
// Amortized O(1).
func (l List) Append(v Ref) error {
	p := l.payload()
	length := int(format.ReadListLen(p))
	capacity := int(format.ReadListCap(p))

	eb, err := l.elems()
	if err != nil {
		return err
	}
	if length == capacity {
		grown, ok := buf.MulOverflowSafe(capacity*listScaleFactor, format.ListElemSize)
		if !ok {
			return fmt.Errorf("list: %w: capacity overflow", ErrBadArgs)
		}
		newElems := l.rt.allocRaw(grown)
		newEB := l.rt.mustHeader(newElems)
		copy(newEB, eb)
		l.rt.mustFree(Ref(format.ReadListElems(p)))
		format.PutListElems(p, uint64(newElems))
		format.PutListCap(p, uint64(capacity*listScaleFactor))
		eb = newEB
	}

	format.PutU64(eb, length*format.ListElemSize, uint64(v))
	format.PutListLen(p, uint64(length+1))
	return nil
}

// Get returns the element at index i, or Nil when i is outside [0, Len).
// Out-of-range reads are recoverable by contract, never a fault.
func (l List) Get(i int) Ref {
	if i < 0 || i >= l.Len() {
		return Nil
	}
	eb, err := l.elems()
	if err != nil {
		return Nil
	}
	w, ok := buf.Slice(eb, i*format.ListElemSize, format.ListElemSize)
	if !ok {
		return Nil
	}
	return Ref(format.ReadU64(w, 0))
}

func (l List) payload() []byte { return l.raw[format.HeaderSize:] }

func (l List) elems() ([]byte, error) {
	return l.rt.header(Ref(format.ReadListElems(l.payload())))
}

// newListTable builds the list type's dispatch table: append in slot 0, get
// in slot 1, matching the operation identities generated code indexes by.
func newListTable() *Table {
	t := &Table{Name: "list"}
	t.Install(OpAppend, func(rt *Runtime, recv Ref, args ...uint64) (uint64, error) {
		if len(args) != 1 {
			return 0, fmt.Errorf("%w: append wants 1 argument, got %d", ErrBadArgs, len(args))
		}
		l, err := rt.List(recv)
		if err != nil {
			return 0, err
		}
		return 0, l.Append(Ref(args[0]))
	})
	t.Install(OpGet, func(rt *Runtime, recv Ref, args ...uint64) (uint64, error) {
		if len(args) != 1 {
			return 0, fmt.Errorf("%w: get wants 1 argument, got %d", ErrBadArgs, len(args))
		}
		l, err := rt.List(recv)
		if err != nil {
			return 0, err
		}
		return uint64(l.Get(int(args[0]))), nil
	})
	return t
}
