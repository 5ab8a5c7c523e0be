package region

import (
	"fmt"

	"github.com/joshuapare/scopekit/internal/format"
)

// Op identifies an operation by its dispatch table slot.
type Op uint8

const (
	// OpAppend is slot 0: append a value to a container.
	OpAppend Op = iota

	// OpGet is slot 1: bounds-checked element read.
	OpGet
)

// MaxOps is the fixed slot count of every dispatch table.
const MaxOps = 8

// OpFunc is the uniform operation signature. Arguments and the result are
// word-sized so references and indexes both pass through unconverted (Ref is
// a uint64 alias).
type OpFunc func(rt *Runtime, recv Ref, args ...uint64) (uint64, error)

// Table is a fixed-size dispatch table. A type's capabilities are exactly
// the slots it installs; a present-but-empty table is the base capability
// set, distinct from having no table at all.
type Table struct {
	Name string
	ops  [MaxOps]OpFunc
}

// Install fills an operation slot.
func (t *Table) Install(op Op, fn OpFunc) {
	t.ops[op] = fn
}

// Op returns the function in a slot, or nil when the slot is empty.
func (t *Table) Op(op Op) OpFunc {
	if int(op) >= MaxOps {
		return nil
	}
	return t.ops[op]
}

// tables is the process-wide table registry. Index 0 is reserved for the
// nil table so a zeroed header dispatches nowhere. Registration is
// single-threaded like the rest of the runtime: generated code registers
// its types during program initialization.
var tables = []*Table{nil}

// RegisterTable adds a dispatch table to the registry and returns the ID
// object headers refer to it by.
func RegisterTable(t *Table) uint64 {
	tables = append(tables, t)
	return uint64(len(tables) - 1)
}

// TableByID resolves a registered table; nil for ID 0 or unknown IDs.
func TableByID(id uint64) *Table {
	if id == 0 || id >= uint64(len(tables)) {
		return nil
	}
	return tables[id]
}

var (
	// ObjectTableID is the base object type's table: registered and empty.
	ObjectTableID = RegisterTable(&Table{Name: "object"})

	// ListTableID is the growable list container's table.
	ListTableID uint64
)

func init() {
	ListTableID = RegisterTable(newListTable())
}

// Invoke calls an operation through the dispatch table named by the
// receiver's header. This indirection is the runtime's sole polymorphism
// mechanism; there is no type hierarchy to walk.
func (rt *Runtime) Invoke(recv Ref, op Op, args ...uint64) (uint64, error) {
	b, err := rt.header(recv)
	if err != nil {
		return 0, err
	}
	id := format.ReadDispatch(b)
	if id == 0 {
		return 0, ErrNoTable
	}
	t := TableByID(id)
	if t == nil {
		return 0, fmt.Errorf("%w: unknown table ID %d", ErrNoTable, id)
	}
	fn := t.Op(op)
	if fn == nil {
		return 0, fmt.Errorf("%w: %q slot %d", ErrBadOp, t.Name, op)
	}
	return fn(rt, recv, args...)
}
