package region

import "github.com/joshuapare/scopekit/internal/arena"

// Ref is a type alias for the arena's generation-checked block handle. The
// runtime hands out and accepts Refs everywhere a C ABI would use an object
// pointer.
type Ref = arena.Handle

// Nil is the absent reference: never a live object, returned by recoverable
// lookups such as out-of-range list reads.
const Nil Ref = arena.Nil

const (
	// EscapeDepth is the sentinel depth marking an object to survive the
	// next scope exit. Depth 0 is never a live scope.
	EscapeDepth uint32 = 0

	// BaseDepth is the outermost live scope depth. The depth counter
	// starts here and must never drop below it.
	BaseDepth uint32 = 1
)
