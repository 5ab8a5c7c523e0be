package region

import (
	"fmt"
	"os"

	"github.com/joshuapare/scopekit/internal/arena"
	"github.com/joshuapare/scopekit/internal/format"
)

const (
	// DefaultTrackerCapacity is the tracker's starting capacity and its
	// shrink floor.
	DefaultTrackerCapacity = 256

	// DefaultChunkSize is the arena's initial chunk mapping size.
	DefaultChunkSize = arena.DefaultChunkSize
)

// EventKind discriminates trace events.
type EventKind uint8

const (
	EventEnter EventKind = iota
	EventExit
	EventMalloc
	EventFree
	EventFloat
	EventEscape
)

// String returns the lower-case event name used in traces.
func (k EventKind) String() string {
	switch k {
	case EventEnter:
		return "enter"
	case EventExit:
		return "exit"
	case EventMalloc:
		return "malloc"
	case EventFree:
		return "free"
	case EventFloat:
		return "float"
	case EventEscape:
		return "escape"
	default:
		return fmt.Sprintf("event(%d)", uint8(k))
	}
}

// Event is one allocation or collection occurrence, delivered to the trace
// hook as it happens.
type Event struct {
	Kind  EventKind
	Ref   Ref    // subject block; Nil for enter/exit
	Depth uint32 // region depth when the event fired
	Size  int    // block size in bytes; 0 when not applicable
}

// Stats holds runtime counters. Floating makes the documented
// leak-on-nonzero-refcount observable without changing its semantics.
type Stats struct {
	Allocs         int   // tracked blocks handed out
	BytesAllocated int64 // bytes handed out, including raw buffers
	Collections    int   // collector passes (one per Exit)
	Reclaimed      int   // blocks freed by the collector
	Floating       int   // blocks leaked with a nonzero refcount
	Escaped        int   // blocks promoted past a scope exit

	// Snapshot fields, filled by Stats().
	TrackerLen int // tracked blocks right now
	TrackerCap int // tracker capacity right now
	LiveBlocks int // live arena blocks right now
}

// Config adjusts a runtime. The zero value (or a nil *Config) selects the
// defaults the generated-code ABI assumes.
type Config struct {
	// TrackerCapacity overrides the tracker's starting capacity and
	// shrink floor. Tests use small values to exercise the growth policy.
	TrackerCapacity int

	// ChunkSize overrides the arena's initial chunk mapping size.
	ChunkSize int

	// Fatalf replaces the fatal-allocation handler. The default prints a
	// diagnostic to stderr and exits the process; there is no recovery
	// path in the ABI. A replacement must not return control to the
	// allocation site expecting a usable block.
	Fatalf func(format string, args ...any)

	// Trace receives an Event for every allocation and collection
	// occurrence. Nil disables tracing.
	Trace func(Event)
}

// Runtime is one region allocator instance: arena, tracker, and depth
// counter. Generated code normally drives the process-wide instance through
// the package-level ABI functions (see abi.go); tests and embedders create
// their own. Not safe for concurrent use.
type Runtime struct {
	ar    *arena.Arena
	tr    tracker
	depth uint32

	stats  Stats
	trace  func(Event)
	fatalf func(format string, args ...any)
}

// New creates a runtime with depth BaseDepth and an empty tracker. cfg may
// be nil for defaults.
func New(cfg *Config) *Runtime {
	trackerCap := DefaultTrackerCapacity
	chunkSize := 0
	fatalf := defaultFatalf
	var trace func(Event)
	if cfg != nil {
		if cfg.TrackerCapacity > 0 {
			trackerCap = cfg.TrackerCapacity
		}
		if cfg.ChunkSize > 0 {
			chunkSize = cfg.ChunkSize
		}
		if cfg.Fatalf != nil {
			fatalf = cfg.Fatalf
		}
		trace = cfg.Trace
	}
	return &Runtime{
		ar:     arena.New(chunkSize),
		tr:     newTracker(trackerCap),
		depth:  BaseDepth,
		trace:  trace,
		fatalf: fatalf,
	}
}

// Depth returns the current region depth.
func (rt *Runtime) Depth() uint32 { return rt.depth }

// Enter opens a nested scope. No allocation or reclamation happens here.
func (rt *Runtime) Enter() {
	rt.depth++
	rt.emit(Event{Kind: EventEnter, Depth: rt.depth})
}

// Exit closes the current scope: the collector reclaims the scope's blocks,
// then the depth drops by one. Every Exit must pair with a prior Enter;
// exiting the base scope panics rather than corrupting the depth counter.
func (rt *Runtime) Exit() {
	if rt.depth <= BaseDepth {
		panic("region: Exit without a matching Enter")
	}
	rt.collect()
	rt.depth--
	rt.emit(Event{Kind: EventExit, Depth: rt.depth})
}

// Malloc allocates a zeroed block of size bytes (header included), stamps
// its header with the current depth, and registers it in the tracker. size
// must cover at least the object header. Allocation failure is fatal.
func (rt *Runtime) Malloc(size int) Ref {
	if size < format.HeaderSize {
		panic(fmt.Sprintf("region: Malloc size %d smaller than object header (%d)",
			size, format.HeaderSize))
	}
	ref := rt.allocRaw(size)
	b := rt.mustHeader(ref)
	format.PutDepth(b, rt.depth)
	rt.tr.register(ref)

	rt.stats.Allocs++
	rt.emit(Event{Kind: EventMalloc, Ref: ref, Depth: rt.depth, Size: size})
	return ref
}

// Ret marks obj to escape the current scope and performs one Exit, then
// returns the same reference. An object already demoted below the current
// depth is returned untouched aside from the Exit. Ret must be the last
// memory operation of the scope's logical return.
func (rt *Runtime) Ret(obj Ref) Ref {
	b := rt.mustHeader(obj)
	if format.ReadDepth(b) >= rt.depth {
		format.PutDepth(b, EscapeDepth)
	}
	rt.Exit()
	return obj
}

// Stats returns a snapshot of the runtime counters.
func (rt *Runtime) Stats() Stats {
	s := rt.stats
	s.TrackerLen = rt.tr.len()
	s.TrackerCap = rt.tr.capacity()
	s.LiveBlocks = rt.ar.Stats().Live
	return s
}

// Live reports whether ref still addresses a live block. Tests use it as
// the freed-marker probe.
func (rt *Runtime) Live(ref Ref) bool { return rt.ar.Live(ref) }

// allocRaw hands out an untracked, headerless block. The list container
// owns its element buffers through this path.
func (rt *Runtime) allocRaw(size int) Ref {
	ref, err := rt.ar.Alloc(size)
	if err != nil {
		rt.fatalf("out of memory allocating %d bytes: %v", size, err)
		return Nil
	}
	rt.stats.BytesAllocated += int64(size)
	return ref
}

// header returns the raw bytes of a block, ErrBadRef-wrapped on failure.
func (rt *Runtime) header(ref Ref) ([]byte, error) {
	b, err := rt.ar.Bytes(ref)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrBadRef, err)
	}
	return b, nil
}

// mustHeader is the ABI-facing variant of header: generated code has no
// error path, so a dead reference is a contract violation.
func (rt *Runtime) mustHeader(ref Ref) []byte {
	b, err := rt.header(ref)
	if err != nil {
		panic(err.Error())
	}
	return b
}

func (rt *Runtime) emit(ev Event) {
	if rt.trace != nil {
		rt.trace(ev)
	}
}

func defaultFatalf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, "scopekit: fatal: "+msg+"\n", args...)
	os.Exit(1)
}
