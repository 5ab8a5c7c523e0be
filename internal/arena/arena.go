// Package arena stores runtime heap blocks by value inside large mapped
// chunks and addresses them with generation-checked handles. Callers never
// hold raw pointers into the chunks, so a freed block cannot be aliased: a
// stale handle fails the generation check and surfaces as ErrBadRef.
//
// Allocation is bump-only within a chunk. Freeing a block marks its slot
// dead and bumps the slot generation; the block's bytes are not recycled
// (slot table entries are). Chunks are anonymous mmap regions on unix and
// ordinary heap slices elsewhere; see map_unix.go and map_other.go.
package arena

import (
	"errors"
	"fmt"

	"github.com/joshuapare/scopekit/internal/buf"
)

// Handle identifies one block: slot index in the low 32 bits (1-based, so
// the zero Handle is never valid), slot generation in the high 32 bits.
type Handle uint64

// Nil is the invalid handle. It is also the runtime's "absent" sentinel.
const Nil Handle = 0

const (
	// DefaultChunkSize is the initial mapping size. Subsequent chunks
	// double up to maxChunkSize.
	DefaultChunkSize = 64 * 1024

	// maxChunkSize caps chunk doubling.
	maxChunkSize = 64 * 1024 * 1024

	// MaxBlockSize bounds a single allocation. Handles index blocks, not
	// bytes, so the limit exists only to reject absurd requests before
	// asking the OS for a mapping.
	MaxBlockSize = 1 << 30

	// blockAlign is the alignment of every block within a chunk.
	blockAlign = 8
)

var (
	// ErrBadRef indicates an invalid, stale, or freed handle.
	ErrBadRef = errors.New("arena: bad block handle")

	// ErrBadSize indicates an allocation size outside (0, MaxBlockSize].
	ErrBadSize = errors.New("arena: bad allocation size")

	// ErrMapFailed indicates the OS refused to map a new chunk.
	ErrMapFailed = errors.New("arena: chunk mapping failed")
)

// slot records where one block lives and whether it is still alive.
type slot struct {
	data []byte // sub-slice of a chunk; nil after the slot is retired
	gen  uint32
	live bool
}

// Stats holds arena counters for instrumentation and tests.
type Stats struct {
	Chunks     int   // mapped chunks
	ChunkBytes int64 // total mapped bytes
	BlockBytes int64 // total bytes handed out (live and dead)
	Allocs     int   // Alloc calls that succeeded
	Frees      int   // Free calls that succeeded
	Live       int   // currently live blocks
}

// Arena is a bump allocator over mapped chunks with a slot table providing
// stable, generation-checked handles. Not safe for concurrent use.
type Arena struct {
	chunks    [][]byte
	cur       []byte // active chunk (last of chunks)
	off       int    // bump offset within cur
	nextChunk int    // size of the next chunk to map

	slots     []slot
	freeSlots []uint32 // retired slot indexes available for reuse

	stats Stats
}

// New returns an empty arena. chunkSize <= 0 selects DefaultChunkSize; the
// first chunk is mapped lazily on first allocation.
func New(chunkSize int) *Arena {
	if chunkSize <= 0 {
		chunkSize = DefaultChunkSize
	}
	return &Arena{nextChunk: chunkSize}
}

// Alloc reserves a zeroed block of n bytes and returns its handle.
func (a *Arena) Alloc(n int) (Handle, error) {
	if n <= 0 || n > MaxBlockSize {
		return Nil, fmt.Errorf("%w: %d", ErrBadSize, n)
	}
	need := alignUp(n, blockAlign)
	if a.off+need > len(a.cur) {
		if err := a.grow(need); err != nil {
			return Nil, err
		}
	}
	data := a.cur[a.off : a.off+n : a.off+n]
	a.off += need

	idx, gen := a.takeSlot()
	a.slots[idx] = slot{data: data, gen: gen, live: true}

	a.stats.Allocs++
	a.stats.Live++
	a.stats.BlockBytes += int64(n)
	return makeHandle(idx, gen), nil
}

// Bytes returns the block addressed by h. The slice aliases arena memory and
// is invalidated by Free and Release.
func (a *Arena) Bytes(h Handle) ([]byte, error) {
	s, err := a.lookup(h)
	if err != nil {
		return nil, err
	}
	return s.data, nil
}

// Free retires the block addressed by h. Its bytes are zeroed so tests can
// observe reclamation, and the slot generation advances so stale handles are
// rejected from then on.
func (a *Arena) Free(h Handle) error {
	s, err := a.lookup(h)
	if err != nil {
		return err
	}
	clear(s.data)
	idx := slotIndex(h)
	s.data = nil
	s.live = false
	s.gen++
	a.freeSlots = append(a.freeSlots, idx)

	a.stats.Frees++
	a.stats.Live--
	return nil
}

// Live reports whether h still addresses a live block.
func (a *Arena) Live(h Handle) bool {
	_, err := a.lookup(h)
	return err == nil
}

// Stats returns a snapshot of the arena counters.
func (a *Arena) Stats() Stats { return a.stats }

// Release unmaps every chunk and retires every slot. The arena must not be
// used afterwards. Only tests and embedders with a bounded lifetime call
// this; the process-wide runtime owns its arena for the process lifetime.
func (a *Arena) Release() error {
	var firstErr error
	for _, c := range a.chunks {
		if err := unmapChunk(c); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	a.chunks = nil
	a.cur = nil
	a.off = 0
	a.slots = nil
	a.freeSlots = nil
	a.stats.Live = 0
	return firstErr
}

// grow maps a chunk large enough for a block of need bytes.
func (a *Arena) grow(need int) error {
	size := a.nextChunk
	if size < need {
		size = alignUp(need, blockAlign)
	}
	c, err := mapChunk(size)
	if err != nil {
		return fmt.Errorf("%w: %d bytes: %v", ErrMapFailed, size, err)
	}
	a.chunks = append(a.chunks, c)
	a.cur = c
	a.off = 0
	if a.nextChunk < maxChunkSize {
		a.nextChunk *= 2
	}
	a.stats.Chunks++
	a.stats.ChunkBytes += int64(size)
	return nil
}

// takeSlot returns a slot index and the generation to stamp into the handle,
// reusing retired slots when available.
func (a *Arena) takeSlot() (uint32, uint32) {
	if n := len(a.freeSlots); n > 0 {
		idx := a.freeSlots[n-1]
		a.freeSlots = a.freeSlots[:n-1]
		return idx, a.slots[idx].gen
	}
	a.slots = append(a.slots, slot{})
	return uint32(len(a.slots) - 1), 0
}

func (a *Arena) lookup(h Handle) (*slot, error) {
	if h == Nil {
		return nil, ErrBadRef
	}
	idx := int(slotIndex(h))
	if idx >= len(a.slots) {
		return nil, fmt.Errorf("%w: slot %d out of range", ErrBadRef, idx)
	}
	s := &a.slots[idx]
	if !s.live || s.gen != slotGen(h) {
		return nil, fmt.Errorf("%w: slot %d is stale", ErrBadRef, idx)
	}
	return s, nil
}

func makeHandle(idx, gen uint32) Handle {
	return Handle(uint64(gen)<<32 | uint64(idx+1))
}

func slotIndex(h Handle) uint32 { return uint32(h&0xFFFFFFFF) - 1 }

func slotGen(h Handle) uint32 { return uint32(h >> 32) }

func alignUp(n, align int) int {
	v, ok := buf.AddOverflowSafe(n, align-1)
	if !ok {
		return n
	}
	return v &^ (align - 1)
}
