package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/joshuapare/scopekit/internal/arena"
	"github.com/joshuapare/scopekit/internal/format"
)

// objectSize is the smallest legal allocation: a bare header.
const objectSize = format.HeaderSize

// TestRuntime_BalancedScopesRestoreState verifies that any balanced
// Enter/Exit sequence with no allocations restores depth and tracker length.
func TestRuntime_BalancedScopesRestoreState(t *testing.T) {
	rt := New(nil)
	baseDepth := rt.Depth()
	baseLen := rt.Stats().TrackerLen

	rt.Enter()
	rt.Enter()
	rt.Exit()
	rt.Enter()
	rt.Exit()
	rt.Exit()

	assert.Equal(t, baseDepth, rt.Depth())
	assert.Equal(t, baseLen, rt.Stats().TrackerLen)
}

// TestRuntime_MallocStampsHeader verifies a fresh block carries the current
// depth, a zero refcount, and no dispatch table.
func TestRuntime_MallocStampsHeader(t *testing.T) {
	rt := New(nil)
	rt.Enter()
	ref := rt.Malloc(objectSize)

	o, err := rt.Object(ref)
	require.NoError(t, err)
	assert.Equal(t, uint32(2), o.Depth(), "stamped with the depth active at allocation")
	assert.Zero(t, o.RefCount())
	assert.Zero(t, o.TableID())
	assert.Equal(t, 1, rt.Stats().TrackerLen)
	assert.True(t, rt.Live(ref))
}

// TestRuntime_MallocBelowHeaderPanics verifies undersized requests are a
// contract violation, not a silent truncation.
func TestRuntime_MallocBelowHeaderPanics(t *testing.T) {
	rt := New(nil)
	require.Panics(t, func() { rt.Malloc(format.HeaderSize - 1) })
	require.Panics(t, func() { rt.Malloc(0) })
}

// TestRuntime_ExitAtBaseDepthPanics verifies unbalanced pairs fail loudly
// instead of corrupting the depth counter.
func TestRuntime_ExitAtBaseDepthPanics(t *testing.T) {
	rt := New(nil)
	require.Panics(t, func() { rt.Exit() })

	rt.Enter()
	rt.Exit()
	require.Panics(t, func() { rt.Exit() }, "a second Exit is still unbalanced")
}

// TestRuntime_FatalHandlerOnExhaustion verifies allocation failure reaches
// the fatal handler. The handler must not return; the test's handler panics
// so the failure is observable.
func TestRuntime_FatalHandlerOnExhaustion(t *testing.T) {
	called := false
	rt := New(&Config{
		Fatalf: func(msg string, args ...any) {
			called = true
			panic("fatal: " + msg)
		},
	})

	require.Panics(t, func() { rt.Malloc(arena.MaxBlockSize + 1) })
	assert.True(t, called, "fatal handler should fire on an impossible allocation")
}

// TestRuntime_TraceEvents verifies the hook sees the allocation and
// collection sequence in order.
func TestRuntime_TraceEvents(t *testing.T) {
	var kinds []EventKind
	rt := New(&Config{Trace: func(ev Event) { kinds = append(kinds, ev.Kind) }})

	rt.Enter()
	rt.Malloc(objectSize)
	rt.Exit()

	require.Equal(t, []EventKind{EventEnter, EventMalloc, EventFree, EventExit}, kinds)
}

// TestRuntime_StatsCounters verifies allocation counters accumulate.
func TestRuntime_StatsCounters(t *testing.T) {
	rt := New(nil)
	rt.Enter()
	rt.Malloc(objectSize)
	rt.Malloc(objectSize * 2)
	rt.Exit()

	s := rt.Stats()
	assert.Equal(t, 2, s.Allocs)
	assert.Equal(t, int64(objectSize*3), s.BytesAllocated)
	assert.Equal(t, 1, s.Collections)
	assert.Equal(t, 2, s.Reclaimed)
	assert.Zero(t, s.Floating)
}
