package region

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestTracker_GrowthDoublesWhenFull verifies the buffer doubles exactly when
// a register would exceed capacity.
func TestTracker_GrowthDoublesWhenFull(t *testing.T) {
	tr := newTracker(4)
	require.Equal(t, 4, tr.capacity(), "starting capacity should be the configured floor")

	for i := 0; i < 4; i++ {
		tr.register(Ref(i + 1))
	}
	assert.Equal(t, 4, tr.capacity(), "no growth while the buffer still fits")

	tr.register(Ref(5))
	assert.Equal(t, 8, tr.capacity(), "capacity should double on the fifth register")
	assert.Equal(t, 5, tr.len())
}

// TestTracker_ShrinkAtQuarterOccupancy verifies halving triggers only when
// occupancy drops under a quarter of capacity and the halved capacity stays
// at or above the floor.
func TestTracker_ShrinkAtQuarterOccupancy(t *testing.T) {
	tr := newTracker(4)
	for i := 0; i < 16; i++ {
		tr.register(Ref(i + 1))
	}
	require.Equal(t, 16, tr.capacity())

	// len 3 < 16/4 and 16 >= 2*floor: halve once.
	tr.unregisterTail(13)
	assert.Equal(t, 8, tr.capacity(), "should halve to 8")
	assert.Equal(t, 3, tr.len())

	// len 1 < 8/4 and 8 >= 2*floor: halve again.
	tr.unregisterTail(2)
	assert.Equal(t, 4, tr.capacity(), "should halve to the floor")

	// At the floor the buffer must not shrink further.
	tr.unregisterTail(1)
	assert.Equal(t, 4, tr.capacity(), "floor prevents further shrinking")
	assert.Equal(t, 0, tr.len())
}

// TestTracker_NoShrinkAboveQuarter verifies occupancy at or above a quarter
// of capacity never shrinks the buffer.
func TestTracker_NoShrinkAboveQuarter(t *testing.T) {
	tr := newTracker(4)
	for i := 0; i < 16; i++ {
		tr.register(Ref(i + 1))
	}
	tr.unregisterTail(12) // len 4 == 16/4, not under it
	assert.Equal(t, 16, tr.capacity(), "occupancy at exactly a quarter must not shrink")
}

// TestTracker_CapacityNeverBelowLength exercises a mixed register/pop
// sequence and checks the structural invariant throughout.
func TestTracker_CapacityNeverBelowLength(t *testing.T) {
	tr := newTracker(2)
	for i := 0; i < 200; i++ {
		tr.register(Ref(i + 1))
		require.GreaterOrEqual(t, tr.capacity(), tr.len())
	}
	for tr.len() > 0 {
		tr.unregisterTail(1)
		require.GreaterOrEqual(t, tr.capacity(), tr.len())
		require.GreaterOrEqual(t, tr.capacity(), 2, "capacity never drops below the floor")
	}
}

// TestTracker_TailOrderPreserved verifies the ledger keeps registration
// order, which the collector's suffix scan depends on.
func TestTracker_TailOrderPreserved(t *testing.T) {
	tr := newTracker(4)
	for i := 0; i < 10; i++ {
		tr.register(Ref(i + 1))
	}
	tr.unregisterTail(3)
	require.Equal(t, 7, tr.len())
	for i := 0; i < 7; i++ {
		assert.Equal(t, Ref(i+1), tr.at(i))
	}
}
