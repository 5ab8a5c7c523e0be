package region

// Tracker growth policy. The buffer doubles when full and halves when
// occupancy drops under a quarter of capacity, but never below the floor,
// which prevents oscillation at small sizes.
const (
	trackerScaleFactor  = 2
	trackerShrinkWhen   = 4
	trackerShrinkFactor = 2
)

// tracker is the ledger of every tracked allocation in registration order.
// It is a pure append/pop-from-tail buffer with an explicit growth policy;
// it knows nothing about object semantics. The LIFO nesting of scopes keeps
// it sorted by non-decreasing depth, which is what lets the collector scan
// from the tail and stop at the first ancestor-scope entry.
type tracker struct {
	refs  []Ref
	floor int // capacity never shrinks below this
}

func newTracker(capacity int) tracker {
	return tracker{
		refs:  make([]Ref, 0, capacity),
		floor: capacity,
	}
}

func (t *tracker) len() int { return len(t.refs) }

func (t *tracker) capacity() int { return cap(t.refs) }

func (t *tracker) at(i int) Ref { return t.refs[i] }

// register appends a handle, doubling the buffer when full.
func (t *tracker) register(r Ref) {
	if len(t.refs) == cap(t.refs) {
		grown := make([]Ref, len(t.refs), cap(t.refs)*trackerScaleFactor)
		copy(grown, t.refs)
		t.refs = grown
	}
	t.refs = append(t.refs, r)
}

// unregisterTail drops the last n entries, halving the buffer when the
// remaining occupancy falls under a quarter of capacity and capacity still
// exceeds the floor after halving.
func (t *tracker) unregisterTail(n int) {
	t.refs = t.refs[:len(t.refs)-n]
	if cap(t.refs) >= t.floor*trackerShrinkFactor &&
		len(t.refs) < cap(t.refs)/trackerShrinkWhen {
		shrunk := make([]Ref, len(t.refs), cap(t.refs)/trackerShrinkFactor)
		copy(shrunk, t.refs)
		t.refs = shrunk
	}
}
