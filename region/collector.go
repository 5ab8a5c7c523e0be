package region

import "github.com/joshuapare/scopekit/internal/format"

// collect reclaims the exiting scope's blocks. Called only from Exit, before
// the depth decrement, so rt.depth is still the depth being left.
//
// The tracker suffix belonging to the exiting scope is scanned tail-first:
//
//   - depth >= current: the block belongs to this scope (or a deeper,
//     already-unreachable one). Freed when its refcount is zero; otherwise
//     left allocated and dropped from the tracker as floating.
//   - depth == EscapeDepth: the scope's single escaping object. Exempt from
//     freeing; demoted to the parent depth and re-registered afterwards.
//   - depth < current and nonzero: an ancestor's block. The LIFO ordering
//     invariant guarantees nothing relevant remains toward the head, so the
//     scan stops here.
func (rt *Runtime) collect() {
	visited := 0
	escapee := Nil

scan:
	for i := rt.tr.len() - 1; i >= 0; i-- {
		ref := rt.tr.at(i)
		b := rt.mustHeader(ref)
		depth := format.ReadDepth(b)
		switch {
		case depth >= rt.depth:
			if format.ReadRefCount(b) != 0 {
				// Floating: still referenced past its scope's
				// lifetime. Never freed, only counted.
				rt.stats.Floating++
				rt.emit(Event{Kind: EventFloat, Ref: ref, Depth: depth})
			} else {
				rt.mustFree(ref)
				rt.stats.Reclaimed++
				rt.emit(Event{Kind: EventFree, Ref: ref, Depth: depth})
			}
		case depth == EscapeDepth:
			if escapee != Nil {
				panic("region: more than one object marked to escape a single Exit")
			}
			escapee = ref
		default:
			break scan
		}
		visited++
	}

	rt.tr.unregisterTail(visited)

	if escapee != Nil {
		b := rt.mustHeader(escapee)
		format.PutDepth(b, rt.depth-1)
		rt.tr.register(escapee)
		rt.stats.Escaped++
		rt.emit(Event{Kind: EventEscape, Ref: escapee, Depth: rt.depth - 1})
	}
	rt.stats.Collections++
}

// mustFree releases a block the collector proved reclaimable.
func (rt *Runtime) mustFree(ref Ref) {
	if err := rt.ar.Free(ref); err != nil {
		panic("region: collector freeing dead reference: " + err.Error())
	}
}
