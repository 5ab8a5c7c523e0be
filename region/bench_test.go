package region

import (
	"testing"

	"github.com/joshuapare/scopekit/internal/format"
)

// BenchmarkScopeWithAllocations measures the per-scope cost the design
// trades completeness for: enter, a handful of allocations, collect, exit.
func BenchmarkScopeWithAllocations(b *testing.B) {
	rt := New(nil)
	b.ReportAllocs()

	for n := 0; n < b.N; n++ {
		rt.Enter()
		for k := 0; k < 8; k++ {
			rt.Malloc(format.HeaderSize + 32)
		}
		rt.Exit()
	}
}

// BenchmarkEnterExitEmpty measures the floor cost of an empty scope.
func BenchmarkEnterExitEmpty(b *testing.B) {
	rt := New(nil)
	b.ReportAllocs()

	for n := 0; n < b.N; n++ {
		rt.Enter()
		rt.Exit()
	}
}

// BenchmarkListAppend measures amortized append cost.
func BenchmarkListAppend(b *testing.B) {
	rt := New(nil)
	li := rt.NewList()
	l, err := rt.List(li)
	if err != nil {
		b.Fatal(err)
	}
	elem := rt.NewObject()
	b.ReportAllocs()

	for n := 0; n < b.N; n++ {
		if err := l.Append(elem); err != nil {
			b.Fatal(err)
		}
	}
}
