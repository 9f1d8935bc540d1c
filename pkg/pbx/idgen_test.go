package pbx

import (
	mrand "math/rand"
	"testing"
)

func TestAllocatorDistinct(t *testing.T) {
	taken := map[string]bool{}
	a := newIDAllocator(mrand.New(mrand.NewSource(1)), func(id string) bool { return taken[id] })

	seen := map[string]bool{}
	for i := 0; i < 1000; i++ {
		id := a.next()
		if seen[id] {
			t.Fatalf("identifier %q issued twice", id)
		}
		seen[id] = true
	}
}

func TestAllocatorAvoidsGraphIdentifiers(t *testing.T) {
	// Pre-generate the sequence a seeded source produces, declare every
	// one of those identifiers as already present in the graph, and
	// check a fresh allocator over the same source skips them all.
	replay := newIDAllocator(mrand.New(mrand.NewSource(2)), func(string) bool { return false })
	taken := map[string]bool{}
	for i := 0; i < idBatchSize; i++ {
		taken[replay.next()] = true
	}

	a := newIDAllocator(mrand.New(mrand.NewSource(2)), func(id string) bool { return taken[id] })
	for i := 0; i < 50; i++ {
		if id := a.next(); taken[id] {
			t.Fatalf("allocator issued identifier %q already present in the graph", id)
		}
	}
}

func TestAllocatorDeterministicSource(t *testing.T) {
	a := newIDAllocator(mrand.New(mrand.NewSource(3)), func(string) bool { return false })
	b := newIDAllocator(mrand.New(mrand.NewSource(3)), func(string) bool { return false })

	for i := 0; i < 10; i++ {
		if x, y := a.next(), b.next(); x != y {
			t.Fatalf("identical sources diverged at %d: %q vs %q", i, x, y)
		}
	}
}

func TestAllocatorReserve(t *testing.T) {
	a := newIDAllocator(mrand.New(mrand.NewSource(4)), func(string) bool { return false })

	// Reserve the next identifier the source would produce; the
	// allocator must never hand it out.
	replay := newIDAllocator(mrand.New(mrand.NewSource(4)), func(string) bool { return false })
	reserved := replay.next()
	a.reserve(reserved)

	for i := 0; i < idBatchSize*2; i++ {
		if a.next() == reserved {
			t.Fatal("allocator issued a reserved identifier")
		}
	}
}
