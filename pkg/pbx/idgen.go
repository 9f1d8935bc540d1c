package pbx

import (
	"encoding/hex"
	"fmt"
	"io"
	"strings"
)

// idLength is the identifier width: 24 uppercase hex characters
// (12 random bytes).
const idLength = 24

// idBatchSize is how many candidate identifiers one refill generates.
// Checking each single candidate against the full issued set dominates
// allocation cost at scale; batching amortizes it.
const idBatchSize = 100

// idAllocator hands out collision-free identifiers for one store
// session. Uniqueness is only claimed within the session: persisted
// identifiers are read back verbatim on load and reserved here, which
// is all the mapping's uniqueness invariant needs.
type idAllocator struct {
	random io.Reader
	taken  func(string) bool // live or retired in the owning store
	issued map[string]bool   // everything this allocator ever handed out or reserved
	pool   []string
}

// newIDAllocator creates an allocator drawing entropy from random.
// taken reports identifiers the owning store already considers used.
func newIDAllocator(random io.Reader, taken func(string) bool) *idAllocator {
	return &idAllocator{
		random: random,
		taken:  taken,
		issued: map[string]bool{},
	}
}

// next pops one identifier, refilling the pool as needed.
func (a *idAllocator) next() string {
	for len(a.pool) == 0 {
		a.refill()
	}
	id := a.pool[len(a.pool)-1]
	a.pool = a.pool[:len(a.pool)-1]
	a.issued[id] = true
	return id
}

// reserve retires an identifier that arrived from outside the allocator
// (a loaded document, a stabilized graph) so it is never handed out.
func (a *idAllocator) reserve(id string) {
	a.issued[id] = true
}

// refill generates a batch of random candidates and keeps the ones that
// collide with nothing issued in this session and nothing in the graph.
// A fully colliding batch simply triggers another round.
func (a *idAllocator) refill() {
	buf := make([]byte, 12)
	for i := 0; i < idBatchSize; i++ {
		if _, err := io.ReadFull(a.random, buf); err != nil {
			// Entropy sources do not fail in practice; a broken injected
			// reader is a programming error.
			panic(fmt.Sprintf("pbx: identifier entropy source failed: %v", err))
		}
		id := strings.ToUpper(hex.EncodeToString(buf))
		if a.issued[id] || a.taken(id) {
			continue
		}
		a.pool = append(a.pool, id)
		a.issued[id] = true
	}
}
