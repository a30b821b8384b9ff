// Package idgen hands out the OrderID sequence the store uses as its
// stable object identity. Matching itself never calls into a wall clock or
// PRNG, so replicas stay deterministic; the sequence is a plain monotonic
// counter, and google/uuid is used only for the externally-visible
// reference attached to each ID for observability.
package idgen

import (
	"sync/atomic"

	"github.com/google/uuid"

	"github.com/Freetsh/freetsh-core/types"
)

// Generator hands out sequential OrderIDs plus an opaque external
// reference string for logging/indexing purposes.
type Generator struct {
	seq uint64
}

func NewGenerator() *Generator {
	return &Generator{}
}

// Next returns the next OrderID and a UUIDv4 reference string. The UUID is
// never used for ordering or comparison — only the sequence is.
func (g *Generator) Next() (types.OrderID, string) {
	n := atomic.AddUint64(&g.seq, 1)
	return types.OrderID(n), uuid.NewString()
}
