package routing

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestBidirectionalMatchesUnidirectionalCost checks the Design Notes'
// "either implementation is acceptable" contract: bidirectional A* returns
// the same path cost as the unidirectional search for the same pair.
func TestBidirectionalMatchesUnidirectionalCost(t *testing.T) {
	g, ids := randomTimedGraph(55, 60, 4)
	r := rand.New(rand.NewSource(3))

	for i := 0; i < 15; i++ {
		src := ids[r.Intn(len(ids))]
		dst := ids[r.Intn(len(ids))]
		if src == dst {
			continue
		}

		uniPath := ShortestPath(g, src, dst)
		biPath := ShortestPathBidirectional(g, src, dst)

		if uniPath == nil {
			assert.Nil(t, biPath)
			continue
		}
		assert.NotNil(t, biPath, "src=%d dst=%d", src, dst)
		assert.InDelta(t, pathCost(g, uniPath), pathCost(g, biPath), 1e-6, "src=%d dst=%d", src, dst)
	}
}
