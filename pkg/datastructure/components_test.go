package datastructure

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

// TestLabelComponentsSharedIFFConnected covers spec.md §8 property 7:
// two nodes share a component id iff they are connected via the stored
// adjacency closure (undirected, one-way edges still merge components).
func TestLabelComponentsSharedIFFConnected(t *testing.T) {
	g := NewGraph()
	for i := NodeID(1); i <= 6; i++ {
		g.AddNode(Node{ID: i, Lat: float64(i), Lon: float64(i)})
	}
	// component {1,2,3}: one-way edge 1->2 still merges components.
	g.AddEdge(1, 2, 10)
	g.AddEdge(2, 3, 10)
	g.AddEdge(3, 2, 10)
	// component {4,5}
	g.AddEdge(4, 5, 10)
	g.AddEdge(5, 4, 10)
	// node 6 is isolated (no adjacency at all)

	labels := LabelComponents(g)

	assert.Equal(t, labels.Of(1), labels.Of(2))
	assert.Equal(t, labels.Of(2), labels.Of(3))
	assert.Equal(t, labels.Of(4), labels.Of(5))
	assert.NotEqual(t, labels.Of(1), labels.Of(4))
	assert.Equal(t, int32(-1), labels.Of(6))
}

func TestLabelComponentsMainIsLargest(t *testing.T) {
	g := NewGraph()
	for i := NodeID(1); i <= 5; i++ {
		g.AddNode(Node{ID: i})
	}
	// small component {1,2}
	g.AddEdge(1, 2, 1)
	g.AddEdge(2, 1, 1)
	// large component {3,4,5}
	g.AddEdge(3, 4, 1)
	g.AddEdge(4, 5, 1)
	g.AddEdge(5, 3, 1)

	labels := LabelComponents(g)

	assert.True(t, labels.IsMain(3))
	assert.True(t, labels.IsMain(4))
	assert.True(t, labels.IsMain(5))
	assert.False(t, labels.IsMain(1))
	assert.False(t, labels.IsMain(2))
}

func TestLabelComponentsOneWayEdgeStillMerges(t *testing.T) {
	// S4's graph shape: a single one-way edge A->B. Undirected closure
	// must still place both nodes in the same component even though B
	// cannot reach A via directed traversal.
	g := NewGraph()
	g.AddNode(Node{ID: 1})
	g.AddNode(Node{ID: 2})
	g.AddEdge(1, 2, 10)

	labels := LabelComponents(g)
	assert.Equal(t, labels.Of(1), labels.Of(2))
	assert.NotEqual(t, int32(-1), labels.Of(1))
}
