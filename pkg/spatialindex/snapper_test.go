package spatialindex

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/examallot/router/pkg/datastructure"
)

// buildDisconnectedGraph is spec.md §8 S3's shape: a small isolated island
// near the query point, and a larger main component farther away.
func buildDisconnectedGraph() *datastructure.Graph {
	g := datastructure.NewGraph()

	// tiny island, close to the query point (0, 0).
	g.AddNode(datastructure.Node{ID: 1, Lat: 0.0001, Lon: 0.0001})
	g.AddNode(datastructure.Node{ID: 2, Lat: 0.0002, Lon: 0.0001})
	g.AddEdge(1, 2, 5)
	g.AddEdge(2, 1, 5)

	// main component, farther away but much larger.
	for i := 3; i <= 12; i++ {
		g.AddNode(datastructure.Node{ID: datastructure.NodeID(i), Lat: 1.0 + float64(i)*0.0001, Lon: 1.0})
	}
	for i := 3; i < 12; i++ {
		g.AddEdge(datastructure.NodeID(i), datastructure.NodeID(i+1), 5)
		g.AddEdge(datastructure.NodeID(i+1), datastructure.NodeID(i), 5)
	}

	return g
}

// TestSnapperMainComponentFallback is spec.md §8 S3: a raw coordinate
// nearest the tiny island snaps there first; EnsureMainComponent must
// relocate it into the main component.
func TestSnapperMainComponentFallback(t *testing.T) {
	g := buildDisconnectedGraph()
	components := datastructure.LabelComponents(g)
	tree := Build(g)
	mainIndex := BuildMainComponentIndex(g, components, nil)
	snapper := NewSnapper(g, tree, components, mainIndex)

	nodeID, ok := snapper.Snap(0, 0)
	assert.True(t, ok)
	assert.False(t, components.IsMain(nodeID), "precondition: nearest raw snap should be the tiny island")

	fixed, ok := snapper.EnsureMainComponent(0, 0, nodeID)
	assert.True(t, ok)
	assert.True(t, components.IsMain(fixed))
}

func TestSnapperEnsureMainComponentNoOpWhenAlreadyMain(t *testing.T) {
	g := buildDisconnectedGraph()
	components := datastructure.LabelComponents(g)
	tree := Build(g)
	mainIndex := BuildMainComponentIndex(g, components, nil)
	snapper := NewSnapper(g, tree, components, mainIndex)

	fixed, ok := snapper.EnsureMainComponent(1.0005, 1.0, 5)
	assert.True(t, ok)
	assert.Equal(t, datastructure.NodeID(5), fixed)
}

func TestSnapperSnapKReturnsNearestFirst(t *testing.T) {
	g := buildDisconnectedGraph()
	tree := Build(g)
	snapper := NewSnapper(g, tree, nil, nil)

	got := snapper.SnapK(0, 0, 2)
	assert.Equal(t, []datastructure.NodeID{1, 2}, got)
}

func TestSnapperLinearScanFallbackWhenNoTree(t *testing.T) {
	g := buildDisconnectedGraph()
	snapper := NewSnapper(g, nil, nil, nil)

	nodeID, ok := snapper.Snap(0, 0)
	assert.True(t, ok)
	assert.Equal(t, datastructure.NodeID(1), nodeID)
}
