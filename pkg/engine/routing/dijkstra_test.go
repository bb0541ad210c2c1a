package routing

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/examallot/router/pkg/datastructure"
)

// bellmanFord is a brute-force ground truth for small random graphs with
// nonnegative weights, used to check Dijkstra optimality (spec.md §8
// property 1).
func bellmanFord(g *datastructure.Graph, src datastructure.NodeID, nodeIDs []datastructure.NodeID) map[datastructure.NodeID]float64 {
	dist := make(map[datastructure.NodeID]float64, len(nodeIDs))
	for _, id := range nodeIDs {
		dist[id] = math.Inf(1)
	}
	dist[src] = 0

	for i := 0; i < len(nodeIDs); i++ {
		changed := false
		for _, u := range nodeIDs {
			if math.IsInf(dist[u], 1) {
				continue
			}
			for _, e := range g.Neighbors(u) {
				if nd := dist[u] + e.Weight; nd < dist[e.To] {
					dist[e.To] = nd
					changed = true
				}
			}
		}
		if !changed {
			break
		}
	}
	return dist
}

func randomGraph(t *testing.T, seed int64, n, degree int) (*datastructure.Graph, []datastructure.NodeID) {
	t.Helper()
	r := rand.New(rand.NewSource(seed))
	g := datastructure.NewGraph()
	ids := make([]datastructure.NodeID, n)
	for i := 0; i < n; i++ {
		id := datastructure.NodeID(i + 1)
		ids[i] = id
		g.AddNode(datastructure.Node{ID: id, Lat: r.Float64() * 0.1, Lon: r.Float64() * 0.1})
	}
	for i := 0; i < n; i++ {
		for d := 0; d < degree; d++ {
			j := r.Intn(n)
			if j == i {
				continue
			}
			w := 1.0 + r.Float64()*100
			g.AddEdge(ids[i], ids[j], w)
		}
	}
	return g, ids
}

func TestDijkstraMatchesBellmanFordOnRandomGraphs(t *testing.T) {
	for seed := int64(0); seed < 10; seed++ {
		g, ids := randomGraph(t, seed, 40, 4)
		src := ids[0]

		got := ShortestPaths(g, src)
		want := bellmanFord(g, src, ids)

		for _, id := range ids {
			w := want[id]
			gd, ok := got[id]
			if math.IsInf(w, 1) {
				assert.False(t, ok, "node %d should be unreachable (seed %d)", id, seed)
				continue
			}
			assert.True(t, ok, "node %d should be reachable (seed %d)", id, seed)
			assert.InDelta(t, w, gd, 1e-6, "seed=%d node=%d", seed, id)
		}
	}
}

func TestShortestPathsWithParentsReconstructsSourceSelf(t *testing.T) {
	g, ids := randomGraph(t, 1, 10, 3)
	src := ids[0]
	_, parents := ShortestPathsWithParents(g, src)
	assert.Equal(t, src, parents[src])
}

// TestOneWayEdgeIsDirectional is spec.md §8 S4: a single one-way edge A->B
// weight 10s. Dijkstra from A reaches B at 10s; from B, A is unreachable.
func TestOneWayEdgeIsDirectional(t *testing.T) {
	g := datastructure.NewGraph()
	g.AddNode(datastructure.Node{ID: 1})
	g.AddNode(datastructure.Node{ID: 2})
	g.AddEdge(1, 2, 10)

	fromA := ShortestPaths(g, 1)
	assert.Equal(t, 10.0, fromA[2])

	fromB := ShortestPaths(g, 2)
	_, reachable := fromB[1]
	assert.False(t, reachable)
}

func TestDistanceBetweenUnreachableIsInf(t *testing.T) {
	g := datastructure.NewGraph()
	g.AddNode(datastructure.Node{ID: 1})
	g.AddNode(datastructure.Node{ID: 2})
	assert.True(t, math.IsInf(DistanceBetween(g, 1, 2), 1))
}
