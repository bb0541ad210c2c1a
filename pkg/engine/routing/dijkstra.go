package routing

import (
	"math"

	"github.com/examallot/router/pkg/datastructure"
)

// ShortestPaths runs a single-source Dijkstra from src and returns the
// reachable-node -> seconds map, per spec.md §4.5. It uses lazy deletion:
// a popped entry is skipped if a better distance for that node was already
// settled by a later, cheaper insert.
func ShortestPaths(g *datastructure.Graph, src datastructure.NodeID) map[datastructure.NodeID]float64 {
	dist := map[datastructure.NodeID]float64{src: 0}
	pq := datastructure.NewMinHeap[datastructure.NodeID]()
	pq.Insert(datastructure.NewPriorityQueueNode(0, src))

	for !pq.IsEmpty() {
		top, _ := pq.ExtractMin()
		u, d := top.Item(), top.Rank()
		if best, ok := dist[u]; ok && d > best {
			continue
		}
		for _, e := range g.Neighbors(u) {
			nd := d + e.Weight
			if best, ok := dist[e.To]; !ok || nd < best {
				dist[e.To] = nd
				pq.Insert(datastructure.NewPriorityQueueNode(nd, e.To))
			}
		}
	}
	return dist
}

// ShortestPathsWithParents is ShortestPaths's sibling entry point: it also
// records, for every improving relaxation, the predecessor that produced
// it. parents[src] = src.
func ShortestPathsWithParents(g *datastructure.Graph, src datastructure.NodeID) (map[datastructure.NodeID]float64, map[datastructure.NodeID]datastructure.NodeID) {
	dist := map[datastructure.NodeID]float64{src: 0}
	parents := map[datastructure.NodeID]datastructure.NodeID{src: src}
	pq := datastructure.NewMinHeap[datastructure.NodeID]()
	pq.Insert(datastructure.NewPriorityQueueNode(0, src))

	for !pq.IsEmpty() {
		top, _ := pq.ExtractMin()
		u, d := top.Item(), top.Rank()
		if best, ok := dist[u]; ok && d > best {
			continue
		}
		for _, e := range g.Neighbors(u) {
			nd := d + e.Weight
			if best, ok := dist[e.To]; !ok || nd < best {
				dist[e.To] = nd
				parents[e.To] = u
				pq.Insert(datastructure.NewPriorityQueueNode(nd, e.To))
			}
		}
	}
	return dist, parents
}

// DistanceBetween runs a full Dijkstra from src and returns the distance to
// dst, or +Inf if unreachable. Used by tests that want a ground-truth
// comparison against A*.
func DistanceBetween(g *datastructure.Graph, src, dst datastructure.NodeID) float64 {
	dist := ShortestPaths(g, src)
	if d, ok := dist[dst]; ok {
		return d
	}
	return math.Inf(1)
}
