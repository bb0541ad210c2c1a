package routing

import (
	"github.com/examallot/router/pkg/datastructure"
	"github.com/examallot/router/pkg/geo"
)

// MaxExpansions is the hard iteration cap on A* (both variants), per
// spec.md §4.7/§5.
const MaxExpansions = 100000

func heuristic(g *datastructure.Graph, from, to datastructure.NodeID) float64 {
	fn, ok1 := g.Node(from)
	tn, ok2 := g.Node(to)
	if !ok1 || !ok2 {
		return 0
	}
	return geo.HaversineMeters(fn.Lat, fn.Lon, tn.Lat, tn.Lon) / geo.MaxSpeedMPS
}

// ShortestPath runs point-to-point A* from src to dst with the
// time-admissible heuristic of spec.md §4.7. It returns the path as a
// sequence of node ids (inclusive of both ends), or nil if no path was
// found within MaxExpansions node expansions.
func ShortestPath(g *datastructure.Graph, src, dst datastructure.NodeID) []datastructure.NodeID {
	if src == dst {
		if _, ok := g.Node(src); ok {
			return []datastructure.NodeID{src}
		}
		return nil
	}

	gScore := map[datastructure.NodeID]float64{src: 0}
	cameFrom := map[datastructure.NodeID]datastructure.NodeID{}
	closed := map[datastructure.NodeID]bool{}

	open := datastructure.NewMinHeap[datastructure.NodeID]()
	open.Insert(datastructure.NewPriorityQueueNode(heuristic(g, src, dst), src))

	expansions := 0
	for !open.IsEmpty() && expansions < MaxExpansions {
		top, _ := open.ExtractMin()
		cur := top.Item()
		if closed[cur] {
			continue
		}
		closed[cur] = true
		expansions++

		if cur == dst {
			return reconstructPath(cameFrom, src, dst)
		}

		for _, e := range g.Neighbors(cur) {
			if closed[e.To] {
				continue
			}
			tentative := gScore[cur] + e.Weight
			if best, ok := gScore[e.To]; ok && tentative >= best {
				continue
			}
			gScore[e.To] = tentative
			cameFrom[e.To] = cur
			f := tentative + heuristic(g, e.To, dst)
			open.Insert(datastructure.NewPriorityQueueNode(f, e.To))
		}
	}
	return nil
}

func reconstructPath(cameFrom map[datastructure.NodeID]datastructure.NodeID, src, dst datastructure.NodeID) []datastructure.NodeID {
	path := []datastructure.NodeID{dst}
	cur := dst
	for cur != src {
		prev, ok := cameFrom[cur]
		if !ok {
			return nil
		}
		path = append(path, prev)
		cur = prev
	}
	// reverse in place
	for i, j := 0, len(path)-1; i < j; i, j = i+1, j-1 {
		path[i], path[j] = path[j], path[i]
	}
	return path
}

// K×K candidate retry: when callers provide coordinates rather than node
// ids, both endpoints are snapped to their K nearest connected nodes and
// combinations are tried student-outer, centre-inner until one yields a
// non-empty path, per spec.md §4.7.
func ShortestPathKxK(g *datastructure.Graph, srcCandidates, dstCandidates []datastructure.NodeID, bidirectional bool) []datastructure.NodeID {
	search := ShortestPath
	if bidirectional {
		search = ShortestPathBidirectional
	}
	for _, s := range srcCandidates {
		for _, d := range dstCandidates {
			if path := search(g, s, d); len(path) > 0 {
				return path
			}
		}
	}
	return nil
}

// PathCoordinates converts a node-id path into (lat, lon) pairs.
func PathCoordinates(g *datastructure.Graph, path []datastructure.NodeID) [][2]float64 {
	out := make([][2]float64, 0, len(path))
	for _, id := range path {
		if n, ok := g.Node(id); ok {
			out = append(out, [2]float64{n.Lat, n.Lon})
		}
	}
	return out
}
