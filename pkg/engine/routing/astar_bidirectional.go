package routing

import (
	"github.com/examallot/router/pkg/datastructure"
)

// ShortestPathBidirectional is the alternative A* implementation named in
// spec.md §4.7 and the Design Notes' "Duplicate code paths" entry: either
// implementation is an acceptable contract fulfilment. It alternates
// forward expansions (from src, toward dst) and backward expansions (from
// dst, over a reversed adjacency, toward src). Whenever a search expands a
// node that already carries a cost from the other search, the sum is a
// candidate src -> dst cost and the cheapest such node is kept as the
// "meeting point"; the search stops once either side pops a key no smaller
// than that cost, then stitches start -> meeting -> goal.
func ShortestPathBidirectional(g *datastructure.Graph, src, dst datastructure.NodeID) []datastructure.NodeID {
	if src == dst {
		if _, ok := g.Node(src); ok {
			return []datastructure.NodeID{src}
		}
		return nil
	}

	reverse := reverseAdjacency(g)

	fwdG := map[datastructure.NodeID]float64{src: 0}
	bwdG := map[datastructure.NodeID]float64{dst: 0}
	fwdFrom := map[datastructure.NodeID]datastructure.NodeID{}
	bwdFrom := map[datastructure.NodeID]datastructure.NodeID{}
	fwdClosed := map[datastructure.NodeID]bool{}
	bwdClosed := map[datastructure.NodeID]bool{}

	fwdOpen := datastructure.NewMinHeap[datastructure.NodeID]()
	fwdOpen.Insert(datastructure.NewPriorityQueueNode(heuristic(g, src, dst), src))
	bwdOpen := datastructure.NewMinHeap[datastructure.NodeID]()
	bwdOpen.Insert(datastructure.NewPriorityQueueNode(heuristic(g, dst, src), dst))

	var meeting datastructure.NodeID
	found := false
	best := 0.0
	expansions := 0

	for !fwdOpen.IsEmpty() && !bwdOpen.IsEmpty() && expansions < MaxExpansions {
		if top, ok := fwdOpen.ExtractMin(); ok {
			if found && top.Rank() >= best {
				break
			}
			cur := top.Item()
			if !fwdClosed[cur] {
				fwdClosed[cur] = true
				expansions++
				if bg, ok := bwdG[cur]; ok && (!found || fwdG[cur]+bg < best) {
					meeting, best, found = cur, fwdG[cur]+bg, true
				}
				for _, e := range g.Neighbors(cur) {
					if fwdClosed[e.To] {
						continue
					}
					tentative := fwdG[cur] + e.Weight
					if best, ok := fwdG[e.To]; ok && tentative >= best {
						continue
					}
					fwdG[e.To] = tentative
					fwdFrom[e.To] = cur
					fwdOpen.Insert(datastructure.NewPriorityQueueNode(tentative+heuristic(g, e.To, dst), e.To))
				}
			}
		}

		if top, ok := bwdOpen.ExtractMin(); ok {
			if found && top.Rank() >= best {
				break
			}
			cur := top.Item()
			if !bwdClosed[cur] {
				bwdClosed[cur] = true
				expansions++
				if fg, ok := fwdG[cur]; ok && (!found || fg+bwdG[cur] < best) {
					meeting, best, found = cur, fg+bwdG[cur], true
				}
				for _, e := range reverse[cur] {
					if bwdClosed[e.To] {
						continue
					}
					tentative := bwdG[cur] + e.Weight
					if best, ok := bwdG[e.To]; ok && tentative >= best {
						continue
					}
					bwdG[e.To] = tentative
					bwdFrom[e.To] = cur
					bwdOpen.Insert(datastructure.NewPriorityQueueNode(tentative+heuristic(g, e.To, src), e.To))
				}
			}
		}
	}

	if !found {
		return nil
	}

	forwardHalf := reconstructPath(fwdFrom, src, meeting)
	backwardHalf := reconstructPath(bwdFrom, dst, meeting)
	if forwardHalf == nil || backwardHalf == nil {
		return nil
	}
	// backwardHalf runs meeting -> dst reversed already (built from dst's
	// came-from map towards meeting); reverse it to meeting -> dst and
	// append, dropping the duplicated meeting node.
	for i, j := 0, len(backwardHalf)-1; i < j; i, j = i+1, j-1 {
		backwardHalf[i], backwardHalf[j] = backwardHalf[j], backwardHalf[i]
	}
	return append(forwardHalf, backwardHalf[1:]...)
}

func reverseAdjacency(g *datastructure.Graph) map[datastructure.NodeID][]datastructure.Edge {
	rev := make(map[datastructure.NodeID][]datastructure.Edge)
	g.ForEachNode(func(n datastructure.Node) {
		for _, e := range g.Neighbors(n.ID) {
			rev[e.To] = append(rev[e.To], datastructure.Edge{To: n.ID, Weight: e.Weight})
		}
	})
	return rev
}
