package spatialindex

import (
	"golang.org/x/exp/slices"

	"github.com/examallot/router/pkg/datastructure"
	"github.com/examallot/router/pkg/geo"
)

// metresPerDegree converts an axis-coordinate delta into a metre distance,
// for pruning the far subtree during a nearest-neighbour query. 111,000 is
// just under the length of a degree of latitude on the haversine sphere, so
// on the latitude axis the result is a lower bound. A degree of longitude
// shrinks with cos(latitude), so on the longitude axis the same factor
// overestimates away from the equator.
const metresPerDegree = 111000.0

// kdNode is one arena slot. Children are indices into the tree's node
// slice, not pointers — this gives the tree cheap value-copy semantics for
// snapshotting, per the Design Notes' "Raw-pointer k-d tree" remediation.
type kdNode struct {
	id          datastructure.NodeID
	lat, lon    float64
	axis        int // 0 = lat, 1 = lon
	left, right int // -1 if absent
}

// KdTree is a 2-D k-d tree over connected graph nodes (nodes with at least
// one outgoing edge), used to snap external coordinates onto the graph.
type KdTree struct {
	arena []kdNode
	root  int
}

type indexable struct {
	id       datastructure.NodeID
	lat, lon float64
}

// Build constructs a k-d tree over every node in g for which g.HasOutEdges
// is true, per spec.md §4.3.
func Build(g *datastructure.Graph) *KdTree {
	var pts []indexable
	g.ForEachNode(func(n datastructure.Node) {
		if g.HasOutEdges(n.ID) {
			pts = append(pts, indexable{id: n.ID, lat: n.Lat, lon: n.Lon})
		}
	})

	t := &KdTree{arena: make([]kdNode, 0, len(pts)), root: -1}
	t.root = t.build(pts, 0)
	return t
}

func (t *KdTree) build(pts []indexable, depth int) int {
	if len(pts) == 0 {
		return -1
	}
	axis := depth % 2

	slices.SortFunc(pts, func(a, b indexable) int {
		var av, bv float64
		if axis == 0 {
			av, bv = a.lat, b.lat
		} else {
			av, bv = a.lon, b.lon
		}
		switch {
		case av < bv:
			return -1
		case av > bv:
			return 1
		default:
			return 0
		}
	})

	mid := len(pts) / 2
	p := pts[mid]

	idx := len(t.arena)
	t.arena = append(t.arena, kdNode{id: p.id, lat: p.lat, lon: p.lon, axis: axis, left: -1, right: -1})

	left := t.build(pts[:mid], depth+1)
	right := t.build(pts[mid+1:], depth+1)
	t.arena[idx].left = left
	t.arena[idx].right = right
	return idx
}

// Empty reports whether the tree has no indexed nodes.
func (t *KdTree) Empty() bool {
	return t.root == -1
}

// Nearest returns the single connected node closest to (lat, lon) by
// haversine distance. Pruning on a longitude split uses metresPerDegree, so
// away from the equator a subtree holding a closer node can be skipped.
func (t *KdTree) Nearest(lat, lon float64) (datastructure.NodeID, bool) {
	if t.Empty() {
		return 0, false
	}
	best := -1
	bestDist := -1.0
	t.nearest(t.root, lat, lon, &best, &bestDist)
	return t.arena[best].id, true
}

func (t *KdTree) nearest(nodeIdx int, lat, lon float64, best *int, bestDist *float64) {
	if nodeIdx == -1 {
		return
	}
	n := &t.arena[nodeIdx]
	d := geo.HaversineMeters(lat, lon, n.lat, n.lon)
	if *best == -1 || d < *bestDist {
		*best = nodeIdx
		*bestDist = d
	}

	var coord, split float64
	if n.axis == 0 {
		coord, split = lat, n.lat
	} else {
		coord, split = lon, n.lon
	}

	near, far := n.left, n.right
	if coord > split {
		near, far = n.right, n.left
	}

	t.nearest(near, lat, lon, best, bestDist)

	axisDeltaM := (coord - split)
	if axisDeltaM < 0 {
		axisDeltaM = -axisDeltaM
	}
	axisDeltaM *= metresPerDegree
	if axisDeltaM < *bestDist {
		t.nearest(far, lat, lon, best, bestDist)
	}
}

type kCandidate struct {
	id   datastructure.NodeID
	dist float64
}

// NearestK returns up to k connected nodes closest to (lat, lon), ordered
// nearest-first, by sorting every node collected in a full tree walk.
func (t *KdTree) NearestK(lat, lon float64, k int) []datastructure.NodeID {
	if t.Empty() || k <= 0 {
		return nil
	}
	var candidates []kCandidate
	t.collect(t.root, lat, lon, &candidates)

	slices.SortFunc(candidates, func(a, b kCandidate) int {
		switch {
		case a.dist < b.dist:
			return -1
		case a.dist > b.dist:
			return 1
		default:
			return 0
		}
	})

	if k > len(candidates) {
		k = len(candidates)
	}
	out := make([]datastructure.NodeID, k)
	for i := 0; i < k; i++ {
		out[i] = candidates[i].id
	}
	return out
}

func (t *KdTree) collect(nodeIdx int, lat, lon float64, out *[]kCandidate) {
	if nodeIdx == -1 {
		return
	}
	n := &t.arena[nodeIdx]
	*out = append(*out, kCandidate{id: n.id, dist: geo.HaversineMeters(lat, lon, n.lat, n.lon)})
	t.collect(n.left, lat, lon, out)
	t.collect(n.right, lat, lon, out)
}
