package spatialindex

import (
	"github.com/examallot/router/pkg/datastructure"
	"github.com/examallot/router/pkg/geo"
)

// Snapper maps raw (lat, lon) coordinates onto the graph, per spec.md §4.4.
// It is built once per session alongside the k-d tree and the
// main-component index, and is safe for concurrent read-only use.
type Snapper struct {
	graph      *datastructure.Graph
	tree       *KdTree
	components *datastructure.ComponentLabels
	mainIndex  *MainComponentIndex
}

func NewSnapper(g *datastructure.Graph, tree *KdTree, components *datastructure.ComponentLabels, mainIndex *MainComponentIndex) *Snapper {
	return &Snapper{graph: g, tree: tree, components: components, mainIndex: mainIndex}
}

// Snap returns the nearest connected node to (lat, lon), via the k-d tree
// when present, falling back to a full linear scan over connected nodes
// otherwise (spec.md §4.4).
func (s *Snapper) Snap(lat, lon float64) (datastructure.NodeID, bool) {
	if s.tree != nil && !s.tree.Empty() {
		return s.tree.Nearest(lat, lon)
	}
	return s.linearScanNearest(lat, lon, func(datastructure.NodeID) bool { return true })
}

// SnapK returns up to k nearest connected nodes, nearest-first.
func (s *Snapper) SnapK(lat, lon float64, k int) []datastructure.NodeID {
	if s.tree != nil && !s.tree.Empty() {
		return s.tree.NearestK(lat, lon, k)
	}
	if id, ok := s.linearScanNearest(lat, lon, func(datastructure.NodeID) bool { return true }); ok {
		return []datastructure.NodeID{id}
	}
	return nil
}

// EnsureMainComponent verifies nodeID lies in the main connected component;
// if it does not, it re-snaps via NearestInMainComponent. The session's
// build and allot operations invoke this after each Snap pick, per spec.md
// §4.4's rationale: snapping into a tiny disconnected island is a common
// source of unreachable assignments. SnapK candidates used for path
// requests are not passed through it.
func (s *Snapper) EnsureMainComponent(lat, lon float64, nodeID datastructure.NodeID) (datastructure.NodeID, bool) {
	if s.components == nil || s.components.IsMain(nodeID) {
		return nodeID, true
	}
	return s.NearestInMainComponent(lat, lon)
}

// NearestInMainComponent finds the nearest node whose component label
// equals the main component's, first via an rtree expanding-window search
// and, only if that is exhausted without a hit, via a full linear scan
// (spec.md §4.4's "empirically cheap relative to Dijkstra" fallback).
func (s *Snapper) NearestInMainComponent(lat, lon float64) (datastructure.NodeID, bool) {
	if s.mainIndex != nil {
		if id, ok := s.mainIndex.NearestWithinExpandingWindows(lat, lon, 200, 51200); ok {
			return id, true
		}
	}
	return s.linearScanNearest(lat, lon, func(id datastructure.NodeID) bool {
		return s.components == nil || s.components.IsMain(id)
	})
}

func (s *Snapper) linearScanNearest(lat, lon float64, accept func(datastructure.NodeID) bool) (datastructure.NodeID, bool) {
	var best datastructure.NodeID
	bestDist := -1.0
	found := false
	s.graph.ForEachNode(func(n datastructure.Node) {
		if !accept(n.ID) {
			return
		}
		d := geo.HaversineMeters(lat, lon, n.Lat, n.Lon)
		if !found || d < bestDist {
			best, bestDist, found = n.ID, d, true
		}
	})
	return best, found
}

// SnapDistanceMeters reports how far (lat, lon) ended up from the node it
// snapped to — used by the diagnostics operation's large_snap_count/
// avg_snap_distance_m fields (spec.md §6).
func (s *Snapper) SnapDistanceMeters(lat, lon float64, nodeID datastructure.NodeID) float64 {
	n, ok := s.graph.Node(nodeID)
	if !ok {
		return 0
	}
	return geo.HaversineMeters(lat, lon, n.Lat, n.Lon)
}
