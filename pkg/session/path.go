package session

import (
	"time"

	"github.com/twpayne/go-polyline"

	"github.com/examallot/router/pkg/datastructure"
	"github.com/examallot/router/pkg/engine/routing"
	"github.com/examallot/router/pkg/util"
)

// PathTiming is the timing breakdown spec.md §6 requires for `path`.
type PathTiming struct {
	AstarMS int64
	TotalMS int64
}

// PathResult is the `path` operation's response: a polyline of
// (lat, lon) pairs, empty if no route was found (spec.md §6), plus a
// Google-encoded-polyline rendering of the same points for callers that
// prefer the compact wire format.
type PathResult struct {
	Path            [][2]float64
	EncodedPolyline string
	Timing          PathTiming
}

func encodePolyline(path [][2]float64) string {
	if len(path) == 0 {
		return ""
	}
	coords := make([][]float64, len(path))
	for i, p := range path {
		coords[i] = []float64{p[0], p[1]}
	}
	return string(polyline.EncodeCoords(coords))
}

// PathByNodes runs C8 directly between two known node ids.
func (s *Session) PathByNodes(studentNode, centreNode datastructure.NodeID) (PathResult, error) {
	total := time.Now()
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.graph == nil {
		return PathResult{}, util.WrapErrorf(util.ErrBadParamInput, util.ErrBadParamInput, "path requested before a successful build")
	}

	astarStart := time.Now()
	res := s.route(studentNode, centreNode)
	res.Timing = PathTiming{AstarMS: time.Since(astarStart).Milliseconds(), TotalMS: time.Since(total).Milliseconds()}
	return res, nil
}

// PathByCoordinates snaps both endpoints to their K nearest connected nodes
// (spec.md §4.7's K=5 default) and runs the K×K retry policy.
func (s *Session) PathByCoordinates(studentLat, studentLon, centreLat, centreLon float64) (PathResult, error) {
	total := time.Now()
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.graph == nil || s.snapper == nil {
		return PathResult{}, util.WrapErrorf(util.ErrBadParamInput, util.ErrBadParamInput, "path requested before a successful build")
	}

	k := s.snapK()
	srcCandidates := s.snapper.SnapK(studentLat, studentLon, k)
	dstCandidates := s.snapper.SnapK(centreLat, centreLon, k)
	if len(srcCandidates) == 0 || len(dstCandidates) == 0 {
		return PathResult{Timing: PathTiming{TotalMS: time.Since(total).Milliseconds()}}, nil
	}

	astarStart := time.Now()
	path := routing.ShortestPathKxK(s.graph, srcCandidates, dstCandidates, s.cfg.AstarBidirectional)
	astarMS := time.Since(astarStart).Milliseconds()

	coords := roundCoordinates(routing.PathCoordinates(s.graph, path))
	return PathResult{
		Path:            coords,
		EncodedPolyline: encodePolyline(coords),
		Timing:          PathTiming{AstarMS: astarMS, TotalMS: time.Since(total).Milliseconds()},
	}, nil
}

func (s *Session) route(src, dst datastructure.NodeID) PathResult {
	var path []datastructure.NodeID
	if s.cfg.AstarBidirectional {
		path = routing.ShortestPathBidirectional(s.graph, src, dst)
	} else {
		path = routing.ShortestPath(s.graph, src, dst)
	}
	coords := roundCoordinates(routing.PathCoordinates(s.graph, path))
	return PathResult{Path: coords, EncodedPolyline: encodePolyline(coords)}
}

// roundCoordinates rounds each point to 6 decimal places (~0.11 m at the
// equator); the graph's own node coordinates are not rounded.
func roundCoordinates(coords [][2]float64) [][2]float64 {
	for i, p := range coords {
		coords[i] = [2]float64{util.RoundFloat(p[0], 6), util.RoundFloat(p[1], 6)}
	}
	return coords
}
