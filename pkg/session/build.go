package session

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/examallot/router/pkg/datastructure"
	"github.com/examallot/router/pkg/engine/routing"
	"github.com/examallot/router/pkg/fetcher"
	"github.com/examallot/router/pkg/osmparser"
	"github.com/examallot/router/pkg/spatialindex"
)

// CentreInput is one centre as supplied to Build, per spec.md §6's
// `build` request shape.
type CentreInput struct {
	CentreID            string
	Lat, Lon            float64
	MaxCapacity         uint32
	HasWheelchairAccess bool
	IsFemaleOnly        bool
}

// BuildTiming is the per-phase timing breakdown spec.md §6 requires in the
// `build` response.
type BuildTiming struct {
	FetchMS             int64
	BuildGraphMS        int64
	BuildKdTreeMS       int64
	DijkstraPrecomputeMS int64
	TotalMS             int64
}

// BuildResult is the `build` operation's response, per spec.md §6.
type BuildResult struct {
	NodesCount int
	EdgesCount int
	Timing     BuildTiming
}

// Build orchestrates C3 -> C2, then C2 -> C4; snaps every centre via C5;
// then runs C7 to populate the allotment lookup, per spec.md §4.9/§6. It
// holds the session's write-exclusive lock for the full mutation window so
// no reader ever observes a half-built graph (spec.md §5).
func (s *Session) Build(ctx context.Context, f fetcher.Fetcher, bbox fetcher.BBox, detail string, centres []CentreInput) (BuildResult, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	total := time.Now()

	fetchStart := time.Now()
	highwayTypes := osmparser.HighwayClassesForDetail(detail)
	doc, err := f.Fetch(ctx, bbox, highwayTypes)
	if err != nil {
		return BuildResult{}, err
	}
	fetchMS := time.Since(fetchStart).Milliseconds()

	buildStart := time.Now()
	graph, ok := osmparser.Build(doc, s.log)
	if !ok {
		graph = osmparser.BuildFallbackGrid(bbox.MinLat, bbox.MinLon, bbox.MaxLat, bbox.MaxLon, s.log)
	}
	components := datastructure.LabelComponents(graph)
	buildGraphMS := time.Since(buildStart).Milliseconds()

	kdStart := time.Now()
	tree := spatialindex.Build(graph)
	mainIndex := spatialindex.BuildMainComponentIndex(graph, components, s.log)
	snapper := spatialindex.NewSnapper(graph, tree, components, mainIndex)
	kdMS := time.Since(kdStart).Milliseconds()

	newCentres := make(map[string]*datastructure.Centre, len(centres))
	var jobs []routing.CentreJob
	for _, in := range centres {
		node, ok := snapper.Snap(in.Lat, in.Lon)
		if ok {
			node, ok = snapper.EnsureMainComponent(in.Lat, in.Lon, node)
		}
		if !ok {
			if s.log != nil {
				s.log.Warn("centre failed to snap onto any connected node", zap.String("centre_id", in.CentreID))
			}
			continue
		}
		c := &datastructure.Centre{
			CentreID:            in.CentreID,
			Lat:                 in.Lat,
			Lon:                 in.Lon,
			SnappedNodeID:       node,
			MaxCapacity:         in.MaxCapacity,
			HasWheelchairAccess: in.HasWheelchairAccess,
			IsFemaleOnly:        in.IsFemaleOnly,
		}
		newCentres[in.CentreID] = c
		jobs = append(jobs, routing.CentreJob{CentreID: in.CentreID, Source: node})
	}

	dijkstraStart := time.Now()
	results, _ := routing.RunParallelSSSP(graph, jobs, s.cfg.WorkerPoolSize)
	lookup := datastructure.NewAllotmentLookup()
	sspResults := make([]sspCentreResult, 0, len(results))
	for _, r := range results {
		if r.OK {
			lookup.Merge(r.CentreID, r.Distances)
		} else if s.log != nil {
			s.log.Warn("per-centre SSSP task failed", zap.String("centre_id", r.CentreID), zap.Error(r.Err))
		}
		sspResults = append(sspResults, sspCentreResult{
			CentreID:       r.CentreID,
			StartNode:      int64(r.Source),
			Success:        r.OK,
			ComputationMS:  r.WallTime.Milliseconds(),
			ReachableNodes: r.ReachableNodes,
		})
	}
	dijkstraMS := time.Since(dijkstraStart).Milliseconds()

	s.mu.Lock()
	s.graph = graph
	s.components = components
	s.kdtree = tree
	s.mainIndex = mainIndex
	s.snapper = snapper
	s.centres = newCentres
	s.lookup = lookup
	s.assignments = make(datastructure.FinalAssignments)
	s.lastSSSP = sspResults
	s.diagnostics = nil
	s.mu.Unlock()

	totalMS := time.Since(total).Milliseconds()
	if s.log != nil {
		s.log.Info("build completed",
			zap.Int("nodes", graph.NumNodes()), zap.Int("edges", graph.NumEdges()),
			zap.Int64("total_ms", totalMS))
	}

	return BuildResult{
		NodesCount: graph.NumNodes(),
		EdgesCount: graph.NumEdges(),
		Timing: BuildTiming{
			FetchMS:              fetchMS,
			BuildGraphMS:         buildGraphMS,
			BuildKdTreeMS:        kdMS,
			DijkstraPrecomputeMS: dijkstraMS,
			TotalMS:              totalMS,
		},
	}, nil
}
