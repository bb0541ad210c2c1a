package session

import (
	"time"

	"go.uber.org/zap"

	"github.com/examallot/router/pkg/datastructure"
	"github.com/examallot/router/pkg/engine/routing"
	"github.com/examallot/router/pkg/util"
)

// StudentInput is one student as supplied to Allot, per spec.md §6's
// `allot` request shape.
type StudentInput struct {
	StudentID string
	Lat, Lon  float64
	Category  datastructure.Category
}

// AllotTiming is the per-phase timing breakdown spec.md §6 requires.
type AllotTiming struct {
	SnapStudentsMS int64
	DijkstraMS     int64
	AllotmentMS    int64
	TotalMS        int64
}

// AllotResult is the `allot` operation's response, per spec.md §6.
type AllotResult struct {
	Assignments    datastructure.FinalAssignments
	DebugDistances map[string]map[string]float64
	Timing         AllotTiming
}

// Allot snaps every student via C5 with main-component fallback, refreshes
// the per-centre distance tables (re-running C6 per centre), then runs C9,
// per spec.md §4.9. It holds the write lock for the full mutation window.
func (s *Session) Allot(students []StudentInput) (AllotResult, error) {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	total := time.Now()

	s.mu.RLock()
	graph := s.graph
	snapper := s.snapper
	centres := s.centres
	components := s.components
	s.mu.RUnlock()

	if graph == nil || snapper == nil {
		return AllotResult{}, util.WrapErrorf(util.ErrBadParamInput, util.ErrBadParamInput, "allot called before a successful build")
	}

	snapStart := time.Now()
	snapped := make([]datastructure.Student, 0, len(students))
	for _, in := range students {
		node, ok := snapper.Snap(in.Lat, in.Lon)
		if !ok {
			continue
		}
		if fixed, ok := snapper.EnsureMainComponent(in.Lat, in.Lon, node); ok {
			node = fixed
		}
		snapped = append(snapped, datastructure.Student{
			StudentID:     in.StudentID,
			Lat:           in.Lat,
			Lon:           in.Lon,
			SnappedNodeID: node,
			Category:      in.Category,
		})
	}
	snapMS := time.Since(snapStart).Milliseconds()

	dijkstraStart := time.Now()
	var jobs []routing.CentreJob
	for centreID, c := range centres {
		jobs = append(jobs, routing.CentreJob{CentreID: centreID, Source: c.SnappedNodeID})
	}
	results, _ := routing.RunParallelSSSP(graph, jobs, s.cfg.WorkerPoolSize)
	lookup := datastructure.NewAllotmentLookup()
	for _, r := range results {
		if r.OK {
			lookup.Merge(r.CentreID, r.Distances)
		} else if s.log != nil {
			s.log.Warn("per-centre SSSP refresh failed during allot", zap.String("centre_id", r.CentreID), zap.Error(r.Err))
		}
	}
	dijkstraMS := time.Since(dijkstraStart).Milliseconds()

	allotStart := time.Now()
	for _, c := range centres {
		c.CurrentLoad = 0
	}
	p := s.plannerFor()
	assignments := p.Allot(snapped, lookup, centres)
	allotMS := time.Since(allotStart).Milliseconds()

	debug := make(map[string]map[string]float64, len(snapped))
	for _, st := range snapped {
		if byCentre, ok := lookup[st.SnappedNodeID]; ok {
			copyOf := make(map[string]float64, len(byCentre))
			for k, v := range byCentre {
				copyOf[k] = v
			}
			debug[st.StudentID] = copyOf
		}
	}

	s.mu.Lock()
	s.lookup = lookup
	s.assignments = assignments
	s.diagnostics = buildDiagnosticsCache(snapped, centres, lookup, assignments, snapper, components)
	s.mu.Unlock()

	totalMS := time.Since(total).Milliseconds()
	if s.log != nil {
		s.log.Info("allot completed", zap.Int("students", len(snapped)), zap.Int("assigned", len(assignments)), zap.Int64("total_ms", totalMS))
	}

	return AllotResult{
		Assignments:    assignments,
		DebugDistances: debug,
		Timing: AllotTiming{
			SnapStudentsMS: snapMS,
			DijkstraMS:     dijkstraMS,
			AllotmentMS:    allotMS,
			TotalMS:        totalMS,
		},
	}, nil
}
