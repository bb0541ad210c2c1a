package session

import (
	"github.com/examallot/router/pkg/engine/routing"
	"github.com/examallot/router/pkg/util"
)

// sspCentreResult is the per-centre result shape recorded by Build/Allot
// and replayed by ParallelSSSP, per spec.md §6's `parallel-sssp` response.
type sspCentreResult struct {
	CentreID       string
	StartNode      int64
	Success        bool
	ComputationMS  int64
	ReachableNodes int
}

// ParallelSSSPResult is the `parallel-sssp` diagnostic operation's
// response, per spec.md §6: per-centre results plus an aggregate speedup
// estimate.
type ParallelSSSPResult struct {
	Centres           []sspCentreResult
	ParallelWallClockMS int64
	Speedup           float64
}

// ParallelSSSP re-runs one Dijkstra per centre from the current session
// graph, the same work Build already did, exposed separately so a caller
// can re-inspect timing and speedup without a full rebuild — the
// SPEC_FULL "supplemented features" entry grounded on the original's habit
// of logging per-centre Dijkstra timing during build_allotment_lookup().
func (s *Session) ParallelSSSP() (ParallelSSSPResult, error) {
	s.mu.RLock()
	graph := s.graph
	centres := s.centres
	s.mu.RUnlock()

	if graph == nil {
		return ParallelSSSPResult{}, util.WrapErrorf(util.ErrBadParamInput, util.ErrBadParamInput, "parallel-sssp requested before a successful build")
	}

	var jobs []routing.CentreJob
	for centreID, c := range centres {
		jobs = append(jobs, routing.CentreJob{CentreID: centreID, Source: c.SnappedNodeID})
	}

	results, wallClock := routing.RunParallelSSSP(graph, jobs, s.cfg.WorkerPoolSize)
	speedup := routing.Speedup(results, wallClock)

	out := make([]sspCentreResult, 0, len(results))
	for _, r := range results {
		out = append(out, sspCentreResult{
			CentreID:       r.CentreID,
			StartNode:      int64(r.Source),
			Success:        r.OK,
			ComputationMS:  r.WallTime.Milliseconds(),
			ReachableNodes: r.ReachableNodes,
		})
	}

	s.mu.Lock()
	s.lastSSSP = out
	s.mu.Unlock()

	return ParallelSSSPResult{
		Centres:             out,
		ParallelWallClockMS: wallClock.Milliseconds(),
		Speedup:             speedup,
	}, nil
}
