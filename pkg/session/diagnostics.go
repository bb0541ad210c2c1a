package session

import (
	"github.com/examallot/router/pkg/datastructure"
	"github.com/examallot/router/pkg/spatialindex"
)

// largeSnapThresholdM is the "> 100 m" threshold spec.md §6 names for the
// diagnostics summary's large_snap_count field.
const largeSnapThresholdM = 100.0

// nearTieThresholdM is the "within 20 m" threshold spec.md §6/Glossary
// defines for the per-student near_tie flag.
const nearTieThresholdM = 20.0

// StudentDiagnostic is one entry of the diagnostics operation's
// per-student report, per spec.md §6.
type StudentDiagnostic struct {
	StudentID       string
	SnapNodeID      datastructure.NodeID
	SnapDistanceM   float64
	AssignedCentre  string
	AltDistancesM   map[string]float64
	ComponentID     int32
	ReachableCount  int
	NearTie         bool
}

// CentreSummary is the diagnostics operation's per-centre assigned count.
type CentreSummary struct {
	CentreID      string
	AssignedCount int
}

// DiagnosticsSummary is the aggregate block of spec.md §6's `diagnostics`
// response.
type DiagnosticsSummary struct {
	UnreachableCount  int
	LargeSnapCount    int
	AvgSnapDistanceM  float64
}

// DiagnosticsReport is the full `diagnostics` response, per spec.md §6.
type DiagnosticsReport struct {
	Centres  []CentreSummary
	Students []StudentDiagnostic
	Summary  DiagnosticsSummary
}

// studentDiagnosticsCache holds the last Allot call's per-student
// diagnostics, computed once at allot time (cheap — same loops allot
// already runs) and served back out by the Diagnostics operation without
// re-running SSSP.
type studentDiagnosticsCache struct {
	students []StudentDiagnostic
}

func buildDiagnosticsCache(
	students []datastructure.Student,
	centres map[string]*datastructure.Centre,
	lookup datastructure.AllotmentLookup,
	assignments datastructure.FinalAssignments,
	snapper *spatialindex.Snapper,
	components *datastructure.ComponentLabels,
) *studentDiagnosticsCache {
	out := make([]StudentDiagnostic, 0, len(students))
	for _, st := range students {
		byCentre := lookup[st.SnappedNodeID]
		alt := make(map[string]float64, len(byCentre))
		for k, v := range byCentre {
			alt[k] = v
		}

		nearTie := false
		if len(alt) >= 2 {
			best, second := secondBest(alt)
			if second-best <= nearTieThresholdM {
				nearTie = true
			}
		}

		componentID := int32(-1)
		if components != nil {
			componentID = components.Of(st.SnappedNodeID)
		}
		var snapDist float64
		if snapper != nil {
			snapDist = snapper.SnapDistanceMeters(st.Lat, st.Lon, st.SnappedNodeID)
		}

		out = append(out, StudentDiagnostic{
			StudentID:      st.StudentID,
			SnapNodeID:     st.SnappedNodeID,
			SnapDistanceM:  snapDist,
			AssignedCentre: assignments[st.StudentID],
			AltDistancesM:  alt,
			ComponentID:    componentID,
			ReachableCount: len(byCentre),
			NearTie:        nearTie,
		})
	}
	return &studentDiagnosticsCache{students: out}
}

// secondBest returns the two smallest values in m.
func secondBest(m map[string]float64) (best, second float64) {
	best, second = -1, -1
	for _, v := range m {
		switch {
		case best < 0 || v < best:
			second = best
			best = v
		case second < 0 || v < second:
			second = v
		}
	}
	return best, second
}

// Diagnostics returns the diagnostics report over the last Allot call's
// results, per spec.md §6.
func (s *Session) Diagnostics() DiagnosticsReport {
	s.mu.RLock()
	defer s.mu.RUnlock()

	counts := make(map[string]int)
	for _, centreID := range s.assignments {
		counts[centreID]++
	}
	centreSummaries := make([]CentreSummary, 0, len(s.centres))
	for id := range s.centres {
		centreSummaries = append(centreSummaries, CentreSummary{CentreID: id, AssignedCount: counts[id]})
	}

	if s.diagnostics == nil {
		return DiagnosticsReport{Centres: centreSummaries}
	}

	var unreachable, largeSnap int
	var totalSnapDist float64
	for _, d := range s.diagnostics.students {
		if d.ReachableCount == 0 {
			unreachable++
		}
		if d.SnapDistanceM > largeSnapThresholdM {
			largeSnap++
		}
		totalSnapDist += d.SnapDistanceM
	}
	avg := 0.0
	if n := len(s.diagnostics.students); n > 0 {
		avg = totalSnapDist / float64(n)
	}

	return DiagnosticsReport{
		Centres:  centreSummaries,
		Students: s.diagnostics.students,
		Summary: DiagnosticsSummary{
			UnreachableCount: unreachable,
			LargeSnapCount:   largeSnap,
			AvgSnapDistanceM: avg,
		},
	}
}
