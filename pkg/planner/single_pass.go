package planner

import (
	"sort"

	"github.com/examallot/router/pkg/datastructure"
	"github.com/examallot/router/pkg/geo"
)

// SinglePass is the deprecated single-pass allotment policy retained as an
// alternative per spec.md §4.8: iterate students tier-by-tier, assign each
// to the minimum-distance centre with remaining capacity (a 20 m euclidean
// tie-break, then a capacity-headroom preference), then run a bounded
// local-swap 2-opt post-pass.
type SinglePass struct {
	// TieBreakMetres is the straight-line-distance window within which two
	// candidate centres with equal travel times are treated as tied, per
	// spec.md §4.8.
	TieBreakMetres float64
	// SwapWindow bounds the local-swap post-pass to at most
	// SwapWindow x SwapWindow student pairs per centre pair.
	SwapWindow int
}

func NewSinglePass() *SinglePass {
	return &SinglePass{TieBreakMetres: 20, SwapWindow: 40}
}

func (p *SinglePass) Allot(students []datastructure.Student, lookup datastructure.AllotmentLookup, centres map[string]*datastructure.Centre) datastructure.FinalAssignments {
	assignments := make(datastructure.FinalAssignments)

	for _, tier := range tiers(students) {
		for _, s := range tier {
			byCentre, ok := lookup[s.SnappedNodeID]
			if !ok {
				continue
			}
			best, bestSeconds, found := p.pickCentre(s, byCentre, centres)
			if !found {
				continue
			}
			assignments[s.StudentID] = best
			centres[best].CurrentLoad++
			_ = bestSeconds
		}
	}

	p.localSwap(students, assignments, lookup, centres)
	return assignments
}

// pickCentre chooses the minimum-travel-time open centre for s. A centre is
// tied with the fastest one only if its travel time is exactly equal and its
// straight-line distance to s is within TieBreakMetres of the fastest one's;
// among tied candidates the one with more remaining capacity headroom wins.
func (p *SinglePass) pickCentre(s datastructure.Student, byCentre map[string]float64, centres map[string]*datastructure.Centre) (string, float64, bool) {
	type cand struct {
		id      string
		seconds float64
		metres  float64
		headroom int
	}
	var all []cand
	for centreID, seconds := range byCentre {
		c, ok := centres[centreID]
		if !ok || !c.HasCapacity() || !ValidAssignment(s, c) {
			continue
		}
		metres := geo.HaversineMeters(s.Lat, s.Lon, c.Lat, c.Lon)
		all = append(all, cand{id: centreID, seconds: seconds, metres: metres, headroom: int(c.MaxCapacity - c.CurrentLoad)})
	}
	if len(all) == 0 {
		return "", 0, false
	}
	sort.Slice(all, func(i, j int) bool { return all[i].seconds < all[j].seconds })

	best := all[0]
	// collect every candidate tied with the best within TieBreakMetres and
	// prefer the one with the largest capacity headroom.
	tied := []cand{best}
	for _, c := range all[1:] {
		if c.seconds != best.seconds {
			continue
		}
		if absF(c.metres-best.metres) <= p.TieBreakMetres {
			tied = append(tied, c)
		}
	}
	winner := tied[0]
	for _, c := range tied[1:] {
		if c.headroom > winner.headroom {
			winner = c
		}
	}
	return winner.id, winner.seconds, true
}

func absF(v float64) float64 {
	if v < 0 {
		return -v
	}
	return v
}

// localSwap is the 2-opt post-pass of spec.md §4.8: for every pair of
// centres, examine up to SwapWindow x SwapWindow student pairs and swap
// their assignments whenever doing so lowers total assigned distance. This
// is monotonic: it never increases total cost (testable property #9).
func (p *SinglePass) localSwap(students []datastructure.Student, assignments datastructure.FinalAssignments, lookup datastructure.AllotmentLookup, centres map[string]*datastructure.Centre) {
	byID := make(map[string]datastructure.Student, len(students))
	for _, s := range students {
		byID[s.StudentID] = s
	}

	byCentreStudents := make(map[string][]string)
	for studentID, centreID := range assignments {
		byCentreStudents[centreID] = append(byCentreStudents[centreID], studentID)
	}

	centreIDs := make([]string, 0, len(byCentreStudents))
	for id := range byCentreStudents {
		centreIDs = append(centreIDs, id)
	}
	sort.Strings(centreIDs)

	distTo := func(studentID, centreID string) (float64, bool) {
		s := byID[studentID]
		byCentre, ok := lookup[s.SnappedNodeID]
		if !ok {
			return 0, false
		}
		d, ok := byCentre[centreID]
		return d, ok
	}

	for i := 0; i < len(centreIDs); i++ {
		for j := i + 1; j < len(centreIDs); j++ {
			c1, c2 := centreIDs[i], centreIDs[j]
			s1s, s2s := byCentreStudents[c1], byCentreStudents[c2]

			n1 := len(s1s)
			if n1 > p.SwapWindow {
				n1 = p.SwapWindow
			}
			n2 := len(s2s)
			if n2 > p.SwapWindow {
				n2 = p.SwapWindow
			}

			for a := 0; a < n1; a++ {
				for b := 0; b < n2; b++ {
					s1, s2 := s1s[a], s2s[b]

					d11, ok1 := distTo(s1, c1)
					d22, ok2 := distTo(s2, c2)
					d12, ok3 := distTo(s1, c2)
					d21, ok4 := distTo(s2, c1)
					if !ok1 || !ok2 || !ok3 || !ok4 {
						continue
					}
					if d11+d22 > d12+d21 {
						assignments[s1] = c2
						assignments[s2] = c1
						s1s[a], s2s[b] = s2, s1
					}
				}
			}
		}
	}
}
