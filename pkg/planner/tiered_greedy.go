package planner

import (
	"container/heap"

	"github.com/examallot/router/pkg/datastructure"
)

// candidateHeap is a container/heap min-heap of AssignmentCandidate ordered
// by Seconds, with a deterministic secondary key on CentreID (then
// StudentID) breaking exact ties — spec.md §4.8 permits implementations to
// add a deterministic tie-break without changing correctness; this is the
// one SPEC_FULL's Open Questions section records as the chosen policy.
type candidateHeap []datastructure.AssignmentCandidate

func (h candidateHeap) Len() int { return len(h) }
func (h candidateHeap) Less(i, j int) bool {
	if h[i].Seconds != h[j].Seconds {
		return h[i].Seconds < h[j].Seconds
	}
	if h[i].CentreID != h[j].CentreID {
		return h[i].CentreID < h[j].CentreID
	}
	return h[i].StudentID < h[j].StudentID
}
func (h candidateHeap) Swap(i, j int)      { h[i], h[j] = h[j], h[i] }
func (h *candidateHeap) Push(x any)        { *h = append(*h, x.(datastructure.AssignmentCandidate)) }
func (h *candidateHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// TieredGreedy is the active allotment policy: a tiered, distance-first,
// capacity-constrained greedy match, per spec.md §4.8.
type TieredGreedy struct{}

func NewTieredGreedy() *TieredGreedy { return &TieredGreedy{} }

func (p *TieredGreedy) Allot(students []datastructure.Student, lookup datastructure.AllotmentLookup, centres map[string]*datastructure.Centre) datastructure.FinalAssignments {
	assignments := make(datastructure.FinalAssignments)
	assigned := make(map[string]bool)

	for _, tier := range tiers(students) {
		if len(tier) == 0 {
			continue
		}

		h := &candidateHeap{}
		heap.Init(h)
		for _, s := range tier {
			byCentre, ok := lookup[s.SnappedNodeID]
			if !ok {
				continue
			}
			for centreID, seconds := range byCentre {
				c, ok := centres[centreID]
				if !ok || !ValidAssignment(s, c) {
					continue
				}
				heap.Push(h, datastructure.AssignmentCandidate{
					Seconds:   seconds,
					StudentID: s.StudentID,
					CentreID:  centreID,
				})
			}
		}

		for h.Len() > 0 {
			cand := heap.Pop(h).(datastructure.AssignmentCandidate)
			if assigned[cand.StudentID] {
				continue
			}
			c, ok := centres[cand.CentreID]
			if !ok || !c.HasCapacity() {
				continue
			}
			assignments[cand.StudentID] = cand.CentreID
			assigned[cand.StudentID] = true
			c.CurrentLoad++
		}
	}

	return assignments
}
