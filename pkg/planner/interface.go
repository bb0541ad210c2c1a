package planner

import "github.com/examallot/router/pkg/datastructure"

// Planner is the capacity-constrained assignment strategy the session
// selects via PLANNER_VARIANT, per SPEC_FULL's "C9 ... +supplement" entry:
// the tiered greedy is the active default, the deprecated single-pass +
// local-swap variant is kept as an alternative behind the same interface.
type Planner interface {
	Allot(students []datastructure.Student, lookup datastructure.AllotmentLookup, centres map[string]*datastructure.Centre) datastructure.FinalAssignments
}

// ValidAssignment is the extension point spec.md §4.8/§9 names: it
// currently accepts every pairing unconditionally. has_wheelchair_access,
// is_female_only and the student's category are threaded through so a
// future policy has everything it needs, but no default policy beyond
// "permissive" is invented (Open Question, left as specified).
func ValidAssignment(s datastructure.Student, c *datastructure.Centre) bool {
	return true
}

// tiers groups students by their category's processing order (tier A
// general, tier B pwd, tier C female), per spec.md §4.8 step 1.
func tiers(students []datastructure.Student) [][]datastructure.Student {
	var out [3][]datastructure.Student
	for _, s := range students {
		t := s.Category.Tier()
		if t < 0 || t > 2 {
			t = 0
		}
		out[t] = append(out[t], s)
	}
	return [][]datastructure.Student{out[0], out[1], out[2]}
}
