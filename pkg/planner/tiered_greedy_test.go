package planner

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/examallot/router/pkg/datastructure"
)

func centresOf(capacities map[string]uint32) map[string]*datastructure.Centre {
	out := make(map[string]*datastructure.Centre, len(capacities))
	for id, cap := range capacities {
		out[id] = &datastructure.Centre{CentreID: id, MaxCapacity: cap}
	}
	return out
}

// TestTieredGreedyScenarioS1 is spec.md §8 S1: two students, two centres,
// capacity 1 each, each student closer to a different centre.
func TestTieredGreedyScenarioS1(t *testing.T) {
	students := []datastructure.Student{
		{StudentID: "s1", SnappedNodeID: 10, Category: datastructure.CategoryGeneral},
		{StudentID: "s2", SnappedNodeID: 20, Category: datastructure.CategoryGeneral},
	}
	lookup := datastructure.AllotmentLookup{
		10: {"X": 8, "Y": 50},
		20: {"X": 50, "Y": 8},
	}
	centres := centresOf(map[string]uint32{"X": 1, "Y": 1})

	assignments := NewTieredGreedy().Allot(students, lookup, centres)

	assert.Equal(t, "X", assignments["s1"])
	assert.Equal(t, "Y", assignments["s2"])
}

// TestTieredGreedyScenarioS2 is spec.md §8 S2: one centre, capacity 2, four
// students at increasing distance. Expected: closest two assigned.
func TestTieredGreedyScenarioS2(t *testing.T) {
	students := []datastructure.Student{
		{StudentID: "s1", SnappedNodeID: 1, Category: datastructure.CategoryGeneral},
		{StudentID: "s2", SnappedNodeID: 2, Category: datastructure.CategoryGeneral},
		{StudentID: "s3", SnappedNodeID: 3, Category: datastructure.CategoryGeneral},
		{StudentID: "s4", SnappedNodeID: 4, Category: datastructure.CategoryGeneral},
	}
	lookup := datastructure.AllotmentLookup{
		1: {"C": 1},
		2: {"C": 2},
		3: {"C": 3},
		4: {"C": 4},
	}
	centres := centresOf(map[string]uint32{"C": 2})

	assignments := NewTieredGreedy().Allot(students, lookup, centres)

	assert.Equal(t, "C", assignments["s1"])
	assert.Equal(t, "C", assignments["s2"])
	_, ok3 := assignments["s3"]
	_, ok4 := assignments["s4"]
	assert.False(t, ok3)
	assert.False(t, ok4)
	assert.Len(t, assignments, 2)
}

// TestTieredGreedyScenarioS5 is spec.md §8 S5: capacity 1 at a single
// centre, two equidistant students, one general one female. General must
// win since tier A precedes tier C.
func TestTieredGreedyScenarioS5(t *testing.T) {
	students := []datastructure.Student{
		{StudentID: "general-student", SnappedNodeID: 1, Category: datastructure.CategoryGeneral},
		{StudentID: "female-student", SnappedNodeID: 2, Category: datastructure.CategoryFemale},
	}
	lookup := datastructure.AllotmentLookup{
		1: {"C": 10},
		2: {"C": 10},
	}
	centres := centresOf(map[string]uint32{"C": 1})

	assignments := NewTieredGreedy().Allot(students, lookup, centres)

	assert.Equal(t, "C", assignments["general-student"])
	_, femaleAssigned := assignments["female-student"]
	assert.False(t, femaleAssigned)
}

// TestTieredGreedyCapacityInvariant is spec.md §8 property 5: after any
// allot, no centre's assigned count exceeds its max capacity.
func TestTieredGreedyCapacityInvariant(t *testing.T) {
	r := rand.New(rand.NewSource(1))
	centres := centresOf(map[string]uint32{"A": 3, "B": 5, "C": 2})

	lookup := datastructure.AllotmentLookup{}
	students := make([]datastructure.Student, 0, 50)
	categories := []datastructure.Category{datastructure.CategoryGeneral, datastructure.CategoryPWD, datastructure.CategoryFemale}
	for i := 0; i < 50; i++ {
		node := datastructure.NodeID(i + 1)
		lookup[node] = map[string]float64{
			"A": r.Float64() * 100,
			"B": r.Float64() * 100,
			"C": r.Float64() * 100,
		}
		students = append(students, datastructure.Student{
			StudentID: fmt.Sprintf("s%d", i),
			SnappedNodeID: node,
			Category: categories[i%3],
		})
	}

	assignments := NewTieredGreedy().Allot(students, lookup, centres)

	counts := map[string]int{}
	seen := map[string]bool{}
	for student, centreID := range assignments {
		assert.False(t, seen[student], "student %s assigned more than once", student)
		seen[student] = true
		counts[centreID]++
	}
	for id, c := range centres {
		assert.LessOrEqual(t, counts[id], int(c.MaxCapacity), "centre %s over capacity", id)
	}
}

// TestTieredGreedyTierMonotonicity is spec.md §8 property 8: within one
// tier, a student assigned to c means no other open centre c' had a
// strictly smaller distance at assignment time. With a single tier and
// ample capacity, every student should land on their globally nearest
// centre.
func TestTieredGreedyTierMonotonicity(t *testing.T) {
	students := []datastructure.Student{
		{StudentID: "s1", SnappedNodeID: 1, Category: datastructure.CategoryGeneral},
		{StudentID: "s2", SnappedNodeID: 2, Category: datastructure.CategoryGeneral},
		{StudentID: "s3", SnappedNodeID: 3, Category: datastructure.CategoryGeneral},
	}
	lookup := datastructure.AllotmentLookup{
		1: {"X": 5, "Y": 50},
		2: {"X": 50, "Y": 5},
		3: {"X": 6, "Y": 7},
	}
	centres := centresOf(map[string]uint32{"X": 10, "Y": 10})

	assignments := NewTieredGreedy().Allot(students, lookup, centres)

	for _, s := range students {
		byCentre := lookup[s.SnappedNodeID]
		assignedDist := byCentre[assignments[s.StudentID]]
		for centreID, dist := range byCentre {
			if centreID == assignments[s.StudentID] {
				continue
			}
			assert.False(t, dist < assignedDist, "student %s had a closer open centre %s", s.StudentID, centreID)
		}
	}
}

func TestTieredGreedyStudentAbsentFromLookupContributesNoCandidates(t *testing.T) {
	students := []datastructure.Student{
		{StudentID: "s1", SnappedNodeID: 999, Category: datastructure.CategoryGeneral},
	}
	lookup := datastructure.AllotmentLookup{}
	centres := centresOf(map[string]uint32{"X": 1})

	assignments := NewTieredGreedy().Allot(students, lookup, centres)
	assert.Empty(t, assignments)
}
