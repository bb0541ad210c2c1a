package routing

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/examallot/router/pkg/datastructure"
)

func lineGraph(n int) *datastructure.Graph {
	g := datastructure.NewGraph()
	for i := 1; i <= n; i++ {
		g.AddNode(datastructure.Node{ID: datastructure.NodeID(i), Lat: float64(i), Lon: 0})
	}
	for i := 1; i < n; i++ {
		g.AddEdge(datastructure.NodeID(i), datastructure.NodeID(i+1), 1)
		g.AddEdge(datastructure.NodeID(i+1), datastructure.NodeID(i), 1)
	}
	return g
}

func TestRunParallelSSSPAggregatesEveryCentre(t *testing.T) {
	g := lineGraph(10)
	jobs := []CentreJob{
		{CentreID: "a", Source: 1},
		{CentreID: "b", Source: 5},
		{CentreID: "c", Source: 10},
	}

	results, _ := RunParallelSSSP(g, jobs, 3)
	assert.Len(t, results, 3)

	byID := make(map[string]CentreResult, len(results))
	for _, r := range results {
		byID[r.CentreID] = r
	}

	assert.True(t, byID["a"].OK)
	assert.Equal(t, 9.0, byID["a"].Distances[10])
	assert.True(t, byID["b"].OK)
	assert.Equal(t, 4.0, byID["b"].Distances[1])
	assert.True(t, byID["c"].OK)
	assert.Equal(t, 0.0, byID["c"].Distances[10])
}

func TestRunParallelSSSPEmptyJobs(t *testing.T) {
	g := lineGraph(5)
	results, elapsed := RunParallelSSSP(g, nil, 4)
	assert.Nil(t, results)
	assert.GreaterOrEqual(t, elapsed.Nanoseconds(), int64(0))
}

func TestSpeedupZeroWallClock(t *testing.T) {
	assert.Equal(t, 0.0, Speedup(nil, 0))
}
