package routing

import (
	"fmt"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/examallot/router/pkg/concurrent"
	"github.com/examallot/router/pkg/datastructure"
)

func panicToError(r interface{}) error {
	return fmt.Errorf("sssp task panicked: %v", r)
}

// CentreJob is one unit of work for the parallel SSSP coordinator: run a
// single-source Dijkstra from a centre's snapped node.
type CentreJob struct {
	CentreID string
	Source   datastructure.NodeID
}

// CentreResult is what each per-centre Dijkstra task reports back, per
// spec.md §4.6.
type CentreResult struct {
	CentreID       string
	Source         datastructure.NodeID
	Distances      datastructure.DistanceTable
	WallTime       time.Duration
	ReachableNodes int
	OK             bool
	Err            error
}

// RunParallelSSSP launches one Dijkstra per centre job on a worker pool
// sized to min(len(jobs), poolSize), per spec.md §4.6/§5: the graph is
// read-only for the duration, each task writes only to its own result, and
// the caller synchronizes before and after — no locks are held during the
// computation itself.
//
// It returns the per-centre results plus the coordinator's own wall-clock
// duration, from which the caller computes speedup = Σ(per-task time) /
// total wall clock.
func RunParallelSSSP(g *datastructure.Graph, jobs []CentreJob, poolSize int) ([]CentreResult, time.Duration) {
	if poolSize <= 0 {
		poolSize = 1
	}
	if poolSize > len(jobs) && len(jobs) > 0 {
		poolSize = len(jobs)
	}

	start := time.Now()

	if len(jobs) == 0 {
		return nil, time.Since(start)
	}

	pool := concurrent.NewWorkerPool[int, CentreResult](poolSize, len(jobs))
	pool.Start(func(idx int) (res CentreResult) {
		job := jobs[idx]
		taskStart := time.Now()
		defer func() {
			if r := recover(); r != nil {
				res = CentreResult{CentreID: job.CentreID, Source: job.Source, WallTime: time.Since(taskStart), OK: false, Err: panicToError(r)}
			}
		}()
		distances := safeShortestPaths(g, job.Source)
		return CentreResult{
			CentreID:       job.CentreID,
			Source:         job.Source,
			Distances:      distances,
			WallTime:       time.Since(taskStart),
			ReachableNodes: len(distances),
			OK:             true,
		}
	})

	var eg errgroup.Group
	eg.Go(func() error {
		for i := range jobs {
			pool.AddJob(i)
		}
		pool.Close()
		return nil
	})

	collected := make([]CentreResult, 0, len(jobs))
	eg.Go(func() error {
		for res := range pool.CollectResults() {
			collected = append(collected, res)
		}
		return nil
	})

	_ = eg.Wait()
	pool.Wait()

	return collected, time.Since(start)
}

// safeShortestPaths runs Dijkstra from src and copies the result into a
// fresh DistanceTable. It does not recover panics itself: the task closure
// in RunParallelSSSP does, reporting a panic as a failed centre result
// instead of aborting the other workers, per spec.md §7's "Per-task SSSP
// exception" policy.
func safeShortestPaths(g *datastructure.Graph, src datastructure.NodeID) datastructure.DistanceTable {
	dist := ShortestPaths(g, src)
	table := make(datastructure.DistanceTable, len(dist))
	for k, v := range dist {
		table[k] = v
	}
	return table
}

// Speedup computes Σ(per-task wall times) / total wall clock, per spec.md
// §4.6/§6.
func Speedup(results []CentreResult, totalWallClock time.Duration) float64 {
	if totalWallClock <= 0 {
		return 0
	}
	var sum time.Duration
	for _, r := range results {
		sum += r.WallTime
	}
	return float64(sum) / float64(totalWallClock)
}
