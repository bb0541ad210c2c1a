package concurrent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWorkerPoolProcessesEveryJobExactlyOnce(t *testing.T) {
	wp := NewWorkerPool[int, int](4, 16)
	wp.Start(func(job int) int { return job * job })

	const n = 50
	go func() {
		for i := 0; i < n; i++ {
			wp.AddJob(i)
		}
		wp.Close()
	}()

	seen := make(map[int]bool, n)
	for res := range wp.CollectResults() {
		root := 0
		for root*root != res {
			root++
		}
		assert.False(t, seen[root], "job %d result collected twice", root)
		seen[root] = true
	}
	assert.Len(t, seen, n)
}

func TestWorkerPoolWaitReturnsAfterAllWorkersDone(t *testing.T) {
	wp := NewWorkerPool[int, int](2, 4)
	wp.Start(func(job int) int { return job })

	go func() {
		for i := 0; i < 8; i++ {
			wp.AddJob(i)
		}
		wp.Close()
	}()

	drained := 0
	for range wp.CollectResults() {
		drained++
	}
	wp.Wait()
	assert.Equal(t, 8, drained)
}
