package datastructure

import (
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMinHeapExtractsInRankOrder(t *testing.T) {
	h := NewMinHeap[string]()
	ranks := map[string]float64{"a": 5, "b": 1, "c": 3, "d": 2, "e": 4}
	for k, v := range ranks {
		h.Insert(NewPriorityQueueNode(v, k))
	}

	var last float64 = -1
	for !h.IsEmpty() {
		node, ok := h.ExtractMin()
		assert.True(t, ok)
		assert.GreaterOrEqual(t, node.Rank(), last)
		last = node.Rank()
	}
}

func TestMinHeapExtractOnEmpty(t *testing.T) {
	h := NewMinHeap[int]()
	_, ok := h.ExtractMin()
	assert.False(t, ok)
}

func TestMinHeapRandomizedOrdering(t *testing.T) {
	h := NewMinHeap[int]()
	n := 500
	want := make([]float64, 0, n)
	for i := 0; i < n; i++ {
		r := rand.Float64() * 1000
		want = append(want, r)
		h.Insert(NewPriorityQueueNode(r, i))
	}

	got := make([]float64, 0, n)
	for !h.IsEmpty() {
		node, _ := h.ExtractMin()
		got = append(got, node.Rank())
	}

	for i := 1; i < len(got); i++ {
		assert.LessOrEqual(t, got[i-1], got[i])
	}
	assert.Len(t, got, n)
}
