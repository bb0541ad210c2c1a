package datastructure

// PriorityQueueNode pairs a rank (the value the heap orders on) with an
// arbitrary payload. Dijkstra ranks by travel time to a node id; A* ranks
// by travel time so far plus the heuristic estimate to the goal.
type PriorityQueueNode[T any] struct {
	rank float64
	item T
}

func NewPriorityQueueNode[T any](rank float64, item T) PriorityQueueNode[T] {
	return PriorityQueueNode[T]{rank: rank, item: item}
}

func (p PriorityQueueNode[T]) Rank() float64 {
	return p.rank
}

func (p PriorityQueueNode[T]) Item() T {
	return p.item
}

// MinHeap is a binary min-heap ordered on PriorityQueueNode.rank. It
// supports only Insert/ExtractMin — callers that need to "improve" an
// entry's key (Dijkstra, A*) do so by lazy deletion:
// insert a fresh node with the better rank and skip stale pops on extract,
// per spec.md's "lazy-deletion" contract. This keeps the heap itself
// simple and comparable-key-free.
type MinHeap[T any] struct {
	items []PriorityQueueNode[T]
}

func NewMinHeap[T any]() *MinHeap[T] {
	return &MinHeap[T]{items: make([]PriorityQueueNode[T], 0)}
}

func (h *MinHeap[T]) Len() int {
	return len(h.items)
}

func (h *MinHeap[T]) IsEmpty() bool {
	return len(h.items) == 0
}

func (h *MinHeap[T]) Insert(node PriorityQueueNode[T]) {
	h.items = append(h.items, node)
	h.siftUp(len(h.items) - 1)
}

func (h *MinHeap[T]) ExtractMin() (PriorityQueueNode[T], bool) {
	if len(h.items) == 0 {
		return PriorityQueueNode[T]{}, false
	}
	root := h.items[0]
	last := len(h.items) - 1
	h.items[0] = h.items[last]
	h.items = h.items[:last]
	if len(h.items) > 0 {
		h.siftDown(0)
	}
	return root, true
}

func (h *MinHeap[T]) siftUp(i int) {
	for i > 0 {
		parent := (i - 1) / 2
		if h.items[i].rank >= h.items[parent].rank {
			break
		}
		h.items[i], h.items[parent] = h.items[parent], h.items[i]
		i = parent
	}
}

func (h *MinHeap[T]) siftDown(i int) {
	n := len(h.items)
	for {
		left, right := 2*i+1, 2*i+2
		smallest := i
		if left < n && h.items[left].rank < h.items[smallest].rank {
			smallest = left
		}
		if right < n && h.items[right].rank < h.items[smallest].rank {
			smallest = right
		}
		if smallest == i {
			return
		}
		h.items[i], h.items[smallest] = h.items[smallest], h.items[i]
		i = smallest
	}
}
