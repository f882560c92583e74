package constfold

import (
	"container/heap"

	"ember/internal/ir"
)

// worklist is a set-deduplicated min-heap of instruction IDs. Popping the
// smallest ID keeps fold attempts, and therefore diagnostics, in program
// order.
type worklist struct {
	heap idHeap
	mem  map[ir.ID]bool
}

func newWorklist(capacity int) *worklist {
	return &worklist{
		heap: make(idHeap, 0, capacity),
		mem:  make(map[ir.ID]bool, capacity),
	}
}

// push enqueues id unless it is already queued.
func (w *worklist) push(id ir.ID) {
	if w.mem[id] {
		return
	}
	w.mem[id] = true
	heap.Push(&w.heap, id)
}

// pop removes and returns the smallest queued ID.
func (w *worklist) pop() ir.ID {
	id := heap.Pop(&w.heap).(ir.ID)
	delete(w.mem, id)
	return id
}

func (w *worklist) empty() bool {
	return len(w.heap) == 0
}

type idHeap []ir.ID

func (h idHeap) Len() int            { return len(h) }
func (h idHeap) Less(i, j int) bool  { return h[i] < h[j] }
func (h idHeap) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *idHeap) Push(x any)         { *h = append(*h, x.(ir.ID)) }
func (h *idHeap) Pop() any {
	old := *h
	n := len(old)
	id := old[n-1]
	*h = old[:n-1]
	return id
}
