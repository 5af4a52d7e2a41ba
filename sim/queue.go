// Implements the ready-queue structures the schedulers are built from: a plain
// FIFO of thread refs and a stable priority queue keyed by an integer.

package sim

import (
	"container/heap"
	"fmt"
	"strings"
)

// ReadyQueue is a FIFO queue of threads waiting for the CPU.
type ReadyQueue struct {
	queue []ThreadRef
}

// Enqueue adds a thread to the back of the queue.
func (rq *ReadyQueue) Enqueue(ref ThreadRef) {
	rq.queue = append(rq.queue, ref)
}

// Dequeue removes the thread at the front of the queue.
// Returns NoThread if the queue is empty.
func (rq *ReadyQueue) Dequeue() ThreadRef {
	if len(rq.queue) == 0 {
		return NoThread
	}
	ref := rq.queue[0]
	rq.queue = rq.queue[1:]
	return ref
}

// Peek returns the thread at the front of the queue without removing it.
// Returns NoThread if the queue is empty.
func (rq *ReadyQueue) Peek() ThreadRef {
	if len(rq.queue) == 0 {
		return NoThread
	}
	return rq.queue[0]
}

// Len returns the number of threads in the queue.
func (rq *ReadyQueue) Len() int {
	return len(rq.queue)
}

func (rq *ReadyQueue) String() string {
	var sb strings.Builder
	sb.WriteString("[")
	for i, ref := range rq.queue {
		sb.WriteString(fmt.Sprint(int(ref)))
		if i < len(rq.queue)-1 {
			sb.WriteString(" ")
		}
	}
	sb.WriteString("]")
	return sb.String()
}

type stableEntry struct {
	key int64
	seq uint64
	ref ThreadRef
}

// StablePriorityQueue pops the entry with the smallest key; entries with equal
// keys come out in insertion order.
type StablePriorityQueue struct {
	entries []stableEntry
	nextSeq uint64
}

// Push inserts ref with the given key.
func (pq *StablePriorityQueue) Push(key int64, ref ThreadRef) {
	heap.Push((*stableHeap)(pq), stableEntry{key: key, seq: pq.nextSeq, ref: ref})
	pq.nextSeq++
}

// Pop removes and returns the entry with the smallest key.
// Returns NoThread if the queue is empty.
func (pq *StablePriorityQueue) Pop() ThreadRef {
	if len(pq.entries) == 0 {
		return NoThread
	}
	return heap.Pop((*stableHeap)(pq)).(stableEntry).ref
}

// Peek returns the entry Pop would return without removing it.
func (pq *StablePriorityQueue) Peek() ThreadRef {
	if len(pq.entries) == 0 {
		return NoThread
	}
	return pq.entries[0].ref
}

// Len returns the number of queued entries.
func (pq *StablePriorityQueue) Len() int {
	return len(pq.entries)
}

// stableHeap adapts StablePriorityQueue to heap.Interface.
type stableHeap StablePriorityQueue

func (h *stableHeap) Len() int { return len(h.entries) }

func (h *stableHeap) Less(i, j int) bool {
	a, b := h.entries[i], h.entries[j]
	if a.key != b.key {
		return a.key < b.key
	}
	return a.seq < b.seq
}

func (h *stableHeap) Swap(i, j int) { h.entries[i], h.entries[j] = h.entries[j], h.entries[i] }

func (h *stableHeap) Push(x any) { h.entries = append(h.entries, x.(stableEntry)) }

func (h *stableHeap) Pop() any {
	old := h.entries
	n := len(old)
	item := old[n-1]
	h.entries = old[0 : n-1]
	return item
}
