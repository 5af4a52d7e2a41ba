package sim

import (
	"container/heap"
	"errors"
)

// ErrEmptyQueue is returned when popping from an empty EventQueue.
var ErrEmptyQueue = errors.New("event queue is empty")

// EventQueue is a priority queue of pending events with a strict total order:
// timestamp first, then creation sequence. Events sharing a timestamp come out
// in the order they were created, so a replay is deterministic.
type EventQueue struct {
	events []*Event
}

// NewEventQueue creates an empty event queue.
func NewEventQueue() *EventQueue {
	q := &EventQueue{
		events: make([]*Event, 0),
	}
	heap.Init(q)
	return q
}

// Len implements heap.Interface
func (q *EventQueue) Len() int {
	return len(q.events)
}

// Less implements heap.Interface.
// Order by: timestamp → sequence number
func (q *EventQueue) Less(i, j int) bool {
	ei, ej := q.events[i], q.events[j]
	if ei.Time != ej.Time {
		return ei.Time < ej.Time
	}
	return ei.Seq < ej.Seq
}

// Swap implements heap.Interface
func (q *EventQueue) Swap(i, j int) {
	q.events[i], q.events[j] = q.events[j], q.events[i]
}

// Push implements heap.Interface. Use Schedule instead.
func (q *EventQueue) Push(x any) {
	q.events = append(q.events, x.(*Event))
}

// Pop implements heap.Interface. Use PopNext instead.
func (q *EventQueue) Pop() any {
	old := q.events
	n := len(old)
	item := old[n-1]
	old[n-1] = nil
	q.events = old[0 : n-1]
	return item
}

// Schedule adds an event to the queue.
func (q *EventQueue) Schedule(e *Event) {
	if e == nil {
		panic("EventQueue.Schedule: event must not be nil")
	}
	heap.Push(q, e)
}

// PopNext removes and returns the earliest event.
func (q *EventQueue) PopNext() (*Event, error) {
	if q.Len() == 0 {
		return nil, ErrEmptyQueue
	}
	return heap.Pop(q).(*Event), nil
}

// Peek returns the next event without removing it, nil when empty.
func (q *EventQueue) Peek() *Event {
	if q.Len() == 0 {
		return nil
	}
	return q.events[0]
}
