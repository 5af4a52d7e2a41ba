// Package trace provides recording of thread state transitions and scheduling
// decisions made during a simulation run.
// This package has no dependencies on sim/; it stores pure data types.
package trace

// EventRecord captures one executed simulation event.
type EventRecord struct {
	Clock     int64
	Seq       uint64
	EventType string
	ThreadID  int // -1 when the event has no subject thread
	ProcessID int // -1 when the event has no subject thread
}

// TransitionRecord captures a thread moving between lifecycle states.
type TransitionRecord struct {
	Index     int // position in the combined timeline
	Clock     int64
	EventType string
	ThreadID  int
	ProcessID int
	Priority  string
	From      string
	To        string
}

// DecisionRecord captures one scheduler invocation.
type DecisionRecord struct {
	Index       int // position in the combined timeline
	Clock       int64
	EventType   string
	Selected    bool // false when the ready queue was empty and the CPU went idle
	ThreadID    int
	ProcessID   int
	Priority    string
	Explanation string
}

// TimelineEntry is a transition or a selecting decision, in recording order.
// Exactly one of Transition and Decision is set.
type TimelineEntry struct {
	Transition *TransitionRecord
	Decision   *DecisionRecord
}

// Clock returns the simulation time of the entry.
func (e TimelineEntry) Clock() int64 {
	if e.Transition != nil {
		return e.Transition.Clock
	}
	return e.Decision.Clock
}
