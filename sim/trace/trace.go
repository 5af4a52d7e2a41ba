package trace

// TraceLevel controls the verbosity of tracing.
type TraceLevel string

const (
	// TraceLevelNone disables tracing (zero overhead).
	TraceLevelNone TraceLevel = "none"
	// TraceLevelDecisions captures state transitions and scheduling decisions.
	TraceLevelDecisions TraceLevel = "decisions"
	// TraceLevelEvents additionally captures every executed event.
	TraceLevelEvents TraceLevel = "events"
)

// validTraceLevels maps accepted trace level strings.
var validTraceLevels = map[TraceLevel]bool{
	TraceLevelNone:      true,
	TraceLevelDecisions: true,
	TraceLevelEvents:    true,
	"":                  true, // empty defaults to none
}

// IsValidTraceLevel returns true if the given level string is a recognized trace level.
func IsValidTraceLevel(level string) bool {
	return validTraceLevels[TraceLevel(level)]
}

// TraceConfig controls trace collection behavior.
type TraceConfig struct {
	Level TraceLevel
}

// SimulationTrace collects records during a simulation run.
type SimulationTrace struct {
	RunID       string
	Config      TraceConfig
	Events      []EventRecord
	Transitions []TransitionRecord
	Decisions   []DecisionRecord

	nextIndex int
}

// NewSimulationTrace creates a SimulationTrace ready for recording.
func NewSimulationTrace(runID string, config TraceConfig) *SimulationTrace {
	return &SimulationTrace{
		RunID:       runID,
		Config:      config,
		Events:      make([]EventRecord, 0),
		Transitions: make([]TransitionRecord, 0),
		Decisions:   make([]DecisionRecord, 0),
	}
}

// RecordsEvents reports whether every executed event should be recorded.
func (st *SimulationTrace) RecordsEvents() bool {
	return st != nil && st.Config.Level == TraceLevelEvents
}

// RecordEvent appends an executed-event record.
func (st *SimulationTrace) RecordEvent(record EventRecord) {
	st.Events = append(st.Events, record)
}

// RecordTransition appends a state transition record and assigns its Index.
func (st *SimulationTrace) RecordTransition(record TransitionRecord) {
	record.Index = st.nextIndex
	st.nextIndex++
	st.Transitions = append(st.Transitions, record)
}

// RecordDecision appends a scheduling decision record and assigns its Index.
func (st *SimulationTrace) RecordDecision(record DecisionRecord) {
	record.Index = st.nextIndex
	st.nextIndex++
	st.Decisions = append(st.Decisions, record)
}

// Timeline merges transitions and selecting decisions in recording order.
// Idle decisions (no thread selected) are left out.
func (st *SimulationTrace) Timeline() []TimelineEntry {
	if st == nil {
		return nil
	}
	out := make([]TimelineEntry, 0, len(st.Transitions)+len(st.Decisions))
	i, j := 0, 0
	for i < len(st.Transitions) || j < len(st.Decisions) {
		if j >= len(st.Decisions) || (i < len(st.Transitions) && st.Transitions[i].Index < st.Decisions[j].Index) {
			out = append(out, TimelineEntry{Transition: &st.Transitions[i]})
			i++
			continue
		}
		if st.Decisions[j].Selected {
			out = append(out, TimelineEntry{Decision: &st.Decisions[j]})
		}
		j++
	}
	return out
}
