package trace

// TraceSummary aggregates statistics from a SimulationTrace.
type TraceSummary struct {
	TotalEvents       int
	TotalTransitions  int
	TotalDecisions    int
	SelectedCount     int
	IdleCount         int
	Preemptions       int
	TransitionCounts  map[string]int // "FROM->TO" → count
	EventTypeCounts   map[string]int // only populated at TraceLevelEvents
	DispatchesPerProc map[int]int    // process ID → selecting decisions
}

// Summarize computes aggregate statistics from a SimulationTrace.
// Safe for nil or empty traces (returns zero-value fields).
func Summarize(st *SimulationTrace) *TraceSummary {
	summary := &TraceSummary{
		TransitionCounts:  make(map[string]int),
		EventTypeCounts:   make(map[string]int),
		DispatchesPerProc: make(map[int]int),
	}
	if st == nil {
		return summary
	}

	summary.TotalEvents = len(st.Events)
	for _, e := range st.Events {
		summary.EventTypeCounts[e.EventType]++
	}

	summary.TotalTransitions = len(st.Transitions)
	for _, tr := range st.Transitions {
		summary.TransitionCounts[tr.From+"->"+tr.To]++
		if tr.From == "RUNNING" && tr.To == "READY" {
			summary.Preemptions++
		}
	}

	summary.TotalDecisions = len(st.Decisions)
	for _, d := range st.Decisions {
		if d.Selected {
			summary.SelectedCount++
			summary.DispatchesPerProc[d.ProcessID]++
		} else {
			summary.IdleCount++
		}
	}

	return summary
}
