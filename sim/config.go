package sim

import (
	"fmt"

	"github.com/inference-sim/cpusim/sim/trace"
)

// SimConfig groups the run parameters that are not part of the workload.
type SimConfig struct {
	Scheduler string            // "FCFS" (default), "RR", "SPN", "PRIORITY", "MLFQ"
	TimeSlice int64             // RunToCompletion unless a round robin quantum is requested
	Trace     trace.TraceConfig // what the run records for reporting
}

// DefaultSimConfig returns an FCFS configuration that records decisions.
func DefaultSimConfig() SimConfig {
	return SimConfig{
		Scheduler: SchedulerFCFS,
		TimeSlice: RunToCompletion,
		Trace:     trace.TraceConfig{Level: trace.TraceLevelDecisions},
	}
}

// Validate checks the scheduler name and trace level. Time slice compatibility
// is checked by the scheduler constructors.
func (c SimConfig) Validate() error {
	if !IsValidScheduler(c.Scheduler) {
		return fmt.Errorf("%w %q", ErrUnknownAlgorithm, c.Scheduler)
	}
	if !trace.IsValidTraceLevel(string(c.Trace.Level)) {
		return fmt.Errorf("unknown trace level %q", c.Trace.Level)
	}
	return nil
}
