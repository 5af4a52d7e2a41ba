package sim

import "fmt"

// NumFeedbackLevels is the number of MLFQ levels; level 0 is served first.
const NumFeedbackLevels = 10

// QuantumForLevel returns the MLFQ quantum of a level: 2^level ticks, with
// the lowest level and anything past it sharing 2^(NumFeedbackLevels-1).
func QuantumForLevel(level int) int64 {
	if level < 0 {
		panic(fmt.Sprintf("QuantumForLevel: negative level %d", level))
	}
	if level > NumFeedbackLevels-1 {
		level = NumFeedbackLevels - 1
	}
	return int64(1) << level
}

// MLFQScheduler is a multi-level feedback queue. Each level is a stable
// priority queue keyed by process priority class. A thread that has been
// granted its level's full quantum is demoted one level the next time it
// becomes ready.
//
// Runtime is charged when a thread is selected, for the whole quantum, not
// for the ticks it actually ran. A thread whose burst ends early is therefore
// demoted all the same.
type MLFQScheduler struct {
	threads   *ThreadTable
	levels    [NumFeedbackLevels]StablePriorityQueue
	timeSlice int64
}

// NewMLFQScheduler rejects any custom time slice: quanta are fixed per level.
func NewMLFQScheduler(slice int64, threads *ThreadTable) (*MLFQScheduler, error) {
	if slice != RunToCompletion {
		return nil, fmt.Errorf("%s does not take a custom time slice, got %d: %w", SchedulerMLFQ, slice, ErrInvalidTimeSlice)
	}
	return &MLFQScheduler{threads: threads, timeSlice: QuantumForLevel(0)}, nil
}

// AddToReadyQueue demotes t if it has used up its level's quantum, then
// queues it at its level by priority class.
func (s *MLFQScheduler) AddToReadyQueue(t *Thread) {
	if t.LevelRuntime >= QuantumForLevel(t.FeedbackLevel) {
		t.FeedbackLevel = min(t.FeedbackLevel+1, NumFeedbackLevels-1)
		t.LevelRuntime = 0
	}
	t.LevelQuantum = QuantumForLevel(t.FeedbackLevel)
	s.levels[t.FeedbackLevel].Push(int64(t.Priority), t.Ref)
}

// GetNextThread selects from the highest non-empty level and charges the
// thread its full quantum.
func (s *MLFQScheduler) GetNextThread() SchedulingDecision {
	for level := range s.levels {
		if s.levels[level].Len() == 0 {
			continue
		}
		ref := s.levels[level].Pop()
		t := s.threads.Get(ref)
		s.timeSlice = t.LevelQuantum
		explanation := fmt.Sprintf("Selected from queue %d (priority = %s, runtime = %d). Will run for at most %d ticks.",
			level, t.Priority, t.LevelRuntime, s.timeSlice)
		t.LevelRuntime += s.timeSlice
		return SchedulingDecision{Thread: ref, Explanation: explanation}
	}
	return SchedulingDecision{Thread: NoThread, Explanation: noThreadsExplanation}
}

// Size returns the number of queued threads across all levels.
func (s *MLFQScheduler) Size() int {
	n := 0
	for i := range s.levels {
		n += s.levels[i].Len()
	}
	return n
}

// LevelSize returns the number of threads queued at one level.
func (s *MLFQScheduler) LevelSize(level int) int {
	return s.levels[level].Len()
}

// TimeSlice is the quantum granted to the most recently selected thread.
func (s *MLFQScheduler) TimeSlice() int64 { return s.timeSlice }
