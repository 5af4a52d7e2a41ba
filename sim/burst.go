package sim

import "fmt"

// BurstType distinguishes CPU demand from I/O demand.
type BurstType string

const (
	BurstCPU BurstType = "CPU"
	BurstIO  BurstType = "IO"
)

// Burst is a contiguous demand for CPU or I/O service.
// Length is the remaining demand in ticks; it shrinks when a CPU burst is
// preempted part-way through.
type Burst struct {
	Type   BurstType
	Length int64
}

// Consume removes elapsed ticks from the remaining length.
// Panics if more time is consumed than the burst has left.
func (b *Burst) Consume(elapsed int64) {
	if elapsed < 0 || elapsed > b.Length {
		panic(fmt.Sprintf("Burst.Consume: elapsed %d out of range for %s burst of length %d", elapsed, b.Type, b.Length))
	}
	b.Length -= elapsed
}

func (b Burst) String() string {
	return fmt.Sprintf("%s(%d)", b.Type, b.Length)
}
