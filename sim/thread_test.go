package sim

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewThread_AlternatesBurstTypes(t *testing.T) {
	th := NewThread(1, 2, PriorityBatch, 4, []int64{3, 5, 2})

	want := []*Burst{
		{Type: BurstCPU, Length: 3},
		{Type: BurstIO, Length: 5},
		{Type: BurstCPU, Length: 2},
	}
	if diff := cmp.Diff(want, th.Bursts); diff != "" {
		t.Errorf("bursts mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, StateNew, th.State)
	assert.Equal(t, NoThread, th.Ref)
	assert.Equal(t, int64(-1), th.StartTime)
	assert.Equal(t, int64(-1), th.EndTime)
	assert.Equal(t, int64(1), th.LevelQuantum)
}

func TestThread_PopNextBurst_AccruesServiceAndIOTime(t *testing.T) {
	th := NewThread(0, 0, PriorityNormal, 0, []int64{3, 5, 2})

	th.PopNextBurst(BurstCPU)
	th.PopNextBurst(BurstIO)

	assert.Equal(t, int64(3), th.ServiceTime)
	assert.Equal(t, int64(5), th.IOTime)
	require.NotNil(t, th.NextBurst(BurstCPU))
	assert.Nil(t, th.NextBurst(BurstIO))
}

func TestThread_PopNextBurst_WrongType_Panics(t *testing.T) {
	th := NewThread(0, 0, PriorityNormal, 0, []int64{3, 5, 2})
	assert.Panics(t, func() { th.PopNextBurst(BurstIO) })
}

func TestThread_Preempt_ShortensFrontBurst(t *testing.T) {
	// GIVEN a thread whose CPU burst of 5 ran for 3 ticks
	th := NewThread(0, 0, PriorityNormal, 0, []int64{5})

	// WHEN it is preempted
	th.Preempt(3)

	// THEN only the remainder is left and the elapsed ticks count as service
	assert.Equal(t, int64(2), th.NextBurst(BurstCPU).Length)
	assert.Equal(t, int64(3), th.ServiceTime)
	assert.Panics(t, func() { th.Preempt(3) }, "consuming more than the remainder must panic")
}

func TestThread_Transitions_TrackTimestamps(t *testing.T) {
	th := NewThread(0, 0, PriorityNormal, 2, []int64{1, 1, 1})

	th.SetReady(2)
	th.SetRunning(4)
	th.SetBlocked(5)
	th.SetReady(6)
	th.SetRunning(9)
	th.SetFinished(10)

	assert.Equal(t, StateFinished, th.State)
	assert.Equal(t, StateRunning, th.PreviousState)
	assert.Equal(t, int64(10), th.StateChangeTime)
	assert.Equal(t, int64(4), th.StartTime, "start time is the first RUNNING transition")
	assert.Equal(t, int64(2), th.ResponseTime())
	assert.Equal(t, int64(8), th.TurnaroundTime())
}

func TestThread_IllegalTransition_Panics(t *testing.T) {
	tests := []struct {
		name string
		do   func(th *Thread)
	}{
		{"new to running", func(th *Thread) { th.SetRunning(0) }},
		{"new to finished", func(th *Thread) { th.SetFinished(0) }},
		{"ready to blocked", func(th *Thread) { th.SetReady(0); th.SetBlocked(1) }},
		{"blocked to running", func(th *Thread) { th.SetReady(0); th.SetRunning(0); th.SetBlocked(1); th.SetRunning(2) }},
		{"finished to ready", func(th *Thread) { th.SetReady(0); th.SetRunning(0); th.SetFinished(1); th.SetReady(2) }},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			th := NewThread(0, 0, PriorityNormal, 0, []int64{1})
			assert.Panics(t, func() { tc.do(th) })
		})
	}
}

func TestThread_UnsetTimes_ReturnMinusOne(t *testing.T) {
	th := NewThread(0, 0, PriorityNormal, 0, []int64{1})
	assert.Equal(t, int64(-1), th.ResponseTime())
	assert.Equal(t, int64(-1), th.TurnaroundTime())
}

func TestThreadTable_AddAssignsSequentialRefs(t *testing.T) {
	tt := &ThreadTable{}
	a := NewThread(0, 0, PriorityNormal, 0, []int64{1})
	b := NewThread(1, 0, PriorityNormal, 0, []int64{1})

	assert.Equal(t, ThreadRef(0), tt.Add(a))
	assert.Equal(t, ThreadRef(1), tt.Add(b))
	assert.Same(t, b, tt.Get(1))
	assert.Equal(t, 2, tt.Len())
	assert.Panics(t, func() { tt.Get(NoThread) })
	assert.Panics(t, func() { tt.Get(2) })
}

func TestParsePriorityClass(t *testing.T) {
	for _, p := range PriorityClasses {
		got, err := ParsePriorityClass(p.String())
		require.NoError(t, err)
		assert.Equal(t, p, got)
	}
	got, err := ParsePriorityClass(" interactive ")
	require.NoError(t, err)
	assert.Equal(t, PriorityInteractive, got)

	_, err = ParsePriorityClass("REALTIME")
	assert.Error(t, err)
	assert.False(t, PriorityClass(4).Valid())
	assert.Equal(t, "PriorityClass(4)", PriorityClass(4).String())
}
