package workload

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/inference-sim/cpusim/sim"
)

const sampleYAML = `
version: "1"
thread_switch_overhead: 3
process_switch_overhead: 7
processes:
  - id: 0
    priority: interactive
    threads:
      - arrival_time: 0
        bursts: [4, 5, 3, 6, 2]
      - arrival_time: 5
        bursts: [3, 4, 2]
  - id: 1
    priority: BATCH
    threads:
      - arrival_time: 2
        bursts: [6]
`

func TestParseWorkloadSpec_ToWorkload(t *testing.T) {
	spec, err := ParseWorkloadSpec([]byte(sampleYAML))
	require.NoError(t, err)
	assert.Equal(t, "1", spec.Version)

	w, err := spec.ToWorkload()

	require.NoError(t, err)
	if diff := cmp.Diff(sampleWorkload(), w); diff != "" {
		t.Errorf("workload mismatch (-want +got):\n%s", diff)
	}
}

func TestParseWorkloadSpec_UnknownField_Errors(t *testing.T) {
	// GIVEN a typo in a field name
	data := []byte("thread_switch_overhead: 1\nprocess_switch_overhed: 2\n")

	// THEN strict decoding rejects it
	_, err := ParseWorkloadSpec(data)
	assert.Error(t, err)
}

func TestWorkloadSpec_ToWorkload_Errors(t *testing.T) {
	tests := []struct {
		name string
		spec WorkloadSpec
	}{
		{"unknown class", WorkloadSpec{Processes: []ProcessSpec{{ID: 0, Priority: "REALTIME"}}}},
		{"even bursts", WorkloadSpec{Processes: []ProcessSpec{{ID: 0, Priority: "NORMAL", Threads: []ThreadSpec{{Bursts: []int64{1, 1}}}}}}},
		{"negative overhead", WorkloadSpec{ProcessSwitchOverhead: -3}},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := tc.spec.ToWorkload()
			assert.Error(t, err)
		})
	}
}

func TestFromWorkload_EncodeRoundTrip(t *testing.T) {
	// GIVEN a workload converted to YAML
	want := sampleWorkload()
	data, err := FromWorkload(want).Encode()
	require.NoError(t, err)
	assert.Contains(t, string(data), "priority: INTERACTIVE")

	// WHEN the YAML is parsed back
	spec, err := ParseWorkloadSpec(data)
	require.NoError(t, err)
	got, err := spec.ToWorkload()

	// THEN nothing is lost
	require.NoError(t, err)
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestFromWorkload_CopiesBursts(t *testing.T) {
	w := sampleWorkload()
	spec := FromWorkload(w)

	spec.Processes[0].Threads[0].Bursts[0] = 99

	assert.Equal(t, int64(4), w.Processes[0].Threads[0].Bursts[0])
	assert.Equal(t, sim.PriorityInteractive.String(), spec.Processes[0].Priority)
}
