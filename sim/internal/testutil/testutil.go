// Package testutil provides shared test infrastructure for the simulator.
// It consolidates fixture and assertion helpers used across sim/ and its
// sub-package tests. It does not import sim, so sim's own tests can use it.
package testutil

import (
	"math"
	"os"
	"path/filepath"
	"testing"
)

// AssertFloat64Equal compares two float64 values with relative tolerance.
func AssertFloat64Equal(t *testing.T, name string, want, got, relTol float64) {
	t.Helper()
	if want == 0 && got == 0 {
		return
	}
	diff := math.Abs(want - got)
	maxVal := math.Max(math.Abs(want), math.Abs(got))
	if diff/maxVal > relTol {
		t.Errorf("%s: got %v, want %v (diff=%v, relDiff=%v)", name, got, want, diff, diff/maxVal)
	}
}

// WriteTempFile writes content to a file named name inside a per-test
// temporary directory and returns its path.
func WriteTempFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
	}
	return path
}

// SampleTextWorkload is a small two-process workload in the plain-text format:
// process 0 is INTERACTIVE with two threads, process 1 is BATCH with one.
const SampleTextWorkload = `2 3 7

0 1 2
0 3
4 5 3 6 2
5 2
3 4 2

1 3 1
2 1
6
`
