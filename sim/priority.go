package sim

import (
	"fmt"
	"strings"
)

// PriorityClass is the scheduling class of a process.
// Lower values are more urgent: SYSTEM is served before BATCH.
type PriorityClass int

const (
	PrioritySystem PriorityClass = iota
	PriorityInteractive
	PriorityNormal
	PriorityBatch
)

// NumPriorityClasses is the number of defined priority classes.
const NumPriorityClasses = 4

var priorityClassNames = [NumPriorityClasses]string{"SYSTEM", "INTERACTIVE", "NORMAL", "BATCH"}

// PriorityClasses lists every class in urgency order.
var PriorityClasses = []PriorityClass{PrioritySystem, PriorityInteractive, PriorityNormal, PriorityBatch}

func (p PriorityClass) String() string {
	if !p.Valid() {
		return fmt.Sprintf("PriorityClass(%d)", int(p))
	}
	return priorityClassNames[p]
}

// Valid reports whether p is one of the four defined classes.
func (p PriorityClass) Valid() bool {
	return p >= PrioritySystem && p <= PriorityBatch
}

// ParsePriorityClass accepts a class name (case-insensitive) such as "interactive".
func ParsePriorityClass(name string) (PriorityClass, error) {
	upper := strings.ToUpper(strings.TrimSpace(name))
	for i, n := range priorityClassNames {
		if n == upper {
			return PriorityClass(i), nil
		}
	}
	return 0, fmt.Errorf("unknown priority class %q", name)
}
