package sim

import "fmt"

// ProcessingElement is one schedulable compute unit on a Machine, analogous
// to a CPU core. Capacity is a processing rate in instructions per second.
// Immutable after creation.
type ProcessingElement struct {
	ID       int
	Capacity float64
}

// NewProcessingElement constructs a PE. Negative capacity is a programming
// error, not a schedulable condition.
func NewProcessingElement(id int, capacity float64) *ProcessingElement {
	if capacity < 0 {
		panic(fmt.Sprintf("pe %d: negative capacity %f", id, capacity))
	}
	return &ProcessingElement{ID: id, Capacity: capacity}
}
