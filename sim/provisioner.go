// Capacity provisioners track available-vs-allocated capacity for one
// resource dimension (memory, bandwidth, storage). A rejected allocation is
// a schedulable condition the VM scheduler handles by refusing admission,
// not an error.

package sim

import "fmt"

// Provisioner tracks a single capacity dimension on a Machine.
type Provisioner struct {
	dimension string
	capacity  float64
	available float64
}

// NewProvisioner creates a provisioner for the named dimension.
func NewProvisioner(dimension string, capacity float64) *Provisioner {
	if capacity < 0 {
		panic(fmt.Sprintf("%s provisioner: negative capacity %f", dimension, capacity))
	}
	return &Provisioner{dimension: dimension, capacity: capacity, available: capacity}
}

// Allocate reserves amount if it fits, returning whether it succeeded.
func (p *Provisioner) Allocate(amount float64) bool {
	if amount < 0 {
		panic(fmt.Sprintf("%s provisioner: negative allocation %f", p.dimension, amount))
	}
	if amount > p.available {
		return false
	}
	p.available -= amount
	return true
}

// Release returns previously allocated capacity. Clamped at the declared
// capacity so the allocated counter can never go negative.
func (p *Provisioner) Release(amount float64) {
	if amount < 0 {
		panic(fmt.Sprintf("%s provisioner: negative release %f", p.dimension, amount))
	}
	p.available += amount
	if p.available > p.capacity {
		p.available = p.capacity
	}
}

// Available returns the unallocated capacity.
func (p *Provisioner) Available() float64 { return p.available }

// Capacity returns the declared capacity.
func (p *Provisioner) Capacity() float64 { return p.capacity }

// Allocated returns the currently reserved capacity.
func (p *Provisioner) Allocated() float64 { return p.capacity - p.available }
