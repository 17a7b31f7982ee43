// Defines the VirtualMachine, a reserved capacity slice on a Machine that
// hosts tasks through its TaskScheduler.

package sim

import "fmt"

// VirtualMachine is a capacity request bound to a machine once admitted.
// Rate is the requested compute rate per PE; the total request is
// Rate × PECount. Host is nil until placement succeeds.
type VirtualMachine struct {
	ID        int
	BrokerID  int
	Rate      float64
	PECount   int
	RAM       float64
	Bandwidth float64
	Storage   float64

	Host            *Machine
	Scheduler       TaskScheduler
	PlacementFailed bool

	delivered float64 // current total rate granted by the machine scheduler
}

// NewVirtualMachine creates an unplaced VM owning the given task scheduler.
func NewVirtualMachine(id, brokerID int, rate float64, peCount int, ram, bandwidth, storage float64, scheduler TaskScheduler) *VirtualMachine {
	return &VirtualMachine{
		ID:        id,
		BrokerID:  brokerID,
		Rate:      rate,
		PECount:   peCount,
		RAM:       ram,
		Bandwidth: bandwidth,
		Storage:   storage,
		Scheduler: scheduler,
	}
}

func (vm *VirtualMachine) String() string {
	return fmt.Sprintf("VM: (ID: %d, Rate: %.0fx%d, RAM: %.0f)", vm.ID, vm.Rate, vm.PECount, vm.RAM)
}

// RequestedRate is the total compute rate the VM asks the machine for.
func (vm *VirtualMachine) RequestedRate() float64 {
	return vm.Rate * float64(vm.PECount)
}

// DeliveredRate is the rate currently granted by the machine scheduler.
// Never exceeds RequestedRate.
func (vm *VirtualMachine) DeliveredRate() float64 { return vm.delivered }

// Placed reports whether the VM was admitted onto a machine.
func (vm *VirtualMachine) Placed() bool { return vm.Host != nil }

// setDelivered propagates a new granted rate into the task scheduler,
// integrating task progress up to now first.
func (vm *VirtualMachine) setDelivered(rate float64, now float64) {
	vm.Scheduler.SetDeliveredRate(rate, now)
	vm.delivered = rate
}
