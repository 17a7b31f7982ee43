// The broker owns the submission queues for VMs and tasks, forwards them
// into the simulation once it starts, and collects completed tasks in
// completion order for reporting.

package sim

import (
	"fmt"

	"github.com/sirupsen/logrus"
)

// Broker submits VMs and tasks into the simulation and tracks which tasks
// have reached a terminal state. It holds only non-owning references to
// completed tasks; allocation records stay with the machines and VMs.
type Broker struct {
	ID int

	vms   []*VirtualMachine
	tasks []*Task

	placed   []*VirtualMachine
	acked    int
	received []*Task
	nextVM   int
	started  bool
}

// NewBroker creates an empty broker.
func NewBroker(id int) *Broker {
	return &Broker{ID: id}
}

// SubmitVMs queues VMs for allocation when the simulation starts.
func (b *Broker) SubmitVMs(vms []*VirtualMachine) {
	if b.started {
		panic(fmt.Sprintf("broker %d: SubmitVMs after simulation start", b.ID))
	}
	b.vms = append(b.vms, vms...)
}

// SubmitTasks queues tasks for dispatch once all VM placements resolve.
func (b *Broker) SubmitTasks(tasks []*Task) {
	if b.started {
		panic(fmt.Sprintf("broker %d: SubmitTasks after simulation start", b.ID))
	}
	b.tasks = append(b.tasks, tasks...)
}

// VMs returns every submitted VM, placed or not.
func (b *Broker) VMs() []*VirtualMachine { return b.vms }

// ReceivedTasks returns tasks that reached Finished or Failed, in completion
// order. The list only ever grows.
func (b *Broker) ReceivedTasks() []*Task { return b.received }

// start validates the configuration and emits the initial allocation
// events. Validation failures abort the run before any event is processed.
func (b *Broker) start(s *Simulation) error {
	b.started = true

	maxSlots := 0
	for _, vm := range b.vms {
		if vm.PECount > maxSlots {
			maxSlots = vm.PECount
		}
	}
	for _, t := range b.tasks {
		if t.Length <= 0 {
			return fmt.Errorf("broker %d: task %d has non-positive length %f", b.ID, t.ID, t.Length)
		}
		if t.slots() > maxSlots {
			return fmt.Errorf("broker %d: task %d requires %d PEs but the largest submitted VM provides %d", b.ID, t.ID, t.slots(), maxSlots)
		}
	}

	for _, vm := range b.vms {
		s.schedule(&Event{Time: s.clock, Kind: EventVMAllocationRequest, VM: vm})
	}
	return nil
}

// onVMAllocationComplete counts placement acknowledgements; once every VM
// has resolved, tasks are bound and dispatched.
func (b *Broker) onVMAllocationComplete(s *Simulation, vm *VirtualMachine) {
	b.acked++
	if vm.Placed() {
		b.placed = append(b.placed, vm)
	}
	if b.acked == len(b.vms) {
		b.dispatchTasks(s)
	}
}

// dispatchTasks binds tasks round-robin across placed VMs that satisfy each
// task's PE requirement. A task no placed VM fits is recorded as Failed and
// never retried.
func (b *Broker) dispatchTasks(s *Simulation) {
	for _, t := range b.tasks {
		target := b.nextFit(t)
		if target == nil {
			logrus.Warnf("broker %d: task %d needs %d PEs but no placed VM fits; marked failed", b.ID, t.ID, t.slots())
			t.fail()
			b.received = append(b.received, t)
			continue
		}
		t.VMID = target.ID
		s.schedule(&Event{Time: s.clock, Kind: EventTaskSubmit, VM: target, Task: t})
	}
}

// nextFit scans the placed VMs round-robin for one with enough PEs.
func (b *Broker) nextFit(t *Task) *VirtualMachine {
	n := len(b.placed)
	for i := 0; i < n; i++ {
		vm := b.placed[(b.nextVM+i)%n]
		if vm.PECount >= t.slots() {
			b.nextVM = (b.nextVM + i + 1) % n
			return vm
		}
	}
	return nil
}

// onTaskFinished records a completed task, preserving completion order.
func (b *Broker) onTaskFinished(t *Task) {
	b.received = append(b.received, t)
}

// pendingTasks returns submitted tasks still outside a terminal state. A
// non-empty result after the event queue drains marks a stalled
// configuration (for example a VM that is delivered zero capacity).
func (b *Broker) pendingTasks() []*Task {
	var pending []*Task
	for _, t := range b.tasks {
		if t.Status != TaskFinished && t.Status != TaskFailed {
			pending = append(pending, t)
		}
	}
	return pending
}
