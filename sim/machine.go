// Machine models a physical host: a list of processing elements plus
// memory, bandwidth, and storage capacity shared among resident VMs.

package sim

import "github.com/sirupsen/logrus"

// Machine is a physical host. Admission is all-or-nothing across the PE
// count check and the three capacity provisioners; a partial grab is rolled
// back so a refused VM leaves no residue.
type Machine struct {
	ID        int
	PEs       []*ProcessingElement
	RAM       *Provisioner
	Bandwidth *Provisioner
	Storage   *Provisioner

	scheduler VMScheduler
}

// NewMachine builds a host with peCount identical PEs of peCapacity each and
// a time-shared VM scheduler unless another is injected via WithScheduler.
func NewMachine(id int, peCount int, peCapacity float64, ram, bandwidth, storage float64) *Machine {
	pes := make([]*ProcessingElement, peCount)
	for i := range pes {
		pes[i] = NewProcessingElement(i, peCapacity)
	}
	return &Machine{
		ID:        id,
		PEs:       pes,
		RAM:       NewProvisioner("ram", ram),
		Bandwidth: NewProvisioner("bandwidth", bandwidth),
		Storage:   NewProvisioner("storage", storage),
		scheduler: NewTimeSharedVMScheduler(pes),
	}
}

// WithScheduler swaps the VM scheduling policy. Must be called before any
// VM is admitted.
func (m *Machine) WithScheduler(s VMScheduler) *Machine {
	if len(m.scheduler.Residents()) > 0 {
		panic("machine: cannot swap VM scheduler with resident VMs")
	}
	m.scheduler = s
	return m
}

// TotalCapacity is the sum of all PE capacities: the ceiling on Σ delivered
// rates at any instant.
func (m *Machine) TotalCapacity() float64 {
	return m.scheduler.TotalCapacity()
}

// Residents returns the VMs currently admitted on this machine.
func (m *Machine) Residents() []*VirtualMachine {
	return m.scheduler.Residents()
}

// CanHost checks the declared capacities without reserving anything. Used by
// placement policies to pre-select a machine.
func (m *Machine) CanHost(vm *VirtualMachine) bool {
	return vm.PECount <= len(m.PEs) &&
		vm.RAM <= m.RAM.Available() &&
		vm.Bandwidth <= m.Bandwidth.Available() &&
		vm.Storage <= m.Storage.Available()
}

// Admit places the VM on this machine, reserving RAM, bandwidth, and storage
// and handing it to the VM scheduler. Returns false (with everything rolled
// back) when any dimension refuses.
func (m *Machine) Admit(vm *VirtualMachine, now float64) bool {
	if !m.RAM.Allocate(vm.RAM) {
		logrus.Warnf("machine %d: vm %d refused, ram request %.0f exceeds available %.0f", m.ID, vm.ID, vm.RAM, m.RAM.Available())
		return false
	}
	if !m.Bandwidth.Allocate(vm.Bandwidth) {
		m.RAM.Release(vm.RAM)
		logrus.Warnf("machine %d: vm %d refused, bandwidth request %.0f exceeds available %.0f", m.ID, vm.ID, vm.Bandwidth, m.Bandwidth.Available())
		return false
	}
	if !m.Storage.Allocate(vm.Storage) {
		m.RAM.Release(vm.RAM)
		m.Bandwidth.Release(vm.Bandwidth)
		logrus.Warnf("machine %d: vm %d refused, storage request %.0f exceeds available %.0f", m.ID, vm.ID, vm.Storage, m.Storage.Available())
		return false
	}
	if !m.scheduler.Admit(vm, now) {
		m.RAM.Release(vm.RAM)
		m.Bandwidth.Release(vm.Bandwidth)
		m.Storage.Release(vm.Storage)
		logrus.Warnf("machine %d: vm %d refused, requests %d PEs but machine has %d", m.ID, vm.ID, vm.PECount, len(m.PEs))
		return false
	}
	vm.Host = m
	return true
}

// Release deallocates the VM, returning its capacity and redistributing
// rates among the remaining residents.
func (m *Machine) Release(vm *VirtualMachine, now float64) {
	if vm.Host != m {
		return
	}
	m.scheduler.Release(vm, now)
	m.RAM.Release(vm.RAM)
	m.Bandwidth.Release(vm.Bandwidth)
	m.Storage.Release(vm.Storage)
	vm.Host = nil
	vm.delivered = 0
}
