// Machine-level VM scheduler: time-shares a machine's processing elements
// among its resident VMs. Delivered rates are recomputed whenever the
// resident set changes; compute-rate sharing is independent of admission.

package sim

// VMScheduler decides the effective compute rate delivered to each resident
// VM at the current instant.
type VMScheduler interface {
	// Admit adds a VM to the resident set if the machine declares enough
	// PEs, then redistributes rates. Memory/bandwidth/storage admission is
	// the Machine's job.
	Admit(vm *VirtualMachine, now float64) bool
	// Release removes a VM and redistributes rates among the remainder.
	Release(vm *VirtualMachine, now float64)
	// Residents returns the currently admitted VMs.
	Residents() []*VirtualMachine
	// TotalCapacity is the sum of the managed PEs' capacities.
	TotalCapacity() float64
}

// TimeSharedVMScheduler divides total PE capacity among residents
// proportionally to their requested rate, capped at each VM's own request:
//
//	delivered_i = min(requested_i, total × requested_i / Σ requested_j)
type TimeSharedVMScheduler struct {
	pes       []*ProcessingElement
	residents []*VirtualMachine
}

// NewTimeSharedVMScheduler creates a scheduler over the machine's PE list.
func NewTimeSharedVMScheduler(pes []*ProcessingElement) *TimeSharedVMScheduler {
	return &TimeSharedVMScheduler{pes: pes}
}

func (vs *TimeSharedVMScheduler) TotalCapacity() float64 {
	var total float64
	for _, pe := range vs.pes {
		total += pe.Capacity
	}
	return total
}

func (vs *TimeSharedVMScheduler) Residents() []*VirtualMachine {
	return vs.residents
}

func (vs *TimeSharedVMScheduler) Admit(vm *VirtualMachine, now float64) bool {
	if vm.PECount > len(vs.pes) {
		return false
	}
	vs.residents = append(vs.residents, vm)
	vs.redistribute(now)
	return true
}

func (vs *TimeSharedVMScheduler) Release(vm *VirtualMachine, now float64) {
	for i, res := range vs.residents {
		if res == vm {
			vs.residents = append(vs.residents[:i], vs.residents[i+1:]...)
			break
		}
	}
	vs.redistribute(now)
}

// redistribute recomputes every resident's delivered rate. Task progress is
// integrated up to now inside setDelivered before the rate changes, so a
// redistribution never rewrites the past.
func (vs *TimeSharedVMScheduler) redistribute(now float64) {
	total := vs.TotalCapacity()
	var requested float64
	for _, vm := range vs.residents {
		requested += vm.RequestedRate()
	}
	for _, vm := range vs.residents {
		granted := vm.RequestedRate()
		if requested > total {
			granted = total * vm.RequestedRate() / requested
		}
		vm.setDelivered(granted, now)
	}
}
