// VM placement policies: choose which machine a VM-allocation request lands
// on. Policies are stateless; admission itself is the machine's decision.

package sim

// PlacementPolicy selects a machine for an unplaced VM, or nil when no
// machine can host it.
type PlacementPolicy interface {
	Select(machines []*Machine, vm *VirtualMachine) *Machine
}

// FirstFit picks the first machine whose declared capacities fit the VM.
// The default policy.
type FirstFit struct{}

func (FirstFit) Select(machines []*Machine, vm *VirtualMachine) *Machine {
	for _, m := range machines {
		if m.CanHost(vm) {
			return m
		}
	}
	return nil
}

// LeastLoaded picks the fitting machine with the fewest resident VMs,
// spreading load across hosts. Ties go to the lower machine ID, keeping
// placement deterministic.
type LeastLoaded struct{}

func (LeastLoaded) Select(machines []*Machine, vm *VirtualMachine) *Machine {
	var best *Machine
	for _, m := range machines {
		if !m.CanHost(vm) {
			continue
		}
		if best == nil || len(m.Residents()) < len(best.Residents()) {
			best = m
		}
	}
	return best
}
