// Cost model: pure functions mapping a VM's resource profile to a billing
// rate and integrating cost over its active lifetime.
//
// Policy, stated explicitly: a VM type matches on compute rate, PE count,
// and memory, all exact; the first match wins and multiple matches are
// flagged as a pricing-table ambiguity. A VM's active seconds are the
// maximum finish time among tasks that completed on it, so a VM that never
// finished a task contributes zero cost.

package sim

import "github.com/sirupsen/logrus"

// VMType is a named capacity/cost template. Used only to classify a
// VirtualMachine for costing, never a runtime entity.
type VMType struct {
	Name       string  `yaml:"name"`
	Rate       float64 `yaml:"rate"`
	PECount    int     `yaml:"pe_count"`
	RAM        float64 `yaml:"ram"`
	HourlyRate float64 `yaml:"hourly_rate"`
}

// DefaultVMTypes is the built-in pricing table.
func DefaultVMTypes() []VMType {
	return []VMType{
		{Name: "Small", Rate: 500, PECount: 1, RAM: 512, HourlyRate: 0.05},
		{Name: "Medium", Rate: 1000, PECount: 2, RAM: 1024, HourlyRate: 0.10},
		{Name: "Large", Rate: 2000, PECount: 4, RAM: 2048, HourlyRate: 0.20},
	}
}

// MatchVMType classifies a VM against the pricing table. More than one
// matching type is a configuration ambiguity: the first match is used and a
// warning is logged.
func MatchVMType(types []VMType, vm *VirtualMachine) (VMType, bool) {
	var matches []VMType
	for _, t := range types {
		if t.Rate == vm.Rate && t.PECount == vm.PECount && t.RAM == vm.RAM {
			matches = append(matches, t)
		}
	}
	if len(matches) == 0 {
		return VMType{}, false
	}
	if len(matches) > 1 {
		logrus.Warnf("vm %d matches %d pricing entries; table is ambiguous, using %q", vm.ID, len(matches), matches[0].Name)
	}
	return matches[0], true
}

// ActiveSeconds is the maximum finish time among tasks that completed on
// the VM. Zero when nothing finished there.
func ActiveSeconds(vm *VirtualMachine, tasks []*Task) float64 {
	var maxFinish float64
	for _, t := range tasks {
		if t.VMID == vm.ID && t.Status == TaskFinished && t.FinishTime > maxFinish {
			maxFinish = t.FinishTime
		}
	}
	return maxFinish
}

// VMCost amortizes the hourly billing rate over the VM's active seconds.
func VMCost(t VMType, activeSeconds float64) float64 {
	return t.HourlyRate * activeSeconds / 3600
}

// TotalCost sums per-VM costs across all provisioned VMs. A VM with no
// pricing entry contributes zero and logs a warning.
func TotalCost(types []VMType, vms []*VirtualMachine, tasks []*Task) float64 {
	var total float64
	for _, vm := range vms {
		vt, ok := MatchVMType(types, vm)
		if !ok {
			logrus.Warnf("vm %d has no pricing entry (rate=%.0f pes=%d ram=%.0f); contributing zero cost", vm.ID, vm.Rate, vm.PECount, vm.RAM)
			continue
		}
		total += VMCost(vt, ActiveSeconds(vm, tasks))
	}
	return total
}
