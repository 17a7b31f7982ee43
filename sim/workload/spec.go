// Package workload defines scenario inputs for the simulator: VM and task
// specifications, built-in allocation-strategy presets, and a
// distribution-based task generator.
package workload

import (
	"fmt"

	sim "github.com/datacenter-sim/datacenter-sim/sim"
)

// VMSpec describes one VM to provision.
type VMSpec struct {
	Rate      float64 `yaml:"rate"`
	PECount   int     `yaml:"pe_count"`
	RAM       float64 `yaml:"ram"`
	Bandwidth float64 `yaml:"bandwidth"`
	Storage   float64 `yaml:"storage"`
	Scheduler string  `yaml:"scheduler"` // "time-shared" (default) or "space-shared"
}

// TaskSpec describes one unit of work.
type TaskSpec struct {
	Length        float64 `yaml:"length"`
	PERequirement int     `yaml:"pe_requirement"`
	FileSize      float64 `yaml:"file_size"`
	OutputSize    float64 `yaml:"output_size"`
}

// MachineSpec describes the simulated host. Zero value means the default
// datacenter host.
type MachineSpec struct {
	PECount    int     `yaml:"pe_count"`
	PECapacity float64 `yaml:"pe_capacity"`
	RAM        float64 `yaml:"ram"`
	Bandwidth  float64 `yaml:"bandwidth"`
	Storage    float64 `yaml:"storage"`
}

// Scenario is a named list of VM specs and task specs, plus the host they
// run on.
type Scenario struct {
	Name    string      `yaml:"name"`
	Machine MachineSpec `yaml:"machine"`
	VMs     []VMSpec    `yaml:"vms"`
	Tasks   []TaskSpec  `yaml:"tasks"`
}

// DefaultMachineSpec is the standard host: 4 PEs of 1000 rate units each,
// 16384 memory, 10000 bandwidth, 1M storage.
func DefaultMachineSpec() MachineSpec {
	return MachineSpec{PECount: 4, PECapacity: 1000, RAM: 16384, Bandwidth: 10000, Storage: 1000000}
}

// Build materializes the scenario into an isolated simulation instance.
func (sc *Scenario) Build() (*sim.Simulation, error) {
	ms := sc.Machine
	if ms.PECount == 0 {
		ms = DefaultMachineSpec()
	}
	machine := sim.NewMachine(0, ms.PECount, ms.PECapacity, ms.RAM, ms.Bandwidth, ms.Storage)

	broker := sim.NewBroker(0)

	vms := make([]*sim.VirtualMachine, 0, len(sc.VMs))
	for i, spec := range sc.VMs {
		var sched sim.TaskScheduler
		switch spec.Scheduler {
		case "", "time-shared":
			sched = sim.NewTimeSharedTaskScheduler(spec.PECount)
		case "space-shared":
			sched = sim.NewSpaceSharedTaskScheduler(spec.PECount)
		default:
			return nil, fmt.Errorf("scenario %q: vm %d has unknown scheduler %q", sc.Name, i, spec.Scheduler)
		}
		vms = append(vms, sim.NewVirtualMachine(i, broker.ID, spec.Rate, spec.PECount, spec.RAM, spec.Bandwidth, spec.Storage, sched))
	}

	tasks := make([]*sim.Task, 0, len(sc.Tasks))
	for i, spec := range sc.Tasks {
		tasks = append(tasks, sim.NewTask(i, spec.Length, spec.PERequirement, spec.FileSize, spec.OutputSize))
	}

	broker.SubmitVMs(vms)
	broker.SubmitTasks(tasks)
	return sim.NewSimulation([]*sim.Machine{machine}, broker), nil
}
