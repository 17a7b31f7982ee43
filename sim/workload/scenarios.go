package workload

import sim "github.com/datacenter-sim/datacenter-sim/sim"

// Built-in allocation-strategy presets. Each provisions a different VM mix
// against the same fixed workload so cost and latency can be compared.

const (
	defaultVMBandwidth = 1000
	defaultVMStorage   = 10000
)

func vmSpecFromType(t sim.VMType) VMSpec {
	return VMSpec{
		Rate:      t.Rate,
		PECount:   t.PECount,
		RAM:       t.RAM,
		Bandwidth: defaultVMBandwidth,
		Storage:   defaultVMStorage,
	}
}

// FixedTasks returns the standard comparison workload: n tasks of length
// 1000 + (i mod 3) × 500 instructions, one PE each, 300-unit input/output.
func FixedTasks(n int) []TaskSpec {
	tasks := make([]TaskSpec, n)
	for i := range tasks {
		tasks[i] = TaskSpec{
			Length:        1000 + float64(i%3)*500,
			PERequirement: 1,
			FileSize:      300,
			OutputSize:    300,
		}
	}
	return tasks
}

// ScenarioCheapestFirst provisions five Small VMs: minimal hourly cost,
// longest queues.
func ScenarioCheapestFirst() *Scenario {
	types := sim.DefaultVMTypes()
	vms := make([]VMSpec, 5)
	for i := range vms {
		vms[i] = vmSpecFromType(types[0])
	}
	return &Scenario{Name: "Cheapest-First", VMs: vms, Tasks: FixedTasks(20)}
}

// ScenarioPerformanceFirst provisions two Large VMs: highest hourly cost,
// most parallel slots.
func ScenarioPerformanceFirst() *Scenario {
	types := sim.DefaultVMTypes()
	vms := make([]VMSpec, 2)
	for i := range vms {
		vms[i] = vmSpecFromType(types[2])
	}
	return &Scenario{Name: "Performance-First", VMs: vms, Tasks: FixedTasks(20)}
}

// ScenarioBalanced provisions three VMs alternating Medium and Small.
func ScenarioBalanced() *Scenario {
	types := sim.DefaultVMTypes()
	vms := make([]VMSpec, 3)
	for i := range vms {
		if i%2 == 0 {
			vms[i] = vmSpecFromType(types[1])
		} else {
			vms[i] = vmSpecFromType(types[0])
		}
	}
	return &Scenario{Name: "Balanced", VMs: vms, Tasks: FixedTasks(20)}
}

// Presets returns every built-in strategy, in comparison order.
func Presets() []*Scenario {
	return []*Scenario{
		ScenarioCheapestFirst(),
		ScenarioPerformanceFirst(),
		ScenarioBalanced(),
	}
}

// PresetByName looks up a built-in strategy by its scenario name.
func PresetByName(name string) *Scenario {
	for _, sc := range Presets() {
		if sc.Name == name {
			return sc
		}
	}
	return nil
}
