package workload

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sim "github.com/datacenter-sim/datacenter-sim/sim"
)

func TestFixedTasks_LengthCycle(t *testing.T) {
	tasks := FixedTasks(6)

	require.Len(t, tasks, 6)
	wantLengths := []float64{1000, 1500, 2000, 1000, 1500, 2000}
	for i, spec := range tasks {
		assert.Equal(t, wantLengths[i], spec.Length, "task %d length", i)
		assert.Equal(t, 1, spec.PERequirement)
		assert.Equal(t, 300.0, spec.FileSize)
		assert.Equal(t, 300.0, spec.OutputSize)
	}
}

func TestPresets_ExpectedFleets(t *testing.T) {
	presets := Presets()
	require.Len(t, presets, 3)

	cheapest := presets[0]
	assert.Equal(t, "Cheapest-First", cheapest.Name)
	require.Len(t, cheapest.VMs, 5)
	for _, spec := range cheapest.VMs {
		assert.Equal(t, 500.0, spec.Rate)
		assert.Equal(t, 1, spec.PECount)
	}

	performance := presets[1]
	assert.Equal(t, "Performance-First", performance.Name)
	require.Len(t, performance.VMs, 2)
	for _, spec := range performance.VMs {
		assert.Equal(t, 2000.0, spec.Rate)
		assert.Equal(t, 4, spec.PECount)
	}

	balanced := presets[2]
	assert.Equal(t, "Balanced", balanced.Name)
	require.Len(t, balanced.VMs, 3)
	assert.Equal(t, 1000.0, balanced.VMs[0].Rate)
	assert.Equal(t, 500.0, balanced.VMs[1].Rate)
	assert.Equal(t, 1000.0, balanced.VMs[2].Rate)

	for _, sc := range presets {
		assert.Len(t, sc.Tasks, 20, "%s task count", sc.Name)
	}
}

func TestPresetByName(t *testing.T) {
	require.NotNil(t, PresetByName("Balanced"))
	assert.Equal(t, "Balanced", PresetByName("Balanced").Name)
	assert.Nil(t, PresetByName("no-such-strategy"))
}

func TestScenario_Build_UnknownScheduler(t *testing.T) {
	sc := &Scenario{
		Name: "broken",
		VMs:  []VMSpec{{Rate: 500, PECount: 1, RAM: 512, Scheduler: "round-robin"}},
	}

	_, err := sc.Build()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown scheduler")
}

func runPreset(t *testing.T, sc *Scenario) sim.Summary {
	t.Helper()
	s, err := sc.Build()
	require.NoError(t, err, "building %s", sc.Name)
	require.NoError(t, s.Run(context.Background()), "running %s", sc.Name)
	return sim.Summarize(sc.Name, sim.DefaultVMTypes(), s.Broker().VMs(), s.Broker().ReceivedTasks(), s.Clock())
}

func TestPresets_EndToEndComparison(t *testing.T) {
	// GIVEN the cheapest and performance strategies over the same workload
	cheapest := runPreset(t, ScenarioCheapestFirst())
	performance := runPreset(t, ScenarioPerformanceFirst())
	balanced := runPreset(t, ScenarioBalanced())

	// THEN every strategy completes all 20 tasks
	for _, sum := range []sim.Summary{cheapest, performance, balanced} {
		assert.Equal(t, 20, sum.FinishedTasks, "%s finished count", sum.Strategy)
		assert.Zero(t, sum.FailedTasks, "%s failed count", sum.Strategy)
		assert.Positive(t, sum.TotalCost, "%s cost", sum.Strategy)
	}

	// AND the large-VM fleet turns tasks around faster than the small one
	assert.Less(t, performance.AvgCompletionTime, cheapest.AvgCompletionTime)

	// AND the cheapest strategy's numbers match the hand-computed schedule:
	// five serial queues at 500 units/sec, per-VM finish times 11..13 hours
	// worth of seconds at $0.05/hour.
	assert.InDelta(t, 2.95, cheapest.AvgCompletionTime, 1e-9)
	assert.InDelta(t, 0.05*59/3600.0, cheapest.TotalCost, 1e-9)
}

func TestPresets_DeterministicAcrossRuns(t *testing.T) {
	first := runPreset(t, ScenarioCheapestFirst())
	second := runPreset(t, ScenarioCheapestFirst())

	assert.Equal(t, first.TotalCost, second.TotalCost)
	assert.Equal(t, first.AvgCompletionTime, second.AvgCompletionTime)
	assert.Equal(t, first.SimEndTime, second.SimEndTime)
}

func TestScenario_Build_SpaceSharedVariant(t *testing.T) {
	sc := &Scenario{
		Name:  "space",
		VMs:   []VMSpec{{Rate: 500, PECount: 1, RAM: 512, Bandwidth: 1000, Storage: 10000, Scheduler: "space-shared"}},
		Tasks: FixedTasks(2),
	}

	s, err := sc.Build()
	require.NoError(t, err)
	require.NoError(t, s.Run(context.Background()))

	received := s.Broker().ReceivedTasks()
	require.Len(t, received, 2)
	// Serial execution on one exclusive PE: 1000 then 1500 at 500 units/sec.
	assert.InDelta(t, 2.0, received[0].FinishTime, 1e-9)
	assert.InDelta(t, 5.0, received[1].FinishTime, 1e-9)
	assert.InDelta(t, 2.0, received[1].StartTime, 1e-9)
}
