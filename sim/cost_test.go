package sim

import (
	"math"
	"testing"
)

func smallVM(id int) *VirtualMachine {
	return NewVirtualMachine(id, 0, 500, 1, 512, 1000, 10000, NewTimeSharedTaskScheduler(1))
}

func finishedTask(id, vmID int, finish float64) *Task {
	t := NewTask(id, 1000, 1, 300, 300)
	t.VMID = vmID
	t.setStatus(TaskQueued)
	t.start(0)
	t.finish(finish)
	return t
}

func TestMatchVMType_ExactMatchOnRatePEsRAM(t *testing.T) {
	types := DefaultVMTypes()

	vt, ok := MatchVMType(types, smallVM(1))
	if !ok {
		t.Fatal("small VM did not match any pricing entry")
	}
	if vt.Name != "Small" {
		t.Errorf("matched type: got %q, want Small", vt.Name)
	}
}

func TestMatchVMType_NoMatch(t *testing.T) {
	// Same rate as Small but different RAM: no entry fits.
	vm := NewVirtualMachine(1, 0, 500, 1, 768, 1000, 10000, NewTimeSharedTaskScheduler(1))

	if _, ok := MatchVMType(DefaultVMTypes(), vm); ok {
		t.Error("VM with off-table RAM matched a pricing entry")
	}
}

func TestMatchVMType_AmbiguousTable_FirstWins(t *testing.T) {
	// Two entries with identical capacity but different rates: the first
	// must win (and the ambiguity is logged).
	types := []VMType{
		{Name: "A", Rate: 500, PECount: 1, RAM: 512, HourlyRate: 0.05},
		{Name: "B", Rate: 500, PECount: 1, RAM: 512, HourlyRate: 0.99},
	}

	vt, ok := MatchVMType(types, smallVM(1))
	if !ok {
		t.Fatal("no match in ambiguous table")
	}
	if vt.Name != "A" {
		t.Errorf("ambiguous match: got %q, want first entry A", vt.Name)
	}
}

func TestActiveSeconds_MaxFinishAmongOwnTasks(t *testing.T) {
	vm := smallVM(7)
	tasks := []*Task{
		finishedTask(1, 7, 4),
		finishedTask(2, 7, 11),
		finishedTask(3, 9, 99), // other VM, ignored
	}

	if got := ActiveSeconds(vm, tasks); got != 11 {
		t.Errorf("active seconds: got %f, want 11", got)
	}
}

func TestVMCost_AmortizesHourlyRate(t *testing.T) {
	vt := VMType{Name: "Small", HourlyRate: 0.05}
	got := VMCost(vt, 3600)
	if math.Abs(got-0.05) > 1e-12 {
		t.Errorf("cost for one active hour: got %f, want 0.05", got)
	}
}

func TestTotalCost_ZeroActivityVMCostsZero(t *testing.T) {
	// A VM with no completed task contributes zero cost: explicit policy.
	idle := smallVM(1)
	busy := smallVM(2)
	tasks := []*Task{finishedTask(1, 2, 7200)}

	total := TotalCost(DefaultVMTypes(), []*VirtualMachine{idle, busy}, tasks)
	want := 0.05 * 7200 / 3600
	if math.Abs(total-want) > 1e-12 {
		t.Errorf("total cost: got %f, want %f (idle VM must cost 0)", total, want)
	}
}

func TestTotalCost_Additive(t *testing.T) {
	vm1 := smallVM(1)
	vm2 := smallVM(2)
	tasks := []*Task{
		finishedTask(1, 1, 3600),
		finishedTask(2, 2, 7200),
	}
	types := DefaultVMTypes()

	total := TotalCost(types, []*VirtualMachine{vm1, vm2}, tasks)
	sum := VMCost(types[0], ActiveSeconds(vm1, tasks)) + VMCost(types[0], ActiveSeconds(vm2, tasks))
	if math.Abs(total-sum) > 1e-12 {
		t.Errorf("total cost %f != sum of per-VM costs %f", total, sum)
	}
	if total < 0 {
		t.Errorf("total cost negative: %f", total)
	}
}

func TestTotalCost_UnpricedVMContributesZero(t *testing.T) {
	odd := NewVirtualMachine(1, 0, 333, 1, 512, 1000, 10000, NewTimeSharedTaskScheduler(1))
	tasks := []*Task{finishedTask(1, 1, 3600)}

	if got := TotalCost(DefaultVMTypes(), []*VirtualMachine{odd}, tasks); got != 0 {
		t.Errorf("unpriced VM cost: got %f, want 0", got)
	}
}
