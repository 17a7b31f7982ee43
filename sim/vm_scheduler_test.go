package sim

import (
	"math"
	"testing"
)

func newTestVM(id int, rate float64, peCount int) *VirtualMachine {
	return NewVirtualMachine(id, 0, rate, peCount, 512, 1000, 10000, NewTimeSharedTaskScheduler(peCount))
}

func fourPEs(capacity float64) []*ProcessingElement {
	pes := make([]*ProcessingElement, 4)
	for i := range pes {
		pes[i] = NewProcessingElement(i, capacity)
	}
	return pes
}

func TestTimeSharedVMScheduler_UncontendedVMsGetFullRequest(t *testing.T) {
	// GIVEN 4x1000 capacity and two VMs requesting 500 each
	vs := NewTimeSharedVMScheduler(fourPEs(1000))
	vm1 := newTestVM(1, 500, 1)
	vm2 := newTestVM(2, 500, 1)

	// WHEN both are admitted
	vs.Admit(vm1, 0)
	vs.Admit(vm2, 0)

	// THEN each receives its full request
	if vm1.DeliveredRate() != 500 {
		t.Errorf("vm1 delivered: got %f, want 500", vm1.DeliveredRate())
	}
	if vm2.DeliveredRate() != 500 {
		t.Errorf("vm2 delivered: got %f, want 500", vm2.DeliveredRate())
	}
}

func TestTimeSharedVMScheduler_ContendedProportionalShare(t *testing.T) {
	// GIVEN 4000 total capacity and two VMs requesting 8000 each
	vs := NewTimeSharedVMScheduler(fourPEs(1000))
	vm1 := newTestVM(1, 2000, 4)
	vm2 := newTestVM(2, 2000, 4)
	vs.Admit(vm1, 0)
	vs.Admit(vm2, 0)

	// THEN each receives a proportional 2000
	if vm1.DeliveredRate() != 2000 {
		t.Errorf("vm1 delivered: got %f, want 2000", vm1.DeliveredRate())
	}
	if vm2.DeliveredRate() != 2000 {
		t.Errorf("vm2 delivered: got %f, want 2000", vm2.DeliveredRate())
	}

	// WHEN one VM is released
	vs.Release(vm1, 0)

	// THEN the survivor is recomputed, still capped at total capacity
	if vm2.DeliveredRate() != 4000 {
		t.Errorf("vm2 delivered after release: got %f, want 4000", vm2.DeliveredRate())
	}
}

func TestTimeSharedVMScheduler_DeliveredCappedAtRequest(t *testing.T) {
	// A VM never receives more than it asked for even with spare capacity.
	vs := NewTimeSharedVMScheduler(fourPEs(1000))
	vm := newTestVM(1, 100, 1)
	vs.Admit(vm, 0)

	if vm.DeliveredRate() != 100 {
		t.Errorf("delivered: got %f, want the 100 requested", vm.DeliveredRate())
	}
}

func TestTimeSharedVMScheduler_SumNeverExceedsCapacity(t *testing.T) {
	vs := NewTimeSharedVMScheduler(fourPEs(1000))
	for i := 0; i < 5; i++ {
		vs.Admit(newTestVM(i, 1500, 2), 0)
	}

	var sum float64
	for _, vm := range vs.Residents() {
		sum += vm.DeliveredRate()
	}
	if sum > vs.TotalCapacity()+1e-9 {
		t.Errorf("sum of delivered rates %f exceeds capacity %f", sum, vs.TotalCapacity())
	}
	if math.Abs(sum-4000) > 1e-9 {
		t.Errorf("contended capacity should be fully shared: got %f, want 4000", sum)
	}
}

func TestTimeSharedVMScheduler_TooManyPEs_Refused(t *testing.T) {
	vs := NewTimeSharedVMScheduler(fourPEs(1000))
	vm := newTestVM(1, 500, 8)

	if vs.Admit(vm, 0) {
		t.Error("admitting an 8-PE VM on a 4-PE machine: got true, want false")
	}
	if len(vs.Residents()) != 0 {
		t.Errorf("residents after refused admission: got %d, want 0", len(vs.Residents()))
	}
}
