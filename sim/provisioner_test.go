package sim

import "testing"

func TestProvisioner_Allocate_WithinCapacity_Succeeds(t *testing.T) {
	// GIVEN a provisioner with 1024 units
	p := NewProvisioner("ram", 1024)

	// WHEN 512 units are allocated
	ok := p.Allocate(512)

	// THEN the allocation succeeds and availability drops
	if !ok {
		t.Fatal("Allocate(512) on 1024 capacity: got false, want true")
	}
	if p.Available() != 512 {
		t.Errorf("Available: got %f, want 512", p.Available())
	}
	if p.Allocated() != 512 {
		t.Errorf("Allocated: got %f, want 512", p.Allocated())
	}
}

func TestProvisioner_Allocate_OverCapacity_Rejected(t *testing.T) {
	// GIVEN a provisioner with 100 units, 80 already taken
	p := NewProvisioner("bandwidth", 100)
	p.Allocate(80)

	// WHEN 30 more units are requested
	ok := p.Allocate(30)

	// THEN the request is rejected and state is unchanged
	if ok {
		t.Fatal("Allocate(30) with 20 available: got true, want false")
	}
	if p.Available() != 20 {
		t.Errorf("Available after rejection: got %f, want 20", p.Available())
	}
}

func TestProvisioner_Release_ClampedAtCapacity(t *testing.T) {
	// GIVEN a provisioner with 50 of 100 units allocated
	p := NewProvisioner("storage", 100)
	p.Allocate(50)

	// WHEN more than the allocated amount is released
	p.Release(80)

	// THEN availability is clamped so allocated never goes negative
	if p.Available() != 100 {
		t.Errorf("Available after over-release: got %f, want 100", p.Available())
	}
	if p.Allocated() != 0 {
		t.Errorf("Allocated after over-release: got %f, want 0", p.Allocated())
	}
}

func TestProvisioner_Allocate_ExactFit(t *testing.T) {
	p := NewProvisioner("ram", 256)
	if !p.Allocate(256) {
		t.Fatal("Allocate(256) on 256 capacity: got false, want true")
	}
	if p.Available() != 0 {
		t.Errorf("Available: got %f, want 0", p.Available())
	}
}
