package sim

import (
	"hash/fnv"
	"math/rand"
)

// PartitionedRNG provides isolated RNG streams per subsystem so a run's
// randomness is deterministic and order-independent: drawing from one
// subsystem never perturbs another.
type PartitionedRNG struct {
	masterSeed int64
	subsystems map[string]*rand.Rand
}

// NewPartitionedRNG creates a partitioned RNG from the master seed.
func NewPartitionedRNG(masterSeed int64) *PartitionedRNG {
	return &PartitionedRNG{
		masterSeed: masterSeed,
		subsystems: make(map[string]*rand.Rand),
	}
}

// ForSubsystem returns the RNG for the named subsystem, created lazily.
// Repeated calls with the same name return the same stream.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, exists := p.subsystems[name]; exists {
		return rng
	}
	rng := rand.New(rand.NewSource(p.SeedFor(name)))
	p.subsystems[name] = rng
	return rng
}

// SeedFor derives a subsystem seed from the master seed and subsystem name:
// masterSeed XOR hash(name). Hash-based derivation keeps the mapping
// independent of the order subsystems are first used in.
func (p *PartitionedRNG) SeedFor(name string) int64 {
	h := fnv.New64a()
	h.Write([]byte(name))
	return p.masterSeed ^ int64(h.Sum64())
}

// Subsystem name constants.
const (
	SubsystemWorkload  = "workload"
	SubsystemPlacement = "placement"
)
