package sim

import (
	"hash/fnv"
	"math/rand"
)

// SimulationKey is the seed behind every randomized bandwidth sequence.
// Equal keys and scenario definitions yield identical samples, and therefore
// identical trajectories.
type SimulationKey int64

// NewSimulationKey wraps a seed.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// SubsystemBandwidth draws bandwidth from the unmodified seed.
const SubsystemBandwidth = "bandwidth"

// SubsystemScenario names the stream of one bandwidth scenario, so two scenarios
// sharing a seed still get independent samples.
func SubsystemScenario(name string) string {
	return "scenario_" + name
}

// PartitionedRNG hands out one *rand.Rand per stream name. SubsystemBandwidth
// uses the seed as is; any other name uses seed XOR fnv1a64(name).
// Not safe for concurrent use; workload generation owns one per scenario.
type PartitionedRNG struct {
	key     SimulationKey
	streams map[string]*rand.Rand
}

// NewPartitionedRNG returns an RNG set for key.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{key: key, streams: make(map[string]*rand.Rand)}
}

// ForSubsystem returns the stream for name, creating it on first use.
func (p *PartitionedRNG) ForSubsystem(name string) *rand.Rand {
	if rng, ok := p.streams[name]; ok {
		return rng
	}
	seed := int64(p.key)
	if name != SubsystemBandwidth {
		seed ^= fnv1a64(name)
	}
	rng := rand.New(rand.NewSource(seed))
	p.streams[name] = rng
	return rng
}

// Key returns the seed this set was built from.
func (p *PartitionedRNG) Key() SimulationKey {
	return p.key
}

func fnv1a64(s string) int64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(s))
	return int64(h.Sum64())
}
