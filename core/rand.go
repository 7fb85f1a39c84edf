package core

// Rand is a xorshift32 deterministic RNG, grounded on vmath.FastRand in the
// teacher repo. It is the sole source of non-determinism-looking behavior
// the simulation is allowed: given the same seed and the same call
// sequence, Next/Intn always produce the same stream on every peer, which
// is required by the determinism contract (spec §4.3).
type Rand struct {
	state uint32
}

// NewRand creates a Rand seeded with seed. A zero seed is remapped to 1,
// since xorshift is stuck at zero forever otherwise.
func NewRand(seed uint32) *Rand {
	if seed == 0 {
		seed = 1
	}
	return &Rand{state: seed}
}

// Next advances the generator and returns the next pseudo-random value.
func (r *Rand) Next() uint32 {
	x := r.state
	x ^= x << 13
	x ^= x >> 17
	x ^= x << 5
	r.state = x
	return x
}

// Intn returns a pseudo-random integer in [0, n). Returns 0 for n <= 0.
func (r *Rand) Intn(n int) int {
	if n <= 0 {
		return 0
	}
	return int(r.Next() % uint32(n))
}

// Float64 returns a pseudo-random float64 in [0, 1).
func (r *Rand) Float64() float64 {
	return float64(r.Next()) / float64(1<<32)
}

// State returns the current internal state, for snapshotting as part of a
// World clone (spec §8 property 4: snapshot/restore must reproduce
// identical future ticks, which requires the RNG stream to resume exactly).
func (r *Rand) State() uint32 { return r.state }

// SetState restores a previously captured internal state.
func (r *Rand) SetState(s uint32) { r.state = s }

// Clone returns an independent copy of the generator with the same state.
func (r *Rand) Clone() *Rand {
	return &Rand{state: r.state}
}

// CloneResource satisfies ecs.cloner so a *Rand stored as a resource is
// deep-copied on World.Clone rather than aliased, which would otherwise let
// two rollback snapshots advance the same stream (spec §8 property 4).
func (r *Rand) CloneResource() any {
	return r.Clone()
}
