package component

// Timer is the generic tick-based countdown described in spec §9
// ("Coroutine-like per-item behavior ... a timer component plus a
// tick-based system is the canonical pattern"). Specific item mechanisms
// (fuse, lifetime) embed or pair with it rather than reimplementing
// countdown bookkeeping.
type Timer struct {
	Remaining float64
	Duration  float64
}

// Tick advances the timer by dt seconds and reports whether it has just
// expired this call (fires once, at the tick that crosses zero).
func (t *Timer) Tick(dt float64) (expired bool) {
	if t.Remaining <= 0 {
		return false
	}
	t.Remaining -= dt
	if t.Remaining <= 0 {
		t.Remaining = 0
		return true
	}
	return false
}

// FuseTimer drives the generic "armed item explodes after a delay"
// mechanism used by Scenario B. item.FuseSystem hands a copy of the
// expired timer, ExplosionLifetime included, to the host's expiry
// callback; no code in this module spawns the explosion entity or reads
// ExplosionLifetime itself.
type FuseTimer struct {
	Timer
	ExplosionLifetime float64
	SpawnerEntityIdx  uint32
	SpawnerEntityGen  uint32
}

// Lifetime is a generic "kill this entity after N seconds" component, used
// for transient effect entities (explosion sprites, damage regions).
type Lifetime struct {
	Timer
}

// FrameAnimation is a small frame-index animation driven at a fixed frames-
// per-second rate, the mechanism Scenario B exercises ("animation switches
// to frames [3,4,5] at 8 fps").
type FrameAnimation struct {
	Frames     []int
	FPS        float64
	elapsed    float64
	FrameIndex int
}

// NewFrameAnimation builds a FrameAnimation starting at frame 0.
func NewFrameAnimation(frames []int, fps float64) FrameAnimation {
	return FrameAnimation{Frames: frames, FPS: fps}
}

// Advance steps the animation by dt seconds, wrapping the frame index.
func (a *FrameAnimation) Advance(dt float64) {
	if len(a.Frames) == 0 || a.FPS <= 0 {
		return
	}
	a.elapsed += dt
	step := 1.0 / a.FPS
	for a.elapsed >= step {
		a.elapsed -= step
		a.FrameIndex = (a.FrameIndex + 1) % len(a.Frames)
	}
}

// CurrentFrame returns the currently displayed atlas frame index.
func (a *FrameAnimation) CurrentFrame() int {
	if len(a.Frames) == 0 {
		return 0
	}
	return a.Frames[a.FrameIndex]
}

// DamageRegion marks an entity as dealing contact damage, a generic stand-in
// for the original's per-weapon damage regions; it carries no policy beyond
// being a join-able marker for whatever gameplay layer consumes it.
type DamageRegion struct {
	Radius float64
}

// Projectile marks an entity as a simple straight-line physics body that
// despawns and emits an explosion/audio cue on its first solid hit (spec
// §8 Scenario E).
type Projectile struct {
	HitRadius float64
}
