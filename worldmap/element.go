package worldmap

import "github.com/lixenwraith/driftwood/component"

// ElementSpec is the resolved metadata behind an ElementHandle: a
// declarative description of which mechanism components a hydrated
// element gets, rather than a named weapon or item type (spec's Non-goal
// "specific game content (weapons/items)" excludes content; ElementSpec is
// the mechanism those contents would be built from). A host's asset
// pipeline produces one of these per authored element and registers it
// into an asset.Server under the element's handle.
type ElementSpec struct {
	// Body, if non-nil, gives the hydrated entity a kinematic body at this
	// template (copied, never shared, since each hydrated instance needs
	// its own mutable Velocity/flags).
	Body *component.KinematicBody

	// Fuse, if non-nil, gives the hydrated entity a countdown ticked by
	// item.FuseSystem; the expiry event itself is fired by this core, but
	// what it turns into (an explosion, splash damage) is left to the
	// match.Config.OnFuseExpired callback a host gameplay layer supplies
	// (spec §8 Scenario B).
	Fuse *component.FuseTimer

	// Lifetime, if non-nil, kills the hydrated entity once its timer
	// expires (e.g. a thrown/placed entity that should vanish).
	Lifetime *component.Lifetime

	// Projectile, if non-nil, marks the entity as a moving hit-test source
	// (spec §8 Scenario E).
	Projectile *component.Projectile

	// DamageRegion, if non-nil, marks the entity as an area hazard.
	DamageRegion *component.DamageRegion

	// IsPlayerSpawner marks this element as a PlayerSpawner rather than an
	// ordinary item (spec §4.8).
	IsPlayerSpawner bool
}
