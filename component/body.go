// Package component holds the shared per-entity component types the
// simulation's systems read and write: kinematic bodies, map/spawner
// bookkeeping, player identity/state, and small item-behavior markers.
// Grounded on the teacher's component/components packages, which hold
// small plain structs registered into typed ECS stores, and on the
// original Rust core's Collider/KinematicBody/PlatformerControl shapes
// (core/src/physics_impl/platformer.rs, core/src/resources.rs).
package component

import "github.com/lixenwraith/driftwood/core"

// ColliderShapeKind selects how KinematicBody.Size is interpreted.
type ColliderShapeKind uint8

const (
	ColliderRect ColliderShapeKind = iota
	ColliderCircle
)

// KinematicBody is the physics attribute bag described in spec §3
// "Kinematic body": collider shape, velocity, angular velocity, gravity
// scale, friction/mass/rotation flags, bounciness, ground/platform/wall
// contact flags, deactivation and spawn-protection state.
type KinematicBody struct {
	Shape ColliderShapeKind
	// Size is width/height for ColliderRect, or (diameter, diameter) for
	// ColliderCircle -- a circle is queried as its bounding box by the
	// collision world, matching the original's Size<f32>-only collider.
	Size core.Vec2

	Velocity        core.Vec2
	AngularVelocity float64

	GravityScale float64
	HasFriction  bool
	HasMass      bool
	CanRotate    bool
	Bounciness   float64

	OnGround   bool
	OnPlatform bool
	OnWall     bool

	IsDeactivated bool
	IsDescending  bool
	IsSpawning    bool
}

// NewRectBody creates a KinematicBody with a rectangular collider and the
// param-default physics tuning.
func NewRectBody(width, height float64) KinematicBody {
	return KinematicBody{
		Shape:        ColliderRect,
		Size:         core.Vec2{X: width, Y: height},
		GravityScale: 1,
		HasFriction:  true,
		HasMass:      true,
		CanRotate:    false,
	}
}
