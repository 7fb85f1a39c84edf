package core

import "math"

// Transform is the per-entity spatial component described in spec §3:
// translation (3D; z is layer depth), rotation (quaternion), scale. It is
// mutated by physics and game systems every tick.
type Transform struct {
	Translation Vec3
	Rotation    Quat
	Scale       Vec2
}

// Identity returns a Transform at the origin with no rotation and unit
// scale.
func Identity() Transform {
	return Transform{Rotation: IdentityQuat, Scale: Vec2{X: 1, Y: 1}}
}

// FromTranslation builds a Transform at the given position with identity
// rotation and unit scale, the common case for map-loaded entities.
func FromTranslation(t Vec3) Transform {
	tr := Identity()
	tr.Translation = t
	return tr
}

// QuatFromAngle builds a Z-axis rotation quaternion from an angle in
// radians. The simulation only ever rotates about Z (spec §4.3 "Advance
// rotation by angular_velocity"), so full quaternion algebra is unneeded.
func QuatFromAngle(radians float64) Quat {
	half := radians / 2
	return Quat{Z: math.Sin(half), W: math.Cos(half)}
}

// Angle extracts the Z-axis rotation angle in radians from a quaternion
// built exclusively by QuatFromAngle (or composed from such quaternions).
func (q Quat) Angle() float64 {
	return 2 * math.Atan2(q.Z, q.W)
}

// RotateZ returns t with its rotation advanced by radians about Z.
func (t Transform) RotateZ(radians float64) Transform {
	t.Rotation = QuatFromAngle(t.Rotation.Angle() + radians)
	return t
}
