package core

// Vec2 is a 2D vector used for positions, velocities and directions.
type Vec2 struct {
	X, Y float64
}

func (v Vec2) Add(o Vec2) Vec2       { return Vec2{v.X + o.X, v.Y + o.Y} }
func (v Vec2) Sub(o Vec2) Vec2       { return Vec2{v.X - o.X, v.Y - o.Y} }
func (v Vec2) Scale(s float64) Vec2  { return Vec2{v.X * s, v.Y * s} }

// Vec3 is a 3D vector; Z is used exclusively as layer/stack depth, never as
// a physics axis (spec §3 Transform: "z is layer depth").
type Vec3 struct {
	X, Y, Z float64
}

func (v Vec3) Add(o Vec3) Vec3      { return Vec3{v.X + o.X, v.Y + o.Y, v.Z + o.Z} }
func (v Vec3) Sub(o Vec3) Vec3      { return Vec3{v.X - o.X, v.Y - o.Y, v.Z - o.Z} }
func (v Vec3) Scale(s float64) Vec3 { return Vec3{v.X * s, v.Y * s, v.Z * s} }

// XY drops the Z component.
func (v Vec3) XY() Vec2 { return Vec2{v.X, v.Y} }

// Vec3FromXY builds a Vec3 from a 2D point plus an explicit layer depth.
func Vec3FromXY(xy Vec2, z float64) Vec3 {
	return Vec3{X: xy.X, Y: xy.Y, Z: z}
}

// Quat is a quaternion rotation, carried per spec §3 Transform ("rotation
// (quaternion)"); the simulation only ever rotates about Z so Quat exposes
// a FromAngle/ToAngle pair rather than full quaternion algebra.
type Quat struct {
	X, Y, Z, W float64
}

// IdentityQuat is the zero-rotation quaternion.
var IdentityQuat = Quat{W: 1}

// Rect is an axis-aligned bounding box in world units, position is the
// top-left corner.
type Rect struct {
	X, Y, W, H float64
}

// Overlaps reports whether r and o share any area, using strict
// containment on the edges (grounded on the original platformer.rs Rect
// semantics: touching edges do not overlap).
func (r Rect) Overlaps(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X &&
		r.Y < o.Y+o.H && r.Y+r.H > o.Y
}

// Contains reports whether point p lies within r.
func (r Rect) Contains(p Vec2) bool {
	return p.X >= r.X && p.X < r.X+r.W && p.Y >= r.Y && p.Y < r.Y+r.H
}
