package physics

import (
	"testing"

	"github.com/lixenwraith/driftwood/core"
)

func flatFloor(width, height int, floorY int) []ColliderKind {
	tiles := make([]ColliderKind, width*height)
	for x := 0; x < width; x++ {
		tiles[floorY*width+x] = Solid
	}
	return tiles
}

func TestMoveActorXStopsAtSolid(t *testing.T) {
	w := NewWorld()
	w.AddLayer(defaultTag, core.Vec2{X: 16, Y: 16}, 10, flatFloor(10, 10, 9))
	// A solid wall at column 3.
	tiles := make([]ColliderKind, 10*10)
	tiles[5*10+3] = Solid
	w.AddLayer(defaultTag, core.Vec2{X: 16, Y: 16}, 10, tiles)

	a := w.AddActor(core.Vec2{X: 0, Y: 5 * 16}, core.Vec2{X: 8, Y: 8})

	ok := w.MoveActorX(a, 200)
	if ok {
		t.Fatalf("expected MoveActorX to report blocked before covering the full distance")
	}
	pos := w.ActorPosition(a)
	if pos.X >= 3*16 {
		t.Fatalf("actor must stop before the solid wall at x=%.1f, got x=%.1f", 3*16.0, pos.X)
	}
}

func TestMoveActorXUnblockedTravelsFullDistance(t *testing.T) {
	w := NewWorld()
	a := w.AddActor(core.Vec2{X: 0, Y: 0}, core.Vec2{X: 8, Y: 8})

	if !w.MoveActorX(a, 50) {
		t.Fatalf("expected unobstructed MoveActorX to return true")
	}
	if got := w.ActorPosition(a).X; got != 50 {
		t.Fatalf("expected actor to travel the full 50 units, got %.1f", got)
	}
}

// Y increases downward (matching kinematic.go's gravity, which adds a
// positive value to Velocity.Y): moving up is a negative dy, falling down is
// a positive dy.

func TestPlatformAllowsJumpThroughFromBelow(t *testing.T) {
	w := NewWorld()
	tiles := make([]ColliderKind, 10*10)
	tiles[5*10+2] = Platform
	w.AddLayer(defaultTag, core.Vec2{X: 16, Y: 16}, 10, tiles)

	// Actor below the platform tile (larger Y), jumping up through it.
	a := w.AddActor(core.Vec2{X: 2 * 16, Y: 6 * 16}, core.Vec2{X: 8, Y: 8})
	if !w.MoveActorY(a, -60) {
		t.Fatalf("actor moving up (negative dy) must pass through a platform tile")
	}
}

func TestPlatformBlocksFromAboveUntilDescending(t *testing.T) {
	w := NewWorld()
	tiles := make([]ColliderKind, 10*10)
	tiles[5*10+2] = Platform
	w.AddLayer(defaultTag, core.Vec2{X: 16, Y: 16}, 10, tiles)

	a := w.AddActor(core.Vec2{X: 2 * 16, Y: 4 * 16}, core.Vec2{X: 8, Y: 8})
	if w.IsDescending(a) {
		t.Fatalf("actor spawned above a platform must not start descending")
	}

	ok := w.MoveActorY(a, 100)
	if ok {
		t.Fatalf("actor falling onto a platform from above must stop on first contact")
	}
	if w.IsDescending(a) {
		t.Fatalf("landing atop a platform from above must not set isDescending without an explicit Descend()")
	}
}

func TestDescendPassesThroughPlatform(t *testing.T) {
	w := NewWorld()
	tiles := make([]ColliderKind, 10*10)
	tiles[5*10+2] = Platform
	w.AddLayer(defaultTag, core.Vec2{X: 16, Y: 16}, 10, tiles)

	a := w.AddActor(core.Vec2{X: 2 * 16, Y: 4 * 16}, core.Vec2{X: 8, Y: 8})
	w.Descend(a)
	if !w.MoveActorY(a, 60) {
		t.Fatalf("a descending actor must pass down through a platform tile")
	}
}

func TestMoveSolidPushesAndSquishesActor(t *testing.T) {
	w := NewWorld()
	// Wall the actor against, so the pushing solid squishes it.
	tiles := make([]ColliderKind, 20*10)
	tiles[5*20+10] = Solid
	w.AddLayer(defaultTag, core.Vec2{X: 16, Y: 16}, 20, tiles)

	s := w.AddSolid(core.Vec2{X: 8 * 16, Y: 5 * 16}, core.Vec2{X: 16, Y: 16})
	a := w.AddActor(core.Vec2{X: 9*16 + 4, Y: 5 * 16}, core.Vec2{X: 8, Y: 8})

	for i := 0; i < 5; i++ {
		w.MoveSolid(s, core.Vec2{X: 16, Y: 0})
	}

	if !w.IsSquished(a) {
		t.Fatalf("actor pinned between an advancing solid and a wall must be squished")
	}
}

func TestCollideSolidsAtDominance(t *testing.T) {
	w := NewWorld()
	tiles := make([]ColliderKind, 4*4)
	tiles[1*4+1] = Platform
	w.AddLayer(defaultTag, core.Vec2{X: 16, Y: 16}, 4, tiles)

	if kind := w.CollideSolidsAt(core.Vec2{X: 16, Y: 16}, core.Vec2{X: 8, Y: 8}); kind != Platform {
		t.Fatalf("expected Platform at a platform-only tile, got %v", kind)
	}
	if kind := w.CollideSolidsAt(core.Vec2{X: 100, Y: 100}, core.Vec2{X: 8, Y: 8}); kind != Empty {
		t.Fatalf("expected Empty far from any tile, got %v", kind)
	}
}

func TestWorldCloneResourceIsIndependent(t *testing.T) {
	w := NewWorld()
	a := w.AddActor(core.Vec2{X: 0, Y: 0}, core.Vec2{X: 8, Y: 8})

	clonedAny := w.CloneResource()
	clone, ok := clonedAny.(*World)
	if !ok {
		t.Fatalf("CloneResource must return a *World, got %T", clonedAny)
	}

	clone.MoveActorX(a, 100)
	if w.ActorPosition(a).X != 0 {
		t.Fatalf("mutating the clone must not move the actor in the original world")
	}
}
