package component

import "github.com/lixenwraith/driftwood/core"

// TileCollisionKind classifies a single map tile for collision purposes,
// the per-tile kind carried by a Tile's collision component (spec §3 "Tile
// layer"): Empty | Solid | JumpThrough.
type TileCollisionKind uint8

const (
	TileEmpty TileCollisionKind = iota
	TileSolid
	TileJumpThrough
)

// Tile is the per-tile component attached to the runtime entity a TileLayer
// grid cell references, carrying the tilemap atlas index to draw (spec §3
// "a per-tile Tile{idx} component").
type Tile struct {
	Idx int
}

// TileCollision pairs a tile entity with its collision kind, a separate
// component from Tile since not every referenced entity needs a collision
// kind (decorative tiles can be TileEmpty without the rest of Tile
// changing shape).
type TileCollision struct {
	Kind TileCollisionKind
}

// MapElementHydrated marks a spawner entity that has already produced its
// owned runtime entity/entities. Removing this marker is how a respawn is
// requested (spec §3 "Lifecycle" and §4.5).
type MapElementHydrated struct{}

// ElementHandle points a not-yet-hydrated map element entity at its asset
// metadata; hydration systems read it via assets.Get to decide what kind of
// runtime entity to build (spec §4.5, §6 "Asset server").
type ElementHandle struct {
	TypeID uint32
	Path   string
}

// MapRespawnPoint records where an out-of-bounds item should be placed back
// (spec §4.5 "DehydrateOutOfBounds ... out-of-bounds items respawn at the
// stored spawn point").
type MapRespawnPoint struct {
	Point core.Vec3
}

// PlayerSpawnerMarker identifies a map element entity as a player spawn
// point (spec §4.8, grounded on original_source's PlayerSpawner marker
// component).
type PlayerSpawnerMarker struct{}
