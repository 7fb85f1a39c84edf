// Package worldmap loads map metadata and hydrates it into a live World:
// tiles, tile layers, and map elements (spec §3 "Map meta", §4.5 "Map
// hydration"). The loader follows the teacher's (by way of dm-vev-adamant,
// the rest of the retrieval pack's TOML user) go-toml-based config style;
// the hydration systems are grounded on the original Rust core's
// spawn_map/handle_out_of_bounds_players_and_items (original_source/core/
// src/map.rs).
package worldmap

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml"

	"github.com/lixenwraith/driftwood/asset"
	"github.com/lixenwraith/driftwood/core"
)

// TileMeta is one authored tile: its grid position, atlas index, and
// whether it is jump-through (semi-solid) rather than fully solid --
// everything else about a tile's collision kind follows from this one
// authored bit (spec §3 "Tile layer").
type TileMeta struct {
	X           int  `toml:"x"`
	Y           int  `toml:"y"`
	Idx         int  `toml:"idx"`
	JumpThrough bool `toml:"jump_through"`
}

// ElementMeta is one authored map element: its position and the handle to
// its behavioral metadata (spec §3 "Map meta (loaded state)").
type ElementMeta struct {
	X       float64 `toml:"x"`
	Y       float64 `toml:"y"`
	Element string  `toml:"element"`
}

// LayerKind distinguishes a tile layer from an element layer.
type LayerKind uint8

const (
	LayerTile LayerKind = iota
	LayerElement
)

// Layer is one ordered layer of the map: either a grid of tiles or a list
// of elements, never both (spec §3 "ordered layers (each: id, kind ∈
// {Tile, Element}, tiles, elements, tilemap handle)").
type Layer struct {
	ID       string        `toml:"id"`
	Kind     LayerKind     `toml:"-"`
	KindName string        `toml:"kind"`
	Tiles    []TileMeta    `toml:"tiles"`
	Elements []ElementMeta `toml:"elements"`
	Tilemap  string        `toml:"tilemap"`
}

// MapMeta is the full, immutable-during-a-match map definition (spec §3
// "Map meta (loaded state)").
type MapMeta struct {
	Name            string  `toml:"name"`
	GridWidth       int     `toml:"grid_width"`
	GridHeight      int     `toml:"grid_height"`
	TileWidth       float64 `toml:"tile_width"`
	TileHeight      float64 `toml:"tile_height"`
	BackgroundColor string  `toml:"background_color"`
	Layers          []Layer `toml:"layer"`
}

// Width returns the map's pixel width, used by DehydrateOutOfBounds to size
// the kill rectangle (spec §4.5).
func (m *MapMeta) Width() float64 { return float64(m.GridWidth) * m.TileWidth }

// LoadMapMeta reads and parses a map definition from a TOML file.
func LoadMapMeta(path string) (*MapMeta, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("worldmap: read map %q: %w", path, err)
	}
	var meta MapMeta
	if err := toml.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("worldmap: parse map %q: %w", path, err)
	}
	for i := range meta.Layers {
		switch meta.Layers[i].KindName {
		case "element":
			meta.Layers[i].Kind = LayerElement
		default:
			meta.Layers[i].Kind = LayerTile
		}
	}
	return &meta, nil
}

// CoreMeta is the host-facing match configuration: physics tuning, camera
// height, and the player-meta handles selectable in input slots (spec §6
// "Match boot ... a CoreMeta configuration (physics constants, camera
// height, player-meta handles)").
type CoreMeta struct {
	Gravity          float64           `toml:"gravity"`
	TerminalVelocity float64           `toml:"terminal_velocity"`
	GroundFriction   float64           `toml:"ground_friction"`
	JumpSpeed        float64           `toml:"jump_speed"`
	CameraHeight     float64           `toml:"camera_height"`
	PlayerHandles    []string          `toml:"player_handles"`
}

// LoadCoreMeta reads the host-facing match configuration from a TOML file.
func LoadCoreMeta(path string) (*CoreMeta, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("worldmap: read core meta %q: %w", path, err)
	}
	var meta CoreMeta
	if err := toml.Unmarshal(raw, &meta); err != nil {
		return nil, fmt.Errorf("worldmap: parse core meta %q: %w", path, err)
	}
	return &meta, nil
}

// ElementHandleFor derives the deterministic asset handle for an element
// path the way every other handle in the simulation is derived (spec §6
// "Asset server ... Handles are (type_id, path) pairs with stable hash").
func ElementHandleFor(path string) asset.Handle {
	return asset.NewHandle(elementTypeID, path)
}

const elementTypeID asset.TypeID = 1

// spawnPointFor returns the Vec3 a respawning item should return to: its
// authored position at the layer's depth.
func spawnPointFor(e ElementMeta, z float64) core.Vec3 {
	return core.Vec3{X: e.X, Y: e.Y, Z: z}
}
