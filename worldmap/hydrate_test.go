package worldmap

import (
	"testing"

	"github.com/lixenwraith/driftwood/asset"
	"github.com/lixenwraith/driftwood/component"
	"github.com/lixenwraith/driftwood/core"
	"github.com/lixenwraith/driftwood/ecs"
	"github.com/lixenwraith/driftwood/input"
	"github.com/lixenwraith/driftwood/navgraph"
	"github.com/lixenwraith/driftwood/physics"
	"github.com/lixenwraith/driftwood/scheduler"
)

func navNodeAt(x, y int) navgraph.NavNode {
	return navgraph.NavNode{X: x, Y: y}
}

func smallMap() *MapMeta {
	return &MapMeta{
		Name:       "test",
		GridWidth:  4,
		GridHeight: 4,
		TileWidth:  16,
		TileHeight: 16,
		Layers: []Layer{
			{ID: "ground", Kind: LayerTile, Tiles: []TileMeta{
				{X: 0, Y: 3, Idx: 1},
				{X: 1, Y: 3, Idx: 1, JumpThrough: true},
			}},
			{ID: "elements", Kind: LayerElement, Elements: []ElementMeta{
				{X: 10, Y: 10, Element: "crate"},
				{X: 20, Y: 20, Element: "player_spawner"},
			}},
		},
	}
}

func newTestWorld(meta *MapMeta) (*ecs.World, *asset.MemoryServer) {
	w := ecs.NewWorld(64)
	ecs.SetResource(w.Resources, &Loaded{Meta: meta})
	ecs.SetResource(w.Resources, physics.NewWorld())
	ecs.SetResource(w.Resources, input.Editor{})

	assets := asset.NewMemoryServer()
	assets.Set(ElementHandleFor("crate"), &ElementSpec{
		Body: &component.KinematicBody{Size: core.Vec2{X: 8, Y: 8}},
	})
	assets.Set(ElementHandleFor("player_spawner"), &ElementSpec{IsPlayerSpawner: true})
	return w, assets
}

func runOnce(w *ecs.World, sys scheduler.System) {
	cmds := scheduler.NewCommandQueue()
	sys.Run(w, cmds)
	cmds.Drain(w)
}

func TestHydrateMapSystemSpawnsTilesAndElements(t *testing.T) {
	w, _ := newTestWorld(smallMap())
	runOnce(w, HydrateMapSystem())

	tiles := ecs.Components[component.Tile](w.Components)
	mask := ecs.With(w.Capacity(), tiles.Bitset())
	tileCount := 0
	ecs.EachIndex(mask, func(int) { tileCount++ })
	if tileCount != 2 {
		t.Fatalf("expected 2 tile entities, got %d", tileCount)
	}

	handles := ecs.Components[component.ElementHandle](w.Components)
	elemMask := ecs.With(w.Capacity(), handles.Bitset())
	elemCount := 0
	ecs.EachIndex(elemMask, func(int) { elemCount++ })
	if elemCount != 2 {
		t.Fatalf("expected 2 element entities with handles, got %d", elemCount)
	}

	collisionWorld, _ := ecs.GetResource[*physics.World](w.Resources)
	if kind := collisionWorld.CollideSolidsAt(core.Vec2{X: 0, Y: 3 * 16}, core.Vec2{X: 4, Y: 4}); kind != physics.Solid {
		t.Fatalf("expected a Solid tile at the authored solid cell, got %v", kind)
	}
	if kind := collisionWorld.CollideSolidsAt(core.Vec2{X: 16, Y: 3 * 16}, core.Vec2{X: 4, Y: 4}); kind != physics.Platform {
		t.Fatalf("expected a Platform at the jump-through cell, got %v", kind)
	}
}

func TestHydrateMapSystemRunsOnlyOnce(t *testing.T) {
	meta := smallMap()
	w, _ := newTestWorld(meta)
	runOnce(w, HydrateMapSystem())
	runOnce(w, HydrateMapSystem())

	tiles := ecs.Components[component.Tile](w.Components)
	mask := ecs.With(w.Capacity(), tiles.Bitset())
	count := 0
	ecs.EachIndex(mask, func(int) { count++ })
	if count != 2 {
		t.Fatalf("expected HydrateMapSystem to be a no-op on the second run, got %d tile entities", count)
	}
}

func TestHydrateElementsSystemSkipsPlayerSpawners(t *testing.T) {
	meta := smallMap()
	w, assets := newTestWorld(meta)
	runOnce(w, HydrateMapSystem())
	runOnce(w, HydrateElementsSystem(assets))

	hydrated := ecs.Components[component.MapElementHydrated](w.Components)
	bodies := ecs.Components[component.KinematicBody](w.Components)

	hydratedCount := 0
	ecs.EachIndex(ecs.With(w.Capacity(), hydrated.Bitset()), func(int) { hydratedCount++ })
	if hydratedCount != 1 {
		t.Fatalf("expected exactly one element hydrated by this system (the crate), got %d", hydratedCount)
	}

	bodyCount := 0
	ecs.EachIndex(ecs.With(w.Capacity(), bodies.Bitset()), func(int) { bodyCount++ })
	if bodyCount != 1 {
		t.Fatalf("expected the crate to get a KinematicBody, got %d bodies", bodyCount)
	}
}

func TestDehydrateOutOfBoundsKillsPlayersAndRespawnsItems(t *testing.T) {
	meta := smallMap()
	w, _ := newTestWorld(meta)

	playerIdx := ecs.Components[component.PlayerIdx](w.Components)
	transforms := ecs.Components[core.Transform](w.Components)
	respawnPoints := ecs.Components[component.MapRespawnPoint](w.Components)

	player, _ := w.Entities.Create()
	playerIdx.Insert(int(player.Index), component.PlayerIdx{Index: 0})
	transforms.Insert(int(player.Index), core.FromTranslation(core.Vec3{X: -10000, Y: 0}))

	item, _ := w.Entities.Create()
	spawnPoint := core.Vec3{X: 5, Y: 5}
	transforms.Insert(int(item.Index), core.FromTranslation(core.Vec3{X: -10000, Y: 0}))
	respawnPoints.Insert(int(item.Index), component.MapRespawnPoint{Point: spawnPoint})

	runOnce(w, DehydrateOutOfBoundsSystem())

	if w.Entities.IsAlive(player) {
		t.Fatalf("expected the out-of-bounds player to be killed")
	}
	xform, _ := transforms.Get(int(item.Index))
	if xform.Translation != spawnPoint {
		t.Fatalf("expected the out-of-bounds item to reset to its respawn point, got %+v", xform.Translation)
	}
}

func TestConsumeEditorActionSpawnElement(t *testing.T) {
	meta := smallMap()
	w, _ := newTestWorld(meta)
	editor, _ := ecs.GetResource[input.Editor](w.Resources)
	editor.Pending = &input.EditorAction{
		Kind:     input.EditorSpawnElement,
		Position: core.Vec2{X: 3, Y: 4},
		Handle:   "crate",
	}
	ecs.SetResource(w.Resources, editor)

	runOnce(w, ConsumeEditorActionSystem())

	handles := ecs.Components[component.ElementHandle](w.Components)
	count := 0
	ecs.EachIndex(ecs.With(w.Capacity(), handles.Bitset()), func(int) { count++ })
	if count != 1 {
		t.Fatalf("expected the editor action to spawn one element entity, got %d", count)
	}
	after, _ := ecs.GetResource[input.Editor](w.Resources)
	if after.Pending != nil {
		t.Fatalf("expected Pending to be cleared after consuming the action")
	}
}

func TestConsumeEditorActionDeleteEntity(t *testing.T) {
	meta := smallMap()
	w, _ := newTestWorld(meta)
	e, _ := w.Entities.Create()

	editor, _ := ecs.GetResource[input.Editor](w.Resources)
	editor.Pending = &input.EditorAction{Kind: input.EditorDeleteEntity, Entity: e.Index}
	ecs.SetResource(w.Resources, editor)

	runOnce(w, ConsumeEditorActionSystem())

	if w.Entities.IsAlive(e) {
		t.Fatalf("expected EditorDeleteEntity to kill the targeted entity")
	}
}

func TestConsumeEditorActionRenameMap(t *testing.T) {
	meta := smallMap()
	w, _ := newTestWorld(meta)
	editor, _ := ecs.GetResource[input.Editor](w.Resources)
	editor.Pending = &input.EditorAction{Kind: input.EditorRenameMap, NewName: "renamed"}
	ecs.SetResource(w.Resources, editor)

	runOnce(w, ConsumeEditorActionSystem())

	loaded, _ := ecs.GetResource[*Loaded](w.Resources)
	if loaded.Meta.Name != "renamed" {
		t.Fatalf("expected the loaded map's name to be updated, got %q", loaded.Meta.Name)
	}
}

func TestBuildNavGraphExcludesAuthoredSolidTiles(t *testing.T) {
	meta := smallMap()
	g := BuildNavGraph(meta)

	if g.HasNode(navNodeAt(0, 3)) {
		t.Fatalf("solid authored tile must not be a nav node")
	}
	if !g.HasNode(navNodeAt(1, 3)) {
		t.Fatalf("jump-through tile must still be present as a nav node")
	}
	if !g.HasNode(navNodeAt(2, 0)) {
		t.Fatalf("untouched grid cell must be a nav node")
	}
}
