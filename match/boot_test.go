package match

import (
	"testing"
	"time"

	"github.com/lixenwraith/driftwood/asset"
	"github.com/lixenwraith/driftwood/component"
	"github.com/lixenwraith/driftwood/ecs"
	"github.com/lixenwraith/driftwood/input"
	"github.com/lixenwraith/driftwood/worldmap"
)

func testMap() *worldmap.MapMeta {
	const width, height = 10, 8
	tiles := make([]worldmap.TileMeta, 0, width)
	for x := 0; x < width; x++ {
		tiles = append(tiles, worldmap.TileMeta{X: x, Y: 0, Idx: 1})
	}
	return &worldmap.MapMeta{
		Name:       "boot-test",
		GridWidth:  width,
		GridHeight: height,
		TileWidth:  16,
		TileHeight: 16,
		Layers: []worldmap.Layer{
			{ID: "ground", Kind: worldmap.LayerTile, Tiles: tiles},
			{ID: "elements", Kind: worldmap.LayerElement, Elements: []worldmap.ElementMeta{
				{X: 32, Y: 48, Element: "player_spawner"},
			}},
		},
	}
}

func testAssets(mapMeta *worldmap.MapMeta) *asset.MemoryServer {
	assets := asset.NewMemoryServer()
	for _, layer := range mapMeta.Layers {
		if layer.Kind != worldmap.LayerElement {
			continue
		}
		for _, elem := range layer.Elements {
			if elem.Element == "player_spawner" {
				assets.Set(worldmap.ElementHandleFor(elem.Element), &worldmap.ElementSpec{IsPlayerSpawner: true})
			}
		}
	}
	return assets
}

func countWithComponent[T any](w *ecs.World) int {
	store := ecs.Components[T](w.Components)
	mask := ecs.With(w.Capacity(), store.Bitset())
	n := 0
	ecs.EachIndex(mask, func(int) { n++ })
	return n
}

func TestBootHydratesMapOnFirstTick(t *testing.T) {
	mapMeta := testMap()
	m := Boot(Config{Map: mapMeta, Assets: testAssets(mapMeta), Seed: 1})

	players := input.Players{}
	now := time.Now()
	now = now.Add(20 * time.Millisecond)
	m.Step(now, players)

	if got := countWithComponent[component.PlayerSpawnerMarker](m.World); got != 1 {
		t.Fatalf("expected exactly one hydrated player spawner, got %d", got)
	}
}

func TestStepAdvancesTickAndRespawnsActivePlayer(t *testing.T) {
	mapMeta := testMap()
	m := Boot(Config{Map: mapMeta, Assets: testAssets(mapMeta), Seed: 1})

	players := input.Players{}
	players.Slots[0].Active = true

	start := time.Now()
	for i := 0; i < 5; i++ {
		start = start.Add(20 * time.Millisecond)
		m.Step(start, players)
	}

	if m.Tick() == 0 {
		t.Fatalf("expected the tick counter to advance after stepping, got %d", m.Tick())
	}
	if got := countWithComponent[component.PlayerIdx](m.World); got != 1 {
		t.Fatalf("expected exactly one spawned player entity, got %d", got)
	}
}

func TestStepIsNoopWithoutElapsedTime(t *testing.T) {
	mapMeta := testMap()
	m := Boot(Config{Map: mapMeta, Assets: testAssets(mapMeta), Seed: 1})

	players := input.Players{}
	now := time.Now()
	m.Step(now, players)
	firstTick := m.Tick()

	// Same instant again: zero elapsed wall-clock time must not advance
	// the tick counter, since the scheduler only steps on whole
	// accumulated Step durations.
	m.Step(now, players)
	if m.Tick() != firstTick {
		t.Fatalf("expected tick to stay at %d with no elapsed time, got %d", firstTick, m.Tick())
	}
}

func TestBootWithNilMapDoesNotPanic(t *testing.T) {
	m := Boot(Config{Assets: asset.NewMemoryServer(), Seed: 1})
	players := input.Players{}
	now := time.Now().Add(20 * time.Millisecond)
	m.Step(now, players)
	if m.Tick() == 0 {
		t.Fatalf("expected the tick counter to advance even with no map installed")
	}
}
