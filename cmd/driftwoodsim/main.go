// Command driftwoodsim is a small headless driver for the simulation
// core: it boots a match from an authored map (or a minimal built-in one
// when no map path is given), steps it at a fixed rate for a requested
// duration, and prints the diagnostic counters at the end. It exercises
// the external Boot/Step API from spec §6 the way a real host (game
// client or dedicated server) would drive it, without any of the
// rendering/audio/networking the spec excludes from the core.
package main

import (
	"flag"
	"fmt"
	"os"
	"sync/atomic"
	"time"

	"github.com/lixenwraith/driftwood/asset"
	"github.com/lixenwraith/driftwood/diag"
	"github.com/lixenwraith/driftwood/input"
	"github.com/lixenwraith/driftwood/match"
	"github.com/lixenwraith/driftwood/worldmap"
)

func main() {
	mapPath := flag.String("map", "", "path to a TOML map meta file; uses a built-in test map if empty")
	corePath := flag.String("core", "", "path to a TOML core meta file; uses defaults if empty")
	seconds := flag.Float64("seconds", 2.0, "simulated duration to run")
	seed := flag.Uint("seed", 1, "deterministic RNG seed")
	flag.Parse()

	mapMeta, err := loadMap(*mapPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "driftwoodsim: %v\n", err)
		os.Exit(1)
	}

	var coreMeta *worldmap.CoreMeta
	if *corePath != "" {
		coreMeta, err = worldmap.LoadCoreMeta(*corePath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "driftwoodsim: %v\n", err)
			os.Exit(1)
		}
	}

	assets := asset.NewMemoryServer()
	registerBuiltinSpawner(assets, mapMeta)

	diagReg := diag.NewRegistry()
	m := match.Boot(match.Config{
		Map:     mapMeta,
		Core:    coreMeta,
		Assets:  assets,
		Seed:    uint32(*seed),
		DiagReg: diagReg,
	})

	players := input.Players{}
	players.Slots[0].Active = true

	start := time.Now()
	frameDelta := 16 * time.Millisecond
	elapsed := time.Duration(0)
	target := time.Duration(*seconds * float64(time.Second))

	now := start
	for elapsed < target {
		now = now.Add(frameDelta)
		m.Step(now, players)
		elapsed += frameDelta
	}

	fmt.Printf("ran to tick %d\n", m.Tick())
	diagReg.Ints.Range(func(key string, v *atomic.Int64) {
		fmt.Printf("  %s = %d\n", key, v.Load())
	})
}

func loadMap(path string) (*worldmap.MapMeta, error) {
	if path == "" {
		return builtinTestMap(), nil
	}
	return worldmap.LoadMapMeta(path)
}

// builtinTestMap is a tiny flat-ground map with one player spawner, used
// when the driver is run without an authored map file.
func builtinTestMap() *worldmap.MapMeta {
	const width, height = 16, 12
	tiles := make([]worldmap.TileMeta, 0, width)
	for x := 0; x < width; x++ {
		tiles = append(tiles, worldmap.TileMeta{X: x, Y: 0, Idx: 1})
	}
	return &worldmap.MapMeta{
		Name:       "builtin-test",
		GridWidth:  width,
		GridHeight: height,
		TileWidth:  16,
		TileHeight: 16,
		Layers: []worldmap.Layer{
			{ID: "ground", Kind: worldmap.LayerTile, Tiles: tiles},
			{ID: "elements", Kind: worldmap.LayerElement, Elements: []worldmap.ElementMeta{
				{X: 64, Y: 32, Element: "player_spawner"},
			}},
		},
	}
}

func registerBuiltinSpawner(assets *asset.MemoryServer, mapMeta *worldmap.MapMeta) {
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
}
