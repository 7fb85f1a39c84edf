package spawner

import (
	"github.com/lixenwraith/driftwood/asset"
	"github.com/lixenwraith/driftwood/component"
	"github.com/lixenwraith/driftwood/core"
	"github.com/lixenwraith/driftwood/ecs"
	"github.com/lixenwraith/driftwood/input"
	"github.com/lixenwraith/driftwood/param"
	"github.com/lixenwraith/driftwood/scheduler"
	"github.com/lixenwraith/driftwood/worldmap"
)

// CurrentSpawner is the round-robin index into the live player-spawner
// pool, the Go analogue of player_spawner.rs's CurrentSpawner resource.
type CurrentSpawner struct {
	Index int
}

// CloneResource gives *CurrentSpawner value semantics for rollback: the
// resource is stored by pointer (it is mutated in place every tick), so
// the clone must be a fresh pointer to a copied struct, never the same
// pointer aliased across two World.Clone snapshots.
func (c *CurrentSpawner) CloneResource() any {
	clone := *c
	return &clone
}

// HydratePlayerSpawnersSystem marks PlayerSpawner-kind elements as
// hydrated, tags them with PlayerSpawnerMarker, and registers each with the
// manager as a grouped spawner under its own key, ported from
// player_spawner.rs's hydrate system. Spawners are not linked to one
// another: each owns only the players UpdatePlayerSpawnersSystem spawns
// at it.
func HydratePlayerSpawnersSystem(assets asset.Server, manager *Manager) scheduler.System {
	return scheduler.NewFunc("spawner.hydrate_player_spawners", func(w *ecs.World, cmds *scheduler.CommandQueue) {
		hydrated := ecs.Components[component.MapElementHydrated](w.Components)
		handles := ecs.Components[component.ElementHandle](w.Components)
		markers := ecs.Components[component.PlayerSpawnerMarker](w.Components)

		mask := ecs.With(w.Capacity(), handles.Bitset())
		mask = ecs.Without(mask, hydrated.Bitset())

		ecs.EachEntity(w.Entities, mask, func(e core.Entity) {
			index := int(e.Index)
			handle, _ := handles.Get(index)
			h := asset.NewHandle(asset.TypeID(handle.TypeID), handle.Path)

			spec, found := assets.Get(h)
			if !found {
				return
			}
			elementSpec, ok := spec.(*worldmap.ElementSpec)
			if !ok || !elementSpec.IsPlayerSpawner {
				return
			}

			hydrated.Insert(index, component.MapElementHydrated{})
			markers.Insert(index, component.PlayerSpawnerMarker{})
			manager.CreateGroupedSpawner(e, nil)
		})
	})
}

// UpdatePlayerSpawnersSystem respawns every active-but-not-alive player
// slot into the match, round-robining across the installed spawn points
// and staggering each new player's depth so up to MaxStackedPerLayer
// players can share a layer without colliding on Z, ported from
// player_spawner.rs's update system.
func UpdatePlayerSpawnersSystem(manager *Manager) scheduler.System {
	return scheduler.NewFunc("spawner.update_player_spawners", func(w *ecs.World, cmds *scheduler.CommandQueue) {
		players, ok := ecs.GetResource[input.Players](w.Resources)
		if !ok {
			return
		}
		current, ok := ecs.GetResource[*CurrentSpawner](w.Resources)
		if !ok {
			return
		}

		playerIdx := ecs.Components[component.PlayerIdx](w.Components)
		transforms := ecs.Components[core.Transform](w.Components)
		markers := ecs.Components[component.PlayerSpawnerMarker](w.Components)

		alive := make(map[uint8]bool)
		idxMask := ecs.With(w.Capacity(), playerIdx.Bitset())
		ecs.EachIndex(idxMask, func(index int) {
			pidx, _ := playerIdx.Get(index)
			alive[pidx.Index] = true
		})

		var spawnPoints []core.Vec3
		var spawnEntities []core.Entity
		spawnerMask := ecs.With(w.Capacity(), markers.Bitset(), transforms.Bitset())
		ecs.EachEntity(w.Entities, spawnerMask, func(e core.Entity) {
			xform, _ := transforms.Get(int(e.Index))
			spawnPoints = append(spawnPoints, xform.Translation)
			spawnEntities = append(spawnEntities, e)
		})

		for i := 0; i < param.MaxPlayers; i++ {
			slot := players.Slots[i]
			if !slot.Active || alive[uint8(i)] {
				continue
			}
			if len(spawnPoints) == 0 {
				return
			}

			current.Index = (current.Index + 1) % len(spawnPoints)
			spawnPoint := spawnPoints[current.Index]
			spawnerEntity := spawnEntities[current.Index]

			// Stagger depth so up to MaxStackedPerLayer players can occupy
			// the same spawner without z-fighting against the next layer.
			spawnPoint.Z += float64(i) * param.LayerZGap

			playerEnt, err := w.Entities.Create()
			if err != nil {
				continue
			}
			idx := int(playerEnt.Index)
			playerIdx.Insert(idx, component.PlayerIdx{Index: uint8(i)})
			transforms.Insert(idx, core.FromTranslation(spawnPoint))

			manager.InsertOwned(spawnerEntity, playerEnt)
		}
	})
}
