package worldmap

import (
	"github.com/lixenwraith/driftwood/asset"
	"github.com/lixenwraith/driftwood/component"
	"github.com/lixenwraith/driftwood/core"
	"github.com/lixenwraith/driftwood/ecs"
	"github.com/lixenwraith/driftwood/physics"
	"github.com/lixenwraith/driftwood/scheduler"
)

// Loaded is the match-local resource recording which map is currently
// spawned and its respawn bookkeeping, the Go analogue of the original's
// separate MapHandle/MapSpawned resources collapsed into one struct since
// this core has no Bevy asset server driving a lazy-load boundary.
type Loaded struct {
	Meta    *MapMeta
	Spawned bool
}

// CloneResource deep-copies Meta (including its layers' tile/element
// slices, which the editor-action system mutates in place) so two rollback
// snapshots never alias the same authored map state.
func (l *Loaded) CloneResource() any {
	clone := *l
	if l.Meta != nil {
		metaCopy := *l.Meta
		metaCopy.Layers = append([]Layer(nil), l.Meta.Layers...)
		for i := range metaCopy.Layers {
			metaCopy.Layers[i].Tiles = append([]TileMeta(nil), l.Meta.Layers[i].Tiles...)
			metaCopy.Layers[i].Elements = append([]ElementMeta(nil), l.Meta.Layers[i].Elements...)
		}
		clone.Meta = &metaCopy
	}
	return &clone
}

// HydrateMapSystem spawns tile layers and element entities from the
// installed map metadata exactly once per match, the Go port of the
// original's spawn_map (spec §4.5, original_source/core/src/map.rs).
func HydrateMapSystem() scheduler.System {
	return scheduler.NewFunc("worldmap.hydrate_map", func(w *ecs.World, cmds *scheduler.CommandQueue) {
		loaded, ok := ecs.GetResource[*Loaded](w.Resources)
		if !ok || loaded.Spawned || loaded.Meta == nil {
			return
		}
		loaded.Spawned = true
		meta := loaded.Meta

		collisionWorld, ok := ecs.GetResource[*physics.World](w.Resources)
		if !ok {
			return
		}
		collisionWorld.ClearLayers()

		tiles := ecs.Components[component.Tile](w.Components)
		tileCollisions := ecs.Components[component.TileCollision](w.Components)
		transforms := ecs.Components[core.Transform](w.Components)
		elementHandles := ecs.Components[component.ElementHandle](w.Components)

		tileSize := core.Vec2{X: meta.TileWidth, Y: meta.TileHeight}

		for i, layer := range meta.Layers {
			layerZ := -900.0 + float64(i)

			switch layer.Kind {
			case LayerTile:
				kinds := make([]physics.ColliderKind, meta.GridWidth*meta.GridHeight)
				for _, t := range layer.Tiles {
					idx := t.Y*meta.GridWidth + t.X
					if idx < 0 || idx >= len(kinds) {
						continue
					}
					if t.JumpThrough {
						kinds[idx] = physics.Platform
					} else {
						kinds[idx] = physics.Solid
					}

					tileEnt, err := w.Entities.Create()
					if err != nil {
						continue
					}
					tileIdx := int(tileEnt.Index)
					tiles.Insert(tileIdx, component.Tile{Idx: t.Idx})
					kind := component.TileSolid
					if t.JumpThrough {
						kind = component.TileJumpThrough
					}
					tileCollisions.Insert(tileIdx, component.TileCollision{Kind: kind})
				}
				collisionWorld.AddLayer(1, tileSize, meta.GridWidth, kinds)

				layerEnt, err := w.Entities.Create()
				if err == nil {
					transforms.Insert(int(layerEnt.Index), core.FromTranslation(core.Vec3{Z: layerZ}))
				}

			case LayerElement:
				for _, elem := range layer.Elements {
					ent, err := w.Entities.Create()
					if err != nil {
						continue
					}
					idx := int(ent.Index)
					transforms.Insert(idx, core.FromTranslation(core.Vec3{X: elem.X, Y: elem.Y, Z: layerZ}))
					elementHandles.Insert(idx, component.ElementHandle{
						TypeID: uint32(elementTypeID),
						Path:   elem.Element,
					})
				}
			}
		}
	})
}

// HydrateElementsSystem gives every not-yet-hydrated, non-spawner element
// entity its concrete runtime components by resolving its ElementHandle
// through the asset server. An unresolvable handle leaves the entity
// un-hydrated to be retried next tick rather than failing the tick (spec
// §6 "the simulation ... treats an unresolvable handle as a skipped
// hydration"). PlayerSpawner-kind elements are deliberately left alone
// here -- spawner.HydratePlayerSpawnersSystem owns their hydration (it
// also registers the spawner with the ownership manager, a step this
// package cannot do without an import cycle against spawner, which itself
// depends on worldmap.ElementSpec).
func HydrateElementsSystem(assets asset.Server) scheduler.System {
	return scheduler.NewFunc("worldmap.hydrate_elements", func(w *ecs.World, cmds *scheduler.CommandQueue) {
		hydrated := ecs.Components[component.MapElementHydrated](w.Components)
		handles := ecs.Components[component.ElementHandle](w.Components)
		transforms := ecs.Components[core.Transform](w.Components)

		bodies := ecs.Components[component.KinematicBody](w.Components)
		bodyHandles := ecs.Components[physics.BodyHandle](w.Components)
		fuses := ecs.Components[component.FuseTimer](w.Components)
		lifetimes := ecs.Components[component.Lifetime](w.Components)
		projectiles := ecs.Components[component.Projectile](w.Components)
		damageRegions := ecs.Components[component.DamageRegion](w.Components)
		respawnPoints := ecs.Components[component.MapRespawnPoint](w.Components)

		collisionWorld, ok := ecs.GetResource[*physics.World](w.Resources)
		if !ok {
			return
		}

		mask := ecs.With(w.Capacity(), handles.Bitset())
		mask = ecs.Without(mask, hydrated.Bitset())

		ecs.EachIndex(mask, func(index int) {
			handle, _ := handles.Get(index)
			h := asset.NewHandle(asset.TypeID(handle.TypeID), handle.Path)

			spec, found := assets.Get(h)
			if !found {
				return
			}
			elementSpec, ok := spec.(*ElementSpec)
			if !ok {
				return
			}
			if elementSpec.IsPlayerSpawner {
				return
			}

			xform, _ := transforms.Get(index)
			respawnPoints.Insert(index, component.MapRespawnPoint{Point: xform.Translation})

			if elementSpec.Body != nil {
				body := *elementSpec.Body
				body.IsSpawning = true
				bodies.Insert(index, body)
				actor := collisionWorld.AddActor(xform.Translation.XY(), body.Size)
				bodyHandles.Insert(index, physics.BodyHandle{Actor: actor})
			}
			if elementSpec.Fuse != nil {
				fuses.Insert(index, *elementSpec.Fuse)
			}
			if elementSpec.Lifetime != nil {
				lifetimes.Insert(index, *elementSpec.Lifetime)
			}
			if elementSpec.Projectile != nil {
				projectiles.Insert(index, *elementSpec.Projectile)
			}
			if elementSpec.DamageRegion != nil {
				damageRegions.Insert(index, *elementSpec.DamageRegion)
			}

			hydrated.Insert(index, component.MapElementHydrated{})
		})
	})
}

// DehydrateOutOfBoundsSystem kills out-of-bounds players and resets
// out-of-bounds items to their stored respawn point, run against a
// per-map kill rectangle of map width plus a constant border (spec §4.5
// "DehydrateOutOfBounds").
func DehydrateOutOfBoundsSystem() scheduler.System {
	return scheduler.NewFunc("worldmap.dehydrate_out_of_bounds", func(w *ecs.World, cmds *scheduler.CommandQueue) {
		loaded, ok := ecs.GetResource[*Loaded](w.Resources)
		if !ok || loaded.Meta == nil {
			return
		}

		leftKillZone := -killZoneBorder
		rightKillZone := loaded.Meta.Width() + killZoneBorder
		bottomKillZone := -killZoneBorder

		playerIdx := ecs.Components[component.PlayerIdx](w.Components)
		transforms := ecs.Components[core.Transform](w.Components)
		respawnPoints := ecs.Components[component.MapRespawnPoint](w.Components)

		playerMask := ecs.With(w.Capacity(), playerIdx.Bitset(), transforms.Bitset())
		ecs.EachEntity(w.Entities, playerMask, func(e core.Entity) {
			xform, _ := transforms.Get(int(e.Index))
			pos := xform.Translation
			if pos.X < leftKillZone || pos.X > rightKillZone || pos.Y < bottomKillZone {
				cmds.Enqueue(func(w *ecs.World) {
					w.Entities.Kill(e)
				})
			}
		})

		itemMask := ecs.With(w.Capacity(), respawnPoints.Bitset(), transforms.Bitset())
		ecs.EachIndex(itemMask, func(index int) {
			xform, _ := transforms.Get(index)
			point, _ := respawnPoints.Get(index)
			pos := xform.Translation
			if pos.X < leftKillZone || pos.X > rightKillZone || pos.Y < bottomKillZone {
				xform.Translation = point.Point
			}
		})
	})
}

const killZoneBorder = 500.0
