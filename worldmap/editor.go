package worldmap

import (
	"github.com/lixenwraith/driftwood/component"
	"github.com/lixenwraith/driftwood/core"
	"github.com/lixenwraith/driftwood/ecs"
	"github.com/lixenwraith/driftwood/input"
	"github.com/lixenwraith/driftwood/scheduler"
)

// ConsumeEditorActionSystem is the single PreUpdate system spec §6
// describes: it reads the pending EditorAction (if any), applies whatever
// part of it this core owns directly, and clears it. The GUI editor itself
// and the authored-map persistence it drives are host-owned (spec's
// Non-goal "the GUI editor"); this system only applies the subset of
// editor actions that change live simulation state the same way a scripted
// command would -- moving/deleting an entity, editing a tile, renaming the
// loaded map's in-memory name. Layer/tilemap-structural actions
// (CreateLayer, DeleteLayer, RenameLayer, SetTilemap, MoveLayer,
// RandomizeTiles) are consumed and dropped: Pending is cleared and neither
// Loaded.Meta nor any other resource records them, so they have no effect
// inside this core.
func ConsumeEditorActionSystem() scheduler.System {
	return scheduler.NewFunc("worldmap.consume_editor_action", func(w *ecs.World, cmds *scheduler.CommandQueue) {
		editor, ok := ecs.GetResource[input.Editor](w.Resources)
		if !ok || editor.Pending == nil {
			return
		}
		action := *editor.Pending
		editor.Pending = nil
		ecs.SetResource(w.Resources, editor)

		loaded, ok := ecs.GetResource[*Loaded](w.Resources)
		if !ok || loaded.Meta == nil {
			return
		}

		transforms := ecs.Components[core.Transform](w.Components)
		elementHandles := ecs.Components[component.ElementHandle](w.Components)

		switch action.Kind {
		case input.EditorSpawnElement:
			ent, err := w.Entities.Create()
			if err == nil {
				idx := int(ent.Index)
				transforms.Insert(idx, core.FromTranslation(core.Vec3FromXY(action.Position, 0)))
				elementHandles.Insert(idx, component.ElementHandle{
					TypeID: uint32(elementTypeID),
					Path:   action.Handle,
				})
			}

		case input.EditorMoveEntity:
			target := decodeEditorEntity(w, action.Entity)
			if xform, ok := transforms.Get(int(target.Index)); ok && w.Entities.IsAlive(target) {
				xform.Translation = core.Vec3FromXY(action.Position, xform.Translation.Z)
			}

		case input.EditorDeleteEntity:
			target := decodeEditorEntity(w, action.Entity)
			w.Entities.Kill(target)

		case input.EditorSetTile:
			applySetTile(loaded.Meta, action)

		case input.EditorRenameMap:
			loaded.Meta.Name = action.NewName

		case input.EditorCreateLayer, input.EditorDeleteLayer, input.EditorRenameLayer,
			input.EditorSetTilemap, input.EditorMoveLayer, input.EditorRandomizeTiles:
			// Structural map-authoring actions: dropped here; clearing
			// Pending above is their only effect.

		case input.EditorNone:
		}
	})
}

// decodeEditorEntity reconstructs an Entity from an EditorAction's raw
// index, matching it against the currently alive generation so a stale
// index (the entity was already killed) resolves to core.Nil rather than
// aliasing a reused slot.
func decodeEditorEntity(w *ecs.World, rawIndex uint32) core.Entity {
	e := w.Entities.EntityAt(int(rawIndex))
	if !w.Entities.IsAlive(e) {
		return core.Nil
	}
	return e
}

func applySetTile(meta *MapMeta, action input.EditorAction) {
	for i := range meta.Layers {
		if meta.Layers[i].ID != action.LayerID || meta.Layers[i].Kind != LayerTile {
			continue
		}
		x := int(action.Position.X)
		y := int(action.Position.Y)
		for j := range meta.Layers[i].Tiles {
			if meta.Layers[i].Tiles[j].X == x && meta.Layers[i].Tiles[j].Y == y {
				meta.Layers[i].Tiles[j].Idx = action.TileIndex
				return
			}
		}
		meta.Layers[i].Tiles = append(meta.Layers[i].Tiles, TileMeta{X: x, Y: y, Idx: action.TileIndex})
		return
	}
}
