// Package input holds the per-tick control surface described in spec §3
// "Player input" and §6 "Editor input": the only non-deterministic inputs
// the simulation accepts. Everything else is a pure function of
// (World, PlayerInputs, tick).
package input

import "github.com/lixenwraith/driftwood/core"

// Control is a single player's per-tick control snapshot (spec §3
// "PlayerControl").
type Control struct {
	Moving          bool
	MoveDirection   core.Vec2
	JumpPressed     bool
	JumpJustPressed bool
	Shoot           bool
	Grab            bool
	Slide           bool
	Pause           bool
}

// Slot is one of the MAX_PLAYERS input slots: whether it is active, which
// player-meta handle it selected, and the current tick's Control.
type Slot struct {
	Active               bool
	SelectedPlayerHandle  uint32
	Control               Control
}

// Players is the PlayerInputs resource: a fixed array of per-slot input
// state, sampled once per tick by the match runner and consumed
// identically by every system that ticks (spec §4.3 "Ticks are atomic").
type Players struct {
	Slots [4]Slot
}

// CloneResource gives Players a value-semantics clone (the default shallow
// struct copy is already a deep copy since Slot/Control hold no reference
// types), satisfying ecs.cloner explicitly for clarity at call sites that
// grep for it.
func (p Players) CloneResource() any {
	return p
}

// EditorActionKind names a single editor command variant (spec §6 "Editor
// input"). Concrete payloads are intentionally untyped placeholders
// (string ids / raw coordinates) since the real map/asset schema lives in
// the host-owned editor, outside this core.
type EditorActionKind uint8

const (
	EditorNone EditorActionKind = iota
	EditorSpawnElement
	EditorCreateLayer
	EditorDeleteLayer
	EditorRenameLayer
	EditorMoveEntity
	EditorDeleteEntity
	EditorSetTilemap
	EditorSetTile
	EditorMoveLayer
	EditorRenameMap
	EditorRandomizeTiles
)

// EditorAction carries one editor input event and its loosely-typed
// payload fields; PreUpdate's single consumer system switches on Kind.
type EditorAction struct {
	Kind EditorActionKind

	LayerID   string
	NewName   string
	Entity    uint32
	Position  core.Vec2
	TileIndex int
	Handle    string
}

// Editor is the EditorInput resource: at most one pending action, cleared
// by the consuming system every PreUpdate (spec §6).
type Editor struct {
	Pending *EditorAction
}

// CloneResource deep-copies the pending action pointer so a snapshot never
// aliases the live world's pending editor input.
func (e Editor) CloneResource() any {
	if e.Pending == nil {
		return e
	}
	cp := *e.Pending
	return Editor{Pending: &cp}
}
