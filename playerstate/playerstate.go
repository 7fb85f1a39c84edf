// Package playerstate implements the player state machine stage described
// in spec §4.7: a PlayerState component holding a named state id, and a
// scheduler stage split into PerformTransitions/HandleState sub-stages.
// Named and registered the way the teacher's engine/fsm package names
// states and transitions, but flattened to a per-state function registry
// rather than a general hierarchical graph walker -- the spec's model is
// "each installed state contributes a transition system and a handler
// system", which a registry expresses more directly than fsm.Machine's
// node/path/LCA machinery (that machinery solves parallel-region
// transitions this single-id state component does not need).
package playerstate

import (
	"github.com/lixenwraith/driftwood/component"
	"github.com/lixenwraith/driftwood/core"
	"github.com/lixenwraith/driftwood/ecs"
	"github.com/lixenwraith/driftwood/scheduler"
)

// Transition inspects one entity already (or about to be) in a state and
// may return a new state id to switch to. Returning the zero value keeps
// the entity in its current state. Transitions are pure: they read shared
// components and write only the state id (spec §4.7).
type Transition func(w *ecs.World, e core.Entity, state component.PlayerState) component.PlayerStateID

// Handler applies the per-tick behavior for every entity currently in one
// state: movement intents, animation changes, scripted commands. Unlike
// Transition, a Handler may mutate the world freely via cmds.
type Handler func(w *ecs.World, e core.Entity, cmds *scheduler.CommandQueue)

// Machine is the installed set of states: one optional Transition and one
// optional Handler per PlayerStateID, registered by whatever gameplay
// layer builds the match (spec §4.7 "States include at least: idle, walk,
// midair, crouch, incapacitated, dead").
type Machine struct {
	transitions map[component.PlayerStateID]Transition
	handlers    map[component.PlayerStateID]Handler
	order       []component.PlayerStateID
}

// New creates an empty Machine.
func New() *Machine {
	return &Machine{
		transitions: make(map[component.PlayerStateID]Transition),
		handlers:    make(map[component.PlayerStateID]Handler),
	}
}

// Register installs a state's transition and handler. Either may be nil.
// First-registration order is recorded in order; PerformTransitions and
// HandleState do not use it -- they visit players in ascending entity
// index and look up each player's current state directly.
func (m *Machine) Register(id component.PlayerStateID, t Transition, h Handler) {
	if _, seen := m.handlers[id]; !seen {
		if _, seenT := m.transitions[id]; !seenT {
			m.order = append(m.order, id)
		}
	}
	if t != nil {
		m.transitions[id] = t
	}
	if h != nil {
		m.handlers[id] = h
	}
}

// PerformTransitionsSystem runs every installed state's transition for the
// entities currently in that state (or with no state yet, promoted to
// StateIdle by the default transition), overwriting PlayerState.ID when a
// transition returns a non-empty id (spec §4.7 step 1).
func (m *Machine) PerformTransitionsSystem() scheduler.System {
	return scheduler.NewFunc("playerstate.perform_transitions", func(w *ecs.World, cmds *scheduler.CommandQueue) {
		states := ecs.Components[component.PlayerState](w.Components)
		playerIdx := ecs.Components[component.PlayerIdx](w.Components)

		mask := ecs.With(w.Capacity(), playerIdx.Bitset())
		ecs.EachEntity(w.Entities, mask, func(e core.Entity) {
			index := int(e.Index)
			state, ok := states.Get(index)
			if !ok {
				states.Insert(index, component.PlayerState{ID: component.StateIdle})
				return
			}

			next := component.PlayerStateID("")
			if t, ok := m.transitions[state.ID]; ok {
				next = t(w, e, *state)
			}
			if next == "" && state.ID == "" {
				next = component.StateIdle
			}
			if next != "" && next != state.ID {
				states.Insert(index, component.PlayerState{
					ID:          next,
					PrevID:      state.ID,
					TimeInState: 0,
				})
			}
		})
	})
}

// HandleStateSystem runs every installed state's handler for the entities
// currently in that state, then advances TimeInState by one tick (spec
// §4.7 step 2).
func (m *Machine) HandleStateSystem(dtPerTick float64) scheduler.System {
	return scheduler.NewFunc("playerstate.handle_state", func(w *ecs.World, cmds *scheduler.CommandQueue) {
		states := ecs.Components[component.PlayerState](w.Components)
		playerIdx := ecs.Components[component.PlayerIdx](w.Components)

		mask := ecs.With(w.Capacity(), playerIdx.Bitset(), states.Bitset())
		ecs.EachEntity(w.Entities, mask, func(e core.Entity) {
			index := int(e.Index)
			state, _ := states.Get(index)

			if h, ok := m.handlers[state.ID]; ok {
				h(w, e, cmds)
			}
			state.TimeInState += dtPerTick
		})
	})
}
