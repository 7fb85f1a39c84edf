// Package scheduler implements the stage-ordered system list and fixed-
// timestep match runner described in spec §4.3: "Systems are arranged in
// an ordered list of stages ... Within a stage, systems execute in
// insertion order. Between stages, a command buffer is drained."
package scheduler

import "github.com/lixenwraith/driftwood/ecs"

// Stage names a slot in the per-tick system list. A string type (rather
// than a closed int enum) so "any user-added stages" (spec §4.3) can be
// named without editing a central const block.
type Stage string

// The six canonical stages every match runs, in this fixed order.
const (
	First            Stage = "First"
	PreUpdate        Stage = "PreUpdate"
	PlayerStateStage Stage = "PlayerStateStage"
	Update           Stage = "Update"
	PostUpdate       Stage = "PostUpdate"
	Last             Stage = "Last"
)

// System is one unit of per-tick logic. Run receives the world and the
// command queue for the current drain cycle so it can defer mutations it
// cannot safely perform while iterating (spec §4.9).
type System interface {
	Name() string
	Run(w *ecs.World, cmds *CommandQueue)
}

// Func adapts a plain function to System, the common case -- most systems
// in this core are stateless closures over component stores.
type Func struct {
	name string
	run  func(w *ecs.World, cmds *CommandQueue)
}

// NewFunc builds a System from a name and a run function.
func NewFunc(name string, run func(w *ecs.World, cmds *CommandQueue)) Func {
	return Func{name: name, run: run}
}

func (f Func) Name() string { return f.name }
func (f Func) Run(w *ecs.World, cmds *CommandQueue) { f.run(w, cmds) }
