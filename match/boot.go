// Package match assembles the concrete World/Scheduler/MatchRunner the
// other packages only describe in isolation, and exposes the per-frame
// host API from spec §6: "step(now: Instant, inputs: PlayerInputs) ->
// ()". Boot wires every system into the fixed six-stage order the way the
// teacher's cmd/ main composes engine.ClockScheduler with its systems
// package, just generalized to this simulation's own stage/system set.
package match

import (
	"time"

	"github.com/lixenwraith/driftwood/asset"
	"github.com/lixenwraith/driftwood/core"
	"github.com/lixenwraith/driftwood/diag"
	"github.com/lixenwraith/driftwood/ecs"
	"github.com/lixenwraith/driftwood/input"
	"github.com/lixenwraith/driftwood/item"
	"github.com/lixenwraith/driftwood/param"
	"github.com/lixenwraith/driftwood/physics"
	"github.com/lixenwraith/driftwood/playerstate"
	"github.com/lixenwraith/driftwood/scheduler"
	"github.com/lixenwraith/driftwood/spawner"
	"github.com/lixenwraith/driftwood/worldmap"
)

// Config is everything Boot needs to stand up a match, the Go shape of
// spec §6's "Match boot": a loaded map meta, a CoreMeta configuration, the
// asset server the map's elements resolve through, and a deterministic
// RNG seed.
type Config struct {
	Map     *worldmap.MapMeta
	Core    *worldmap.CoreMeta
	Assets  asset.Server
	Seed    uint32
	DiagReg *diag.Registry

	// OnFuseExpired, if set, is invoked the tick any hydrated element's
	// FuseTimer reaches zero, so a host gameplay layer can turn the expiry
	// into actual game content (an explosion, splash damage) without this
	// core needing to know what that content is (spec §9's fuse/timer
	// pattern; spec's Non-goal excluding specific game content).
	OnFuseExpired item.FuseExpiredFunc
}

// Match owns the live World plus the scheduler/runner pair that advances
// it, and is the host's entry point for the per-frame API.
type Match struct {
	World  *ecs.World
	sched  *scheduler.Scheduler
	runner *scheduler.MatchRunner

	players    input.Players
	lastNow    time.Time
	hasLastNow bool
}

// Boot constructs a fresh Match: an empty World sized to param.MaxEntities,
// the physics/navgraph/spawner resources, every system registered into its
// stage in the fixed order spec §4.3/§5 requires, and the map installed
// (not yet hydrated -- HydrateMapSystem runs it on the first tick).
func Boot(cfg Config) *Match {
	w := ecs.NewWorld(param.MaxEntities)

	ecs.SetResource(w.Resources, core.NewRand(cfg.Seed))
	ecs.SetResource(w.Resources, scheduler.Clock{})
	ecs.SetResource(w.Resources, input.Players{})
	ecs.SetResource(w.Resources, input.Editor{})
	ecs.SetResource(w.Resources, &worldmap.Loaded{Meta: cfg.Map})
	if cfg.Map != nil {
		ecs.SetResource(w.Resources, worldmap.BuildNavGraph(cfg.Map))
	}
	ecs.SetResource(w.Resources, physics.NewWorld())
	ecs.SetResource(w.Resources, spawner.NewManager())
	ecs.SetResource(w.Resources, &spawner.CurrentSpawner{})

	diagReg := cfg.DiagReg
	if diagReg == nil {
		diagReg = diag.NewRegistry()
	}
	ecs.SetResource(w.Resources, diagReg)

	machine := playerstate.New()
	walkSpeed, crouchScale := coreSpeeds(cfg.Core)
	playerstate.InstallDefault(machine, walkSpeed, crouchScale)

	spawnerManager, _ := ecs.GetResource[*spawner.Manager](w.Resources)

	sched := scheduler.New()
	sched.AddSystem(scheduler.First, worldmap.HydrateMapSystem())
	sched.AddSystem(scheduler.First, worldmap.HydrateElementsSystem(cfg.Assets))
	sched.AddSystem(scheduler.First, spawner.HydratePlayerSpawnersSystem(cfg.Assets, spawnerManager))
	sched.AddSystem(scheduler.First, worldmap.DehydrateOutOfBoundsSystem())

	sched.AddSystem(scheduler.PreUpdate, worldmap.ConsumeEditorActionSystem())

	tickSeconds := float64(scheduler.Step) / float64(time.Second)
	sched.AddSystem(scheduler.PlayerStateStage, machine.PerformTransitionsSystem())
	sched.AddSystem(scheduler.PlayerStateStage, machine.HandleStateSystem(tickSeconds))

	sched.AddSystem(scheduler.Update, physics.IntegrateSystem())
	sched.AddSystem(scheduler.Update, spawner.UpdatePlayerSpawnersSystem(spawnerManager))
	sched.AddSystem(scheduler.Update, item.LifetimeSystem(tickSeconds))
	sched.AddSystem(scheduler.Update, item.FuseSystem(tickSeconds, cfg.OnFuseExpired))

	sched.AddSystem(scheduler.PostUpdate, physics.DeactivatePlayerSquishSystem())

	runner := scheduler.NewMatchRunner(sched, param.MaxCatchupTicksPerFrame, diagReg)

	return &Match{World: w, sched: sched, runner: runner, lastNow: time.Now(), hasLastNow: true}
}

// Step is the per-frame host API (spec §6): advance the match by however
// many whole ticks have accumulated since the previous Step call (since
// Boot, for the first call), sampling
// inputs once per tick. The host owns inputs; Step copies it into the
// Players resource immediately before each tick runs, never mid-tick.
func (m *Match) Step(now time.Time, inputs input.Players) {
	m.players = inputs

	var delta time.Duration
	if m.hasLastNow {
		delta = now.Sub(m.lastNow)
		if delta < 0 {
			delta = 0
		}
	}
	m.lastNow = now
	m.hasLastNow = true

	m.runner.Step(m.World, delta, func() {
		ecs.SetResource(m.World.Resources, m.players)
	})
}

// Tick returns the current simulated tick counter.
func (m *Match) Tick() uint64 {
	clock, _ := ecs.GetResource[scheduler.Clock](m.World.Resources)
	return clock.Tick
}

// PendingEditorAction installs an EditorAction to be consumed by the
// PreUpdate editor system on the next tick (spec §6 "Editor input").
func (m *Match) PendingEditorAction(action input.EditorAction) {
	editor, _ := ecs.GetResource[input.Editor](m.World.Resources)
	editor.Pending = &action
	ecs.SetResource(m.World.Resources, editor)
}

// coreSpeeds derives ground/crouch movement speeds from the authored
// CoreMeta, proportional to its jump speed so a map author tuning one
// physics constant scales the rest of player movement with it. CoreMeta
// has no explicit walk-speed field (spec §3 lists gravity, terminal
// velocity, ground friction, jump speed, camera height, player handles
// only), so this core picks a reasonable fixed ratio rather than
// inventing a new authored field outside the spec.
func coreSpeeds(meta *worldmap.CoreMeta) (walkSpeed, crouchSpeedScale float64) {
	walkSpeed = 6.0
	crouchSpeedScale = 3.0
	if meta != nil && meta.JumpSpeed > 0 {
		walkSpeed = meta.JumpSpeed * 0.35
		crouchSpeedScale = walkSpeed * 0.5
	}
	return walkSpeed, crouchSpeedScale
}
