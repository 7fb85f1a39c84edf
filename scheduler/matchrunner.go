package scheduler

import (
	"time"

	"github.com/lixenwraith/driftwood/diag"
	"github.com/lixenwraith/driftwood/ecs"
	"github.com/lixenwraith/driftwood/param"
)

// Step is the fixed simulation timestep, 1/60 s (spec §4.3 "STEP is a
// constant 1.0 / 60.0"). Aliased from param.Step so the scheduler and the
// rest of the simulation share a single source of truth for the tick
// duration.
const Step = param.Step

// Clock is the world-clock resource: the tick counter and simulated time
// advanced by exactly Step every tick, never by wall-clock delta (spec
// §4.3 "advance world clock by STEP exactly").
type Clock struct {
	Tick uint64
	Time time.Duration
}

// MatchRunner drives a Scheduler with the fixed-timestep accumulator from
// spec §4.3: each host frame it receives a wall-clock delta and runs as
// many whole ticks as have accumulated, sampling input once per tick and
// giving up catching up if a single frame's catch-up loop itself overruns
// its own wall-clock budget.
type MatchRunner struct {
	sched *Scheduler

	accumulator time.Duration
	maxCatchup  int

	// now is the wall-clock source used to measure the catch-up loop's own
	// running time against its budget; overridable in tests for
	// determinism (it governs only the "give up" heuristic, never
	// simulation state).
	now func() time.Time

	diagReg *diag.Registry
}

// NewMatchRunner creates a MatchRunner over sched. maxCatchupTicksPerFrame bounds how
// many ticks a single Step call will run before giving up (spec §4.3
// "Catching up is bounded").
func NewMatchRunner(sched *Scheduler, maxCatchupTicksPerFrame int, diagReg *diag.Registry) *MatchRunner {
	return &MatchRunner{
		sched:      sched,
		maxCatchup: maxCatchupTicksPerFrame,
		now:        time.Now,
		diagReg:    diagReg,
	}
}

// SetWallClock overrides the wall-clock source used for the catch-up
// budget check; intended for tests.
func (r *MatchRunner) SetWallClock(now func() time.Time) {
	r.now = now
}

// Step advances the world by as many whole ticks as delta plus any
// previously accumulated remainder covers. sampleInput is called once per
// tick, immediately before that tick runs, so each tick consumes exactly
// one input sample (spec §4.3 "input sampled once per tick").
func (r *MatchRunner) Step(w *ecs.World, delta time.Duration, sampleInput func()) {
	r.accumulator += delta

	loopStart := r.now()
	ticks := 0
	for r.accumulator >= Step {
		sampleInput()

		clock, _ := ecs.GetResource[Clock](w.Resources)
		clock.Tick++
		clock.Time += Step
		ecs.SetResource(w.Resources, clock)

		r.sched.RunTick(w)
		r.accumulator -= Step
		ticks++

		if r.diagReg != nil {
			r.diagReg.Ints.Get("match.ticks").Add(1)
		}

		if r.now().Sub(loopStart) > Step {
			// Give up catching up: log a warning via diag and reset the
			// accumulator rather than busy-looping past our wall budget
			// (spec §4.3 "give up catching up" / §7 "Scheduler budget
			// exceeded: warning, accumulator reset, simulation skips
			// forward").
			if r.diagReg != nil {
				r.diagReg.Ints.Get("match.budget_overruns").Add(1)
			}
			r.accumulator = 0
			break
		}

		if ticks >= r.maxCatchup {
			r.accumulator = 0
			break
		}
	}
}
