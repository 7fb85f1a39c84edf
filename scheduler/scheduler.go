package scheduler

import "github.com/lixenwraith/driftwood/ecs"

// Scheduler holds the ordered stage list and the systems registered into
// each stage. Within a stage, systems run in insertion order (spec §4.3);
// across stages, the command queue drains between each pair.
type Scheduler struct {
	order   []Stage
	systems map[Stage][]System
	cmds    *CommandQueue
}

// New creates a Scheduler pre-populated with the six canonical stages in
// their fixed order.
func New() *Scheduler {
	return &Scheduler{
		order: []Stage{First, PreUpdate, PlayerStateStage, Update, PostUpdate, Last},
		systems: map[Stage][]System{
			First: nil, PreUpdate: nil, PlayerStateStage: nil,
			Update: nil, PostUpdate: nil, Last: nil,
		},
		cmds: NewCommandQueue(),
	}
}

// AddStageAfter inserts a new, user-defined stage immediately after an
// existing one, extending the canonical six (spec §4.3 "plus any
// user-added stages"). It is a no-op if the stage already exists.
func (s *Scheduler) AddStageAfter(after, newStage Stage) {
	if _, ok := s.systems[newStage]; ok {
		return
	}
	s.systems[newStage] = nil
	for i, st := range s.order {
		if st == after {
			s.order = append(s.order[:i+1], append([]Stage{newStage}, s.order[i+1:]...)...)
			return
		}
	}
	s.order = append(s.order, newStage)
}

// AddSystem appends sys to the end of stage's system list. Registration
// order is insertion order, the only order the scheduler honors within a
// stage (spec §4.3/§5).
func (s *Scheduler) AddSystem(stage Stage, sys System) {
	s.systems[stage] = append(s.systems[stage], sys)
}

// RunTick advances the world by exactly one tick: maintenance at the start
// of the first stage, then each stage's systems followed by a command
// drain, in stage order (spec §4.3, §3 "Maintenance runs once per tick at
// a well-defined point (start of the scheduler's first stage)").
func (s *Scheduler) RunTick(w *ecs.World) {
	for i, stage := range s.order {
		if i == 0 {
			w.Maintain()
		}
		for _, sys := range s.systems[stage] {
			sys.Run(w, s.cmds)
		}
		s.cmds.Drain(w)
	}
}
