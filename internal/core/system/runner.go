package system

import (
	"sort"
	"time"
)

// Runner executes systems in phase order each tick. Within a phase, systems
// run in registration order.
type Runner struct {
	systems []System
	frame   []System
	sorted  bool
}

func NewRunner() *Runner {
	return &Runner{
		systems: make([]System, 0, 16),
		frame:   make([]System, 0, 4),
	}
}

// Register adds s to the per-tick list, or to the frame list if s is a
// FrameSystem reporting FrameOnly.
func (r *Runner) Register(s System) {
	if isFrameOnly(s) {
		r.frame = append(r.frame, s)
	} else {
		r.systems = append(r.systems, s)
	}
	r.sorted = false
}

// Tick runs every per-tick system once.
func (r *Runner) Tick(dt time.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		s.Update(dt)
	}
}

// Frame runs every frame-only system once with the time since the last frame.
func (r *Runner) Frame(dt time.Duration) {
	r.ensureSorted()
	for _, s := range r.frame {
		s.Update(dt)
	}
}

// TickPhase runs only the per-tick systems of the given phase.
func (r *Runner) TickPhase(phase Phase, dt time.Duration) {
	r.ensureSorted()
	for _, s := range r.systems {
		if s.Phase() == phase {
			s.Update(dt)
		}
	}
}

// Len returns the number of registered systems of both kinds.
func (r *Runner) Len() int { return len(r.systems) + len(r.frame) }

// HasFrameSystems reports whether any frame-only system is registered.
func (r *Runner) HasFrameSystems() bool { return len(r.frame) > 0 }

func (r *Runner) ensureSorted() {
	if !r.sorted {
		byPhase := func(list []System) {
			sort.SliceStable(list, func(i, j int) bool {
				return list[i].Phase() < list[j].Phase()
			})
		}
		byPhase(r.systems)
		byPhase(r.frame)
		r.sorted = true
	}
}
