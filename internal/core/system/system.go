package system

import (
	"time"

	"github.com/mousecraft/omega/internal/core/ecs"
)

// Phase defines execution ordering within a single tick.
type Phase int

const (
	PhasePreUpdate  Phase = iota // 0: react to last tick's events
	PhaseUpdate                  // 1: game logic
	PhasePostUpdate              // 2: lifetimes, spawns, bookkeeping
	PhaseRender                  // 3: hand state to external renderers/audio
)

// System is the interface every ECS system implements.
type System interface {
	Phase() Phase
	Update(dt time.Duration)
}

// FrameSystem is implemented by systems that only want frame updates. The
// engine decides when a frame happens; such a system receives at most one
// Update per frame interval, however many ticks ran in between.
type FrameSystem interface {
	System
	FrameOnly() bool
}

// Interested is implemented by systems that declare the component types they
// read.
type Interested interface {
	Interests() []ecs.ComponentType
}

// Base is embeddable bookkeeping for systems: phase, declared interests and
// the frame-only flag.
type Base struct {
	phase     Phase
	interests []ecs.ComponentType
	frameOnly bool
}

func NewBase(phase Phase, interests ...ecs.ComponentType) Base {
	return Base{phase: phase, interests: interests}
}

// NewFrameBase is NewBase for frame-only systems.
func NewFrameBase(phase Phase, interests ...ecs.ComponentType) Base {
	return Base{phase: phase, interests: interests, frameOnly: true}
}

func (b Base) Phase() Phase                   { return b.phase }
func (b Base) FrameOnly() bool                { return b.frameOnly }
func (b Base) Interests() []ecs.ComponentType { return b.interests }

func isFrameOnly(s System) bool {
	f, ok := s.(FrameSystem)
	return ok && f.FrameOnly()
}
