package system

import (
	"time"

	"github.com/mousecraft/omega/internal/component"
	"github.com/mousecraft/omega/internal/core/ecs"
	coresys "github.com/mousecraft/omega/internal/core/system"
)

// UpdatableSystem advances every active component with the Updatable
// capability, whatever its concrete type.
// Phase 1 (Update).
type UpdatableSystem struct {
	coresys.Base
	reg *ecs.Registry
}

func NewUpdatableSystem(reg *ecs.Registry) *UpdatableSystem {
	return &UpdatableSystem{
		Base: coresys.NewBase(coresys.PhaseUpdate),
		reg:  reg,
	}
}

func (s *UpdatableSystem) Update(dt time.Duration) {
	ecs.Each(s.reg, func(u component.Updatable) {
		u.Update(dt)
	})
}
