package system

import (
	"time"

	"github.com/mousecraft/omega/internal/component"
	"github.com/mousecraft/omega/internal/core/ecs"
	coresys "github.com/mousecraft/omega/internal/core/system"
	"go.uber.org/zap"
)

// LifetimeSystem counts active time on Lifetime components and destroys the
// owner once the duration is used up. The destroy goes through the entity API,
// so under an active scene it lands at this tick's flush.
// Phase 2 (PostUpdate).
type LifetimeSystem struct {
	coresys.Base
	lifetimes *ecs.Manager[*component.Lifetime]
	log       *zap.Logger
}

func NewLifetimeSystem(lifetimes *ecs.Manager[*component.Lifetime], log *zap.Logger) *LifetimeSystem {
	return &LifetimeSystem{
		Base:      coresys.NewBase(coresys.PhasePostUpdate, lifetimes.Type()),
		lifetimes: lifetimes,
		log:       log,
	}
}

func (s *LifetimeSystem) Update(dt time.Duration) {
	s.lifetimes.Each(func(l *component.Lifetime) {
		if l.Expired {
			return
		}
		l.Elapsed += dt
		if l.Elapsed < l.Duration {
			return
		}
		l.Expired = true
		owner := l.Entity()
		if err := owner.Destroy(); err != nil {
			s.log.Warn("lifetime expiry failed", zap.Stringer("entity", owner), zap.Error(err))
			return
		}
		s.log.Debug("lifetime expired", zap.Stringer("entity", owner))
	})
}
