package system

import (
	"time"

	"github.com/mousecraft/omega/internal/core/ecs"
	coresys "github.com/mousecraft/omega/internal/core/system"
	"go.uber.org/zap"
)

// StatsSystem reports entity and pool sizes once per frame.
// Phase 3 (Render), frame-only.
type StatsSystem struct {
	coresys.Base
	entities *ecs.EntityManager
	reg      *ecs.Registry
	log      *zap.Logger
	frames   uint64
}

func NewStatsSystem(entities *ecs.EntityManager, reg *ecs.Registry, log *zap.Logger) *StatsSystem {
	return &StatsSystem{
		Base:     coresys.NewFrameBase(coresys.PhaseRender),
		entities: entities,
		reg:      reg,
		log:      log,
	}
}

// Frames returns how many frame updates ran.
func (s *StatsSystem) Frames() uint64 { return s.frames }

func (s *StatsSystem) Update(dt time.Duration) {
	s.frames++
	if ce := s.log.Check(zap.DebugLevel, "frame stats"); ce != nil {
		fields := []zap.Field{
			zap.Uint64("frame", s.frames),
			zap.Duration("dt", dt),
			zap.Int("entities", s.entities.Len()),
		}
		for _, t := range s.reg.Types() {
			fields = append(fields, zap.Int(s.reg.Name(t), s.reg.Count(t)))
		}
		ce.Write(fields...)
	}
}
