package engine

import (
	"context"
	"fmt"
	"time"

	"github.com/mousecraft/omega/internal/config"
	"github.com/mousecraft/omega/internal/core/ecs"
	"github.com/mousecraft/omega/internal/core/event"
	coresys "github.com/mousecraft/omega/internal/core/system"
	"go.uber.org/zap"
)

// Engine drives discrete ticks over one active scene. It owns the entity
// manager, the component registry, the system runner and the event bus; none
// of them are process globals, so several engines can coexist.
//
// Accessed only from the game loop goroutine; no locks.
type Engine struct {
	cfg        config.EngineConfig
	log        *zap.Logger
	entities   *ecs.EntityManager
	components *ecs.Registry
	runner     *coresys.Runner
	bus        *event.Bus
	scene      *ecs.Scene
	tick       uint64
	sinceFrame time.Duration
}

func New(cfg config.EngineConfig, log *zap.Logger) *Engine {
	if log == nil {
		log = zap.NewNop()
	}
	e := &Engine{
		cfg:        cfg,
		log:        log,
		entities:   ecs.NewEntityManager(log.Named("ecs")),
		components: ecs.NewRegistry(),
		runner:     coresys.NewRunner(),
		bus:        event.NewBus(),
	}
	e.entities.OnDestroy(func(ent *ecs.Entity) {
		event.Emit(e.bus, event.EntityDestroyed{EntityID: ent.ID(), Name: ent.Name()})
	})
	return e
}

func (e *Engine) Entities() *ecs.EntityManager { return e.entities }
func (e *Engine) Components() *ecs.Registry    { return e.components }
func (e *Engine) Bus() *event.Bus              { return e.bus }
func (e *Engine) Scene() *ecs.Scene            { return e.scene }
func (e *Engine) TickCount() uint64            { return e.tick }

// NewScene creates an inactive scene backed by this engine's entity manager.
func (e *Engine) NewScene(name string) *ecs.Scene {
	return ecs.NewScene(e.entities, name)
}

// AddSystem registers s. Systems declaring interests must only name
// registered component types.
func (e *Engine) AddSystem(s coresys.System) error {
	if in, ok := s.(coresys.Interested); ok {
		for _, t := range in.Interests() {
			if e.components.Name(t) == "" {
				return fmt.Errorf("add system %T: component type %d: %w", s, t, ecs.ErrUnknownType)
			}
		}
	}
	e.runner.Register(s)
	return nil
}

// ChangeScene deactivates the current scene (flushing its queue) and
// activates s. A nil s leaves the engine without an active scene.
func (e *Engine) ChangeScene(s *ecs.Scene) error {
	if s == e.scene {
		return nil
	}
	if old := e.scene; old != nil {
		if err := old.Deactivate(); err != nil {
			return fmt.Errorf("change scene: %w", err)
		}
		e.scene = nil
		event.Emit(e.bus, event.SceneDeactivated{SceneID: old.ID(), Name: old.Name()})
		e.log.Info("scene deactivated", zap.String("scene", old.Name()))
	}
	if s == nil {
		return nil
	}
	if err := s.Activate(); err != nil {
		return fmt.Errorf("change scene: %w", err)
	}
	e.scene = s
	event.Emit(e.bus, event.SceneActivated{SceneID: s.ID(), Name: s.Name()})
	e.log.Info("scene activated",
		zap.String("scene", s.Name()),
		zap.Stringer("id", s.ID()),
		zap.Int("entities", e.entities.Len()),
	)
	return nil
}

// Tick advances the simulation by dt:
//  1. snapshot every component pool
//  2. deliver last tick's events
//  3. run per-tick systems, then frame-only systems if a frame is due
//  4. flush the active scene's structural queue
func (e *Engine) Tick(dt time.Duration) {
	e.components.Sync()

	e.bus.SwapBuffers()
	e.bus.DispatchAll()

	e.runner.Tick(dt)

	if e.runner.HasFrameSystems() {
		e.sinceFrame += dt
		if e.sinceFrame >= e.cfg.FrameRate {
			e.runner.Frame(e.sinceFrame)
			e.sinceFrame = 0
		}
	}

	applied := 0
	if e.scene != nil {
		applied = e.scene.Flush()
	}
	e.tick++
	event.Emit(e.bus, event.TickCompleted{Tick: e.tick, Applied: applied})
}

// Run ticks at the configured rate until ctx is cancelled or MaxTicks is
// reached.
func (e *Engine) Run(ctx context.Context) error {
	ticker := time.NewTicker(e.cfg.TickRate)
	defer ticker.Stop()

	e.log.Info("game loop started", zap.Duration("tick", e.cfg.TickRate))
	for {
		select {
		case <-ctx.Done():
			e.log.Info("game loop stopped", zap.Uint64("ticks", e.tick))
			return nil
		case <-ticker.C:
			e.Tick(e.cfg.TickRate)
			if e.cfg.MaxTicks > 0 && e.tick >= e.cfg.MaxTicks {
				e.log.Info("tick limit reached", zap.Uint64("ticks", e.tick))
				return nil
			}
		}
	}
}

// Shutdown deactivates the active scene, applying anything still queued.
func (e *Engine) Shutdown() error {
	return e.ChangeScene(nil)
}
