package engine_test

import (
	"context"
	"testing"
	"time"

	"github.com/mousecraft/omega/internal/config"
	"github.com/mousecraft/omega/internal/core/ecs"
	"github.com/mousecraft/omega/internal/core/event"
	coresys "github.com/mousecraft/omega/internal/core/system"
	"github.com/mousecraft/omega/internal/engine"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type compX struct{ ecs.Base }
type compY struct{ ecs.Base }

type initCounter struct {
	ecs.Base
	inits    int
	seenTick uint64
	eng      *engine.Engine
}

func (c *initCounter) OnInitialized() {
	c.inits++
	c.seenTick = c.eng.TickCount()
}

// disabler turns off the owner of every X it sees.
type disabler struct {
	coresys.Base
	xs *ecs.Manager[*compX]
}

func (s *disabler) Update(time.Duration) {
	s.xs.Each(func(x *compX) { x.Entity().SetEnabled(false) })
}

// observer records how many Y components were active when it ran.
type observer struct {
	coresys.Base
	ys   *ecs.Manager[*compY]
	seen []int
}

func (s *observer) Update(time.Duration) {
	n := 0
	s.ys.Each(func(*compY) { n++ })
	s.seen = append(s.seen, n)
}

type counter struct {
	coresys.Base
	dts []time.Duration
}

func (s *counter) Update(dt time.Duration) { s.dts = append(s.dts, dt) }

func newEngine(t *testing.T, cfg config.EngineConfig) *engine.Engine {
	t.Helper()
	if cfg.TickRate == 0 {
		cfg.TickRate = 10 * time.Millisecond
	}
	if cfg.FrameRate == 0 {
		cfg.FrameRate = cfg.TickRate
	}
	return engine.New(cfg, zaptest.NewLogger(t))
}

func TestDisableIsObservedAfterFlush(t *testing.T) {
	eng := newEngine(t, config.EngineConfig{})
	xs := ecs.MustRegister(eng.Components(), "x", func() *compX { return &compX{} })
	ys := ecs.MustRegister(eng.Components(), "y", func() *compY { return &compY{} })

	x := &disabler{Base: coresys.NewBase(coresys.PhaseUpdate, xs.Type()), xs: xs}
	y := &observer{Base: coresys.NewBase(coresys.PhaseUpdate, ys.Type()), ys: ys}
	require.NoError(t, eng.AddSystem(x))
	require.NoError(t, eng.AddSystem(y))

	scene := eng.NewScene("main")
	e := eng.Entities().Create()
	require.NoError(t, scene.Root().AddChild(e))
	require.NoError(t, e.AddComponent(xs.Create()))
	require.NoError(t, e.AddComponent(ys.Create()))
	require.NoError(t, eng.ChangeScene(scene))

	eng.Tick(10 * time.Millisecond)
	assert.Equal(t, []int{1}, y.seen, "disable is still queued while Y runs")
	assert.False(t, e.Enabled())
	assert.False(t, e.EffectiveEnabled())

	eng.Tick(10 * time.Millisecond)
	assert.Equal(t, []int{1, 0}, y.seen)
}

func TestActivationInitializesBeforeFirstTick(t *testing.T) {
	eng := newEngine(t, config.EngineConfig{})
	counters := ecs.MustRegister(eng.Components(), "counter", func() *initCounter {
		return &initCounter{eng: eng}
	})
	scene := eng.NewScene("main")
	a := eng.Entities().Create()
	require.NoError(t, scene.Root().AddChild(a))
	c := counters.Create()
	require.NoError(t, a.AddComponent(c))

	require.NoError(t, eng.ChangeScene(scene))
	assert.Equal(t, 1, c.inits)
	assert.Zero(t, c.seenTick)

	for i := 0; i < 3; i++ {
		eng.Tick(time.Millisecond)
	}
	assert.Equal(t, 1, c.inits)
}

func TestAddSystemRejectsUnknownInterest(t *testing.T) {
	eng := newEngine(t, config.EngineConfig{})
	err := eng.AddSystem(&counter{Base: coresys.NewBase(coresys.PhaseUpdate, 7)})
	assert.ErrorIs(t, err, ecs.ErrUnknownType)
}

func TestFrameSystemsRunAtFrameCadence(t *testing.T) {
	eng := newEngine(t, config.EngineConfig{
		TickRate:  10 * time.Millisecond,
		FrameRate: 25 * time.Millisecond,
	})
	perTick := &counter{Base: coresys.NewBase(coresys.PhaseUpdate)}
	perFrame := &counter{Base: coresys.NewFrameBase(coresys.PhaseRender)}
	require.NoError(t, eng.AddSystem(perTick))
	require.NoError(t, eng.AddSystem(perFrame))

	for i := 0; i < 6; i++ {
		eng.Tick(10 * time.Millisecond)
	}

	assert.Len(t, perTick.dts, 6)
	assert.Equal(t, []time.Duration{30 * time.Millisecond, 30 * time.Millisecond}, perFrame.dts)
	assert.Equal(t, uint64(6), eng.TickCount())
}

func TestChangeSceneSwapsActiveScene(t *testing.T) {
	eng := newEngine(t, config.EngineConfig{})
	var activated, deactivated []string
	event.Subscribe(eng.Bus(), func(ev event.SceneActivated) { activated = append(activated, ev.Name) })
	event.Subscribe(eng.Bus(), func(ev event.SceneDeactivated) { deactivated = append(deactivated, ev.Name) })

	first := eng.NewScene("first")
	second := eng.NewScene("second")
	require.NoError(t, eng.ChangeScene(first))
	e := eng.Entities().Create()
	require.NoError(t, first.Root().AddChild(e))
	require.Equal(t, 1, first.Pending())

	require.NoError(t, eng.ChangeScene(second))
	assert.Same(t, second, eng.Scene())
	assert.Equal(t, ecs.SceneInactive, first.State())
	assert.Zero(t, first.Pending(), "queued edits flushed on deactivation")
	assert.Same(t, first.Root(), e.Parent())

	eng.Tick(time.Millisecond)
	assert.Equal(t, []string{"first", "second"}, activated)
	assert.Equal(t, []string{"first"}, deactivated)

	require.NoError(t, eng.Shutdown())
	assert.Nil(t, eng.Scene())
	assert.Equal(t, ecs.SceneInactive, second.State())
}

func TestTickPublishesDestroyedEntities(t *testing.T) {
	eng := newEngine(t, config.EngineConfig{})
	var destroyed []string
	var completed []event.TickCompleted
	event.Subscribe(eng.Bus(), func(ev event.EntityDestroyed) { destroyed = append(destroyed, ev.Name) })
	event.Subscribe(eng.Bus(), func(ev event.TickCompleted) { completed = append(completed, ev) })

	scene := eng.NewScene("main")
	e := eng.Entities().Create()
	e.SetName("doomed")
	require.NoError(t, scene.Root().AddChild(e))
	require.NoError(t, eng.ChangeScene(scene))

	require.NoError(t, e.Destroy())
	eng.Tick(time.Millisecond)
	assert.True(t, e.Destroyed())
	assert.Empty(t, destroyed, "events are delivered next tick")

	eng.Tick(time.Millisecond)
	assert.Equal(t, []string{"doomed"}, destroyed)
	require.Len(t, completed, 1)
	assert.Equal(t, event.TickCompleted{Tick: 1, Applied: 1}, completed[0])
}

func TestRunStopsAtTickLimit(t *testing.T) {
	eng := newEngine(t, config.EngineConfig{
		TickRate: time.Millisecond,
		MaxTicks: 3,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, eng.Run(ctx))
	assert.Equal(t, uint64(3), eng.TickCount())
}

func TestRunStopsOnCancel(t *testing.T) {
	eng := newEngine(t, config.EngineConfig{TickRate: time.Millisecond})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, eng.Run(ctx))
}
