package ecs

// ComponentType is the tag a Registry assigns to a component type when it is
// registered. Storage and dispatch key on the tag.
type ComponentType uint16

// Component is a capability attached to at most one entity. Concrete types
// satisfy it by embedding Base and are allocated by their Manager.
type Component interface {
	Entity() *Entity
	Type() ComponentType
	Enabled() bool
	SetEnabled(enabled bool)
	Initialized() bool
	Destroyed() bool
	Active() bool

	componentBase() *Base
}

// Initializer is implemented by components that need a one-time hook once
// their owner is valid and reachable from an active scene.
type Initializer interface {
	OnInitialized()
}

// Finalizer is implemented by components that release state on destruction.
// The owner reference is still valid while OnDestroyed runs.
type Finalizer interface {
	OnDestroyed()
}

// pool is the part of a Manager a component needs to reach.
type pool interface {
	release(c Component)
	touch()
}

// Base carries the bookkeeping every component shares. Embed it by value.
type Base struct {
	owner       *Entity
	typ         ComponentType
	pool        pool
	disabled    bool
	queuedOn    *Entity // add queued on a scene, not yet applied
	removing    bool    // remove queued on a scene, not yet applied
	initialized bool
	destroyed   bool
}

func (b *Base) componentBase() *Base { return b }

// Entity returns the owning entity, or nil when detached or destroyed.
func (b *Base) Entity() *Entity { return b.owner }

func (b *Base) Type() ComponentType { return b.typ }

func (b *Base) Enabled() bool { return !b.disabled }

// SetEnabled flips the component's own flag. It is independent of the
// owner's flag and takes effect immediately.
func (b *Base) SetEnabled(enabled bool) { b.disabled = !enabled }

func (b *Base) Initialized() bool { return b.initialized }

func (b *Base) Destroyed() bool { return b.destroyed }

// Active reports whether systems should act on the component this tick.
func (b *Base) Active() bool {
	if b.destroyed || !b.initialized || b.disabled || b.owner == nil {
		return false
	}
	return b.owner.live() && b.owner.EffectiveEnabled()
}

// initialize fires the one-time hook. Calling it twice is a no-op.
func initialize(c Component) {
	b := c.componentBase()
	if b.initialized || b.destroyed || b.owner == nil {
		return
	}
	b.initialized = true
	if b.pool != nil {
		b.pool.touch()
	}
	if h, ok := c.(Initializer); ok {
		h.OnInitialized()
	}
}
