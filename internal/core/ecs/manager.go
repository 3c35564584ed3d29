package ecs

// Manager owns every live instance of one component type and is the only
// place instances of that type are created or destroyed.
//
// Systems read Snapshot, which is rebuilt by Registry.Sync at tick start and
// is never mutated afterwards: instances created or destroyed mid-tick show up
// (or disappear) on the next tick only.
type Manager[T Component] struct {
	typ      ComponentType
	name     string
	factory  func() T
	live     []T // creation order
	snapshot []T
	dirty    bool
}

func (m *Manager[T]) Type() ComponentType { return m.typ }
func (m *Manager[T]) Name() string        { return m.name }

// Len returns the number of live (not destroyed) instances.
func (m *Manager[T]) Len() int { return len(m.live) }

// Create allocates a new instance and registers it in the pool. The instance
// is not attached to any entity; opts run after registration.
func (m *Manager[T]) Create(opts ...func(T)) T {
	c := m.factory()
	b := c.componentBase()
	b.typ = m.typ
	b.pool = m
	m.live = append(m.live, c)
	m.dirty = true
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (m *Manager[T]) create() Component { return m.Create() }

// Destroy removes c from the pool. Unknown or already destroyed instances are
// ignored. An attached instance is detached from its owner first, which is
// deferred to the next flush when the owner sits in an active scene. An
// instance whose add is still queued is destroyed at that same flush, right
// after the add.
func (m *Manager[T]) Destroy(c T) {
	b := c.componentBase()
	if b.destroyed || m.indexOf(c) < 0 {
		return
	}
	switch {
	case b.owner != nil:
		b.owner.RemoveComponent(c)
	case b.queuedOn != nil && !b.queuedOn.destroyed:
		b.queuedOn.RemoveComponent(c)
	default:
		m.release(c)
	}
}

// Snapshot returns the stable view for the current tick, oldest first. Only
// initialized instances are included. The returned slice must not be modified.
func (m *Manager[T]) Snapshot() []T {
	return m.snapshot
}

// Each visits snapshot entries that are Active.
func (m *Manager[T]) Each(fn func(T)) {
	for _, c := range m.snapshot {
		if c.Active() {
			fn(c)
		}
	}
}

// Live returns a copy of the live pool in creation order.
func (m *Manager[T]) Live() []T {
	out := make([]T, len(m.live))
	copy(out, m.live)
	return out
}

func (m *Manager[T]) eachActive(fn func(Component)) {
	for _, c := range m.snapshot {
		if c.Active() {
			fn(c)
		}
	}
}

func (m *Manager[T]) sync() {
	if !m.dirty {
		return
	}
	snap := make([]T, 0, len(m.live))
	for _, c := range m.live {
		if c.Initialized() {
			snap = append(snap, c)
		}
	}
	m.snapshot = snap
	m.dirty = false
}

func (m *Manager[T]) touch() { m.dirty = true }

// release fires the finalizer, marks c destroyed and drops it from the live
// pool. Callers detach c from its owner's component list afterwards.
func (m *Manager[T]) release(c Component) {
	i := m.indexOf(c)
	if i < 0 {
		return
	}
	b := c.componentBase()
	if f, ok := c.(Finalizer); ok {
		f.OnDestroyed()
	}
	b.destroyed = true
	b.owner = nil
	m.live = append(m.live[:i], m.live[i+1:]...)
	m.dirty = true
}

func (m *Manager[T]) indexOf(c Component) int {
	b := c.componentBase()
	for i, x := range m.live {
		if x.componentBase() == b {
			return i
		}
	}
	return -1
}
