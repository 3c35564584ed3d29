package ecs

import "go.uber.org/zap"

// EntityManager is the registry of live entities. It issues handles and is
// where queued structural commands are reconciled against the tree.
type EntityManager struct {
	pool      *EntityPool
	entities  map[EntityID]*Entity
	order     []*Entity // creation order, destroyed entries compacted lazily
	dead      int       // destroyed entries still in order
	log       *zap.Logger
	onDestroy []func(*Entity)
}

func NewEntityManager(log *zap.Logger) *EntityManager {
	if log == nil {
		log = zap.NewNop()
	}
	return &EntityManager{
		pool:     NewEntityPool(),
		entities: make(map[EntityID]*Entity, 256),
		order:    make([]*Entity, 0, 256),
		log:      log,
	}
}

// Create allocates a detached, enabled entity at the identity transform.
func (m *EntityManager) Create() *Entity {
	e := &Entity{
		id:        m.pool.Create(),
		mgr:       m,
		transform: IdentityTransform(),
	}
	m.entities[e.id] = e
	m.order = append(m.order, e)
	return e
}

// Get resolves a handle. Stale handles resolve to nothing.
func (m *EntityManager) Get(id EntityID) (*Entity, bool) {
	e, ok := m.entities[id]
	return e, ok
}

func (m *EntityManager) Alive(id EntityID) bool {
	return m.pool.Alive(id)
}

// Entities returns every live entity in creation order.
func (m *EntityManager) Entities() []*Entity {
	out := make([]*Entity, 0, len(m.entities))
	for _, e := range m.order {
		if !e.destroyed {
			out = append(out, e)
		}
	}
	return out
}

func (m *EntityManager) Len() int { return len(m.entities) }

// OnDestroy registers fn to run for every destroyed entity, after its subtree
// and components are gone but before its handle is invalidated.
func (m *EntityManager) OnDestroy(fn func(*Entity)) {
	m.onDestroy = append(m.onDestroy, fn)
}

// destroy tears down e's subtree children first, then its components, then
// e itself. The whole subtree is marked destroyed before any finalizer runs.
func (m *EntityManager) destroy(e *Entity) {
	if e.destroyed {
		return
	}
	markDestroyed(e)
	m.teardown(e)
	if e.parent != nil {
		e.parent.children = removeEntity(e.parent.children, e)
		e.parent = nil
	}
}

func markDestroyed(e *Entity) {
	e.destroyed = true
	for _, c := range e.children {
		markDestroyed(c)
	}
}

func (m *EntityManager) teardown(e *Entity) {
	for _, c := range e.children {
		m.teardown(c)
		c.parent = nil
	}
	e.children = nil
	for len(e.components) > 0 {
		e.detachComponent(e.components[0])
	}
	for _, fn := range m.onDestroy {
		fn(e)
	}
	delete(m.entities, e.id)
	m.pool.Destroy(e.id)
	m.forget()
}

// forget compacts order once destroyed entries make up half of it.
func (m *EntityManager) forget() {
	m.dead++
	if m.dead*2 < len(m.order) {
		return
	}
	live := m.order[:0]
	for _, e := range m.order {
		if !e.destroyed {
			live = append(live, e)
		}
	}
	for i := len(live); i < len(m.order); i++ {
		m.order[i] = nil
	}
	m.order = live
	m.dead = 0
}

// apply performs cmd with the same logic instant edits use. It reports false
// when the command was dropped.
func (m *EntityManager) apply(cmd Command) bool {
	e, ok := m.entities[cmd.Target]
	if !ok {
		if cmd.Component != nil {
			b := cmd.Component.componentBase()
			switch cmd.Kind {
			case CmdAddComponent:
				b.queuedOn = nil
			case CmdRemoveComponent:
				b.removing = false
			}
		}
		m.drop(cmd, "target destroyed")
		return false
	}

	switch cmd.Kind {
	case CmdAttach:
		p, ok := m.entities[cmd.Parent]
		switch {
		case !ok:
			m.drop(cmd, "parent destroyed")
			return false
		case e.scene != nil || p == e || e.IsAncestorOf(p):
			m.drop(cmd, "would create a cycle")
			return false
		}
		e.reparent(p)

	case CmdDetach:
		e.reparent(nil)

	case CmdAddComponent:
		b := cmd.Component.componentBase()
		b.queuedOn = nil
		e.queued = removeComponent(e.queued, cmd.Component)
		if b.destroyed || b.owner != nil {
			m.drop(cmd, "component destroyed or owned")
			return false
		}
		e.attachComponent(cmd.Component)

	case CmdRemoveComponent:
		b := cmd.Component.componentBase()
		b.removing = false
		if b.owner != e {
			m.drop(cmd, "component not attached")
			return false
		}
		e.detachComponent(cmd.Component)

	case CmdSetEnabled:
		e.disabled = !cmd.Enabled

	case CmdDestroy:
		m.destroy(e)
	}
	return true
}

func (m *EntityManager) drop(cmd Command, reason string) {
	m.log.Debug("structural command dropped",
		zap.Stringer("kind", cmd.Kind),
		zap.Stringer("target", cmd.Target),
		zap.String("reason", reason),
	)
}
