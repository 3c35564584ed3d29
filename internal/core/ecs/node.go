package ecs

import "fmt"

// Entity is a node in the scene tree. It owns its children and its attached
// components. Structural edits apply immediately unless the entity (or the
// other entity involved in the edit) is reachable from an active scene, in
// which case they are queued on that scene and applied at its next flush.
type Entity struct {
	id         EntityID
	name       string
	mgr        *EntityManager
	parent     *Entity
	children   []*Entity
	components []Component // attachment order
	queued     []Component // adds waiting for the next flush
	scene      *Scene      // set on scene roots only
	transform  Transform
	disabled   bool
	destroyed  bool
}

func (e *Entity) ID() EntityID { return e.id }

func (e *Entity) Name() string { return e.name }

func (e *Entity) SetName(name string) { e.name = name }

func (e *Entity) String() string {
	if e.name == "" {
		return "entity(" + e.id.String() + ")"
	}
	return fmt.Sprintf("%s(%s)", e.name, e.id)
}

func (e *Entity) Destroyed() bool { return e.destroyed }

// Parent returns nil for scene roots and detached entities.
func (e *Entity) Parent() *Entity { return e.parent }

// Children returns a copy of the child list in order.
func (e *Entity) Children() []*Entity {
	out := make([]*Entity, len(e.children))
	copy(out, e.children)
	return out
}

// FindChild returns the first direct child named name.
func (e *Entity) FindChild(name string) *Entity {
	for _, c := range e.children {
		if c.name == name {
			return c
		}
	}
	return nil
}

// Find returns the first entity named name in e's subtree, e included, in
// pre-order.
func (e *Entity) Find(name string) *Entity {
	if e.name == name {
		return e
	}
	for _, c := range e.children {
		if found := c.Find(name); found != nil {
			return found
		}
	}
	return nil
}

// Components returns a copy of the attached components in attachment order.
func (e *Entity) Components() []Component {
	out := make([]Component, len(e.components))
	copy(out, e.components)
	return out
}

// ComponentsOf returns the attached components tagged t.
func (e *Entity) ComponentsOf(t ComponentType) []Component {
	var out []Component
	for _, c := range e.components {
		if c.Type() == t {
			out = append(out, c)
		}
	}
	return out
}

// Root walks up to the top-most ancestor.
func (e *Entity) Root() *Entity {
	r := e
	for r.parent != nil {
		r = r.parent
	}
	return r
}

// Scene returns the scene whose root this entity hangs under, if any.
func (e *Entity) Scene() *Scene {
	return e.Root().scene
}

// live reports whether the entity is reachable from a scene that defers edits.
func (e *Entity) live() bool {
	s := e.Scene()
	return s != nil && s.deferring()
}

// Enabled returns the local flag.
func (e *Entity) Enabled() bool { return !e.disabled }

// EffectiveEnabled is the local flag AND every ancestor's flag. It is computed
// on each call.
func (e *Entity) EffectiveEnabled() bool {
	if e.destroyed {
		return false
	}
	for n := e; n != nil; n = n.parent {
		if n.disabled {
			return false
		}
	}
	return true
}

// IsAncestorOf reports whether e appears on other's parent chain.
func (e *Entity) IsAncestorOf(other *Entity) bool {
	for n := other.parent; n != nil; n = n.parent {
		if n == e {
			return true
		}
	}
	return false
}

// ── Structural edits ─────────────────────────────────────────────

// AddChild makes child the last child of e.
func (e *Entity) AddChild(child *Entity) error {
	if child == nil {
		return nil
	}
	return child.SetParent(e)
}

// SetParent moves e under p. A nil p detaches e.
func (e *Entity) SetParent(p *Entity) error {
	if err := e.checkReparent(p); err != nil {
		return err
	}
	if s := deferringScene(e, e.parent, p); s != nil {
		cmd := Command{Kind: CmdDetach, Target: e.id}
		if p != nil {
			cmd = Command{Kind: CmdAttach, Target: e.id, Parent: p.id}
		}
		s.enqueue(cmd)
		return nil
	}
	e.reparent(p)
	return nil
}

// RemoveFromParent detaches e from its parent.
func (e *Entity) RemoveFromParent() error {
	return e.SetParent(nil)
}

// SetEnabled sets the local flag.
func (e *Entity) SetEnabled(enabled bool) {
	if e.destroyed {
		return
	}
	if s := deferringScene(e); s != nil {
		s.enqueue(Command{Kind: CmdSetEnabled, Target: e.id, Enabled: enabled})
		return
	}
	e.disabled = !enabled
}

// AddComponent attaches c. The init hook of c fires once e is reachable from
// an active scene, which may be later than the attachment itself.
func (e *Entity) AddComponent(c Component) error {
	b := c.componentBase()
	switch {
	case e.destroyed || b.destroyed:
		return fmt.Errorf("add component to %s: %w", e, ErrDestroyed)
	case b.pool == nil:
		return fmt.Errorf("add component to %s: %w", e, ErrUnmanaged)
	case b.owner != nil || b.queuedOn != nil:
		return fmt.Errorf("add component to %s: %w", e, ErrAlreadyAttached)
	}
	if s := deferringScene(e); s != nil {
		b.queuedOn = e
		e.queued = append(e.queued, c)
		s.enqueue(Command{Kind: CmdAddComponent, Target: e.id, Component: c})
		return nil
	}
	e.attachComponent(c)
	return nil
}

// RemoveComponent detaches and destroys c. A component whose add to e is
// still queued is removed right after that add lands. Components neither
// attached nor queued on e are ignored, as are repeated removes.
func (e *Entity) RemoveComponent(c Component) {
	if c == nil || e.destroyed {
		return
	}
	b := c.componentBase()
	if b.removing || (b.owner != e && b.queuedOn != e) {
		return
	}
	if s := deferringScene(e); s != nil {
		b.removing = true
		s.enqueue(Command{Kind: CmdRemoveComponent, Target: e.id, Component: c})
		return
	}
	if b.owner == e {
		e.detachComponent(c)
	}
}

// Destroy destroys e, its subtree and every attached component. Destroying an
// already destroyed entity is a no-op.
func (e *Entity) Destroy() error {
	if e.destroyed {
		return nil
	}
	if e.scene != nil {
		return fmt.Errorf("destroy %s: %w", e, ErrSceneRoot)
	}
	if s := deferringScene(e); s != nil {
		s.enqueue(Command{Kind: CmdDestroy, Target: e.id})
		return nil
	}
	e.mgr.destroy(e)
	return nil
}

func (e *Entity) checkReparent(p *Entity) error {
	switch {
	case e.destroyed || (p != nil && p.destroyed):
		return fmt.Errorf("reparent %s: %w", e, ErrDestroyed)
	case e.scene != nil:
		return fmt.Errorf("reparent %s: %w", e, ErrSceneRoot)
	case p != nil && (p == e || e.IsAncestorOf(p)):
		return fmt.Errorf("reparent %s under %s: %w", e, p, ErrCycle)
	}
	return nil
}

// deferringScene returns the first scene in deferred mode reachable from any
// of the given entities.
func deferringScene(es ...*Entity) *Scene {
	for _, e := range es {
		if e == nil {
			continue
		}
		if s := e.Scene(); s != nil && s.deferring() {
			return s
		}
	}
	return nil
}

// ── Instant mutation logic, shared by direct edits and flushes ───

func (e *Entity) reparent(p *Entity) {
	if e.parent == p {
		return
	}
	wasLive := e.live()
	if old := e.parent; old != nil {
		old.children = removeEntity(old.children, e)
	}
	e.parent = p
	if p != nil {
		p.children = append(p.children, e)
	}
	if !wasLive && e.live() {
		initSubtree(e)
	}
}

func (e *Entity) attachComponent(c Component) {
	c.componentBase().owner = e
	e.components = append(e.components, c)
	if e.live() {
		initialize(c)
	}
}

func (e *Entity) detachComponent(c Component) {
	idx := -1
	for i, x := range e.components {
		if x == c {
			idx = i
			break
		}
	}
	if idx < 0 {
		return
	}
	c.componentBase().pool.release(c)
	e.components = append(e.components[:idx], e.components[idx+1:]...)
}

// initSubtree fires pending init hooks in pre-order, attachment order within
// an entity. Already initialized components are skipped.
func initSubtree(e *Entity) {
	for _, c := range e.components {
		initialize(c)
	}
	for _, child := range e.children {
		initSubtree(child)
	}
}

func removeComponent(list []Component, c Component) []Component {
	for i, x := range list {
		if x == c {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

func removeEntity(list []*Entity, e *Entity) []*Entity {
	for i, x := range list {
		if x == e {
			return append(list[:i], list[i+1:]...)
		}
	}
	return list
}

// ── Transform ────────────────────────────────────────────────────

func (e *Entity) LocalTransform() Transform { return e.transform }

func (e *Entity) SetLocalTransform(t Transform) { e.transform = t }

func (e *Entity) SetLocalPosition(p Vec3) { e.transform.Position = p }

func (e *Entity) SetLocalRotation(r Vec3) { e.transform.Rotation = r }

func (e *Entity) SetLocalScale(s Vec3) { e.transform.Scale = s }

// WorldTransform composes local transforms from the root down.
func (e *Entity) WorldTransform() Mat4 {
	m := e.transform.Matrix()
	for p := e.parent; p != nil; p = p.parent {
		m = p.transform.Matrix().Mul(m)
	}
	return m
}

// WorldPosition is the world-space location of e's origin.
func (e *Entity) WorldPosition() Vec3 {
	return e.WorldTransform().TransformPoint(Vec3{})
}
