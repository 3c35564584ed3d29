package ecs

import (
	"fmt"

	"github.com/google/uuid"
)

// SceneState is the activation state of a scene.
type SceneState uint8

const (
	SceneInactive   SceneState = iota // edits under the root apply immediately
	SceneActivating                   // init hooks are firing; edits are queued
	SceneActive                       // edits under the root are queued until Flush
)

func (s SceneState) String() string {
	switch s {
	case SceneInactive:
		return "inactive"
	case SceneActivating:
		return "activating"
	case SceneActive:
		return "active"
	}
	return "unknown"
}

// Scene is a root entity plus the activation state that decides whether edits
// to entities under the root are instant or deferred. Each scene owns the
// FIFO queue its deferred edits land in.
type Scene struct {
	id    uuid.UUID
	name  string
	mgr   *EntityManager
	root  *Entity
	state SceneState
	queue []Command
}

// NewScene creates an inactive scene with a fresh root entity.
func NewScene(m *EntityManager, name string) *Scene {
	s := &Scene{
		id:   uuid.New(),
		name: name,
		mgr:  m,
	}
	s.root = m.Create()
	s.root.name = name
	s.root.scene = s
	return s
}

func (s *Scene) ID() uuid.UUID     { return s.id }
func (s *Scene) Name() string      { return s.name }
func (s *Scene) Root() *Entity     { return s.root }
func (s *Scene) State() SceneState { return s.state }
func (s *Scene) Active() bool      { return s.state == SceneActive }

// Pending returns the number of queued commands.
func (s *Scene) Pending() int { return len(s.queue) }

func (s *Scene) deferring() bool { return s.state != SceneInactive }

func (s *Scene) enqueue(cmd Command) {
	s.queue = append(s.queue, cmd)
}

// Activate fires every pending init hook under the root in pre-order, then
// switches the subtree to deferred edits. Edits issued by the hooks
// themselves are queued and flushed before Activate returns.
func (s *Scene) Activate() error {
	switch {
	case s.root.destroyed:
		return fmt.Errorf("activate scene %q: %w", s.name, ErrDestroyed)
	case s.state != SceneInactive:
		return fmt.Errorf("activate scene %q: %w", s.name, ErrSceneActive)
	}
	s.state = SceneActivating
	initSubtree(s.root)
	s.state = SceneActive
	s.Flush()
	return nil
}

// Deactivate flushes whatever is still queued and reverts the subtree to
// instant edits.
func (s *Scene) Deactivate() error {
	if s.state == SceneInactive {
		return fmt.Errorf("deactivate scene %q: %w", s.name, ErrSceneInactive)
	}
	s.Flush()
	s.state = SceneInactive
	return nil
}

// Flush applies queued commands in enqueue order and returns how many were
// applied. Commands queued while flushing (by init hooks or finalizers) are
// applied by the same call.
func (s *Scene) Flush() int {
	applied := 0
	for len(s.queue) > 0 {
		batch := s.queue
		s.queue = nil
		for _, cmd := range batch {
			if s.mgr.apply(cmd) {
				applied++
			}
		}
	}
	return applied
}

// Destroy deactivates the scene if needed and destroys the whole tree.
func (s *Scene) Destroy() {
	if s.state != SceneInactive {
		_ = s.Deactivate()
	}
	s.mgr.destroy(s.root)
}
