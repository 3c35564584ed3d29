package event

import (
	"github.com/google/uuid"
	"github.com/mousecraft/omega/internal/core/ecs"
)

// Engine lifecycle events.

type EntityDestroyed struct {
	EntityID ecs.EntityID
	Name     string
}

type SceneActivated struct {
	SceneID uuid.UUID
	Name    string
}

type SceneDeactivated struct {
	SceneID uuid.UUID
	Name    string
}

type TickCompleted struct {
	Tick    uint64
	Applied int // structural commands applied by this tick's flush
}
