package ecs

import "errors"

// Structural violations. The operation that returns one of these leaves the
// tree unchanged.
var (
	ErrCycle           = errors.New("entity cannot become its own descendant")
	ErrSceneRoot       = errors.New("scene root cannot be reparented or destroyed")
	ErrAlreadyAttached = errors.New("component already attached")
	ErrUnmanaged       = errors.New("component was not created by a manager")
	ErrDestroyed       = errors.New("target already destroyed")
	ErrSceneActive     = errors.New("scene already active")
	ErrSceneInactive   = errors.New("scene not active")
)

// Registration failures.
var (
	ErrDuplicateType = errors.New("component type already registered")
	ErrTooManyTypes  = errors.New("component type limit reached")
	ErrUnknownType   = errors.New("component type not registered")
)
