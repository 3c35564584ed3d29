package component

import (
	"fmt"

	"github.com/mousecraft/omega/internal/core/ecs"
)

// Names under which the built-in types are registered. Prefabs refer to
// components by these names.
const (
	RotatorName  = "rotator"
	LifetimeName = "lifetime"
	FollowerName = "follower"
)

// Set holds the managers of the built-in component types.
type Set struct {
	Rotators  *ecs.Manager[*Rotator]
	Lifetimes *ecs.Manager[*Lifetime]
	Followers *ecs.Manager[*Follower]
}

// Register adds every built-in component type to reg.
func Register(reg *ecs.Registry) (*Set, error) {
	var (
		s   Set
		err error
	)
	if s.Rotators, err = ecs.Register(reg, RotatorName, NewRotator); err != nil {
		return nil, fmt.Errorf("register builtins: %w", err)
	}
	if s.Lifetimes, err = ecs.Register(reg, LifetimeName, NewLifetime); err != nil {
		return nil, fmt.Errorf("register builtins: %w", err)
	}
	if s.Followers, err = ecs.Register(reg, FollowerName, NewFollower); err != nil {
		return nil, fmt.Errorf("register builtins: %w", err)
	}
	return &s, nil
}
