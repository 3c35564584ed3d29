package component

import (
	"time"

	"github.com/mousecraft/omega/internal/core/ecs"
)

// Rotator spins its owner's local rotation at a constant angular speed.
type Rotator struct {
	ecs.Base
	Speed ecs.Vec3 `yaml:"speed"` // radians per second, per axis
}

func NewRotator() *Rotator { return &Rotator{} }

func (r *Rotator) Update(dt time.Duration) {
	e := r.Entity()
	t := e.LocalTransform()
	t.Rotation = t.Rotation.Add(r.Speed.Scale(dt.Seconds()))
	e.SetLocalTransform(t)
}
