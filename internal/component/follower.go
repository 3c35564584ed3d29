package component

import (
	"github.com/mousecraft/omega/internal/core/ecs"
)

// Follower reparents its owner under the entity named Target once it is
// initialized. Target is looked up in the whole scene tree.
type Follower struct {
	ecs.Base
	Target string `yaml:"target"`
	err    error
}

func NewFollower() *Follower { return &Follower{} }

func (f *Follower) OnInitialized() {
	e := f.Entity()
	scene := e.Scene()
	if scene == nil || f.Target == "" {
		return
	}
	if target := scene.Root().Find(f.Target); target != nil {
		f.err = e.SetParent(target)
	}
}

// Err returns the error of the reparent attempt, if any.
func (f *Follower) Err() error { return f.err }
