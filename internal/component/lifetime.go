package component

import (
	"time"

	"github.com/mousecraft/omega/internal/core/ecs"
)

// Lifetime destroys its owner once Duration of active time has elapsed.
// Pure data, LifetimeSystem does the counting.
type Lifetime struct {
	ecs.Base
	Duration time.Duration `yaml:"duration"`
	Elapsed  time.Duration `yaml:"-"`
	Expired  bool          `yaml:"-"`
}

func NewLifetime() *Lifetime { return &Lifetime{} }

// Remaining is the active time left before expiry.
func (l *Lifetime) Remaining() time.Duration {
	if l.Elapsed >= l.Duration {
		return 0
	}
	return l.Duration - l.Elapsed
}
