package component

import "time"

// Updatable is the capability of components that advance themselves every
// tick. UpdatableSystem drives every active Updatable regardless of its
// concrete type.
type Updatable interface {
	Update(dt time.Duration)
}
