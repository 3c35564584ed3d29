package ecs

import (
	"fmt"
	"math"
)

// registered is implemented by every Manager so the Registry can drive
// snapshots and name-based creation without knowing T.
type registered interface {
	pool
	Type() ComponentType
	Name() string
	Len() int
	sync()
	eachActive(fn func(Component))
	create() Component
}

// Registry tracks all component pools. Types are tagged in registration order,
// starting at 1; the zero ComponentType is never assigned.
type Registry struct {
	pools  []registered
	byName map[string]ComponentType
}

func NewRegistry() *Registry {
	return &Registry{
		pools:  make([]registered, 0, 16),
		byName: make(map[string]ComponentType, 16),
	}
}

// Register creates the pool for T. factory must return a fresh, non-nil
// instance on every call.
func Register[T Component](r *Registry, name string, factory func() T) (*Manager[T], error) {
	if _, exists := r.byName[name]; exists {
		return nil, fmt.Errorf("register component %q: %w", name, ErrDuplicateType)
	}
	if len(r.pools) >= math.MaxUint16-1 {
		return nil, fmt.Errorf("register component %q: %w", name, ErrTooManyTypes)
	}
	m := &Manager[T]{
		typ:     ComponentType(len(r.pools) + 1),
		name:    name,
		factory: factory,
		live:    make([]T, 0, 64),
	}
	r.pools = append(r.pools, m)
	r.byName[name] = m.typ
	return m, nil
}

// MustRegister is Register for package-level wiring where a duplicate name is
// a programming error.
func MustRegister[T Component](r *Registry, name string, factory func() T) *Manager[T] {
	m, err := Register(r, name, factory)
	if err != nil {
		panic(err)
	}
	return m
}

// Sync rebuilds the per-tick snapshot of every pool that changed since the
// last call. The engine calls it once at tick start.
func (r *Registry) Sync() {
	for _, p := range r.pools {
		p.sync()
	}
}

// Lookup resolves a registered name to its tag.
func (r *Registry) Lookup(name string) (ComponentType, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// Name returns the registered name of t, or "" if t is unknown.
func (r *Registry) Name(t ComponentType) string {
	if p := r.pool(t); p != nil {
		return p.Name()
	}
	return ""
}

// Create allocates a component through the pool registered under name.
func (r *Registry) Create(name string) (Component, error) {
	t, ok := r.byName[name]
	if !ok {
		return nil, fmt.Errorf("create component %q: %w", name, ErrUnknownType)
	}
	return r.pool(t).create(), nil
}

// Types returns every registered tag in registration order.
func (r *Registry) Types() []ComponentType {
	out := make([]ComponentType, len(r.pools))
	for i, p := range r.pools {
		out[i] = p.Type()
	}
	return out
}

// Count returns the live instance count of t.
func (r *Registry) Count(t ComponentType) int {
	if p := r.pool(t); p != nil {
		return p.Len()
	}
	return 0
}

func (r *Registry) pool(t ComponentType) registered {
	if t == 0 || int(t) > len(r.pools) {
		return nil
	}
	return r.pools[t-1]
}
