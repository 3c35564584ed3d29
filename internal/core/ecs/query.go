package ecs

// Each visits every active component, across all pools in registration order,
// that implements K. K is usually a capability interface, so a query is
// satisfied by every type implementing it.
func Each[K any](r *Registry, fn func(K)) {
	for _, p := range r.pools {
		p.eachActive(func(c Component) {
			if k, ok := c.(K); ok {
				fn(k)
			}
		})
	}
}

// Get returns e's first component implementing K, in attachment order.
func Get[K any](e *Entity) (K, bool) {
	for _, c := range e.components {
		if k, ok := c.(K); ok {
			return k, true
		}
	}
	var zero K
	return zero, false
}

// GetAll returns every component of e implementing K, in attachment order.
func GetAll[K any](e *Entity) []K {
	var out []K
	for _, c := range e.components {
		if k, ok := c.(K); ok {
			out = append(out, k)
		}
	}
	return out
}

// RemoveComponent removes e's first component implementing K and reports
// whether one was found. The removal follows e's instant/deferred mode. Under
// an active scene, components with a queued add count as attached after the
// current ones, and components already queued for removal are skipped.
func RemoveComponent[K any](e *Entity) bool {
	for _, list := range [][]Component{e.components, e.queued} {
		for _, c := range list {
			if _, ok := c.(K); !ok || c.componentBase().removing {
				continue
			}
			e.RemoveComponent(c)
			return true
		}
	}
	return false
}
