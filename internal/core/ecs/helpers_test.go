package ecs_test

import (
	"strings"
	"testing"

	"github.com/mousecraft/omega/internal/core/ecs"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

// labeler is a capability shared by both test component types.
type labeler interface {
	Label() string
}

type probe struct {
	ecs.Base
	label     string
	inits     int
	destroys  int
	log       *[]string
	onInit    func(p *probe)
	onDestroy func(p *probe)
}

func (p *probe) Label() string { return p.label }

func (p *probe) OnInitialized() {
	p.inits++
	if p.log != nil {
		*p.log = append(*p.log, p.label)
	}
	if p.onInit != nil {
		p.onInit(p)
	}
}

func (p *probe) OnDestroyed() {
	p.destroys++
	if p.onDestroy != nil {
		p.onDestroy(p)
	}
}

type marker struct {
	ecs.Base
	label string
}

func (m *marker) Label() string { return m.label }

type fixture struct {
	entities *ecs.EntityManager
	reg      *ecs.Registry
	probes   *ecs.Manager[*probe]
	markers  *ecs.Manager[*marker]
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	reg := ecs.NewRegistry()
	probes, err := ecs.Register(reg, "probe", func() *probe { return &probe{} })
	require.NoError(t, err)
	markers, err := ecs.Register(reg, "marker", func() *marker { return &marker{} })
	require.NoError(t, err)
	return &fixture{
		entities: ecs.NewEntityManager(zap.NewNop()),
		reg:      reg,
		probes:   probes,
		markers:  markers,
	}
}

func (f *fixture) entity(t *testing.T, name string, parent *ecs.Entity) *ecs.Entity {
	t.Helper()
	e := f.entities.Create()
	e.SetName(name)
	if parent != nil {
		require.NoError(t, parent.AddChild(e))
	}
	return e
}

func (f *fixture) probe(label string, log *[]string) *probe {
	return f.probes.Create(func(p *probe) {
		p.label = label
		p.log = log
	})
}

// shape renders the subtree as name[child child ...], with disabled entities
// prefixed by '!'.
func shape(e *ecs.Entity) string {
	var b strings.Builder
	var walk func(n *ecs.Entity)
	walk = func(n *ecs.Entity) {
		if !n.Enabled() {
			b.WriteByte('!')
		}
		b.WriteString(n.Name())
		kids := n.Children()
		if len(kids) == 0 {
			return
		}
		b.WriteByte('[')
		for i, c := range kids {
			if i > 0 {
				b.WriteByte(' ')
			}
			walk(c)
		}
		b.WriteByte(']')
	}
	walk(e)
	return b.String()
}

// requireConsistent checks that every child points back at its parent, and
// that no entity appears twice in the subtree.
func requireConsistent(t *testing.T, root *ecs.Entity) {
	t.Helper()
	seen := make(map[*ecs.Entity]bool)
	var walk func(n *ecs.Entity)
	walk = func(n *ecs.Entity) {
		require.False(t, seen[n], "entity %s reached twice", n)
		seen[n] = true
		for _, c := range n.Children() {
			require.Same(t, n, c.Parent(), "child %s of %s", c, n)
			walk(c)
		}
	}
	walk(root)
}
