package prefab

import (
	"fmt"
	"os"

	"github.com/mousecraft/omega/internal/core/ecs"
	"gopkg.in/yaml.v3"
)

// Node describes one entity of a prefab tree.
type Node struct {
	Name       string      `yaml:"name"`
	Enabled    *bool       `yaml:"enabled"`
	Position   ecs.Vec3    `yaml:"position"`
	Rotation   ecs.Vec3    `yaml:"rotation"`
	Scale      *ecs.Vec3   `yaml:"scale"` // unit scale when omitted
	Components []Component `yaml:"components"`
	Children   []Node      `yaml:"children"`
}

// Component names a registered component type. Params is decoded straight
// into the new instance, so its keys are the type's yaml field names.
type Component struct {
	Type   string    `yaml:"type"`
	Params yaml.Node `yaml:"params"`
}

// Load reads a prefab document.
func Load(path string) (*Node, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read prefab: %w", err)
	}
	n, err := Parse(raw)
	if err != nil {
		return nil, fmt.Errorf("prefab %s: %w", path, err)
	}
	return n, nil
}

// Parse decodes a prefab document.
func Parse(raw []byte) (*Node, error) {
	var n Node
	if err := yaml.Unmarshal(raw, &n); err != nil {
		return nil, fmt.Errorf("parse prefab: %w", err)
	}
	return &n, nil
}

// Instantiate builds the tree as detached entities, so every edit is instant
// and no init hook fires yet. Attach the returned root to a scene to bring it
// to life. On error nothing is left behind.
func (n *Node) Instantiate(m *ecs.EntityManager, reg *ecs.Registry) (*ecs.Entity, error) {
	e := m.Create()
	if err := n.build(e, m, reg); err != nil {
		_ = e.Destroy()
		return nil, err
	}
	return e, nil
}

func (n *Node) build(e *ecs.Entity, m *ecs.EntityManager, reg *ecs.Registry) error {
	e.SetName(n.Name)
	t := ecs.IdentityTransform()
	t.Position = n.Position
	t.Rotation = n.Rotation
	if n.Scale != nil {
		t.Scale = *n.Scale
	}
	e.SetLocalTransform(t)
	if n.Enabled != nil {
		e.SetEnabled(*n.Enabled)
	}

	for _, cs := range n.Components {
		c, err := reg.Create(cs.Type)
		if err != nil {
			return fmt.Errorf("entity %q: %w", n.Name, err)
		}
		// Attach before decoding so a failed decode is cleaned up with e.
		if err := e.AddComponent(c); err != nil {
			return fmt.Errorf("entity %q: %w", n.Name, err)
		}
		if !cs.Params.IsZero() {
			if err := cs.Params.Decode(c); err != nil {
				return fmt.Errorf("entity %q: decode %s params: %w", n.Name, cs.Type, err)
			}
		}
	}

	for i := range n.Children {
		child := m.Create()
		if err := e.AddChild(child); err != nil {
			_ = child.Destroy()
			return fmt.Errorf("entity %q: %w", n.Name, err)
		}
		if err := n.Children[i].build(child, m, reg); err != nil {
			return err
		}
	}
	return nil
}
