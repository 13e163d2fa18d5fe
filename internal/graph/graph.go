// Package graph owns the forest of nodes and the structural operations on it.
//
// Nodes live in a flat table keyed by id. Parent and child relations are kept
// as id lists, so a node can never be reachable through two paths and moving a
// subtree never copies or aliases it.
package graph

import (
	"fmt"
	"time"

	"github.com/Bukisoo/d3-force-tree-app/internal/model"
)

type entry struct {
	node     model.Node // Children is always nil; structure lives in children
	parent   string
	children []string
}

// Model is the arena-backed forest.
type Model struct {
	entries map[string]*entry
	roots   []string
	now     func() time.Time
}

// Option configures a Model.
type Option func(*Model)

// WithClock sets the time source used to mint node ids.
func WithClock(now func() time.Time) Option {
	return func(m *Model) {
		m.now = now
	}
}

// FromForest builds a Model from a forest, validating its invariants.
func FromForest(f model.Forest, opts ...Option) (*Model, error) {
	m := &Model{now: time.Now}
	for _, opt := range opts {
		opt(m)
	}
	if err := m.Reset(f); err != nil {
		return nil, err
	}
	return m, nil
}

// Reset replaces the whole forest. On error the model is left unchanged.
func (m *Model) Reset(f model.Forest) error {
	entries := make(map[string]*entry, f.Count())
	roots := make([]string, 0, len(f))

	var insert func(n model.Node, parent string) error
	insert = func(n model.Node, parent string) error {
		if n.ID == "" {
			return ErrEmptyID
		}
		if _, exists := entries[n.ID]; exists {
			return fmt.Errorf("%w: %s", ErrDuplicateID, n.ID)
		}
		e := &entry{node: n, parent: parent, children: make([]string, 0, len(n.Children))}
		e.node.Children = nil
		if e.node.Color == "" {
			e.node.Color = model.DefaultColor
		}
		entries[n.ID] = e
		for _, child := range n.Children {
			if err := insert(child, n.ID); err != nil {
				return err
			}
			e.children = append(e.children, child.ID)
		}
		return nil
	}

	for _, n := range f {
		if err := insert(n, ""); err != nil {
			return err
		}
		roots = append(roots, n.ID)
	}

	root, ok := entries[model.RootID]
	if !ok || root.parent != "" {
		return ErrMissingRoot
	}

	m.entries = entries
	m.roots = roots
	return nil
}

// Forest returns a deep copy of the current forest.
func (m *Model) Forest() model.Forest {
	f := make(model.Forest, 0, len(m.roots))
	for _, id := range m.roots {
		f = append(f, m.build(id))
	}
	return f
}

func (m *Model) build(id string) model.Node {
	e := m.entries[id]
	n := e.node
	n.Children = make([]model.Node, 0, len(e.children))
	for _, child := range e.children {
		n.Children = append(n.Children, m.build(child))
	}
	return n
}

// Node returns the node with the given id, including a copy of its subtree.
func (m *Model) Node(id string) (model.Node, bool) {
	if _, ok := m.entries[id]; !ok {
		return model.Node{}, false
	}
	return m.build(id), true
}

// Contains reports whether id is present anywhere in the forest.
func (m *Model) Contains(id string) bool {
	_, ok := m.entries[id]
	return ok
}

// Parent returns the parent id of a node. Top-level nodes report ok with an
// empty parent.
func (m *Model) Parent(id string) (string, bool) {
	e, ok := m.entries[id]
	if !ok {
		return "", false
	}
	return e.parent, true
}

// Roots returns the ids of the top-level nodes in order.
func (m *Model) Roots() []string {
	return append([]string(nil), m.roots...)
}

// Len returns the total number of nodes.
func (m *Model) Len() int {
	return len(m.entries)
}
