package graph

import "github.com/Bukisoo/d3-force-tree-app/internal/model"

// Visitor is called once per node during a pre-order walk. Returning false
// skips the node's children.
type Visitor func(n model.Node, depth int) bool

// Walk visits the subtree rooted at id in pre-order.
func (m *Model) Walk(id string, visit Visitor) {
	if _, ok := m.entries[id]; !ok {
		return
	}
	m.walk(id, 0, visit)
}

// WalkForest visits every tree of the forest in order.
func (m *Model) WalkForest(visit Visitor) {
	for _, id := range m.roots {
		m.walk(id, 0, visit)
	}
}

func (m *Model) walk(id string, depth int, visit Visitor) {
	e := m.entries[id]
	if !visit(e.node, depth) {
		return
	}
	for _, child := range e.children {
		m.walk(child, depth+1, visit)
	}
}

// Find returns the id of the first node, in forest pre-order, matching pred.
func (m *Model) Find(pred func(model.Node) bool) (string, bool) {
	var found string
	m.WalkForest(func(n model.Node, _ int) bool {
		if found != "" {
			return false
		}
		if pred(n) {
			found = n.ID
			return false
		}
		return true
	})
	return found, found != ""
}

// Subtree returns the ids of the subtree rooted at id in pre-order, id first.
func (m *Model) Subtree(id string) []string {
	var ids []string
	m.Walk(id, func(n model.Node, _ int) bool {
		ids = append(ids, n.ID)
		return true
	})
	return ids
}

// IsDescendant reports whether id lies in the subtree rooted at ancestor.
// A node counts as its own descendant.
func (m *Model) IsDescendant(ancestor, id string) bool {
	found := false
	m.Walk(ancestor, func(n model.Node, _ int) bool {
		if n.ID == id {
			found = true
		}
		return !found
	})
	return found
}

// Visible flattens the forest into the nodes and links that take part in
// layout. Children of a node with ChildrenHidden set are left out entirely,
// along with their own descendants.
func (m *Model) Visible() ([]model.VisibleNode, []model.Link) {
	var nodes []model.VisibleNode
	var links []model.Link
	m.WalkForest(func(n model.Node, depth int) bool {
		e := m.entries[n.ID]
		nodes = append(nodes, model.VisibleNode{
			ID:       n.ID,
			Name:     n.Name,
			Color:    n.Color,
			Depth:    depth,
			Children: len(e.children),
			Hidden:   n.ChildrenHidden,
		})
		if n.ChildrenHidden {
			return false
		}
		for _, child := range e.children {
			links = append(links, model.Link{
				Source: n.ID,
				Target: child,
				Color:  m.entries[child].node.Color,
			})
		}
		return true
	})
	return nodes, links
}

// recolor sets every node of the subtree below id whose color equals from to
// the color to. The node at id itself is always set.
func (m *Model) recolor(id, from, to string) {
	m.entries[id].node.Color = to
	for _, child := range m.entries[id].children {
		m.Walk(child, func(n model.Node, _ int) bool {
			if n.Color == from {
				m.entries[n.ID].node.Color = to
			}
			return true
		})
	}
}
