package graph

import (
	"fmt"
	"strconv"

	"github.com/Bukisoo/d3-force-tree-app/internal/model"
)

// Painter decides the color a subtree takes when it is attached under a
// target with the given color.
type Painter interface {
	SubtreeColor(targetColor string) string
}

// AddNode appends a new top-level node with a fresh id and returns it.
func (m *Model) AddNode(name, color string) model.Node {
	n := model.NewNode(m.nextID(), name, color)
	m.entries[n.ID] = &entry{node: n, children: []string{}}
	m.entries[n.ID].node.Children = nil
	m.roots = append(m.roots, n.ID)
	return n
}

func (m *Model) nextID() string {
	base := fmt.Sprintf("node-%d", m.now().UnixMilli())
	id := base
	for i := 1; m.Contains(id); i++ {
		id = base + "-" + strconv.Itoa(i)
	}
	return id
}

// RemoveNode deletes the node and its whole subtree. It returns the number
// of nodes removed; zero means the request was a no-op.
func (m *Model) RemoveNode(id string) int {
	if id == model.RootID || !m.Contains(id) {
		return 0
	}
	ids := m.Subtree(id)
	m.unlink(id)
	for _, sub := range ids {
		delete(m.entries, sub)
	}
	return len(ids)
}

// UpdateProperty replaces one field of a node. childrenHidden takes a
// boolean string. It reports whether the node changed.
func (m *Model) UpdateProperty(id, key, value string) bool {
	e, ok := m.entries[id]
	if !ok {
		return false
	}
	n := &e.node
	switch key {
	case model.PropName:
		if n.Name == value {
			return false
		}
		n.Name = value
	case model.PropColor:
		if n.Color == value {
			return false
		}
		n.Color = value
	case model.PropNotes:
		if n.Notes == value {
			return false
		}
		n.Notes = value
	case model.PropChildrenHidden:
		hidden, err := strconv.ParseBool(value)
		if err != nil || n.ChildrenHidden == hidden {
			return false
		}
		n.ChildrenHidden = hidden
	default:
		return false
	}
	return true
}

// DetachNode moves a nested node to the top level and resets its color.
func (m *Model) DetachNode(id string) bool {
	e, ok := m.entries[id]
	if !ok || id == model.RootID || e.parent == "" {
		return false
	}
	m.unlink(id)
	e.node.Color = model.DefaultColor
	m.roots = append(m.roots, id)
	return true
}

// CanReparent reports whether moving source under target keeps the forest
// a valid tree.
func (m *Model) CanReparent(source, target string) bool {
	if source == target || source == model.RootID {
		return false
	}
	if !m.Contains(source) || !m.Contains(target) {
		return false
	}
	return !m.IsDescendant(source, target)
}

// ReparentNode moves source, with its subtree, to the end of target's
// children. Requests that would create a cycle or move the root are
// rejected. The moved subtree is repainted: source takes the color chosen by
// p, and so does every descendant still sharing source's previous color.
func (m *Model) ReparentNode(source, target string, p Painter) bool {
	if !m.CanReparent(source, target) {
		return false
	}

	src := m.entries[source]
	dst := m.entries[target]
	original := src.node.Color
	color := dst.node.Color
	if p != nil {
		color = p.SubtreeColor(dst.node.Color)
	}

	m.unlink(source)
	dst.children = append(dst.children, source)
	src.parent = target
	m.recolor(source, original, color)
	return true
}

// ToggleVisibility flips ChildrenHidden on a node. Descendants keep their
// own flags.
func (m *Model) ToggleVisibility(id string) bool {
	e, ok := m.entries[id]
	if !ok {
		return false
	}
	e.node.ChildrenHidden = !e.node.ChildrenHidden
	return true
}

// unlink removes id from its parent's child list, or from the roots.
func (m *Model) unlink(id string) {
	e := m.entries[id]
	if e.parent == "" {
		m.roots = remove(m.roots, id)
		return
	}
	parent := m.entries[e.parent]
	parent.children = remove(parent.children, id)
	e.parent = ""
}

func remove(ids []string, id string) []string {
	for i, v := range ids {
		if v == id {
			return append(ids[:i:i], ids[i+1:]...)
		}
	}
	return ids
}
