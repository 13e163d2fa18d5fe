// Package model defines the data structures used throughout the metro map editor.
package model

const (
	// RootID is the reserved id of the permanent root node.
	RootID = "main"

	// DefaultColor marks a node whose subtree has no color assigned yet.
	DefaultColor = "#e0e0e0"
)

// Node represents a single station in the forest. Children are owned
// exclusively by their parent.
type Node struct {
	ID             string `json:"id" xml:"id,attr"`
	Name           string `json:"name" xml:"name,attr"`
	Color          string `json:"color" xml:"color,attr"`
	Notes          string `json:"notes" xml:"notes"`
	Children       []Node `json:"children" xml:"children>node"`
	ChildrenHidden bool   `json:"childrenHidden" xml:"childrenHidden,attr"`
}

// NewNode returns a childless, visible node.
func NewNode(id, name, color string) Node {
	if color == "" {
		color = DefaultColor
	}
	return Node{
		ID:       id,
		Name:     name,
		Color:    color,
		Children: []Node{},
	}
}

// Clone returns a deep copy of the node and its subtree.
func (n Node) Clone() Node {
	c := n
	c.Children = make([]Node, len(n.Children))
	for i, child := range n.Children {
		c.Children[i] = child.Clone()
	}
	return c
}

// Count returns the number of nodes in the subtree rooted at n, n included.
func (n Node) Count() int {
	total := 1
	for _, child := range n.Children {
		total += child.Count()
	}
	return total
}

// Property names accepted by property updates.
const (
	PropName           = "name"
	PropColor          = "color"
	PropNotes          = "notes"
	PropChildrenHidden = "childrenHidden"
)
