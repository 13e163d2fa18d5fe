package model

import "encoding/xml"

// Forest is the ordered sequence of top-level nodes.
type Forest []Node

// Clone returns a fully independent deep copy of the forest.
func (f Forest) Clone() Forest {
	if f == nil {
		return nil
	}
	c := make(Forest, len(f))
	for i, n := range f {
		c[i] = n.Clone()
	}
	return c
}

// Count returns the total number of nodes in the forest.
func (f Forest) Count() int {
	total := 0
	for _, n := range f {
		total += n.Count()
	}
	return total
}

// Document is the XML envelope used for forest export.
type Document struct {
	XMLName xml.Name `xml:"metromap"`
	Nodes   Forest   `xml:"node"`
}

// Link is a derived parent to child edge between two visible nodes.
// Color is the stroke color, taken from the deeper of the two nodes.
type Link struct {
	Source string `json:"source"`
	Target string `json:"target"`
	Color  string `json:"color,omitempty"`
}

// VisibleNode is one entry of the flattened visible set.
type VisibleNode struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Color    string `json:"color"`
	Depth    int    `json:"depth"`
	Children int    `json:"children"`
	Hidden   bool   `json:"childrenHidden"`
}
