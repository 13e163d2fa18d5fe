package data

import "github.com/Bukisoo/d3-force-tree-app/internal/model"

type seed struct {
	id, fallback, color string
	children            []seed
}

var defaultShape = seed{
	id: model.RootID, fallback: "Main Node", color: model.DefaultColor,
	children: []seed{
		{id: "child-1", fallback: "Child 1", color: "#455EED", children: []seed{
			{id: "subchild-1-1", fallback: "Subchild 1-1", color: "#455EED"},
			{id: "subchild-1-2", fallback: "Subchild 1-2", color: "#455EED"},
		}},
		{id: "child-2", fallback: "Child 2", color: "#F7AFE7", children: []seed{
			{id: "subchild-2-1", fallback: "Subchild 2-1", color: "#F7AFE7"},
			{id: "subchild-2-2", fallback: "Subchild 2-2", color: "#F7AFE7"},
		}},
		{id: "child-3", fallback: "Child 3", color: "#FFCF25"},
	},
}

// DefaultForest builds the starting forest. Labels are assigned in
// pre-order; nodes past the end of labels keep their fallback name.
func DefaultForest(labels []string) model.Forest {
	i := 0
	var build func(s seed) model.Node
	build = func(s seed) model.Node {
		name := s.fallback
		if i < len(labels) && labels[i] != "" {
			name = labels[i]
		}
		i++
		n := model.NewNode(s.id, name, s.color)
		for _, c := range s.children {
			n.Children = append(n.Children, build(c))
		}
		return n
	}
	return model.Forest{build(defaultShape)}
}
