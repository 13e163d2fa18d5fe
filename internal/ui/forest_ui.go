package ui

import (
	"fmt"
	"strings"

	"github.com/Bukisoo/d3-force-tree-app/internal/model"

	"github.com/fatih/color"
)

// TreeOptions tunes Tree output.
type TreeOptions struct {
	ShowID   bool
	Selected string
}

// Tree prints every top-level tree of the forest.
func (u *UI) Tree(f model.Forest, opts TreeOptions) {
	if len(f) == 0 {
		u.Println("No nodes to display")
		return
	}
	for _, line := range u.treeLines(f, opts) {
		fmt.Fprintln(u.writer, line)
	}
}

func (u *UI) treeLines(f model.Forest, opts TreeOptions) []string {
	branch := u.style(color.FgYellow)
	id := u.style(color.FgHiMagenta)
	dim := u.style(color.FgHiBlack)
	selected := u.style(color.Bold, color.Underline)

	var out []string
	var build func(n model.Node, prefix string, isLast, top bool)
	build = func(n model.Node, prefix string, isLast, top bool) {
		var line strings.Builder
		line.WriteString(prefix)
		next := prefix
		switch {
		case top:
		case isLast:
			line.WriteString(branch.Sprint("└── "))
			next += "    "
		default:
			line.WriteString(branch.Sprint("├── "))
			next += branch.Sprint("│   ")
		}

		line.WriteString(u.Swatch(n.Color) + " ")
		if n.ID == opts.Selected {
			line.WriteString(selected.Sprint(n.Name))
		} else {
			line.WriteString(n.Name)
		}
		if opts.ShowID {
			line.WriteString(" " + id.Sprintf("[%s]", n.ID))
		}
		if n.Notes != "" {
			line.WriteString(" " + dim.Sprint("✎"))
		}
		if n.ChildrenHidden && len(n.Children) > 0 {
			line.WriteString(" " + dim.Sprintf("(+%d hidden)", n.Count()-1))
			out = append(out, line.String())
			return
		}
		out = append(out, line.String())

		for i, c := range n.Children {
			build(c, next, i == len(n.Children)-1, false)
		}
	}

	for _, n := range f {
		build(n, "", true, true)
	}
	return out
}

// NodeInfo prints every field of one node.
func (u *UI) NodeInfo(n model.Node) {
	label := u.style(color.FgCyan)
	fmt.Fprintf(u.writer, "%s %s\n", label.Sprint("id:"), n.ID)
	fmt.Fprintf(u.writer, "%s %s\n", label.Sprint("name:"), n.Name)
	fmt.Fprintf(u.writer, "%s %s %s\n", label.Sprint("color:"), u.Swatch(n.Color), n.Color)
	fmt.Fprintf(u.writer, "%s %d\n", label.Sprint("children:"), len(n.Children))
	fmt.Fprintf(u.writer, "%s %t\n", label.Sprint("childrenHidden:"), n.ChildrenHidden)
	if n.Notes != "" {
		fmt.Fprintf(u.writer, "%s %s\n", label.Sprint("notes:"), n.Notes)
	}
}
