// Package palette hands out subtree colors from a fixed palette.
package palette

import (
	"math/rand"

	"github.com/Bukisoo/d3-force-tree-app/internal/model"
)

// DefaultColors is the palette used when none is configured.
var DefaultColors = []string{
	"#455EED",
	"#F7AFE7",
	"#FFCF25",
	"#2BB3A3",
	"#FF8A3D",
	"#E5484D",
}

// Allocator tracks which palette colors are in use.
type Allocator struct {
	colors       []string
	defaultColor string
	used         map[string]bool
	rng          *rand.Rand
}

// New returns an allocator over colors. An empty palette falls back to
// DefaultColors; an empty defaultColor to model.DefaultColor.
func New(colors []string, defaultColor string, rng *rand.Rand) *Allocator {
	if len(colors) == 0 {
		colors = DefaultColors
	}
	if defaultColor == "" {
		defaultColor = model.DefaultColor
	}
	if rng == nil {
		rng = rand.New(rand.NewSource(rand.Int63()))
	}
	return &Allocator{
		colors:       append([]string(nil), colors...),
		defaultColor: defaultColor,
		used:         make(map[string]bool),
		rng:          rng,
	}
}

// NextColor returns a random palette color not yet used, or any palette
// color once all are taken. The choice is recorded as used.
func (a *Allocator) NextColor() string {
	free := make([]string, 0, len(a.colors))
	for _, c := range a.colors {
		if !a.used[c] {
			free = append(free, c)
		}
	}
	var c string
	if len(free) > 0 {
		c = free[a.rng.Intn(len(free))]
	} else {
		c = a.colors[a.rng.Intn(len(a.colors))]
	}
	a.used[c] = true
	return c
}

// SubtreeColor returns the color a subtree takes when attached under a node
// of targetColor: the target's own color, or a fresh one when the target is
// still unassigned.
func (a *Allocator) SubtreeColor(targetColor string) string {
	if targetColor == a.defaultColor || targetColor == "" {
		return a.NextColor()
	}
	return targetColor
}

// Observe marks every palette color present in the forest as used.
func (a *Allocator) Observe(f model.Forest) {
	var walk func(n model.Node)
	walk = func(n model.Node) {
		if n.Color != a.defaultColor {
			a.used[n.Color] = true
		}
		for _, c := range n.Children {
			walk(c)
		}
	}
	for _, n := range f {
		walk(n)
	}
}

// Used reports whether c has been handed out or observed.
func (a *Allocator) Used(c string) bool {
	return a.used[c]
}

// Reset forgets every used color.
func (a *Allocator) Reset() {
	a.used = make(map[string]bool)
}

// Colors returns the palette.
func (a *Allocator) Colors() []string {
	return append([]string(nil), a.colors...)
}
