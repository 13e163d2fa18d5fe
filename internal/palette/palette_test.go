package palette

import (
	"math/rand"
	"testing"

	"github.com/Bukisoo/d3-force-tree-app/internal/model"
)

func TestNextColor_ExhaustsPaletteFirst(t *testing.T) {
	colors := []string{"#111111", "#222222", "#333333"}
	a := New(colors, "", rand.New(rand.NewSource(1)))

	seen := map[string]bool{}
	for i := 0; i < len(colors); i++ {
		c := a.NextColor()
		if seen[c] {
			t.Fatalf("expected unused color, got repeated %s", c)
		}
		seen[c] = true
	}
	for i := 0; i < 10; i++ {
		c := a.NextColor()
		if !seen[c] {
			t.Errorf("expected palette color after exhaustion, got %s", c)
		}
	}
}

func TestSubtreeColor(t *testing.T) {
	a := New([]string{"#111111"}, "", rand.New(rand.NewSource(1)))
	if got := a.SubtreeColor("#abcdef"); got != "#abcdef" {
		t.Errorf("expected target color kept, got %s", got)
	}
	if a.Used("#111111") {
		t.Error("expected no allocation for a colored target")
	}
	if got := a.SubtreeColor(model.DefaultColor); got != "#111111" {
		t.Errorf("expected fresh color, got %s", got)
	}
	if !a.Used("#111111") {
		t.Error("expected fresh color recorded as used")
	}
}

func TestObserve(t *testing.T) {
	a := New([]string{"#111111", "#222222"}, "", rand.New(rand.NewSource(7)))
	root := model.NewNode(model.RootID, "Main", "")
	root.Children = append(root.Children, model.NewNode("a", "A", "#111111"))
	a.Observe(model.Forest{root})

	if a.Used(model.DefaultColor) {
		t.Error("expected default color never marked used")
	}
	if got := a.NextColor(); got != "#222222" {
		t.Errorf("expected the only free color, got %s", got)
	}
	a.Reset()
	if a.Used("#111111") {
		t.Error("expected reset to clear used colors")
	}
}

func TestNew_Defaults(t *testing.T) {
	a := New(nil, "", nil)
	if len(a.Colors()) != len(DefaultColors) {
		t.Errorf("expected %d colors, got %d", len(DefaultColors), len(a.Colors()))
	}
}
