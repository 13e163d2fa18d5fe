package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/Bukisoo/d3-force-tree-app/internal/model"
)

func sampleForest() model.Forest {
	root := model.NewNode(model.RootID, "Main", "")
	a := model.NewNode("a", "A", "#455EED")
	a.Children = append(a.Children, model.NewNode("a1", "A1", "#455EED"), model.NewNode("a2", "A2", "#455EED"))
	b := model.NewNode("b", "B", "#FFCF25")
	b.ChildrenHidden = true
	b.Children = append(b.Children, model.NewNode("b1", "B1", "#FFCF25"))
	root.Children = append(root.Children, a, b)
	return model.Forest{root, model.NewNode("loose", "Loose", "")}
}

func TestTree(t *testing.T) {
	var buf bytes.Buffer
	u := NewUI(&buf, false)
	u.Tree(sampleForest(), TreeOptions{ShowID: true})

	want := []string{
		"● Main [main]",
		"├── ● A [a]",
		"│   ├── ● A1 [a1]",
		"│   └── ● A2 [a2]",
		"└── ● B [b] (+1 hidden)",
		"● Loose [loose]",
	}
	got := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d:\n%s", len(want), len(got), buf.String())
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: expected %q, got %q", i, want[i], got[i])
		}
	}
}

func TestTree_Empty(t *testing.T) {
	var buf bytes.Buffer
	NewUI(&buf, false).Tree(nil, TreeOptions{})
	if !strings.Contains(buf.String(), "No nodes") {
		t.Errorf("unexpected output %q", buf.String())
	}
}

func TestSwatch(t *testing.T) {
	u := NewUI(&bytes.Buffer{}, true)
	if got := u.Swatch("#455EED"); !strings.Contains(got, "38;2;69;94;237") {
		t.Errorf("expected RGB escape, got %q", got)
	}
	if got := u.Swatch("teal"); got != "●" {
		t.Errorf("expected plain swatch for unknown color, got %q", got)
	}
}

func TestTable(t *testing.T) {
	var buf bytes.Buffer
	NewUI(&buf, false).Table([]string{"ID", "NAME"}, [][]string{{"main", "Main Station"}, {"a", "A"}})
	out := buf.String()
	if !strings.Contains(out, "  main  Main Station\n") {
		t.Errorf("expected aligned row, got:\n%s", out)
	}
	if !strings.Contains(out, "────") {
		t.Errorf("expected separator line, got:\n%s", out)
	}
}

func TestMessages(t *testing.T) {
	var buf bytes.Buffer
	u := NewUI(&buf, false)
	u.Error("boom")
	u.Warning("careful")
	u.Success("done")
	if got, want := buf.String(), "! boom\n? careful\ndone\n"; got != want {
		t.Errorf("expected %q, got %q", want, got)
	}
	if p := u.Prompt("ada"); p != "ada > " {
		t.Errorf("unexpected prompt %q", p)
	}
}
