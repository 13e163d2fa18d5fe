package cli

import (
	"bytes"
	"context"
	"errors"
	"math/rand"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/Bukisoo/d3-force-tree-app/internal/config"
	"github.com/Bukisoo/d3-force-tree-app/internal/data"
	"github.com/Bukisoo/d3-force-tree-app/internal/interaction"
	"github.com/Bukisoo/d3-force-tree-app/internal/storage"
	"github.com/Bukisoo/d3-force-tree-app/internal/ui"
)

type harness struct {
	cli     *CLI
	manager *data.Manager
	out     *bytes.Buffer
	asked   []string
}

func newHarness(t *testing.T, answer bool) *harness {
	t.Helper()
	clock := time.UnixMilli(1700000000000)
	tick := func() time.Time {
		clock = clock.Add(time.Millisecond)
		return clock
	}
	m, err := data.NewManager(data.Options{
		Store:  storage.NewMemoryStore(),
		Config: config.Default(),
		Rand:   rand.New(rand.NewSource(7)),
		Clock:  tick,
	})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	if err := m.Load(context.Background()); err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	m.Settle(3000)

	h := &harness{manager: m, out: &bytes.Buffer{}}
	h.cli = NewCLI(Options{
		Manager: m,
		UI:      ui.NewUI(h.out, false),
		Clock:   tick,
		Confirm: interaction.ConfirmFunc(func(id, _ string) bool {
			h.asked = append(h.asked, id)
			return answer
		}),
	})
	return h
}

func (h *harness) run(t *testing.T, line string) {
	t.Helper()
	if err := h.cli.Execute(context.Background(), line); err != nil {
		t.Fatalf("%q failed: %v", line, err)
	}
}

func TestParseArgs(t *testing.T) {
	tests := []struct {
		input string
		want  []string
	}{
		{"add", []string{"add"}},
		{"add  Gare", []string{"add", "Gare"}},
		{`add "Gare du Nord"`, []string{"add", "Gare du Nord"}},
		{`notes main ""`, []string{"notes", "main", ""}},
		{"mod main color #455EED", []string{"mod", "main", "color", "#455EED"}},
		{"", nil},
	}
	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got := ParseArgs(tt.input)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("expected %q, got %q", tt.want, got)
			}
		})
	}
}

func TestParseCommand(t *testing.T) {
	cmd := parseCommand([]string{"show", "--id", "main"})
	if cmd.Operation != "show" {
		t.Errorf("expected show, got %q", cmd.Operation)
	}
	if !cmd.HasFlag("id") || cmd.HasFlag("json") {
		t.Errorf("expected only --id set, got %v", cmd.Flags)
	}
	if !reflect.DeepEqual(cmd.Args, []string{"main"}) {
		t.Errorf("expected [main], got %q", cmd.Args)
	}
}

func TestExecute_AddAndUndo(t *testing.T) {
	h := newHarness(t, true)
	h.run(t, `add "Gare du Nord"`)

	f := h.manager.Forest()
	if len(f) != 2 || f[1].Name != "Gare du Nord" {
		t.Fatalf("expected new top-level node, got %d trees", len(f))
	}
	if !strings.Contains(h.out.String(), "Gare du Nord") {
		t.Errorf("expected confirmation output, got %q", h.out.String())
	}

	h.run(t, "undo")
	if len(h.manager.Forest()) != 1 {
		t.Errorf("expected add undone, got %d trees", len(h.manager.Forest()))
	}
	h.out.Reset()
	h.run(t, "undo")
	if !strings.Contains(h.out.String(), "nothing to undo") {
		t.Errorf("expected underflow warning, got %q", h.out.String())
	}
}

func TestExecute_ModifyAndNotes(t *testing.T) {
	h := newHarness(t, true)
	h.run(t, "mod main name Hub")
	h.run(t, `notes child-1 "closes at night"`)

	root, _ := h.manager.Node("main")
	if root.Name != "Hub" {
		t.Errorf("expected Hub, got %q", root.Name)
	}
	c1, _ := h.manager.Node("child-1")
	if c1.Notes != "closes at night" {
		t.Errorf("expected notes saved, got %q", c1.Notes)
	}
	if err := h.cli.Execute(context.Background(), "mod main size 3"); err == nil {
		t.Error("expected unknown property error")
	}
}

func TestExecute_DeleteAsksFirst(t *testing.T) {
	h := newHarness(t, false)
	h.run(t, "del child-1")
	if _, ok := h.manager.Node("child-1"); !ok {
		t.Fatal("expected declined deletion to keep the node")
	}
	if !reflect.DeepEqual(h.asked, []string{"child-1"}) {
		t.Errorf("expected one confirmation for child-1, got %v", h.asked)
	}

	h.run(t, "del child-1 --force")
	if _, ok := h.manager.Node("subchild-1-1"); ok {
		t.Error("expected forced deletion to remove the subtree")
	}

	h.run(t, "del main")
	if _, ok := h.manager.Node("main"); !ok {
		t.Error("expected root to survive deletion")
	}
}

func TestExecute_MoveDetachToggle(t *testing.T) {
	h := newHarness(t, true)
	h.run(t, "move child-3 subchild-1-1")
	if p, _ := h.manager.Node("subchild-1-1"); len(p.Children) != 1 {
		t.Fatalf("expected child-3 under subchild-1-1, got %d children", len(p.Children))
	}

	h.out.Reset()
	h.run(t, "move child-1 subchild-1-1")
	if !strings.Contains(h.out.String(), "cannot move") {
		t.Errorf("expected cycle rejection, got %q", h.out.String())
	}

	h.run(t, "detach child-2")
	if len(h.manager.Forest()) != 2 {
		t.Errorf("expected detached tree at top level, got %d", len(h.manager.Forest()))
	}

	h.run(t, "toggle child-1")
	nodes, _ := h.manager.Visible()
	for _, n := range nodes {
		if n.ID == "subchild-1-1" {
			t.Error("expected collapsed children to be hidden")
		}
	}
}

func TestExecute_DragToTrash(t *testing.T) {
	h := newHarness(t, true)
	h.run(t, "drag child-3 50 50")
	if _, ok := h.manager.Node("child-3"); ok {
		t.Fatal("expected node dropped on the trash to be deleted")
	}
	if len(h.asked) != 1 {
		t.Errorf("expected one confirmation, got %d", len(h.asked))
	}
}

func TestExecute_DragDeclined(t *testing.T) {
	h := newHarness(t, false)
	h.run(t, "drag child-3 50 50")
	if _, ok := h.manager.Node("child-3"); !ok {
		t.Fatal("expected declined drop to keep the node")
	}
	if !strings.Contains(h.out.String(), "deletion cancelled") {
		t.Errorf("expected cancel message, got %q", h.out.String())
	}
}

func TestExecute_DragReparent(t *testing.T) {
	h := newHarness(t, true)
	h.manager.Simulation().Pin("subchild-2-2", 7000, 7000)
	h.run(t, "drag child-3 7020 7000 120")

	p, _ := h.manager.Node("subchild-2-2")
	if len(p.Children) != 1 || p.Children[0].ID != "child-3" {
		t.Fatalf("expected child-3 under subchild-2-2, got %+v", p.Children)
	}
	if p.Children[0].Color != "#F7AFE7" {
		t.Errorf("expected inherited color, got %s", p.Children[0].Color)
	}
}

func TestExecute_ShortDragSelects(t *testing.T) {
	h := newHarness(t, true)
	before := h.manager.Forest()
	h.run(t, "drag child-2 50 50 20")

	if !reflect.DeepEqual(before, h.manager.Forest()) {
		t.Error("expected a click to leave the forest untouched")
	}
	if h.cli.Controller().Selected() != "child-2" {
		t.Errorf("expected child-2 selected, got %q", h.cli.Controller().Selected())
	}
	if len(h.asked) != 0 {
		t.Errorf("expected no confirmation, got %v", h.asked)
	}
}

func TestExecute_LayoutJSON(t *testing.T) {
	h := newHarness(t, true)
	h.run(t, "layout --json")
	out := h.out.String()
	if !strings.Contains(out, `"nodes"`) || !strings.Contains(out, `"path": "M`) {
		t.Errorf("expected frame JSON, got %q", out)
	}
}

func TestExecute_ExportImport(t *testing.T) {
	h := newHarness(t, true)
	path := filepath.Join(t.TempDir(), "map.xml")
	h.run(t, "mod main name Exported")
	h.run(t, "export "+path)
	h.run(t, "mod main name Changed")
	h.run(t, "import "+path)

	root, _ := h.manager.Node("main")
	if root.Name != "Exported" {
		t.Errorf("expected imported name, got %q", root.Name)
	}
}

func TestExecuteScript(t *testing.T) {
	h := newHarness(t, true)
	path := filepath.Join(t.TempDir(), "setup.txt")
	script := "# setup\nadd One\n\nadd Two\nbogus\nadd Three\n"
	if err := os.WriteFile(path, []byte(script), 0644); err != nil {
		t.Fatal(err)
	}

	err := h.cli.ExecuteScript(context.Background(), path)
	if err == nil || !strings.Contains(err.Error(), ":5:") {
		t.Fatalf("expected failure on line 5, got %v", err)
	}
	if len(h.manager.Forest()) != 3 {
		t.Errorf("expected two nodes added before the failure, got %d trees", len(h.manager.Forest()))
	}
}

func TestExecute_Errors(t *testing.T) {
	h := newHarness(t, true)
	tests := []struct {
		line string
		want string
	}{
		{"bogus", "unknown command"},
		{"move child-1", "invalid arguments"},
		{"toggle nope", "not found"},
		{"tick zero", "invalid count"},
		{"drag nope 1 1", "not on the canvas"},
	}
	for _, tt := range tests {
		t.Run(tt.line, func(t *testing.T) {
			err := h.cli.Execute(context.Background(), tt.line)
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("expected error containing %q, got %v", tt.want, err)
			}
		})
	}

	if err := h.cli.Execute(context.Background(), "quit"); !errors.Is(err, ErrExit) {
		t.Errorf("expected ErrExit, got %v", err)
	}
}

func TestHelp(t *testing.T) {
	h := newHarness(t, true)
	h.run(t, "help")
	if !strings.Contains(h.out.String(), "drag") {
		t.Errorf("expected drag in general help, got %q", h.out.String())
	}
	h.out.Reset()
	h.run(t, "help move")
	if !strings.Contains(h.out.String(), "move <id> <new-parent-id>") {
		t.Errorf("expected move syntax, got %q", h.out.String())
	}
	if err := h.cli.Execute(context.Background(), "help nope"); err == nil {
		t.Error("expected error for unknown help topic")
	}
}
