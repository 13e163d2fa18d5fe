package interaction

import (
	"context"
	"errors"
	"math/rand"
	"testing"
	"time"

	"github.com/Bukisoo/d3-force-tree-app/internal/layout"
	"github.com/Bukisoo/d3-force-tree-app/internal/model"
)

type fakeEditor struct {
	removed    []string
	reparented [][2]string
	accept     bool
	err        error
}

func (f *fakeEditor) RemoveNode(_ context.Context, id string) (bool, error) {
	f.removed = append(f.removed, id)
	return f.accept, f.err
}

func (f *fakeEditor) ReparentNode(_ context.Context, source, target string) (bool, error) {
	f.reparented = append(f.reparented, [2]string{source, target})
	return f.accept, f.err
}

var t0 = time.Unix(1700000000, 0)

func setup(t *testing.T, confirm bool) (*Controller, *layout.Simulation, *fakeEditor) {
	t.Helper()
	sim := layout.NewSimulation(layout.DefaultConfig(), rand.New(rand.NewSource(3)))
	sim.SetGraph([]model.VisibleNode{
		{ID: model.RootID, Name: "Main"},
		{ID: "a", Name: "A"},
		{ID: "b", Name: "B"},
	}, []model.Link{{Source: model.RootID, Target: "a"}})
	sim.Settle(1000)

	ed := &fakeEditor{accept: true}
	c := NewController(DefaultConfig(), sim, ed, ConfirmFunc(func(string, string) bool { return confirm }))
	return c, sim, ed
}

// gesture drags id to (x, y) and releases it after hold.
func gesture(t *testing.T, c *Controller, id string, x, y float64, hold time.Duration) Outcome {
	t.Helper()
	if !c.DragStart(PointerEvent{NodeID: id, At: t0}) {
		t.Fatalf("DragStart(%s) failed", id)
	}
	c.DragMove(PointerEvent{NodeID: id, X: x, Y: y, At: t0.Add(hold / 2)})
	out, err := c.DragEnd(context.Background(), PointerEvent{NodeID: id, X: x, Y: y, At: t0.Add(hold)})
	if err != nil {
		t.Fatalf("DragEnd failed: %v", err)
	}
	return out
}

func TestDragStart_PinsAndReheats(t *testing.T) {
	c, sim, _ := setup(t, true)
	if sim.Active() {
		t.Fatal("expected settled simulation")
	}
	c.DragStart(PointerEvent{NodeID: "a", At: t0})
	b, _ := sim.Body("a")
	if !b.Pinned {
		t.Error("expected dragged body pinned")
	}
	if !sim.Active() || sim.AlphaTarget() != 0.3 {
		t.Errorf("expected reheated simulation, target %v", sim.AlphaTarget())
	}
	if c.Dragging(t0.Add(50 * time.Millisecond)) {
		t.Error("expected no drag state before the threshold")
	}
	if !c.Dragging(t0.Add(150 * time.Millisecond)) {
		t.Error("expected drag state after the threshold")
	}
	if c.DragStart(PointerEvent{NodeID: "missing", At: t0}) {
		t.Error("expected unknown node to be ignored")
	}
}

func TestDragEnd_Click(t *testing.T) {
	c, sim, ed := setup(t, true)
	out := gesture(t, c, "a", 40, 40, 50*time.Millisecond)
	if out.Kind != Click {
		t.Fatalf("expected click, got %v", out.Kind)
	}
	if c.Selected() != "a" {
		t.Errorf("expected a selected, got %q", c.Selected())
	}
	if len(ed.removed)+len(ed.reparented) != 0 {
		t.Error("expected no edit for a click")
	}
	if b, _ := sim.Body("a"); b.Pinned {
		t.Error("expected pin released")
	}
}

func TestDragEnd_Trash(t *testing.T) {
	c, _, ed := setup(t, true)
	out := gesture(t, c, "a", 40, 40, time.Second)
	if out.Kind != Deleted {
		t.Fatalf("expected deleted, got %v", out.Kind)
	}
	if len(ed.removed) != 1 || ed.removed[0] != "a" {
		t.Errorf("expected remove of a, got %v", ed.removed)
	}
}

func TestDragEnd_TrashDeclined(t *testing.T) {
	c, _, ed := setup(t, false)
	if out := gesture(t, c, "a", 40, 40, time.Second); out.Kind != Declined {
		t.Fatalf("expected declined, got %v", out.Kind)
	}
	if len(ed.removed) != 0 {
		t.Error("expected no removal after decline")
	}
}

func TestDragEnd_TrashRoot(t *testing.T) {
	c, _, ed := setup(t, true)
	if out := gesture(t, c, model.RootID, 40, 40, time.Second); out.Kind != Rejected {
		t.Fatalf("expected rejected, got %v", out.Kind)
	}
	if len(ed.removed) != 0 {
		t.Error("expected root never sent for removal")
	}
}

func TestDragEnd_Reparent(t *testing.T) {
	c, sim, ed := setup(t, true)
	sim.Pin("b", 7000, 7000)
	sim.Unpin("b")
	out := gesture(t, c, "a", 7020, 7000, time.Second)
	if out.Kind != Reparented || out.Target != "b" {
		t.Fatalf("expected reparent onto b, got %+v", out)
	}
	if len(ed.reparented) != 1 || ed.reparented[0] != [2]string{"a", "b"} {
		t.Errorf("unexpected reparent calls %v", ed.reparented)
	}

	ed.accept = false
	if out := gesture(t, c, "a", 7020, 7000, time.Second); out.Kind != Rejected {
		t.Errorf("expected rejected when the editor refuses, got %v", out.Kind)
	}
}

func TestDragEnd_Settled(t *testing.T) {
	c, _, ed := setup(t, true)
	if out := gesture(t, c, "b", 9000, 9000, time.Second); out.Kind != Settled {
		t.Fatalf("expected settled, got %v", out.Kind)
	}
	if len(ed.removed)+len(ed.reparented) != 0 {
		t.Error("expected no edit for an open drop")
	}
}

func TestDragEnd_EditorError(t *testing.T) {
	c, _, ed := setup(t, true)
	ed.err = errors.New("store down")
	c.DragStart(PointerEvent{NodeID: "a", At: t0})
	_, err := c.DragEnd(context.Background(), PointerEvent{NodeID: "a", X: 40, Y: 40, At: t0.Add(time.Second)})
	if err == nil {
		t.Fatal("expected editor error to propagate")
	}
	if _, active := c.Active(); active {
		t.Error("expected gesture cleared after error")
	}
}

func TestDragEnd_WithoutStart(t *testing.T) {
	c, _, _ := setup(t, true)
	out, err := c.DragEnd(context.Background(), PointerEvent{NodeID: "a", At: t0})
	if err != nil || out.Kind != Ignored {
		t.Errorf("expected ignored, got %v %v", out.Kind, err)
	}
}

func TestCancel(t *testing.T) {
	c, sim, _ := setup(t, true)
	c.DragStart(PointerEvent{NodeID: "a", At: t0})
	c.Cancel()
	if b, _ := sim.Body("a"); b.Pinned {
		t.Error("expected pin released")
	}
	if sim.AlphaTarget() != 0 {
		t.Errorf("expected alpha target reset, got %v", sim.AlphaTarget())
	}
}

func TestRectOverlaps(t *testing.T) {
	zone := Rect{X: 0, Y: 0, Width: 10, Height: 10}
	tests := []struct {
		r    Rect
		want bool
	}{
		{Rect{5, 5, 10, 10}, true},
		{Rect{10, 0, 5, 5}, false},
		{Rect{-5, -5, 6, 6}, true},
		{Rect{20, 20, 1, 1}, false},
	}
	for _, tt := range tests {
		if got := zone.Overlaps(tt.r); got != tt.want {
			t.Errorf("Overlaps(%+v): expected %v, got %v", tt.r, tt.want, got)
		}
	}
}
