// Package interaction turns pointer gestures on the simulated canvas into
// structural edits.
package interaction

import (
	"context"
	"time"

	"github.com/Bukisoo/d3-force-tree-app/internal/layout"
	"github.com/Bukisoo/d3-force-tree-app/internal/model"
)

// Simulator is the live geometry a drag works against.
type Simulator interface {
	Body(id string) (layout.Body, bool)
	Pin(id string, x, y float64) bool
	Unpin(id string) bool
	Nearest(id string, radius float64) (string, bool)
	SetAlphaTarget(t float64)
	Restart()
}

// Editor applies the structural edits a drop can trigger.
type Editor interface {
	RemoveNode(ctx context.Context, id string) (bool, error)
	ReparentNode(ctx context.Context, source, target string) (bool, error)
}

// Confirmer asks the user before a destructive edit.
type Confirmer interface {
	Confirm(id, label string) bool
}

// ConfirmFunc adapts a function to Confirmer.
type ConfirmFunc func(id, label string) bool

// Confirm calls f(id, label).
func (f ConfirmFunc) Confirm(id, label string) bool {
	return f(id, label)
}

// Rect is an axis-aligned canvas rectangle.
type Rect struct {
	X, Y, Width, Height float64
}

// Overlaps reports whether r and o share any interior area.
func (r Rect) Overlaps(o Rect) bool {
	return o.X < r.X+r.Width && o.X+o.Width > r.X &&
		o.Y < r.Y+r.Height && o.Y+o.Height > r.Y
}

// Config holds the hit-test geometry and timing.
type Config struct {
	Trash           Rect
	NodeRadius      float64
	ReparentRadius  float64
	ClickThreshold  time.Duration
	DragAlphaTarget float64
}

// DefaultConfig returns the controller defaults for a 10000 unit canvas.
func DefaultConfig() Config {
	return Config{
		Trash:           Rect{X: 20, Y: 20, Width: 60, Height: 60},
		NodeRadius:      10,
		ReparentRadius:  60,
		ClickThreshold:  100 * time.Millisecond,
		DragAlphaTarget: 0.3,
	}
}

// PointerEvent is one pointer sample in canvas coordinates.
type PointerEvent struct {
	NodeID string
	X, Y   float64
	At     time.Time
}

// OutcomeKind names what a finished gesture did.
type OutcomeKind int

const (
	// Ignored means no drag was in progress for the node.
	Ignored OutcomeKind = iota
	// Click means the gesture was too short to count as a drag.
	Click
	// Deleted means the node was dropped on the trash and removed.
	Deleted
	// Declined means the user refused the deletion.
	Declined
	// Reparented means the node was dropped onto another node.
	Reparented
	// Rejected means the drop asked for an edit the forest refuses.
	Rejected
	// Settled means the node was released in open space.
	Settled
)

var outcomeNames = map[OutcomeKind]string{
	Ignored:    "ignored",
	Click:      "click",
	Deleted:    "deleted",
	Declined:   "declined",
	Reparented: "reparented",
	Rejected:   "rejected",
	Settled:    "settled",
}

func (k OutcomeKind) String() string {
	if s, ok := outcomeNames[k]; ok {
		return s
	}
	return "unknown"
}

// Outcome reports the result of DragEnd.
type Outcome struct {
	Kind   OutcomeKind
	NodeID string
	Target string
}

type drag struct {
	id      string
	started time.Time
	moved   bool
}

// Controller owns the transient state of one gesture at a time.
type Controller struct {
	cfg      Config
	sim      Simulator
	edit     Editor
	confirm  Confirmer
	current  *drag
	selected string
}

// NewController wires a controller to the simulation and editor. A nil
// confirmer declines every deletion.
func NewController(cfg Config, sim Simulator, edit Editor, confirm Confirmer) *Controller {
	if confirm == nil {
		confirm = ConfirmFunc(func(string, string) bool { return false })
	}
	return &Controller{cfg: cfg, sim: sim, edit: edit, confirm: confirm}
}

// SetSimulator points the controller at a new simulation. Any gesture in
// progress is dropped.
func (c *Controller) SetSimulator(sim Simulator) {
	c.current = nil
	c.sim = sim
}

// DragStart pins the node where it currently is and reheats the layout so
// its neighbors follow it.
func (c *Controller) DragStart(ev PointerEvent) bool {
	b, ok := c.sim.Body(ev.NodeID)
	if !ok {
		return false
	}
	if c.current == nil {
		c.sim.SetAlphaTarget(c.cfg.DragAlphaTarget)
		c.sim.Restart()
	}
	c.sim.Pin(b.ID, b.X, b.Y)
	c.current = &drag{id: b.ID, started: ev.At}
	return true
}

// DragMove moves the pinned node to the pointer.
func (c *Controller) DragMove(ev PointerEvent) bool {
	if c.current == nil || c.current.id != ev.NodeID {
		return false
	}
	c.current.moved = true
	return c.sim.Pin(ev.NodeID, ev.X, ev.Y)
}

// Dragging reports whether the gesture in progress has lasted long enough
// to count as a drag at time now. Trash feedback is shown only then.
func (c *Controller) Dragging(now time.Time) bool {
	return c.current != nil && now.Sub(c.current.started) >= c.cfg.ClickThreshold
}

// OverTrash reports whether the node's box at (x, y) touches the trash zone.
func (c *Controller) OverTrash(x, y float64) bool {
	r := c.cfg.NodeRadius
	return c.cfg.Trash.Overlaps(Rect{X: x - r, Y: y - r, Width: 2 * r, Height: 2 * r})
}

// DragEnd releases the pin and applies the drop: deletion when the node
// lands on the trash and the user confirms, otherwise a reparent onto the
// first node within ReparentRadius. Short gestures only select the node.
func (c *Controller) DragEnd(ctx context.Context, ev PointerEvent) (Outcome, error) {
	d := c.current
	if d == nil || d.id != ev.NodeID {
		return Outcome{Kind: Ignored, NodeID: ev.NodeID}, nil
	}
	c.current = nil

	if d.moved {
		c.sim.Pin(d.id, ev.X, ev.Y)
	}
	c.sim.SetAlphaTarget(0)
	c.sim.Unpin(d.id)

	out := Outcome{NodeID: d.id}
	if ev.At.Sub(d.started) < c.cfg.ClickThreshold {
		c.selected = d.id
		out.Kind = Click
		return out, nil
	}

	b, ok := c.sim.Body(d.id)
	if !ok {
		out.Kind = Ignored
		return out, nil
	}

	if c.OverTrash(b.X, b.Y) {
		if d.id == model.RootID {
			out.Kind = Rejected
			return out, nil
		}
		if !c.confirm.Confirm(b.ID, b.Name) {
			out.Kind = Declined
			return out, nil
		}
		removed, err := c.edit.RemoveNode(ctx, d.id)
		if err != nil {
			return out, err
		}
		out.Kind = Rejected
		if removed {
			out.Kind = Deleted
			if c.selected == d.id {
				c.selected = ""
			}
		}
		return out, nil
	}

	target, ok := c.sim.Nearest(d.id, c.cfg.ReparentRadius)
	if !ok {
		out.Kind = Settled
		return out, nil
	}
	out.Target = target
	moved, err := c.edit.ReparentNode(ctx, d.id, target)
	if err != nil {
		return out, err
	}
	out.Kind = Rejected
	if moved {
		out.Kind = Reparented
	}
	return out, nil
}

// Cancel releases any pin without applying an edit.
func (c *Controller) Cancel() {
	if c.current == nil {
		return
	}
	c.sim.SetAlphaTarget(0)
	c.sim.Unpin(c.current.id)
	c.current = nil
}

// Select marks a node as selected without a gesture.
func (c *Controller) Select(id string) {
	c.selected = id
}

// Selected returns the id of the last clicked node.
func (c *Controller) Selected() string {
	return c.selected
}

// Active returns the id of the node being dragged.
func (c *Controller) Active() (string, bool) {
	if c.current == nil {
		return "", false
	}
	return c.current.id, true
}
