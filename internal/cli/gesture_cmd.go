package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/Bukisoo/d3-force-tree-app/internal/interaction"
	"github.com/Bukisoo/d3-force-tree-app/internal/model"
)

const (
	defaultHold     = 500 * time.Millisecond
	frameInterval   = 16 * time.Millisecond
	defaultSettle   = 3000
	maxTicksPerDrag = 300
)

func parseFloat(s, what string) (float64, error) {
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q", what, s)
	}
	return v, nil
}

func parseCount(s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil || n < 1 {
		return 0, fmt.Errorf("invalid count %q", s)
	}
	return n, nil
}

func (c *CLI) handleLayout(cmd model.Command) error {
	if err := expectArgs(cmd, 0, 0); err != nil {
		return err
	}
	frame := c.manager.Simulation().Frame()
	if cmd.HasFlag("json") {
		out, err := json.MarshalIndent(frame, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to encode frame: %w", err)
		}
		c.ui.Println(string(out))
		return nil
	}

	rows := make([][]string, 0, len(frame.Nodes))
	for _, n := range frame.Nodes {
		pin := ""
		if n.Pinned {
			pin = "pinned"
		}
		rows = append(rows, []string{n.ID, n.Label, fmt.Sprintf("%.1f", n.X), fmt.Sprintf("%.1f", n.Y), pin})
	}
	c.ui.Table([]string{"ID", "NAME", "X", "Y", ""}, rows)

	if cmd.HasFlag("links") {
		rows = rows[:0]
		for _, l := range frame.Links {
			rows = append(rows, []string{l.Source, l.Target, l.Kind, l.Path})
		}
		c.ui.Table([]string{"SOURCE", "TARGET", "ROUTE", "PATH"}, rows)
	}
	c.ui.Info(fmt.Sprintf("alpha %.4f", frame.Alpha))
	return nil
}

func (c *CLI) handleTick(cmd model.Command) error {
	if err := expectArgs(cmd, 0, 1); err != nil {
		return err
	}
	n := 1
	if len(cmd.Args) == 1 {
		var err error
		if n, err = parseCount(cmd.Args[0]); err != nil {
			return err
		}
	}
	sim := c.manager.Simulation()
	ran := 0
	for ran < n && sim.Tick() {
		ran++
	}
	c.ui.Info(fmt.Sprintf("%d ticks, alpha %.4f", ran, sim.Alpha()))
	return nil
}

func (c *CLI) handleSettle(cmd model.Command) error {
	if err := expectArgs(cmd, 0, 1); err != nil {
		return err
	}
	max := defaultSettle
	if len(cmd.Args) == 1 {
		var err error
		if max, err = parseCount(cmd.Args[0]); err != nil {
			return err
		}
	}
	ran := c.manager.Settle(max)
	state := "settled"
	if c.manager.Simulation().Active() {
		state = "still moving"
	}
	c.ui.Info(fmt.Sprintf("%s after %d ticks", state, ran))
	return nil
}

// handleDrag replays a pointer gesture: press on the node, move to (x, y)
// while the layout runs for the hold time, release.
func (c *CLI) handleDrag(ctx context.Context, cmd model.Command) error {
	if err := expectArgs(cmd, 3, 4); err != nil {
		return err
	}
	id := cmd.Args[0]
	x, err := parseFloat(cmd.Args[1], "x")
	if err != nil {
		return err
	}
	y, err := parseFloat(cmd.Args[2], "y")
	if err != nil {
		return err
	}
	hold := defaultHold
	if len(cmd.Args) == 4 {
		ms, err := strconv.Atoi(cmd.Args[3])
		if err != nil || ms < 0 {
			return fmt.Errorf("invalid hold %q", cmd.Args[3])
		}
		hold = time.Duration(ms) * time.Millisecond
	}

	start := c.clock()
	if !c.control.DragStart(interaction.PointerEvent{NodeID: id, At: start}) {
		return fmt.Errorf("node %s is not on the canvas", id)
	}
	sim := c.manager.Simulation()
	ticks := int(hold / frameInterval)
	if ticks > maxTicksPerDrag {
		ticks = maxTicksPerDrag
	}
	c.control.DragMove(interaction.PointerEvent{NodeID: id, X: x, Y: y, At: start.Add(hold / 2)})
	for i := 0; i < ticks; i++ {
		sim.Tick()
	}
	end := start.Add(hold)
	if c.control.Dragging(end) && c.control.OverTrash(x, y) {
		c.ui.Warning("over the trash")
	}

	out, err := c.control.DragEnd(ctx, interaction.PointerEvent{NodeID: id, X: x, Y: y, At: end})
	if err != nil {
		return err
	}
	c.printOutcome(out)
	return nil
}

func (c *CLI) printOutcome(out interaction.Outcome) {
	switch out.Kind {
	case interaction.Click:
		c.manager.Select(out.NodeID)
		if n, ok := c.manager.Node(out.NodeID); ok {
			c.ui.NodeInfo(n)
		}
	case interaction.Deleted:
		c.ui.Success(fmt.Sprintf("deleted %s", out.NodeID))
	case interaction.Declined:
		c.ui.Info("deletion cancelled")
	case interaction.Reparented:
		c.ui.Success(fmt.Sprintf("moved %s under %s", out.NodeID, out.Target))
	case interaction.Rejected:
		c.ui.Warning(fmt.Sprintf("drop of %s rejected", out.NodeID))
	case interaction.Settled:
		c.ui.Info(fmt.Sprintf("released %s", out.NodeID))
	default:
		c.ui.Info(fmt.Sprintf("%s %s", out.Kind, out.NodeID))
	}
}
