package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/Bukisoo/d3-force-tree-app/internal/model"
	"github.com/Bukisoo/d3-force-tree-app/internal/ui"
)

func expectArgs(cmd model.Command, min, max int) error {
	n := len(cmd.Args)
	if n < min || (max >= 0 && n > max) {
		return fmt.Errorf("invalid arguments for %s. %s", cmd.Operation, usage(cmd.Operation))
	}
	return nil
}

func (c *CLI) report(changed bool, done string) {
	if changed {
		c.ui.Success(done)
		return
	}
	c.ui.Warning("nothing changed")
}

func (c *CLI) requireNode(id string) (model.Node, error) {
	n, ok := c.manager.Node(id)
	if !ok {
		return model.Node{}, fmt.Errorf("node %s not found", id)
	}
	return n, nil
}

func (c *CLI) handleAdd(ctx context.Context, cmd model.Command) error {
	if err := expectArgs(cmd, 0, -1); err != nil {
		return err
	}
	n, err := c.manager.AddNode(ctx, strings.Join(cmd.Args, " "))
	if err != nil {
		return err
	}
	c.ui.Success(fmt.Sprintf("added %q [%s]", n.Name, n.ID))
	return nil
}

func (c *CLI) handleDelete(ctx context.Context, cmd model.Command) error {
	if err := expectArgs(cmd, 1, 1); err != nil {
		return err
	}
	n, err := c.requireNode(cmd.Args[0])
	if err != nil {
		return err
	}
	if n.ID == model.RootID {
		c.ui.Warning("the root cannot be deleted")
		return nil
	}
	if !cmd.HasFlag("force") && !c.confirm.Confirm(n.ID, n.Name) {
		c.ui.Info("deletion cancelled")
		return nil
	}
	removed, err := c.manager.RemoveNode(ctx, n.ID)
	if err != nil {
		return err
	}
	c.report(removed, fmt.Sprintf("deleted %q and %d descendants", n.Name, n.Count()-1))
	return nil
}

func (c *CLI) handleModify(ctx context.Context, cmd model.Command) error {
	if err := expectArgs(cmd, 3, -1); err != nil {
		return err
	}
	id, key := cmd.Args[0], cmd.Args[1]
	switch key {
	case model.PropName, model.PropColor, model.PropChildrenHidden, model.PropNotes:
	default:
		return fmt.Errorf("unknown property %q", key)
	}
	if _, err := c.requireNode(id); err != nil {
		return err
	}
	changed, err := c.manager.UpdateProperty(ctx, id, key, strings.Join(cmd.Args[2:], " "))
	if err != nil {
		return err
	}
	c.report(changed, fmt.Sprintf("updated %s of %s", key, id))
	return nil
}

func (c *CLI) handleNotes(ctx context.Context, cmd model.Command) error {
	if err := expectArgs(cmd, 1, -1); err != nil {
		return err
	}
	id := cmd.Args[0]
	if _, err := c.requireNode(id); err != nil {
		return err
	}
	changed, err := c.manager.UpdateProperty(ctx, id, model.PropNotes, strings.Join(cmd.Args[1:], " "))
	if err != nil {
		return err
	}
	c.report(changed, fmt.Sprintf("notes saved for %s", id))
	return nil
}

func (c *CLI) handleDetach(ctx context.Context, cmd model.Command) error {
	if err := expectArgs(cmd, 1, 1); err != nil {
		return err
	}
	if _, err := c.requireNode(cmd.Args[0]); err != nil {
		return err
	}
	changed, err := c.manager.DetachNode(ctx, cmd.Args[0])
	if err != nil {
		return err
	}
	c.report(changed, fmt.Sprintf("detached %s", cmd.Args[0]))
	return nil
}

func (c *CLI) handleMove(ctx context.Context, cmd model.Command) error {
	if err := expectArgs(cmd, 2, 2); err != nil {
		return err
	}
	src, dst := cmd.Args[0], cmd.Args[1]
	if _, err := c.requireNode(src); err != nil {
		return err
	}
	if _, err := c.requireNode(dst); err != nil {
		return err
	}
	moved, err := c.manager.ReparentNode(ctx, src, dst)
	if err != nil {
		return err
	}
	if !moved {
		c.ui.Warning(fmt.Sprintf("cannot move %s under %s", src, dst))
		return nil
	}
	c.ui.Success(fmt.Sprintf("moved %s under %s", src, dst))
	return nil
}

func (c *CLI) handleToggle(ctx context.Context, cmd model.Command) error {
	if err := expectArgs(cmd, 1, 1); err != nil {
		return err
	}
	n, err := c.requireNode(cmd.Args[0])
	if err != nil {
		return err
	}
	changed, err := c.manager.ToggleVisibility(ctx, n.ID)
	if err != nil {
		return err
	}
	state := "collapsed"
	if n.ChildrenHidden {
		state = "expanded"
	}
	c.report(changed, fmt.Sprintf("%s %s", state, n.ID))
	return nil
}

func (c *CLI) handleUndo(ctx context.Context, cmd model.Command) error {
	if err := expectArgs(cmd, 0, 0); err != nil {
		return err
	}
	undone, err := c.manager.Undo(ctx)
	if err != nil {
		return err
	}
	if !undone {
		c.ui.Warning("nothing to undo")
		return nil
	}
	c.ui.Success("undone")
	return nil
}

func (c *CLI) handleShow(cmd model.Command) error {
	if err := expectArgs(cmd, 0, 1); err != nil {
		return err
	}
	if len(cmd.Args) == 1 {
		n, err := c.requireNode(cmd.Args[0])
		if err != nil {
			return err
		}
		c.ui.NodeInfo(n)
		return nil
	}
	c.ui.Tree(c.manager.Forest(), ui.TreeOptions{
		ShowID:   cmd.HasFlag("id"),
		Selected: c.control.Selected(),
	})
	return nil
}

func (c *CLI) handleVisible(cmd model.Command) error {
	if err := expectArgs(cmd, 0, 0); err != nil {
		return err
	}
	nodes, links := c.manager.Visible()
	rows := make([][]string, 0, len(nodes))
	for _, n := range nodes {
		hidden := ""
		if n.Hidden {
			hidden = fmt.Sprintf("+%d", n.Children)
		}
		rows = append(rows, []string{n.ID, n.Name, c.ui.Swatch(n.Color), fmt.Sprint(n.Depth), hidden})
	}
	c.ui.Table([]string{"ID", "NAME", "COLOR", "DEPTH", "HIDDEN"}, rows)
	c.ui.Info(fmt.Sprintf("%d nodes, %d links", len(nodes), len(links)))
	return nil
}

func (c *CLI) handleSelect(cmd model.Command) error {
	if err := expectArgs(cmd, 0, 1); err != nil {
		return err
	}
	if len(cmd.Args) == 0 {
		if id := c.control.Selected(); id != "" {
			c.ui.Println(id)
		} else {
			c.ui.Info("nothing selected")
		}
		return nil
	}
	n, err := c.requireNode(cmd.Args[0])
	if err != nil {
		return err
	}
	c.control.Select(n.ID)
	c.manager.Select(n.ID)
	c.ui.NodeInfo(n)
	return nil
}

func (c *CLI) handleExport(cmd model.Command) error {
	if err := expectArgs(cmd, 1, 1); err != nil {
		return err
	}
	if err := c.manager.ExportFile(cmd.Args[0]); err != nil {
		return err
	}
	c.ui.Success(fmt.Sprintf("exported to %s", cmd.Args[0]))
	return nil
}

func (c *CLI) handleImport(ctx context.Context, cmd model.Command) error {
	if err := expectArgs(cmd, 1, 1); err != nil {
		return err
	}
	if err := c.manager.ImportFile(ctx, cmd.Args[0]); err != nil {
		return err
	}
	c.control.Select("")
	c.ui.Success(fmt.Sprintf("imported %d nodes from %s", c.manager.Forest().Count(), cmd.Args[0]))
	return nil
}

func (c *CLI) handleHistory(cmd model.Command) error {
	if err := expectArgs(cmd, 0, 0); err != nil {
		return err
	}
	h := c.manager.History()
	ops := h.Operations()
	rows := make([][]string, 0, len(ops))
	for i, op := range ops {
		rows = append(rows, []string{fmt.Sprint(i), string(op)})
	}
	c.ui.Table([]string{"#", "OPERATION"}, rows)
	c.ui.Info(fmt.Sprintf("%d of %d snapshots", h.Len(), h.Depth()))
	return nil
}

func (c *CLI) handleUsage(cmd model.Command) error {
	if err := expectArgs(cmd, 0, 0); err != nil {
		return err
	}
	u := c.manager.StorageUsage()
	c.ui.Println(fmt.Sprintf("%d bytes (%.3f%% of storage)", u.Bytes, u.Percent))
	return nil
}

func (c *CLI) handleRun(ctx context.Context, cmd model.Command) error {
	if err := expectArgs(cmd, 1, 1); err != nil {
		return err
	}
	return c.ExecuteScript(ctx, cmd.Args[0])
}
