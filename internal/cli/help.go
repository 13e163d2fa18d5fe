package cli

import (
	"fmt"
	"strings"

	"github.com/Bukisoo/d3-force-tree-app/internal/model"
)

// CommandHelp describes one REPL command.
type CommandHelp struct {
	Scope     string
	Operation string
	ShortDesc string
	Syntax    string
	Options   []string
	Examples  []string
}

var commandHelps = []CommandHelp{
	{Scope: "node", Operation: "add", ShortDesc: "Add a top-level node, named after a nearby station when no name is given",
		Syntax: "add [name]", Examples: []string{"add", `add "Gare du Nord"`}},
	{Scope: "node", Operation: "del", ShortDesc: "Delete a node and its subtree after confirmation",
		Syntax: "del <id> [--force]", Options: []string{"--force  skip the confirmation prompt"}, Examples: []string{"del node-1700000000000"}},
	{Scope: "node", Operation: "mod", ShortDesc: "Set name, color, notes or childrenHidden",
		Syntax: "mod <id> <key> <value>", Examples: []string{"mod main name Hub", "mod main color #2BB3A3"}},
	{Scope: "node", Operation: "notes", ShortDesc: "Replace the notes of a node",
		Syntax: "notes <id> <text>", Examples: []string{`notes main "line 4 closes at night"`}},
	{Scope: "node", Operation: "detach", ShortDesc: "Cut a node loose as a new top-level tree",
		Syntax: "detach <id>"},
	{Scope: "node", Operation: "move", ShortDesc: "Move a node under another node",
		Syntax: "move <id> <new-parent-id>"},
	{Scope: "node", Operation: "toggle", ShortDesc: "Collapse or expand the children of a node",
		Syntax: "toggle <id>"},
	{Scope: "node", Operation: "undo", ShortDesc: "Revert the last structural change",
		Syntax: "undo"},

	{Scope: "view", Operation: "show", ShortDesc: "Print the forest, or one node",
		Syntax: "show [id] [--id]", Options: []string{"--id  print node ids"}},
	{Scope: "view", Operation: "visible", ShortDesc: "List the nodes currently on the canvas",
		Syntax: "visible"},
	{Scope: "view", Operation: "select", ShortDesc: "Select a node for editing, or print the selection",
		Syntax: "select [id]"},
	{Scope: "view", Operation: "history", ShortDesc: "List the undo snapshots",
		Syntax: "history"},
	{Scope: "view", Operation: "usage", ShortDesc: "Show how much storage the forest takes",
		Syntax: "usage"},

	{Scope: "layout", Operation: "layout", ShortDesc: "Print node positions and link routes",
		Syntax: "layout [--links] [--json]", Options: []string{"--links  include routed links", "--json   print the full frame as JSON"}},
	{Scope: "layout", Operation: "tick", ShortDesc: "Advance the simulation",
		Syntax: "tick [n]"},
	{Scope: "layout", Operation: "settle", ShortDesc: "Run the simulation until it cools down",
		Syntax: "settle [max-ticks]"},
	{Scope: "layout", Operation: "drag", ShortDesc: "Drag a node to a point and drop it",
		Syntax: "drag <id> <x> <y> [hold-ms]", Examples: []string{"drag node-1 50 50", "drag node-1 5000 5000 40"}},

	{Scope: "system", Operation: "export", ShortDesc: "Write the forest to a .json or .xml file",
		Syntax: "export <file>"},
	{Scope: "system", Operation: "import", ShortDesc: "Replace the forest with a .json or .xml file",
		Syntax: "import <file>"},
	{Scope: "system", Operation: "run", ShortDesc: "Execute commands from a script file",
		Syntax: "run <file>"},
	{Scope: "system", Operation: "help", ShortDesc: "Show help",
		Syntax: "help [command]"},
	{Scope: "system", Operation: "exit", ShortDesc: "Leave the program",
		Syntax: "exit | quit"},
}

func findHelp(op string) (CommandHelp, bool) {
	for _, h := range commandHelps {
		if h.Operation == op {
			return h, true
		}
	}
	return CommandHelp{}, false
}

func usage(op string) string {
	if h, ok := findHelp(op); ok {
		return "Syntax: " + h.Syntax
	}
	return ""
}

func (c *CLI) handleHelp(cmd model.Command) error {
	switch len(cmd.Args) {
	case 0:
		c.showGeneralHelp()
		return nil
	case 1:
		return c.showOperationHelp(cmd.Args[0])
	default:
		return fmt.Errorf("invalid help command. Use 'help [command]'")
	}
}

func (c *CLI) showGeneralHelp() {
	c.ui.Println("Available commands:")
	scope := ""
	for _, h := range commandHelps {
		if h.Scope != scope {
			c.ui.Printf("\n%s:\n", h.Scope)
			scope = h.Scope
		}
		c.ui.Printf("  %-10s %s\n", h.Operation, h.ShortDesc)
	}
}

func (c *CLI) showOperationHelp(op string) error {
	if op == "quit" {
		op = "exit"
	}
	h, ok := findHelp(op)
	if !ok {
		return fmt.Errorf("no help found for %s", op)
	}
	c.ui.Printf("Command: %s\n", h.Operation)
	c.ui.Printf("Description: %s\n", h.ShortDesc)
	c.ui.Printf("Syntax: %s\n", h.Syntax)
	if len(h.Options) > 0 {
		c.ui.Println("Options:")
		for _, o := range h.Options {
			c.ui.Printf("  %s\n", o)
		}
	}
	if len(h.Examples) > 0 {
		c.ui.Println("Examples:")
		c.ui.Println("  " + strings.Join(h.Examples, "\n  "))
	}
	return nil
}
