// Package cli is the interactive front end: a readline REPL whose commands
// drive the data Manager and the drag controller.
package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/Bukisoo/d3-force-tree-app/internal/config"
	"github.com/Bukisoo/d3-force-tree-app/internal/data"
	"github.com/Bukisoo/d3-force-tree-app/internal/event"
	"github.com/Bukisoo/d3-force-tree-app/internal/interaction"
	"github.com/Bukisoo/d3-force-tree-app/internal/log"
	"github.com/Bukisoo/d3-force-tree-app/internal/model"
	"github.com/Bukisoo/d3-force-tree-app/internal/ui"

	"github.com/chzyer/readline"
)

// ErrExit is returned by Execute when the user asks to leave.
var ErrExit = errors.New("exit requested")

// Options configures a CLI. Manager and UI are required; RL may be nil when
// commands are only fed through Execute.
type Options struct {
	Manager *data.Manager
	Config  *config.Config
	UI      *ui.UI
	RL      *readline.Instance
	Logger  *log.Logger
	Confirm interaction.Confirmer
	Clock   func() time.Time
	User    string
}

// CLI holds the REPL state.
type CLI struct {
	manager *data.Manager
	control *interaction.Controller
	confirm interaction.Confirmer
	ui      *ui.UI
	rl      *readline.Instance
	logger  *log.Logger
	clock   func() time.Time
	Prompt  string
}

// NewCLI wires the REPL to the manager.
func NewCLI(opts Options) *CLI {
	if opts.Logger == nil {
		opts.Logger = log.Discard()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Config == nil {
		opts.Config = config.Default()
	}
	c := &CLI{
		manager: opts.Manager,
		ui:      opts.UI,
		rl:      opts.RL,
		logger:  opts.Logger,
		clock:   opts.Clock,
		Prompt:  opts.UI.Prompt(opts.User),
	}
	if opts.Confirm == nil {
		opts.Confirm = interaction.ConfirmFunc(c.confirmOnTerminal)
	}
	c.confirm = opts.Confirm
	c.control = interaction.NewController(controllerConfig(opts.Config), opts.Manager.Simulation(), opts.Manager, opts.Confirm)

	opts.Manager.Events().Subscribe(event.StoreFailed, func(e event.Event) {
		c.ui.Warning(fmt.Sprintf("changes were not saved: %v", e.Data))
	})
	return c
}

func controllerConfig(cfg *config.Config) interaction.Config {
	ic := cfg.Interaction
	return interaction.Config{
		Trash: interaction.Rect{
			X:      ic.Trash.X,
			Y:      ic.Trash.Y,
			Width:  ic.Trash.Width,
			Height: ic.Trash.Height,
		},
		NodeRadius:      ic.NodeRadius,
		ReparentRadius:  ic.ReparentRadius,
		ClickThreshold:  ic.ClickThreshold(),
		DragAlphaTarget: cfg.Layout.DragAlphaTarget,
	}
}

// Controller returns the drag controller.
func (c *CLI) Controller() *interaction.Controller {
	return c.control
}

// Run reads and executes one line.
func (c *CLI) Run(ctx context.Context) error {
	line, err := c.rl.Readline()
	if err != nil {
		return err
	}
	return c.Execute(ctx, line)
}

// Loop runs the REPL until exit, EOF or a fatal error.
func (c *CLI) Loop(ctx context.Context) error {
	c.rl.SetPrompt(c.Prompt)
	for {
		err := c.Run(ctx)
		switch {
		case err == nil:
		case errors.Is(err, readline.ErrInterrupt):
			c.ui.Info("Use 'exit' or 'quit' to exit the program.")
		case errors.Is(err, io.EOF), errors.Is(err, ErrExit):
			return nil
		default:
			c.ui.Error(err.Error())
		}
	}
}

// Execute parses and runs one command line.
func (c *CLI) Execute(ctx context.Context, line string) error {
	line = strings.TrimSpace(line)
	if line == "" || strings.HasPrefix(line, "#") {
		return nil
	}
	c.logger.Command(ctx, line)
	return c.ExecuteCommand(ctx, parseCommand(ParseArgs(line)))
}

// ExecuteScript runs every line of a script file, stopping at the first
// failing command.
func (c *CLI) ExecuteScript(ctx context.Context, path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("failed to open script: %w", err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	n := 0
	for scanner.Scan() {
		n++
		if err := c.Execute(ctx, scanner.Text()); err != nil {
			if errors.Is(err, ErrExit) {
				return err
			}
			return fmt.Errorf("%s:%d: %w", path, n, err)
		}
	}
	return scanner.Err()
}

// ParseArgs splits a line on spaces, keeping double-quoted runs together.
func ParseArgs(input string) []string {
	var args []string
	var currentArg strings.Builder
	inQuotes := false
	quoted := false

	for _, char := range input {
		switch char {
		case '"':
			inQuotes = !inQuotes
			quoted = true
		case ' ', '\t':
			if !inQuotes {
				if currentArg.Len() > 0 || quoted {
					args = append(args, currentArg.String())
					currentArg.Reset()
					quoted = false
				}
			} else {
				currentArg.WriteRune(char)
			}
		default:
			currentArg.WriteRune(char)
		}
	}

	if currentArg.Len() > 0 || quoted {
		args = append(args, currentArg.String())
	}

	return args
}

func parseCommand(args []string) model.Command {
	cmd := model.Command{Flags: map[string]bool{}}
	for _, a := range args {
		if strings.HasPrefix(a, "--") && len(a) > 2 {
			cmd.Flags[strings.TrimPrefix(a, "--")] = true
			continue
		}
		if cmd.Operation == "" {
			cmd.Operation = a
			continue
		}
		cmd.Args = append(cmd.Args, a)
	}
	return cmd
}

// ExecuteCommand dispatches a parsed command.
func (c *CLI) ExecuteCommand(ctx context.Context, cmd model.Command) error {
	switch cmd.Operation {
	case "add":
		return c.handleAdd(ctx, cmd)
	case "del":
		return c.handleDelete(ctx, cmd)
	case "mod":
		return c.handleModify(ctx, cmd)
	case "notes":
		return c.handleNotes(ctx, cmd)
	case "detach":
		return c.handleDetach(ctx, cmd)
	case "move":
		return c.handleMove(ctx, cmd)
	case "toggle":
		return c.handleToggle(ctx, cmd)
	case "undo":
		return c.handleUndo(ctx, cmd)
	case "show":
		return c.handleShow(cmd)
	case "visible":
		return c.handleVisible(cmd)
	case "select":
		return c.handleSelect(cmd)
	case "layout":
		return c.handleLayout(cmd)
	case "tick":
		return c.handleTick(cmd)
	case "settle":
		return c.handleSettle(cmd)
	case "drag":
		return c.handleDrag(ctx, cmd)
	case "export":
		return c.handleExport(cmd)
	case "import":
		return c.handleImport(ctx, cmd)
	case "history":
		return c.handleHistory(cmd)
	case "usage":
		return c.handleUsage(cmd)
	case "run":
		return c.handleRun(ctx, cmd)
	case "help":
		return c.handleHelp(cmd)
	case "exit", "quit":
		c.ui.Println("Exiting...")
		return ErrExit
	case "":
		return nil
	default:
		return fmt.Errorf("unknown command: %s", cmd.Operation)
	}
}

// confirmOnTerminal asks on the terminal before a deletion.
func (c *CLI) confirmOnTerminal(id, label string) bool {
	if c.rl == nil {
		return false
	}
	prompt := fmt.Sprintf("Delete %q [%s] and everything under it? [y/N] ", label, id)
	c.rl.SetPrompt(prompt)
	defer c.rl.SetPrompt(c.Prompt)
	answer, err := c.rl.Readline()
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
