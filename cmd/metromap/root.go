package main

import (
	"context"
	"errors"
	"fmt"

	"github.com/Bukisoo/d3-force-tree-app/internal/cli"
	"github.com/Bukisoo/d3-force-tree-app/internal/config"

	"github.com/chzyer/readline"
	"github.com/spf13/cobra"
)

var version = "0.1.0"

var (
	configPath string
	backend    string
	username   string
	scriptPath string
)

var rootCmd = &cobra.Command{
	Use:           "metromap",
	Short:         "metromap, a transit-style mind map editor",
	Long:          "Edit a forest of ideas laid out like a metro map.\nType 'help' at the prompt for the list of commands.",
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runEditor(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", config.DefaultPath, "Path to the configuration file")
	rootCmd.PersistentFlags().StringVar(&backend, "backend", "", "Storage backend: memory, sqlite or account")
	rootCmd.PersistentFlags().StringVar(&username, "user", "", "Account to log in as with the account backend")
	rootCmd.Flags().StringVar(&scriptPath, "script", "", "Run the commands in a file and exit")

	rootCmd.AddCommand(
		accountCmd(),
		layoutCmd(),
	)
}

// Execute runs the root command.
func Execute() error {
	if err := rootCmd.ExecuteContext(context.Background()); err != nil {
		fmt.Fprintf(rootCmd.ErrOrStderr(), "metromap: %v\n", err)
		return err
	}
	return nil
}

func runEditor(ctx context.Context) error {
	a, err := newApp()
	if err != nil {
		return err
	}
	defer a.Close()

	if err := a.openStore(ctx, username); err != nil {
		return err
	}
	m, err := a.newManager(ctx)
	if err != nil {
		return err
	}

	if scriptPath != "" {
		c := cli.NewCLI(cli.Options{Manager: m, Config: a.cfg, UI: a.ui, Logger: a.logger, User: a.user})
		if err := c.ExecuteScript(ctx, scriptPath); err != nil && !errors.Is(err, cli.ErrExit) {
			return err
		}
		return nil
	}

	rl, err := readline.NewEx(&readline.Config{
		HistoryFile:     a.historyFile(),
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return fmt.Errorf("failed to initialize readline: %w", err)
	}
	defer rl.Close()

	c := cli.NewCLI(cli.Options{
		Manager: m,
		Config:  a.cfg,
		UI:      a.ui,
		RL:      rl,
		Logger:  a.logger,
		User:    a.user,
	})
	a.ui.Info("Welcome to metromap! Use 'help' for the list of commands.")
	if err := c.Loop(ctx); err != nil {
		return err
	}
	a.ui.Println("Goodbye!")
	return nil
}
