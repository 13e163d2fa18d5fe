package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

func layoutCmd() *cobra.Command {
	var ticks int
	cmd := &cobra.Command{
		Use:   "layout",
		Short: "Settle the saved map and print its frame as JSON",
		Long:  "Load the saved forest, run the force layout until it cools down and print\nnode positions and routed links in the node/link shape D3 consumes.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.openStore(cmd.Context(), username); err != nil {
				return err
			}
			m, err := a.newManager(cmd.Context())
			if err != nil {
				return err
			}
			m.Settle(ticks)

			out, err := json.MarshalIndent(m.Simulation().Frame(), "", "  ")
			if err != nil {
				return fmt.Errorf("failed to encode frame: %w", err)
			}
			fmt.Fprintln(cmd.OutOrStdout(), string(out))
			return nil
		},
	}
	cmd.Flags().IntVar(&ticks, "ticks", 3000, "Maximum simulation ticks")
	return cmd
}
