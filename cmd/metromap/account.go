package main

import (
	"fmt"

	"github.com/Bukisoo/d3-force-tree-app/internal/storage"

	"github.com/spf13/cobra"
)

func accountCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "account",
		Short: "Manage the accounts of the account backend",
	}
	cmd.AddCommand(accountAddCmd(), accountRemoveCmd())
	return cmd
}

func accountAddCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "add <user>",
		Short:   "Create an account",
		Example: "  metromap account add ada",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			db, err := a.openDatabase(cmd.Context())
			if err != nil {
				return err
			}
			password, err := a.ui.ReadPassword("Password: ")
			if err != nil {
				return err
			}
			again, err := a.ui.ReadPassword("Repeat password: ")
			if err != nil {
				return err
			}
			if password != again {
				return fmt.Errorf("passwords do not match")
			}
			if err := storage.NewAccountStore(db, 0).Add(cmd.Context(), args[0], password); err != nil {
				return err
			}
			a.ui.Success(fmt.Sprintf("account %s created", args[0]))
			return nil
		},
	}
}

func accountRemoveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "remove <user>",
		Short: "Delete an account and its saved map",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp()
			if err != nil {
				return err
			}
			defer a.Close()

			db, err := a.openDatabase(cmd.Context())
			if err != nil {
				return err
			}
			accounts := storage.NewAccountStore(db, 0)
			password, err := a.ui.ReadPassword(fmt.Sprintf("Password for %s: ", args[0]))
			if err != nil {
				return err
			}
			if err := accounts.Authenticate(cmd.Context(), args[0], password); err != nil {
				return err
			}
			if err := accounts.Remove(cmd.Context(), args[0]); err != nil {
				return err
			}
			a.ui.Success(fmt.Sprintf("account %s removed", args[0]))
			return nil
		},
	}
}
