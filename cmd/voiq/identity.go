package main

import (
	"errors"
	"fmt"

	"github.com/Veraticus/voiq/internal/cli"
	"github.com/Veraticus/voiq/internal/common"
	"github.com/Veraticus/voiq/internal/editor"
	"github.com/spf13/cobra"
)

func loginCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "login <email>",
		Short: "Remember the email your edits are saved under",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			c, err := initCache()
			if err != nil {
				return fmt.Errorf("failed to open cache: %w", err)
			}

			id, err := editor.NewResolver(c).Submit(args[0])
			if err != nil {
				if errors.Is(err, editor.ErrEmptyIdentity) || errors.Is(err, editor.ErrInvalidIdentity) {
					return common.NewUserError("Please enter a valid email address", err)
				}
				return fmt.Errorf("failed to remember email: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Signed in as "+id.String()))
			return err
		},
	}
}

func whoamiCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the remembered email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := initCache()
			if err != nil {
				return fmt.Errorf("failed to open cache: %w", err)
			}

			id, ok, err := editor.NewResolver(c).Resolve()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !ok {
				_, err = fmt.Fprintln(out, cli.FormatInfo("Not signed in. Run 'voiq login <email>' to save edits."))
				return err
			}
			_, err = fmt.Fprintln(out, id.String())
			return err
		},
	}
}

func logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the remembered email",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			c, err := initCache()
			if err != nil {
				return fmt.Errorf("failed to open cache: %w", err)
			}

			if err := editor.NewResolver(c).Forget(); err != nil {
				return fmt.Errorf("failed to forget email: %w", err)
			}

			_, err = fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess("Signed out"))
			return err
		},
	}
}
