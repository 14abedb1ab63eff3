package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"tutorflow/backend/internal/app"
)

func newRootCommand() *cobra.Command {
	serve := newServeCommand()

	rootCmd := &cobra.Command{
		Use:           "tutorflow",
		Short:         "TutorFlow tutoring backend",
		SilenceUsage:  true,
		SilenceErrors: true,
		// Running the binary without a subcommand starts the server.
		RunE: serve.RunE,
	}

	rootCmd.AddCommand(serve)
	rootCmd.AddCommand(newMigrateCommand())
	return rootCmd
}

func newServeCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return exitError(app.Run())
		},
	}
}

func newMigrateCommand() *cobra.Command {
	var rollback int

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply database migrations",
		Long:  "Applies every pending schema migration. With --rollback N, reverts the last N instead.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if rollback < 0 {
				return fmt.Errorf("--rollback must not be negative")
			}
			return exitError(app.RunMigrations(rollback))
		},
	}
	cmd.Flags().IntVar(&rollback, "rollback", 0, "Number of migration steps to revert")
	return cmd
}

func exitError(code int) error {
	if code != 0 {
		return fmt.Errorf("exited with status %d", code)
	}
	return nil
}
