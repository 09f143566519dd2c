package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		store, err := openStore(cmd.Context(), cfg, logger, true)
		if err != nil {
			return err
		}
		defer store.Close()
		logger.Info("migrate up: completed")
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down [N]",
	Short: "Roll back N migrations (default 1)",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		steps := 1
		if len(args) == 1 {
			n, err := strconv.Atoi(args[0])
			if err != nil || n < 1 {
				return fmt.Errorf("down: invalid steps argument %q", args[0])
			}
			steps = n
		}

		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		store, err := openStore(cmd.Context(), cfg, logger, false)
		if err != nil {
			return err
		}
		defer store.Close()

		if err := store.MigrateDown(steps); err != nil {
			return err
		}
		logger.Info("migrate down: completed")
		return nil
	},
}

var migrateVersionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the applied schema version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		store, err := openStore(cmd.Context(), cfg, logger, false)
		if err != nil {
			return err
		}
		defer store.Close()

		version, dirty, ok, err := store.MigrationVersion()
		if err != nil {
			return err
		}
		if !ok {
			fmt.Fprintln(cmd.OutOrStdout(), "version: none")
			return nil
		}
		fmt.Fprintf(cmd.OutOrStdout(), "version: %d  dirty: %v  dialect: %s\n", version, dirty, store.Dialect())
		return nil
	},
}

func init() {
	migrateCmd.AddCommand(migrateUpCmd, migrateDownCmd, migrateVersionCmd)
}
