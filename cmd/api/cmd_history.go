package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"MentalHealthSentiment_WebProject/internal/analysis"
	"MentalHealthSentiment_WebProject/internal/config"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Maintain stored analysis history",
}

var pruneDays int

var historyPruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Delete analyses older than the retention window",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := bootstrap()
		if err != nil {
			return err
		}
		defer logger.Sync()

		retention := cfg.Retention()
		if cmd.Flags().Changed("days") {
			if pruneDays < 1 || pruneDays > config.MaxRetentionDays {
				return fmt.Errorf("--days must be between 1 and %d", config.MaxRetentionDays)
			}
			retention = time.Duration(pruneDays) * 24 * time.Hour
		}
		if retention <= 0 {
			fmt.Fprintln(cmd.OutOrStdout(), "retention disabled (HISTORY_RETENTION_DAYS=0), nothing to prune")
			return nil
		}

		store, err := openStore(cmd.Context(), cfg, logger, true)
		if err != nil {
			return err
		}
		defer store.Close()

		svc := analysis.New(nil, store, logger, retention)
		n, err := svc.Prune(cmd.Context())
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "removed %d analyses\n", n)
		return nil
	},
}

func init() {
	historyPruneCmd.Flags().IntVar(&pruneDays, "days", 0, "override HISTORY_RETENTION_DAYS")
	historyCmd.AddCommand(historyPruneCmd)
}
