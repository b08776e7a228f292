package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmalhotra/rekindle/internal/config"
	"github.com/jmalhotra/rekindle/internal/database"
	"github.com/jmalhotra/rekindle/internal/output"
)

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show network statistics",
	Long: `Stats summarizes your network: warmth and priority distribution,
reactivation count, and plan completion.

Examples:
  rekindle stats
  rekindle stats -o json`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)
}

func runStats(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	state, err := db.GetAppState(ctx)
	if err != nil {
		return fmt.Errorf("failed to read app state: %w", err)
	}

	stats, err := db.GetStats(ctx, state.BadgeEpochAt)
	if err != nil {
		return fmt.Errorf("failed to get stats: %w", err)
	}

	return output.Output(outputFmt, stats)
}
