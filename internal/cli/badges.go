package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmalhotra/rekindle/internal/badge"
	"github.com/jmalhotra/rekindle/internal/config"
	"github.com/jmalhotra/rekindle/internal/database"
	"github.com/jmalhotra/rekindle/internal/output"
)

var badgesCmd = &cobra.Command{
	Use:   "badges",
	Short: "Show reactivation badge progress",
	Long: `Badges track how many cold contacts you have warmed back up since
you started using rekindle. A contact counts once, the first time it climbs
out of the cold band after an interaction.`,
	RunE: runBadges,
}

func init() {
	rootCmd.AddCommand(badgesCmd)
}

func runBadges(cmd *cobra.Command, args []string) error {
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

	count, err := db.CountReactivated(ctx, state.BadgeEpochAt)
	if err != nil {
		return fmt.Errorf("failed to count reactivations: %w", err)
	}

	return output.Output(outputFmt, badge.Summarize(count))
}
