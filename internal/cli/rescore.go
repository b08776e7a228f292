package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmalhotra/rekindle/internal/badge"
	"github.com/jmalhotra/rekindle/internal/config"
	"github.com/jmalhotra/rekindle/internal/database"
	"github.com/jmalhotra/rekindle/internal/tracker"
)

var rescoreCmd = &cobra.Command{
	Use:   "rescore",
	Short: "Recompute warmth, relevance, and priority for every contact",
	Long: `Rescore re-evaluates every stored contact: warmth decays with time
since the last interaction, relevance follows your configured goals, and
priority blends the two.

Contacts that climb out of the cold band earn reactivation credit toward
your badges.

Run this after changing goals in the config, or periodically to let
warmth decay take effect.`,
	RunE: runRescore,
}

func init() {
	rootCmd.AddCommand(rescoreCmd)
}

func runRescore(cmd *cobra.Command, args []string) error {
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

	t := tracker.New(db, cfg, newLogger(cfg))

	terminal := NewTerminal()
	progress := func(p tracker.Progress) {
		terminal.ClearLine()
		msg := fmt.Sprintf("%s: %d/%d (%d%%)", p.Description, p.Current, p.Total, p.Percentage())
		if terminal.UseColor {
			msg = terminal.Color(PhaseColor(string(p.Phase)), msg)
		}
		if terminal.IsTerminal {
			fmt.Print(msg)
			terminal.Flush()
		}
	}

	result, err := t.Rescore(ctx, progress)
	terminal.ClearLine()
	if err != nil {
		return fmt.Errorf("rescore failed: %w", err)
	}

	fmt.Println("Rescore complete:")
	fmt.Printf("  Contacts:      %d\n", result.Total)
	fmt.Printf("  Updated:       %d\n", result.Updated)
	fmt.Printf("  Reactivated:   %d\n", result.Reactivated)

	if len(result.Errors) > 0 {
		fmt.Println()
		fmt.Printf("Warnings: %d\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Printf("  - %v\n", e)
		}
	}

	if result.Reactivated > 0 {
		count, err := t.Reactivations(ctx)
		if err == nil {
			s := badge.Summarize(count)
			fmt.Println()
			fmt.Printf("You have rekindled %d contact(s).", s.Reactivations)
			if s.NextMilestone > 0 {
				fmt.Printf(" %d more to reach the %d badge.", s.NextMilestone-s.Reactivations, s.NextMilestone)
			}
			fmt.Println()
		}
	}

	return nil
}
