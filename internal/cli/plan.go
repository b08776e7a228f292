package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/jmalhotra/rekindle/internal/config"
	"github.com/jmalhotra/rekindle/internal/database"
	"github.com/jmalhotra/rekindle/internal/output"
	"github.com/jmalhotra/rekindle/internal/planner"
	"github.com/jmalhotra/rekindle/internal/tracker"
)

var planCmd = &cobra.Command{
	Use:   "plan",
	Short: "Manage the weekly outreach plan",
	Long: `Plan selects who to reach out to this week, sized to the weekly
capacity in your config. Incomplete contacts from a missed week roll into
the next plan at top priority.

Examples:
  rekindle plan                # Show this week's plan
  rekindle plan generate       # Build (or rebuild) this week's plan
  rekindle plan done 2         # Mark the second entry complete
  rekindle plan list           # Show plan history`,
	RunE: runPlanShow,
}

var planWeek string

var planGenerateCmd = &cobra.Command{
	Use:   "generate",
	Short: "Build the outreach plan for the week",
	RunE:  runPlanGenerate,
}

var planDoneCmd = &cobra.Command{
	Use:   "done <position>",
	Short: "Mark a plan entry complete",
	Long: `Mark the entry at the given position (as shown by 'rekindle plan')
complete. When every entry is done, the plan is marked completed.`,
	Args: cobra.ExactArgs(1),
	RunE: runPlanDone,
}

var planListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all plans",
	RunE:  runPlanList,
}

func init() {
	rootCmd.AddCommand(planCmd)
	planCmd.AddCommand(planGenerateCmd)
	planCmd.AddCommand(planDoneCmd)
	planCmd.AddCommand(planListCmd)

	planCmd.PersistentFlags().StringVar(&planWeek, "week", "", "Week to operate on (YYYY-MM-DD, any day in the week)")
}

// planWeekStart resolves the --week flag, defaulting to the current week.
func planWeekStart() (time.Time, error) {
	if planWeek == "" {
		return planner.WeekStart(time.Now().UTC()), nil
	}
	day, err := time.Parse("2006-01-02", planWeek)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid week %q (use YYYY-MM-DD): %w", planWeek, err)
	}
	return planner.WeekStart(day), nil
}

func runPlanShow(cmd *cobra.Command, args []string) error {
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

	week, err := planWeekStart()
	if err != nil {
		return err
	}

	plan, err := db.GetPlanByWeekStart(ctx, week)
	if err != nil {
		return fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		fmt.Printf("No plan for the week of %s.\n", week.Format("Jan 02, 2006"))
		fmt.Println("Run 'rekindle plan generate' to build one.")
		return nil
	}

	return output.Output(outputFmt, plan)
}

func runPlanGenerate(cmd *cobra.Command, args []string) error {
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

	week, err := planWeekStart()
	if err != nil {
		return err
	}

	t := tracker.New(db, cfg, newLogger(cfg))
	plan, err := t.GeneratePlan(ctx, week)
	if err != nil {
		return fmt.Errorf("failed to generate plan: %w", err)
	}

	return output.Output(outputFmt, plan)
}

func runPlanDone(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	var position int
	if _, err := fmt.Sscanf(args[0], "%d", &position); err != nil || position < 1 {
		return fmt.Errorf("invalid position %q (use the number shown by 'rekindle plan')", args[0])
	}

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	week, err := planWeekStart()
	if err != nil {
		return err
	}

	plan, err := db.GetPlanByWeekStart(ctx, week)
	if err != nil {
		return fmt.Errorf("failed to get plan: %w", err)
	}
	if plan == nil {
		return fmt.Errorf("no plan for the week of %s", week.Format("Jan 02, 2006"))
	}
	if position > len(plan.Entries) {
		return fmt.Errorf("position %d out of range (plan has %d entries)", position, len(plan.Entries))
	}

	entry := plan.Entries[position-1]
	if err := db.CompleteEntry(ctx, entry.ID); err != nil {
		return fmt.Errorf("failed to complete entry: %w", err)
	}

	fmt.Printf("Marked %s done.\n", entry.ContactName)

	plan, err = db.GetPlanByWeekStart(ctx, week)
	if err != nil {
		return fmt.Errorf("failed to reload plan: %w", err)
	}
	if plan.Status == database.PlanCompleted {
		fmt.Println("That was the last one. Plan complete!")
	} else {
		fmt.Printf("Progress: %d/%d\n", plan.CompletedCount, plan.TargetContacts)
	}

	return nil
}

func runPlanList(cmd *cobra.Command, args []string) error {
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

	plans, err := db.ListPlans(ctx)
	if err != nil {
		return fmt.Errorf("failed to list plans: %w", err)
	}

	return output.Output(outputFmt, plans)
}
