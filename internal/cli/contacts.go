package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmalhotra/rekindle/internal/config"
	"github.com/jmalhotra/rekindle/internal/database"
	"github.com/jmalhotra/rekindle/internal/output"
	"github.com/jmalhotra/rekindle/internal/scoring"
)

var contactsCmd = &cobra.Command{
	Use:   "contacts",
	Short: "List contacts",
	Long: `List contacts ordered by priority, with optional filters.

Examples:
  rekindle contacts                      # Everyone, highest priority first
  rekindle contacts --warmth=cold        # Cold contacts only
  rekindle contacts --priority=A         # Top-priority contacts
  rekindle contacts --search=acme        # Name, company, or title match
  rekindle contacts --limit=10 -o json`,
	RunE: runContacts,
}

var (
	contactsWarmth    string
	contactsRelevance string
	contactsPriority  string
	contactsSearch    string
	contactsLimit     int
	contactsOffset    int
)

func init() {
	rootCmd.AddCommand(contactsCmd)

	contactsCmd.Flags().StringVar(&contactsWarmth, "warmth", "", "Filter by warmth bucket (hot, warm, cold)")
	contactsCmd.Flags().StringVar(&contactsRelevance, "relevance", "", "Filter by relevance bucket (high, medium, low)")
	contactsCmd.Flags().StringVar(&contactsPriority, "priority", "", "Filter by priority bucket (A, B, C)")
	contactsCmd.Flags().StringVar(&contactsSearch, "search", "", "Match against name, company, or title")
	contactsCmd.Flags().IntVar(&contactsLimit, "limit", 0, "Maximum number of results")
	contactsCmd.Flags().IntVar(&contactsOffset, "offset", 0, "Number of results to skip")
}

func runContacts(cmd *cobra.Command, args []string) error {
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

	opts := database.ListOptions{
		Search: contactsSearch,
		Limit:  contactsLimit,
		Offset: contactsOffset,
	}

	if contactsWarmth != "" {
		bucket := scoring.WarmthBucket(contactsWarmth)
		opts.WarmthBucket = &bucket
	}
	if contactsRelevance != "" {
		bucket := scoring.RelevanceBucket(contactsRelevance)
		opts.RelevanceBucket = &bucket
	}
	if contactsPriority != "" {
		bucket := scoring.PriorityBucket(contactsPriority)
		opts.PriorityBucket = &bucket
	}

	contacts, err := db.ListContacts(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to list contacts: %w", err)
	}

	return output.Output(outputFmt, contacts)
}
