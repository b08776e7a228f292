package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/jmalhotra/rekindle/internal/config"
	"github.com/jmalhotra/rekindle/internal/database"
	"github.com/jmalhotra/rekindle/internal/importer"
	"github.com/jmalhotra/rekindle/internal/output"
)

var showCmd = &cobra.Command{
	Use:   "show <name|id>",
	Short: "Show contact details",
	Long: `Show a contact's profile, scores, and interaction timeline.

The identifier can be:
  - Full name (case-insensitive, e.g. "Jane Doe")
  - Contact ID
  - Partial name or company (first match wins)

Examples:
  rekindle show "jane doe"
  rekindle show acme`,
	Args: cobra.MinimumNArgs(1),
	RunE: runShow,
}

func init() {
	rootCmd.AddCommand(showCmd)
}

func runShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	identifier := strings.Join(args, " ")

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	// Try an exact name match, then ID, then fall back to search.
	contact, err := lookupContact(ctx, db, identifier)
	if err != nil {
		return err
	}
	if contact == nil {
		return fmt.Errorf("contact not found: %s", identifier)
	}

	interactions, err := db.ListInteractions(ctx, contact.ID)
	if err != nil {
		return fmt.Errorf("failed to get interactions: %w", err)
	}

	if outputFmt == "json" {
		data := struct {
			Contact      *database.Contact      `json:"contact"`
			Interactions []database.Interaction `json:"interactions"`
		}{
			Contact:      contact,
			Interactions: interactions,
		}
		return output.JSON(data)
	}

	return output.ContactWithInteractions(os.Stdout, contact, interactions)
}

func lookupContact(ctx context.Context, db *database.DB, identifier string) (*database.Contact, error) {
	parts := strings.Fields(identifier)
	first := parts[0]
	last := ""
	if len(parts) > 1 {
		last = strings.Join(parts[1:], " ")
	}

	contact, err := db.GetContactByName(ctx, importer.NormalizeName(first, last))
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if contact != nil {
		return contact, nil
	}

	contact, err = db.GetContact(ctx, identifier)
	if err != nil {
		return nil, fmt.Errorf("database error: %w", err)
	}
	if contact != nil {
		return contact, nil
	}

	results, err := db.ListContacts(ctx, database.ListOptions{Search: identifier, Limit: 1})
	if err != nil {
		return nil, fmt.Errorf("search error: %w", err)
	}
	if len(results) > 0 {
		return &results[0], nil
	}

	return nil, nil
}
