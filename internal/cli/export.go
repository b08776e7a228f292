package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/jmalhotra/rekindle/internal/config"
	"github.com/jmalhotra/rekindle/internal/database"
	"github.com/jmalhotra/rekindle/internal/output"
	"github.com/jmalhotra/rekindle/internal/scoring"
)

var exportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export contacts to CSV or JSON",
	Long: `Export the scored contact list to a file or stdout.

Supported formats:
  - csv: Comma-separated values (spreadsheet-compatible)
  - json: JSON array of contact objects

Examples:
  rekindle export --format=csv > contacts.csv
  rekindle export --format=json > contacts.json
  rekindle export --format=csv --warmth=cold > cold.csv`,
	RunE: runExport,
}

var (
	exportFormat string
	exportWarmth string
)

func init() {
	rootCmd.AddCommand(exportCmd)

	exportCmd.Flags().StringVar(&exportFormat, "format", "csv", "Export format (csv, json)")
	exportCmd.Flags().StringVar(&exportWarmth, "warmth", "", "Only export one warmth bucket (hot, warm, cold)")
}

func runExport(cmd *cobra.Command, args []string) error {
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

	opts := database.ListOptions{}
	if exportWarmth != "" {
		bucket := scoring.WarmthBucket(exportWarmth)
		opts.WarmthBucket = &bucket
	}

	contacts, err := db.ListContacts(ctx, opts)
	if err != nil {
		return fmt.Errorf("failed to list contacts: %w", err)
	}

	switch exportFormat {
	case "csv":
		return output.ContactsCSV(os.Stdout, contacts)
	case "json":
		return output.JSON(contacts)
	default:
		return fmt.Errorf("unknown format: %s (use csv or json)", exportFormat)
	}
}
