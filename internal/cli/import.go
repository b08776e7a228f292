package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/jmalhotra/rekindle/internal/config"
	"github.com/jmalhotra/rekindle/internal/database"
	"github.com/jmalhotra/rekindle/internal/importer"
	"github.com/jmalhotra/rekindle/internal/tracker"
)

var importCmd = &cobra.Command{
	Use:   "import <export-dir>",
	Short: "Import contacts from a LinkedIn data export",
	Long: `Import reads the CSV files from an unpacked LinkedIn data export,
merges interaction history into each contact, scores everyone against your
configured goals, and stores the results.

Recognized files (all optional except Connections.csv):
  Connections.csv, Invitations.csv, Endorsement_Received_Info.csv,
  messages.csv, Recommendations_Received.csv

Contacts already in the database are skipped, so re-running an import is safe.

Examples:
  rekindle import ~/Downloads/linkedin-export
  rekindle import ~/Downloads/linkedin-export -o json`,
	Args: cobra.ExactArgs(1),
	RunE: runImport,
}

func init() {
	rootCmd.AddCommand(importCmd)
}

// exportFiles maps interaction sources to the file names LinkedIn uses.
var exportFiles = []struct {
	name   string
	source importer.Source
}{
	{"Invitations.csv", importer.SourceInvitation},
	{"Endorsement_Received_Info.csv", importer.SourceEndorsement},
	{"messages.csv", importer.SourceMessage},
	{"Recommendations_Received.csv", importer.SourceRecommendation},
}

func runImport(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	exportDir := args[0]

	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}
	if err := cfg.EnsureDirectories(); err != nil {
		return err
	}

	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}
	defer db.Close()

	contacts, err := readConnections(exportDir)
	if err != nil {
		return err
	}
	fmt.Printf("Found %d connections\n", len(contacts))

	batches := readBatches(exportDir)
	for _, b := range batches {
		fmt.Printf("  %s: %d records\n", b.Source, len(b.Records))
	}

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

	result, err := t.Import(ctx, contacts, batches, progress)
	terminal.ClearLine()
	if err != nil {
		return fmt.Errorf("import failed: %w", err)
	}

	fmt.Println()
	fmt.Println("Import complete:")
	fmt.Printf("  Contacts merged:   %d\n", result.Merged)
	fmt.Printf("  New contacts:      %d\n", result.Imported)
	fmt.Printf("  Already known:     %d\n", result.Skipped)
	fmt.Printf("  Interactions:      %d\n", result.Interactions)

	if len(result.Errors) > 0 {
		fmt.Println()
		fmt.Printf("Warnings: %d\n", len(result.Errors))
		for _, e := range result.Errors {
			fmt.Printf("  - %v\n", e)
		}
	}

	fmt.Println()
	fmt.Println("Run 'rekindle plan generate' to build this week's outreach list.")

	return nil
}

// readConnections parses the required Connections.csv file.
func readConnections(dir string) ([]importer.RawContact, error) {
	path := filepath.Join(dir, "Connections.csv")
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	contacts, err := importer.ReadConnections(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", path, err)
	}
	return contacts, nil
}

// readBatches parses whichever optional interaction files exist in the export.
// A file that fails to parse is reported and skipped rather than aborting the
// whole import.
func readBatches(dir string) []importer.Batch {
	var batches []importer.Batch

	for _, ef := range exportFiles {
		path := filepath.Join(dir, ef.name)
		f, err := os.Open(path)
		if err != nil {
			continue
		}

		batch, err := readBatch(f, ef.source)
		f.Close()
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: skipping %s: %v\n", ef.name, err)
			continue
		}
		if len(batch.Records) > 0 {
			batches = append(batches, batch)
		}
	}

	return batches
}

func readBatch(f *os.File, source importer.Source) (importer.Batch, error) {
	switch source {
	case importer.SourceInvitation:
		return importer.ReadInvitations(f)
	case importer.SourceEndorsement:
		return importer.ReadEndorsements(f)
	case importer.SourceMessage:
		return importer.ReadMessages(f)
	case importer.SourceRecommendation:
		return importer.ReadRecommendations(f)
	default:
		return importer.Batch{}, fmt.Errorf("unknown source: %s", source)
	}
}
