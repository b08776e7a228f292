package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/jmalhotra/rekindle/internal/database"
)

// ContactsCSV writes contacts as CSV with a header row.
func ContactsCSV(w io.Writer, contacts []database.Contact) error {
	cw := csv.NewWriter(w)

	header := []string{
		"first_name", "last_name", "email", "company", "title", "industry",
		"location", "skills", "warmth_score", "warmth_bucket",
		"relevance_score", "relevance_bucket", "priority_score",
		"priority_bucket", "interaction_count", "last_interaction_at",
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write csv header: %w", err)
	}

	for _, c := range contacts {
		lastTouch := ""
		if c.LastInteractionAt != nil {
			lastTouch = c.LastInteractionAt.Format("2006-01-02")
		}
		row := []string{
			c.FirstName,
			c.LastName,
			deref(c.Email),
			deref(c.Company),
			deref(c.Title),
			deref(c.Industry),
			deref(c.Location),
			strings.Join(c.Skills, ";"),
			strconv.Itoa(c.WarmthScore),
			string(c.WarmthBucket),
			strconv.Itoa(c.RelevanceScore),
			string(c.RelevanceBucket),
			strconv.Itoa(c.PriorityScore),
			string(c.PriorityBucket),
			strconv.Itoa(c.InteractionCount),
			lastTouch,
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("failed to write csv row: %w", err)
		}
	}

	cw.Flush()
	return cw.Error()
}
