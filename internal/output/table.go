package output

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/olekukonko/tablewriter"

	"github.com/jmalhotra/rekindle/internal/badge"
	"github.com/jmalhotra/rekindle/internal/database"
)

// Table writes data as a formatted table to stdout
func Table(data interface{}) error {
	return TableTo(os.Stdout, data)
}

// TableTo writes data as a formatted table to the given writer
func TableTo(w io.Writer, data interface{}) error {
	switch v := data.(type) {
	case []database.Contact:
		return contactsTable(w, v)
	case *database.Contact:
		return contactDetail(w, v)
	case *database.Plan:
		return planDetail(w, v)
	case []database.Plan:
		return plansTable(w, v)
	case *database.Stats:
		return statsTable(w, v)
	case badge.Summary:
		return badgeSummary(w, v)
	default:
		return fmt.Errorf("unsupported data type for table output: %T", data)
	}
}

func contactsTable(w io.Writer, contacts []database.Contact) error {
	if len(contacts) == 0 {
		fmt.Fprintln(w, "No contacts found.")
		return nil
	}

	table := tablewriter.NewTable(w)
	table.Header("Name", "Company", "Title", "Warmth", "Relevance", "Priority", "Last Touch")

	for _, c := range contacts {
		if err := table.Append([]string{
			truncate(c.FullName(), 25),
			truncate(deref(c.Company), 20),
			truncate(deref(c.Title), 25),
			fmt.Sprintf("%s (%d)", c.WarmthBucket, c.WarmthScore),
			fmt.Sprintf("%s (%d)", c.RelevanceBucket, c.RelevanceScore),
			fmt.Sprintf("%s (%d)", c.PriorityBucket, c.PriorityScore),
			formatLastTouch(c.LastInteractionAt),
		}); err != nil {
			return err
		}
	}

	return table.Render()
}

func contactDetail(w io.Writer, c *database.Contact) error {
	fmt.Fprintf(w, "Name:        %s\n", c.FullName())
	if c.Email != nil && *c.Email != "" {
		fmt.Fprintf(w, "Email:       %s\n", *c.Email)
	}
	if c.Company != nil && *c.Company != "" {
		fmt.Fprintf(w, "Company:     %s\n", *c.Company)
	}
	if c.Title != nil && *c.Title != "" {
		fmt.Fprintf(w, "Title:       %s\n", *c.Title)
	}
	if c.Industry != nil && *c.Industry != "" {
		fmt.Fprintf(w, "Industry:    %s\n", *c.Industry)
	}
	if c.Location != nil && *c.Location != "" {
		fmt.Fprintf(w, "Location:    %s\n", *c.Location)
	}
	if len(c.Skills) > 0 {
		fmt.Fprintf(w, "Skills:      %s\n", strings.Join(c.Skills, ", "))
	}

	fmt.Fprintf(w, "Warmth:      %s (%d)\n", c.WarmthBucket, c.WarmthScore)
	fmt.Fprintf(w, "Relevance:   %s (%d)\n", c.RelevanceBucket, c.RelevanceScore)
	fmt.Fprintf(w, "Priority:    %s (%d)\n", c.PriorityBucket, c.PriorityScore)

	fmt.Fprintf(w, "Touches:     %d\n", c.InteractionCount)
	fmt.Fprintf(w, "Last touch:  %s\n", formatLastTouch(c.LastInteractionAt))
	if c.ConnectedOn != nil {
		fmt.Fprintf(w, "Connected:   %s\n", c.ConnectedOn.Format("Jan 02, 2006"))
	}
	if c.ReactivatedAt != nil {
		fmt.Fprintf(w, "Reactivated: %s\n", c.ReactivatedAt.Format("Jan 02, 2006"))
	}

	return nil
}

// ContactWithInteractions prints a contact with its interaction timeline
func ContactWithInteractions(w io.Writer, c *database.Contact, interactions []database.Interaction) error {
	if err := contactDetail(w, c); err != nil {
		return err
	}

	if len(interactions) > 0 {
		fmt.Fprintln(w)
		fmt.Fprintln(w, "Timeline:")

		for i, in := range interactions {
			marker := ""
			if i == 0 {
				marker = " <- latest"
			}
			fmt.Fprintf(w, "  %s  %-14s%s\n", in.OccurredAt.Format("Jan 02, 2006"), in.Source, marker)
		}
	}

	return nil
}

func planDetail(w io.Writer, p *database.Plan) error {
	fmt.Fprintf(w, "Week of %s\n", p.WeekStart.Format("Jan 02, 2006"))
	fmt.Fprintf(w, "Status:    %s\n", p.Status)
	fmt.Fprintf(w, "Progress:  %d/%d\n", p.CompletedCount, p.TargetContacts)
	fmt.Fprintln(w)

	if len(p.Entries) == 0 {
		fmt.Fprintln(w, "No contacts planned this week.")
		return nil
	}

	table := tablewriter.NewTable(w)
	table.Header("#", "Contact", "Suggested Action", "Done")

	for _, e := range p.Entries {
		done := ""
		if e.Completed {
			done = "x"
		}
		if err := table.Append([]string{
			fmt.Sprintf("%d", e.Position+1),
			truncate(e.ContactName, 25),
			e.SuggestedAction,
			done,
		}); err != nil {
			return err
		}
	}

	return table.Render()
}

func plansTable(w io.Writer, plans []database.Plan) error {
	if len(plans) == 0 {
		fmt.Fprintln(w, "No plans found.")
		return nil
	}

	table := tablewriter.NewTable(w)
	table.Header("Week", "Status", "Progress")

	for _, p := range plans {
		if err := table.Append([]string{
			p.WeekStart.Format("Jan 02, 2006"),
			string(p.Status),
			fmt.Sprintf("%d/%d", p.CompletedCount, p.TargetContacts),
		}); err != nil {
			return err
		}
	}

	return table.Render()
}

func statsTable(w io.Writer, s *database.Stats) error {
	fmt.Fprintln(w, "Network Statistics")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	fmt.Fprintf(w, "Total contacts:         %d\n", s.TotalContacts)
	fmt.Fprintf(w, "Hot:                    %d\n", s.Hot)
	fmt.Fprintf(w, "Warm:                   %d\n", s.Warm)
	fmt.Fprintf(w, "Cold:                   %d\n", s.Cold)
	fmt.Fprintf(w, "Priority A:             %d\n", s.PriorityA)
	fmt.Fprintf(w, "Priority B:             %d\n", s.PriorityB)
	fmt.Fprintf(w, "Priority C:             %d\n", s.PriorityC)
	fmt.Fprintf(w, "Never contacted:        %d\n", s.NeverContacted)
	fmt.Fprintf(w, "Reactivations:          %d\n", s.Reactivations)

	if s.PlansTotal > 0 {
		fmt.Fprintf(w, "Plans:                  %d (%d completed)\n", s.PlansTotal, s.PlansCompleted)
		fmt.Fprintf(w, "Planned outreach done:  %d/%d\n", s.EntriesComplete, s.EntriesTotal)
	}

	return nil
}

func badgeSummary(w io.Writer, s badge.Summary) error {
	fmt.Fprintln(w, "Reactivation Badges")
	fmt.Fprintln(w, strings.Repeat("-", 30))
	fmt.Fprintf(w, "Contacts rekindled:     %d\n", s.Reactivations)

	for _, m := range badge.Milestones {
		mark := "[ ]"
		if s.Reactivations >= m {
			mark = "[x]"
		}
		fmt.Fprintf(w, "  %s %d rekindled\n", mark, m)
	}

	if s.NextMilestone > 0 {
		fmt.Fprintf(w, "Next milestone:         %d away\n", s.NextMilestone-s.Reactivations)
	}

	return nil
}

func formatLastTouch(t *time.Time) string {
	if t == nil {
		return "never"
	}

	days := int(time.Since(*t).Hours() / 24)
	switch {
	case days <= 0:
		return "today"
	case days == 1:
		return "yesterday"
	case days < 7:
		return fmt.Sprintf("%d days ago", days)
	case days < 60:
		return fmt.Sprintf("%d weeks ago", days/7)
	default:
		return t.Format("Jan 02, 2006")
	}
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max-3] + "..."
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
