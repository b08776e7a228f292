package database

import (
	"database/sql"
	"encoding/json"
	"time"

	"github.com/jmalhotra/rekindle/internal/scoring"
)

// PlanStatus represents the state of a weekly plan
type PlanStatus string

const (
	PlanActive    PlanStatus = "active"
	PlanCompleted PlanStatus = "completed"
	PlanMissed    PlanStatus = "missed"
)

// Contact represents a stored contact with its current scores. The score and
// bucket columns are always written together from one scoring result, so a
// stored bucket always corresponds to its score.
type Contact struct {
	ID             string   `json:"id"`
	FirstName      string   `json:"first_name"`
	LastName       string   `json:"last_name"`
	NormalizedName string   `json:"normalized_name"`
	Email          *string  `json:"email,omitempty"`
	Company        *string  `json:"company,omitempty"`
	Title          *string  `json:"title,omitempty"`
	Headline       *string  `json:"headline,omitempty"`
	Industry       *string  `json:"industry,omitempty"`
	Location       *string  `json:"location,omitempty"`
	Skills         []string `json:"skills,omitempty"`
	PastCompanies  []string `json:"past_companies,omitempty"`

	ConnectedOn       *time.Time `json:"connected_on,omitempty"`
	LastInteractionAt *time.Time `json:"last_interaction_at,omitempty"`
	InteractionCount  int        `json:"interaction_count"`

	WarmthScore          int                     `json:"warmth_score"`
	WarmthBucket         scoring.WarmthBucket    `json:"warmth_bucket"`
	PreviousWarmthBucket *scoring.WarmthBucket   `json:"previous_warmth_bucket,omitempty"`
	ReactivatedAt        *time.Time              `json:"reactivated_at,omitempty"`
	RelevanceScore       int                     `json:"relevance_score"`
	RelevanceBucket      scoring.RelevanceBucket `json:"relevance_bucket"`
	PriorityScore        int                     `json:"priority_score"`
	PriorityBucket       scoring.PriorityBucket  `json:"priority_bucket"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// FullName returns the display name.
func (c *Contact) FullName() string {
	switch {
	case c.FirstName == "":
		return c.LastName
	case c.LastName == "":
		return c.FirstName
	default:
		return c.FirstName + " " + c.LastName
	}
}

// Profile maps the contact onto the relevance scorer's input.
func (c *Contact) Profile() scoring.Profile {
	return scoring.Profile{
		Industry:      deref(c.Industry),
		Title:         deref(c.Title),
		Headline:      deref(c.Headline),
		Company:       deref(c.Company),
		PastCompanies: c.PastCompanies,
		Location:      deref(c.Location),
		Skills:        c.Skills,
	}
}

// Interaction represents a single stored touchpoint with a contact
type Interaction struct {
	ID         string    `json:"id"`
	ContactID  string    `json:"contact_id"`
	Source     string    `json:"source"`
	Strength   int       `json:"strength"`
	OccurredAt time.Time `json:"occurred_at"`
	CreatedAt  time.Time `json:"created_at"`
}

// Plan represents one week's outreach plan
type Plan struct {
	ID             string      `json:"id"`
	WeekStart      time.Time   `json:"week_start"`
	TargetContacts int         `json:"target_contacts"`
	CompletedCount int         `json:"completed_count"`
	Status         PlanStatus  `json:"status"`
	Entries        []PlanEntry `json:"entries,omitempty"`
	CreatedAt      time.Time   `json:"created_at"`
	UpdatedAt      time.Time   `json:"updated_at"`
}

// PlanEntry is one planned contact within a plan, ordered by Position
type PlanEntry struct {
	ID              string `json:"id"`
	PlanID          string `json:"plan_id"`
	ContactID       string `json:"contact_id"`
	ContactName     string `json:"contact_name,omitempty"`
	Position        int    `json:"position"`
	SuggestedAction string `json:"suggested_action"`
	Completed       bool   `json:"completed"`
}

// AppState holds singleton application state
type AppState struct {
	BadgeEpochAt     time.Time  `json:"badge_epoch_at"`
	LastImportAt     *time.Time `json:"last_import_at,omitempty"`
	ContactsImported int        `json:"contacts_imported"`
}

// Stats represents aggregate statistics
type Stats struct {
	TotalContacts   int `json:"total_contacts"`
	Hot             int `json:"hot"`
	Warm            int `json:"warm"`
	Cold            int `json:"cold"`
	PriorityA       int `json:"priority_a"`
	PriorityB       int `json:"priority_b"`
	PriorityC       int `json:"priority_c"`
	NeverContacted  int `json:"never_contacted"`
	Reactivations   int `json:"reactivations"`
	PlansTotal      int `json:"plans_total"`
	PlansCompleted  int `json:"plans_completed"`
	EntriesComplete int `json:"entries_complete"`
	EntriesTotal    int `json:"entries_total"`
}

// ListOptions contains options for listing contacts
type ListOptions struct {
	WarmthBucket    *scoring.WarmthBucket
	RelevanceBucket *scoring.RelevanceBucket
	PriorityBucket  *scoring.PriorityBucket
	Search          string
	Limit           int
	Offset          int
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

// NullString is a helper to convert *string to sql.NullString
func NullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}

// NullTime is a helper to convert *time.Time to sql.NullTime
func NullTime(t *time.Time) sql.NullTime {
	if t == nil {
		return sql.NullTime{}
	}
	return sql.NullTime{Time: *t, Valid: true}
}

// StringPtr converts sql.NullString to *string
func StringPtr(ns sql.NullString) *string {
	if !ns.Valid {
		return nil
	}
	return &ns.String
}

// TimePtr converts sql.NullTime to *time.Time
func TimePtr(nt sql.NullTime) *time.Time {
	if !nt.Valid {
		return nil
	}
	return &nt.Time
}

// marshalStrings encodes a string slice as its JSON column value.
func marshalStrings(values []string) string {
	if len(values) == 0 {
		return "[]"
	}
	data, err := json.Marshal(values)
	if err != nil {
		return "[]"
	}
	return string(data)
}

// unmarshalStrings decodes a JSON string-array column.
func unmarshalStrings(data string) []string {
	if data == "" || data == "[]" {
		return nil
	}
	var values []string
	if err := json.Unmarshal([]byte(data), &values); err != nil {
		return nil
	}
	return values
}
