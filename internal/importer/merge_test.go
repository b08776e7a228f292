package importer

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestNormalizeName(t *testing.T) {
	tests := []struct {
		first, last, want string
	}{
		{"Jane", "Doe", "jane_doe"},
		{" Jane ", " Doe ", "jane_doe"},
		{"JANE", "DOE", "jane_doe"},
		{"", "Doe", "_doe"},
	}

	for _, tt := range tests {
		if got := NormalizeName(tt.first, tt.last); got != tt.want {
			t.Errorf("NormalizeName(%q, %q) = %q, want %q", tt.first, tt.last, got, tt.want)
		}
	}
}

func TestSourceStrength(t *testing.T) {
	tests := []struct {
		source Source
		want   int
	}{
		{SourceConnection, 1},
		{SourceInvitation, 1},
		{SourceEndorsement, 2},
		{SourceMessage, 3},
		{SourceRecommendation, 3},
	}

	for _, tt := range tests {
		if got := tt.source.Strength(); got != tt.want {
			t.Errorf("%s.Strength() = %d, want %d", tt.source, got, tt.want)
		}
	}
}

func TestMerge(t *testing.T) {
	contacts := []RawContact{
		{FirstName: "Jane", LastName: "Doe", ConnectedOn: datePtr(2024, time.June, 1)},
		{FirstName: "Sam", LastName: "Lee", ConnectedOn: datePtr(2023, time.March, 10)},
	}
	batches := []Batch{
		{Source: SourceMessage, Records: []Record{
			{FirstName: "Jane", LastName: "Doe", Date: date(2025, time.February, 14)},
			{FirstName: "Nobody", LastName: "Known", Date: date(2025, time.January, 1)},
		}},
		{Source: SourceEndorsement, Records: []Record{
			{FirstName: "jane", LastName: "doe", Date: date(2024, time.December, 25)},
		}},
	}

	merged := Merge(contacts, batches)
	if len(merged) != 2 {
		t.Fatalf("expected 2 merged contacts, got %d", len(merged))
	}

	jane := merged[0]
	if jane.Key != "jane_doe" {
		t.Errorf("Key = %q, want jane_doe", jane.Key)
	}
	// connection baseline + message + endorsement
	if len(jane.Interactions) != 3 {
		t.Fatalf("expected 3 interactions for jane, got %d", len(jane.Interactions))
	}
	if jane.LastInteractionAt == nil || !jane.LastInteractionAt.Equal(date(2025, time.February, 14)) {
		t.Errorf("LastInteractionAt = %v, want 2025-02-14", jane.LastInteractionAt)
	}

	sam := merged[1]
	if len(sam.Interactions) != 1 {
		t.Errorf("expected 1 interaction for sam, got %d", len(sam.Interactions))
	}
	if sam.LastInteractionAt == nil || !sam.LastInteractionAt.Equal(date(2023, time.March, 10)) {
		t.Errorf("LastInteractionAt = %v, want connected-on date", sam.LastInteractionAt)
	}
}

func TestMerge_KeyCollisionFirstSeenWins(t *testing.T) {
	contacts := []RawContact{
		{FirstName: "Jane", LastName: "Doe", Company: "First Corp", ConnectedOn: datePtr(2024, time.January, 1)},
		{FirstName: "Jane", LastName: "Doe", Company: "Second Corp", ConnectedOn: datePtr(2024, time.June, 1)},
	}
	batches := []Batch{
		{Source: SourceMessage, Records: []Record{
			{FirstName: "Jane", LastName: "Doe", Date: date(2025, time.January, 5)},
		}},
	}

	merged := Merge(contacts, batches)
	if len(merged) != 1 {
		t.Fatalf("expected 1 merged contact, got %d", len(merged))
	}
	if merged[0].Contact.Company != "First Corp" {
		t.Errorf("Company = %q, want First Corp (first-seen wins)", merged[0].Contact.Company)
	}
	// The collision key absorbs the later interaction.
	if len(merged[0].Interactions) != 2 {
		t.Errorf("expected 2 interactions, got %d", len(merged[0].Interactions))
	}
}

func TestMerge_NoConnectedOn(t *testing.T) {
	merged := Merge([]RawContact{{FirstName: "Jane", LastName: "Doe"}}, nil)
	if len(merged) != 1 {
		t.Fatalf("expected 1 merged contact, got %d", len(merged))
	}
	if merged[0].LastInteractionAt != nil {
		t.Errorf("LastInteractionAt = %v, want nil", merged[0].LastInteractionAt)
	}
}

func TestFilterNew(t *testing.T) {
	existing := NewExistingIndex()
	existing.Add("jane_doe", "jane@example.com")

	merged := []Merged{
		{Key: "jane_doe", Contact: RawContact{Email: "other@example.com"}},   // name dup
		{Key: "sam_lee", Contact: RawContact{Email: "JANE@EXAMPLE.COM"}},     // email dup, case-insensitive
		{Key: "ana_ruiz", Contact: RawContact{Email: "ana@example.com"}},     // new
		{Key: "ana_ruiz", Contact: RawContact{Email: "ana.ruiz@example.io"}}, // dup within batch
	}

	kept, skipped := FilterNew(merged, existing)
	if len(kept) != 1 {
		t.Fatalf("expected 1 kept, got %d", len(kept))
	}
	if kept[0].Key != "ana_ruiz" {
		t.Errorf("kept = %q, want ana_ruiz", kept[0].Key)
	}
	if skipped != 3 {
		t.Errorf("skipped = %d, want 3", skipped)
	}
}
