package planner

import (
	"testing"
	"time"

	"github.com/jmalhotra/rekindle/internal/scoring"
)

var (
	testNow  = time.Date(2026, 3, 4, 15, 0, 0, 0, time.UTC) // a Wednesday
	thisWeek = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)  // its Monday
	lastWeek = thisWeek.AddDate(0, 0, -7)
)

func daysAgo(n int) *time.Time {
	t := testNow.AddDate(0, 0, -n)
	return &t
}

func TestWeekStart(t *testing.T) {
	tests := []struct {
		name string
		in   time.Time
		want time.Time
	}{
		{"wednesday", testNow, thisWeek},
		{"monday itself", thisWeek, thisWeek},
		{"sunday belongs to prior monday", time.Date(2026, 3, 8, 23, 0, 0, 0, time.UTC), thisWeek},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := WeekStart(tt.in); !got.Equal(tt.want) {
				t.Errorf("WeekStart(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestSelect_Capacity(t *testing.T) {
	contacts := []Candidate{
		{ContactID: "a", WarmthBucket: scoring.WarmthHot, RelevanceBucket: scoring.RelevanceHigh},
		{ContactID: "b", WarmthBucket: scoring.WarmthWarm, RelevanceBucket: scoring.RelevanceMedium},
		{ContactID: "c", WarmthBucket: scoring.WarmthCold, RelevanceBucket: scoring.RelevanceLow},
	}

	res := Select(contacts, nil, 2, thisWeek, testNow)
	if len(res.Plan.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(res.Plan.Entries))
	}
	if res.Plan.TargetContacts != 2 {
		t.Errorf("TargetContacts = %d, want 2", res.Plan.TargetContacts)
	}
}

func TestSelect_EmptyAndZeroCapacity(t *testing.T) {
	res := Select(nil, nil, 5, thisWeek, testNow)
	if len(res.Plan.Entries) != 0 {
		t.Errorf("expected no entries for empty contacts, got %d", len(res.Plan.Entries))
	}
	if res.Plan.TargetContacts != 5 {
		t.Errorf("TargetContacts = %d, want 5", res.Plan.TargetContacts)
	}

	contacts := []Candidate{{ContactID: "a"}}
	res = Select(contacts, nil, 0, thisWeek, testNow)
	if len(res.Plan.Entries) != 0 {
		t.Errorf("expected no entries for zero capacity, got %d", len(res.Plan.Entries))
	}
	res = Select(contacts, nil, -3, thisWeek, testNow)
	if len(res.Plan.Entries) != 0 {
		t.Errorf("expected no entries for negative capacity, got %d", len(res.Plan.Entries))
	}
}

func TestSelect_RolloverFirst(t *testing.T) {
	contacts := []Candidate{
		{ContactID: "fresh-high", WarmthBucket: scoring.WarmthHot, RelevanceBucket: scoring.RelevanceHigh},
		{ContactID: "rolled", WarmthBucket: scoring.WarmthCold, RelevanceBucket: scoring.RelevanceLow},
	}
	prior := []PriorPlan{
		{
			ID:        "plan-1",
			WeekStart: lastWeek,
			Active:    true,
			Entries: []PriorEntry{
				{ContactID: "rolled", Completed: false},
			},
		},
	}

	res := Select(contacts, prior, 2, thisWeek, testNow)
	if len(res.Plan.Entries) != 2 {
		t.Fatalf("expected 2 entries, got %d", len(res.Plan.Entries))
	}
	if res.Plan.Entries[0].ContactID != "rolled" {
		t.Errorf("expected rollover contact first, got %s", res.Plan.Entries[0].ContactID)
	}
	if res.Plan.Entries[0].SuggestedAction != ActionRollover {
		t.Errorf("action = %q, want %q", res.Plan.Entries[0].SuggestedAction, ActionRollover)
	}
	if len(res.MissedPlanIDs) != 1 || res.MissedPlanIDs[0] != "plan-1" {
		t.Errorf("MissedPlanIDs = %v, want [plan-1]", res.MissedPlanIDs)
	}
}

func TestSelect_CompletedEntriesDoNotRollOver(t *testing.T) {
	contacts := []Candidate{
		{ContactID: "done", WarmthBucket: scoring.WarmthHot, RelevanceBucket: scoring.RelevanceLow},
		{ContactID: "better", WarmthBucket: scoring.WarmthHot, RelevanceBucket: scoring.RelevanceHigh},
	}
	prior := []PriorPlan{
		{
			ID:        "plan-1",
			WeekStart: lastWeek,
			Active:    true,
			Entries:   []PriorEntry{{ContactID: "done", Completed: true}},
		},
	}

	res := Select(contacts, prior, 1, thisWeek, testNow)
	if res.Plan.Entries[0].ContactID != "better" {
		t.Errorf("completed prior entry should not outrank fresh contacts, got %s", res.Plan.Entries[0].ContactID)
	}
}

func TestSelect_SameWeekPlanIsReplacedNotRolled(t *testing.T) {
	contacts := []Candidate{
		{ContactID: "a", WarmthBucket: scoring.WarmthHot, RelevanceBucket: scoring.RelevanceHigh},
		{ContactID: "b", WarmthBucket: scoring.WarmthWarm, RelevanceBucket: scoring.RelevanceLow},
	}
	prior := []PriorPlan{
		{
			ID:        "current",
			WeekStart: thisWeek,
			Active:    true,
			Entries:   []PriorEntry{{ContactID: "b", Completed: false}},
		},
	}

	res := Select(contacts, prior, 1, thisWeek, testNow)
	if len(res.MissedPlanIDs) != 0 {
		t.Errorf("same-week plan must not be marked missed, got %v", res.MissedPlanIDs)
	}
	// "b" gets no rollover boost, so "a" wins the single slot.
	if res.Plan.Entries[0].ContactID != "a" {
		t.Errorf("expected a, got %s", res.Plan.Entries[0].ContactID)
	}
}

func TestSelect_ColdHighValueBeatsWarmMedium(t *testing.T) {
	// cold+high: 100 + 50 + 20 = 170; warm+medium touched 45d ago: 50 + 30 - 20 = 60.
	contacts := []Candidate{
		{ContactID: "warm-med", WarmthBucket: scoring.WarmthWarm, RelevanceBucket: scoring.RelevanceMedium, LastInteractionAt: daysAgo(45)},
		{ContactID: "cold-high", WarmthBucket: scoring.WarmthCold, RelevanceBucket: scoring.RelevanceHigh, LastInteractionAt: daysAgo(400)},
	}

	res := Select(contacts, nil, 2, thisWeek, testNow)
	if res.Plan.Entries[0].ContactID != "cold-high" {
		t.Errorf("expected cold-high first, got %s", res.Plan.Entries[0].ContactID)
	}
	if res.Plan.Entries[0].SuggestedAction != ActionReconnect {
		t.Errorf("action = %q, want %q", res.Plan.Entries[0].SuggestedAction, ActionReconnect)
	}
	if res.Plan.Entries[1].SuggestedAction != ActionCheckIn {
		t.Errorf("action = %q, want %q", res.Plan.Entries[1].SuggestedAction, ActionCheckIn)
	}
}

func TestSelect_RecentContactPenalized(t *testing.T) {
	// Identical contacts except recency: the recently touched one sinks.
	contacts := []Candidate{
		{ContactID: "recent", WarmthBucket: scoring.WarmthHot, RelevanceBucket: scoring.RelevanceHigh, LastInteractionAt: daysAgo(5)},
		{ContactID: "idle", WarmthBucket: scoring.WarmthHot, RelevanceBucket: scoring.RelevanceHigh, LastInteractionAt: daysAgo(90)},
	}

	res := Select(contacts, nil, 2, thisWeek, testNow)
	if res.Plan.Entries[0].ContactID != "idle" {
		t.Errorf("expected idle first, got %s", res.Plan.Entries[0].ContactID)
	}
}

func TestSelect_StableTieBreak(t *testing.T) {
	// Equal scores keep input order.
	contacts := []Candidate{
		{ContactID: "first", WarmthBucket: scoring.WarmthWarm, RelevanceBucket: scoring.RelevanceMedium},
		{ContactID: "second", WarmthBucket: scoring.WarmthWarm, RelevanceBucket: scoring.RelevanceMedium},
		{ContactID: "third", WarmthBucket: scoring.WarmthWarm, RelevanceBucket: scoring.RelevanceMedium},
	}

	res := Select(contacts, nil, 3, thisWeek, testNow)
	for i, want := range []string{"first", "second", "third"} {
		if res.Plan.Entries[i].ContactID != want {
			t.Errorf("entry %d = %s, want %s", i, res.Plan.Entries[i].ContactID, want)
		}
	}
}
