package tracker

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jmalhotra/rekindle/internal/config"
	"github.com/jmalhotra/rekindle/internal/database"
	"github.com/jmalhotra/rekindle/internal/importer"
	"github.com/jmalhotra/rekindle/internal/planner"
	"github.com/jmalhotra/rekindle/internal/scoring"
)

func setupTracker(t *testing.T, now time.Time) (*Tracker, *database.DB, func()) {
	t.Helper()

	tmpDir, err := os.MkdirTemp("", "rekindle-tracker-test")
	if err != nil {
		t.Fatalf("failed to create temp dir: %v", err)
	}

	db, err := database.Open(filepath.Join(tmpDir, "test.db"))
	if err != nil {
		os.RemoveAll(tmpDir)
		t.Fatalf("failed to open database: %v", err)
	}

	cfg := config.Default()
	cfg.Goals.TargetIndustries = []string{"Healthcare"}
	cfg.Goals.DreamRoles = []string{"Product Manager"}
	cfg.Goals.TargetSkills = []string{"SQL", "Python"}
	cfg.Goals.WeeklyCapacity = 3

	log := logrus.New()
	log.SetOutput(io.Discard)

	tr := New(db, cfg, log)
	tr.now = func() time.Time { return now }

	// The stored badge epoch defaults to wall-clock creation time; pin it
	// behind the test clock so epoch gating does not swallow credits.
	ctx := context.Background()
	state, err := db.GetAppState(ctx)
	if err != nil {
		db.Close()
		os.RemoveAll(tmpDir)
		t.Fatalf("failed to read app state: %v", err)
	}
	state.BadgeEpochAt = now.AddDate(-1, 0, 0)
	if err := db.UpdateAppState(ctx, state); err != nil {
		db.Close()
		os.RemoveAll(tmpDir)
		t.Fatalf("failed to rewind badge epoch: %v", err)
	}

	cleanup := func() {
		db.Close()
		os.RemoveAll(tmpDir)
	}
	return tr, db, cleanup
}

func date(s string) time.Time {
	d, err := time.Parse("2006-01-02", s)
	if err != nil {
		panic(err)
	}
	return d
}

func rawContact(first, last string) importer.RawContact {
	connected := date("2025-01-15")
	return importer.RawContact{
		FirstName:   first,
		LastName:    last,
		Company:     "Acme Health",
		Title:       "Product Manager",
		Industry:    "Healthcare",
		Skills:      []string{"SQL", "Python"},
		ConnectedOn: &connected,
	}
}

func TestImport(t *testing.T) {
	now := date("2026-03-04")
	tr, db, cleanup := setupTracker(t, now)
	defer cleanup()
	ctx := context.Background()

	contacts := []importer.RawContact{
		rawContact("Jane", "Doe"),
		rawContact("John", "Smith"),
	}
	batches := []importer.Batch{
		{
			Source: importer.SourceMessage,
			Records: []importer.Record{
				{FirstName: "Jane", LastName: "Doe", Date: date("2026-02-20")},
			},
		},
	}

	result, err := tr.Import(ctx, contacts, batches, nil)
	if err != nil {
		t.Fatalf("Import failed: %v", err)
	}
	if result.Imported != 2 {
		t.Errorf("Imported = %d, want 2", result.Imported)
	}
	if result.Skipped != 0 {
		t.Errorf("Skipped = %d, want 0", result.Skipped)
	}
	if len(result.Errors) != 0 {
		t.Errorf("unexpected errors: %v", result.Errors)
	}

	jane, err := db.GetContactByName(ctx, "jane_doe")
	if err != nil {
		t.Fatalf("GetContactByName failed: %v", err)
	}
	if jane == nil {
		t.Fatal("jane_doe not stored")
	}

	// Last message was 12 days before now, so Jane lands in the hot band.
	if jane.WarmthBucket != scoring.WarmthHot {
		t.Errorf("warmth bucket = %s, want hot", jane.WarmthBucket)
	}
	if jane.PreviousWarmthBucket != nil {
		t.Error("new contact should have no previous warmth bucket")
	}
	// Industry, role, and both skills match; the location and company goals
	// are unset so those factors earn nothing: 70 of 100.
	if jane.RelevanceScore != 70 {
		t.Errorf("relevance score = %d, want 70", jane.RelevanceScore)
	}
	if jane.RelevanceBucket != scoring.RelevanceMedium {
		t.Errorf("relevance bucket = %s, want medium", jane.RelevanceBucket)
	}
	if jane.InteractionCount != 2 {
		t.Errorf("InteractionCount = %d, want 2 (connection + message)", jane.InteractionCount)
	}

	interactions, err := db.ListInteractions(ctx, jane.ID)
	if err != nil {
		t.Fatalf("ListInteractions failed: %v", err)
	}
	if len(interactions) != 2 {
		t.Fatalf("stored interactions = %d, want 2", len(interactions))
	}

	state, err := db.GetAppState(ctx)
	if err != nil {
		t.Fatalf("GetAppState failed: %v", err)
	}
	if state.ContactsImported != 2 {
		t.Errorf("ContactsImported = %d, want 2", state.ContactsImported)
	}
	if state.LastImportAt == nil {
		t.Error("LastImportAt not recorded")
	}
}

func TestImportSkipsExisting(t *testing.T) {
	now := date("2026-03-04")
	tr, _, cleanup := setupTracker(t, now)
	defer cleanup()
	ctx := context.Background()

	first, err := tr.Import(ctx, []importer.RawContact{rawContact("Jane", "Doe")}, nil, nil)
	if err != nil {
		t.Fatalf("first Import failed: %v", err)
	}
	if first.Imported != 1 {
		t.Fatalf("first Imported = %d, want 1", first.Imported)
	}

	second, err := tr.Import(ctx, []importer.RawContact{rawContact("Jane", "Doe"), rawContact("New", "Person")}, nil, nil)
	if err != nil {
		t.Fatalf("second Import failed: %v", err)
	}
	if second.Imported != 1 {
		t.Errorf("second Imported = %d, want 1", second.Imported)
	}
	if second.Skipped != 1 {
		t.Errorf("second Skipped = %d, want 1", second.Skipped)
	}
}

func TestRescoreCreditsReactivation(t *testing.T) {
	now := date("2026-03-04")
	tr, db, cleanup := setupTracker(t, now)
	defer cleanup()
	ctx := context.Background()

	// Import with an old interaction so the contact starts cold.
	old := []importer.Batch{
		{
			Source: importer.SourceMessage,
			Records: []importer.Record{
				{FirstName: "Jane", LastName: "Doe", Date: date("2024-01-01")},
			},
		},
	}
	if _, err := tr.Import(ctx, []importer.RawContact{{FirstName: "Jane", LastName: "Doe"}}, old, nil); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	jane, err := db.GetContactByName(ctx, "jane_doe")
	if err != nil || jane == nil {
		t.Fatalf("GetContactByName failed: %v", err)
	}
	if jane.WarmthBucket != scoring.WarmthCold {
		t.Fatalf("warmth bucket = %s, want cold", jane.WarmthBucket)
	}

	// A fresh interaction pulls the contact back into the hot band.
	recent := date("2026-03-01")
	if err := db.CreateInteraction(ctx, &database.Interaction{
		ContactID:  jane.ID,
		Source:     string(importer.SourceMessage),
		Strength:   importer.SourceMessage.Strength(),
		OccurredAt: recent,
	}); err != nil {
		t.Fatalf("CreateInteraction failed: %v", err)
	}
	jane.LastInteractionAt = &recent
	if err := db.UpdateScores(ctx, jane); err != nil {
		t.Fatalf("UpdateScores failed: %v", err)
	}

	result, err := tr.Rescore(ctx, nil)
	if err != nil {
		t.Fatalf("Rescore failed: %v", err)
	}
	if result.Reactivated != 1 {
		t.Errorf("Reactivated = %d, want 1", result.Reactivated)
	}

	jane, err = db.GetContactByName(ctx, "jane_doe")
	if err != nil || jane == nil {
		t.Fatalf("reload failed: %v", err)
	}
	if jane.WarmthBucket != scoring.WarmthHot {
		t.Errorf("warmth bucket after rescore = %s, want hot", jane.WarmthBucket)
	}
	if jane.PreviousWarmthBucket == nil || *jane.PreviousWarmthBucket != scoring.WarmthCold {
		t.Error("previous warmth bucket should record the cold state")
	}
	if jane.ReactivatedAt == nil {
		t.Error("reactivation timestamp not recorded")
	}

	// A second sweep over the same state must not credit again.
	again, err := tr.Rescore(ctx, nil)
	if err != nil {
		t.Fatalf("second Rescore failed: %v", err)
	}
	if again.Reactivated != 0 {
		t.Errorf("second sweep Reactivated = %d, want 0", again.Reactivated)
	}

	count, err := tr.Reactivations(ctx)
	if err != nil {
		t.Fatalf("Reactivations failed: %v", err)
	}
	if count != 1 {
		t.Errorf("Reactivations = %d, want 1", count)
	}
}

func TestGeneratePlan(t *testing.T) {
	now := date("2026-03-04")
	tr, _, cleanup := setupTracker(t, now)
	defer cleanup()
	ctx := context.Background()

	contacts := []importer.RawContact{
		rawContact("Jane", "Doe"),
		rawContact("John", "Smith"),
		rawContact("Alice", "Jones"),
		rawContact("Bob", "Brown"),
	}
	if _, err := tr.Import(ctx, contacts, nil, nil); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	plan, err := tr.GeneratePlan(ctx, now)
	if err != nil {
		t.Fatalf("GeneratePlan failed: %v", err)
	}
	if got := planner.WeekStart(now); !plan.WeekStart.Equal(got) {
		t.Errorf("WeekStart = %v, want %v", plan.WeekStart, got)
	}
	if plan.TargetContacts != 3 {
		t.Errorf("TargetContacts = %d, want capacity 3", plan.TargetContacts)
	}
	if len(plan.Entries) != 3 {
		t.Fatalf("entries = %d, want 3", len(plan.Entries))
	}
	if plan.Status != database.PlanActive {
		t.Errorf("status = %s, want active", plan.Status)
	}
	for i, e := range plan.Entries {
		if e.Position != i {
			t.Errorf("entry %d position = %d", i, e.Position)
		}
		if e.SuggestedAction == "" {
			t.Errorf("entry %d has no suggested action", i)
		}
	}
}

func TestGeneratePlanReplacesSameWeek(t *testing.T) {
	now := date("2026-03-04")
	tr, db, cleanup := setupTracker(t, now)
	defer cleanup()
	ctx := context.Background()

	if _, err := tr.Import(ctx, []importer.RawContact{rawContact("Jane", "Doe")}, nil, nil); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	first, err := tr.GeneratePlan(ctx, now)
	if err != nil {
		t.Fatalf("first GeneratePlan failed: %v", err)
	}
	second, err := tr.GeneratePlan(ctx, now)
	if err != nil {
		t.Fatalf("second GeneratePlan failed: %v", err)
	}
	if first.ID == second.ID {
		t.Error("regenerating should replace the plan, not reuse it")
	}

	plans, err := db.ListPlans(ctx)
	if err != nil {
		t.Fatalf("ListPlans failed: %v", err)
	}
	if len(plans) != 1 {
		t.Errorf("stored plans = %d, want 1", len(plans))
	}
	// Replacing the current week is not a missed week.
	if plans[0].Status != database.PlanActive {
		t.Errorf("replaced plan status = %s, want active", plans[0].Status)
	}
}

func TestGeneratePlanRollsOverMissedWeek(t *testing.T) {
	now := date("2026-03-04")
	tr, db, cleanup := setupTracker(t, now)
	defer cleanup()
	ctx := context.Background()

	if _, err := tr.Import(ctx, []importer.RawContact{rawContact("Jane", "Doe"), rawContact("John", "Smith")}, nil, nil); err != nil {
		t.Fatalf("Import failed: %v", err)
	}

	lastWeek := now.AddDate(0, 0, -7)
	prior, err := tr.GeneratePlan(ctx, lastWeek)
	if err != nil {
		t.Fatalf("prior GeneratePlan failed: %v", err)
	}
	// Complete one entry; the other rolls forward.
	if err := db.CompleteEntry(ctx, prior.Entries[0].ID); err != nil {
		t.Fatalf("CompleteEntry failed: %v", err)
	}

	plan, err := tr.GeneratePlan(ctx, now)
	if err != nil {
		t.Fatalf("GeneratePlan failed: %v", err)
	}

	rolled := prior.Entries[1].ContactID
	if len(plan.Entries) == 0 || plan.Entries[0].ContactID != rolled {
		t.Errorf("rollover contact should rank first in the new plan")
	}
	if plan.Entries[0].SuggestedAction != planner.ActionRollover {
		t.Errorf("rollover action = %q", plan.Entries[0].SuggestedAction)
	}

	reloaded, err := db.GetPlanByWeekStart(ctx, planner.WeekStart(lastWeek))
	if err != nil {
		t.Fatalf("reload prior plan failed: %v", err)
	}
	if reloaded == nil {
		t.Fatal("prior plan disappeared")
	}
	if reloaded.Status != database.PlanMissed {
		t.Errorf("prior plan status = %s, want missed", reloaded.Status)
	}
}
