// Package tracker orchestrates the import, scoring, and planning pipelines:
// it reads consistent snapshots from the store, runs the pure engine packages
// over them, and writes results back. One contact's bad data never aborts a
// sweep; failures are collected per contact and reported.
package tracker

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/jmalhotra/rekindle/internal/badge"
	"github.com/jmalhotra/rekindle/internal/config"
	"github.com/jmalhotra/rekindle/internal/database"
	"github.com/jmalhotra/rekindle/internal/importer"
	"github.com/jmalhotra/rekindle/internal/planner"
	"github.com/jmalhotra/rekindle/internal/scoring"
)

// Tracker orchestrates the contact pipeline
type Tracker struct {
	db  *database.DB
	cfg *config.Config
	log *logrus.Logger
	now func() time.Time
}

// New creates a new Tracker
func New(db *database.DB, cfg *config.Config, log *logrus.Logger) *Tracker {
	if log == nil {
		log = logrus.New()
	}
	return &Tracker{
		db:  db,
		cfg: cfg,
		log: log,
		now: time.Now,
	}
}

// ImportResult contains the results of an import run
type ImportResult struct {
	Merged       int
	Imported     int
	Skipped      int
	Interactions int
	Errors       []error
}

// Import merges interaction batches into the parsed contacts, drops
// duplicates of already-stored contacts, scores each admitted contact, and
// persists it with its interaction history.
func (t *Tracker) Import(ctx context.Context, contacts []importer.RawContact, batches []importer.Batch, progress ProgressCallback) (*ImportResult, error) {
	report := func(phase ProgressPhase, current, total int, desc string) {
		if progress != nil {
			progress(Progress{Phase: phase, Current: current, Total: total, Description: desc})
		}
	}

	result := &ImportResult{}

	// Consistent snapshot of existing contacts before deduplication; nothing
	// else may write this user's collection until the import finishes.
	existing, err := t.db.ListContacts(ctx, database.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list existing contacts: %w", err)
	}
	index := importer.NewExistingIndex()
	for _, c := range existing {
		index.Add(c.NormalizedName, deref(c.Email))
	}

	report(PhaseMerging, 0, len(contacts), "Merging interaction history")
	merged := importer.Merge(contacts, batches)
	kept, skipped := importer.FilterNew(merged, index)
	result.Merged = len(merged)
	result.Skipped = skipped

	goals := t.cfg.Goals.GoalProfile()
	weights := t.cfg.RelevanceWeights()
	now := t.now()

	for i, m := range kept {
		report(PhaseStoring, i+1, len(kept), "Scoring and storing contacts")

		if err := t.importContact(ctx, m, goals, weights, now); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("contact %s: %w", m.Key, err))
			t.log.WithFields(logrus.Fields{
				"contact": m.Key,
				"error":   err,
			}).Warn("skipping contact")
			continue
		}
		result.Imported++
		result.Interactions += len(m.Interactions)
	}

	state, err := t.db.GetAppState(ctx)
	if err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("failed to read app state: %w", err))
		return result, nil
	}
	state.LastImportAt = &now
	state.ContactsImported += result.Imported
	if err := t.db.UpdateAppState(ctx, state); err != nil {
		result.Errors = append(result.Errors, fmt.Errorf("failed to update app state: %w", err))
	}

	t.log.WithFields(logrus.Fields{
		"imported": result.Imported,
		"skipped":  result.Skipped,
		"errors":   len(result.Errors),
	}).Info("import finished")

	return result, nil
}

// importContact scores one merged contact at creation time and stores it with
// its interactions.
func (t *Tracker) importContact(ctx context.Context, m importer.Merged, goals *scoring.GoalProfile, weights *scoring.Weights, now time.Time) error {
	warmth := scoring.ScoreWarmth(m.LastInteractionAt, now)

	contact := &database.Contact{
		FirstName:         m.Contact.FirstName,
		LastName:          m.Contact.LastName,
		NormalizedName:    m.Key,
		Email:             optional(m.Contact.Email),
		Company:           optional(m.Contact.Company),
		Title:             optional(m.Contact.Title),
		Industry:          optional(m.Contact.Industry),
		Location:          optional(m.Contact.Location),
		Skills:            m.Contact.Skills,
		ConnectedOn:       m.Contact.ConnectedOn,
		LastInteractionAt: m.LastInteractionAt,
		InteractionCount:  len(m.Interactions),
		WarmthScore:       warmth.Score,
		WarmthBucket:      warmth.Bucket,
	}

	relevance := scoring.ScoreRelevance(contact.Profile(), goals, weights)
	priority := scoring.ScorePriority(relevance.Score, warmth.Score)
	contact.RelevanceScore = relevance.Score
	contact.RelevanceBucket = relevance.Bucket
	contact.PriorityScore = priority.Score
	contact.PriorityBucket = priority.Bucket

	if err := t.db.CreateContact(ctx, contact); err != nil {
		return err
	}

	for _, in := range m.Interactions {
		err := t.db.CreateInteraction(ctx, &database.Interaction{
			ContactID:  contact.ID,
			Source:     string(in.Source),
			Strength:   in.Strength,
			OccurredAt: in.Date,
		})
		if err != nil {
			return err
		}
	}

	return nil
}

// RescoreResult contains the results of a rescore sweep
type RescoreResult struct {
	Total       int
	Updated     int
	Reactivated int
	Errors      []error
}

// Rescore recomputes every contact's warmth, relevance, and priority, folding
// warmth transitions into the badge history. Reactivations are credited only
// at or after the badge epoch, and at most once per contact.
func (t *Tracker) Rescore(ctx context.Context, progress ProgressCallback) (*RescoreResult, error) {
	state, err := t.db.GetAppState(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to read app state: %w", err)
	}
	epoch := state.BadgeEpochAt

	contacts, err := t.db.ListContacts(ctx, database.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	goals := t.cfg.Goals.GoalProfile()
	weights := t.cfg.RelevanceWeights()
	now := t.now()

	result := &RescoreResult{Total: len(contacts)}
	for i := range contacts {
		c := &contacts[i]
		if progress != nil {
			progress(Progress{Phase: PhaseRescoring, Current: i + 1, Total: len(contacts), Description: "Recomputing scores"})
		}

		if err := t.rescoreContact(ctx, c, goals, weights, epoch, now, result); err != nil {
			result.Errors = append(result.Errors, fmt.Errorf("contact %s: %w", c.FullName(), err))
			t.log.WithFields(logrus.Fields{
				"contact": c.FullName(),
				"error":   err,
			}).Warn("rescore failed for contact")
			continue
		}
		result.Updated++
	}

	t.log.WithFields(logrus.Fields{
		"total":       result.Total,
		"updated":     result.Updated,
		"reactivated": result.Reactivated,
	}).Info("rescore finished")

	return result, nil
}

// rescoreContact recomputes one contact and persists the new scores.
func (t *Tracker) rescoreContact(ctx context.Context, c *database.Contact, goals *scoring.GoalProfile, weights *scoring.Weights, epoch time.Time, now time.Time, result *RescoreResult) error {
	warmth := scoring.ScoreWarmth(c.LastInteractionAt, now)

	stored := c.WarmthBucket
	update := badge.TrackChange(badge.State{
		Bucket:         &stored,
		PreviousBucket: c.PreviousWarmthBucket,
		ReactivatedAt:  c.ReactivatedAt,
	}, warmth, &epoch, now)

	relevance := scoring.ScoreRelevance(c.Profile(), goals, weights)
	priority := scoring.ScorePriority(relevance.Score, warmth.Score)

	c.WarmthScore = update.Score
	c.WarmthBucket = update.Bucket
	c.PreviousWarmthBucket = update.PreviousBucket
	c.RelevanceScore = relevance.Score
	c.RelevanceBucket = relevance.Bucket
	c.PriorityScore = priority.Score
	c.PriorityBucket = priority.Bucket

	if err := t.db.UpdateScores(ctx, c); err != nil {
		return err
	}

	if update.Reactivated {
		if err := t.db.MarkReactivated(ctx, c.ID, now); err != nil {
			return err
		}
		if c.ReactivatedAt == nil {
			result.Reactivated++
		}
	}

	return nil
}

// GeneratePlan builds and persists the plan for the week containing weekStart,
// replacing any existing plan for that week and closing prior still-active
// plans as missed once their incomplete contacts roll forward.
func (t *Tracker) GeneratePlan(ctx context.Context, weekStart time.Time) (*database.Plan, error) {
	now := t.now()
	week := planner.WeekStart(weekStart)

	contacts, err := t.db.ListContacts(ctx, database.ListOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	candidates := make([]planner.Candidate, 0, len(contacts))
	for _, c := range contacts {
		candidates = append(candidates, planner.Candidate{
			ContactID:         c.ID,
			WarmthBucket:      c.WarmthBucket,
			RelevanceBucket:   c.RelevanceBucket,
			LastInteractionAt: c.LastInteractionAt,
		})
	}

	// Consistent snapshot of prior plans before rollover; see the package
	// comment for the single-writer requirement.
	stored, err := t.db.ListPlans(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list plans: %w", err)
	}
	priors := make([]planner.PriorPlan, 0, len(stored))
	for _, p := range stored {
		prior := planner.PriorPlan{
			ID:        p.ID,
			WeekStart: planner.WeekStart(p.WeekStart),
			Active:    p.Status == database.PlanActive,
		}
		for _, e := range p.Entries {
			prior.Entries = append(prior.Entries, planner.PriorEntry{ContactID: e.ContactID, Completed: e.Completed})
		}
		priors = append(priors, prior)
	}

	capacity := t.cfg.Goals.WeeklyCapacity
	selected := planner.Select(candidates, priors, capacity, week, now)

	for _, id := range selected.MissedPlanIDs {
		if err := t.db.SetPlanStatus(ctx, id, database.PlanMissed); err != nil {
			return nil, fmt.Errorf("failed to close missed plan: %w", err)
		}
	}

	// Replace semantics: a regenerated week discards its old plan entirely.
	if existing, err := t.db.GetPlanByWeekStart(ctx, selected.Plan.WeekStart); err != nil {
		return nil, fmt.Errorf("failed to check existing plan: %w", err)
	} else if existing != nil {
		if err := t.db.DeletePlan(ctx, existing.ID); err != nil {
			return nil, fmt.Errorf("failed to replace existing plan: %w", err)
		}
		t.log.WithField("week", selected.Plan.WeekStart.Format("2006-01-02")).Info("replacing existing plan")
	}

	plan := &database.Plan{
		WeekStart:      selected.Plan.WeekStart,
		TargetContacts: selected.Plan.TargetContacts,
		Status:         database.PlanActive,
	}
	for _, e := range selected.Plan.Entries {
		plan.Entries = append(plan.Entries, database.PlanEntry{
			ContactID:       e.ContactID,
			SuggestedAction: e.SuggestedAction,
		})
	}

	if err := t.db.CreatePlan(ctx, plan); err != nil {
		return nil, fmt.Errorf("failed to create plan: %w", err)
	}

	return t.db.GetPlanByWeekStart(ctx, plan.WeekStart)
}

// Reactivations returns the badge-progress reactivation count.
func (t *Tracker) Reactivations(ctx context.Context) (int, error) {
	state, err := t.db.GetAppState(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to read app state: %w", err)
	}
	return t.db.CountReactivated(ctx, state.BadgeEpochAt)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
