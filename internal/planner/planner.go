// Package planner selects which contacts to reach out to in a given week.
// Selection uses its own composite heuristic rather than the stored priority
// score, so that rollover contacts and cold high-value contacts can jump the
// queue; the stored priority only orders the general contact list.
package planner

import (
	"sort"
	"time"

	"github.com/jmalhotra/rekindle/internal/scoring"
)

// Suggested actions attached to plan entries.
const (
	ActionRollover  = "Rollover: follow up from last week"
	ActionReconnect = "Send reconnection message"
	ActionCheckIn   = "Check in and share value"
)

// Composite selection scoring. Rollover dominates everything so incomplete
// contacts from prior weeks are always picked first while capacity allows.
const (
	rolloverBoost = 1000

	relevanceHighBonus   = 100
	relevanceMediumBonus = 50

	coldHighValueBonus = 50
	warmBonus          = 30
	hotBonus           = 10

	recentContactPenalty   = -50 // touched within 30 days
	moderateContactPenalty = -20 // touched within 30-60 days
	untouchedBonus         = 20  // older than 60 days, or never
)

// Candidate is the slice of a contact the selector needs.
type Candidate struct {
	ContactID         string
	WarmthBucket      scoring.WarmthBucket
	RelevanceBucket   scoring.RelevanceBucket
	LastInteractionAt *time.Time
}

// PriorEntry is a planned contact from an earlier plan.
type PriorEntry struct {
	ContactID string
	Completed bool
}

// PriorPlan is the slice of a stored plan the selector needs for rollover.
type PriorPlan struct {
	ID        string
	WeekStart time.Time
	Active    bool
	Entries   []PriorEntry
}

// Entry is one planned contact in the output plan.
type Entry struct {
	ContactID       string `json:"contact_id"`
	SuggestedAction string `json:"suggested_action"`
	Completed       bool   `json:"completed"`
}

// Plan is one week's selection, ordered by descending composite score.
type Plan struct {
	WeekStart      time.Time `json:"week_start"`
	TargetContacts int       `json:"target_contacts"`
	Entries        []Entry   `json:"entries"`
}

// Result carries the new plan plus the prior plans that must be closed as
// missed because their incomplete contacts rolled forward.
type Result struct {
	Plan          Plan
	MissedPlanIDs []string
}

// WeekStart normalizes a timestamp to the Monday of its ISO week, at midnight
// in the timestamp's location.
func WeekStart(t time.Time) time.Time {
	day := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	wd := int(day.Weekday())
	if wd == 0 {
		wd = 7 // Sunday belongs to the week that started six days earlier
	}
	return day.AddDate(0, 0, -(wd - 1))
}

// Select builds the weekly plan. Prior still-active plans for other weeks
// contribute their incomplete contacts to a rollover set and are closed as
// missed; a prior plan for the same weekStart is the one being replaced and
// never rolls over into its own replacement. The sort is stable: equal
// composite scores keep their input order.
func Select(contacts []Candidate, priorPlans []PriorPlan, capacity int, weekStart time.Time, now time.Time) Result {
	weekStart = WeekStart(weekStart)

	rollover := make(map[string]bool)
	var missed []string
	for _, p := range priorPlans {
		if !p.Active || p.WeekStart.Equal(weekStart) {
			continue
		}
		for _, e := range p.Entries {
			if !e.Completed {
				rollover[e.ContactID] = true
			}
		}
		missed = append(missed, p.ID)
	}

	plan := Plan{
		WeekStart:      weekStart,
		TargetContacts: capacity,
	}
	if capacity <= 0 || len(contacts) == 0 {
		return Result{Plan: plan, MissedPlanIDs: missed}
	}

	type scored struct {
		Candidate
		score int
	}
	ranked := make([]scored, 0, len(contacts))
	for _, c := range contacts {
		ranked = append(ranked, scored{Candidate: c, score: selectionScore(c, rollover[c.ContactID], now)})
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].score > ranked[j].score
	})

	if len(ranked) > capacity {
		ranked = ranked[:capacity]
	}

	for _, r := range ranked {
		plan.Entries = append(plan.Entries, Entry{
			ContactID:       r.ContactID,
			SuggestedAction: suggestedAction(r.Candidate, rollover[r.ContactID]),
		})
	}

	return Result{Plan: plan, MissedPlanIDs: missed}
}

// selectionScore is the per-contact composite used only at selection time.
func selectionScore(c Candidate, rolledOver bool, now time.Time) int {
	score := 0

	if rolledOver {
		score += rolloverBoost
	}

	switch c.RelevanceBucket {
	case scoring.RelevanceHigh:
		score += relevanceHighBonus
	case scoring.RelevanceMedium:
		score += relevanceMediumBonus
	}

	switch {
	case c.WarmthBucket == scoring.WarmthCold && c.RelevanceBucket == scoring.RelevanceHigh:
		// Re-engage high-value contacts that went cold.
		score += coldHighValueBonus
	case c.WarmthBucket == scoring.WarmthWarm:
		score += warmBonus
	case c.WarmthBucket == scoring.WarmthHot:
		score += hotBonus
	}

	switch days := daysSince(c.LastInteractionAt, now); {
	case days >= 0 && days < 30:
		score += recentContactPenalty
	case days >= 30 && days <= 60:
		score += moderateContactPenalty
	default:
		score += untouchedBonus
	}

	return score
}

// daysSince returns whole days since t, or -1 when t is nil.
func daysSince(t *time.Time, now time.Time) int {
	if t == nil {
		return -1
	}
	days := int(now.Sub(*t).Hours() / 24)
	if days < 0 {
		days = 0
	}
	return days
}

// suggestedAction picks the entry text: rollover first, then a reconnection
// nudge for cold contacts, then the default check-in.
func suggestedAction(c Candidate, rolledOver bool) string {
	switch {
	case rolledOver:
		return ActionRollover
	case c.WarmthBucket == scoring.WarmthCold:
		return ActionReconnect
	default:
		return ActionCheckIn
	}
}
