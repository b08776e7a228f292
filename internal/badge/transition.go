// Package badge tracks warmth bucket transitions for gamification. A
// "reactivation" is a contact recovering from cold to warm or hot after the
// badge epoch started; reactivations are counted per contact, never per event.
package badge

import (
	"time"

	"github.com/jmalhotra/rekindle/internal/scoring"
)

// State is a contact's stored warmth history as the tracker sees it.
type State struct {
	Bucket         *scoring.WarmthBucket // nil for a brand-new contact
	PreviousBucket *scoring.WarmthBucket
	ReactivatedAt  *time.Time // set once, the first time the contact reactivates
}

// Update is the result of folding a fresh warmth result into a contact's
// stored history. The caller persists the new bucket/score pair and, when
// Reactivated is set, records the reactivation timestamp.
type Update struct {
	Bucket         scoring.WarmthBucket
	PreviousBucket *scoring.WarmthBucket
	Score          int
	Reactivated    bool
}

// TrackChange shifts the stored bucket into the previous-bucket slot and
// detects a qualifying reactivation: the prior bucket was cold, the new one is
// not, and the recompute happens at or after the epoch start. A contact with
// no prior bucket never reactivates (there is no cold state to recover from),
// and a nil epoch never credits anything.
func TrackChange(prev State, result scoring.WarmthResult, epochStart *time.Time, now time.Time) Update {
	u := Update{
		Bucket:         result.Bucket,
		PreviousBucket: prev.Bucket,
		Score:          result.Score,
	}

	if prev.Bucket == nil || epochStart == nil {
		return u
	}
	if now.Before(*epochStart) {
		return u
	}
	if *prev.Bucket == scoring.WarmthCold && result.Bucket != scoring.WarmthCold {
		u.Reactivated = true
	}

	return u
}

// CountReactivations counts contacts whose stored history carries a
// reactivation at or after the epoch start. Repeated calls over the same
// states return the same count; a contact contributes at most once.
func CountReactivations(states []State, epochStart *time.Time) int {
	if epochStart == nil {
		return 0
	}

	count := 0
	for _, s := range states {
		if s.ReactivatedAt == nil {
			continue
		}
		if s.ReactivatedAt.Before(*epochStart) {
			continue
		}
		count++
	}
	return count
}

// Milestone reactivation counts for badge tiers shown in the CLI.
var Milestones = []int{1, 5, 10, 25}

// NextMilestone returns the smallest milestone above the current count, or 0
// when every tier is already reached.
func NextMilestone(count int) int {
	for _, m := range Milestones {
		if count < m {
			return m
		}
	}
	return 0
}

// Summary is the badge progress shown to the user.
type Summary struct {
	Reactivations int   `json:"reactivations"`
	NextMilestone int   `json:"next_milestone,omitempty"`
	Earned        []int `json:"earned,omitempty"`
}

// Summarize builds a Summary for a reactivation count.
func Summarize(count int) Summary {
	s := Summary{
		Reactivations: count,
		NextMilestone: NextMilestone(count),
	}
	for _, m := range Milestones {
		if count >= m {
			s.Earned = append(s.Earned, m)
		}
	}
	return s
}
