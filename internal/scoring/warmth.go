package scoring

import "time"

// Warmth decay divisors. Empirical tuning values carried over from the
// original scoring model; do not re-derive.
const (
	hotDecayDivisor  = 4.5
	warmDecayDivisor = 7
	coldDecayDivisor = 30
)

// ScoreWarmth maps the most recent interaction date to a warmth score and
// bucket. A nil date means the contact has never been touched and scores 0.
// The bucket is decided by the day band, not re-derived from the score;
// each band's formula is floor-clamped so the score always lands in [0,100].
func ScoreWarmth(lastInteraction *time.Time, now time.Time) WarmthResult {
	if lastInteraction == nil {
		return WarmthResult{Score: 0, Bucket: WarmthCold}
	}

	days := int(now.Sub(*lastInteraction).Hours() / 24)
	if days < 0 {
		// Future-dated interactions clamp to today rather than erroring.
		days = 0
	}

	switch {
	case days <= HotMaxDays:
		score := 100 - int(float64(days)/hotDecayDivisor)
		if score < 80 {
			score = 80
		}
		return WarmthResult{Score: score, Bucket: WarmthHot}

	case days <= WarmMaxDays:
		score := 79 - (days-HotMaxDays)/warmDecayDivisor
		if score < 40 {
			score = 40
		}
		return WarmthResult{Score: score, Bucket: WarmthWarm}

	default:
		score := 39 - (days-WarmMaxDays)/coldDecayDivisor
		if score < 0 {
			score = 0
		}
		return WarmthResult{Score: score, Bucket: WarmthCold}
	}
}
