// Package scoring contains the pure contact scoring engine: warmth decay,
// career-goal relevance, and the blended outreach priority. All functions are
// deterministic and side-effect free; callers supply every input, including
// the current time.
package scoring

// WarmthBucket classifies how recently a contact was touched.
type WarmthBucket string

const (
	WarmthHot  WarmthBucket = "hot"
	WarmthWarm WarmthBucket = "warm"
	WarmthCold WarmthBucket = "cold"
)

// RelevanceBucket classifies how well a contact fits the user's career goals.
type RelevanceBucket string

const (
	RelevanceHigh   RelevanceBucket = "high"
	RelevanceMedium RelevanceBucket = "medium"
	RelevanceLow    RelevanceBucket = "low"
)

// PriorityBucket is the letter grade derived from the blended priority score.
type PriorityBucket string

const (
	PriorityA PriorityBucket = "A"
	PriorityB PriorityBucket = "B"
	PriorityC PriorityBucket = "C"
)

// Bucket thresholds. These are the single source of truth for classifying a
// score; nothing else in the repository restates them.
const (
	// Warmth day bands.
	HotMaxDays  = 90  // last touch within 90 days is hot
	WarmMaxDays = 365 // within a year is warm, beyond is cold

	// Relevance score thresholds.
	RelevanceHighMin   = 80
	RelevanceMediumMin = 40

	// Priority score thresholds.
	PriorityAMin = 70
	PriorityBMin = 40
)

// Priority blend: relevance counts for 70%, warmth for 30%.
const (
	priorityRelevanceWeight = 0.7
	priorityWarmthWeight    = 0.3
)

// WarmthResult is a warmth score with its bucket.
type WarmthResult struct {
	Score  int          `json:"score"`
	Bucket WarmthBucket `json:"bucket"`
}

// RelevanceResult is a relevance score with its bucket.
type RelevanceResult struct {
	Score  int             `json:"score"`
	Bucket RelevanceBucket `json:"bucket"`
}

// PriorityResult is a blended priority score with its letter bucket.
type PriorityResult struct {
	Score  int            `json:"score"`
	Bucket PriorityBucket `json:"bucket"`
}

// RelevanceBucketFor classifies a relevance score.
func RelevanceBucketFor(score int) RelevanceBucket {
	switch {
	case score >= RelevanceHighMin:
		return RelevanceHigh
	case score >= RelevanceMediumMin:
		return RelevanceMedium
	default:
		return RelevanceLow
	}
}

// PriorityBucketFor classifies a priority score.
func PriorityBucketFor(score int) PriorityBucket {
	switch {
	case score >= PriorityAMin:
		return PriorityA
	case score >= PriorityBMin:
		return PriorityB
	default:
		return PriorityC
	}
}
