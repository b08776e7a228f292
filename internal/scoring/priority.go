package scoring

import "math"

// ScorePriority blends relevance and warmth into one outreach priority score.
func ScorePriority(relevanceScore, warmthScore int) PriorityResult {
	blended := priorityRelevanceWeight*float64(relevanceScore) +
		priorityWarmthWeight*float64(warmthScore)
	score := int(math.Round(blended))
	return PriorityResult{Score: score, Bucket: PriorityBucketFor(score)}
}
