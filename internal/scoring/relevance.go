package scoring

import (
	"math"
	"strings"
)

// Profile is the slice of a contact that relevance scoring looks at.
// Missing fields simply fail to match; they never error.
type Profile struct {
	Industry      string
	Title         string
	Headline      string
	Company       string
	PastCompanies []string
	Location      string
	Skills        []string
}

// GoalProfile is the user's career targeting criteria.
type GoalProfile struct {
	TargetIndustries   []string
	DreamRoles         []string
	PreferredLocations []string
	WishlistCompanies  []string
	TargetSkills       []string
	WeeklyCapacity     int
}

// Weights is the per-factor weighting for relevance scoring. A factor with
// weight 0 is excluded from both the accumulator and the denominator.
type Weights struct {
	Industry float64 `toml:"industry" json:"industry"`
	Role     float64 `toml:"role" json:"role"`
	Location float64 `toml:"location" json:"location"`
	Company  float64 `toml:"company" json:"company"`
	Skills   float64 `toml:"skills" json:"skills"`
}

// DefaultWeights is the standard factor weighting used whenever the user has
// not configured an override.
func DefaultWeights() Weights {
	return Weights{
		Industry: 30,
		Role:     25,
		Location: 15,
		Company:  15,
		Skills:   15,
	}
}

// Fallback keywords for industry matching when the contact's industry field
// does not line up with a target industry directly.
var industryKeywords = []string{"health", "tech", "finance"}

// ScoreRelevance scores how well a contact fits the user's career goals.
// A nil goal profile yields the neutral {50, medium} default. A nil weights
// pointer uses DefaultWeights.
func ScoreRelevance(p Profile, goals *GoalProfile, weights *Weights) RelevanceResult {
	if goals == nil {
		return RelevanceResult{Score: 50, Bucket: RelevanceMedium}
	}

	w := DefaultWeights()
	if weights != nil {
		w = *weights
	}

	// Composite text used by the industry keyword fallback.
	composite := strings.ToLower(p.Title + " " + p.Company + " " + p.Headline)
	titleText := p.Title
	if titleText == "" {
		titleText = p.Headline
	}

	var earned, possible float64

	if w.Industry > 0 {
		possible += w.Industry
		if matchIndustry(p.Industry, composite, goals.TargetIndustries) {
			earned += w.Industry
		}
	}

	if w.Role > 0 {
		possible += w.Role
		if matchAny(titleText, goals.DreamRoles) {
			earned += w.Role
		}
	}

	if w.Location > 0 {
		possible += w.Location
		if matchAny(p.Location, goals.PreferredLocations) {
			earned += w.Location
		}
	}

	if w.Company > 0 {
		possible += w.Company
		if matchCompany(p.Company, p.PastCompanies, goals.WishlistCompanies) {
			earned += w.Company
		}
	}

	if w.Skills > 0 {
		possible += w.Skills
		switch n := countSkillMatches(p.Skills, goals.TargetSkills); {
		case n >= 2:
			earned += w.Skills
		case n == 1:
			earned += w.Skills / 2
		}
	}

	if possible <= 0 {
		return RelevanceResult{Score: 0, Bucket: RelevanceBucketFor(0)}
	}

	score := int(math.Round(100 * earned / possible))
	return RelevanceResult{Score: score, Bucket: RelevanceBucketFor(score)}
}

// containsEither reports whether either string case-insensitively contains
// the other, so "tech" matches "technology" and vice versa. Permissive on
// purpose; it admits false positives.
func containsEither(a, b string) bool {
	if a == "" || b == "" {
		return false
	}
	la, lb := strings.ToLower(a), strings.ToLower(b)
	return strings.Contains(la, lb) || strings.Contains(lb, la)
}

// matchAny reports whether value fuzzily matches any candidate.
func matchAny(value string, candidates []string) bool {
	for _, c := range candidates {
		if containsEither(value, c) {
			return true
		}
	}
	return false
}

// matchIndustry tries a direct industry match first, then falls back to
// scanning the contact's composite title/company/headline text for domain
// keywords and for the target industry itself.
func matchIndustry(industry, composite string, targets []string) bool {
	for _, t := range targets {
		if containsEither(industry, t) {
			return true
		}
	}

	for _, t := range targets {
		lt := strings.ToLower(t)
		for _, kw := range industryKeywords {
			if strings.Contains(lt, kw) && strings.Contains(composite, kw) {
				return true
			}
		}
		if lt != "" && strings.Contains(composite, lt) {
			return true
		}
	}

	return false
}

// matchCompany checks the current employer first and only consults past
// employers when the current one does not match.
func matchCompany(current string, past []string, wishlist []string) bool {
	if matchAny(current, wishlist) {
		return true
	}
	for _, p := range past {
		if matchAny(p, wishlist) {
			return true
		}
	}
	return false
}

// countSkillMatches counts contact skills that fuzzily match at least one
// target skill.
func countSkillMatches(skills, targets []string) int {
	count := 0
	for _, s := range skills {
		if matchAny(s, targets) {
			count++
		}
	}
	return count
}
