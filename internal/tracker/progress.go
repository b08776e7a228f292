package tracker

// ProgressPhase represents the current pipeline phase
type ProgressPhase string

const (
	PhaseMerging   ProgressPhase = "merging"
	PhaseScoring   ProgressPhase = "scoring"
	PhaseStoring   ProgressPhase = "storing"
	PhaseRescoring ProgressPhase = "rescoring"
	PhasePlanning  ProgressPhase = "planning"
)

// Progress represents the current pipeline progress
type Progress struct {
	Phase       ProgressPhase
	Current     int    // Current item being processed
	Total       int    // Total items in this phase
	Description string // Human-readable description
}

// ProgressCallback is called with progress updates during import and rescore
type ProgressCallback func(Progress)

// Percentage returns the completion percentage (0-100)
func (p Progress) Percentage() int {
	if p.Total == 0 {
		return 0
	}
	return (p.Current * 100) / p.Total
}
