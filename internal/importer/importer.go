// Package importer turns LinkedIn data-export files into merged, deduplicated
// contact records ready for scoring. Parsing lives in the CSV readers; the
// merge and duplicate suppression are pure functions over parsed batches.
package importer

import "time"

// Source tags where an interaction came from.
type Source string

const (
	SourceConnection     Source = "connection"
	SourceInvitation     Source = "invitation"
	SourceEndorsement    Source = "endorsement"
	SourceMessage        Source = "message"
	SourceRecommendation Source = "recommendation"
)

// Strength returns the interaction weight: 1 for a light touch, 2 for medium,
// 3 for a strong signal.
func (s Source) Strength() int {
	switch s {
	case SourceMessage, SourceRecommendation:
		return 3
	case SourceEndorsement:
		return 2
	default:
		return 1
	}
}

// RawContact is a contact row as parsed from a connections export.
type RawContact struct {
	FirstName   string
	LastName    string
	Email       string
	Company     string
	Title       string
	Industry    string
	Location    string
	Skills      []string
	ConnectedOn *time.Time
}

// Record is one interaction row from an export file, keyed by name.
type Record struct {
	FirstName string
	LastName  string
	Date      time.Time
}

// Batch is a homogeneous set of interaction records from one export file.
type Batch struct {
	Source  Source
	Records []Record
}

// Interaction is a single resolved touchpoint with a contact.
type Interaction struct {
	Source   Source
	Date     time.Time
	Strength int
}
