package importer

import (
	"strings"
	"time"
)

// Merged is one contact with every interaction matched to it and the rolled-up
// last interaction date.
type Merged struct {
	Contact           RawContact
	Key               string
	Interactions      []Interaction
	LastInteractionAt *time.Time
}

// NormalizeName builds the lower-cased firstname_lastname matching key.
// Two real people sharing a normalized name collide: the first-seen contact
// for a key absorbs every later interaction matched to that key.
func NormalizeName(first, last string) string {
	return strings.ToLower(strings.TrimSpace(first)) + "_" + strings.ToLower(strings.TrimSpace(last))
}

// Merge folds interaction batches into per-contact interaction lists. Each
// contact starts with its connected-on date as a baseline connection touch;
// records that match no contact are dropped. The last interaction date is the
// max across all of a contact's interactions.
func Merge(contacts []RawContact, batches []Batch) []Merged {
	index := make(map[string]int, len(contacts))
	merged := make([]Merged, 0, len(contacts))

	for _, c := range contacts {
		key := NormalizeName(c.FirstName, c.LastName)
		if _, seen := index[key]; seen {
			// First-seen wins on key collisions.
			continue
		}

		m := Merged{Contact: c, Key: key}
		if c.ConnectedOn != nil {
			m.Interactions = append(m.Interactions, Interaction{
				Source:   SourceConnection,
				Date:     *c.ConnectedOn,
				Strength: SourceConnection.Strength(),
			})
		}
		index[key] = len(merged)
		merged = append(merged, m)
	}

	for _, b := range batches {
		for _, r := range b.Records {
			i, ok := index[NormalizeName(r.FirstName, r.LastName)]
			if !ok {
				continue
			}
			merged[i].Interactions = append(merged[i].Interactions, Interaction{
				Source:   b.Source,
				Date:     r.Date,
				Strength: b.Source.Strength(),
			})
		}
	}

	for i := range merged {
		merged[i].LastInteractionAt = latest(merged[i].Interactions)
	}

	return merged
}

// latest returns the max interaction date, or nil when there are none.
func latest(interactions []Interaction) *time.Time {
	var max *time.Time
	for i := range interactions {
		d := interactions[i].Date
		if max == nil || d.After(*max) {
			max = &interactions[i].Date
		}
	}
	return max
}
