package importer

import "strings"

// ExistingIndex is a snapshot of the contacts already in the store, used to
// suppress duplicate imports. Callers must build it from a consistent read of
// the collection before merging (no concurrent writes in between).
type ExistingIndex struct {
	names  map[string]bool
	emails map[string]bool
}

// NewExistingIndex creates an empty index.
func NewExistingIndex() *ExistingIndex {
	return &ExistingIndex{
		names:  make(map[string]bool),
		emails: make(map[string]bool),
	}
}

// Add registers an existing contact's normalized name and email.
func (x *ExistingIndex) Add(normalizedName, email string) {
	if normalizedName != "" {
		x.names[normalizedName] = true
	}
	if email != "" {
		x.emails[strings.ToLower(email)] = true
	}
}

// Has reports whether a contact with this name or email already exists.
// Email comparison is case-insensitive.
func (x *ExistingIndex) Has(normalizedName, email string) bool {
	if x.names[normalizedName] {
		return true
	}
	return email != "" && x.emails[strings.ToLower(email)]
}

// FilterNew drops merged contacts that already exist in the index and returns
// the admitted contacts plus the number skipped. Admitted contacts are added
// to the index as they pass, so duplicates within one import batch are also
// suppressed.
func FilterNew(merged []Merged, existing *ExistingIndex) ([]Merged, int) {
	if existing == nil {
		existing = NewExistingIndex()
	}

	kept := make([]Merged, 0, len(merged))
	skipped := 0
	for _, m := range merged {
		if existing.Has(m.Key, m.Contact.Email) {
			skipped++
			continue
		}
		existing.Add(m.Key, m.Contact.Email)
		kept = append(kept, m)
	}
	return kept, skipped
}
