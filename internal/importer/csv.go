package importer

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// Date layouts seen across LinkedIn export files.
var dateLayouts = []string{
	"02 Jan 2006",
	"2006-01-02 15:04:05 UTC",
	"2006/01/02 15:04:05 UTC",
	"1/2/06, 3:04 PM",
	"2006-01-02",
}

// parseExportDate tries each known layout in order.
func parseExportDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unrecognized date: %q", s)
}

// ReadConnections parses a LinkedIn Connections.csv export. The file may
// carry free-text preamble lines before the header row; everything up to the
// "First Name" header is skipped. Rows with unparseable dates keep the
// contact but drop the connected-on date.
func ReadConnections(r io.Reader) ([]RawContact, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := skipToHeader(cr, "First Name")
	if err != nil {
		return nil, err
	}
	col := columnIndex(header)

	var contacts []RawContact
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read connections row: %w", err)
		}

		c := RawContact{
			FirstName: field(row, col, "First Name"),
			LastName:  field(row, col, "Last Name"),
			Email:     field(row, col, "Email Address"),
			Company:   field(row, col, "Company"),
			Title:     field(row, col, "Position"),
		}
		if c.FirstName == "" && c.LastName == "" {
			continue
		}

		if raw := field(row, col, "Connected On"); raw != "" {
			if d, err := parseExportDate(raw); err == nil {
				c.ConnectedOn = &d
			}
		}

		contacts = append(contacts, c)
	}

	return contacts, nil
}

// ReadNamedDates parses an export file whose rows carry a name and a date,
// and returns them as one interaction batch. nameFields lists the columns
// holding the name: a single column is split as a full name, two columns are
// first and last name.
func ReadNamedDates(r io.Reader, source Source, nameFields []string, dateField string) (Batch, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1

	header, err := skipToHeader(cr, nameFields[0])
	if err != nil {
		return Batch{}, err
	}
	col := columnIndex(header)

	batch := Batch{Source: source}
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Batch{}, fmt.Errorf("failed to read %s row: %w", source, err)
		}

		var first, last string
		if len(nameFields) == 1 {
			first, last = SplitFullName(field(row, col, nameFields[0]))
		} else {
			first = field(row, col, nameFields[0])
			last = field(row, col, nameFields[1])
		}
		if first == "" && last == "" {
			continue
		}

		date, err := parseExportDate(field(row, col, dateField))
		if err != nil {
			continue // undated rows cannot feed warmth scoring
		}

		batch.Records = append(batch.Records, Record{FirstName: first, LastName: last, Date: date})
	}

	return batch, nil
}

// ReadInvitations parses Invitations.csv (full name in "From" or "To").
func ReadInvitations(r io.Reader) (Batch, error) {
	return ReadNamedDates(r, SourceInvitation, []string{"From"}, "Sent At")
}

// ReadEndorsements parses an endorsements export.
func ReadEndorsements(r io.Reader) (Batch, error) {
	return ReadNamedDates(r, SourceEndorsement, []string{"Endorser First Name", "Endorser Last Name"}, "Endorsement Date")
}

// ReadRecommendations parses a recommendations export.
func ReadRecommendations(r io.Reader) (Batch, error) {
	return ReadNamedDates(r, SourceRecommendation, []string{"First Name", "Last Name"}, "Creation Date")
}

// ReadMessages parses messages.csv (full sender name in "FROM").
func ReadMessages(r io.Reader) (Batch, error) {
	return ReadNamedDates(r, SourceMessage, []string{"FROM"}, "DATE")
}

// SplitFullName splits "Jane van Dyk" into first name "Jane" and last name
// "van Dyk".
func SplitFullName(full string) (first, last string) {
	parts := strings.Fields(full)
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], strings.Join(parts[1:], " ")
	}
}

// skipToHeader reads rows until it finds the one whose first cell matches
// firstColumn, tolerating the notes preamble LinkedIn prepends to exports.
func skipToHeader(cr *csv.Reader, firstColumn string) ([]string, error) {
	for {
		row, err := cr.Read()
		if err == io.EOF {
			return nil, fmt.Errorf("header row %q not found", firstColumn)
		}
		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			// Preamble lines are not always valid CSV; skip them.
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read header: %w", err)
		}
		if len(row) > 0 && strings.EqualFold(strings.TrimSpace(row[0]), firstColumn) {
			return row, nil
		}
	}
}

// columnIndex maps header names to positions.
func columnIndex(header []string) map[string]int {
	col := make(map[string]int, len(header))
	for i, h := range header {
		col[strings.TrimSpace(h)] = i
	}
	return col
}

// field safely reads a named column from a row.
func field(row []string, col map[string]int, name string) string {
	i, ok := col[name]
	if !ok || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}
