package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmalhotra/rekindle/internal/scoring"
)

const contactColumns = `
	id, first_name, last_name, normalized_name, email, company, title,
	headline, industry, location, skills, past_companies,
	connected_on, last_interaction_at, interaction_count,
	warmth_score, warmth_bucket, previous_warmth_bucket, reactivated_at,
	relevance_score, relevance_bucket, priority_score, priority_bucket,
	created_at, updated_at`

// CreateContact inserts a new contact
func (db *DB) CreateContact(ctx context.Context, c *Contact) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	c.CreatedAt = time.Now()
	c.UpdatedAt = time.Now()

	var prevBucket *string
	if c.PreviousWarmthBucket != nil {
		s := string(*c.PreviousWarmthBucket)
		prevBucket = &s
	}

	_, err := db.ExecContext(ctx, `
		INSERT INTO contacts (
			id, first_name, last_name, normalized_name, email, company, title,
			headline, industry, location, skills, past_companies,
			connected_on, last_interaction_at, interaction_count,
			warmth_score, warmth_bucket, previous_warmth_bucket, reactivated_at,
			relevance_score, relevance_bucket, priority_score, priority_bucket,
			created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`,
		c.ID, c.FirstName, c.LastName, c.NormalizedName, NullString(c.Email),
		NullString(c.Company), NullString(c.Title), NullString(c.Headline),
		NullString(c.Industry), NullString(c.Location),
		marshalStrings(c.Skills), marshalStrings(c.PastCompanies),
		NullTime(c.ConnectedOn), NullTime(c.LastInteractionAt), c.InteractionCount,
		c.WarmthScore, c.WarmthBucket, NullString(prevBucket), NullTime(c.ReactivatedAt),
		c.RelevanceScore, c.RelevanceBucket, c.PriorityScore, c.PriorityBucket,
		c.CreatedAt, c.UpdatedAt,
	)
	return err
}

// scanContact reads one contact row
func scanContact(row interface{ Scan(...interface{}) error }) (*Contact, error) {
	c := &Contact{}
	var email, company, title, headline, industry, location, prevBucket sql.NullString
	var skills, pastCompanies string
	var connectedOn, lastInteraction, reactivatedAt sql.NullTime

	err := row.Scan(
		&c.ID, &c.FirstName, &c.LastName, &c.NormalizedName, &email, &company, &title,
		&headline, &industry, &location, &skills, &pastCompanies,
		&connectedOn, &lastInteraction, &c.InteractionCount,
		&c.WarmthScore, &c.WarmthBucket, &prevBucket, &reactivatedAt,
		&c.RelevanceScore, &c.RelevanceBucket, &c.PriorityScore, &c.PriorityBucket,
		&c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	c.Email = StringPtr(email)
	c.Company = StringPtr(company)
	c.Title = StringPtr(title)
	c.Headline = StringPtr(headline)
	c.Industry = StringPtr(industry)
	c.Location = StringPtr(location)
	c.Skills = unmarshalStrings(skills)
	c.PastCompanies = unmarshalStrings(pastCompanies)
	c.ConnectedOn = TimePtr(connectedOn)
	c.LastInteractionAt = TimePtr(lastInteraction)
	c.ReactivatedAt = TimePtr(reactivatedAt)
	if prevBucket.Valid {
		b := scoring.WarmthBucket(prevBucket.String)
		c.PreviousWarmthBucket = &b
	}

	return c, nil
}

// GetContact retrieves a contact by ID
func (db *DB) GetContact(ctx context.Context, id string) (*Contact, error) {
	c, err := scanContact(db.QueryRowContext(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE id = ?`, id))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return c, err
}

// GetContactByName retrieves a contact by normalized name
func (db *DB) GetContactByName(ctx context.Context, normalizedName string) (*Contact, error) {
	c, err := scanContact(db.QueryRowContext(ctx,
		`SELECT `+contactColumns+` FROM contacts WHERE normalized_name = ?`, normalizedName))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	return c, err
}

// ListContacts retrieves contacts with optional filters, ordered by descending
// priority score
func (db *DB) ListContacts(ctx context.Context, opts ListOptions) ([]Contact, error) {
	query := `SELECT ` + contactColumns + ` FROM contacts WHERE 1=1`
	args := []interface{}{}

	if opts.WarmthBucket != nil {
		query += " AND warmth_bucket = ?"
		args = append(args, *opts.WarmthBucket)
	}
	if opts.RelevanceBucket != nil {
		query += " AND relevance_bucket = ?"
		args = append(args, *opts.RelevanceBucket)
	}
	if opts.PriorityBucket != nil {
		query += " AND priority_bucket = ?"
		args = append(args, *opts.PriorityBucket)
	}
	if opts.Search != "" {
		query += ` AND (
			first_name LIKE ? COLLATE NOCASE OR last_name LIKE ? COLLATE NOCASE
			OR company LIKE ? COLLATE NOCASE OR title LIKE ? COLLATE NOCASE
		)`
		like := "%" + opts.Search + "%"
		args = append(args, like, like, like, like)
	}

	query += " ORDER BY priority_score DESC, last_name, first_name"
	if opts.Limit > 0 {
		query += " LIMIT ?"
		args = append(args, opts.Limit)
		if opts.Offset > 0 {
			query += " OFFSET ?"
			args = append(args, opts.Offset)
		}
	}

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var contacts []Contact
	for rows.Next() {
		c, err := scanContact(rows)
		if err != nil {
			return nil, err
		}
		contacts = append(contacts, *c)
	}
	return contacts, rows.Err()
}

// UpdateScores writes a contact's score, bucket, and warmth-history columns.
// Score and bucket always travel together so the stored pair stays consistent.
func (db *DB) UpdateScores(ctx context.Context, c *Contact) error {
	c.UpdatedAt = time.Now()

	var prevBucket *string
	if c.PreviousWarmthBucket != nil {
		s := string(*c.PreviousWarmthBucket)
		prevBucket = &s
	}

	result, err := db.ExecContext(ctx, `
		UPDATE contacts SET
			warmth_score = ?, warmth_bucket = ?, previous_warmth_bucket = ?,
			relevance_score = ?, relevance_bucket = ?,
			priority_score = ?, priority_bucket = ?,
			last_interaction_at = ?, interaction_count = ?, updated_at = ?
		WHERE id = ?
	`,
		c.WarmthScore, c.WarmthBucket, NullString(prevBucket),
		c.RelevanceScore, c.RelevanceBucket,
		c.PriorityScore, c.PriorityBucket,
		NullTime(c.LastInteractionAt), c.InteractionCount, c.UpdatedAt, c.ID,
	)
	if err != nil {
		return err
	}

	rows, _ := result.RowsAffected()
	if rows == 0 {
		return fmt.Errorf("contact not found: %s", c.ID)
	}
	return nil
}

// MarkReactivated records a contact's reactivation timestamp. The column is
// set-once: repeated recomputes can never double-count a contact.
func (db *DB) MarkReactivated(ctx context.Context, contactID string, at time.Time) error {
	_, err := db.ExecContext(ctx, `
		UPDATE contacts SET reactivated_at = ?, updated_at = ?
		WHERE id = ? AND reactivated_at IS NULL
	`, at, time.Now(), contactID)
	return err
}

// CountReactivated counts contacts reactivated at or after the epoch
func (db *DB) CountReactivated(ctx context.Context, epoch time.Time) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM contacts
		WHERE reactivated_at IS NOT NULL AND reactivated_at >= ?
	`, epoch).Scan(&count)
	return count, err
}

// CreateInteraction inserts an interaction record
func (db *DB) CreateInteraction(ctx context.Context, i *Interaction) error {
	if i.ID == "" {
		i.ID = uuid.New().String()
	}
	i.CreatedAt = time.Now()

	_, err := db.ExecContext(ctx, `
		INSERT INTO interactions (id, contact_id, source, strength, occurred_at, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`, i.ID, i.ContactID, i.Source, i.Strength, i.OccurredAt, i.CreatedAt)
	return err
}

// ListInteractions retrieves a contact's interactions, newest first
func (db *DB) ListInteractions(ctx context.Context, contactID string) ([]Interaction, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, contact_id, source, strength, occurred_at, created_at
		FROM interactions WHERE contact_id = ?
		ORDER BY occurred_at DESC
	`, contactID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interactions []Interaction
	for rows.Next() {
		var i Interaction
		if err := rows.Scan(&i.ID, &i.ContactID, &i.Source, &i.Strength, &i.OccurredAt, &i.CreatedAt); err != nil {
			return nil, err
		}
		interactions = append(interactions, i)
	}
	return interactions, rows.Err()
}

// CreatePlan inserts a plan and its entries in one transaction
func (db *DB) CreatePlan(ctx context.Context, p *Plan) error {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	p.CreatedAt = time.Now()
	p.UpdatedAt = time.Now()

	return db.Transaction(ctx, func(tx *sql.Tx) error {
		_, err := tx.ExecContext(ctx, `
			INSERT INTO plans (id, week_start, target_contacts, completed_count, status, created_at, updated_at)
			VALUES (?, ?, ?, ?, ?, ?, ?)
		`, p.ID, p.WeekStart, p.TargetContacts, p.CompletedCount, p.Status, p.CreatedAt, p.UpdatedAt)
		if err != nil {
			return err
		}

		for i := range p.Entries {
			e := &p.Entries[i]
			if e.ID == "" {
				e.ID = uuid.New().String()
			}
			e.PlanID = p.ID
			e.Position = i
			_, err := tx.ExecContext(ctx, `
				INSERT INTO plan_entries (id, plan_id, contact_id, position, suggested_action, completed)
				VALUES (?, ?, ?, ?, ?, ?)
			`, e.ID, e.PlanID, e.ContactID, e.Position, e.SuggestedAction, e.Completed)
			if err != nil {
				return err
			}
		}
		return nil
	})
}

// scanPlan reads one plan row
func scanPlan(row interface{ Scan(...interface{}) error }) (*Plan, error) {
	p := &Plan{}
	err := row.Scan(&p.ID, &p.WeekStart, &p.TargetContacts, &p.CompletedCount, &p.Status, &p.CreatedAt, &p.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// GetPlanByWeekStart retrieves the plan for a week, with entries
func (db *DB) GetPlanByWeekStart(ctx context.Context, weekStart time.Time) (*Plan, error) {
	p, err := scanPlan(db.QueryRowContext(ctx, `
		SELECT id, week_start, target_contacts, completed_count, status, created_at, updated_at
		FROM plans WHERE week_start = ?
	`, weekStart))
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	if err := db.loadEntries(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

// ListPlans retrieves all plans with entries, newest week first
func (db *DB) ListPlans(ctx context.Context) ([]Plan, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, week_start, target_contacts, completed_count, status, created_at, updated_at
		FROM plans ORDER BY week_start DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var plans []Plan
	for rows.Next() {
		p, err := scanPlan(rows)
		if err != nil {
			return nil, err
		}
		plans = append(plans, *p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range plans {
		if err := db.loadEntries(ctx, &plans[i]); err != nil {
			return nil, err
		}
	}
	return plans, nil
}

// loadEntries fills a plan's entries, joined with contact names for display
func (db *DB) loadEntries(ctx context.Context, p *Plan) error {
	rows, err := db.QueryContext(ctx, `
		SELECT e.id, e.plan_id, e.contact_id, e.position, e.suggested_action, e.completed,
		       c.first_name, c.last_name
		FROM plan_entries e
		JOIN contacts c ON c.id = e.contact_id
		WHERE e.plan_id = ?
		ORDER BY e.position
	`, p.ID)
	if err != nil {
		return err
	}
	defer rows.Close()

	p.Entries = nil
	for rows.Next() {
		var e PlanEntry
		var first, last string
		if err := rows.Scan(&e.ID, &e.PlanID, &e.ContactID, &e.Position, &e.SuggestedAction, &e.Completed, &first, &last); err != nil {
			return err
		}
		e.ContactName = (&Contact{FirstName: first, LastName: last}).FullName()
		p.Entries = append(p.Entries, e)
	}
	return rows.Err()
}

// DeletePlan removes a plan and, via cascade, its entries
func (db *DB) DeletePlan(ctx context.Context, id string) error {
	_, err := db.ExecContext(ctx, `DELETE FROM plans WHERE id = ?`, id)
	return err
}

// SetPlanStatus updates a plan's status
func (db *DB) SetPlanStatus(ctx context.Context, id string, status PlanStatus) error {
	_, err := db.ExecContext(ctx, `
		UPDATE plans SET status = ?, updated_at = ? WHERE id = ?
	`, status, time.Now(), id)
	return err
}

// CompleteEntry marks a plan entry done, maintains the plan's completed count,
// and closes the plan as completed once every entry is done.
func (db *DB) CompleteEntry(ctx context.Context, entryID string) error {
	return db.Transaction(ctx, func(tx *sql.Tx) error {
		var planID string
		var completed bool
		err := tx.QueryRowContext(ctx, `
			SELECT plan_id, completed FROM plan_entries WHERE id = ?
		`, entryID).Scan(&planID, &completed)
		if err == sql.ErrNoRows {
			return fmt.Errorf("plan entry not found: %s", entryID)
		}
		if err != nil {
			return err
		}
		if completed {
			return nil // already done, nothing to count
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE plan_entries SET completed = 1 WHERE id = ?
		`, entryID); err != nil {
			return err
		}

		if _, err := tx.ExecContext(ctx, `
			UPDATE plans SET completed_count = completed_count + 1, updated_at = ? WHERE id = ?
		`, time.Now(), planID); err != nil {
			return err
		}

		var remaining int
		if err := tx.QueryRowContext(ctx, `
			SELECT COUNT(*) FROM plan_entries WHERE plan_id = ? AND completed = 0
		`, planID).Scan(&remaining); err != nil {
			return err
		}
		if remaining == 0 {
			if _, err := tx.ExecContext(ctx, `
				UPDATE plans SET status = ?, updated_at = ? WHERE id = ?
			`, PlanCompleted, time.Now(), planID); err != nil {
				return err
			}
		}
		return nil
	})
}

// GetAppState retrieves the singleton application state
func (db *DB) GetAppState(ctx context.Context) (*AppState, error) {
	s := &AppState{}
	var lastImport sql.NullTime
	err := db.QueryRowContext(ctx, `
		SELECT badge_epoch_at, last_import_at, contacts_imported FROM app_state WHERE id = 1
	`).Scan(&s.BadgeEpochAt, &lastImport, &s.ContactsImported)
	if err != nil {
		return nil, err
	}
	s.LastImportAt = TimePtr(lastImport)
	return s, nil
}

// UpdateAppState writes the singleton application state
func (db *DB) UpdateAppState(ctx context.Context, s *AppState) error {
	_, err := db.ExecContext(ctx, `
		UPDATE app_state SET badge_epoch_at = ?, last_import_at = ?, contacts_imported = ?
		WHERE id = 1
	`, s.BadgeEpochAt, NullTime(s.LastImportAt), s.ContactsImported)
	return err
}

// GetStats computes aggregate statistics
func (db *DB) GetStats(ctx context.Context, epoch time.Time) (*Stats, error) {
	s := &Stats{}

	err := db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN warmth_bucket = 'hot' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN warmth_bucket = 'warm' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN warmth_bucket = 'cold' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN priority_bucket = 'A' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN priority_bucket = 'B' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN priority_bucket = 'C' THEN 1 ELSE 0 END), 0),
		       COALESCE(SUM(CASE WHEN last_interaction_at IS NULL THEN 1 ELSE 0 END), 0)
		FROM contacts
	`).Scan(&s.TotalContacts, &s.Hot, &s.Warm, &s.Cold, &s.PriorityA, &s.PriorityB, &s.PriorityC, &s.NeverContacted)
	if err != nil {
		return nil, err
	}

	reactivations, err := db.CountReactivated(ctx, epoch)
	if err != nil {
		return nil, err
	}
	s.Reactivations = reactivations

	err = db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(SUM(CASE WHEN status = 'completed' THEN 1 ELSE 0 END), 0)
		FROM plans
	`).Scan(&s.PlansTotal, &s.PlansCompleted)
	if err != nil {
		return nil, err
	}

	err = db.QueryRowContext(ctx, `
		SELECT COUNT(*), COALESCE(SUM(completed), 0) FROM plan_entries
	`).Scan(&s.EntriesTotal, &s.EntriesComplete)
	if err != nil {
		return nil, err
	}

	return s, nil
}
