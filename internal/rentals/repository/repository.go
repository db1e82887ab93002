package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"bayview_dashboard_backend/platform/apperr"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

// Entry represents the rental entry database model.
type Entry struct {
	ID        uuid.UUID       `db:"id"`
	WeekStart time.Time       `db:"week_start"`
	WeekEnd   time.Time       `db:"week_end"`
	Therapist string          `db:"therapist"`
	Location  string          `db:"location"`
	Amount    decimal.Decimal `db:"amount"`
	Category  string          `db:"category"`
	Notes     string          `db:"notes"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

// Week is a distinct (start, end) pair that has entries.
type Week struct {
	WeekStart time.Time `db:"week_start"`
	WeekEnd   time.Time `db:"week_end"`
}

// Repository provides database operations for rental entries.
type Repository struct {
	pool *pgxpool.Pool
}

const entryNotFoundMsg = "rental entry not found"

// amount is selected as text so it round-trips through decimal exactly.
const entryColumns = `id, week_start, week_end, therapist, location, amount::text,
	category, notes, created_at, updated_at`

// New creates a new rentals repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanEntry(row pgx.Row) (*Entry, error) {
	var e Entry
	var amount string
	err := row.Scan(
		&e.ID, &e.WeekStart, &e.WeekEnd, &e.Therapist, &e.Location, &amount,
		&e.Category, &e.Notes, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Amount, err = decimal.NewFromString(amount)
	if err != nil {
		return nil, fmt.Errorf("invalid stored amount %q: %w", amount, err)
	}
	return &e, nil
}

func collectEntries(rows pgx.Rows) ([]*Entry, error) {
	defer rows.Close()
	entries := []*Entry{}
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan rental entry: %w", err)
		}
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rental entries: %w", err)
	}
	return entries, nil
}

// Create inserts a new rental entry.
func (r *Repository) Create(ctx context.Context, e *Entry) error {
	query := `
		INSERT INTO rental_entries (
			id, week_start, week_end, therapist, location, amount, category, notes,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	_, err := r.pool.Exec(ctx, query,
		e.ID, e.WeekStart, e.WeekEnd, e.Therapist, e.Location, e.Amount.String(),
		e.Category, e.Notes, e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create rental entry: %w", err)
	}

	return nil
}

// CreateBulk inserts a batch of entries for one week in a single transaction.
func (r *Repository) CreateBulk(ctx context.Context, entries []*Entry) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin bulk insert: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO rental_entries (
			id, week_start, week_end, therapist, location, amount, category, notes,
			created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`

	for _, e := range entries {
		_, err := tx.Exec(ctx, query,
			e.ID, e.WeekStart, e.WeekEnd, e.Therapist, e.Location, e.Amount.String(),
			e.Category, e.Notes, e.CreatedAt, e.UpdatedAt,
		)
		if err != nil {
			return fmt.Errorf("failed to insert rental entry: %w", err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit bulk insert: %w", err)
	}
	return nil
}

// GetByID retrieves a rental entry by its ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM rental_entries WHERE id = $1`

	e, err := scanEntry(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(entryNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get rental entry: %w", err)
	}

	return e, nil
}

// Update persists an updated rental entry.
func (r *Repository) Update(ctx context.Context, e *Entry) error {
	query := `
		UPDATE rental_entries SET
			week_start = $2,
			week_end = $3,
			therapist = $4,
			location = $5,
			amount = $6,
			category = $7,
			notes = $8,
			updated_at = $9
		WHERE id = $1`

	result, err := r.pool.Exec(ctx, query,
		e.ID, e.WeekStart, e.WeekEnd, e.Therapist, e.Location, e.Amount.String(),
		e.Category, e.Notes, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update rental entry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(entryNotFoundMsg)
	}

	return nil
}

// Delete removes a rental entry.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM rental_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete rental entry: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(entryNotFoundMsg)
	}

	return nil
}

// ListByWeek returns entries for one week, ordered by therapist. When weekEnd
// is nil only the start date is matched.
func (r *Repository) ListByWeek(ctx context.Context, weekStart time.Time, weekEnd *time.Time) ([]*Entry, error) {
	var rows pgx.Rows
	var err error
	if weekEnd != nil {
		query := `SELECT ` + entryColumns + ` FROM rental_entries
			WHERE week_start = $1 AND week_end = $2 ORDER BY therapist`
		rows, err = r.pool.Query(ctx, query, weekStart, *weekEnd)
	} else {
		query := `SELECT ` + entryColumns + ` FROM rental_entries
			WHERE week_start = $1 ORDER BY therapist`
		rows, err = r.pool.Query(ctx, query, weekStart)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to list rental entries by week: %w", err)
	}
	return collectEntries(rows)
}

// ListRecent returns entries from the last N weeks.
func (r *Repository) ListRecent(ctx context.Context, weeks int) ([]*Entry, error) {
	cutoff := time.Now().AddDate(0, 0, -weeks*7)
	query := `SELECT ` + entryColumns + ` FROM rental_entries
		WHERE week_start >= $1
		ORDER BY week_start DESC, therapist`

	rows, err := r.pool.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent rental entries: %w", err)
	}
	return collectEntries(rows)
}

// ListWeeks returns the distinct weeks that have entries, newest first.
func (r *Repository) ListWeeks(ctx context.Context) ([]Week, error) {
	query := `SELECT DISTINCT week_start, week_end FROM rental_entries
		ORDER BY week_start DESC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rental weeks: %w", err)
	}
	defer rows.Close()

	weeks := []Week{}
	for rows.Next() {
		var w Week
		if err := rows.Scan(&w.WeekStart, &w.WeekEnd); err != nil {
			return nil, fmt.Errorf("failed to scan rental week: %w", err)
		}
		weeks = append(weeks, w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read rental weeks: %w", err)
	}
	return weeks, nil
}

// DeleteWeek removes all entries for one week.
func (r *Repository) DeleteWeek(ctx context.Context, weekStart, weekEnd time.Time) error {
	_, err := r.pool.Exec(ctx,
		`DELETE FROM rental_entries WHERE week_start = $1 AND week_end = $2`,
		weekStart, weekEnd,
	)
	if err != nil {
		return fmt.Errorf("failed to delete rental week: %w", err)
	}
	return nil
}

// ListAll returns every entry ordered by week, for the dashboard merge.
func (r *Repository) ListAll(ctx context.Context) ([]*Entry, error) {
	query := `SELECT ` + entryColumns + ` FROM rental_entries
		ORDER BY week_start ASC, therapist`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list rental entries: %w", err)
	}
	return collectEntries(rows)
}
