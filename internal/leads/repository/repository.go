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
)

// Lead represents the lead database model.
type Lead struct {
	ID                uuid.UUID `db:"id"`
	Date              time.Time `db:"date"`
	Location          string    `db:"location"`
	FirstName         string    `db:"first_name"`
	LastName          string    `db:"last_name"`
	Phone             string    `db:"phone"`
	Email             string    `db:"email"`
	ServiceType       string    `db:"service_type"`
	PresentingProblem string    `db:"presenting_problem"`
	ReferralSource    string    `db:"referral_source"`
	ActionTaken       string    `db:"action_taken"`
	ReferredTo        string    `db:"referred_to"`
	MarketingProgram  string    `db:"marketing_program"`
	ReferralOutcome   string    `db:"referral_outcome"`
	Notes             string    `db:"notes"`
	CreatedAt         time.Time `db:"created_at"`
	UpdatedAt         time.Time `db:"updated_at"`
}

// Repository provides database operations for leads.
type Repository struct {
	pool *pgxpool.Pool
}

const leadNotFoundMsg = "lead not found"

const leadColumns = `id, date, location, first_name, last_name, phone, email,
	service_type, presenting_problem, referral_source, action_taken, referred_to,
	marketing_program, referral_outcome, notes, created_at, updated_at`

// New creates a new leads repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

func scanLead(row pgx.Row) (*Lead, error) {
	var l Lead
	err := row.Scan(
		&l.ID, &l.Date, &l.Location, &l.FirstName, &l.LastName, &l.Phone, &l.Email,
		&l.ServiceType, &l.PresentingProblem, &l.ReferralSource, &l.ActionTaken,
		&l.ReferredTo, &l.MarketingProgram, &l.ReferralOutcome, &l.Notes,
		&l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &l, nil
}

func collectLeads(rows pgx.Rows) ([]*Lead, error) {
	defer rows.Close()
	leads := []*Lead{}
	for rows.Next() {
		l, err := scanLead(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan lead: %w", err)
		}
		leads = append(leads, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read leads: %w", err)
	}
	return leads, nil
}

// Create inserts a new lead.
func (r *Repository) Create(ctx context.Context, l *Lead) error {
	query := `
		INSERT INTO leads (
			id, date, location, first_name, last_name, phone, email,
			service_type, presenting_problem, referral_source, action_taken,
			referred_to, marketing_program, referral_outcome, notes,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17
		)`

	_, err := r.pool.Exec(ctx, query,
		l.ID, l.Date, l.Location, l.FirstName, l.LastName, l.Phone, l.Email,
		l.ServiceType, l.PresentingProblem, l.ReferralSource, l.ActionTaken,
		l.ReferredTo, l.MarketingProgram, l.ReferralOutcome, l.Notes,
		l.CreatedAt, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create lead: %w", err)
	}

	return nil
}

// GetByID retrieves a lead by its ID.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (*Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads WHERE id = $1`

	l, err := scanLead(r.pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperr.NotFound(leadNotFoundMsg)
		}
		return nil, fmt.Errorf("failed to get lead: %w", err)
	}

	return l, nil
}

// Update persists an updated lead.
func (r *Repository) Update(ctx context.Context, l *Lead) error {
	query := `
		UPDATE leads SET
			date = $2,
			location = $3,
			phone = $4,
			email = $5,
			service_type = $6,
			presenting_problem = $7,
			referral_source = $8,
			action_taken = $9,
			referred_to = $10,
			marketing_program = $11,
			referral_outcome = $12,
			notes = $13,
			updated_at = $14
		WHERE id = $1`

	result, err := r.pool.Exec(ctx, query,
		l.ID, l.Date, l.Location, l.Phone, l.Email, l.ServiceType,
		l.PresentingProblem, l.ReferralSource, l.ActionTaken, l.ReferredTo,
		l.MarketingProgram, l.ReferralOutcome, l.Notes, l.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to update lead: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(leadNotFoundMsg)
	}

	return nil
}

// Delete removes a lead.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM leads WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete lead: %w", err)
	}
	if result.RowsAffected() == 0 {
		return apperr.NotFound(leadNotFoundMsg)
	}

	return nil
}

// ListPending returns leads from the last N days whose outcome is still open:
// the person was referred but nothing final was recorded yet.
func (r *Repository) ListPending(ctx context.Context, days int) ([]*Lead, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	query := `SELECT ` + leadColumns + ` FROM leads
		WHERE (referred_to = 'Pending' OR action_taken = 'Pending'
			OR referral_outcome IN ('Called', 'Emailed', 'Left Message', 'Pending'))
			AND date >= $1
		ORDER BY date DESC, created_at DESC`

	rows, err := r.pool.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending leads: %w", err)
	}
	return collectLeads(rows)
}

// ListRecent returns all leads from the last N days.
func (r *Repository) ListRecent(ctx context.Context, days int) ([]*Lead, error) {
	cutoff := time.Now().AddDate(0, 0, -days)
	query := `SELECT ` + leadColumns + ` FROM leads
		WHERE date >= $1
		ORDER BY date DESC, created_at DESC`

	rows, err := r.pool.Query(ctx, query, cutoff)
	if err != nil {
		return nil, fmt.Errorf("failed to list recent leads: %w", err)
	}
	return collectLeads(rows)
}

// ListAll returns every lead ordered by date ascending, for the dashboard
// merge with the sheet-sourced leads.
func (r *Repository) ListAll(ctx context.Context) ([]*Lead, error) {
	query := `SELECT ` + leadColumns + ` FROM leads ORDER BY date ASC`

	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list leads: %w", err)
	}
	return collectLeads(rows)
}
