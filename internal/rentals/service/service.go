// Package service implements the rental entry business logic: CRUD over the
// entry store plus conversion into the weekly totals the dashboard merges.
package service

import (
	"context"
	"time"

	leadsdomain "bayview_dashboard_backend/internal/leads/domain"
	"bayview_dashboard_backend/internal/rentals/domain"
	"bayview_dashboard_backend/internal/rentals/repository"
	"bayview_dashboard_backend/internal/rentals/transport"
	"bayview_dashboard_backend/platform/apperr"

	"github.com/google/uuid"
)

const defaultRecentWeeks = 12

// Store is the rental entry persistence surface the service depends on.
type Store interface {
	Create(ctx context.Context, e *repository.Entry) error
	CreateBulk(ctx context.Context, entries []*repository.Entry) error
	GetByID(ctx context.Context, id uuid.UUID) (*repository.Entry, error)
	Update(ctx context.Context, e *repository.Entry) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListByWeek(ctx context.Context, weekStart time.Time, weekEnd *time.Time) ([]*repository.Entry, error)
	ListRecent(ctx context.Context, weeks int) ([]*repository.Entry, error)
	ListWeeks(ctx context.Context) ([]repository.Week, error)
	DeleteWeek(ctx context.Context, weekStart, weekEnd time.Time) error
	ListAll(ctx context.Context) ([]*repository.Entry, error)
}

// Service provides rental entry operations.
type Service struct {
	repo Store
}

// New creates a new rentals service.
func New(repo Store) *Service {
	return &Service{repo: repo}
}

func parseWeekDate(s string) (time.Time, error) {
	date, ok := leadsdomain.ParseDate(s, time.Now())
	if !ok {
		return time.Time{}, apperr.Validation("invalid week date").WithDetails(s)
	}
	return date, nil
}

// Create stores a single rental entry.
func (s *Service) Create(ctx context.Context, req transport.CreateEntryRequest) (*transport.CreateEntryResponse, error) {
	weekStart, err := parseWeekDate(req.WeekStart)
	if err != nil {
		return nil, err
	}
	weekEnd, err := parseWeekDate(req.WeekEnd)
	if err != nil {
		return nil, err
	}

	category := req.Category
	if category == "" {
		category = domain.CategoryRoomRental
	}

	now := time.Now()
	entry := &repository.Entry{
		ID:        uuid.New(),
		WeekStart: weekStart,
		WeekEnd:   weekEnd,
		Therapist: req.Therapist,
		Location:  req.Location,
		Amount:    req.Amount,
		Category:  category,
		Notes:     req.Notes,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := s.repo.Create(ctx, entry); err != nil {
		return nil, err
	}

	return &transport.CreateEntryResponse{OK: true, ID: entry.ID}, nil
}

// CreateBulk stores a whole week of entries. Lines without a therapist or
// positive amount are skipped; a request where everything is skipped fails.
func (s *Service) CreateBulk(ctx context.Context, req transport.CreateBulkRequest) (*transport.CreateBulkResponse, error) {
	weekStart, err := parseWeekDate(req.WeekStart)
	if err != nil {
		return nil, err
	}
	weekEnd, err := parseWeekDate(req.WeekEnd)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	entries := make([]*repository.Entry, 0, len(req.Entries))
	for _, line := range req.Entries {
		if line.Therapist == "" || line.Amount.IsZero() {
			continue
		}
		category := line.Category
		if category == "" {
			category = domain.CategoryRoomRental
		}
		entries = append(entries, &repository.Entry{
			ID:        uuid.New(),
			WeekStart: weekStart,
			WeekEnd:   weekEnd,
			Therapist: line.Therapist,
			Location:  line.Location,
			Amount:    line.Amount,
			Category:  category,
			Notes:     line.Notes,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	if len(entries) == 0 {
		return nil, apperr.Validation("no valid entries")
	}

	if err := s.repo.CreateBulk(ctx, entries); err != nil {
		return nil, err
	}

	ids := make([]uuid.UUID, 0, len(entries))
	for _, e := range entries {
		ids = append(ids, e.ID)
	}
	return &transport.CreateBulkResponse{OK: true, IDs: ids, Count: len(ids)}, nil
}

// Update applies the provided fields to an existing entry and returns the
// updated record.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateEntryRequest) (*transport.UpdateEntryResponse, error) {
	entry, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.WeekStart != nil {
		weekStart, err := parseWeekDate(*req.WeekStart)
		if err != nil {
			return nil, err
		}
		entry.WeekStart = weekStart
	}
	if req.WeekEnd != nil {
		weekEnd, err := parseWeekDate(*req.WeekEnd)
		if err != nil {
			return nil, err
		}
		entry.WeekEnd = weekEnd
	}
	if req.Therapist != nil {
		entry.Therapist = *req.Therapist
	}
	if req.Location != nil {
		entry.Location = *req.Location
	}
	if req.Amount != nil {
		entry.Amount = *req.Amount
	}
	if req.Category != nil {
		entry.Category = *req.Category
	}
	if req.Notes != nil {
		entry.Notes = *req.Notes
	}
	entry.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, entry); err != nil {
		return nil, err
	}

	return &transport.UpdateEntryResponse{OK: true, Entry: toResponse(entry)}, nil
}

// Delete removes a rental entry.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (*transport.DeleteEntryResponse, error) {
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &transport.DeleteEntryResponse{OK: true, Deleted: id}, nil
}

// ListByWeek returns entries for one week.
func (s *Service) ListByWeek(ctx context.Context, weekStart string, weekEnd string) ([]transport.EntryResponse, error) {
	start, err := parseWeekDate(weekStart)
	if err != nil {
		return nil, err
	}
	var end *time.Time
	if weekEnd != "" {
		parsed, err := parseWeekDate(weekEnd)
		if err != nil {
			return nil, err
		}
		end = &parsed
	}

	entries, err := s.repo.ListByWeek(ctx, start, end)
	if err != nil {
		return nil, err
	}
	return toResponses(entries), nil
}

// ListRecent returns entries from the last N weeks.
func (s *Service) ListRecent(ctx context.Context, weeks int) ([]transport.EntryResponse, error) {
	if weeks <= 0 {
		weeks = defaultRecentWeeks
	}
	entries, err := s.repo.ListRecent(ctx, weeks)
	if err != nil {
		return nil, err
	}
	return toResponses(entries), nil
}

// ListWeeks returns the distinct weeks that have entries.
func (s *Service) ListWeeks(ctx context.Context) ([]transport.WeekResponse, error) {
	weeks, err := s.repo.ListWeeks(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]transport.WeekResponse, 0, len(weeks))
	for _, w := range weeks {
		out = append(out, transport.WeekResponse{
			WeekStart: w.WeekStart.Format("2006-01-02"),
			WeekEnd:   w.WeekEnd.Format("2006-01-02"),
		})
	}
	return out, nil
}

// DeleteWeek removes all entries for one week.
func (s *Service) DeleteWeek(ctx context.Context, req transport.DeleteWeekRequest) (*transport.DeleteWeekResponse, error) {
	weekStart, err := parseWeekDate(req.WeekStart)
	if err != nil {
		return nil, err
	}
	weekEnd, err := parseWeekDate(req.WeekEnd)
	if err != nil {
		return nil, err
	}
	if err := s.repo.DeleteWeek(ctx, weekStart, weekEnd); err != nil {
		return nil, err
	}
	return &transport.DeleteWeekResponse{OK: true}, nil
}

// DashboardWeekly converts every stored entry into the weekly totals and
// therapist totals the dashboard merges with the accounting sheet.
func (s *Service) DashboardWeekly(ctx context.Context) ([]domain.WeekTotals, []domain.TherapistTotal, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, nil, err
	}

	entries := make([]domain.Entry, 0, len(rows))
	for _, row := range rows {
		entries = append(entries, domain.Entry{
			WeekStart: row.WeekStart,
			WeekEnd:   row.WeekEnd,
			Therapist: row.Therapist,
			Location:  row.Location,
			Amount:    row.Amount,
			Category:  row.Category,
		})
	}
	weekly, therapists := domain.WeeklyFromEntries(entries)
	return weekly, therapists, nil
}

func toResponse(e *repository.Entry) transport.EntryResponse {
	return transport.EntryResponse{
		ID:        e.ID,
		WeekStart: e.WeekStart.Format("2006-01-02"),
		WeekEnd:   e.WeekEnd.Format("2006-01-02"),
		Therapist: e.Therapist,
		Location:  e.Location,
		Amount:    e.Amount,
		Category:  e.Category,
		Notes:     e.Notes,
		CreatedAt: e.CreatedAt,
		UpdatedAt: e.UpdatedAt,
	}
}

func toResponses(entries []*repository.Entry) []transport.EntryResponse {
	out := make([]transport.EntryResponse, 0, len(entries))
	for _, e := range entries {
		out = append(out, toResponse(e))
	}
	return out
}
