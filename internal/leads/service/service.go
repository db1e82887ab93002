// Package service implements the lead business logic: CRUD over the lead
// store plus conversion of stored leads into normalized dashboard records.
package service

import (
	"context"
	"time"

	"bayview_dashboard_backend/internal/leads/domain"
	"bayview_dashboard_backend/internal/leads/repository"
	"bayview_dashboard_backend/internal/leads/transport"
	"bayview_dashboard_backend/platform/apperr"

	"github.com/google/uuid"
)

const (
	defaultPendingDays = 14
	defaultRecentDays  = 30
)

// Store is the lead persistence surface the service depends on.
type Store interface {
	Create(ctx context.Context, l *repository.Lead) error
	GetByID(ctx context.Context, id uuid.UUID) (*repository.Lead, error)
	Update(ctx context.Context, l *repository.Lead) error
	Delete(ctx context.Context, id uuid.UUID) error
	ListPending(ctx context.Context, days int) ([]*repository.Lead, error)
	ListRecent(ctx context.Context, days int) ([]*repository.Lead, error)
	ListAll(ctx context.Context) ([]*repository.Lead, error)
}

// Service provides lead operations.
type Service struct {
	repo Store
}

// New creates a new leads service.
func New(repo Store) *Service {
	return &Service{repo: repo}
}

// Create validates the lead date and stores a new lead.
func (s *Service) Create(ctx context.Context, req transport.CreateLeadRequest) (*transport.CreateLeadResponse, error) {
	date, ok := domain.ParseDate(req.Date, time.Now())
	if !ok {
		return nil, apperr.Validation("invalid date").WithDetails(req.Date)
	}

	marketing := req.MarketingProgram
	if marketing == "" {
		marketing = "No"
	}

	now := time.Now()
	lead := &repository.Lead{
		ID:                uuid.New(),
		Date:              date,
		Location:          req.Location,
		FirstName:         req.FirstName,
		LastName:          req.LastName,
		Phone:             req.Phone,
		Email:             req.Email,
		ServiceType:       req.ServiceType,
		PresentingProblem: req.PresentingProblem,
		ReferralSource:    req.ReferralSource,
		ActionTaken:       req.ActionTaken,
		ReferredTo:        req.ReferredTo,
		MarketingProgram:  marketing,
		ReferralOutcome:   req.ReferralOutcome,
		Notes:             req.Notes,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := s.repo.Create(ctx, lead); err != nil {
		return nil, err
	}

	return &transport.CreateLeadResponse{OK: true, ID: lead.ID}, nil
}

// Get returns a single lead.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*transport.LeadResponse, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	resp := toResponse(lead)
	return &resp, nil
}

// Update applies the provided fields to an existing lead and returns the
// updated record.
func (s *Service) Update(ctx context.Context, id uuid.UUID, req transport.UpdateLeadRequest) (*transport.UpdateLeadResponse, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Date != nil {
		date, ok := domain.ParseDate(*req.Date, time.Now())
		if !ok {
			return nil, apperr.Validation("invalid date").WithDetails(*req.Date)
		}
		lead.Date = date
	}
	setIf(&lead.Location, req.Location)
	setIf(&lead.Phone, req.Phone)
	setIf(&lead.Email, req.Email)
	setIf(&lead.ServiceType, req.ServiceType)
	setIf(&lead.PresentingProblem, req.PresentingProblem)
	setIf(&lead.ReferralSource, req.ReferralSource)
	setIf(&lead.ActionTaken, req.ActionTaken)
	setIf(&lead.ReferredTo, req.ReferredTo)
	setIf(&lead.MarketingProgram, req.MarketingProgram)
	setIf(&lead.ReferralOutcome, req.ReferralOutcome)
	setIf(&lead.Notes, req.Notes)
	lead.UpdatedAt = time.Now()

	if err := s.repo.Update(ctx, lead); err != nil {
		return nil, err
	}

	return &transport.UpdateLeadResponse{OK: true, Lead: toResponse(lead)}, nil
}

// Delete removes a lead.
func (s *Service) Delete(ctx context.Context, id uuid.UUID) (*transport.DeleteLeadResponse, error) {
	if err := s.repo.Delete(ctx, id); err != nil {
		return nil, err
	}
	return &transport.DeleteLeadResponse{OK: true, Deleted: id}, nil
}

// ListPending returns open leads from the last N days.
func (s *Service) ListPending(ctx context.Context, days int) ([]transport.LeadResponse, error) {
	if days <= 0 {
		days = defaultPendingDays
	}
	leads, err := s.repo.ListPending(ctx, days)
	if err != nil {
		return nil, err
	}
	return toResponses(leads), nil
}

// ListRecent returns all leads from the last N days.
func (s *Service) ListRecent(ctx context.Context, days int) ([]transport.LeadResponse, error) {
	if days <= 0 {
		days = defaultRecentDays
	}
	leads, err := s.repo.ListRecent(ctx, days)
	if err != nil {
		return nil, err
	}
	return toResponses(leads), nil
}

// DashboardLeads converts every stored lead into a normalized dashboard
// record via the same path the sheet rows take.
func (s *Service) DashboardLeads(ctx context.Context, today time.Time) ([]domain.Lead, error) {
	rows, err := s.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}

	records := make([]map[string]string, 0, len(rows))
	for _, row := range rows {
		records = append(records, map[string]string{
			"date":               row.Date.Format("2006-01-02"),
			"location":           row.Location,
			"service_type":       row.ServiceType,
			"presenting_problem": row.PresentingProblem,
			"referral_source":    row.ReferralSource,
			"action_taken":       row.ActionTaken,
			"referred_to":        row.ReferredTo,
			"referral_outcome":   row.ReferralOutcome,
			"marketing_program":  row.MarketingProgram,
		})
	}
	return domain.LeadsFromRecords(records, today), nil
}

func setIf(dst *string, src *string) {
	if src != nil {
		*dst = *src
	}
}

func toResponse(l *repository.Lead) transport.LeadResponse {
	return transport.LeadResponse{
		ID:                l.ID,
		Date:              l.Date.Format("2006-01-02"),
		Location:          l.Location,
		FirstName:         l.FirstName,
		LastName:          l.LastName,
		Phone:             l.Phone,
		Email:             l.Email,
		ServiceType:       l.ServiceType,
		PresentingProblem: l.PresentingProblem,
		ReferralSource:    l.ReferralSource,
		ActionTaken:       l.ActionTaken,
		ReferredTo:        l.ReferredTo,
		MarketingProgram:  l.MarketingProgram,
		ReferralOutcome:   l.ReferralOutcome,
		Notes:             l.Notes,
		CreatedAt:         l.CreatedAt,
		UpdatedAt:         l.UpdatedAt,
	}
}

func toResponses(leads []*repository.Lead) []transport.LeadResponse {
	out := make([]transport.LeadResponse, 0, len(leads))
	for _, l := range leads {
		out = append(out, toResponse(l))
	}
	return out
}
