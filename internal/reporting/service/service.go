// Package service orchestrates dashboard refreshes: fetch both sheets and
// the database-backed records, rebuild the document, and keep the rendered
// JSON in memory and in Redis.
package service

import (
	"context"
	"encoding/json"
	"sync"
	"time"

	"bayview_dashboard_backend/internal/reporting/cache"
	reportingdomain "bayview_dashboard_backend/internal/reporting/domain"
	"bayview_dashboard_backend/platform/logger"

	leadsdomain "bayview_dashboard_backend/internal/leads/domain"
	rentalsdomain "bayview_dashboard_backend/internal/rentals/domain"

	"golang.org/x/sync/errgroup"
)

const refreshTimeout = 5 * time.Minute

// SheetFetcher downloads the two published CSV exports.
type SheetFetcher interface {
	FetchLeads(ctx context.Context) ([][]string, error)
	FetchRental(ctx context.Context) ([][]string, error)
}

// LeadSource supplies leads recorded through the intake API.
type LeadSource interface {
	DashboardLeads(ctx context.Context, today time.Time) ([]leadsdomain.Lead, error)
}

// RentalSource supplies weekly totals for rental entries recorded through
// the API.
type RentalSource interface {
	DashboardWeekly(ctx context.Context) ([]rentalsdomain.WeekTotals, []rentalsdomain.TherapistTotal, error)
}

// Service holds the current rendered dashboard. Readers get the JSON bytes
// as-is; refreshes swap the whole document atomically.
type Service struct {
	sheets  SheetFetcher
	leads   LeadSource
	rentals RentalSource
	store   *cache.Store
	log     *logger.Logger

	mu          sync.RWMutex
	data        []byte
	lastRefresh time.Time
	loading     bool
}

func New(sheets SheetFetcher, leads LeadSource, rentals RentalSource, store *cache.Store, log *logger.Logger) *Service {
	return &Service{
		sheets:  sheets,
		leads:   leads,
		rentals: rentals,
		store:   store,
		log:     log,
	}
}

// Snapshot returns the current document, its refresh time, and whether a
// document is loaded at all.
func (s *Service) Snapshot() ([]byte, time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.data, s.lastRefresh, s.data != nil
}

// LastRefresh returns the time of the most recent successful refresh.
func (s *Service) LastRefresh() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastRefresh
}

// Refresh rebuilds the dashboard from all sources and publishes it. The
// sheet fetches are required; database sources degrade to empty sets so the
// dashboard still renders when the database is down.
func (s *Service) Refresh(ctx context.Context) error {
	// Lead dates parse as UTC midnights, so the reference day must be UTC
	// for the window boundaries to line up.
	now := time.Now().UTC()

	var (
		leadRows, rentalRows [][]string
		dbLeads              []leadsdomain.Lead
		dbWeekly             []rentalsdomain.WeekTotals
		dbTherapists         []rentalsdomain.TherapistTotal
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		rows, err := s.sheets.FetchLeads(gctx)
		if err != nil {
			return err
		}
		leadRows = rows
		return nil
	})
	g.Go(func() error {
		rows, err := s.sheets.FetchRental(gctx)
		if err != nil {
			return err
		}
		rentalRows = rows
		return nil
	})
	g.Go(func() error {
		if s.leads == nil {
			return nil
		}
		rows, err := s.leads.DashboardLeads(gctx, now)
		if err != nil {
			s.log.Warn("db leads unavailable for dashboard", "error", err)
			return nil
		}
		dbLeads = rows
		return nil
	})
	g.Go(func() error {
		if s.rentals == nil {
			return nil
		}
		weekly, therapists, err := s.rentals.DashboardWeekly(gctx)
		if err != nil {
			s.log.Warn("db rental entries unavailable for dashboard", "error", err)
			return nil
		}
		dbWeekly, dbTherapists = weekly, therapists
		return nil
	})
	if err := g.Wait(); err != nil {
		return err
	}

	allLeads := leadsdomain.LeadsFromSheet(leadRows, now)
	allLeads = append(allLeads, dbLeads...)

	sheet := rentalsdomain.ParseSheet(rentalRows, now)

	dash := reportingdomain.BuildDashboard(allLeads, sheet, dbWeekly, dbTherapists, now)
	js, err := json.Marshal(dash)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.data = js
	s.lastRefresh = now
	s.loading = false
	s.mu.Unlock()

	if err := s.store.Save(ctx, js, now); err != nil {
		s.log.Warn("failed to save dashboard cache", "error", err)
	}

	s.log.RefreshEvent(len(allLeads), len(dash.Rental.Weekly), len(js))
	return nil
}

// EnsureLoaded makes sure a document is available or on its way: serve the
// Redis copy immediately when one exists, then refresh in the background.
func (s *Service) EnsureLoaded(ctx context.Context) {
	s.mu.Lock()
	if s.data != nil || s.loading {
		s.mu.Unlock()
		return
	}
	s.loading = true
	s.mu.Unlock()

	cached, ts, err := s.store.Load(ctx)
	if err != nil {
		s.log.Warn("failed to load dashboard cache", "error", err)
	}
	if cached != nil {
		s.mu.Lock()
		s.data = cached
		if ts.IsZero() {
			ts = time.Now().UTC()
		}
		s.lastRefresh = ts
		s.mu.Unlock()
		s.log.Info("serving dashboard from cache", "bytes", len(cached))
	}

	s.refreshAsync()
}

// TriggerRefresh starts a background refresh and reports the time of the
// last completed one.
func (s *Service) TriggerRefresh() time.Time {
	s.refreshAsync()
	return s.LastRefresh()
}

// RunPeriodic refreshes on the given interval until the context ends. The
// API binary runs this so its in-memory document tracks the sheets even
// without a worker deployment.
func (s *Service) RunPeriodic(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		interval = 15 * time.Minute
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := s.Refresh(ctx); err != nil {
				s.log.Error("periodic dashboard refresh failed", "error", err)
			}
		}
	}
}

func (s *Service) refreshAsync() {
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
		defer cancel()
		if err := s.Refresh(ctx); err != nil {
			s.log.Error("dashboard refresh failed", "error", err)
			s.mu.Lock()
			s.loading = false
			s.mu.Unlock()
		}
	}()
}
