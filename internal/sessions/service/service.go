// Package service assembles the weekly session report from the configured
// calendars.
package service

import (
	"context"
	"sort"
	"time"

	"bayview_dashboard_backend/internal/sessions/domain"
	"bayview_dashboard_backend/platform/apperr"
	"bayview_dashboard_backend/platform/config"
	"bayview_dashboard_backend/platform/logger"

	"golang.org/x/sync/errgroup"
)

const (
	defaultWeeksBack = 8
	maxWeeksBack     = 52
)

// EventFetcher reads events from one calendar.
type EventFetcher interface {
	FetchEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time, loc *time.Location) ([]domain.Event, error)
}

// Service provides the session report.
type Service struct {
	fetcher EventFetcher
	cfg     config.CalendarConfig
	log     *logger.Logger
	tz      *time.Location
}

// New creates a new sessions service. Events are reported in Eastern time,
// where all the offices are.
func New(fetcher EventFetcher, cfg config.CalendarConfig, log *logger.Logger) *Service {
	tz, err := time.LoadLocation("America/New_York")
	if err != nil {
		tz = time.UTC
	}
	return &Service{fetcher: fetcher, cfg: cfg, log: log, tz: tz}
}

// GetSessions fetches all configured calendars and builds the weekly grids.
// weeksBack is clamped to 1..52.
func (s *Service) GetSessions(ctx context.Context, weeksBack int) (*domain.SessionsData, error) {
	if !s.cfg.IsCalendarEnabled() {
		return nil, apperr.Unavailable("calendar sync is not configured")
	}
	if weeksBack <= 0 {
		weeksBack = defaultWeeksBack
	}
	if weeksBack > maxWeeksBack {
		weeksBack = maxWeeksBack
	}

	now := time.Now().In(s.tz)
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, s.tz)
	currentMonday, currentSunday := domain.WeekBounds(today)
	startMonday := currentMonday.AddDate(0, 0, -7*(weeksBack-1))
	// include next week for the upcoming view
	endSunday := currentSunday.AddDate(0, 0, 7)

	timeMin := startMonday
	timeMax := endSunday.AddDate(0, 0, 1).Add(-time.Second)

	calendars := s.cfg.GetCalendars()
	locations := make([]string, 0, len(calendars))
	for name := range calendars {
		locations = append(locations, name)
	}
	sort.Strings(locations)

	eventsByLocation := make(map[string][]domain.Event, len(locations))
	group, groupCtx := errgroup.WithContext(ctx)
	results := make([][]domain.Event, len(locations))

	for i, location := range locations {
		calendarID := calendars[location]
		group.Go(func() error {
			events, err := s.fetcher.FetchEvents(groupCtx, calendarID, timeMin, timeMax, s.tz)
			if err != nil {
				// one broken calendar should not take down the report
				s.log.Warn("calendar fetch failed", "location", location, "error", err)
				return nil
			}
			results[i] = events
			return nil
		})
	}
	if err := group.Wait(); err != nil {
		return nil, err
	}
	for i, location := range locations {
		eventsByLocation[location] = results[i]
	}

	return domain.BuildSessions(eventsByLocation, locations, weeksBack, now), nil
}
