// Package client fetches events from the Google Calendar public API.
package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"time"

	"bayview_dashboard_backend/internal/sessions/domain"
	"bayview_dashboard_backend/platform/logger"

	"golang.org/x/time/rate"
)

const (
	baseURL        = "https://www.googleapis.com/calendar/v3/calendars"
	maxResults     = "2500"
	requestTimeout = 30 * time.Second
)

// Client reads public calendars with an API key. Requests are rate limited
// so paginating several calendars at once stays inside the API quota.
type Client struct {
	httpClient *http.Client
	apiKey     string
	limiter    *rate.Limiter
	log        *logger.Logger
}

// New creates a calendar client.
func New(apiKey string, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: requestTimeout},
		apiKey:     apiKey,
		limiter:    rate.NewLimiter(rate.Limit(5), 10),
		log:        log,
	}
}

type eventTime struct {
	DateTime string `json:"dateTime"`
	Date     string `json:"date"`
}

type eventItem struct {
	Status  string    `json:"status"`
	Summary string    `json:"summary"`
	Start   eventTime `json:"start"`
	End     eventTime `json:"end"`
}

type eventsPage struct {
	Items         []eventItem `json:"items"`
	NextPageToken string      `json:"nextPageToken"`
}

// FetchEvents returns the non-cancelled, timed events of one calendar in the
// given window. All-day events are skipped since they are never sessions.
func (c *Client) FetchEvents(ctx context.Context, calendarID string, timeMin, timeMax time.Time, loc *time.Location) ([]domain.Event, error) {
	var events []domain.Event
	pageToken := ""

	for {
		if err := c.limiter.Wait(ctx); err != nil {
			return nil, err
		}

		page, err := c.fetchPage(ctx, calendarID, timeMin, timeMax, pageToken)
		if err != nil {
			return nil, err
		}

		for _, item := range page.Items {
			if item.Status == "cancelled" {
				continue
			}
			if item.Start.DateTime == "" {
				continue // all-day
			}
			start, err := time.Parse(time.RFC3339, item.Start.DateTime)
			if err != nil {
				continue
			}
			event := domain.Event{
				Summary: item.Summary,
				Start:   start.In(loc),
			}
			if item.End.DateTime != "" {
				if end, err := time.Parse(time.RFC3339, item.End.DateTime); err == nil {
					event.End = end.In(loc)
					event.HasEnd = true
				}
			}
			events = append(events, event)
		}

		pageToken = page.NextPageToken
		if pageToken == "" {
			break
		}
	}

	c.log.FetchEvent("calendar:"+calendarID, len(events))
	return events, nil
}

func (c *Client) fetchPage(ctx context.Context, calendarID string, timeMin, timeMax time.Time, pageToken string) (*eventsPage, error) {
	params := url.Values{}
	params.Set("key", c.apiKey)
	params.Set("timeMin", timeMin.Format(time.RFC3339))
	params.Set("timeMax", timeMax.Format(time.RFC3339))
	params.Set("singleEvents", "true")
	params.Set("orderBy", "startTime")
	params.Set("maxResults", maxResults)
	if pageToken != "" {
		params.Set("pageToken", pageToken)
	}

	endpoint := fmt.Sprintf("%s/%s/events?%s", baseURL, url.PathEscape(calendarID), params.Encode())
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build calendar request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("calendar request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("calendar request returned status %d", resp.StatusCode)
	}

	var page eventsPage
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("failed to decode calendar response: %w", err)
	}
	return &page, nil
}
