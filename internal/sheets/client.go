// Package sheets fetches the published Google Sheet CSV exports that feed
// the dashboard.
package sheets

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"bayview_dashboard_backend/platform/config"
	"bayview_dashboard_backend/platform/logger"
)

const userAgent = "BayviewDashboard/1.0"

// Client downloads the lead and rental sheets. Both URLs point at the
// "publish to web" CSV export of the spreadsheet, so no credentials are
// involved.
type Client struct {
	httpClient *http.Client
	leadURL    string
	rentalURL  string
	log        *logger.Logger
}

func New(cfg config.SheetsConfig, log *logger.Logger) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: 30 * time.Second},
		leadURL:    cfg.GetLeadCSVURL(),
		rentalURL:  cfg.GetRentalCSVURL(),
		log:        log,
	}
}

// FetchLeads downloads the lead tracking sheet.
func (c *Client) FetchLeads(ctx context.Context) ([][]string, error) {
	return c.fetchCSV(ctx, "sheet:leads", c.leadURL)
}

// FetchRental downloads the rental accounting sheet.
func (c *Client) FetchRental(ctx context.Context) ([][]string, error) {
	return c.fetchCSV(ctx, "sheet:rental", c.rentalURL)
}

func (c *Client) fetchCSV(ctx context.Context, source, url string) ([][]string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build csv request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch csv: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("csv fetch returned status %d", resp.StatusCode)
	}

	reader := csv.NewReader(resp.Body)
	reader.FieldsPerRecord = -1
	reader.LazyQuotes = true

	rows, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse csv: %w", err)
	}

	c.log.FetchEvent(source, len(rows))
	return rows, nil
}
