package service

import (
	"context"
	"encoding/json"
	"testing"

	"bayview_dashboard_backend/internal/reporting/cache"
	"bayview_dashboard_backend/platform/logger"
)

type fakeSheets struct {
	leadRows   [][]string
	rentalRows [][]string
}

func (f *fakeSheets) FetchLeads(ctx context.Context) ([][]string, error)  { return f.leadRows, nil }
func (f *fakeSheets) FetchRental(ctx context.Context) ([][]string, error) { return f.rentalRows, nil }

type disabledCacheConfig struct{}

func (disabledCacheConfig) GetRedisURL() string { return "" }

func TestRefreshBuildsDocument(t *testing.T) {
	log := logger.New("test")
	store, err := cache.New(disabledCacheConfig{}, log)
	if err != nil {
		t.Fatalf("cache.New: %v", err)
	}

	sheets := &fakeSheets{
		leadRows: [][]string{
			{"#", "Date", "First", "Last", "Phone", "Email", "Service", "Problem", "Source", "Action", "Member", "Outcome", "Notes", "Mkt", "Location"},
			{"1", "8/25/2026", "A", "B", "", "", "Individual Therapy", "Anxiety", "Google", "Scheduled", "Nicole", "Booked", "", "Yes", "Fort Lauderdale"},
		},
		rentalRows: [][]string{
			{"Week", "", "Grand Total"},
			{"8/24/2026", "", "$100"},
		},
	}

	svc := New(sheets, nil, nil, store, log)

	if _, _, loaded := svc.Snapshot(); loaded {
		t.Fatalf("fresh service should have no document")
	}

	if err := svc.Refresh(context.Background()); err != nil {
		t.Fatalf("Refresh: %v", err)
	}

	data, ts, loaded := svc.Snapshot()
	if !loaded || ts.IsZero() {
		t.Fatalf("document should be loaded after refresh")
	}

	var doc map[string]json.RawMessage
	if err := json.Unmarshal(data, &doc); err != nil {
		t.Fatalf("document is not valid JSON: %v", err)
	}
	for _, key := range []string{"all", "ytd", "lastweek", "_monthlyRevenue", "_rental", "_cashflow", "_generated"} {
		if _, ok := doc[key]; !ok {
			t.Fatalf("document missing key %q", key)
		}
	}

	var all struct {
		Total  int `json:"total"`
		Booked int `json:"booked"`
	}
	if err := json.Unmarshal(doc["all"], &all); err != nil {
		t.Fatalf("all block: %v", err)
	}
	if all.Total != 1 || all.Booked != 1 {
		t.Fatalf("all = %+v, want 1/1", all)
	}

	var rental struct {
		AllTime struct {
			GT int64 `json:"gt"`
		} `json:"allTime"`
	}
	if err := json.Unmarshal(doc["_rental"], &rental); err != nil {
		t.Fatalf("rental block: %v", err)
	}
	if rental.AllTime.GT != 100 {
		t.Fatalf("rental all-time = %d, want 100", rental.AllTime.GT)
	}
}
