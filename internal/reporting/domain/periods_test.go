package domain

import (
	"testing"

	leadsdomain "bayview_dashboard_backend/internal/leads/domain"
)

func TestBuildLeadPeriodsWindows(t *testing.T) {
	// Thursday; the current week runs Mon 08/24 - Sun 08/30.
	ref := day(2026, 8, 27)

	leads := []leadsdomain.Lead{
		{Date: day(2026, 8, 27), Location: "FTL", Source: "Google", Outcome: "Booked", Booked: true}, // today
		{Date: day(2026, 8, 26), Location: "FTL", Source: "Google", Outcome: "Called"},               // yesterday
		{Date: day(2026, 8, 25), Location: "FTL", Source: "Google", Outcome: "Called"},               // this week
		{Date: day(2026, 8, 20), Location: "FTL", Source: "Google", Outcome: "Called"},               // last week
		{Date: day(2026, 8, 12), Location: "FTL", Source: "Google", Outcome: "Called"},               // two weeks back
		{Date: day(2026, 1, 15), Location: "FTL", Source: "Google", Outcome: "Called"},               // ytd only
		{Date: day(2025, 3, 1), Location: "FTL", Source: "Google", Outcome: "Called"},                // last year, inside prev ytd
		{Date: day(2025, 11, 1), Location: "FTL", Source: "Google", Outcome: "Called"},               // last year, after prev ytd cutoff
	}

	p := BuildLeadPeriods(leads, ref)

	if p.All.Total != 8 {
		t.Fatalf("All.Total = %d, want 8", p.All.Total)
	}
	if p.YTD.Total != 6 {
		t.Fatalf("YTD.Total = %d, want 6", p.YTD.Total)
	}
	if p.YTD.Prev == nil || p.YTD.Prev.Total != 1 {
		t.Fatalf("YTD.Prev = %+v, want total 1", p.YTD.Prev)
	}
	if p.LastYear.Total != 2 {
		t.Fatalf("LastYear.Total = %d, want 2", p.LastYear.Total)
	}
	if p.Week.Total != 3 {
		t.Fatalf("Week.Total = %d, want 3", p.Week.Total)
	}
	if p.Week.Prev == nil || p.Week.Prev.Total != 1 {
		t.Fatalf("Week.Prev = %+v, want total 1", p.Week.Prev)
	}
	if p.LastWeek.Total != 1 {
		t.Fatalf("LastWeek.Total = %d, want 1", p.LastWeek.Total)
	}
	if p.LastWeek.Prev == nil || p.LastWeek.Prev.Total != 1 {
		t.Fatalf("LastWeek.Prev = %+v, want total 1", p.LastWeek.Prev)
	}
	if p.Today.Total != 1 || p.Today.Booked != 1 {
		t.Fatalf("Today = %d/%d, want 1/1", p.Today.Total, p.Today.Booked)
	}
	if p.Today.Prev == nil || p.Today.Prev.Total != 1 {
		t.Fatalf("Today.Prev = %+v, want total 1", p.Today.Prev)
	}
}
