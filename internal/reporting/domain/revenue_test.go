package domain

import (
	"testing"

	leadsdomain "bayview_dashboard_backend/internal/leads/domain"
)

func TestBuildMonthlyRevenue(t *testing.T) {
	leads := []leadsdomain.Lead{
		{Date: day(2026, 7, 3), ServiceRaw: "individual therapy", Booked: true},
		{Date: day(2026, 7, 10), ServiceRaw: "psychological testing", Booked: true},
		{Date: day(2026, 7, 12), ServiceRaw: "adhd evaluation", Booked: true},
		{Date: day(2026, 8, 1), ServiceRaw: "couples therapy", Booked: true},
		{Date: day(2026, 8, 2), ServiceRaw: "couples therapy"}, // not booked
	}

	months := BuildMonthlyRevenue(leads)

	if len(months) != 2 {
		t.Fatalf("got %d months, want 2", len(months))
	}
	jul := months[0]
	if jul.Month != "2026-07" || jul.TherapyBooked != 1 || jul.TestingBooked != 2 {
		t.Fatalf("July = %+v", jul)
	}
	aug := months[1]
	if aug.Month != "2026-08" || aug.TherapyBooked != 1 || aug.TestingBooked != 0 {
		t.Fatalf("August = %+v", aug)
	}
}

func TestBuildMonthlyRevenueEmpty(t *testing.T) {
	if got := BuildMonthlyRevenue(nil); len(got) != 0 {
		t.Fatalf("expected empty result, got %+v", got)
	}
}
