package domain

import (
	"time"

	leads "bayview_dashboard_backend/internal/leads/domain"
	rentals "bayview_dashboard_backend/internal/rentals/domain"
)

// Dashboard is the complete precomputed document the frontend consumes.
// The underscore-prefixed sections sit alongside the period keys rather
// than under a nested object, which is what the frontend expects.
type Dashboard struct {
	All      *Period `json:"all"`
	YTD      *Period `json:"ytd"`
	LastYear *Period `json:"lastyear"`
	Month    *Period `json:"month"`
	Week     *Period `json:"week"`
	LastWeek *Period `json:"lastweek"`
	Today    *Period `json:"today"`

	MonthlyRevenue []MonthRevenue `json:"_monthlyRevenue"`
	Rental         *RentalReport  `json:"_rental"`
	Cashflow       *Cashflow      `json:"_cashflow"`
	Generated      string         `json:"_generated"`
}

// BuildDashboard assembles the full document from both sources: sheet rows
// already converted to domain values, plus the database-backed leads and
// rental entries recorded through the API.
func BuildDashboard(allLeads []leads.Lead, sheet *rentals.SheetData, dbWeekly []rentals.WeekTotals, dbTherapists []rentals.TherapistTotal, now time.Time) *Dashboard {
	periods := BuildLeadPeriods(allLeads, now)

	rental := BuildRentalReport(sheet, now)
	if len(dbWeekly) > 0 {
		rental = MergeRental(rental, dbWeekly, dbTherapists, now)
	}

	return &Dashboard{
		All:      periods.All,
		YTD:      periods.YTD,
		LastYear: periods.LastYear,
		Month:    periods.Month,
		Week:     periods.Week,
		LastWeek: periods.LastWeek,
		Today:    periods.Today,

		MonthlyRevenue: BuildMonthlyRevenue(allLeads),
		Rental:         rental,
		Cashflow:       BuildCashflow(allLeads, now),
		Generated:      now.Format(time.RFC3339),
	}
}
