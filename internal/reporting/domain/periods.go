package domain

import (
	"time"

	leadsdomain "bayview_dashboard_backend/internal/leads/domain"
)

// windows holds every reporting boundary derived from the reference day.
// All boundaries are inclusive.
type windows struct {
	today      time.Time
	yearStart  time.Time
	lyStart    time.Time
	lyEnd      time.Time
	monthStart time.Time
	weekStart  time.Time

	prevYtdStart   time.Time
	prevYtdEnd     time.Time
	prevLyStart    time.Time
	prevLyEnd      time.Time
	prevMonthStart time.Time
	prevMonthEnd   time.Time
	prevWeekStart  time.Time
	prevWeekEnd    time.Time
	prev2WkStart   time.Time
	prev2WkEnd     time.Time
	yesterday      time.Time
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

func newWindows(reference time.Time) windows {
	today := midnight(reference)
	year, month := today.Year(), today.Month()
	loc := today.Location()

	monthStart := time.Date(year, month, 1, 0, 0, 0, 0, loc)
	weekStart := today.AddDate(0, 0, -((int(today.Weekday()) + 6) % 7))

	return windows{
		today:      today,
		yearStart:  time.Date(year, 1, 1, 0, 0, 0, 0, loc),
		lyStart:    time.Date(year-1, 1, 1, 0, 0, 0, 0, loc),
		lyEnd:      time.Date(year-1, 12, 31, 0, 0, 0, 0, loc),
		monthStart: monthStart,
		weekStart:  weekStart,

		prevYtdStart: time.Date(year-1, 1, 1, 0, 0, 0, 0, loc),
		// same calendar day one year back; Date normalizes Feb 29 overflow
		prevYtdEnd:     time.Date(year-1, month, today.Day(), 0, 0, 0, 0, loc),
		prevLyStart:    time.Date(year-2, 1, 1, 0, 0, 0, 0, loc),
		prevLyEnd:      time.Date(year-2, 12, 31, 0, 0, 0, 0, loc),
		prevMonthStart: monthStart.AddDate(0, -1, 0),
		prevMonthEnd:   monthStart.AddDate(0, 0, -1),
		prevWeekStart:  weekStart.AddDate(0, 0, -7),
		prevWeekEnd:    weekStart.AddDate(0, 0, -1),
		prev2WkStart:   weekStart.AddDate(0, 0, -14),
		prev2WkEnd:     weekStart.AddDate(0, 0, -8),
		yesterday:      today.AddDate(0, 0, -1),
	}
}

func sameDay(a, b time.Time) bool {
	return a.Year() == b.Year() && a.YearDay() == b.YearDay()
}

func between(d, start, end time.Time) bool {
	return !d.Before(start) && !d.After(end)
}

func filterLeads(leads []leadsdomain.Lead, keep func(leadsdomain.Lead) bool) []leadsdomain.Lead {
	out := make([]leadsdomain.Lead, 0, len(leads))
	for _, l := range leads {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out
}

// LeadPeriods is the per-window lead aggregate set of the dashboard.
type LeadPeriods struct {
	All      *Period `json:"all"`
	YTD      *Period `json:"ytd"`
	LastYear *Period `json:"lastyear"`
	Month    *Period `json:"month"`
	Week     *Period `json:"week"`
	LastWeek *Period `json:"lastweek"`
	Today    *Period `json:"today"`
}

// BuildLeadPeriods slices the full lead list into the standard reporting
// windows and aggregates each, pairing every window with its comparison
// window one step back.
func BuildLeadPeriods(leads []leadsdomain.Lead, reference time.Time) *LeadPeriods {
	w := newWindows(reference)

	ytd := filterLeads(leads, func(l leadsdomain.Lead) bool { return between(l.Date, w.yearStart, w.today) })
	lastYear := filterLeads(leads, func(l leadsdomain.Lead) bool { return between(l.Date, w.lyStart, w.lyEnd) })
	month := filterLeads(leads, func(l leadsdomain.Lead) bool { return !l.Date.Before(w.monthStart) })
	week := filterLeads(leads, func(l leadsdomain.Lead) bool { return !l.Date.Before(w.weekStart) })
	today := filterLeads(leads, func(l leadsdomain.Lead) bool { return sameDay(l.Date, w.today) })

	prevYtd := filterLeads(leads, func(l leadsdomain.Lead) bool { return between(l.Date, w.prevYtdStart, w.prevYtdEnd) })
	prevLy := filterLeads(leads, func(l leadsdomain.Lead) bool { return between(l.Date, w.prevLyStart, w.prevLyEnd) })
	prevMonth := filterLeads(leads, func(l leadsdomain.Lead) bool { return between(l.Date, w.prevMonthStart, w.prevMonthEnd) })
	prevWeek := filterLeads(leads, func(l leadsdomain.Lead) bool { return between(l.Date, w.prevWeekStart, w.prevWeekEnd) })
	prev2Week := filterLeads(leads, func(l leadsdomain.Lead) bool { return between(l.Date, w.prev2WkStart, w.prev2WkEnd) })
	yesterday := filterLeads(leads, func(l leadsdomain.Lead) bool { return sameDay(l.Date, w.yesterday) })

	return &LeadPeriods{
		All:      BuildPeriod(leads, nil),
		YTD:      BuildPeriod(ytd, prevYtd),
		LastYear: BuildPeriod(lastYear, prevLy),
		Month:    BuildPeriod(month, prevMonth),
		Week:     BuildPeriod(week, prevWeek),
		LastWeek: BuildPeriod(prevWeek, prev2Week),
		Today:    BuildPeriod(today, yesterday),
	}
}
