package domain

import (
	"sort"
	"strconv"
	"time"

	rentals "bayview_dashboard_backend/internal/rentals/domain"

	"github.com/shopspring/decimal"
)

const topTherapists = 60

// PeriodRentalSummary is one reporting window's rental totals.
type PeriodRentalSummary struct {
	GT      int64 `json:"gt"`
	CS      int64 `json:"cs"`
	FTL     int64 `json:"ftl"`
	PL      int64 `json:"pl"`
	Mkt     int64 `json:"mkt"`
	Testing int64 `json:"testing"`
	Weeks   int   `json:"weeks"`
	AvgWeek int64 `json:"avgWeek"`
}

// RentalMonth is one month's rental totals.
type RentalMonth struct {
	Month   string `json:"month"`
	GT      int64  `json:"gt"`
	CS      int64  `json:"cs"`
	FTL     int64  `json:"ftl"`
	PL      int64  `json:"pl"`
	Mkt     int64  `json:"mkt"`
	Testing int64  `json:"testing"`
	Weeks   int    `json:"weeks"`
}

// RentalYear is one year's rental totals.
type RentalYear struct {
	Year    string `json:"year"`
	GT      int64  `json:"gt"`
	CS      int64  `json:"cs"`
	FTL     int64  `json:"ftl"`
	PL      int64  `json:"pl"`
	Mkt     int64  `json:"mkt"`
	Testing int64  `json:"testing"`
}

// RentalReport is the full rental section of the dashboard document.
type RentalReport struct {
	Weekly   []rentals.WeekTotals `json:"weekly"`
	Weekly52 []rentals.WeekTotals `json:"weekly52"`
	Monthly  []RentalMonth        `json:"monthly"`
	Yearly   []RentalYear         `json:"yearly"`

	Therapists     []rentals.TherapistTotal `json:"therapists"`
	MktTherapists  []rentals.TherapistTotal `json:"mktTherapists"`
	TestTherapists []rentals.TherapistTotal `json:"testTherapists"`

	AllTime   PeriodRentalSummary `json:"allTime"`
	YTD       PeriodRentalSummary `json:"ytd"`
	LastYear  PeriodRentalSummary `json:"lastYear"`
	ThisMonth PeriodRentalSummary `json:"thisMonth"`
	ThisWeek  PeriodRentalSummary `json:"thisWeek"`
	LastWeek  PeriodRentalSummary `json:"lastWeek"`
	Today     PeriodRentalSummary `json:"today"`
	LastMonth PeriodRentalSummary `json:"lastMonth"`
	PrevYTD   PeriodRentalSummary `json:"prevYtd"`
	PrevLy    PeriodRentalSummary `json:"prevLy"`

	YTDTherapists       []rentals.TherapistTotal `json:"ytdTherapists"`
	LyTherapists        []rentals.TherapistTotal `json:"lyTherapists"`
	ThisMonthTherapists []rentals.TherapistTotal `json:"thisMonthTherapists"`
	ThisWeekTherapists  []rentals.TherapistTotal `json:"thisWeekTherapists"`
	LastWeekTherapists  []rentals.TherapistTotal `json:"lastWeekTherapists"`
	TodayTherapists     []rentals.TherapistTotal `json:"todayTherapists"`
	LastMonthTherapists []rentals.TherapistTotal `json:"lastMonthTherapists"`

	MktYTDTherapists       []rentals.TherapistTotal `json:"mktYtdTherapists"`
	MktLyTherapists        []rentals.TherapistTotal `json:"mktLyTherapists"`
	MktThisMonthTherapists []rentals.TherapistTotal `json:"mktThisMonthTherapists"`
	MktThisWeekTherapists  []rentals.TherapistTotal `json:"mktThisWeekTherapists"`
	MktLastWeekTherapists  []rentals.TherapistTotal `json:"mktLastWeekTherapists"`

	TestYTDTherapists       []rentals.TherapistTotal `json:"testYtdTherapists"`
	TestLyTherapists        []rentals.TherapistTotal `json:"testLyTherapists"`
	TestThisMonthTherapists []rentals.TherapistTotal `json:"testThisMonthTherapists"`
	TestThisWeekTherapists  []rentals.TherapistTotal `json:"testThisWeekTherapists"`
	TestLastWeekTherapists  []rentals.TherapistTotal `json:"testLastWeekTherapists"`
}

// rentalWindows holds the standard period selections of the weekly list.
type rentalWindows struct {
	thisYear  []rentals.WeekTotals
	lastYear  []rentals.WeekTotals
	thisMonth []rentals.WeekTotals
	thisWeek  []rentals.WeekTotals
	lastWeek  []rentals.WeekTotals
	today     []rentals.WeekTotals
	lastMonth []rentals.WeekTotals
	prevYtd   []rentals.WeekTotals
	prevLy    []rentals.WeekTotals
}

func filterWeeks(weekly []rentals.WeekTotals, keep func(rentals.WeekTotals) bool) []rentals.WeekTotals {
	out := make([]rentals.WeekTotals, 0, len(weekly))
	for _, w := range weekly {
		if keep(w) {
			out = append(out, w)
		}
	}
	return out
}

// selectRentalWindows slices the weekly list into the reporting windows.
// Month and year windows key off a week's end date; the week and today
// windows use the full start..end span.
func selectRentalWindows(weekly []rentals.WeekTotals, reference time.Time) rentalWindows {
	today := midnight(reference)
	year, month := today.Year(), today.Month()
	loc := today.Location()

	weekStart := today.AddDate(0, 0, -((int(today.Weekday()) + 6) % 7))
	weekEnd := weekStart.AddDate(0, 0, 6)
	lastWeekStart := weekStart.AddDate(0, 0, -7)
	lastWeekEnd := weekStart.AddDate(0, 0, -1)
	lastMonth := time.Date(year, month, 1, 0, 0, 0, 0, loc).AddDate(0, 0, -1)
	prevYtdEnd := time.Date(year-1, month, today.Day(), 0, 0, 0, 0, loc)

	return rentalWindows{
		thisYear: filterWeeks(weekly, func(w rentals.WeekTotals) bool {
			return w.End.Year() == year
		}),
		lastYear: filterWeeks(weekly, func(w rentals.WeekTotals) bool {
			return w.End.Year() == year-1
		}),
		thisMonth: filterWeeks(weekly, func(w rentals.WeekTotals) bool {
			return w.End.Year() == year && w.End.Month() == month
		}),
		thisWeek: filterWeeks(weekly, func(w rentals.WeekTotals) bool {
			return !w.Start.After(weekEnd) && !w.End.Before(weekStart)
		}),
		lastWeek: filterWeeks(weekly, func(w rentals.WeekTotals) bool {
			return !w.Start.After(lastWeekEnd) && !w.End.Before(lastWeekStart)
		}),
		today: filterWeeks(weekly, func(w rentals.WeekTotals) bool {
			return !w.Start.After(today) && !w.End.Before(today)
		}),
		lastMonth: filterWeeks(weekly, func(w rentals.WeekTotals) bool {
			return w.End.Year() == lastMonth.Year() && w.End.Month() == lastMonth.Month()
		}),
		prevYtd: filterWeeks(weekly, func(w rentals.WeekTotals) bool {
			return w.End.Year() == year-1 && !w.End.After(prevYtdEnd)
		}),
		prevLy: filterWeeks(weekly, func(w rentals.WeekTotals) bool {
			return w.End.Year() == year-2
		}),
	}
}

func summarizeWeeks(weekly []rentals.WeekTotals) PeriodRentalSummary {
	s := PeriodRentalSummary{Weeks: len(weekly)}
	for _, w := range weekly {
		s.GT += w.Total
		s.CS += w.CS
		s.FTL += w.FTL
		s.PL += w.PL
		s.Mkt += w.Mkt
		s.Testing += w.Testing
	}
	if s.Weeks > 0 {
		s.AvgWeek = s.GT / int64(s.Weeks)
	}
	return s
}

func rollupWeeks(weekly []rentals.WeekTotals) ([]RentalMonth, []RentalYear) {
	type bucket struct {
		gt, cs, ftl, pl, mkt, testing int64
		weeks                         int
	}
	monthMap := map[string]*bucket{}
	yearMap := map[string]*bucket{}

	add := func(m map[string]*bucket, key string, w rentals.WeekTotals, countWeek bool) {
		b, ok := m[key]
		if !ok {
			b = &bucket{}
			m[key] = b
		}
		b.gt += w.Total
		b.cs += w.CS
		b.ftl += w.FTL
		b.pl += w.PL
		b.mkt += w.Mkt
		b.testing += w.Testing
		if countWeek {
			b.weeks++
		}
	}

	for _, w := range weekly {
		end := w.End
		if end.IsZero() {
			end = w.Start
		}
		if end.IsZero() {
			continue
		}
		add(monthMap, end.Format("2006-01"), w, true)
		add(yearMap, strconv.Itoa(end.Year()), w, false)
	}

	monthKeys := make([]string, 0, len(monthMap))
	for k := range monthMap {
		monthKeys = append(monthKeys, k)
	}
	sort.Strings(monthKeys)
	monthly := make([]RentalMonth, 0, len(monthKeys))
	for _, k := range monthKeys {
		b := monthMap[k]
		monthly = append(monthly, RentalMonth{
			Month: k, GT: b.gt, CS: b.cs, FTL: b.ftl, PL: b.pl,
			Mkt: b.mkt, Testing: b.testing, Weeks: b.weeks,
		})
	}

	yearKeys := make([]string, 0, len(yearMap))
	for k := range yearMap {
		yearKeys = append(yearKeys, k)
	}
	sort.Strings(yearKeys)
	yearly := make([]RentalYear, 0, len(yearKeys))
	for _, k := range yearKeys {
		b := yearMap[k]
		yearly = append(yearly, RentalYear{
			Year: k, GT: b.gt, CS: b.cs, FTL: b.ftl, PL: b.pl,
			Mkt: b.mkt, Testing: b.testing,
		})
	}
	return monthly, yearly
}

// sumLines accumulates therapist week lines into ranked totals. locFilter nil
// means "rentable sites only" (marketing and testing excluded).
func sumLines(lines []rentals.TherapistWeekAmount, weekSet map[string]struct{}, locFilter map[string]struct{}, n int) []rentals.TherapistTotal {
	totals := map[rentals.TherapistKey]decimal.Decimal{}
	var order []rentals.TherapistKey

	for _, line := range lines {
		if weekSet != nil {
			if _, ok := weekSet[line.Week]; !ok {
				continue
			}
		}
		if locFilter != nil {
			if _, ok := locFilter[line.Loc]; !ok {
				continue
			}
		} else if line.Loc == rentals.LocMKT || line.Loc == rentals.LocTesting {
			continue
		}
		key := line.Key()
		if _, seen := totals[key]; !seen {
			order = append(order, key)
		}
		totals[key] = totals[key].Add(line.Amount)
	}

	out := make([]rentals.TherapistTotal, 0, len(order))
	for _, key := range order {
		out = append(out, rentals.TherapistTotal{
			Name:  key.Name,
			Col:   key.Col,
			Loc:   key.Loc,
			Total: totals[key].IntPart(),
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

func weekSet(weekly []rentals.WeekTotals) map[string]struct{} {
	set := make(map[string]struct{}, len(weekly))
	for _, w := range weekly {
		set[w.Week] = struct{}{}
	}
	return set
}

var (
	mktOnly  = map[string]struct{}{rentals.LocMKT: {}}
	testOnly = map[string]struct{}{rentals.LocTesting: {}}
)

func stripDates(weekly []rentals.WeekTotals) []rentals.WeekTotals {
	out := make([]rentals.WeekTotals, len(weekly))
	copy(out, weekly)
	return out
}

// BuildRentalReport computes the full rental section from the parsed
// accounting sheet.
func BuildRentalReport(sheet *rentals.SheetData, reference time.Time) *RentalReport {
	weekly := sheet.Weekly
	lines := sheet.Lines
	today := midnight(reference)
	cutoff52 := today.AddDate(0, 0, -52*7)

	monthly, yearly := rollupWeeks(weekly)
	w := selectRentalWindows(weekly, reference)

	weekly52 := filterWeeks(weekly, func(wk rentals.WeekTotals) bool {
		return !wk.Start.Before(cutoff52)
	})

	periodTherapists := func(period []rentals.WeekTotals, locFilter map[string]struct{}) []rentals.TherapistTotal {
		return sumLines(lines, weekSet(period), locFilter, topTherapists)
	}

	return &RentalReport{
		Weekly:   stripDates(weekly),
		Weekly52: stripDates(weekly52),
		Monthly:  monthly,
		Yearly:   yearly,

		Therapists:     sumLines(lines, nil, nil, topTherapists),
		MktTherapists:  sumLines(lines, nil, mktOnly, 0),
		TestTherapists: sumLines(lines, nil, testOnly, 0),

		AllTime:   summarizeWeeks(weekly),
		YTD:       summarizeWeeks(w.thisYear),
		LastYear:  summarizeWeeks(w.lastYear),
		ThisMonth: summarizeWeeks(w.thisMonth),
		ThisWeek:  summarizeWeeks(w.thisWeek),
		LastWeek:  summarizeWeeks(w.lastWeek),
		Today:     summarizeWeeks(w.today),
		LastMonth: summarizeWeeks(w.lastMonth),
		PrevYTD:   summarizeWeeks(w.prevYtd),
		PrevLy:    summarizeWeeks(w.prevLy),

		YTDTherapists:       periodTherapists(w.thisYear, nil),
		LyTherapists:        periodTherapists(w.lastYear, nil),
		ThisMonthTherapists: periodTherapists(w.thisMonth, nil),
		ThisWeekTherapists:  periodTherapists(w.thisWeek, nil),
		LastWeekTherapists:  periodTherapists(w.lastWeek, nil),
		TodayTherapists:     periodTherapists(w.today, nil),
		LastMonthTherapists: periodTherapists(w.lastMonth, nil),

		MktYTDTherapists:       periodTherapists(w.thisYear, mktOnly),
		MktLyTherapists:        periodTherapists(w.lastYear, mktOnly),
		MktThisMonthTherapists: periodTherapists(w.thisMonth, mktOnly),
		MktThisWeekTherapists:  periodTherapists(w.thisWeek, mktOnly),
		MktLastWeekTherapists:  periodTherapists(w.lastWeek, mktOnly),

		TestYTDTherapists:       periodTherapists(w.thisYear, testOnly),
		TestLyTherapists:        periodTherapists(w.lastYear, testOnly),
		TestThisMonthTherapists: periodTherapists(w.thisMonth, testOnly),
		TestThisWeekTherapists:  periodTherapists(w.thisWeek, testOnly),
		TestLastWeekTherapists:  periodTherapists(w.lastWeek, testOnly),
	}
}
