package domain

import (
	"sort"
	"time"

	leads "bayview_dashboard_backend/internal/leads/domain"
	rentals "bayview_dashboard_backend/internal/rentals/domain"
)

// mergeKey identifies a therapist across the two rental sources. The sheet
// column header is deliberately not part of the key so a manually recorded
// entry lands on the matching sheet therapist.
type mergeKey struct {
	name string
	loc  string
}

func indexTherapists(list []rentals.TherapistTotal) (map[mergeKey]*rentals.TherapistTotal, []mergeKey) {
	idx := make(map[mergeKey]*rentals.TherapistTotal, len(list))
	order := make([]mergeKey, 0, len(list))
	for i := range list {
		t := list[i]
		key := mergeKey{name: t.Name, loc: t.Loc}
		if _, seen := idx[key]; seen {
			continue
		}
		idx[key] = &t
		order = append(order, key)
	}
	return idx, order
}

func rankedTherapists(idx map[mergeKey]*rentals.TherapistTotal, order []mergeKey, n int) []rentals.TherapistTotal {
	out := make([]rentals.TherapistTotal, 0, len(order))
	for _, key := range order {
		out = append(out, *idx[key])
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Total > out[j].Total })
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// MergeRental folds database rental entries into the sheet-derived report.
// Weeks sharing a week label are summed, database-only weeks are appended,
// and every rollup and period summary is recomputed over the combined list.
//
// Per-period therapist lists keep the sheet's period breakdown and add each
// database therapist's all-time total scaled by the share of database weeks
// falling inside the period. That apportionment is an approximation: the
// database tracks all-time therapist totals, not per-week ones, so a
// therapist whose entries cluster in one period is spread across all of
// them. Accepted because manual entries are a small correction layer on top
// of the sheet.
func MergeRental(base *RentalReport, dbWeekly []rentals.WeekTotals, dbTherapists []rentals.TherapistTotal, reference time.Time) *RentalReport {
	today := midnight(reference)

	merged := make([]rentals.WeekTotals, len(base.Weekly))
	copy(merged, base.Weekly)
	for i := range merged {
		if sd, ok := leads.ParseDate(merged[i].Week, today); ok {
			merged[i].Start = sd
			merged[i].End = sd.AddDate(0, 0, 6)
		} else {
			merged[i].Start = time.Time{}
			merged[i].End = time.Time{}
		}
	}

	weekIndex := make(map[string]int, len(merged))
	for i, w := range merged {
		weekIndex[w.Week] = i
	}
	for _, dbw := range dbWeekly {
		if i, ok := weekIndex[dbw.Week]; ok {
			merged[i].Total += dbw.Total
			merged[i].CS += dbw.CS
			merged[i].FTL += dbw.FTL
			merged[i].PL += dbw.PL
			merged[i].Mkt += dbw.Mkt
			merged[i].Testing += dbw.Testing
		} else {
			weekIndex[dbw.Week] = len(merged)
			merged = append(merged, dbw)
		}
	}
	sort.SliceStable(merged, func(i, j int) bool { return merged[i].Week < merged[j].Week })

	gsTherapists, gsOrder := indexTherapists(base.Therapists)
	gsMkt, mktOrder := indexTherapists(base.MktTherapists)
	gsTest, testOrder := indexTherapists(base.TestTherapists)

	for _, dbt := range dbTherapists {
		target, order := gsTherapists, &gsOrder
		switch dbt.Loc {
		case rentals.LocMKT:
			target, order = gsMkt, &mktOrder
		case rentals.LocTesting:
			target, order = gsTest, &testOrder
		}
		key := mergeKey{name: dbt.Name, loc: dbt.Loc}
		if existing, ok := target[key]; ok {
			existing.Total += dbt.Total
		} else {
			t := dbt
			target[key] = &t
			*order = append(*order, key)
		}
	}

	monthly, yearly := rollupWeeks(merged)
	w := selectRentalWindows(merged, reference)

	cutoff52 := today.AddDate(0, 0, -52*7)
	weekly52 := filterWeeks(merged, func(wk rentals.WeekTotals) bool {
		return !wk.Start.IsZero() && !wk.Start.Before(cutoff52)
	})

	// Share of recorded database weeks that land in the period.
	dbRatio := func(period []rentals.WeekTotals) float64 {
		if len(dbWeekly) == 0 {
			return 0
		}
		periodKeys := weekSet(period)
		inPeriod := 0
		for _, dw := range dbWeekly {
			if _, ok := periodKeys[dw.Week]; ok {
				inPeriod++
			}
		}
		return float64(inPeriod) / float64(len(dbWeekly))
	}

	periodTherapists := func(period []rentals.WeekTotals, gsList []rentals.TherapistTotal, locFilter map[string]struct{}) []rentals.TherapistTotal {
		idx, order := indexTherapists(gsList)
		ratio := dbRatio(period)
		for _, dbt := range dbTherapists {
			if locFilter != nil {
				if _, ok := locFilter[dbt.Loc]; !ok {
					continue
				}
			} else if dbt.Loc == rentals.LocMKT || dbt.Loc == rentals.LocTesting {
				continue
			}
			scaled := int64(float64(dbt.Total) * ratio)
			if scaled <= 0 {
				continue
			}
			key := mergeKey{name: dbt.Name, loc: dbt.Loc}
			if existing, ok := idx[key]; ok {
				existing.Total += scaled
			} else {
				t := dbt
				t.Total = scaled
				idx[key] = &t
				order = append(order, key)
			}
		}
		return rankedTherapists(idx, order, topTherapists)
	}

	return &RentalReport{
		Weekly:   stripDates(merged),
		Weekly52: stripDates(weekly52),
		Monthly:  monthly,
		Yearly:   yearly,

		Therapists:     rankedTherapists(gsTherapists, gsOrder, topTherapists),
		MktTherapists:  rankedTherapists(gsMkt, mktOrder, 0),
		TestTherapists: rankedTherapists(gsTest, testOrder, 0),

		AllTime:   summarizeWeeks(merged),
		YTD:       summarizeWeeks(w.thisYear),
		LastYear:  summarizeWeeks(w.lastYear),
		ThisMonth: summarizeWeeks(w.thisMonth),
		ThisWeek:  summarizeWeeks(w.thisWeek),
		LastWeek:  summarizeWeeks(w.lastWeek),
		Today:     summarizeWeeks(w.today),
		LastMonth: summarizeWeeks(w.lastMonth),
		PrevYTD:   summarizeWeeks(w.prevYtd),
		PrevLy:    summarizeWeeks(w.prevLy),

		YTDTherapists:       periodTherapists(w.thisYear, base.YTDTherapists, nil),
		LyTherapists:        periodTherapists(w.lastYear, base.LyTherapists, nil),
		ThisMonthTherapists: periodTherapists(w.thisMonth, base.ThisMonthTherapists, nil),
		ThisWeekTherapists:  periodTherapists(w.thisWeek, base.ThisWeekTherapists, nil),
		LastWeekTherapists:  periodTherapists(w.lastWeek, base.LastWeekTherapists, nil),
		TodayTherapists:     periodTherapists(w.today, base.TodayTherapists, nil),
		LastMonthTherapists: periodTherapists(w.lastMonth, base.LastMonthTherapists, nil),

		MktYTDTherapists:       periodTherapists(w.thisYear, base.MktYTDTherapists, mktOnly),
		MktLyTherapists:        periodTherapists(w.lastYear, base.MktLyTherapists, mktOnly),
		MktThisMonthTherapists: periodTherapists(w.thisMonth, base.MktThisMonthTherapists, mktOnly),
		MktThisWeekTherapists:  periodTherapists(w.thisWeek, base.MktThisWeekTherapists, mktOnly),
		MktLastWeekTherapists:  periodTherapists(w.lastWeek, base.MktLastWeekTherapists, mktOnly),

		TestYTDTherapists:       periodTherapists(w.thisYear, base.TestYTDTherapists, testOnly),
		TestLyTherapists:        periodTherapists(w.lastYear, base.TestLyTherapists, testOnly),
		TestThisMonthTherapists: periodTherapists(w.thisMonth, base.TestThisMonthTherapists, testOnly),
		TestThisWeekTherapists:  periodTherapists(w.thisWeek, base.TestThisWeekTherapists, testOnly),
		TestLastWeekTherapists:  periodTherapists(w.lastWeek, base.TestLastWeekTherapists, testOnly),
	}
}
