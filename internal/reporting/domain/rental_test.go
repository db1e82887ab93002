package domain

import (
	"testing"
	"time"

	rentals "bayview_dashboard_backend/internal/rentals/domain"

	"github.com/shopspring/decimal"
)

func sheetWeek(week string, total, cs, ftl, pl, mkt, testing int64) rentals.WeekTotals {
	start, _ := time.Parse("1/2/2006", week)
	return rentals.WeekTotals{
		Week: week, Total: total, CS: cs, FTL: ftl, PL: pl, Mkt: mkt, Testing: testing,
		Start: start, End: start.AddDate(0, 0, 6),
	}
}

func line(week, name, loc string, amount int64) rentals.TherapistWeekAmount {
	return rentals.TherapistWeekAmount{
		Week: week, Name: name, Col: name, Loc: loc, Amount: decimal.NewFromInt(amount),
	}
}

func testSheet() *rentals.SheetData {
	return &rentals.SheetData{
		Weekly: []rentals.WeekTotals{
			sheetWeek("3/3/2025", 300, 0, 300, 0, 0, 0),   // last year, inside prev ytd
			sheetWeek("7/13/2026", 150, 0, 150, 0, 0, 0),  // last month
			sheetWeek("7/27/2026", 120, 0, 120, 0, 0, 0),  // ends 8/2, so it counts in August
			sheetWeek("8/17/2026", 200, 0, 200, 0, 0, 0),  // last week
			sheetWeek("8/24/2026", 100, 40, 20, 0, 25, 15), // this week
		},
		Lines: []rentals.TherapistWeekAmount{
			line("3/3/2025", "Dana", rentals.LocFTL, 300),
			line("7/13/2026", "Dana", rentals.LocFTL, 150),
			line("7/27/2026", "Dana", rentals.LocFTL, 120),
			line("8/17/2026", "Nicole", rentals.LocFTL, 200),
			line("8/24/2026", "Brittany", rentals.LocCS, 40),
			line("8/24/2026", "Nicole", rentals.LocFTL, 20),
			line("8/24/2026", "Mark", rentals.LocMKT, 25),
			line("8/24/2026", "Quinn", rentals.LocTesting, 15),
		},
	}
}

func TestBuildRentalReportSummaries(t *testing.T) {
	ref := day(2026, 8, 27) // Thursday; week runs 8/24 - 8/30
	r := BuildRentalReport(testSheet(), ref)

	if r.AllTime.GT != 870 || r.AllTime.Weeks != 5 {
		t.Fatalf("AllTime = %+v", r.AllTime)
	}
	if r.AllTime.AvgWeek != 174 {
		t.Fatalf("AvgWeek = %d, want 174", r.AllTime.AvgWeek)
	}

	if r.YTD.GT != 570 || r.YTD.Weeks != 4 {
		t.Fatalf("YTD = %+v", r.YTD)
	}
	if r.LastYear.GT != 300 {
		t.Fatalf("LastYear = %+v", r.LastYear)
	}
	if r.PrevYTD.GT != 300 {
		t.Fatalf("PrevYTD = %+v", r.PrevYTD)
	}
	if r.ThisWeek.GT != 100 || r.ThisWeek.Weeks != 1 {
		t.Fatalf("ThisWeek = %+v", r.ThisWeek)
	}
	if r.LastWeek.GT != 200 {
		t.Fatalf("LastWeek = %+v", r.LastWeek)
	}
	if r.Today.GT != 100 {
		t.Fatalf("Today = %+v", r.Today)
	}

	// Month membership follows the week's end date: the 7/27 week ends 8/2.
	if r.ThisMonth.GT != 420 || r.ThisMonth.Weeks != 3 {
		t.Fatalf("ThisMonth = %+v", r.ThisMonth)
	}
	if r.LastMonth.GT != 150 {
		t.Fatalf("LastMonth = %+v", r.LastMonth)
	}
}

func TestBuildRentalReportRollups(t *testing.T) {
	r := BuildRentalReport(testSheet(), day(2026, 8, 27))

	var aug *RentalMonth
	for i := range r.Monthly {
		if r.Monthly[i].Month == "2026-08" {
			aug = &r.Monthly[i]
		}
	}
	if aug == nil || aug.GT != 420 || aug.Weeks != 3 {
		t.Fatalf("August rollup = %+v", aug)
	}

	if len(r.Yearly) != 2 || r.Yearly[0].Year != "2025" || r.Yearly[1].GT != 570 {
		t.Fatalf("Yearly = %+v", r.Yearly)
	}

	// 2025 weeks fall outside the trailing 52-week window.
	if len(r.Weekly52) != 4 {
		t.Fatalf("Weekly52 has %d weeks, want 4", len(r.Weekly52))
	}
}

func TestBuildRentalReportTherapists(t *testing.T) {
	r := BuildRentalReport(testSheet(), day(2026, 8, 27))

	// Marketing and testing columns never appear in the site list.
	for _, th := range r.Therapists {
		if th.Loc == rentals.LocMKT || th.Loc == rentals.LocTesting {
			t.Fatalf("site therapist list contains %+v", th)
		}
	}
	if r.Therapists[0].Name != "Dana" || r.Therapists[0].Total != 570 {
		t.Fatalf("top therapist = %+v", r.Therapists[0])
	}

	if len(r.MktTherapists) != 1 || r.MktTherapists[0].Name != "Mark" || r.MktTherapists[0].Total != 25 {
		t.Fatalf("MktTherapists = %+v", r.MktTherapists)
	}
	if len(r.TestTherapists) != 1 || r.TestTherapists[0].Name != "Quinn" {
		t.Fatalf("TestTherapists = %+v", r.TestTherapists)
	}

	// Period lists only sum weeks inside the period.
	if len(r.ThisWeekTherapists) != 2 || r.ThisWeekTherapists[0].Name != "Brittany" {
		t.Fatalf("ThisWeekTherapists = %+v", r.ThisWeekTherapists)
	}
	for _, th := range r.YTDTherapists {
		if th.Name == "Dana" && th.Total != 270 {
			t.Fatalf("Dana YTD total = %d, want 270", th.Total)
		}
	}
	if len(r.MktThisWeekTherapists) != 1 || r.MktThisWeekTherapists[0].Total != 25 {
		t.Fatalf("MktThisWeekTherapists = %+v", r.MktThisWeekTherapists)
	}
}

func TestMergeRentalIdentityWithoutDBData(t *testing.T) {
	ref := day(2026, 8, 27)
	base := BuildRentalReport(testSheet(), ref)
	merged := MergeRental(base, nil, nil, ref)

	if merged.AllTime != base.AllTime {
		t.Fatalf("AllTime changed: %+v vs %+v", merged.AllTime, base.AllTime)
	}
	if len(merged.Weekly) != len(base.Weekly) {
		t.Fatalf("weekly length changed")
	}
	for i := range merged.Weekly {
		if merged.Weekly[i].Week != base.Weekly[i].Week || merged.Weekly[i].Total != base.Weekly[i].Total {
			t.Fatalf("weekly[%d] = %+v, want %+v", i, merged.Weekly[i], base.Weekly[i])
		}
	}
	if len(merged.Monthly) != len(base.Monthly) {
		t.Fatalf("monthly length changed")
	}
	for i := range merged.Monthly {
		if merged.Monthly[i] != base.Monthly[i] {
			t.Fatalf("monthly[%d] = %+v, want %+v", i, merged.Monthly[i], base.Monthly[i])
		}
	}
	if merged.Therapists[0] != base.Therapists[0] {
		t.Fatalf("therapists changed: %+v", merged.Therapists[0])
	}
}

func TestMergeRentalSumsSharedWeekOnce(t *testing.T) {
	ref := day(2026, 8, 27)
	base := BuildRentalReport(testSheet(), ref)

	dbWeekly := []rentals.WeekTotals{
		{Week: "8/24/2026", Total: 50, FTL: 50,
			Start: day(2026, 8, 24), End: day(2026, 8, 30)},
	}
	merged := MergeRental(base, dbWeekly, nil, ref)

	var wk *rentals.WeekTotals
	for i := range merged.Weekly {
		if merged.Weekly[i].Week == "8/24/2026" {
			wk = &merged.Weekly[i]
		}
	}
	if wk == nil || wk.Total != 150 || wk.FTL != 70 {
		t.Fatalf("merged week = %+v", wk)
	}
	if len(merged.Weekly) != len(base.Weekly) {
		t.Fatalf("shared week should not add a new entry")
	}

	// The monthly rollup sees the combined amount exactly once.
	for _, m := range merged.Monthly {
		if m.Month == "2026-08" && m.GT != 470 {
			t.Fatalf("August GT = %d, want 470", m.GT)
		}
	}
	if merged.ThisWeek.GT != 150 {
		t.Fatalf("ThisWeek.GT = %d, want 150", merged.ThisWeek.GT)
	}
}

func TestMergeRentalAppendsNewWeek(t *testing.T) {
	ref := day(2026, 8, 27)
	base := BuildRentalReport(testSheet(), ref)

	dbWeekly := []rentals.WeekTotals{
		{Week: "2026-06-01", Total: 80, CS: 80,
			Start: day(2026, 6, 1), End: day(2026, 6, 7)},
	}
	merged := MergeRental(base, dbWeekly, nil, ref)

	if len(merged.Weekly) != len(base.Weekly)+1 {
		t.Fatalf("weekly length = %d, want %d", len(merged.Weekly), len(base.Weekly)+1)
	}
	found := false
	for _, m := range merged.Monthly {
		if m.Month == "2026-06" {
			found = true
			if m.GT != 80 || m.Weeks != 1 {
				t.Fatalf("June rollup = %+v", m)
			}
		}
	}
	if !found {
		t.Fatalf("June missing from monthly rollup")
	}
	if merged.YTD.GT != base.YTD.GT+80 {
		t.Fatalf("YTD.GT = %d, want %d", merged.YTD.GT, base.YTD.GT+80)
	}
}

func TestMergeRentalTherapistApportionment(t *testing.T) {
	ref := day(2026, 8, 27)
	base := BuildRentalReport(testSheet(), ref)

	// Two recorded weeks, one inside the current year: period share is 1/2.
	dbWeekly := []rentals.WeekTotals{
		{Week: "2026-08-24", Total: 100, FTL: 100, Start: day(2026, 8, 24), End: day(2026, 8, 30)},
		{Week: "2024-01-01", Total: 100, FTL: 100, Start: day(2024, 1, 1), End: day(2024, 1, 7)},
	}
	dbTherapists := []rentals.TherapistTotal{
		{Name: "Dana", Col: "Dana", Loc: rentals.LocFTL, Total: 100},
		{Name: "Riley", Col: "Riley", Loc: rentals.LocFTL, Total: 1},
	}
	merged := MergeRental(base, dbWeekly, dbTherapists, ref)

	// All-time list gets the full database amount on top of the sheet total.
	var dana *rentals.TherapistTotal
	for i := range merged.Therapists {
		if merged.Therapists[i].Name == "Dana" {
			dana = &merged.Therapists[i]
		}
	}
	if dana == nil || dana.Total != 670 {
		t.Fatalf("merged Dana total = %+v, want 670", dana)
	}

	// Period lists only get the share of weeks landing in the period.
	var danaYtd *rentals.TherapistTotal
	for i := range merged.YTDTherapists {
		if merged.YTDTherapists[i].Name == "Dana" {
			danaYtd = &merged.YTDTherapists[i]
		}
	}
	if danaYtd == nil || danaYtd.Total != 320 {
		t.Fatalf("Dana YTD = %+v, want 320", danaYtd)
	}

	// A share that truncates to zero is dropped.
	for _, th := range merged.YTDTherapists {
		if th.Name == "Riley" {
			t.Fatalf("Riley should be dropped at ratio 1/2 of total 1")
		}
	}
}
