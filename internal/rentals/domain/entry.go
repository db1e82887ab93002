package domain

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"
)

// Rental entry categories.
const (
	CategoryRoomRental = "room_rental"
	CategoryMarketing  = "marketing"
	CategoryTesting    = "testing"
)

// Entry is one manually recorded rental amount for a therapist in a week.
type Entry struct {
	WeekStart time.Time
	WeekEnd   time.Time
	Therapist string
	Location  string
	Amount    decimal.Decimal
	Category  string
}

type weekAccumulator struct {
	total, cs, ftl, pl, mkt, testing decimal.Decimal
	start, end                       time.Time
}

// WeeklyFromEntries groups manually recorded entries into the same weekly
// totals shape the accounting sheet produces, so both sources merge cleanly.
// Entries with a non-positive amount are ignored. Marketing and testing
// entries land in their category buckets; everything else lands in the
// bucket of its site, defaulting to Fort Lauderdale.
func WeeklyFromEntries(entries []Entry) ([]WeekTotals, []TherapistTotal) {
	weeks := map[string]*weekAccumulator{}
	therapistTotals := map[TherapistKey]decimal.Decimal{}
	var therapistOrder []TherapistKey

	for _, e := range entries {
		if e.WeekStart.IsZero() || !e.Amount.IsPositive() {
			continue
		}
		end := e.WeekEnd
		if end.IsZero() {
			end = e.WeekStart
		}

		weekKey := e.WeekStart.Format("2006-01-02")
		acc, ok := weeks[weekKey]
		if !ok {
			acc = &weekAccumulator{start: e.WeekStart, end: end}
			weeks[weekKey] = acc
		}
		if e.WeekStart.Before(acc.start) {
			acc.start = e.WeekStart
		}
		if end.After(acc.end) {
			acc.end = end
		}

		acc.total = acc.total.Add(e.Amount)
		var therapistLoc string
		switch e.Category {
		case CategoryMarketing:
			acc.mkt = acc.mkt.Add(e.Amount)
			therapistLoc = LocMKT
		case CategoryTesting:
			acc.testing = acc.testing.Add(e.Amount)
			therapistLoc = LocTesting
		default:
			switch e.Location {
			case LocCS:
				acc.cs = acc.cs.Add(e.Amount)
			case LocPL:
				acc.pl = acc.pl.Add(e.Amount)
			default:
				acc.ftl = acc.ftl.Add(e.Amount)
			}
			therapistLoc = e.Location
			if therapistLoc == "" {
				therapistLoc = LocFTL
			}
		}

		if e.Therapist != "" {
			key := TherapistKey{Name: e.Therapist, Col: e.Therapist, Loc: therapistLoc}
			if _, seen := therapistTotals[key]; !seen {
				therapistOrder = append(therapistOrder, key)
			}
			therapistTotals[key] = therapistTotals[key].Add(e.Amount)
		}
	}

	weekKeys := make([]string, 0, len(weeks))
	for k := range weeks {
		weekKeys = append(weekKeys, k)
	}
	sort.Strings(weekKeys)

	weekly := make([]WeekTotals, 0, len(weekKeys))
	for _, k := range weekKeys {
		acc := weeks[k]
		weekly = append(weekly, WeekTotals{
			Week:    k,
			Total:   acc.total.IntPart(),
			CS:      acc.cs.IntPart(),
			FTL:     acc.ftl.IntPart(),
			PL:      acc.pl.IntPart(),
			Mkt:     acc.mkt.IntPart(),
			Testing: acc.testing.IntPart(),
			Start:   acc.start,
			End:     acc.end,
		})
	}

	therapists := make([]TherapistTotal, 0, len(therapistOrder))
	for _, key := range therapistOrder {
		therapists = append(therapists, TherapistTotal{
			Name:  key.Name,
			Col:   key.Col,
			Loc:   key.Loc,
			Total: therapistTotals[key].IntPart(),
		})
	}
	return weekly, therapists
}
