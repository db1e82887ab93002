// Package domain holds the room-rental models: weekly revenue totals parsed
// from the accounting sheet and rental entries recorded through the API.
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Therapist location codes used by the accounting sheet column headers.
const (
	LocFTL     = "FTL"
	LocCS      = "CS"
	LocPL      = "PL"
	LocTesting = "Testing"
	LocMKT     = "MKT"
)

// WeekTotals is one week of rental revenue, split by site and category.
// Start and End are retained for period filtering but never serialized.
type WeekTotals struct {
	Week    string `json:"week"`
	Total   int64  `json:"total"`
	CS      int64  `json:"cs"`
	FTL     int64  `json:"ftl"`
	PL      int64  `json:"pl"`
	Mkt     int64  `json:"mkt"`
	Testing int64  `json:"testing"`

	Start time.Time `json:"-"`
	End   time.Time `json:"-"`
}

// TherapistTotal is a therapist's summed rental revenue. Col keeps the
// original sheet column header so identically named therapists at different
// sites stay distinct.
type TherapistTotal struct {
	Name  string `json:"name"`
	Col   string `json:"col"`
	Loc   string `json:"loc"`
	Total int64  `json:"total"`
}

// TherapistWeekAmount is one therapist's rent for one week. The report
// builder sums these per period.
type TherapistWeekAmount struct {
	Week   string
	Name   string
	Col    string
	Loc    string
	Amount decimal.Decimal
}

// TherapistKey identifies a therapist column across weeks.
type TherapistKey struct {
	Name string
	Col  string
	Loc  string
}

// Key returns the identity key of a line.
func (l TherapistWeekAmount) Key() TherapistKey {
	return TherapistKey{Name: l.Name, Col: l.Col, Loc: l.Loc}
}
