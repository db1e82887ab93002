package domain

import (
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	leads "bayview_dashboard_backend/internal/leads/domain"
)

// SheetData is the parsed accounting sheet: one WeekTotals per usable row
// plus the individual therapist amounts behind them.
type SheetData struct {
	Weekly []WeekTotals
	Lines  []TherapistWeekAmount
}

// ParseDollar parses a dollar cell ("$1,234.50") into a decimal amount.
// Unparseable or empty cells yield zero.
func ParseDollar(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	s = strings.ReplaceAll(s, "$", "")
	s = strings.ReplaceAll(s, ",", "")
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// summary column headers carry site/category totals rather than a therapist.
var summaryHeaders = map[string]string{
	"Grand Total":     "gt",
	"Marketing Total": "mkt",
	"Testing":         "testing",
	"Coral Springs":   "cs",
	"Fort Lauderdale": "ftl",
	"Plantation":      "pl",
}

// headers matching these are bookkeeping columns, not rentable therapists.
func isSkippedHeader(h string) bool {
	return strings.Contains(h, "- Sup") || strings.Contains(h, "- Fixed") ||
		strings.HasPrefix(h, "Open")
}

// therapist column prefixes, checked in order; the first match is stripped.
var headerPrefixes = []string{
	"FTL: ", "CS: ", "PL: ", "FTL:", "CS:", "PL:", "Testing: ", "Testing:", "Mark-", "M-",
}

type therapistColumn struct {
	Idx  int
	Col  string
	Name string
	Loc  string
}

func headerLocation(h string) string {
	switch {
	case strings.HasPrefix(h, "CS:") || strings.HasPrefix(h, "CS "):
		return LocCS
	case strings.HasPrefix(h, "PL:") || strings.HasPrefix(h, "PL "):
		return LocPL
	case strings.HasPrefix(h, "Testing:") || strings.HasPrefix(h, "Testing "):
		return LocTesting
	case strings.HasPrefix(h, "M-") || strings.HasPrefix(h, "Mark-"):
		return LocMKT
	}
	return LocFTL
}

func classifyHeaders(headers []string) (map[string]int, []therapistColumn) {
	summary := map[string]int{}
	var cols []therapistColumn

	for i, h := range headers {
		h = strings.TrimSpace(h)
		if h == "" {
			continue
		}
		if key, ok := summaryHeaders[h]; ok {
			summary[key] = i
			continue
		}
		if i < 2 || isSkippedHeader(h) {
			continue
		}

		loc := headerLocation(h)
		name := h
		for _, pfx := range headerPrefixes {
			if strings.HasPrefix(h, pfx) {
				name = strings.TrimSpace(h[len(pfx):])
				break
			}
		}
		// A bare room number left after prefix stripping is not a person.
		if name == "" || isRoomNumber(name) {
			continue
		}
		cols = append(cols, therapistColumn{Idx: i, Col: h, Name: name, Loc: loc})
	}
	return summary, cols
}

func isRoomNumber(name string) bool {
	switch name {
	case "3", "4", "5", "6", "7", "8":
		return true
	}
	return false
}

func cell(row []string, i int) string {
	if i >= 0 && i < len(row) {
		return row[i]
	}
	return ""
}

func summaryAmount(row []string, summary map[string]int, key string) decimal.Decimal {
	idx, ok := summary[key]
	if !ok {
		return decimal.Zero
	}
	return ParseDollar(cell(row, idx))
}

// ParseSheet parses the published accounting sheet (header row first) into
// weekly totals and per-therapist amounts. Rows without a parseable start
// date or with a zero grand total are skipped.
func ParseSheet(rows [][]string, today time.Time) *SheetData {
	if len(rows) == 0 {
		return &SheetData{}
	}
	summary, cols := classifyHeaders(rows[0])

	maxSummaryIdx := 0
	for _, idx := range summary {
		if idx > maxSummaryIdx {
			maxSummaryIdx = idx
		}
	}

	data := &SheetData{}
	for _, row := range rows[1:] {
		if len(row) <= maxSummaryIdx {
			continue
		}
		start, ok := leads.ParseDate(cell(row, 0), today)
		if !ok {
			continue
		}
		end, ok := leads.ParseDate(cell(row, 1), today)
		if !ok {
			end = start
		}

		gt := summaryAmount(row, summary, "gt")
		if gt.IsZero() {
			continue
		}

		week := start.Format("2006-01-02")
		data.Weekly = append(data.Weekly, WeekTotals{
			Week:    week,
			Total:   gt.IntPart(),
			CS:      summaryAmount(row, summary, "cs").IntPart(),
			FTL:     summaryAmount(row, summary, "ftl").IntPart(),
			PL:      summaryAmount(row, summary, "pl").IntPart(),
			Mkt:     summaryAmount(row, summary, "mkt").IntPart(),
			Testing: summaryAmount(row, summary, "testing").IntPart(),
			Start:   start,
			End:     end,
		})

		for _, tc := range cols {
			if tc.Idx >= len(row) {
				continue
			}
			amount := ParseDollar(row[tc.Idx])
			if !amount.IsPositive() {
				continue
			}
			data.Lines = append(data.Lines, TherapistWeekAmount{
				Week:   week,
				Name:   tc.Name,
				Col:    tc.Col,
				Loc:    tc.Loc,
				Amount: amount,
			})
		}
	}

	sort.SliceStable(data.Weekly, func(i, j int) bool {
		return data.Weekly[i].Week < data.Weekly[j].Week
	})
	return data
}
