// Package domain holds the lead record model and the normalization rules
// applied to every inbound lead, regardless of whether it arrived from the
// published intake sheet or the manual entry form.
package domain

import (
	"strings"
	"time"
)

// Positional column indexes in the published intake sheet. The sheet has
// junk columns (names, phone, email) between the ones the dashboard uses.
const (
	colDate      = 1
	colService   = 6
	colProblem   = 7
	colSource    = 8
	colAction    = 9
	colMember    = 10
	colOutcome   = 11
	colMarketing = 13
	colLocation  = 14

	// minRowCells is the minimum cell count for a sheet row to be usable.
	minRowCells = 11
)

// Lead is a single normalized lead record, the unit everything downstream
// aggregates over.
type Lead struct {
	Date       time.Time
	Service    string // canonical service label, "" when unset
	ServiceRaw string // original service text, drives the testing classifier
	Problem    string
	Source     string
	Action     string
	TeamMember string
	Outcome    string
	Booked     bool
	Marketing  string
	Location   string
}

// ParseDate parses a sheet or form date in either M/D/YYYY or YYYY-MM-DD
// form. The first layout that parses decides: a value that parses but falls
// outside the plausible year range is rejected, not retried against the
// other layout. Returns the zero time and false for anything unusable.
func ParseDate(s string, today time.Time) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range []string{"1/2/2006", "2006-01-02"} {
		dt, err := time.Parse(layout, s)
		if err != nil {
			continue
		}
		if dt.Year() >= 2017 && dt.Year() <= today.Year()+1 {
			return dt, true
		}
		return time.Time{}, false
	}
	return time.Time{}, false
}

// RowKind tags the origin shape of a raw lead row.
type RowKind int

const (
	// RowPositional is a cell slice from the published CSV sheet.
	RowPositional RowKind = iota
	// RowKeyed is a field map from the database or the entry form.
	RowKeyed
)

// RawRow is one unprocessed lead row. Exactly one of Cells/Fields is
// populated, selected by Kind.
type RawRow struct {
	Kind   RowKind
	Cells  []string
	Fields map[string]string
}

// PositionalRow wraps a CSV cell slice as a RawRow.
func PositionalRow(cells []string) RawRow {
	return RawRow{Kind: RowPositional, Cells: cells}
}

// KeyedRow wraps a database/form field map as a RawRow.
func KeyedRow(fields map[string]string) RawRow {
	return RawRow{Kind: RowKeyed, Fields: fields}
}

func (r RawRow) cell(i int) string {
	if i < len(r.Cells) {
		return r.Cells[i]
	}
	return ""
}

// raw extracts the named logical field from the row before normalization.
func (r RawRow) raw(field string) string {
	if r.Kind == RowKeyed {
		return r.Fields[field]
	}
	switch field {
	case "date":
		return r.cell(colDate)
	case "service_type":
		return r.cell(colService)
	case "presenting_problem":
		return r.cell(colProblem)
	case "referral_source":
		return r.cell(colSource)
	case "action_taken":
		return r.cell(colAction)
	case "referred_to":
		return r.cell(colMember)
	case "referral_outcome":
		return r.cell(colOutcome)
	case "marketing_program":
		return r.cell(colMarketing)
	case "location":
		return r.cell(colLocation)
	}
	return ""
}

// LeadFromRow converts one raw row into a normalized Lead. Both row shapes
// flow through the same conversion so sheet and database leads cannot drift
// apart. Returns false when the row is too short or has no parseable date.
func LeadFromRow(row RawRow, today time.Time) (Lead, bool) {
	if row.Kind == RowPositional && len(row.Cells) < minRowCells {
		return Lead{}, false
	}
	dt, ok := ParseDate(row.raw("date"), today)
	if !ok {
		return Lead{}, false
	}

	svcRaw := strings.TrimSpace(row.raw("service_type"))
	outRaw := strings.TrimSpace(row.raw("referral_outcome"))

	booked := false
	if outRaw != "" {
		lo := strings.ToLower(outRaw)
		booked = lo == "booked" || lo == "boked"
	}

	lead := Lead{
		Date:       dt,
		ServiceRaw: svcRaw,
		Problem:    strings.TrimSpace(row.raw("presenting_problem")),
		Marketing:  strings.TrimSpace(row.raw("marketing_program")),
		Booked:     booked,
		Source:     "Unknown",
		Outcome:    "Unknown",
		Location:   "Unknown",
	}
	if svcRaw != "" {
		lead.Service = NormalizeService(svcRaw)
	}
	if src := row.raw("referral_source"); strings.TrimSpace(src) != "" {
		lead.Source = NormalizeSource(src)
	}
	if act := row.raw("action_taken"); strings.TrimSpace(act) != "" {
		lead.Action = NormalizeAction(act)
	}
	if member := row.raw("referred_to"); strings.TrimSpace(member) != "" {
		lead.TeamMember = NormalizeTeamMember(member)
	}
	if outRaw != "" {
		lead.Outcome = NormalizeOutcome(outRaw)
	}
	if loc := row.raw("location"); strings.TrimSpace(loc) != "" {
		lead.Location = NormalizeLocation(loc)
	}
	return lead, true
}

// LeadsFromSheet converts the published intake sheet (header row included)
// into normalized leads, dropping unusable rows.
func LeadsFromSheet(rows [][]string, today time.Time) []Lead {
	leads := make([]Lead, 0, len(rows))
	for i, cells := range rows {
		if i == 0 {
			continue // header
		}
		lead, ok := LeadFromRow(PositionalRow(cells), today)
		if !ok {
			continue
		}
		leads = append(leads, lead)
	}
	return leads
}

// LeadsFromRecords converts keyed database/form records into normalized
// leads, dropping unusable rows.
func LeadsFromRecords(records []map[string]string, today time.Time) []Lead {
	leads := make([]Lead, 0, len(records))
	for _, fields := range records {
		lead, ok := LeadFromRow(KeyedRow(fields), today)
		if !ok {
			continue
		}
		leads = append(leads, lead)
	}
	return leads
}
