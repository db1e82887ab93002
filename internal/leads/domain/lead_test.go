package domain

import (
	"testing"
	"time"
)

var testToday = time.Date(2026, 8, 27, 0, 0, 0, 0, time.UTC)

func TestParseDate(t *testing.T) {
	cases := []struct {
		in   string
		want string
		ok   bool
	}{
		{"3/14/2024", "2024-03-14", true},
		{"12/1/2019", "2019-12-01", true},
		{"2024-03-14", "2024-03-14", true},
		{" 5/2/2023 ", "2023-05-02", true},
		{"", "", false},
		{"   ", "", false},
		{"not a date", "", false},
		{"3/14/2016", "", false},  // before 2017
		{"3/14/2030", "", false},  // past next year
		{"2027-01-01", "2027-01-01", true},
	}
	for _, c := range cases {
		got, ok := ParseDate(c.in, testToday)
		if ok != c.ok {
			t.Fatalf("ParseDate(%q) ok = %v, want %v", c.in, ok, c.ok)
		}
		if ok && got.Format("2006-01-02") != c.want {
			t.Fatalf("ParseDate(%q) = %s, want %s", c.in, got.Format("2006-01-02"), c.want)
		}
	}
}

func sheetRow(cells map[int]string) []string {
	row := make([]string, 15)
	for i, v := range cells {
		row[i] = v
	}
	return row
}

func TestLeadFromPositionalRow(t *testing.T) {
	row := sheetRow(map[int]string{
		colDate:      "3/14/2024",
		colService:   "Individual therapy",
		colProblem:   "Anxiety",
		colSource:    "Google search",
		colAction:    "Scheduled intake",
		colMember:    "Dr. Smith",
		colOutcome:   "Boked",
		colMarketing: "Yes",
		colLocation:  "FTL",
	})
	lead, ok := LeadFromRow(PositionalRow(row), testToday)
	if !ok {
		t.Fatal("expected row to convert")
	}
	if lead.Service != "Individual Therapy" {
		t.Fatalf("service = %q", lead.Service)
	}
	if lead.ServiceRaw != "Individual therapy" {
		t.Fatalf("service raw = %q", lead.ServiceRaw)
	}
	if lead.Source != "Google" {
		t.Fatalf("source = %q", lead.Source)
	}
	if lead.Action != "Scheduled Appointment" {
		t.Fatalf("action = %q", lead.Action)
	}
	if lead.TeamMember != "Dr. Smith" {
		t.Fatalf("team member = %q", lead.TeamMember)
	}
	if lead.Outcome != "Booked" || !lead.Booked {
		t.Fatalf("outcome = %q booked = %v", lead.Outcome, lead.Booked)
	}
	if lead.Marketing != "Yes" {
		t.Fatalf("marketing = %q", lead.Marketing)
	}
	if lead.Location != "Fort Lauderdale" {
		t.Fatalf("location = %q", lead.Location)
	}
}

func TestLeadFromRowRejects(t *testing.T) {
	// too short
	if _, ok := LeadFromRow(PositionalRow([]string{"", "3/14/2024"}), testToday); ok {
		t.Fatal("short row should be rejected")
	}
	// unparseable date
	row := sheetRow(map[int]string{colDate: "sometime in march"})
	if _, ok := LeadFromRow(PositionalRow(row), testToday); ok {
		t.Fatal("bad date should be rejected")
	}
	// out-of-range year
	row = sheetRow(map[int]string{colDate: "3/14/2012"})
	if _, ok := LeadFromRow(PositionalRow(row), testToday); ok {
		t.Fatal("out-of-range year should be rejected")
	}
}

// A row exactly 11 cells wide converts: outcome, marketing and location
// columns are simply absent.
func TestLeadFromMinimalRow(t *testing.T) {
	row := make([]string, minRowCells)
	row[colDate] = "3/14/2024"
	lead, ok := LeadFromRow(PositionalRow(row), testToday)
	if !ok {
		t.Fatal("11-cell row should convert")
	}
	if lead.Booked {
		t.Fatal("no outcome column means not booked")
	}
	if lead.Outcome != "Unknown" || lead.Location != "Unknown" || lead.Source != "Unknown" {
		t.Fatalf("defaults wrong: %+v", lead)
	}
}

func TestLeadFromKeyedRow(t *testing.T) {
	lead, ok := LeadFromRow(KeyedRow(map[string]string{
		"date":               "2024-03-14",
		"service_type":       "ADHD testing",
		"presenting_problem": "Focus issues",
		"referral_source":    "pediatrician",
		"action_taken":       "referred out",
		"referred_to":        "no response",
		"referral_outcome":   "Left a voicemail",
		"marketing_program":  "No",
		"location":           "coral springs",
	}), testToday)
	if !ok {
		t.Fatal("expected row to convert")
	}
	if lead.Service != "Testing Evaluation" {
		t.Fatalf("service = %q", lead.Service)
	}
	if lead.Source != "Doctors" {
		t.Fatalf("source = %q", lead.Source)
	}
	if lead.Action != "Referred to Outside Provider" {
		t.Fatalf("action = %q", lead.Action)
	}
	if lead.TeamMember != "" {
		t.Fatalf("team member = %q, want empty", lead.TeamMember)
	}
	if lead.Outcome != "Never Booked" || lead.Booked {
		t.Fatalf("outcome = %q booked = %v", lead.Outcome, lead.Booked)
	}
	if lead.Location != "Coral Springs" {
		t.Fatalf("location = %q", lead.Location)
	}
}

func TestLeadsFromSheetSkipsHeaderAndJunk(t *testing.T) {
	rows := [][]string{
		{"Timestamp", "Date", "First", "Last", "Phone", "Email", "Service"},
		sheetRow(map[int]string{colDate: "3/14/2024", colOutcome: "Booked"}),
		{"", ""},
		sheetRow(map[int]string{colDate: "garbage"}),
		sheetRow(map[int]string{colDate: "4/1/2024", colOutcome: "No response"}),
	}
	leads := LeadsFromSheet(rows, testToday)
	if len(leads) != 2 {
		t.Fatalf("got %d leads, want 2", len(leads))
	}
	if !leads[0].Booked || leads[1].Booked {
		t.Fatalf("booked flags wrong: %v %v", leads[0].Booked, leads[1].Booked)
	}
}
