package domain

import "testing"

func TestNormalizeLocation(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Fort Lauderdale", "Fort Lauderdale"},
		{"FTL office", "Fort Lauderdale"},
		{"lauderdale", "Fort Lauderdale"},
		{"Coral Springs", "Coral Springs"},
		{"cs", "Coral Springs"},
		{"CS", "Coral Springs"},
		{"Plantation", "Plantation"},
		{"pl", "Plantation"},
		{"Telehealth session", "Telehealth"},
		{"", "Unknown"},
		{"   ", "Unknown"},
		{"Miami", "Miami"},
	}
	for _, c := range cases {
		if got := NormalizeLocation(c.in); got != c.want {
			t.Fatalf("NormalizeLocation(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeService(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Individual therapy adult", "Individual Therapy"},
		{"couples counseling", "Couples Therapy"},
		{"Teen therapy", "Adolescent Therapy"},
		{"child/adolescent", "Adolescent Therapy"},
		{"Child therapy", "Child Therapy"},
		{"Psych Evaluation", "Psychological Evaluation"},
		{"ADHD testing", "Testing Evaluation"},
		{"evaluation", "Testing Evaluation"},
		{"Psychiatry", "Psychiatric"},
		{"Family session", "Family Therapy"},
		{"group therapy", "Group Therapy"},
		{"CogScreen", "CogScreen"},
		{"supervision hours", "Supervision"},
		{"", ""},
		{"Art Therapy", "Art Therapy"},
	}
	for _, c := range cases {
		if got := NormalizeService(c.in); got != c.want {
			t.Fatalf("NormalizeService(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

// Psych evaluations must land in the evaluation bucket, not in the generic
// testing bucket, so rule order matters.
func TestNormalizeServiceRuleOrder(t *testing.T) {
	if got := NormalizeService("Psychological evaluation for school"); got != "Psychological Evaluation" {
		t.Fatalf("got %q, want Psychological Evaluation", got)
	}
	if got := NormalizeService("Neuropsych testing evaluation"); got != "Psychological Evaluation" {
		t.Fatalf("got %q, want Psychological Evaluation", got)
	}
}

func TestIsTestingService(t *testing.T) {
	for _, raw := range []string{"ADHD Testing", "psych evaluation", "CogScreen"} {
		if !IsTestingService(raw) {
			t.Fatalf("IsTestingService(%q) = false, want true", raw)
		}
	}
	for _, raw := range []string{"", "Individual Therapy", "couples"} {
		if IsTestingService(raw) {
			t.Fatalf("IsTestingService(%q) = true, want false", raw)
		}
	}
}

func TestNormalizeSource(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Google search", "Google"},
		{"Pediatrician referral", "Doctors"},
		{"Psychology Today", "Psychology Today"},
		{"previous client", "Previous Clients"},
		{"FRCF", "FRCF"},
		{"Alma directory", "ALMA"},
		{"Bayview therapist", "Bayview Therapists"},
		{"family friend", "Family/Friends"},
		{"colleague of mine", "Colleagues"},
		{"Yelp", "Yelp"},
		{"Instagram ad", "Social Media"},
		{"BTS", "BTS Therapists"},
		{"school counselor", "Schools"},
		{"BSAC", "BSAC"},
		{"psychiatrist", "Psychiatrists"},
		{"", "Unknown"},
		{"Billboard", "Billboard"},
	}
	for _, c := range cases {
		if got := NormalizeSource(c.in); got != c.want {
			t.Fatalf("NormalizeSource(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeOutcome(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Booked", "Booked"},
		{"boked", "Booked"},
		{"BOOKED", "Booked"},
		{"No response", "Never Booked"},
		{"Left a voicemail", "Never Booked"},
		{"wrong number", "Never Booked"},
		{"looking for med management", "Never Booked"},
		{"Called 3/2", "Called"},
		{"we called", "Called"},
		{"cancelled appointment", "Cancelled"},
		{"emailed back", "Emailed"},
		{"pending insurance check", "Never Booked"},
		{"waiting on callback", "Pending"},
		{"left message", "Left Message"},
		{"", "Unknown"},
		{"Something else entirely here", "Something else entirely here"},
	}
	for _, c := range cases {
		if got := NormalizeOutcome(c.in); got != c.want {
			t.Fatalf("NormalizeOutcome(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

// A long sentence that merely mentions "called" is not a Called outcome;
// only short values or values starting with "called" qualify.
func TestNormalizeOutcomeCalledLength(t *testing.T) {
	long := "client called but then decided not to proceed"
	if got := NormalizeOutcome(long); got != long {
		t.Fatalf("got %q, want passthrough", got)
	}
	if got := NormalizeOutcome("they called"); got != "Called" {
		t.Fatalf("got %q, want Called", got)
	}
}

func TestNormalizeAction(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"Referred to Bayview therapist", "Referred to Bayview Therapist"},
		{"referred out", "Referred to Outside Provider"},
		{"outside provider", "Referred to Outside Provider"},
		{"Scheduled intake", "Scheduled Appointment"},
		{"BTS referral", "Referred to BTS Therapist"},
		{"pending", "Pending"},
		{"", ""},
		{"Follow up call", "Follow up call"},
	}
	for _, c := range cases {
		if got := NormalizeAction(c.in); got != c.want {
			t.Fatalf("NormalizeAction(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}

func TestNormalizeTeamMember(t *testing.T) {
	for _, raw := range []string{"no response", "No", "YES", "", "n/a", "None", "x", "No Answer"} {
		if got := NormalizeTeamMember(raw); got != "" {
			t.Fatalf("NormalizeTeamMember(%q) = %q, want empty", raw, got)
		}
	}
	if got := NormalizeTeamMember("  Dr. Smith "); got != "Dr. Smith" {
		t.Fatalf("got %q, want Dr. Smith", got)
	}
}

// Normalizers are idempotent: feeding a canonical label back in yields the
// same label.
func TestNormalizersIdempotent(t *testing.T) {
	locs := []string{"Fort Lauderdale", "Coral Springs", "Plantation", "Telehealth", "Unknown"}
	for _, v := range locs {
		if got := NormalizeLocation(v); got != v {
			t.Fatalf("NormalizeLocation(%q) = %q, not idempotent", v, got)
		}
	}
	svcs := []string{"Individual Therapy", "Couples Therapy", "Adolescent Therapy",
		"Psychological Evaluation", "Testing Evaluation", "Psychiatric",
		"Family Therapy", "Group Therapy", "CogScreen", "Supervision"}
	for _, v := range svcs {
		if got := NormalizeService(v); got != v {
			t.Fatalf("NormalizeService(%q) = %q, not idempotent", v, got)
		}
	}
	outs := []string{"Booked", "Never Booked", "Called", "Cancelled", "Emailed",
		"Pending", "Left Message", "Unknown"}
	for _, v := range outs {
		if got := NormalizeOutcome(v); got != v {
			t.Fatalf("NormalizeOutcome(%q) = %q, not idempotent", v, got)
		}
	}
}
