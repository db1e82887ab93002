package domain

import "strings"

// The intake spreadsheet and the manual entry form both carry free text in
// the categorical columns. Each normalizer maps a raw value onto a small
// fixed vocabulary using an ordered rule table: rules are evaluated top to
// bottom and the first match wins. The order is load-bearing — several
// categories overlap (e.g. "Psychological Evaluation" must be checked before
// the generic testing bucket), so rules must stay in their authored order.

// rule pairs a predicate with the canonical label it produces.
// Predicates receive the lower-cased value and the trimmed original.
type rule struct {
	match func(lo, trimmed string) bool
	label string
}

func contains(subs ...string) func(lo, trimmed string) bool {
	return func(lo, _ string) bool {
		for _, s := range subs {
			if strings.Contains(lo, s) {
				return true
			}
		}
		return false
	}
}

func containsAll(subs ...string) func(lo, trimmed string) bool {
	return func(lo, _ string) bool {
		for _, s := range subs {
			if !strings.Contains(lo, s) {
				return false
			}
		}
		return true
	}
}

func equalsAny(values ...string) func(lo, trimmed string) bool {
	return func(lo, _ string) bool {
		for _, v := range values {
			if lo == v {
				return true
			}
		}
		return false
	}
}

func firstMatch(rules []rule, raw string) (string, bool) {
	trimmed := strings.TrimSpace(raw)
	lo := strings.ToLower(trimmed)
	for _, r := range rules {
		if r.match(lo, trimmed) {
			return r.label, true
		}
	}
	return trimmed, false
}

var locationRules = []rule{
	{contains("fort", "ftl", "lauderdale"), "Fort Lauderdale"},
	{func(lo, _ string) bool { return strings.Contains(lo, "coral") || lo == "cs" }, "Coral Springs"},
	{func(lo, _ string) bool { return strings.Contains(lo, "plantation") || lo == "pl" }, "Plantation"},
	{contains("tele"), "Telehealth"},
}

// NormalizeLocation maps a raw office value onto one of the known sites.
// Unmatched non-empty values pass through trimmed.
func NormalizeLocation(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "Unknown"
	}
	label, _ := firstMatch(locationRules, raw)
	if label == "" {
		return "Unknown"
	}
	return label
}

var serviceRules = []rule{
	{contains("individual"), "Individual Therapy"},
	{contains("couple"), "Couples Therapy"},
	{contains("adolescent", "teen"), "Adolescent Therapy"},
	{func(lo, _ string) bool {
		return strings.Contains(lo, "child") && !strings.Contains(lo, "adolescent")
	}, "Child Therapy"},
	{containsAll("psych", "evaluation"), "Psychological Evaluation"},
	{contains("testing", "evaluation"), "Testing Evaluation"},
	{contains("psychiat"), "Psychiatric"},
	{contains("family"), "Family Therapy"},
	{contains("group"), "Group Therapy"},
	{contains("cog"), "CogScreen"},
	{contains("superv"), "Supervision"},
}

// NormalizeService maps a raw service type onto a canonical service label.
// Returns "" for empty input; unmatched values pass through trimmed.
func NormalizeService(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	label, _ := firstMatch(serviceRules, raw)
	return label
}

// IsTestingService reports whether a raw service value belongs to the
// testing/evaluation revenue class. This classifier is intentionally
// independent of NormalizeService: it runs on the raw value and is used only
// for splitting booked counts into therapy vs testing revenue buckets.
func IsTestingService(raw string) bool {
	if raw == "" {
		return false
	}
	lo := strings.ToLower(raw)
	return strings.Contains(lo, "testing") || strings.Contains(lo, "evaluation") ||
		strings.Contains(lo, "cogscreen")
}

var sourceRules = []rule{
	{contains("google"), "Google"},
	{contains("doctor", "physician", "pediatrician"), "Doctors"},
	{contains("psychology today"), "Psychology Today"},
	{contains("previous client"), "Previous Clients"},
	{contains("frcf"), "FRCF"},
	{contains("alma"), "ALMA"},
	{contains("bayview therapist"), "Bayview Therapists"},
	{containsAll("family", "friend"), "Family/Friends"},
	{contains("colleague"), "Colleagues"},
	{contains("yelp"), "Yelp"},
	{contains("social media", "instagram", "facebook"), "Social Media"},
	{contains("bts"), "BTS Therapists"},
	{contains("school"), "Schools"},
	{contains("bsac"), "BSAC"},
	{contains("psychiatrist"), "Psychiatrists"},
}

// NormalizeSource maps a raw referral source onto a canonical source label.
// Unmatched values pass through trimmed.
func NormalizeSource(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "Unknown"
	}
	label, _ := firstMatch(sourceRules, raw)
	return label
}

var outcomeRules = []rule{
	// "Boked" is a recurring misspelling in the sheet.
	{equalsAny("booked", "boked"), "Booked"},
	{contains("no response", "never booked", "no answer", "did not book",
		"not interested", "looking for", "insurance", "wrong number", "voicemail"), "Never Booked"},
	{func(lo, trimmed string) bool {
		return strings.HasPrefix(lo, "called") || (strings.Contains(lo, "called") && len(trimmed) < 20)
	}, "Called"},
	{contains("cancel"), "Cancelled"},
	{contains("email"), "Emailed"},
	{contains("pending", "waiting"), "Pending"},
	{contains("left message", "left msg"), "Left Message"},
}

// NormalizeOutcome maps a raw referral outcome onto a canonical outcome label.
// Unmatched values pass through trimmed.
func NormalizeOutcome(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return "Unknown"
	}
	label, _ := firstMatch(outcomeRules, raw)
	return label
}

var actionRules = []rule{
	{containsAll("bayview", "therapist"), "Referred to Bayview Therapist"},
	{contains("outside", "referred out"), "Referred to Outside Provider"},
	{contains("scheduled"), "Scheduled Appointment"},
	{contains("bts"), "Referred to BTS Therapist"},
	{contains("pending"), "Pending"},
}

// NormalizeAction maps a raw action-taken value onto a canonical action label.
// Returns "" for empty input; unmatched values pass through trimmed.
func NormalizeAction(raw string) string {
	if strings.TrimSpace(raw) == "" {
		return ""
	}
	label, _ := firstMatch(actionRules, raw)
	return label
}

// placeholder values staff type into the referred-to column when no person
// was actually assigned.
var nonMemberValues = map[string]struct{}{
	"no response": {},
	"no":          {},
	"yes":         {},
	"":            {},
	"n/a":         {},
	"none":        {},
	"x":           {},
	"no answer":   {},
}

// NormalizeTeamMember returns the trimmed person name from the referred-to
// column, or "" when the value is a placeholder rather than a person.
func NormalizeTeamMember(raw string) string {
	trimmed := strings.TrimSpace(raw)
	if _, ok := nonMemberValues[strings.ToLower(trimmed)]; ok {
		return ""
	}
	return trimmed
}
