// Package domain resolves free-text calendar event summaries to therapist
// names. Events are typed freely by staff ("Nicole empower", "dr brittany
// conf") so extraction has to drop room words, fix casing and then fold
// near-duplicate spellings into one canonical name per person.
package domain

import (
	"regexp"
	"sort"
	"strings"
)

// roomKeywords are room/type identifiers that appear alongside names.
var roomKeywords = map[string]struct{}{
	"empower": {}, "dream": {}, "conf": {}, "renew": {}, "inspire": {},
	"harmony": {}, "serenity": {}, "cs": {}, "ftl": {}, "pl": {},
	"maint": {}, "maintenance": {}, "conference": {}, "group": {},
	"office": {}, "room": {}, "testing": {},
}

// skipPatterns match event summaries that are not therapy sessions.
var skipPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)best air`),
	regexp.MustCompile(`(?i)maintenance`),
	regexp.MustCompile(`(?i)maint\b`),
	regexp.MustCompile(`(?i)lunch`),
	regexp.MustCompile(`(?i)break`),
	regexp.MustCompile(`(?i)meeting`),
	regexp.MustCompile(`(?i)staff`),
	regexp.MustCompile(`(?i)closed`),
	regexp.MustCompile(`(?i)holiday`),
	regexp.MustCompile(`(?i)off\b`),
	regexp.MustCompile(`(?i)block`),
	regexp.MustCompile(`(?i)hold`),
	regexp.MustCompile(`(?i)cancel`),
	regexp.MustCompile(`(?i)no session`),
	regexp.MustCompile(`(?i)note\b`),
	regexp.MustCompile(`(?i)reminder`),
	regexp.MustCompile(`(?i)admin`),
	regexp.MustCompile(`(?i)cleaning`),
	regexp.MustCompile(`(?i)interview`),
	regexp.MustCompile(`(?i)orientation`),
	regexp.MustCompile(`(?i)training`),
}

var drPrefix = regexp.MustCompile(`(?i)^dr\.?\s+`)

func capitalize(token string) string {
	if token == "" {
		return token
	}
	// middle initials become upper case, O'Brien-style tokens keep their body
	if len(token) == 1 {
		return strings.ToUpper(token)
	}
	return strings.ToUpper(token[:1]) + strings.ToLower(token[1:])
}

// ExtractName pulls a therapist name out of an event summary. Returns false
// for non-session events and summaries with no name tokens left.
func ExtractName(summary string) (string, bool) {
	s := strings.TrimSpace(summary)
	if s == "" {
		return "", false
	}
	for _, pattern := range skipPatterns {
		if pattern.MatchString(s) {
			return "", false
		}
	}
	s = strings.ReplaceAll(s, "*", "")

	var nameParts []string
	for _, part := range strings.Fields(s) {
		cleaned := strings.ToLower(strings.TrimRight(part, ".,;:"))
		if _, isRoom := roomKeywords[cleaned]; isRoom {
			continue
		}
		nameParts = append(nameParts, part)
	}
	if len(nameParts) == 0 {
		return "", false
	}

	name := drPrefix.ReplaceAllString(strings.Join(nameParts, " "), "Dr. ")

	var finalParts []string
	for _, p := range strings.Fields(name) {
		if strings.HasPrefix(p, "Dr.") {
			finalParts = append(finalParts, p)
			continue
		}
		if strings.Contains(p, "'") {
			finalParts = append(finalParts, strings.ToUpper(p[:1])+p[1:])
			continue
		}
		finalParts = append(finalParts, capitalize(p))
	}

	name = strings.TrimSpace(strings.Join(finalParts, " "))
	if len(name) < 2 {
		return "", false
	}
	return name, true
}

// baseKey groups name variants that refer to the same person: the lowercase
// first word, plus the second word when it is a single-letter initial. A
// "dr." prefix is folded into the key with the following words.
func baseKey(name string) string {
	tokens := strings.Fields(strings.ToLower(name))
	if len(tokens) == 0 {
		return ""
	}
	prefix := ""
	if tokens[0] == "dr." || tokens[0] == "dr" {
		prefix = "dr. "
		tokens = tokens[1:]
		if len(tokens) == 0 {
			return strings.TrimSpace(prefix)
		}
	}
	key := prefix + tokens[0]
	if len(tokens) > 1 && len(tokens[1]) == 1 {
		key += " " + tokens[1]
	}
	return key
}

// CanonicalMap maps every extracted name variant to the display name chosen
// for its group.
type CanonicalMap map[string]string

// Resolve returns the canonical form of a name, or the name itself when it
// was never seen during map construction.
func (m CanonicalMap) Resolve(name string) string {
	if canonical, ok := m[name]; ok {
		return canonical
	}
	return name
}

// BuildCanonicalMap groups the observed name variants and picks one display
// name per group: the most frequent variant, ties broken by shortest, then
// lexicographically so the result is deterministic.
func BuildCanonicalMap(names []string) CanonicalMap {
	freq := map[string]int{}
	for _, n := range names {
		freq[n]++
	}

	groups := map[string][]string{}
	for n := range freq {
		k := baseKey(n)
		groups[k] = append(groups[k], n)
	}

	result := CanonicalMap{}
	for _, variants := range groups {
		sort.Slice(variants, func(i, j int) bool {
			a, b := variants[i], variants[j]
			if freq[a] != freq[b] {
				return freq[a] > freq[b]
			}
			if len(a) != len(b) {
				return len(a) < len(b)
			}
			return a < b
		})
		canonical := variants[0]
		for _, v := range variants {
			result[v] = canonical
		}
	}
	return result
}
