package domain

import (
	"fmt"
	"sort"
	"time"
)

// Event is one calendar event already filtered down to the fields the grid
// builder needs. HasEnd is false when the source had no parseable end time.
type Event struct {
	Summary string
	Start   time.Time
	End     time.Time
	HasEnd  bool
}

// Weight is the session count an event contributes: its duration in hours,
// or 1.0 when no duration is derivable.
func (e Event) Weight() float64 {
	if !e.HasEnd || !e.End.After(e.Start) {
		return 1.0
	}
	return e.End.Sub(e.Start).Hours()
}

func (e Event) date() time.Time {
	y, m, d := e.Start.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, e.Start.Location())
}

// weekday index with Monday as 0, Sunday as 6.
func (e Event) dayOfWeek() int {
	return (int(e.Start.Weekday()) + 6) % 7
}

// WeekBounds returns the Monday and Sunday of the week containing date.
func WeekBounds(date time.Time) (time.Time, time.Time) {
	monday := date.AddDate(0, 0, -((int(date.Weekday()) + 6) % 7))
	return monday, monday.AddDate(0, 0, 6)
}

// TherapistRow is one therapist's session weights across a week.
type TherapistRow struct {
	Therapist string  `json:"therapist"`
	Mon       float64 `json:"mon"`
	Tue       float64 `json:"tue"`
	Wed       float64 `json:"wed"`
	Thu       float64 `json:"thu"`
	Fri       float64 `json:"fri"`
	Sat       float64 `json:"sat"`
	Sun       float64 `json:"sun"`
	Total     float64 `json:"total"`
}

// LocationWeek holds one site's rows for a week.
type LocationWeek struct {
	Rows          []TherapistRow `json:"rows"`
	LocationTotal float64        `json:"location_total"`
}

// Week is one Monday-Sunday grid across all sites.
type Week struct {
	WeekLabel  string                  `json:"week_label"`
	WeekStart  string                  `json:"week_start"`
	WeekEnd    string                  `json:"week_end"`
	IsCurrent  bool                    `json:"is_current"`
	Locations  map[string]LocationWeek `json:"locations"`
	GrandTotal float64                 `json:"grand_total"`
}

// TherapistSummary is a therapist's totals across the whole fetch window.
type TherapistSummary struct {
	Therapist     string             `json:"therapist"`
	TotalSessions float64            `json:"total_sessions"`
	ByLocation    map[string]float64 `json:"by_location"`
}

// SessionsData is the full session report.
type SessionsData struct {
	Weeks            []Week             `json:"weeks"`
	TherapistSummary []TherapistSummary `json:"therapist_summary"`
	Locations        []string           `json:"locations"`
	WeeksBack        int                `json:"weeks_back"`
	Generated        string             `json:"generated"`
}

type therapistTotals struct {
	total      float64
	byLocation map[string]float64
}

// BuildSessions turns per-location calendar events into weekly Mon-Sun
// session grids. One canonical-name map is built from every event in the
// window and applied uniformly, so a person's spelling variants land in one
// row everywhere.
func BuildSessions(eventsByLocation map[string][]Event, locations []string, weeksBack int, now time.Time) *SessionsData {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	currentMonday, currentSunday := WeekBounds(today)
	startMonday := currentMonday.AddDate(0, 0, -7*(weeksBack-1))

	var allNames []string
	for _, events := range eventsByLocation {
		for _, e := range events {
			if name, ok := ExtractName(e.Summary); ok {
				allNames = append(allNames, name)
			}
		}
	}
	canonical := BuildCanonicalMap(allNames)

	grandTotals := map[string]*therapistTotals{}
	var weeks []Week

	for monday := startMonday; !monday.After(currentSunday); monday = monday.AddDate(0, 0, 7) {
		sunday := monday.AddDate(0, 0, 6)
		week := Week{
			WeekLabel: fmt.Sprintf("%s - %s", monday.Format("01/02"), sunday.Format("01/02/2006")),
			WeekStart: monday.Format("2006-01-02"),
			WeekEnd:   sunday.Format("2006-01-02"),
			IsCurrent: monday.Equal(currentMonday),
			Locations: map[string]LocationWeek{},
		}

		for _, location := range locations {
			days := map[string]*[7]float64{}
			for _, e := range eventsByLocation[location] {
				d := e.date()
				if d.Before(monday) || d.After(sunday) {
					continue
				}
				name, ok := ExtractName(e.Summary)
				if !ok {
					continue
				}
				name = canonical.Resolve(name)
				grid, ok := days[name]
				if !ok {
					grid = &[7]float64{}
					days[name] = grid
				}
				grid[e.dayOfWeek()] += e.Weight()
			}
			if len(days) == 0 {
				continue
			}

			names := make([]string, 0, len(days))
			for name := range days {
				names = append(names, name)
			}
			sort.Strings(names)

			loc := LocationWeek{}
			for _, name := range names {
				d := days[name]
				total := d[0] + d[1] + d[2] + d[3] + d[4] + d[5] + d[6]
				loc.Rows = append(loc.Rows, TherapistRow{
					Therapist: name,
					Mon:       d[0], Tue: d[1], Wed: d[2], Thu: d[3],
					Fri: d[4], Sat: d[5], Sun: d[6],
					Total: total,
				})
				loc.LocationTotal += total

				gt, ok := grandTotals[name]
				if !ok {
					gt = &therapistTotals{byLocation: map[string]float64{}}
					grandTotals[name] = gt
				}
				gt.total += total
				gt.byLocation[location] += total
			}
			week.Locations[location] = loc
			week.GrandTotal += loc.LocationTotal
		}
		weeks = append(weeks, week)
	}

	summaryNames := make([]string, 0, len(grandTotals))
	for name := range grandTotals {
		summaryNames = append(summaryNames, name)
	}
	sort.Strings(summaryNames)

	summary := make([]TherapistSummary, 0, len(summaryNames))
	for _, name := range summaryNames {
		gt := grandTotals[name]
		summary = append(summary, TherapistSummary{
			Therapist:     name,
			TotalSessions: gt.total,
			ByLocation:    gt.byLocation,
		})
	}

	return &SessionsData{
		Weeks:            weeks,
		TherapistSummary: summary,
		Locations:        locations,
		WeeksBack:        weeksBack,
		Generated:        now.Format(time.RFC3339),
	}
}
