// Package domain computes the dashboard aggregates: period slices over the
// normalized leads, rental revenue rollups, revenue projections and the
// merged output document the frontend consumes.
package domain

import (
	"math"
	"sort"
	"strconv"
	"strings"

	leadsdomain "bayview_dashboard_backend/internal/leads/domain"
)

// LocationCount is one site's lead and booking counts.
type LocationCount struct {
	Name   string `json:"name"`
	Leads  int    `json:"leads"`
	Booked int    `json:"booked"`
}

// DayCount is one day's lead and booking counts.
type DayCount struct {
	Date   string `json:"date"`
	Leads  int    `json:"leads"`
	Booked int    `json:"booked"`
}

// MonthCount is one month's lead and booking counts.
type MonthCount struct {
	Month  string `json:"month"`
	Leads  int    `json:"leads"`
	Booked int    `json:"booked"`
}

// YearCount is one year's lead and booking counts.
type YearCount struct {
	Year   string `json:"year"`
	Leads  int    `json:"leads"`
	Booked int    `json:"booked"`
}

// TeamMemberStats is one staff member's lead handling record.
type TeamMemberStats struct {
	Name   string `json:"name"`
	Leads  int    `json:"leads"`
	Booked int    `json:"booked"`
	Rate   int    `json:"rate"`
	Mkt    bool   `json:"mkt"`
}

// RevenueSplit separates booked counts into therapy and testing classes.
type RevenueSplit struct {
	TherapyBooked int `json:"therapyBooked"`
	TestingBooked int `json:"testingBooked"`
	TherapyTotal  int `json:"therapyTotal"`
	TestingTotal  int `json:"testingTotal"`
}

// PrevSummary is the headline numbers of the comparison period.
type PrevSummary struct {
	Total       int `json:"total"`
	Booked      int `json:"booked"`
	BookingRate int `json:"bookingRate"`
}

// Period is the full aggregate for one date-bounded slice of leads.
type Period struct {
	Total       int               `json:"total"`
	Booked      int               `json:"booked"`
	BookingRate int               `json:"bookingRate"`
	TopLocation NameCount         `json:"topLocation"`
	TopSource   NameCount         `json:"topSource"`
	TopService  NameCount         `json:"topService"`
	Daily       []DayCount        `json:"daily"`
	Monthly     []MonthCount      `json:"monthly"`
	Yearly      []YearCount       `json:"yearly"`
	Locations   []LocationCount   `json:"locations"`
	Services    []NameCount       `json:"services"`
	Problems    []NameCount       `json:"problems"`
	Sources     []NameCount       `json:"sources"`
	Outcomes    []NameCount       `json:"outcomes"`
	Actions     []NameCount       `json:"actions"`
	Marketing   []NameCount       `json:"marketing"`
	Team        []TeamMemberStats `json:"team"`
	Referrals   []TeamMemberStats `json:"referrals"`
	Pending     []TeamMemberStats `json:"pending"`
	Revenue     RevenueSplit      `json:"revenue"`
	Prev        *PrevSummary      `json:"prev,omitempty"`
}

// nonTeamNames are referred-to values that are dispositions, not staff.
var nonTeamNames = map[string]struct{}{
	"insurance": {}, "medicaid": {}, "pending": {}, "medicare": {},
}

var referralNames = map[string]struct{}{
	"insurance": {}, "medicaid": {}, "medicare": {},
}

func roundRate(booked, total int) int {
	if total == 0 {
		return 0
	}
	return int(math.Round(float64(booked) / float64(total) * 100))
}

type dayBucket struct {
	leads, booked int
}

// BuildPeriod aggregates one slice of leads. prevLeads, when non-nil, fills
// the comparison summary (nil and empty are distinct: an empty comparison
// period still yields a zeroed prev block).
func BuildPeriod(leads []leadsdomain.Lead, prevLeads []leadsdomain.Lead) *Period {
	total := len(leads)
	booked := 0
	for _, l := range leads {
		if l.Booked {
			booked++
		}
	}

	locCounter := newCounter()
	srcCounter := newCounter()
	svcCounter := newCounter()
	problemCounter := newCounter()
	outcomeCounter := newCounter()
	actionCounter := newCounter()
	marketingCounter := newCounter()

	dailyMap := map[string]*dayBucket{}
	monthlyMap := map[string]*dayBucket{}
	yearlyMap := map[string]*dayBucket{}

	locLeads := map[string]int{}
	locBooked := map[string]int{}

	type teamBucket struct {
		leads, booked int
		mkt           bool
	}
	teamMap := map[string]*teamBucket{}
	var teamOrder []string

	bump := func(m map[string]*dayBucket, key string, isBooked bool) {
		b, ok := m[key]
		if !ok {
			b = &dayBucket{}
			m[key] = b
		}
		b.leads++
		if isBooked {
			b.booked++
		}
	}

	for _, l := range leads {
		locCounter.Add(l.Location)
		srcCounter.Add(l.Source)
		if l.Service != "" {
			svcCounter.Add(l.Service)
		}
		if l.Problem != "" {
			problemCounter.Add(l.Problem)
		}
		outcomeCounter.Add(l.Outcome)
		if l.Action != "" {
			actionCounter.Add(l.Action)
		}
		if l.Marketing != "" {
			marketingCounter.Add(l.Marketing)
		}

		bump(dailyMap, l.Date.Format("2006-01-02"), l.Booked)
		bump(monthlyMap, l.Date.Format("2006-01"), l.Booked)
		bump(yearlyMap, strconv.Itoa(l.Date.Year()), l.Booked)

		locLeads[l.Location]++
		if l.Booked {
			locBooked[l.Location]++
		}

		if l.TeamMember != "" {
			tb, ok := teamMap[l.TeamMember]
			if !ok {
				tb = &teamBucket{}
				teamMap[l.TeamMember] = tb
				teamOrder = append(teamOrder, l.TeamMember)
			}
			tb.leads++
			if l.Booked {
				tb.booked++
			}
			if l.Marketing == "Yes" {
				tb.mkt = true
			}
		}
	}

	daily := make([]DayCount, 0, len(dailyMap))
	for k, b := range dailyMap {
		daily = append(daily, DayCount{Date: k, Leads: b.leads, Booked: b.booked})
	}
	sort.Slice(daily, func(i, j int) bool { return daily[i].Date < daily[j].Date })

	monthly := make([]MonthCount, 0, len(monthlyMap))
	for k, b := range monthlyMap {
		monthly = append(monthly, MonthCount{Month: k, Leads: b.leads, Booked: b.booked})
	}
	sort.Slice(monthly, func(i, j int) bool { return monthly[i].Month < monthly[j].Month })

	yearly := make([]YearCount, 0, len(yearlyMap))
	for k, b := range yearlyMap {
		yearly = append(yearly, YearCount{Year: k, Leads: b.leads, Booked: b.booked})
	}
	sort.Slice(yearly, func(i, j int) bool { return yearly[i].Year < yearly[j].Year })

	locations := make([]LocationCount, 0, 5)
	for _, nc := range locCounter.MostCommon(5) {
		locations = append(locations, LocationCount{
			Name:   nc.Name,
			Leads:  locLeads[nc.Name],
			Booked: locBooked[nc.Name],
		})
	}

	allTeam := make([]TeamMemberStats, 0, len(teamOrder))
	for _, name := range teamOrder {
		tb := teamMap[name]
		allTeam = append(allTeam, TeamMemberStats{
			Name:   name,
			Leads:  tb.leads,
			Booked: tb.booked,
			Rate:   roundRate(tb.booked, tb.leads),
			Mkt:    tb.mkt,
		})
	}
	sort.SliceStable(allTeam, func(i, j int) bool { return allTeam[i].Leads > allTeam[j].Leads })

	team := make([]TeamMemberStats, 0, len(allTeam))
	referrals := make([]TeamMemberStats, 0)
	pending := make([]TeamMemberStats, 0)
	for _, t := range allTeam {
		lo := strings.ToLower(t.Name)
		if _, isNonTeam := nonTeamNames[lo]; !isNonTeam {
			if len(team) < 40 {
				team = append(team, t)
			}
			continue
		}
		if _, isReferral := referralNames[lo]; isReferral {
			referrals = append(referrals, t)
		}
		if lo == "pending" {
			pending = append(pending, t)
		}
	}

	var revenue RevenueSplit
	for _, l := range leads {
		testing := leadsdomain.IsTestingService(l.ServiceRaw)
		if testing {
			revenue.TestingTotal++
		} else {
			revenue.TherapyTotal++
		}
		if l.Booked {
			if testing {
				revenue.TestingBooked++
			} else {
				revenue.TherapyBooked++
			}
		}
	}

	period := &Period{
		Total:       total,
		Booked:      booked,
		BookingRate: roundRate(booked, total),
		TopLocation: locCounter.Top(),
		TopSource:   srcCounter.Top(),
		TopService:  svcCounter.Top(),
		Daily:       daily,
		Monthly:     monthly,
		Yearly:      yearly,
		Locations:   locations,
		Services:    svcCounter.MostCommon(15),
		Problems:    problemCounter.MostCommon(15),
		Sources:     srcCounter.MostCommon(20),
		Outcomes:    outcomeCounter.MostCommon(40),
		Actions:     actionCounter.MostCommon(10),
		Marketing:   marketingCounter.MostCommon(20),
		Team:        team,
		Referrals:   referrals,
		Pending:     pending,
		Revenue:     revenue,
	}

	if prevLeads != nil {
		prevTotal := len(prevLeads)
		prevBooked := 0
		for _, l := range prevLeads {
			if l.Booked {
				prevBooked++
			}
		}
		period.Prev = &PrevSummary{
			Total:       prevTotal,
			Booked:      prevBooked,
			BookingRate: roundRate(prevBooked, prevTotal),
		}
	}

	return period
}
