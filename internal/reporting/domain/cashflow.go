package domain

import (
	"math"
	"sort"
	"time"

	leadsdomain "bayview_dashboard_backend/internal/leads/domain"
)

// Revenue assumptions per booked session.
const (
	roomRentalRate = 40
	testingRevenue = 1500
)

const cashflowWeeks = 30

// CashflowWeek is one projected or actual week at three billing tiers.
// Testing revenue is identical at every tier; only therapy scales.
type CashflowWeek struct {
	Week   string `json:"week"`
	IsPast bool   `json:"isPast"`
	LowT   int64  `json:"lowT"`
	LowX   int64  `json:"lowX"`
	Low    int64  `json:"low"`
	LowNc  int    `json:"lowNc"`
	LowNx  int    `json:"lowNx"`
	MedT   int64  `json:"medT"`
	MedX   int64  `json:"medX"`
	Med    int64  `json:"med"`
	MedNc  int    `json:"medNc"`
	MedNx  int    `json:"medNx"`
	HighT  int64  `json:"highT"`
	HighX  int64  `json:"highX"`
	High   int64  `json:"high"`
	HighNc int    `json:"highNc"`
	HighNx int    `json:"highNx"`
	Proj   bool   `json:"proj"`
}

// CashflowMonth is a monthly rollup of the weekly tiers.
type CashflowMonth struct {
	Month  string `json:"month"`
	IsPast bool   `json:"isPast"`
	LowT   int64  `json:"lowT"`
	LowX   int64  `json:"lowX"`
	Low    int64  `json:"low"`
	MedT   int64  `json:"medT"`
	MedX   int64  `json:"medX"`
	Med    int64  `json:"med"`
	HighT  int64  `json:"highT"`
	HighX  int64  `json:"highX"`
	High   int64  `json:"high"`
}

// CashflowRates is the trailing-90-day booking pace.
type CashflowRates struct {
	TherapyPerWeek float64 `json:"therapyPerWeek"`
	TestingPerWeek float64 `json:"testingPerWeek"`
}

// Cashflow is the revenue projection block of the dashboard.
type Cashflow struct {
	Weekly    []CashflowWeek  `json:"weekly"`
	Monthly   []CashflowMonth `json:"monthly"`
	Rates     CashflowRates   `json:"rates"`
	TodayWeek string          `json:"todayWeek"`
}

func round1(v float64) float64 {
	return math.Round(v*10) / 10
}

// BuildCashflow projects weekly revenue over a 30-week span centered on the
// current week: 14 weeks of history at actual booked counts, then future
// weeks at the trailing-90-day booking rate.
func BuildCashflow(leads []leadsdomain.Lead, reference time.Time) *Cashflow {
	today := midnight(reference)

	cutoff90 := today.AddDate(0, 0, -90)
	therapyRecent, testingRecent := 0, 0
	for _, l := range leads {
		if l.Date.Before(cutoff90) || !l.Booked {
			continue
		}
		if leadsdomain.IsTestingService(l.ServiceRaw) {
			testingRecent++
		} else {
			therapyRecent++
		}
	}
	weeksSpan := 90.0 / 7.0
	therapyPW := round1(float64(therapyRecent) / weeksSpan)
	testingPW := round1(float64(testingRecent) / weeksSpan)

	todayWeekStart := today.AddDate(0, 0, -((int(today.Weekday()) + 6) % 7))
	startCf := today.AddDate(0, 0, -14*7)
	startMonday := startCf.AddDate(0, 0, -((int(startCf.Weekday()) + 6) % 7))

	weekly := make([]CashflowWeek, 0, cashflowWeeks)
	for i := 0; i < cashflowWeeks; i++ {
		ws := startMonday.AddDate(0, 0, i*7)
		we := ws.AddDate(0, 0, 6)
		isPast := we.Before(today)

		tn, xn := 0, 0
		for _, l := range leads {
			if l.Date.Before(ws) || l.Date.After(we) || !l.Booked {
				continue
			}
			if leadsdomain.IsTestingService(l.ServiceRaw) {
				xn++
			} else {
				tn++
			}
		}

		proj := false
		if !isPast && (today.Before(ws) || today.After(we)) {
			tn = int(math.Round(therapyPW))
			xn = int(math.Round(testingPW))
			proj = true
		}

		lt := int64(tn) * roomRentalRate
		mt := int64(tn) * roomRentalRate * 2
		ht := int64(tn) * roomRentalRate * 4
		tx := int64(xn) * testingRevenue

		weekly = append(weekly, CashflowWeek{
			Week: ws.Format("2006-01-02"), IsPast: isPast,
			LowT: lt, LowX: tx, Low: lt + tx, LowNc: tn, LowNx: xn,
			MedT: mt, MedX: tx, Med: mt + tx, MedNc: tn, MedNx: xn,
			HighT: ht, HighX: tx, High: ht + tx, HighNc: tn, HighNx: xn,
			Proj: proj,
		})
	}

	monthMap := map[string]*CashflowMonth{}
	for i, w := range weekly {
		ws := startMonday.AddDate(0, 0, i*7)
		key := ws.Format("2006-01")
		m, ok := monthMap[key]
		if !ok {
			m = &CashflowMonth{Month: key, IsPast: true}
			monthMap[key] = m
		}
		m.LowT += w.LowT
		m.LowX += w.LowX
		m.Low += w.Low
		m.MedT += w.MedT
		m.MedX += w.MedX
		m.Med += w.Med
		m.HighT += w.HighT
		m.HighX += w.HighX
		m.High += w.High
		if w.Proj {
			m.IsPast = false
		}
	}
	monthly := make([]CashflowMonth, 0, len(monthMap))
	for _, m := range monthMap {
		monthly = append(monthly, *m)
	}
	sort.Slice(monthly, func(i, j int) bool { return monthly[i].Month < monthly[j].Month })

	return &Cashflow{
		Weekly:    weekly,
		Monthly:   monthly,
		Rates:     CashflowRates{TherapyPerWeek: therapyPW, TestingPerWeek: testingPW},
		TodayWeek: todayWeekStart.Format("2006-01-02"),
	}
}
