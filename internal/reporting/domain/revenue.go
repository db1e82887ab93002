package domain

import (
	"sort"

	leadsdomain "bayview_dashboard_backend/internal/leads/domain"
)

// MonthRevenue splits one month's booked leads into revenue classes.
type MonthRevenue struct {
	Month         string `json:"month"`
	TherapyBooked int    `json:"therapyBooked"`
	TestingBooked int    `json:"testingBooked"`
}

// BuildMonthlyRevenue buckets booked leads by month, split into therapy and
// testing using the raw service text.
func BuildMonthlyRevenue(leads []leadsdomain.Lead) []MonthRevenue {
	months := map[string]*MonthRevenue{}
	for _, l := range leads {
		if !l.Booked {
			continue
		}
		key := l.Date.Format("2006-01")
		m, ok := months[key]
		if !ok {
			m = &MonthRevenue{Month: key}
			months[key] = m
		}
		if leadsdomain.IsTestingService(l.ServiceRaw) {
			m.TestingBooked++
		} else {
			m.TherapyBooked++
		}
	}

	out := make([]MonthRevenue, 0, len(months))
	for _, m := range months {
		out = append(out, *m)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Month < out[j].Month })
	return out
}
