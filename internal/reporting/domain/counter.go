package domain

import "sort"

// NameCount is a label with an occurrence count.
type NameCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// counter counts labels while remembering discovery order, so ranking ties
// resolve to whichever label appeared first in the data. This keeps repeated
// runs over the same input byte-identical.
type counter struct {
	counts map[string]int
	order  []string
}

func newCounter() *counter {
	return &counter{counts: map[string]int{}}
}

func (c *counter) Add(key string) {
	if _, seen := c.counts[key]; !seen {
		c.order = append(c.order, key)
	}
	c.counts[key]++
}

func (c *counter) Len() int {
	return len(c.order)
}

// MostCommon returns up to n labels ranked by count descending, ties in
// discovery order. n <= 0 returns all.
func (c *counter) MostCommon(n int) []NameCount {
	out := make([]NameCount, 0, len(c.order))
	for _, key := range c.order {
		out = append(out, NameCount{Name: key, Count: c.counts[key]})
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Count > out[j].Count
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Top returns the single most common label, or ("Unknown", 0) when empty.
func (c *counter) Top() NameCount {
	top := c.MostCommon(1)
	if len(top) == 0 {
		return NameCount{Name: "Unknown", Count: 0}
	}
	return top[0]
}
