package domain

import (
	"encoding/json"
	"sort"
	"strconv"
	"time"
)

// CellKey addresses one (month, year) cell of a MonthlySummary.
type CellKey struct {
	Month int
	Year  int
}

// MonthlySummary is a sparse month × year count table. A (month, year)
// combination with no observed accidents has no cell; absent is distinct
// from zero and no cell is ever zero-filled.
type MonthlySummary struct {
	counts      map[CellKey]int
	GeneratedAt time.Time
}

// NewMonthlySummary groups observations by (month, year) and counts each
// group.
func NewMonthlySummary(obs []Observation) *MonthlySummary {
	counts := make(map[CellKey]int)
	for _, o := range obs {
		counts[CellKey{Month: o.Month, Year: o.Year}]++
	}
	return &MonthlySummary{
		counts:      counts,
		GeneratedAt: clock.Now(),
	}
}

// Count returns the number of accidents for (month, year). ok is false when
// the cell is absent, which callers must not conflate with a zero count.
func (s *MonthlySummary) Count(month, year int) (n int, ok bool) {
	n, ok = s.counts[CellKey{Month: month, Year: year}]
	return n, ok
}

// Months returns the distinct months observed across all years, ascending.
func (s *MonthlySummary) Months() []int {
	seen := make(map[int]bool)
	var months []int
	for k := range s.counts {
		if !seen[k.Month] {
			seen[k.Month] = true
			months = append(months, k.Month)
		}
	}
	sort.Ints(months)
	return months
}

// Years returns the distinct years observed, ascending. Years that failed to
// load contribute no observations and therefore never appear.
func (s *MonthlySummary) Years() []int {
	seen := make(map[int]bool)
	var years []int
	for k := range s.counts {
		if !seen[k.Year] {
			seen[k.Year] = true
			years = append(years, k.Year)
		}
	}
	sort.Ints(years)
	return years
}

// Total returns the count of all observations in the summary.
func (s *MonthlySummary) Total() int {
	total := 0
	for _, n := range s.counts {
		total += n
	}
	return total
}

// monthCounts is the JSON row form: counts keyed by year, absent cells omitted.
type monthCounts struct {
	Month  int            `json:"month"`
	Counts map[string]int `json:"counts"`
}

type summaryJSON struct {
	GeneratedAt time.Time     `json:"generated_at"`
	Years       []int         `json:"years"`
	Months      []monthCounts `json:"months"`
}

// MarshalJSON renders the pivot sparsely: one entry per observed month, with
// a counts object holding only the years that have a cell for that month.
func (s *MonthlySummary) MarshalJSON() ([]byte, error) {
	out := summaryJSON{
		GeneratedAt: s.GeneratedAt,
		Years:       s.Years(),
		Months:      make([]monthCounts, 0, 12),
	}
	for _, m := range s.Months() {
		row := monthCounts{Month: m, Counts: make(map[string]int)}
		for _, y := range out.Years {
			if n, ok := s.Count(m, y); ok {
				row.Counts[strconv.Itoa(y)] = n
			}
		}
		out.Months = append(out.Months, row)
	}
	return json.Marshal(out)
}
