package domain

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlySummary_SparseCells(t *testing.T) {
	obs := []Observation{
		{Month: 1, Year: 2013},
		{Month: 1, Year: 2013},
		{Month: 3, Year: 2013},
		{Month: 1, Year: 2014},
	}

	s := NewMonthlySummary(obs)

	n, ok := s.Count(1, 2013)
	assert.True(t, ok)
	assert.Equal(t, 2, n)

	n, ok = s.Count(3, 2013)
	assert.True(t, ok)
	assert.Equal(t, 1, n)

	// March 2014 had no observations: the cell is absent, not zero.
	n, ok = s.Count(3, 2014)
	assert.False(t, ok)
	assert.Equal(t, 0, n)

	assert.Equal(t, []int{1, 3}, s.Months())
	assert.Equal(t, []int{2013, 2014}, s.Years())
	assert.Equal(t, 4, s.Total())
}

func TestMonthlySummary_Empty(t *testing.T) {
	s := NewMonthlySummary(nil)
	assert.Empty(t, s.Months())
	assert.Empty(t, s.Years())
	assert.Equal(t, 0, s.Total())

	_, ok := s.Count(1, 2013)
	assert.False(t, ok)
}

func TestMonthlySummary_GeneratedAtUsesClock(t *testing.T) {
	frozen := time.Date(2026, time.August, 24, 12, 0, 0, 0, time.UTC)
	SetClock(clockwork.NewFakeClockAt(frozen))
	t.Cleanup(func() { SetClock(nil) })

	s := NewMonthlySummary([]Observation{{Month: 6, Year: 2013}})
	assert.True(t, s.GeneratedAt.Equal(frozen))
}

func TestMonthlySummary_MarshalJSONOmitsAbsentCells(t *testing.T) {
	SetClock(clockwork.NewFakeClockAt(time.Date(2026, time.August, 24, 12, 0, 0, 0, time.UTC)))
	t.Cleanup(func() { SetClock(nil) })

	s := NewMonthlySummary([]Observation{
		{Month: 1, Year: 2013},
		{Month: 2, Year: 2014},
	})

	data, err := json.Marshal(s)
	require.NoError(t, err)

	var decoded struct {
		Years  []int `json:"years"`
		Months []struct {
			Month  int            `json:"month"`
			Counts map[string]int `json:"counts"`
		} `json:"months"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))

	assert.Equal(t, []int{2013, 2014}, decoded.Years)
	require.Len(t, decoded.Months, 2)

	// January has a 2013 cell only; no zero-filled 2014 entry.
	assert.Equal(t, 1, decoded.Months[0].Month)
	assert.Equal(t, map[string]int{"2013": 1}, decoded.Months[0].Counts)

	assert.Equal(t, 2, decoded.Months[1].Month)
	assert.Equal(t, map[string]int{"2014": 1}, decoded.Months[1].Counts)
}
