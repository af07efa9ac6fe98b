package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSanitizePoints(t *testing.T) {
	points := []Point{
		{Lon: -86.12, Lat: 32.50},
		{Lon: 999.9999, Lat: 33.10},   // longitude not recorded
		{Lon: -97.50, Lat: 99.9999},   // latitude not recorded
		{Lon: 999.9999, Lat: 99.9999}, // both not recorded
	}

	got := SanitizePoints(points)

	assert.Equal(t, Point{Lon: -86.12, Lat: 32.50}, got[0])

	assert.True(t, math.IsNaN(got[1].Lon))
	assert.Equal(t, 33.10, got[1].Lat)

	assert.Equal(t, -97.50, got[2].Lon)
	assert.True(t, math.IsNaN(got[2].Lat))

	assert.True(t, math.IsNaN(got[3].Lon))
	assert.True(t, math.IsNaN(got[3].Lat))

	// No surviving value beyond the sentinels.
	for _, p := range got {
		if !math.IsNaN(p.Lon) {
			assert.LessOrEqual(t, p.Lon, LongitudeSentinel)
		}
		if !math.IsNaN(p.Lat) {
			assert.LessOrEqual(t, p.Lat, LatitudeSentinel)
		}
	}

	// Input untouched.
	assert.Equal(t, 999.9999, points[1].Lon)
}

func TestSanitizePoints_BoundaryValues(t *testing.T) {
	// Sentinels are strict greater-than: exactly 900 / 90 survive.
	got := SanitizePoints([]Point{{Lon: 900, Lat: 90}})
	assert.Equal(t, 900.0, got[0].Lon)
	assert.Equal(t, 90.0, got[0].Lat)
}

func TestPointPlottable(t *testing.T) {
	assert.True(t, Point{Lon: -86, Lat: 32}.Plottable())
	assert.False(t, Point{Lon: math.NaN(), Lat: 32}.Plottable())
	assert.False(t, Point{Lon: -86, Lat: math.NaN()}.Plottable())
	assert.False(t, Point{Lon: math.NaN(), Lat: math.NaN()}.Plottable())
}

func TestCoordinateRanges(t *testing.T) {
	t.Run("ignores missing values per axis", func(t *testing.T) {
		points := []Point{
			{Lon: -90, Lat: 30},
			{Lon: math.NaN(), Lat: 45}, // latitude still counts
			{Lon: -80, Lat: math.NaN()},
		}

		latRange, lonRange, ok := CoordinateRanges(points)
		assert.True(t, ok)
		assert.Equal(t, Range{Min: 30, Max: 45}, latRange)
		assert.Equal(t, Range{Min: -90, Max: -80}, lonRange)
	})

	t.Run("single point collapses to a degenerate range", func(t *testing.T) {
		latRange, lonRange, ok := CoordinateRanges([]Point{{Lon: -86, Lat: 32}})
		assert.True(t, ok)
		assert.Equal(t, Range{Min: 32, Max: 32}, latRange)
		assert.Equal(t, Range{Min: -86, Max: -86}, lonRange)
	})

	t.Run("no valid values on an axis", func(t *testing.T) {
		_, _, ok := CoordinateRanges([]Point{
			{Lon: math.NaN(), Lat: 30},
			{Lon: math.NaN(), Lat: 40},
		})
		assert.False(t, ok)
	})

	t.Run("empty input", func(t *testing.T) {
		_, _, ok := CoordinateRanges(nil)
		assert.False(t, ok)
	})
}

func TestStateName(t *testing.T) {
	name, ok := StateName(1)
	assert.True(t, ok)
	assert.Equal(t, "Alabama", name)

	name, ok = StateName(48)
	assert.True(t, ok)
	assert.Equal(t, "Texas", name)

	_, ok = StateName(999)
	assert.False(t, ok)
}

func TestStateLabel(t *testing.T) {
	assert.Equal(t, "California", StateLabel(6))
	assert.Equal(t, "State 999", StateLabel(999))
}
