package domain

import "math"

// Column names fixed by the FARS accident file schema. LONGITUD is spelled
// without the final E in the source data.
const (
	ColState     = "STATE"
	ColMonth     = "MONTH"
	ColLongitude = "LONGITUD"
	ColLatitude  = "LATITUDE"
)

// Coordinate sentinels used by FARS in place of nulls. Values beyond these
// bounds mean "not recorded".
const (
	LongitudeSentinel = 900.0
	LatitudeSentinel  = 90.0
)

// Observation is one accident projected to its month, tagged with the year
// it was loaded from. The year is not a column in the raw file; the loader
// injects it.
type Observation struct {
	Month int
	Year  int
}

// Point is an accident location. A missing axis is NaN, matching the
// dataframe missing-value representation.
type Point struct {
	Lon float64
	Lat float64
}

// Plottable reports whether both axes are present.
func (p Point) Plottable() bool {
	return !math.IsNaN(p.Lon) && !math.IsNaN(p.Lat)
}

// SanitizePoints applies the coordinate sentinels to each point, per axis:
// longitudes above LongitudeSentinel and latitudes above LatitudeSentinel
// become NaN. The input slice is not modified.
func SanitizePoints(points []Point) []Point {
	out := make([]Point, len(points))
	for i, p := range points {
		if p.Lon > LongitudeSentinel {
			p.Lon = math.NaN()
		}
		if p.Lat > LatitudeSentinel {
			p.Lat = math.NaN()
		}
		out[i] = p
	}
	return out
}

// Range is a closed numeric interval used to frame a map.
type Range struct {
	Min float64
	Max float64
}

// CoordinateRanges computes the latitude and longitude bounds across all
// non-missing values, each axis independently. ok is false when no point has
// a value on one of the axes, in which case nothing can be framed.
func CoordinateRanges(points []Point) (latRange, lonRange Range, ok bool) {
	latSeen, lonSeen := false, false
	for _, p := range points {
		if !math.IsNaN(p.Lat) {
			if !latSeen || p.Lat < latRange.Min {
				latRange.Min = p.Lat
			}
			if !latSeen || p.Lat > latRange.Max {
				latRange.Max = p.Lat
			}
			latSeen = true
		}
		if !math.IsNaN(p.Lon) {
			if !lonSeen || p.Lon < lonRange.Min {
				lonRange.Min = p.Lon
			}
			if !lonSeen || p.Lon > lonRange.Max {
				lonRange.Max = p.Lon
			}
			lonSeen = true
		}
	}
	return latRange, lonRange, latSeen && lonSeen
}
