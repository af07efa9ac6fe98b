// Package domain models US DOT Fatality Analysis Reporting System (FARS)
// accident data.
//
// # Data Source
//
// FARS publishes one accident file per calendar year, distributed as a
// bzip2-compressed CSV named "accident_<year>.csv.bz2". Each row is one
// reported fatal crash. The columns this system relies on:
//
//	STATE     integer state code (FIPS/GSA GLC), e.g. 1 = Alabama, 48 = Texas
//	MONTH     month of the crash, 1-12
//	LONGITUD  longitude in decimal degrees (note the truncated column name)
//	LATITUDE  latitude in decimal degrees
//
// All other columns pass through the tabular layer untouched.
//
// # Coordinate Sentinels
//
// FARS does not use empty cells for unknown locations. Instead it encodes
// "not recorded" as out-of-range numeric sentinels:
//
//	LONGITUD > 900  →  longitude not recorded (e.g. 999.9999)
//	LATITUDE > 90   →  latitude not recorded (e.g. 99.9999)
//
// The sentinels apply independently per axis: a row may carry a valid
// latitude alongside an unrecorded longitude. [SanitizePoints] converts
// sentinel values to NaN before any range computation or rendering, matching
// the dataframe library's missing-value representation.
//
// # Monthly Summary
//
// The cross-year summary is a sparse month × year pivot: the cell for
// (month, year) holds the count of crashes in that month of that year, and a
// combination with no observed crashes has no cell at all. Absent is not
// zero; [MonthlySummary.Count] reports the distinction.
package domain
