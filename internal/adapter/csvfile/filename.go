package csvfile

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// Filename returns the conventional dataset filename for a year,
// e.g. Filename(2013) == "accident_2013.csv.bz2".
func Filename(year int) string {
	return fmt.Sprintf("accident_%d.csv.bz2", year)
}

// ParseYear coerces a year value to an integer. Integer kinds pass through,
// whole floats truncate, and decimal strings parse. Anything else fails with
// a *YearError; there is no placeholder fallback.
func ParseYear(v any) (int, error) {
	switch y := v.(type) {
	case int:
		return y, nil
	case int32:
		return int(y), nil
	case int64:
		return int(y), nil
	case float64:
		if y == math.Trunc(y) && !math.IsInf(y, 0) {
			return int(y), nil
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(y)); err == nil {
			return n, nil
		}
	}
	return 0, &YearError{Value: v}
}

// FilenameFor combines ParseYear and Filename for callers holding an
// uncoerced year value.
func FilenameFor(v any) (string, error) {
	year, err := ParseYear(v)
	if err != nil {
		return "", err
	}
	return Filename(year), nil
}
