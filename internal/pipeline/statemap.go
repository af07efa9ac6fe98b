package pipeline

import (
	"fmt"
	"log/slog"
	"math"
	"strconv"
	"strings"

	"github.com/couchcryptid/fars-data-pipeline/internal/adapter/csvfile"
	"github.com/couchcryptid/fars-data-pipeline/internal/domain"
	"github.com/couchcryptid/fars-data-pipeline/internal/observability"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// InvalidStateError reports a state identifier that does not appear in the
// requested year's data (or does not coerce to an integer code at all).
type InvalidStateError struct {
	Value any
}

func (e *InvalidStateError) Error() string {
	return fmt.Sprintf("invalid STATE code: %v", e.Value)
}

// StateMapper renders the accident scatter map for one state and year.
type StateMapper struct {
	reader  DatasetReader
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewStateMapper creates a StateMapper over the given dataset reader.
func NewStateMapper(reader DatasetReader, logger *slog.Logger, metrics *observability.Metrics) *StateMapper {
	return &StateMapper{
		reader:  reader,
		logger:  logger,
		metrics: metrics,
	}
}

// RenderStateMap reads the year's dataset, verifies the state code appears
// among its distinct STATE values, filters to that state, sanitizes
// coordinates, and draws the map through the renderer.
//
// Terminal outcomes: a state absent from the data fails with
// *InvalidStateError; a state with nothing to plot logs a notice and
// returns nil without touching the renderer (soft exit); otherwise the base
// map is framed to the valid coordinate bounds and the points are drawn.
func (m *StateMapper) RenderStateMap(renderer Renderer, state any, year int) error {
	code, ok := coerceStateCode(state)
	if !ok {
		return &InvalidStateError{Value: state}
	}

	df, err := readTimed(m.reader, m.metrics, csvfile.Filename(year))
	if err != nil {
		return err
	}

	if !stateInData(df, code) {
		return &InvalidStateError{Value: state}
	}

	sub := df.Filter(dataframe.F{
		Colname:    domain.ColState,
		Comparator: series.Eq,
		Comparando: code,
	})
	if sub.Error() != nil {
		return fmt.Errorf("filter state rows: %w", sub.Error())
	}

	points := domain.SanitizePoints(extractPoints(sub))
	plottable := 0
	for _, p := range points {
		if p.Plottable() {
			plottable++
		}
	}

	latRange, lonRange, framed := domain.CoordinateRanges(points)
	if sub.Nrow() == 0 || !framed || plottable == 0 {
		m.logger.Info("no accidents to plot", "state", code, "year", year)
		return nil
	}

	if err := renderer.DrawBaseMap(latRange, lonRange); err != nil {
		return fmt.Errorf("draw base map: %w", err)
	}
	if err := renderer.DrawPoints(points); err != nil {
		return fmt.Errorf("draw points: %w", err)
	}

	m.metrics.MapsRendered.Inc()
	m.metrics.MapPoints.Observe(float64(plottable))
	m.logger.Info("state map rendered", "state", code, "year", year, "points", plottable)
	return nil
}

// coerceStateCode converts a state identifier to an integer code. Unlike
// year coercion this never produces its own error type; an uncoercible
// value is simply an invalid state.
func coerceStateCode(v any) (int, bool) {
	switch s := v.(type) {
	case int:
		return s, true
	case int32:
		return int(s), true
	case int64:
		return int(s), true
	case float64:
		if s == math.Trunc(s) && !math.IsInf(s, 0) {
			return int(s), true
		}
	case string:
		if n, err := strconv.Atoi(strings.TrimSpace(s)); err == nil {
			return n, true
		}
	}
	return 0, false
}

// stateInData reports whether code appears among the distinct STATE values.
func stateInData(df dataframe.DataFrame, code int) bool {
	states := df.Col(domain.ColState)
	for i := 0; i < states.Len(); i++ {
		if v, err := states.Elem(i).Int(); err == nil && v == code {
			return true
		}
	}
	return false
}

// extractPoints pulls the raw coordinate columns. Unparseable cells are
// already NaN in the float view.
func extractPoints(df dataframe.DataFrame) []domain.Point {
	lons := df.Col(domain.ColLongitude).Float()
	lats := df.Col(domain.ColLatitude).Float()
	points := make([]domain.Point, len(lons))
	for i := range lons {
		points[i] = domain.Point{Lon: lons[i], Lat: lats[i]}
	}
	return points
}
