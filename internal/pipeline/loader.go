// Package pipeline orchestrates the FARS batch operations: multi-year
// loading, monthly summarization, and per-state map rendering.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/couchcryptid/fars-data-pipeline/internal/adapter/csvfile"
	"github.com/couchcryptid/fars-data-pipeline/internal/domain"
	"github.com/couchcryptid/fars-data-pipeline/internal/observability"
	"github.com/go-gota/gota/dataframe"
)

// DatasetReader loads a named accident dataset into a dataframe.
type DatasetReader interface {
	Read(name string) (dataframe.DataFrame, error)
}

// Renderer draws a state accident map. DrawBaseMap frames the plot around
// the coordinate bounds; DrawPoints then plots accident locations.
type Renderer interface {
	DrawBaseMap(latRange, lonRange domain.Range) error
	DrawPoints(points []domain.Point) error
}

// YearResult is the outcome of loading one requested year. A failed year
// keeps its reason in Err and contributes no observations; results always
// come back in input order, one per requested year.
type YearResult struct {
	Input        any // the year value as requested
	Year         int // coerced year; zero when coercion failed
	Observations []domain.Observation
	Err          error
}

// OK reports whether the year loaded.
func (r YearResult) OK() bool { return r.Err == nil }

// Loader reads the dataset for each requested year and projects rows to
// (month, year) observations.
type Loader struct {
	reader  DatasetReader
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewLoader creates a Loader over the given dataset reader.
func NewLoader(reader DatasetReader, logger *slog.Logger, metrics *observability.Metrics) *Loader {
	return &Loader{
		reader:  reader,
		logger:  logger,
		metrics: metrics,
	}
}

// LoadYears loads each requested year sequentially, in input order. A year
// whose value does not coerce to an integer or whose file is missing is
// recorded as a failed result and logged as a single warning naming the
// year; the batch carries on. Malformed dataset content is fatal and aborts
// the batch with a *csvfile.ParseError.
func (l *Loader) LoadYears(years []any) ([]YearResult, error) {
	results := make([]YearResult, 0, len(years))
	for _, y := range years {
		res, err := l.loadYear(y)
		if err != nil {
			return nil, err
		}
		if res.Err != nil {
			l.logger.Warn("invalid year, skipping", "year", fmt.Sprint(y), "error", res.Err)
			l.metrics.YearsSkipped.Inc()
		}
		results = append(results, res)
	}
	return results, nil
}

// loadYear performs the per-year steps: coerce, resolve filename, read,
// project. The returned error is non-nil only for failures that must abort
// the whole batch.
func (l *Loader) loadYear(input any) (YearResult, error) {
	year, err := csvfile.ParseYear(input)
	if err != nil {
		return YearResult{Input: input, Err: err}, nil
	}

	df, err := readTimed(l.reader, l.metrics, csvfile.Filename(year))
	var notFound *csvfile.NotFoundError
	if errors.As(err, &notFound) {
		return YearResult{Input: input, Year: year, Err: err}, nil
	}
	if err != nil {
		return YearResult{}, err
	}

	obs := projectObservations(df, year)
	l.metrics.RowsLoaded.Add(float64(len(obs)))
	l.logger.Debug("year loaded", "year", year, "rows", len(obs))
	return YearResult{Input: input, Year: year, Observations: obs}, nil
}

// readTimed wraps a dataset read with the read counters and timing.
func readTimed(reader DatasetReader, metrics *observability.Metrics, name string) (dataframe.DataFrame, error) {
	start := time.Now()
	df, err := reader.Read(name)
	if err != nil {
		metrics.ReadErrors.Inc()
		return df, err
	}
	metrics.DatasetsRead.Inc()
	metrics.ReadDuration.Observe(time.Since(start).Seconds())
	return df, nil
}

// projectObservations extracts the MONTH column and tags every row with the
// year. Rows whose month cell does not parse are dropped.
func projectObservations(df dataframe.DataFrame, year int) []domain.Observation {
	months := df.Col(domain.ColMonth)
	obs := make([]domain.Observation, 0, months.Len())
	for i := 0; i < months.Len(); i++ {
		m, err := months.Elem(i).Int()
		if err != nil {
			continue
		}
		obs = append(obs, domain.Observation{Month: m, Year: year})
	}
	return obs
}
