package pipeline

import (
	"log/slog"

	"github.com/couchcryptid/fars-data-pipeline/internal/domain"
	"github.com/couchcryptid/fars-data-pipeline/internal/observability"
)

// Summarizer builds the cross-year monthly accident summary.
type Summarizer struct {
	loader  *Loader
	logger  *slog.Logger
	metrics *observability.Metrics
}

// NewSummarizer creates a Summarizer on top of a Loader.
func NewSummarizer(loader *Loader, logger *slog.Logger, metrics *observability.Metrics) *Summarizer {
	return &Summarizer{
		loader:  loader,
		logger:  logger,
		metrics: metrics,
	}
}

// Summarize loads the requested years, concatenates the observations of the
// years that loaded, and pivots them into the sparse month × year count
// table. Years that failed to load contribute no column; (month, year)
// cells with no observations stay absent, never zero.
func (s *Summarizer) Summarize(years []any) (*domain.MonthlySummary, error) {
	results, err := s.loader.LoadYears(years)
	if err != nil {
		return nil, err
	}

	var obs []domain.Observation
	for _, r := range results {
		obs = append(obs, r.Observations...)
	}

	summary := domain.NewMonthlySummary(obs)
	s.metrics.SummariesBuilt.Inc()
	s.logger.Info("summary built",
		"requested_years", len(years),
		"loaded_years", len(summary.Years()),
		"months", len(summary.Months()),
		"accidents", summary.Total(),
	)
	return summary, nil
}
