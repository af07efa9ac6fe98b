// Command fars works with yearly FARS accident datasets resolved under
// FARS_DATA_DIR (default: the working directory).
//
// Usage:
//
//	fars summary -years 2013,2014,2015
//	fars map -state 1 -year 2013 [-o alabama.png]
//	fars serve
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/couchcryptid/fars-data-pipeline/internal/adapter/csvfile"
	httpadapter "github.com/couchcryptid/fars-data-pipeline/internal/adapter/http"
	plotadapter "github.com/couchcryptid/fars-data-pipeline/internal/adapter/plot"
	"github.com/couchcryptid/fars-data-pipeline/internal/config"
	"github.com/couchcryptid/fars-data-pipeline/internal/domain"
	"github.com/couchcryptid/fars-data-pipeline/internal/observability"
	"github.com/couchcryptid/fars-data-pipeline/internal/pipeline"
)

const usage = `usage: fars <command> [flags]

commands:
  summary   print the month x year accident count table for a set of years
  map       render a per-state accident scatter map as a PNG
  serve     expose summary and map endpoints over HTTP
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()
	reader := csvfile.NewReader(cfg.DataDir, logger)

	switch os.Args[1] {
	case "summary":
		err = runSummary(os.Args[2:], reader, logger, metrics)
	case "map":
		err = runMap(os.Args[2:], cfg, reader, logger, metrics)
	case "serve":
		err = runServe(cfg, reader, logger, metrics)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	if err != nil {
		logger.Error("command failed", "command", os.Args[1], "error", err)
		os.Exit(1)
	}
}

func runSummary(args []string, reader *csvfile.Reader, logger *slog.Logger, metrics *observability.Metrics) error {
	fs := flag.NewFlagSet("summary", flag.ExitOnError)
	yearsFlag := fs.String("years", "", "comma-separated years, e.g. 2013,2014,2015")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *yearsFlag == "" {
		fs.Usage()
		return errors.New("missing required flag: -years")
	}

	years := splitYears(*yearsFlag)
	loader := pipeline.NewLoader(reader, logger, metrics)
	summarizer := pipeline.NewSummarizer(loader, logger, metrics)

	summary, err := summarizer.Summarize(years)
	if err != nil {
		return err
	}
	return printSummary(os.Stdout, summary)
}

func runMap(args []string, cfg *config.Config, reader *csvfile.Reader, logger *slog.Logger, metrics *observability.Metrics) error {
	fs := flag.NewFlagSet("map", flag.ExitOnError)
	stateFlag := fs.String("state", "", "FARS state code, e.g. 1 for Alabama")
	yearFlag := fs.Int("year", 0, "dataset year, e.g. 2013")
	outFlag := fs.String("o", "", "output PNG path (default accident_map_<state>_<year>.png under FARS_MAP_DIR)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *stateFlag == "" || *yearFlag == 0 {
		fs.Usage()
		return errors.New("missing required flags: -state, -year")
	}

	out := *outFlag
	if out == "" {
		out = filepath.Join(cfg.MapDir, fmt.Sprintf("accident_map_%s_%d.png", *stateFlag, *yearFlag))
	}

	title := "State " + *stateFlag
	if code, err := strconv.Atoi(*stateFlag); err == nil {
		title = domain.StateLabel(code)
	}
	title = fmt.Sprintf("%s accidents, %d", title, *yearFlag)

	renderer := plotadapter.NewFileRenderer(out, title, cfg.MapWidth, cfg.MapHeight, logger)
	mapper := pipeline.NewStateMapper(reader, logger, metrics)
	return mapper.RenderStateMap(renderer, *stateFlag, *yearFlag)
}

func runServe(cfg *config.Config, reader *csvfile.Reader, logger *slog.Logger, metrics *observability.Metrics) error {
	loader := pipeline.NewLoader(reader, logger, metrics)
	summarizer := pipeline.NewSummarizer(loader, logger, metrics)
	mapper := pipeline.NewStateMapper(reader, logger, metrics)

	srv := httpadapter.NewServer(cfg.HTTPAddr, reader, summarizer, mapper, cfg.MapWidth, cfg.MapHeight, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)
	go func() {
		if err := srv.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}
	logger.Info("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	logger.Info("shutdown complete")
	return nil
}

func splitYears(raw string) []any {
	parts := strings.Split(raw, ",")
	years := make([]any, 0, len(parts))
	for _, p := range parts {
		years = append(years, strings.TrimSpace(p))
	}
	return years
}

// printSummary writes the pivot as a text table: one row per observed month,
// one column per loaded year. Absent cells print blank, not 0.
func printSummary(out io.Writer, summary *domain.MonthlySummary) error {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)

	fmt.Fprint(w, "MONTH")
	for _, year := range summary.Years() {
		fmt.Fprintf(w, "\t%d", year)
	}
	fmt.Fprintln(w)

	for _, month := range summary.Months() {
		fmt.Fprintf(w, "%d", month)
		for _, year := range summary.Years() {
			if n, ok := summary.Count(month, year); ok {
				fmt.Fprintf(w, "\t%d", n)
			} else {
				fmt.Fprint(w, "\t")
			}
		}
		fmt.Fprintln(w)
	}
	return w.Flush()
}
