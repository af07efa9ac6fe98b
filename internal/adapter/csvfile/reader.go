// Package csvfile reads FARS accident datasets from bzip2-compressed CSV
// files into dataframes.
package csvfile

import (
	"compress/bzip2"
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/couchcryptid/fars-data-pipeline/internal/domain"
	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"
)

// requiredColumns must appear in every accident file header.
var requiredColumns = []string{
	domain.ColState,
	domain.ColMonth,
	domain.ColLongitude,
	domain.ColLatitude,
}

// Reader loads accident datasets from a directory. Each Read opens the file
// fresh; nothing is cached and nothing is written back, so reading the same
// unmodified file twice yields identical frames.
type Reader struct {
	dir    string
	logger *slog.Logger
}

// NewReader creates a Reader resolving dataset names under dir.
func NewReader(dir string, logger *slog.Logger) *Reader {
	return &Reader{dir: dir, logger: logger}
}

// Read loads the named dataset into a dataframe. The column set comes from
// the file header; STATE and MONTH are typed int, LONGITUD and LATITUDE
// float, and every other column stays a string. A missing file returns a
// *NotFoundError carrying the resolved path; malformed content returns a
// *ParseError.
func (r *Reader) Read(name string) (dataframe.DataFrame, error) {
	path := filepath.Join(r.dir, name)

	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return dataframe.DataFrame{}, &NotFoundError{Path: path}
	}
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open dataset: %w", err)
	}
	defer f.Close()

	var src io.Reader = f
	if strings.HasSuffix(name, ".bz2") {
		src = bzip2.NewReader(f)
	}

	df := dataframe.ReadCSV(src,
		dataframe.HasHeader(true),
		dataframe.DetectTypes(false),
		dataframe.DefaultType(series.String),
		dataframe.WithTypes(map[string]series.Type{
			domain.ColState:     series.Int,
			domain.ColMonth:     series.Int,
			domain.ColLongitude: series.Float,
			domain.ColLatitude:  series.Float,
		}),
	)
	if df.Error() != nil {
		return dataframe.DataFrame{}, &ParseError{Path: path, Err: df.Error()}
	}
	if err := checkColumns(df); err != nil {
		return dataframe.DataFrame{}, &ParseError{Path: path, Err: err}
	}

	r.logger.Debug("dataset read", "path", path, "rows", df.Nrow(), "columns", df.Ncol())
	return df, nil
}

// CheckReadiness reports whether the data directory is accessible. Satisfies
// the HTTP server's readiness probe.
func (r *Reader) CheckReadiness(_ context.Context) error {
	info, err := os.Stat(r.dir)
	if err != nil {
		return fmt.Errorf("data directory: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("data directory %q is not a directory", r.dir)
	}
	return nil
}

func checkColumns(df dataframe.DataFrame) error {
	present := make(map[string]bool, df.Ncol())
	for _, name := range df.Names() {
		present[name] = true
	}
	for _, col := range requiredColumns {
		if !present[col] {
			return fmt.Errorf("missing required column %q", col)
		}
	}
	return nil
}
