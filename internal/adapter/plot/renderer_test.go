package plot

import (
	"bytes"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/couchcryptid/fars-data-pipeline/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testPoints = []domain.Point{
	{Lon: -86.1, Lat: 32.5},
	{Lon: -87.3, Lat: 33.1},
	{Lon: math.NaN(), Lat: 34.0}, // skipped: missing longitude
}

func TestFileRenderer_WritesPNG(t *testing.T) {
	path := filepath.Join(t.TempDir(), "map.png")
	r := NewFileRenderer(path, "Alabama accidents, 2013", 8, 6, slog.Default())

	require.NoError(t, r.DrawBaseMap(
		domain.Range{Min: 32.5, Max: 34.0},
		domain.Range{Min: -87.3, Max: -86.1},
	))
	require.NoError(t, r.DrawPoints(testPoints))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("\x89PNG")), "output is not a PNG")
}

func TestWriterRenderer_WritesPNG(t *testing.T) {
	var buf bytes.Buffer
	r := NewWriterRenderer(&buf, "Texas accidents, 2014", 8, 6, slog.Default())

	require.NoError(t, r.DrawBaseMap(
		domain.Range{Min: 30.0, Max: 30.5},
		domain.Range{Min: -97.6, Max: -97.4},
	))
	require.NoError(t, r.DrawPoints(testPoints))

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte("\x89PNG")))
}

func TestDrawPoints_RequiresBaseMap(t *testing.T) {
	r := NewWriterRenderer(&bytes.Buffer{}, "t", 8, 6, slog.Default())
	assert.Error(t, r.DrawPoints(testPoints))
}

func TestDrawBaseMap_DegenerateRange(t *testing.T) {
	// A single-point frame must still get a non-zero span.
	var buf bytes.Buffer
	r := NewWriterRenderer(&buf, "t", 8, 6, slog.Default())

	require.NoError(t, r.DrawBaseMap(
		domain.Range{Min: 32.5, Max: 32.5},
		domain.Range{Min: -86.1, Max: -86.1},
	))
	assert.Less(t, r.p.X.Min, r.p.X.Max)
	assert.Less(t, r.p.Y.Min, r.p.Y.Max)
}
