// Command genfars generates deterministic mock FARS accident datasets for
// local development and test fixtures. Rows are pseudo-random but seeded, so
// the same flags always produce the same file.
//
// Usage:
//
//	go run ./cmd/genfars -out-dir data/mock -year 2013 -rows 500 -seed 42
package main

import (
	"encoding/csv"
	"flag"
	"fmt"
	"log"
	"math/rand"
	"os"
	"path/filepath"
	"strconv"

	"github.com/couchcryptid/fars-data-pipeline/internal/adapter/csvfile"
	"github.com/couchcryptid/fars-data-pipeline/internal/domain"
	"github.com/dsnet/compress/bzip2"
)

// stateCodes is the set of STATE values mock rows draw from. Weighted
// towards populous states so per-state maps have enough points.
var stateCodes = []int{1, 1, 1, 6, 6, 6, 6, 12, 12, 12, 36, 36, 48, 48, 48, 48, 17, 39, 42, 13}

// header is a representative subset of the real accident file columns. Only
// the first four matter to the pipeline; the rest pass through.
var header = []string{
	domain.ColState, "ST_CASE", domain.ColMonth, "DAY", "HOUR",
	domain.ColLongitude, domain.ColLatitude, "FATALS",
}

func main() {
	if err := run(); err != nil {
		log.Fatal(err)
	}
}

func run() error {
	outDir := flag.String("out-dir", "", "directory to write the dataset into")
	year := flag.Int("year", 2013, "dataset year")
	rows := flag.Int("rows", 500, "number of accident rows")
	seed := flag.Int64("seed", 42, "PRNG seed")
	flag.Parse()

	if *outDir == "" {
		flag.Usage()
		return fmt.Errorf("missing required flag: -out-dir")
	}

	if err := os.MkdirAll(*outDir, 0o755); err != nil {
		return err
	}

	path := filepath.Join(*outDir, csvfile.Filename(*year))
	if err := writeDataset(path, *rows, *seed); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	log.Printf("wrote %s: %d rows", path, *rows)
	return nil
}

func writeDataset(path string, rows int, seed int64) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	bw, err := bzip2.NewWriter(f, &bzip2.WriterConfig{Level: bzip2.BestSpeed})
	if err != nil {
		return err
	}

	w := csv.NewWriter(bw)
	if err := w.Write(header); err != nil {
		return err
	}

	rng := rand.New(rand.NewSource(seed))
	for i := 0; i < rows; i++ {
		if err := w.Write(mockRow(rng, i)); err != nil {
			return err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return err
	}

	if err := bw.Close(); err != nil {
		return err
	}
	return f.Close()
}

// mockRow produces one accident row. Roughly 4% of rows get sentinel
// coordinates, matching the not-recorded rate seen in real files.
func mockRow(rng *rand.Rand, caseNum int) []string {
	lon := -124.0 + rng.Float64()*57.0 // continental US longitudes
	lat := 25.0 + rng.Float64()*24.0   // continental US latitudes
	if rng.Float64() < 0.04 {
		lon = 999.9999
	}
	if rng.Float64() < 0.04 {
		lat = 99.9999
	}

	return []string{
		strconv.Itoa(stateCodes[rng.Intn(len(stateCodes))]),
		strconv.Itoa(10001 + caseNum),
		strconv.Itoa(1 + rng.Intn(12)),
		strconv.Itoa(1 + rng.Intn(28)),
		strconv.Itoa(rng.Intn(24)),
		fmt.Sprintf("%.4f", lon),
		fmt.Sprintf("%.4f", lat),
		strconv.Itoa(1 + rng.Intn(3)),
	}
}
