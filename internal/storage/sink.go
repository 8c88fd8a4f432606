package storage

import (
	"fmt"
	"io"

	"github.com/pfrederiksen/salmon-run-stats/internal/salmon"
)

// Sink receives the non-empty series of a run
type Sink interface {
	// Dir returns the directory series are written below
	Dir() string
	// WriteSeries persists one series and returns where it went
	WriteSeries(river salmon.River, year string, series *salmon.Series) (string, error)
}

// DryRunSink reports what would be written without touching the filesystem
type DryRunSink struct {
	dir string
	out io.Writer
}

// NewDryRunSink creates a dry-run sink that resolves paths below dir, expanded the
// same way as New, and reports to out
func NewDryRunSink(dir string, out io.Writer) (*DryRunSink, error) {
	dir, err := ExpandDir(dir)
	if err != nil {
		return nil, err
	}
	return &DryRunSink{dir: dir, out: out}, nil
}

// Dir returns the directory the reported paths are resolved against
func (d *DryRunSink) Dir() string {
	return d.dir
}

// WriteSeries prints the path and point count instead of writing
func (d *DryRunSink) WriteSeries(river salmon.River, year string, series *salmon.Series) (string, error) {
	path := SeriesPath(d.dir, river, year)
	if _, err := fmt.Fprintf(d.out, "Would write %s (%d points)\n", path, series.Len()); err != nil {
		return "", err
	}
	return path, nil
}
