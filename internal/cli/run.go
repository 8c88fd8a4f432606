package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/pfrederiksen/salmon-run-stats/internal/logger"
	"github.com/pfrederiksen/salmon-run-stats/internal/salmon"
	"github.com/pfrederiksen/salmon-run-stats/internal/storage"
)

// ErrRiversFailed is returned after a --keep-going run in which at least one river failed.
var ErrRiversFailed = errors.New("one or more rivers failed")

// Fetcher retrieves the year series of one river
type Fetcher interface {
	FetchRiver(ctx context.Context, river salmon.River) (*salmon.Years, error)
}

// Runner processes rivers sequentially: fetch, extract, then write or warn per year.
type Runner struct {
	fetcher   Fetcher
	sink      storage.Sink
	out       io.Writer
	keepGoing bool
}

// NewRunner creates a Runner. Empty-series warnings are printed to out, which must not
// be the stream carrying a JSON summary.
func NewRunner(fetcher Fetcher, sink storage.Sink, out io.Writer, keepGoing bool) *Runner {
	return &Runner{
		fetcher:   fetcher,
		sink:      sink,
		out:       out,
		keepGoing: keepGoing,
	}
}

// Run processes rivers in order. Without keepGoing the first fetch or parse failure
// stops the run; rivers already processed keep their files. The returned result is
// never nil and always reflects the work done so far.
func (r *Runner) Run(ctx context.Context, rivers []salmon.River) (*OutputResult, error) {
	result := &OutputResult{
		CheckedAt: time.Now().UTC(),
		Rivers:    make([]string, 0, len(rivers)),
		Series:    make([]SeriesResult, 0),
	}
	stats := salmon.NewStatistics()
	result.Statistics = stats
	defer func() { sortSeries(result.Series) }()

	for _, river := range rivers {
		result.Rivers = append(result.Rivers, string(river))

		years, err := r.fetcher.FetchRiver(ctx, river)
		if err != nil {
			logger.Error("River failed", logger.Fields{"river": string(river)}, err)
			result.Failures = append(result.Failures, RiverFailure{River: string(river), Error: err.Error()})
			if !r.keepGoing || ctx.Err() != nil {
				return result, fmt.Errorf("river %s: %w", river, err)
			}
			continue
		}
		stats.Put(river, years)

		if err := r.storeRiver(river, result); err != nil {
			return result, err
		}
	}

	if len(result.Failures) > 0 {
		return result, fmt.Errorf("%w: %d of %d", ErrRiversFailed, len(result.Failures), len(rivers))
	}
	return result, nil
}

// storeRiver writes or warns for every year recorded for river in result.Statistics
func (r *Runner) storeRiver(river salmon.River, result *OutputResult) error {
	years, ok := result.Statistics.Years(river)
	if !ok {
		return nil
	}

	for _, year := range years.Keys() {
		series, _ := years.Get(year)
		entry, err := r.store(river, year, series)
		if err != nil {
			return err
		}
		result.Series = append(result.Series, entry)
	}
	return nil
}

// store writes one series or warns when it has nothing to write
func (r *Runner) store(river salmon.River, year string, series *salmon.Series) (SeriesResult, error) {
	entry := SeriesResult{
		River:  string(river),
		Year:   year,
		Points: series.Len(),
	}

	if series.Empty() {
		fmt.Fprintf(r.out, "WARNING: No statistics available for river %s, year %s\n", river, year)
		logger.IncrCounter("series.empty")
		entry.Empty = true
		return entry, nil
	}

	path, err := r.sink.WriteSeries(river, year, series)
	if err != nil {
		return entry, fmt.Errorf("storing %s %s: %w", river, year, err)
	}

	logger.IncrCounter("series.written")
	logger.Info("Wrote series", logger.Fields{
		"river":  string(river),
		"year":   year,
		"points": series.Len(),
		"path":   path,
	})

	entry.Path = path
	return entry, nil
}
