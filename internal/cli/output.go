package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/pfrederiksen/salmon-run-stats/internal/logger"
	"github.com/pfrederiksen/salmon-run-stats/internal/salmon"
)

// OutputFormat specifies the output format
type OutputFormat string

const (
	FormatText OutputFormat = "text"
	FormatJSON OutputFormat = "json"
)

// SeriesResult describes what happened to one river/year series
type SeriesResult struct {
	River  string `json:"river"`
	Year   string `json:"year"`
	Points int    `json:"points"`
	Path   string `json:"path,omitempty"`
	Empty  bool   `json:"empty,omitempty"`
}

// RiverFailure records a river whose page could not be fetched or parsed
type RiverFailure struct {
	River string `json:"river"`
	Error string `json:"error"`
}

// OutputResult contains data to be output
type OutputResult struct {
	CheckedAt  time.Time          `json:"checked_at"`
	Rivers     []string           `json:"rivers"`
	Series     []SeriesResult     `json:"series"`
	Failures   []RiverFailure     `json:"failures,omitempty"`
	Metrics    *logger.Snapshot   `json:"metrics,omitempty"`
	Statistics *salmon.Statistics `json:"-"`
}

// Written returns the number of series that were handed to the sink
func (r *OutputResult) Written() int {
	n := 0
	for _, s := range r.Series {
		if !s.Empty {
			n++
		}
	}
	return n
}

// WriteOutput writes the result in the specified format
func WriteOutput(w io.Writer, result *OutputResult, format OutputFormat, verbose bool) error {
	switch format {
	case FormatJSON:
		return writeJSON(w, result)
	case FormatText:
		return writeText(w, result, verbose)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}

// writeJSON outputs results as JSON
func writeJSON(w io.Writer, result *OutputResult) error {
	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(result)
}

// writeText outputs results as human-readable text
func writeText(w io.Writer, result *OutputResult, verbose bool) error {
	if len(result.Series) == 0 && len(result.Failures) == 0 {
		fmt.Fprintln(w, "No series found.")
		return nil
	}

	byRiver := make(map[string][]SeriesResult)
	for _, s := range result.Series {
		byRiver[s.River] = append(byRiver[s.River], s)
	}

	for _, river := range result.Rivers {
		entries := byRiver[river]
		if len(entries) == 0 {
			continue
		}

		fmt.Fprintf(w, "\n%s (%d years):\n", river, len(entries))
		for _, s := range entries {
			if s.Empty {
				fmt.Fprintf(w, "  %s: empty\n", s.Year)
				continue
			}
			fmt.Fprintf(w, "  %s: %d points -> %s\n", s.Year, s.Points, s.Path)
		}
	}

	if len(result.Failures) > 0 {
		fmt.Fprintln(w)
		for _, f := range result.Failures {
			fmt.Fprintf(w, "FAILED %s: %s\n", f.River, f.Error)
		}
	}

	fmt.Fprintf(w, "\nTotal: %d series written, %d empty, across %d rivers\n",
		result.Written(), len(result.Series)-result.Written(), len(result.Rivers))

	if verbose && result.Metrics != nil {
		names := make([]string, 0, len(result.Metrics.Counters))
		for name := range result.Metrics.Counters {
			names = append(names, name)
		}
		sort.Strings(names)

		fmt.Fprintln(w, "\nMetrics:")
		for _, name := range names {
			fmt.Fprintf(w, "  %s: %d\n", name, result.Metrics.Counters[name])
		}
	}

	return nil
}
