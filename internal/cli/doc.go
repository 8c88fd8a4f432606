// Package cli implements the command-line interface for salmon-run-stats.
//
// The cli package provides the Cobra-based root command. It walks the monitored rivers
// one at a time, fetching each river page, extracting its year series and handing the
// non-empty ones to a storage sink. Empty series produce a WARNING line on stdout.
// A text or JSON run summary can be printed at the end.
package cli
