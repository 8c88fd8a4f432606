package cli

import (
	"sort"

	"github.com/pfrederiksen/salmon-run-stats/internal/salmon"
)

// sortSeries orders results by river processing order, then by year
func sortSeries(series []SeriesResult) {
	sort.SliceStable(series, func(i, j int) bool {
		ri := salmon.River(series[i].River).Index()
		rj := salmon.River(series[j].River).Index()
		if ri != rj {
			return ri < rj
		}
		return compareYears(series[i].Year, series[j].Year)
	})
}

// compareYears compares digit strings numerically without parsing them,
// so leading zeros and very long years still order correctly
func compareYears(a, b string) bool {
	a = trimLeadingZeros(a)
	b = trimLeadingZeros(b)
	if len(a) != len(b) {
		return len(a) < len(b)
	}
	return a < b
}

func trimLeadingZeros(s string) string {
	for len(s) > 1 && s[0] == '0' {
		s = s[1:]
	}
	return s
}
