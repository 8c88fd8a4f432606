// Package scraper fetches river pages from Swedish Lapland Fishing and extracts the
// salmon run series embedded in their Highcharts configuration.
//
// Each river page carries one <script> block that builds a Highcharts.Chart. The
// extractor strips the whitespace out of that script and pulls the per-year series
// apart with regular expressions: one "name:'<year>'" and one "data:[...]" array of
// [Date.UTC(y,m,d),count] points per year. The month inside Date.UTC is zero-based.
package scraper
