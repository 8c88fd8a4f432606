package scraper

import (
	"errors"
	"fmt"
	"io"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/pfrederiksen/salmon-run-stats/internal/logger"
	"github.com/pfrederiksen/salmon-run-stats/internal/salmon"
)

var (
	// ErrChartNotFound means no <script> on the page builds a Highcharts.Chart.
	ErrChartNotFound = errors.New("chart script not found")
	// ErrSeriesNotFound means the chart script has no series:[...] list.
	ErrSeriesNotFound = errors.New("series list not found in chart script")
)

// The patterns run against whitespace-free script text. The (.*) captures are greedy
// and reach the last closing bracket because the arrays nest.
var (
	chartMarker   = regexp.MustCompile(`Highcharts.Chart`)
	seriesPattern = regexp.MustCompile(`series:\[(.*)\]`)
	namePattern   = regexp.MustCompile(`name:'([0-9]+)',`)
	dataPattern   = regexp.MustCompile(`data:\[(.*)\]`)
	pointPattern  = regexp.MustCompile(`Date.UTC\(([0-9]+),([0-9]+),([0-9]+)\),([0-9]+)`)

	whitespace = strings.NewReplacer("\n", "", "\r", "", "\t", "", " ", "")
)

// ParseChart reads an HTML document and extracts the year series of its chart.
func ParseChart(r io.Reader) (*salmon.Years, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parsing HTML: %w", err)
	}

	script, err := FindChartScript(doc)
	if err != nil {
		return nil, err
	}

	return ExtractSeries(script)
}

// FindChartScript returns the text of the first <script> that mentions Highcharts.Chart.
func FindChartScript(doc *goquery.Document) (string, error) {
	script := doc.Find("script").FilterFunction(func(i int, sel *goquery.Selection) bool {
		return chartMarker.MatchString(sel.Text())
	}).First()

	if script.Length() == 0 {
		return "", ErrChartNotFound
	}
	return script.Text(), nil
}

// ExtractSeries decomposes a chart script into year series.
// Fragments without a name:'<year>' entry are skipped. A year whose data array is
// missing, or whose points are all invalid, still yields an empty series.
func ExtractSeries(script string) (*salmon.Years, error) {
	dense := whitespace.Replace(script)

	match := seriesPattern.FindStringSubmatch(dense)
	if match == nil {
		return nil, ErrSeriesNotFound
	}

	years := salmon.NewYears()
	for _, fragment := range strings.Split(strings.ReplaceAll(match[1], "{", ""), "},") {
		year := parseYear(fragment)
		if year == "" {
			continue
		}
		years.Set(year, parseData(fragment, year))
	}

	return years, nil
}

// parseYear returns the digits of name:'<digits>', or "" when the fragment has none.
func parseYear(fragment string) string {
	if m := namePattern.FindStringSubmatch(fragment); m != nil {
		return m[1]
	}
	return ""
}

// parseData collects the valid points of a fragment's data array.
// Dates take their year from the series name, not from Date.UTC.
func parseData(fragment, year string) *salmon.Series {
	y, yearErr := strconv.Atoi(year)
	series := salmon.NewSeries(y)

	match := dataPattern.FindStringSubmatch(fragment)
	if match == nil {
		return series
	}

	for _, element := range strings.Split(strings.ReplaceAll(match[1], "[", ""), "],") {
		m := pointPattern.FindStringSubmatch(element)
		if m == nil {
			continue
		}

		if yearErr != nil {
			dropPoint(year, element, "year out of range")
			continue
		}

		month, err1 := strconv.Atoi(m[2])
		day, err2 := strconv.Atoi(m[3])
		count, err3 := strconv.Atoi(m[4])
		if err := errors.Join(err1, err2, err3); err != nil {
			dropPoint(year, element, err.Error())
			continue
		}

		// Date.UTC months are zero-based
		date, ok := salmon.CalendarDate(y, month+1, day)
		if !ok {
			dropPoint(year, element, fmt.Sprintf("invalid date %s-%d-%d", year, month+1, day))
			continue
		}

		series.Add(date, count)
	}

	return series
}

func dropPoint(year, element, reason string) {
	logger.IncrCounter("points.dropped")
	logger.Warn("Dropping invalid data point", logger.Fields{
		"year":   year,
		"point":  element,
		"reason": reason,
	})
}
