package salmon

import (
	"strconv"
	"strings"
	"time"
)

// DateLayout is the ISO calendar date form used in output files.
const DateLayout = "2006-01-02"

// Series holds the fish counts for one river and year.
// Dates and Counts are index-aligned and kept in the order they appeared in the chart.
type Series struct {
	Year   int         `json:"year"`
	Dates  []time.Time `json:"dates"`
	Counts []int       `json:"counts"`
}

// NewSeries creates an empty Series for year
func NewSeries(year int) *Series {
	return &Series{
		Year:   year,
		Dates:  make([]time.Time, 0),
		Counts: make([]int, 0),
	}
}

// Add appends a single data point.
func (s *Series) Add(date time.Time, count int) {
	s.Dates = append(s.Dates, date)
	s.Counts = append(s.Counts, count)
}

// Len returns the number of data points
func (s *Series) Len() int {
	return len(s.Dates)
}

// Empty reports whether there is nothing worth writing, i.e. either dates or counts is empty.
func (s *Series) Empty() bool {
	return s == nil || len(s.Dates) == 0 || len(s.Counts) == 0
}

// FormatDates joins the dates as comma separated ISO dates.
func (s *Series) FormatDates() string {
	parts := make([]string, len(s.Dates))
	for i, d := range s.Dates {
		parts[i] = d.Format(DateLayout)
	}
	return strings.Join(parts, ",")
}

// FormatCounts joins the counts as comma separated decimals.
func (s *Series) FormatCounts() string {
	parts := make([]string, len(s.Counts))
	for i, c := range s.Counts {
		parts[i] = strconv.Itoa(c)
	}
	return strings.Join(parts, ",")
}

// Years maps year strings to series for a single river, remembering the order in
// which years were first seen.
type Years struct {
	order  []string
	series map[string]*Series
}

// NewYears creates an empty collection
func NewYears() *Years {
	return &Years{series: make(map[string]*Series)}
}

// Set stores s under year. An existing year keeps its position and gets the new value.
func (y *Years) Set(year string, s *Series) {
	if _, exists := y.series[year]; !exists {
		y.order = append(y.order, year)
	}
	y.series[year] = s
}

// Get returns the series for year, if any.
func (y *Years) Get(year string) (*Series, bool) {
	s, ok := y.series[year]
	return s, ok
}

// Keys returns the years in first-seen order.
func (y *Years) Keys() []string {
	return append([]string(nil), y.order...)
}

// Len returns the number of years
func (y *Years) Len() int {
	return len(y.order)
}

// Statistics is the result of one scrape: every processed river with its years.
type Statistics struct {
	order  []River
	rivers map[River]*Years
}

// NewStatistics creates an empty Statistics
func NewStatistics() *Statistics {
	return &Statistics{rivers: make(map[River]*Years)}
}

// Put records the years extracted for river, replacing any earlier entry.
func (st *Statistics) Put(river River, years *Years) {
	if _, exists := st.rivers[river]; !exists {
		st.order = append(st.order, river)
	}
	st.rivers[river] = years
}

// Years returns the collection stored for river.
func (st *Statistics) Years(river River) (*Years, bool) {
	y, ok := st.rivers[river]
	return y, ok
}

// Rivers returns the rivers in the order they were added.
func (st *Statistics) Rivers() []River {
	return append([]River(nil), st.order...)
}
