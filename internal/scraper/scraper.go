package scraper

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/pfrederiksen/salmon-run-stats/internal/logger"
	"github.com/pfrederiksen/salmon-run-stats/internal/salmon"
	"golang.org/x/net/html/charset"
)

const (
	BaseURL   = "http://www.swedishlaplandfishing.com/sv/fishing/om-fisket/laxvandringen/"
	UserAgent = "salmon-run-stats/1.0 (github.com/pfrederiksen/salmon-run-stats)"
	Timeout   = 30 * time.Second
)

// Scraper fetches river pages and extracts their series
type Scraper struct {
	client  *http.Client
	baseURL string
}

// Option configures a Scraper
type Option func(*Scraper)

// WithBaseURL overrides BaseURL. A trailing slash is added when missing.
func WithBaseURL(baseURL string) Option {
	return func(s *Scraper) {
		if !strings.HasSuffix(baseURL, "/") {
			baseURL += "/"
		}
		s.baseURL = baseURL
	}
}

// WithTimeout sets the HTTP client timeout. Zero disables it.
func WithTimeout(timeout time.Duration) Option {
	return func(s *Scraper) {
		s.client.Timeout = timeout
	}
}

// WithHTTPClient replaces the HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(s *Scraper) {
		s.client = client
	}
}

// New creates a new Scraper instance
func New(opts ...Option) *Scraper {
	s := &Scraper{
		client: &http.Client{
			Timeout: Timeout,
		},
		baseURL: BaseURL,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// URL returns the page address for river.
func (s *Scraper) URL(river salmon.River) string {
	return s.baseURL + string(river)
}

// FetchRiver downloads the page for river and extracts every year series from it.
// Transport errors, non-200 responses and pages without a chart are returned as errors.
func (s *Scraper) FetchRiver(ctx context.Context, river salmon.River) (*salmon.Years, error) {
	url := s.URL(river)
	start := time.Now()

	logger.Debug("Fetching river page", logger.Fields{"river": string(river), "url": url})

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", UserAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("unexpected status code: %d", resp.StatusCode)
	}

	body, err := charset.NewReader(resp.Body, resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("decoding page: %w", err)
	}

	years, err := ParseChart(body)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", river, err)
	}

	elapsed := time.Since(start)
	logger.RecordTiming("fetch."+string(river), elapsed)
	logger.IncrCounter("rivers.fetched")
	logger.AddCounter("series.extracted", int64(years.Len()))
	logger.Debug("Extracted river series", logger.Fields{
		"river":   string(river),
		"years":   years.Keys(),
		"elapsed": elapsed.String(),
	})

	return years, nil
}
