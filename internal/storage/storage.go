package storage

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pfrederiksen/salmon-run-stats/internal/salmon"
)

// Storage writes series files below an output directory
type Storage struct {
	dir string
}

// New creates a Storage rooted at dir (see ExpandDir).
// The directory itself is created lazily by WriteSeries.
func New(dir string) (*Storage, error) {
	dir, err := ExpandDir(dir)
	if err != nil {
		return nil, err
	}

	return &Storage{
		dir: dir,
	}, nil
}

// ExpandDir expands a leading "~/" to the home directory.
func ExpandDir(dir string) (string, error) {
	if !strings.HasPrefix(dir, "~/") {
		return dir, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("getting home directory: %w", err)
	}
	return filepath.Join(home, dir[2:]), nil
}

// Dir returns the output directory
func (s *Storage) Dir() string {
	return s.dir
}

// Path returns the file path used for river and year
func (s *Storage) Path(river salmon.River, year string) string {
	return SeriesPath(s.dir, river, year)
}

// SeriesPath joins dir with the <river><year>.txt file name.
func SeriesPath(dir string, river salmon.River, year string) string {
	return filepath.Join(dir, string(river)+year+".txt")
}

// WriteSeries writes series to its file, creating missing directories and
// replacing any previous content. It returns the path written.
func (s *Storage) WriteSeries(river salmon.River, year string, series *salmon.Series) (string, error) {
	path := s.Path(river, year)

	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return "", fmt.Errorf("creating output directory: %w", err)
	}

	if err := os.WriteFile(path, Encode(series), 0644); err != nil {
		return "", fmt.Errorf("writing series: %w", err)
	}

	return path, nil
}

// Encode renders series as its two-line file content.
func Encode(series *salmon.Series) []byte {
	var b strings.Builder
	b.WriteString(series.FormatDates())
	b.WriteString("\n")
	b.WriteString(series.FormatCounts())
	b.WriteString("\n")
	return []byte(b.String())
}
