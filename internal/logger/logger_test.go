package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"
	"time"
)

func TestLogger_Log(t *testing.T) {
	tests := []struct {
		name    string
		level   Level
		message string
		fields  Fields
		err     error
		want    bool // should log
	}{
		{
			name:    "warn message",
			level:   LevelWarn,
			message: "Dropping invalid data point",
			fields:  Fields{"river": "ricklean"},
			want:    true,
		},
		{
			name:    "info below threshold",
			level:   LevelInfo,
			message: "Wrote series",
			want:    false,
		},
		{
			name:    "debug below threshold",
			level:   LevelDebug,
			message: "Fetching river",
			want:    false,
		},
		{
			name:    "error with err",
			level:   LevelError,
			message: "River failed",
			err:     errors.New("chart not found"),
			want:    true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			l := New(LevelWarn, &buf)

			l.log(tt.level, tt.message, tt.fields, tt.err)

			if logged := buf.Len() > 0; logged != tt.want {
				t.Errorf("log() logged = %v, want %v", logged, tt.want)
			}
		})
	}
}

func TestLogger_EntryShape(t *testing.T) {
	var buf bytes.Buffer
	l := New(LevelDebug, &buf)
	l.now = func() time.Time { return time.Date(2026, 6, 1, 12, 0, 0, 0, time.UTC) }

	l.Error("River failed", Fields{"river": "angesan", "year": "2021"}, errors.New("boom"))

	line := strings.TrimSpace(buf.String())
	if strings.Count(line, "\n") != 0 {
		t.Fatalf("expected a single line, got %q", buf.String())
	}

	var entry LogEntry
	if err := json.Unmarshal([]byte(line), &entry); err != nil {
		t.Fatalf("Unmarshal() error = %v", err)
	}

	if entry.Timestamp != "2026-06-01T12:00:00Z" {
		t.Errorf("Timestamp = %q", entry.Timestamp)
	}
	if entry.Level != "ERROR" {
		t.Errorf("Level = %q, want ERROR", entry.Level)
	}
	if entry.Error != "boom" {
		t.Errorf("Error = %q, want boom", entry.Error)
	}
	if entry.Fields["river"] != "angesan" {
		t.Errorf("Fields[river] = %v, want angesan", entry.Fields["river"])
	}
}

func TestLogger_OmitsEmptyFields(t *testing.T) {
	var buf bytes.Buffer
	New(LevelDebug, &buf).Info("done", nil)

	if strings.Contains(buf.String(), `"fields"`) || strings.Contains(buf.String(), `"error"`) {
		t.Errorf("expected empty fields and error to be omitted, got %s", buf.String())
	}
}

func TestParseLevel(t *testing.T) {
	tests := []struct {
		input   string
		want    Level
		wantErr bool
	}{
		{"debug", LevelDebug, false},
		{"INFO", LevelInfo, false},
		{" Warn ", LevelWarn, false},
		{"error", LevelError, false},
		{"trace", "", true},
		{"", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseLevel(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseLevel(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseLevel(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLogger_Enabled(t *testing.T) {
	l := New(LevelInfo, &bytes.Buffer{})

	if l.Enabled(LevelDebug) {
		t.Error("DEBUG should be disabled at INFO")
	}
	if !l.Enabled(LevelInfo) || !l.Enabled(LevelWarn) || !l.Enabled(LevelError) {
		t.Error("INFO and above should be enabled at INFO")
	}
}

func TestMetrics_Counter(t *testing.T) {
	m := NewMetrics()

	m.IncrCounter("series.written")
	m.IncrCounter("series.written")
	m.AddCounter("series.written", 3)

	if got := m.Counter("series.written"); got != 5 {
		t.Errorf("Counter() = %v, want 5", got)
	}

	snapshot := m.GetSnapshot()
	if snapshot.Counters["series.written"] != 5 {
		t.Errorf("snapshot counter = %v, want 5", snapshot.Counters["series.written"])
	}
}

func TestMetrics_Timing(t *testing.T) {
	m := NewMetrics()

	m.RecordTiming("fetch.ricklean", 100*time.Millisecond)
	m.RecordTiming("fetch.ricklean", 200*time.Millisecond)
	m.RecordTiming("fetch.ricklean", 150*time.Millisecond)

	stats := m.GetSnapshot().Timings["fetch.ricklean"]
	if stats.Count != 3 {
		t.Errorf("Timing count = %v, want 3", stats.Count)
	}
	if stats.Min != "100ms" {
		t.Errorf("Min timing = %v, want 100ms", stats.Min)
	}
	if stats.Max != "200ms" {
		t.Errorf("Max timing = %v, want 200ms", stats.Max)
	}
	if stats.Average != "150ms" {
		t.Errorf("Average timing = %v, want 150ms", stats.Average)
	}
}

func TestMetrics_SnapshotIsCopy(t *testing.T) {
	m := NewMetrics()
	m.IncrCounter("rivers.fetched")

	snapshot := m.GetSnapshot()
	snapshot.Counters["rivers.fetched"] = 99

	if m.Counter("rivers.fetched") != 1 {
		t.Error("mutating a snapshot should not affect the tracker")
	}
}

func TestMetrics_Reset(t *testing.T) {
	m := NewMetrics()
	m.IncrCounter("points.dropped")
	m.RecordTiming("fetch.angesan", time.Second)

	m.Reset()

	snapshot := m.GetSnapshot()
	if len(snapshot.Counters) != 0 || len(snapshot.Timings) != 0 {
		t.Errorf("Reset() left %v", snapshot)
	}
}

func TestPackageLevelFunctions(t *testing.T) {
	var buf bytes.Buffer
	previous := Default()
	SetDefault(New(LevelDebug, &buf))
	defer SetDefault(previous)

	Debug("test debug", nil)
	Info("test info", Fields{"key": "value"})
	Warn("test warning", nil)
	Error("test error", Fields{"component": "test"}, errors.New("test"))

	if got := strings.Count(buf.String(), "\n"); got != 4 {
		t.Errorf("expected 4 log lines, got %d", got)
	}
}
