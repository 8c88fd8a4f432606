package storage

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pfrederiksen/salmon-run-stats/internal/salmon"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestWriteSeries(t *testing.T) {
	dir := t.TempDir()
	store, err := New(filepath.Join(dir, "X"))
	require.NoError(t, err)

	series := &salmon.Series{
		Year:   2021,
		Dates:  []time.Time{date(2021, time.January, 15)},
		Counts: []int{42},
	}

	path, err := store.WriteSeries("riverY", "2021", series)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "X", "riverY2021.txt"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "2021-01-15\n42\n", string(data))

	lines := strings.Split(strings.TrimSuffix(string(data), "\n"), "\n")
	assert.Len(t, lines, 2)
}

func TestWriteSeries_CreatesNestedDirectories(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "a", "b", "c")
	store, err := New(dir)
	require.NoError(t, err)

	_, err = os.Stat(dir)
	require.True(t, os.IsNotExist(err), "New() should not create the directory")

	series := salmon.NewSeries(2020)
	series.Add(date(2020, time.June, 1), 3)

	path, err := store.WriteSeries("ricklean", "2020", series)
	require.NoError(t, err)
	assert.FileExists(t, path)
}

func TestWriteSeries_Overwrites(t *testing.T) {
	store, err := New(t.TempDir())
	require.NoError(t, err)

	long := &salmon.Series{
		Year:   2019,
		Dates:  []time.Time{date(2019, time.June, 1), date(2019, time.June, 2), date(2019, time.June, 3)},
		Counts: []int{100, 200, 300},
	}
	short := &salmon.Series{
		Year:   2019,
		Dates:  []time.Time{date(2019, time.June, 1)},
		Counts: []int{7},
	}

	_, err = store.WriteSeries("angesan", "2019", long)
	require.NoError(t, err)
	path, err := store.WriteSeries("angesan", "2019", short)
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = store.WriteSeries("angesan", "2019", short)
	require.NoError(t, err)
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, "2019-06-01\n7\n", string(first))
	assert.Equal(t, first, second)
}

func TestWriteSeries_UnwritableDirectory(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "blocker")
	require.NoError(t, os.WriteFile(blocker, []byte("not a directory"), 0644))

	store, err := New(filepath.Join(blocker, "out"))
	require.NoError(t, err)

	series := salmon.NewSeries(2021)
	series.Add(date(2021, time.June, 1), 1)

	_, err = store.WriteSeries("ricklean", "2021", series)
	assert.ErrorContains(t, err, "creating output directory")
}

func TestNew_ExpandsHome(t *testing.T) {
	home, err := os.UserHomeDir()
	if err != nil {
		t.Skip("no home directory")
	}

	store, err := New("~/SwedishLaplandFishing")
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(home, "SwedishLaplandFishing"), store.Dir())
}

func TestEncode(t *testing.T) {
	series := &salmon.Series{
		Year:   2018,
		Dates:  []time.Time{date(2018, time.July, 4), date(2018, time.July, 2)},
		Counts: []int{0, 15},
	}
	assert.Equal(t, "2018-07-04,2018-07-02\n0,15\n", string(Encode(series)))
}

func TestDryRunSink(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "out")
	var out bytes.Buffer

	sink, err := NewDryRunSink(dir, &out)
	require.NoError(t, err)
	assert.Equal(t, dir, sink.Dir())

	series := salmon.NewSeries(2021)
	series.Add(date(2021, time.June, 1), 1)
	series.Add(date(2021, time.June, 2), 2)

	path, err := sink.WriteSeries("tornealven", "2021", series)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, "tornealven2021.txt"), path)
	assert.Contains(t, out.String(), "tornealven2021.txt (2 points)")
	assert.NoFileExists(t, path)
	assert.NoDirExists(t, dir)
}

func TestDryRunSink_ExpandsHomeLikeStorage(t *testing.T) {
	if _, err := os.UserHomeDir(); err != nil {
		t.Skip("no home directory")
	}

	store, err := New("~/salmon-out")
	require.NoError(t, err)
	sink, err := NewDryRunSink("~/salmon-out", &bytes.Buffer{})
	require.NoError(t, err)

	assert.Equal(t, store.Dir(), sink.Dir())

	series := salmon.NewSeries(2021)
	series.Add(date(2021, time.June, 1), 1)

	path, err := sink.WriteSeries("ricklean", "2021", series)
	require.NoError(t, err)
	assert.Equal(t, store.Path("ricklean", "2021"), path)
	assert.False(t, strings.HasPrefix(path, "~"), "path %q should be expanded", path)
}

func TestExpandDir(t *testing.T) {
	got, err := ExpandDir("relative/out")
	require.NoError(t, err)
	assert.Equal(t, "relative/out", got)

	got, err = ExpandDir("/abs/~/out")
	require.NoError(t, err)
	assert.Equal(t, "/abs/~/out", got)
}

func TestSinkImplementations(t *testing.T) {
	var _ Sink = (*Storage)(nil)
	var _ Sink = (*DryRunSink)(nil)
}
