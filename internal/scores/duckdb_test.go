package scores

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openInMemory(t *testing.T) *Store {
	t.Helper()
	s, err := OpenStore("")
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func insertScore(t *testing.T, s *Store, chrom string, start, stop int64, score float64) {
	t.Helper()
	_, err := s.db.Exec("INSERT INTO scores VALUES (?, ?, ?, ?)", chrom, start, stop, score)
	require.NoError(t, err)
}

func TestMaxScoreEmpty(t *testing.T) {
	s := openInMemory(t)

	max, err := s.MaxScore("1", 1000, 2000)
	require.NoError(t, err)
	assert.Equal(t, float64(NoScore), max)
}

func TestMaxScoreTakesMaximum(t *testing.T) {
	s := openInMemory(t)
	insertScore(t, s, "1", 1000, 1000, 3.5)
	insertScore(t, s, "1", 1001, 1001, 17)
	insertScore(t, s, "1", 1002, 1002, 9)
	insertScore(t, s, "2", 1001, 1001, 99)

	max, err := s.MaxScore("1", 1000, 1002)
	require.NoError(t, err)
	assert.Equal(t, 17.0, max)

	// Single base
	max, err = s.MaxScore("1", 1000, 1000)
	require.NoError(t, err)
	assert.Equal(t, 3.5, max)

	// Other chromosome not visible
	max, err = s.MaxScore("1", 900, 999)
	require.NoError(t, err)
	assert.Equal(t, float64(NoScore), max)
}

func TestMaxScoreOverlap(t *testing.T) {
	s := openInMemory(t)
	insertScore(t, s, "7", 100, 200, 12)

	// Partial overlap on either side counts
	max, err := s.MaxScore("7", 150, 300)
	require.NoError(t, err)
	assert.Equal(t, 12.0, max)

	max, err = s.MaxScore("7", 50, 100)
	require.NoError(t, err)
	assert.Equal(t, 12.0, max)

	// Adjacent but not overlapping does not
	max, err = s.MaxScore("7", 201, 300)
	require.NoError(t, err)
	assert.Equal(t, float64(NoScore), max)
}

func TestZeroScoreDistinctFromSentinel(t *testing.T) {
	s := openInMemory(t)
	insertScore(t, s, "1", 500, 500, 0)

	max, err := s.MaxScore("1", 500, 500)
	require.NoError(t, err)
	assert.Equal(t, 0.0, max)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "scores.tsv")
	content := "1\t1000\t1000\t.\t1.5,3.25,2\n" +
		"1\t1001\t1001\t.\t0.5\n" +
		"2\t50\t60\t.\t7,8\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))

	s := openInMemory(t)
	require.NoError(t, s.Load(path))

	count, err := s.Count()
	require.NoError(t, err)
	assert.Equal(t, int64(6), count)
	assert.True(t, s.Loaded())

	// Comma-separated lists are exploded; max spans all values in a row
	max, err := s.MaxScore("1", 1000, 1000)
	require.NoError(t, err)
	assert.Equal(t, 3.25, max)

	max, err = s.MaxScore("2", 55, 55)
	require.NoError(t, err)
	assert.Equal(t, 8.0, max)
}

func TestLoadedEmpty(t *testing.T) {
	s := openInMemory(t)
	assert.False(t, s.Loaded())
}

func TestIsStore(t *testing.T) {
	assert.True(t, IsStore("scores.duckdb"))
	assert.True(t, IsStore("scores.db"))
	assert.False(t, IsStore("scores.tsv.gz"))
	assert.False(t, IsStore("scores.bed"))
}
