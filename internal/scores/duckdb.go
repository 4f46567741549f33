package scores

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	_ "github.com/marcboeker/go-duckdb"
)

// Store provides interval score lookups backed by DuckDB. The per-base
// score file is bulk-loaded once with "svscore load"; MaxScore then runs
// one query per call with the same semantics as the external tool path
// (maximum over all values in the interval, NoScore when empty).
type Store struct {
	db    *sql.DB
	maxPS *sql.Stmt // prepared statement for MaxScore, lazily initialized
}

// OpenStore opens or creates a DuckDB score database at the given path.
// Use an empty string for an in-memory database.
func OpenStore(path string) (*Store, error) {
	if path != "" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create directory: %w", err)
		}
	}

	db, err := sql.Open("duckdb", path)
	if err != nil {
		return nil, fmt.Errorf("open duckdb: %w", err)
	}

	s := &Store{db: db}
	if err := s.ensureSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ensure schema: %w", err)
	}

	return s, nil
}

func (s *Store) ensureSchema() error {
	if _, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS scores (
		chrom VARCHAR,
		start BIGINT,
		stop BIGINT,
		score DOUBLE
	)`); err != nil {
		return err
	}
	// Index for fast interval overlap queries
	s.db.Exec(`CREATE INDEX IF NOT EXISTS idx_scores_region ON scores (chrom, start, stop)`)
	return nil
}

// Load bulk-loads a tabix-style per-base score file using DuckDB's
// read_csv. The file is tab-delimited with columns
// (chrom, start, stop, name, scores) where the scores column is a
// comma-separated list of numeric values; the list is exploded into one
// row per value. Gzipped input is handled by read_csv directly.
func (s *Store) Load(tsvPath string) error {
	// Clear any existing data first (idempotent reload)
	s.db.Exec(`DELETE FROM scores`)

	query := fmt.Sprintf(`INSERT INTO scores
		SELECT column0, column1, column2,
			CAST(unnest(string_split(column4, ',')) AS DOUBLE)
		FROM read_csv('%s', delim='\t', header=false,
			columns={
				'column0': 'VARCHAR',
				'column1': 'BIGINT',
				'column2': 'BIGINT',
				'column3': 'VARCHAR',
				'column4': 'VARCHAR'
			})`, tsvPath)

	if _, err := s.db.Exec(query); err != nil {
		return fmt.Errorf("loading score data: %w", err)
	}
	return nil
}

// MaxScore returns the maximum score over all rows overlapping the
// 1-based inclusive interval, or NoScore when none overlap.
func (s *Store) MaxScore(chrom string, start, stop int64) (float64, error) {
	if s.maxPS == nil {
		ps, err := s.db.Prepare(
			"SELECT max(score) FROM scores WHERE chrom = ? AND start <= ? AND stop >= ?",
		)
		if err != nil {
			return 0, fmt.Errorf("prepare score query: %w", err)
		}
		s.maxPS = ps
	}

	var max sql.NullFloat64
	if err := s.maxPS.QueryRow(chrom, stop, start).Scan(&max); err != nil {
		return 0, fmt.Errorf("score query %s:%d-%d: %w", chrom, start, stop, err)
	}
	if !max.Valid {
		return NoScore, nil
	}
	return max.Float64, nil
}

// Count returns the number of score rows in the store.
func (s *Store) Count() (int64, error) {
	var count int64
	err := s.db.QueryRow("SELECT COUNT(*) FROM scores").Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count score rows: %w", err)
	}
	return count, nil
}

// Loaded returns true if the score table has data.
func (s *Store) Loaded() bool {
	count, err := s.Count()
	return err == nil && count > 0
}

// Close closes the database connection.
func (s *Store) Close() error {
	if s.maxPS != nil {
		s.maxPS.Close()
	}
	return s.db.Close()
}

// IsStore checks if a path refers to a DuckDB score database.
func IsStore(path string) bool {
	return strings.HasSuffix(path, ".duckdb") || strings.HasSuffix(path, ".db")
}
