package store

import (
	"database/sql"
	"fmt"
	"math"
	"math/rand/v2"
	"strings"

	"github.com/lonnen/anagramist/internal/fragment"
	"github.com/lonnen/anagramist/internal/multiset"

	_ "modernc.org/sqlite"
)

const schema = `
CREATE TABLE IF NOT EXISTS visited (
	placed TEXT NOT NULL,
	remaining TEXT NOT NULL,
	parent TEXT NOT NULL,
	score REAL,
	cumulative_score REAL,
	mean_score REAL,
	status INTEGER,

	PRIMARY KEY(placed)
);
`

// SQLite is the durable Store implementation, backed by a pure-Go SQLite
// engine so the module needs no cgo toolchain. It enforces the
// single-process, caller-serialized access model spec §5 requires by
// capping the connection pool at one connection: SQLite itself would
// happily serialize concurrent statements from multiple goroutines, but
// that would silently mask the "thread-hostile" contract this Store is
// documented to have.
type SQLite struct {
	db  *sql.DB
	rng *rand.Rand
}

// OpenSQLite opens (creating if necessary) a SQLite-backed Store at path,
// with Sample drawing from an unseeded (run-to-run random) source until
// SetSeed pins it.
func OpenSQLite(path string) (*SQLite, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("store: opening %s: %w", path, err)
	}
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("store: creating schema: %w", err)
	}

	return &SQLite{db: db, rng: rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))}, nil
}

// SetSeed pins Sample's draws to a deterministic sequence, for the CLI's
// --seed flag.
func (s *SQLite) SetSeed(seed uint64) {
	s.rng = rand.New(rand.NewPCG(seed, seed))
}

func scanRow(scan func(dest ...any) error) (Row, error) {
	var row Row
	var status int64
	if err := scan(&row.Placed, &row.Remaining, &row.Parent, &row.Score, &row.CumulativeScore, &row.MeanScore, &status); err != nil {
		return Row{}, err
	}
	row.Status = Status(status)
	return row, nil
}

func (s *SQLite) Get(placed string) (Row, bool, error) {
	r := s.db.QueryRow(`SELECT placed, remaining, parent, score, cumulative_score, mean_score, status FROM visited WHERE placed = ?`, placed)
	row, err := scanRow(r.Scan)
	if err == sql.ErrNoRows {
		return Row{}, false, nil
	}
	if err != nil {
		return Row{}, false, fmt.Errorf("store: get %q: %w", placed, err)
	}
	return row, true, nil
}

func (s *SQLite) queryRows(query string, args ...any) ([]Row, error) {
	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("store: query: %w", err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		row, err := scanRow(rows.Scan)
		if err != nil {
			return nil, fmt.Errorf("store: scan: %w", err)
		}
		out = append(out, row)
	}
	return out, rows.Err()
}

func (s *SQLite) GetChildren(placed string) ([]Row, error) {
	return s.queryRows(`SELECT placed, remaining, parent, score, cumulative_score, mean_score, status FROM visited WHERE parent = ?`, placed)
}

func (s *SQLite) GetDescendants(placed string) ([]Row, error) {
	if placed == "" {
		return s.queryRows(`SELECT placed, remaining, parent, score, cumulative_score, mean_score, status FROM visited WHERE placed <> ''`)
	}
	return s.queryRows(`SELECT placed, remaining, parent, score, cumulative_score, mean_score, status FROM visited WHERE placed LIKE ? ESCAPE '\'`, escapeLike(placed+" ")+"%")
}

// escapeLike escapes SQL LIKE metacharacters so a placed value can be used
// literally as a prefix match.
func escapeLike(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`)
	return r.Replace(s)
}

func (s *SQLite) Push(row Row) error {
	existing, ok, err := s.Get(row.Placed)
	if err != nil {
		return err
	}
	if ok {
		if existing.Parent != row.Parent {
			return ErrParentMismatch
		}
		if existing.Remaining != row.Remaining {
			return ErrRemainingMismatch
		}
	}

	_, err = s.db.Exec(`
		INSERT INTO visited (placed, remaining, parent, score, cumulative_score, mean_score, status)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(placed) DO UPDATE SET
			score = excluded.score,
			cumulative_score = excluded.cumulative_score,
			mean_score = excluded.mean_score,
			status = excluded.status
	`, row.Placed, row.Remaining, row.Parent, row.Score, row.CumulativeScore, row.MeanScore, int64(row.Status))
	if err != nil {
		return fmt.Errorf("store: push %q: %w", row.Placed, err)
	}
	return nil
}

// Sample implements the reservoir-with-exponential-tilt scheme from the
// design notes: each eligible row draws a key -ln(U)/weight (U uniform in
// (0,1), weight = exp(mean_score)), and the row with the smallest key wins
// — the standard single-pass algorithm for weighted sampling without
// materializing or normalizing the full weight vector, since SQLite hands
// rows back as a stream rather than a pre-sized slice.
func (s *SQLite) Sample(prefix string) (Row, bool, error) {
	var query string
	var args []any
	if prefix == "" {
		query = `SELECT placed, remaining, parent, score, cumulative_score, mean_score, status FROM visited WHERE status = 0`
	} else {
		query = `SELECT placed, remaining, parent, score, cumulative_score, mean_score, status FROM visited WHERE status = 0 AND (placed = ? OR placed LIKE ? ESCAPE '\')`
		args = []any{prefix, escapeLike(prefix+" ") + "%"}
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return Row{}, false, fmt.Errorf("store: sample: %w", err)
	}
	defer rows.Close()

	var best Row
	bestKey := math.Inf(1)
	found := false
	for rows.Next() {
		row, err := scanRow(rows.Scan)
		if err != nil {
			return Row{}, false, fmt.Errorf("store: sample scan: %w", err)
		}
		weight := math.Exp(row.MeanScore)
		if weight <= 0 || math.IsNaN(weight) {
			weight = 1e-300
		}
		key := -math.Log(s.rng.Float64()) / weight
		if key < bestKey {
			bestKey = key
			best = row
			found = true
		}
	}
	if err := rows.Err(); err != nil {
		return Row{}, false, err
	}
	return best, found, nil
}

func (s *SQLite) SetStatus(placed string, newStatus Status) (StatusEffect, error) {
	existing, ok, err := s.Get(placed)
	if err != nil {
		return NoSuchRow, err
	}
	if !ok {
		return NoSuchRow, nil
	}
	if existing.Status == newStatus {
		return AlreadySet, nil
	}
	if _, err := s.db.Exec(`UPDATE visited SET status = ? WHERE placed = ?`, int64(newStatus), placed); err != nil {
		return NoSuchRow, fmt.Errorf("store: set status %q: %w", placed, err)
	}
	return Updated, nil
}

func (s *SQLite) Trim(placed string) (int, error) {
	var res sql.Result
	var err error
	if placed == "" {
		res, err = s.db.Exec(`DELETE FROM visited WHERE placed <> ''`)
	} else {
		res, err = s.db.Exec(`DELETE FROM visited WHERE placed LIKE ? ESCAPE '\'`, escapeLike(placed+" ")+"%")
	}
	if err != nil {
		return 0, fmt.Errorf("store: trim %q: %w", placed, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, err
	}
	return int(n), nil
}

func (s *SQLite) Verify() (bool, map[string]int, error) {
	rows, err := s.db.Query(`SELECT placed, remaining FROM visited`)
	if err != nil {
		return false, nil, fmt.Errorf("store: verify: %w", err)
	}
	defer rows.Close()

	histogram := make(map[string]int)
	for rows.Next() {
		var placed, remaining string
		if err := rows.Scan(&placed, &remaining); err != nil {
			return false, nil, fmt.Errorf("store: verify scan: %w", err)
		}
		combined := fragment.New(placed).Letters.Add(multiset.Of(remaining))
		histogram[combined.Elements()]++
	}
	if err := rows.Err(); err != nil {
		return false, nil, err
	}
	return len(histogram) <= 1, histogram, nil
}

func (s *SQLite) Len() (int, error) {
	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM visited`).Scan(&n); err != nil {
		return 0, fmt.Errorf("store: len: %w", err)
	}
	return n, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

var _ Store = (*SQLite)(nil)
