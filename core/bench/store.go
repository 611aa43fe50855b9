package bench

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/weiweivv2222/pykeen/core/eval"
)

// Store persists benchmark records to SQLite, keyed by run id so different
// runs of the same configuration stay comparable.
type Store struct {
	db   *sql.DB
	path string
}

const createRecordsTable = `
CREATE TABLE IF NOT EXISTS benchmark_records (
	run_id     TEXT NOT NULL,
	dataset    TEXT NOT NULL,
	entities   INTEGER NOT NULL,
	relations  INTEGER NOT NULL,
	triples    INTEGER NOT NULL,
	trial      INTEGER NOT NULL,
	model      TEXT NOT NULL,
	normalize  INTEGER NOT NULL,
	threshold  REAL NOT NULL,
	time       REAL NOT NULL,
	metric     TEXT NOT NULL,
	value      REAL NOT NULL,
	PRIMARY KEY (run_id, dataset, trial, model, normalize, threshold, metric)
);
CREATE INDEX IF NOT EXISTS idx_records_run ON benchmark_records(run_id);
`

// OpenStore opens (creating if needed) the results database at path.
func OpenStore(path string) (*Store, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, fmt.Errorf("create results directory: %w", err)
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open results database: %w", err)
	}
	if _, err := db.Exec(createRecordsTable); err != nil {
		db.Close()
		return nil, fmt.Errorf("create results schema: %w", err)
	}
	return &Store{db: db, path: path}, nil
}

// SaveRun writes every record of a run in one transaction. Metrics are
// stored long-form, one row per metric value.
func (s *Store) SaveRun(runID string, records []Record, ks []int) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("begin save: %w", err)
	}
	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO benchmark_records
		(run_id, dataset, entities, relations, triples, trial, model, normalize, threshold, time, metric, value)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		tx.Rollback()
		return fmt.Errorf("prepare save: %w", err)
	}
	defer stmt.Close()

	for _, r := range records {
		for _, name := range eval.MetricNames(ks) {
			if _, err := stmt.Exec(
				runID, r.Dataset, r.Entities, r.Relations, r.Triples,
				r.Trial, r.Model, r.Normalize, r.Threshold, r.Seconds,
				name, r.Metrics[name],
			); err != nil {
				tx.Rollback()
				return fmt.Errorf("save record %s/%s trial %d: %w", r.Dataset, r.Model, r.Trial, err)
			}
		}
	}
	return tx.Commit()
}

// LoadRun reads back all metric values for one run, grouped into records.
func (s *Store) LoadRun(runID string) ([]Record, error) {
	rows, err := s.db.Query(`
		SELECT dataset, entities, relations, triples, trial, model, normalize, threshold, time, metric, value
		FROM benchmark_records WHERE run_id = ?
		ORDER BY dataset, model, normalize, threshold, trial, metric
	`, runID)
	if err != nil {
		return nil, fmt.Errorf("load run %s: %w", runID, err)
	}
	defer rows.Close()

	// The key carries the full configuration: the same model can appear
	// under several normalize/threshold settings within one run.
	type recordKey struct {
		dataset   string
		model     string
		normalize bool
		threshold float64
		trial     int
	}
	byKey := make(map[recordKey]*Record)
	var order []recordKey
	for rows.Next() {
		var r Record
		var metric string
		var value float64
		if err := rows.Scan(
			&r.Dataset, &r.Entities, &r.Relations, &r.Triples, &r.Trial,
			&r.Model, &r.Normalize, &r.Threshold, &r.Seconds, &metric, &value,
		); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		key := recordKey{r.Dataset, r.Model, r.Normalize, r.Threshold, r.Trial}
		rec, ok := byKey[key]
		if !ok {
			r.Metrics = make(map[string]float64)
			byKey[key] = &r
			order = append(order, key)
			rec = &r
		}
		rec.Metrics[metric] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	out := make([]Record, 0, len(order))
	for _, key := range order {
		out = append(out, *byKey[key])
	}
	return out, nil
}

// Close closes the underlying database.
func (s *Store) Close() error { return s.db.Close() }
