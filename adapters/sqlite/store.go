package sqlite

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/FrenchMajesty/classresult"
	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	// Pure Go SQLite driver (no CGO).
	_ "modernc.org/sqlite"
)

var schema = []string{`
CREATE TABLE IF NOT EXISTS results (
	id                  TEXT PRIMARY KEY,
	seq                 INTEGER NOT NULL,
	true_label          INTEGER NOT NULL,
	predicted_label     INTEGER NOT NULL,
	raw_predicted_label INTEGER NOT NULL,
	maximum_likelihood  TEXT NOT NULL,
	class_likelihoods   TEXT NOT NULL,
	class_distances     TEXT NOT NULL
)`,
	`CREATE INDEX IF NOT EXISTS idx_results_seq ON results(seq)`,
}

var _ classresult.ResultStore = (*Store)(nil)

// Store implements ResultStore on a SQLite database
type Store struct {
	db *sqlx.DB
}

// row is the table layout of a stored result
type row struct {
	ID                string  `db:"id"`
	Seq               int     `db:"seq"`
	TrueLabel         uint    `db:"true_label"`
	PredictedLabel    uint    `db:"predicted_label"`
	RawPredictedLabel uint    `db:"raw_predicted_label"`
	MaximumLikelihood string  `db:"maximum_likelihood"`
	ClassLikelihoods  string  `db:"class_likelihoods"`
	ClassDistances    string  `db:"class_distances"`
}

// Open connects to the SQLite database at dsn and creates the results table if needed
func Open(ctx context.Context, dsn string) (*Store, error) {
	db, err := sqlx.ConnectContext(ctx, "sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	// One connection keeps in-memory databases shared and serialises writers.
	db.SetMaxOpenConns(1)

	for _, stmt := range schema {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			db.Close()
			return nil, fmt.Errorf("create schema: %w", err)
		}
	}

	return &Store{db: db}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// Load returns every stored result in the order it was saved
func (s *Store) Load(ctx context.Context) ([]classresult.Result, error) {
	var rows []row
	if err := s.db.SelectContext(ctx, &rows, `SELECT * FROM results ORDER BY seq`); err != nil {
		return nil, fmt.Errorf("query results: %w", err)
	}

	results := make([]classresult.Result, 0, len(rows))
	for _, r := range rows {
		result, err := r.toResult()
		if err != nil {
			return nil, fmt.Errorf("decode result %s: %w", r.ID, err)
		}
		results = append(results, result)
	}
	return results, nil
}

// Save replaces the stored results with results in a single transaction
func (s *Store) Save(ctx context.Context, results []classresult.Result) error {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM results`); err != nil {
		return fmt.Errorf("clear results: %w", err)
	}

	for i, result := range results {
		r, err := fromResult(i, result)
		if err != nil {
			return fmt.Errorf("encode result %d: %w", i, err)
		}
		_, err = tx.NamedExecContext(ctx, `
			INSERT INTO results (id, seq, true_label, predicted_label, raw_predicted_label,
				maximum_likelihood, class_likelihoods, class_distances)
			VALUES (:id, :seq, :true_label, :predicted_label, :raw_predicted_label,
				:maximum_likelihood, :class_likelihoods, :class_distances)`, r)
		if err != nil {
			return fmt.Errorf("insert result %d: %w", i, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// Count returns the number of stored results
func (s *Store) Count(ctx context.Context) (int, error) {
	var n int
	if err := s.db.GetContext(ctx, &n, `SELECT COUNT(*) FROM results`); err != nil {
		return 0, fmt.Errorf("count results: %w", err)
	}
	return n, nil
}

func fromResult(seq int, result classresult.Result) (row, error) {
	likelihoods, err := encodeVector(result.ClassLikelihoods())
	if err != nil {
		return row{}, err
	}
	distances, err := encodeVector(result.ClassDistances())
	if err != nil {
		return row{}, err
	}

	return row{
		ID:                uuid.New().String(),
		Seq:               seq,
		TrueLabel:         result.TrueLabel(),
		PredictedLabel:    result.PredictedLabel(),
		RawPredictedLabel: result.RawPredictedLabel(),
		MaximumLikelihood: classresult.FormatFloat(result.MaximumLikelihood()),
		ClassLikelihoods:  likelihoods,
		ClassDistances:    distances,
	}, nil
}

func (r row) toResult() (classresult.Result, error) {
	maximum, err := classresult.ParseFloat(r.MaximumLikelihood)
	if err != nil {
		return classresult.Result{}, err
	}

	var likelihoods, distances classresult.Floats
	if err := json.Unmarshal([]byte(r.ClassLikelihoods), &likelihoods); err != nil {
		return classresult.Result{}, err
	}
	if err := json.Unmarshal([]byte(r.ClassDistances), &distances); err != nil {
		return classresult.Result{}, err
	}

	return classresult.NewResult(classresult.Fields{
		TrueLabel:         r.TrueLabel,
		PredictedLabel:    r.PredictedLabel,
		RawPredictedLabel: r.RawPredictedLabel,
		MaximumLikelihood: maximum,
		ClassLikelihoods:  likelihoods,
		ClassDistances:    distances,
	}), nil
}

// encodeVector writes v as a JSON array, NaN and ±Inf included
func encodeVector(v []float64) (string, error) {
	data, err := json.Marshal(classresult.Floats(v))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
