// internal/recommendation/store.go
package recommendation

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
)

var ErrRunNotFound = errors.New("recommendation run not found")

const (
	insertRunQuery = `
		INSERT INTO recommendation_runs
			(id, student_id, year, mean_grade, mean_points, subjects, strengths, matches, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`

	selectRunQuery = `
		SELECT id, student_id, year, mean_grade, mean_points, subjects, strengths, matches, created_at
		FROM recommendation_runs
		WHERE id = $1`
)

// Store persists recommendation runs in Postgres. Every survivor above the
// cutoff is stored, not only the ones returned to the caller.
type Store struct {
	db *sql.DB
}

func NewStore(db *sql.DB) *Store {
	return &Store{db: db}
}

// Save inserts run, assigning an id and timestamp when they are unset.
func (s *Store) Save(ctx context.Context, run *Run) error {
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	subjects, err := json.Marshal(run.Student.Subjects)
	if err != nil {
		return fmt.Errorf("marshal subjects: %w", err)
	}
	strengths, err := json.Marshal(run.Strengths)
	if err != nil {
		return fmt.Errorf("marshal strengths: %w", err)
	}
	matches, err := json.Marshal(run.Matches)
	if err != nil {
		return fmt.Errorf("marshal matches: %w", err)
	}

	_, err = s.db.ExecContext(ctx, insertRunQuery,
		run.ID,
		sql.NullString{String: run.StudentID, Valid: run.StudentID != ""},
		run.Student.Year,
		run.Student.MeanGrade,
		run.Student.MeanPoints,
		subjects,
		strengths,
		matches,
		run.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert recommendation run: %w", err)
	}
	return nil
}

func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	var (
		run                          Run
		studentID                    sql.NullString
		subjects, strengths, matches []byte
	)

	err := s.db.QueryRowContext(ctx, selectRunQuery, id).Scan(
		&run.ID,
		&studentID,
		&run.Student.Year,
		&run.Student.MeanGrade,
		&run.Student.MeanPoints,
		&subjects,
		&strengths,
		&matches,
		&run.CreatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrRunNotFound, id)
	}
	if err != nil {
		return nil, fmt.Errorf("query recommendation run: %w", err)
	}

	run.StudentID = studentID.String
	if err := json.Unmarshal(subjects, &run.Student.Subjects); err != nil {
		return nil, fmt.Errorf("decode subjects: %w", err)
	}
	if err := json.Unmarshal(strengths, &run.Strengths); err != nil {
		return nil, fmt.Errorf("decode strengths: %w", err)
	}
	if err := json.Unmarshal(matches, &run.Matches); err != nil {
		return nil, fmt.Errorf("decode matches: %w", err)
	}
	return &run, nil
}
