// internal/catalog/postgres.go
package catalog

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	"career-workers/internal/recommendation"

	"github.com/lib/pq"
)

var ErrNotFound = errors.New("career not found")

const (
	careerColumns = `id, title, category, description, job_prospects, salary,
		minimum_mean_grade, key_subjects, required_grades, market_demand`

	loadAllQuery = `SELECT ` + careerColumns + ` FROM careers ORDER BY position, id`

	getQuery = `SELECT ` + careerColumns + ` FROM careers WHERE id = $1`

	upsertQuery = `
		INSERT INTO careers (` + careerColumns + `, position, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW())
		ON CONFLICT (id) DO UPDATE SET
			title = EXCLUDED.title,
			category = EXCLUDED.category,
			description = EXCLUDED.description,
			job_prospects = EXCLUDED.job_prospects,
			salary = EXCLUDED.salary,
			minimum_mean_grade = EXCLUDED.minimum_mean_grade,
			key_subjects = EXCLUDED.key_subjects,
			required_grades = EXCLUDED.required_grades,
			market_demand = EXCLUDED.market_demand,
			position = EXCLUDED.position,
			updated_at = NOW()`

	pruneQuery = `DELETE FROM careers WHERE NOT (id = ANY($1)) RETURNING id`
)

// Postgres reads and writes the careers table. Catalog order is the
// position column.
type Postgres struct {
	db *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres {
	return &Postgres{db: db}
}

func (p *Postgres) LoadAll(ctx context.Context) ([]recommendation.Career, error) {
	rows, err := p.db.QueryContext(ctx, loadAllQuery)
	if err != nil {
		return nil, fmt.Errorf("query careers: %w", err)
	}
	defer rows.Close()

	careers := []recommendation.Career{}
	for rows.Next() {
		c, err := scanCareer(rows)
		if err != nil {
			return nil, err
		}
		careers = append(careers, *c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate careers: %w", err)
	}
	return careers, nil
}

func (p *Postgres) Get(ctx context.Context, id string) (*recommendation.Career, error) {
	c, err := scanCareer(p.db.QueryRowContext(ctx, getQuery, id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c, err
}

// Replace makes careers the whole catalog in one transaction: slice order
// becomes catalog position and stored careers absent from the slice are
// deleted. It returns the deleted ids.
func (p *Postgres) Replace(ctx context.Context, careers []recommendation.Career) ([]string, error) {
	tx, err := p.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, upsertQuery)
	if err != nil {
		return nil, fmt.Errorf("prepare upsert: %w", err)
	}
	defer stmt.Close()

	ids := make([]string, len(careers))
	for i, c := range careers {
		ids[i] = c.ID
		keySubjects, err := json.Marshal(nonNilStrings(c.KeySubjects))
		if err != nil {
			return nil, err
		}
		requiredGrades, err := json.Marshal(nonNilMap(c.RequiredGrades))
		if err != nil {
			return nil, err
		}

		if _, err := stmt.ExecContext(ctx,
			c.ID, c.Title, c.Category, c.Description, c.JobProspects, c.Salary,
			c.MinimumMeanGrade, keySubjects, requiredGrades, c.MarketDemand, i,
		); err != nil {
			return nil, fmt.Errorf("upsert career %s: %w", c.ID, err)
		}
	}

	removed, err := prune(ctx, tx, ids)
	if err != nil {
		return nil, err
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit: %w", err)
	}
	return removed, nil
}

func prune(ctx context.Context, tx *sql.Tx, keep []string) ([]string, error) {
	rows, err := tx.QueryContext(ctx, pruneQuery, pq.Array(keep))
	if err != nil {
		return nil, fmt.Errorf("prune careers: %w", err)
	}
	defer rows.Close()

	removed := []string{}
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scan pruned id: %w", err)
		}
		removed = append(removed, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("prune careers: %w", err)
	}
	return removed, nil
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

func scanCareer(row rowScanner) (*recommendation.Career, error) {
	var (
		c                           recommendation.Career
		keySubjects, requiredGrades []byte
		category, description       sql.NullString
		jobProspects, salary        sql.NullString
		marketDemand                sql.NullString
	)

	if err := row.Scan(
		&c.ID, &c.Title, &category, &description, &jobProspects, &salary,
		&c.MinimumMeanGrade, &keySubjects, &requiredGrades, &marketDemand,
	); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan career: %w", err)
	}

	c.Category = category.String
	c.Description = description.String
	c.JobProspects = jobProspects.String
	c.Salary = salary.String
	c.MarketDemand = marketDemand.String

	if len(keySubjects) > 0 {
		if err := json.Unmarshal(keySubjects, &c.KeySubjects); err != nil {
			return nil, fmt.Errorf("decode key_subjects for %s: %w", c.ID, err)
		}
	}
	if len(requiredGrades) > 0 {
		if err := json.Unmarshal(requiredGrades, &c.RequiredGrades); err != nil {
			return nil, fmt.Errorf("decode required_grades for %s: %w", c.ID, err)
		}
	}
	return &c, nil
}

func nonNilStrings(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func nonNilMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}
