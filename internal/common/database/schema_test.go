package database

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureSchema(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(regexp.QuoteMeta("CREATE TABLE IF NOT EXISTS careers")).
		WillReturnResult(sqlmock.NewResult(0, 0))
	require.NoError(t, EnsureSchema(context.Background(), db))

	mock.ExpectExec("CREATE TABLE").WillReturnError(errors.New("permission denied"))
	err = EnsureSchema(context.Background(), db)
	assert.ErrorContains(t, err, "apply schema")

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSchemaSQL_CoversStores(t *testing.T) {
	for _, col := range []string{"minimum_mean_grade", "key_subjects", "required_grades", "market_demand", "position"} {
		assert.Contains(t, schemaSQL, col)
	}
	for _, col := range []string{"student_id", "mean_points", "strengths", "matches", "created_at"} {
		assert.Contains(t, schemaSQL, col)
	}
}
