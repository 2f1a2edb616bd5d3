package recommendation

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupMockDB(t *testing.T) (*sql.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	return db, mock
}

func TestStore_Save(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	run := &Run{
		StudentID: "student-1",
		Student:   StudentRecord{Year: 2023, MeanGrade: "B+", MeanPoints: 10.1, Subjects: sevenSubjects("B+", nil)},
		Strengths: []string{CategorySciences},
		Matches:   []MatchResult{{CareerID: "c1", Match: 88, Reasons: []string{"r1"}}},
	}

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO recommendation_runs")).
		WithArgs(sqlmock.AnyArg(), "student-1", 2023, "B+", 10.1,
			sqlmock.AnyArg(), []byte(`["Sciences"]`), []byte(`[{"careerId":"c1","match":88,"reasons":["r1"]}]`),
			sqlmock.AnyArg()).
		WillReturnResult(sqlmock.NewResult(1, 1))

	require.NoError(t, store.Save(context.Background(), run))
	assert.NotEmpty(t, run.ID)
	assert.False(t, run.CreatedAt.IsZero())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestStore_SaveError(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	mock.ExpectExec(regexp.QuoteMeta("INSERT INTO recommendation_runs")).
		WillReturnError(errors.New("connection reset by peer"))

	err := store.Save(context.Background(), &Run{Student: StudentRecord{MeanGrade: "C"}})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "insert recommendation run")
}

func TestStore_Get(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)
	created := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)

	rows := sqlmock.NewRows([]string{"id", "student_id", "year", "mean_grade", "mean_points", "subjects", "strengths", "matches", "created_at"}).
		AddRow("run-1", nil, 2022, "A-", 11.0,
			[]byte(`[{"subject":"Mathematics","grade":"A"}]`),
			[]byte(`["Sciences","Languages"]`),
			[]byte(`[{"careerId":"c9","match":91,"reasons":["x"]}]`),
			created)
	mock.ExpectQuery(regexp.QuoteMeta("FROM recommendation_runs")).WithArgs("run-1").WillReturnRows(rows)

	run, err := store.Get(context.Background(), "run-1")
	require.NoError(t, err)
	assert.Equal(t, "", run.StudentID)
	assert.Equal(t, "A-", run.Student.MeanGrade)
	assert.Equal(t, []SubjectResult{{Subject: "Mathematics", Grade: "A"}}, run.Student.Subjects)
	assert.Equal(t, []string{CategorySciences, CategoryLanguages}, run.Strengths)
	assert.Equal(t, 91, run.Matches[0].Match)
	assert.Equal(t, created, run.CreatedAt)
}

func TestStore_GetNotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	store := NewStore(db)

	mock.ExpectQuery(regexp.QuoteMeta("FROM recommendation_runs")).WithArgs("missing").WillReturnError(sql.ErrNoRows)

	_, err := store.Get(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrRunNotFound)
}
