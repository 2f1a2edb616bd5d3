package main

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"career-workers/internal/recommendation"
	"career-workers/pkg/registry"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const studentFixture = `{
  "year": 2023,
  "meanGrade": "A",
  "meanPoints": 12,
  "subjects": [
    {"subject": "Mathematics", "grade": "A"},
    {"subject": "English", "grade": "A"},
    {"subject": "Kiswahili", "grade": "A"},
    {"subject": "Biology", "grade": "A"},
    {"subject": "Chemistry", "grade": "A"},
    {"subject": "Physics", "grade": "A"},
    {"subject": "History and Government", "grade": "A"}
  ]
}`

// Scores 80, 50 and 49 for the fixture student.
const catalogFixture = `[
  {"id": "actuary", "title": "Actuary", "minimumMeanGrade": "B", "keySubjects": ["Mathematics"]},
  {"id": "linguist", "title": "Linguist", "minimumMeanGrade": "C", "keySubjects": ["Latin"], "marketDemand": "Medium"},
  {"id": "generalist", "title": "Generalist", "minimumMeanGrade": "C", "marketDemand": "Low",
   "keySubjects": ["Mathematics", "Latin", "Music", "French", "German", "Arabic", "Woodwork", "Metalwork", "Aviation Technology", "Home Science"]}
]`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRunRecommend_Text(t *testing.T) {
	var out bytes.Buffer
	err := runRecommend(context.Background(), &out, recommendOptions{
		student: writeFile(t, "student.json", studentFixture),
		catalog: writeFile(t, "catalog.json", catalogFixture),
		limit:   recommendation.ResponseLimit,
	})
	require.NoError(t, err)

	text := out.String()
	assert.Contains(t, text, "Career Recommendations")
	assert.Contains(t, text, "Matches:")
	assert.Contains(t, text, "Actuary")
	assert.Contains(t, text, "Linguist")
	assert.NotContains(t, text, "Generalist")
}

func TestRunRecommend_JSON(t *testing.T) {
	var out bytes.Buffer
	err := runRecommend(context.Background(), &out, recommendOptions{
		student: writeFile(t, "student.json", studentFixture),
		catalog: writeFile(t, "catalog.json", catalogFixture),
		limit:   1,
		json:    true,
	})
	require.NoError(t, err)

	var resp recommendation.Response
	require.NoError(t, json.Unmarshal(out.Bytes(), &resp))
	require.Len(t, resp.Recommendations, 1)
	assert.Equal(t, "actuary", resp.Recommendations[0].ID)
	assert.Equal(t, 80, resp.Recommendations[0].Match)
	assert.Equal(t, "A", resp.StudentInfo.MeanGrade)
}

func TestRunRecommend_Errors(t *testing.T) {
	tests := []struct {
		name    string
		student string
		catalog string
		wantErr error
	}{
		{"schema violation", `{"subjects": []}`, catalogFixture, recommendation.ErrInvalidStudent},
		{"too few subjects", `{"meanGrade": "A", "subjects": [{"subject": "Mathematics", "grade": "A"}]}`, catalogFixture, recommendation.ErrInsufficientSubjects},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := runRecommend(context.Background(), &bytes.Buffer{}, recommendOptions{
				student: writeFile(t, "student.json", tt.student),
				catalog: writeFile(t, "catalog.json", tt.catalog),
			})
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}

	err := runRecommend(context.Background(), &bytes.Buffer{}, recommendOptions{
		student: writeFile(t, "student.json", studentFixture),
		catalog: writeFile(t, "catalog.json", `[{"id": "x", "title": "X", "minimumMeanGrade": "Q"}]`),
	})
	assert.ErrorContains(t, err, "invalid catalog")
}

func TestRunCatalogValidate(t *testing.T) {
	var out bytes.Buffer
	require.NoError(t, runCatalogValidate(&out, writeFile(t, "catalog.json", catalogFixture)))
	assert.Contains(t, out.String(), "3 careers valid")

	out.Reset()
	dup := `[{"id": "a", "title": "A", "minimumMeanGrade": "B"}, {"id": "a", "title": "A2", "minimumMeanGrade": "C"}]`
	err := runCatalogValidate(&out, writeFile(t, "catalog.json", dup))
	require.Error(t, err)
	assert.Contains(t, out.String(), "duplicate id")
}

func TestRegistryCommands(t *testing.T) {
	src, err := os.ReadFile("../../configs/activity-registry.json")
	require.NoError(t, err)
	path := writeFile(t, "registry.json", string(src))

	var out bytes.Buffer
	require.NoError(t, runRegistryCheck(&out, path))
	assert.Contains(t, out.String(), "5 activities")

	out.Reset()
	require.NoError(t, runRegistryList(&out, path))
	assert.Contains(t, out.String(), "generate-career-recommendations")

	out.Reset()
	require.NoError(t, runRegistrySet(&out, path, "career.match.calculate", "timeout", "15s"))
	reg, err := registry.LoadRegistry(path)
	require.NoError(t, err)
	a, err := reg.ByTaskType("calculate-career-match")
	require.NoError(t, err)
	assert.Equal(t, "15s", a.Timeout)

	assert.ErrorIs(t, runRegistrySet(&out, path, "career.unknown.thing", "status", "verified"), registry.ErrActivityNotFound)
	assert.Error(t, runRegistrySet(&out, path, "career.match.calculate", "taskType", "search-careers"))
}

func TestRegistryCheck_Invalid(t *testing.T) {
	path := writeFile(t, "registry.json", `{"version": "1", "activities": [{"id": "Bad", "taskType": "x"}]}`)
	var out bytes.Buffer
	require.Error(t, runRegistryCheck(&out, path))
	assert.Contains(t, out.String(), "domain.subdomain.action")
}
