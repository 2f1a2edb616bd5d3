package registry

import (
	"path/filepath"
	"testing"
	"time"

	apperrors "career-workers/internal/common/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validRegistry() *ActivityRegistry {
	return &ActivityRegistry{
		Version: "1.0.0",
		Activities: []Activity{
			{ID: "career.recommendation.generate", DisplayName: "Generate", Category: "career", TaskType: "generate-career-recommendations", Timeout: "30s", Retries: 3},
			{ID: "career.match.calculate", DisplayName: "Match", Category: "career", TaskType: "calculate-career-match", Timeout: "10s"},
		},
	}
}

func TestValidate(t *testing.T) {
	require.NoError(t, validRegistry().Validate())

	tests := []struct {
		name   string
		mutate func(r *ActivityRegistry)
		want   string
	}{
		{"empty", func(r *ActivityRegistry) { r.Activities = nil }, "no activities"},
		{"duplicate id", func(r *ActivityRegistry) { r.Activities[1].ID = r.Activities[0].ID }, "duplicate activity ID"},
		{"duplicate task type", func(r *ActivityRegistry) { r.Activities[1].TaskType = r.Activities[0].TaskType }, "duplicate task type"},
		{"bad naming", func(r *ActivityRegistry) { r.Activities[0].ID = "generate" }, "domain.subdomain.action"},
		{"missing display name", func(r *ActivityRegistry) { r.Activities[0].DisplayName = "" }, "DisplayName"},
		{"bad timeout", func(r *ActivityRegistry) { r.Activities[0].Timeout = "soon" }, "invalid timeout"},
		{"negative retries", func(r *ActivityRegistry) { r.Activities[0].Retries = -1 }, "negative"},
		{"unknown status", func(r *ActivityRegistry) { r.Activities[0].ImplementationStatus = "shipped" }, "unknown status"},
		{"unknown error code", func(r *ActivityRegistry) { r.Activities[0].ErrorCodes = []apperrors.ErrorCode{"TIMEOUT"} }, "unknown error code"},
		{"unknown variable type", func(r *ActivityRegistry) { r.Activities[0].InputSchema = map[string]string{"student": "record"} }, "unknown type"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			r := validRegistry()
			tt.mutate(r)
			err := r.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestByTaskType(t *testing.T) {
	r := validRegistry()

	a, err := r.ByTaskType("calculate-career-match")
	require.NoError(t, err)
	assert.Equal(t, "career.match.calculate", a.ID)
	assert.Equal(t, 10*time.Second, a.TimeoutDuration())

	_, err = r.ByTaskType("nope")
	assert.ErrorIs(t, err, ErrActivityNotFound)
}

func TestSaveAndLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "registry.json")
	r := validRegistry()
	require.NoError(t, r.Activities[0].Set("status", StatusVerified))
	require.NoError(t, r.Activities[0].Set("retries", "5"))
	require.NoError(t, r.Save(path))

	loaded, err := LoadRegistry(path)
	require.NoError(t, err)
	assert.NotEmpty(t, loaded.LastUpdated)
	assert.Equal(t, StatusVerified, loaded.Activities[0].ImplementationStatus)
	assert.Equal(t, 5, loaded.Activities[0].Retries)
}

func TestActivitySet_Errors(t *testing.T) {
	var a Activity
	assert.Error(t, a.Set("retries", "many"))
	assert.Error(t, a.Set("timeout", "forever"))
	assert.Error(t, a.Set("colour", "red"))
	assert.Error(t, a.Set("status", "shipped"))
}

func TestShippedRegistry(t *testing.T) {
	reg, err := LoadRegistry(filepath.Join("..", "..", "configs", "activity-registry.json"))
	require.NoError(t, err)
	require.NoError(t, reg.Validate())
	assert.Len(t, reg.Activities, 5)
}
