// internal/workers/career/search-careers/handler_test.go
package searchcareers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"career-workers/internal/common/camunda"
	apperrors "career-workers/internal/common/errors"
	"career-workers/internal/common/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const searchResponse = `{
  "took": 4,
  "hits": {
    "total": {"value": 2, "relation": "eq"},
    "max_score": 3.2,
    "hits": [
      {"_id": "swe", "_score": 3.2, "_source": {"id": "swe", "title": "Software Engineer", "category": "Technology", "minimumMeanGrade": "B", "keySubjects": ["Mathematics", "Computer Studies"], "marketDemand": "Very High"}},
      {"_id": "net", "_score": 1.1, "_source": {"id": "net", "title": "Network Administrator", "category": "Technology", "minimumMeanGrade": "C+", "keySubjects": ["Computer Studies"], "marketDemand": "High"}}
    ]
  }
}`

func newESClient(t *testing.T, handler http.HandlerFunc) *elasticsearch.Client {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(srv.Close)

	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{srv.URL}})
	require.NoError(t, err)
	return es
}

func newHandler(t *testing.T, es *elasticsearch.Client) *Handler {
	log := logger.NewTestLogger(t)
	return NewHandler(&Config{Timeout: 5 * time.Second, Index: "careers"}, es, camunda.NewReporter(nil, log), log)
}

func TestHandler_Execute_Success(t *testing.T) {
	var captured map[string]interface{}
	es := newESClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/careers/_search", r.URL.Path)
		assert.Equal(t, "0", r.URL.Query().Get("from"))
		assert.Equal(t, "100", r.URL.Query().Get("size"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		_, _ = w.Write([]byte(searchResponse))
	})

	output, err := newHandler(t, es).Execute(context.Background(), &Input{
		Query:        "computer",
		Category:     "Technology",
		MarketDemand: []string{"High", "Very High"},
		Pagination:   Pagination{Size: 250},
	})
	require.NoError(t, err)

	assert.Equal(t, int64(2), output.TotalHits)
	assert.Equal(t, 3.2, output.MaxScore)
	assert.Equal(t, int64(4), output.Took)
	require.Len(t, output.Careers, 2)
	assert.Equal(t, "swe", output.Careers[0].Career.ID)
	assert.Equal(t, []string{"Mathematics", "Computer Studies"}, output.Careers[0].Career.KeySubjects)
	assert.Equal(t, 1.1, output.Careers[1].Score)

	require.NotNil(t, captured)
	assert.Contains(t, captured, "query")
}

func TestHandler_Execute_EmptyResult(t *testing.T) {
	es := newESClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "20", r.URL.Query().Get("size"))
		_, _ = w.Write([]byte(`{"took":1,"hits":{"total":{"value":0},"max_score":null,"hits":[]}}`))
	})

	output, err := newHandler(t, es).Execute(context.Background(), &Input{})
	require.NoError(t, err)
	assert.NotNil(t, output.Careers)
	assert.Empty(t, output.Careers)
	assert.Zero(t, output.MaxScore)
}

func TestHandler_Execute_Errors(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		input        Input
		expectedCode apperrors.ErrorCode
		retryable    bool
	}{
		{
			name:         "index missing",
			status:       http.StatusNotFound,
			body:         `{"error":{"type":"index_not_found_exception"},"status":404}`,
			expectedCode: apperrors.ErrCodeIndexNotFound,
		},
		{
			name:         "malformed query",
			status:       http.StatusBadRequest,
			body:         `{"error":{"type":"parsing_exception"},"status":400}`,
			expectedCode: apperrors.ErrCodeSearchQueryFailed,
			retryable:    true,
		},
		{
			name:         "unknown eligibility grade",
			status:       http.StatusOK,
			body:         `{}`,
			input:        Input{EligibleFor: "Q"},
			expectedCode: apperrors.ErrCodeBusinessRuleViolation,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			es := newESClient(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_, _ = w.Write([]byte(tt.body))
			})

			output, err := newHandler(t, es).Execute(context.Background(), &tt.input)
			assert.Nil(t, output)
			stdErr, ok := apperrors.AsStandardError(err)
			require.True(t, ok)
			assert.Equal(t, tt.expectedCode, stdErr.Code)
			assert.Equal(t, tt.retryable, stdErr.Retryable)
		})
	}
}

func TestHandler_MapError_Timeout(t *testing.T) {
	h := newHandler(t, nil)
	ctx, cancel := context.WithDeadline(context.Background(), time.Now().Add(-time.Second))
	defer cancel()

	stdErr, ok := apperrors.AsStandardError(h.mapError(ctx, ctx.Err()))
	require.True(t, ok)
	assert.Equal(t, apperrors.ErrCodeSearchTimeout, stdErr.Code)
	assert.True(t, stdErr.Retryable)
}
