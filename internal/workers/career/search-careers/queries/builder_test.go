package queries

import (
	"encoding/json"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeBody(t *testing.T, q CareerQuery) map[string]interface{} {
	t.Helper()
	r, err := q.Body()
	require.NoError(t, err)
	raw, err := io.ReadAll(r)
	require.NoError(t, err)
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &body))
	return body
}

func boolClause(body map[string]interface{}) map[string]interface{} {
	return body["query"].(map[string]interface{})["bool"].(map[string]interface{})
}

func TestCareerQuery_Normalize(t *testing.T) {
	tests := []struct {
		name             string
		from, size       int
		wantFrom, wantSz int
	}{
		{"defaults", 0, 0, 0, DefaultSize},
		{"negative from", -5, 10, 0, 10},
		{"too large", 40, 500, 40, MaxSize},
		{"negative size", 0, -1, 0, DefaultSize},
		{"at max", 0, MaxSize, 0, MaxSize},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			q := CareerQuery{From: tt.from, Size: tt.size}
			q.Normalize()
			assert.Equal(t, tt.wantFrom, q.From)
			assert.Equal(t, tt.wantSz, q.Size)
		})
	}
}

func TestCareerQuery_Body(t *testing.T) {
	t.Run("match all without text", func(t *testing.T) {
		b := boolClause(decodeBody(t, CareerQuery{Index: "careers"}))
		must := b["must"].([]interface{})
		require.Len(t, must, 1)
		assert.Contains(t, must[0], "match_all")
		assert.NotContains(t, b, "filter")
	})

	t.Run("text and filters", func(t *testing.T) {
		b := boolClause(decodeBody(t, CareerQuery{
			Index:        "careers",
			Text:         "software",
			Category:     "Technology",
			MarketDemand: []string{"High", "Very High"},
			EligibleFor:  "C+",
		}))

		mm := b["must"].([]interface{})[0].(map[string]interface{})["multi_match"].(map[string]interface{})
		assert.Equal(t, "software", mm["query"])

		filter := b["filter"].([]interface{})
		require.Len(t, filter, 3)
		assert.Equal(t, "Technology", filter[0].(map[string]interface{})["term"].(map[string]interface{})["category.keyword"])
		assert.Equal(t, []interface{}{"High", "Very High"}, filter[1].(map[string]interface{})["terms"].(map[string]interface{})["marketDemand.keyword"])
		assert.Equal(t,
			[]interface{}{"C+", "C", "C-", "D+", "D", "D-", "E"},
			filter[2].(map[string]interface{})["terms"].(map[string]interface{})["minimumMeanGrade.keyword"])
	})

	t.Run("missing index", func(t *testing.T) {
		_, err := CareerQuery{}.Body()
		assert.ErrorIs(t, err, ErrMissingIndex)
	})

	t.Run("unknown eligibility grade", func(t *testing.T) {
		_, err := CareerQuery{Index: "careers", EligibleFor: "Z"}.Body()
		assert.ErrorIs(t, err, ErrUnknownMeanGrade)
	})
}
