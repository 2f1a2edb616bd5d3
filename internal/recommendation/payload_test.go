package recommendation

import (
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuildResponse(t *testing.T) {
	catalog := make([]Career, 12)
	matches := make([]MatchResult, 12)
	for i := range catalog {
		catalog[i] = Career{
			ID:           fmt.Sprintf("c%02d", i),
			Title:        fmt.Sprintf("Career %d", i),
			Category:     "Engineering",
			Salary:       "KES 80,000",
			MarketDemand: DemandHigh,
		}
		matches[i] = MatchResult{CareerID: catalog[i].ID, Match: 90 - i, Reasons: []string{"r"}}
	}
	s := StudentRecord{MeanGrade: "A-", MeanPoints: 11.2}

	resp := BuildResponse(s, &Result{Strengths: []string{CategorySciences}, Matches: matches}, catalog, ResponseLimit)

	assert.Equal(t, "A-", resp.StudentInfo.MeanGrade)
	assert.Equal(t, 11.2, resp.StudentInfo.MeanPoints)
	assert.Equal(t, []string{CategorySciences}, resp.StudentInfo.Strengths)
	require.Len(t, resp.Recommendations, ResponseLimit)

	first := resp.Recommendations[0]
	assert.Equal(t, "c00", first.ID)
	assert.Equal(t, "Career 0", first.Title)
	assert.Equal(t, 90, first.Match)
	assert.Equal(t, "KES 80,000", first.Salary)
	assert.NotNil(t, first.KeySubjects)
}

func TestBuildResponse_DropsUnknownCareer(t *testing.T) {
	catalog := []Career{{ID: "known", Title: "Known"}}
	result := &Result{Matches: []MatchResult{
		{CareerID: "gone", Match: 99},
		{CareerID: "known", Match: 70},
	}}

	resp := BuildResponse(StudentRecord{MeanGrade: "B"}, result, catalog, ResponseLimit)
	require.Len(t, resp.Recommendations, 1)
	assert.Equal(t, "known", resp.Recommendations[0].ID)
	assert.Equal(t, []string{}, resp.StudentInfo.Strengths)
}

func TestResponse_JSONShape(t *testing.T) {
	resp := BuildResponse(StudentRecord{MeanGrade: "B"}, &Result{Matches: []MatchResult{}}, nil, ResponseLimit)

	raw, err := json.Marshal(resp)
	require.NoError(t, err)
	assert.JSONEq(t, `{"studentInfo":{"meanGrade":"B","meanPoints":0,"strengths":[]},"recommendations":[]}`, string(raw))
}
