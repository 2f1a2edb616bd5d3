// internal/workers/career/search-careers/queries/builder.go
package queries

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"career-workers/internal/common/grading"
)

const (
	DefaultSize = 20
	MaxSize     = 100
)

var (
	ErrMissingIndex     = errors.New("index name is required")
	ErrUnknownMeanGrade = errors.New("unknown mean grade")
)

// CareerQuery is a search over the careers index.
type CareerQuery struct {
	Index        string
	Text         string
	Category     string
	MarketDemand []string
	// EligibleFor keeps careers whose minimum mean grade the given grade
	// reaches.
	EligibleFor string
	From        int
	Size        int
}

// Normalize clamps pagination to the accepted range.
func (q *CareerQuery) Normalize() {
	if q.From < 0 {
		q.From = 0
	}
	switch {
	case q.Size < 1:
		q.Size = DefaultSize
	case q.Size > MaxSize:
		q.Size = MaxSize
	}
}

// Body renders the request body for q.
func (q CareerQuery) Body() (*bytes.Reader, error) {
	if q.Index == "" {
		return nil, ErrMissingIndex
	}

	must := []interface{}{}
	filter := []interface{}{}

	if q.Text != "" {
		must = append(must, map[string]interface{}{
			"multi_match": map[string]interface{}{
				"query":  q.Text,
				"fields": []string{"title^3", "description", "keySubjects^2"},
				"type":   "best_fields",
			},
		})
	} else {
		must = append(must, map[string]interface{}{"match_all": map[string]interface{}{}})
	}

	if q.Category != "" {
		filter = append(filter, map[string]interface{}{
			"term": map[string]interface{}{"category.keyword": q.Category},
		})
	}
	if len(q.MarketDemand) > 0 {
		filter = append(filter, map[string]interface{}{
			"terms": map[string]interface{}{"marketDemand.keyword": q.MarketDemand},
		})
	}
	if q.EligibleFor != "" {
		reachable, err := reachableGrades(q.EligibleFor)
		if err != nil {
			return nil, err
		}
		filter = append(filter, map[string]interface{}{
			"terms": map[string]interface{}{"minimumMeanGrade.keyword": reachable},
		})
	}

	boolQuery := map[string]interface{}{"must": must}
	if len(filter) > 0 {
		boolQuery["filter"] = filter
	}

	body := map[string]interface{}{
		"query": map[string]interface{}{"bool": boolQuery},
		"sort": []interface{}{
			"_score",
			map[string]interface{}{"title.keyword": "asc"},
		},
	}

	data, err := json.Marshal(body)
	if err != nil {
		return nil, err
	}
	return bytes.NewReader(data), nil
}

// reachableGrades lists every grade symbol at or below meanGrade.
func reachableGrades(meanGrade string) ([]string, error) {
	pts, ok := grading.Lookup(meanGrade)
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownMeanGrade, meanGrade)
	}
	var out []string
	for _, symbol := range grading.Symbols {
		if grading.Points(symbol) <= pts {
			out = append(out, symbol)
		}
	}
	return out, nil
}
