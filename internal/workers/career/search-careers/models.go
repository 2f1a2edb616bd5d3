// internal/workers/career/search-careers/models.go
package searchcareers

import "career-workers/internal/workers/career/search-careers/queries"

type Input struct {
	Query        string     `json:"query"`
	Category     string     `json:"category,omitempty"`
	MarketDemand []string   `json:"marketDemand,omitempty"`
	EligibleFor  string     `json:"eligibleFor,omitempty"`
	Pagination   Pagination `json:"pagination"`
}

type Pagination struct {
	From int `json:"from"`
	Size int `json:"size"`
}

type Output struct {
	Careers   []queries.Hit `json:"careers"`
	TotalHits int64         `json:"totalHits"`
	MaxScore  float64       `json:"maxScore"`
	Took      int64         `json:"took"` // milliseconds
}
