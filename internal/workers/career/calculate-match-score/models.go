// internal/workers/career/calculate-match-score/models.go
package calculatematchscore

import "encoding/json"

// Input carries either an inline career or the id of a catalog entry. The
// inline career wins when both are set.
type Input struct {
	Student  json.RawMessage `json:"student"`
	Career   json.RawMessage `json:"career,omitempty"`
	CareerID string          `json:"careerId,omitempty"`
}

type Output struct {
	CareerID    string   `json:"careerId"`
	MatchScore  int      `json:"matchScore"`
	Reasons     []string `json:"reasons"`
	AboveCutoff bool     `json:"aboveCutoff"`
}
