// internal/workers/career/generate-recommendations/models.go
package generaterecommendations

import (
	"encoding/json"

	"career-workers/internal/recommendation"
)

type Input struct {
	StudentID string          `json:"studentId,omitempty"`
	Student   json.RawMessage `json:"student"`
}

type Output struct {
	RunID           string                          `json:"runId"`
	StudentInfo     recommendation.StudentInfo      `json:"studentInfo"`
	Recommendations []recommendation.Recommendation `json:"recommendations"`
	TotalMatches    int                             `json:"totalMatches"`
}
