// internal/workers/career/profile-strengths/models.go
package profilestrengths

import "encoding/json"

type Input struct {
	Student json.RawMessage `json:"student"`
}

type Output struct {
	Strengths []string `json:"strengths"`
	// Categories maps every subject in the record to its category.
	Categories map[string]string `json:"categories"`
}
