// internal/recommendation/models.go
package recommendation

import "time"

// Market demand tiers.
const (
	DemandVeryHigh = "Very High"
	DemandHigh     = "High"
	DemandMedium   = "Medium"
	DemandLow      = "Low"
)

// SubjectResult is one examined subject.
type SubjectResult struct {
	Subject string `json:"subject"`
	Grade   string `json:"grade"`
}

// StudentRecord is a submitted result set.
type StudentRecord struct {
	Year       int             `json:"year"`
	MeanGrade  string          `json:"meanGrade"`
	MeanPoints float64         `json:"meanPoints"`
	Subjects   []SubjectResult `json:"subjects"`
}

// Career is a catalog entry. Only MinimumMeanGrade, KeySubjects,
// RequiredGrades and MarketDemand take part in scoring; the remaining
// fields are display data passed through to callers.
type Career struct {
	ID               string            `json:"id" validate:"required"`
	Title            string            `json:"title" validate:"required"`
	Category         string            `json:"category"`
	Description      string            `json:"description"`
	JobProspects     string            `json:"jobProspects"`
	Salary           string            `json:"salary"`
	MinimumMeanGrade string            `json:"minimumMeanGrade" validate:"required,grade"`
	KeySubjects      []string          `json:"keySubjects" validate:"dive,required"`
	RequiredGrades   map[string]string `json:"requiredGrades,omitempty" validate:"dive,keys,required,endkeys,grade"`
	MarketDemand     string            `json:"marketDemand" validate:"omitempty,oneof='Low' 'Medium' 'High' 'Very High'"`
}

// MatchResult is the score of one career for one student.
type MatchResult struct {
	CareerID string   `json:"careerId"`
	Match    int      `json:"match"`
	Reasons  []string `json:"reasons"`
}

// Result is the outcome of a recommendation pass. Matches holds every
// career at or above the cutoff, best first.
type Result struct {
	Strengths []string      `json:"strengths"`
	Matches   []MatchResult `json:"matches"`
}

// Top returns at most n of the best matches.
func (r *Result) Top(n int) []MatchResult {
	if n < 0 || len(r.Matches) <= n {
		return r.Matches
	}
	return r.Matches[:n]
}

// Run is a persisted recommendation pass.
type Run struct {
	ID        string        `json:"id"`
	StudentID string        `json:"studentId,omitempty"`
	Student   StudentRecord `json:"student"`
	Strengths []string      `json:"strengths"`
	Matches   []MatchResult `json:"matches"`
	CreatedAt time.Time     `json:"createdAt"`
}
