// internal/recommendation/payload.go
package recommendation

// StudentInfo summarises the student alongside the recommendations.
type StudentInfo struct {
	MeanGrade  string   `json:"meanGrade"`
	MeanPoints float64  `json:"meanPoints"`
	Strengths  []string `json:"strengths"`
}

// Recommendation is a match enriched with the career's display fields.
type Recommendation struct {
	ID           string   `json:"id"`
	Title        string   `json:"title"`
	Match        int      `json:"match"`
	Category     string   `json:"category"`
	Description  string   `json:"description"`
	KeySubjects  []string `json:"keySubjects"`
	JobProspects string   `json:"jobProspects"`
	MarketDemand string   `json:"marketDemand"`
	Salary       string   `json:"salary"`
	Reasons      []string `json:"reasons"`
}

type Response struct {
	StudentInfo     StudentInfo      `json:"studentInfo"`
	Recommendations []Recommendation `json:"recommendations"`
}

// BuildResponse joins the top limit matches with their catalog entries.
// Matches whose career is no longer in catalog are dropped.
func BuildResponse(student StudentRecord, result *Result, catalog []Career, limit int) Response {
	byID := make(map[string]*Career, len(catalog))
	for i := range catalog {
		if _, dup := byID[catalog[i].ID]; !dup {
			byID[catalog[i].ID] = &catalog[i]
		}
	}

	recs := make([]Recommendation, 0, limit)
	for _, m := range result.Top(limit) {
		c, ok := byID[m.CareerID]
		if !ok {
			continue
		}
		recs = append(recs, NewRecommendation(*c, m))
	}

	strengths := result.Strengths
	if strengths == nil {
		strengths = []string{}
	}

	return Response{
		StudentInfo: StudentInfo{
			MeanGrade:  student.MeanGrade,
			MeanPoints: student.MeanPoints,
			Strengths:  strengths,
		},
		Recommendations: recs,
	}
}

func NewRecommendation(c Career, m MatchResult) Recommendation {
	keySubjects := c.KeySubjects
	if keySubjects == nil {
		keySubjects = []string{}
	}
	return Recommendation{
		ID:           c.ID,
		Title:        c.Title,
		Match:        m.Match,
		Category:     c.Category,
		Description:  c.Description,
		KeySubjects:  keySubjects,
		JobProspects: c.JobProspects,
		MarketDemand: c.MarketDemand,
		Salary:       c.Salary,
		Reasons:      m.Reasons,
	}
}
