// internal/recommendation/score.go
package recommendation

import (
	"math"
	"strings"

	"career-workers/internal/common/grading"
)

const (
	meanGradeWeight = 40.0
	subjectWeight   = 40.0
	demandWeight    = 20.0

	// per key subject
	subjectCredit = 10.0
	partialCredit = 5.0
)

const (
	// MinimumSubjects is the smallest result set accepted for recommendation.
	MinimumSubjects = 7
	// MatchCutoff is the lowest match kept in a recommendation list.
	MatchCutoff = 50
	// ResponseLimit caps the recommendations returned to callers.
	ResponseLimit = 10
)

var demandBonus = map[string]float64{
	DemandVeryHigh: 20,
	DemandHigh:     15,
	DemandMedium:   10,
	DemandLow:      5,
}

// Score returns the 0-100 match of a student against a career. A student
// whose mean grade is below the career minimum scores 0.
func Score(student StudentRecord, career Career) int {
	studentPoints := grading.Points(student.MeanGrade)
	if studentPoints < grading.Points(career.MinimumMeanGrade) {
		return 0
	}

	var score, maxScore float64

	score += float64(studentPoints) / grading.MaxPoints * meanGradeWeight
	maxScore += meanGradeWeight

	score += subjectPercentage(subjectPoints(student.Subjects), career)
	maxScore += subjectWeight

	score += demandBonus[career.MarketDemand]
	maxScore += demandWeight

	return int(math.Round(score / maxScore * 100))
}

func subjectPercentage(taken map[string]int, career Career) float64 {
	required := len(career.KeySubjects)
	if required == 0 {
		return 0
	}

	var sum float64
	for _, subject := range career.KeySubjects {
		pts, ok := taken[subjectKey(subject)]
		if !ok {
			continue
		}
		if grade, ok := requiredGrade(career.RequiredGrades, subject); ok {
			if pts >= grading.Points(grade) {
				sum += subjectCredit
			} else {
				sum += partialCredit
			}
			continue
		}
		sum += float64(pts) / grading.MaxPoints * subjectCredit
	}

	return sum / (float64(required) * subjectCredit) * subjectWeight
}

// subjectPoints indexes a student's subjects by normalized name. A repeated
// subject keeps its last grade.
func subjectPoints(subjects []SubjectResult) map[string]int {
	out := make(map[string]int, len(subjects))
	for _, s := range subjects {
		out[subjectKey(s.Subject)] = grading.Points(s.Grade)
	}
	return out
}

func requiredGrade(grades map[string]string, subject string) (string, bool) {
	if len(grades) == 0 {
		return "", false
	}
	if g, ok := grades[subject]; ok {
		return g, true
	}
	key := subjectKey(subject)
	for name, g := range grades {
		if subjectKey(name) == key {
			return g, true
		}
	}
	return "", false
}

func subjectKey(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}
