// internal/recommendation/reasons.go
package recommendation

import (
	"fmt"
	"strings"
)

var performanceLevel = map[string]string{
	"A":  "excellent",
	"A-": "excellent",
	"B+": "very good",
	"B":  "very good",
	"B-": "good",
	"C+": "good",
	"C":  "average",
	"C-": "average",
}

const belowAverage = "below average"

// Reasons explains a match score. The performance reason is always present;
// the subject and demand reasons are added only when they apply.
func Reasons(student StudentRecord, career Career, match int) []string {
	reasons := []string{performanceReason(student.MeanGrade, match)}

	if r, ok := subjectReason(student, career); ok {
		reasons = append(reasons, r)
	}

	switch career.MarketDemand {
	case DemandVeryHigh:
		reasons = append(reasons, "This career is in very high demand in the job market")
	case DemandHigh:
		reasons = append(reasons, "This career has high demand and good employment prospects")
	}

	return reasons
}

func performanceReason(meanGrade string, match int) string {
	grade := strings.TrimSpace(meanGrade)
	level, ok := performanceLevel[grade]
	if !ok {
		level = belowAverage
	}

	switch {
	case match >= 90:
		return fmt.Sprintf("Your %s mean grade of %s makes you an exceptional match for this career", level, grade)
	case match >= 75:
		return fmt.Sprintf("Your %s mean grade of %s makes you a strong candidate for this career", level, grade)
	case match >= 60:
		return fmt.Sprintf("Your %s mean grade of %s meets the requirements for this career", level, grade)
	default:
		return fmt.Sprintf("Your %s mean grade of %s meets the minimum entry requirement for this career", level, grade)
	}
}

func subjectReason(student StudentRecord, career Career) (string, bool) {
	taken := subjectPoints(student.Subjects)

	var matched []string
	for _, subject := range career.KeySubjects {
		if _, ok := taken[subjectKey(subject)]; ok {
			matched = append(matched, subject)
		}
	}

	switch {
	case len(matched) == 0:
		return "", false
	case len(matched) == len(career.KeySubjects):
		return "You have studied all key subjects for this career: " + strings.Join(matched, ", "), true
	default:
		return fmt.Sprintf("You have studied %d of %d key subjects: %s",
			len(matched), len(career.KeySubjects), strings.Join(matched, ", ")), true
	}
}
