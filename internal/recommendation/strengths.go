// internal/recommendation/strengths.go
package recommendation

import (
	"sort"
	"strings"

	"career-workers/internal/common/grading"
)

// Subject categories.
const (
	CategorySciences     = "Sciences"
	CategoryLanguages    = "Languages"
	CategoryHumanities   = "Humanities"
	CategoryCommerce     = "Commerce"
	CategoryTechnical    = "Technical"
	CategoryCreativeArts = "Creative Arts"
	CategoryOther        = "Other"
)

const maxStrengths = 3

var subjectCategories = map[string]string{
	"Mathematics":     CategorySciences,
	"Biology":         CategorySciences,
	"Chemistry":       CategorySciences,
	"Physics":         CategorySciences,
	"General Science": CategorySciences,

	"English":             CategoryLanguages,
	"Kiswahili":           CategoryLanguages,
	"French":              CategoryLanguages,
	"German":              CategoryLanguages,
	"Arabic":              CategoryLanguages,
	"Kenya Sign Language": CategoryLanguages,

	"History and Government":        CategoryHumanities,
	"History":                       CategoryHumanities,
	"Geography":                     CategoryHumanities,
	"Christian Religious Education": CategoryHumanities,
	"Islamic Religious Education":   CategoryHumanities,
	"Hindu Religious Education":     CategoryHumanities,
	"CRE":                           CategoryHumanities,
	"IRE":                           CategoryHumanities,
	"HRE":                           CategoryHumanities,

	"Business Studies": CategoryCommerce,
	"Commerce":         CategoryCommerce,
	"Accounting":       CategoryCommerce,
	"Economics":        CategoryCommerce,

	"Computer Studies":      CategoryTechnical,
	"Agriculture":           CategoryTechnical,
	"Home Science":          CategoryTechnical,
	"Woodwork":              CategoryTechnical,
	"Metalwork":             CategoryTechnical,
	"Building Construction": CategoryTechnical,
	"Power Mechanics":       CategoryTechnical,
	"Electricity":           CategoryTechnical,
	"Drawing and Design":    CategoryTechnical,
	"Aviation Technology":   CategoryTechnical,

	"Art and Design": CategoryCreativeArts,
	"Music":          CategoryCreativeArts,
}

// SubjectCategory returns the category of an exactly named subject, or
// CategoryOther.
func SubjectCategory(subject string) string {
	if c, ok := subjectCategories[strings.TrimSpace(subject)]; ok {
		return c
	}
	return CategoryOther
}

type categoryTotal struct {
	name   string
	points int
	count  int
}

func (c categoryTotal) mean() float64 {
	return float64(c.points) / float64(c.count)
}

// Strengths ranks subject categories by mean grade points and returns at most
// three of them. Equal means keep the order in which the categories first
// appear in subjects.
func Strengths(subjects []SubjectResult) []string {
	var totals []categoryTotal
	index := make(map[string]int)

	for _, s := range subjects {
		cat := SubjectCategory(s.Subject)
		i, ok := index[cat]
		if !ok {
			i = len(totals)
			index[cat] = i
			totals = append(totals, categoryTotal{name: cat})
		}
		totals[i].points += grading.Points(s.Grade)
		totals[i].count++
	}

	sort.SliceStable(totals, func(i, j int) bool {
		return totals[i].mean() > totals[j].mean()
	})

	if len(totals) > maxStrengths {
		totals = totals[:maxStrengths]
	}

	out := make([]string, 0, len(totals))
	for _, t := range totals {
		out = append(out, t.name)
	}
	return out
}
