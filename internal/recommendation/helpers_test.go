package recommendation

import (
	"fmt"

	"career-workers/internal/common/logger"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

// sevenSubjects returns a full result set at the given grade with any
// overrides applied by subject name.
func sevenSubjects(grade string, overrides map[string]string) []SubjectResult {
	names := []string{"Mathematics", "English", "Kiswahili", "Biology", "Chemistry", "Physics", "History and Government"}
	out := make([]SubjectResult, 0, len(names))
	for _, n := range names {
		g := grade
		if o, ok := overrides[n]; ok {
			g = o
		}
		out = append(out, SubjectResult{Subject: n, Grade: g})
	}
	return out
}

func student(meanGrade string, subjects []SubjectResult) StudentRecord {
	return StudentRecord{Year: 2023, MeanGrade: meanGrade, MeanPoints: 0, Subjects: subjects}
}

func observedLogger() (logger.Logger, *observer.ObservedLogs) {
	core, logs := observer.New(zapcore.DebugLevel)
	return logger.NewZapAdapter(zap.New(core)), logs
}

// generatedCatalog builds a deterministic catalog covering every demand tier,
// minimum grade and a mix of required grades.
func generatedCatalog(n int) []Career {
	demands := []string{DemandVeryHigh, DemandHigh, DemandMedium, DemandLow, ""}
	subjects := []string{"Mathematics", "Physics", "Chemistry", "Biology", "English", "Geography", "Music"}

	out := make([]Career, 0, n)
	for i := 0; i < n; i++ {
		keys := []string{subjects[i%len(subjects)], subjects[(i*3+1)%len(subjects)]}
		c := Career{
			ID:               fmt.Sprintf("career-%03d", i),
			Title:            fmt.Sprintf("Career %d", i),
			MinimumMeanGrade: gradeSymbols()[(i*5)%12],
			KeySubjects:      keys,
			MarketDemand:     demands[i%len(demands)],
		}
		if i%3 == 0 {
			c.RequiredGrades = map[string]string{keys[0]: gradeSymbols()[(i*7)%12]}
		}
		out = append(out, c)
	}
	return out
}

func gradeSymbols() []string {
	return []string{"A", "A-", "B+", "B", "B-", "C+", "C", "C-", "D+", "D", "D-", "E"}
}
