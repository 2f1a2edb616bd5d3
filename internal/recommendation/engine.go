// internal/recommendation/engine.go
package recommendation

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"

	"career-workers/internal/common/grading"
	"career-workers/internal/common/logger"

	"golang.org/x/sync/errgroup"
)

var (
	ErrInsufficientSubjects = errors.New("insufficient subjects")
	ErrUnknownGrade         = errors.New("unknown grade symbol")
	ErrCatalogUnavailable   = errors.New("career catalog unavailable")
)

// CatalogSource supplies an immutable catalog snapshot.
type CatalogSource interface {
	Snapshot(ctx context.Context) ([]Career, error)
}

// Options configures an Engine.
type Options struct {
	// StrictGrades rejects students with unknown grade symbols and skips
	// careers that carry them. Otherwise unknown symbols score 0 and are
	// only logged.
	StrictGrades bool
	// ParallelThreshold is the catalog size from which scoring is spread
	// over goroutines. Zero keeps scoring sequential.
	ParallelThreshold int
	// Workers bounds the scoring goroutines. Defaults to GOMAXPROCS.
	Workers int
}

// Engine ranks a career catalog for a student.
type Engine struct {
	opts   Options
	logger logger.Logger
}

func NewEngine(opts Options, log logger.Logger) *Engine {
	if opts.Workers <= 0 {
		opts.Workers = runtime.GOMAXPROCS(0)
	}
	return &Engine{opts: opts, logger: log}
}

// Validate checks the preconditions for scoring a student.
func (e *Engine) Validate(student StudentRecord) error {
	if len(student.Subjects) < MinimumSubjects {
		return fmt.Errorf("%w: got %d, need at least %d", ErrInsufficientSubjects, len(student.Subjects), MinimumSubjects)
	}
	return e.checkStudentGrades(student)
}

// Recommend scores every career in catalog, keeps those at or above
// MatchCutoff and orders them best first. Careers with equal matches keep
// their catalog order. The catalog is not modified.
func (e *Engine) Recommend(ctx context.Context, student StudentRecord, catalog []Career) (*Result, error) {
	if err := e.Validate(student); err != nil {
		return nil, err
	}
	return e.rank(ctx, student, catalog)
}

// RecommendFrom validates the student before loading the catalog from src,
// so rejected records never touch the catalog store. The snapshot is
// returned with the result for callers that need display fields.
func (e *Engine) RecommendFrom(ctx context.Context, student StudentRecord, src CatalogSource) (*Result, []Career, error) {
	if err := e.Validate(student); err != nil {
		return nil, nil, err
	}
	catalog, err := src.Snapshot(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%w: %w", ErrCatalogUnavailable, err)
	}
	result, err := e.rank(ctx, student, catalog)
	if err != nil {
		return nil, nil, err
	}
	return result, catalog, nil
}

func (e *Engine) rank(ctx context.Context, student StudentRecord, catalog []Career) (*Result, error) {
	scores, err := e.scoreAll(ctx, student, catalog)
	if err != nil {
		return nil, err
	}

	type survivor struct {
		career *Career
		match  int
	}
	var survivors []survivor
	for i := range catalog {
		if scores[i] >= MatchCutoff {
			survivors = append(survivors, survivor{career: &catalog[i], match: scores[i]})
		}
	}
	sort.SliceStable(survivors, func(i, j int) bool {
		return survivors[i].match > survivors[j].match
	})

	matches := make([]MatchResult, 0, len(survivors))
	for _, s := range survivors {
		matches = append(matches, MatchResult{
			CareerID: s.career.ID,
			Match:    s.match,
			Reasons:  Reasons(student, *s.career, s.match),
		})
	}

	return &Result{
		Strengths: Strengths(student.Subjects),
		Matches:   matches,
	}, nil
}

// Match scores a single career. It applies the same grade checks as
// Recommend but not the subject count or the cutoff.
func (e *Engine) Match(student StudentRecord, career Career) (MatchResult, error) {
	if err := e.checkStudentGrades(student); err != nil {
		return MatchResult{}, err
	}
	if unknown := careerUnknownGrades(career); len(unknown) > 0 {
		e.warnCareer(career, unknown)
		if e.opts.StrictGrades {
			return MatchResult{}, fmt.Errorf("%w: career %s: %v", ErrUnknownGrade, career.ID, unknown)
		}
	}

	match := Score(student, career)
	return MatchResult{
		CareerID: career.ID,
		Match:    match,
		Reasons:  Reasons(student, career, match),
	}, nil
}

// Profile returns the student's strongest subject categories, applying the
// same grade checks as Match.
func (e *Engine) Profile(student StudentRecord) ([]string, error) {
	if err := e.checkStudentGrades(student); err != nil {
		return nil, err
	}
	return Strengths(student.Subjects), nil
}

// scoreAll returns one score per catalog entry, indexed like catalog. Skipped
// careers score -1. Careers with unknown grade symbols are reported in a
// single warning per call.
func (e *Engine) scoreAll(ctx context.Context, student StudentRecord, catalog []Career) ([]int, error) {
	scores := make([]int, len(catalog))
	flagged := make([]bool, len(catalog))

	if e.opts.ParallelThreshold <= 0 || len(catalog) < e.opts.ParallelThreshold {
		for i := range catalog {
			scores[i], flagged[i] = e.scoreOne(student, catalog[i])
		}
		e.warnCatalog(catalog, flagged)
		return scores, nil
	}

	chunk := (len(catalog) + e.opts.Workers - 1) / e.opts.Workers
	g, gctx := errgroup.WithContext(ctx)
	for start := 0; start < len(catalog); start += chunk {
		start, end := start, min(start+chunk, len(catalog))
		g.Go(func() error {
			for i := start; i < end; i++ {
				if err := gctx.Err(); err != nil {
					return err
				}
				scores[i], flagged[i] = e.scoreOne(student, catalog[i])
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	e.warnCatalog(catalog, flagged)
	return scores, nil
}

// scoreOne also reports whether the career carries unknown grade symbols.
func (e *Engine) scoreOne(student StudentRecord, career Career) (int, bool) {
	if len(careerUnknownGrades(career)) > 0 {
		if e.opts.StrictGrades {
			return -1, true
		}
		return Score(student, career), true
	}
	return Score(student, career), false
}

func (e *Engine) warnCatalog(catalog []Career, flagged []bool) {
	var ids []string
	for i, bad := range flagged {
		if bad {
			ids = append(ids, catalog[i].ID)
		}
	}
	if len(ids) == 0 {
		return
	}
	e.logger.Warn("unknown grade symbols in career records", map[string]interface{}{
		"careerIds": ids,
		"count":     len(ids),
		"skipped":   e.opts.StrictGrades,
	})
}

func (e *Engine) checkStudentGrades(student StudentRecord) error {
	unknown := studentUnknownGrades(student)
	if len(unknown) == 0 {
		return nil
	}

	e.logger.Warn("unknown grade symbol in student record", map[string]interface{}{
		"fields": unknown,
		"strict": e.opts.StrictGrades,
	})
	if e.opts.StrictGrades {
		return fmt.Errorf("%w: %v", ErrUnknownGrade, unknown)
	}
	return nil
}

func (e *Engine) warnCareer(career Career, unknown []string) {
	e.logger.Warn("unknown grade symbol in career record", map[string]interface{}{
		"careerId": career.ID,
		"fields":   unknown,
		"skipped":  e.opts.StrictGrades,
	})
}

func studentUnknownGrades(student StudentRecord) []string {
	var unknown []string
	if !grading.Known(student.MeanGrade) {
		unknown = append(unknown, fmt.Sprintf("meanGrade=%q", student.MeanGrade))
	}
	for _, s := range student.Subjects {
		if !grading.Known(s.Grade) {
			unknown = append(unknown, fmt.Sprintf("%s=%q", s.Subject, s.Grade))
		}
	}
	return unknown
}

func careerUnknownGrades(career Career) []string {
	var unknown []string
	if !grading.Known(career.MinimumMeanGrade) {
		unknown = append(unknown, fmt.Sprintf("minimumMeanGrade=%q", career.MinimumMeanGrade))
	}
	subjects := make([]string, 0, len(career.RequiredGrades))
	for subject := range career.RequiredGrades {
		subjects = append(subjects, subject)
	}
	sort.Strings(subjects)
	for _, subject := range subjects {
		if g := career.RequiredGrades[subject]; !grading.Known(g) {
			unknown = append(unknown, fmt.Sprintf("requiredGrades[%s]=%q", subject, g))
		}
	}
	return unknown
}
