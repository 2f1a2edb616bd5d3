// internal/workers/career/calculate-match-score/handler.go
package calculatematchscore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"career-workers/internal/catalog"
	"career-workers/internal/common/camunda"
	apperrors "career-workers/internal/common/errors"
	"career-workers/internal/common/logger"
	"career-workers/internal/common/metrics"
	"career-workers/internal/recommendation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "calculate-career-match"
)

var (
	ErrCareerRequired = errors.New("career or careerId is required")
)

// CareerLookup resolves a catalog entry by id.
type CareerLookup interface {
	Career(ctx context.Context, id string) (*recommendation.Career, error)
}

type Handler struct {
	config   *Config
	engine   *recommendation.Engine
	careers  CareerLookup
	reporter *camunda.Reporter
	logger   logger.Logger
}

func NewHandler(config *Config, engine *recommendation.Engine, careers CareerLookup, reporter *camunda.Reporter, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		engine:   engine,
		careers:  careers,
		reporter: reporter,
		logger:   log.WithFields(map[string]interface{}{"taskType": TaskType}),
	}
}

func (h *Handler) Handle(client worker.JobClient, job entities.Job) {
	timer := h.reporter.Start(TaskType)
	h.logger.Info("processing job", map[string]interface{}{
		"jobKey":      job.Key,
		"workflowKey": job.ProcessInstanceKey,
	})

	var input Input
	if err := json.Unmarshal([]byte(job.Variables), &input); err != nil {
		h.reporter.Fail(client, job, timer, apperrors.NewStudentValidationFailedError(fmt.Sprintf("parse input: %v", err)))
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), h.config.Timeout)
	defer cancel()

	ctx, span := h.reporter.Span(ctx, job)
	defer span.End()

	output, err := h.execute(ctx, &input)
	if err != nil {
		span.RecordError(err)
		h.reporter.Fail(client, job, timer, err)
		return
	}

	h.reporter.Complete(client, job, timer, output)
}

func (h *Handler) execute(ctx context.Context, input *Input) (*Output, error) {
	student, err := recommendation.DecodeStudent(input.Student)
	if err != nil {
		return nil, mapError(err, input.CareerID)
	}

	career, err := h.resolveCareer(ctx, input)
	if err != nil {
		return nil, mapError(err, input.CareerID)
	}

	match, err := h.engine.Match(student, *career)
	if err != nil {
		return nil, mapError(err, career.ID)
	}
	metrics.CareerMatchScore.Observe(float64(match.Match))

	h.logger.Info("match score calculated", map[string]interface{}{
		"careerId": career.ID,
		"score":    match.Match,
	})

	return &Output{
		CareerID:    career.ID,
		MatchScore:  match.Match,
		Reasons:     match.Reasons,
		AboveCutoff: match.Match >= recommendation.MatchCutoff,
	}, nil
}

func (h *Handler) resolveCareer(ctx context.Context, input *Input) (*recommendation.Career, error) {
	if len(input.Career) > 0 && string(input.Career) != "null" {
		career, err := recommendation.DecodeCareer(input.Career)
		if err != nil {
			return nil, err
		}
		return &career, nil
	}
	if input.CareerID == "" {
		return nil, ErrCareerRequired
	}
	return h.careers.Career(ctx, input.CareerID)
}

func mapError(err error, careerID string) error {
	switch {
	case errors.Is(err, recommendation.ErrInvalidStudent):
		return apperrors.NewStudentValidationFailedError(err.Error())
	case errors.Is(err, recommendation.ErrInvalidCareer), errors.Is(err, ErrCareerRequired):
		return apperrors.NewBusinessRuleError("Invalid career input", err.Error())
	case errors.Is(err, recommendation.ErrUnknownGrade):
		return apperrors.NewUnknownGradeSymbolError(err.Error())
	case errors.Is(err, catalog.ErrNotFound):
		return apperrors.NewCareerNotFoundError(careerID)
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.NewTimeoutError(TaskType, err)
	default:
		return apperrors.NewCatalogLoadFailedError(err)
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
