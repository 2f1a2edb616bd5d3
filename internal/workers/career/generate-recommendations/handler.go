// internal/workers/career/generate-recommendations/handler.go
package generaterecommendations

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"career-workers/internal/common/camunda"
	apperrors "career-workers/internal/common/errors"
	"career-workers/internal/common/logger"
	"career-workers/internal/common/metrics"
	"career-workers/internal/recommendation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "generate-career-recommendations"
)

// RunStore persists recommendation runs.
type RunStore interface {
	Save(ctx context.Context, run *recommendation.Run) error
}

type Handler struct {
	config   *Config
	engine   *recommendation.Engine
	catalog  recommendation.CatalogSource
	runs     RunStore
	reporter *camunda.Reporter
	logger   logger.Logger
}

func NewHandler(config *Config, engine *recommendation.Engine, catalog recommendation.CatalogSource, runs RunStore, reporter *camunda.Reporter, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		engine:   engine,
		catalog:  catalog,
		runs:     runs,
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
		return nil, mapError(err)
	}

	result, catalog, err := h.engine.RecommendFrom(ctx, student, h.catalog)
	if err != nil {
		return nil, mapError(err)
	}

	run := &recommendation.Run{
		StudentID: input.StudentID,
		Student:   student,
		Strengths: result.Strengths,
		Matches:   result.Matches,
	}
	if err := h.runs.Save(ctx, run); err != nil {
		return nil, apperrors.NewRecommendationPersistFailedError(err)
	}

	metrics.RecommendationsReturned.Observe(float64(len(result.Matches)))
	for _, m := range result.Matches {
		metrics.CareerMatchScore.Observe(float64(m.Match))
	}

	response := recommendation.BuildResponse(student, result, catalog, h.config.ResponseLimit)

	h.logger.Info("recommendations generated", map[string]interface{}{
		"runId":        run.ID,
		"studentId":    input.StudentID,
		"catalogSize":  len(catalog),
		"totalMatches": len(result.Matches),
		"returned":     len(response.Recommendations),
		"strengths":    result.Strengths,
	})

	return &Output{
		RunID:           run.ID,
		StudentInfo:     response.StudentInfo,
		Recommendations: response.Recommendations,
		TotalMatches:    len(result.Matches),
	}, nil
}

func mapError(err error) error {
	switch {
	case errors.Is(err, recommendation.ErrInvalidStudent),
		errors.Is(err, recommendation.ErrInsufficientSubjects):
		return apperrors.NewStudentValidationFailedError(err.Error())
	case errors.Is(err, recommendation.ErrUnknownGrade):
		return apperrors.NewUnknownGradeSymbolError(err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		return apperrors.NewTimeoutError(TaskType, err)
	case errors.Is(err, recommendation.ErrCatalogUnavailable):
		return apperrors.NewCatalogLoadFailedError(err)
	default:
		return err
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
