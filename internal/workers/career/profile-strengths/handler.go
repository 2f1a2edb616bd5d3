// internal/workers/career/profile-strengths/handler.go
package profilestrengths

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"career-workers/internal/common/camunda"
	apperrors "career-workers/internal/common/errors"
	"career-workers/internal/common/logger"
	"career-workers/internal/recommendation"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
)

const (
	TaskType = "profile-student-strengths"
)

type Handler struct {
	config   *Config
	engine   *recommendation.Engine
	reporter *camunda.Reporter
	logger   logger.Logger
}

func NewHandler(config *Config, engine *recommendation.Engine, reporter *camunda.Reporter, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		engine:   engine,
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

func (h *Handler) execute(_ context.Context, input *Input) (*Output, error) {
	student, err := recommendation.DecodeStudent(input.Student)
	if err != nil {
		return nil, apperrors.NewStudentValidationFailedError(err.Error())
	}

	strengths, err := h.engine.Profile(student)
	if err != nil {
		if errors.Is(err, recommendation.ErrUnknownGrade) {
			return nil, apperrors.NewUnknownGradeSymbolError(err.Error())
		}
		return nil, err
	}

	categories := make(map[string]string, len(student.Subjects))
	for _, s := range student.Subjects {
		categories[s.Subject] = recommendation.SubjectCategory(s.Subject)
	}

	h.logger.Debug("strengths profiled", map[string]interface{}{
		"subjects":  len(student.Subjects),
		"strengths": strengths,
	})

	return &Output{
		Strengths:  strengths,
		Categories: categories,
	}, nil
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
