// internal/workers/career/search-careers/handler.go
package searchcareers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"career-workers/internal/common/camunda"
	apperrors "career-workers/internal/common/errors"
	"career-workers/internal/common/logger"
	"career-workers/internal/workers/career/search-careers/queries"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/elastic/go-elasticsearch/v8"
)

const (
	TaskType  = "search-careers"
	queryType = "career_search"
)

type Handler struct {
	config   *Config
	client   *elasticsearch.Client
	reporter *camunda.Reporter
	logger   logger.Logger
}

func NewHandler(config *Config, client *elasticsearch.Client, reporter *camunda.Reporter, log logger.Logger) *Handler {
	return &Handler{
		config:   config,
		client:   client,
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
		h.reporter.Fail(client, job, timer, apperrors.NewBusinessRuleError("Invalid search input", fmt.Sprintf("parse input: %v", err)))
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
	q := queries.CareerQuery{
		Index:        h.config.Index,
		Text:         input.Query,
		Category:     input.Category,
		MarketDemand: input.MarketDemand,
		EligibleFor:  input.EligibleFor,
		From:         input.Pagination.From,
		Size:         input.Pagination.Size,
	}

	result, err := queries.Execute(ctx, h.client, q)
	if err != nil {
		return nil, h.mapError(ctx, err)
	}

	h.logger.Info("career search completed", map[string]interface{}{
		"query":     input.Query,
		"totalHits": result.TotalHits,
		"returned":  len(result.Hits),
		"took":      result.Took,
	})

	return &Output{
		Careers:   result.Hits,
		TotalHits: result.TotalHits,
		MaxScore:  result.MaxScore,
		Took:      result.Took,
	}, nil
}

func (h *Handler) mapError(ctx context.Context, err error) error {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded), errors.Is(err, context.DeadlineExceeded):
		return apperrors.NewSearchTimeoutError(queryType)
	case errors.Is(err, queries.ErrIndexNotFound), errors.Is(err, queries.ErrMissingIndex):
		return apperrors.NewIndexNotFoundError(h.config.Index)
	case errors.Is(err, queries.ErrUnknownMeanGrade):
		return apperrors.NewBusinessRuleError("Invalid search input", err.Error())
	default:
		return apperrors.NewSearchQueryFailedError(queryType, err)
	}
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
