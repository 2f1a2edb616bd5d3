// internal/common/camunda/jobs.go
package camunda

import (
	"context"
	"sync"
	"time"

	apperrors "career-workers/internal/common/errors"
	"career-workers/internal/common/logger"
	"career-workers/internal/common/metrics"
	"career-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

const (
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// commandTimeout bounds the complete/fail round trip to the gateway. It is
// independent of the job's own execution timeout, which may already have
// expired when a failure is reported.
const commandTimeout = 5 * time.Second

// Reporter closes out jobs: it completes or fails them against the gateway
// and records the outcome in Prometheus and OpenTelemetry.
type Reporter struct {
	errors  *apperrors.ErrorHandler
	obs     *observability.Observability
	tracing *observability.Tracing
	logger  logger.Logger

	mu          sync.RWMutex
	retryLimits map[string]int
}

// NewReporter builds a Reporter. obs may be nil.
func NewReporter(obs *observability.Observability, log logger.Logger) *Reporter {
	return &Reporter{
		errors:      apperrors.NewErrorHandler(log),
		obs:         obs,
		logger:      log,
		retryLimits: make(map[string]int),
	}
}

// LimitRetries caps the retries a failed job of taskType is handed back
// with. A limit of 0 or less removes the cap.
func (r *Reporter) LimitRetries(taskType string, limit int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if limit <= 0 {
		delete(r.retryLimits, taskType)
		return
	}
	r.retryLimits[taskType] = limit
}

// RetryLimit returns the cap for taskType, 0 when there is none.
func (r *Reporter) RetryLimit(taskType string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.retryLimits[taskType]
}

// WithTracing makes Span record job spans on t.
func (r *Reporter) WithTracing(t *observability.Tracing) *Reporter {
	r.tracing = t
	return r
}

// Span opens the span covering a job's execution.
func (r *Reporter) Span(ctx context.Context, job entities.Job) (context.Context, trace.Span) {
	return r.tracing.Start(ctx, job.Type,
		attribute.Int64("zeebe.job_key", job.Key),
		attribute.Int64("zeebe.process_instance_key", job.ProcessInstanceKey),
	)
}

// Start marks a job as active for the given task type.
func (r *Reporter) Start(taskType string) *metrics.JobTimer {
	return metrics.StartJob(taskType)
}

// Complete sends output as the job's result variables.
func (r *Reporter) Complete(client worker.JobClient, job entities.Job, timer *metrics.JobTimer, output interface{}) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	cmd, err := client.NewCompleteJobCommand().
		JobKey(job.Key).
		VariablesFromObject(output)
	if err != nil {
		r.logger.Error("failed to create complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err,
		})
		r.Fail(client, job, timer, apperrors.NewBusinessRuleError("Job output could not be encoded", err.Error()))
		return
	}

	_, err = cmd.Send(ctx)
	if err != nil {
		r.logger.Error("failed to send complete job command", map[string]interface{}{
			"jobKey": job.Key,
			"error":  err,
		})
	}
	r.recordCompletion(ctx, job, timer, err)
}

// recordCompletion counts a job whose result could not be delivered to the
// gateway as failed.
func (r *Reporter) recordCompletion(ctx context.Context, job entities.Job, timer *metrics.JobTimer, sendErr error) {
	if sendErr != nil {
		elapsed := timer.Done(string(apperrors.ErrCodeExternalService))
		r.obs.RecordJob(ctx, job.Type, StatusFailed, elapsed)
		return
	}
	elapsed := timer.Done("")
	r.obs.RecordJob(ctx, job.Type, StatusCompleted, elapsed)
}

// Fail reports err through the error handler: retryable codes fail the job
// with retries left, everything else raises a BPMN error.
func (r *Reporter) Fail(client worker.JobClient, job entities.Job, timer *metrics.JobTimer, err error) {
	ctx, cancel := context.WithTimeout(context.Background(), commandTimeout)
	defer cancel()

	stdErr := apperrors.Normalize(err)
	r.errors.HandleJobError(ctx, client, job, stdErr, r.RetryLimit(job.Type))

	elapsed := timer.Done(string(stdErr.Code))
	r.obs.RecordJob(ctx, job.Type, StatusFailed, elapsed)
}
