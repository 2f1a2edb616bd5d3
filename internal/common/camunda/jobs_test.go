package camunda

import (
	"context"
	"errors"
	"testing"

	apperrors "career-workers/internal/common/errors"
	"career-workers/internal/common/logger"
	"career-workers/internal/common/metrics"
	"career-workers/internal/common/observability"

	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/pb"
	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/attribute"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/sdk/trace/tracetest"
)

func testJob() entities.Job {
	return entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:                2251799813685249,
		Type:               "calculate-career-match",
		ProcessInstanceKey: 2251799813685100,
		Variables:          `{}`,
	}}
}

func TestReporter_Span(t *testing.T) {
	recorder := tracetest.NewSpanRecorder()
	tracing := observability.NewTracingWithOptions("career-workers-test", sdktrace.WithSpanProcessor(recorder))
	defer tracing.Shutdown(context.Background())

	reporter := NewReporter(nil, logger.NewTestLogger(t)).WithTracing(tracing)

	ctx, span := reporter.Span(context.Background(), testJob())
	assert.True(t, span.SpanContext().IsValid())
	span.End()
	assert.NotNil(t, ctx)

	ended := recorder.Ended()
	require.Len(t, ended, 1)
	assert.Equal(t, "calculate-career-match", ended[0].Name())
	assert.Contains(t, ended[0].Attributes(), attribute.Int64("zeebe.job_key", 2251799813685249))
	assert.Contains(t, ended[0].Attributes(), attribute.Int64("zeebe.process_instance_key", 2251799813685100))
}

func TestReporter_SpanWithoutTracing(t *testing.T) {
	reporter := NewReporter(nil, logger.NewNoOpLogger())

	_, span := reporter.Span(context.Background(), testJob())
	assert.False(t, span.SpanContext().IsValid())
	span.End()
}

func TestReporter_RetryLimit(t *testing.T) {
	reporter := NewReporter(nil, logger.NewNoOpLogger())
	reporter.LimitRetries("send-recommendation-notification", 1)

	notifyErr := apperrors.NewNotificationSendFailedError("email", errors.New("throttled"))
	bpmnErr := apperrors.ConvertToBPMNError(notifyErr)
	require.Equal(t, 3, bpmnErr.Retries)

	job := entities.Job{ActivatedJob: &pb.ActivatedJob{
		Key:     7,
		Type:    "send-recommendation-notification",
		Retries: 5,
	}}
	assert.Equal(t, 1, reporter.RetryLimit(job.Type))
	assert.Equal(t, int32(1), apperrors.RetriesFor(job, bpmnErr, reporter.RetryLimit(job.Type)))

	// other task types keep the code budget
	assert.Equal(t, 0, reporter.RetryLimit("search-careers"))
	job.Type = "search-careers"
	assert.Equal(t, int32(3), apperrors.RetriesFor(job, bpmnErr, reporter.RetryLimit(job.Type)))

	reporter.LimitRetries("send-recommendation-notification", 0)
	assert.Equal(t, 0, reporter.RetryLimit("send-recommendation-notification"))
}

func counterValue(t *testing.T, c prometheus.Counter) float64 {
	t.Helper()
	var m dto.Metric
	require.NoError(t, c.Write(&m))
	return m.GetCounter().GetValue()
}

func TestReporter_RecordCompletion(t *testing.T) {
	reporter := NewReporter(nil, logger.NewNoOpLogger())

	tests := []struct {
		name          string
		taskType      string
		sendErr       error
		wantCompleted float64
		wantFailed    float64
	}{
		{"delivered", "reporter-test-delivered", nil, 1, 0},
		{"gateway rejected completion", "reporter-test-undelivered", errors.New("rpc error: code = NotFound"), 0, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			job := entities.Job{ActivatedJob: &pb.ActivatedJob{Key: 1, Type: tt.taskType}}
			reporter.recordCompletion(context.Background(), job, metrics.StartJob(tt.taskType), tt.sendErr)

			assert.Equal(t, tt.wantCompleted, counterValue(t, metrics.WorkerJobsCompleted.WithLabelValues(tt.taskType)))
			assert.Equal(t, tt.wantFailed, counterValue(t, metrics.WorkerJobsFailed.WithLabelValues(tt.taskType, string(apperrors.ErrCodeExternalService))))
		})
	}
}
