// internal/workers/communication/send-recommendation-notification/handler.go
package sendrecommendationnotification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"career-workers/internal/common/camunda"
	apperrors "career-workers/internal/common/errors"
	"career-workers/internal/common/logger"
	"career-workers/internal/common/validation"
	"career-workers/internal/recommendation"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ses"
	"github.com/aws/aws-sdk-go-v2/service/ses/types"
	"github.com/aws/aws-sdk-go-v2/service/sns"
	snstypes "github.com/aws/aws-sdk-go-v2/service/sns/types"
	"github.com/camunda/zeebe/clients/go/v8/pkg/entities"
	"github.com/camunda/zeebe/clients/go/v8/pkg/worker"
	"github.com/google/uuid"
)

const (
	TaskType = "send-recommendation-notification"
)

// Define interfaces for mocking
type SESService interface {
	SendEmail(ctx context.Context, params *ses.SendEmailInput, optFns ...func(*ses.Options)) (*ses.SendEmailOutput, error)
}

type SNSService interface {
	Publish(ctx context.Context, params *sns.PublishInput, optFns ...func(*sns.Options)) (*sns.PublishOutput, error)
}

// RunReader loads stored recommendation runs.
type RunReader interface {
	Get(ctx context.Context, id string) (*recommendation.Run, error)
}

// CareerLookup resolves catalog entries for display.
type CareerLookup interface {
	Career(ctx context.Context, id string) (*recommendation.Career, error)
}

type Handler struct {
	config    *Config
	sesClient SESService
	snsClient SNSService
	runs      RunReader
	careers   CareerLookup
	reporter  *camunda.Reporter
	logger    logger.Logger
}

func NewHandler(config *Config, sesClient SESService, snsClient SNSService, runs RunReader, careers CareerLookup, reporter *camunda.Reporter, log logger.Logger) *Handler {
	return &Handler{
		config:    config,
		sesClient: sesClient,
		snsClient: snsClient,
		runs:      runs,
		careers:   careers,
		reporter:  reporter,
		logger:    log.WithFields(map[string]interface{}{"taskType": TaskType}),
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
		h.reporter.Fail(client, job, timer, apperrors.NewBusinessRuleError("Invalid notification input", fmt.Sprintf("parse input: %v", err)))
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
	if err := validateInput(input); err != nil {
		return nil, err
	}

	run, err := h.runs.Get(ctx, input.RunID)
	if errors.Is(err, recommendation.ErrRunNotFound) {
		return nil, apperrors.NewResourceNotFoundError("recommendation_runs", fmt.Sprintf("runId: %s", input.RunID))
	}
	if err != nil {
		return nil, apperrors.NewDatabaseConnectionFailedError(err)
	}

	msg, err := render(h.messageData(ctx, input, run))
	if err != nil {
		return nil, apperrors.NewBusinessRuleError("Notification could not be rendered", err.Error())
	}

	output := &Output{
		NotificationID: uuid.New().String(),
		Status:         StatusDisabled,
		Channels:       []string{},
		SentAt:         time.Now().UTC().Format(time.RFC3339),
	}

	var failures []error
	if h.config.EmailEnabled && input.Email != "" {
		if err := h.sendEmail(ctx, input.Email, msg); err != nil {
			h.logger.Error("email send failed", map[string]interface{}{
				"error": err,
				"runId": input.RunID,
			})
			failures = append(failures, apperrors.NewNotificationSendFailedError(ChannelEmail, err))
		} else {
			output.Channels = append(output.Channels, ChannelEmail)
		}
	}

	if h.config.SMSEnabled && input.Phone != "" {
		if err := h.sendSMS(ctx, input.Phone, msg.SMS); err != nil {
			h.logger.Error("SMS send failed", map[string]interface{}{
				"error": err,
				"runId": input.RunID,
			})
			failures = append(failures, apperrors.NewNotificationSendFailedError(ChannelSMS, err))
		} else {
			output.Channels = append(output.Channels, ChannelSMS)
		}
	}

	switch {
	case len(failures) > 0 && len(output.Channels) == 0:
		return nil, failures[0]
	case len(failures) > 0:
		output.Status = StatusPartial
	case len(output.Channels) > 0:
		output.Status = StatusSent
	}

	h.logger.Info("recommendation notification processed", map[string]interface{}{
		"runId":    input.RunID,
		"status":   output.Status,
		"channels": output.Channels,
	})
	return output, nil
}

func validateInput(input *Input) error {
	if input.RunID == "" {
		return apperrors.NewBusinessRuleError("Invalid notification input", "runId is required")
	}
	if input.Email == "" && input.Phone == "" {
		return apperrors.NewBusinessRuleError("Invalid notification input", "email or phone is required")
	}
	if input.Email != "" && !validation.ValidateEmail(input.Email) {
		return apperrors.NewBusinessRuleError("Invalid notification input", fmt.Sprintf("invalid email: %s", input.Email))
	}
	if input.Phone != "" && !validation.ValidatePhone(input.Phone) {
		return apperrors.NewBusinessRuleError("Invalid notification input", fmt.Sprintf("invalid phone: %s", input.Phone))
	}
	return nil
}

// messageData names the top matches. A career that can no longer be
// resolved is shown by id.
func (h *Handler) messageData(ctx context.Context, input *Input, run *recommendation.Run) messageData {
	data := messageData{
		RunID:       run.ID,
		StudentName: input.StudentName,
		MeanGrade:   run.Student.MeanGrade,
		Strengths:   run.Strengths,
	}

	top := run.Matches
	if h.config.TopN > 0 && len(top) > h.config.TopN {
		top = top[:h.config.TopN]
	}
	for _, m := range top {
		title := m.CareerID
		if c, err := h.careers.Career(ctx, m.CareerID); err == nil {
			title = c.Title
		} else {
			h.logger.Warn("career lookup failed", map[string]interface{}{
				"careerId": m.CareerID,
				"error":    err,
			})
		}
		data.Careers = append(data.Careers, messageCareer{Title: title, Match: m.Match})
	}
	return data
}

func (h *Handler) sendEmail(ctx context.Context, to string, msg *rendered) error {
	_, err := h.sesClient.SendEmail(ctx, &ses.SendEmailInput{
		Destination: &types.Destination{
			ToAddresses: []string{to},
		},
		Message: &types.Message{
			Subject: &types.Content{Data: aws.String(msg.Subject)},
			Body: &types.Body{
				Text: &types.Content{Data: aws.String(msg.Text)},
				Html: &types.Content{Data: aws.String(msg.HTML)},
			},
		},
		Source: aws.String(h.config.FromEmail),
	})
	return err
}

func (h *Handler) sendSMS(ctx context.Context, to, message string) error {
	input := &sns.PublishInput{
		PhoneNumber: aws.String(to),
		Message:     aws.String(message),
	}
	if h.config.SenderID != "" {
		input.MessageAttributes = map[string]snstypes.MessageAttributeValue{
			"AWS.SNS.SMS.SenderID": {DataType: aws.String("String"), StringValue: aws.String(h.config.SenderID)},
		}
	}
	_, err := h.snsClient.Publish(ctx, input)
	return err
}

func (h *Handler) Execute(ctx context.Context, input *Input) (*Output, error) {
	return h.execute(ctx, input)
}
