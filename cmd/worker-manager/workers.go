// cmd/worker-manager/workers.go
package main

import (
	"context"
	"fmt"
	"time"

	"career-workers/internal/catalog"
	awsclients "career-workers/internal/common/aws"
	"career-workers/internal/common/camunda"
	"career-workers/internal/common/config"
	"career-workers/internal/common/database"
	"career-workers/internal/common/logger"
	"career-workers/internal/common/observability"
	"career-workers/internal/recommendation"
	"career-workers/pkg/registry"

	cms "career-workers/internal/workers/career/calculate-match-score"
	gr "career-workers/internal/workers/career/generate-recommendations"
	ps "career-workers/internal/workers/career/profile-strengths"
	sc "career-workers/internal/workers/career/search-careers"
	srn "career-workers/internal/workers/communication/send-recommendation-notification"
)

type dependencies struct {
	conns    *database.Connections
	engine   *recommendation.Engine
	catalog  *catalog.Repository
	runs     *recommendation.Store
	aws      *awsclients.Clients
	reporter *camunda.Reporter
	logger   logger.Logger
}

func newDependencies(ctx context.Context, cfg *config.Config, conns *database.Connections, obs *observability.Observability, tracing *observability.Tracing, log logger.Logger) (*dependencies, error) {
	clients, err := awsclients.NewClients(ctx, cfg.Notifications.AWS.Region)
	if err != nil {
		return nil, err
	}

	return &dependencies{
		conns: conns,
		engine: recommendation.NewEngine(recommendation.Options{
			StrictGrades:      cfg.Scoring.StrictGrades,
			ParallelThreshold: cfg.Scoring.ParallelThreshold,
		}, log),
		catalog:  catalog.NewRepository(catalog.NewPostgres(conns.DB), conns.Redis, cfg.Scoring.CacheTTL(), log),
		runs:     recommendation.NewStore(conns.DB),
		aws:      clients,
		reporter: camunda.NewReporter(obs, log).WithTracing(tracing),
		logger:   log,
	}, nil
}

// workerSpec builds a handler once its timeout is known.
type workerSpec struct {
	taskType string
	handler  func(timeout time.Duration) camunda.JobHandler
}

func buildWorkers(cfg *config.Config, d *dependencies) []workerSpec {
	return []workerSpec{
		{
			taskType: gr.TaskType,
			handler: func(timeout time.Duration) camunda.JobHandler {
				c := gr.LoadConfig()
				c.Timeout = timeout
				return gr.NewHandler(c, d.engine, d.catalog, d.runs, d.reporter, d.logger)
			},
		},
		{
			taskType: cms.TaskType,
			handler: func(timeout time.Duration) camunda.JobHandler {
				return cms.NewHandler(&cms.Config{Timeout: timeout}, d.engine, d.catalog, d.reporter, d.logger)
			},
		},
		{
			taskType: ps.TaskType,
			handler: func(timeout time.Duration) camunda.JobHandler {
				return ps.NewHandler(&ps.Config{Timeout: timeout}, d.engine, d.reporter, d.logger)
			},
		},
		{
			taskType: sc.TaskType,
			handler: func(timeout time.Duration) camunda.JobHandler {
				return sc.NewHandler(&sc.Config{Timeout: timeout, Index: cfg.Search.Index}, d.conns.Search, d.reporter, d.logger)
			},
		},
		{
			taskType: srn.TaskType,
			handler: func(timeout time.Duration) camunda.JobHandler {
				c := srn.LoadConfig()
				c.Timeout = timeout
				c.EmailEnabled = cfg.Notifications.Email.Enabled
				c.FromEmail = cfg.Notifications.Email.FromEmail
				c.SMSEnabled = cfg.Notifications.SMS.Enabled
				c.SenderID = cfg.Notifications.SMS.SenderID
				return srn.NewHandler(c, d.aws.SES, d.aws.SNS, d.runs, d.catalog, d.reporter, d.logger)
			},
		},
	}
}

// workerOptions resolves the subscription settings for a task type. An
// enabled worker must be listed in the activity registry; its registry
// timeout and retries apply when the config leaves them unset.
func workerOptions(cfg *config.Config, reg *registry.ActivityRegistry, taskType string) (camunda.WorkerOptions, bool, error) {
	if !config.IsWorkerEnabled(cfg, taskType) {
		return camunda.WorkerOptions{}, false, nil
	}

	activity, err := reg.ByTaskType(taskType)
	if err != nil {
		return camunda.WorkerOptions{}, false, fmt.Errorf("enabled worker missing from activity registry: %w", err)
	}

	wcfg := config.GetWorkerConfig(cfg, taskType)
	maxRetries := wcfg.MaxRetries
	if maxRetries == 0 {
		maxRetries = activity.Retries
	}
	return camunda.WorkerOptions{
		TaskType:      taskType,
		MaxJobsActive: wcfg.MaxJobsActive,
		Timeout:       config.ResolveTimeout(wcfg, activity.TimeoutDuration()),
		MaxRetries:    maxRetries,
	}, true, nil
}
