// Package job provides background job processing using Asynq.
//
// Asynq is a Redis-backed job queue:
//   - You enqueue tasks (producer) using asynq.Client.
//   - A server runs workers that process those tasks (consumer) using asynq.Server.
package job

import (
	"context"
	"fmt"

	"github.com/deppfellow/happy/internal/config"
	"github.com/deppfellow/happy/internal/model"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	// Client is used to enqueue tasks into Redis.
	Client *asynq.Client

	server *asynq.Server
	logger *zerolog.Logger

	mailer      orphanageMailer
	notifyEmail string
	publicURL   string
}

// NewJobService creates a JobService configured to use Redis from cfg.
//
// Up to 10 tasks run in parallel, shared across queues by weight:
// critical 6, default 3, low 1.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	redisOpt := asynq.RedisClientOpt{Addr: cfg.Redis.Address}

	j := &JobService{
		Client: asynq.NewClient(redisOpt),
		logger: logger,
	}

	j.server = asynq.NewServer(
		redisOpt,
		asynq.Config{
			Concurrency: 10,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
				retried, _ := asynq.GetRetryCount(ctx)
				maxRetry, _ := asynq.GetMaxRetry(ctx)
				logger.Error().
					Err(err).
					Str("type", task.Type()).
					Int("retry", retried).
					Int("max_retry", maxRetry).
					Msg("Background task failed")
			}),
		},
	)

	return j
}

// Start registers the task handlers and starts the workers. It does not
// block.
func (j *JobService) Start() error {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskOrphanageCreated, j.handleOrphanageCreatedTask)

	j.logger.Info().Msg("Starting background job server")

	if err := j.server.Start(mux); err != nil {
		return err
	}

	return nil
}

// EnqueueOrphanageCreated schedules the registration notice for o.
func (j *JobService) EnqueueOrphanageCreated(ctx context.Context, o *model.Orphanage) error {
	task, err := NewOrphanageCreatedTask(o)
	if err != nil {
		return fmt.Errorf("build %s task: %w", TaskOrphanageCreated, err)
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("enqueue %s task: %w", TaskOrphanageCreated, err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Int64("orphanage_id", o.ID).
		Msg("Enqueued orphanage created task")
	return nil
}

// Stop waits for running tasks and closes the Redis connections.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	j.Client.Close()
}
