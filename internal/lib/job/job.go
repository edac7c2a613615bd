// Package job provides background job processing using Asynq.
//
// Book mutations enqueue a TaskBookEvent; the worker started here consumes
// them and writes an audit log line per event.
package job

import (
	"context"
	"fmt"

	"github.com/deppfellow/bookshelf/internal/config"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
)

// DefaultConcurrency is the worker count when job.concurrency is unset.
const DefaultConcurrency = 10

// JobService holds the Asynq client (enqueue) and server (worker execution).
type JobService struct {
	Client *asynq.Client
	server *asynq.Server
	logger *zerolog.Logger
}

func redisOpt(cfg *config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Address,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

// NewJobService creates a JobService on the redis block of cfg.
func NewJobService(logger *zerolog.Logger, cfg *config.Config) *JobService {
	concurrency := cfg.Job.Concurrency
	if concurrency <= 0 {
		concurrency = DefaultConcurrency
	}

	client := asynq.NewClient(redisOpt(cfg.Redis))

	server := asynq.NewServer(
		redisOpt(cfg.Redis),
		asynq.Config{
			Concurrency: concurrency,
			Queues: map[string]int{
				"critical": 6,
				"default":  3,
				"low":      1,
			},
			Logger:   newAsynqLogger(logger),
			LogLevel: asynq.WarnLevel,
		},
	)

	return &JobService{
		Client: client,
		server: server,
		logger: logger,
	}
}

// mux routes task types to handlers.
func (j *JobService) mux() *asynq.ServeMux {
	mux := asynq.NewServeMux()
	mux.HandleFunc(TaskBookEvent, j.handleBookEventTask)
	return mux
}

// Start starts the workers. asynq.Server.Start does not block.
func (j *JobService) Start() error {
	j.logger.Info().Msg("Starting background job server")

	if err := j.server.Start(j.mux()); err != nil {
		return fmt.Errorf("failed to start job server: %w", err)
	}

	return nil
}

// Stop shuts the workers down and closes the client.
func (j *JobService) Stop() {
	j.logger.Info().Msg("Stopping background job server")
	j.server.Shutdown()
	if err := j.Client.Close(); err != nil {
		j.logger.Error().Err(err).Msg("failed to close job client")
	}
}

// EnqueueBookEvent schedules a TaskBookEvent.
func (j *JobService) EnqueueBookEvent(ctx context.Context, event BookEvent, bookID, title string) error {
	task, err := NewBookEventTask(event, bookID, title)
	if err != nil {
		return fmt.Errorf("failed to build book event task: %w", err)
	}

	info, err := j.Client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("failed to enqueue book event: %w", err)
	}

	j.logger.Debug().
		Str("task_id", info.ID).
		Str("queue", info.Queue).
		Str("event", string(event)).
		Msg("enqueued book event")

	return nil
}
