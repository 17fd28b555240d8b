// Package queue wraps asynq for background notification work.
package queue

import (
	"context"

	"go-booking-api/core/config"
	"go-booking-api/core/constants"
	"go-booking-api/core/logger"

	"github.com/hibiken/asynq"
)

func redisOpt(cfg config.RedisConfig) asynq.RedisClientOpt {
	return asynq.RedisClientOpt{
		Addr:     cfg.Addr,
		Password: cfg.Password,
		DB:       cfg.DB,
	}
}

func NewClient(cfg config.RedisConfig) *asynq.Client {
	return asynq.NewClient(redisOpt(cfg))
}

// NewServer builds a worker server. Failed tasks are logged by the error
// handler; tasks are enqueued with MaxRetry(0) so nothing is retried.
func NewServer(cfg config.RedisConfig, concurrency int) *asynq.Server {
	if concurrency <= 0 {
		concurrency = constants.WorkerConcurrency
	}
	return asynq.NewServer(redisOpt(cfg), asynq.Config{
		Concurrency: concurrency,
		Queues: map[string]int{
			constants.QueueNotifications: 1,
		},
		ErrorHandler: asynq.ErrorHandlerFunc(func(ctx context.Context, task *asynq.Task, err error) {
			logger.Error("Queue:Task:Failed",
				"type", task.Type(),
				"error", err,
			)
		}),
		Logger: asynqLogger{},
	})
}

type asynqLogger struct{}

func (asynqLogger) Debug(args ...any) { logger.Debug("asynq", "args", args) }
func (asynqLogger) Info(args ...any)  { logger.Info("asynq", "args", args) }
func (asynqLogger) Warn(args ...any)  { logger.Warn("asynq", "args", args) }
func (asynqLogger) Error(args ...any) { logger.Error("asynq", "args", args) }
func (asynqLogger) Fatal(args ...any) { logger.Error("asynq:fatal", "args", args) }
