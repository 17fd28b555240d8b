package notification

import (
	"go-booking-api/core/config"
	"go-booking-api/core/logger"
	"go-booking-api/core/mailer"
	"go-booking-api/core/queue"
	"go-booking-api/core/storage"
	"go-booking-api/modules/notification/service"

	"github.com/hibiken/asynq"
)

// Module bundles the email sender with the dispatcher the booking module
// hands work to.
type Module struct {
	Sender     *service.NotificationService
	Dispatcher service.Dispatcher

	async  *service.AsyncDispatcher
	client *asynq.Client
}

// Init picks the queue dispatcher when Redis is configured and falls back to
// in-process goroutines otherwise.
func Init(cfg *config.Config) *Module {
	m := &Module{Sender: NewSender(cfg)}

	if cfg.Redis.Enabled() {
		m.client = queue.NewClient(cfg.Redis)
		m.Dispatcher = service.NewQueueDispatcher(m.client)
		logger.Info("Notification:Dispatcher", "mode", "queue", "redis", cfg.Redis.Addr)
		return m
	}

	m.async = service.NewAsyncDispatcher(m.Sender, 0)
	m.Dispatcher = m.async
	logger.Info("Notification:Dispatcher", "mode", "in-process")
	return m
}

// NewSender wires the mail provider and optional invite archive.
func NewSender(cfg *config.Config) *service.NotificationService {
	var store storage.ObjectStore
	if s3 := storage.NewS3Store(cfg.Storage); s3 != nil {
		store = s3
	}
	m := mailer.NewResendClient(cfg.Email)
	if !m.Enabled() {
		logger.Warn("Notification:Mailer:Disabled", "reason", "RESEND_API_KEY not set")
	}
	return service.NewNotificationService(m, store, cfg.Server.BaseURL)
}

// Close waits for in-process deliveries and releases the queue client.
func (m *Module) Close() {
	if m.async != nil {
		m.async.Wait()
	}
	if m.client != nil {
		if err := m.client.Close(); err != nil {
			logger.Error("Notification:Close:Error", "error", err)
		}
	}
}
