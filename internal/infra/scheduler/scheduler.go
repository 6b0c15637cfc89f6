package scheduler

import (
	"context"
	"sync"
	"time"

	"github.com/jordan-barrett-jm/gym-payment-notifications/internal/app" // For PaymentNotifier interface

	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

type NotificationScheduler struct {
	cronEngine *cron.Cron
	notifier   app.PaymentNotifier
	logger     *logrus.Entry
	cronSpec   string

	mu      sync.Mutex
	running bool
	ctx     context.Context
	cancel  context.CancelFunc
}

func NewNotificationScheduler(
	notifier app.PaymentNotifier,
	logger *logrus.Entry,
	cronSpec string, // e.g., "0 9 * * *" (9 AM daily)
	location *time.Location,
) *NotificationScheduler {
	if location == nil {
		location = time.Local
	}
	ctx, cancel := context.WithCancel(context.Background())
	return &NotificationScheduler{
		cronEngine: cron.New(cron.WithLocation(location)),
		notifier:   notifier,
		logger:     logger,
		cronSpec:   cronSpec,
		ctx:        ctx,
		cancel:     cancel,
	}
}

// Start registers the run job and starts the cron engine.
func (s *NotificationScheduler) Start() error {
	s.logger.WithField("cron_spec", s.cronSpec).Info("Starting payment notification scheduler...")

	if _, err := s.cronEngine.AddFunc(s.cronSpec, s.runOnce); err != nil {
		return err
	}

	s.cronEngine.Start()
	s.logger.Info("Payment notification scheduler started.")
	return nil
}

// runOnce executes the pipeline unless a previous tick is still running.
func (s *NotificationScheduler) runOnce() {
	s.mu.Lock()
	if s.running {
		s.mu.Unlock()
		s.logger.Warn("Previous notification run still in progress, skipping this tick.")
		return
	}
	s.running = true
	s.mu.Unlock()

	defer func() {
		s.mu.Lock()
		s.running = false
		s.mu.Unlock()
	}()

	s.logger.Info("Cron job triggered for payment notification run.")
	if _, err := s.notifier.Run(s.ctx); err != nil {
		s.logger.WithError(err).Error("Payment notification run failed")
	}
}

// Stop stops scheduling new runs, cancels the one in progress and waits for it.
func (s *NotificationScheduler) Stop() {
	s.logger.Info("Stopping payment notification scheduler...")
	ctx := s.cronEngine.Stop() // Stops the scheduler from adding new jobs, waits for running jobs.
	s.cancel()
	<-ctx.Done() // Wait for graceful shutdown
	s.logger.Info("Payment notification scheduler gracefully stopped.")
}
