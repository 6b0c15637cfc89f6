// internal/app/run_service.go
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/jordan-barrett-jm/gym-payment-notifications/internal/domain/mail"
	"github.com/jordan-barrett-jm/gym-payment-notifications/internal/domain/schedule"
	domainTelegram "github.com/jordan-barrett-jm/gym-payment-notifications/internal/domain/telegram"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

var ErrReadCurrentSchedule = fmt.Errorf("failed to read current schedule")
var ErrReadPreviousSchedule = fmt.Errorf("failed to read previous schedule")
var ErrWriteBack = fmt.Errorf("failed to write previous schedule back")

// Report summarizes one pipeline run.
type Report struct {
	RunID         string
	StartedAt     time.Time
	CurrentRows   int
	PreviousRows  int
	StateRows     int
	Due           []string
	SentOwner     []string
	SentCustomer  []string
	Notified      []string
	Failures      []DispatchFailure
	ParseFailures []ParseFailure
}

// PaymentNotifier runs the reconciliation pipeline. It is what the scheduler triggers.
type PaymentNotifier interface {
	Run(ctx context.Context) (*Report, error)
}

// RunService wires source, state store and transports into a single pass:
// read, reconcile, evaluate, notify, write back.
type RunService struct {
	source         schedule.Source
	store          schedule.StateStore
	sender         mail.Sender
	telegramClient domainTelegram.Client
	settings       NotifierSettings
	cycle          schedule.BillingCycle
	location       *time.Location
	now            func() time.Time
	logger         *logrus.Entry
}

func NewRunService(
	source schedule.Source,
	store schedule.StateStore,
	sender mail.Sender,
	tc domainTelegram.Client,
	settings NotifierSettings,
	cycle schedule.BillingCycle,
	location *time.Location,
	logger *logrus.Entry,
) *RunService {
	if location == nil {
		location = time.Local
	}
	return &RunService{
		source:         source,
		store:          store,
		sender:         sender,
		telegramClient: tc,
		settings:       settings,
		cycle:          cycle,
		location:       location,
		now:            time.Now,
		logger:         logger,
	}
}

// WithClock replaces the clock used to evaluate due dates.
func (s *RunService) WithClock(now func() time.Time) *RunService {
	s.now = now
	return s
}

// Run executes the pipeline once. Read failures abort before anything is sent.
// A write-back failure is returned after notifications went out; those customers
// will be notified again on the next run.
func (s *RunService) Run(ctx context.Context) (*Report, error) {
	report := &Report{
		RunID:     uuid.NewString(),
		StartedAt: s.now().In(s.location),
	}
	runLogger := s.logger.WithField("run_id", report.RunID)
	runLogger.Info("Starting payment notification run")

	current, err := s.source.ReadCurrent(ctx)
	if err != nil {
		runLogger.WithError(err).Error("Could not read current schedule")
		return report, fmt.Errorf("%w: %w", ErrReadCurrentSchedule, err)
	}
	previous, err := s.store.ReadStates(ctx)
	if err != nil {
		runLogger.WithError(err).Error("Could not read previous schedule")
		return report, fmt.Errorf("%w: %w", ErrReadPreviousSchedule, err)
	}
	report.CurrentRows = len(current)
	report.PreviousRows = len(previous)
	runLogger.WithFields(logrus.Fields{
		"current_rows":  report.CurrentRows,
		"previous_rows": report.PreviousRows,
	}).Info("Schedules loaded")

	states := NewReconciler(runLogger).Reconcile(current, previous)

	evaluation := NewDueEvaluator(s.cycle, s.location, runLogger).Evaluate(current, states, report.StartedAt)
	report.Due = evaluation.DueNames()
	report.ParseFailures = evaluation.ParseFailures
	runLogger.WithField("due_customers", report.Due).Info("Customers with due payments")

	result := NewNotificationService(s.sender, s.telegramClient, s.settings, runLogger).Notify(ctx, evaluation.Due, states)
	report.SentOwner = result.SentOwner
	report.SentCustomer = result.SentCustomer
	report.Notified = result.Notified
	report.Failures = result.Failures

	rows := states.Rows()
	report.StateRows = len(rows)
	// Notifications may already be out, so persist even if the run was interrupted.
	if err := s.store.WriteStates(context.WithoutCancel(ctx), rows); err != nil {
		runLogger.WithError(err).Error("Could not write previous schedule, sent notifications will repeat next run")
		return report, fmt.Errorf("%w: %w", ErrWriteBack, err)
	}
	runLogger.WithField("state_rows", report.StateRows).Info("Secondary sheet updated")

	runLogger.WithFields(logrus.Fields{
		"due":            len(report.Due),
		"owner_sent":     len(report.SentOwner),
		"customer_sent":  len(report.SentCustomer),
		"failures":       len(report.Failures),
		"parse_failures": len(report.ParseFailures),
	}).Info("Payment notification run finished")
	return report, nil
}
