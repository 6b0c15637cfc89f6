// internal/app/notification_service.go
package app

import (
	"context"
	"strings"

	"github.com/jordan-barrett-jm/gym-payment-notifications/internal/domain/mail"
	"github.com/jordan-barrett-jm/gym-payment-notifications/internal/domain/schedule"
	domainTelegram "github.com/jordan-barrett-jm/gym-payment-notifications/internal/domain/telegram"

	"github.com/sirupsen/logrus"
)

// Recipient kinds reported in DispatchFailure.
const (
	RecipientOwner         = "owner"
	RecipientOwnerTelegram = "owner_telegram"
	RecipientCustomer      = "customer"
)

// NotifierSettings are the fixed addresses and policy used by NotificationService.
type NotifierSettings struct {
	From                 mail.Address
	OwnerEmail           string
	OwnerTelegramID      int64 // zero disables Telegram alerts
	RequireOwnerDelivery bool  // only mark notified after the owner email was accepted
}

// DispatchFailure is a single send that returned an error.
type DispatchFailure struct {
	Customer  string
	Recipient string
	Err       error
}

// NotifyResult lists who was reached during a notification pass.
type NotifyResult struct {
	SentOwner    []string
	SentCustomer []string
	Notified     []string // customers whose state moved to Notified=Y
	Failures     []DispatchFailure
}

// NotificationService sends due-date reminders and advances the state table.
type NotificationService struct {
	sender         mail.Sender
	telegramClient domainTelegram.Client // optional
	settings       NotifierSettings
	logger         *logrus.Entry
}

func NewNotificationService(
	sender mail.Sender,
	tc domainTelegram.Client,
	settings NotifierSettings,
	logger *logrus.Entry,
) *NotificationService {
	return &NotificationService{
		sender:         sender,
		telegramClient: tc,
		settings:       settings,
		logger:         logger,
	}
}

// Notify sends one owner email per due customer and, when the customer has an email
// on file, one customer email. Failures are logged and collected; they never stop the
// remaining customers. The customer's state is marked notified once the owner email was
// attempted, or once it succeeded when RequireOwnerDelivery is set.
//
// If ctx is cancelled the remaining customers are left untouched.
func (s *NotificationService) Notify(ctx context.Context, due []DueCustomer, states *schedule.StateTable) NotifyResult {
	var result NotifyResult

	for i, d := range due {
		if err := ctx.Err(); err != nil {
			s.logger.WithError(err).WithField("remaining", len(due)-i).Warn("Notification pass interrupted")
			break
		}

		name := d.Record.Name
		dueDate := schedule.FormatDueDate(d.DueOn)
		logCtx := s.logger.WithFields(logrus.Fields{
			"customer": name,
			"due_date": dueDate,
		})

		ownerErr := s.sender.Send(ctx, ownerMessage(s.settings.From, s.settings.OwnerEmail, name, dueDate))
		if ownerErr != nil {
			logCtx.WithError(ownerErr).Error("Failed to notify gym owner")
			result.Failures = append(result.Failures, DispatchFailure{Customer: name, Recipient: RecipientOwner, Err: ownerErr})
		} else {
			logCtx.Info("Gym owner has been notified of upcoming payment")
			result.SentOwner = append(result.SentOwner, name)
		}

		if s.telegramClient != nil && s.settings.OwnerTelegramID != 0 {
			if err := s.telegramClient.SendMessage(ctx, s.settings.OwnerTelegramID, ownerAlertText(name, dueDate)); err != nil {
				logCtx.WithError(err).Warn("Failed to send owner Telegram alert")
				result.Failures = append(result.Failures, DispatchFailure{Customer: name, Recipient: RecipientOwnerTelegram, Err: err})
			}
		}

		if d.Record.HasEmail() {
			email := strings.TrimSpace(d.Record.Email)
			if err := s.sender.Send(ctx, customerMessage(s.settings.From, email, name, dueDate)); err != nil {
				logCtx.WithError(err).WithField("email", email).Error("Failed to notify customer")
				result.Failures = append(result.Failures, DispatchFailure{Customer: name, Recipient: RecipientCustomer, Err: err})
			} else {
				logCtx.WithField("email", email).Info("Customer has been notified of upcoming payment")
				result.SentCustomer = append(result.SentCustomer, name)
			}
		}

		if ownerErr != nil && s.settings.RequireOwnerDelivery {
			logCtx.Warn("Owner notification not delivered, customer stays unnotified for the next run")
			continue
		}
		if !states.MarkNotified(name) {
			// Reconcile adds every current customer, so this only happens with a foreign table.
			logCtx.Warn("Customer missing from previous schedule, adding it as notified")
			states.Put(schedule.NotificationState{Name: name, PreviousPaidDate: d.Record.DatePaid, Notified: schedule.NotifiedYes})
		}
		result.Notified = append(result.Notified, name)
	}
	return result
}
