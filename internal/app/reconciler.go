// internal/app/reconciler.go
package app

import (
	"github.com/jordan-barrett-jm/gym-payment-notifications/internal/domain/schedule"

	"github.com/sirupsen/logrus"
)

// Reconciler derives the updated previous schedule from the current schedule.
type Reconciler struct {
	logger *logrus.Entry
}

func NewReconciler(logger *logrus.Entry) *Reconciler {
	return &Reconciler{logger: logger}
}

// Reconcile returns a new state table with one row per customer seen in either input.
// previous is not modified.
//
// A customer missing from previous gets a row with Notified=N. A customer whose paid
// date differs from the stored one gets the new date and Notified=N. Dates are compared
// as raw strings. Rows of customers no longer in the current schedule are kept as is.
func (r *Reconciler) Reconcile(current []schedule.CustomerRecord, previous []schedule.NotificationState) *schedule.StateTable {
	table, duplicates := schedule.NewStateTable(previous)
	for _, name := range duplicates {
		r.logger.WithField("customer", name).Warn("Duplicate customer in previous schedule, keeping first row")
	}

	seen := make(map[string]struct{}, len(current))
	for _, rec := range current {
		if _, ok := seen[rec.Name]; ok {
			r.logger.WithField("customer", rec.Name).Warn("Duplicate customer in current schedule, keeping first row")
			continue
		}
		seen[rec.Name] = struct{}{}

		existing, ok := table.Get(rec.Name)
		switch {
		case !ok:
			table.Put(schedule.NotificationState{
				Name:             rec.Name,
				PreviousPaidDate: rec.DatePaid,
				Notified:         schedule.NotifiedNo,
			})
			r.logger.WithFields(logrus.Fields{
				"customer":  rec.Name,
				"date_paid": rec.DatePaid,
			}).Debug("New customer added to previous schedule")
		case existing.PreviousPaidDate == rec.DatePaid:
			// unchanged
		default:
			table.Put(schedule.NotificationState{
				Name:             rec.Name,
				PreviousPaidDate: rec.DatePaid,
				Notified:         schedule.NotifiedNo,
			})
			r.logger.WithFields(logrus.Fields{
				"customer":      rec.Name,
				"previous_paid": existing.PreviousPaidDate,
				"date_paid":     rec.DatePaid,
			}).Info("Paid date changed, new billing cycle starts unnotified")
		}
	}
	return table
}
