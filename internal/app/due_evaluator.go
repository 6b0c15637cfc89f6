// internal/app/due_evaluator.go
package app

import (
	"time"

	"github.com/jordan-barrett-jm/gym-payment-notifications/internal/domain/schedule"

	"github.com/sirupsen/logrus"
)

// DueCustomer is a customer that should be notified in this run.
type DueCustomer struct {
	Record schedule.CustomerRecord
	PaidOn time.Time
	DueOn  time.Time
}

// ParseFailure records an active customer whose paid date could not be parsed.
type ParseFailure struct {
	Customer string
	Raw      string
	Err      error
}

// Evaluation is the outcome of a due-date evaluation pass.
type Evaluation struct {
	Due           []DueCustomer // in current schedule row order
	ParseFailures []ParseFailure
}

// DueNames returns the names of the due customers in order.
func (e Evaluation) DueNames() []string {
	names := make([]string, 0, len(e.Due))
	for _, d := range e.Due {
		names = append(names, d.Record.Name)
	}
	return names
}

// DueEvaluator selects customers whose payment is due and who were not yet notified.
type DueEvaluator struct {
	cycle    schedule.BillingCycle
	location *time.Location
	logger   *logrus.Entry
}

func NewDueEvaluator(cycle schedule.BillingCycle, location *time.Location, logger *logrus.Entry) *DueEvaluator {
	if location == nil {
		location = time.Local
	}
	return &DueEvaluator{
		cycle:    cycle,
		location: location,
		logger:   logger,
	}
}

// Evaluate checks every active customer of current against the reconciled table.
// Customers with an empty paid date are not evaluated. Customers with an unparsable
// paid date are reported and left out of the due set.
func (e *DueEvaluator) Evaluate(current []schedule.CustomerRecord, states *schedule.StateTable, now time.Time) Evaluation {
	var result Evaluation
	seen := make(map[string]struct{}, len(current))

	for _, rec := range current {
		if _, ok := seen[rec.Name]; ok {
			continue
		}
		seen[rec.Name] = struct{}{}

		if !rec.IsActive() {
			continue
		}

		paid, err := schedule.ParsePaidDate(rec.DatePaid, e.location)
		if err != nil {
			e.logger.WithFields(logrus.Fields{
				"customer":  rec.Name,
				"date_paid": rec.DatePaid,
			}).WithError(err).Error("Could not parse paid date, customer skipped for this run")
			result.ParseFailures = append(result.ParseFailures, ParseFailure{Customer: rec.Name, Raw: rec.DatePaid, Err: err})
			continue
		}

		if !e.cycle.IsPaymentDue(paid, now) {
			continue
		}
		if st, ok := states.Get(rec.Name); ok && st.IsNotified() {
			continue
		}

		result.Due = append(result.Due, DueCustomer{
			Record: rec,
			PaidOn: paid,
			DueOn:  e.cycle.DueDate(paid),
		})
	}
	return result
}
