// internal/domain/schedule/cycle.go
package schedule

import (
	"fmt"
	"time"
)

const (
	// PaidDateLayout is the layout paid dates are written with (DD.MM.YYYY).
	PaidDateLayout = "02.01.2006"
	// paidDateParseLayout also accepts day and month without a leading zero.
	paidDateParseLayout = "2.1.2006"
	// DueDateLayout is used for due dates in message text.
	DueDateLayout = "January 02, 2006"

	DefaultCycleDays          = 28
	DefaultReminderWindowDays = 3
)

var ErrEmptyPaidDate = fmt.Errorf("paid date is empty")
var ErrInvalidPaidDate = fmt.Errorf("paid date is not in DD.MM.YYYY format")

// BillingCycle describes the fixed-length period after a payment and how early
// before the due date a customer counts as payment-due.
type BillingCycle struct {
	CycleDays          int
	ReminderWindowDays int
}

// DefaultBillingCycle is the 28-day cycle with a 3-day reminder window.
func DefaultBillingCycle() BillingCycle {
	return BillingCycle{
		CycleDays:          DefaultCycleDays,
		ReminderWindowDays: DefaultReminderWindowDays,
	}
}

// DueDate returns the date the next payment is due.
func (b BillingCycle) DueDate(paid time.Time) time.Time {
	return paid.AddDate(0, 0, b.CycleDays)
}

// IsPaymentDue reports whether now is within the reminder window of, or past, the due date.
// The window start is inclusive.
func (b BillingCycle) IsPaymentDue(paid, now time.Time) bool {
	windowStart := b.DueDate(paid).AddDate(0, 0, -b.ReminderWindowDays)
	return !windowStart.After(now)
}

// ParsePaidDate parses a DD.MM.YYYY cell at midnight in loc.
func ParsePaidDate(raw string, loc *time.Location) (time.Time, error) {
	if raw == "" {
		return time.Time{}, ErrEmptyPaidDate
	}
	if loc == nil {
		loc = time.Local
	}
	t, err := time.ParseInLocation(paidDateParseLayout, raw, loc)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q: %v", ErrInvalidPaidDate, raw, err)
	}
	return t, nil
}

// FormatDueDate renders a due date for message text, e.g. "January 29, 2024".
func FormatDueDate(due time.Time) string {
	return due.Format(DueDateLayout)
}
