// internal/domain/schedule/customer.go
package schedule

import "strings"

// CustomerRecord is one row of the current payment schedule.
// It is re-read from the source on every run and never persisted by this system.
type CustomerRecord struct {
	Name     string
	DatePaid string // DD.MM.YYYY as entered in the sheet, may be empty or invalid
	Email    string // empty means no email on file
}

// IsActive reports whether the customer has a paid date recorded.
func (c CustomerRecord) IsActive() bool {
	return c.DatePaid != ""
}

// HasEmail reports whether a customer notification can be sent.
func (c CustomerRecord) HasEmail() bool {
	return strings.TrimSpace(c.Email) != ""
}
