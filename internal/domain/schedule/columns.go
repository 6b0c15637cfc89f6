// internal/domain/schedule/columns.go
package schedule

// Column headers of the current schedule.
const (
	ColumnCustomerName  = "Customer Name"
	ColumnDatePaid      = "Date Paid"
	ColumnCustomerEmail = "Customer Email"
)

// Column headers of the previous schedule.
const (
	ColumnPreviousPaidDate = "Previous Paid Date"
	ColumnNotified         = "Notified"
)

// StateHeader is the header row written back to the previous schedule.
var StateHeader = []string{ColumnCustomerName, ColumnPreviousPaidDate, ColumnNotified}
