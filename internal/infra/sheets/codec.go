// internal/infra/sheets/codec.go
package sheets

import (
	"fmt"
	"strings"

	"github.com/jordan-barrett-jm/gym-payment-notifications/internal/domain/schedule"
)

var ErrMissingColumn = fmt.Errorf("required column missing from worksheet header")

// header maps trimmed column names to their index.
type header map[string]int

func parseHeader(row []interface{}) header {
	h := make(header, len(row))
	for i, cell := range row {
		name := strings.TrimSpace(cellString(cell))
		if name == "" {
			continue
		}
		if _, dup := h[name]; !dup {
			h[name] = i
		}
	}
	return h
}

func (h header) require(names ...string) error {
	for _, n := range names {
		if _, ok := h[n]; !ok {
			return fmt.Errorf("%w: %q", ErrMissingColumn, n)
		}
	}
	return nil
}

// value returns the cell for column name, or "" when the row is short or the column absent.
func (h header) value(row []interface{}, name string) string {
	i, ok := h[name]
	if !ok || i >= len(row) {
		return ""
	}
	return cellString(row[i])
}

func cellString(v interface{}) string {
	switch c := v.(type) {
	case nil:
		return ""
	case string:
		return c
	default:
		return fmt.Sprint(c)
	}
}

func blankRow(row []interface{}) bool {
	for _, c := range row {
		if strings.TrimSpace(cellString(c)) != "" {
			return false
		}
	}
	return true
}

// decodeCurrent turns the values of the current worksheet into customer records.
func decodeCurrent(values [][]interface{}) ([]schedule.CustomerRecord, error) {
	if len(values) == 0 {
		return nil, nil
	}
	h := parseHeader(values[0])
	if err := h.require(schedule.ColumnCustomerName, schedule.ColumnDatePaid); err != nil {
		return nil, err
	}

	records := make([]schedule.CustomerRecord, 0, len(values)-1)
	for _, row := range values[1:] {
		if blankRow(row) {
			continue
		}
		records = append(records, schedule.CustomerRecord{
			Name:     h.value(row, schedule.ColumnCustomerName),
			DatePaid: h.value(row, schedule.ColumnDatePaid),
			Email:    h.value(row, schedule.ColumnCustomerEmail),
		})
	}
	return records, nil
}

// decodeStates turns the values of the previous worksheet into notification states.
// An empty worksheet means no customer has been seen yet.
func decodeStates(values [][]interface{}) ([]schedule.NotificationState, error) {
	if len(values) == 0 || blankRow(values[0]) {
		return nil, nil
	}
	h := parseHeader(values[0])
	if err := h.require(schedule.ColumnCustomerName, schedule.ColumnPreviousPaidDate, schedule.ColumnNotified); err != nil {
		return nil, err
	}

	states := make([]schedule.NotificationState, 0, len(values)-1)
	for _, row := range values[1:] {
		if blankRow(row) {
			continue
		}
		states = append(states, schedule.NotificationState{
			Name:             h.value(row, schedule.ColumnCustomerName),
			PreviousPaidDate: h.value(row, schedule.ColumnPreviousPaidDate),
			Notified:         schedule.ParseNotifiedFlag(strings.TrimSpace(h.value(row, schedule.ColumnNotified))),
		})
	}
	return states, nil
}

// encodeStates renders the header and rows for write-back.
func encodeStates(rows []schedule.NotificationState) [][]interface{} {
	out := make([][]interface{}, 0, len(rows)+1)
	hdr := make([]interface{}, len(schedule.StateHeader))
	for i, name := range schedule.StateHeader {
		hdr[i] = name
	}
	out = append(out, hdr)
	for _, r := range rows {
		out = append(out, []interface{}{r.Name, r.PreviousPaidDate, string(r.Notified)})
	}
	return out
}
