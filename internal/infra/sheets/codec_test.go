package sheets

import (
	"testing"

	"github.com/jordan-barrett-jm/gym-payment-notifications/internal/domain/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeCurrent(t *testing.T) {
	values := [][]interface{}{
		{"Customer Name", " Date Paid ", "Customer Email", "Notes"},
		{"Alice", "01.01.2024", "alice@example.com", "vip"},
		{"Bob"},
		{"", "", ""},
		{"Carol", "15.01.2024"},
	}

	records, err := decodeCurrent(values)
	require.NoError(t, err)

	assert.Equal(t, []schedule.CustomerRecord{
		{Name: "Alice", DatePaid: "01.01.2024", Email: "alice@example.com"},
		{Name: "Bob"},
		{Name: "Carol", DatePaid: "15.01.2024"},
	}, records)
}

func TestDecodeCurrentWithoutEmailColumn(t *testing.T) {
	records, err := decodeCurrent([][]interface{}{
		{"Date Paid", "Customer Name"},
		{"01.01.2024", "Alice"},
	})
	require.NoError(t, err)
	assert.Equal(t, []schedule.CustomerRecord{{Name: "Alice", DatePaid: "01.01.2024"}}, records)
}

func TestDecodeCurrentMissingColumn(t *testing.T) {
	_, err := decodeCurrent([][]interface{}{{"Customer Name", "Customer Email"}})
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestDecodeStatesEmptySheet(t *testing.T) {
	states, err := decodeStates(nil)
	require.NoError(t, err)
	assert.Empty(t, states)
}

func TestDecodeStates(t *testing.T) {
	states, err := decodeStates([][]interface{}{
		{"Customer Name", "Previous Paid Date", "Notified"},
		{"Alice", "01.01.2024", "Y"},
		{"Bob", "", "N"},
		{"Carol", "03.01.2024", "maybe"},
		{"Dave", float64(45000)},
	})
	require.NoError(t, err)

	assert.Equal(t, []schedule.NotificationState{
		{Name: "Alice", PreviousPaidDate: "01.01.2024", Notified: schedule.NotifiedYes},
		{Name: "Bob", PreviousPaidDate: "", Notified: schedule.NotifiedNo},
		{Name: "Carol", PreviousPaidDate: "03.01.2024", Notified: schedule.NotifiedNo},
		{Name: "Dave", PreviousPaidDate: "45000", Notified: schedule.NotifiedNo},
	}, states)
}

func TestDecodeStatesMissingColumn(t *testing.T) {
	_, err := decodeStates([][]interface{}{{"Customer Name", "Previous Paid Date"}})
	assert.ErrorIs(t, err, ErrMissingColumn)
}

func TestEncodeStates(t *testing.T) {
	values := encodeStates([]schedule.NotificationState{
		{Name: "Alice", PreviousPaidDate: "01.01.2024", Notified: schedule.NotifiedYes},
	})

	assert.Equal(t, [][]interface{}{
		{"Customer Name", "Previous Paid Date", "Notified"},
		{"Alice", "01.01.2024", "Y"},
	}, values)

	decoded, err := decodeStates(values)
	require.NoError(t, err)
	assert.Equal(t, "Alice", decoded[0].Name)
}
