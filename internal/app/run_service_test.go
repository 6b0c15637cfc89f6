package app

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jordan-barrett-jm/gym-payment-notifications/internal/domain/mail"
	"github.com/jordan-barrett-jm/gym-payment-notifications/internal/domain/schedule"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestRunService(source *memorySource, store *memoryStore, sender *MockSender, now time.Time) *RunService {
	return NewRunService(source, store, sender, nil, testSettings(), schedule.DefaultBillingCycle(), time.UTC, discardLogger()).
		WithClock(func() time.Time { return now })
}

func TestRunAliceDueIsNotified(t *testing.T) {
	source := &memorySource{records: []schedule.CustomerRecord{
		{Name: "Alice", DatePaid: "01.01.2024", Email: "alice@example.com"},
	}}
	store := &memoryStore{}
	sender := new(MockSender)
	sender.On("Send", mock.Anything, mock.Anything).Return(nil)

	report, err := newTestRunService(source, store, sender, day(2024, time.January, 26)).Run(context.Background())

	require.NoError(t, err)
	assert.NotEmpty(t, report.RunID)
	assert.Equal(t, []string{"Alice"}, report.Due)
	assert.Equal(t, []string{"Alice"}, report.SentOwner)
	assert.Equal(t, []string{"Alice"}, report.SentCustomer)
	assert.Equal(t, []string{"owner@example.com", "alice@example.com"}, sender.sentTo())
	assert.Equal(t, []schedule.NotificationState{
		{Name: "Alice", PreviousPaidDate: "01.01.2024", Notified: schedule.NotifiedYes},
	}, store.rows)
}

func TestRunAliceBeforeWindowIsNotNotified(t *testing.T) {
	source := &memorySource{records: []schedule.CustomerRecord{
		{Name: "Alice", DatePaid: "01.01.2024", Email: "alice@example.com"},
	}}
	store := &memoryStore{}
	sender := new(MockSender)

	report, err := newTestRunService(source, store, sender, day(2024, time.January, 24)).Run(context.Background())

	require.NoError(t, err)
	assert.Empty(t, report.Due)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	assert.Equal(t, []schedule.NotificationState{
		{Name: "Alice", PreviousPaidDate: "01.01.2024", Notified: schedule.NotifiedNo},
	}, store.rows)
}

func TestRunCustomerWithoutPaidDateIsOnlyReconciled(t *testing.T) {
	source := &memorySource{records: []schedule.CustomerRecord{
		{Name: "Bob", DatePaid: "", Email: "bob@example.com"},
	}}
	store := &memoryStore{}
	sender := new(MockSender)

	report, err := newTestRunService(source, store, sender, day(2030, time.January, 1)).Run(context.Background())

	require.NoError(t, err)
	assert.Empty(t, report.Due)
	assert.Empty(t, report.ParseFailures)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	assert.Equal(t, []schedule.NotificationState{
		{Name: "Bob", PreviousPaidDate: "", Notified: schedule.NotifiedNo},
	}, store.rows)
}

func TestRunSecondRunDoesNotRenotify(t *testing.T) {
	source := &memorySource{records: []schedule.CustomerRecord{
		{Name: "Alice", DatePaid: "01.01.2024", Email: "alice@example.com"},
	}}
	store := &memoryStore{}
	sender := new(MockSender)
	sender.On("Send", mock.Anything, mock.Anything).Return(nil)
	svc := newTestRunService(source, store, sender, day(2024, time.January, 27))

	_, err := svc.Run(context.Background())
	require.NoError(t, err)
	report, err := svc.Run(context.Background())
	require.NoError(t, err)

	assert.Empty(t, report.Due)
	sender.AssertNumberOfCalls(t, "Send", 2)
}

func TestRunNewPaymentStartsNewCycle(t *testing.T) {
	source := &memorySource{records: []schedule.CustomerRecord{
		{Name: "Alice", DatePaid: "29.01.2024"},
	}}
	store := &memoryStore{rows: []schedule.NotificationState{
		{Name: "Alice", PreviousPaidDate: "01.01.2024", Notified: schedule.NotifiedYes},
	}}
	sender := new(MockSender)
	sender.On("Send", mock.Anything, mock.Anything).Return(nil)

	report, err := newTestRunService(source, store, sender, day(2024, time.February, 23)).Run(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []string{"Alice"}, report.Due)
	assert.Equal(t, "Payment due for Alice on February 26, 2024", sender.Calls[0].Arguments.Get(1).(mail.Message).Subject)
	assert.Equal(t, []schedule.NotificationState{
		{Name: "Alice", PreviousPaidDate: "29.01.2024", Notified: schedule.NotifiedYes},
	}, store.rows)
}

func TestRunReadFailureAbortsBeforeSending(t *testing.T) {
	source := &memorySource{err: errors.New("permission denied")}
	store := &memoryStore{}
	sender := new(MockSender)

	_, err := newTestRunService(source, store, sender, day(2024, time.January, 26)).Run(context.Background())

	assert.ErrorIs(t, err, ErrReadCurrentSchedule)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
	assert.Zero(t, store.writes)
}

func TestRunPreviousReadFailureAborts(t *testing.T) {
	source := &memorySource{records: []schedule.CustomerRecord{{Name: "Alice", DatePaid: "01.01.2024"}}}
	store := &memoryStore{readErr: errors.New("quota exceeded")}
	sender := new(MockSender)

	_, err := newTestRunService(source, store, sender, day(2024, time.January, 26)).Run(context.Background())

	assert.ErrorIs(t, err, ErrReadPreviousSchedule)
	sender.AssertNotCalled(t, "Send", mock.Anything, mock.Anything)
}

func TestRunWriteBackFailureIsReturned(t *testing.T) {
	source := &memorySource{records: []schedule.CustomerRecord{{Name: "Alice", DatePaid: "01.01.2024"}}}
	store := &memoryStore{writeErr: errors.New("backend unavailable")}
	sender := new(MockSender)
	sender.On("Send", mock.Anything, mock.Anything).Return(nil)

	report, err := newTestRunService(source, store, sender, day(2024, time.January, 26)).Run(context.Background())

	assert.ErrorIs(t, err, ErrWriteBack)
	require.NotNil(t, report)
	assert.Equal(t, []string{"Alice"}, report.SentOwner)
	assert.Equal(t, 1, store.writes)
}
