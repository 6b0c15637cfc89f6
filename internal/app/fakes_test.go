package app

import (
	"context"
	"io"

	"github.com/jordan-barrett-jm/gym-payment-notifications/internal/domain/mail"
	"github.com/jordan-barrett-jm/gym-payment-notifications/internal/domain/schedule"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/mock"
)

func discardLogger() *logrus.Entry {
	l := logrus.New()
	l.SetOutput(io.Discard)
	return logrus.NewEntry(l)
}

// MockSender
type MockSender struct {
	mock.Mock
}

func (m *MockSender) Send(ctx context.Context, msg mail.Message) error {
	args := m.Called(ctx, msg)
	return args.Error(0)
}

// sentTo returns the recipients of all Send calls in order.
func (m *MockSender) sentTo() []string {
	var to []string
	for _, c := range m.Calls {
		if c.Method == "Send" {
			to = append(to, c.Arguments.Get(1).(mail.Message).To.Email)
		}
	}
	return to
}

// MockTelegramClient
type MockTelegramClient struct {
	mock.Mock
}

func (m *MockTelegramClient) SendMessage(ctx context.Context, recipientChatID int64, text string) error {
	args := m.Called(ctx, recipientChatID, text)
	return args.Error(0)
}

type memorySource struct {
	records []schedule.CustomerRecord
	err     error
}

func (s *memorySource) ReadCurrent(ctx context.Context) ([]schedule.CustomerRecord, error) {
	return s.records, s.err
}

type memoryStore struct {
	rows     []schedule.NotificationState
	readErr  error
	writeErr error
	writes   int
}

func (s *memoryStore) ReadStates(ctx context.Context) ([]schedule.NotificationState, error) {
	if s.readErr != nil {
		return nil, s.readErr
	}
	return append([]schedule.NotificationState(nil), s.rows...), nil
}

func (s *memoryStore) WriteStates(ctx context.Context, rows []schedule.NotificationState) error {
	s.writes++
	if s.writeErr != nil {
		return s.writeErr
	}
	s.rows = append([]schedule.NotificationState(nil), rows...)
	return nil
}
