// internal/domain/schedule/repository.go
package schedule

import "context"

// Source supplies the externally maintained current schedule.
type Source interface {
	ReadCurrent(ctx context.Context) ([]CustomerRecord, error)
}

// StateStore reads and overwrites the system-owned previous schedule.
type StateStore interface {
	ReadStates(ctx context.Context) ([]NotificationState, error)
	// WriteStates replaces the whole stored table with rows, in order.
	WriteStates(ctx context.Context, rows []NotificationState) error
}
