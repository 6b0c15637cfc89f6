// internal/infra/database/postgres_state_repository.go
package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jordan-barrett-jm/gym-payment-notifications/internal/domain/schedule"

	"github.com/lib/pq" // For pq.Array
)

// PostgresStateRepository keeps the previous schedule in Postgres instead of a worksheet.
// It implements schedule.StateStore.
type PostgresStateRepository struct {
	db *sql.DB
}

func NewPostgresStateRepository(db *sql.DB) *PostgresStateRepository {
	return &PostgresStateRepository{db: db}
}

func (r *PostgresStateRepository) ReadStates(ctx context.Context) ([]schedule.NotificationState, error) {
	query := `SELECT customer_name, previous_paid_date, notified
               FROM notification_states
               ORDER BY position, customer_name`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error querying notification states: %w", err)
	}
	defer rows.Close()

	states := make([]schedule.NotificationState, 0)
	for rows.Next() {
		var s schedule.NotificationState
		var notified string
		if err := rows.Scan(&s.Name, &s.PreviousPaidDate, &notified); err != nil {
			return nil, fmt.Errorf("error scanning notification state row: %w", err)
		}
		s.Notified = schedule.ParseNotifiedFlag(notified)
		states = append(states, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notification state rows: %w", err)
	}
	return states, nil
}

// WriteStates replaces the stored table with rows in a single transaction.
func (r *PostgresStateRepository) WriteStates(ctx context.Context, rows []schedule.NotificationState) error {
	txn, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction for state write: %w", err)
	}
	defer txn.Rollback() // Rollback if not committed

	stmt, err := txn.PrepareContext(ctx, `INSERT INTO notification_states (customer_name, previous_paid_date, notified, position, updated_at)
                                         VALUES ($1, $2, $3, $4, NOW())
                                         ON CONFLICT (customer_name) DO UPDATE
                                         SET previous_paid_date = EXCLUDED.previous_paid_date,
                                             notified = EXCLUDED.notified,
                                             position = EXCLUDED.position,
                                             updated_at = NOW()`)
	if err != nil {
		return fmt.Errorf("failed to prepare statement for state write: %w", err)
	}
	defer stmt.Close()

	names := make([]string, 0, len(rows))
	for i, s := range rows {
		if _, err := stmt.ExecContext(ctx, s.Name, s.PreviousPaidDate, string(s.Notified), i); err != nil {
			return fmt.Errorf("error writing notification state for %q: %w", s.Name, err)
		}
		names = append(names, s.Name)
	}

	if _, err := txn.ExecContext(ctx, `DELETE FROM notification_states WHERE NOT (customer_name = ANY($1::text[]))`, pq.Array(names)); err != nil {
		return fmt.Errorf("error removing stale notification states: %w", err)
	}

	return txn.Commit()
}
