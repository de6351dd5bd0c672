package database

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"birthday_notification_bot/internal/domain/notification"

	"github.com/lib/pq" // For pq.Int64Array and driver registration
)

var ErrNotificationNotFound = fmt.Errorf("notification record not found")

type PostgresNotificationRepository struct {
	db *sql.DB
}

func NewPostgresNotificationRepository(db *sql.DB) *PostgresNotificationRepository {
	return &PostgresNotificationRepository{db: db}
}

func (r *PostgresNotificationRepository) GetByUserID(ctx context.Context, userID string) (*notification.Record, error) {
	query := `SELECT user_id, last_notified, message_history
               FROM birthday_notifications WHERE user_id = $1`
	rec := &notification.Record{}
	var history pq.Int64Array
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&rec.UserID, &rec.LastNotified, &history)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrNotificationNotFound
		}
		return nil, fmt.Errorf("error getting notification record: %w", err)
	}
	rec.MessageHistory = toIntSlice(history)
	return rec, nil
}

func (r *PostgresNotificationRepository) ListAll(ctx context.Context) ([]*notification.Record, error) {
	query := `SELECT user_id, last_notified, message_history FROM birthday_notifications`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing notification records: %w", err)
	}
	defer rows.Close()

	records := make([]*notification.Record, 0)
	for rows.Next() {
		rec := &notification.Record{}
		var history pq.Int64Array
		if err := rows.Scan(&rec.UserID, &rec.LastNotified, &history); err != nil {
			return nil, fmt.Errorf("error scanning notification record: %w", err)
		}
		rec.MessageHistory = toIntSlice(history)
		records = append(records, rec)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating notification records: %w", err)
	}
	return records, nil
}

// Save upserts a whole record, history included. Used by the legacy data import.
func (r *PostgresNotificationRepository) Save(ctx context.Context, rec *notification.Record) error {
	query := `INSERT INTO birthday_notifications (user_id, last_notified, message_history)
               VALUES ($1, $2, $3)
               ON CONFLICT (user_id) DO UPDATE
               SET last_notified = EXCLUDED.last_notified,
                   message_history = EXCLUDED.message_history`

	_, err := r.db.ExecContext(ctx, query, rec.UserID, dateOnly(rec.LastNotified), pq.Array(toInt64Slice(rec.MessageHistory)))
	if err != nil {
		return fmt.Errorf("error saving notification record: %w", err)
	}
	return nil
}

// MarkNotified sets the last-notified date and appends the sent index in a
// single statement, creating the record when absent.
func (r *PostgresNotificationRepository) MarkNotified(ctx context.Context, userID string, date time.Time, messageIndex int) error {
	query := `INSERT INTO birthday_notifications (user_id, last_notified, message_history)
               VALUES ($1, $2, $3)
               ON CONFLICT (user_id) DO UPDATE
               SET last_notified = EXCLUDED.last_notified,
                   message_history = birthday_notifications.message_history || EXCLUDED.message_history`

	_, err := r.db.ExecContext(ctx, query, userID, dateOnly(date), pq.Array([]int64{int64(messageIndex)}))
	if err != nil {
		return fmt.Errorf("error marking user notified: %w", err)
	}
	return nil
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func toIntSlice(in pq.Int64Array) []int {
	out := make([]int, len(in))
	for i, v := range in {
		out[i] = int(v)
	}
	return out
}

func toInt64Slice(in []int) []int64 {
	out := make([]int64, len(in))
	for i, v := range in {
		out[i] = int64(v)
	}
	return out
}
