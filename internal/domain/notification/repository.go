package notification

import (
	"context"
	"time"
)

// Repository defines operations for per-member notification records.
type Repository interface {
	GetByUserID(ctx context.Context, userID string) (*Record, error)
	ListAll(ctx context.Context) ([]*Record, error)
	// MarkNotified upserts the record for userID: sets LastNotified to the
	// given date and appends messageIndex to the history. Called only after
	// a successful delivery.
	MarkNotified(ctx context.Context, userID string, date time.Time, messageIndex int) error
	// Save upserts a whole record including its full history. Used when
	// importing previously accumulated state.
	Save(ctx context.Context, rec *Record) error
}
