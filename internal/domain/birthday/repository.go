package birthday

import (
	"context"
)

// Repository defines the operations for persisting and retrieving Birthday entities.
type Repository interface {
	Create(ctx context.Context, b *Birthday) error
	GetByUserID(ctx context.Context, userID string) (*Birthday, error)
	Update(ctx context.Context, b *Birthday) error // Updates Day, Month, Year only
	ListAll(ctx context.Context) ([]*Birthday, error)
}
