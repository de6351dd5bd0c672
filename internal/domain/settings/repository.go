package settings

import "context"

// Repository defines operations for the bot settings.
type Repository interface {
	// Get returns the stored settings, or ErrSettingsNotFound from the
	// backing store when nothing has been configured yet.
	Get(ctx context.Context) (*Settings, error)
	Save(ctx context.Context, s *Settings) error
}
