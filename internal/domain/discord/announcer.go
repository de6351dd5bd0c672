package discord

import (
	"context"
	"fmt"

	"birthday_notification_bot/internal/domain/settings"
)

// Dispatch errors. ErrNotConfigured and ErrForbidden recur every cycle until
// an administrator reconfigures the channel; that is accepted behavior.
var ErrNotConfigured = fmt.Errorf("no announcement channel configured")
var ErrChannelNotFound = fmt.Errorf("configured announcement channel not found")
var ErrForbidden = fmt.Errorf("bot lacks permission to post in the announcement channel")

// Announcement is a fully rendered birthday message ready for delivery.
type Announcement struct {
	UserID   string
	Text     string
	ImageURL string
	Age      int
	Day      int
	Month    int
}

// Announcer decouples the application logic from the Discord library.
type Announcer interface {
	// ResolveDestination validates the configured channel and returns its ID.
	// Returns ErrNotConfigured, ErrChannelNotFound or ErrForbidden when the
	// announcement cannot be delivered anywhere.
	ResolveDestination(ctx context.Context, cfg *settings.Settings) (string, error)
	// Announce delivers the announcement to the given channel.
	Announce(ctx context.Context, channelID string, a *Announcement) error
}
