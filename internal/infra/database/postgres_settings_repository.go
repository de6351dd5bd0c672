package database

import (
	"context"
	"database/sql"
	"fmt"

	"birthday_notification_bot/internal/domain/settings"
)

var ErrSettingsNotFound = fmt.Errorf("bot settings not configured")

// PostgresSettingsRepository stores the single announcement-channel
// configuration row. The table's primary key is constrained to one row.
type PostgresSettingsRepository struct {
	db *sql.DB
}

func NewPostgresSettingsRepository(db *sql.DB) *PostgresSettingsRepository {
	return &PostgresSettingsRepository{db: db}
}

func (r *PostgresSettingsRepository) Get(ctx context.Context) (*settings.Settings, error) {
	query := `SELECT guild_id, channel_id FROM bot_settings WHERE id`
	s := &settings.Settings{}
	err := r.db.QueryRowContext(ctx, query).Scan(&s.GuildID, &s.ChannelID)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrSettingsNotFound
		}
		return nil, fmt.Errorf("error getting bot settings: %w", err)
	}
	return s, nil
}

func (r *PostgresSettingsRepository) Save(ctx context.Context, s *settings.Settings) error {
	query := `INSERT INTO bot_settings (id, guild_id, channel_id, updated_at)
               VALUES (TRUE, $1, $2, NOW())
               ON CONFLICT (id) DO UPDATE
               SET guild_id = EXCLUDED.guild_id,
                   channel_id = EXCLUDED.channel_id,
                   updated_at = NOW()`

	if _, err := r.db.ExecContext(ctx, query, s.GuildID, s.ChannelID); err != nil {
		return fmt.Errorf("error saving bot settings: %w", err)
	}
	return nil
}
