package database

import (
	"context"
	"testing"
	"time"

	"birthday_notification_bot/internal/domain/birthday"
	"birthday_notification_bot/internal/domain/notification"
	"birthday_notification_bot/internal/domain/settings"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBirthdayRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		repo := NewMemoryBirthdayRepository()
		b := &birthday.Birthday{UserID: "user-1", Day: 15, Month: 6, Year: 1990, RegisteredAt: time.Now()}
		require.NoError(t, repo.Create(ctx, b))

		got, err := repo.GetByUserID(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 15, got.Day)
		assert.Equal(t, 6, got.Month)
		assert.Equal(t, 1990, got.Year)
	})

	t.Run("create duplicate fails", func(t *testing.T) {
		repo := NewMemoryBirthdayRepository()
		b := &birthday.Birthday{UserID: "user-1", Day: 15, Month: 6, Year: 1990}
		require.NoError(t, repo.Create(ctx, b))

		err := repo.Create(ctx, &birthday.Birthday{UserID: "user-1", Day: 1, Month: 1, Year: 2000})
		assert.ErrorIs(t, err, ErrDuplicateUserID)
	})

	t.Run("get missing returns not found", func(t *testing.T) {
		repo := NewMemoryBirthdayRepository()
		_, err := repo.GetByUserID(ctx, "nobody")
		assert.ErrorIs(t, err, ErrBirthdayNotFound)
	})

	t.Run("update preserves registration time", func(t *testing.T) {
		repo := NewMemoryBirthdayRepository()
		registeredAt := time.Date(2023, 1, 1, 12, 0, 0, 0, time.UTC)
		require.NoError(t, repo.Create(ctx, &birthday.Birthday{
			UserID: "user-1", Day: 15, Month: 6, Year: 1990, RegisteredAt: registeredAt,
		}))

		updated := &birthday.Birthday{UserID: "user-1", Day: 20, Month: 7, Year: 1991}
		require.NoError(t, repo.Update(ctx, updated))

		got, err := repo.GetByUserID(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, 20, got.Day)
		assert.Equal(t, 7, got.Month)
		assert.Equal(t, registeredAt, got.RegisteredAt)
	})

	t.Run("update missing returns not found", func(t *testing.T) {
		repo := NewMemoryBirthdayRepository()
		err := repo.Update(ctx, &birthday.Birthday{UserID: "nobody", Day: 1, Month: 1, Year: 2000})
		assert.ErrorIs(t, err, ErrBirthdayNotFound)
	})

	t.Run("list all sorted by month then day", func(t *testing.T) {
		repo := NewMemoryBirthdayRepository()
		require.NoError(t, repo.Create(ctx, &birthday.Birthday{UserID: "december", Day: 25, Month: 12, Year: 1990}))
		require.NoError(t, repo.Create(ctx, &birthday.Birthday{UserID: "march", Day: 3, Month: 3, Year: 1990}))
		require.NoError(t, repo.Create(ctx, &birthday.Birthday{UserID: "january", Day: 10, Month: 1, Year: 1990}))

		all, err := repo.ListAll(ctx)
		require.NoError(t, err)
		require.Len(t, all, 3)
		assert.Equal(t, "january", all[0].UserID)
		assert.Equal(t, "march", all[1].UserID)
		assert.Equal(t, "december", all[2].UserID)
	})
}

func TestMemoryNotificationRepository(t *testing.T) {
	ctx := context.Background()
	day := time.Date(2024, 6, 15, 0, 0, 0, 0, time.UTC)

	t.Run("mark notified creates record", func(t *testing.T) {
		repo := NewMemoryNotificationRepository()
		require.NoError(t, repo.MarkNotified(ctx, "user-1", day, 4))

		rec, err := repo.GetByUserID(ctx, "user-1")
		require.NoError(t, err)
		assert.True(t, rec.LastNotified.Equal(day))
		assert.Equal(t, []int{4}, rec.MessageHistory)
	})

	t.Run("mark notified appends to history", func(t *testing.T) {
		repo := NewMemoryNotificationRepository()
		require.NoError(t, repo.MarkNotified(ctx, "user-1", day, 4))
		require.NoError(t, repo.MarkNotified(ctx, "user-1", day.AddDate(1, 0, 0), 9))

		rec, err := repo.GetByUserID(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, []int{4, 9}, rec.MessageHistory)
		assert.True(t, rec.LastNotified.Equal(day.AddDate(1, 0, 0)))
	})

	t.Run("get missing returns not found", func(t *testing.T) {
		repo := NewMemoryNotificationRepository()
		_, err := repo.GetByUserID(ctx, "nobody")
		assert.ErrorIs(t, err, ErrNotificationNotFound)
	})

	t.Run("save replaces whole record", func(t *testing.T) {
		repo := NewMemoryNotificationRepository()
		require.NoError(t, repo.MarkNotified(ctx, "user-1", day, 4))

		require.NoError(t, repo.Save(ctx, &notification.Record{
			UserID:         "user-1",
			LastNotified:   day.AddDate(0, 1, 0),
			MessageHistory: []int{1, 2, 3},
		}))

		rec, err := repo.GetByUserID(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, []int{1, 2, 3}, rec.MessageHistory)
	})

	t.Run("returned records are copies", func(t *testing.T) {
		repo := NewMemoryNotificationRepository()
		require.NoError(t, repo.MarkNotified(ctx, "user-1", day, 4))

		rec, err := repo.GetByUserID(ctx, "user-1")
		require.NoError(t, err)
		rec.MessageHistory[0] = 99

		again, err := repo.GetByUserID(ctx, "user-1")
		require.NoError(t, err)
		assert.Equal(t, []int{4}, again.MessageHistory)
	})

	t.Run("list all", func(t *testing.T) {
		repo := NewMemoryNotificationRepository()
		require.NoError(t, repo.MarkNotified(ctx, "user-a", day, 0))
		require.NoError(t, repo.MarkNotified(ctx, "user-b", day, 1))

		all, err := repo.ListAll(ctx)
		require.NoError(t, err)
		assert.Len(t, all, 2)
	})
}

func TestMemorySettingsRepository(t *testing.T) {
	ctx := context.Background()

	t.Run("get before save returns not found", func(t *testing.T) {
		repo := NewMemorySettingsRepository()
		_, err := repo.Get(ctx)
		assert.ErrorIs(t, err, ErrSettingsNotFound)
	})

	t.Run("save then get", func(t *testing.T) {
		repo := NewMemorySettingsRepository()
		require.NoError(t, repo.Save(ctx, &settings.Settings{GuildID: "guild-1", ChannelID: "channel-1"}))

		got, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, "guild-1", got.GuildID)
		assert.Equal(t, "channel-1", got.ChannelID)
	})

	t.Run("save overwrites", func(t *testing.T) {
		repo := NewMemorySettingsRepository()
		require.NoError(t, repo.Save(ctx, &settings.Settings{GuildID: "guild-1", ChannelID: "channel-1"}))
		require.NoError(t, repo.Save(ctx, &settings.Settings{GuildID: "guild-1", ChannelID: "channel-2"}))

		got, err := repo.Get(ctx)
		require.NoError(t, err)
		assert.Equal(t, "channel-2", got.ChannelID)
	})
}
