package app

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	idb "birthday_notification_bot/internal/infra/database"
)

func TestBirthdayServiceRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("registers a valid birthday", func(t *testing.T) {
		svc := NewBirthdayService(idb.NewMemoryBirthdayRepository())

		b, err := svc.Register(ctx, "user-1", 15, 6, 1990)
		require.NoError(t, err)
		assert.Equal(t, "user-1", b.UserID)
		assert.Equal(t, 15, b.Day)
		assert.False(t, b.RegisteredAt.IsZero())
	})

	t.Run("rejects a second registration", func(t *testing.T) {
		svc := NewBirthdayService(idb.NewMemoryBirthdayRepository())

		_, err := svc.Register(ctx, "user-1", 15, 6, 1990)
		require.NoError(t, err)

		_, err = svc.Register(ctx, "user-1", 1, 1, 2000)
		assert.ErrorIs(t, err, ErrBirthdayAlreadyRegistered)
	})

	t.Run("accepts leap day", func(t *testing.T) {
		svc := NewBirthdayService(idb.NewMemoryBirthdayRepository())

		_, err := svc.Register(ctx, "user-1", 29, 2, 2000)
		assert.NoError(t, err)
	})

	t.Run("validation", func(t *testing.T) {
		tests := []struct {
			name    string
			day     int
			month   int
			year    int
			wantErr error
		}{
			{"day too low", 0, 6, 1990, ErrInvalidDay},
			{"day too high", 32, 6, 1990, ErrInvalidDay},
			{"month too low", 15, 0, 1990, ErrInvalidMonth},
			{"month too high", 15, 13, 1990, ErrInvalidMonth},
			{"year before minimum", 15, 6, 1899, ErrInvalidYear},
			{"year in future", 15, 6, time.Now().Year() + 1, ErrInvalidYear},
			{"february 30th", 30, 2, 1990, ErrInvalidDate},
			{"leap day on common year", 29, 2, 1999, ErrInvalidDate},
			{"april 31st", 31, 4, 1990, ErrInvalidDate},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				svc := NewBirthdayService(idb.NewMemoryBirthdayRepository())
				_, err := svc.Register(ctx, "user-1", tt.day, tt.month, tt.year)
				assert.ErrorIs(t, err, tt.wantErr)
			})
		}
	})

	t.Run("rejects date later this year", func(t *testing.T) {
		svc := NewBirthdayService(idb.NewMemoryBirthdayRepository())

		tomorrow := time.Now().AddDate(0, 0, 1)
		if tomorrow.Year() != time.Now().Year() {
			t.Skip("year rollover, future date would fail year validation instead")
		}

		_, err := svc.Register(ctx, "user-1", tomorrow.Day(), int(tomorrow.Month()), tomorrow.Year())
		assert.ErrorIs(t, err, ErrDateInFuture)
	})
}

func TestBirthdayServiceUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("updates an existing registration", func(t *testing.T) {
		repo := idb.NewMemoryBirthdayRepository()
		svc := NewBirthdayService(repo)

		original, err := svc.Register(ctx, "user-1", 15, 6, 1990)
		require.NoError(t, err)

		updated, err := svc.Update(ctx, "user-1", 20, 7, 1991)
		require.NoError(t, err)
		assert.Equal(t, 20, updated.Day)
		assert.Equal(t, 7, updated.Month)
		assert.Equal(t, 1991, updated.Year)
		assert.Equal(t, original.RegisteredAt, updated.RegisteredAt)
	})

	t.Run("fails without an existing registration", func(t *testing.T) {
		svc := NewBirthdayService(idb.NewMemoryBirthdayRepository())

		_, err := svc.Update(ctx, "user-1", 20, 7, 1991)
		assert.ErrorIs(t, err, idb.ErrBirthdayNotFound)
	})

	t.Run("validates the new date", func(t *testing.T) {
		svc := NewBirthdayService(idb.NewMemoryBirthdayRepository())

		_, err := svc.Register(ctx, "user-1", 15, 6, 1990)
		require.NoError(t, err)

		_, err = svc.Update(ctx, "user-1", 31, 2, 1990)
		assert.ErrorIs(t, err, ErrInvalidDate)
	})
}

func TestBirthdayServiceList(t *testing.T) {
	ctx := context.Background()
	svc := NewBirthdayService(idb.NewMemoryBirthdayRepository())

	_, err := svc.Register(ctx, "december", 25, 12, 1990)
	require.NoError(t, err)
	_, err = svc.Register(ctx, "june-early", 1, 6, 1990)
	require.NoError(t, err)
	_, err = svc.Register(ctx, "june-late", 30, 6, 1990)
	require.NoError(t, err)

	birthdays, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, birthdays, 3)
	assert.Equal(t, "june-early", birthdays[0].UserID)
	assert.Equal(t, "june-late", birthdays[1].UserID)
	assert.Equal(t, "december", birthdays[2].UserID)
}
