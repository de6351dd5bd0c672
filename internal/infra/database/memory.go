package database

import (
	"context"
	"sort"
	"sync"
	"time"

	"birthday_notification_bot/internal/domain/birthday"
	"birthday_notification_bot/internal/domain/notification"
	"birthday_notification_bot/internal/domain/settings"
)

// In-memory repository implementations. Used in tests and for running the
// bot without a database.

type MemoryBirthdayRepository struct {
	mu        sync.RWMutex
	birthdays map[string]birthday.Birthday
}

func NewMemoryBirthdayRepository() *MemoryBirthdayRepository {
	return &MemoryBirthdayRepository{birthdays: make(map[string]birthday.Birthday)}
}

func (r *MemoryBirthdayRepository) Create(_ context.Context, b *birthday.Birthday) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.birthdays[b.UserID]; exists {
		return ErrDuplicateUserID
	}
	r.birthdays[b.UserID] = *b
	return nil
}

func (r *MemoryBirthdayRepository) GetByUserID(_ context.Context, userID string) (*birthday.Birthday, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	b, ok := r.birthdays[userID]
	if !ok {
		return nil, ErrBirthdayNotFound
	}
	copied := b
	return &copied, nil
}

func (r *MemoryBirthdayRepository) Update(_ context.Context, b *birthday.Birthday) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	existing, ok := r.birthdays[b.UserID]
	if !ok {
		return ErrBirthdayNotFound
	}
	b.RegisteredAt = existing.RegisteredAt
	r.birthdays[b.UserID] = *b
	return nil
}

func (r *MemoryBirthdayRepository) ListAll(_ context.Context) ([]*birthday.Birthday, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*birthday.Birthday, 0, len(r.birthdays))
	for _, b := range r.birthdays {
		copied := b
		out = append(out, &copied)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Month != out[j].Month {
			return out[i].Month < out[j].Month
		}
		if out[i].Day != out[j].Day {
			return out[i].Day < out[j].Day
		}
		return out[i].UserID < out[j].UserID
	})
	return out, nil
}

type MemoryNotificationRepository struct {
	mu      sync.RWMutex
	records map[string]notification.Record
}

func NewMemoryNotificationRepository() *MemoryNotificationRepository {
	return &MemoryNotificationRepository{records: make(map[string]notification.Record)}
}

func (r *MemoryNotificationRepository) GetByUserID(_ context.Context, userID string) (*notification.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[userID]
	if !ok {
		return nil, ErrNotificationNotFound
	}
	return copyRecord(rec), nil
}

func (r *MemoryNotificationRepository) ListAll(_ context.Context) ([]*notification.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]*notification.Record, 0, len(r.records))
	for _, rec := range r.records {
		out = append(out, copyRecord(rec))
	}
	sort.Slice(out, func(i, j int) bool { return out[i].UserID < out[j].UserID })
	return out, nil
}

func (r *MemoryNotificationRepository) Save(_ context.Context, rec *notification.Record) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records[rec.UserID] = *copyRecord(*rec)
	return nil
}

func (r *MemoryNotificationRepository) MarkNotified(_ context.Context, userID string, date time.Time, messageIndex int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	rec := r.records[userID]
	rec.UserID = userID
	rec.LastNotified = time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, time.UTC)
	rec.MessageHistory = append(rec.MessageHistory, messageIndex)
	r.records[userID] = rec
	return nil
}

func copyRecord(rec notification.Record) *notification.Record {
	copied := rec
	copied.MessageHistory = append([]int(nil), rec.MessageHistory...)
	return &copied
}

type MemorySettingsRepository struct {
	mu       sync.RWMutex
	settings *settings.Settings
}

func NewMemorySettingsRepository() *MemorySettingsRepository {
	return &MemorySettingsRepository{}
}

func (r *MemorySettingsRepository) Get(_ context.Context) (*settings.Settings, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if r.settings == nil {
		return nil, ErrSettingsNotFound
	}
	copied := *r.settings
	return &copied, nil
}

func (r *MemorySettingsRepository) Save(_ context.Context, s *settings.Settings) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	copied := *s
	r.settings = &copied
	return nil
}
