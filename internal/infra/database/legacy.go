package database

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"birthday_notification_bot/internal/domain/birthday"
	"birthday_notification_bot/internal/domain/notification"
	"birthday_notification_bot/internal/domain/settings"

	"github.com/sirupsen/logrus"
)

// Legacy file-based data layout: three JSON files in one directory.
const (
	legacyBirthdaysFile     = "birthdays.json"
	legacyNotificationsFile = "notifications.json"
	legacyConfigFile        = "config.json"
)

// lastNotified in the legacy files is a JS Date#toDateString value,
// e.g. "Sat Jun 15 2024".
const legacyDateLayout = "Mon Jan 02 2006"

type legacyBirthday struct {
	UserID       string `json:"userId"`
	Day          int    `json:"day"`
	Month        int    `json:"month"`
	Year         int    `json:"year"`
	RegisteredAt string `json:"registeredAt"`
}

type legacyNotification struct {
	UserID         string `json:"userId"`
	LastNotified   string `json:"lastNotified"`
	MessageIndices []int  `json:"messageIndices"`
}

type legacyConfig struct {
	BirthdayChannelID string `json:"birthdayChannelId"`
	GuildID           string `json:"guildId"`
}

// ImportLegacyData loads birthdays, notification records and the channel
// configuration from the legacy JSON files in dataDir into the given
// repositories. The import is skipped entirely when the target stores
// already hold data, so it is safe to call on every startup. Missing files
// are not an error.
func ImportLegacyData(
	ctx context.Context,
	dataDir string,
	birthdayRepo birthday.Repository,
	notifRepo notification.Repository,
	settingsRepo settings.Repository,
	logger *logrus.Entry,
) error {
	existing, err := birthdayRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to check existing birthdays before import: %w", err)
	}
	cfg, err := settingsRepo.Get(ctx)
	if err != nil && err != ErrSettingsNotFound {
		return fmt.Errorf("failed to check existing settings before import: %w", err)
	}
	if len(existing) > 0 || (cfg != nil && cfg.Configured()) {
		logger.Info("Store already holds data, skipping legacy import")
		return nil
	}

	if err := importLegacyBirthdays(ctx, filepath.Join(dataDir, legacyBirthdaysFile), birthdayRepo, logger); err != nil {
		return err
	}
	if err := importLegacyNotifications(ctx, filepath.Join(dataDir, legacyNotificationsFile), notifRepo, logger); err != nil {
		return err
	}
	if err := importLegacyConfig(ctx, filepath.Join(dataDir, legacyConfigFile), settingsRepo, logger); err != nil {
		return err
	}
	return nil
}

func importLegacyBirthdays(ctx context.Context, path string, repo birthday.Repository, logger *logrus.Entry) error {
	var entries []legacyBirthday
	found, err := readLegacyFile(path, &entries)
	if err != nil || !found {
		return err
	}

	imported := 0
	for _, e := range entries {
		registeredAt, parseErr := time.Parse(time.RFC3339, e.RegisteredAt)
		if parseErr != nil {
			registeredAt = time.Now()
		}
		b := &birthday.Birthday{
			UserID:       e.UserID,
			Day:          e.Day,
			Month:        e.Month,
			Year:         e.Year,
			RegisteredAt: registeredAt,
		}
		if err := repo.Create(ctx, b); err != nil {
			if err == ErrDuplicateUserID {
				continue
			}
			return fmt.Errorf("failed to import birthday for user %s: %w", e.UserID, err)
		}
		imported++
	}
	logger.WithField("count", imported).Info("Imported legacy birthdays")
	return nil
}

func importLegacyNotifications(ctx context.Context, path string, repo notification.Repository, logger *logrus.Entry) error {
	var entries []legacyNotification
	found, err := readLegacyFile(path, &entries)
	if err != nil || !found {
		return err
	}

	imported := 0
	for _, e := range entries {
		lastNotified, parseErr := time.Parse(legacyDateLayout, e.LastNotified)
		if parseErr != nil {
			logger.WithFields(logrus.Fields{
				"user_id": e.UserID,
				"value":   e.LastNotified,
			}).Warn("Skipping legacy notification with unparseable date")
			continue
		}
		rec := &notification.Record{
			UserID:         e.UserID,
			LastNotified:   lastNotified,
			MessageHistory: e.MessageIndices,
		}
		if err := repo.Save(ctx, rec); err != nil {
			return fmt.Errorf("failed to import notification record for user %s: %w", e.UserID, err)
		}
		imported++
	}
	logger.WithField("count", imported).Info("Imported legacy notification records")
	return nil
}

func importLegacyConfig(ctx context.Context, path string, repo settings.Repository, logger *logrus.Entry) error {
	var cfg legacyConfig
	found, err := readLegacyFile(path, &cfg)
	if err != nil || !found {
		return err
	}
	if cfg.BirthdayChannelID == "" {
		return nil
	}

	s := &settings.Settings{GuildID: cfg.GuildID, ChannelID: cfg.BirthdayChannelID}
	if err := repo.Save(ctx, s); err != nil {
		return fmt.Errorf("failed to import legacy channel configuration: %w", err)
	}
	logger.WithField("channel_id", cfg.BirthdayChannelID).Info("Imported legacy channel configuration")
	return nil
}

// readLegacyFile reads and unmarshals one legacy file into dst. Returns
// found=false when the file does not exist.
func readLegacyFile(path string, dst interface{}) (bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to read legacy file %s: %w", path, err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return false, fmt.Errorf("failed to parse legacy file %s: %w", path, err)
	}
	return true, nil
}
