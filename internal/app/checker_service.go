package app

import (
	"context"
	"fmt"
	"time"

	"birthday_notification_bot/internal/catalog"
	"birthday_notification_bot/internal/domain/birthday"
	domainDiscord "birthday_notification_bot/internal/domain/discord"
	"birthday_notification_bot/internal/domain/notification"
	"birthday_notification_bot/internal/domain/settings"
	idb "birthday_notification_bot/internal/infra/database"

	"github.com/sirupsen/logrus"
)

// BirthdayChecker defines the operation driven by the scheduler: one full
// check-and-announce cycle for the given reference date.
type BirthdayChecker interface {
	CheckBirthdays(ctx context.Context, today time.Time) error
}

// CheckerService implements the BirthdayChecker interface. It finds members
// whose birthday falls on the reference date, drops the ones already
// announced that day, and posts one announcement each, recording the sent
// catalog index only after a successful delivery.
type CheckerService struct {
	birthdayRepo birthday.Repository
	notifRepo    notification.Repository
	settingsRepo settings.Repository
	announcer    domainDiscord.Announcer
	catalog      *catalog.Catalog
	logger       *logrus.Entry
}

func NewCheckerService(
	br birthday.Repository,
	nr notification.Repository,
	sr settings.Repository,
	announcer domainDiscord.Announcer,
	cat *catalog.Catalog,
	logger *logrus.Entry,
) *CheckerService {
	return &CheckerService{
		birthdayRepo: br,
		notifRepo:    nr,
		settingsRepo: sr,
		announcer:    announcer,
		catalog:      cat,
		logger:       logger,
	}
}

// CheckBirthdays runs one cycle. Store load failures abort the cycle;
// per-member failures are logged and skip only that member, leaving their
// notification record untouched so the next cycle retries them.
func (s *CheckerService) CheckBirthdays(ctx context.Context, today time.Time) error {
	if s.catalog.Size() == 0 {
		s.logger.Warn("Message catalog is empty, skipping birthday check")
		return nil
	}

	birthdays, err := s.birthdayRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load birthdays: %w", err)
	}
	records, err := s.notifRepo.ListAll(ctx)
	if err != nil {
		return fmt.Errorf("failed to load notification records: %w", err)
	}

	recordsByUser := make(map[string]*notification.Record, len(records))
	for _, rec := range records {
		recordsByUser[rec.UserID] = rec
	}

	pending := pendingAnnouncements(birthdays, recordsByUser, today)
	if len(pending) == 0 {
		s.logger.WithField("date", today.Format("2006-01-02")).Debug("No birthdays pending announcement")
		return nil
	}
	s.logger.WithField("pending_count", len(pending)).Info("Found birthdays pending announcement")

	cfg, err := s.settingsRepo.Get(ctx)
	if err != nil && err != idb.ErrSettingsNotFound {
		return fmt.Errorf("failed to load bot settings: %w", err)
	}

	for _, b := range pending {
		s.announceBirthday(ctx, b, recordsByUser[b.UserID], cfg, today)
	}
	return nil
}

// announceBirthday handles a single member. Nothing here mutates state
// unless the delivery succeeded.
func (s *CheckerService) announceBirthday(
	ctx context.Context,
	b *birthday.Birthday,
	rec *notification.Record,
	cfg *settings.Settings,
	today time.Time,
) {
	memberLogger := s.logger.WithField("user_id", b.UserID)

	channelID, err := s.announcer.ResolveDestination(ctx, cfg)
	if err != nil {
		memberLogger.WithError(err).Warn("Cannot resolve announcement destination, skipping member")
		return
	}

	var history []int
	if rec != nil {
		history = rec.MessageHistory
	}
	index, err := s.catalog.Pick(history)
	if err != nil {
		memberLogger.WithError(err).Warn("Cannot pick announcement message, skipping member")
		return
	}
	entry, err := s.catalog.Entry(index)
	if err != nil {
		memberLogger.WithError(err).Error("Picked catalog index out of range, skipping member")
		return
	}

	announcement := &domainDiscord.Announcement{
		UserID:   b.UserID,
		Text:     entry.Text,
		ImageURL: entry.ImageURL,
		Age:      b.AgeOn(today),
		Day:      b.Day,
		Month:    b.Month,
	}
	if err := s.announcer.Announce(ctx, channelID, announcement); err != nil {
		memberLogger.WithError(err).Error("Failed to deliver birthday announcement, member stays eligible for retry")
		return
	}

	if err := s.notifRepo.MarkNotified(ctx, b.UserID, today, index); err != nil {
		// The announcement went out but the record didn't stick; the member
		// may be announced again next cycle. Logged loudly for operators.
		memberLogger.WithError(err).Error("Announcement delivered but recording it failed")
		return
	}

	memberLogger.WithFields(logrus.Fields{
		"message_index": index,
		"age":           announcement.Age,
	}).Info("Birthday announcement sent")
}

// pendingAnnouncements returns the members due on the reference date that
// have not been announced on that date yet. Output order is unspecified.
func pendingAnnouncements(
	birthdays []*birthday.Birthday,
	recordsByUser map[string]*notification.Record,
	today time.Time,
) []*birthday.Birthday {
	pending := make([]*birthday.Birthday, 0)
	for _, b := range birthdays {
		if !b.IsDueOn(today) {
			continue
		}
		if rec, ok := recordsByUser[b.UserID]; ok && rec.NotifiedOn(today) {
			continue
		}
		pending = append(pending, b)
	}
	return pending
}
