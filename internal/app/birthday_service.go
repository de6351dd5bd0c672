package app

import (
	"context"
	"fmt"
	"sort"
	"time"

	"birthday_notification_bot/internal/domain/birthday"
	idb "birthday_notification_bot/internal/infra/database"
)

// Custom application-level errors for the birthday service.
var ErrBirthdayAlreadyRegistered = fmt.Errorf("this member already has a registered birthday")
var ErrInvalidDay = fmt.Errorf("day must be between 1 and 31")
var ErrInvalidMonth = fmt.Errorf("month must be between 1 and 12")
var ErrInvalidYear = fmt.Errorf("year is out of the accepted range")
var ErrInvalidDate = fmt.Errorf("day, month and year do not form a valid calendar date")
var ErrDateInFuture = fmt.Errorf("birth date cannot be in the future")

const minBirthYear = 1900

// BirthdayService handles registration and lookup of member birthdays.
type BirthdayService struct {
	birthdayRepo birthday.Repository
}

func NewBirthdayService(br birthday.Repository) *BirthdayService {
	return &BirthdayService{birthdayRepo: br}
}

// Register stores a new birthday for the member. Fails with
// ErrBirthdayAlreadyRegistered when one exists; members must use Update to
// change an existing registration.
func (s *BirthdayService) Register(ctx context.Context, userID string, day, month, year int) (*birthday.Birthday, error) {
	if err := validateBirthDate(day, month, year, time.Now()); err != nil {
		return nil, err
	}

	_, err := s.birthdayRepo.GetByUserID(ctx, userID)
	if err == nil {
		return nil, ErrBirthdayAlreadyRegistered
	}
	if err != idb.ErrBirthdayNotFound {
		return nil, fmt.Errorf("failed to check existing birthday: %w", err)
	}

	b := &birthday.Birthday{
		UserID:       userID,
		Day:          day,
		Month:        month,
		Year:         year,
		RegisteredAt: time.Now(),
	}
	if err := s.birthdayRepo.Create(ctx, b); err != nil {
		if err == idb.ErrDuplicateUserID {
			return nil, ErrBirthdayAlreadyRegistered
		}
		return nil, fmt.Errorf("failed to create birthday in repository: %w", err)
	}
	return b, nil
}

// Update changes the date of an existing registration. RegisteredAt is
// preserved. Propagates idb.ErrBirthdayNotFound when nothing is registered.
func (s *BirthdayService) Update(ctx context.Context, userID string, day, month, year int) (*birthday.Birthday, error) {
	if err := validateBirthDate(day, month, year, time.Now()); err != nil {
		return nil, err
	}

	b, err := s.birthdayRepo.GetByUserID(ctx, userID)
	if err != nil {
		if err == idb.ErrBirthdayNotFound {
			return nil, idb.ErrBirthdayNotFound
		}
		return nil, fmt.Errorf("failed to get birthday for update: %w", err)
	}

	b.Day = day
	b.Month = month
	b.Year = year
	if err := s.birthdayRepo.Update(ctx, b); err != nil {
		return nil, fmt.Errorf("failed to update birthday in repository: %w", err)
	}
	return b, nil
}

// Get returns the member's registration, or idb.ErrBirthdayNotFound.
func (s *BirthdayService) Get(ctx context.Context, userID string) (*birthday.Birthday, error) {
	return s.birthdayRepo.GetByUserID(ctx, userID)
}

// List returns all registrations sorted by month, then day.
func (s *BirthdayService) List(ctx context.Context) ([]*birthday.Birthday, error) {
	birthdays, err := s.birthdayRepo.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list birthdays: %w", err)
	}
	sort.Slice(birthdays, func(i, j int) bool {
		if birthdays[i].Month != birthdays[j].Month {
			return birthdays[i].Month < birthdays[j].Month
		}
		return birthdays[i].Day < birthdays[j].Day
	})
	return birthdays, nil
}

// validateBirthDate applies the registration rules: ranges, a real calendar
// date (Feb 30 or Feb 29 on a common year are rejected), and no future dates.
func validateBirthDate(day, month, year int, now time.Time) error {
	if day < 1 || day > 31 {
		return ErrInvalidDay
	}
	if month < 1 || month > 12 {
		return ErrInvalidMonth
	}
	if year < minBirthYear || year > now.Year() {
		return ErrInvalidYear
	}

	date := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.UTC)
	if date.Day() != day || date.Month() != time.Month(month) || date.Year() != year {
		return ErrInvalidDate
	}

	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	if date.After(today) {
		return ErrDateInFuture
	}
	return nil
}
