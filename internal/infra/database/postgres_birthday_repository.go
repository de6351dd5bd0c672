package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"birthday_notification_bot/internal/domain/birthday"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// Custom errors
var ErrBirthdayNotFound = fmt.Errorf("birthday not found")
var ErrDuplicateUserID = fmt.Errorf("birthday for this user already exists")

type PostgresBirthdayRepository struct {
	db *sql.DB
}

func NewPostgresBirthdayRepository(db *sql.DB) *PostgresBirthdayRepository {
	return &PostgresBirthdayRepository{db: db}
}

func (r *PostgresBirthdayRepository) Create(ctx context.Context, b *birthday.Birthday) error {
	query := `INSERT INTO birthdays (user_id, day, month, year, registered_at)
               VALUES ($1, $2, $3, $4, $5)
               RETURNING registered_at`

	err := r.db.QueryRowContext(ctx, query, b.UserID, b.Day, b.Month, b.Year, b.RegisteredAt).Scan(&b.RegisteredAt)
	if err != nil {
		if strings.Contains(err.Error(), "unique constraint") || strings.Contains(err.Error(), "birthdays_pkey") {
			return ErrDuplicateUserID
		}
		return fmt.Errorf("error creating birthday: %w", err)
	}
	return nil
}

func (r *PostgresBirthdayRepository) GetByUserID(ctx context.Context, userID string) (*birthday.Birthday, error) {
	query := `SELECT user_id, day, month, year, registered_at
               FROM birthdays WHERE user_id = $1`
	b := &birthday.Birthday{}
	err := r.db.QueryRowContext(ctx, query, userID).Scan(&b.UserID, &b.Day, &b.Month, &b.Year, &b.RegisteredAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, ErrBirthdayNotFound
		}
		return nil, fmt.Errorf("error getting birthday by user ID: %w", err)
	}
	return b, nil
}

func (r *PostgresBirthdayRepository) Update(ctx context.Context, b *birthday.Birthday) error {
	query := `UPDATE birthdays
               SET day = $1, month = $2, year = $3
               WHERE user_id = $4
               RETURNING registered_at`

	err := r.db.QueryRowContext(ctx, query, b.Day, b.Month, b.Year, b.UserID).Scan(&b.RegisteredAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return ErrBirthdayNotFound
		}
		return fmt.Errorf("error updating birthday: %w", err)
	}
	return nil
}

func (r *PostgresBirthdayRepository) ListAll(ctx context.Context) ([]*birthday.Birthday, error) {
	query := `SELECT user_id, day, month, year, registered_at
               FROM birthdays ORDER BY month, day`

	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("error listing birthdays: %w", err)
	}
	defer rows.Close()

	birthdays := make([]*birthday.Birthday, 0)
	for rows.Next() {
		b := &birthday.Birthday{}
		if err := rows.Scan(&b.UserID, &b.Day, &b.Month, &b.Year, &b.RegisteredAt); err != nil {
			return nil, fmt.Errorf("error scanning birthday: %w", err)
		}
		birthdays = append(birthdays, b)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating birthdays: %w", err)
	}
	return birthdays, nil
}
