package birthday

import (
	"time"
)

// Birthday represents a guild member's registered birth date.
// Corresponds to the 'birthdays' table.
type Birthday struct {
	UserID       string // Discord user ID (snowflake), unique key
	Day          int
	Month        int
	Year         int // Birth year, used for age display only
	RegisteredAt time.Time
}

// IsDueOn reports whether the birthday should be celebrated on the given
// date. The year is ignored. A Feb 29 birthday is celebrated on Feb 28 in
// non-leap years, so every member gets exactly one announcement per year.
func (b *Birthday) IsDueOn(date time.Time) bool {
	day, month := date.Day(), int(date.Month())
	if b.Day == 29 && b.Month == 2 && !isLeapYear(date.Year()) {
		return day == 28 && month == 2
	}
	return b.Day == day && b.Month == month
}

// AgeOn returns the member's age on the given date.
func (b *Birthday) AgeOn(date time.Time) int {
	age := date.Year() - b.Year
	if int(date.Month()) < b.Month || (int(date.Month()) == b.Month && date.Day() < b.Day) {
		age--
	}
	return age
}

// NextOccurrence returns the date of the next birthday on or after the given
// date, at midnight in the same location.
func (b *Birthday) NextOccurrence(from time.Time) time.Time {
	from = atMidnight(from)
	next := time.Date(from.Year(), time.Month(b.Month), b.Day, 0, 0, 0, 0, from.Location())
	if next.Before(from) {
		next = time.Date(from.Year()+1, time.Month(b.Month), b.Day, 0, 0, 0, 0, from.Location())
	}
	return next
}

// DaysUntil returns how many whole days remain until the next birthday.
// Zero means the birthday is today.
func (b *Birthday) DaysUntil(from time.Time) int {
	return int(b.NextOccurrence(from).Sub(atMidnight(from)).Hours() / 24)
}

func atMidnight(t time.Time) time.Time {
	year, month, day := t.Date()
	return time.Date(year, month, day, 0, 0, 0, 0, t.Location())
}

func isLeapYear(year int) bool {
	return year%4 == 0 && (year%100 != 0 || year%400 == 0)
}
