package notification

import "time"

// Record tracks the announcements already sent to one member.
// Corresponds to the 'birthday_notifications' table.
type Record struct {
	UserID       string
	LastNotified time.Time // Date-only precision; the time part is ignored
	// MessageHistory holds the catalog indices of every announcement sent
	// to this member, in send order. Append-only.
	MessageHistory []int
}

// NotifiedOn reports whether the member was already announced on the given
// calendar date. Comparison is exact date equality, not timestamp proximity;
// this is what keeps repeated checks within one day from sending twice.
func (r *Record) NotifiedOn(date time.Time) bool {
	y1, m1, d1 := r.LastNotified.Date()
	y2, m2, d2 := date.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
