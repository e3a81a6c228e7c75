package streak

import "time"

// VisitStreak tracks a member's consecutive-day visit run. Dates are calendar
// days stored at UTC midnight; the streak counts at most one visit per day.
type VisitStreak struct {
	ID             int       `db:"id" json:"id"`
	MemberID       int       `db:"member_id" json:"member_id"`
	CurrentStreak  int       `db:"current_streak" json:"current_streak"`
	StreakStart    time.Time `db:"streak_start" json:"streak_start"`
	LongestStreak  int       `db:"longest_streak" json:"longest_streak"`
	LongestStart   time.Time `db:"longest_start" json:"longest_start"`
	LongestEnd     time.Time `db:"longest_end" json:"longest_end"`
	LastVisitDate  time.Time `db:"last_visit_date" json:"last_visit_date"`
	FreezeDaysLeft int       `db:"freeze_days_left" json:"freeze_days_left"`
	FreezeDaysUsed int       `db:"freeze_days_used" json:"freeze_days_used"`
	FreezeMonth    time.Time `db:"freeze_month" json:"-"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// Day truncates a timestamp to its UTC calendar day.
func Day(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Month truncates a timestamp to the first day of its UTC month.
func Month(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

// DaysBetween returns the whole calendar days from a to b.
func DaysBetween(a, b time.Time) int {
	return int(Day(b).Sub(Day(a)).Hours() / 24)
}
