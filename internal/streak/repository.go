package streak

import (
	"context"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

const streakColumns = `id, member_id, current_streak, streak_start, longest_streak,
		longest_start, longest_end, last_visit_date, freeze_days_left,
		freeze_days_used, freeze_month, updated_at`

func (r *repository) FindByMember(ctx context.Context, memberID int) (*VisitStreak, error) {
	query := `
		SELECT ` + streakColumns + `
		FROM visit_streaks
		WHERE member_id = $1
	`

	var s VisitStreak
	err := r.db.GetContext(ctx, &s, query, memberID)
	if err != nil {
		return nil, err
	}

	return &s, nil
}

func (r *repository) Create(ctx context.Context, s *VisitStreak) (*VisitStreak, error) {
	query := `
		INSERT INTO visit_streaks (member_id, current_streak, streak_start,
			longest_streak, longest_start, longest_end, last_visit_date,
			freeze_days_left, freeze_days_used, freeze_month)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + streakColumns + `
	`

	var created VisitStreak
	err := r.db.GetContext(ctx, &created, query,
		s.MemberID, s.CurrentStreak, s.StreakStart,
		s.LongestStreak, s.LongestStart, s.LongestEnd, s.LastVisitDate,
		s.FreezeDaysLeft, s.FreezeDaysUsed, s.FreezeMonth)
	if err != nil {
		return nil, err
	}

	return &created, nil
}

func (r *repository) Update(ctx context.Context, s *VisitStreak) error {
	query := `
		UPDATE visit_streaks
		SET current_streak = $2, streak_start = $3, longest_streak = $4,
			longest_start = $5, longest_end = $6, last_visit_date = $7,
			freeze_days_left = $8, freeze_days_used = $9, freeze_month = $10,
			updated_at = NOW()
		WHERE id = $1
	`

	_, err := r.db.ExecContext(ctx, query,
		s.ID, s.CurrentStreak, s.StreakStart, s.LongestStreak,
		s.LongestStart, s.LongestEnd, s.LastVisitDate,
		s.FreezeDaysLeft, s.FreezeDaysUsed, s.FreezeMonth)
	return err
}
