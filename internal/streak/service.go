package streak

import (
	"context"
	"database/sql"
	"errors"
	"time"
)

var ErrStreakNotFound = errors.New("no streak recorded for member")

type Service interface {
	// RecordVisit folds one visit into the member's streak. Repeated visits
	// on the same calendar day are a no-op.
	RecordVisit(ctx context.Context, memberID int, visitDate time.Time) error
	GetByMember(ctx context.Context, memberID int) (*VisitStreak, error)
}

type service struct {
	repo               Repository
	freezeDaysPerMonth int
}

func NewService(repo Repository, freezeDaysPerMonth int) Service {
	return &service{repo: repo, freezeDaysPerMonth: freezeDaysPerMonth}
}

func (s *service) GetByMember(ctx context.Context, memberID int) (*VisitStreak, error) {
	st, err := s.repo.FindByMember(ctx, memberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrStreakNotFound
		}
		return nil, err
	}
	return st, nil
}

func (s *service) RecordVisit(ctx context.Context, memberID int, visitDate time.Time) error {
	day := Day(visitDate)

	st, err := s.repo.FindByMember(ctx, memberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			_, err = s.repo.Create(ctx, &VisitStreak{
				MemberID:       memberID,
				CurrentStreak:  1,
				StreakStart:    day,
				LongestStreak:  1,
				LongestStart:   day,
				LongestEnd:     day,
				LastVisitDate:  day,
				FreezeDaysLeft: s.freezeDaysPerMonth,
				FreezeMonth:    Month(day),
			})
			return err
		}
		return err
	}

	gap := DaysBetween(st.LastVisitDate, day)
	if gap <= 0 {
		// Same day (or an out-of-order replayed job): nothing to count.
		return nil
	}

	// Freeze-day budget refills when the calendar month rolls over.
	if !Month(day).Equal(st.FreezeMonth) {
		st.FreezeDaysLeft = s.freezeDaysPerMonth
		st.FreezeDaysUsed = 0
		st.FreezeMonth = Month(day)
	}

	switch {
	case gap == 1:
		st.CurrentStreak++
	case gap == 2 && st.FreezeDaysLeft > 0:
		// One missed day forgiven at the cost of a freeze credit.
		st.FreezeDaysLeft--
		st.FreezeDaysUsed++
		st.CurrentStreak++
	default:
		st.CurrentStreak = 1
		st.StreakStart = day
	}

	if st.CurrentStreak > st.LongestStreak {
		st.LongestStreak = st.CurrentStreak
		st.LongestStart = st.StreakStart
		st.LongestEnd = day
	}

	st.LastVisitDate = day
	return s.repo.Update(ctx, st)
}
