package streak

import "context"

type Repository interface {
	FindByMember(ctx context.Context, memberID int) (*VisitStreak, error)
	Create(ctx context.Context, s *VisitStreak) (*VisitStreak, error)
	Update(ctx context.Context, s *VisitStreak) error
}
