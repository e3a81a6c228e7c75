package attendance

import "context"

type Repository interface {
	Create(ctx context.Context, r *Record) (*Record, error)
	GetByID(ctx context.Context, id int) (*Record, error)
	// FindOpenByMember returns the member's open session anywhere, or
	// sql.ErrNoRows when there is none.
	FindOpenByMember(ctx context.Context, memberID int) (*Record, error)
	// Close transitions an open record to closed, stamping checkout fields
	// and computing the duration. Fails with ErrNotInProgress otherwise.
	Close(ctx context.Context, id int, method string, deviceID *string) (*Record, error)
	// Void transitions an open or closed record to void.
	Void(ctx context.Context, id int, reason string, actorID int) (*Record, error)
	ListByMember(ctx context.Context, memberID, limit, offset int) ([]Record, error)
	CountOpenByGym(ctx context.Context, gymID int) (int, error)
}
