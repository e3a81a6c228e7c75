package token

import (
	"context"
	"time"
)

type Repository interface {
	Create(ctx context.Context, memberID, gymID int, value string, expiresAt time.Time) (*EntryToken, error)
	FindByValue(ctx context.Context, value string) (*EntryToken, error)
	// Claim marks the token used and reports whether this call won the claim.
	Claim(ctx context.Context, id int) (bool, error)
	RevokeAllForMember(ctx context.Context, memberID int) error
}
