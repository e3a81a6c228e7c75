package token

import (
	"context"
	"crypto/rand"
	"database/sql"
	"encoding/hex"
	"errors"
	"time"

	"gymgate/internal/metrics"
)

var (
	ErrTokenNotFound    = errors.New("entry token not found")
	ErrTokenAlreadyUsed = errors.New("entry token already used")
	ErrTokenExpired     = errors.New("entry token expired")
)

type Service interface {
	// Issue revokes every outstanding token for the member, then creates a
	// fresh one. At most one live token per member.
	Issue(ctx context.Context, memberID, gymID int) (*EntryToken, error)
	// Consume burns the token and resolves the identity it proves.
	Consume(ctx context.Context, value string) (memberID, gymID int, err error)
}

type service struct {
	repo Repository
	ttl  time.Duration
}

func NewService(repo Repository, ttl time.Duration) Service {
	return &service{repo: repo, ttl: ttl}
}

func (s *service) Issue(ctx context.Context, memberID, gymID int) (*EntryToken, error) {
	if err := s.repo.RevokeAllForMember(ctx, memberID); err != nil {
		return nil, err
	}

	value, err := randomValue(32)
	if err != nil {
		return nil, err
	}

	t, err := s.repo.Create(ctx, memberID, gymID, value, time.Now().UTC().Add(s.ttl))
	if err != nil {
		return nil, err
	}

	metrics.RecordTokenIssued()
	return t, nil
}

// Consume validates in a fixed order (existence, used, expired) so rejections
// are deterministic, then claims the token atomically. A revoked token is
// indistinguishable from a missing one.
func (s *service) Consume(ctx context.Context, value string) (int, int, error) {
	t, err := s.repo.FindByValue(ctx, value)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, 0, ErrTokenNotFound
		}
		return 0, 0, err
	}

	if t.Revoked() {
		return 0, 0, ErrTokenNotFound
	}
	if t.Used() {
		return 0, 0, ErrTokenAlreadyUsed
	}
	if t.ExpiredAt(time.Now().UTC()) {
		return 0, 0, ErrTokenExpired
	}

	claimed, err := s.repo.Claim(ctx, t.ID)
	if err != nil {
		return 0, 0, err
	}
	if !claimed {
		// Lost the race against a concurrent consume.
		return 0, 0, ErrTokenAlreadyUsed
	}

	return t.MemberID, t.GymID, nil
}

func randomValue(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
