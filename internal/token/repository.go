package token

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
)

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

func (r *repository) Create(ctx context.Context, memberID, gymID int, value string, expiresAt time.Time) (*EntryToken, error) {
	query := `
		INSERT INTO entry_tokens (member_id, gym_id, value, expires_at)
		VALUES ($1, $2, $3, $4)
		RETURNING id, member_id, gym_id, value, expires_at, used_at, revoked_at, created_at
	`

	var t EntryToken
	err := r.db.GetContext(ctx, &t, query, memberID, gymID, value, expiresAt)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

func (r *repository) FindByValue(ctx context.Context, value string) (*EntryToken, error) {
	query := `
		SELECT id, member_id, gym_id, value, expires_at, used_at, revoked_at, created_at
		FROM entry_tokens
		WHERE value = $1
	`

	var t EntryToken
	err := r.db.GetContext(ctx, &t, query, value)
	if err != nil {
		return nil, err
	}

	return &t, nil
}

// Claim is the single-use gate: only the first caller observes a row change,
// so two concurrent consumers of the same token get exactly one success.
func (r *repository) Claim(ctx context.Context, id int) (bool, error) {
	query := `
		UPDATE entry_tokens
		SET used_at = NOW()
		WHERE id = $1 AND used_at IS NULL
	`

	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return false, err
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}

	return rowsAffected == 1, nil
}

func (r *repository) RevokeAllForMember(ctx context.Context, memberID int) error {
	query := `
		UPDATE entry_tokens
		SET revoked_at = NOW()
		WHERE member_id = $1 AND used_at IS NULL AND revoked_at IS NULL
	`

	_, err := r.db.ExecContext(ctx, query, memberID)
	return err
}
