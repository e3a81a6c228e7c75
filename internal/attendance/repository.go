package attendance

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

const recordColumns = `id, member_id, gym_id, membership_id, status,
		check_in_time, check_in_method, check_in_device, check_in_staff,
		check_out_time, check_out_method, check_out_device, duration_seconds,
		void_reason, voided_by, voided_at, created_at`

type repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) Repository {
	return &repository{db: db}
}

// Create inserts an open record. The one-open-session-per-member invariant is
// enforced by a partial unique index on (member_id) WHERE status = 'open';
// the violation maps to ErrAlreadyCheckedIn so concurrent check-ins for the
// same member cannot both succeed.
func (r *repository) Create(ctx context.Context, rec *Record) (*Record, error) {
	query := `
		INSERT INTO attendance_records (member_id, gym_id, membership_id, status,
			check_in_time, check_in_method, check_in_device, check_in_staff)
		VALUES ($1, $2, $3, 'open', $4, $5, $6, $7)
		RETURNING ` + recordColumns + `
	`

	var created Record
	err := r.db.GetContext(ctx, &created, query,
		rec.MemberID, rec.GymID, rec.MembershipID,
		rec.CheckInTime, rec.CheckInMethod, rec.CheckInDevice, rec.CheckInStaff)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return nil, ErrAlreadyCheckedIn
		}
		return nil, err
	}

	return &created, nil
}

func (r *repository) GetByID(ctx context.Context, id int) (*Record, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE id = $1
	`

	var rec Record
	err := r.db.GetContext(ctx, &rec, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrRecordNotFound
		}
		return nil, err
	}

	return &rec, nil
}

func (r *repository) FindOpenByMember(ctx context.Context, memberID int) (*Record, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE member_id = $1 AND status = 'open'
	`

	var rec Record
	err := r.db.GetContext(ctx, &rec, query, memberID)
	if err != nil {
		return nil, err
	}

	return &rec, nil
}

func (r *repository) Close(ctx context.Context, id int, method string, deviceID *string) (*Record, error) {
	query := `
		UPDATE attendance_records
		SET status = 'closed',
			check_out_time = NOW(),
			check_out_method = $2,
			check_out_device = $3,
			duration_seconds = GREATEST(0, CAST(EXTRACT(EPOCH FROM (NOW() - check_in_time)) AS INTEGER))
		WHERE id = $1 AND status = 'open'
		RETURNING ` + recordColumns + `
	`

	var rec Record
	err := r.db.GetContext(ctx, &rec, query, id, method, deviceID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrNotInProgress
		}
		return nil, err
	}

	return &rec, nil
}

func (r *repository) Void(ctx context.Context, id int, reason string, actorID int) (*Record, error) {
	query := `
		UPDATE attendance_records
		SET status = 'void', void_reason = $2, voided_by = $3, voided_at = NOW()
		WHERE id = $1 AND status != 'void'
		RETURNING ` + recordColumns + `
	`

	var rec Record
	err := r.db.GetContext(ctx, &rec, query, id, reason, actorID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrAlreadyVoid
		}
		return nil, err
	}

	return &rec, nil
}

func (r *repository) ListByMember(ctx context.Context, memberID, limit, offset int) ([]Record, error) {
	query := `
		SELECT ` + recordColumns + `
		FROM attendance_records
		WHERE member_id = $1
		ORDER BY check_in_time DESC
		LIMIT $2 OFFSET $3
	`

	var records []Record
	err := r.db.SelectContext(ctx, &records, query, memberID, limit, offset)
	if err != nil {
		return nil, err
	}

	return records, nil
}

func (r *repository) CountOpenByGym(ctx context.Context, gymID int) (int, error) {
	query := `
		SELECT COUNT(*)
		FROM attendance_records
		WHERE gym_id = $1 AND status = 'open'
	`

	var count int
	err := r.db.GetContext(ctx, &count, query, gymID)
	if err != nil {
		return 0, err
	}

	return count, nil
}
