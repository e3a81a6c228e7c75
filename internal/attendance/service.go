package attendance

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"gymgate/internal/gym"
	"gymgate/internal/logger"
	"gymgate/internal/membership"
	"gymgate/internal/metrics"
	"gymgate/internal/occupancy"
	"gymgate/internal/streak"
	"gymgate/internal/token"
)

// Service is the admission orchestrator: it sequences token consumption,
// membership validation, capacity admission, record creation and the streak
// enqueue into one check-in, and mirrors it for check-out.
type Service interface {
	CheckIn(ctx context.Context, req CheckInRequest) (*Record, error)
	CheckOut(ctx context.Context, req CheckOutRequest) (*Record, error)
	History(ctx context.Context, memberID, limit, offset int) ([]Record, error)
	Void(ctx context.Context, recordID int, reason string, actorID int) (*Record, error)
}

type service struct {
	repo       Repository
	tokens     token.Service
	membership membership.Validator
	counter    occupancy.Counter
	gyms       gym.Repository
	visits     streak.Publisher

	oracleTimeout time.Duration
}

func NewService(
	repo Repository,
	tokens token.Service,
	validator membership.Validator,
	counter occupancy.Counter,
	gyms gym.Repository,
	visits streak.Publisher,
	oracleTimeout time.Duration,
) Service {
	return &service{
		repo:          repo,
		tokens:        tokens,
		membership:    validator,
		counter:       counter,
		gyms:          gyms,
		visits:        visits,
		oracleTimeout: oracleTimeout,
	}
}

func (s *service) CheckIn(ctx context.Context, req CheckInRequest) (*Record, error) {
	memberID := req.MemberID
	gymID := req.GymID

	// Token check-ins burn the token first; a burned token on a failed
	// check-in forces a re-issue, which beats allowing replay. The token's
	// gym is authoritative over the request's.
	if req.TokenValue != "" {
		tokenMember, tokenGym, err := s.tokens.Consume(ctx, req.TokenValue)
		if err != nil {
			recordRejection(err)
			return nil, err
		}
		memberID = tokenMember
		gymID = tokenGym
	} else if memberID == 0 {
		return nil, ErrMemberRequired
	}

	if _, err := s.repo.FindOpenByMember(ctx, memberID); err == nil {
		metrics.RecordRejection("already_checked_in")
		return nil, ErrAlreadyCheckedIn
	} else if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("lookup open session: %w", err)
	}

	oracleCtx, cancel := context.WithTimeout(ctx, s.oracleTimeout)
	defer cancel()

	verdict, err := s.membership.ValidateAccess(oracleCtx, memberID, gymID)
	if err != nil {
		// Fail closed: an unreachable oracle never admits anyone.
		logger.Error("membership oracle failed", "member_id", memberID, "error", err)
		return nil, fmt.Errorf("membership validation: %w", err)
	}
	if !verdict.Valid {
		metrics.RecordRejection("membership_invalid")
		return nil, &MembershipInvalidError{Reason: verdict.Reason}
	}

	g, err := s.gyms.GetGymByID(ctx, gymID)
	if err != nil {
		return nil, fmt.Errorf("lookup gym %d: %w", gymID, err)
	}

	allowed, err := s.counter.TryAdmit(ctx, gymID, g.MaxCapacity)
	if err != nil {
		return nil, fmt.Errorf("capacity admission: %w", err)
	}
	if !allowed {
		metrics.RecordRejection("capacity_exceeded")
		return nil, ErrGymCapacityExceeded
	}

	rec := &Record{
		MemberID:      memberID,
		GymID:         gymID,
		MembershipID:  verdict.MembershipID,
		CheckInTime:   time.Now().UTC(),
		CheckInMethod: req.Method,
	}
	if req.DeviceID != "" {
		rec.CheckInDevice = &req.DeviceID
	}
	if req.StaffID != 0 {
		rec.CheckInStaff = &req.StaffID
	}

	created, err := s.repo.Create(ctx, rec)
	if err != nil {
		// The admission slot was taken but no record exists; give it back.
		if releaseErr := s.counter.Release(ctx, gymID); releaseErr != nil {
			logger.Error("failed to release capacity after aborted check-in",
				"gym_id", gymID, "error", releaseErr)
		}
		if errors.Is(err, ErrAlreadyCheckedIn) {
			metrics.RecordRejection("already_checked_in")
			return nil, ErrAlreadyCheckedIn
		}
		return nil, fmt.Errorf("create attendance record: %w", err)
	}

	// Streak update is fire-and-forget: the queue survives restarts and the
	// worker retries, so a failure here never affects the admission.
	if err := s.visits.Enqueue(context.WithoutCancel(ctx), memberID, gymID, created.CheckInTime); err != nil {
		logger.Error("failed to enqueue streak visit",
			"member_id", memberID, "gym_id", gymID, "error", err)
	}

	metrics.RecordCheckIn(req.Method)
	return created, nil
}

func (s *service) CheckOut(ctx context.Context, req CheckOutRequest) (*Record, error) {
	open, err := s.repo.FindOpenByMember(ctx, req.MemberID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			metrics.RecordRejection("not_checked_in")
			return nil, ErrNotCheckedIn
		}
		return nil, fmt.Errorf("lookup open session: %w", err)
	}

	// A member who moved gyms without checking out is closed against the gym
	// they actually entered, not rejected.
	if open.GymID != req.GymID {
		logger.Info("check-out gym differs from open session",
			"member_id", req.MemberID, "requested_gym", req.GymID, "session_gym", open.GymID)
	}

	var device *string
	if req.DeviceID != "" {
		device = &req.DeviceID
	}

	closed, err := s.repo.Close(ctx, open.ID, req.Method, device)
	if err != nil {
		if errors.Is(err, ErrNotInProgress) {
			// Raced with another check-out for the same session.
			metrics.RecordRejection("not_checked_in")
			return nil, ErrNotCheckedIn
		}
		return nil, fmt.Errorf("close attendance record: %w", err)
	}

	// Release failure leaves the counter high until the reconciler corrects
	// it; the check-out itself already succeeded.
	if err := s.counter.Release(ctx, open.GymID); err != nil {
		logger.Error("failed to release capacity after check-out",
			"gym_id", open.GymID, "error", err)
	}

	metrics.RecordCheckOut(req.Method)
	return closed, nil
}

func (s *service) History(ctx context.Context, memberID, limit, offset int) ([]Record, error) {
	return s.repo.ListByMember(ctx, memberID, limit, offset)
}

func (s *service) Void(ctx context.Context, recordID int, reason string, actorID int) (*Record, error) {
	rec, err := s.repo.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}

	wasOpen := rec.Open()

	voided, err := s.repo.Void(ctx, recordID, reason, actorID)
	if err != nil {
		return nil, err
	}

	// A voided open session no longer counts toward occupancy.
	if wasOpen {
		if err := s.counter.Release(ctx, voided.GymID); err != nil {
			logger.Error("failed to release capacity after void",
				"gym_id", voided.GymID, "error", err)
		}
	}

	return voided, nil
}

func recordRejection(err error) {
	switch {
	case errors.Is(err, token.ErrTokenNotFound):
		metrics.RecordRejection("token_not_found")
	case errors.Is(err, token.ErrTokenAlreadyUsed):
		metrics.RecordRejection("token_already_used")
	case errors.Is(err, token.ErrTokenExpired):
		metrics.RecordRejection("token_expired")
	}
}
