package attendance

import "errors"

// Client-facing rejections. These are expected business outcomes, checked
// with errors.Is and mapped to HTTP statuses in the handler; they are never
// logged as errors.
var (
	ErrAlreadyCheckedIn    = errors.New("member already has an open session")
	ErrNotCheckedIn        = errors.New("member has no open session")
	ErrGymCapacityExceeded = errors.New("gym is at capacity")
	ErrNotInProgress       = errors.New("attendance record is not open")
	ErrRecordNotFound      = errors.New("attendance record not found")
	ErrAlreadyVoid         = errors.New("attendance record already void")
	ErrMemberRequired      = errors.New("member id or token value required")

	ErrMembershipInvalid = errors.New("membership invalid")
)

// MembershipInvalidError carries the oracle's denial reason through to the
// caller. It matches ErrMembershipInvalid under errors.Is.
type MembershipInvalidError struct {
	Reason string
}

func (e *MembershipInvalidError) Error() string {
	if e.Reason == "" {
		return "membership invalid"
	}
	return "membership invalid: " + e.Reason
}

func (e *MembershipInvalidError) Is(target error) bool {
	return target == ErrMembershipInvalid
}
