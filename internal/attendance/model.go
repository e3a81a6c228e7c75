package attendance

import "time"

type Status string

const (
	StatusOpen   Status = "open"
	StatusClosed Status = "closed"
	StatusVoid   Status = "void"
)

const (
	MethodQR        = "qr"
	MethodNFC       = "nfc"
	MethodStaff     = "staff"
	MethodBiometric = "biometric"
)

// Record is one attendance session from check-in to check-out. Records are
// never deleted; administrative corrections void them instead.
type Record struct {
	ID           int    `db:"id" json:"id"`
	MemberID     int    `db:"member_id" json:"member_id"`
	GymID        int    `db:"gym_id" json:"gym_id"`
	MembershipID string `db:"membership_id" json:"membership_id"`
	Status       Status `db:"status" json:"status"`

	CheckInTime   time.Time `db:"check_in_time" json:"check_in_time"`
	CheckInMethod string    `db:"check_in_method" json:"check_in_method"`
	CheckInDevice *string   `db:"check_in_device" json:"check_in_device,omitempty"`
	CheckInStaff  *int      `db:"check_in_staff" json:"check_in_staff,omitempty"`

	CheckOutTime   *time.Time `db:"check_out_time" json:"check_out_time,omitempty"`
	CheckOutMethod *string    `db:"check_out_method" json:"check_out_method,omitempty"`
	CheckOutDevice *string    `db:"check_out_device" json:"check_out_device,omitempty"`

	// DurationSeconds is computed once at check-out, floored at zero.
	DurationSeconds *int `db:"duration_seconds" json:"duration_seconds,omitempty"`

	VoidReason *string    `db:"void_reason" json:"void_reason,omitempty"`
	VoidedBy   *int       `db:"voided_by" json:"voided_by,omitempty"`
	VoidedAt   *time.Time `db:"voided_at" json:"voided_at,omitempty"`

	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

func (r *Record) Open() bool {
	return r.Status == StatusOpen
}

type CheckInRequest struct {
	MemberID   int    `json:"member_id"`
	TokenValue string `json:"token_value"`
	GymID      int    `json:"gym_id" binding:"required"`
	Method     string `json:"method" binding:"required,oneof=qr nfc staff biometric"`
	DeviceID   string `json:"device_id"`
	StaffID    int    `json:"staff_id"`
}

type CheckOutRequest struct {
	MemberID int    `json:"member_id" binding:"required"`
	GymID    int    `json:"gym_id" binding:"required"`
	Method   string `json:"method" binding:"required,oneof=qr nfc staff biometric"`
	DeviceID string `json:"device_id"`
}

type VoidRequest struct {
	Reason string `json:"reason" binding:"required"`
}
