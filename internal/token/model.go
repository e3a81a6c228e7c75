package token

import "time"

// EntryToken is a single-use, time-limited credential proving a member's
// identity at a gym checkpoint (QR/NFC).
type EntryToken struct {
	ID        int        `db:"id" json:"id"`
	MemberID  int        `db:"member_id" json:"member_id"`
	GymID     int        `db:"gym_id" json:"gym_id"`
	Value     string     `db:"value" json:"value"`
	ExpiresAt time.Time  `db:"expires_at" json:"expires_at"`
	UsedAt    *time.Time `db:"used_at" json:"used_at,omitempty"`
	RevokedAt *time.Time `db:"revoked_at" json:"revoked_at,omitempty"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

func (t *EntryToken) Used() bool {
	return t.UsedAt != nil
}

func (t *EntryToken) Revoked() bool {
	return t.RevokedAt != nil
}

func (t *EntryToken) ExpiredAt(now time.Time) bool {
	return now.After(t.ExpiresAt)
}

type IssueTokenRequest struct {
	MemberID int `json:"member_id" binding:"required"`
	GymID    int `json:"gym_id" binding:"required"`
}
