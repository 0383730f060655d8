package models

import "time"

// Session is the ephemeral confirmation-session bookkeeping row recorded
// when a transaction enters the pending set. Expired rows are purged hourly.
type Session struct {
	ID        string    `json:"id"`
	GroupID   string    `json:"group_id"`
	UserID    string    `json:"user_id"`
	ExpiresAt time.Time `json:"expires_at"`
	CreatedAt time.Time `json:"created_at"`
}
