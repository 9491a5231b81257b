package domain

import "time"

// ResetToken records a single password-reset grant. The signed JWT carries the
// same TokenID in its jti claim; consuming the row flips Used exactly once, so
// a replayed token fails even inside its expiry window.
type ResetToken struct {
	TokenID   string    `json:"id" dynamodbav:"token_id"`
	UserID    string    `json:"user_id" dynamodbav:"user_id"`
	Used      bool      `json:"used" dynamodbav:"used"`
	ExpiresAt int64     `json:"expires_at" dynamodbav:"expires_at"`
	CreatedAt time.Time `json:"created" dynamodbav:"created_at"`
}
