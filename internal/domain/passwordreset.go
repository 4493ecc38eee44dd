package domain

import "time"

// PendingPasswordReset authorizes a single password change for an account.
// PK: account_id, SK: reset_id. Issuing a new reset deletes all prior rows
// for the account first, so at most one is live at a time.
// ExpiresAt doubles as the DynamoDB TTL attribute (Unix seconds).
type PendingPasswordReset struct {
	AccountID string    `json:"account_id" dynamodbav:"account_id"`
	ResetID   string    `json:"reset_id" dynamodbav:"reset_id"`
	TokenHash string    `json:"-" dynamodbav:"token_hash"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
	ExpiresAt int64     `json:"expires_at" dynamodbav:"expires_at"`
}

// Expired reports whether the reset window has closed.
func (p *PendingPasswordReset) Expired(now time.Time) bool {
	return p.ExpiresAt < now.Unix()
}
