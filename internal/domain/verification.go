package domain

import "time"

// PendingVerification is the time-boxed, single-use token gating an
// account's transition to verified. At most one exists per account.
// PK: account_id. Only the bcrypt hash of the token is stored; the
// plaintext goes out once, in the verification email.
// ExpiresAt doubles as the DynamoDB TTL attribute (Unix seconds).
type PendingVerification struct {
	AccountID string    `json:"account_id" dynamodbav:"account_id"`
	TokenHash string    `json:"-" dynamodbav:"token_hash"`
	CreatedAt time.Time `json:"created_at" dynamodbav:"created_at"`
	ExpiresAt int64     `json:"expires_at" dynamodbav:"expires_at"`
}

// Expired reports whether the verification window has closed.
func (v *PendingVerification) Expired(now time.Time) bool {
	return v.ExpiresAt < now.Unix()
}
