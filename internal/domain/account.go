package domain

import "time"

// Account is the canonical user record. PasswordHash never leaves the
// process; responses carry the AccountView instead.
type Account struct {
	AccountID    string    `json:"id" dynamodbav:"account_id"`
	Name         string    `json:"name" dynamodbav:"name"`
	Email        string    `json:"email" dynamodbav:"email"`
	PasswordHash string    `json:"-" dynamodbav:"password_hash"`
	DateOfBirth  time.Time `json:"dateOfBirth" dynamodbav:"date_of_birth"`
	Verified     bool      `json:"verified" dynamodbav:"verified"`
	CreatedAt    time.Time `json:"created" dynamodbav:"created_at"`
	UpdatedAt    time.Time `json:"updated" dynamodbav:"updated_at"`
}

// AccountView is the response-safe projection of an Account.
type AccountView struct {
	AccountID   string    `json:"id"`
	Name        string    `json:"name"`
	Email       string    `json:"email"`
	DateOfBirth time.Time `json:"dateOfBirth"`
	Verified    bool      `json:"verified"`
	CreatedAt   time.Time `json:"created"`
}

func (a *Account) View() *AccountView {
	return &AccountView{
		AccountID:   a.AccountID,
		Name:        a.Name,
		Email:       a.Email,
		DateOfBirth: a.DateOfBirth,
		Verified:    a.Verified,
		CreatedAt:   a.CreatedAt,
	}
}

// SignupRequest is validated field by field in the application layer so the
// failure messages keep their fixed wording and ordering.
type SignupRequest struct {
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
	DateOfBirth string `json:"dateOfBirth"` // expected format: YYYY-MM-DD
}

type SigninRequest struct {
	Email    string `json:"email" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type ResetRequest struct {
	Email       string `json:"email" validate:"required,email"`
	RedirectURL string `json:"redirectUrl" validate:"required,url"`
}

type ResetCompletionRequest struct {
	AccountID   string `json:"userId" validate:"required"`
	ResetString string `json:"resetString" validate:"required"`
	NewPassword string `json:"newPassword" validate:"required"`
}
