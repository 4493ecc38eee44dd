package account

import (
	"regexp"
	"strings"
	"time"

	"github.com/go-account-api/internal/domain"
)

// Validation messages surfaced to clients. Checks run in a fixed order and
// the first failure wins.
const (
	msgEmptyFields   = "Empty input fields!"
	msgInvalidName   = "Invalid name entered"
	msgInvalidEmail  = "Invalid email entered"
	msgInvalidDOB    = "Invalid date of birth entered"
	msgShortPassword = "Password is too short!"
)

var (
	// nameRe also matches the empty string; the blanket non-empty check
	// above it makes that branch unreachable.
	nameRe  = regexp.MustCompile(`^[A-Za-z]*$`)
	emailRe = regexp.MustCompile(`^[\w.-]+@([\w-]+\.)+[\w-]{2,4}$`)
)

const dobLayout = "2006-01-02"

// validateSignup trims the request in place and checks it field by field.
// Returns the parsed date of birth and an empty message on success, or the
// message for the first failed check.
func validateSignup(req *domain.SignupRequest) (time.Time, string) {
	req.Name = strings.TrimSpace(req.Name)
	req.Email = strings.TrimSpace(req.Email)
	req.Password = strings.TrimSpace(req.Password)
	req.DateOfBirth = strings.TrimSpace(req.DateOfBirth)

	if req.Name == "" || req.Email == "" || req.Password == "" || req.DateOfBirth == "" {
		return time.Time{}, msgEmptyFields
	}
	if !nameRe.MatchString(req.Name) {
		return time.Time{}, msgInvalidName
	}
	if !emailRe.MatchString(req.Email) {
		return time.Time{}, msgInvalidEmail
	}
	dob, err := time.Parse(dobLayout, req.DateOfBirth)
	if err != nil {
		return time.Time{}, msgInvalidDOB
	}
	if len(req.Password) < 8 {
		return time.Time{}, msgShortPassword
	}
	return dob, ""
}
