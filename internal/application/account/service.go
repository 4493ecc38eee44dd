package account

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"github.com/go-account-api/internal/domain"
	"github.com/go-account-api/internal/infrastructure/smtp"
	"github.com/go-account-api/internal/metrics"
	"github.com/go-account-api/internal/pkg/id"
	"github.com/go-account-api/internal/pkg/keylock"
	pkgtoken "github.com/go-account-api/internal/pkg/token"
	"github.com/go-account-api/internal/pkg/validate"
)

// DynamoDB attribute names used in partial update maps.
const (
	fieldVerified     = "verified"
	fieldPasswordHash = "password_hash"
)

// Service orchestrates the account lifecycle: signup, verification,
// sign-in gating, and password reset.
type Service interface {
	Signup(ctx context.Context, req domain.SignupRequest) domain.Result
	// ConfirmVerification returns nil when the account was flipped to
	// verified. Errors wrap domain sentinels and carry the user-facing
	// message for the redirect view.
	ConfirmVerification(ctx context.Context, accountID, token string) error
	SignIn(ctx context.Context, req domain.SigninRequest) domain.Result
	RequestPasswordReset(ctx context.Context, req domain.ResetRequest) domain.Result
	CompletePasswordReset(ctx context.Context, req domain.ResetCompletionRequest) domain.Result
}

type accountStore interface {
	Get(ctx context.Context, accountID string) (*domain.Account, error)
	GetByEmail(ctx context.Context, email string) (*domain.Account, error)
	Put(ctx context.Context, a *domain.Account) error
	Update(ctx context.Context, accountID string, updates map[string]interface{}) error
	Delete(ctx context.Context, accountID string) error
}

type verificationStore interface {
	Put(ctx context.Context, v *domain.PendingVerification) error
	Get(ctx context.Context, accountID string) (*domain.PendingVerification, error)
	Delete(ctx context.Context, accountID string) error
}

type resetStore interface {
	Put(ctx context.Context, p *domain.PendingPasswordReset) error
	GetByAccount(ctx context.Context, accountID string) (*domain.PendingPasswordReset, error)
	DeleteAllForAccount(ctx context.Context, accountID string) error
}

type service struct {
	accounts      accountStore
	verifications verificationStore
	resets        resetStore
	mailer        smtp.Mailer
	hasher        Hasher
	collector     *metrics.Collector

	baseURL         string
	verificationTTL time.Duration
	resetTTL        time.Duration

	// Serializes the read-check-then-write sequences per account id (and
	// signup per email) so concurrent confirmations of one token, or
	// concurrent signups with one email, cannot both win.
	locks *keylock.KeyLock
}

type ServiceDeps struct {
	AccountRepo      accountStore
	VerificationRepo verificationStore
	ResetRepo        resetStore
	Mailer           smtp.Mailer
	Hasher           Hasher
	Collector        *metrics.Collector

	BaseURL         string
	VerificationTTL time.Duration
	ResetTTL        time.Duration
}

func NewService(deps ServiceDeps) Service {
	s := &service{
		accounts:        deps.AccountRepo,
		verifications:   deps.VerificationRepo,
		resets:          deps.ResetRepo,
		mailer:          deps.Mailer,
		hasher:          deps.Hasher,
		collector:       deps.Collector,
		baseURL:         strings.TrimRight(deps.BaseURL, "/"),
		verificationTTL: deps.VerificationTTL,
		resetTTL:        deps.ResetTTL,
		locks:           keylock.New(),
	}
	if s.hasher == nil {
		s.hasher = NewBcryptHasher(0)
	}
	if s.collector == nil {
		s.collector = metrics.Nop()
	}
	if s.verificationTTL == 0 {
		s.verificationTTL = 8 * time.Hour
	}
	if s.resetTTL == 0 {
		s.resetTTL = 60 * time.Minute
	}
	return s
}

// Signup validates the request, creates an unverified account and issues a
// verification token. Validation failures never touch the stores.
func (s *service) Signup(ctx context.Context, req domain.SignupRequest) domain.Result {
	dob, msg := validateSignup(&req)
	if msg != "" {
		s.collector.RecordSignup("invalid")
		return domain.Failed(msg)
	}

	s.locks.Lock("email:" + req.Email)
	defer s.locks.Unlock("email:" + req.Email)

	// A lookup failure must not fall through to Put: creating the account
	// anyway could leave two rows for one email once the store recovers.
	if _, err := s.accounts.GetByEmail(ctx, req.Email); err == nil {
		s.collector.RecordSignup("duplicate")
		return domain.Failed("User with the provided email already exists")
	} else if !errors.Is(err, domain.ErrNotFound) {
		slog.Error("check existing account failed", "email", req.Email, "err", err)
		s.collector.RecordSignup("error")
		return domain.Failed("An error occurred while checking for existing user!")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		slog.Error("password hash failed", "err", err)
		s.collector.RecordSignup("error")
		return domain.Failed("An error occurred while hashing the password!")
	}

	now := time.Now().UTC()
	a := &domain.Account{
		AccountID:    id.New(),
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: hash,
		DateOfBirth:  dob,
		Verified:     false,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := s.accounts.Put(ctx, a); err != nil {
		slog.Error("save account failed", "email", req.Email, "err", err)
		s.collector.RecordSignup("error")
		return domain.Failed("An error occurred while saving user account!")
	}

	res := s.issueVerification(ctx, a)
	if res.Status == domain.StatusPending {
		s.collector.RecordSignup("pending")
	} else {
		// The account row stays behind unverified; the sweeper reclaims it
		// once the grace period passes.
		s.collector.RecordSignup("error")
	}
	return res
}

// issueVerification generates the opaque token, persists its hash and sends
// the verification email. The same plaintext that is hashed goes into the
// email link.
func (s *service) issueVerification(ctx context.Context, a *domain.Account) domain.Result {
	plain := pkgtoken.New(a.AccountID)
	tokenHash, err := s.hasher.Hash(plain)
	if err != nil {
		slog.Error("token hash failed", "account_id", a.AccountID, "err", err)
		return domain.Failed("An error occurred while hashing email data!")
	}

	now := time.Now().UTC()
	v := &domain.PendingVerification{
		AccountID: a.AccountID,
		TokenHash: tokenHash,
		CreatedAt: now,
		ExpiresAt: now.Add(s.verificationTTL).Unix(),
	}
	if err := s.verifications.Put(ctx, v); err != nil {
		slog.Error("save verification failed", "account_id", a.AccountID, "err", err)
		return domain.Failed("Couldn't save verification email data!")
	}

	body := verificationEmail(s.baseURL, a.AccountID, plain, int(s.verificationTTL.Hours()))
	if err := s.mailer.SendEmail(ctx, a.Email, verificationSubject, body); err != nil {
		slog.Error("send verification email failed", "account_id", a.AccountID, "err", err)
		s.collector.RecordEmail("verification", "error")
		return domain.Failed("Verification email failed to send!")
	}
	s.collector.RecordEmail("verification", "sent")
	return domain.Pending("Verification email sent")
}

// confirmError carries the user-facing message for the redirect view while
// unwrapping to a domain sentinel for classification.
type confirmError struct {
	msg  string
	kind error
}

func (e *confirmError) Error() string { return e.msg }
func (e *confirmError) Unwrap() error { return e.kind }

// ConfirmVerification consumes a verification link. Expired records cascade:
// both the pending verification and its never-verified account are deleted
// so the email can sign up again.
func (s *service) ConfirmVerification(ctx context.Context, accountID, token string) error {
	s.locks.Lock(accountID)
	defer s.locks.Unlock(accountID)

	v, err := s.verifications.Get(ctx, accountID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			slog.Error("verification lookup failed", "account_id", accountID, "err", err)
			s.collector.RecordVerification("error")
			return &confirmError{"An error occurred while checking for the verification record.", err}
		}
		s.collector.RecordVerification("not_found")
		return &confirmError{"Account record doesn't exist or has been verified already. Please sign up or log in.", domain.ErrNotFound}
	}

	if v.Expired(time.Now().UTC()) {
		if err := s.verifications.Delete(ctx, accountID); err != nil {
			slog.Error("delete expired verification failed", "account_id", accountID, "err", err)
			return &confirmError{"An error occurred while clearing the expired verification record.", err}
		}
		if err := s.accounts.Delete(ctx, accountID); err != nil {
			slog.Error("delete expired account failed", "account_id", accountID, "err", err)
			return &confirmError{"Clearing the account with the expired link failed.", err}
		}
		s.collector.RecordVerification("expired")
		return &confirmError{"Link has expired. Please sign up again.", domain.ErrExpired}
	}

	if err := s.hasher.Compare(v.TokenHash, token); err != nil {
		// Record stays; the user may retry with the correct link.
		s.collector.RecordVerification("invalid")
		return &confirmError{"Invalid verification details passed. Check your inbox.", domain.ErrUnauthorized}
	}

	if err := s.accounts.Update(ctx, accountID, map[string]interface{}{fieldVerified: true}); err != nil {
		slog.Error("mark account verified failed", "account_id", accountID, "err", err)
		return &confirmError{"An error occurred while updating the account to verified.", err}
	}
	if err := s.verifications.Delete(ctx, accountID); err != nil {
		slog.Error("delete consumed verification failed", "account_id", accountID, "err", err)
		return &confirmError{"An error occurred while finalizing verification.", err}
	}
	s.collector.RecordVerification("success")
	return nil
}

// SignIn checks credentials against the stored hash. Unverified accounts are
// rejected before the password is even compared.
func (s *service) SignIn(ctx context.Context, req domain.SigninRequest) domain.Result {
	req.Email = strings.TrimSpace(req.Email)
	req.Password = strings.TrimSpace(req.Password)
	if req.Email == "" || req.Password == "" {
		return domain.Failed("Empty credentials supplied")
	}

	a, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			slog.Error("account lookup failed", "email", req.Email, "err", err)
			return domain.Failed("An error occurred while checking for the user account!")
		}
		return domain.Failed("Invalid credentials entered!")
	}
	if !a.Verified {
		return domain.Failed("Email hasn't been verified yet.Check your inbox.")
	}
	if err := s.hasher.Compare(a.PasswordHash, req.Password); err != nil {
		return domain.Failed("Invalid password entered!")
	}
	return domain.Success("Signin successful", a.View())
}

// RequestPasswordReset issues a fresh reset token, clearing any prior ones
// for the account first.
func (s *service) RequestPasswordReset(ctx context.Context, req domain.ResetRequest) domain.Result {
	if err := validate.Struct(&req); err != nil {
		return domain.Failed(err.Error())
	}

	a, err := s.accounts.GetByEmail(ctx, req.Email)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			slog.Error("account lookup failed", "email", req.Email, "err", err)
			s.collector.RecordReset("request", "error")
			return domain.Failed("An error occurred while checking for the user account!")
		}
		s.collector.RecordReset("request", "not_found")
		return domain.Failed("No account with the supplied email exists")
	}
	if !a.Verified {
		s.collector.RecordReset("request", "unverified")
		return domain.Failed("Email hasn't been verified yet.Check your inbox.")
	}

	s.locks.Lock(a.AccountID)
	defer s.locks.Unlock(a.AccountID)

	if err := s.resets.DeleteAllForAccount(ctx, a.AccountID); err != nil {
		slog.Error("clear password resets failed", "account_id", a.AccountID, "err", err)
		s.collector.RecordReset("request", "error")
		return domain.Failed("Clearing existing password reset records failed!")
	}

	plain := pkgtoken.New(a.AccountID)
	tokenHash, err := s.hasher.Hash(plain)
	if err != nil {
		slog.Error("reset token hash failed", "account_id", a.AccountID, "err", err)
		s.collector.RecordReset("request", "error")
		return domain.Failed("An error occurred while hashing the password reset data!")
	}

	now := time.Now().UTC()
	p := &domain.PendingPasswordReset{
		AccountID: a.AccountID,
		ResetID:   id.New(),
		TokenHash: tokenHash,
		CreatedAt: now,
		ExpiresAt: now.Add(s.resetTTL).Unix(),
	}
	if err := s.resets.Put(ctx, p); err != nil {
		slog.Error("save password reset failed", "account_id", a.AccountID, "err", err)
		s.collector.RecordReset("request", "error")
		return domain.Failed("Couldn't save password reset data!")
	}

	body := resetEmail(req.RedirectURL, a.AccountID, plain, int(s.resetTTL.Minutes()))
	if err := s.mailer.SendEmail(ctx, a.Email, resetSubject, body); err != nil {
		slog.Error("send reset email failed", "account_id", a.AccountID, "err", err)
		s.collector.RecordEmail("password_reset", "error")
		s.collector.RecordReset("request", "error")
		return domain.Failed("Password reset email failed to send!")
	}
	s.collector.RecordEmail("password_reset", "sent")
	s.collector.RecordReset("request", "pending")
	return domain.Pending("Password reset email sent")
}

// CompletePasswordReset consumes a reset token and sets the new password.
func (s *service) CompletePasswordReset(ctx context.Context, req domain.ResetCompletionRequest) domain.Result {
	if err := validate.Struct(&req); err != nil {
		return domain.Failed(err.Error())
	}
	if len(strings.TrimSpace(req.NewPassword)) < 8 {
		return domain.Failed(msgShortPassword)
	}

	s.locks.Lock(req.AccountID)
	defer s.locks.Unlock(req.AccountID)

	p, err := s.resets.GetByAccount(ctx, req.AccountID)
	if err != nil {
		if !errors.Is(err, domain.ErrNotFound) {
			slog.Error("password reset lookup failed", "account_id", req.AccountID, "err", err)
			s.collector.RecordReset("complete", "error")
			return domain.Failed("An error occurred while checking for the password reset record!")
		}
		s.collector.RecordReset("complete", "not_found")
		return domain.Failed("Password reset request not found. Please request a new one.")
	}

	if p.Expired(time.Now().UTC()) {
		if err := s.resets.DeleteAllForAccount(ctx, req.AccountID); err != nil {
			slog.Error("clear expired password reset failed", "account_id", req.AccountID, "err", err)
		}
		s.collector.RecordReset("complete", "expired")
		return domain.Failed("Password reset link has expired. Please request a new one.")
	}

	if err := s.hasher.Compare(p.TokenHash, req.ResetString); err != nil {
		// Record stays; the user may retry with the correct link.
		s.collector.RecordReset("complete", "invalid")
		return domain.Failed("Invalid password reset details passed.")
	}

	hash, err := s.hasher.Hash(strings.TrimSpace(req.NewPassword))
	if err != nil {
		slog.Error("new password hash failed", "account_id", req.AccountID, "err", err)
		s.collector.RecordReset("complete", "error")
		return domain.Failed("An error occurred while hashing the new password!")
	}
	if err := s.accounts.Update(ctx, req.AccountID, map[string]interface{}{fieldPasswordHash: hash}); err != nil {
		slog.Error("update password failed", "account_id", req.AccountID, "err", err)
		s.collector.RecordReset("complete", "error")
		return domain.Failed("An error occurred while updating the password!")
	}
	if err := s.resets.DeleteAllForAccount(ctx, req.AccountID); err != nil {
		slog.Warn("delete consumed password reset failed", "account_id", req.AccountID, "err", err)
	}
	s.collector.RecordReset("complete", "success")
	return domain.Success("Password has been reset successfully", nil)
}
