package account

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/go-account-api/internal/domain"
)

type orphanScanner interface {
	accountStore
	ScanUnverifiedBefore(ctx context.Context, cutoff time.Time) ([]domain.Account, error)
}

// Sweeper reconciles accounts orphaned by a failed verification issuance: an
// unverified account past the grace period with no pending verification can
// never be verified, so it is removed and the email freed for a new signup.
// Expired rows that still have a pending verification are left to the lazy
// check in ConfirmVerification (and DynamoDB TTL).
type Sweeper struct {
	accounts      orphanScanner
	verifications verificationStore
	grace         time.Duration
	interval      time.Duration
}

func NewSweeper(accounts orphanScanner, verifications verificationStore, grace, interval time.Duration) *Sweeper {
	return &Sweeper{
		accounts:      accounts,
		verifications: verifications,
		grace:         grace,
		interval:      interval,
	}
}

// Run sweeps on a fixed interval until ctx is cancelled.
func (s *Sweeper) Run(ctx context.Context) {
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n, err := s.SweepOnce(ctx); err != nil {
				slog.Warn("orphan sweep failed", "err", err)
			} else if n > 0 {
				slog.Info("orphan sweep removed accounts", "count", n)
			}
		}
	}
}

// SweepOnce deletes every orphaned unverified account older than the grace
// period. Returns the number of accounts removed.
func (s *Sweeper) SweepOnce(ctx context.Context) (int, error) {
	cutoff := time.Now().UTC().Add(-s.grace)
	orphans, err := s.accounts.ScanUnverifiedBefore(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	removed := 0
	for _, a := range orphans {
		_, err := s.verifications.Get(ctx, a.AccountID)
		if err == nil {
			// A pending verification exists; the lazy expiry check owns it.
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			slog.Warn("orphan sweep: verification lookup failed", "account_id", a.AccountID, "err", err)
			continue
		}
		if err := s.accounts.Delete(ctx, a.AccountID); err != nil {
			slog.Warn("orphan sweep: account delete failed", "account_id", a.AccountID, "err", err)
			continue
		}
		removed++
	}
	return removed, nil
}
