package account

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/go-account-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockOrphanScanner struct{ mockAccountStore }

func (m *mockOrphanScanner) ScanUnverifiedBefore(ctx context.Context, cutoff time.Time) ([]domain.Account, error) {
	args := m.Called(ctx, cutoff)
	if accts, _ := args.Get(0).([]domain.Account); accts != nil {
		return accts, args.Error(1)
	}
	return nil, args.Error(1)
}

func TestSweepOnce_RemovesOnlyOrphans(t *testing.T) {
	as := &mockOrphanScanner{}
	vs := &mockVerificationStore{}

	as.On("ScanUnverifiedBefore", mock.Anything, mock.Anything).Return([]domain.Account{
		{AccountID: "orphan"},
		{AccountID: "pending"},
	}, nil)
	// "orphan" has no verification record; "pending" still has one.
	vs.On("Get", mock.Anything, "orphan").Return(nil, domain.ErrNotFound)
	vs.On("Get", mock.Anything, "pending").Return(&domain.PendingVerification{AccountID: "pending"}, nil)
	as.On("Delete", mock.Anything, "orphan").Return(nil)

	sw := NewSweeper(as, vs, 24*time.Hour, time.Hour)
	n, err := sw.SweepOnce(context.Background())

	require.NoError(t, err)
	assert.Equal(t, 1, n)
	as.AssertNotCalled(t, "Delete", mock.Anything, "pending")
}

func TestSweepOnce_ScanFailure(t *testing.T) {
	as := &mockOrphanScanner{}
	as.On("ScanUnverifiedBefore", mock.Anything, mock.Anything).Return(nil, errors.New("dynamo down"))

	sw := NewSweeper(as, &mockVerificationStore{}, 24*time.Hour, time.Hour)
	_, err := sw.SweepOnce(context.Background())
	assert.Error(t, err)
}

func TestSweepOnce_LookupErrorSkipsAccount(t *testing.T) {
	as := &mockOrphanScanner{}
	vs := &mockVerificationStore{}

	as.On("ScanUnverifiedBefore", mock.Anything, mock.Anything).Return([]domain.Account{{AccountID: "a1"}}, nil)
	vs.On("Get", mock.Anything, "a1").Return(nil, errors.New("throttled"))

	sw := NewSweeper(as, vs, 24*time.Hour, time.Hour)
	n, err := sw.SweepOnce(context.Background())

	require.NoError(t, err)
	assert.Zero(t, n)
	as.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
}
