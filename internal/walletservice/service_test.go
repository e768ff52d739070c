package walletservice

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/soca-bot/ledger/internal/domain"
	"github.com/soca-bot/ledger/internal/ledgerrepo"
	"github.com/soca-bot/ledger/pkg/datepkg"
	"github.com/soca-bot/ledger/pkg/randompkg"
)

func TestClaimDailyBonus(t *testing.T) {
	repo := ledgerrepo.NewRepoMem()
	service := New(repo, domain.BonusAmount)

	userID := randompkg.UserID()
	today := datepkg.Today(time.Now())

	// First claim creates the wallet with exactly the bonus amount.
	res, err := service.ClaimDailyBonus(context.Background(), userID, today)
	require.NoError(t, err)
	require.Equal(t, domain.BonusFirstTime, res.Status)
	require.Equal(t, int64(domain.BonusAmount), res.Balance)

	balance, err := service.GetBalance(context.Background(), userID)
	require.NoError(t, err)
	require.Equal(t, int64(domain.BonusAmount), balance)

	// Second claim on the same date is idempotent.
	res, err = service.ClaimDailyBonus(context.Background(), userID, today)
	require.NoError(t, err)
	require.Equal(t, domain.BonusAlreadyClaimed, res.Status)
	require.Equal(t, int64(domain.BonusAmount), res.Balance)

	// A new date grants again.
	res, err = service.ClaimDailyBonus(context.Background(), userID, "2099-01-01")
	require.NoError(t, err)
	require.Equal(t, domain.BonusGranted, res.Status)
	require.Equal(t, int64(2*domain.BonusAmount), res.Balance)
}

func TestGetBalanceAbsentWallet(t *testing.T) {
	service := New(ledgerrepo.NewRepoMem(), domain.BonusAmount)

	balance, err := service.GetBalance(context.Background(), randompkg.UserID())
	require.NoError(t, err)
	require.Equal(t, int64(0), balance)
}
