// Package walletservice manages business logic layer of personal wallets.
package walletservice

import (
	"context"
	"errors"

	"github.com/rs/zerolog"

	"github.com/soca-bot/ledger/internal/domain"
)

// Repo provides data access layer interface needed by wallet service layer.
type Repo interface {
	GetWallet(ctx context.Context, userID string) (domain.Wallet, error)
	GrantBonus(ctx context.Context, userID, date string, amount int64) (domain.Wallet, domain.BonusStatus, error)
}

// Service facilitates wallet service layer logic.
type Service struct {
	repo        Repo
	bonusAmount int64
}

// New returns a wallet service granting the given daily bonus.
func New(repo Repo, bonusAmount int64) *Service {
	if bonusAmount <= 0 {
		bonusAmount = domain.BonusAmount
	}

	return &Service{
		repo:        repo,
		bonusAmount: bonusAmount,
	}
}

// ClaimDailyBonus grants the login bonus for the given calendar date. The
// date is the sole idempotency key: a repeat claim for the same date returns
// already-claimed and mutates nothing.
func (s *Service) ClaimDailyBonus(ctx context.Context, userID, today string) (domain.BonusResult, error) {
	l := zerolog.Ctx(ctx)

	wallet, status, err := s.repo.GrantBonus(ctx, userID, today, s.bonusAmount)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.BonusResult{}, err
	}

	return domain.BonusResult{Status: status, Balance: wallet.Balance}, nil
}

// GetBalance returns the user's balance, or 0 if no wallet exists.
// Read-only, no side effects.
func (s *Service) GetBalance(ctx context.Context, userID string) (int64, error) {
	wallet, err := s.repo.GetWallet(ctx, userID)
	if err != nil {
		if errors.Is(err, domain.ErrNoWalletData) {
			return 0, nil
		}

		return 0, err
	}

	return wallet.Balance, nil
}
