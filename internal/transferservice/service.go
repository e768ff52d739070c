// Package transferservice implements the engine moving value between two
// ledger entities.
package transferservice

import (
	"context"

	"github.com/rs/zerolog"

	"github.com/soca-bot/ledger/internal/domain"
)

// Repo provides data access layer interface needed by transfer service layer.
//
//go:generate mockgen -source service.go -destination service_mock.go -package transferservice
type Repo interface {
	GetWallet(ctx context.Context, userID string) (domain.Wallet, error)
	AddWalletBalance(ctx context.Context, userID string, delta int64) (domain.Wallet, error)
	GetAccount(ctx context.Context, name string) (domain.Account, error)
	AddAccountBalance(ctx context.Context, name string, delta int64) (domain.Account, error)
}

// Service facilitates transfer engine logic.
type Service struct {
	repo Repo
}

// New returns a transfer service backed by the given store.
func New(repo Repo) *Service {
	return &Service{repo: repo}
}

// Transfer moves amount from one ledger entity to another.
//
// The sender must exist and cover the amount; an absent counterparty wallet
// is an implicit zero balance that is created by the credit. The debit is
// issued before the credit, each as an independent single-key write. When the
// credit fails after a committed debit the inconsistency is logged and the
// error returned; the debit is never rolled back.
func (s *Service) Transfer(ctx context.Context, from, to domain.EntityRef, amount int64) (domain.TransferResult, error) {
	l := zerolog.Ctx(ctx)

	var result domain.TransferResult

	if amount <= 0 {
		return result, domain.ErrInvalidAmount
	}

	if from == to {
		return result, domain.ErrInvalidAmount
	}

	// Resolve both entities before any write so a missing party is reported
	// ahead of insufficient funds.
	fromBalance, err := s.balance(ctx, from)
	if err != nil {
		return result, err
	}

	if to.Kind == domain.EntityAccount {
		if _, err := s.repo.GetAccount(ctx, to.ID); err != nil {
			return result, err
		}
	}

	if fromBalance < amount {
		return result, domain.ErrInsufficientFunds
	}

	fromBalance, err = s.applyDelta(ctx, from, -amount)
	if err != nil {
		return result, err
	}

	toBalance, err := s.applyDelta(ctx, to, amount)
	if err != nil {
		// The debit committed; the amount is destroyed, not recovered.
		l.Error().Err(err).
			Str("from", from.ID).
			Str("to", to.ID).
			Int64("amount", amount).
			Msg("credit leg failed after committed debit")

		return result, err
	}

	result = domain.TransferResult{
		From:        from,
		To:          to,
		Amount:      amount,
		FromBalance: fromBalance,
		ToBalance:   toBalance,
	}

	return result, nil
}

func (s *Service) balance(ctx context.Context, e domain.EntityRef) (int64, error) {
	if e.Kind == domain.EntityAccount {
		account, err := s.repo.GetAccount(ctx, e.ID)
		if err != nil {
			return 0, err
		}

		return account.Balance, nil
	}

	wallet, err := s.repo.GetWallet(ctx, e.ID)
	if err != nil {
		return 0, err
	}

	return wallet.Balance, nil
}

func (s *Service) applyDelta(ctx context.Context, e domain.EntityRef, delta int64) (int64, error) {
	if e.Kind == domain.EntityAccount {
		account, err := s.repo.AddAccountBalance(ctx, e.ID, delta)
		if err != nil {
			return 0, err
		}

		return account.Balance, nil
	}

	wallet, err := s.repo.AddWalletBalance(ctx, e.ID, delta)
	if err != nil {
		return 0, err
	}

	return wallet.Balance, nil
}
