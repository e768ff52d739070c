// Package accountservice manages business logic layer of shared accounts.
package accountservice

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/soca-bot/ledger/internal/domain"
	"github.com/soca-bot/ledger/internal/notifier"
	"github.com/soca-bot/ledger/pkg/errorspkg"
	"github.com/soca-bot/ledger/pkg/passpkg"
)

// Repo provides data access layer interface needed by account service layer.
type Repo interface {
	GetAccount(ctx context.Context, name string) (domain.Account, error)
	CreateAccount(ctx context.Context, account domain.Account) (domain.Account, error)
}

// TransferEngine moves value between two ledger entities.
type TransferEngine interface {
	Transfer(ctx context.Context, from, to domain.EntityRef, amount int64) (domain.TransferResult, error)
}

// Service facilitates account service layer logic.
type Service struct {
	repo      Repo
	transfers TransferEngine
	sink      notifier.Sink
}

// New returns an account service.
func New(repo Repo, transfers TransferEngine, sink notifier.Sink) *Service {
	return &Service{
		repo:      repo,
		transfers: transfers,
		sink:      sink,
	}
}

// Create opens a named account with balance 0. Names are a global,
// case-sensitive namespace. An empty password leaves the account open to its
// owner only.
func (s *Service) Create(ctx context.Context, name, ownerID, password string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	var hashed string

	if password != "" {
		var err error

		hashed, err = passpkg.Hash(password)
		if err != nil {
			l.Error().Err(err).Send()
			return domain.Account{}, errorspkg.ErrInternal
		}
	}

	account := domain.Account{
		Name:           name,
		Owner:          ownerID,
		HashedPassword: hashed,
		Balance:        0,
		CreatedAt:      time.Now().UTC(),
	}

	return s.repo.CreateAccount(ctx, account)
}

// Deposit moves amount from the sender's wallet into the named account, then
// tells the account owner about it.
func (s *Service) Deposit(ctx context.Context, name, fromUserID string, amount int64) (domain.TransferResult, error) {
	if amount <= 0 {
		return domain.TransferResult{}, domain.ErrInvalidAmount
	}

	result, err := s.transfers.Transfer(ctx, domain.UserRef(fromUserID), domain.AccountRef(name), amount)
	if err != nil {
		return domain.TransferResult{}, err
	}

	if account, err := s.repo.GetAccount(ctx, name); err == nil {
		notifier.Send(ctx, s.sink, account.Owner, notifier.Notice{
			Kind:   notifier.KindDeposit,
			Title:  "Deposit received",
			Body:   name + " received a deposit",
			Amount: amount,
		})
	}

	return result, nil
}

// Withdraw moves amount from the named account into the requester's wallet.
//
// A passworded account releases funds to its owner, or to anyone presenting
// the matching password; a wrong password is rejected even from the owner.
// An open account releases funds to its owner only.
func (s *Service) Withdraw(ctx context.Context, name, requesterID string, amount int64, password string) (domain.TransferResult, error) {
	if amount <= 0 {
		return domain.TransferResult{}, domain.ErrInvalidAmount
	}

	account, err := s.repo.GetAccount(ctx, name)
	if err != nil {
		return domain.TransferResult{}, err
	}

	if err := authorize(account, requesterID, password); err != nil {
		return domain.TransferResult{}, err
	}

	result, err := s.transfers.Transfer(ctx, domain.AccountRef(name), domain.UserRef(requesterID), amount)
	if err != nil {
		return domain.TransferResult{}, err
	}

	if requesterID != account.Owner {
		notifier.Send(ctx, s.sink, account.Owner, notifier.Notice{
			Kind:   notifier.KindWithdrawal,
			Title:  "Withdrawal",
			Body:   name + " was withdrawn from",
			Amount: amount,
		})
	}

	return result, nil
}

// CheckBalance reveals the account balance under the visibility rule: a
// passworded account only to a matching password, an open account only to
// its owner.
func (s *Service) CheckBalance(ctx context.Context, name, requesterID, password string) (int64, error) {
	account, err := s.repo.GetAccount(ctx, name)
	if err != nil {
		return 0, err
	}

	if account.Protected() {
		if passpkg.Check(password, account.HashedPassword) != nil {
			return 0, domain.ErrUnauthorized
		}
	} else if requesterID != account.Owner {
		return 0, domain.ErrUnauthorized
	}

	return account.Balance, nil
}

// authorize applies the withdrawal rule from the account's password state.
func authorize(account domain.Account, requesterID, password string) error {
	if account.Protected() {
		if password != "" {
			if passpkg.Check(password, account.HashedPassword) != nil {
				return domain.ErrUnauthorized
			}

			return nil
		}

		if requesterID != account.Owner {
			return domain.ErrUnauthorized
		}

		return nil
	}

	if requesterID != account.Owner {
		return domain.ErrUnauthorized
	}

	return nil
}
