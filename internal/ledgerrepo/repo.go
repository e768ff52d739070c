// Package ledgerrepo manages the balance store layer of the ledger.
//
// The store is a key-value mapping over two keyspaces, users/{userId} and
// accounts/{name}. There is no cross-key transaction primitive: every
// operation touches exactly one key. Single-key mutations are atomic
// conditional deltas, so a committed balance is never negative.
package ledgerrepo

import (
	"context"

	"github.com/soca-bot/ledger/internal/domain"
)

// Store is the contract shared by all backends.
//
// Wallet methods return domain.ErrNoWalletData for absent users, except that
// a credit (positive delta) to an absent wallet creates it implicitly.
// Account methods return domain.ErrAccountNotFound for absent accounts and
// never create implicitly. Deltas that would commit a negative balance fail
// with domain.ErrInsufficientFunds and leave the record untouched.
type Store interface {
	GetWallet(ctx context.Context, userID string) (domain.Wallet, error)
	AddWalletBalance(ctx context.Context, userID string, delta int64) (domain.Wallet, error)
	GrantBonus(ctx context.Context, userID, date string, amount int64) (domain.Wallet, domain.BonusStatus, error)

	GetAccount(ctx context.Context, name string) (domain.Account, error)
	CreateAccount(ctx context.Context, account domain.Account) (domain.Account, error)
	AddAccountBalance(ctx context.Context, name string, delta int64) (domain.Account, error)
}
