package ledgerrepo

import (
	"context"
	"sync"

	"github.com/soca-bot/ledger/internal/domain"
)

// RepoMem is an in-memory balance store. A single mutex serializes all
// mutations, which stands in for the conditional-update primitive of the
// persistent backends.
type RepoMem struct {
	mu       sync.Mutex
	wallets  map[string]domain.Wallet
	accounts map[string]domain.Account
}

// NewRepoMem returns an empty in-memory balance store.
func NewRepoMem() *RepoMem {
	return &RepoMem{
		wallets:  make(map[string]domain.Wallet),
		accounts: make(map[string]domain.Account),
	}
}

// GetWallet returns the wallet of the given user.
func (r *RepoMem) GetWallet(_ context.Context, userID string) (domain.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.wallets[userID]
	if !ok {
		return domain.Wallet{}, domain.ErrNoWalletData
	}

	return w, nil
}

// AddWalletBalance applies delta to the user's balance if the result stays
// non-negative. A credit to an absent wallet creates it.
func (r *RepoMem) AddWalletBalance(_ context.Context, userID string, delta int64) (domain.Wallet, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.wallets[userID]
	if !ok {
		// Only a strictly positive delta creates a wallet.
		if delta <= 0 {
			return domain.Wallet{}, domain.ErrNoWalletData
		}

		w = domain.Wallet{UserID: userID}
	}

	if w.Balance+delta < 0 {
		return domain.Wallet{}, domain.ErrInsufficientFunds
	}

	w.Balance += delta
	r.wallets[userID] = w

	return w, nil
}

// GrantBonus credits the daily bonus unless it was already granted for date.
func (r *RepoMem) GrantBonus(_ context.Context, userID, date string, amount int64) (domain.Wallet, domain.BonusStatus, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	w, ok := r.wallets[userID]
	if !ok {
		w = domain.Wallet{UserID: userID, Balance: amount, LastBonusDate: date}
		r.wallets[userID] = w

		return w, domain.BonusFirstTime, nil
	}

	if w.LastBonusDate == date {
		return w, domain.BonusAlreadyClaimed, nil
	}

	w.Balance += amount
	w.LastBonusDate = date
	r.wallets[userID] = w

	return w, domain.BonusGranted, nil
}

// GetAccount returns the account with the given name.
func (r *RepoMem) GetAccount(_ context.Context, name string) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[name]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	return a, nil
}

// CreateAccount stores a new account unless the name is taken.
func (r *RepoMem) CreateAccount(_ context.Context, account domain.Account) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.accounts[account.Name]; ok {
		return domain.Account{}, domain.ErrAccountExists
	}

	r.accounts[account.Name] = account

	return account, nil
}

// AddAccountBalance applies delta to the account balance if the result stays
// non-negative.
func (r *RepoMem) AddAccountBalance(_ context.Context, name string, delta int64) (domain.Account, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	a, ok := r.accounts[name]
	if !ok {
		return domain.Account{}, domain.ErrAccountNotFound
	}

	if a.Balance+delta < 0 {
		return domain.Account{}, domain.ErrInsufficientFunds
	}

	a.Balance += delta
	r.accounts[name] = a

	return a, nil
}
