package ledgerrepo

import (
	"context"
	"database/sql"

	"github.com/lib/pq"
	"github.com/rs/zerolog"

	"github.com/soca-bot/ledger/internal/domain"
	"github.com/soca-bot/ledger/pkg/dbpkg"
	"github.com/soca-bot/ledger/pkg/errorspkg"
)

// RepoPGS is a balance store backed by Postgres. Balances are guarded by
// check constraints, so a conditional delta is a single UPDATE and the
// constraint violation maps to domain.ErrInsufficientFunds.
type RepoPGS struct {
	db dbpkg.SQLInterface
}

// NewRepoPGS returns a Postgres balance store.
func NewRepoPGS(db dbpkg.SQLInterface) *RepoPGS {
	return &RepoPGS{
		db: db,
	}
}

const getWalletQuery = `
SELECT user_id, balance, last_login
FROM users
WHERE user_id = $1
`

// GetWallet returns the wallet of the given user.
func (r *RepoPGS) GetWallet(ctx context.Context, userID string) (domain.Wallet, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getWalletQuery, userID)

	var w domain.Wallet

	err := row.Scan(&w.UserID, &w.Balance, &w.LastBonusDate)
	if err != nil {
		if err == sql.ErrNoRows {
			return w, domain.ErrNoWalletData
		}

		l.Error().Err(err).Send()

		return w, errorspkg.ErrStoreUnavailable
	}

	return w, nil
}

const creditWalletQuery = `
INSERT INTO users (user_id, balance, last_login)
VALUES ($1, $2, '')
ON CONFLICT (user_id) DO UPDATE
SET balance = users.balance + $2
RETURNING user_id, balance, last_login
`

const debitWalletQuery = `
UPDATE users
SET balance = balance + $2
WHERE user_id = $1
RETURNING user_id, balance, last_login
`

// AddWalletBalance applies delta to the user's balance. A credit to an
// absent wallet creates it; a debit of an absent wallet fails.
func (r *RepoPGS) AddWalletBalance(ctx context.Context, userID string, delta int64) (domain.Wallet, error) {
	l := zerolog.Ctx(ctx)

	query := debitWalletQuery
	if delta >= 0 {
		query = creditWalletQuery
	}

	row := r.db.QueryRowContext(ctx, query, userID, delta)

	var w domain.Wallet

	err := row.Scan(&w.UserID, &w.Balance, &w.LastBonusDate)
	if err != nil {
		if err == sql.ErrNoRows {
			return w, domain.ErrNoWalletData
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "users_balance_check" {
				return w, domain.ErrInsufficientFunds
			}
		}

		l.Error().Err(err).Send()

		return w, errorspkg.ErrStoreUnavailable
	}

	return w, nil
}

// grantBonusQuery inserts or updates in one statement. The prev CTE snapshots
// the pre-statement record so the caller can tell a repeat claim from a grant.
const grantBonusQuery = `
WITH prev AS (
	SELECT last_login FROM users WHERE user_id = $1
), up AS (
	INSERT INTO users AS u (user_id, balance, last_login)
	VALUES ($1, $2, $3)
	ON CONFLICT (user_id) DO UPDATE
	SET balance    = CASE WHEN u.last_login = $3 THEN u.balance ELSE u.balance + $2 END,
	    last_login = $3
	RETURNING balance
)
SELECT up.balance, COALESCE((SELECT last_login FROM prev), '') AS prev_login, EXISTS (SELECT 1 FROM prev) AS existed
FROM up
`

// GrantBonus credits the daily bonus unless it was already granted for date.
func (r *RepoPGS) GrantBonus(ctx context.Context, userID, date string, amount int64) (domain.Wallet, domain.BonusStatus, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, grantBonusQuery, userID, amount, date)

	var (
		balance   int64
		prevLogin string
		existed   bool
	)

	err := row.Scan(&balance, &prevLogin, &existed)
	if err != nil {
		l.Error().Err(err).Send()
		return domain.Wallet{}, "", errorspkg.ErrStoreUnavailable
	}

	w := domain.Wallet{UserID: userID, Balance: balance, LastBonusDate: date}

	switch {
	case !existed:
		return w, domain.BonusFirstTime, nil
	case prevLogin == date:
		return w, domain.BonusAlreadyClaimed, nil
	default:
		return w, domain.BonusGranted, nil
	}
}

const getAccountQuery = `
SELECT name, owner, password, balance, created_at
FROM accounts
WHERE name = $1
`

// GetAccount returns the account with the given name.
func (r *RepoPGS) GetAccount(ctx context.Context, name string) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, getAccountQuery, name)

	var a domain.Account

	err := row.Scan(&a.Name, &a.Owner, &a.HashedPassword, &a.Balance, &a.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrStoreUnavailable
	}

	return a, nil
}

const createAccountQuery = `
INSERT INTO
	accounts (name, owner, password, balance, created_at)
VALUES
	($1, $2, $3, $4, $5)
RETURNING name, owner, password, balance, created_at
`

// CreateAccount stores a new account unless the name is taken.
func (r *RepoPGS) CreateAccount(ctx context.Context, account domain.Account) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, createAccountQuery,
		account.Name,
		account.Owner,
		account.HashedPassword,
		account.Balance,
		account.CreatedAt,
	)

	var a domain.Account

	err := row.Scan(&a.Name, &a.Owner, &a.HashedPassword, &a.Balance, &a.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Code.Name() == "unique_violation" {
				return a, domain.ErrAccountExists
			}
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrStoreUnavailable
	}

	return a, nil
}

const addAccountBalanceQuery = `
UPDATE accounts
SET balance = balance + $2
WHERE name = $1
RETURNING name, owner, password, balance, created_at
`

// AddAccountBalance applies delta to the account balance.
func (r *RepoPGS) AddAccountBalance(ctx context.Context, name string, delta int64) (domain.Account, error) {
	l := zerolog.Ctx(ctx)

	row := r.db.QueryRowContext(ctx, addAccountBalanceQuery, name, delta)

	var a domain.Account

	err := row.Scan(&a.Name, &a.Owner, &a.HashedPassword, &a.Balance, &a.CreatedAt)
	if err != nil {
		if err == sql.ErrNoRows {
			return a, domain.ErrAccountNotFound
		}

		if pqErr, ok := err.(*pq.Error); ok {
			if pqErr.Constraint == "accounts_balance_check" {
				return a, domain.ErrInsufficientFunds
			}
		}

		l.Error().Err(err).Send()

		return a, errorspkg.ErrStoreUnavailable
	}

	return a, nil
}
