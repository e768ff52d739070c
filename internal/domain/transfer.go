package domain

import "errors"

var (
	// ErrInvalidAmount indicates a non-positive transfer amount.
	ErrInvalidAmount = errors.New("invalid amount")
	// ErrInsufficientFunds indicates that the debited entity does not cover the amount.
	ErrInsufficientFunds = errors.New("insufficient funds")
)

// EntityKind distinguishes the two addressable balance holders.
type EntityKind string

const (
	// EntityUser addresses a personal wallet by user id.
	EntityUser EntityKind = "user"
	// EntityAccount addresses a shared account by name.
	EntityAccount EntityKind = "account"
)

// EntityRef addresses one ledger entity.
type EntityRef struct {
	Kind EntityKind `json:"kind"`
	ID   string     `json:"id"`
}

// UserRef returns a reference to a personal wallet.
func UserRef(userID string) EntityRef {
	return EntityRef{Kind: EntityUser, ID: userID}
}

// AccountRef returns a reference to a shared account.
func AccountRef(name string) EntityRef {
	return EntityRef{Kind: EntityAccount, ID: name}
}

// TransferResult reports the committed balances of both legs.
// Credit amount always equals debit amount; the engine never fabricates value.
type TransferResult struct {
	From        EntityRef `json:"from"`
	To          EntityRef `json:"to"`
	Amount      int64     `json:"amount"`
	FromBalance int64     `json:"from_balance"`
	ToBalance   int64     `json:"to_balance"`
}
