package domain

import (
	"errors"
	"time"
)

var (
	// ErrAccountNotFound indicates that the named account does not exist.
	ErrAccountNotFound = errors.New("account not found")
	// ErrAccountExists indicates that the account name is already taken.
	ErrAccountExists = errors.New("account already exists")
	// ErrUnauthorized indicates a password or ownership mismatch.
	ErrUnauthorized = errors.New("unauthorized")
)

// Account holds a named shared balance pool. The name is a global,
// case-sensitive namespace. HashedPassword is empty for open accounts.
type Account struct {
	Name           string    `json:"name"`
	Owner          string    `json:"owner"`
	HashedPassword string    `json:"password,omitempty"`
	Balance        int64     `json:"balance"`
	CreatedAt      time.Time `json:"created_at"`
}

// Protected reports whether the account requires a password for
// non-owner access.
func (a Account) Protected() bool {
	return a.HashedPassword != ""
}
