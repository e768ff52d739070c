// Package domain provides defenitions of all entities.
package domain

import "errors"

// BonusAmount is the fixed daily login bonus in soca.
const BonusAmount = 1000

var (
	// ErrNoWalletData indicates that the user has never claimed a bonus and owns no wallet.
	ErrNoWalletData = errors.New("no wallet data")
	// ErrAlreadyClaimedToday indicates that the daily bonus was already granted today.
	ErrAlreadyClaimedToday = errors.New("bonus already claimed today")
)

// Wallet holds the personal balance of a single user.
type Wallet struct {
	UserID        string `json:"user_id"`
	Balance       int64  `json:"balance"`
	LastBonusDate string `json:"last_login,omitempty"` // calendar date in JST, empty if never granted
}

// BonusStatus tags the outcome of a daily bonus claim.
type BonusStatus string

const (
	// BonusFirstTime indicates the wallet was created by this claim.
	BonusFirstTime BonusStatus = "first-time"
	// BonusAlreadyClaimed indicates the bonus was already granted for the same date.
	BonusAlreadyClaimed BonusStatus = "already-claimed"
	// BonusGranted indicates the bonus was added to an existing wallet.
	BonusGranted BonusStatus = "granted"
)

// BonusResult is the outcome of a daily bonus claim.
type BonusResult struct {
	Status  BonusStatus `json:"status"`
	Balance int64       `json:"balance"`
}
