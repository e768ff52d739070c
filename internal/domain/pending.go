package domain

import (
	"errors"
	"time"
)

var (
	// ErrMismatched indicates a confirmation signal that does not match the
	// proposal it claims to resolve.
	ErrMismatched = errors.New("signal does not match pending proposal")
	// ErrExpired indicates a proposal that timed out or was already resolved.
	ErrExpired = errors.New("proposal expired")
)

// PendingKind distinguishes the two interactive transfer flows.
type PendingKind string

const (
	// KindDirectPayment is a pay proposal confirmed by its initiator.
	KindDirectPayment PendingKind = "pay"
	// KindPaymentRequest is a claim proposal accepted or denied by the debtor.
	KindPaymentRequest PendingKind = "claim"
)

// PendingState is the confirmation state machine state. Created is the only
// non-terminal state; exactly one terminal transition occurs per instance.
type PendingState string

const (
	// StateCreated is the initial, unresolved state.
	StateCreated PendingState = "created"
	// StateConfirmed means the transfer was executed.
	StateConfirmed PendingState = "confirmed"
	// StateCancelled means the proposal was declined or failed re-validation.
	StateCancelled PendingState = "cancelled"
	// StateMismatched means the signal carried the wrong claimant or amount.
	StateMismatched PendingState = "mismatched"
	// StateExpired means the wait window elapsed with no signal.
	StateExpired PendingState = "expired"
)

// PendingTransfer is the ephemeral record of a proposal awaiting a signal.
// It is never persisted to the balance store.
//
// For a direct payment the initiator is the payer; for a payment request the
// initiator is the claimant and the counterparty is the debtor.
type PendingTransfer struct {
	ID           string      `json:"id"`
	Kind         PendingKind `json:"kind"`
	Initiator    string      `json:"initiator"`
	Counterparty string      `json:"counterparty"`
	Amount       int64       `json:"amount"`
	CreatedAt    time.Time   `json:"created_at"`
	Deadline     time.Time   `json:"deadline"`
}

// Responder returns the only user allowed to resolve the proposal.
func (p PendingTransfer) Responder() string {
	if p.Kind == KindPaymentRequest {
		return p.Counterparty
	}
	return p.Initiator
}

// Outcome reports the terminal resolution of a pending transfer.
type Outcome struct {
	Proposal PendingTransfer `json:"proposal"`
	State    PendingState    `json:"state"`
	Transfer TransferResult  `json:"transfer,omitempty"`
}
