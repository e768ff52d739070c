// Package confirmservice runs the interactive confirmation protocol gating
// person-to-person payments and payment requests.
//
// Each proposal is a short-lived state machine keyed by a correlation id.
// The first valid signal wins: once an instance reaches a terminal state all
// further signals for it are ignored, so at most one mutation can ever
// result from one instance. An unanswered proposal expires on its deadline.
package confirmservice

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/soca-bot/ledger/internal/domain"
	"github.com/soca-bot/ledger/internal/notifier"
)

// Signal actions accepted by Resolve.
const (
	ActionConfirm = "confirm"
	ActionCancel  = "cancel"
	ActionAccept  = "accept"
	ActionDeny    = "deny"
)

// Wallets provides the balance reads needed for pre- and re-validation.
type Wallets interface {
	GetBalance(ctx context.Context, userID string) (int64, error)
}

// TransferEngine moves value between two ledger entities.
type TransferEngine interface {
	Transfer(ctx context.Context, from, to domain.EntityRef, amount int64) (domain.TransferResult, error)
}

// Service tracks pending proposals and resolves their signals.
type Service struct {
	wallets   Wallets
	transfers TransferEngine
	sink      notifier.Sink
	logger    zerolog.Logger

	payWindow   time.Duration
	claimWindow time.Duration

	mu        sync.Mutex
	instances map[string]*instance
}

type instance struct {
	mu       sync.Mutex
	proposal domain.PendingTransfer
	state    domain.PendingState
	timer    *time.Timer
}

// New returns a confirmation service. The windows bound how long a pay or
// claim proposal waits for its signal.
func New(wallets Wallets, transfers TransferEngine, sink notifier.Sink, logger zerolog.Logger, payWindow, claimWindow time.Duration) *Service {
	if payWindow <= 0 {
		payWindow = 15 * time.Second
	}

	if claimWindow <= 0 {
		claimWindow = 30 * time.Second
	}

	return &Service{
		wallets:     wallets,
		transfers:   transfers,
		sink:        sink,
		logger:      logger,
		payWindow:   payWindow,
		claimWindow: claimWindow,
		instances:   make(map[string]*instance),
	}
}

// ProposePay validates and registers a direct payment from initiator to
// target. The initiator's balance is checked now and re-checked at confirm
// time, since it may change while the proposal waits.
func (s *Service) ProposePay(ctx context.Context, initiatorID, targetID string, amount int64) (domain.PendingTransfer, error) {
	if amount <= 0 || initiatorID == targetID {
		return domain.PendingTransfer{}, domain.ErrInvalidAmount
	}

	balance, err := s.wallets.GetBalance(ctx, initiatorID)
	if err != nil {
		return domain.PendingTransfer{}, err
	}

	if balance < amount {
		return domain.PendingTransfer{}, domain.ErrInsufficientFunds
	}

	return s.register(domain.KindDirectPayment, initiatorID, targetID, amount, s.payWindow), nil
}

// ProposeClaim registers a payment request by the claimant against the
// debtor. The debtor's balance is only checked when the debtor accepts.
func (s *Service) ProposeClaim(ctx context.Context, claimantID, debtorID string, amount int64) (domain.PendingTransfer, error) {
	if amount <= 0 || claimantID == debtorID {
		return domain.PendingTransfer{}, domain.ErrInvalidAmount
	}

	return s.register(domain.KindPaymentRequest, claimantID, debtorID, amount, s.claimWindow), nil
}

func (s *Service) register(kind domain.PendingKind, initiatorID, counterpartyID string, amount int64, window time.Duration) domain.PendingTransfer {
	now := time.Now()

	p := domain.PendingTransfer{
		ID:           uuid.NewString(),
		Kind:         kind,
		Initiator:    initiatorID,
		Counterparty: counterpartyID,
		Amount:       amount,
		CreatedAt:    now,
		Deadline:     now.Add(window),
	}

	inst := &instance{proposal: p, state: domain.StateCreated}
	inst.timer = time.AfterFunc(window, func() { s.expire(p.ID) })

	s.mu.Lock()
	s.instances[p.ID] = inst
	s.mu.Unlock()

	return p
}

// PayCustomID returns the control id for a direct payment signal.
func PayCustomID(p domain.PendingTransfer, action string) string {
	return fmt.Sprintf("pay:%s:%s", p.ID, action)
}

// ClaimCustomID returns the control id for a payment request signal. The
// claimant and amount are embedded so Resolve can reject stale or forged
// controls that no longer match the proposal.
func ClaimCustomID(p domain.PendingTransfer, action string) string {
	return fmt.Sprintf("claim:%s:%s:%d:%s", p.ID, p.Initiator, p.Amount, action)
}

// Resolve applies one component signal to the proposal it is correlated
// with. Unknown and already-resolved correlation ids report ErrExpired; a
// signal from anyone but the proposal's responder reports ErrUnauthorized
// and leaves the proposal pending.
func (s *Service) Resolve(ctx context.Context, customID, responderID string) (domain.Outcome, error) {
	parts := strings.Split(customID, ":")
	if len(parts) < 3 {
		return domain.Outcome{}, domain.ErrMismatched
	}

	kind, id, action := parts[0], parts[1], parts[len(parts)-1]

	s.mu.Lock()
	inst := s.instances[id]
	s.mu.Unlock()

	if inst == nil {
		return domain.Outcome{}, domain.ErrExpired
	}

	inst.mu.Lock()
	defer inst.mu.Unlock()

	if inst.state != domain.StateCreated {
		return domain.Outcome{Proposal: inst.proposal, State: inst.state}, domain.ErrExpired
	}

	p := inst.proposal

	if responderID != p.Responder() {
		return domain.Outcome{}, domain.ErrUnauthorized
	}

	switch {
	case kind == "pay" && p.Kind == domain.KindDirectPayment:
		return s.resolvePay(ctx, inst, action)
	case kind == "claim" && p.Kind == domain.KindPaymentRequest:
		return s.resolveClaim(ctx, inst, parts, action)
	}

	return domain.Outcome{}, domain.ErrMismatched
}

// resolvePay handles confirm/cancel by the initiator. Called with inst.mu held.
func (s *Service) resolvePay(ctx context.Context, inst *instance, action string) (domain.Outcome, error) {
	p := inst.proposal

	switch action {
	case ActionCancel:
		s.finish(inst, domain.StateCancelled)
		return domain.Outcome{Proposal: p, State: domain.StateCancelled}, nil

	case ActionConfirm:
		// Time has passed since the proposal; the captured balance is stale
		// and must be read again.
		balance, err := s.wallets.GetBalance(ctx, p.Initiator)
		if err != nil {
			// Store failure: leave the proposal pending so the signal can
			// be retried inside the window.
			return domain.Outcome{}, err
		}

		if balance < p.Amount {
			s.finish(inst, domain.StateCancelled)
			return domain.Outcome{Proposal: p, State: domain.StateCancelled}, domain.ErrInsufficientFunds
		}

		result, err := s.transfers.Transfer(ctx, domain.UserRef(p.Initiator), domain.UserRef(p.Counterparty), p.Amount)
		if err != nil {
			// The transfer may have committed its debit leg; the instance
			// must not stay resolvable.
			s.finish(inst, domain.StateCancelled)
			return domain.Outcome{Proposal: p, State: domain.StateCancelled}, err
		}

		s.finish(inst, domain.StateConfirmed)

		return domain.Outcome{Proposal: p, State: domain.StateConfirmed, Transfer: result}, nil
	}

	return domain.Outcome{}, domain.ErrMismatched
}

// resolveClaim handles accept/deny by the debtor. Called with inst.mu held.
func (s *Service) resolveClaim(ctx context.Context, inst *instance, parts []string, action string) (domain.Outcome, error) {
	p := inst.proposal

	// The signal must carry the exact claimant and amount the proposal was
	// created with.
	if len(parts) != 5 {
		return domain.Outcome{}, domain.ErrMismatched
	}

	amount, err := strconv.ParseInt(parts[3], 10, 64)
	if err != nil || parts[2] != p.Initiator || amount != p.Amount {
		s.finish(inst, domain.StateMismatched)
		return domain.Outcome{Proposal: p, State: domain.StateMismatched}, domain.ErrMismatched
	}

	switch action {
	case ActionDeny:
		s.finish(inst, domain.StateCancelled)
		notifier.Send(ctx, s.sink, p.Initiator, notifier.Notice{
			Kind:   notifier.KindRequestRefused,
			Title:  "Payment request refused",
			Body:   "Your payment request was refused",
			Amount: p.Amount,
		})

		return domain.Outcome{Proposal: p, State: domain.StateCancelled}, nil

	case ActionAccept:
		result, err := s.transfers.Transfer(ctx, domain.UserRef(p.Counterparty), domain.UserRef(p.Initiator), p.Amount)
		if err != nil {
			s.finish(inst, domain.StateCancelled)
			return domain.Outcome{Proposal: p, State: domain.StateCancelled}, err
		}

		s.finish(inst, domain.StateConfirmed)
		notifier.Send(ctx, s.sink, p.Initiator, notifier.Notice{
			Kind:   notifier.KindRequestPaid,
			Title:  "Payment request paid",
			Body:   "Your payment request was paid",
			Amount: p.Amount,
		})

		return domain.Outcome{Proposal: p, State: domain.StateConfirmed, Transfer: result}, nil
	}

	return domain.Outcome{}, domain.ErrMismatched
}

// finish moves the instance to a terminal state and forgets it. Called with
// inst.mu held.
func (s *Service) finish(inst *instance, state domain.PendingState) {
	inst.state = state
	inst.timer.Stop()

	s.mu.Lock()
	delete(s.instances, inst.proposal.ID)
	s.mu.Unlock()
}

// expire runs on the proposal's deadline. A proposal that was resolved in
// the meantime is left alone.
func (s *Service) expire(id string) {
	s.mu.Lock()
	inst := s.instances[id]
	s.mu.Unlock()

	if inst == nil {
		return
	}

	inst.mu.Lock()

	if inst.state != domain.StateCreated {
		inst.mu.Unlock()
		return
	}

	s.finish(inst, domain.StateExpired)
	p := inst.proposal
	inst.mu.Unlock()

	ctx := s.logger.WithContext(context.Background())

	switch p.Kind {
	case domain.KindDirectPayment:
		notifier.Send(ctx, s.sink, p.Initiator, notifier.Notice{
			Kind:   notifier.KindPayExpired,
			Title:  "Payment expired",
			Body:   "Your payment was not confirmed in time",
			Amount: p.Amount,
		})
	case domain.KindPaymentRequest:
		notifier.Send(ctx, s.sink, p.Initiator, notifier.Notice{
			Kind:   notifier.KindRequestExpired,
			Title:  "Payment request expired",
			Body:   "Your payment request was not answered in time",
			Amount: p.Amount,
		})
		notifier.Send(ctx, s.sink, p.Counterparty, notifier.Notice{
			Kind:   notifier.KindRequestExpired,
			Title:  "Payment request expired",
			Body:   "A payment request addressed to you expired",
			Amount: p.Amount,
		})
	}
}

// Pending reports whether the given proposal is still waiting for a signal.
func (s *Service) Pending(id string) bool {
	s.mu.Lock()
	inst := s.instances[id]
	s.mu.Unlock()

	if inst == nil {
		return false
	}

	inst.mu.Lock()
	defer inst.mu.Unlock()

	return inst.state == domain.StateCreated
}
