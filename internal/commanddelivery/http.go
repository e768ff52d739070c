// Package commanddelivery is the delivery layer between the platform
// connector and the ledger services. The connector posts command
// invocations and component signals; the handler dispatches them and
// answers with a structured result the presentation layer renders.
package commanddelivery

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/soca-bot/ledger/internal/confirmservice"
	"github.com/soca-bot/ledger/internal/domain"
	"github.com/soca-bot/ledger/pkg/datepkg"
	"github.com/soca-bot/ledger/pkg/web"
)

// WalletService provides service layer interface needed by the delivery layer.
//
//go:generate mockgen -source http.go -destination http_mock.go -package commanddelivery
type WalletService interface {
	ClaimDailyBonus(ctx context.Context, userID, today string) (domain.BonusResult, error)
	GetBalance(ctx context.Context, userID string) (int64, error)
}

// AccountService provides shared account operations.
type AccountService interface {
	Create(ctx context.Context, name, ownerID, password string) (domain.Account, error)
	Deposit(ctx context.Context, name, fromUserID string, amount int64) (domain.TransferResult, error)
	Withdraw(ctx context.Context, name, requesterID string, amount int64, password string) (domain.TransferResult, error)
	CheckBalance(ctx context.Context, name, requesterID, password string) (int64, error)
}

// ConfirmService runs the interactive confirmation protocol.
type ConfirmService interface {
	ProposePay(ctx context.Context, initiatorID, targetID string, amount int64) (domain.PendingTransfer, error)
	ProposeClaim(ctx context.Context, claimantID, debtorID string, amount int64) (domain.PendingTransfer, error)
	Resolve(ctx context.Context, customID, responderID string) (domain.Outcome, error)
}

// Args carries the typed arguments of one invocation. Account doubles as
// the name argument of check; Target is a user reference.
type Args struct {
	Account  string `json:"account,omitempty"`
	Target   string `json:"target,omitempty"`
	Amount   int64  `json:"amount,omitempty"`
	Password string `json:"password,omitempty"`
}

// Invocation is one inbound command from the platform connector.
type Invocation struct {
	Command string `json:"command" binding:"required"`
	UserID  string `json:"user_id" binding:"required"`
	Args    Args   `json:"args"`
}

// Signal is one inbound component signal, correlated to previously issued
// interactive controls by its opaque custom id.
type Signal struct {
	CustomID string `json:"custom_id" binding:"required"`
	UserID   string `json:"user_id" binding:"required"`
}

type commandFunc func(ctx context.Context, inv Invocation) web.Result

// Handler routes invocations through the dispatch table.
type Handler struct {
	wallets  WalletService
	accounts AccountService
	confirms ConfirmService
	now      func() time.Time
	commands map[string]commandFunc
}

// NewHandler returns the delivery handler with its dispatch table.
func NewHandler(ws WalletService, as AccountService, cs ConfirmService) *Handler {
	h := &Handler{
		wallets:  ws,
		accounts: as,
		confirms: cs,
		now:      time.Now,
	}

	h.commands = map[string]commandFunc{
		"login":    h.login,
		"money":    h.money,
		"create":   h.create,
		"transfer": h.deposit,
		"withdraw": h.withdraw,
		"check":    h.check,
		"pay":      h.pay,
		"claim":    h.claim,
	}

	return h
}

// Command handles POST /interactions/commands.
func (h *Handler) Command(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var inv Invocation
	if err := gctx.ShouldBindJSON(&inv); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.JSONError{Error: errMsg}})

		return
	}

	command, ok := h.commands[inv.Command]
	if !ok {
		gctx.JSON(http.StatusNotFound, web.Error(fmt.Errorf("unknown command %q", inv.Command)))
		return
	}

	gctx.JSON(http.StatusOK, command(ctx, inv))
}

// SignalHandler handles POST /interactions/signals.
func (h *Handler) SignalHandler(gctx *gin.Context) {
	ctx := gctx.Request.Context()
	l := zerolog.Ctx(gctx)

	var sig Signal
	if err := gctx.ShouldBindJSON(&sig); err != nil {
		var (
			ve     validator.ValidationErrors
			errMsg string
		)

		if errors.As(err, &ve) {
			field := ve[0]
			errMsg = field.Field() + web.GetErrorMsg(field)
		}

		l.Info().Err(err).Send()
		gctx.JSON(http.StatusBadRequest, web.Response{Error: web.JSONError{Error: errMsg}})

		return
	}

	outcome, err := h.confirms.Resolve(ctx, sig.CustomID, sig.UserID)
	if err != nil {
		gctx.JSON(http.StatusOK, rejection(err))
		return
	}

	gctx.JSON(http.StatusOK, outcomeResult(outcome))
}

func (h *Handler) login(ctx context.Context, inv Invocation) web.Result {
	res, err := h.wallets.ClaimDailyBonus(ctx, inv.UserID, datepkg.Today(h.now()))
	if err != nil {
		return rejection(err)
	}

	switch res.Status {
	case domain.BonusFirstTime:
		return web.Result{
			Status:     "bonus-first-time",
			Title:      "Login bonus",
			Body:       fmt.Sprintf("Welcome! You received your first %d soca.", res.Balance),
			NewBalance: web.Int64(res.Balance),
		}
	case domain.BonusAlreadyClaimed:
		return web.Result{
			Status: "bonus-already-claimed",
			Title:  "Login bonus",
			Body:   "You already claimed today's bonus. Come back tomorrow!",
		}
	default:
		return web.Result{
			Status:     "bonus-granted",
			Title:      "Login bonus",
			Body:       fmt.Sprintf("Bonus received! Your balance is now %d soca.", res.Balance),
			NewBalance: web.Int64(res.Balance),
		}
	}
}

func (h *Handler) money(ctx context.Context, inv Invocation) web.Result {
	balance, err := h.wallets.GetBalance(ctx, inv.UserID)
	if err != nil {
		return rejection(err)
	}

	return web.Result{
		Status:     "balance",
		Title:      "Balance",
		Body:       fmt.Sprintf("You hold %d soca.", balance),
		NewBalance: web.Int64(balance),
		Ephemeral:  true,
	}
}

func (h *Handler) create(ctx context.Context, inv Invocation) web.Result {
	if inv.Args.Account == "" {
		return web.Result{
			Status:    "invalid-name",
			Title:     "Invalid name",
			Body:      "An account needs a name.",
			Ephemeral: true,
		}
	}

	account, err := h.accounts.Create(ctx, inv.Args.Account, inv.UserID, inv.Args.Password)
	if err != nil {
		return rejection(err)
	}

	return web.Result{
		Status: "account-created",
		Title:  "Account created",
		Body:   fmt.Sprintf("Account %q is ready.", account.Name),
	}
}

func (h *Handler) deposit(ctx context.Context, inv Invocation) web.Result {
	result, err := h.accounts.Deposit(ctx, inv.Args.Account, inv.UserID, inv.Args.Amount)
	if err != nil {
		return rejection(err)
	}

	return web.Result{
		Status:     "deposited",
		Title:      "Deposit complete",
		Body:       fmt.Sprintf("Moved %d soca into %q.", result.Amount, inv.Args.Account),
		Amount:     web.Int64(result.Amount),
		NewBalance: web.Int64(result.FromBalance),
		Ephemeral:  true,
	}
}

func (h *Handler) withdraw(ctx context.Context, inv Invocation) web.Result {
	result, err := h.accounts.Withdraw(ctx, inv.Args.Account, inv.UserID, inv.Args.Amount, inv.Args.Password)
	if err != nil {
		return rejection(err)
	}

	return web.Result{
		Status:     "withdrawn",
		Title:      "Withdrawal complete",
		Body:       fmt.Sprintf("Withdrew %d soca from %q.", result.Amount, inv.Args.Account),
		Amount:     web.Int64(result.Amount),
		NewBalance: web.Int64(result.ToBalance),
		Ephemeral:  true,
	}
}

func (h *Handler) check(ctx context.Context, inv Invocation) web.Result {
	balance, err := h.accounts.CheckBalance(ctx, inv.Args.Account, inv.UserID, inv.Args.Password)
	if err != nil {
		return rejection(err)
	}

	return web.Result{
		Status:     "account-balance",
		Title:      "Account balance",
		Body:       fmt.Sprintf("%q holds %d soca.", inv.Args.Account, balance),
		NewBalance: web.Int64(balance),
		Ephemeral:  true,
	}
}

func (h *Handler) pay(ctx context.Context, inv Invocation) web.Result {
	p, err := h.confirms.ProposePay(ctx, inv.UserID, inv.Args.Target, inv.Args.Amount)
	if err != nil {
		return rejection(err)
	}

	return web.Result{
		Status:    "pay-pending",
		Title:     "Confirm payment",
		Body:      fmt.Sprintf("Send %d soca? Confirm within %d seconds.", p.Amount, int(time.Until(p.Deadline).Seconds())),
		Amount:    web.Int64(p.Amount),
		Ephemeral: true,
		Controls: []web.Control{
			{CustomID: confirmservice.PayCustomID(p, confirmservice.ActionConfirm), Label: "Confirm"},
			{CustomID: confirmservice.PayCustomID(p, confirmservice.ActionCancel), Label: "Cancel"},
		},
	}
}

func (h *Handler) claim(ctx context.Context, inv Invocation) web.Result {
	p, err := h.confirms.ProposeClaim(ctx, inv.UserID, inv.Args.Target, inv.Args.Amount)
	if err != nil {
		return rejection(err)
	}

	return web.Result{
		Status:    "claim-pending",
		Title:     "Payment requested",
		Body:      fmt.Sprintf("You are asked to pay %d soca.", p.Amount),
		Amount:    web.Int64(p.Amount),
		Ephemeral: true,
		Controls: []web.Control{
			{CustomID: confirmservice.ClaimCustomID(p, confirmservice.ActionAccept), Label: "Pay"},
			{CustomID: confirmservice.ClaimCustomID(p, confirmservice.ActionDeny), Label: "Refuse"},
		},
	}
}

// outcomeResult renders a terminal confirmation outcome for the responder.
func outcomeResult(outcome domain.Outcome) web.Result {
	switch outcome.State {
	case domain.StateConfirmed:
		if outcome.Proposal.Kind == domain.KindPaymentRequest {
			return web.Result{
				Status:     "claim-paid",
				Title:      "Payment sent",
				Body:       fmt.Sprintf("You paid %d soca.", outcome.Transfer.Amount),
				Amount:     web.Int64(outcome.Transfer.Amount),
				NewBalance: web.Int64(outcome.Transfer.FromBalance),
				Ephemeral:  true,
			}
		}

		return web.Result{
			Status:     "paid",
			Title:      "Payment complete",
			Body:       fmt.Sprintf("Sent %d soca.", outcome.Transfer.Amount),
			Amount:     web.Int64(outcome.Transfer.Amount),
			NewBalance: web.Int64(outcome.Transfer.FromBalance),
			Ephemeral:  true,
		}
	default:
		return web.Result{
			Status:    "cancelled",
			Title:     "Cancelled",
			Body:      "Nothing was transferred.",
			Ephemeral: true,
		}
	}
}

// rejection maps a service error to the user-visible result. Store failures
// and anything unexpected collapse to a generic try-again reply.
func rejection(err error) web.Result {
	result := web.Result{Ephemeral: true}

	switch {
	case errors.Is(err, domain.ErrInvalidAmount):
		result.Status = "invalid-amount"
		result.Title = "Invalid amount"
		result.Body = "The amount must be a positive whole number."
	case errors.Is(err, domain.ErrNoWalletData):
		result.Status = "no-wallet"
		result.Title = "No wallet"
		result.Body = "You have no soca yet. Use /login to claim your first bonus."
	case errors.Is(err, domain.ErrAccountNotFound):
		result.Status = "account-not-found"
		result.Title = "Unknown account"
		result.Body = "No account with that name exists."
	case errors.Is(err, domain.ErrAccountExists):
		result.Status = "account-exists"
		result.Title = "Name taken"
		result.Body = "An account with that name already exists."
	case errors.Is(err, domain.ErrUnauthorized):
		result.Status = "unauthorized"
		result.Title = "Not allowed"
		result.Body = "You are not allowed to do that."
	case errors.Is(err, domain.ErrInsufficientFunds):
		result.Status = "insufficient-funds"
		result.Title = "Not enough soca"
		result.Body = "Your balance does not cover that amount."
	case errors.Is(err, domain.ErrMismatched):
		result.Status = "mismatched"
		result.Title = "Stale controls"
		result.Body = "That confirmation no longer matches its request."
	case errors.Is(err, domain.ErrExpired):
		result.Status = "expired"
		result.Title = "Expired"
		result.Body = "That confirmation expired or was already handled."
	default:
		result.Status = "try-again"
		result.Title = "Something went wrong"
		result.Body = "Please try again."
	}

	return result
}
