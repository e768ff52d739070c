// Package notifier delivers best-effort side notices to users affected by a
// ledger mutation. Delivery failures are logged and swallowed; they never
// roll back or block the mutation that triggered them.
package notifier

import (
	"context"

	"github.com/rs/zerolog"
)

// Notice kinds.
const (
	KindDeposit        = "deposit"
	KindWithdrawal     = "withdrawal"
	KindRequestPaid    = "request-paid"
	KindRequestRefused = "request-refused"
	KindRequestExpired = "request-expired"
	KindPayExpired     = "pay-expired"
)

// Notice is one message for a single user.
type Notice struct {
	Kind   string `json:"kind"`
	Title  string `json:"title"`
	Body   string `json:"body"`
	Amount int64  `json:"amount,omitempty"`
}

// Sink delivers a notice to a user.
//
//go:generate mockgen -source notifier.go -destination notifier_mock.go -package notifier
type Sink interface {
	Notify(ctx context.Context, userID string, notice Notice) error
}

// Send delivers a notice and logs the failure instead of returning it.
// All callers of a Sink go through here so no notification failure can leak
// into a primary operation result.
func Send(ctx context.Context, sink Sink, userID string, notice Notice) {
	l := zerolog.Ctx(ctx)

	if err := sink.Notify(ctx, userID, notice); err != nil {
		l.Warn().Err(err).Str("user_id", userID).Str("kind", notice.Kind).Msg("notification dropped")
	}
}

// LogSink writes notices to the logger. It stands in for a platform
// connection in development and in tests.
type LogSink struct {
	logger zerolog.Logger
}

// NewLogSink returns a logging sink.
func NewLogSink(logger zerolog.Logger) *LogSink {
	return &LogSink{logger: logger}
}

// Notify writes the notice to the structured log.
func (s *LogSink) Notify(_ context.Context, userID string, notice Notice) error {
	s.logger.Info().
		Str("user_id", userID).
		Str("kind", notice.Kind).
		Str("title", notice.Title).
		Str("body", notice.Body).
		Int64("amount", notice.Amount).
		Msg("notice")

	return nil
}
