package resilience

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/fincore/credit-service/internal/apperrors"
	"github.com/sony/gobreaker/v2"
)

// Settings parameterizes the circuit breakers guarding service operations.
type Settings struct {
	// MaxRequests allowed through while the breaker is half-open.
	MaxRequests uint32
	// Interval after which the closed-state failure counts reset.
	Interval time.Duration
	// OpenTimeout is how long the breaker stays open before probing again.
	OpenTimeout time.Duration
	// ConsecutiveFailures needed to trip the breaker.
	ConsecutiveFailures uint32
}

// NewBreaker builds a circuit breaker with the given operation name. State
// changes are logged so trip events show up as observability events. Business
// rejections (validation, not-found, admission, balance checks) do not count
// as downstream failures.
func NewBreaker[T any](name string, s Settings, logger *slog.Logger) *gobreaker.CircuitBreaker[T] {
	return gobreaker.NewCircuitBreaker[T](gobreaker.Settings{
		Name:        name,
		MaxRequests: s.MaxRequests,
		Interval:    s.Interval,
		Timeout:     s.OpenTimeout,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= s.ConsecutiveFailures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || isBusinessError(err)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn("Circuit breaker state changed",
				slog.String("breaker", name),
				slog.String("from", from.String()),
				slog.String("to", to.String()),
			)
		},
	})
}

// Tripped reports whether an operation failed because its resilience boundary
// rejected it (open breaker, half-open overflow, or operation timeout) rather
// than because of the operation itself.
func Tripped(err error) bool {
	return errors.Is(err, gobreaker.ErrOpenState) ||
		errors.Is(err, gobreaker.ErrTooManyRequests) ||
		errors.Is(err, context.DeadlineExceeded)
}

func isBusinessError(err error) bool {
	return errors.Is(err, apperrors.ErrNotFound) ||
		errors.Is(err, apperrors.ErrValidation) ||
		errors.Is(err, apperrors.ErrAdmissionDenied) ||
		errors.Is(err, apperrors.ErrUnknownClientType) ||
		errors.Is(err, apperrors.ErrPaymentExceedsBalance)
}
