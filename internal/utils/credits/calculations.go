package credits

import (
	"fmt"
	"time"

	"github.com/fincore/credit-service/internal/apperrors"
	"github.com/fincore/credit-service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// paymentDescription is the fixed tag stamped on every payment record created
// by the orchestrator; it is never user-supplied.
const paymentDescription = "new Pay"

// ApplyPayment computes the outstanding balance remaining after applying a
// payment, rounded to the nearest whole unit. It fails without side effects
// when the payment amount is negative or would drive the balance below zero.
func ApplyPayment(currentBalance, paymentAmount decimal.Decimal) (decimal.Decimal, error) {
	if paymentAmount.IsNegative() {
		return decimal.Zero, fmt.Errorf("%w: payment amount must be non-negative", apperrors.ErrValidation)
	}

	newBalance := currentBalance.Sub(paymentAmount)
	if newBalance.IsNegative() {
		return decimal.Zero, apperrors.ErrPaymentExceedsBalance
	}

	return newBalance.Round(0), nil
}

// NewPayment constructs a payment record for the given amount. The timestamp
// is injected by the caller so the construction stays deterministic in tests.
func NewPayment(amount decimal.Decimal, now time.Time) domain.Payment {
	return domain.Payment{
		Amount:      amount,
		Date:        now,
		Description: paymentDescription,
	}
}
