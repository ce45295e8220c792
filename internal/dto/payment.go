package dto

import (
	"fmt"
	"time"

	"github.com/fincore/credit-service/internal/apperrors"
	"github.com/fincore/credit-service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// PaymentRequest defines the data needed to apply a payment to a credit.
type PaymentRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

// Validate rejects negative payment amounts.
func (r *PaymentRequest) Validate() error {
	if r.Amount.IsNegative() {
		return fmt.Errorf("%w: payment amount must be non-negative", apperrors.ErrValidation)
	}
	return nil
}

// PaymentResponse defines the data returned after applying a payment.
type PaymentResponse struct {
	Amount decimal.Decimal `json:"amount"`
	Date   time.Time       `json:"date"`
}

// ToPaymentResponse converts a domain.Payment to a PaymentResponse DTO.
func ToPaymentResponse(payment *domain.Payment) PaymentResponse {
	return PaymentResponse{
		Amount: payment.Amount,
		Date:   payment.Date,
	}
}

// ToListPaymentResponse converts a slice of payments, preserving order.
func ToListPaymentResponse(payments []domain.Payment) []PaymentResponse {
	res := make([]PaymentResponse, len(payments))
	for i, payment := range payments {
		res[i] = ToPaymentResponse(&payment)
	}
	return res
}

// PaymentDetail carries a full payment record inside credit payloads.
type PaymentDetail struct {
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
}

func toDomainPayments(details []PaymentDetail) []domain.Payment {
	if details == nil {
		return nil
	}
	payments := make([]domain.Payment, len(details))
	for i, d := range details {
		payments[i] = domain.Payment{
			Amount:      d.Amount,
			Date:        d.Date,
			Description: d.Description,
		}
	}
	return payments
}

func toPaymentDetails(payments []domain.Payment) []PaymentDetail {
	details := make([]PaymentDetail, len(payments))
	for i, p := range payments {
		details[i] = PaymentDetail{
			Amount:      p.Amount,
			Date:        p.Date,
			Description: p.Description,
		}
	}
	return details
}
