package dto

import (
	"fmt"
	"time"

	"github.com/fincore/credit-service/internal/apperrors"
	"github.com/fincore/credit-service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateCreditRequest defines the data needed to create or replace a credit.
// Binding tags cover the transport layer; Validate enforces the same field
// constraints for callers that bypass gin binding.
type CreateCreditRequest struct {
	Type               domain.CreditType   `json:"type" binding:"required,oneof=PERSONAL BUSINESS"`
	Amount             decimal.Decimal     `json:"amount"`
	InterestRate       decimal.Decimal     `json:"interestRate"`
	StartDate          time.Time           `json:"startDate" binding:"required"`
	EndDate            time.Time           `json:"endDate" binding:"required"`
	OutstandingBalance decimal.Decimal     `json:"outstandingBalance"`
	ClientID           string              `json:"clientID" binding:"required"`
	Payments           []PaymentDetail     `json:"payments"`
	Transactions       []TransactionDetail `json:"transactions"`
	Balances           *BalanceDetail      `json:"balances"`
}

// Validate checks each field in declaration order and fails fast on the first
// violation. endDate is only checked for presence, never against startDate.
func (r *CreateCreditRequest) Validate() error {
	if r.Type != domain.CreditPersonal && r.Type != domain.CreditBusiness {
		return fmt.Errorf("%w: type must be either PERSONAL or BUSINESS", apperrors.ErrValidation)
	}
	if r.Amount.IsNegative() {
		return fmt.Errorf("%w: amount must be non-negative", apperrors.ErrValidation)
	}
	if r.InterestRate.IsNegative() {
		return fmt.Errorf("%w: interest rate must be non-negative", apperrors.ErrValidation)
	}
	if r.StartDate.IsZero() {
		return fmt.Errorf("%w: start date is required", apperrors.ErrValidation)
	}
	if r.EndDate.IsZero() {
		return fmt.Errorf("%w: end date is required", apperrors.ErrValidation)
	}
	if r.OutstandingBalance.IsNegative() {
		return fmt.Errorf("%w: outstanding balance must be non-negative", apperrors.ErrValidation)
	}
	if r.ClientID == "" {
		return fmt.Errorf("%w: client ID is required", apperrors.ErrValidation)
	}
	return nil
}

// ToDomainCredit converts the request into a domain credit. The CreditID is
// left empty; the store assigns it on first save.
func (r *CreateCreditRequest) ToDomainCredit() domain.Credit {
	return domain.Credit{
		Type:               r.Type,
		Amount:             r.Amount,
		InterestRate:       r.InterestRate,
		StartDate:          r.StartDate,
		EndDate:            r.EndDate,
		OutstandingBalance: r.OutstandingBalance,
		ClientID:           r.ClientID,
		Payments:           toDomainPayments(r.Payments),
		Transactions:       toDomainTransactions(r.Transactions),
		Balances:           toDomainBalance(r.Balances),
	}
}

// CreditResponse defines the data returned for a credit.
// Mirrors domain.Credit including the store-assigned id.
type CreditResponse struct {
	ID                 string              `json:"id"`
	Type               domain.CreditType   `json:"type"`
	Amount             decimal.Decimal     `json:"amount"`
	InterestRate       decimal.Decimal     `json:"interestRate"`
	StartDate          time.Time           `json:"startDate"`
	EndDate            time.Time           `json:"endDate"`
	OutstandingBalance decimal.Decimal     `json:"outstandingBalance"`
	ClientID           string              `json:"clientID"`
	Payments           []PaymentDetail     `json:"payments"`
	Transactions       []TransactionDetail `json:"transactions"`
	Balances           *BalanceDetail      `json:"balances,omitempty"`
}

// ToCreditResponse converts a domain.Credit to a CreditResponse DTO.
func ToCreditResponse(credit *domain.Credit) CreditResponse {
	return CreditResponse{
		ID:                 credit.CreditID,
		Type:               credit.Type,
		Amount:             credit.Amount,
		InterestRate:       credit.InterestRate,
		StartDate:          credit.StartDate,
		EndDate:            credit.EndDate,
		OutstandingBalance: credit.OutstandingBalance,
		ClientID:           credit.ClientID,
		Payments:           toPaymentDetails(credit.Payments),
		Transactions:       toTransactionDetails(credit.Transactions),
		Balances:           toBalanceDetail(credit.Balances),
	}
}

// ToListCreditResponse converts a slice of domain credits to response DTOs.
func ToListCreditResponse(creditList []domain.Credit) []CreditResponse {
	res := make([]CreditResponse, len(creditList))
	for i, credit := range creditList {
		res[i] = ToCreditResponse(&credit)
	}
	return res
}

// TransactionDetail carries an informational transaction through requests and
// responses unchanged.
type TransactionDetail struct {
	ClientID    string                 `json:"clientID"`
	Type        domain.TransactionType `json:"type"`
	Amount      decimal.Decimal        `json:"amount"`
	Date        time.Time              `json:"date"`
	Description string                 `json:"description"`
}

func toDomainTransactions(details []TransactionDetail) []domain.Transaction {
	if details == nil {
		return nil
	}
	txns := make([]domain.Transaction, len(details))
	for i, d := range details {
		txns[i] = domain.Transaction{
			ClientID:    d.ClientID,
			Type:        d.Type,
			Amount:      d.Amount,
			Date:        d.Date,
			Description: d.Description,
		}
	}
	return txns
}

func toTransactionDetails(txns []domain.Transaction) []TransactionDetail {
	details := make([]TransactionDetail, len(txns))
	for i, t := range txns {
		details[i] = TransactionDetail{
			ClientID:    t.ClientID,
			Type:        t.Type,
			Amount:      t.Amount,
			Date:        t.Date,
			Description: t.Description,
		}
	}
	return details
}
