package dto

import (
	"time"

	"github.com/fincore/credit-service/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceDetail is a single balance entry in a balance report or an embedded
// balance snapshot on a credit payload.
type BalanceDetail struct {
	ClientID      string          `json:"clientID"`
	CreditBalance decimal.Decimal `json:"creditBalance"`
	Date          time.Time       `json:"date"`
}

// BalanceResponse defines the balance report returned for a client, with one
// entry per credit the client owns.
type BalanceResponse struct {
	ClientID string          `json:"clientID"`
	Balances []BalanceDetail `json:"balances"`
}

// ToBalanceResponse converts a domain.BalanceReport to a BalanceResponse DTO.
func ToBalanceResponse(report *domain.BalanceReport) BalanceResponse {
	balances := make([]BalanceDetail, len(report.Balances))
	for i, b := range report.Balances {
		balances[i] = BalanceDetail{
			ClientID:      b.ClientID,
			CreditBalance: b.CreditBalance,
			Date:          b.Date,
		}
	}
	return BalanceResponse{
		ClientID: report.ClientID,
		Balances: balances,
	}
}

func toDomainBalance(detail *BalanceDetail) *domain.Balance {
	if detail == nil {
		return nil
	}
	return &domain.Balance{
		ClientID:      detail.ClientID,
		CreditBalance: detail.CreditBalance,
		Date:          detail.Date,
	}
}

func toBalanceDetail(balance *domain.Balance) *BalanceDetail {
	if balance == nil {
		return nil
	}
	return &BalanceDetail{
		ClientID:      balance.ClientID,
		CreditBalance: balance.CreditBalance,
		Date:          balance.Date,
	}
}
