package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditType defines the category of a credit, fixed at creation.
type CreditType string

const (
	CreditPersonal CreditType = "PERSONAL"
	CreditBusiness CreditType = "BUSINESS"
)

// TransactionType defines the category of a transaction attached to a credit.
type TransactionType string

const (
	Deposit    TransactionType = "DEPOSIT"
	Withdrawal TransactionType = "WITHDRAWAL"
)

// Credit represents a credit line owned by a client. This is the aggregate
// root used by services; the CreditID is assigned by the store on creation and
// is immutable afterwards.
type Credit struct {
	CreditID           string          `json:"creditID"`
	Type               CreditType      `json:"type"`
	Amount             decimal.Decimal `json:"amount"`
	InterestRate       decimal.Decimal `json:"interestRate"`
	StartDate          time.Time       `json:"startDate"`
	EndDate            time.Time       `json:"endDate"`
	OutstandingBalance decimal.Decimal `json:"outstandingBalance"`
	ClientID           string          `json:"clientID"`
	Payments           []Payment       `json:"payments"`
	Transactions       []Transaction   `json:"transactions"`
	Balances           *Balance        `json:"balances,omitempty"` // Legacy denormalized snapshot, not authoritative
}

// Payment is a single amount applied against a credit's outstanding balance.
// The payment list on a credit is append-only.
type Payment struct {
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
}

// Transaction is an informational record attached to a credit; it is not
// mutated by the credit lifecycle logic.
type Transaction struct {
	ClientID    string          `json:"clientID"`
	Type        TransactionType `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description"`
}

// Balance is a point-in-time balance entry for one credit.
type Balance struct {
	ClientID      string          `json:"clientID"`
	CreditBalance decimal.Decimal `json:"creditBalance"`
	Date          time.Time       `json:"date"`
}

// BalanceReport aggregates the balance entries for every credit a client owns.
type BalanceReport struct {
	ClientID string    `json:"clientID"`
	Balances []Balance `json:"balances"`
}
