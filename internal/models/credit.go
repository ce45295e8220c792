package models

import "time"

// Credit is the BSON document shape persisted in the `credit` collection.
// Amounts are stored as float64 to keep the historical document layout.
type Credit struct {
	CreditID           string        `bson:"_id,omitempty"`
	Type               string        `bson:"type"`
	Amount             float64       `bson:"amount"`
	InterestRate       float64       `bson:"interestRate"`
	StartDate          time.Time     `bson:"startDate"`
	EndDate            time.Time     `bson:"endDate"`
	OutstandingBalance float64       `bson:"outstandingBalance"`
	ClientID           string        `bson:"clientId"`
	Payments           []Payment     `bson:"payments,omitempty"`
	Transactions       []Transaction `bson:"transactions,omitempty"`
	Balances           *Balance      `bson:"balances,omitempty"`
}

// Payment is a payment entry embedded in a credit document.
type Payment struct {
	Amount      float64   `bson:"amount"`
	Date        time.Time `bson:"date"`
	Description string    `bson:"description"`
}

// Transaction is a transaction entry embedded in a credit document.
type Transaction struct {
	ClientID    string    `bson:"clientId"`
	Type        string    `bson:"type"`
	Amount      float64   `bson:"amount"`
	Date        time.Time `bson:"date"`
	Description string    `bson:"description"`
}

// Balance is the legacy denormalized balance snapshot embedded in a credit
// document.
type Balance struct {
	ClientID      string    `bson:"clientId"`
	CreditBalance float64   `bson:"creditBalance"`
	Date          time.Time `bson:"date"`
}
