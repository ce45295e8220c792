package mapping

import (
	"github.com/fincore/credit-service/internal/core/domain"
	"github.com/fincore/credit-service/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelCredit converts a domain Credit to its persistence model.
func ToModelCredit(d domain.Credit) models.Credit {
	return models.Credit{
		CreditID:           d.CreditID,
		Type:               string(d.Type),
		Amount:             d.Amount.InexactFloat64(),
		InterestRate:       d.InterestRate.InexactFloat64(),
		StartDate:          d.StartDate,
		EndDate:            d.EndDate,
		OutstandingBalance: d.OutstandingBalance.InexactFloat64(),
		ClientID:           d.ClientID,
		Payments:           toModelPayments(d.Payments),
		Transactions:       toModelTransactions(d.Transactions),
		Balances:           toModelBalance(d.Balances),
	}
}

// ToDomainCredit converts a persistence model to a domain Credit. Absent
// payment and transaction lists are normalized to empty slices so downstream
// logic never branches on presence.
func ToDomainCredit(m models.Credit) domain.Credit {
	return domain.Credit{
		CreditID:           m.CreditID,
		Type:               domain.CreditType(m.Type),
		Amount:             decimal.NewFromFloat(m.Amount),
		InterestRate:       decimal.NewFromFloat(m.InterestRate),
		StartDate:          m.StartDate,
		EndDate:            m.EndDate,
		OutstandingBalance: decimal.NewFromFloat(m.OutstandingBalance),
		ClientID:           m.ClientID,
		Payments:           toDomainPayments(m.Payments),
		Transactions:       toDomainTransactions(m.Transactions),
		Balances:           toDomainBalance(m.Balances),
	}
}

// ToDomainCreditSlice converts a slice of persistence models to domain Credits.
func ToDomainCreditSlice(ms []models.Credit) []domain.Credit {
	ds := make([]domain.Credit, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainCredit(m)
	}
	return ds
}

func toModelPayments(payments []domain.Payment) []models.Payment {
	ms := make([]models.Payment, len(payments))
	for i, p := range payments {
		ms[i] = models.Payment{
			Amount:      p.Amount.InexactFloat64(),
			Date:        p.Date,
			Description: p.Description,
		}
	}
	return ms
}

func toDomainPayments(ms []models.Payment) []domain.Payment {
	payments := make([]domain.Payment, len(ms))
	for i, m := range ms {
		payments[i] = domain.Payment{
			Amount:      decimal.NewFromFloat(m.Amount),
			Date:        m.Date,
			Description: m.Description,
		}
	}
	return payments
}

func toModelTransactions(txns []domain.Transaction) []models.Transaction {
	ms := make([]models.Transaction, len(txns))
	for i, t := range txns {
		ms[i] = models.Transaction{
			ClientID:    t.ClientID,
			Type:        string(t.Type),
			Amount:      t.Amount.InexactFloat64(),
			Date:        t.Date,
			Description: t.Description,
		}
	}
	return ms
}

func toDomainTransactions(ms []models.Transaction) []domain.Transaction {
	txns := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		txns[i] = domain.Transaction{
			ClientID:    m.ClientID,
			Type:        domain.TransactionType(m.Type),
			Amount:      decimal.NewFromFloat(m.Amount),
			Date:        m.Date,
			Description: m.Description,
		}
	}
	return txns
}

func toModelBalance(b *domain.Balance) *models.Balance {
	if b == nil {
		return nil
	}
	return &models.Balance{
		ClientID:      b.ClientID,
		CreditBalance: b.CreditBalance.InexactFloat64(),
		Date:          b.Date,
	}
}

func toDomainBalance(m *models.Balance) *domain.Balance {
	if m == nil {
		return nil
	}
	return &domain.Balance{
		ClientID:      m.ClientID,
		CreditBalance: decimal.NewFromFloat(m.CreditBalance),
		Date:          m.Date,
	}
}
