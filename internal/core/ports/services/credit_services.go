package services

import (
	"context"

	"github.com/fincore/credit-service/internal/core/domain"
	"github.com/fincore/credit-service/internal/dto"
)

// CreditReaderSvc defines read operations over credit records.
type CreditReaderSvc interface {
	// ListCredits retrieves every credit in the store.
	ListCredits(ctx context.Context) ([]domain.Credit, error)

	// GetCreditByID retrieves a specific credit by its unique identifier.
	GetCreditByID(ctx context.Context, creditID string) (*domain.Credit, error)

	// GetCreditsByClientID retrieves every credit owned by a client; an empty
	// result surfaces as apperrors.ErrNotFound.
	GetCreditsByClientID(ctx context.Context, clientID string) ([]domain.Credit, error)

	// ListPaymentsByCreditID returns the payments recorded against a credit in
	// insertion order.
	ListPaymentsByCreditID(ctx context.Context, creditID string) ([]domain.Payment, error)

	// GetBalancesByClientID builds a balance report with one entry per credit
	// owned by the client, each stamped with a fresh report timestamp.
	GetBalancesByClientID(ctx context.Context, clientID string) (*domain.BalanceReport, error)
}

// CreditWriterSvc defines lifecycle mutations on credit records.
type CreditWriterSvc interface {
	// CreateCredit validates the request, resolves the owning client, and
	// delegates to the admission policy. The Authorization header is forwarded
	// opaquely to the client directory.
	CreateCredit(ctx context.Context, req dto.CreateCreditRequest, authHeader string) (*domain.Credit, error)

	// UpdateCredit replaces the mutable fields of an existing credit while
	// preserving its store-assigned id.
	UpdateCredit(ctx context.Context, creditID string, req dto.CreateCreditRequest) (*domain.Credit, error)

	// DeleteCredit removes a credit after an existence check.
	DeleteCredit(ctx context.Context, creditID string) error

	// PayByCreditID applies a payment against a credit's outstanding balance
	// and appends the payment record, persisted as a single atomic write.
	PayByCreditID(ctx context.Context, creditID string, req dto.PaymentRequest) (*domain.Payment, error)
}

// CreditSvcFacade combines all credit service interfaces.
type CreditSvcFacade interface {
	CreditReaderSvc
	CreditWriterSvc
}
