package repositories

import (
	"context"

	"github.com/fincore/credit-service/internal/core/domain"
)

// CreditReader defines read operations for credit data.
type CreditReader interface {
	// FindAllCredits retrieves every credit in the store.
	FindAllCredits(ctx context.Context) ([]domain.Credit, error)

	// FindCreditByID retrieves a specific credit by its unique identifier.
	// It returns apperrors.ErrNotFound when no credit exists with the id.
	FindCreditByID(ctx context.Context, creditID string) (*domain.Credit, error)

	// FindCreditsByClientID retrieves every credit owned by a client.
	// An empty result is not an error at this layer.
	FindCreditsByClientID(ctx context.Context, clientID string) ([]domain.Credit, error)
}

// CreditWriter defines write operations for credit data.
type CreditWriter interface {
	// SaveCredit persists a credit, inserting when the id is empty and
	// replacing the full document otherwise. The returned credit carries the
	// store-assigned id.
	SaveCredit(ctx context.Context, credit domain.Credit) (*domain.Credit, error)

	// DeleteCredit removes a credit from the store.
	DeleteCredit(ctx context.Context, credit domain.Credit) error
}

// CreditRepository combines all credit repository interfaces.
// This is a facade for clients that need access to all operations.
type CreditRepository interface {
	CreditReader
	CreditWriter
}
