package services

import (
	"context"

	"github.com/fincore/credit-service/internal/core/domain"
)

// ClientResolver resolves client identifiers against the external client
// directory service. A nil client with a nil error means the client does not
// exist. The Authorization header is propagated opaquely when present.
type ClientResolver interface {
	ResolveClient(ctx context.Context, clientID string, authHeader string) (*domain.Client, error)
}
