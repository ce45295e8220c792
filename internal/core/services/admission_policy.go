package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/fincore/credit-service/internal/apperrors"
	"github.com/fincore/credit-service/internal/core/domain"
	portsrepo "github.com/fincore/credit-service/internal/core/ports/repositories"
	"github.com/fincore/credit-service/internal/middleware"
)

// admitFunc persists a proposed credit when the client-type rule allows it.
type admitFunc func(ctx context.Context, credit domain.Credit) (*domain.Credit, error)

// AdmissionPolicy decides, per client type, whether a new credit may be
// created. Dispatch is a static map built once at construction; registering a
// new client category is a one-line addition.
type AdmissionPolicy struct {
	creditRepo portsrepo.CreditRepository
	strategies map[domain.ClientType]admitFunc
}

// NewAdmissionPolicy creates an AdmissionPolicy backed by the credit store.
func NewAdmissionPolicy(creditRepo portsrepo.CreditRepository) *AdmissionPolicy {
	p := &AdmissionPolicy{creditRepo: creditRepo}
	p.strategies = map[domain.ClientType]admitFunc{
		domain.ClientPersonal: p.admitPersonalClient,
		domain.ClientBusiness: p.admitBusinessClient,
	}
	return p
}

// AdmitCredit dispatches on the client's type. The type string is matched
// case-sensitively against the registered categories.
func (p *AdmissionPolicy) AdmitCredit(ctx context.Context, client domain.Client, credit domain.Credit) (*domain.Credit, error) {
	admit, ok := p.strategies[domain.ClientType(client.Type)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownClientType, client.Type)
	}
	return admit(ctx, credit)
}

// admitPersonalClient allows at most one credit per personal client.
func (p *AdmissionPolicy) admitPersonalClient(ctx context.Context, credit domain.Credit) (*domain.Credit, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	existing, err := p.creditRepo.FindCreditsByClientID(ctx, credit.ClientID)
	if err != nil {
		logger.Error("Failed to check existing credits for personal client", slog.String("error", err.Error()), slog.String("client_id", credit.ClientID))
		return nil, fmt.Errorf("checking existing credits for client %s: %w", credit.ClientID, err)
	}
	if len(existing) >= 1 {
		logger.Warn("Personal client already holds a credit", slog.String("client_id", credit.ClientID))
		return nil, fmt.Errorf("%w: personal client %s can only have one credit", apperrors.ErrAdmissionDenied, credit.ClientID)
	}

	return p.creditRepo.SaveCredit(ctx, credit)
}

// admitBusinessClient persists unconditionally; business clients may hold any
// number of credits.
func (p *AdmissionPolicy) admitBusinessClient(ctx context.Context, credit domain.Credit) (*domain.Credit, error) {
	return p.creditRepo.SaveCredit(ctx, credit)
}
