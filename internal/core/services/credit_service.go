package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fincore/credit-service/internal/apperrors"
	"github.com/fincore/credit-service/internal/core/domain"
	portsrepo "github.com/fincore/credit-service/internal/core/ports/repositories"
	portssvc "github.com/fincore/credit-service/internal/core/ports/services"
	"github.com/fincore/credit-service/internal/dto"
	"github.com/fincore/credit-service/internal/middleware"
	"github.com/fincore/credit-service/internal/utils/credits"
)

// CreditService orchestrates the credit lifecycle: it composes the client
// resolver, the admission policy, the payment arithmetic, and the credit
// store. All cross-request state lives in the store.
type CreditService struct {
	creditRepo     portsrepo.CreditRepository
	clientResolver portssvc.ClientResolver
	policy         *AdmissionPolicy
}

// NewCreditService creates a CreditService with explicit collaborators.
func NewCreditService(creditRepo portsrepo.CreditRepository, clientResolver portssvc.ClientResolver, policy *AdmissionPolicy) *CreditService {
	return &CreditService{
		creditRepo:     creditRepo,
		clientResolver: clientResolver,
		policy:         policy,
	}
}

var _ portssvc.CreditSvcFacade = (*CreditService)(nil)

// ListCredits retrieves every credit from the store.
func (s *CreditService) ListCredits(ctx context.Context) ([]domain.Credit, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	logger.Info("Fetching all credits")

	creditList, err := s.creditRepo.FindAllCredits(ctx)
	if err != nil {
		logger.Error("Failed to fetch all credits", slog.String("error", err.Error()))
		return nil, fmt.Errorf("fetching all credits: %w", err)
	}
	if creditList == nil {
		return []domain.Credit{}, nil
	}
	return creditList, nil
}

// GetCreditByID retrieves a single credit by id.
func (s *CreditService) GetCreditByID(ctx context.Context, creditID string) (*domain.Credit, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	logger.Debug("Fetching credit", slog.String("credit_id", creditID))

	credit, err := s.creditRepo.FindCreditByID(ctx, creditID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to fetch credit", slog.String("error", err.Error()), slog.String("credit_id", creditID))
			return nil, fmt.Errorf("fetching credit %s: %w", creditID, err)
		}
		return nil, err
	}
	return credit, nil
}

// GetCreditsByClientID retrieves all credits owned by a client. An empty
// result set surfaces as not-found.
func (s *CreditService) GetCreditsByClientID(ctx context.Context, clientID string) ([]domain.Credit, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	logger.Debug("Fetching credits for client", slog.String("client_id", clientID))

	creditList, err := s.creditRepo.FindCreditsByClientID(ctx, clientID)
	if err != nil {
		logger.Error("Failed to fetch credits for client", slog.String("error", err.Error()), slog.String("client_id", clientID))
		return nil, fmt.Errorf("fetching credits for client %s: %w", clientID, err)
	}
	if len(creditList) == 0 {
		return nil, fmt.Errorf("%w: no credits for client %s", apperrors.ErrNotFound, clientID)
	}
	return creditList, nil
}

// CreateCredit validates the request, resolves the owning client, and hands
// the proposed credit to the admission policy for the persist decision.
func (s *CreditService) CreateCredit(ctx context.Context, req dto.CreateCreditRequest, authHeader string) (*domain.Credit, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := req.Validate(); err != nil {
		logger.Warn("Invalid credit data", slog.String("error", err.Error()))
		return nil, err
	}
	logger.Info("Creating new credit", slog.String("type", string(req.Type)), slog.String("client_id", req.ClientID))

	credit := req.ToDomainCredit()

	client, err := s.clientResolver.ResolveClient(ctx, credit.ClientID, authHeader)
	if err != nil {
		logger.Error("Failed to resolve client", slog.String("error", err.Error()), slog.String("client_id", credit.ClientID))
		return nil, fmt.Errorf("creating credit: %w", err)
	}
	if client == nil {
		logger.Warn("Client not found in directory", slog.String("client_id", credit.ClientID))
		return nil, fmt.Errorf("%w: client %s", apperrors.ErrNotFound, credit.ClientID)
	}

	created, err := s.policy.AdmitCredit(ctx, *client, credit)
	if err != nil {
		if isBusinessRejection(err) {
			return nil, err
		}
		logger.Error("Failed to create credit", slog.String("error", err.Error()), slog.String("client_id", credit.ClientID))
		return nil, fmt.Errorf("creating credit: %w", err)
	}

	logger.Info("Credit created", slog.String("credit_id", created.CreditID), slog.String("client_id", created.ClientID))
	return created, nil
}

// UpdateCredit replaces the mutable fields of an existing credit. The
// store-assigned id always survives the replacement, even when the request
// omits it.
func (s *CreditService) UpdateCredit(ctx context.Context, creditID string, req dto.CreateCreditRequest) (*domain.Credit, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if err := req.Validate(); err != nil {
		logger.Warn("Invalid credit data for update", slog.String("error", err.Error()), slog.String("credit_id", creditID))
		return nil, err
	}
	logger.Debug("Updating credit", slog.String("credit_id", creditID))

	existing, err := s.creditRepo.FindCreditByID(ctx, creditID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to fetch credit for update", slog.String("error", err.Error()), slog.String("credit_id", creditID))
			return nil, fmt.Errorf("updating credit %s: %w", creditID, err)
		}
		return nil, err
	}

	replacement := req.ToDomainCredit()
	replacement.CreditID = existing.CreditID

	updated, err := s.creditRepo.SaveCredit(ctx, replacement)
	if err != nil {
		logger.Error("Failed to save updated credit", slog.String("error", err.Error()), slog.String("credit_id", creditID))
		return nil, fmt.Errorf("updating credit %s: %w", creditID, err)
	}

	logger.Info("Credit updated", slog.String("credit_id", updated.CreditID))
	return updated, nil
}

// DeleteCredit removes a credit after confirming it exists.
func (s *CreditService) DeleteCredit(ctx context.Context, creditID string) error {
	logger := middleware.GetLoggerFromCtx(ctx)
	logger.Debug("Deleting credit", slog.String("credit_id", creditID))

	existing, err := s.creditRepo.FindCreditByID(ctx, creditID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to fetch credit for deletion", slog.String("error", err.Error()), slog.String("credit_id", creditID))
			return fmt.Errorf("deleting credit %s: %w", creditID, err)
		}
		return err
	}

	if err := s.creditRepo.DeleteCredit(ctx, *existing); err != nil {
		logger.Error("Failed to delete credit", slog.String("error", err.Error()), slog.String("credit_id", creditID))
		return fmt.Errorf("deleting credit %s: %w", creditID, err)
	}

	logger.Info("Credit deleted", slog.String("credit_id", creditID))
	return nil
}

// PayByCreditID applies a payment to a credit. The balance decrement and the
// payment append are persisted together in a single store write; a rejected
// payment leaves the stored credit untouched.
func (s *CreditService) PayByCreditID(ctx context.Context, creditID string, req dto.PaymentRequest) (*domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	credit, err := s.creditRepo.FindCreditByID(ctx, creditID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to fetch credit for payment", slog.String("error", err.Error()), slog.String("credit_id", creditID))
			return nil, fmt.Errorf("paying credit %s: %w", creditID, err)
		}
		return nil, err
	}

	if err := req.Validate(); err != nil {
		logger.Warn("Invalid payment data", slog.String("error", err.Error()), slog.String("credit_id", creditID))
		return nil, err
	}

	newBalance, err := credits.ApplyPayment(credit.OutstandingBalance, req.Amount)
	if err != nil {
		logger.Warn("Payment rejected", slog.String("error", err.Error()), slog.String("credit_id", creditID))
		return nil, err
	}

	payment := credits.NewPayment(req.Amount, time.Now())
	credit.OutstandingBalance = newBalance
	if credit.Payments == nil {
		credit.Payments = []domain.Payment{}
	}
	credit.Payments = append(credit.Payments, payment)

	if _, err := s.creditRepo.SaveCredit(ctx, *credit); err != nil {
		logger.Error("Failed to persist payment", slog.String("error", err.Error()), slog.String("credit_id", creditID))
		return nil, fmt.Errorf("paying credit %s: %w", creditID, err)
	}

	logger.Info("Payment applied", slog.String("credit_id", creditID), slog.String("amount", payment.Amount.String()), slog.String("new_balance", newBalance.String()))
	return &payment, nil
}

// ListPaymentsByCreditID returns the payments recorded against a credit in
// insertion order. The store normalizes absent lists, so a credit without
// payments yields an empty slice.
func (s *CreditService) ListPaymentsByCreditID(ctx context.Context, creditID string) ([]domain.Payment, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	logger.Debug("Fetching payments for credit", slog.String("credit_id", creditID))

	credit, err := s.creditRepo.FindCreditByID(ctx, creditID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			logger.Error("Failed to fetch credit for payment listing", slog.String("error", err.Error()), slog.String("credit_id", creditID))
			return nil, fmt.Errorf("listing payments for credit %s: %w", creditID, err)
		}
		return nil, err
	}

	if credit.Payments == nil {
		return []domain.Payment{}, nil
	}
	return credit.Payments, nil
}

// GetBalancesByClientID builds a balance report with one entry per credit the
// client owns. Entries carry a freshly stamped report timestamp, not the
// credit's own dates.
func (s *CreditService) GetBalancesByClientID(ctx context.Context, clientID string) (*domain.BalanceReport, error) {
	logger := middleware.GetLoggerFromCtx(ctx)
	logger.Debug("Building balance report", slog.String("client_id", clientID))

	creditList, err := s.creditRepo.FindCreditsByClientID(ctx, clientID)
	if err != nil {
		logger.Error("Failed to fetch credits for balance report", slog.String("error", err.Error()), slog.String("client_id", clientID))
		return nil, fmt.Errorf("building balance report for client %s: %w", clientID, err)
	}
	if len(creditList) == 0 {
		return nil, fmt.Errorf("%w: no credits for client %s", apperrors.ErrNotFound, clientID)
	}

	now := time.Now()
	balances := make([]domain.Balance, len(creditList))
	for i, credit := range creditList {
		balances[i] = domain.Balance{
			ClientID:      credit.ClientID,
			CreditBalance: credit.OutstandingBalance,
			Date:          now,
		}
	}

	return &domain.BalanceReport{ClientID: clientID, Balances: balances}, nil
}

// isBusinessRejection reports whether an error is a deliberate business
// rejection rather than a downstream fault, so it propagates unwrapped.
func isBusinessRejection(err error) bool {
	return errors.Is(err, apperrors.ErrAdmissionDenied) ||
		errors.Is(err, apperrors.ErrUnknownClientType) ||
		errors.Is(err, apperrors.ErrValidation) ||
		errors.Is(err, apperrors.ErrNotFound)
}
