package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/fincore/credit-service/internal/apperrors"
	"github.com/fincore/credit-service/internal/core/domain"
	portssvc "github.com/fincore/credit-service/internal/core/ports/services"
	"github.com/fincore/credit-service/internal/dto"
	"github.com/fincore/credit-service/internal/middleware"
	"github.com/fincore/credit-service/internal/platform/resilience"
	"github.com/sony/gobreaker/v2"
)

// ResilientCreditService decorates a credit service with a per-operation
// resilience boundary: every operation runs under its own circuit breaker and
// a shared timeout, and falls back to a dedicated per-operation response when
// the boundary trips.
type ResilientCreditService struct {
	inner   portssvc.CreditSvcFacade
	timeout time.Duration

	listCredits      *gobreaker.CircuitBreaker[[]domain.Credit]
	getCredit        *gobreaker.CircuitBreaker[*domain.Credit]
	creditsByClient  *gobreaker.CircuitBreaker[[]domain.Credit]
	createCredit     *gobreaker.CircuitBreaker[*domain.Credit]
	updateCredit     *gobreaker.CircuitBreaker[*domain.Credit]
	deleteCredit     *gobreaker.CircuitBreaker[struct{}]
	payCredit        *gobreaker.CircuitBreaker[*domain.Payment]
	listPayments     *gobreaker.CircuitBreaker[[]domain.Payment]
	balancesByClient *gobreaker.CircuitBreaker[*domain.BalanceReport]
}

// NewResilientCreditService wraps inner with one named breaker per logical
// operation. The timeout bounds each operation end to end.
func NewResilientCreditService(inner portssvc.CreditSvcFacade, timeout time.Duration, settings resilience.Settings, logger *slog.Logger) *ResilientCreditService {
	return &ResilientCreditService{
		inner:            inner,
		timeout:          timeout,
		listCredits:      resilience.NewBreaker[[]domain.Credit]("credit.list", settings, logger),
		getCredit:        resilience.NewBreaker[*domain.Credit]("credit.get", settings, logger),
		creditsByClient:  resilience.NewBreaker[[]domain.Credit]("credit.by-client", settings, logger),
		createCredit:     resilience.NewBreaker[*domain.Credit]("credit.create", settings, logger),
		updateCredit:     resilience.NewBreaker[*domain.Credit]("credit.update", settings, logger),
		deleteCredit:     resilience.NewBreaker[struct{}]("credit.delete", settings, logger),
		payCredit:        resilience.NewBreaker[*domain.Payment]("credit.pay", settings, logger),
		listPayments:     resilience.NewBreaker[[]domain.Payment]("credit.payments", settings, logger),
		balancesByClient: resilience.NewBreaker[*domain.BalanceReport]("credit.balances", settings, logger),
	}
}

var _ portssvc.CreditSvcFacade = (*ResilientCreditService)(nil)

func (s *ResilientCreditService) ListCredits(ctx context.Context) ([]domain.Credit, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	creditList, err := s.listCredits.Execute(func() ([]domain.Credit, error) {
		return s.inner.ListCredits(ctx)
	})
	if resilience.Tripped(err) {
		return s.fallbackListCredits(ctx, err)
	}
	return creditList, err
}

func (s *ResilientCreditService) GetCreditByID(ctx context.Context, creditID string) (*domain.Credit, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	credit, err := s.getCredit.Execute(func() (*domain.Credit, error) {
		return s.inner.GetCreditByID(ctx, creditID)
	})
	if resilience.Tripped(err) {
		return s.fallbackGetCreditByID(ctx, err)
	}
	return credit, err
}

func (s *ResilientCreditService) GetCreditsByClientID(ctx context.Context, clientID string) ([]domain.Credit, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	creditList, err := s.creditsByClient.Execute(func() ([]domain.Credit, error) {
		return s.inner.GetCreditsByClientID(ctx, clientID)
	})
	if resilience.Tripped(err) {
		return s.fallbackGetCreditsByClientID(ctx, err)
	}
	return creditList, err
}

func (s *ResilientCreditService) CreateCredit(ctx context.Context, req dto.CreateCreditRequest, authHeader string) (*domain.Credit, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	credit, err := s.createCredit.Execute(func() (*domain.Credit, error) {
		return s.inner.CreateCredit(ctx, req, authHeader)
	})
	if resilience.Tripped(err) {
		return s.fallbackCreateCredit(ctx, err)
	}
	return credit, err
}

func (s *ResilientCreditService) UpdateCredit(ctx context.Context, creditID string, req dto.CreateCreditRequest) (*domain.Credit, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	credit, err := s.updateCredit.Execute(func() (*domain.Credit, error) {
		return s.inner.UpdateCredit(ctx, creditID, req)
	})
	if resilience.Tripped(err) {
		return s.fallbackUpdateCredit(ctx, err)
	}
	return credit, err
}

func (s *ResilientCreditService) DeleteCredit(ctx context.Context, creditID string) error {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	_, err := s.deleteCredit.Execute(func() (struct{}, error) {
		return struct{}{}, s.inner.DeleteCredit(ctx, creditID)
	})
	if resilience.Tripped(err) {
		return s.fallbackDeleteCredit(ctx, err)
	}
	return err
}

func (s *ResilientCreditService) PayByCreditID(ctx context.Context, creditID string, req dto.PaymentRequest) (*domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	payment, err := s.payCredit.Execute(func() (*domain.Payment, error) {
		return s.inner.PayByCreditID(ctx, creditID, req)
	})
	if resilience.Tripped(err) {
		return s.fallbackPayByCreditID(ctx, err)
	}
	return payment, err
}

func (s *ResilientCreditService) ListPaymentsByCreditID(ctx context.Context, creditID string) ([]domain.Payment, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	payments, err := s.listPayments.Execute(func() ([]domain.Payment, error) {
		return s.inner.ListPaymentsByCreditID(ctx, creditID)
	})
	if resilience.Tripped(err) {
		return s.fallbackListPaymentsByCreditID(ctx, err)
	}
	return payments, err
}

func (s *ResilientCreditService) GetBalancesByClientID(ctx context.Context, clientID string) (*domain.BalanceReport, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	report, err := s.balancesByClient.Execute(func() (*domain.BalanceReport, error) {
		return s.inner.GetBalancesByClientID(ctx, clientID)
	})
	if resilience.Tripped(err) {
		return s.fallbackGetBalancesByClientID(ctx, err)
	}
	return report, err
}

// Each operation binds to its own fallback so trip events stay attributable
// to the exact operation that failed.

func (s *ResilientCreditService) fallbackListCredits(ctx context.Context, cause error) ([]domain.Credit, error) {
	logFallback(ctx, "credit.list", cause)
	return nil, fmt.Errorf("%w: listing credits", apperrors.ErrServiceUnavailable)
}

func (s *ResilientCreditService) fallbackGetCreditByID(ctx context.Context, cause error) (*domain.Credit, error) {
	logFallback(ctx, "credit.get", cause)
	return nil, fmt.Errorf("%w: fetching credit", apperrors.ErrServiceUnavailable)
}

func (s *ResilientCreditService) fallbackGetCreditsByClientID(ctx context.Context, cause error) ([]domain.Credit, error) {
	logFallback(ctx, "credit.by-client", cause)
	return nil, fmt.Errorf("%w: fetching credits by client", apperrors.ErrServiceUnavailable)
}

func (s *ResilientCreditService) fallbackCreateCredit(ctx context.Context, cause error) (*domain.Credit, error) {
	logFallback(ctx, "credit.create", cause)
	return nil, fmt.Errorf("%w: creating credit", apperrors.ErrServiceUnavailable)
}

func (s *ResilientCreditService) fallbackUpdateCredit(ctx context.Context, cause error) (*domain.Credit, error) {
	logFallback(ctx, "credit.update", cause)
	return nil, fmt.Errorf("%w: updating credit", apperrors.ErrServiceUnavailable)
}

func (s *ResilientCreditService) fallbackDeleteCredit(ctx context.Context, cause error) error {
	logFallback(ctx, "credit.delete", cause)
	return fmt.Errorf("%w: deleting credit", apperrors.ErrServiceUnavailable)
}

func (s *ResilientCreditService) fallbackPayByCreditID(ctx context.Context, cause error) (*domain.Payment, error) {
	logFallback(ctx, "credit.pay", cause)
	return nil, fmt.Errorf("%w: applying payment", apperrors.ErrServiceUnavailable)
}

func (s *ResilientCreditService) fallbackListPaymentsByCreditID(ctx context.Context, cause error) ([]domain.Payment, error) {
	logFallback(ctx, "credit.payments", cause)
	return nil, fmt.Errorf("%w: listing payments", apperrors.ErrServiceUnavailable)
}

func (s *ResilientCreditService) fallbackGetBalancesByClientID(ctx context.Context, cause error) (*domain.BalanceReport, error) {
	logFallback(ctx, "credit.balances", cause)
	return nil, fmt.Errorf("%w: building balance report", apperrors.ErrServiceUnavailable)
}

func logFallback(ctx context.Context, operation string, cause error) {
	middleware.GetLoggerFromCtx(ctx).Error("Resilience boundary tripped, serving fallback",
		slog.String("operation", operation),
		slog.String("cause", cause.Error()),
	)
}
