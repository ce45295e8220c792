package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/fincore/credit-service/internal/apperrors"
	"github.com/fincore/credit-service/internal/core/domain"
	"github.com/fincore/credit-service/internal/core/services"
	"github.com/fincore/credit-service/internal/dto"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

// --- Mocks ---

type MockCreditRepository struct {
	mock.Mock
}

func (m *MockCreditRepository) FindAllCredits(ctx context.Context) ([]domain.Credit, error) {
	args := m.Called(ctx)
	var credits []domain.Credit
	if args.Get(0) != nil {
		credits = args.Get(0).([]domain.Credit)
	}
	return credits, args.Error(1)
}

func (m *MockCreditRepository) FindCreditByID(ctx context.Context, creditID string) (*domain.Credit, error) {
	args := m.Called(ctx, creditID)
	var credit *domain.Credit
	if args.Get(0) != nil {
		credit = args.Get(0).(*domain.Credit)
	}
	return credit, args.Error(1)
}

func (m *MockCreditRepository) FindCreditsByClientID(ctx context.Context, clientID string) ([]domain.Credit, error) {
	args := m.Called(ctx, clientID)
	var credits []domain.Credit
	if args.Get(0) != nil {
		credits = args.Get(0).([]domain.Credit)
	}
	return credits, args.Error(1)
}

func (m *MockCreditRepository) SaveCredit(ctx context.Context, credit domain.Credit) (*domain.Credit, error) {
	args := m.Called(ctx, credit)
	var saved *domain.Credit
	if args.Get(0) != nil {
		saved = args.Get(0).(*domain.Credit)
	}
	return saved, args.Error(1)
}

func (m *MockCreditRepository) DeleteCredit(ctx context.Context, credit domain.Credit) error {
	args := m.Called(ctx, credit)
	return args.Error(0)
}

type MockClientResolver struct {
	mock.Mock
}

func (m *MockClientResolver) ResolveClient(ctx context.Context, clientID string, authHeader string) (*domain.Client, error) {
	args := m.Called(ctx, clientID, authHeader)
	var client *domain.Client
	if args.Get(0) != nil {
		client = args.Get(0).(*domain.Client)
	}
	return client, args.Error(1)
}

// --- Test Suite ---

type CreditServiceTestSuite struct {
	suite.Suite
	mockRepo     *MockCreditRepository
	mockResolver *MockClientResolver
	service      *services.CreditService
	ctx          context.Context
}

func (s *CreditServiceTestSuite) SetupTest() {
	s.mockRepo = new(MockCreditRepository)
	s.mockResolver = new(MockClientResolver)
	policy := services.NewAdmissionPolicy(s.mockRepo)
	s.service = services.NewCreditService(s.mockRepo, s.mockResolver, policy)
	s.ctx = context.Background()
}

func personalCredit(id, clientID, balance string) *domain.Credit {
	return &domain.Credit{
		CreditID:           id,
		Type:               domain.CreditPersonal,
		Amount:             decimal.NewFromInt(1000),
		InterestRate:       decimal.NewFromFloat(2.5),
		StartDate:          time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:            time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		OutstandingBalance: decimal.RequireFromString(balance),
		ClientID:           clientID,
	}
}

func createRequest(clientID string) dto.CreateCreditRequest {
	return dto.CreateCreditRequest{
		Type:               domain.CreditPersonal,
		Amount:             decimal.NewFromInt(1000),
		InterestRate:       decimal.NewFromFloat(2.5),
		StartDate:          time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:            time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC),
		OutstandingBalance: decimal.NewFromInt(1000),
		ClientID:           clientID,
	}
}

// --- ListCredits ---

func (s *CreditServiceTestSuite) TestListCredits_Success() {
	expected := []domain.Credit{*personalCredit("1", "c1", "100")}
	s.mockRepo.On("FindAllCredits", s.ctx).Return(expected, nil).Once()

	credits, err := s.service.ListCredits(s.ctx)

	s.NoError(err)
	s.Equal(expected, credits)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *CreditServiceTestSuite) TestListCredits_EmptyStoreReturnsEmptySlice() {
	s.mockRepo.On("FindAllCredits", s.ctx).Return(nil, nil).Once()

	credits, err := s.service.ListCredits(s.ctx)

	s.NoError(err)
	s.NotNil(credits)
	s.Empty(credits)
	s.mockRepo.AssertExpectations(s.T())
}

// --- GetCreditByID ---

func (s *CreditServiceTestSuite) TestGetCreditByID_Success() {
	expected := personalCredit("42", "c1", "100")
	s.mockRepo.On("FindCreditByID", s.ctx, "42").Return(expected, nil).Once()

	credit, err := s.service.GetCreditByID(s.ctx, "42")

	s.NoError(err)
	s.Equal(expected, credit)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *CreditServiceTestSuite) TestGetCreditByID_NotFound() {
	s.mockRepo.On("FindCreditByID", s.ctx, "99").Return(nil, apperrors.ErrNotFound).Once()

	credit, err := s.service.GetCreditByID(s.ctx, "99")

	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Nil(credit)
	s.mockRepo.AssertExpectations(s.T())
}

// --- GetCreditsByClientID ---

func (s *CreditServiceTestSuite) TestGetCreditsByClientID_Success() {
	expected := []domain.Credit{*personalCredit("1", "c1", "100"), *personalCredit("2", "c1", "200")}
	s.mockRepo.On("FindCreditsByClientID", s.ctx, "c1").Return(expected, nil).Once()

	credits, err := s.service.GetCreditsByClientID(s.ctx, "c1")

	s.NoError(err)
	s.Len(credits, 2)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *CreditServiceTestSuite) TestGetCreditsByClientID_NoCreditsIsNotFound() {
	s.mockRepo.On("FindCreditsByClientID", s.ctx, "c9").Return([]domain.Credit{}, nil).Once()

	credits, err := s.service.GetCreditsByClientID(s.ctx, "c9")

	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Nil(credits)
	s.mockRepo.AssertExpectations(s.T())
}

// --- CreateCredit ---

func (s *CreditServiceTestSuite) TestCreateCredit_PersonalClientFirstCredit() {
	req := createRequest("c1")
	client := &domain.Client{ID: "c1", Type: "PERSONAL"}
	saved := personalCredit("generated-id", "c1", "1000")

	s.mockResolver.On("ResolveClient", mock.Anything, "c1", "Bearer token").Return(client, nil).Once()
	s.mockRepo.On("FindCreditsByClientID", mock.Anything, "c1").Return([]domain.Credit{}, nil).Once()
	s.mockRepo.On("SaveCredit", mock.Anything, mock.AnythingOfType("domain.Credit")).Return(saved, nil).Once()

	credit, err := s.service.CreateCredit(s.ctx, req, "Bearer token")

	s.NoError(err)
	s.Equal("generated-id", credit.CreditID)
	s.mockResolver.AssertExpectations(s.T())
	s.mockRepo.AssertExpectations(s.T())
}

func (s *CreditServiceTestSuite) TestCreateCredit_PersonalClientAlreadyHoldsCredit() {
	req := createRequest("c1")
	client := &domain.Client{ID: "c1", Type: "PERSONAL"}
	existing := []domain.Credit{*personalCredit("1", "c1", "500")}

	s.mockResolver.On("ResolveClient", mock.Anything, "c1", "").Return(client, nil).Once()
	s.mockRepo.On("FindCreditsByClientID", mock.Anything, "c1").Return(existing, nil).Once()

	credit, err := s.service.CreateCredit(s.ctx, req, "")

	s.ErrorIs(err, apperrors.ErrAdmissionDenied)
	s.Nil(credit)
	s.mockRepo.AssertNotCalled(s.T(), "SaveCredit", mock.Anything, mock.Anything)
	s.mockResolver.AssertExpectations(s.T())
	s.mockRepo.AssertExpectations(s.T())
}

func (s *CreditServiceTestSuite) TestCreateCredit_BusinessClientUnlimited() {
	req := createRequest("b1")
	req.Type = domain.CreditBusiness
	client := &domain.Client{ID: "b1", Type: "BUSINESS"}
	saved := personalCredit("3", "b1", "1000")

	s.mockResolver.On("ResolveClient", mock.Anything, "b1", "").Return(client, nil).Once()
	s.mockRepo.On("SaveCredit", mock.Anything, mock.AnythingOfType("domain.Credit")).Return(saved, nil).Once()

	credit, err := s.service.CreateCredit(s.ctx, req, "")

	s.NoError(err)
	s.NotNil(credit)
	s.mockRepo.AssertNotCalled(s.T(), "FindCreditsByClientID", mock.Anything, mock.Anything)
	s.mockResolver.AssertExpectations(s.T())
	s.mockRepo.AssertExpectations(s.T())
}

func (s *CreditServiceTestSuite) TestCreateCredit_ClientNotInDirectory() {
	req := createRequest("ghost")

	s.mockResolver.On("ResolveClient", mock.Anything, "ghost", "").Return(nil, nil).Once()

	credit, err := s.service.CreateCredit(s.ctx, req, "")

	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Nil(credit)
	s.mockRepo.AssertNotCalled(s.T(), "SaveCredit", mock.Anything, mock.Anything)
	s.mockResolver.AssertExpectations(s.T())
}

func (s *CreditServiceTestSuite) TestCreateCredit_UnknownClientType() {
	req := createRequest("c1")
	client := &domain.Client{ID: "c1", Type: "GOVERNMENT"}

	s.mockResolver.On("ResolveClient", mock.Anything, "c1", "").Return(client, nil).Once()

	credit, err := s.service.CreateCredit(s.ctx, req, "")

	s.ErrorIs(err, apperrors.ErrUnknownClientType)
	s.Nil(credit)
	s.mockRepo.AssertNotCalled(s.T(), "SaveCredit", mock.Anything, mock.Anything)
}

func (s *CreditServiceTestSuite) TestCreateCredit_InvalidRequestSkipsResolution() {
	req := createRequest("c1")
	req.Amount = decimal.NewFromInt(-1)

	credit, err := s.service.CreateCredit(s.ctx, req, "")

	s.ErrorIs(err, apperrors.ErrValidation)
	s.Nil(credit)
	s.mockResolver.AssertNotCalled(s.T(), "ResolveClient", mock.Anything, mock.Anything, mock.Anything)
}

// --- UpdateCredit ---

func (s *CreditServiceTestSuite) TestUpdateCredit_PreservesStoreAssignedID() {
	req := createRequest("c1")
	existing := personalCredit("42", "c1", "500")

	s.mockRepo.On("FindCreditByID", s.ctx, "42").Return(existing, nil).Once()
	s.mockRepo.On("SaveCredit", s.ctx, mock.MatchedBy(func(c domain.Credit) bool {
		return c.CreditID == "42"
	})).Return(personalCredit("42", "c1", "1000"), nil).Once()

	updated, err := s.service.UpdateCredit(s.ctx, "42", req)

	s.NoError(err)
	s.Equal("42", updated.CreditID)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *CreditServiceTestSuite) TestUpdateCredit_NotFound() {
	req := createRequest("c1")
	s.mockRepo.On("FindCreditByID", s.ctx, "99").Return(nil, apperrors.ErrNotFound).Once()

	updated, err := s.service.UpdateCredit(s.ctx, "99", req)

	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Nil(updated)
	s.mockRepo.AssertNotCalled(s.T(), "SaveCredit", mock.Anything, mock.Anything)
}

// --- DeleteCredit ---

func (s *CreditServiceTestSuite) TestDeleteCredit_Success() {
	existing := personalCredit("42", "c1", "100")
	s.mockRepo.On("FindCreditByID", s.ctx, "42").Return(existing, nil).Once()
	s.mockRepo.On("DeleteCredit", s.ctx, *existing).Return(nil).Once()

	err := s.service.DeleteCredit(s.ctx, "42")

	s.NoError(err)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *CreditServiceTestSuite) TestDeleteCredit_NotFound() {
	s.mockRepo.On("FindCreditByID", s.ctx, "99").Return(nil, apperrors.ErrNotFound).Once()

	err := s.service.DeleteCredit(s.ctx, "99")

	s.ErrorIs(err, apperrors.ErrNotFound)
	s.mockRepo.AssertNotCalled(s.T(), "DeleteCredit", mock.Anything, mock.Anything)
}

// --- PayByCreditID ---

func (s *CreditServiceTestSuite) TestPayByCreditID_DecrementsBalanceAndAppendsPayment() {
	credit := personalCredit("42", "c1", "100")
	req := dto.PaymentRequest{Amount: decimal.NewFromInt(30)}

	s.mockRepo.On("FindCreditByID", s.ctx, "42").Return(credit, nil).Once()
	s.mockRepo.On("SaveCredit", s.ctx, mock.MatchedBy(func(c domain.Credit) bool {
		return c.OutstandingBalance.Equal(decimal.NewFromInt(70)) &&
			len(c.Payments) == 1 &&
			c.Payments[0].Amount.Equal(decimal.NewFromInt(30))
	})).Return(credit, nil).Once()

	payment, err := s.service.PayByCreditID(s.ctx, "42", req)

	s.NoError(err)
	s.True(payment.Amount.Equal(decimal.NewFromInt(30)))
	s.Equal("new Pay", payment.Description)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *CreditServiceTestSuite) TestPayByCreditID_PaymentExceedsBalance() {
	credit := personalCredit("42", "c1", "50")
	req := dto.PaymentRequest{Amount: decimal.NewFromInt(80)}

	s.mockRepo.On("FindCreditByID", s.ctx, "42").Return(credit, nil).Once()

	payment, err := s.service.PayByCreditID(s.ctx, "42", req)

	s.ErrorIs(err, apperrors.ErrPaymentExceedsBalance)
	s.Nil(payment)
	s.mockRepo.AssertNotCalled(s.T(), "SaveCredit", mock.Anything, mock.Anything)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *CreditServiceTestSuite) TestPayByCreditID_NegativeAmount() {
	credit := personalCredit("42", "c1", "100")
	req := dto.PaymentRequest{Amount: decimal.NewFromInt(-5)}

	s.mockRepo.On("FindCreditByID", s.ctx, "42").Return(credit, nil).Once()

	payment, err := s.service.PayByCreditID(s.ctx, "42", req)

	s.ErrorIs(err, apperrors.ErrValidation)
	s.Nil(payment)
	s.mockRepo.AssertNotCalled(s.T(), "SaveCredit", mock.Anything, mock.Anything)
}

func (s *CreditServiceTestSuite) TestPayByCreditID_CreditNotFound() {
	req := dto.PaymentRequest{Amount: decimal.NewFromInt(10)}
	s.mockRepo.On("FindCreditByID", s.ctx, "99").Return(nil, apperrors.ErrNotFound).Once()

	payment, err := s.service.PayByCreditID(s.ctx, "99", req)

	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Nil(payment)
}

// --- ListPaymentsByCreditID ---

func (s *CreditServiceTestSuite) TestListPaymentsByCreditID_Success() {
	credit := personalCredit("42", "c1", "70")
	credit.Payments = []domain.Payment{
		{Amount: decimal.NewFromInt(30), Date: time.Now(), Description: "new Pay"},
	}
	s.mockRepo.On("FindCreditByID", s.ctx, "42").Return(credit, nil).Once()

	payments, err := s.service.ListPaymentsByCreditID(s.ctx, "42")

	s.NoError(err)
	s.Len(payments, 1)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *CreditServiceTestSuite) TestListPaymentsByCreditID_NoPaymentsYieldsEmptySlice() {
	credit := personalCredit("42", "c1", "100")
	s.mockRepo.On("FindCreditByID", s.ctx, "42").Return(credit, nil).Once()

	payments, err := s.service.ListPaymentsByCreditID(s.ctx, "42")

	s.NoError(err)
	s.NotNil(payments)
	s.Empty(payments)
}

func (s *CreditServiceTestSuite) TestListPaymentsByCreditID_CreditNotFound() {
	s.mockRepo.On("FindCreditByID", s.ctx, "99").Return(nil, apperrors.ErrNotFound).Once()

	payments, err := s.service.ListPaymentsByCreditID(s.ctx, "99")

	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Nil(payments)
}

// --- GetBalancesByClientID ---

func (s *CreditServiceTestSuite) TestGetBalancesByClientID_OneEntryPerCredit() {
	creditList := []domain.Credit{
		*personalCredit("1", "c1", "100"),
		*personalCredit("2", "c1", "250"),
	}
	s.mockRepo.On("FindCreditsByClientID", s.ctx, "c1").Return(creditList, nil).Once()

	report, err := s.service.GetBalancesByClientID(s.ctx, "c1")

	s.NoError(err)
	s.Equal("c1", report.ClientID)
	s.Require().Len(report.Balances, 2)
	s.Equal("c1", report.Balances[0].ClientID)
	s.True(report.Balances[0].CreditBalance.Equal(decimal.NewFromInt(100)))
	s.True(report.Balances[1].CreditBalance.Equal(decimal.NewFromInt(250)))
	s.WithinDuration(time.Now(), report.Balances[0].Date, 5*time.Second)
	s.mockRepo.AssertExpectations(s.T())
}

func (s *CreditServiceTestSuite) TestGetBalancesByClientID_NoCreditsIsNotFound() {
	s.mockRepo.On("FindCreditsByClientID", s.ctx, "c9").Return(nil, nil).Once()

	report, err := s.service.GetBalancesByClientID(s.ctx, "c9")

	s.ErrorIs(err, apperrors.ErrNotFound)
	s.Nil(report)
}

func TestCreditServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CreditServiceTestSuite))
}

// Standalone check kept outside the suite to pin the rejection semantics of a
// payment against a zero balance.
func TestPayAgainstZeroBalance(t *testing.T) {
	mockRepo := new(MockCreditRepository)
	mockResolver := new(MockClientResolver)
	policy := services.NewAdmissionPolicy(mockRepo)
	service := services.NewCreditService(mockRepo, mockResolver, policy)
	ctx := context.Background()

	credit := personalCredit("7", "c1", "0")
	mockRepo.On("FindCreditByID", ctx, "7").Return(credit, nil).Once()

	payment, err := service.PayByCreditID(ctx, "7", dto.PaymentRequest{Amount: decimal.NewFromFloat(0.01)})

	require.Error(t, err)
	assert.ErrorIs(t, err, apperrors.ErrPaymentExceedsBalance)
	assert.Nil(t, payment)
	mockRepo.AssertNotCalled(t, "SaveCredit", mock.Anything, mock.Anything)
}
