package services_test

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/apperrors"
	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack-backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackhq/fintrack-backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack-backend/internal/core/services"
	"github.com/fintrackhq/fintrack-backend/internal/dto"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock TransactionRepository ---
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error) {
	args := m.Called(ctx, userID, transactionID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListTransactions(ctx context.Context, userID string, filter portsrepo.TransactionFilter, limit, offset int) ([]domain.Transaction, int, error) {
	args := m.Called(ctx, userID, filter, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.Transaction), args.Int(1), args.Error(2)
}

func (m *MockTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	args := m.Called(ctx, txn)
	return args.Error(0)
}

func (m *MockTransactionRepository) DeleteTransaction(ctx context.Context, userID, transactionID string) error {
	args := m.Called(ctx, userID, transactionID)
	return args.Error(0)
}

// --- Mock PaymentMethodRepository ---
type MockPaymentMethodRepository struct {
	mock.Mock
}

func (m *MockPaymentMethodRepository) FindPaymentMethodByID(ctx context.Context, userID, paymentMethodID string) (*domain.PaymentMethod, error) {
	args := m.Called(ctx, userID, paymentMethodID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodRepository) ListPaymentMethods(ctx context.Context, userID string, includeArchived bool) ([]domain.PaymentMethod, error) {
	args := m.Called(ctx, userID, includeArchived)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.PaymentMethod), args.Error(1)
}

func (m *MockPaymentMethodRepository) ListActiveCurrencies(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

func (m *MockPaymentMethodRepository) SavePaymentMethod(ctx context.Context, method domain.PaymentMethod) error {
	args := m.Called(ctx, method)
	return args.Error(0)
}

func (m *MockPaymentMethodRepository) UpdatePaymentMethod(ctx context.Context, method domain.PaymentMethod) error {
	args := m.Called(ctx, method)
	return args.Error(0)
}

// --- Mock UserReader ---
type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

// --- Mock ExchangeRateReader ---
type MockExchangeRateReader struct {
	mock.Mock
}

func (m *MockExchangeRateReader) GetRate(ctx context.Context, fromCode, toCode string) (domain.RateQuote, error) {
	args := m.Called(ctx, fromCode, toCode)
	return args.Get(0).(domain.RateQuote), args.Error(1)
}

func (m *MockExchangeRateReader) GetAllRates(ctx context.Context, base string) (*domain.RateSnapshot, error) {
	args := m.Called(ctx, base)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateSnapshot), args.Error(1)
}

func (m *MockExchangeRateReader) ConvertAmount(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, domain.RateQuote, error) {
	args := m.Called(ctx, amount, fromCode, toCode)
	return args.Get(0).(decimal.Decimal), args.Get(1).(domain.RateQuote), args.Error(2)
}

func (m *MockExchangeRateReader) ListExchangeRates(ctx context.Context, fromCurrency, toCurrency *string, date *time.Time, page, pageSize int) ([]domain.ExchangeRate, int, error) {
	args := m.Called(ctx, fromCurrency, toCurrency, date, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Int(1), args.Error(2)
}

var _ portsrepo.TransactionRepositoryFacade = (*MockTransactionRepository)(nil)
var _ portsrepo.PaymentMethodRepositoryFacade = (*MockPaymentMethodRepository)(nil)
var _ portssvc.UserReaderSvc = (*MockUserReader)(nil)
var _ portssvc.ExchangeRateReaderSvc = (*MockExchangeRateReader)(nil)

// --- Test Suite ---
type TransactionServiceTestSuite struct {
	suite.Suite
	mockTxnRepo      *MockTransactionRepository
	mockCategoryRepo *MockCategoryRepository
	mockMethodRepo   *MockPaymentMethodRepository
	mockTagRepo      *MockTagRepository
	mockUserReader   *MockUserReader
	mockRateReader   *MockExchangeRateReader
	service          *services.TransactionService

	userID     string
	categoryID string
	methodID   string
}

func (suite *TransactionServiceTestSuite) SetupTest() {
	suite.mockTxnRepo = new(MockTransactionRepository)
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockMethodRepo = new(MockPaymentMethodRepository)
	suite.mockTagRepo = new(MockTagRepository)
	suite.mockUserReader = new(MockUserReader)
	suite.mockRateReader = new(MockExchangeRateReader)

	currencySvc := services.NewCurrencyService(new(MockCurrencyRepository))
	categorySvc := services.NewCategoryService(suite.mockCategoryRepo)
	methodSvc := services.NewPaymentMethodService(suite.mockMethodRepo, currencySvc)

	suite.service = services.NewTransactionService(
		suite.mockTxnRepo,
		categorySvc,
		methodSvc,
		suite.mockTagRepo,
		suite.mockUserReader,
		suite.mockRateReader,
	)

	suite.userID = uuid.NewString()
	suite.categoryID = uuid.NewString()
	suite.methodID = uuid.NewString()
}

func (suite *TransactionServiceTestSuite) expectCategory(catType domain.CategoryType) {
	suite.mockCategoryRepo.On("FindCategoryByID", mock.Anything, suite.userID, suite.categoryID).
		Return(&domain.Category{
			CategoryID: suite.categoryID,
			UserID:     suite.userID,
			Name:       "Test",
			Type:       catType,
		}, nil).Once()
}

func (suite *TransactionServiceTestSuite) expectMethod(currency string, archived bool) {
	suite.mockMethodRepo.On("FindPaymentMethodByID", mock.Anything, suite.userID, suite.methodID).
		Return(&domain.PaymentMethod{
			PaymentMethodID: suite.methodID,
			UserID:          suite.userID,
			Name:            "Card",
			CurrencyCode:    currency,
			IsArchived:      archived,
		}, nil).Once()
}

func (suite *TransactionServiceTestSuite) expectUser(baseCurrency string) {
	suite.mockUserReader.On("GetUserByID", mock.Anything, suite.userID).
		Return(&domain.User{UserID: suite.userID, BaseCurrencyCode: baseCurrency}, nil).Once()
}

func (suite *TransactionServiceTestSuite) createRequest(amount decimal.Decimal) dto.CreateTransactionRequest {
	return dto.CreateTransactionRequest{
		CategoryID:      suite.categoryID,
		PaymentMethodID: suite.methodID,
		Amount:          amount,
		TransactionDate: time.Now(),
	}
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ExpenseSign() {
	ctx := context.Background()
	suite.expectCategory(domain.CategoryExpense)
	suite.expectMethod("USD", false)
	suite.expectUser("USD")
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.userID, suite.createRequest(decimal.NewFromInt(50)))

	suite.Require().NoError(err)
	suite.Equal(domain.CategoryExpense, txn.Type)
	// Stored amount stays positive; the sign lives on the type.
	suite.True(txn.Amount.Equal(decimal.NewFromInt(50)))
	suite.True(txn.SignedAmount().Equal(decimal.NewFromInt(-50)))
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_IncomeSign() {
	ctx := context.Background()
	suite.expectCategory(domain.CategoryIncome)
	suite.expectMethod("USD", false)
	suite.expectUser("USD")
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.userID, suite.createRequest(decimal.NewFromInt(50)))

	suite.Require().NoError(err)
	suite.Equal(domain.CategoryIncome, txn.Type)
	suite.True(txn.SignedAmount().Equal(decimal.NewFromInt(50)))
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_SameCurrencyNoConversion() {
	ctx := context.Background()
	suite.expectCategory(domain.CategoryExpense)
	suite.expectMethod("USD", false)
	suite.expectUser("USD")
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.userID, suite.createRequest(decimal.NewFromInt(100)))

	suite.Require().NoError(err)
	suite.Nil(txn.NativeAmount)
	suite.Nil(txn.ExchangeRate)
	suite.Nil(txn.BaseCurrency)
	suite.mockRateReader.AssertNotCalled(suite.T(), "ConvertAmount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_CrossCurrencyConversion() {
	ctx := context.Background()
	suite.expectCategory(domain.CategoryExpense)
	suite.expectMethod("UAH", false)
	suite.expectUser("EUR")

	rate := decimal.RequireFromString("0.02243902")
	converted := decimal.NewFromInt(1000).Mul(rate)
	quote := domain.RateQuote{
		FromCurrencyCode: "UAH",
		ToCurrencyCode:   "EUR",
		Rate:             rate,
		Source:           domain.QuoteFresh,
	}
	suite.mockRateReader.On("ConvertAmount", ctx, decimal.NewFromInt(1000), "UAH", "EUR").Return(converted, quote, nil).Once()

	var saved domain.Transaction
	suite.mockTxnRepo.On("SaveTransaction", ctx, mock.AnythingOfType("domain.Transaction")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Transaction) }).
		Return(nil).Once()

	txn, err := suite.service.CreateTransaction(ctx, suite.userID, suite.createRequest(decimal.NewFromInt(1000)))

	suite.Require().NoError(err)
	suite.True(txn.Amount.Equal(converted))
	suite.Require().NotNil(txn.NativeAmount)
	suite.True(txn.NativeAmount.Equal(decimal.NewFromInt(1000)))
	suite.Require().NotNil(txn.ExchangeRate)
	suite.True(txn.ExchangeRate.Equal(rate))
	suite.Require().NotNil(txn.BaseCurrency)
	suite.Equal("EUR", *txn.BaseCurrency)

	got, _ := saved.Amount.Float64()
	suite.InDelta(22.44, got, 0.01)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_RateUnavailableRejectsWrite() {
	ctx := context.Background()
	suite.expectCategory(domain.CategoryExpense)
	suite.expectMethod("XYZ", false)
	suite.expectUser("USD")

	unresolved := domain.RateQuote{FromCurrencyCode: "XYZ", ToCurrencyCode: "USD", Source: domain.QuoteUnavailable}
	suite.mockRateReader.On("ConvertAmount", ctx, decimal.NewFromInt(100), "XYZ", "USD").
		Return(decimal.Decimal{}, unresolved, apperrors.ErrRateUnavailable).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.userID, suite.createRequest(decimal.NewFromInt(100)))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_ArchivedMethodRejected() {
	ctx := context.Background()
	suite.expectCategory(domain.CategoryExpense)
	suite.expectMethod("USD", true)

	_, err := suite.service.CreateTransaction(ctx, suite.userID, suite.createRequest(decimal.NewFromInt(10)))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_RejectsNonPositiveAmount() {
	_, err := suite.service.CreateTransaction(context.Background(), suite.userID, suite.createRequest(decimal.NewFromInt(-5)))

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_RejectsLongDescription() {
	req := suite.createRequest(decimal.NewFromInt(10))
	req.Description = strings.Repeat("x", 501)

	_, err := suite.service.CreateTransaction(context.Background(), suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *TransactionServiceTestSuite) TestCreateTransaction_UnknownTagRejected() {
	ctx := context.Background()
	suite.expectCategory(domain.CategoryExpense)
	suite.expectMethod("USD", false)

	missing := uuid.NewString()
	req := suite.createRequest(decimal.NewFromInt(10))
	req.TagIDs = []string{missing}

	suite.mockTagRepo.On("FindTagsByIDs", ctx, suite.userID, []string{missing}).Return([]domain.Tag{}, nil).Once()

	_, err := suite.service.CreateTransaction(ctx, suite.userID, req)

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockTxnRepo.AssertNotCalled(suite.T(), "SaveTransaction", mock.Anything, mock.Anything)
}

func (suite *TransactionServiceTestSuite) TestListTransactions_ClampsLimit() {
	ctx := context.Background()

	suite.mockTxnRepo.On("ListTransactions", ctx, suite.userID, portsrepo.TransactionFilter{}, 20, 0).
		Return([]domain.Transaction{}, 0, nil).Once()

	_, _, err := suite.service.ListTransactions(ctx, suite.userID, portsrepo.TransactionFilter{}, 500, -3)

	suite.Require().NoError(err)
	suite.mockTxnRepo.AssertExpectations(suite.T())
}

func TestTransactionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(TransactionServiceTestSuite))
}
