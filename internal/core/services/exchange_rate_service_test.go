package services_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/apperrors"
	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack-backend/internal/core/ports/repositories"
	"github.com/fintrackhq/fintrack-backend/internal/core/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ExchangeRateRepository ---
type MockExchangeRateRepository struct {
	mock.Mock
}

func (m *MockExchangeRateRepository) FindRateForDate(ctx context.Context, fromCode, toCode string, date time.Time) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCode, toCode, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) FindLatestRate(ctx context.Context, fromCode, toCode string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCode, toCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateRepository) ListExchangeRates(ctx context.Context, fromCurrency, toCurrency *string, date *time.Time, page, pageSize int) ([]domain.ExchangeRate, int, error) {
	args := m.Called(ctx, fromCurrency, toCurrency, date, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Int(1), args.Error(2)
}

func (m *MockExchangeRateRepository) SaveRatePair(ctx context.Context, rate domain.ExchangeRate) error {
	args := m.Called(ctx, rate)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) IncrementFetchErrors(ctx context.Context, fromCode, toCode string, date time.Time) error {
	args := m.Called(ctx, fromCode, toCode, date)
	return args.Error(0)
}

func (m *MockExchangeRateRepository) MarkStaleRates(ctx context.Context, now time.Time) (int64, error) {
	args := m.Called(ctx, now)
	return args.Get(0).(int64), args.Error(1)
}

// --- Mock RateProvider ---
type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) FetchLatest(ctx context.Context, base string) (*domain.RateSnapshot, error) {
	args := m.Called(ctx, base)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateSnapshot), args.Error(1)
}

func (m *MockRateProvider) Name() string {
	return "mock-provider"
}

// --- Mock ActiveCurrencySource ---
type MockActiveCurrencySource struct {
	mock.Mock
}

func (m *MockActiveCurrencySource) ListActiveCurrencies(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]string), args.Error(1)
}

// --- Mock CurrencyRepository ---
type MockCurrencyRepository struct {
	mock.Mock
}

func (m *MockCurrencyRepository) FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	args := m.Called(ctx, currencyCode)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyRepository) SaveCurrency(ctx context.Context, currency domain.Currency) error {
	args := m.Called(ctx, currency)
	return args.Error(0)
}

var _ portsrepo.ExchangeRateRepositoryFacade = (*MockExchangeRateRepository)(nil)
var _ portsrepo.CurrencyRepositoryFacade = (*MockCurrencyRepository)(nil)

// --- Test Suite ---
type ExchangeRateServiceTestSuite struct {
	suite.Suite
	mockRateRepo     *MockExchangeRateRepository
	mockProvider     *MockRateProvider
	mockCurrencyRepo *MockCurrencyRepository
	mockActive       *MockActiveCurrencySource
	service          *services.ExchangeRateService
}

const testRateTTL = 24 * time.Hour

func (suite *ExchangeRateServiceTestSuite) SetupTest() {
	suite.mockRateRepo = new(MockExchangeRateRepository)
	suite.mockProvider = new(MockRateProvider)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	suite.mockActive = new(MockActiveCurrencySource)

	currencySvc := services.NewCurrencyService(suite.mockCurrencyRepo)
	suite.service = services.NewExchangeRateService(
		suite.mockRateRepo,
		currencySvc,
		suite.mockProvider,
		suite.mockActive,
		"USD",
		testRateTTL,
	)
}

// usdSnapshot builds a provider snapshot with USD-relative rates for EUR and UAH.
func usdSnapshot() *domain.RateSnapshot {
	return &domain.RateSnapshot{
		Base: "USD",
		Rates: map[string]decimal.Decimal{
			"EUR": decimal.RequireFromString("0.92"),
			"UAH": decimal.RequireFromString("41.0"),
		},
		Provider:  "mock-provider",
		FetchedAt: time.Now(),
	}
}

func rateDayUTC(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

// --- GetRate ---

func (suite *ExchangeRateServiceTestSuite) TestGetRate_Identity() {
	ctx := context.Background()

	quote, err := suite.service.GetRate(ctx, "usd", "USD")

	suite.Require().NoError(err)
	suite.True(quote.Rate.Equal(decimal.NewFromInt(1)))
	suite.Equal(domain.QuoteFresh, quote.Source)
	suite.Equal("USD", quote.FromCurrencyCode)
	suite.Equal("USD", quote.ToCurrencyCode)

	// The identity pair must never touch storage or the provider.
	suite.mockRateRepo.AssertNotCalled(suite.T(), "FindRateForDate", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	suite.mockProvider.AssertNotCalled(suite.T(), "FetchLatest", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_InvalidCode() {
	ctx := context.Background()

	_, err := suite.service.GetRate(ctx, "EURO", "USD")
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_CachedFresh() {
	ctx := context.Background()
	now := time.Now()
	stored := &domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "EUR",
		Rate:             decimal.RequireFromString("0.92"),
		RateDate:         rateDayUTC(now),
		Source:           domain.RateSourceAPI,
		LastFetchedAt:    now.Add(-time.Hour),
		ExpiresAt:        now.Add(23 * time.Hour),
	}

	suite.mockRateRepo.On("FindRateForDate", ctx, "USD", "EUR", rateDayUTC(now)).Return(stored, nil).Once()

	quote, err := suite.service.GetRate(ctx, "USD", "EUR")

	suite.Require().NoError(err)
	suite.Equal(domain.QuoteFresh, quote.Source)
	suite.True(quote.Rate.Equal(stored.Rate))
	suite.mockProvider.AssertNotCalled(suite.T(), "FetchLatest", mock.Anything, mock.Anything)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_ManualWinsOverRefresh() {
	ctx := context.Background()
	now := time.Now()
	manual := &domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "XAU",
		Rate:             decimal.RequireFromString("0.0005"),
		RateDate:         rateDayUTC(now),
		Source:           domain.RateSourceManual,
		// Expired: manual precedence must still hold.
		ExpiresAt: now.Add(-time.Hour),
	}

	suite.mockRateRepo.On("FindRateForDate", ctx, "USD", "XAU", rateDayUTC(now)).Return(manual, nil).Once()

	quote, err := suite.service.GetRate(ctx, "USD", "XAU")

	suite.Require().NoError(err)
	suite.Equal(domain.QuoteManual, quote.Source)
	suite.True(quote.Rate.Equal(manual.Rate))
	suite.mockProvider.AssertNotCalled(suite.T(), "FetchLatest", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_ExpiredRefreshSucceeds() {
	ctx := context.Background()
	now := time.Now()
	expired := &domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "EUR",
		Rate:             decimal.RequireFromString("0.90"),
		RateDate:         rateDayUTC(now),
		Source:           domain.RateSourceAPI,
		ExpiresAt:        now.Add(-time.Minute),
	}

	suite.mockRateRepo.On("FindRateForDate", ctx, "USD", "EUR", rateDayUTC(now)).Return(expired, nil).Once()
	suite.mockProvider.On("FetchLatest", ctx, "USD").Return(usdSnapshot(), nil).Once()
	suite.mockRateRepo.On("SaveRatePair", ctx, mock.AnythingOfType("domain.ExchangeRate")).Return(nil).Once()

	quote, err := suite.service.GetRate(ctx, "USD", "EUR")

	suite.Require().NoError(err)
	suite.Equal(domain.QuoteFresh, quote.Source)
	suite.True(quote.Rate.Equal(decimal.RequireFromString("0.92")))
	suite.mockRateRepo.AssertExpectations(suite.T())
	suite.mockProvider.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_ExpiredRefreshFails_ServesStale() {
	ctx := context.Background()
	now := time.Now()
	expired := &domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "EUR",
		Rate:             decimal.RequireFromString("0.90"),
		RateDate:         rateDayUTC(now),
		Source:           domain.RateSourceAPI,
		ExpiresAt:        now.Add(-time.Minute),
	}

	suite.mockRateRepo.On("FindRateForDate", ctx, "USD", "EUR", rateDayUTC(now)).Return(expired, nil).Once()
	suite.mockProvider.On("FetchLatest", ctx, "USD").Return(nil, errors.New("provider down")).Once()
	suite.mockRateRepo.On("IncrementFetchErrors", ctx, "USD", "EUR", expired.RateDate).Return(nil).Once()

	quote, err := suite.service.GetRate(ctx, "USD", "EUR")

	suite.Require().NoError(err)
	suite.Equal(domain.QuoteStale, quote.Source)
	suite.True(quote.Rate.Equal(expired.Rate))
	suite.mockRateRepo.AssertExpectations(suite.T())
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_TriangulatesThroughPivot() {
	ctx := context.Background()
	now := time.Now()

	suite.mockRateRepo.On("FindRateForDate", ctx, "UAH", "EUR", rateDayUTC(now)).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockProvider.On("FetchLatest", ctx, "USD").Return(usdSnapshot(), nil).Once()

	var saved domain.ExchangeRate
	suite.mockRateRepo.On("SaveRatePair", ctx, mock.AnythingOfType("domain.ExchangeRate")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.ExchangeRate) }).
		Return(nil).Once()

	quote, err := suite.service.GetRate(ctx, "UAH", "EUR")

	suite.Require().NoError(err)
	suite.Equal(domain.QuoteFresh, quote.Source)

	// 0.92 / 41.0
	expected := 0.92 / 41.0
	got, _ := quote.Rate.Float64()
	suite.InEpsilon(expected, got, 1e-6)

	savedRate, _ := saved.Rate.Float64()
	suite.InEpsilon(expected, savedRate, 1e-6)
	suite.Equal("UAH", saved.FromCurrencyCode)
	suite.Equal("EUR", saved.ToCurrencyCode)
	suite.Equal(domain.RateSourceAPI, saved.Source)
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_InverseProductIsOne() {
	ctx := context.Background()
	now := time.Now()

	suite.mockRateRepo.On("FindRateForDate", ctx, "UAH", "EUR", rateDayUTC(now)).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockRateRepo.On("FindRateForDate", ctx, "EUR", "UAH", rateDayUTC(now)).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockProvider.On("FetchLatest", ctx, "USD").Return(usdSnapshot(), nil).Twice()
	suite.mockRateRepo.On("SaveRatePair", ctx, mock.AnythingOfType("domain.ExchangeRate")).Return(nil).Twice()

	forward, err := suite.service.GetRate(ctx, "UAH", "EUR")
	suite.Require().NoError(err)
	backward, err := suite.service.GetRate(ctx, "EUR", "UAH")
	suite.Require().NoError(err)

	product, _ := forward.Rate.Mul(backward.Rate).Float64()
	suite.InEpsilon(1.0, product, 1e-6)
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_ProviderDown_FallsBackToLatestStored() {
	ctx := context.Background()
	now := time.Now()
	old := &domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "EUR",
		Rate:             decimal.RequireFromString("0.91"),
		RateDate:         rateDayUTC(now.AddDate(0, 0, -3)),
		Source:           domain.RateSourceAPI,
		IsStale:          true,
		ExpiresAt:        now.AddDate(0, 0, -2),
	}

	suite.mockRateRepo.On("FindRateForDate", ctx, "USD", "EUR", rateDayUTC(now)).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockProvider.On("FetchLatest", ctx, "USD").Return(nil, errors.New("provider down")).Once()
	suite.mockRateRepo.On("FindLatestRate", ctx, "USD", "EUR").Return(old, nil).Once()

	quote, err := suite.service.GetRate(ctx, "USD", "EUR")

	suite.Require().NoError(err)
	suite.Equal(domain.QuoteStale, quote.Source)
	suite.True(quote.Rate.Equal(old.Rate))
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_Unavailable() {
	ctx := context.Background()
	now := time.Now()

	suite.mockRateRepo.On("FindRateForDate", ctx, "USD", "XYZ", rateDayUTC(now)).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockProvider.On("FetchLatest", ctx, "USD").Return(usdSnapshot(), nil).Once()
	suite.mockRateRepo.On("FindLatestRate", ctx, "USD", "XYZ").Return(nil, apperrors.ErrNotFound).Once()

	quote, err := suite.service.GetRate(ctx, "USD", "XYZ")

	suite.Require().NoError(err)
	suite.Equal(domain.QuoteUnavailable, quote.Source)
	suite.False(quote.Resolved())
	suite.True(quote.Rate.IsZero())
}

func (suite *ExchangeRateServiceTestSuite) TestGetRate_FallbackLookupStorageError() {
	ctx := context.Background()
	now := time.Now()

	suite.mockRateRepo.On("FindRateForDate", ctx, "USD", "XYZ", rateDayUTC(now)).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockProvider.On("FetchLatest", ctx, "USD").Return(usdSnapshot(), nil).Once()
	suite.mockRateRepo.On("FindLatestRate", ctx, "USD", "XYZ").Return(nil, errors.New("connection refused")).Once()

	quote, err := suite.service.GetRate(ctx, "USD", "XYZ")

	suite.Require().NoError(err)
	suite.Equal(domain.QuoteUnavailable, quote.Source)
	suite.mockRateRepo.AssertExpectations(suite.T())
}

// --- ConvertAmount ---

func (suite *ExchangeRateServiceTestSuite) TestConvertAmount_Identity() {
	ctx := context.Background()
	amount := decimal.RequireFromString("123.45")

	converted, quote, err := suite.service.ConvertAmount(ctx, amount, "EUR", "EUR")

	suite.Require().NoError(err)
	suite.True(converted.Equal(amount))
	suite.Equal(domain.QuoteFresh, quote.Source)
	suite.mockProvider.AssertNotCalled(suite.T(), "FetchLatest", mock.Anything, mock.Anything)
}

func (suite *ExchangeRateServiceTestSuite) TestConvertAmount_UAHToEUR() {
	ctx := context.Background()
	now := time.Now()

	suite.mockRateRepo.On("FindRateForDate", ctx, "UAH", "EUR", rateDayUTC(now)).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockProvider.On("FetchLatest", ctx, "USD").Return(usdSnapshot(), nil).Once()
	suite.mockRateRepo.On("SaveRatePair", ctx, mock.AnythingOfType("domain.ExchangeRate")).Return(nil).Once()

	converted, _, err := suite.service.ConvertAmount(ctx, decimal.NewFromInt(1000), "UAH", "EUR")

	suite.Require().NoError(err)
	// 1000 * 0.92 / 41.0
	got, _ := converted.Float64()
	suite.InDelta(22.44, got, 0.01)
}

func (suite *ExchangeRateServiceTestSuite) TestConvertAmount_Unavailable() {
	ctx := context.Background()
	now := time.Now()

	suite.mockRateRepo.On("FindRateForDate", ctx, "USD", "XYZ", rateDayUTC(now)).Return(nil, apperrors.ErrNotFound).Once()
	suite.mockProvider.On("FetchLatest", ctx, "USD").Return(usdSnapshot(), nil).Once()
	suite.mockRateRepo.On("FindLatestRate", ctx, "USD", "XYZ").Return(nil, apperrors.ErrNotFound).Once()

	_, quote, err := suite.service.ConvertAmount(ctx, decimal.NewFromInt(100), "USD", "XYZ")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)
	suite.Equal(domain.QuoteUnavailable, quote.Source)
}

// --- SetManualRate ---

func (suite *ExchangeRateServiceTestSuite) TestSetManualRate_Success() {
	ctx := context.Background()
	creator := uuid.NewString()

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(&domain.Currency{CurrencyCode: "USD"}, nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "XAU").Return(&domain.Currency{CurrencyCode: "XAU"}, nil).Once()

	var saved domain.ExchangeRate
	suite.mockRateRepo.On("SaveRatePair", ctx, mock.AnythingOfType("domain.ExchangeRate")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.ExchangeRate) }).
		Return(nil).Once()

	rate, err := suite.service.SetManualRate(ctx, "usd", "xau", decimal.RequireFromString("0.0005"), creator)

	suite.Require().NoError(err)
	suite.Equal(domain.RateSourceManual, rate.Source)
	suite.Equal("USD", rate.FromCurrencyCode)
	suite.Equal("XAU", rate.ToCurrencyCode)
	suite.Equal(domain.RateSourceManual, saved.Source)
	suite.Equal(creator, saved.CreatedBy)
}

func (suite *ExchangeRateServiceTestSuite) TestSetManualRate_RejectsSamePair() {
	_, err := suite.service.SetManualRate(context.Background(), "USD", "USD", decimal.NewFromInt(1), uuid.NewString())
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExchangeRateServiceTestSuite) TestSetManualRate_RejectsNonPositiveRate() {
	_, err := suite.service.SetManualRate(context.Background(), "USD", "EUR", decimal.Zero, uuid.NewString())
	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *ExchangeRateServiceTestSuite) TestSetManualRate_UnknownCurrency() {
	ctx := context.Background()

	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "USD").Return(&domain.Currency{CurrencyCode: "USD"}, nil).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "ZZZ").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.SetManualRate(ctx, "USD", "ZZZ", decimal.NewFromInt(2), uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveRatePair", mock.Anything, mock.Anything)
}

// --- RefreshAllRates ---

func (suite *ExchangeRateServiceTestSuite) TestRefreshAllRates_PartialFailure() {
	ctx := context.Background()

	// XYZ is not in the provider table; its pairs must fail without
	// aborting the USD/EUR refresh.
	suite.mockActive.On("ListActiveCurrencies", ctx).Return([]string{"EUR", "XYZ"}, nil).Once()
	suite.mockProvider.On("FetchLatest", ctx, "USD").Return(usdSnapshot(), nil).Once()

	var savedPairs []string
	suite.mockRateRepo.On("SaveRatePair", ctx, mock.AnythingOfType("domain.ExchangeRate")).
		Run(func(args mock.Arguments) {
			r := args.Get(1).(domain.ExchangeRate)
			savedPairs = append(savedPairs, r.FromCurrencyCode+"->"+r.ToCurrencyCode)
		}).
		Return(nil)
	suite.mockRateRepo.On("MarkStaleRates", ctx, mock.AnythingOfType("time.Time")).Return(int64(0), nil).Once()

	summary, err := suite.service.RefreshAllRates(ctx)

	suite.Require().NoError(err)
	suite.Equal(2, summary.Refreshed)
	suite.Equal(4, summary.Failed)
	suite.ElementsMatch(
		[]string{"EUR->XYZ", "XYZ->EUR", "USD->XYZ", "XYZ->USD"},
		summary.FailedPairs,
	)
	suite.Equal([]string{"EUR->USD"}, savedPairs)
}

func (suite *ExchangeRateServiceTestSuite) TestRefreshAllRates_IncludesPivotWhenUnused() {
	ctx := context.Background()

	suite.mockActive.On("ListActiveCurrencies", ctx).Return([]string{"EUR"}, nil).Once()
	suite.mockProvider.On("FetchLatest", ctx, "USD").Return(usdSnapshot(), nil).Once()
	suite.mockRateRepo.On("SaveRatePair", ctx, mock.AnythingOfType("domain.ExchangeRate")).Return(nil).Once()
	suite.mockRateRepo.On("MarkStaleRates", ctx, mock.AnythingOfType("time.Time")).Return(int64(2), nil).Once()

	summary, err := suite.service.RefreshAllRates(ctx)

	suite.Require().NoError(err)
	suite.Equal(2, summary.Refreshed)
	suite.Equal(0, summary.Failed)
	suite.Equal(2, summary.StaleMarked)
}

func (suite *ExchangeRateServiceTestSuite) TestRefreshAllRates_ProviderDown() {
	ctx := context.Background()

	suite.mockActive.On("ListActiveCurrencies", ctx).Return([]string{"EUR"}, nil).Once()
	suite.mockProvider.On("FetchLatest", ctx, "USD").Return(nil, errors.New("provider down")).Once()

	_, err := suite.service.RefreshAllRates(ctx)

	suite.Require().Error(err)
	suite.mockRateRepo.AssertNotCalled(suite.T(), "SaveRatePair", mock.Anything, mock.Anything)
}

// --- MarkStaleRates ---

func (suite *ExchangeRateServiceTestSuite) TestMarkStaleRates_SweepIsIdempotent() {
	ctx := context.Background()

	suite.mockRateRepo.On("MarkStaleRates", ctx, mock.AnythingOfType("time.Time")).Return(int64(3), nil).Once()
	suite.mockRateRepo.On("MarkStaleRates", ctx, mock.AnythingOfType("time.Time")).Return(int64(0), nil).Once()

	first, err := suite.service.MarkStaleRates(ctx)
	suite.Require().NoError(err)
	suite.Equal(int64(3), first)

	// A second sweep with no new expiries marks nothing.
	second, err := suite.service.MarkStaleRates(ctx)
	suite.Require().NoError(err)
	suite.Equal(int64(0), second)
}

func TestExchangeRateServiceTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateServiceTestSuite))
}
