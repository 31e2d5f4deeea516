package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/apperrors"
	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	portssvc "github.com/fintrackhq/fintrack-backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack-backend/internal/dto"
	"github.com/fintrackhq/fintrack-backend/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock ExchangeRateService ---
type MockExchangeRateService struct {
	mock.Mock
}

func (m *MockExchangeRateService) GetRate(ctx context.Context, fromCode, toCode string) (domain.RateQuote, error) {
	args := m.Called(ctx, fromCode, toCode)
	return args.Get(0).(domain.RateQuote), args.Error(1)
}

func (m *MockExchangeRateService) GetAllRates(ctx context.Context, base string) (*domain.RateSnapshot, error) {
	args := m.Called(ctx, base)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RateSnapshot), args.Error(1)
}

func (m *MockExchangeRateService) ConvertAmount(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, domain.RateQuote, error) {
	args := m.Called(ctx, amount, fromCode, toCode)
	return args.Get(0).(decimal.Decimal), args.Get(1).(domain.RateQuote), args.Error(2)
}

func (m *MockExchangeRateService) ListExchangeRates(ctx context.Context, fromCurrency, toCurrency *string, date *time.Time, page, pageSize int) ([]domain.ExchangeRate, int, error) {
	args := m.Called(ctx, fromCurrency, toCurrency, date, page, pageSize)
	if args.Get(0) == nil {
		return nil, args.Int(1), args.Error(2)
	}
	return args.Get(0).([]domain.ExchangeRate), args.Int(1), args.Error(2)
}

func (m *MockExchangeRateService) SetManualRate(ctx context.Context, fromCode, toCode string, rate decimal.Decimal, creatorUserID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, fromCode, toCode, rate, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

func (m *MockExchangeRateService) RefreshAllRates(ctx context.Context) (*domain.RefreshSummary, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.RefreshSummary), args.Error(1)
}

func (m *MockExchangeRateService) MarkStaleRates(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

var _ portssvc.ExchangeRateSvcFacade = (*MockExchangeRateService)(nil)

// --- Test Suite ---
type ExchangeRateHandlerTestSuite struct {
	suite.Suite
	router      *gin.Engine
	mockService *MockExchangeRateService
	jwtSecret   string
	userID      string
}

func (suite *ExchangeRateHandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	registerValidations()
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()

	suite.mockService = new(MockExchangeRateService)

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret))
	registerExchangeRateRoutes(v1, suite.mockService)
}

func (suite *ExchangeRateHandlerTestSuite) authToken() string {
	claims := jwt.RegisteredClaims{
		Subject:   suite.userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(suite.jwtSecret))
	suite.Require().NoError(err)
	return signed
}

func (suite *ExchangeRateHandlerTestSuite) doRequest(method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+suite.authToken())
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *ExchangeRateHandlerTestSuite) TestGetQuote_Success() {
	expires := time.Now().Add(time.Hour)
	quote := domain.RateQuote{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "EUR",
		Rate:             decimal.RequireFromString("0.92"),
		Source:           domain.QuoteFresh,
		ExpiresAt:        expires,
	}
	suite.mockService.On("GetRate", mock.Anything, "USD", "EUR").Return(quote, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/exchange-rates/quote?from=USD&to=EUR", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.RateQuoteResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("fresh", resp.Source)
	suite.Require().NotNil(resp.Rate)
	suite.True(resp.Rate.Equal(quote.Rate))
}

func (suite *ExchangeRateHandlerTestSuite) TestGetQuote_UnavailableOmitsRate() {
	quote := domain.RateQuote{
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "XYZ",
		Source:           domain.QuoteUnavailable,
	}
	suite.mockService.On("GetRate", mock.Anything, "USD", "XYZ").Return(quote, nil).Once()

	w := suite.doRequest(http.MethodGet, "/api/v1/exchange-rates/quote?from=USD&to=XYZ", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.RateQuoteResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("unavailable", resp.Source)
	suite.Nil(resp.Rate)
	suite.Nil(resp.ExpiresAt)
}

func (suite *ExchangeRateHandlerTestSuite) TestGetQuote_Unauthorized() {
	req := httptest.NewRequest(http.MethodGet, "/api/v1/exchange-rates/quote?from=USD&to=EUR", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)

	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "GetRate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateHandlerTestSuite) TestConvert_Success() {
	amount := decimal.NewFromInt(1000)
	converted := decimal.RequireFromString("22.44")
	quote := domain.RateQuote{
		FromCurrencyCode: "UAH",
		ToCurrencyCode:   "EUR",
		Rate:             decimal.RequireFromString("0.02244"),
		Source:           domain.QuoteFresh,
		ExpiresAt:        time.Now().Add(time.Hour),
	}
	suite.mockService.On("ConvertAmount", mock.Anything, mock.AnythingOfType("decimal.Decimal"), "UAH", "EUR").
		Return(converted, quote, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/exchange-rates/convert",
		`{"amount": 1000, "fromCurrencyCode": "UAH", "toCurrencyCode": "EUR"}`)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ConvertAmountResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.Amount.Equal(amount))
	suite.True(resp.Converted.Equal(converted))
	suite.Equal("fresh", resp.Quote.Source)
}

func (suite *ExchangeRateHandlerTestSuite) TestConvert_RateUnavailable() {
	quote := domain.RateQuote{FromCurrencyCode: "USD", ToCurrencyCode: "XYZ", Source: domain.QuoteUnavailable}
	suite.mockService.On("ConvertAmount", mock.Anything, mock.AnythingOfType("decimal.Decimal"), "USD", "XYZ").
		Return(decimal.Decimal{}, quote, apperrors.ErrRateUnavailable).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/exchange-rates/convert",
		`{"amount": 100, "fromCurrencyCode": "USD", "toCurrencyCode": "XYZ"}`)

	suite.Equal(http.StatusUnprocessableEntity, w.Code)
}

func (suite *ExchangeRateHandlerTestSuite) TestConvert_BadBody() {
	w := suite.doRequest(http.MethodPost, "/api/v1/exchange-rates/convert", `{"amount": "not-a-number"}`)

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ConvertAmount", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func (suite *ExchangeRateHandlerTestSuite) TestSetManualRate_Created() {
	stored := &domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: "USD",
		ToCurrencyCode:   "XAU",
		Rate:             decimal.RequireFromString("0.0005"),
		Source:           domain.RateSourceManual,
	}
	suite.mockService.On("SetManualRate", mock.Anything, "USD", "XAU", mock.AnythingOfType("decimal.Decimal"), suite.userID).
		Return(stored, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/exchange-rates/manual",
		`{"fromCurrencyCode": "USD", "toCurrencyCode": "XAU", "rate": 0.0005}`)

	suite.Equal(http.StatusCreated, w.Code)
	var resp dto.ExchangeRateResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("MANUAL", resp.Source)
}

func (suite *ExchangeRateHandlerTestSuite) TestRefreshAll_ReportsPartialFailures() {
	summary := &domain.RefreshSummary{
		Refreshed:   4,
		Failed:      2,
		FailedPairs: []string{"USD->XYZ", "XYZ->USD"},
		StaleMarked: 1,
	}
	suite.mockService.On("RefreshAllRates", mock.Anything).Return(summary, nil).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/exchange-rates/refresh", "")

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.RefreshSummaryResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal(4, resp.Refreshed)
	suite.Equal(2, resp.Failed)
	suite.Len(resp.FailedPairs, 2)
}

func (suite *ExchangeRateHandlerTestSuite) TestRefreshAll_ProviderDown() {
	suite.mockService.On("RefreshAllRates", mock.Anything).
		Return(nil, apperrors.NewAppError(http.StatusBadGateway, "provider unreachable", nil)).Once()

	w := suite.doRequest(http.MethodPost, "/api/v1/exchange-rates/refresh", "")

	suite.Equal(http.StatusBadGateway, w.Code)
}

func (suite *ExchangeRateHandlerTestSuite) TestListRates_InvalidDate() {
	w := suite.doRequest(http.MethodGet, "/api/v1/exchange-rates?date=March-1", "")

	suite.Equal(http.StatusBadRequest, w.Code)
	suite.mockService.AssertNotCalled(suite.T(), "ListExchangeRates",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestExchangeRateHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(ExchangeRateHandlerTestSuite))
}
