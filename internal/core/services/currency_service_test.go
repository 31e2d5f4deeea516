package services_test

import (
	"context"
	"testing"

	"github.com/fintrackhq/fintrack-backend/internal/apperrors"
	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	"github.com/fintrackhq/fintrack-backend/internal/core/services"
	"github.com/fintrackhq/fintrack-backend/internal/dto"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type CurrencyServiceTestSuite struct {
	suite.Suite
	mockRepo *MockCurrencyRepository
	service  *services.CurrencyService
}

func (suite *CurrencyServiceTestSuite) SetupTest() {
	suite.mockRepo = new(MockCurrencyRepository)
	suite.service = services.NewCurrencyService(suite.mockRepo)
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_Success() {
	ctx := context.Background()
	creator := uuid.NewString()

	var saved domain.Currency
	suite.mockRepo.On("SaveCurrency", ctx, mock.AnythingOfType("domain.Currency")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Currency) }).
		Return(nil).Once()

	currency, err := suite.service.CreateCurrency(ctx, dto.CreateCurrencyRequest{
		CurrencyCode: "uah",
		Symbol:       "₴",
		Name:         "Ukrainian Hryvnia",
		Precision:    2,
	}, creator)

	suite.Require().NoError(err)
	suite.Equal("UAH", currency.CurrencyCode)
	suite.Equal("UAH", saved.CurrencyCode)
	suite.Equal(creator, saved.CreatedBy)
}

func (suite *CurrencyServiceTestSuite) TestCreateCurrency_RejectsBadCode() {
	_, err := suite.service.CreateCurrency(context.Background(), dto.CreateCurrencyRequest{
		CurrencyCode: "EURO",
		Symbol:       "€",
		Name:         "Euro",
	}, uuid.NewString())

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockRepo.AssertNotCalled(suite.T(), "SaveCurrency", mock.Anything, mock.Anything)
}

func (suite *CurrencyServiceTestSuite) TestGetCurrencyByCode_UppercasesInput() {
	ctx := context.Background()

	suite.mockRepo.On("FindCurrencyByCode", ctx, "USD").
		Return(&domain.Currency{CurrencyCode: "USD", Name: "US Dollar"}, nil).Once()

	currency, err := suite.service.GetCurrencyByCode(ctx, "usd")

	suite.Require().NoError(err)
	suite.Equal("USD", currency.CurrencyCode)
}

func (suite *CurrencyServiceTestSuite) TestGetCurrencyByCode_NotFound() {
	ctx := context.Background()

	suite.mockRepo.On("FindCurrencyByCode", ctx, "ZZZ").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.GetCurrencyByCode(ctx, "ZZZ")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func TestCurrencyServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CurrencyServiceTestSuite))
}
