package services_test

import (
	"context"
	"testing"

	"github.com/fintrackhq/fintrack-backend/internal/apperrors"
	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack-backend/internal/core/ports/repositories"
	"github.com/fintrackhq/fintrack-backend/internal/core/services"
	"github.com/fintrackhq/fintrack-backend/internal/dto"
	"github.com/fintrackhq/fintrack-backend/internal/utils"
	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock UserRepository ---
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) FindUserByID(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) FindUserByGoogleID(ctx context.Context, googleID string) (*domain.User, error) {
	args := m.Called(ctx, googleID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

func (m *MockUserRepository) SaveUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) UpdateUser(ctx context.Context, user domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

var _ portsrepo.UserRepositoryFacade = (*MockUserRepository)(nil)

// --- Test Suite ---
type UserServiceTestSuite struct {
	suite.Suite
	mockUserRepo     *MockUserRepository
	mockCurrencyRepo *MockCurrencyRepository
	service          *services.UserService
}

func (suite *UserServiceTestSuite) SetupTest() {
	suite.mockUserRepo = new(MockUserRepository)
	suite.mockCurrencyRepo = new(MockCurrencyRepository)
	currencySvc := services.NewCurrencyService(suite.mockCurrencyRepo)
	suite.service = services.NewUserService(suite.mockUserRepo, currencySvc)
}

func (suite *UserServiceTestSuite) TestRegisterUser_Success() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "alex@example.com").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "EUR").Return(&domain.Currency{CurrencyCode: "EUR"}, nil).Once()

	var saved domain.User
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.User) }).
		Return(nil).Once()

	user, err := suite.service.RegisterUser(ctx, dto.RegisterUserRequest{
		Email:            "  Alex@Example.COM ",
		Name:             "Alex",
		Password:         "correct-horse-battery",
		BaseCurrencyCode: "EUR",
	})

	suite.Require().NoError(err)
	suite.Equal("alex@example.com", user.Email)
	suite.Equal("EUR", user.BaseCurrencyCode)
	suite.NotEmpty(saved.PasswordHash)
	suite.NotEqual("correct-horse-battery", saved.PasswordHash)
	suite.True(utils.CheckPasswordHash("correct-horse-battery", saved.PasswordHash))
}

func (suite *UserServiceTestSuite) TestRegisterUser_DefaultsBaseCurrency() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "a@b.co").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	user, err := suite.service.RegisterUser(ctx, dto.RegisterUserRequest{
		Email:    "a@b.co",
		Name:     "A",
		Password: "long-enough-pass",
	})

	suite.Require().NoError(err)
	suite.Equal("USD", user.BaseCurrencyCode)
	suite.mockCurrencyRepo.AssertNotCalled(suite.T(), "FindCurrencyByCode", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestRegisterUser_DuplicateEmail() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "taken@example.com").
		Return(&domain.User{UserID: uuid.NewString(), Email: "taken@example.com"}, nil).Once()

	_, err := suite.service.RegisterUser(ctx, dto.RegisterUserRequest{
		Email:    "taken@example.com",
		Name:     "T",
		Password: "long-enough-pass",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
	suite.mockUserRepo.AssertNotCalled(suite.T(), "SaveUser", mock.Anything, mock.Anything)
}

func (suite *UserServiceTestSuite) TestRegisterUser_UnknownBaseCurrency() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "a@b.co").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockCurrencyRepo.On("FindCurrencyByCode", ctx, "ZZZ").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.RegisterUser(ctx, dto.RegisterUserRequest{
		Email:            "a@b.co",
		Name:             "A",
		Password:         "long-enough-pass",
		BaseCurrencyCode: "ZZZ",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_Success() {
	ctx := context.Background()
	hash, err := utils.HashPassword("sekret-enough")
	suite.Require().NoError(err)

	stored := &domain.User{UserID: uuid.NewString(), Email: "a@b.co", PasswordHash: hash}
	suite.mockUserRepo.On("FindUserByEmail", ctx, "a@b.co").Return(stored, nil).Once()

	user, err := suite.service.AuthenticateUser(ctx, "A@b.co", "sekret-enough")

	suite.Require().NoError(err)
	suite.Equal(stored.UserID, user.UserID)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_WrongPassword() {
	ctx := context.Background()
	hash, err := utils.HashPassword("sekret-enough")
	suite.Require().NoError(err)

	stored := &domain.User{UserID: uuid.NewString(), Email: "a@b.co", PasswordHash: hash}
	suite.mockUserRepo.On("FindUserByEmail", ctx, "a@b.co").Return(stored, nil).Once()

	_, err = suite.service.AuthenticateUser(ctx, "a@b.co", "wrong")

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestAuthenticateUser_UnknownEmail() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByEmail", ctx, "ghost@b.co").Return(nil, apperrors.ErrNotFound).Once()

	_, err := suite.service.AuthenticateUser(ctx, "ghost@b.co", "whatever")

	suite.Require().Error(err)
	// Unknown email and wrong password are indistinguishable to the caller.
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_LinksExistingEmail() {
	ctx := context.Background()
	existing := &domain.User{UserID: uuid.NewString(), Email: "a@b.co"}

	suite.mockUserRepo.On("FindUserByGoogleID", ctx, "goog-123").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "a@b.co").Return(existing, nil).Once()

	var updated domain.User
	suite.mockUserRepo.On("UpdateUser", ctx, mock.AnythingOfType("domain.User")).
		Run(func(args mock.Arguments) { updated = args.Get(1).(domain.User) }).
		Return(nil).Once()

	user, err := suite.service.FindOrCreateGoogleUser(ctx, &domain.GoogleUserInfo{
		ID:            "goog-123",
		Email:         "A@b.co",
		Name:          "A",
		VerifiedEmail: true,
	})

	suite.Require().NoError(err)
	suite.Equal(existing.UserID, user.UserID)
	suite.Equal("goog-123", updated.GoogleID)
}

func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_CreatesNewUser() {
	ctx := context.Background()

	suite.mockUserRepo.On("FindUserByGoogleID", ctx, "goog-456").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("FindUserByEmail", ctx, "new@b.co").Return(nil, apperrors.ErrNotFound).Once()
	suite.mockUserRepo.On("SaveUser", ctx, mock.AnythingOfType("domain.User")).Return(nil).Once()

	user, err := suite.service.FindOrCreateGoogleUser(ctx, &domain.GoogleUserInfo{
		ID:            "goog-456",
		Email:         "new@b.co",
		Name:          "New",
		VerifiedEmail: true,
	})

	suite.Require().NoError(err)
	suite.Equal("goog-456", user.GoogleID)
	suite.Equal("USD", user.BaseCurrencyCode)
	suite.Empty(user.PasswordHash)
}

func (suite *UserServiceTestSuite) TestFindOrCreateGoogleUser_RejectsUnverifiedEmail() {
	_, err := suite.service.FindOrCreateGoogleUser(context.Background(), &domain.GoogleUserInfo{
		ID:            "goog-789",
		Email:         "a@b.co",
		VerifiedEmail: false,
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrUnauthorized)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
