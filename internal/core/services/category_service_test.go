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

type CategoryServiceTestSuite struct {
	suite.Suite
	mockCategoryRepo *MockCategoryRepository
	mockTagRepo      *MockTagRepository
	categoryService  *services.CategoryService
	tagService       *services.TagService
	ctx              context.Context
	userID           string
}

func (suite *CategoryServiceTestSuite) SetupTest() {
	suite.mockCategoryRepo = new(MockCategoryRepository)
	suite.mockTagRepo = new(MockTagRepository)
	suite.categoryService = services.NewCategoryService(suite.mockCategoryRepo)
	suite.tagService = services.NewTagService(suite.mockTagRepo)
	suite.ctx = context.Background()
	suite.userID = uuid.NewString()
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_Success() {
	var saved domain.Category
	suite.mockCategoryRepo.On("SaveCategory", suite.ctx, mock.AnythingOfType("domain.Category")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Category) }).
		Return(nil).Once()

	category, err := suite.categoryService.CreateCategory(suite.ctx, suite.userID, dto.CreateCategoryRequest{
		Name: "  Groceries  ",
		Type: "Expense",
	})

	suite.Require().NoError(err)
	suite.Equal("Groceries", category.Name)
	suite.Equal(domain.CategoryExpense, category.Type)
	suite.Equal("Groceries", saved.Name)
	suite.Equal(suite.userID, saved.UserID)
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_DuplicateNameDifferentCase() {
	// The unique index compares lower(name) per user and type, so the
	// repository reports a duplicate even when only the casing differs.
	suite.mockCategoryRepo.On("SaveCategory", suite.ctx, mock.AnythingOfType("domain.Category")).
		Return(apperrors.NewDuplicateError("category name already exists")).Once()

	_, err := suite.categoryService.CreateCategory(suite.ctx, suite.userID, dto.CreateCategoryRequest{
		Name: "groceries",
		Type: "expense",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_SameNameDifferentTypeAllowed() {
	// Uniqueness is scoped by type; "Food" may exist as both an income and
	// an expense category, so the save goes through to the repository.
	suite.mockCategoryRepo.On("SaveCategory", suite.ctx, mock.AnythingOfType("domain.Category")).
		Return(nil).Once()

	category, err := suite.categoryService.CreateCategory(suite.ctx, suite.userID, dto.CreateCategoryRequest{
		Name: "Food",
		Type: "income",
	})

	suite.Require().NoError(err)
	suite.Equal(domain.CategoryIncome, category.Type)
	suite.mockCategoryRepo.AssertExpectations(suite.T())
}

func (suite *CategoryServiceTestSuite) TestCreateCategory_EmptyName() {
	_, err := suite.categoryService.CreateCategory(suite.ctx, suite.userID, dto.CreateCategoryRequest{
		Name: "   ",
		Type: "expense",
	})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrValidation)
	suite.mockCategoryRepo.AssertNotCalled(suite.T(), "SaveCategory", mock.Anything, mock.Anything)
}

func (suite *CategoryServiceTestSuite) TestCreateTag_DuplicateNameDifferentCase() {
	suite.mockTagRepo.On("SaveTag", suite.ctx, mock.AnythingOfType("domain.Tag")).
		Return(apperrors.NewDuplicateError("tag name already exists")).Once()

	_, err := suite.tagService.CreateTag(suite.ctx, suite.userID, dto.CreateTagRequest{Name: "Trips"})

	suite.Require().Error(err)
	suite.ErrorIs(err, apperrors.ErrDuplicate)
}

func (suite *CategoryServiceTestSuite) TestCreateTag_TrimsName() {
	var saved domain.Tag
	suite.mockTagRepo.On("SaveTag", suite.ctx, mock.AnythingOfType("domain.Tag")).
		Run(func(args mock.Arguments) { saved = args.Get(1).(domain.Tag) }).
		Return(nil).Once()

	tag, err := suite.tagService.CreateTag(suite.ctx, suite.userID, dto.CreateTagRequest{Name: " trips "})

	suite.Require().NoError(err)
	suite.Equal("trips", tag.Name)
	suite.Equal("trips", saved.Name)
}

func TestCategoryServiceTestSuite(t *testing.T) {
	suite.Run(t, new(CategoryServiceTestSuite))
}
