package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/apperrors"
	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack-backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackhq/fintrack-backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack-backend/internal/dto"
	"github.com/google/uuid"
)

// CategoryService provides business logic for user categories.
type CategoryService struct {
	BaseService
	categoryRepo portsrepo.CategoryRepositoryFacade
}

// NewCategoryService creates a new CategoryService.
func NewCategoryService(categoryRepo portsrepo.CategoryRepositoryFacade) *CategoryService {
	return &CategoryService{categoryRepo: categoryRepo}
}

var _ portssvc.CategorySvcFacade = (*CategoryService)(nil)

// CreateCategory creates a new category for the user. The type is normalized
// to lowercase and is immutable after creation.
func (s *CategoryService) CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: category name cannot be empty", apperrors.ErrValidation)
	}
	catType, ok := domain.ParseCategoryType(req.Type)
	if !ok {
		return nil, fmt.Errorf("%w: category type must be 'income' or 'expense'", apperrors.ErrValidation)
	}

	now := time.Now()
	category := domain.Category{
		CategoryID: uuid.NewString(),
		UserID:     userID,
		Name:       name,
		Type:       catType,
		Color:      req.Color,
		Icon:       req.Icon,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.categoryRepo.SaveCategory(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to save category: %w", err)
	}

	s.LogInfo(ctx, "Category created", slog.String("categoryID", category.CategoryID))
	return &category, nil
}

// GetCategoryByID retrieves a category owned by the user.
func (s *CategoryService) GetCategoryByID(ctx context.Context, userID, categoryID string) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, userID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category %s: %w", categoryID, err)
	}
	return category, nil
}

// ListCategories retrieves all of the user's categories.
func (s *CategoryService) ListCategories(ctx context.Context, userID string) ([]domain.Category, error) {
	categories, err := s.categoryRepo.ListCategories(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	return categories, nil
}

// UpdateCategory updates name, color or icon of an existing category. The
// category type is never changed; retyping would silently flip the sign of
// the category's transaction history.
func (s *CategoryService) UpdateCategory(ctx context.Context, userID, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error) {
	category, err := s.categoryRepo.FindCategoryByID(ctx, userID, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to get category %s for update: %w", categoryID, err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: category name cannot be empty", apperrors.ErrValidation)
		}
		category.Name = name
	}
	if req.Color != nil {
		category.Color = *req.Color
	}
	if req.Icon != nil {
		category.Icon = *req.Icon
	}
	category.LastUpdatedAt = time.Now()
	category.LastUpdatedBy = userID

	if err := s.categoryRepo.UpdateCategory(ctx, *category); err != nil {
		return nil, fmt.Errorf("failed to update category %s: %w", categoryID, err)
	}
	return category, nil
}

// DeleteCategory removes a category owned by the user. The database restricts
// deletion while transactions or budgets still reference it.
func (s *CategoryService) DeleteCategory(ctx context.Context, userID, categoryID string) error {
	if err := s.categoryRepo.DeleteCategory(ctx, userID, categoryID); err != nil {
		return fmt.Errorf("failed to delete category %s: %w", categoryID, err)
	}
	s.LogInfo(ctx, "Category deleted", slog.String("categoryID", categoryID))
	return nil
}
