package services

import (
	"context"

	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	"github.com/fintrackhq/fintrack-backend/internal/dto"
)

// CategorySvcFacade defines operations on a user's categories.
type CategorySvcFacade interface {
	CreateCategory(ctx context.Context, userID string, req dto.CreateCategoryRequest) (*domain.Category, error)
	GetCategoryByID(ctx context.Context, userID, categoryID string) (*domain.Category, error)
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)
	UpdateCategory(ctx context.Context, userID, categoryID string, req dto.UpdateCategoryRequest) (*domain.Category, error)
	DeleteCategory(ctx context.Context, userID, categoryID string) error
}

// TagSvcFacade defines operations on a user's tags.
type TagSvcFacade interface {
	CreateTag(ctx context.Context, userID string, req dto.CreateTagRequest) (*domain.Tag, error)
	ListTags(ctx context.Context, userID string) ([]domain.Tag, error)
	DeleteTag(ctx context.Context, userID, tagID string) error
}
