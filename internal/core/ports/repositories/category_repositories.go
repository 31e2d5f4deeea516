package repositories

import (
	"context"

	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
)

// CategoryReader defines read operations for category data
type CategoryReader interface {
	// FindCategoryByID retrieves a category owned by the given user.
	FindCategoryByID(ctx context.Context, userID, categoryID string) (*domain.Category, error)

	// ListCategories retrieves all categories owned by the given user.
	ListCategories(ctx context.Context, userID string) ([]domain.Category, error)
}

// CategoryWriter defines write operations for category data
type CategoryWriter interface {
	// SaveCategory persists a new category.
	SaveCategory(ctx context.Context, category domain.Category) error

	// UpdateCategory updates an existing category owned by the given user.
	UpdateCategory(ctx context.Context, category domain.Category) error

	// DeleteCategory removes a category owned by the given user.
	DeleteCategory(ctx context.Context, userID, categoryID string) error
}

// CategoryRepositoryFacade combines all category-related repository interfaces
type CategoryRepositoryFacade interface {
	CategoryReader
	CategoryWriter
}

// TagReader defines read operations for tag data
type TagReader interface {
	// FindTagByID retrieves a tag owned by the given user.
	FindTagByID(ctx context.Context, userID, tagID string) (*domain.Tag, error)

	// FindTagsByIDs retrieves the subset of the given tags owned by the user.
	FindTagsByIDs(ctx context.Context, userID string, tagIDs []string) ([]domain.Tag, error)

	// ListTags retrieves all tags owned by the given user.
	ListTags(ctx context.Context, userID string) ([]domain.Tag, error)
}

// TagWriter defines write operations for tag data
type TagWriter interface {
	// SaveTag persists a new tag.
	SaveTag(ctx context.Context, tag domain.Tag) error

	// DeleteTag removes a tag owned by the given user.
	DeleteTag(ctx context.Context, userID, tagID string) error
}

// TagRepositoryFacade combines all tag-related repository interfaces
type TagRepositoryFacade interface {
	TagReader
	TagWriter
}
