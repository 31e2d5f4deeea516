package dto

import (
	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
)

// CreateCategoryRequest defines the data needed to create a category.
// Type accepts any casing and is normalized to lowercase by the service.
type CreateCategoryRequest struct {
	Name  string `json:"name" binding:"required,max=100"`
	Type  string `json:"type" binding:"required"`
	Color string `json:"color" binding:"omitempty,max=20"`
	Icon  string `json:"icon" binding:"omitempty,max=50"`
}

// UpdateCategoryRequest defines updatable category fields. Nil means unchanged.
type UpdateCategoryRequest struct {
	Name  *string `json:"name" binding:"omitempty,max=100"`
	Color *string `json:"color" binding:"omitempty,max=20"`
	Icon  *string `json:"icon" binding:"omitempty,max=50"`
}

// CategoryResponse defines the data returned for a category.
type CategoryResponse struct {
	CategoryID string `json:"categoryID"`
	Name       string `json:"name"`
	Type       string `json:"type"`
	Color      string `json:"color,omitempty"`
	Icon       string `json:"icon,omitempty"`
}

// ToCategoryResponse converts a domain.Category to CategoryResponse DTO
func ToCategoryResponse(c *domain.Category) CategoryResponse {
	return CategoryResponse{
		CategoryID: c.CategoryID,
		Name:       c.Name,
		Type:       string(c.Type),
		Color:      c.Color,
		Icon:       c.Icon,
	}
}

// ToListCategoryResponse converts a slice of domain.Category to response DTOs
func ToListCategoryResponse(categories []domain.Category) []CategoryResponse {
	res := make([]CategoryResponse, len(categories))
	for i := range categories {
		res[i] = ToCategoryResponse(&categories[i])
	}
	return res
}
