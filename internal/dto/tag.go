package dto

import (
	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
)

// CreateTagRequest defines the data needed to create a tag.
type CreateTagRequest struct {
	Name string `json:"name" binding:"required,max=50"`
}

// TagResponse defines the data returned for a tag.
type TagResponse struct {
	TagID string `json:"tagID"`
	Name  string `json:"name"`
}

// ToTagResponse converts a domain.Tag to TagResponse DTO
func ToTagResponse(t *domain.Tag) TagResponse {
	return TagResponse{TagID: t.TagID, Name: t.Name}
}

// ToListTagResponse converts a slice of domain.Tag to response DTOs
func ToListTagResponse(tags []domain.Tag) []TagResponse {
	res := make([]TagResponse, len(tags))
	for i := range tags {
		res[i] = ToTagResponse(&tags[i])
	}
	return res
}
