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

// TagService provides business logic for user tags.
type TagService struct {
	BaseService
	tagRepo portsrepo.TagRepositoryFacade
}

// NewTagService creates a new TagService.
func NewTagService(tagRepo portsrepo.TagRepositoryFacade) *TagService {
	return &TagService{tagRepo: tagRepo}
}

var _ portssvc.TagSvcFacade = (*TagService)(nil)

// CreateTag creates a new tag for the user.
func (s *TagService) CreateTag(ctx context.Context, userID string, req dto.CreateTagRequest) (*domain.Tag, error) {
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, fmt.Errorf("%w: tag name cannot be empty", apperrors.ErrValidation)
	}

	now := time.Now()
	tag := domain.Tag{
		TagID:  uuid.NewString(),
		UserID: userID,
		Name:   name,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}

	if err := s.tagRepo.SaveTag(ctx, tag); err != nil {
		return nil, fmt.Errorf("failed to save tag: %w", err)
	}

	s.LogInfo(ctx, "Tag created", slog.String("tagID", tag.TagID))
	return &tag, nil
}

// ListTags retrieves all of the user's tags.
func (s *TagService) ListTags(ctx context.Context, userID string) ([]domain.Tag, error) {
	tags, err := s.tagRepo.ListTags(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list tags: %w", err)
	}
	return tags, nil
}

// DeleteTag removes a tag owned by the user. Its transaction links are removed
// with it; transactions themselves are untouched.
func (s *TagService) DeleteTag(ctx context.Context, userID, tagID string) error {
	if err := s.tagRepo.DeleteTag(ctx, userID, tagID); err != nil {
		return fmt.Errorf("failed to delete tag %s: %w", tagID, err)
	}
	s.LogInfo(ctx, "Tag deleted", slog.String("tagID", tagID))
	return nil
}
