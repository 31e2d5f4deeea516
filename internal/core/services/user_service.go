package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/apperrors"
	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack-backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackhq/fintrack-backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack-backend/internal/dto"
	"github.com/fintrackhq/fintrack-backend/internal/utils"
	"github.com/google/uuid"
)

const defaultBaseCurrency = "USD"

// UserService provides business logic for user management and authentication.
type UserService struct {
	BaseService
	userRepo        portsrepo.UserRepositoryFacade
	currencyService *CurrencyService
}

// NewUserService creates a new UserService.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, currencyService *CurrencyService) *UserService {
	return &UserService{userRepo: userRepo, currencyService: currencyService}
}

var _ portssvc.UserSvcFacade = (*UserService)(nil)

// RegisterUser creates a new user with an email/password credential.
func (s *UserService) RegisterUser(ctx context.Context, req dto.RegisterUserRequest) (*domain.User, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))

	if existing, err := s.userRepo.FindUserByEmail(ctx, email); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: email already registered", apperrors.ErrDuplicate)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	baseCurrency := defaultBaseCurrency
	if req.BaseCurrencyCode != "" {
		code := strings.ToUpper(req.BaseCurrencyCode)
		if _, err := s.currencyService.GetCurrencyByCode(ctx, code); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: base currency '%s' not found", apperrors.ErrValidation, code)
			}
			return nil, fmt.Errorf("failed to validate base currency: %w", err)
		}
		baseCurrency = code
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:           uuid.NewString(),
		Email:            email,
		Name:             strings.TrimSpace(req.Name),
		PasswordHash:     hash,
		BaseCurrencyCode: baseCurrency,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	user.CreatedBy = user.UserID
	user.LastUpdatedBy = user.UserID

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to save user: %w", err)
	}

	s.LogInfo(ctx, "User registered", slog.String("userID", user.UserID))
	return &user, nil
}

// GetUserByID retrieves a user by ID.
func (s *UserService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s: %w", userID, err)
	}
	return user, nil
}

// UpdateUser updates profile fields of an existing user.
func (s *UserService) UpdateUser(ctx context.Context, userID string, req dto.UpdateUserRequest) (*domain.User, error) {
	user, err := s.userRepo.FindUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user %s for update: %w", userID, err)
	}

	if req.Name != nil {
		name := strings.TrimSpace(*req.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: name cannot be empty", apperrors.ErrValidation)
		}
		user.Name = name
	}
	if req.BaseCurrencyCode != nil {
		code := strings.ToUpper(*req.BaseCurrencyCode)
		if _, err := s.currencyService.GetCurrencyByCode(ctx, code); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: base currency '%s' not found", apperrors.ErrValidation, code)
			}
			return nil, fmt.Errorf("failed to validate base currency: %w", err)
		}
		user.BaseCurrencyCode = code
	}
	user.LastUpdatedAt = time.Now()
	user.LastUpdatedBy = userID

	if err := s.userRepo.UpdateUser(ctx, *user); err != nil {
		return nil, fmt.Errorf("failed to update user %s: %w", userID, err)
	}
	return user, nil
}

// DeleteUser soft-deletes a user.
func (s *UserService) DeleteUser(ctx context.Context, userID string) error {
	if err := s.userRepo.DeleteUser(ctx, userID); err != nil {
		return fmt.Errorf("failed to delete user %s: %w", userID, err)
	}
	s.LogInfo(ctx, "User deleted", slog.String("userID", userID))
	return nil
}

// AuthenticateUser verifies an email/password pair. Authentication failures
// return apperrors.ErrUnauthorized without distinguishing unknown emails from
// bad passwords.
func (s *UserService) AuthenticateUser(ctx context.Context, email, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}
	if user.PasswordHash == "" || !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, fmt.Errorf("%w: invalid credentials", apperrors.ErrUnauthorized)
	}
	return user, nil
}

// FindOrCreateGoogleUser resolves the local user for a verified Google
// profile. First sign-in creates the user; a matching email links the Google
// identity to the existing account.
func (s *UserService) FindOrCreateGoogleUser(ctx context.Context, info *domain.GoogleUserInfo) (*domain.User, error) {
	if info == nil || info.ID == "" {
		return nil, fmt.Errorf("%w: missing google profile", apperrors.ErrValidation)
	}
	if !info.VerifiedEmail {
		return nil, fmt.Errorf("%w: google email is not verified", apperrors.ErrUnauthorized)
	}

	user, err := s.userRepo.FindUserByGoogleID(ctx, info.ID)
	if err == nil {
		return user, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up google user: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(info.Email))
	existing, err := s.userRepo.FindUserByEmail(ctx, email)
	if err == nil {
		existing.GoogleID = info.ID
		existing.LastUpdatedAt = time.Now()
		existing.LastUpdatedBy = existing.UserID
		if updErr := s.userRepo.UpdateUser(ctx, *existing); updErr != nil {
			return nil, fmt.Errorf("failed to link google identity: %w", updErr)
		}
		s.LogInfo(ctx, "Linked Google identity to existing user", slog.String("userID", existing.UserID))
		return existing, nil
	}
	if !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("failed to look up user by email: %w", err)
	}

	now := time.Now()
	newUser := domain.User{
		UserID:           uuid.NewString(),
		Email:            email,
		Name:             info.Name,
		GoogleID:         info.ID,
		BaseCurrencyCode: defaultBaseCurrency,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			LastUpdatedAt: now,
		},
	}
	newUser.CreatedBy = newUser.UserID
	newUser.LastUpdatedBy = newUser.UserID

	if err := s.userRepo.SaveUser(ctx, newUser); err != nil {
		return nil, fmt.Errorf("failed to save google user: %w", err)
	}
	s.LogInfo(ctx, "User created from Google sign-in", slog.String("userID", newUser.UserID))
	return &newUser, nil
}
