package dto

import (
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
)

// RegisterUserRequest defines the data needed to register a new user.
type RegisterUserRequest struct {
	Email            string `json:"email" binding:"required,email"`
	Name             string `json:"name" binding:"required,max=100"`
	Password         string `json:"password" binding:"required,min=8"`
	BaseCurrencyCode string `json:"baseCurrencyCode" binding:"omitempty,currencycode"`
}

// LoginRequest defines login credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// UpdateUserRequest defines updatable profile fields. Nil means unchanged.
type UpdateUserRequest struct {
	Name             *string `json:"name" binding:"omitempty,max=100"`
	BaseCurrencyCode *string `json:"baseCurrencyCode" binding:"omitempty,currencycode"`
}

// UserResponse defines the data returned for a user.
type UserResponse struct {
	UserID           string    `json:"userID"`
	Email            string    `json:"email"`
	Name             string    `json:"name"`
	BaseCurrencyCode string    `json:"baseCurrencyCode"`
	CreatedAt        time.Time `json:"createdAt"`
}

// ToUserResponse converts a domain.User to UserResponse DTO
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:           u.UserID,
		Email:            u.Email,
		Name:             u.Name,
		BaseCurrencyCode: u.BaseCurrencyCode,
		CreatedAt:        u.CreatedAt,
	}
}
