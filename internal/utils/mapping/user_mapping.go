package mapping

import (
	"database/sql"

	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	"github.com/fintrackhq/fintrack-backend/internal/models"
)

// ToModelUser converts a domain User to a model User
func ToModelUser(d domain.User) models.User {
	return models.User{
		UserID:           d.UserID,
		Email:            d.Email,
		Name:             d.Name,
		PasswordHash:     sql.NullString{String: d.PasswordHash, Valid: d.PasswordHash != ""},
		GoogleID:         sql.NullString{String: d.GoogleID, Valid: d.GoogleID != ""},
		BaseCurrencyCode: d.BaseCurrencyCode,
		AuditFields:      ToModelAuditFields(d.AuditFields),
		DeletedAt:        d.DeletedAt,
	}
}

// ToDomainUser converts a model User to a domain User
func ToDomainUser(m models.User) domain.User {
	return domain.User{
		UserID:           m.UserID,
		Email:            m.Email,
		Name:             m.Name,
		PasswordHash:     m.PasswordHash.String,
		GoogleID:         m.GoogleID.String,
		BaseCurrencyCode: m.BaseCurrencyCode,
		AuditFields:      ToDomainAuditFields(m.AuditFields),
		DeletedAt:        m.DeletedAt,
	}
}
