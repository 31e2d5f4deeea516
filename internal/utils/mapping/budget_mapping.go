package mapping

import (
	"database/sql"

	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	"github.com/fintrackhq/fintrack-backend/internal/models"
)

// ToModelBudget converts a domain Budget to a model Budget
func ToModelBudget(d domain.Budget) models.Budget {
	m := models.Budget{
		BudgetID:    d.BudgetID,
		UserID:      d.UserID,
		Amount:      d.Amount,
		Period:      d.Period,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
	if d.CategoryID != nil {
		m.CategoryID = sql.NullString{String: *d.CategoryID, Valid: true}
	}
	if d.TagID != nil {
		m.TagID = sql.NullString{String: *d.TagID, Valid: true}
	}
	return m
}

// ToDomainBudget converts a model Budget to a domain Budget
func ToDomainBudget(m models.Budget) domain.Budget {
	d := domain.Budget{
		BudgetID:    m.BudgetID,
		UserID:      m.UserID,
		Amount:      m.Amount,
		Period:      m.Period,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
	if m.CategoryID.Valid {
		v := m.CategoryID.String
		d.CategoryID = &v
	}
	if m.TagID.Valid {
		v := m.TagID.String
		d.TagID = &v
	}
	return d
}
