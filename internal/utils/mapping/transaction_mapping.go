package mapping

import (
	"database/sql"

	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	"github.com/fintrackhq/fintrack-backend/internal/models"
	"github.com/shopspring/decimal"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	m := models.Transaction{
		TransactionID:   d.TransactionID,
		UserID:          d.UserID,
		CategoryID:      d.CategoryID,
		PaymentMethodID: d.PaymentMethodID,
		Type:            string(d.Type),
		Amount:          d.Amount,
		TransactionDate: d.TransactionDate,
		Description:     d.Description,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
	if d.NativeAmount != nil {
		m.NativeAmount = decimal.NullDecimal{Decimal: *d.NativeAmount, Valid: true}
	}
	if d.ExchangeRate != nil {
		m.ExchangeRate = decimal.NullDecimal{Decimal: *d.ExchangeRate, Valid: true}
	}
	if d.BaseCurrency != nil {
		m.BaseCurrency = sql.NullString{String: *d.BaseCurrency, Valid: true}
	}
	return m
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	d := domain.Transaction{
		TransactionID:   m.TransactionID,
		UserID:          m.UserID,
		CategoryID:      m.CategoryID,
		PaymentMethodID: m.PaymentMethodID,
		Type:            domain.CategoryType(m.Type),
		Amount:          m.Amount,
		TransactionDate: m.TransactionDate,
		Description:     m.Description,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
	if m.NativeAmount.Valid {
		v := m.NativeAmount.Decimal
		d.NativeAmount = &v
	}
	if m.ExchangeRate.Valid {
		v := m.ExchangeRate.Decimal
		d.ExchangeRate = &v
	}
	if m.BaseCurrency.Valid {
		v := m.BaseCurrency.String
		d.BaseCurrency = &v
	}
	return d
}
