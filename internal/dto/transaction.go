package dto

import (
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionRequest defines the data needed to create a transaction.
// Amount is in the payment method's currency; the service converts it to the
// user's base currency when the two differ.
type CreateTransactionRequest struct {
	CategoryID      string          `json:"categoryID" binding:"required"`
	PaymentMethodID string          `json:"paymentMethodID" binding:"required"`
	Amount          decimal.Decimal `json:"amount" binding:"required"`
	TransactionDate time.Time       `json:"transactionDate" binding:"required"`
	Description     string          `json:"description" binding:"max=500"`
	TagIDs          []string        `json:"tagIDs"`
}

// UpdateTransactionRequest defines updatable transaction fields. Nil fields
// are unchanged; TagIDs, when present, replaces the full tag set.
type UpdateTransactionRequest struct {
	CategoryID      *string          `json:"categoryID"`
	PaymentMethodID *string          `json:"paymentMethodID"`
	Amount          *decimal.Decimal `json:"amount"`
	TransactionDate *time.Time       `json:"transactionDate"`
	Description     *string          `json:"description" binding:"omitempty,max=500"`
	TagIDs          *[]string        `json:"tagIDs"`
}

// TransactionResponse defines the data returned for a transaction.
type TransactionResponse struct {
	TransactionID   string          `json:"transactionID"`
	CategoryID      string          `json:"categoryID"`
	PaymentMethodID string          `json:"paymentMethodID"`
	Type            string          `json:"type"`
	Amount          decimal.Decimal `json:"amount"`
	SignedAmount    decimal.Decimal `json:"signedAmount"`
	TransactionDate time.Time       `json:"transactionDate"`
	Description     string          `json:"description,omitempty"`

	NativeAmount *decimal.Decimal `json:"nativeAmount,omitempty"`
	ExchangeRate *decimal.Decimal `json:"exchangeRate,omitempty"`
	BaseCurrency *string          `json:"baseCurrency,omitempty"`

	TagIDs    []string  `json:"tagIDs,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
}

// ListTransactionsResponse is a paginated transaction listing.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Total        int                   `json:"total"`
	Limit        int                   `json:"limit"`
	Offset       int                   `json:"offset"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	return TransactionResponse{
		TransactionID:   t.TransactionID,
		CategoryID:      t.CategoryID,
		PaymentMethodID: t.PaymentMethodID,
		Type:            string(t.Type),
		Amount:          t.Amount,
		SignedAmount:    t.SignedAmount(),
		TransactionDate: t.TransactionDate,
		Description:     t.Description,
		NativeAmount:    t.NativeAmount,
		ExchangeRate:    t.ExchangeRate,
		BaseCurrency:    t.BaseCurrency,
		TagIDs:          t.TagIDs,
		CreatedAt:       t.CreatedAt,
	}
}

// ToListTransactionsResponse converts a page of transactions with totals
func ToListTransactionsResponse(txns []domain.Transaction, total, limit, offset int) ListTransactionsResponse {
	res := make([]TransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToTransactionResponse(&txns[i])
	}
	return ListTransactionsResponse{Transactions: res, Total: total, Limit: limit, Offset: offset}
}
