package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Transaction represents a single income or expense event. Amount is always
// positive; the sign of its contribution to a balance is derived from the
// linked category's type.
type Transaction struct {
	TransactionID   string       `json:"transactionID"` // Primary Key (e.g., UUID)
	UserID          string       `json:"userID"`
	CategoryID      string       `json:"categoryID"`
	PaymentMethodID string       `json:"paymentMethodID"` // Not Null
	Type            CategoryType `json:"type"`            // Mirrors the category type, lowercase
	Amount          decimal.Decimal `json:"amount"`       // Positive, in the payment method currency
	TransactionDate time.Time    `json:"transactionDate"`
	Description     string       `json:"description"` // Max 500 chars

	// Multi-currency fields, set when the payment method currency differs
	// from the user's base currency. All three are set together or not at all.
	NativeAmount *decimal.Decimal `json:"nativeAmount,omitempty"`
	ExchangeRate *decimal.Decimal `json:"exchangeRate,omitempty"`
	BaseCurrency *string          `json:"baseCurrency,omitempty"`

	TagIDs []string `json:"tagIDs,omitempty"`
	AuditFields
}

// IsMultiCurrency reports whether the transaction carries a converted amount.
func (t Transaction) IsMultiCurrency() bool {
	return t.NativeAmount != nil && t.ExchangeRate != nil && t.BaseCurrency != nil
}

// SignedAmount is the transaction's effective contribution to a balance:
// +amount for income categories, -amount otherwise.
func (t Transaction) SignedAmount() decimal.Decimal {
	if t.Type == CategoryIncome {
		return t.Amount
	}
	return t.Amount.Neg()
}
