package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMethodBalance is the running balance of one payment method in its own
// currency, plus the same figure converted to the user's base currency.
// Archived payment methods are included: archiving hides a method from new
// transactions but its history keeps counting toward balances.
type PaymentMethodBalance struct {
	PaymentMethodID string          `json:"paymentMethodID"`
	Name            string          `json:"name"`
	CurrencyCode    string          `json:"currencyCode"`
	IsArchived      bool            `json:"isArchived"`
	Balance         decimal.Decimal `json:"balance"`
	BaseBalance     decimal.Decimal `json:"baseBalance"`
	BaseUnresolved  bool            `json:"baseUnresolved,omitempty"` // True when no rate could be resolved
}

// BalanceReport aggregates per-method balances with an overall base-currency total.
type BalanceReport struct {
	BaseCurrencyCode string                 `json:"baseCurrencyCode"`
	Methods          []PaymentMethodBalance `json:"methods"`
	Total            decimal.Decimal        `json:"total"`
}

// CategorySummaryRow is the signed total of one category over a period.
type CategorySummaryRow struct {
	CategoryID   string          `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	Type         CategoryType    `json:"type"`
	Total        decimal.Decimal `json:"total"` // In the user's base currency
}

// MonthlySummary is income/expense totals for one month, by category.
type MonthlySummary struct {
	Period       time.Time            `json:"period"`
	TotalIncome  decimal.Decimal      `json:"totalIncome"`
	TotalExpense decimal.Decimal      `json:"totalExpense"`
	Net          decimal.Decimal      `json:"net"`
	ByCategory   []CategorySummaryRow `json:"byCategory"`
}

// BudgetUsageRow compares spend against one budget for one month.
type BudgetUsageRow struct {
	BudgetID     string          `json:"budgetID"`
	CategoryID   *string         `json:"categoryID,omitempty"`
	TagID        *string         `json:"tagID,omitempty"`
	ScopeName    string          `json:"scopeName"` // Category or tag name
	Period       time.Time       `json:"period"`
	BudgetAmount decimal.Decimal `json:"budgetAmount"`
	Spent        decimal.Decimal `json:"spent"`
	Remaining    decimal.Decimal `json:"remaining"`
}
