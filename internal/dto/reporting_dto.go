package dto

import (
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	"github.com/shopspring/decimal"
)

// MethodBalanceResponse is one payment method's balance line.
type MethodBalanceResponse struct {
	PaymentMethodID string          `json:"paymentMethodID"`
	Name            string          `json:"name"`
	CurrencyCode    string          `json:"currencyCode"`
	IsArchived      bool            `json:"isArchived"`
	Balance         decimal.Decimal `json:"balance"`
	BaseBalance     decimal.Decimal `json:"baseBalance"`
	BaseUnresolved  bool            `json:"baseUnresolved,omitempty"`
}

// BalanceReportResponse is the full balance dashboard view.
type BalanceReportResponse struct {
	BaseCurrencyCode string                  `json:"baseCurrencyCode"`
	Methods          []MethodBalanceResponse `json:"methods"`
	Total            decimal.Decimal         `json:"total"`
}

// CategorySummaryResponse is one category's total for a period.
type CategorySummaryResponse struct {
	CategoryID   string          `json:"categoryID"`
	CategoryName string          `json:"categoryName"`
	Type         string          `json:"type"`
	Total        decimal.Decimal `json:"total"`
}

// MonthlySummaryResponse is the month dashboard view.
type MonthlySummaryResponse struct {
	Period       time.Time                 `json:"period"`
	TotalIncome  decimal.Decimal           `json:"totalIncome"`
	TotalExpense decimal.Decimal           `json:"totalExpense"`
	Net          decimal.Decimal           `json:"net"`
	ByCategory   []CategorySummaryResponse `json:"byCategory"`
}

// BudgetUsageResponse compares one budget against actual spend.
type BudgetUsageResponse struct {
	BudgetID     string          `json:"budgetID"`
	CategoryID   *string         `json:"categoryID,omitempty"`
	TagID        *string         `json:"tagID,omitempty"`
	ScopeName    string          `json:"scopeName"`
	Period       time.Time       `json:"period"`
	BudgetAmount decimal.Decimal `json:"budgetAmount"`
	Spent        decimal.Decimal `json:"spent"`
	Remaining    decimal.Decimal `json:"remaining"`
}

// ToBalanceReportResponse converts a domain.BalanceReport to its response DTO
func ToBalanceReportResponse(r *domain.BalanceReport) BalanceReportResponse {
	methods := make([]MethodBalanceResponse, len(r.Methods))
	for i, m := range r.Methods {
		methods[i] = MethodBalanceResponse{
			PaymentMethodID: m.PaymentMethodID,
			Name:            m.Name,
			CurrencyCode:    m.CurrencyCode,
			IsArchived:      m.IsArchived,
			Balance:         m.Balance,
			BaseBalance:     m.BaseBalance,
			BaseUnresolved:  m.BaseUnresolved,
		}
	}
	return BalanceReportResponse{
		BaseCurrencyCode: r.BaseCurrencyCode,
		Methods:          methods,
		Total:            r.Total,
	}
}

// ToMonthlySummaryResponse converts a domain.MonthlySummary to its response DTO
func ToMonthlySummaryResponse(s *domain.MonthlySummary) MonthlySummaryResponse {
	byCat := make([]CategorySummaryResponse, len(s.ByCategory))
	for i, row := range s.ByCategory {
		byCat[i] = CategorySummaryResponse{
			CategoryID:   row.CategoryID,
			CategoryName: row.CategoryName,
			Type:         string(row.Type),
			Total:        row.Total,
		}
	}
	return MonthlySummaryResponse{
		Period:       s.Period,
		TotalIncome:  s.TotalIncome,
		TotalExpense: s.TotalExpense,
		Net:          s.Net,
		ByCategory:   byCat,
	}
}

// ToBudgetUsageResponse converts budget usage rows to response DTOs
func ToBudgetUsageResponse(rows []domain.BudgetUsageRow) []BudgetUsageResponse {
	res := make([]BudgetUsageResponse, len(rows))
	for i, row := range rows {
		res[i] = BudgetUsageResponse{
			BudgetID:     row.BudgetID,
			CategoryID:   row.CategoryID,
			TagID:        row.TagID,
			ScopeName:    row.ScopeName,
			Period:       row.Period,
			BudgetAmount: row.BudgetAmount,
			Spent:        row.Spent,
			Remaining:    row.Remaining,
		}
	}
	return res
}
