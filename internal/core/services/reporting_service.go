package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/apperrors"
	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	portsrepo "github.com/fintrackhq/fintrack-backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackhq/fintrack-backend/internal/core/ports/services"
	"github.com/shopspring/decimal"
)

// ReportingSvc builds dashboard reports on top of the aggregate queries,
// converting per-method balances to the user's base currency through the
// exchange rate service.
type ReportingSvc struct {
	BaseService
	reportingRepo portsrepo.ReportingRepository
	userService   portssvc.UserReaderSvc
	rateService   portssvc.ExchangeRateReaderSvc
}

// NewReportingService creates a new ReportingSvc.
func NewReportingService(reportingRepo portsrepo.ReportingRepository, userService portssvc.UserReaderSvc, rateService portssvc.ExchangeRateReaderSvc) *ReportingSvc {
	return &ReportingSvc{reportingRepo: reportingRepo, userService: userService, rateService: rateService}
}

var _ portssvc.ReportingService = (*ReportingSvc)(nil)

// BalanceReport returns per-method balances with a base-currency total.
// Archived methods are included; archiving hides a method from new
// transactions but its history keeps counting. A method whose currency cannot
// be converted is flagged unresolved and excluded from the total rather than
// failing the whole report.
func (s *ReportingSvc) BalanceReport(ctx context.Context, userID string) (*domain.BalanceReport, error) {
	user, err := s.userService.GetUserByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load user for balance report: %w", err)
	}

	balances, err := s.reportingRepo.GetMethodBalances(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to compute method balances: %w", err)
	}

	report := &domain.BalanceReport{
		BaseCurrencyCode: user.BaseCurrencyCode,
		Methods:          make([]domain.PaymentMethodBalance, 0, len(balances)),
		Total:            decimal.Zero,
	}

	for _, b := range balances {
		converted, _, convErr := s.rateService.ConvertAmount(ctx, b.Balance, b.CurrencyCode, user.BaseCurrencyCode)
		if convErr != nil {
			if !errors.Is(convErr, apperrors.ErrRateUnavailable) {
				return nil, convErr
			}
			s.LogWarn(ctx, "Balance left unconverted, no rate available",
				slog.String("paymentMethodID", b.PaymentMethodID),
				slog.String("currency", b.CurrencyCode))
			b.BaseUnresolved = true
			b.BaseBalance = decimal.Zero
		} else {
			b.BaseBalance = converted
			report.Total = report.Total.Add(converted)
		}
		report.Methods = append(report.Methods, b)
	}
	return report, nil
}

// MonthlySummary returns income/expense totals by category for the month
// containing the given date. Amounts are already in the user's base currency.
func (s *ReportingSvc) MonthlySummary(ctx context.Context, userID string, month time.Time) (*domain.MonthlySummary, error) {
	from := domain.NormalizePeriod(month)
	to := from.AddDate(0, 1, 0)

	rows, err := s.reportingRepo.GetCategoryTotals(ctx, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("failed to compute category totals: %w", err)
	}

	summary := &domain.MonthlySummary{
		Period:       from,
		TotalIncome:  decimal.Zero,
		TotalExpense: decimal.Zero,
		ByCategory:   rows,
	}
	for _, row := range rows {
		if row.Type == domain.CategoryIncome {
			summary.TotalIncome = summary.TotalIncome.Add(row.Total)
		} else {
			// Expense totals come back signed negative; report magnitude.
			summary.TotalExpense = summary.TotalExpense.Add(row.Total.Abs())
		}
	}
	summary.Net = summary.TotalIncome.Sub(summary.TotalExpense)
	return summary, nil
}

// BudgetUsage compares each budget of the month against actual spend.
func (s *ReportingSvc) BudgetUsage(ctx context.Context, userID string, month time.Time) ([]domain.BudgetUsageRow, error) {
	rows, err := s.reportingRepo.GetBudgetSpend(ctx, userID, domain.NormalizePeriod(month))
	if err != nil {
		return nil, fmt.Errorf("failed to compute budget spend: %w", err)
	}
	for i := range rows {
		rows[i].Remaining = rows[i].BudgetAmount.Sub(rows[i].Spent)
	}
	return rows, nil
}
