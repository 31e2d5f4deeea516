package pgsql

import (
	portsrepo "github.com/fintrackhq/fintrack-backend/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CurrencyRepo:      newPgxCurrencyRepository(dbPool),
		ExchangeRateRepo:  newPgxExchangeRateRepository(dbPool),
		CategoryRepo:      newPgxCategoryRepository(dbPool),
		TagRepo:           newPgxTagRepository(dbPool),
		PaymentMethodRepo: newPgxPaymentMethodRepository(dbPool),
		TransactionRepo:   newPgxTransactionRepository(dbPool),
		BudgetRepo:        newPgxBudgetRepository(dbPool),
		UserRepo:          newPgxUserRepository(dbPool),
		ReportingRepo:     newReportingRepository(dbPool),
	}
}
