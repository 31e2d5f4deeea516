package services

import (
	portsprov "github.com/fintrackhq/fintrack-backend/internal/core/ports/providers"
	portsrepo "github.com/fintrackhq/fintrack-backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackhq/fintrack-backend/internal/core/ports/services"
	"github.com/fintrackhq/fintrack-backend/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, rateProvider portsprov.RateProvider) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	currencyService := NewCurrencyService(repos.CurrencyRepo)
	container.Currency = currencyService

	userService := NewUserService(repos.UserRepo, currencyService)
	container.User = userService

	// The payment method service doubles as the active-currency source that
	// drives the exchange rate refresh set.
	methodService := NewPaymentMethodService(repos.PaymentMethodRepo, currencyService)
	container.PaymentMethod = methodService

	rateService := NewExchangeRateService(
		repos.ExchangeRateRepo,
		currencyService,
		rateProvider,
		methodService,
		cfg.BaseCurrency,
		cfg.RateTTL,
	)
	container.ExchangeRate = rateService

	categoryService := NewCategoryService(repos.CategoryRepo)
	container.Category = categoryService
	container.Tag = NewTagService(repos.TagRepo)

	container.Transaction = NewTransactionService(
		repos.TransactionRepo,
		categoryService,
		methodService,
		repos.TagRepo,
		userService,
		rateService,
	)
	container.Budget = NewBudgetService(repos.BudgetRepo, categoryService, repos.TagRepo)
	container.Reporting = NewReportingService(repos.ReportingRepo, userService, rateService)

	container.TokenService = NewTokenService(cfg)
	container.GoogleOAuthHandler = NewGoogleOAuthHandlerService(cfg)

	return container
}
