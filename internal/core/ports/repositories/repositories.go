package repositories

// RepositoryProvider holds all repository interfaces needed by services.
// This makes passing dependencies to the service container constructor cleaner.
type RepositoryProvider struct {
	CurrencyRepo      CurrencyRepositoryFacade
	ExchangeRateRepo  ExchangeRateRepositoryFacade
	CategoryRepo      CategoryRepositoryFacade
	TagRepo           TagRepositoryFacade
	PaymentMethodRepo PaymentMethodRepositoryFacade
	TransactionRepo   TransactionRepositoryFacade
	BudgetRepo        BudgetRepositoryFacade
	UserRepo          UserRepositoryFacade
	ReportingRepo     ReportingRepository
}
