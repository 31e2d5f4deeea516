package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/apperrors"
	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
	portsprov "github.com/fintrackhq/fintrack-backend/internal/core/ports/providers"
	portsrepo "github.com/fintrackhq/fintrack-backend/internal/core/ports/repositories"
	portssvc "github.com/fintrackhq/fintrack-backend/internal/core/ports/services"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// ExchangeRateService answers rate lookups from the cached exchange_rates
// table, refreshing from the external provider when a value is absent or
// expired and triangulating cross rates through the base (pivot) currency.
//
// Fallback policy: a stale cached rate is always preferred to no rate. Only a
// pair with no cached row, no manual override and no triangulation path
// resolves as unavailable.
type ExchangeRateService struct {
	BaseService
	rateRepo         portsrepo.ExchangeRateRepositoryFacade
	currencyService  *CurrencyService
	provider         portsprov.RateProvider
	activeCurrencies portssvc.ActiveCurrencySource

	// baseCurrency is the triangulation pivot (USD in production config).
	baseCurrency string
	// rateTTL is the fixed cache TTL measured from last_fetched_at.
	rateTTL time.Duration
}

// NewExchangeRateService creates a new ExchangeRateService.
func NewExchangeRateService(
	rateRepo portsrepo.ExchangeRateRepositoryFacade,
	currencyService *CurrencyService,
	provider portsprov.RateProvider,
	activeCurrencies portssvc.ActiveCurrencySource,
	baseCurrency string,
	rateTTL time.Duration,
) *ExchangeRateService {
	return &ExchangeRateService{
		rateRepo:         rateRepo,
		currencyService:  currencyService,
		provider:         provider,
		activeCurrencies: activeCurrencies,
		baseCurrency:     strings.ToUpper(baseCurrency),
		rateTTL:          rateTTL,
	}
}

// Ensure ExchangeRateService implements the facade
var _ portssvc.ExchangeRateSvcFacade = (*ExchangeRateService)(nil)

// rateDay truncates a timestamp to the calendar day used as the upsert key.
func rateDay(t time.Time) time.Time {
	return t.UTC().Truncate(24 * time.Hour)
}

func normalizeCode(code string) (string, error) {
	c := strings.ToUpper(strings.TrimSpace(code))
	if len(c) != 3 {
		return "", fmt.Errorf("%w: currency codes must be 3 letters", apperrors.ErrValidation)
	}
	return c, nil
}

// GetRate resolves the conversion rate for a directed currency pair.
//
// Resolution order: identity, today's cached row (manual rows win), refresh
// of an expired row, triangulation through the pivot from one provider
// snapshot, stale fallback, unavailable.
func (s *ExchangeRateService) GetRate(ctx context.Context, fromCode, toCode string) (domain.RateQuote, error) {
	from, err := normalizeCode(fromCode)
	if err != nil {
		return domain.RateQuote{}, err
	}
	to, err := normalizeCode(toCode)
	if err != nil {
		return domain.RateQuote{}, err
	}

	// Identity: no lookup, no provider call.
	if from == to {
		return domain.RateQuote{
			FromCurrencyCode: from,
			ToCurrencyCode:   to,
			Rate:             decimal.NewFromInt(1),
			Source:           domain.QuoteFresh,
			ExpiresAt:        time.Now().Add(s.rateTTL),
		}, nil
	}

	now := time.Now()
	today := rateDay(now)

	stored, err := s.rateRepo.FindRateForDate(ctx, from, to, today)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return domain.RateQuote{}, fmt.Errorf("failed to look up exchange rate: %w", err)
	}

	if stored != nil {
		if stored.Source == domain.RateSourceManual {
			return quoteFromRate(stored, domain.QuoteManual), nil
		}
		if !stored.Expired(now) {
			return quoteFromRate(stored, domain.QuoteFresh), nil
		}

		// Expired: try a refresh, fall back to the stale value on failure.
		refreshed, refreshErr := s.refreshPair(ctx, from, to, now)
		if refreshErr == nil {
			return quoteFromRate(refreshed, domain.QuoteFresh), nil
		}
		s.LogWarn(ctx, "Rate refresh failed, serving stale value",
			slog.String("from", from), slog.String("to", to),
			slog.String("error", refreshErr.Error()))
		if incErr := s.rateRepo.IncrementFetchErrors(ctx, from, to, stored.RateDate); incErr != nil {
			s.LogError(ctx, incErr, "Failed to record fetch error count",
				slog.String("from", from), slog.String("to", to))
		}
		return quoteFromRate(stored, domain.QuoteStale), nil
	}

	// No row for today: triangulate from a fresh provider snapshot.
	refreshed, refreshErr := s.refreshPair(ctx, from, to, now)
	if refreshErr == nil {
		return quoteFromRate(refreshed, domain.QuoteFresh), nil
	}

	// Provider failed or lacks a leg: any older stored row beats no answer.
	latest, latestErr := s.rateRepo.FindLatestRate(ctx, from, to)
	if latestErr != nil && !errors.Is(latestErr, apperrors.ErrNotFound) {
		// A storage outage is not the same as a missing rate; make it visible.
		s.LogError(ctx, latestErr, "Failed to look up last known rate",
			slog.String("from", from), slog.String("to", to))
	}
	if latestErr == nil && latest != nil {
		source := domain.QuoteStale
		if latest.Source == domain.RateSourceManual {
			source = domain.QuoteManual
		}
		s.LogWarn(ctx, "No current rate available, serving last known value",
			slog.String("from", from), slog.String("to", to),
			slog.String("source", string(source)))
		return quoteFromRate(latest, source), nil
	}

	s.LogWarn(ctx, "Exchange rate unavailable",
		slog.String("from", from), slog.String("to", to),
		slog.String("error", refreshErr.Error()))
	return domain.RateQuote{
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		Source:           domain.QuoteUnavailable,
	}, nil
}

// GetAllRates fetches the provider's full rate table relative to base.
func (s *ExchangeRateService) GetAllRates(ctx context.Context, base string) (*domain.RateSnapshot, error) {
	b, err := normalizeCode(base)
	if err != nil {
		return nil, err
	}
	snapshot, err := s.provider.FetchLatest(ctx, b)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch rate table for %s: %w", b, err)
	}
	return snapshot, nil
}

// ConvertAmount converts amount between currencies via GetRate. The identity
// conversion returns the amount unchanged. An unresolvable pair returns
// apperrors.ErrRateUnavailable; the original amount is never passed through
// silently and zero is never fabricated.
func (s *ExchangeRateService) ConvertAmount(ctx context.Context, amount decimal.Decimal, fromCode, toCode string) (decimal.Decimal, domain.RateQuote, error) {
	quote, err := s.GetRate(ctx, fromCode, toCode)
	if err != nil {
		return decimal.Decimal{}, quote, err
	}
	if !quote.Resolved() {
		return decimal.Decimal{}, quote, fmt.Errorf("%w: %s to %s", apperrors.ErrRateUnavailable, quote.FromCurrencyCode, quote.ToCurrencyCode)
	}
	if quote.FromCurrencyCode == quote.ToCurrencyCode {
		return amount, quote, nil
	}
	return amount.Mul(quote.Rate), quote, nil
}

// SetManualRate upserts a MANUAL rate row (and its inverse) for today. Manual
// rows take precedence over API rows for the same pair and date; they are
// meant for currencies the provider does not carry or for corrections.
func (s *ExchangeRateService) SetManualRate(ctx context.Context, fromCode, toCode string, rate decimal.Decimal, creatorUserID string) (*domain.ExchangeRate, error) {
	from, err := normalizeCode(fromCode)
	if err != nil {
		return nil, err
	}
	to, err := normalizeCode(toCode)
	if err != nil {
		return nil, err
	}
	if from == to {
		return nil, fmt.Errorf("%w: from and to currency codes cannot be the same", apperrors.ErrValidation)
	}
	if rate.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}

	// Check if currencies exist
	if _, errFrom := s.currencyService.GetCurrencyByCode(ctx, from); errFrom != nil {
		if errors.Is(errFrom, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: 'from' currency code '%s' not found", apperrors.ErrValidation, from)
		}
		return nil, fmt.Errorf("failed to validate 'from' currency '%s': %w", from, errFrom)
	}
	if _, errTo := s.currencyService.GetCurrencyByCode(ctx, to); errTo != nil {
		if errors.Is(errTo, apperrors.ErrNotFound) {
			return nil, fmt.Errorf("%w: 'to' currency code '%s' not found", apperrors.ErrValidation, to)
		}
		return nil, fmt.Errorf("failed to validate 'to' currency '%s': %w", to, errTo)
	}

	now := time.Now()
	manual := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		Rate:             rate,
		RateDate:         rateDay(now),
		Source:           domain.RateSourceManual,
		LastFetchedAt:    now,
		ExpiresAt:        now.Add(s.rateTTL),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.rateRepo.SaveRatePair(ctx, manual); err != nil {
		return nil, fmt.Errorf("failed to save manual exchange rate: %w", err)
	}

	s.LogInfo(ctx, "Manual exchange rate set",
		slog.String("from", from), slog.String("to", to), slog.String("rate", rate.String()))
	return &manual, nil
}

// RefreshAllRates refreshes rates for every ordered pair among the currencies
// in active use plus the pivot. All pairs are derived from one provider
// snapshot, so both legs of every cross rate come from the same instant.
// Per-pair failures (missing provider legs, storage errors) are collected
// into the summary and never abort the batch. The stale-marking sweep runs
// after the batch.
func (s *ExchangeRateService) RefreshAllRates(ctx context.Context) (*domain.RefreshSummary, error) {
	active, err := s.activeCurrencies.ListActiveCurrencies(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to determine active currencies: %w", err)
	}

	// Always include the pivot even when no payment method uses it.
	seen := map[string]bool{s.baseCurrency: true}
	currencies := []string{s.baseCurrency}
	for _, code := range active {
		c := strings.ToUpper(strings.TrimSpace(code))
		if len(c) != 3 || seen[c] {
			continue
		}
		seen[c] = true
		currencies = append(currencies, c)
	}
	sort.Strings(currencies)

	snapshot, err := s.provider.FetchLatest(ctx, s.baseCurrency)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch provider snapshot: %w", err)
	}

	type pair struct{ from, to string }
	var pairs []pair
	for i := 0; i < len(currencies); i++ {
		for j := i + 1; j < len(currencies); j++ {
			pairs = append(pairs, pair{currencies[i], currencies[j]})
		}
	}

	summary := &domain.RefreshSummary{}
	var mu sync.Mutex
	var wg sync.WaitGroup

	for _, p := range pairs {
		wg.Add(1)
		go func(p pair) {
			defer wg.Done()

			// SaveRatePair stores the inverse too, so one call per
			// unordered pair covers both directions.
			err := s.storePairFromSnapshot(ctx, snapshot, p.from, p.to)

			mu.Lock()
			defer mu.Unlock()
			if err != nil {
				summary.Failed += 2
				summary.FailedPairs = append(summary.FailedPairs,
					p.from+"->"+p.to, p.to+"->"+p.from)
				s.LogWarn(ctx, "Failed to refresh currency pair",
					slog.String("from", p.from), slog.String("to", p.to),
					slog.String("error", err.Error()))
				return
			}
			summary.Refreshed += 2
		}(p)
	}
	wg.Wait()
	sort.Strings(summary.FailedPairs)

	marked, err := s.MarkStaleRates(ctx)
	if err != nil {
		s.LogError(ctx, err, "Stale-marking sweep failed after refresh")
	} else {
		summary.StaleMarked = int(marked)
	}

	s.LogInfo(ctx, "Exchange rate refresh completed",
		slog.Int("refreshed", summary.Refreshed),
		slog.Int("failed", summary.Failed),
		slog.Int("stale_marked", summary.StaleMarked))
	return summary, nil
}

// MarkStaleRates flags expired rates that have no fresher same-pair row.
// Idempotent; rows are never deleted so stale values stay available as a
// degraded fallback.
func (s *ExchangeRateService) MarkStaleRates(ctx context.Context) (int64, error) {
	marked, err := s.rateRepo.MarkStaleRates(ctx, time.Now())
	if err != nil {
		return 0, fmt.Errorf("failed to mark stale rates: %w", err)
	}
	return marked, nil
}

// ListExchangeRates retrieves stored rates with optional filters.
func (s *ExchangeRateService) ListExchangeRates(ctx context.Context, fromCurrency, toCurrency *string, date *time.Time, page, pageSize int) ([]domain.ExchangeRate, int, error) {
	return s.rateRepo.ListExchangeRates(ctx, fromCurrency, toCurrency, date, page, pageSize)
}

// refreshPair fetches one pivot-relative snapshot and stores the derived rate
// for the pair (and its inverse).
func (s *ExchangeRateService) refreshPair(ctx context.Context, from, to string, now time.Time) (*domain.ExchangeRate, error) {
	snapshot, err := s.provider.FetchLatest(ctx, s.baseCurrency)
	if err != nil {
		return nil, err
	}
	if err := s.storePairFromSnapshot(ctx, snapshot, from, to); err != nil {
		return nil, err
	}
	rate, _ := deriveRate(snapshot, from, to)
	return &domain.ExchangeRate{
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		Rate:             rate,
		RateDate:         rateDay(now),
		Source:           domain.RateSourceAPI,
		APIProvider:      snapshot.Provider,
		LastFetchedAt:    snapshot.FetchedAt,
		ExpiresAt:        snapshot.FetchedAt.Add(s.rateTTL),
	}, nil
}

// storePairFromSnapshot derives the rate for a pair from one snapshot and
// upserts it (the repository writes the inverse row in the same operation).
func (s *ExchangeRateService) storePairFromSnapshot(ctx context.Context, snapshot *domain.RateSnapshot, from, to string) error {
	rate, ok := deriveRate(snapshot, from, to)
	if !ok {
		return fmt.Errorf("%w: provider data has no rate for %s or %s", apperrors.ErrRateUnavailable, from, to)
	}

	now := snapshot.FetchedAt
	row := domain.ExchangeRate{
		ExchangeRateID:   uuid.NewString(),
		FromCurrencyCode: from,
		ToCurrencyCode:   to,
		Rate:             rate,
		RateDate:         rateDay(now),
		Source:           domain.RateSourceAPI,
		APIProvider:      snapshot.Provider,
		LastFetchedAt:    now,
		ExpiresAt:        now.Add(s.rateTTL),
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     "system",
			LastUpdatedAt: now,
			LastUpdatedBy: "system",
		},
	}
	return s.rateRepo.SaveRatePair(ctx, row)
}

// deriveRate computes rate(from, to) from a base-relative snapshot using
// exact cross-rate arithmetic: table[to]/table[from] in the general case,
// table[to] when from is the base and 1/table[from] when to is the base.
// Both legs come from the same snapshot, so the result is temporally
// consistent.
func deriveRate(snapshot *domain.RateSnapshot, from, to string) (decimal.Decimal, bool) {
	if from == to {
		return decimal.NewFromInt(1), true
	}
	if from == snapshot.Base {
		r, ok := snapshot.Rates[to]
		return r, ok && r.IsPositive()
	}
	if to == snapshot.Base {
		r, ok := snapshot.Rates[from]
		if !ok || !r.IsPositive() {
			return decimal.Decimal{}, false
		}
		return decimal.NewFromInt(1).Div(r), true
	}
	toRate, okTo := snapshot.Rates[to]
	fromRate, okFrom := snapshot.Rates[from]
	if !okTo || !okFrom || !toRate.IsPositive() || !fromRate.IsPositive() {
		return decimal.Decimal{}, false
	}
	return toRate.Div(fromRate), true
}

func quoteFromRate(rate *domain.ExchangeRate, source domain.QuoteSource) domain.RateQuote {
	return domain.RateQuote{
		FromCurrencyCode: rate.FromCurrencyCode,
		ToCurrencyCode:   rate.ToCurrencyCode,
		Rate:             rate.Rate,
		Source:           source,
		ExpiresAt:        rate.ExpiresAt,
	}
}
