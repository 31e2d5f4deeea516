package providers

import (
	"context"

	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
)

// RateProvider is an external source of exchange rates. One call returns the
// full table of rates relative to a base currency, taken at a single instant;
// callers derive every pair they need from that one snapshot so both legs of a
// triangulated rate are temporally consistent.
type RateProvider interface {
	// FetchLatest retrieves the current base-relative rate table.
	FetchLatest(ctx context.Context, base string) (*domain.RateSnapshot, error)

	// Name identifies the provider, stored on API-sourced rate rows.
	Name() string
}
