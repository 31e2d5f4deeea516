package repositories

import (
	"context"
	"time"

	"github.com/fintrackhq/fintrack-backend/internal/core/domain"
)

// TransactionFilter narrows a transaction listing. Nil fields are ignored.
type TransactionFilter struct {
	FromDate        *time.Time
	ToDate          *time.Time
	CategoryID      *string
	PaymentMethodID *string
	TagID           *string
}

// TransactionReader defines read operations for transaction data
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction (with its tag IDs) owned by
	// the given user.
	FindTransactionByID(ctx context.Context, userID, transactionID string) (*domain.Transaction, error)

	// ListTransactions retrieves the user's transactions matching the filter,
	// newest first, with limit/offset pagination. Returns the page and the
	// total match count.
	ListTransactions(ctx context.Context, userID string, filter TransactionFilter, limit, offset int) ([]domain.Transaction, int, error)
}

// TransactionWriter defines write operations for transaction data
type TransactionWriter interface {
	// SaveTransaction persists a new transaction and its tag links in one
	// database transaction.
	SaveTransaction(ctx context.Context, txn domain.Transaction) error

	// UpdateTransaction updates a transaction and replaces its tag links.
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error

	// DeleteTransaction removes a transaction (and its tag links) owned by
	// the given user.
	DeleteTransaction(ctx context.Context, userID, transactionID string) error
}

// TransactionRepositoryFacade combines all transaction-related repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}
