package repositories

import (
	"context"
	"time"

	"github.com/acctpro/accounting_pro_app/internal/core/domain"
)

// ListTransactionsFilter narrows a transaction listing.
type ListTransactionsFilter struct {
	Status   *domain.TransactionStatus
	DateFrom *time.Time
	DateTo   *time.Time
	Limit    int
	Offset   int
}

// TransactionReader defines read operations for ledger data
type TransactionReader interface {
	// FindTransactionByID retrieves a transaction header by ID.
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)

	// FindLinesByTransactionID retrieves the lines belonging to one transaction.
	FindLinesByTransactionID(ctx context.Context, transactionID string) ([]domain.TransactionLine, error)

	// FindLinesByTransactionIDs retrieves lines for a batch of transactions,
	// keyed by transaction ID.
	FindLinesByTransactionIDs(ctx context.Context, transactionIDs []string) (map[string][]domain.TransactionLine, error)

	// ListTransactions retrieves a page of transaction headers matching the
	// filter, newest first, along with the total match count.
	ListTransactions(ctx context.Context, filter ListTransactionsFilter) ([]domain.Transaction, int64, error)
}

// TransactionWriter defines write operations for ledger data
type TransactionWriter interface {
	// SaveTransaction persists a transaction and all of its lines as a single
	// atomic unit. No partial persistence is ever observable.
	SaveTransaction(ctx context.Context, txn domain.Transaction, lines []domain.TransactionLine) error

	// UpdateTransaction applies header changes guarded by an optimistic version
	// check: the row is updated only when its stored version matches
	// expectedVersion, otherwise apperrors.ErrConflict is returned.
	UpdateTransaction(ctx context.Context, txn domain.Transaction, expectedVersion int64) error

	// DeleteDraftTransaction removes a transaction and cascades to its lines,
	// but only while the stored status is still DRAFT. A non-draft row yields
	// apperrors.ErrConflict.
	DeleteDraftTransaction(ctx context.Context, transactionID string) error
}

// TransactionRepositoryFacade combines all ledger repository interfaces
type TransactionRepositoryFacade interface {
	TransactionReader
	TransactionWriter
}

// TransactionRepositoryWithTx extends the facade with transaction management
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TransactionManager
}
