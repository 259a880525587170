package services

import (
	"context"

	"github.com/acctpro/accounting_pro_app/internal/core/domain"
	"github.com/acctpro/accounting_pro_app/internal/dto"
)

// LedgerSvcFacade exposes the double-entry ledger write path and lookups.
type LedgerSvcFacade interface {
	// CreateTransaction validates and persists a balanced transaction with all
	// of its lines as a single atomic unit, assigning a generated reference.
	CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, actor domain.Actor) (*domain.Transaction, error)

	// GetTransaction retrieves a transaction with its lines and computed totals.
	GetTransaction(ctx context.Context, transactionID string) (*dto.TransactionResponse, error)

	// ListTransactions retrieves a paginated listing with embedded lines.
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error)

	// UpdateTransaction edits a draft transaction (description, or the
	// transition to POSTED), guarded by the request's expected version.
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, actor domain.Actor) (*domain.Transaction, error)

	// ApproveTransaction moves a transaction into its terminal APPROVED state.
	// Restricted to the elevated role tier.
	ApproveTransaction(ctx context.Context, transactionID string, actor domain.Actor) (*domain.Transaction, error)

	// DeleteTransaction removes a draft transaction and its lines.
	DeleteTransaction(ctx context.Context, transactionID string, actor domain.Actor) error
}
