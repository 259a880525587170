package repositories

import (
	"context"
	"time"

	"github.com/acctpro/accounting_pro_app/internal/core/domain"
)

// ReportingReader exposes the read-only aggregations the balance calculator
// and statement generator are built on. Implementations never mutate state.
type ReportingReader interface {
	// GetAccountActivity returns per-account debit/credit sums for all active
	// accounts with movement in the range, restricted to transactions whose
	// status is in statuses, ordered by account code.
	GetAccountActivity(ctx context.Context, from, to time.Time, statuses []domain.TransactionStatus) ([]domain.AccountActivity, error)

	// GetAccountActivityByID returns the raw debit/credit sums for a single
	// account over the range.
	GetAccountActivityByID(ctx context.Context, accountID string, from, to time.Time, statuses []domain.TransactionStatus) (domain.DebitCredit, error)

	// GetTypeTotals returns debit/credit sums grouped by account type over the
	// range. Used by the monthly analytics windows.
	GetTypeTotals(ctx context.Context, from, to time.Time, statuses []domain.TransactionStatus) (map[domain.AccountType]domain.DebitCredit, error)
}

// ReportingRepository adds snapshot support on top of the plain reader.
type ReportingRepository interface {
	ReportingReader

	// WithSnapshot runs fn against a reader bound to a single read-only
	// repeatable-read database transaction, so multi-query reports observe a
	// consistent view of the ledger while concurrent writes land.
	WithSnapshot(ctx context.Context, fn func(ReportingReader) error) error
}
