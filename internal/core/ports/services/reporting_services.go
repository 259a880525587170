package services

import (
	"context"
	"time"

	"github.com/acctpro/accounting_pro_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// BalanceSvcFacade derives signed account balances from posted ledger lines.
type BalanceSvcFacade interface {
	// ComputeBalance sums the account's line debits and credits across
	// transactions in [from, to] with status in statuses (default
	// POSTED+APPROVED when statuses is empty) and orients the result by the
	// account's normal balance.
	ComputeBalance(ctx context.Context, accountID string, from, to time.Time, statuses []domain.TransactionStatus) (decimal.Decimal, error)
}

// ReportingSvcFacade composes balances into the financial statements.
type ReportingSvcFacade interface {
	// BalanceSheet partitions active-account balances over [rangeStart, asOf]
	// into assets, liabilities and equity, with category rollups, the
	// accounting-equation validation block and guarded ratios.
	BalanceSheet(ctx context.Context, rangeStart, asOf time.Time) (*domain.BalanceSheetReport, error)

	// IncomeStatement sums revenue and expense balances over the range and
	// derives net income, margins, category breakdowns and the detail list.
	IncomeStatement(ctx context.Context, from, to time.Time) (*domain.IncomeStatementReport, error)

	// TrialBalance lists every nonzero account balance re-expressed into debit
	// and credit columns and re-derives the closure check.
	TrialBalance(ctx context.Context, from, to time.Time) (*domain.TrialBalanceReport, error)
}

// AnalyticsSvcFacade computes trend series and period comparisons.
type AnalyticsSvcFacade interface {
	// Analytics iterates calendar months across [from, to], computing monthly
	// revenue/expense/profit totals, guarded growth rates, breakdowns and the
	// equal-length previous-period comparison.
	Analytics(ctx context.Context, from, to time.Time) (*domain.AnalyticsReport, error)
}
