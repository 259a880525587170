package pgsql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acctpro/accounting_pro_app/internal/core/domain"
	portsrepo "github.com/acctpro/accounting_pro_app/internal/core/ports/repositories"
)

// querier is satisfied by both *pgxpool.Pool and pgx.Tx, letting the same
// aggregation queries run directly or inside a snapshot transaction.
type querier interface {
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// reportingReader runs the aggregation queries against one querier.
type reportingReader struct {
	q querier
}

var _ portsrepo.ReportingReader = (*reportingReader)(nil)

// reportingRepository implements the ReportingRepository interface
type reportingRepository struct {
	BaseRepository
	reportingReader
}

// newReportingRepository creates a new reporting repository
func newReportingRepository(db *pgxpool.Pool) portsrepo.ReportingRepository {
	return &reportingRepository{
		BaseRepository:  BaseRepository{Pool: db},
		reportingReader: reportingReader{q: db},
	}
}

var _ portsrepo.ReportingRepository = (*reportingRepository)(nil)

// statusStrings converts domain statuses for use as a query parameter.
func statusStrings(statuses []domain.TransactionStatus) []string {
	out := make([]string, len(statuses))
	for i, status := range statuses {
		out[i] = string(status)
	}
	return out
}

// GetAccountActivity aggregates debit and credit totals per account over the
// window, restricted to transactions in the given statuses.
func (r *reportingReader) GetAccountActivity(ctx context.Context, from, to time.Time, statuses []domain.TransactionStatus) ([]domain.AccountActivity, error) {
	query := `
		SELECT
			a.account_id,
			a.code,
			a.name,
			a.account_type,
			a.normal_balance,
			a.category,
			COALESCE(SUM(l.debit), 0) AS total_debit,
			COALESCE(SUM(l.credit), 0) AS total_credit
		FROM transaction_lines l
		JOIN transactions t ON l.transaction_id = t.transaction_id
		JOIN accounts a ON l.account_id = a.account_id
		WHERE t.date >= $1
			AND t.date <= $2
			AND t.status = ANY($3)
			AND a.is_active = TRUE
		GROUP BY a.account_id, a.code, a.name, a.account_type, a.normal_balance, a.category
		ORDER BY a.code;
	`

	rows, err := r.q.Query(ctx, query, from, to, statusStrings(statuses))
	if err != nil {
		return nil, fmt.Errorf("error querying account activity: %w", err)
	}
	defer rows.Close()

	result := []domain.AccountActivity{}
	for rows.Next() {
		var row domain.AccountActivity
		var accountType, normalBalance, category string

		if err := rows.Scan(
			&row.AccountID,
			&row.Code,
			&row.Name,
			&accountType,
			&normalBalance,
			&category,
			&row.Debit,
			&row.Credit,
		); err != nil {
			return nil, fmt.Errorf("error scanning account activity row: %w", err)
		}

		row.AccountType = domain.AccountType(accountType)
		row.NormalBalance = domain.NormalBalance(normalBalance)
		row.Category = domain.AccountCategory(category)
		result = append(result, row)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating account activity rows: %w", err)
	}

	return result, nil
}

// GetAccountActivityByID aggregates debit and credit totals for one account.
// An account with no matching lines yields zero totals.
func (r *reportingReader) GetAccountActivityByID(ctx context.Context, accountID string, from, to time.Time, statuses []domain.TransactionStatus) (domain.DebitCredit, error) {
	query := `
		SELECT
			COALESCE(SUM(l.debit), 0) AS total_debit,
			COALESCE(SUM(l.credit), 0) AS total_credit
		FROM transaction_lines l
		JOIN transactions t ON l.transaction_id = t.transaction_id
		WHERE l.account_id = $1
			AND t.date >= $2
			AND t.date <= $3
			AND t.status = ANY($4);
	`

	var totals domain.DebitCredit
	err := r.q.QueryRow(ctx, query, accountID, from, to, statusStrings(statuses)).Scan(&totals.Debit, &totals.Credit)
	if err != nil {
		return domain.DebitCredit{}, fmt.Errorf("error querying account activity for %s: %w", accountID, err)
	}
	return totals, nil
}

// GetTypeTotals aggregates debit and credit totals per account type over the
// window.
func (r *reportingReader) GetTypeTotals(ctx context.Context, from, to time.Time, statuses []domain.TransactionStatus) (map[domain.AccountType]domain.DebitCredit, error) {
	query := `
		SELECT
			a.account_type,
			COALESCE(SUM(l.debit), 0) AS total_debit,
			COALESCE(SUM(l.credit), 0) AS total_credit
		FROM transaction_lines l
		JOIN transactions t ON l.transaction_id = t.transaction_id
		JOIN accounts a ON l.account_id = a.account_id
		WHERE t.date >= $1
			AND t.date <= $2
			AND t.status = ANY($3)
			AND a.is_active = TRUE
		GROUP BY a.account_type;
	`

	rows, err := r.q.Query(ctx, query, from, to, statusStrings(statuses))
	if err != nil {
		return nil, fmt.Errorf("error querying type totals: %w", err)
	}
	defer rows.Close()

	result := make(map[domain.AccountType]domain.DebitCredit)
	for rows.Next() {
		var accountType string
		var totals domain.DebitCredit
		if err := rows.Scan(&accountType, &totals.Debit, &totals.Credit); err != nil {
			return nil, fmt.Errorf("error scanning type totals row: %w", err)
		}
		result[domain.AccountType(accountType)] = totals
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating type totals rows: %w", err)
	}

	return result, nil
}

// WithSnapshot runs fn against a repeatable-read, read-only transaction so
// every query inside one report observes the same committed state.
func (r *reportingRepository) WithSnapshot(ctx context.Context, fn func(portsrepo.ReportingReader) error) error {
	tx, err := r.Pool.BeginTx(ctx, pgx.TxOptions{
		IsoLevel:   pgx.RepeatableRead,
		AccessMode: pgx.ReadOnly,
	})
	if err != nil {
		return fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	if err := fn(&reportingReader{q: tx}); err != nil {
		return err
	}

	return r.Commit(ctx, tx)
}
