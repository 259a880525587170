package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/acctpro/accounting_pro_app/internal/apperrors"
	"github.com/acctpro/accounting_pro_app/internal/core/domain"
	portsrepo "github.com/acctpro/accounting_pro_app/internal/core/ports/repositories"
	"github.com/acctpro/accounting_pro_app/internal/models"
	"github.com/acctpro/accounting_pro_app/internal/utils/mapping"
)

const transactionColumns = `transaction_id, date, reference, description, status, created_by_user, approved_by, version, created_at, created_by, last_updated_at, last_updated_by`

const lineColumns = `line_id, transaction_id, account_id, description, debit, credit, created_at, created_by, last_updated_at, last_updated_by`

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for ledger data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{BaseRepository: BaseRepository{Pool: pool}}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryWithTx
var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

// scanTransaction scans one transaction header row into a domain transaction.
func scanTransaction(row pgx.Row) (domain.Transaction, error) {
	var modelTxn models.Transaction
	var approvedBy sql.NullString
	err := row.Scan(
		&modelTxn.TransactionID,
		&modelTxn.Date,
		&modelTxn.Reference,
		&modelTxn.Description,
		&modelTxn.Status,
		&modelTxn.CreatedByUser,
		&approvedBy,
		&modelTxn.Version,
		&modelTxn.CreatedAt,
		&modelTxn.CreatedBy,
		&modelTxn.LastUpdatedAt,
		&modelTxn.LastUpdatedBy,
	)
	if err != nil {
		return domain.Transaction{}, err
	}
	if approvedBy.Valid {
		modelTxn.ApprovedBy = approvedBy.String
	}
	return mapping.ToDomainTransaction(modelTxn), nil
}

// scanLine scans one line row into a domain transaction line.
func scanLine(row pgx.Row) (domain.TransactionLine, error) {
	var modelLine models.TransactionLine
	err := row.Scan(
		&modelLine.LineID,
		&modelLine.TransactionID,
		&modelLine.AccountID,
		&modelLine.Description,
		&modelLine.Debit,
		&modelLine.Credit,
		&modelLine.CreatedAt,
		&modelLine.CreatedBy,
		&modelLine.LastUpdatedAt,
		&modelLine.LastUpdatedBy,
	)
	if err != nil {
		return domain.TransactionLine{}, err
	}
	return mapping.ToDomainTransactionLine(modelLine), nil
}

// SaveTransaction persists the header and all lines in one database
// transaction. A failure on any statement rolls back the whole unit.
func (r *PgxTransactionRepository) SaveTransaction(ctx context.Context, txn domain.Transaction, lines []domain.TransactionLine) error {
	tx, err := r.Begin(ctx)
	if err != nil {
		return err
	}
	defer r.Rollback(ctx, tx) // Will be ignored if transaction is committed successfully

	modelTxn := mapping.ToModelTransaction(txn)
	var approvedBy sql.NullString
	if modelTxn.ApprovedBy != "" {
		approvedBy = sql.NullString{String: modelTxn.ApprovedBy, Valid: true}
	}

	headerQuery := `
		INSERT INTO transactions (` + transactionColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12);
	`
	_, err = tx.Exec(ctx, headerQuery,
		modelTxn.TransactionID,
		modelTxn.Date,
		modelTxn.Reference,
		modelTxn.Description,
		modelTxn.Status,
		modelTxn.CreatedByUser,
		approvedBy,
		modelTxn.Version,
		modelTxn.CreatedAt,
		modelTxn.CreatedBy,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" { // Unique violation
			return fmt.Errorf("%w: transaction reference %s already exists", apperrors.ErrDuplicate, modelTxn.Reference)
		}
		return fmt.Errorf("failed to insert transaction %s: %w", modelTxn.TransactionID, err)
	}

	lineQuery := `
		INSERT INTO transaction_lines (` + lineColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	batch := &pgx.Batch{}
	for _, line := range lines {
		modelLine := mapping.ToModelTransactionLine(line)
		batch.Queue(lineQuery,
			modelLine.LineID,
			modelLine.TransactionID,
			modelLine.AccountID,
			modelLine.Description,
			modelLine.Debit,
			modelLine.Credit,
			modelLine.CreatedAt,
			modelLine.CreatedBy,
			modelLine.LastUpdatedAt,
			modelLine.LastUpdatedBy,
		)
	}

	br := tx.SendBatch(ctx, batch)
	for i := 0; i < batch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			br.Close()
			return fmt.Errorf("failed to insert line %d for transaction %s: %w", i+1, modelTxn.TransactionID, err)
		}
	}
	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close line insert batch: %w", err)
	}

	return r.Commit(ctx, tx)
}

// FindTransactionByID retrieves a transaction header by ID.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions WHERE transaction_id = $1;`

	domainTxn, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transaction by ID %s: %w", transactionID, err)
	}
	return &domainTxn, nil
}

// FindLinesByTransactionID retrieves the lines of one transaction.
func (r *PgxTransactionRepository) FindLinesByTransactionID(ctx context.Context, transactionID string) ([]domain.TransactionLine, error) {
	query := `SELECT ` + lineColumns + ` FROM transaction_lines WHERE transaction_id = $1 ORDER BY line_id;`

	rows, err := r.Pool.Query(ctx, query, transactionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines for transaction %s: %w", transactionID, err)
	}
	defer rows.Close()

	lines := []domain.TransactionLine{}
	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line row for transaction %s: %w", transactionID, err)
		}
		lines = append(lines, line)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating line rows for transaction %s: %w", transactionID, rows.Err())
	}
	return lines, nil
}

// FindLinesByTransactionIDs retrieves lines for a batch of transactions.
func (r *PgxTransactionRepository) FindLinesByTransactionIDs(ctx context.Context, transactionIDs []string) (map[string][]domain.TransactionLine, error) {
	if len(transactionIDs) == 0 {
		return map[string][]domain.TransactionLine{}, nil
	}

	query := `SELECT ` + lineColumns + ` FROM transaction_lines WHERE transaction_id = ANY($1) ORDER BY transaction_id, line_id;`

	rows, err := r.Pool.Query(ctx, query, transactionIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to query lines by transaction IDs: %w", err)
	}
	defer rows.Close()

	linesMap := make(map[string][]domain.TransactionLine)
	for rows.Next() {
		line, err := scanLine(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan line row during batch fetch: %w", err)
		}
		linesMap[line.TransactionID] = append(linesMap[line.TransactionID], line)
	}
	if rows.Err() != nil {
		return nil, fmt.Errorf("error iterating line rows during batch fetch: %w", rows.Err())
	}
	return linesMap, nil
}

// ListTransactions retrieves a page of headers matching the filter, newest
// first, along with the total match count.
func (r *PgxTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.ListTransactionsFilter) ([]domain.Transaction, int64, error) {
	where := " WHERE 1=1"
	args := []any{}
	argPos := 1

	if filter.Status != nil {
		where += fmt.Sprintf(" AND status = $%d", argPos)
		args = append(args, string(*filter.Status))
		argPos++
	}
	if filter.DateFrom != nil {
		where += fmt.Sprintf(" AND date >= $%d", argPos)
		args = append(args, *filter.DateFrom)
		argPos++
	}
	if filter.DateTo != nil {
		where += fmt.Sprintf(" AND date <= $%d", argPos)
		args = append(args, *filter.DateTo)
		argPos++
	}

	var total int64
	countQuery := `SELECT COUNT(*) FROM transactions` + where + `;`
	if err := r.Pool.QueryRow(ctx, countQuery, args...).Scan(&total); err != nil {
		return nil, 0, fmt.Errorf("failed to count transactions: %w", err)
	}

	query := `SELECT ` + transactionColumns + ` FROM transactions` + where +
		fmt.Sprintf(" ORDER BY date DESC, created_at DESC LIMIT $%d OFFSET $%d;", argPos, argPos+1)
	args = append(args, filter.Limit, filter.Offset)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txns := []domain.Transaction{}
	for rows.Next() {
		domainTxn, err := scanTransaction(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan transaction row: %w", err)
		}
		txns = append(txns, domainTxn)
	}
	if rows.Err() != nil {
		return nil, 0, fmt.Errorf("error iterating transaction rows: %w", rows.Err())
	}

	return txns, total, nil
}

// UpdateTransaction applies header changes guarded by the version column.
// The version match and increment happen in the same statement, so a stale
// writer can never overwrite a newer row.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction, expectedVersion int64) error {
	modelTxn := mapping.ToModelTransaction(txn)
	var approvedBy sql.NullString
	if modelTxn.ApprovedBy != "" {
		approvedBy = sql.NullString{String: modelTxn.ApprovedBy, Valid: true}
	}

	query := `
		UPDATE transactions
		SET description = $2, status = $3, approved_by = $4, version = version + 1, last_updated_at = $5, last_updated_by = $6
		WHERE transaction_id = $1 AND version = $7;
	`

	cmdTag, err := r.Pool.Exec(ctx, query,
		modelTxn.TransactionID,
		modelTxn.Description,
		modelTxn.Status,
		approvedBy,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
		expectedVersion,
	)
	if err != nil {
		return fmt.Errorf("failed to execute update transaction %s: %w", modelTxn.TransactionID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		// Either the row is gone or another writer bumped the version first.
		if _, findErr := r.FindTransactionByID(ctx, modelTxn.TransactionID); errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check transaction after update attempt for %s: %w", modelTxn.TransactionID, findErr)
		}
		return fmt.Errorf("%w: transaction %s version mismatch", apperrors.ErrConflict, modelTxn.TransactionID)
	}

	return nil
}

// DeleteDraftTransaction removes a draft transaction; lines cascade. The
// status guard is part of the delete statement itself.
func (r *PgxTransactionRepository) DeleteDraftTransaction(ctx context.Context, transactionID string) error {
	query := `DELETE FROM transactions WHERE transaction_id = $1 AND status = $2;`

	cmdTag, err := r.Pool.Exec(ctx, query, transactionID, string(models.Draft))
	if err != nil {
		return fmt.Errorf("failed to delete transaction %s: %w", transactionID, err)
	}

	if cmdTag.RowsAffected() == 0 {
		if _, findErr := r.FindTransactionByID(ctx, transactionID); errors.Is(findErr, apperrors.ErrNotFound) {
			return apperrors.ErrNotFound
		} else if findErr != nil {
			return fmt.Errorf("failed to check transaction after delete attempt for %s: %w", transactionID, findErr)
		}
		return fmt.Errorf("%w: transaction %s is not a draft", apperrors.ErrConflict, transactionID)
	}

	return nil
}
