package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/acctpro/accounting_pro_app/internal/apperrors"
	"github.com/acctpro/accounting_pro_app/internal/core/domain"
	portsrepo "github.com/acctpro/accounting_pro_app/internal/core/ports/repositories"
	portssvc "github.com/acctpro/accounting_pro_app/internal/core/ports/services"
	"github.com/acctpro/accounting_pro_app/internal/dto"
	"github.com/acctpro/accounting_pro_app/internal/utils/accounting"
)

const defaultListLimit = 20

// ledgerService provides the double-entry ledger operations.
type ledgerService struct {
	BaseService
	txnRepo     portsrepo.TransactionRepositoryFacade
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewLedgerService creates a new ledger service.
func NewLedgerService(txnRepo portsrepo.TransactionRepositoryFacade, accountRepo portsrepo.AccountRepositoryFacade) portssvc.LedgerSvcFacade {
	return &ledgerService{txnRepo: txnRepo, accountRepo: accountRepo}
}

var _ portssvc.LedgerSvcFacade = (*ledgerService)(nil)

// newReference generates a unique transaction reference, e.g. TXN-2024-9F2C41AB.
func newReference(date time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:8])
	return fmt.Sprintf("TXN-%d-%s", date.Year(), suffix)
}

// CreateTransaction validates and persists a balanced transaction.
//
// Validation happens in a fixed order before any mutation is attempted:
// referenced accounts exist and are active, each line carries exactly one
// nonzero amount, and total debits equal total credits within tolerance.
// On any failure the operation aborts with zero persisted side effects.
func (s *ledgerService) CreateTransaction(ctx context.Context, req dto.CreateTransactionRequest, actor domain.Actor) (*domain.Transaction, error) {
	if !actor.Role.CanWrite() {
		return nil, fmt.Errorf("%w: role %s cannot create transactions", apperrors.ErrForbidden, actor.Role)
	}

	if len(req.Lines) < 2 {
		return nil, fmt.Errorf("%w: transaction must have at least two lines", apperrors.ErrValidation)
	}

	status := domain.Draft
	if req.Status != nil {
		if *req.Status != domain.Draft && *req.Status != domain.Posted {
			return nil, fmt.Errorf("%w: initial status must be DRAFT or POSTED", apperrors.ErrValidation)
		}
		status = *req.Status
	}

	// (a) all referenced accounts exist and are active
	accountIDs := make([]string, 0, len(req.Lines))
	for _, line := range req.Lines {
		accountIDs = append(accountIDs, line.AccountID)
	}
	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, uniqueStrings(accountIDs))
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for transaction creation")
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	var offending []string
	for _, id := range uniqueStrings(accountIDs) {
		acc, found := accountsMap[id]
		if !found || !acc.IsActive {
			offending = append(offending, id)
		}
	}
	if len(offending) > 0 {
		return nil, fmt.Errorf("%w: accounts invalid or inactive: %s", apperrors.ErrValidation, strings.Join(offending, ", "))
	}

	now := time.Now().UTC()
	transactionID := uuid.NewString()

	// (b) each line has exactly one nonzero amount
	lines := make([]domain.TransactionLine, len(req.Lines))
	for i, lineReq := range req.Lines {
		if err := accounting.ValidateLineAmounts(lineReq.Debit, lineReq.Credit); err != nil {
			return nil, fmt.Errorf("%w: line %d (account %s): %v", apperrors.ErrValidation, i+1, lineReq.AccountID, err)
		}
		description := lineReq.Description
		if description == "" {
			description = req.Description
		}
		lines[i] = domain.TransactionLine{
			LineID:        uuid.NewString(),
			TransactionID: transactionID,
			AccountID:     lineReq.AccountID,
			Description:   description,
			Debit:         lineReq.Debit,
			Credit:        lineReq.Credit,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     actor.UserID,
				LastUpdatedAt: now,
				LastUpdatedBy: actor.UserID,
			},
		}
	}

	// (c) double-entry balance check
	if imbalance, err := accounting.ValidateTransactionBalance(lines); err != nil {
		return nil, fmt.Errorf("%w: transaction does not balance, imbalance of %s: %v", apperrors.ErrValidation, imbalance.Abs().String(), err)
	}

	txn := domain.Transaction{
		TransactionID: transactionID,
		Date:          req.Date,
		Reference:     newReference(req.Date),
		Description:   req.Description,
		Status:        status,
		CreatedBy:     actor.UserID,
		Version:       1,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     actor.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: actor.UserID,
		},
	}

	if err := s.txnRepo.SaveTransaction(ctx, txn, lines); err != nil {
		s.LogError(ctx, err, "Failed to save transaction", "transaction_id", transactionID)
		return nil, fmt.Errorf("failed to save transaction: %w", err)
	}

	s.LogInfo(ctx, "Transaction created", "transaction_id", transactionID, "reference", txn.Reference, "status", string(status))
	txn.Lines = lines
	return &txn, nil
}

// GetTransaction retrieves a transaction with its lines and computed totals.
func (s *ledgerService) GetTransaction(ctx context.Context, transactionID string) (*dto.TransactionResponse, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find transaction", "transaction_id", transactionID)
		}
		return nil, err
	}

	lines, err := s.txnRepo.FindLinesByTransactionID(ctx, transactionID)
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch transaction lines", "transaction_id", transactionID)
		return nil, fmt.Errorf("failed to retrieve lines for transaction %s: %w", transactionID, apperrors.ErrInternal)
	}
	txn.Lines = lines

	accountsMap, err := s.lookupLineAccounts(ctx, lines)
	if err != nil {
		return nil, err
	}

	resp := dto.ToTransactionResponse(txn, accountsMap)
	return &resp, nil
}

// ListTransactions retrieves a paginated listing with embedded lines.
func (s *ledgerService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams) (*dto.ListTransactionsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	page := params.Page
	if page <= 0 {
		page = 1
	}

	txns, total, err := s.txnRepo.ListTransactions(ctx, portsrepo.ListTransactionsFilter{
		Status:   params.Status,
		DateFrom: params.DateFrom,
		DateTo:   params.DateTo,
		Limit:    limit,
		Offset:   (page - 1) * limit,
	})
	if err != nil {
		s.LogError(ctx, err, "Failed to list transactions")
		return nil, fmt.Errorf("failed to retrieve transactions: %w", err)
	}

	var linesMap map[string][]domain.TransactionLine
	if len(txns) > 0 {
		ids := make([]string, len(txns))
		for i, txn := range txns {
			ids[i] = txn.TransactionID
		}
		linesMap, err = s.txnRepo.FindLinesByTransactionIDs(ctx, ids)
		if err != nil {
			s.LogError(ctx, err, "Failed to fetch lines for transaction listing")
			return nil, fmt.Errorf("failed to retrieve transaction lines: %w", err)
		}
	}

	var allLines []domain.TransactionLine
	for _, lines := range linesMap {
		allLines = append(allLines, lines...)
	}
	accountsMap, err := s.lookupLineAccounts(ctx, allLines)
	if err != nil {
		return nil, err
	}

	responses := make([]dto.TransactionResponse, len(txns))
	for i := range txns {
		txns[i].Lines = linesMap[txns[i].TransactionID]
		responses[i] = dto.ToTransactionResponse(&txns[i], accountsMap)
	}

	pages := total / int64(limit)
	if total%int64(limit) != 0 {
		pages++
	}

	return &dto.ListTransactionsResponse{
		Transactions: responses,
		Pagination: dto.Pagination{
			Page:  page,
			Limit: limit,
			Total: total,
			Pages: pages,
		},
	}, nil
}

// UpdateTransaction edits a draft transaction. Only the description and the
// transition to POSTED are allowed; any mutation of a non-draft transaction
// is a conflict, and a stale version is rejected without overwriting.
func (s *ledgerService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, actor domain.Actor) (*domain.Transaction, error) {
	if !actor.Role.CanWrite() {
		return nil, fmt.Errorf("%w: role %s cannot update transactions", apperrors.ErrForbidden, actor.Role)
	}

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if !txn.Status.IsMutable() {
		return nil, fmt.Errorf("%w: transaction %s is %s and can no longer be edited", apperrors.ErrConflict, transactionID, txn.Status)
	}

	updated := false
	if req.Description != nil {
		txn.Description = *req.Description
		updated = true
	}
	if req.Status != nil {
		if !txn.Status.CanTransitionTo(*req.Status) || *req.Status != domain.Posted {
			return nil, fmt.Errorf("%w: cannot transition from %s to %s", apperrors.ErrConflict, txn.Status, *req.Status)
		}
		txn.Status = *req.Status
		updated = true
	}

	if !updated {
		return txn, nil
	}

	txn.LastUpdatedAt = time.Now().UTC()
	txn.LastUpdatedBy = actor.UserID

	if err := s.txnRepo.UpdateTransaction(ctx, *txn, req.Version); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: transaction %s was modified concurrently (expected version %d)", apperrors.ErrConflict, transactionID, req.Version)
		}
		s.LogError(ctx, err, "Failed to update transaction", "transaction_id", transactionID)
		return nil, fmt.Errorf("failed to update transaction: %w", err)
	}
	txn.Version = req.Version + 1

	s.LogInfo(ctx, "Transaction updated", "transaction_id", transactionID, "status", string(txn.Status))
	return txn, nil
}

// ApproveTransaction moves a transaction into its terminal APPROVED state.
func (s *ledgerService) ApproveTransaction(ctx context.Context, transactionID string, actor domain.Actor) (*domain.Transaction, error) {
	if !actor.Role.CanApprove() {
		return nil, fmt.Errorf("%w: role %s cannot approve transactions", apperrors.ErrForbidden, actor.Role)
	}

	txn, err := s.txnRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}

	if !txn.Status.CanTransitionTo(domain.Approved) {
		return nil, fmt.Errorf("%w: transaction %s is already %s", apperrors.ErrConflict, transactionID, txn.Status)
	}

	expectedVersion := txn.Version
	txn.Status = domain.Approved
	txn.ApprovedBy = actor.UserID
	txn.LastUpdatedAt = time.Now().UTC()
	txn.LastUpdatedBy = actor.UserID

	if err := s.txnRepo.UpdateTransaction(ctx, *txn, expectedVersion); err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return nil, fmt.Errorf("%w: transaction %s was modified concurrently", apperrors.ErrConflict, transactionID)
		}
		s.LogError(ctx, err, "Failed to approve transaction", "transaction_id", transactionID)
		return nil, fmt.Errorf("failed to approve transaction: %w", err)
	}
	txn.Version = expectedVersion + 1

	s.LogInfo(ctx, "Transaction approved", "transaction_id", transactionID, "approved_by", actor.UserID)
	return txn, nil
}

// DeleteTransaction removes a draft transaction; the repository guards the
// status atomically so a concurrent post cannot slip past the check.
func (s *ledgerService) DeleteTransaction(ctx context.Context, transactionID string, actor domain.Actor) error {
	if !actor.Role.CanWrite() {
		return fmt.Errorf("%w: role %s cannot delete transactions", apperrors.ErrForbidden, actor.Role)
	}

	err := s.txnRepo.DeleteDraftTransaction(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrConflict) {
			return fmt.Errorf("%w: only draft transactions can be deleted", apperrors.ErrConflict)
		}
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete transaction", "transaction_id", transactionID)
		}
		return err
	}

	s.LogInfo(ctx, "Transaction deleted", "transaction_id", transactionID)
	return nil
}

// lookupLineAccounts fetches the accounts referenced by a set of lines for
// response enrichment.
func (s *ledgerService) lookupLineAccounts(ctx context.Context, lines []domain.TransactionLine) (map[string]domain.Account, error) {
	if len(lines) == 0 {
		return nil, nil
	}
	ids := make([]string, 0, len(lines))
	for _, line := range lines {
		ids = append(ids, line.AccountID)
	}
	accountsMap, err := s.accountRepo.FindAccountsByIDs(ctx, uniqueStrings(ids))
	if err != nil {
		s.LogError(ctx, err, "Failed to fetch accounts for line enrichment")
		return nil, fmt.Errorf("failed to fetch accounts: %w", err)
	}
	return accountsMap, nil
}

// uniqueStrings returns a slice containing only the unique strings from the input.
func uniqueStrings(input []string) []string {
	seen := make(map[string]struct{}, len(input))
	result := make([]string, 0, len(input))
	for _, str := range input {
		if _, ok := seen[str]; !ok {
			seen[str] = struct{}{}
			result = append(result, str)
		}
	}
	return result
}
