package dto

import (
	"time"

	"github.com/acctpro/accounting_pro_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateTransactionLineRequest is one line of a new transaction. Exactly one
// of Debit/Credit must be nonzero; that invariant is enforced by the service.
type CreateTransactionLineRequest struct {
	AccountID   string          `json:"accountID" binding:"required"`
	Description string          `json:"description,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// CreateTransactionRequest defines the JSON body for recording a transaction.
type CreateTransactionRequest struct {
	Date        time.Time                      `json:"date" binding:"required"`
	Description string                         `json:"description" binding:"required"`
	Status      *domain.TransactionStatus      `json:"status,omitempty" binding:"omitempty,oneof=DRAFT POSTED"`
	Lines       []CreateTransactionLineRequest `json:"lines" binding:"required,min=2,dive"`
}

// UpdateTransactionRequest defines the JSON body for editing a draft
// transaction. Version must match the stored row or the write is rejected.
type UpdateTransactionRequest struct {
	Description *string                   `json:"description,omitempty"`
	Status      *domain.TransactionStatus `json:"status,omitempty" binding:"omitempty,oneof=POSTED"`
	Version     int64                     `json:"version" binding:"required"`
}

// ListTransactionsParams holds pagination and filters for listing.
type ListTransactionsParams struct {
	Status   *domain.TransactionStatus
	DateFrom *time.Time
	DateTo   *time.Time
	Page     int
	Limit    int
}

// TransactionLineResponse is a line enriched with account identification.
type TransactionLineResponse struct {
	LineID      string          `json:"lineID"`
	AccountID   string          `json:"accountID"`
	AccountCode string          `json:"accountCode,omitempty"`
	AccountName string          `json:"accountName,omitempty"`
	Description string          `json:"description,omitempty"`
	Debit       decimal.Decimal `json:"debit"`
	Credit      decimal.Decimal `json:"credit"`
}

// TransactionResponse defines the data returned for a transaction, including
// its lines and the computed debit/credit totals.
type TransactionResponse struct {
	TransactionID string                    `json:"transactionID"`
	Date          time.Time                 `json:"date"`
	Reference     string                    `json:"reference"`
	Description   string                    `json:"description"`
	Status        domain.TransactionStatus  `json:"status"`
	CreatedBy     string                    `json:"createdBy"`
	ApprovedBy    string                    `json:"approvedBy,omitempty"`
	Version       int64                     `json:"version"`
	Lines         []TransactionLineResponse `json:"lines"`
	TotalDebit    decimal.Decimal           `json:"totalDebit"`
	TotalCredit   decimal.Decimal           `json:"totalCredit"`
	CreatedAt     time.Time                 `json:"createdAt"`
	LastUpdatedAt time.Time                 `json:"lastUpdatedAt"`
}

// Pagination describes a page of results.
type Pagination struct {
	Page  int   `json:"page"`
	Limit int   `json:"limit"`
	Total int64 `json:"total"`
	Pages int64 `json:"pages"`
}

// ListTransactionsResponse is the paginated listing payload.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	Pagination   Pagination            `json:"pagination"`
}

// ToTransactionResponse converts a domain transaction and its lines, resolving
// account codes and names from the supplied lookup (may be nil).
func ToTransactionResponse(txn *domain.Transaction, accounts map[string]domain.Account) TransactionResponse {
	lines := make([]TransactionLineResponse, len(txn.Lines))
	totalDebit := decimal.Zero
	totalCredit := decimal.Zero
	for i, line := range txn.Lines {
		lr := TransactionLineResponse{
			LineID:      line.LineID,
			AccountID:   line.AccountID,
			Description: line.Description,
			Debit:       line.Debit,
			Credit:      line.Credit,
		}
		if acc, ok := accounts[line.AccountID]; ok {
			lr.AccountCode = acc.Code
			lr.AccountName = acc.Name
		}
		lines[i] = lr
		totalDebit = totalDebit.Add(line.Debit)
		totalCredit = totalCredit.Add(line.Credit)
	}
	return TransactionResponse{
		TransactionID: txn.TransactionID,
		Date:          txn.Date,
		Reference:     txn.Reference,
		Description:   txn.Description,
		Status:        txn.Status,
		CreatedBy:     txn.CreatedBy,
		ApprovedBy:    txn.ApprovedBy,
		Version:       txn.Version,
		Lines:         lines,
		TotalDebit:    totalDebit,
		TotalCredit:   totalCredit,
		CreatedAt:     txn.CreatedAt,
		LastUpdatedAt: txn.LastUpdatedAt,
	}
}
