package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus indicates the state of a transaction in its lifecycle.
type TransactionStatus string

const (
	Draft    TransactionStatus = "DRAFT"
	Posted   TransactionStatus = "POSTED"
	Approved TransactionStatus = "APPROVED"
)

// Transaction represents a single, balanced financial event composed of multiple lines.
type Transaction struct {
	TransactionID string            `db:"transaction_id"`
	Date          time.Time         `db:"date"`
	Reference     string            `db:"reference"`
	Description   string            `db:"description"`
	Status        TransactionStatus `db:"status"`
	CreatedByUser string            `db:"created_by_user"`
	ApprovedBy    string            `db:"approved_by"` // Nullable
	Version       int64             `db:"version"`
	AuditFields
}

// TransactionLine represents a single line item within a Transaction, affecting one account.
type TransactionLine struct {
	LineID        string          `db:"line_id"`
	TransactionID string          `db:"transaction_id"`
	AccountID     string          `db:"account_id"`
	Description   string          `db:"description"`
	Debit         decimal.Decimal `db:"debit"`
	Credit        decimal.Decimal `db:"credit"`
	AuditFields
}
