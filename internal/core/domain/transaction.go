package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionStatus indicates where a transaction sits in its lifecycle.
// The machine is linear and forward-only: DRAFT -> POSTED -> APPROVED.
type TransactionStatus string

const (
	Draft    TransactionStatus = "DRAFT"
	Posted   TransactionStatus = "POSTED"
	Approved TransactionStatus = "APPROVED"
)

// CanTransitionTo reports whether the status machine permits moving from s to next.
func (s TransactionStatus) CanTransitionTo(next TransactionStatus) bool {
	switch s {
	case Draft:
		return next == Posted || next == Approved
	case Posted:
		return next == Approved
	default:
		return false
	}
}

// IsMutable reports whether a transaction in this status may still be edited or deleted.
func (s TransactionStatus) IsMutable() bool {
	return s == Draft
}

// Transaction represents a single balanced financial event composed of line items.
type Transaction struct {
	TransactionID string            `json:"transactionID"` // Primary key (UUID)
	Date          time.Time         `json:"date"`          // Date the event occurred
	Reference     string            `json:"reference"`     // Unique, system-generated
	Description   string            `json:"description"`
	Status        TransactionStatus `json:"status"`
	CreatedBy     string            `json:"createdBy"`
	ApprovedBy    string            `json:"approvedBy,omitempty"` // Set only on transition into APPROVED
	Version       int64             `json:"version"`              // Optimistic concurrency counter for draft edits
	Lines         []TransactionLine `json:"lines,omitempty"`      // Often loaded separately
	AuditFields
}

// TotalDebit sums the debit side of all lines.
func (t *Transaction) TotalDebit() decimal.Decimal {
	total := decimal.Zero
	for _, line := range t.Lines {
		total = total.Add(line.Debit)
	}
	return total
}

// TotalCredit sums the credit side of all lines.
func (t *Transaction) TotalCredit() decimal.Decimal {
	total := decimal.Zero
	for _, line := range t.Lines {
		total = total.Add(line.Credit)
	}
	return total
}

// TransactionLine is a single debit or credit against one account, exclusively
// owned by its parent transaction. Exactly one of Debit/Credit is nonzero.
type TransactionLine struct {
	LineID        string          `json:"lineID"`        // Primary key (UUID)
	TransactionID string          `json:"transactionID"` // FK -> transactions, cascade-deleted with parent
	AccountID     string          `json:"accountID"`     // FK -> accounts, must be active at creation
	Description   string          `json:"description"`   // Defaults to parent description
	Debit         decimal.Decimal `json:"debit"`
	Credit        decimal.Decimal `json:"credit"`
	AuditFields
}
