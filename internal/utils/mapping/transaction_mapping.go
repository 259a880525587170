package mapping

import (
	"github.com/acctpro/accounting_pro_app/internal/core/domain"
	"github.com/acctpro/accounting_pro_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID: d.TransactionID,
		Date:          d.Date,
		Reference:     d.Reference,
		Description:   d.Description,
		Status:        models.TransactionStatus(d.Status),
		CreatedByUser: d.CreatedBy,
		ApprovedBy:    d.ApprovedBy,
		Version:       d.Version,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID: m.TransactionID,
		Date:          m.Date,
		Reference:     m.Reference,
		Description:   m.Description,
		Status:        domain.TransactionStatus(m.Status),
		CreatedBy:     m.CreatedByUser,
		ApprovedBy:    m.ApprovedBy,
		Version:       m.Version,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelTransactionLine converts a domain TransactionLine to a model TransactionLine
func ToModelTransactionLine(d domain.TransactionLine) models.TransactionLine {
	return models.TransactionLine{
		LineID:        d.LineID,
		TransactionID: d.TransactionID,
		AccountID:     d.AccountID,
		Description:   d.Description,
		Debit:         d.Debit,
		Credit:        d.Credit,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransactionLine converts a model TransactionLine to a domain TransactionLine
func ToDomainTransactionLine(m models.TransactionLine) domain.TransactionLine {
	return domain.TransactionLine{
		LineID:        m.LineID,
		TransactionID: m.TransactionID,
		AccountID:     m.AccountID,
		Description:   m.Description,
		Debit:         m.Debit,
		Credit:        m.Credit,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}
