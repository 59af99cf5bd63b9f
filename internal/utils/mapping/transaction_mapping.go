package mapping

import (
	"github.com/branchbooks/branch_bookkeeping_app/internal/core/domain"
	"github.com/branchbooks/branch_bookkeeping_app/internal/models"
)

// ToModelTransaction converts a domain Transaction to a model Transaction.
func ToModelTransaction(d domain.Transaction) models.Transaction {
	return models.Transaction{
		TransactionID:   d.TransactionID,
		BranchID:        d.BranchID,
		Kind:            models.TransactionKind(d.Kind),
		TotalAmount:     d.TotalAmount,
		PaidAmount:      d.PaidAmount,
		Category:        d.Category,
		PaymentMethod:   d.PaymentMethod,
		TransactionDate: d.TransactionDate,
		Notes:           d.Notes,
		DebtID:          d.DebtID,
		InventoryItemID: d.InventoryItemID,
		DeletedAt:       d.DeletedAt,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTransaction converts a model Transaction to a domain Transaction.
func ToDomainTransaction(m models.Transaction) domain.Transaction {
	return domain.Transaction{
		TransactionID:   m.TransactionID,
		BranchID:        m.BranchID,
		Kind:            domain.TransactionKind(m.Kind),
		TotalAmount:     m.TotalAmount,
		PaidAmount:      m.PaidAmount,
		Category:        m.Category,
		PaymentMethod:   m.PaymentMethod,
		TransactionDate: m.TransactionDate,
		Notes:           m.Notes,
		DebtID:          m.DebtID,
		InventoryItemID: m.InventoryItemID,
		DeletedAt:       m.DeletedAt,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTransactionSlice converts a slice of model Transactions to domain Transactions.
func ToDomainTransactionSlice(ms []models.Transaction) []domain.Transaction {
	ds := make([]domain.Transaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainTransaction(m)
	}
	return ds
}
