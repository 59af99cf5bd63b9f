package mapping

import (
	"github.com/branchbooks/branch_bookkeeping_app/internal/core/domain"
	"github.com/branchbooks/branch_bookkeeping_app/internal/models"
)

// ToModelDebt converts a domain Debt to a model Debt.
func ToModelDebt(d domain.Debt) models.Debt {
	return models.Debt{
		DebtID:          d.DebtID,
		BranchID:        d.BranchID,
		CreditorName:    d.CreditorName,
		OriginalAmount:  d.OriginalAmount,
		RemainingAmount: d.RemainingAmount,
		IssueDate:       d.IssueDate,
		DueDate:         d.DueDate,
		Status:          models.DebtStatus(d.Status),
		Notes:           d.Notes,
		AuditFields:     ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDebt converts a model Debt to a domain Debt.
func ToDomainDebt(m models.Debt) domain.Debt {
	return domain.Debt{
		DebtID:          m.DebtID,
		BranchID:        m.BranchID,
		CreditorName:    m.CreditorName,
		OriginalAmount:  m.OriginalAmount,
		RemainingAmount: m.RemainingAmount,
		IssueDate:       m.IssueDate,
		DueDate:         m.DueDate,
		Status:          domain.DebtStatus(m.Status),
		Notes:           m.Notes,
		AuditFields:     ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainDebtSlice converts a slice of model Debts to domain Debts.
func ToDomainDebtSlice(ms []models.Debt) []domain.Debt {
	ds := make([]domain.Debt, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainDebt(m)
	}
	return ds
}

// ToModelDebtPayment converts a domain DebtPayment to its model.
func ToModelDebtPayment(d domain.DebtPayment) models.DebtPayment {
	return models.DebtPayment{
		PaymentID:   d.PaymentID,
		DebtID:      d.DebtID,
		BranchID:    d.BranchID,
		Amount:      d.Amount,
		PaidAt:      d.PaidAt,
		Notes:       d.Notes,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainDebtPayment converts a model DebtPayment to its domain form.
func ToDomainDebtPayment(m models.DebtPayment) domain.DebtPayment {
	return domain.DebtPayment{
		PaymentID:   m.PaymentID,
		DebtID:      m.DebtID,
		BranchID:    m.BranchID,
		Amount:      m.Amount,
		PaidAt:      m.PaidAt,
		Notes:       m.Notes,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
