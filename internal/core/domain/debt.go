package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtStatus is derived purely from the remaining amount, never stored
// independently of it.
type DebtStatus string

const (
	DebtActive  DebtStatus = "ACTIVE"
	DebtPartial DebtStatus = "PARTIAL"
	DebtPaid    DebtStatus = "PAID"
)

// DebtStatusFor computes the status implied by the remaining and original amounts.
func DebtStatusFor(remaining, original decimal.Decimal) DebtStatus {
	switch {
	case remaining.IsZero():
		return DebtPaid
	case remaining.LessThan(original):
		return DebtPartial
	default:
		return DebtActive
	}
}

// Debt represents an unpaid remainder owed to a creditor, created when a
// transaction was only partially paid.
type Debt struct {
	DebtID          string          `json:"debtID"` // Primary Key (UUID)
	BranchID        string          `json:"branchID"`
	CreditorName    string          `json:"creditorName"`
	OriginalAmount  decimal.Decimal `json:"originalAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	IssueDate       time.Time       `json:"issueDate"`
	DueDate         *time.Time      `json:"dueDate,omitempty"`
	Status          DebtStatus      `json:"status"`
	Notes           string          `json:"notes,omitempty"`
	AuditFields
}

// DebtPayment is an append-only record of money paid against a debt.
type DebtPayment struct {
	PaymentID string          `json:"paymentID"` // Primary Key (UUID)
	DebtID    string          `json:"debtID"`
	BranchID  string          `json:"branchID"`
	Amount    decimal.Decimal `json:"amount"`
	PaidAt    time.Time       `json:"paidAt"`
	Notes     string          `json:"notes,omitempty"`
	AuditFields
}
