package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// DebtStatus mirrors domain.DebtStatus for persistence.
type DebtStatus string

const (
	DebtActive  DebtStatus = "ACTIVE"
	DebtPartial DebtStatus = "PARTIAL"
	DebtPaid    DebtStatus = "PAID"
)

// Debt maps to the debts table.
type Debt struct {
	DebtID          string          `json:"debtID"`
	BranchID        string          `json:"branchID"`
	CreditorName    string          `json:"creditorName"`
	OriginalAmount  decimal.Decimal `json:"originalAmount"`
	RemainingAmount decimal.Decimal `json:"remainingAmount"`
	IssueDate       time.Time       `json:"issueDate"`
	DueDate         *time.Time      `json:"dueDate,omitempty"`
	Status          DebtStatus      `json:"status"`
	Notes           string          `json:"notes"`
	AuditFields
}

// DebtPayment maps to the debt_payments table.
type DebtPayment struct {
	PaymentID string          `json:"paymentID"`
	DebtID    string          `json:"debtID"`
	BranchID  string          `json:"branchID"`
	Amount    decimal.Decimal `json:"amount"`
	PaidAt    time.Time       `json:"paidAt"`
	Notes     string          `json:"notes"`
	AuditFields
}
