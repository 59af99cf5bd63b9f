package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind mirrors domain.TransactionKind for persistence.
type TransactionKind string

const (
	Income  TransactionKind = "INCOME"
	Expense TransactionKind = "EXPENSE"
)

// Transaction maps to the transactions table.
// Note: amounts use a precise decimal type, github.com/shopspring/decimal.
type Transaction struct {
	TransactionID   string          `json:"transactionID"`
	BranchID        string          `json:"branchID"`
	Kind            TransactionKind `json:"kind"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	Category        string          `json:"category"`
	PaymentMethod   string          `json:"paymentMethod"`
	TransactionDate time.Time       `json:"transactionDate"`
	Notes           string          `json:"notes"`
	DebtID          *string         `json:"debtID,omitempty"`
	InventoryItemID *string         `json:"inventoryItemID,omitempty"`
	DeletedAt       *time.Time      `json:"deletedAt,omitempty"`
	AuditFields
}
