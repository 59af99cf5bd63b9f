package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionKind indicates whether a transaction records money coming in or going out.
type TransactionKind string

const (
	Income  TransactionKind = "INCOME"
	Expense TransactionKind = "EXPENSE"
)

// Payment methods accepted for INCOME transactions. EXPENSE transactions may
// carry free-form payment methods.
const (
	PaymentCash     = "CASH"
	PaymentTransfer = "TRANSFER"
	PaymentQRIS     = "QRIS"
	PaymentCard     = "CARD"
)

var incomePaymentMethods = map[string]struct{}{
	PaymentCash:     {},
	PaymentTransfer: {},
	PaymentQRIS:     {},
	PaymentCard:     {},
}

// IsValidIncomePaymentMethod reports whether the method is in the fixed set
// allowed for INCOME transactions.
func IsValidIncomePaymentMethod(method string) bool {
	_, ok := incomePaymentMethods[method]
	return ok
}

// Transaction represents a single posted financial event in a branch.
// Amount semantics: TotalAmount is the full value of the event, PaidAmount is
// what actually moved; the difference may have been converted into a Debt.
type Transaction struct {
	TransactionID   string          `json:"transactionID"` // Primary Key (UUID)
	BranchID        string          `json:"branchID"`      // FK -> Branch
	Kind            TransactionKind `json:"kind"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
	PaidAmount      decimal.Decimal `json:"paidAmount"`
	Category        string          `json:"category"`
	PaymentMethod   string          `json:"paymentMethod,omitempty"`
	TransactionDate time.Time       `json:"transactionDate"`
	Notes           string          `json:"notes,omitempty"`
	DebtID          *string         `json:"debtID,omitempty"`          // Set when a debt was issued for the unpaid remainder
	InventoryItemID *string         `json:"inventoryItemID,omitempty"` // Set when the posting carried an inventory line
	DeletedAt       *time.Time      `json:"deletedAt,omitempty"`       // Soft delete marker; rows are never removed
	AuditFields

	// Hydrated relations, populated on reads that request them.
	Branch        *Branch        `json:"branch,omitempty"`
	Creator       *User          `json:"creator,omitempty"`
	InventoryItem *InventoryItem `json:"inventoryItem,omitempty"`
	Debt          *Debt          `json:"debt,omitempty"`
}

// Remainder returns the unpaid portion of the transaction.
func (t Transaction) Remainder() decimal.Decimal {
	return t.TotalAmount.Sub(t.PaidAmount)
}

// IsDeleted reports whether the transaction has been soft-deleted.
func (t Transaction) IsDeleted() bool {
	return t.DeletedAt != nil
}
