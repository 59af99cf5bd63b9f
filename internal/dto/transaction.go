package dto

import (
	"time"

	"github.com/branchbooks/branch_bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// InventoryLineItem declares the inventory side of a posting. A PURCHASE line
// names the good (item is created or merged by natural key) and its total
// cost; a CONSUMPTION line references an existing item by ID.
type InventoryLineItem struct {
	ItemID    *string                   `json:"itemID,omitempty"`
	Name      string                    `json:"name,omitempty"`
	Unit      string                    `json:"unit,omitempty"`
	Quantity  decimal.Decimal           `json:"quantity"`
	TotalCost *decimal.Decimal          `json:"totalCost,omitempty"`
	Operation domain.InventoryOperation `json:"operation" validate:"required,oneof=PURCHASE CONSUMPTION"`
}

// PostTransactionRequest is the inbound shape for posting a transaction,
// optionally combined with an inventory line and/or debt issuance for the
// unpaid remainder.
type PostTransactionRequest struct {
	Kind                   domain.TransactionKind `json:"kind" binding:"required" validate:"required,oneof=INCOME EXPENSE"`
	TotalAmount            decimal.Decimal        `json:"totalAmount"`
	PaidAmount             *decimal.Decimal       `json:"paidAmount,omitempty"`
	Category               string                 `json:"category" binding:"required" validate:"required"`
	PaymentMethod          *string                `json:"paymentMethod,omitempty"`
	Date                   time.Time              `json:"date" binding:"required" validate:"required"`
	BranchID               *string                `json:"branchID,omitempty"` // Admin callers only
	Notes                  string                 `json:"notes,omitempty"`
	InventoryLine          *InventoryLineItem     `json:"inventoryLine,omitempty"`
	CreateDebtForRemainder bool                   `json:"createDebtForRemainder,omitempty"`
	CreditorName           *string                `json:"creditorName,omitempty"`
	DueDate                *time.Time             `json:"dueDate,omitempty"`
}

// EffectivePaidAmount returns the paid amount, defaulting to the total when omitted.
func (r PostTransactionRequest) EffectivePaidAmount() decimal.Decimal {
	if r.PaidAmount == nil {
		return r.TotalAmount
	}
	return *r.PaidAmount
}

// Validate performs the full validation pass for a posting request. It runs
// before any unit of work opens; a non-nil result means nothing was written.
func (r PostTransactionRequest) Validate() ValidationErrors {
	errs := ValidationErrors(structFieldErrors(r))

	if r.TotalAmount.LessThanOrEqual(decimal.Zero) {
		if r.InventoryLine == nil {
			errs = append(errs, FieldError{Field: "totalAmount", Reason: "nothing to post: a positive total amount or an inventory line is required"})
		} else {
			errs = append(errs, FieldError{Field: "totalAmount", Reason: "must be positive"})
		}
	}

	if r.PaidAmount != nil {
		if r.PaidAmount.IsNegative() {
			errs = append(errs, FieldError{Field: "paidAmount", Reason: "must not be negative"})
		} else if r.PaidAmount.GreaterThan(r.TotalAmount) {
			errs = append(errs, FieldError{Field: "paidAmount", Reason: "must not exceed totalAmount"})
		}
	}

	// Payment method is mandatory and constrained for INCOME, free-form for EXPENSE.
	if r.Kind == domain.Income {
		if r.PaymentMethod == nil || *r.PaymentMethod == "" {
			errs = append(errs, FieldError{Field: "paymentMethod", Reason: "required for INCOME transactions"})
		} else if !domain.IsValidIncomePaymentMethod(*r.PaymentMethod) {
			errs = append(errs, FieldError{Field: "paymentMethod", Reason: "must be one of CASH, TRANSFER, QRIS, CARD"})
		}
	}

	if line := r.InventoryLine; line != nil {
		if line.Quantity.LessThanOrEqual(decimal.Zero) {
			errs = append(errs, FieldError{Field: "inventoryLine.quantity", Reason: "must be positive"})
		}
		switch line.Operation {
		case domain.OpPurchase:
			if line.Name == "" {
				errs = append(errs, FieldError{Field: "inventoryLine.name", Reason: "required for PURCHASE"})
			}
			if line.Unit == "" {
				errs = append(errs, FieldError{Field: "inventoryLine.unit", Reason: "required for PURCHASE"})
			}
			if line.TotalCost == nil {
				errs = append(errs, FieldError{Field: "inventoryLine.totalCost", Reason: "required for PURCHASE"})
			} else if line.TotalCost.IsNegative() {
				errs = append(errs, FieldError{Field: "inventoryLine.totalCost", Reason: "must not be negative"})
			}
		case domain.OpConsumption:
			if line.ItemID == nil || *line.ItemID == "" {
				errs = append(errs, FieldError{Field: "inventoryLine.itemID", Reason: "required for CONSUMPTION"})
			}
		default:
			errs = append(errs, FieldError{Field: "inventoryLine.operation", Reason: "must be PURCHASE or CONSUMPTION"})
		}
	}

	// A fully paid posting with the flag set is legal; the debt step is
	// skipped at posting time when no remainder is left.
	if r.CreateDebtForRemainder {
		if r.CreditorName == nil || *r.CreditorName == "" {
			errs = append(errs, FieldError{Field: "creditorName", Reason: "required when createDebtForRemainder is set"})
		}
	}

	if len(errs) == 0 {
		return nil
	}
	return errs
}

// UpdateTransactionRequest covers the editable fields of a posted transaction.
// Links to inventory and debt rows are immutable once posted.
type UpdateTransactionRequest struct {
	TotalAmount   *decimal.Decimal `json:"totalAmount,omitempty"`
	PaidAmount    *decimal.Decimal `json:"paidAmount,omitempty"`
	Category      *string          `json:"category,omitempty"`
	PaymentMethod *string          `json:"paymentMethod,omitempty"`
	Date          *time.Time       `json:"date,omitempty"`
	Notes         *string          `json:"notes,omitempty"`
}

// ListTransactionsParams holds query parameters for listing transactions.
type ListTransactionsParams struct {
	BranchID  *string `form:"branchId"`
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// TransactionResponse is the outbound shape of a posted transaction with its
// hydrated relations.
type TransactionResponse struct {
	TransactionID   string                 `json:"transactionID"`
	BranchID        string                 `json:"branchID"`
	Kind            domain.TransactionKind `json:"kind"`
	TotalAmount     decimal.Decimal        `json:"totalAmount"`
	PaidAmount      decimal.Decimal        `json:"paidAmount"`
	Category        string                 `json:"category"`
	PaymentMethod   string                 `json:"paymentMethod,omitempty"`
	TransactionDate time.Time              `json:"transactionDate"`
	Notes           string                 `json:"notes,omitempty"`
	DebtID          *string                `json:"debtID,omitempty"`
	InventoryItemID *string                `json:"inventoryItemID,omitempty"`
	CreatedAt       time.Time              `json:"createdAt"`
	CreatedBy       string                 `json:"createdBy"`

	Branch        *BranchResponse        `json:"branch,omitempty"`
	Creator       *UserResponse          `json:"creator,omitempty"`
	InventoryItem *InventoryItemResponse `json:"inventoryItem,omitempty"`
	Debt          *DebtResponse          `json:"debt,omitempty"`
}

// ListTransactionsResponse is a page of transactions plus the cursor for the next page.
type ListTransactionsResponse struct {
	Transactions []TransactionResponse `json:"transactions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToTransactionResponse converts a domain.Transaction to its response DTO.
func ToTransactionResponse(t *domain.Transaction) TransactionResponse {
	resp := TransactionResponse{
		TransactionID:   t.TransactionID,
		BranchID:        t.BranchID,
		Kind:            t.Kind,
		TotalAmount:     t.TotalAmount,
		PaidAmount:      t.PaidAmount,
		Category:        t.Category,
		PaymentMethod:   t.PaymentMethod,
		TransactionDate: t.TransactionDate,
		Notes:           t.Notes,
		DebtID:          t.DebtID,
		InventoryItemID: t.InventoryItemID,
		CreatedAt:       t.CreatedAt,
		CreatedBy:       t.CreatedBy,
	}
	if t.Branch != nil {
		b := ToBranchResponse(t.Branch)
		resp.Branch = &b
	}
	if t.Creator != nil {
		u := ToUserResponse(t.Creator)
		resp.Creator = &u
	}
	if t.InventoryItem != nil {
		it := ToInventoryItemResponse(t.InventoryItem)
		resp.InventoryItem = &it
	}
	if t.Debt != nil {
		d := ToDebtResponse(t.Debt)
		resp.Debt = &d
	}
	return resp
}

// ToTransactionResponses converts a slice of domain transactions.
func ToTransactionResponses(ts []domain.Transaction) []TransactionResponse {
	out := make([]TransactionResponse, len(ts))
	for i := range ts {
		out[i] = ToTransactionResponse(&ts[i])
	}
	return out
}
