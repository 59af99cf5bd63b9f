package dto

import (
	"time"

	"github.com/branchbooks/branch_bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// RecordDebtPaymentRequest records money paid against an outstanding debt.
type RecordDebtPaymentRequest struct {
	Amount   decimal.Decimal `json:"amount"`
	PaidAt   *time.Time      `json:"paidAt,omitempty"`
	Notes    string          `json:"notes,omitempty"`
	BranchID *string         `json:"branchID,omitempty"` // Admin callers only
}

// Validate performs the explicit validation pass for a payment request.
func (r RecordDebtPaymentRequest) Validate() ValidationErrors {
	var errs ValidationErrors
	if r.Amount.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, FieldError{Field: "amount", Reason: "must be positive"})
	}
	return errs
}

// ListDebtsParams holds query parameters for listing debts.
type ListDebtsParams struct {
	BranchID  *string `form:"branchId"`
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// DebtResponse is the outbound shape of a debt.
type DebtResponse struct {
	DebtID          string            `json:"debtID"`
	BranchID        string            `json:"branchID"`
	CreditorName    string            `json:"creditorName"`
	OriginalAmount  decimal.Decimal   `json:"originalAmount"`
	RemainingAmount decimal.Decimal   `json:"remainingAmount"`
	IssueDate       time.Time         `json:"issueDate"`
	DueDate         *time.Time        `json:"dueDate,omitempty"`
	Status          domain.DebtStatus `json:"status"`
	Notes           string            `json:"notes,omitempty"`
	CreatedBy       string            `json:"createdBy"`
}

// ListDebtsResponse is a page of debts.
type ListDebtsResponse struct {
	Debts     []DebtResponse `json:"debts"`
	NextToken *string        `json:"nextToken,omitempty"`
}

// ToDebtResponse converts a domain debt to its response DTO.
func ToDebtResponse(d *domain.Debt) DebtResponse {
	return DebtResponse{
		DebtID:          d.DebtID,
		BranchID:        d.BranchID,
		CreditorName:    d.CreditorName,
		OriginalAmount:  d.OriginalAmount,
		RemainingAmount: d.RemainingAmount,
		IssueDate:       d.IssueDate,
		DueDate:         d.DueDate,
		Status:          d.Status,
		Notes:           d.Notes,
		CreatedBy:       d.CreatedBy,
	}
}

// ToDebtResponses converts a slice of domain debts.
func ToDebtResponses(ds []domain.Debt) []DebtResponse {
	out := make([]DebtResponse, len(ds))
	for i := range ds {
		out[i] = ToDebtResponse(&ds[i])
	}
	return out
}
