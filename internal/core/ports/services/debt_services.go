package services

import (
	"context"
	"time"

	"github.com/branchbooks/branch_bookkeeping_app/internal/core/domain"
	"github.com/branchbooks/branch_bookkeeping_app/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// DebtIssue describes a debt created for the unpaid remainder of a
// transaction, applied inside a caller-owned unit of work.
type DebtIssue struct {
	BranchID     string
	CreditorName string
	Amount       decimal.Decimal
	IssueDate    time.Time
	DueDate      *time.Time
	Notes        string
	UserID       string
	Now          time.Time
}

// DebtIssuingSvc is the slice of the debt service the transaction poster
// composes into its own unit of work.
type DebtIssuingSvc interface {
	// IssueForRemainderInTx creates an ACTIVE debt with original = remaining
	// = the remainder amount. Returns the new debt ID.
	IssueForRemainderInTx(ctx context.Context, tx pgx.Tx, issue DebtIssue) (string, error)
}

// DebtSvcFacade is the full debt/payable surface.
type DebtSvcFacade interface {
	DebtIssuingSvc
	GetDebtByID(ctx context.Context, debtID string, caller domain.User) (*domain.Debt, error)
	ListDebts(ctx context.Context, params dto.ListDebtsParams, caller domain.User) (*dto.ListDebtsResponse, error)
	// RecordPayment applies a payment against the debt under its row lock and
	// recomputes the status from the remaining amount.
	RecordPayment(ctx context.Context, debtID string, req dto.RecordDebtPaymentRequest, caller domain.User) (*domain.Debt, error)
}
