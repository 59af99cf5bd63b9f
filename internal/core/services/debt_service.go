package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/branchbooks/branch_bookkeeping_app/internal/apperrors"
	"github.com/branchbooks/branch_bookkeeping_app/internal/core/domain"
	portsrepo "github.com/branchbooks/branch_bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/branchbooks/branch_bookkeeping_app/internal/core/ports/services"
	"github.com/branchbooks/branch_bookkeeping_app/internal/dto"
)

// debtService manages debts issued for unpaid transaction remainders and the
// payments made against them.
type debtService struct {
	BaseService
	debtRepo portsrepo.DebtRepositoryWithTx
}

// NewDebtService creates a new debt service.
func NewDebtService(debtRepo portsrepo.DebtRepositoryWithTx) portssvc.DebtSvcFacade {
	return &debtService{
		debtRepo: debtRepo,
	}
}

// Ensure debtService implements the portssvc.DebtSvcFacade interface
var _ portssvc.DebtSvcFacade = (*debtService)(nil)

// IssueForRemainderInTx creates an ACTIVE debt inside the caller's unit of
// work. Original and remaining both start at the remainder amount; the status
// is derived, never chosen.
func (s *debtService) IssueForRemainderInTx(ctx context.Context, tx pgx.Tx, issue portssvc.DebtIssue) (string, error) {
	if issue.Amount.LessThanOrEqual(decimal.Zero) {
		return "", apperrors.NewValidationFailedError("debt amount must be positive")
	}
	creditor := strings.TrimSpace(issue.CreditorName)
	if creditor == "" {
		return "", apperrors.NewValidationFailedError("creditor name is required")
	}

	debt := domain.Debt{
		DebtID:          uuid.NewString(),
		BranchID:        issue.BranchID,
		CreditorName:    creditor,
		OriginalAmount:  issue.Amount,
		RemainingAmount: issue.Amount,
		IssueDate:       issue.IssueDate,
		DueDate:         issue.DueDate,
		Status:          domain.DebtStatusFor(issue.Amount, issue.Amount),
		Notes:           issue.Notes,
		AuditFields: domain.AuditFields{
			CreatedAt:     issue.Now,
			CreatedBy:     issue.UserID,
			LastUpdatedAt: issue.Now,
			LastUpdatedBy: issue.UserID,
		},
	}

	if err := s.debtRepo.CreateDebtInTx(ctx, tx, debt); err != nil {
		return "", err
	}
	s.LogDebug(ctx, "debt issued for remainder", "debt_id", debt.DebtID, "branch_id", debt.BranchID)
	return debt.DebtID, nil
}

// GetDebtByID returns one debt, enforcing branch visibility.
func (s *debtService) GetDebtByID(ctx context.Context, debtID string, caller domain.User) (*domain.Debt, error) {
	debt, err := s.debtRepo.FindDebtByID(ctx, debtID)
	if err != nil {
		return nil, err
	}
	if _, err := ResolveBranch(caller, &debt.BranchID); err != nil {
		return nil, err
	}
	return debt, nil
}

// ListDebts returns a page of debts for the resolved branch.
func (s *debtService) ListDebts(ctx context.Context, params dto.ListDebtsParams, caller domain.User) (*dto.ListDebtsResponse, error) {
	branchID, err := ResolveBranch(caller, params.BranchID)
	if err != nil {
		return nil, err
	}

	debts, nextToken, err := s.debtRepo.ListDebtsByBranch(ctx, branchID, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "failed to list debts", "branch_id", branchID)
		return nil, err
	}

	return &dto.ListDebtsResponse{
		Debts:     dto.ToDebtResponses(debts),
		NextToken: nextToken,
	}, nil
}

// RecordPayment applies a payment against the debt under its row lock. The
// payment may not exceed what remains; the status is recomputed from the new
// remaining amount.
func (s *debtService) RecordPayment(ctx context.Context, debtID string, req dto.RecordDebtPaymentRequest, caller domain.User) (*domain.Debt, error) {
	if errs := req.Validate(); errs != nil {
		return nil, errs
	}

	now := time.Now()
	paidAt := now
	if req.PaidAt != nil {
		paidAt = *req.PaidAt
	}

	var updated *domain.Debt
	err := s.debtRepo.WithinTx(ctx, func(tx pgx.Tx) error {
		debt, err := s.debtRepo.FindDebtByIDForUpdate(ctx, tx, debtID)
		if err != nil {
			return err
		}
		if _, err := ResolveBranch(caller, &debt.BranchID); err != nil {
			return err
		}

		if req.Amount.GreaterThan(debt.RemainingAmount) {
			return apperrors.NewConflictError("payment " + req.Amount.String() + " exceeds remaining amount " + debt.RemainingAmount.String())
		}

		debt.RemainingAmount = debt.RemainingAmount.Sub(req.Amount)
		debt.Status = domain.DebtStatusFor(debt.RemainingAmount, debt.OriginalAmount)
		debt.LastUpdatedAt = now
		debt.LastUpdatedBy = caller.UserID
		if err := s.debtRepo.UpdateDebtInTx(ctx, tx, *debt); err != nil {
			return err
		}

		payment := domain.DebtPayment{
			PaymentID: uuid.NewString(),
			DebtID:    debt.DebtID,
			BranchID:  debt.BranchID,
			Amount:    req.Amount,
			PaidAt:    paidAt,
			Notes:     req.Notes,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     caller.UserID,
				LastUpdatedAt: now,
				LastUpdatedBy: caller.UserID,
			},
		}
		if err := s.debtRepo.AppendPaymentInTx(ctx, tx, payment); err != nil {
			return err
		}

		updated = debt
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "debt payment recorded",
		"debt_id", debtID, "amount", req.Amount.String(), "status", string(updated.Status))
	return updated, nil
}
