package services

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/branchbooks/branch_bookkeeping_app/internal/apperrors"
	"github.com/branchbooks/branch_bookkeeping_app/internal/core/domain"
	portsrepo "github.com/branchbooks/branch_bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/branchbooks/branch_bookkeeping_app/internal/core/ports/services"
	"github.com/branchbooks/branch_bookkeeping_app/internal/dto"
)

// transactionService is the posting engine. A posting validates fully before
// any write, then applies its inventory movement, debt issuance and the
// transaction row itself inside one database transaction. Audit and
// notification happen after commit and never fail the posting.
type transactionService struct {
	BaseService
	transactionRepo portsrepo.TransactionRepositoryWithTx
	inventorySvc    portssvc.InventoryPostingSvc
	debtSvc         portssvc.DebtIssuingSvc
	auditRecorder   portssvc.AuditRecorder
	notifier        portssvc.TransactionNotifier
}

// NewTransactionService creates a new transaction posting service.
func NewTransactionService(
	transactionRepo portsrepo.TransactionRepositoryWithTx,
	inventorySvc portssvc.InventoryPostingSvc,
	debtSvc portssvc.DebtIssuingSvc,
	auditRecorder portssvc.AuditRecorder,
	notifier portssvc.TransactionNotifier,
) portssvc.TransactionSvcFacade {
	return &transactionService{
		transactionRepo: transactionRepo,
		inventorySvc:    inventorySvc,
		debtSvc:         debtSvc,
		auditRecorder:   auditRecorder,
		notifier:        notifier,
	}
}

// Ensure transactionService implements the portssvc.TransactionSvcFacade interface
var _ portssvc.TransactionSvcFacade = (*transactionService)(nil)

// PostTransaction validates the request, resolves the branch for the caller,
// and posts everything atomically. On commit the hydrated transaction is
// returned; if any step fails, nothing is persisted.
func (s *transactionService) PostTransaction(ctx context.Context, req dto.PostTransactionRequest, caller domain.User) (*domain.Transaction, error) {
	if errs := req.Validate(); errs != nil {
		return nil, errs
	}

	branchID, err := ResolveBranch(caller, req.BranchID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	paidAmount := req.EffectivePaidAmount()
	transactionID := uuid.NewString()

	var posted *domain.Transaction
	err = s.transactionRepo.WithinTx(ctx, func(tx pgx.Tx) error {
		var inventoryItemID *string
		if line := req.InventoryLine; line != nil {
			switch line.Operation {
			case domain.OpPurchase:
				itemID, err := s.inventorySvc.PurchaseInTx(ctx, tx, portssvc.InventoryPurchase{
					BranchID:  branchID,
					Name:      line.Name,
					Unit:      line.Unit,
					Quantity:  line.Quantity,
					TotalCost: *line.TotalCost,
					UserID:    caller.UserID,
					Now:       now,
				})
				if err != nil {
					return err
				}
				inventoryItemID = &itemID
			case domain.OpConsumption:
				if err := s.inventorySvc.ConsumeInTx(ctx, tx, portssvc.InventoryConsume{
					BranchID: branchID,
					ItemID:   *line.ItemID,
					Quantity: line.Quantity,
					Reason:   transactionID,
					UserID:   caller.UserID,
					Now:      now,
				}); err != nil {
					return err
				}
				inventoryItemID = line.ItemID
			}
		}

		// Debt issuance only happens for an actual remainder. A fully paid
		// posting with the flag set simply skips this step.
		var debtID *string
		if remainder := req.TotalAmount.Sub(paidAmount); req.CreateDebtForRemainder && remainder.IsPositive() {
			id, err := s.debtSvc.IssueForRemainderInTx(ctx, tx, portssvc.DebtIssue{
				BranchID:     branchID,
				CreditorName: *req.CreditorName,
				Amount:       remainder,
				IssueDate:    req.Date,
				DueDate:      req.DueDate,
				Notes:        req.Notes,
				UserID:       caller.UserID,
				Now:          now,
			})
			if err != nil {
				return err
			}
			debtID = &id
		}

		txn := domain.Transaction{
			TransactionID:   transactionID,
			BranchID:        branchID,
			Kind:            req.Kind,
			TotalAmount:     req.TotalAmount,
			PaidAmount:      paidAmount,
			Category:        req.Category,
			TransactionDate: req.Date,
			Notes:           req.Notes,
			DebtID:          debtID,
			InventoryItemID: inventoryItemID,
			AuditFields: domain.AuditFields{
				CreatedAt:     now,
				CreatedBy:     caller.UserID,
				LastUpdatedAt: now,
				LastUpdatedBy: caller.UserID,
			},
		}
		if req.PaymentMethod != nil {
			txn.PaymentMethod = *req.PaymentMethod
		}
		if err := s.transactionRepo.CreateTransactionInTx(ctx, tx, txn); err != nil {
			return err
		}

		// Re-read inside the same unit of work so the response reflects
		// exactly what was committed, relations included.
		hydrated, err := s.transactionRepo.FindTransactionByIDInTx(ctx, tx, transactionID)
		if err != nil {
			return err
		}
		posted = hydrated
		return nil
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "transaction posted",
		"transaction_id", posted.TransactionID,
		"branch_id", posted.BranchID,
		"kind", string(posted.Kind),
		"total_amount", posted.TotalAmount.String())

	s.recordAudit(ctx, caller.UserID, posted)
	s.notify(posted, caller.UserID)

	return posted, nil
}

// recordAudit writes the post-commit audit snapshot. Failures are logged only.
func (s *transactionService) recordAudit(ctx context.Context, actorID string, txn *domain.Transaction) {
	if s.auditRecorder == nil {
		return
	}
	if err := s.auditRecorder.RecordCreate(ctx, actorID, "transaction", txn.TransactionID, txn); err != nil {
		s.LogError(ctx, err, "failed to record audit log for transaction", "transaction_id", txn.TransactionID)
	}
}

func (s *transactionService) notify(txn *domain.Transaction, actorID string) {
	if s.notifier == nil {
		return
	}
	s.notifier.NotifyNewTransaction(portssvc.TransactionEvent{
		TransactionID: txn.TransactionID,
		Kind:          txn.Kind,
		Amount:        txn.TotalAmount,
		Category:      txn.Category,
		BranchID:      txn.BranchID,
		ActorID:       actorID,
	})
}

// GetTransactionByID returns one transaction, enforcing branch visibility.
// Soft-deleted transactions are reported as not found.
func (s *transactionService) GetTransactionByID(ctx context.Context, transactionID string, caller domain.User) (*domain.Transaction, error) {
	txn, err := s.transactionRepo.FindTransactionByID(ctx, transactionID)
	if err != nil {
		return nil, err
	}
	if txn.IsDeleted() {
		return nil, apperrors.NewNotFoundError("transaction " + transactionID + " not found")
	}
	if _, err := ResolveBranch(caller, &txn.BranchID); err != nil {
		return nil, err
	}
	return txn, nil
}

// ListTransactions returns a page of transactions for the resolved branch.
func (s *transactionService) ListTransactions(ctx context.Context, params dto.ListTransactionsParams, caller domain.User) (*dto.ListTransactionsResponse, error) {
	branchID, err := ResolveBranch(caller, params.BranchID)
	if err != nil {
		return nil, err
	}

	txns, nextToken, err := s.transactionRepo.ListTransactionsByBranch(ctx, branchID, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "failed to list transactions", "branch_id", branchID)
		return nil, err
	}

	return &dto.ListTransactionsResponse{
		Transactions: dto.ToTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

// UpdateTransaction edits the mutable fields of a posted transaction. The
// inventory and debt side effects of the original posting are not replayed.
func (s *transactionService) UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, caller domain.User) (*domain.Transaction, error) {
	txn, err := s.GetTransactionByID(ctx, transactionID, caller)
	if err != nil {
		return nil, err
	}

	before := *txn

	if req.TotalAmount != nil {
		txn.TotalAmount = *req.TotalAmount
	}
	if req.PaidAmount != nil {
		txn.PaidAmount = *req.PaidAmount
	}
	if req.Category != nil {
		txn.Category = *req.Category
	}
	if req.Date != nil {
		txn.TransactionDate = *req.Date
	}
	if req.Notes != nil {
		txn.Notes = *req.Notes
	}
	if req.PaymentMethod != nil {
		if txn.Kind == domain.Income && !domain.IsValidIncomePaymentMethod(*req.PaymentMethod) {
			return nil, dto.ValidationErrors{{Field: "paymentMethod", Reason: "must be one of CASH, TRANSFER, QRIS, CARD"}}
		}
		txn.PaymentMethod = *req.PaymentMethod
	}

	if !txn.TotalAmount.IsPositive() {
		return nil, dto.ValidationErrors{{Field: "totalAmount", Reason: "must be positive"}}
	}
	if txn.PaidAmount.IsNegative() {
		return nil, dto.ValidationErrors{{Field: "paidAmount", Reason: "must not be negative"}}
	}
	if txn.PaidAmount.GreaterThan(txn.TotalAmount) {
		return nil, dto.ValidationErrors{{Field: "paidAmount", Reason: "must not exceed totalAmount"}}
	}

	txn.LastUpdatedAt = time.Now()
	txn.LastUpdatedBy = caller.UserID

	if err := s.transactionRepo.UpdateTransaction(ctx, *txn); err != nil {
		return nil, err
	}

	if s.auditRecorder != nil {
		if auditErr := s.auditRecorder.RecordUpdate(ctx, caller.UserID, "transaction", txn.TransactionID, &before, txn); auditErr != nil {
			s.LogError(ctx, auditErr, "failed to record audit log for transaction update", "transaction_id", txn.TransactionID)
		}
	}

	return txn, nil
}

// DeleteTransaction soft-deletes the transaction. Inventory and debt state
// the posting caused is deliberately left in place.
func (s *transactionService) DeleteTransaction(ctx context.Context, transactionID string, caller domain.User) error {
	txn, err := s.GetTransactionByID(ctx, transactionID, caller)
	if err != nil {
		return err
	}

	now := time.Now()
	if err := s.transactionRepo.MarkTransactionDeleted(ctx, transactionID, caller.UserID, now); err != nil {
		return err
	}

	s.LogInfo(ctx, "transaction soft deleted", "transaction_id", transactionID)

	if s.auditRecorder != nil {
		if auditErr := s.auditRecorder.RecordDelete(ctx, caller.UserID, "transaction", transactionID, txn); auditErr != nil {
			s.LogError(ctx, auditErr, "failed to record audit log for transaction delete", "transaction_id", transactionID)
		}
	}
	return nil
}
