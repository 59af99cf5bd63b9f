package repositories

import (
	"context"
	"time"

	"github.com/branchbooks/branch_bookkeeping_app/internal/core/domain"
	"github.com/jackc/pgx/v5"
)

// The unit-of-work handle is an explicit pgx.Tx parameter on the ...InTx /
// ...ForUpdate methods. Reads used for decision-making must go through the
// same handle as the write that follows them.

// TxManager opens an atomic unit of work and runs fn inside it. fn returning
// an error rolls back; otherwise the work commits.
type TxManager interface {
	WithinTx(ctx context.Context, fn func(tx pgx.Tx) error) error
}

// TransactionRepositoryFacade defines persistence operations for Transactions.
type TransactionRepositoryFacade interface {
	CreateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error
	FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error)
	// FindTransactionByIDInTx re-reads the transaction with its branch,
	// creator, inventory item and debt relations hydrated, inside the open
	// unit of work.
	FindTransactionByIDInTx(ctx context.Context, tx pgx.Tx, transactionID string) (*domain.Transaction, error)
	ListTransactionsByBranch(ctx context.Context, branchID string, limit int, nextToken *string) ([]domain.Transaction, *string, error)
	UpdateTransaction(ctx context.Context, txn domain.Transaction) error
	MarkTransactionDeleted(ctx context.Context, transactionID string, deletedBy string, deletedAt time.Time) error
}

// TransactionRepositoryWithTx is a transaction repository that can also open
// units of work.
type TransactionRepositoryWithTx interface {
	TransactionRepositoryFacade
	TxManager
}

// InventoryRepositoryFacade defines persistence operations for inventory
// items and their append-only consumption log.
type InventoryRepositoryFacade interface {
	FindItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error)
	// FindItemByIDForUpdate locks the item row for the remainder of the unit
	// of work. Soft-deleted items are treated as absent.
	FindItemByIDForUpdate(ctx context.Context, tx pgx.Tx, itemID string) (*domain.InventoryItem, error)
	// FindItemByNameForUpdate looks up an item by its (branch, name, unit)
	// natural key and locks it. Returns apperrors.ErrNotFound when absent.
	FindItemByNameForUpdate(ctx context.Context, tx pgx.Tx, branchID, name, unit string) (*domain.InventoryItem, error)
	CreateItemInTx(ctx context.Context, tx pgx.Tx, item domain.InventoryItem) error
	UpdateItemInTx(ctx context.Context, tx pgx.Tx, item domain.InventoryItem) error
	AppendConsumptionInTx(ctx context.Context, tx pgx.Tx, rec domain.InventoryConsumption) error
	ListItemsByBranch(ctx context.Context, branchID string, limit int, nextToken *string) ([]domain.InventoryItem, *string, error)
	ListConsumptionsByItem(ctx context.Context, itemID string, limit int, nextToken *string) ([]domain.InventoryConsumption, *string, error)
}

// InventoryRepositoryWithTx is an inventory repository that can also open
// units of work.
type InventoryRepositoryWithTx interface {
	InventoryRepositoryFacade
	TxManager
}

// DebtRepositoryFacade defines persistence operations for Debts and their
// payments.
type DebtRepositoryFacade interface {
	CreateDebtInTx(ctx context.Context, tx pgx.Tx, debt domain.Debt) error
	FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error)
	FindDebtByIDForUpdate(ctx context.Context, tx pgx.Tx, debtID string) (*domain.Debt, error)
	UpdateDebtInTx(ctx context.Context, tx pgx.Tx, debt domain.Debt) error
	AppendPaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.DebtPayment) error
	ListDebtsByBranch(ctx context.Context, branchID string, limit int, nextToken *string) ([]domain.Debt, *string, error)
}

// DebtRepositoryWithTx is a debt repository that can also open units of work.
type DebtRepositoryWithTx interface {
	DebtRepositoryFacade
	TxManager
}

// BranchRepositoryFacade defines persistence operations for Branches.
type BranchRepositoryFacade interface {
	SaveBranch(ctx context.Context, branch domain.Branch) error
	FindBranchByID(ctx context.Context, branchID string) (*domain.Branch, error)
	ListBranches(ctx context.Context) ([]domain.Branch, error)
}

// UserRepositoryFacade defines persistence operations for Users.
type UserRepositoryFacade interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
	MarkUserDeleted(ctx context.Context, userID string, deletedBy string, deletedAt time.Time) error
}

// AuditLogRepositoryFacade persists audit snapshots. Callers treat failures
// as log-only; an audit write never fails the operation it describes.
type AuditLogRepositoryFacade interface {
	SaveAuditLog(ctx context.Context, log domain.AuditLog) error
}

// RepositoryProvider bundles all repositories for service wiring.
type RepositoryProvider struct {
	TransactionRepo TransactionRepositoryWithTx
	InventoryRepo   InventoryRepositoryWithTx
	DebtRepo        DebtRepositoryWithTx
	BranchRepo      BranchRepositoryFacade
	UserRepo        UserRepositoryFacade
	AuditRepo       AuditLogRepositoryFacade
}
