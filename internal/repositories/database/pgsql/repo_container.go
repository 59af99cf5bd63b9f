package pgsql

import (
	portsrepo "github.com/branchbooks/branch_bookkeeping_app/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	transactionRepo := newPgxTransactionRepository(dbPool)
	inventoryRepo := newPgxInventoryRepository(dbPool)
	debtRepo := newPgxDebtRepository(dbPool)
	branchRepo := newPgxBranchRepository(dbPool)
	userRepo := newPgxUserRepository(dbPool)
	auditRepo := newPgxAuditLogRepository(dbPool)

	return portsrepo.RepositoryProvider{
		TransactionRepo: transactionRepo,
		InventoryRepo:   inventoryRepo,
		DebtRepo:        debtRepo,
		BranchRepo:      branchRepo,
		UserRepo:        userRepo,
		AuditRepo:       auditRepo,
	}
}
