package services

import (
	"log/slog"

	portsrepo "github.com/branchbooks/branch_bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/branchbooks/branch_bookkeeping_app/internal/core/ports/services"
	"github.com/branchbooks/branch_bookkeeping_app/internal/platform/config"
)

// NewServiceContainer wires all services with their repository dependencies.
func NewServiceContainer(cfg *config.Config, repos portsrepo.RepositoryProvider, logger *slog.Logger) *portssvc.ServiceContainer {
	inventorySvc := NewInventoryService(repos.InventoryRepo)
	debtSvc := NewDebtService(repos.DebtRepo)
	auditSvc := NewAuditService(repos.AuditRepo)
	notifier := NewChannelNotifier(cfg.NotifierBufferSize, logger)

	transactionSvc := NewTransactionService(
		repos.TransactionRepo,
		inventorySvc,
		debtSvc,
		auditSvc,
		notifier,
	)

	branchSvc := NewBranchService(repos.BranchRepo)
	userSvc := NewUserService(repos.UserRepo, repos.BranchRepo)
	authSvc := NewAuthService(cfg, userSvc)

	return &portssvc.ServiceContainer{
		Transaction: transactionSvc,
		Inventory:   inventorySvc,
		Debt:        debtSvc,
		Branch:      branchSvc,
		User:        userSvc,
		Auth:        authSvc,
		Audit:       auditSvc,
		Notifier:    notifier,
	}
}
