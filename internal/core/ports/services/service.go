package services

// ServiceContainer bundles all service facades for handler wiring.
type ServiceContainer struct {
	Transaction TransactionSvcFacade
	Inventory   InventorySvcFacade
	Debt        DebtSvcFacade
	Branch      BranchSvcFacade
	User        UserSvcFacade
	Auth        AuthSvcFacade
	Audit       AuditRecorder
	Notifier    TransactionNotifier
}
