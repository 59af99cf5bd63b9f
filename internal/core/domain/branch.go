package domain

// Branch represents a physical business location. It is the tenancy boundary
// for transactions, inventory and debts.
type Branch struct {
	BranchID string `json:"branchID"` // Primary Key (UUID)
	Name     string `json:"name"`
	Address  string `json:"address"`
	IsActive bool   `json:"isActive"`
	AuditFields
}
