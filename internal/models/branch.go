package models

// Branch maps to the branches table.
type Branch struct {
	BranchID string `json:"branchID"`
	Name     string `json:"name"`
	Address  string `json:"address"`
	IsActive bool   `json:"isActive"`
	AuditFields
}
