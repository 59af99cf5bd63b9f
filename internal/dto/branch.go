package dto

import "github.com/branchbooks/branch_bookkeeping_app/internal/core/domain"

// CreateBranchRequest creates a new branch. Admin only.
type CreateBranchRequest struct {
	Name    string `json:"name" binding:"required"`
	Address string `json:"address,omitempty"`
}

// BranchResponse is the outbound shape of a branch.
type BranchResponse struct {
	BranchID string `json:"branchID"`
	Name     string `json:"name"`
	Address  string `json:"address,omitempty"`
	IsActive bool   `json:"isActive"`
}

// ToBranchResponse converts a domain branch to its response DTO.
func ToBranchResponse(b *domain.Branch) BranchResponse {
	return BranchResponse{
		BranchID: b.BranchID,
		Name:     b.Name,
		Address:  b.Address,
		IsActive: b.IsActive,
	}
}

// ToBranchResponses converts a slice of domain branches.
func ToBranchResponses(bs []domain.Branch) []BranchResponse {
	out := make([]BranchResponse, len(bs))
	for i := range bs {
		out[i] = ToBranchResponse(&bs[i])
	}
	return out
}
