package dto

import "github.com/branchbooks/branch_bookkeeping_app/internal/core/domain"

// CreateUserRequest creates a new user. Admin only.
type CreateUserRequest struct {
	Username string          `json:"username" binding:"required"`
	Name     string          `json:"name" binding:"required"`
	Password string          `json:"password" binding:"required,min=8"`
	Role     domain.UserRole `json:"role" binding:"required,oneof=ADMIN MANAGER STAFF"`
	BranchID *string         `json:"branchID,omitempty"` // Required for non-admin roles
}

// UserResponse is the outbound shape of a user. The password hash never leaves
// the service layer.
type UserResponse struct {
	UserID   string          `json:"userID"`
	Username string          `json:"username"`
	Name     string          `json:"name"`
	Role     domain.UserRole `json:"role"`
	BranchID *string         `json:"branchID,omitempty"`
}

// ToUserResponse converts a domain user to its response DTO.
func ToUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		UserID:   u.UserID,
		Username: u.Username,
		Name:     u.Name,
		Role:     u.Role,
		BranchID: u.BranchID,
	}
}

// ToUserResponses converts a slice of domain users.
func ToUserResponses(us []domain.User) []UserResponse {
	out := make([]UserResponse, len(us))
	for i := range us {
		out[i] = ToUserResponse(&us[i])
	}
	return out
}
