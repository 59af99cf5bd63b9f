package domain

import "time"

// UserRole defines the access level of a user.
type UserRole string

const (
	RoleAdmin   UserRole = "ADMIN"   // Unrestricted; must name a branch explicitly per operation
	RoleManager UserRole = "MANAGER" // Scoped to an assigned branch
	RoleStaff   UserRole = "STAFF"   // Scoped to an assigned branch
)

// User represents a user of the application in the domain.
type User struct {
	UserID       string   `json:"userID"` // Primary Key (UUID)
	Username     string   `json:"username"`
	Name         string   `json:"name"`
	PasswordHash string   `json:"-"`
	Role         UserRole `json:"role"`
	BranchID     *string  `json:"branchID,omitempty"` // Assigned branch; nil for admins
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"` // Used for soft delete
}

// IsAdmin reports whether the user has the unrestricted administrator role.
func (u User) IsAdmin() bool {
	return u.Role == RoleAdmin
}
