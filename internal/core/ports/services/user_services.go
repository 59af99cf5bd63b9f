package services

import (
	"context"

	"github.com/branchbooks/branch_bookkeeping_app/internal/core/domain"
	"github.com/branchbooks/branch_bookkeeping_app/internal/dto"
)

// UserSvcFacade defines user management operations.
type UserSvcFacade interface {
	CreateUser(ctx context.Context, req dto.CreateUserRequest, creator domain.User) (*domain.User, error)
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error)
	DeleteUser(ctx context.Context, userID string, deleter domain.User) error
	// AuthenticateUser verifies credentials and returns the user on success.
	AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error)
}

// BranchSvcFacade defines branch management operations.
type BranchSvcFacade interface {
	CreateBranch(ctx context.Context, req dto.CreateBranchRequest, creator domain.User) (*domain.Branch, error)
	GetBranchByID(ctx context.Context, branchID string) (*domain.Branch, error)
	ListBranches(ctx context.Context) ([]domain.Branch, error)
}

// AuthSvcFacade issues access tokens for authenticated users.
type AuthSvcFacade interface {
	Login(ctx context.Context, req dto.LoginRequest) (*dto.LoginResponse, error)
}
