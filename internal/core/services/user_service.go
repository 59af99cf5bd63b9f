package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/branchbooks/branch_bookkeeping_app/internal/apperrors"
	"github.com/branchbooks/branch_bookkeeping_app/internal/core/domain"
	portsrepo "github.com/branchbooks/branch_bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/branchbooks/branch_bookkeeping_app/internal/core/ports/services"
	"github.com/branchbooks/branch_bookkeeping_app/internal/dto"
	"github.com/branchbooks/branch_bookkeeping_app/internal/utils"
)

// userService manages user accounts and their branch assignments.
type userService struct {
	BaseService
	userRepo   portsrepo.UserRepositoryFacade
	branchRepo portsrepo.BranchRepositoryFacade
}

// NewUserService creates a new user service.
func NewUserService(userRepo portsrepo.UserRepositoryFacade, branchRepo portsrepo.BranchRepositoryFacade) portssvc.UserSvcFacade {
	return &userService{
		userRepo:   userRepo,
		branchRepo: branchRepo,
	}
}

// Ensure userService implements the portssvc.UserSvcFacade interface
var _ portssvc.UserSvcFacade = (*userService)(nil)

// CreateUser creates a user. Only admins may create users; non-admin roles
// require a branch assignment, admins must not carry one.
func (s *userService) CreateUser(ctx context.Context, req dto.CreateUserRequest, creator domain.User) (*domain.User, error) {
	if !creator.IsAdmin() {
		return nil, apperrors.NewForbiddenError("only admins can create users")
	}

	if req.Role == domain.RoleAdmin {
		if req.BranchID != nil {
			return nil, apperrors.NewValidationFailedError("admin users do not carry a branch assignment")
		}
	} else {
		if req.BranchID == nil || *req.BranchID == "" {
			return nil, apperrors.NewValidationFailedError("branch assignment is required for non-admin roles")
		}
		if _, err := s.branchRepo.FindBranchByID(ctx, *req.BranchID); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, apperrors.NewValidationFailedError("branch " + *req.BranchID + " does not exist")
			}
			return nil, err
		}
	}

	hash, err := utils.HashPassword(req.Password)
	if err != nil {
		s.LogError(ctx, err, "failed to hash password")
		return nil, apperrors.NewAppError(500, "failed to hash password", err)
	}

	now := time.Now()
	user := domain.User{
		UserID:       uuid.NewString(),
		Username:     req.Username,
		Name:         req.Name,
		PasswordHash: hash,
		Role:         req.Role,
		BranchID:     req.BranchID,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creator.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creator.UserID,
		},
	}

	if err := s.userRepo.SaveUser(ctx, user); err != nil {
		s.LogError(ctx, err, "failed to create user", "username", req.Username)
		return nil, err
	}

	s.LogInfo(ctx, "user created", "user_id", user.UserID, "role", string(user.Role))
	return &user, nil
}

// GetUserByID returns one user.
func (s *userService) GetUserByID(ctx context.Context, userID string) (*domain.User, error) {
	return s.userRepo.FindUserByID(ctx, userID)
}

// ListUsers returns a page of users.
func (s *userService) ListUsers(ctx context.Context, limit, offset int) ([]domain.User, error) {
	return s.userRepo.ListUsers(ctx, limit, offset)
}

// DeleteUser soft-deletes a user. Only admins may delete, and never themselves.
func (s *userService) DeleteUser(ctx context.Context, userID string, deleter domain.User) error {
	if !deleter.IsAdmin() {
		return apperrors.NewForbiddenError("only admins can delete users")
	}
	if userID == deleter.UserID {
		return apperrors.NewValidationFailedError("users cannot delete themselves")
	}
	return s.userRepo.MarkUserDeleted(ctx, userID, deleter.UserID, time.Now())
}

// AuthenticateUser verifies credentials and returns the user on success.
// Unknown username and wrong password are indistinguishable to the caller.
func (s *userService) AuthenticateUser(ctx context.Context, username, password string) (*domain.User, error) {
	user, err := s.userRepo.FindUserByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NewForbiddenError("invalid credentials")
		}
		return nil, err
	}
	if !utils.CheckPasswordHash(password, user.PasswordHash) {
		return nil, apperrors.NewForbiddenError("invalid credentials")
	}
	return user, nil
}
