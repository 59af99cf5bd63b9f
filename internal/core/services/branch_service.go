package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/branchbooks/branch_bookkeeping_app/internal/apperrors"
	"github.com/branchbooks/branch_bookkeeping_app/internal/core/domain"
	portsrepo "github.com/branchbooks/branch_bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/branchbooks/branch_bookkeeping_app/internal/core/ports/services"
	"github.com/branchbooks/branch_bookkeeping_app/internal/dto"
)

// branchService manages the branches that scope all bookkeeping data.
type branchService struct {
	BaseService
	branchRepo portsrepo.BranchRepositoryFacade
}

// NewBranchService creates a new branch service.
func NewBranchService(branchRepo portsrepo.BranchRepositoryFacade) portssvc.BranchSvcFacade {
	return &branchService{
		branchRepo: branchRepo,
	}
}

// Ensure branchService implements the portssvc.BranchSvcFacade interface
var _ portssvc.BranchSvcFacade = (*branchService)(nil)

// CreateBranch creates a branch. Only admins may create branches.
func (s *branchService) CreateBranch(ctx context.Context, req dto.CreateBranchRequest, creator domain.User) (*domain.Branch, error) {
	if !creator.IsAdmin() {
		return nil, apperrors.NewForbiddenError("only admins can create branches")
	}
	name := strings.TrimSpace(req.Name)
	if name == "" {
		return nil, apperrors.NewValidationFailedError("branch name is required")
	}

	now := time.Now()
	branch := domain.Branch{
		BranchID: uuid.NewString(),
		Name:     name,
		Address:  req.Address,
		IsActive: true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creator.UserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creator.UserID,
		},
	}

	if err := s.branchRepo.SaveBranch(ctx, branch); err != nil {
		s.LogError(ctx, err, "failed to create branch", "name", name)
		return nil, err
	}

	s.LogInfo(ctx, "branch created", "branch_id", branch.BranchID, "name", branch.Name)
	return &branch, nil
}

// GetBranchByID returns one branch.
func (s *branchService) GetBranchByID(ctx context.Context, branchID string) (*domain.Branch, error) {
	return s.branchRepo.FindBranchByID(ctx, branchID)
}

// ListBranches returns all branches ordered by name.
func (s *branchService) ListBranches(ctx context.Context) ([]domain.Branch, error) {
	return s.branchRepo.ListBranches(ctx)
}
