package services_test

import (
	"testing"

	"github.com/branchbooks/branch_bookkeeping_app/internal/core/domain"
	"github.com/branchbooks/branch_bookkeeping_app/internal/core/services"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestResolveBranch_AdminMustNameBranch(t *testing.T) {
	admin := domain.User{UserID: uuid.NewString(), Role: domain.RoleAdmin}

	_, err := services.ResolveBranch(admin, nil)
	assert.ErrorIs(t, err, services.ErrBranchRequired)

	_, err = services.ResolveBranch(admin, strPtr(""))
	assert.ErrorIs(t, err, services.ErrBranchRequired)

	branchID, err := services.ResolveBranch(admin, strPtr("branch-1"))
	assert.NoError(t, err)
	assert.Equal(t, "branch-1", branchID)
}

func TestResolveBranch_NonAdminUsesAssignedBranch(t *testing.T) {
	staff := domain.User{
		UserID:   uuid.NewString(),
		Role:     domain.RoleStaff,
		BranchID: strPtr("branch-1"),
	}

	// No explicit branch falls back to the assignment.
	branchID, err := services.ResolveBranch(staff, nil)
	assert.NoError(t, err)
	assert.Equal(t, "branch-1", branchID)

	// Naming the own branch is allowed.
	branchID, err = services.ResolveBranch(staff, strPtr("branch-1"))
	assert.NoError(t, err)
	assert.Equal(t, "branch-1", branchID)

	// Naming another branch is rejected, not silently corrected.
	_, err = services.ResolveBranch(staff, strPtr("branch-2"))
	assert.ErrorIs(t, err, services.ErrCrossBranchForbidden)
}

func TestResolveBranch_NonAdminWithoutAssignment(t *testing.T) {
	manager := domain.User{UserID: uuid.NewString(), Role: domain.RoleManager}

	_, err := services.ResolveBranch(manager, nil)
	assert.ErrorIs(t, err, services.ErrBranchNotAssigned)

	_, err = services.ResolveBranch(manager, strPtr("branch-1"))
	assert.ErrorIs(t, err, services.ErrBranchNotAssigned)
}
