package services

import (
	"errors"

	"github.com/branchbooks/branch_bookkeeping_app/internal/core/domain"
)

var (
	// ErrBranchRequired is returned when an admin caller did not name a branch.
	// Admins have no implicit branch; every branch-scoped operation must say
	// which branch it acts on.
	ErrBranchRequired = errors.New("branch must be specified explicitly")

	// ErrBranchNotAssigned is returned when a non-admin caller has no branch
	// assignment at all.
	ErrBranchNotAssigned = errors.New("user is not assigned to a branch")

	// ErrCrossBranchForbidden is returned when a non-admin caller named a
	// branch other than their own.
	ErrCrossBranchForbidden = errors.New("operation targets another branch")
)

// ResolveBranch decides which branch a branch-scoped operation acts on.
//
// Admin callers act on any branch but must name it; there is no fallthrough
// to a default. Non-admin callers always act on their assigned branch, and
// naming any other branch is rejected rather than silently corrected.
func ResolveBranch(caller domain.User, requested *string) (string, error) {
	if caller.IsAdmin() {
		if requested == nil || *requested == "" {
			return "", ErrBranchRequired
		}
		return *requested, nil
	}

	if caller.BranchID == nil || *caller.BranchID == "" {
		return "", ErrBranchNotAssigned
	}
	if requested != nil && *requested != "" && *requested != *caller.BranchID {
		return "", ErrCrossBranchForbidden
	}
	return *caller.BranchID, nil
}
