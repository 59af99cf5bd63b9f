package services

import (
	"context"

	"github.com/branchbooks/branch_bookkeeping_app/internal/core/domain"
	"github.com/branchbooks/branch_bookkeeping_app/internal/dto"
)

// TransactionSvcFacade is the public surface of the transaction poster.
type TransactionSvcFacade interface {
	// PostTransaction validates the request, resolves the branch scope for
	// the caller, and runs the combined transaction/inventory/debt posting
	// inside one atomic unit of work.
	PostTransaction(ctx context.Context, req dto.PostTransactionRequest, caller domain.User) (*domain.Transaction, error)
	GetTransactionByID(ctx context.Context, transactionID string, caller domain.User) (*domain.Transaction, error)
	ListTransactions(ctx context.Context, params dto.ListTransactionsParams, caller domain.User) (*dto.ListTransactionsResponse, error)
	UpdateTransaction(ctx context.Context, transactionID string, req dto.UpdateTransactionRequest, caller domain.User) (*domain.Transaction, error)
	// DeleteTransaction soft-deletes the row. Inventory and debt state the
	// posting caused is deliberately not rewound.
	DeleteTransaction(ctx context.Context, transactionID string, caller domain.User) error
}
