package services

import (
	"context"

	"github.com/branchbooks/branch_bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// AuditRecorder receives before/after snapshots of entity changes. Invoked
// after the owning unit of work commits; failures are logged by callers,
// never surfaced.
type AuditRecorder interface {
	RecordCreate(ctx context.Context, actorID, entityType, entityID string, after any) error
	RecordUpdate(ctx context.Context, actorID, entityType, entityID string, before, after any) error
	RecordDelete(ctx context.Context, actorID, entityType, entityID string, before any) error
}

// TransactionEvent is the payload published to the notifier after a posting
// commits.
type TransactionEvent struct {
	TransactionID string
	Kind          domain.TransactionKind
	Amount        decimal.Decimal
	Category      string
	BranchID      string
	ActorID       string
}

// TransactionNotifier is a best-effort post-commit sink. Publishing never
// blocks the posting path and never fails it.
type TransactionNotifier interface {
	NotifyNewTransaction(event TransactionEvent)
	Close()
}
