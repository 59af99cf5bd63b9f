package services

import (
	"context"
	"time"

	"github.com/branchbooks/branch_bookkeeping_app/internal/core/domain"
	"github.com/branchbooks/branch_bookkeeping_app/internal/dto"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
)

// InventoryPurchase describes a stock purchase applied inside a caller-owned
// unit of work.
type InventoryPurchase struct {
	BranchID  string
	Name      string
	Unit      string
	Quantity  decimal.Decimal
	TotalCost decimal.Decimal
	UserID    string
	Now       time.Time
}

// InventoryConsume describes a stock consumption applied inside a caller-owned
// unit of work.
type InventoryConsume struct {
	BranchID string
	ItemID   string
	Quantity decimal.Decimal
	Reason   string
	UserID   string
	Now      time.Time
}

// InventoryPostingSvc is the slice of the inventory ledger the transaction
// poster composes into its own unit of work.
type InventoryPostingSvc interface {
	// PurchaseInTx merges the purchase into the (branch, name, unit) item,
	// re-averaging its unit cost, or creates the item. Returns the item ID.
	PurchaseInTx(ctx context.Context, tx pgx.Tx, p InventoryPurchase) (string, error)
	// ConsumeInTx checks sufficiency under the item's row lock, decrements
	// the quantity and appends a consumption record.
	ConsumeInTx(ctx context.Context, tx pgx.Tx, c InventoryConsume) error
}

// InventorySvcFacade is the full inventory ledger surface.
type InventorySvcFacade interface {
	InventoryPostingSvc
	GetItemByID(ctx context.Context, itemID string, caller domain.User) (*domain.InventoryItem, error)
	ListItems(ctx context.Context, params dto.ListInventoryParams, caller domain.User) (*dto.ListInventoryItemsResponse, error)
	ListConsumptions(ctx context.Context, itemID string, params dto.ListInventoryParams, caller domain.User) (*dto.ListConsumptionsResponse, error)
	// RecordConsumption runs a standalone consumption in its own unit of work.
	RecordConsumption(ctx context.Context, req dto.ConsumeInventoryRequest, caller domain.User) (*domain.InventoryItem, error)
}
