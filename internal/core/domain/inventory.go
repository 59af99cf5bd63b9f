package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryOperation declares what a transaction's inventory line does to stock.
type InventoryOperation string

const (
	OpPurchase    InventoryOperation = "PURCHASE"
	OpConsumption InventoryOperation = "CONSUMPTION"
)

// InventoryItem holds the quantity and weighted-average unit cost of a stocked
// good. (BranchID, Name, Unit) is the natural key: purchases of the same good
// merge into the existing row instead of creating duplicates.
type InventoryItem struct {
	ItemID      string          `json:"itemID"` // Primary Key (UUID)
	BranchID    string          `json:"branchID"`
	Name        string          `json:"name"`
	Unit        string          `json:"unit"` // Unit of measure (kg, pcs, ...)
	Quantity    decimal.Decimal `json:"quantity"`
	CostPerUnit decimal.Decimal `json:"costPerUnit"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// InventoryConsumption is an append-only record of stock leaving an item.
type InventoryConsumption struct {
	ConsumptionID string          `json:"consumptionID"` // Primary Key (UUID)
	ItemID        string          `json:"itemID"`        // FK -> InventoryItem
	BranchID      string          `json:"branchID"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	Reason        string          `json:"reason"` // Typically the originating transaction ID
	ConsumedAt    time.Time       `json:"consumedAt"`
	AuditFields
}
