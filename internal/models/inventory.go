package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryItem maps to the inventory_items table.
type InventoryItem struct {
	ItemID      string          `json:"itemID"`
	BranchID    string          `json:"branchID"`
	Name        string          `json:"name"`
	Unit        string          `json:"unit"`
	Quantity    decimal.Decimal `json:"quantity"`
	CostPerUnit decimal.Decimal `json:"costPerUnit"`
	AuditFields
	DeletedAt *time.Time `json:"deletedAt,omitempty"`
}

// InventoryConsumption maps to the inventory_consumptions table.
type InventoryConsumption struct {
	ConsumptionID string          `json:"consumptionID"`
	ItemID        string          `json:"itemID"`
	BranchID      string          `json:"branchID"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	Reason        string          `json:"reason"`
	ConsumedAt    time.Time       `json:"consumedAt"`
	AuditFields
}
