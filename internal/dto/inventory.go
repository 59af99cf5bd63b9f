package dto

import (
	"time"

	"github.com/branchbooks/branch_bookkeeping_app/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ConsumeInventoryRequest records stock usage outside of a financial posting
// (spoilage, internal use). The sufficiency check applies the same as for
// transaction-linked consumptions.
type ConsumeInventoryRequest struct {
	ItemID   string          `json:"itemID" binding:"required" validate:"required"`
	Quantity decimal.Decimal `json:"quantity"`
	Reason   string          `json:"reason" binding:"required" validate:"required"`
	BranchID *string         `json:"branchID,omitempty"` // Admin callers only
}

// Validate performs the explicit validation pass for a consumption request.
func (r ConsumeInventoryRequest) Validate() ValidationErrors {
	errs := ValidationErrors(structFieldErrors(r))
	if r.Quantity.LessThanOrEqual(decimal.Zero) {
		errs = append(errs, FieldError{Field: "quantity", Reason: "must be positive"})
	}
	if len(errs) == 0 {
		return nil
	}
	return errs
}

// ListInventoryParams holds query parameters for inventory listings.
type ListInventoryParams struct {
	BranchID  *string `form:"branchId"`
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
}

// InventoryItemResponse is the outbound shape of an inventory item.
type InventoryItemResponse struct {
	ItemID        string          `json:"itemID"`
	BranchID      string          `json:"branchID"`
	Name          string          `json:"name"`
	Unit          string          `json:"unit"`
	Quantity      decimal.Decimal `json:"quantity"`
	CostPerUnit   decimal.Decimal `json:"costPerUnit"`
	LastUpdatedAt time.Time       `json:"lastUpdatedAt"`
}

// ConsumptionResponse is the outbound shape of a consumption record.
type ConsumptionResponse struct {
	ConsumptionID string          `json:"consumptionID"`
	ItemID        string          `json:"itemID"`
	BranchID      string          `json:"branchID"`
	Quantity      decimal.Decimal `json:"quantity"`
	Unit          string          `json:"unit"`
	Reason        string          `json:"reason"`
	ConsumedAt    time.Time       `json:"consumedAt"`
	CreatedBy     string          `json:"createdBy"`
}

// ListInventoryItemsResponse is a page of inventory items.
type ListInventoryItemsResponse struct {
	Items     []InventoryItemResponse `json:"items"`
	NextToken *string                 `json:"nextToken,omitempty"`
}

// ListConsumptionsResponse is a page of consumption records.
type ListConsumptionsResponse struct {
	Consumptions []ConsumptionResponse `json:"consumptions"`
	NextToken    *string               `json:"nextToken,omitempty"`
}

// ToInventoryItemResponse converts a domain item to its response DTO.
func ToInventoryItemResponse(it *domain.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ItemID:        it.ItemID,
		BranchID:      it.BranchID,
		Name:          it.Name,
		Unit:          it.Unit,
		Quantity:      it.Quantity,
		CostPerUnit:   it.CostPerUnit,
		LastUpdatedAt: it.LastUpdatedAt,
	}
}

// ToInventoryItemResponses converts a slice of domain items.
func ToInventoryItemResponses(items []domain.InventoryItem) []InventoryItemResponse {
	out := make([]InventoryItemResponse, len(items))
	for i := range items {
		out[i] = ToInventoryItemResponse(&items[i])
	}
	return out
}

// ToConsumptionResponse converts a domain consumption record to its response DTO.
func ToConsumptionResponse(c *domain.InventoryConsumption) ConsumptionResponse {
	return ConsumptionResponse{
		ConsumptionID: c.ConsumptionID,
		ItemID:        c.ItemID,
		BranchID:      c.BranchID,
		Quantity:      c.Quantity,
		Unit:          c.Unit,
		Reason:        c.Reason,
		ConsumedAt:    c.ConsumedAt,
		CreatedBy:     c.CreatedBy,
	}
}

// ToConsumptionResponses converts a slice of domain consumption records.
func ToConsumptionResponses(cs []domain.InventoryConsumption) []ConsumptionResponse {
	out := make([]ConsumptionResponse, len(cs))
	for i := range cs {
		out[i] = ToConsumptionResponse(&cs[i])
	}
	return out
}
