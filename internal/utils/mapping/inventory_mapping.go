package mapping

import (
	"github.com/branchbooks/branch_bookkeeping_app/internal/core/domain"
	"github.com/branchbooks/branch_bookkeeping_app/internal/models"
)

// ToModelInventoryItem converts a domain InventoryItem to a model InventoryItem.
func ToModelInventoryItem(d domain.InventoryItem) models.InventoryItem {
	return models.InventoryItem{
		ItemID:      d.ItemID,
		BranchID:    d.BranchID,
		Name:        d.Name,
		Unit:        d.Unit,
		Quantity:    d.Quantity,
		CostPerUnit: d.CostPerUnit,
		AuditFields: ToModelAuditFields(d.AuditFields),
		DeletedAt:   d.DeletedAt,
	}
}

// ToDomainInventoryItem converts a model InventoryItem to a domain InventoryItem.
func ToDomainInventoryItem(m models.InventoryItem) domain.InventoryItem {
	return domain.InventoryItem{
		ItemID:      m.ItemID,
		BranchID:    m.BranchID,
		Name:        m.Name,
		Unit:        m.Unit,
		Quantity:    m.Quantity,
		CostPerUnit: m.CostPerUnit,
		AuditFields: ToDomainAuditFields(m.AuditFields),
		DeletedAt:   m.DeletedAt,
	}
}

// ToDomainInventoryItemSlice converts a slice of model items to domain items.
func ToDomainInventoryItemSlice(ms []models.InventoryItem) []domain.InventoryItem {
	ds := make([]domain.InventoryItem, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInventoryItem(m)
	}
	return ds
}

// ToModelInventoryConsumption converts a domain consumption record to its model.
func ToModelInventoryConsumption(d domain.InventoryConsumption) models.InventoryConsumption {
	return models.InventoryConsumption{
		ConsumptionID: d.ConsumptionID,
		ItemID:        d.ItemID,
		BranchID:      d.BranchID,
		Quantity:      d.Quantity,
		Unit:          d.Unit,
		Reason:        d.Reason,
		ConsumedAt:    d.ConsumedAt,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInventoryConsumption converts a model consumption record to its domain form.
func ToDomainInventoryConsumption(m models.InventoryConsumption) domain.InventoryConsumption {
	return domain.InventoryConsumption{
		ConsumptionID: m.ConsumptionID,
		ItemID:        m.ItemID,
		BranchID:      m.BranchID,
		Quantity:      m.Quantity,
		Unit:          m.Unit,
		Reason:        m.Reason,
		ConsumedAt:    m.ConsumedAt,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainInventoryConsumptionSlice converts a slice of model consumption records.
func ToDomainInventoryConsumptionSlice(ms []models.InventoryConsumption) []domain.InventoryConsumption {
	ds := make([]domain.InventoryConsumption, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainInventoryConsumption(m)
	}
	return ds
}
