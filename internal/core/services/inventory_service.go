package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/branchbooks/branch_bookkeeping_app/internal/apperrors"
	"github.com/branchbooks/branch_bookkeeping_app/internal/core/domain"
	portsrepo "github.com/branchbooks/branch_bookkeeping_app/internal/core/ports/repositories"
	portssvc "github.com/branchbooks/branch_bookkeeping_app/internal/core/ports/services"
	"github.com/branchbooks/branch_bookkeeping_app/internal/dto"
	"github.com/branchbooks/branch_bookkeeping_app/internal/utils/costing"
)

// ErrInsufficientQuantity is returned when a consumption asks for more stock
// than the item holds. The check runs under the item's row lock, so two
// concurrent consumptions cannot both pass it.
var ErrInsufficientQuantity = errors.New("insufficient inventory quantity")

// inventoryService maintains the per-branch inventory ledger: quantities,
// weighted-average unit costs and the append-only consumption log.
type inventoryService struct {
	BaseService
	inventoryRepo portsrepo.InventoryRepositoryWithTx
}

// NewInventoryService creates a new inventory service.
func NewInventoryService(inventoryRepo portsrepo.InventoryRepositoryWithTx) portssvc.InventorySvcFacade {
	return &inventoryService{
		inventoryRepo: inventoryRepo,
	}
}

// Ensure inventoryService implements the portssvc.InventorySvcFacade interface
var _ portssvc.InventorySvcFacade = (*inventoryService)(nil)

// PurchaseInTx applies a purchase inside the caller's unit of work. The item
// is looked up by its (branch, name, unit) natural key under a row lock; an
// existing item absorbs the purchase with a re-averaged unit cost, otherwise
// a new item is created. Returns the ID of the affected item.
func (s *inventoryService) PurchaseInTx(ctx context.Context, tx pgx.Tx, p portssvc.InventoryPurchase) (string, error) {
	name := strings.TrimSpace(p.Name)
	unit := strings.TrimSpace(p.Unit)

	item, err := s.inventoryRepo.FindItemByNameForUpdate(ctx, tx, p.BranchID, name, unit)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			return "", err
		}

		unitCost, costErr := costing.UnitCost(p.TotalCost, p.Quantity)
		if costErr != nil {
			return "", apperrors.NewValidationFailedError(costErr.Error())
		}

		newItem := domain.InventoryItem{
			ItemID:      uuid.NewString(),
			BranchID:    p.BranchID,
			Name:        name,
			Unit:        unit,
			Quantity:    p.Quantity,
			CostPerUnit: unitCost,
			AuditFields: domain.AuditFields{
				CreatedAt:     p.Now,
				CreatedBy:     p.UserID,
				LastUpdatedAt: p.Now,
				LastUpdatedBy: p.UserID,
			},
		}
		if err := s.inventoryRepo.CreateItemInTx(ctx, tx, newItem); err != nil {
			return "", err
		}
		s.LogDebug(ctx, "created inventory item from purchase", "item_id", newItem.ItemID, "branch_id", p.BranchID)
		return newItem.ItemID, nil
	}

	newCost, costErr := costing.WeightedAverageCost(item.Quantity, item.CostPerUnit, p.Quantity, p.TotalCost)
	if costErr != nil {
		return "", apperrors.NewValidationFailedError(costErr.Error())
	}

	item.Quantity = item.Quantity.Add(p.Quantity)
	item.CostPerUnit = newCost
	item.LastUpdatedAt = p.Now
	item.LastUpdatedBy = p.UserID

	if err := s.inventoryRepo.UpdateItemInTx(ctx, tx, *item); err != nil {
		return "", err
	}
	return item.ItemID, nil
}

// ConsumeInTx applies a consumption inside the caller's unit of work. The
// sufficiency check and the decrement happen under the same row lock; the
// unit cost is left untouched.
func (s *inventoryService) ConsumeInTx(ctx context.Context, tx pgx.Tx, c portssvc.InventoryConsume) error {
	item, err := s.inventoryRepo.FindItemByIDForUpdate(ctx, tx, c.ItemID)
	if err != nil {
		return err
	}
	// An item belonging to another branch is reported as missing, not as
	// forbidden, so callers cannot tell it exists elsewhere.
	if item.BranchID != c.BranchID {
		return apperrors.NewNotFoundError("inventory item " + c.ItemID + " not found")
	}

	if item.Quantity.LessThan(c.Quantity) {
		return fmt.Errorf("%w: item %s holds %s, requested %s",
			ErrInsufficientQuantity, item.ItemID, item.Quantity.String(), c.Quantity.String())
	}

	item.Quantity = item.Quantity.Sub(c.Quantity)
	item.LastUpdatedAt = c.Now
	item.LastUpdatedBy = c.UserID
	if err := s.inventoryRepo.UpdateItemInTx(ctx, tx, *item); err != nil {
		return err
	}

	rec := domain.InventoryConsumption{
		ConsumptionID: uuid.NewString(),
		ItemID:        item.ItemID,
		BranchID:      item.BranchID,
		Quantity:      c.Quantity,
		Unit:          item.Unit,
		Reason:        c.Reason,
		ConsumedAt:    c.Now,
		AuditFields: domain.AuditFields{
			CreatedAt:     c.Now,
			CreatedBy:     c.UserID,
			LastUpdatedAt: c.Now,
			LastUpdatedBy: c.UserID,
		},
	}
	return s.inventoryRepo.AppendConsumptionInTx(ctx, tx, rec)
}

// GetItemByID returns one inventory item, enforcing branch visibility.
func (s *inventoryService) GetItemByID(ctx context.Context, itemID string, caller domain.User) (*domain.InventoryItem, error) {
	item, err := s.inventoryRepo.FindItemByID(ctx, itemID)
	if err != nil {
		return nil, err
	}
	if _, err := ResolveBranch(caller, &item.BranchID); err != nil {
		return nil, err
	}
	return item, nil
}

// ListItems returns a page of inventory items for the resolved branch.
func (s *inventoryService) ListItems(ctx context.Context, params dto.ListInventoryParams, caller domain.User) (*dto.ListInventoryItemsResponse, error) {
	branchID, err := ResolveBranch(caller, params.BranchID)
	if err != nil {
		return nil, err
	}

	items, nextToken, err := s.inventoryRepo.ListItemsByBranch(ctx, branchID, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "failed to list inventory items", "branch_id", branchID)
		return nil, err
	}

	return &dto.ListInventoryItemsResponse{
		Items:     dto.ToInventoryItemResponses(items),
		NextToken: nextToken,
	}, nil
}

// ListConsumptions returns a page of consumption records for one item.
func (s *inventoryService) ListConsumptions(ctx context.Context, itemID string, params dto.ListInventoryParams, caller domain.User) (*dto.ListConsumptionsResponse, error) {
	// Visibility is checked through the item.
	if _, err := s.GetItemByID(ctx, itemID, caller); err != nil {
		return nil, err
	}

	recs, nextToken, err := s.inventoryRepo.ListConsumptionsByItem(ctx, itemID, params.Limit, params.NextToken)
	if err != nil {
		s.LogError(ctx, err, "failed to list consumptions", "item_id", itemID)
		return nil, err
	}

	return &dto.ListConsumptionsResponse{
		Consumptions: dto.ToConsumptionResponses(recs),
		NextToken:    nextToken,
	}, nil
}

// RecordConsumption runs a standalone consumption in its own unit of work and
// returns the item as it stands afterwards.
func (s *inventoryService) RecordConsumption(ctx context.Context, req dto.ConsumeInventoryRequest, caller domain.User) (*domain.InventoryItem, error) {
	if errs := req.Validate(); errs != nil {
		return nil, errs
	}

	branchID, err := ResolveBranch(caller, req.BranchID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	err = s.inventoryRepo.WithinTx(ctx, func(tx pgx.Tx) error {
		return s.ConsumeInTx(ctx, tx, portssvc.InventoryConsume{
			BranchID: branchID,
			ItemID:   req.ItemID,
			Quantity: req.Quantity,
			Reason:   req.Reason,
			UserID:   caller.UserID,
			Now:      now,
		})
	})
	if err != nil {
		return nil, err
	}

	s.LogInfo(ctx, "inventory consumption recorded",
		"item_id", req.ItemID, "branch_id", branchID, "quantity", req.Quantity.String())
	return s.inventoryRepo.FindItemByID(ctx, req.ItemID)
}
