package pgsql

import (
	"context"
	"errors"
	"strconv"

	"github.com/branchbooks/branch_bookkeeping_app/internal/apperrors"
	"github.com/branchbooks/branch_bookkeeping_app/internal/core/domain"
	portsrepo "github.com/branchbooks/branch_bookkeeping_app/internal/core/ports/repositories"
	"github.com/branchbooks/branch_bookkeeping_app/internal/models"
	"github.com/branchbooks/branch_bookkeeping_app/internal/utils/mapping"
	"github.com/branchbooks/branch_bookkeeping_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PgxInventoryRepository struct {
	BaseRepository
}

// newPgxInventoryRepository creates a new repository for inventory data.
func newPgxInventoryRepository(pool *pgxpool.Pool) portsrepo.InventoryRepositoryWithTx {
	return &PgxInventoryRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxInventoryRepository implements portsrepo.InventoryRepositoryWithTx
var _ portsrepo.InventoryRepositoryWithTx = (*PgxInventoryRepository)(nil)

const itemColumns = `
	i.item_id, i.branch_id, i.name, i.unit, i.quantity, i.cost_per_unit,
	i.created_at, i.created_by, i.last_updated_at, i.last_updated_by, i.deleted_at
`

func scanItem(row pgx.Row) (*models.InventoryItem, error) {
	var m models.InventoryItem
	err := row.Scan(
		&m.ItemID,
		&m.BranchID,
		&m.Name,
		&m.Unit,
		&m.Quantity,
		&m.CostPerUnit,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&m.DeletedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// FindItemByID retrieves an inventory item by its ID. Soft-deleted items are
// treated as absent.
func (r *PgxInventoryRepository) FindItemByID(ctx context.Context, itemID string) (*domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items i WHERE i.item_id = $1 AND i.deleted_at IS NULL;`
	m, err := scanItem(r.Pool.QueryRow(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find inventory item by ID "+itemID, err)
	}
	item := mapping.ToDomainInventoryItem(*m)
	return &item, nil
}

// FindItemByIDForUpdate locks the item row for the remainder of the unit of work.
func (r *PgxInventoryRepository) FindItemByIDForUpdate(ctx context.Context, tx pgx.Tx, itemID string) (*domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + ` FROM inventory_items i WHERE i.item_id = $1 AND i.deleted_at IS NULL FOR UPDATE;`
	m, err := scanItem(tx.QueryRow(ctx, query, itemID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock inventory item "+itemID, err)
	}
	item := mapping.ToDomainInventoryItem(*m)
	return &item, nil
}

// FindItemByNameForUpdate looks an item up by its (branch, name, unit) natural
// key and locks the row. Returns apperrors.ErrNotFound when no such item exists.
func (r *PgxInventoryRepository) FindItemByNameForUpdate(ctx context.Context, tx pgx.Tx, branchID, name, unit string) (*domain.InventoryItem, error) {
	query := `SELECT ` + itemColumns + `
		FROM inventory_items i
		WHERE i.branch_id = $1 AND i.name = $2 AND i.unit = $3 AND i.deleted_at IS NULL
		FOR UPDATE;`
	m, err := scanItem(tx.QueryRow(ctx, query, branchID, name, unit))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock inventory item "+name+" ("+unit+") in branch "+branchID, err)
	}
	item := mapping.ToDomainInventoryItem(*m)
	return &item, nil
}

// CreateItemInTx inserts a new inventory item inside the caller's unit of work.
func (r *PgxInventoryRepository) CreateItemInTx(ctx context.Context, tx pgx.Tx, item domain.InventoryItem) error {
	m := mapping.ToModelInventoryItem(item)
	query := `
		INSERT INTO inventory_items (
			item_id, branch_id, name, unit, quantity, cost_per_unit,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, query,
		m.ItemID,
		m.BranchID,
		m.Name,
		m.Unit,
		m.Quantity,
		m.CostPerUnit,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation on (branch_id, name, unit)
				return apperrors.NewDuplicateError("inventory item " + m.Name + " (" + m.Unit + ") already exists in branch " + m.BranchID)
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("branch " + m.BranchID + " does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to insert inventory item "+m.ItemID, err)
	}
	return nil
}

// UpdateItemInTx writes the item's quantity and unit cost inside the caller's
// unit of work. The row must already be locked by a ForUpdate read.
func (r *PgxInventoryRepository) UpdateItemInTx(ctx context.Context, tx pgx.Tx, item domain.InventoryItem) error {
	m := mapping.ToModelInventoryItem(item)
	query := `
		UPDATE inventory_items
		SET quantity = $2,
		    cost_per_unit = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE item_id = $1 AND deleted_at IS NULL;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.ItemID,
		m.Quantity,
		m.CostPerUnit,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update inventory item "+m.ItemID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("inventory item " + m.ItemID + " not found for update")
	}
	return nil
}

// AppendConsumptionInTx appends a consumption record inside the caller's unit
// of work. Consumption rows are never updated or deleted.
func (r *PgxInventoryRepository) AppendConsumptionInTx(ctx context.Context, tx pgx.Tx, rec domain.InventoryConsumption) error {
	m := mapping.ToModelInventoryConsumption(rec)
	query := `
		INSERT INTO inventory_consumptions (
			consumption_id, item_id, branch_id, quantity, unit, reason, consumed_at,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := tx.Exec(ctx, query,
		m.ConsumptionID,
		m.ItemID,
		m.BranchID,
		m.Quantity,
		m.Unit,
		m.Reason,
		m.ConsumedAt,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert consumption for item "+m.ItemID, err)
	}
	return nil
}

// ListItemsByBranch retrieves a paginated list of inventory items for a branch
// using token-based pagination, ordered by creation time.
func (r *PgxInventoryRepository) ListItemsByBranch(ctx context.Context, branchID string, limit int, nextToken *string) ([]domain.InventoryItem, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + itemColumns + ` FROM inventory_items i`
	filterClause := `WHERE i.branch_id = $1 AND i.deleted_at IS NULL`
	orderByClause := `ORDER BY i.created_at DESC`

	args := []any{branchID}

	if nextToken != nil && *nextToken != "" {
		lastCreatedAt, decodeErr := pagination.DecodeDateBasedToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		filterClause += ` AND i.created_at < $2`
		args = append(args, lastCreatedAt)
	}

	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query inventory items for branch "+branchID, err)
	}
	defer rows.Close()

	modelItems := make([]models.InventoryItem, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanItem(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan inventory item row for branch "+branchID, scanErr)
		}
		modelItems = append(modelItems, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating inventory item rows for branch "+branchID, err)
	}

	var nextTokenVal *string
	results := modelItems
	if len(modelItems) > limit {
		token := pagination.EncodeDateBasedToken(modelItems[limit-1].CreatedAt)
		nextTokenVal = &token
		results = modelItems[:limit]
	}

	return mapping.ToDomainInventoryItemSlice(results), nextTokenVal, nil
}

// ListConsumptionsByItem retrieves a paginated list of consumption records for
// an item, newest first.
func (r *PgxInventoryRepository) ListConsumptionsByItem(ctx context.Context, itemID string, limit int, nextToken *string) ([]domain.InventoryConsumption, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `
		SELECT c.consumption_id, c.item_id, c.branch_id, c.quantity, c.unit, c.reason, c.consumed_at,
		       c.created_at, c.created_by, c.last_updated_at, c.last_updated_by
		FROM inventory_consumptions c
	`
	filterClause := `WHERE c.item_id = $1`
	orderByClause := `ORDER BY c.consumed_at DESC, c.created_at DESC`

	args := []any{itemID}

	if nextToken != nil && *nextToken != "" {
		lastConsumedAt, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		filterClause += ` AND (c.consumed_at, c.created_at) < ($2, $3)`
		args = append(args, lastConsumedAt, lastCreatedAt)
	}

	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query consumptions for item "+itemID, err)
	}
	defer rows.Close()

	modelRecs := make([]models.InventoryConsumption, 0, fetchLimit)
	for rows.Next() {
		var m models.InventoryConsumption
		scanErr := rows.Scan(
			&m.ConsumptionID,
			&m.ItemID,
			&m.BranchID,
			&m.Quantity,
			&m.Unit,
			&m.Reason,
			&m.ConsumedAt,
			&m.CreatedAt,
			&m.CreatedBy,
			&m.LastUpdatedAt,
			&m.LastUpdatedBy,
		)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan consumption row for item "+itemID, scanErr)
		}
		modelRecs = append(modelRecs, m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating consumption rows for item "+itemID, err)
	}

	var nextTokenVal *string
	results := modelRecs
	if len(modelRecs) > limit {
		last := modelRecs[limit-1]
		token := pagination.EncodeToken(last.ConsumedAt, last.CreatedAt)
		nextTokenVal = &token
		results = modelRecs[:limit]
	}

	return mapping.ToDomainInventoryConsumptionSlice(results), nextTokenVal, nil
}
