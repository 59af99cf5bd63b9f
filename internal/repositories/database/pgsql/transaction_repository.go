package pgsql

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
	"time"

	"github.com/branchbooks/branch_bookkeeping_app/internal/apperrors"
	"github.com/branchbooks/branch_bookkeeping_app/internal/core/domain"
	portsrepo "github.com/branchbooks/branch_bookkeeping_app/internal/core/ports/repositories"
	"github.com/branchbooks/branch_bookkeeping_app/internal/models"
	"github.com/branchbooks/branch_bookkeeping_app/internal/utils/mapping"
	"github.com/branchbooks/branch_bookkeeping_app/internal/utils/pagination"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
)

type PgxTransactionRepository struct {
	BaseRepository
}

// newPgxTransactionRepository creates a new repository for transaction data.
func newPgxTransactionRepository(pool *pgxpool.Pool) portsrepo.TransactionRepositoryWithTx {
	return &PgxTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxTransactionRepository implements portsrepo.TransactionRepositoryWithTx
var _ portsrepo.TransactionRepositoryWithTx = (*PgxTransactionRepository)(nil)

const transactionColumns = `
	t.transaction_id, t.branch_id, t.kind, t.total_amount, t.paid_amount,
	t.category, t.payment_method, t.transaction_date, t.notes,
	t.debt_id, t.inventory_item_id, t.deleted_at,
	t.created_at, t.created_by, t.last_updated_at, t.last_updated_by
`

// scanTransaction scans one row of transactionColumns into a model.
func scanTransaction(row pgx.Row) (*models.Transaction, error) {
	var m models.Transaction
	var paymentMethod, notes sql.NullString
	err := row.Scan(
		&m.TransactionID,
		&m.BranchID,
		&m.Kind,
		&m.TotalAmount,
		&m.PaidAmount,
		&m.Category,
		&paymentMethod,
		&m.TransactionDate,
		&notes,
		&m.DebtID,
		&m.InventoryItemID,
		&m.DeletedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	m.PaymentMethod = paymentMethod.String
	m.Notes = notes.String
	return &m, nil
}

// CreateTransactionInTx inserts the transaction row inside the caller's unit of work.
func (r *PgxTransactionRepository) CreateTransactionInTx(ctx context.Context, tx pgx.Tx, txn domain.Transaction) error {
	modelTxn := mapping.ToModelTransaction(txn)
	query := `
		INSERT INTO transactions (
			transaction_id, branch_id, kind, total_amount, paid_amount,
			category, payment_method, transaction_date, notes,
			debt_id, inventory_item_id,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15);
	`
	_, err := tx.Exec(ctx, query,
		modelTxn.TransactionID,
		modelTxn.BranchID,
		modelTxn.Kind,
		modelTxn.TotalAmount,
		modelTxn.PaidAmount,
		modelTxn.Category,
		modelTxn.PaymentMethod,
		modelTxn.TransactionDate,
		modelTxn.Notes,
		modelTxn.DebtID,
		modelTxn.InventoryItemID,
		modelTxn.CreatedAt,
		modelTxn.CreatedBy,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewDuplicateError("transaction ID " + modelTxn.TransactionID + " already exists")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("transaction references a missing branch, item or debt")
			}
		}
		return apperrors.NewAppError(500, "failed to insert transaction "+modelTxn.TransactionID, err)
	}
	return nil
}

// FindTransactionByID retrieves a transaction by its ID, soft-deleted rows included.
// Callers decide whether a deleted row is visible.
func (r *PgxTransactionRepository) FindTransactionByID(ctx context.Context, transactionID string) (*domain.Transaction, error) {
	query := `SELECT ` + transactionColumns + ` FROM transactions t WHERE t.transaction_id = $1;`
	m, err := scanTransaction(r.Pool.QueryRow(ctx, query, transactionID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction by ID "+transactionID, err)
	}
	domainTxn := mapping.ToDomainTransaction(*m)
	return &domainTxn, nil
}

// FindTransactionByIDInTx re-reads the transaction inside the open unit of
// work with its branch, creator, inventory item and debt relations hydrated.
func (r *PgxTransactionRepository) FindTransactionByIDInTx(ctx context.Context, tx pgx.Tx, transactionID string) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `,
		       b.branch_id, b.name, b.address, b.is_active,
		       u.user_id, u.username, u.name, u.role, u.branch_id,
		       i.item_id, i.branch_id, i.name, i.unit, i.quantity, i.cost_per_unit,
		       d.debt_id, d.branch_id, d.creditor_name, d.original_amount, d.remaining_amount,
		       d.issue_date, d.due_date, d.status, d.notes
		FROM transactions t
		JOIN branches b ON t.branch_id = b.branch_id
		JOIN users u ON t.created_by = u.user_id
		LEFT JOIN inventory_items i ON t.inventory_item_id = i.item_id
		LEFT JOIN debts d ON t.debt_id = d.debt_id
		WHERE t.transaction_id = $1;
	`

	var m models.Transaction
	var paymentMethod, notes sql.NullString
	var branch models.Branch
	var creator models.User
	var itemID, itemBranchID, itemName, itemUnit sql.NullString
	var itemQuantity, itemCostPerUnit decimal.NullDecimal
	var debtID, debtBranchID, debtCreditor, debtStatus, debtNotes sql.NullString
	var debtOriginal, debtRemaining decimal.NullDecimal
	var debtIssueDate, debtDueDate sql.NullTime

	err := tx.QueryRow(ctx, query, transactionID).Scan(
		&m.TransactionID,
		&m.BranchID,
		&m.Kind,
		&m.TotalAmount,
		&m.PaidAmount,
		&m.Category,
		&paymentMethod,
		&m.TransactionDate,
		&notes,
		&m.DebtID,
		&m.InventoryItemID,
		&m.DeletedAt,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
		&branch.BranchID,
		&branch.Name,
		&branch.Address,
		&branch.IsActive,
		&creator.UserID,
		&creator.Username,
		&creator.Name,
		&creator.Role,
		&creator.BranchID,
		&itemID,
		&itemBranchID,
		&itemName,
		&itemUnit,
		&itemQuantity,
		&itemCostPerUnit,
		&debtID,
		&debtBranchID,
		&debtCreditor,
		&debtOriginal,
		&debtRemaining,
		&debtIssueDate,
		&debtDueDate,
		&debtStatus,
		&debtNotes,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find transaction "+transactionID+" with relations", err)
	}
	m.PaymentMethod = paymentMethod.String
	m.Notes = notes.String

	domainTxn := mapping.ToDomainTransaction(m)

	domainBranch := mapping.ToDomainBranch(branch)
	domainTxn.Branch = &domainBranch
	domainCreator := mapping.ToDomainUser(creator)
	domainTxn.Creator = &domainCreator

	if itemID.Valid {
		item := domain.InventoryItem{
			ItemID:      itemID.String,
			BranchID:    itemBranchID.String,
			Name:        itemName.String,
			Unit:        itemUnit.String,
			Quantity:    itemQuantity.Decimal,
			CostPerUnit: itemCostPerUnit.Decimal,
		}
		domainTxn.InventoryItem = &item
	}
	if debtID.Valid {
		debt := domain.Debt{
			DebtID:          debtID.String,
			BranchID:        debtBranchID.String,
			CreditorName:    debtCreditor.String,
			OriginalAmount:  debtOriginal.Decimal,
			RemainingAmount: debtRemaining.Decimal,
			IssueDate:       debtIssueDate.Time,
			Status:          domain.DebtStatus(debtStatus.String),
			Notes:           debtNotes.String,
		}
		if debtDueDate.Valid {
			debt.DueDate = &debtDueDate.Time
		}
		domainTxn.Debt = &debt
	}

	return &domainTxn, nil
}

// ListTransactionsByBranch retrieves a paginated list of transactions for a
// branch using token-based pagination. Soft-deleted rows are excluded.
func (r *PgxTransactionRepository) ListTransactionsByBranch(ctx context.Context, branchID string, limit int, nextToken *string) ([]domain.Transaction, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	// Fetch one extra item to determine if there's a next page.
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + transactionColumns + ` FROM transactions t`
	filterClause := `WHERE t.branch_id = $1 AND t.deleted_at IS NULL`
	// Ordering must be stable: transaction_date DESC with created_at as tie-breaker.
	orderByClause := `ORDER BY t.transaction_date DESC, t.created_at DESC`

	args := []any{branchID}

	if nextToken != nil && *nextToken != "" {
		lastDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		filterClause += ` AND (t.transaction_date, t.created_at) < ($2, $3)`
		args = append(args, lastDate, lastCreatedAt)
	}

	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query transactions for branch "+branchID, err)
	}
	defer rows.Close()

	modelTxns := make([]models.Transaction, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanTransaction(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan transaction row for branch "+branchID, scanErr)
		}
		modelTxns = append(modelTxns, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating transaction rows for branch "+branchID, err)
	}

	var nextTokenVal *string
	results := modelTxns
	if len(modelTxns) > limit {
		lastTxn := modelTxns[limit-1]
		token := pagination.EncodeToken(lastTxn.TransactionDate, lastTxn.CreatedAt)
		nextTokenVal = &token
		results = modelTxns[:limit]
	}

	return mapping.ToDomainTransactionSlice(results), nextTokenVal, nil
}

// UpdateTransaction updates the editable fields of a transaction. Links to
// inventory and debt rows are immutable once posted.
func (r *PgxTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.Transaction) error {
	modelTxn := mapping.ToModelTransaction(txn)
	query := `
		UPDATE transactions
		SET total_amount = $2,
		    paid_amount = $3,
		    category = $4,
		    payment_method = $5,
		    transaction_date = $6,
		    notes = $7,
		    last_updated_at = $8,
		    last_updated_by = $9
		WHERE transaction_id = $1 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query,
		modelTxn.TransactionID,
		modelTxn.TotalAmount,
		modelTxn.PaidAmount,
		modelTxn.Category,
		modelTxn.PaymentMethod,
		modelTxn.TransactionDate,
		modelTxn.Notes,
		modelTxn.LastUpdatedAt,
		modelTxn.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update transaction "+modelTxn.TransactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction " + modelTxn.TransactionID + " not found for update")
	}
	return nil
}

// MarkTransactionDeleted soft-deletes the transaction. Already-deleted rows
// are left untouched and reported as not found.
func (r *PgxTransactionRepository) MarkTransactionDeleted(ctx context.Context, transactionID string, deletedBy string, deletedAt time.Time) error {
	query := `
		UPDATE transactions
		SET deleted_at = $2,
		    last_updated_at = $2,
		    last_updated_by = $3
		WHERE transaction_id = $1 AND deleted_at IS NULL;
	`
	cmdTag, err := r.Pool.Exec(ctx, query, transactionID, deletedAt, deletedBy)
	if err != nil {
		return apperrors.NewAppError(500, "failed to soft delete transaction "+transactionID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("transaction " + transactionID + " not found for delete")
	}
	return nil
}
