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

type PgxDebtRepository struct {
	BaseRepository
}

// newPgxDebtRepository creates a new repository for debt data.
func newPgxDebtRepository(pool *pgxpool.Pool) portsrepo.DebtRepositoryWithTx {
	return &PgxDebtRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

// Ensure PgxDebtRepository implements portsrepo.DebtRepositoryWithTx
var _ portsrepo.DebtRepositoryWithTx = (*PgxDebtRepository)(nil)

const debtColumns = `
	d.debt_id, d.branch_id, d.creditor_name, d.original_amount, d.remaining_amount,
	d.issue_date, d.due_date, d.status, d.notes,
	d.created_at, d.created_by, d.last_updated_at, d.last_updated_by
`

func scanDebt(row pgx.Row) (*models.Debt, error) {
	var m models.Debt
	err := row.Scan(
		&m.DebtID,
		&m.BranchID,
		&m.CreditorName,
		&m.OriginalAmount,
		&m.RemainingAmount,
		&m.IssueDate,
		&m.DueDate,
		&m.Status,
		&m.Notes,
		&m.CreatedAt,
		&m.CreatedBy,
		&m.LastUpdatedAt,
		&m.LastUpdatedBy,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

// CreateDebtInTx inserts a new debt row inside the caller's unit of work.
func (r *PgxDebtRepository) CreateDebtInTx(ctx context.Context, tx pgx.Tx, debt domain.Debt) error {
	m := mapping.ToModelDebt(debt)
	query := `
		INSERT INTO debts (
			debt_id, branch_id, creditor_name, original_amount, remaining_amount,
			issue_date, due_date, status, notes,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13);
	`
	_, err := tx.Exec(ctx, query,
		m.DebtID,
		m.BranchID,
		m.CreditorName,
		m.OriginalAmount,
		m.RemainingAmount,
		m.IssueDate,
		m.DueDate,
		m.Status,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) {
			if pgErr.Code == "23505" { // unique_violation
				return apperrors.NewDuplicateError("debt ID " + m.DebtID + " already exists")
			}
			if pgErr.Code == "23503" { // foreign_key_violation
				return apperrors.NewValidationFailedError("branch " + m.BranchID + " does not exist")
			}
		}
		return apperrors.NewAppError(500, "failed to insert debt "+m.DebtID, err)
	}
	return nil
}

// FindDebtByID retrieves a debt by its ID.
func (r *PgxDebtRepository) FindDebtByID(ctx context.Context, debtID string) (*domain.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts d WHERE d.debt_id = $1;`
	m, err := scanDebt(r.Pool.QueryRow(ctx, query, debtID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to find debt by ID "+debtID, err)
	}
	debt := mapping.ToDomainDebt(*m)
	return &debt, nil
}

// FindDebtByIDForUpdate locks the debt row for the remainder of the unit of work.
func (r *PgxDebtRepository) FindDebtByIDForUpdate(ctx context.Context, tx pgx.Tx, debtID string) (*domain.Debt, error) {
	query := `SELECT ` + debtColumns + ` FROM debts d WHERE d.debt_id = $1 FOR UPDATE;`
	m, err := scanDebt(tx.QueryRow(ctx, query, debtID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, apperrors.NewAppError(500, "failed to lock debt "+debtID, err)
	}
	debt := mapping.ToDomainDebt(*m)
	return &debt, nil
}

// UpdateDebtInTx writes the debt's remaining amount and status inside the
// caller's unit of work. The row must already be locked by a ForUpdate read.
func (r *PgxDebtRepository) UpdateDebtInTx(ctx context.Context, tx pgx.Tx, debt domain.Debt) error {
	m := mapping.ToModelDebt(debt)
	query := `
		UPDATE debts
		SET remaining_amount = $2,
		    status = $3,
		    last_updated_at = $4,
		    last_updated_by = $5
		WHERE debt_id = $1;
	`
	cmdTag, err := tx.Exec(ctx, query,
		m.DebtID,
		m.RemainingAmount,
		m.Status,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to update debt "+m.DebtID, err)
	}
	if cmdTag.RowsAffected() == 0 {
		return apperrors.NewNotFoundError("debt " + m.DebtID + " not found for update")
	}
	return nil
}

// AppendPaymentInTx appends a payment record inside the caller's unit of work.
// Payment rows are never updated or deleted.
func (r *PgxDebtRepository) AppendPaymentInTx(ctx context.Context, tx pgx.Tx, payment domain.DebtPayment) error {
	m := mapping.ToModelDebtPayment(payment)
	query := `
		INSERT INTO debt_payments (
			payment_id, debt_id, branch_id, amount, paid_at, notes,
			created_at, created_by, last_updated_at, last_updated_by
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10);
	`
	_, err := tx.Exec(ctx, query,
		m.PaymentID,
		m.DebtID,
		m.BranchID,
		m.Amount,
		m.PaidAt,
		m.Notes,
		m.CreatedAt,
		m.CreatedBy,
		m.LastUpdatedAt,
		m.LastUpdatedBy,
	)
	if err != nil {
		return apperrors.NewAppError(500, "failed to insert payment for debt "+m.DebtID, err)
	}
	return nil
}

// ListDebtsByBranch retrieves a paginated list of debts for a branch using
// token-based pagination, newest issue first.
func (r *PgxDebtRepository) ListDebtsByBranch(ctx context.Context, branchID string, limit int, nextToken *string) ([]domain.Debt, *string, error) {
	if limit <= 0 {
		limit = 20
	}
	fetchLimit := limit + 1

	baseQuery := `SELECT ` + debtColumns + ` FROM debts d`
	filterClause := `WHERE d.branch_id = $1`
	orderByClause := `ORDER BY d.issue_date DESC, d.created_at DESC`

	args := []any{branchID}

	if nextToken != nil && *nextToken != "" {
		lastIssueDate, lastCreatedAt, decodeErr := pagination.DecodeToken(*nextToken)
		if decodeErr != nil {
			return nil, nil, apperrors.NewAppError(400, "invalid nextToken", decodeErr)
		}
		filterClause += ` AND (d.issue_date, d.created_at) < ($2, $3)`
		args = append(args, lastIssueDate, lastCreatedAt)
	}

	query := baseQuery + " " + filterClause + " " + orderByClause + " LIMIT $" + strconv.Itoa(len(args)+1) + ";"
	args = append(args, fetchLimit)

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, apperrors.NewAppError(500, "failed to query debts for branch "+branchID, err)
	}
	defer rows.Close()

	modelDebts := make([]models.Debt, 0, fetchLimit)
	for rows.Next() {
		m, scanErr := scanDebt(rows)
		if scanErr != nil {
			return nil, nil, apperrors.NewAppError(500, "failed to scan debt row for branch "+branchID, scanErr)
		}
		modelDebts = append(modelDebts, *m)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, apperrors.NewAppError(500, "error iterating debt rows for branch "+branchID, err)
	}

	var nextTokenVal *string
	results := modelDebts
	if len(modelDebts) > limit {
		last := modelDebts[limit-1]
		token := pagination.EncodeToken(last.IssueDate, last.CreatedAt)
		nextTokenVal = &token
		results = modelDebts[:limit]
	}

	return mapping.ToDomainDebtSlice(results), nextTokenVal, nil
}
