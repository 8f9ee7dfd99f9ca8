package pgsql

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/wocademy/utility-backend/internal/apperrors"
	"github.com/wocademy/utility-backend/internal/core/domain"
	portsrepo "github.com/wocademy/utility-backend/internal/core/ports/repositories"
	"github.com/wocademy/utility-backend/internal/models"
	"github.com/wocademy/utility-backend/internal/utils/mapping"
	"github.com/wocademy/utility-backend/internal/utils/pagination"
)

const creditTransactionColumns = `id, transferred_by_id, transferred_to_id, action_by, module, amount,
	balance_transferred_by, balance_transferred_to, remarks, created_at, updated_at`

type PgxCreditTransactionRepository struct {
	BaseRepository
}

// newPgxCreditTransactionRepository creates a new repository for the credit ledger.
func newPgxCreditTransactionRepository(pool *pgxpool.Pool) portsrepo.CreditTransactionRepository {
	return &PgxCreditTransactionRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CreditTransactionRepository = (*PgxCreditTransactionRepository)(nil)

// SaveTransaction inserts the ledger row and marks the transfer intent
// COMPLETED in one database transaction, so a persisted ledger row always has
// a completed intent pointing at it.
func (r *PgxCreditTransactionRepository) SaveTransaction(ctx context.Context, txn domain.CreditTransaction, transferID string) (*domain.CreditTransaction, error) {
	tx, err := r.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer r.Rollback(ctx, tx)

	modelTxn := mapping.ToModelCreditTransaction(txn)

	insertQuery := `
		INSERT INTO wit_wocademy_credit_transactions (
			transferred_by_id, transferred_to_id, action_by, module, amount,
			balance_transferred_by, balance_transferred_to, remarks, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING id;
	`
	err = tx.QueryRow(ctx, insertQuery,
		modelTxn.TransferredByID,
		modelTxn.TransferredToID,
		modelTxn.ActionBy,
		modelTxn.Module,
		modelTxn.Amount,
		modelTxn.BalanceTransferredBy,
		modelTxn.BalanceTransferredTo,
		modelTxn.Remarks,
		modelTxn.CreatedAt,
		modelTxn.UpdatedAt,
	).Scan(&modelTxn.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrDuplicate
		}
		return nil, fmt.Errorf("failed to insert credit transaction: %w", err)
	}

	intentQuery := `
		UPDATE wit_credit_transfers
		SET status = $1, ledger_id = $2, updated_at = $3
		WHERE transfer_id = $4;
	`
	if _, err := tx.Exec(ctx, intentQuery, string(domain.TransferCompleted), modelTxn.ID, modelTxn.UpdatedAt, transferID); err != nil {
		return nil, fmt.Errorf("failed to complete transfer intent %s: %w", transferID, err)
	}

	if err := r.Commit(ctx, tx); err != nil {
		return nil, err
	}

	saved := mapping.ToDomainCreditTransaction(modelTxn)
	return &saved, nil
}

// FindTransactionByID retrieves a ledger row by its primary key.
func (r *PgxCreditTransactionRepository) FindTransactionByID(ctx context.Context, id int64) (*domain.CreditTransaction, error) {
	query := fmt.Sprintf(`SELECT %s FROM wit_wocademy_credit_transactions WHERE id = $1;`, creditTransactionColumns)

	row := r.Pool.QueryRow(ctx, query, id)
	modelTxn, err := scanCreditTransaction(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find credit transaction %d: %w", id, err)
	}

	domainTxn := mapping.ToDomainCreditTransaction(*modelTxn)
	return &domainTxn, nil
}

// ListTransactions retrieves a token-paginated page of the ledger, newest first.
func (r *PgxCreditTransactionRepository) ListTransactions(ctx context.Context, filter portsrepo.CreditTransactionFilter, limit int, nextToken *string) ([]domain.CreditTransaction, *string, error) {
	conditions := make([]string, 0, 3)
	args := make([]interface{}, 0, 5)

	if filter.Module != nil {
		args = append(args, string(*filter.Module))
		conditions = append(conditions, fmt.Sprintf("module = $%d", len(args)))
	}
	if filter.UserID != nil {
		args = append(args, *filter.UserID)
		conditions = append(conditions, fmt.Sprintf("(transferred_by_id = $%d OR transferred_to_id = $%d)", len(args), len(args)))
	}
	if nextToken != nil && *nextToken != "" {
		createdAt, id, err := pagination.DecodeToken(*nextToken)
		if err != nil {
			return nil, nil, fmt.Errorf("%w: %s", apperrors.ErrValidation, err.Error())
		}
		args = append(args, createdAt)
		createdIdx := len(args)
		args = append(args, id)
		conditions = append(conditions, fmt.Sprintf("(created_at, id) < ($%d, $%d)", createdIdx, len(args)))
	}

	whereClause := ""
	if len(conditions) > 0 {
		whereClause = "WHERE " + strings.Join(conditions, " AND ")
	}
	args = append(args, limit+1) // fetch one extra row to detect the next page

	query := fmt.Sprintf(`
		SELECT %s
		FROM wit_wocademy_credit_transactions
		%s
		ORDER BY created_at DESC, id DESC
		LIMIT $%d;
	`, creditTransactionColumns, whereClause, len(args))

	rows, err := r.Pool.Query(ctx, query, args...)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to query credit transactions: %w", err)
	}
	defer rows.Close()

	modelTxns, err := collectCreditTransactions(rows)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to scan credit transactions: %w", err)
	}

	var token *string
	if len(modelTxns) > limit {
		modelTxns = modelTxns[:limit]
		last := modelTxns[len(modelTxns)-1]
		encoded := pagination.EncodeToken(last.CreatedAt, last.ID)
		token = &encoded
	}

	return mapping.ToDomainCreditTransactionSlice(modelTxns), token, nil
}

// ListTransactionsByUserID retrieves every ledger row where the user is payer or recipient.
func (r *PgxCreditTransactionRepository) ListTransactionsByUserID(ctx context.Context, userID string) ([]domain.CreditTransaction, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM wit_wocademy_credit_transactions
		WHERE transferred_by_id = $1 OR transferred_to_id = $1
		ORDER BY created_at DESC, id DESC;
	`, creditTransactionColumns)

	rows, err := r.Pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query credit transactions by user %s: %w", userID, err)
	}
	defer rows.Close()

	modelTxns, err := collectCreditTransactions(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan credit transactions by user: %w", err)
	}
	return mapping.ToDomainCreditTransactionSlice(modelTxns), nil
}

// ListTransactionsByModule retrieves every ledger row for a module.
func (r *PgxCreditTransactionRepository) ListTransactionsByModule(ctx context.Context, module domain.CreditModule) ([]domain.CreditTransaction, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM wit_wocademy_credit_transactions
		WHERE module = $1
		ORDER BY created_at DESC, id DESC;
	`, creditTransactionColumns)

	rows, err := r.Pool.Query(ctx, query, string(module))
	if err != nil {
		return nil, fmt.Errorf("failed to query credit transactions by module %s: %w", module, err)
	}
	defer rows.Close()

	modelTxns, err := collectCreditTransactions(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to scan credit transactions by module: %w", err)
	}
	return mapping.ToDomainCreditTransactionSlice(modelTxns), nil
}

// GetTransactionStats aggregates count, sum and average over the whole ledger.
func (r *PgxCreditTransactionRepository) GetTransactionStats(ctx context.Context) (*domain.TransactionStats, error) {
	query := `
		SELECT COUNT(*), COALESCE(SUM(amount), 0), COALESCE(AVG(amount), 0)
		FROM wit_wocademy_credit_transactions;
	`
	var stats domain.TransactionStats
	err := r.Pool.QueryRow(ctx, query).Scan(&stats.Count, &stats.TotalAmount, &stats.AverageAmount)
	if err != nil {
		return nil, fmt.Errorf("failed to compute transaction stats: %w", err)
	}
	stats.AverageAmount = stats.AverageAmount.Round(2)
	return &stats, nil
}

// SumModuleCreditsOfCorporate sums amounts received by one corporate, optionally per module.
func (r *PgxCreditTransactionRepository) SumModuleCreditsOfCorporate(ctx context.Context, userID string, module *domain.CreditModule) (*domain.CorporateCreditTotal, error) {
	args := []interface{}{userID}
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM wit_wocademy_credit_transactions
		WHERE transferred_to_id = $1
	`
	if module != nil {
		args = append(args, string(*module))
		query += fmt.Sprintf(" AND module = $%d", len(args))
	}
	query += ";"

	var total decimal.Decimal
	if err := r.Pool.QueryRow(ctx, query, args...).Scan(&total); err != nil {
		return nil, fmt.Errorf("failed to sum module credits for %s: %w", userID, err)
	}

	return &domain.CorporateCreditTotal{UserID: userID, TotalAmount: total}, nil
}

// SumCreditsByTransferredByIDs sums transferred amounts grouped by payer.
// Payers with no ledger rows are returned with a zero total.
func (r *PgxCreditTransactionRepository) SumCreditsByTransferredByIDs(ctx context.Context, transferredByIDs []string) ([]domain.CorporateCreditTotal, error) {
	query := `
		SELECT transferred_by_id, COALESCE(SUM(amount), 0)
		FROM wit_wocademy_credit_transactions
		WHERE transferred_by_id = ANY($1)
		GROUP BY transferred_by_id;
	`
	rows, err := r.Pool.Query(ctx, query, transferredByIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to sum credits by payers: %w", err)
	}
	defer rows.Close()

	sums := make(map[string]decimal.Decimal, len(transferredByIDs))
	for rows.Next() {
		var payerID string
		var total decimal.Decimal
		if err := rows.Scan(&payerID, &total); err != nil {
			return nil, fmt.Errorf("failed to scan payer total: %w", err)
		}
		sums[payerID] = total
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read payer totals: %w", err)
	}

	totals := make([]domain.CorporateCreditTotal, len(transferredByIDs))
	for i, id := range transferredByIDs {
		total, ok := sums[id]
		if !ok {
			total = decimal.Zero
		}
		totals[i] = domain.CorporateCreditTotal{UserID: id, TotalAmount: total}
	}
	return totals, nil
}

// UpdateTransaction rewrites the mutable fields of a ledger row. Balance
// snapshots are immutable history and are deliberately not in the SET list.
func (r *PgxCreditTransactionRepository) UpdateTransaction(ctx context.Context, txn domain.CreditTransaction) error {
	modelTxn := mapping.ToModelCreditTransaction(txn)
	query := `
		UPDATE wit_wocademy_credit_transactions
		SET action_by = $1, module = $2, remarks = $3, updated_at = $4
		WHERE id = $5;
	`
	tag, err := r.Pool.Exec(ctx, query,
		modelTxn.ActionBy,
		modelTxn.Module,
		modelTxn.Remarks,
		modelTxn.UpdatedAt,
		modelTxn.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update credit transaction %d: %w", modelTxn.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteTransaction removes a ledger row by id.
func (r *PgxCreditTransactionRepository) DeleteTransaction(ctx context.Context, id int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM wit_wocademy_credit_transactions WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete credit transaction %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanCreditTransaction(row pgx.Row) (*models.CreditTransaction, error) {
	var m models.CreditTransaction
	err := row.Scan(
		&m.ID,
		&m.TransferredByID,
		&m.TransferredToID,
		&m.ActionBy,
		&m.Module,
		&m.Amount,
		&m.BalanceTransferredBy,
		&m.BalanceTransferredTo,
		&m.Remarks,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func collectCreditTransactions(rows pgx.Rows) ([]models.CreditTransaction, error) {
	return pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.CreditTransaction, error) {
		m, err := scanCreditTransaction(row)
		if err != nil {
			return models.CreditTransaction{}, err
		}
		return *m, nil
	})
}
