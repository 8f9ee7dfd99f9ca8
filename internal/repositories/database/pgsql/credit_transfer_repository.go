package pgsql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wocademy/utility-backend/internal/apperrors"
	"github.com/wocademy/utility-backend/internal/core/domain"
	portsrepo "github.com/wocademy/utility-backend/internal/core/ports/repositories"
	"github.com/wocademy/utility-backend/internal/models"
	"github.com/wocademy/utility-backend/internal/utils/mapping"
)

const creditTransferColumns = `transfer_id, direction, payer_id, recipient_id, module, amount,
	status, failure_reason, ledger_id, created_at, updated_at`

type PgxCreditTransferRepository struct {
	BaseRepository
}

// newPgxCreditTransferRepository creates a new repository for transfer intents.
func newPgxCreditTransferRepository(pool *pgxpool.Pool) portsrepo.CreditTransferRepository {
	return &PgxCreditTransferRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CreditTransferRepository = (*PgxCreditTransferRepository)(nil)

// SaveTransfer inserts a new transfer intent row.
func (r *PgxCreditTransferRepository) SaveTransfer(ctx context.Context, transfer domain.CreditTransfer) error {
	m := mapping.ToModelCreditTransfer(transfer)
	query := `
		INSERT INTO wit_credit_transfers (
			transfer_id, direction, payer_id, recipient_id, module, amount,
			status, failure_reason, ledger_id, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11);
	`
	_, err := r.Pool.Exec(ctx, query,
		m.TransferID,
		m.Direction,
		m.PayerID,
		m.RecipientID,
		m.Module,
		m.Amount,
		m.Status,
		m.FailureReason,
		m.LedgerID,
		m.CreatedAt,
		m.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to insert transfer intent %s: %w", m.TransferID, err)
	}
	return nil
}

// UpdateTransferStatus sets the terminal status of an intent.
func (r *PgxCreditTransferRepository) UpdateTransferStatus(ctx context.Context, transferID string, status domain.TransferStatus, failureReason *string) error {
	query := `
		UPDATE wit_credit_transfers
		SET status = $1, failure_reason = $2, updated_at = $3
		WHERE transfer_id = $4;
	`
	tag, err := r.Pool.Exec(ctx, query, string(status), failureReason, time.Now().UTC(), transferID)
	if err != nil {
		return fmt.Errorf("failed to update transfer intent %s: %w", transferID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// FindTransferByID retrieves one transfer intent.
func (r *PgxCreditTransferRepository) FindTransferByID(ctx context.Context, transferID string) (*domain.CreditTransfer, error) {
	query := fmt.Sprintf(`SELECT %s FROM wit_credit_transfers WHERE transfer_id = $1;`, creditTransferColumns)

	m, err := scanCreditTransfer(r.Pool.QueryRow(ctx, query, transferID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find transfer intent %s: %w", transferID, err)
	}

	domainTransfer := mapping.ToDomainCreditTransfer(*m)
	return &domainTransfer, nil
}

// ListTransfersByStatus retrieves intents in a given state, oldest first so
// reconciliation works through the backlog in order.
func (r *PgxCreditTransferRepository) ListTransfersByStatus(ctx context.Context, status domain.TransferStatus) ([]domain.CreditTransfer, error) {
	query := fmt.Sprintf(`
		SELECT %s
		FROM wit_credit_transfers
		WHERE status = $1
		ORDER BY created_at ASC;
	`, creditTransferColumns)

	rows, err := r.Pool.Query(ctx, query, string(status))
	if err != nil {
		return nil, fmt.Errorf("failed to query transfer intents by status %s: %w", status, err)
	}
	defer rows.Close()

	modelTransfers, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.CreditTransfer, error) {
		m, err := scanCreditTransfer(row)
		if err != nil {
			return models.CreditTransfer{}, err
		}
		return *m, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan transfer intents: %w", err)
	}

	return mapping.ToDomainCreditTransferSlice(modelTransfers), nil
}

// MarkStalePending flips PENDING intents older than cutoff to NEEDS_RECONCILIATION.
func (r *PgxCreditTransferRepository) MarkStalePending(ctx context.Context, cutoff time.Time) (int64, error) {
	query := `
		UPDATE wit_credit_transfers
		SET status = $1, updated_at = $2
		WHERE status = $3 AND created_at < $4;
	`
	tag, err := r.Pool.Exec(ctx, query,
		string(domain.TransferNeedsReconciliation),
		time.Now().UTC(),
		string(domain.TransferPending),
		cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("failed to mark stale transfer intents: %w", err)
	}
	return tag.RowsAffected(), nil
}

func scanCreditTransfer(row pgx.Row) (*models.CreditTransfer, error) {
	var m models.CreditTransfer
	err := row.Scan(
		&m.TransferID,
		&m.Direction,
		&m.PayerID,
		&m.RecipientID,
		&m.Module,
		&m.Amount,
		&m.Status,
		&m.FailureReason,
		&m.LedgerID,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
