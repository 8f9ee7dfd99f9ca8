package repositories

import (
	"context"
	"time"

	"github.com/wocademy/utility-backend/internal/core/domain"
)

// CreditTransactionFilter narrows ledger listing.
type CreditTransactionFilter struct {
	Module *domain.CreditModule
	UserID *string // matches transferred_by_id OR transferred_to_id
}

// CreditTransactionRepository is the ledger store.
type CreditTransactionRepository interface {
	// SaveTransaction inserts a ledger row and the terminal intent update in
	// one database transaction. It fills in the generated ID and timestamps
	// on the returned transaction.
	SaveTransaction(ctx context.Context, txn domain.CreditTransaction, transferID string) (*domain.CreditTransaction, error)
	FindTransactionByID(ctx context.Context, id int64) (*domain.CreditTransaction, error)
	ListTransactions(ctx context.Context, filter CreditTransactionFilter, limit int, nextToken *string) ([]domain.CreditTransaction, *string, error)
	ListTransactionsByUserID(ctx context.Context, userID string) ([]domain.CreditTransaction, error)
	ListTransactionsByModule(ctx context.Context, module domain.CreditModule) ([]domain.CreditTransaction, error)
	GetTransactionStats(ctx context.Context) (*domain.TransactionStats, error)
	SumModuleCreditsOfCorporate(ctx context.Context, userID string, module *domain.CreditModule) (*domain.CorporateCreditTotal, error)
	SumCreditsByTransferredByIDs(ctx context.Context, transferredByIDs []string) ([]domain.CorporateCreditTotal, error)
	UpdateTransaction(ctx context.Context, txn domain.CreditTransaction) error
	DeleteTransaction(ctx context.Context, id int64) error
}

// CreditTransferRepository is the transfer intent store.
type CreditTransferRepository interface {
	SaveTransfer(ctx context.Context, transfer domain.CreditTransfer) error
	UpdateTransferStatus(ctx context.Context, transferID string, status domain.TransferStatus, failureReason *string) error
	FindTransferByID(ctx context.Context, transferID string) (*domain.CreditTransfer, error)
	ListTransfersByStatus(ctx context.Context, status domain.TransferStatus) ([]domain.CreditTransfer, error)
	// MarkStalePending moves PENDING intents older than cutoff to
	// NEEDS_RECONCILIATION and returns how many rows were touched.
	MarkStalePending(ctx context.Context, cutoff time.Time) (int64, error)
}
