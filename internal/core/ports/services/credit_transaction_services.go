package services

import (
	"context"

	"github.com/wocademy/utility-backend/internal/core/domain"
	"github.com/wocademy/utility-backend/internal/dto"
)

// CreditTransactionSvcFacade coordinates two-party credit transfers against
// the user service and serves the ledger read/report/admin surface.
type CreditTransactionSvcFacade interface {
	AssignCreditToCorporate(ctx context.Context, req dto.AssignCreditRequest) (*dto.TransferResponse, error)
	DeductCreditFromCorporate(ctx context.Context, req dto.DeductCreditRequest) (*dto.TransferResponse, error)

	ListTransactions(ctx context.Context, params dto.ListCreditTransactionsParams) (*dto.ListCreditTransactionsResponse, error)
	GetTransactionByID(ctx context.Context, id int64) (*domain.CreditTransaction, error)
	ListTransactionsByUserID(ctx context.Context, userID string) ([]domain.CreditTransaction, error)
	ListTransactionsByModule(ctx context.Context, module string) ([]domain.CreditTransaction, error)
	GetTransactionStats(ctx context.Context) (*domain.TransactionStats, error)
	GetTotalModuleCreditsOfCorporate(ctx context.Context, userID string, module *string) (*domain.CorporateCreditTotal, error)
	GetTotalCreditsByTransferredByIDs(ctx context.Context, transferredByIDs []string) ([]domain.CorporateCreditTotal, error)
	UpdateTransaction(ctx context.Context, id int64, req dto.UpdateCreditTransactionRequest) (*domain.CreditTransaction, error)
	DeleteTransaction(ctx context.Context, id int64) error

	ListTransfers(ctx context.Context, status string) ([]domain.CreditTransfer, error)
	ReconcileStaleTransfers(ctx context.Context) (int64, error)
}
