package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/wocademy/utility-backend/internal/apperrors"
	"github.com/wocademy/utility-backend/internal/core/domain"
	portsrepo "github.com/wocademy/utility-backend/internal/core/ports/repositories"
	portssvc "github.com/wocademy/utility-backend/internal/core/ports/services"
	"github.com/wocademy/utility-backend/internal/dto"
	"github.com/wocademy/utility-backend/internal/middleware"
)

const (
	defaultListLimit = 10
	maxListLimit     = 100
)

// CreditTransactionService coordinates two-party transfers against the user
// service and serves the ledger surface. Every transfer is recorded as an
// intent row before the first remote call so a crash between the two balance
// changes is detectable afterwards.
type CreditTransactionService struct {
	txnRepo      portsrepo.CreditTransactionRepository
	transferRepo portsrepo.CreditTransferRepository
	userSvc      portssvc.UserSvcFacade
	staleAfter   time.Duration
}

// NewCreditTransactionService creates the transfer coordinator service.
func NewCreditTransactionService(
	txnRepo portsrepo.CreditTransactionRepository,
	transferRepo portsrepo.CreditTransferRepository,
	userSvc portssvc.UserSvcFacade,
	staleAfter time.Duration,
) *CreditTransactionService {
	return &CreditTransactionService{
		txnRepo:      txnRepo,
		transferRepo: transferRepo,
		userSvc:      userSvc,
		staleAfter:   staleAfter,
	}
}

var _ portssvc.CreditTransactionSvcFacade = (*CreditTransactionService)(nil)

// AssignCreditToCorporate credits the recipient first, then deducts the payer
// when one is named. The payer deduction failing triggers a best-effort
// reversal of the recipient credit.
func (s *CreditTransactionService) AssignCreditToCorporate(ctx context.Context, req dto.AssignCreditRequest) (*dto.TransferResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	module, err := resolveModule(req.Module)
	if err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewAppError(http.StatusBadRequest, apperrors.CodeValidation, "amount must be greater than zero", apperrors.ErrValidation)
	}
	if req.TransferredByID != nil && *req.TransferredByID == req.TransferredToID {
		return nil, apperrors.NewAppError(http.StatusBadRequest, apperrors.CodeValidation, "payer and recipient must be different users", apperrors.ErrValidation)
	}

	now := time.Now().UTC()
	transferID := uuid.NewString()
	recipientID := req.TransferredToID
	intent := domain.CreditTransfer{
		TransferID:  transferID,
		Direction:   domain.DirectionAssign,
		PayerID:     req.TransferredByID,
		RecipientID: &recipientID,
		Module:      module,
		Amount:      req.Amount,
		Status:      domain.TransferPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.transferRepo.SaveTransfer(ctx, intent); err != nil {
		return nil, fmt.Errorf("failed to persist transfer intent: %w", err)
	}

	recipientBalance, err := s.userSvc.AssignCredit(ctx, recipientID, req.Amount)
	if err != nil {
		s.finishTransfer(ctx, transferID, domain.TransferFailed, err)
		return nil, err
	}

	payerBalance := decimal.Zero
	if req.TransferredByID != nil {
		payerBalance, err = s.userSvc.DeductCredit(ctx, *req.TransferredByID, req.Amount)
		if err != nil {
			s.compensate(ctx, transferID, err, func(ctx context.Context) error {
				_, revErr := s.userSvc.DeductCredit(ctx, recipientID, req.Amount)
				return revErr
			})
			return nil, err
		}
	}

	txn := domain.CreditTransaction{
		TransferredByID:      req.TransferredByID,
		TransferredToID:      &recipientID,
		ActionBy:             req.ActionBy,
		Module:               module,
		Amount:               req.Amount,
		BalanceTransferredBy: payerBalance,
		BalanceTransferredTo: recipientBalance,
		Remarks:              req.Remarks,
		AuditFields:          domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if _, err := s.txnRepo.SaveTransaction(ctx, txn, transferID); err != nil {
		// Balances already moved; only the local record is missing.
		logger.Error("ledger write failed after balance changes", "transfer_id", transferID, "error", err)
		s.finishTransfer(ctx, transferID, domain.TransferNeedsReconciliation, err)
		return nil, fmt.Errorf("failed to record credit assignment: %w", err)
	}

	return &dto.TransferResponse{
		StatusCode: http.StatusCreated,
		Message:    "Assigned credit to corporate Created",
	}, nil
}

// DeductCreditFromCorporate verifies the payer exists and has enough balance,
// deducts the payer, then credits the recipient when one is named. The
// recipient credit failing triggers a best-effort re-credit of the payer.
func (s *CreditTransactionService) DeductCreditFromCorporate(ctx context.Context, req dto.DeductCreditRequest) (*dto.TransferResponse, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	module, err := resolveModule(req.Module)
	if err != nil {
		return nil, err
	}
	if !req.Amount.IsPositive() {
		return nil, apperrors.NewAppError(http.StatusBadRequest, apperrors.CodeValidation, "amount must be greater than zero", apperrors.ErrValidation)
	}
	if req.TransferredToID != nil && *req.TransferredToID == req.TransferredByID {
		return nil, apperrors.NewAppError(http.StatusBadRequest, apperrors.CodeValidation, "payer and recipient must be different users", apperrors.ErrValidation)
	}

	payerID := req.TransferredByID
	if _, err := s.userSvc.GetUserByID(ctx, payerID); err != nil {
		return nil, err
	}
	balance, err := s.userSvc.GetCreditBalance(ctx, payerID)
	if err != nil {
		return nil, err
	}
	if req.Amount.GreaterThan(balance) {
		return nil, apperrors.NewAppError(http.StatusBadRequest, apperrors.CodeInsufficientCredits, "insufficient credits for this deduction", apperrors.ErrInsufficientCredits)
	}

	now := time.Now().UTC()
	transferID := uuid.NewString()
	intent := domain.CreditTransfer{
		TransferID:  transferID,
		Direction:   domain.DirectionDeduct,
		PayerID:     &payerID,
		RecipientID: req.TransferredToID,
		Module:      module,
		Amount:      req.Amount,
		Status:      domain.TransferPending,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := s.transferRepo.SaveTransfer(ctx, intent); err != nil {
		return nil, fmt.Errorf("failed to persist transfer intent: %w", err)
	}

	payerBalance, err := s.userSvc.DeductCredit(ctx, payerID, req.Amount)
	if err != nil {
		s.finishTransfer(ctx, transferID, domain.TransferFailed, err)
		return nil, err
	}

	recipientBalance := decimal.Zero
	if req.TransferredToID != nil {
		recipientBalance, err = s.userSvc.AssignCredit(ctx, *req.TransferredToID, req.Amount)
		if err != nil {
			s.compensate(ctx, transferID, err, func(ctx context.Context) error {
				_, revErr := s.userSvc.AssignCredit(ctx, payerID, req.Amount)
				return revErr
			})
			return nil, err
		}
	}

	txn := domain.CreditTransaction{
		TransferredByID:      &payerID,
		TransferredToID:      req.TransferredToID,
		ActionBy:             req.ActionBy,
		Module:               module,
		Amount:               req.Amount,
		BalanceTransferredBy: payerBalance,
		BalanceTransferredTo: recipientBalance,
		Remarks:              req.Remarks,
		AuditFields:          domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}
	if _, err := s.txnRepo.SaveTransaction(ctx, txn, transferID); err != nil {
		logger.Error("ledger write failed after balance changes", "transfer_id", transferID, "error", err)
		s.finishTransfer(ctx, transferID, domain.TransferNeedsReconciliation, err)
		return nil, fmt.Errorf("failed to record credit deduction: %w", err)
	}

	return &dto.TransferResponse{
		StatusCode: http.StatusCreated,
		Message:    "Deducted credit from corporate Created",
	}, nil
}

// compensate reverses the first balance change after the second one failed.
// The intent ends COMPENSATED when the reversal succeeds, NEEDS_RECONCILIATION
// when it does not; no ledger row is written either way.
func (s *CreditTransactionService) compensate(ctx context.Context, transferID string, cause error, reverse func(context.Context) error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	if revErr := reverse(ctx); revErr != nil {
		logger.Error("compensation failed, balances may have diverged",
			"transfer_id", transferID, "cause", cause, "error", revErr)
		s.finishTransfer(ctx, transferID, domain.TransferNeedsReconciliation,
			fmt.Errorf("compensation failed: %w (cause: %v)", revErr, cause))
		return
	}
	logger.Warn("transfer compensated after partial failure", "transfer_id", transferID, "cause", cause)
	s.finishTransfer(ctx, transferID, domain.TransferCompensated, cause)
}

// finishTransfer records a terminal intent status. A failure here only loses
// audit detail, so it is logged rather than propagated.
func (s *CreditTransactionService) finishTransfer(ctx context.Context, transferID string, status domain.TransferStatus, cause error) {
	var reason *string
	if cause != nil {
		msg := cause.Error()
		reason = &msg
	}
	if err := s.transferRepo.UpdateTransferStatus(ctx, transferID, status, reason); err != nil {
		middleware.GetLoggerFromCtx(ctx).Error("failed to update transfer intent status",
			"transfer_id", transferID, "status", status, "error", err)
	}
}

// ListTransactions returns one ledger page plus the token for the next one.
func (s *CreditTransactionService) ListTransactions(ctx context.Context, params dto.ListCreditTransactionsParams) (*dto.ListCreditTransactionsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}

	filter := portsrepo.CreditTransactionFilter{UserID: params.UserID}
	if params.Module != nil && *params.Module != "" {
		module := domain.CreditModule(*params.Module)
		if !module.IsValid() {
			return nil, apperrors.NewAppError(http.StatusBadRequest, apperrors.CodeValidation, "invalid module filter", apperrors.ErrValidation)
		}
		filter.Module = &module
	}

	txns, nextToken, err := s.txnRepo.ListTransactions(ctx, filter, limit, params.NextToken)
	if err != nil {
		return nil, fmt.Errorf("failed to list credit transactions: %w", err)
	}

	return &dto.ListCreditTransactionsResponse{
		Transactions: dto.ToCreditTransactionResponses(txns),
		NextToken:    nextToken,
	}, nil
}

// GetTransactionByID returns a single ledger row.
func (s *CreditTransactionService) GetTransactionByID(ctx context.Context, id int64) (*domain.CreditTransaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return txn, nil
}

// ListTransactionsByUserID returns rows where the user was payer or recipient.
func (s *CreditTransactionService) ListTransactionsByUserID(ctx context.Context, userID string) ([]domain.CreditTransaction, error) {
	txns, err := s.txnRepo.ListTransactionsByUserID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for user %s: %w", userID, err)
	}
	return txns, nil
}

// ListTransactionsByModule returns all rows for one module.
func (s *CreditTransactionService) ListTransactionsByModule(ctx context.Context, module string) ([]domain.CreditTransaction, error) {
	m := domain.CreditModule(module)
	if !m.IsValid() {
		return nil, apperrors.NewAppError(http.StatusBadRequest, apperrors.CodeValidation, "invalid module", apperrors.ErrValidation)
	}
	txns, err := s.txnRepo.ListTransactionsByModule(ctx, m)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions for module %s: %w", module, err)
	}
	return txns, nil
}

// GetTransactionStats aggregates the full ledger.
func (s *CreditTransactionService) GetTransactionStats(ctx context.Context) (*domain.TransactionStats, error) {
	stats, err := s.txnRepo.GetTransactionStats(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to compute transaction stats: %w", err)
	}
	return stats, nil
}

// GetTotalModuleCreditsOfCorporate sums credits assigned to one corporate,
// optionally restricted to a module.
func (s *CreditTransactionService) GetTotalModuleCreditsOfCorporate(ctx context.Context, userID string, module *string) (*domain.CorporateCreditTotal, error) {
	var moduleFilter *domain.CreditModule
	if module != nil && *module != "" {
		m := domain.CreditModule(*module)
		if !m.IsValid() {
			return nil, apperrors.NewAppError(http.StatusBadRequest, apperrors.CodeValidation, "invalid module filter", apperrors.ErrValidation)
		}
		moduleFilter = &m
	}
	total, err := s.txnRepo.SumModuleCreditsOfCorporate(ctx, userID, moduleFilter)
	if err != nil {
		return nil, fmt.Errorf("failed to sum credits for corporate %s: %w", userID, err)
	}
	return total, nil
}

// GetTotalCreditsByTransferredByIDs returns one total per requested payer,
// zero-filled for payers with no transfers.
func (s *CreditTransactionService) GetTotalCreditsByTransferredByIDs(ctx context.Context, transferredByIDs []string) ([]domain.CorporateCreditTotal, error) {
	totals, err := s.txnRepo.SumCreditsByTransferredByIDs(ctx, transferredByIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to sum credits by payer: %w", err)
	}
	return totals, nil
}

// UpdateTransaction merges the patchable fields into an existing ledger row.
// Balance snapshots are immutable history and cannot be changed here.
func (s *CreditTransactionService) UpdateTransaction(ctx context.Context, id int64, req dto.UpdateCreditTransactionRequest) (*domain.CreditTransaction, error) {
	txn, err := s.txnRepo.FindTransactionByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.ActionBy != nil {
		txn.ActionBy = req.ActionBy
	}
	if req.Module != nil {
		module := domain.CreditModule(*req.Module)
		if !module.IsValid() {
			return nil, apperrors.NewAppError(http.StatusBadRequest, apperrors.CodeValidation, "invalid module", apperrors.ErrValidation)
		}
		txn.Module = module
	}
	if req.Remarks != nil {
		txn.Remarks = *req.Remarks
	}
	txn.UpdatedAt = time.Now().UTC()

	if err := s.txnRepo.UpdateTransaction(ctx, *txn); err != nil {
		return nil, fmt.Errorf("failed to update transaction %d: %w", id, err)
	}
	return txn, nil
}

// DeleteTransaction removes one ledger row.
func (s *CreditTransactionService) DeleteTransaction(ctx context.Context, id int64) error {
	if err := s.txnRepo.DeleteTransaction(ctx, id); err != nil {
		return err
	}
	return nil
}

// ListTransfers returns transfer intents in the given state for the
// reconciliation surface.
func (s *CreditTransactionService) ListTransfers(ctx context.Context, status string) ([]domain.CreditTransfer, error) {
	st := domain.TransferStatus(status)
	if status == "" || !st.IsValid() {
		return nil, apperrors.NewAppError(http.StatusBadRequest, apperrors.CodeValidation, "a valid status query parameter is required", apperrors.ErrValidation)
	}
	transfers, err := s.transferRepo.ListTransfersByStatus(ctx, st)
	if err != nil {
		return nil, fmt.Errorf("failed to list transfer intents: %w", err)
	}
	return transfers, nil
}

// ReconcileStaleTransfers flags PENDING intents older than the staleness
// window. Run at startup so crashes mid-transfer surface for manual review.
func (s *CreditTransactionService) ReconcileStaleTransfers(ctx context.Context) (int64, error) {
	cutoff := time.Now().UTC().Add(-s.staleAfter)
	count, err := s.transferRepo.MarkStalePending(ctx, cutoff)
	if err != nil {
		return 0, fmt.Errorf("failed to reconcile stale transfers: %w", err)
	}
	if count > 0 {
		middleware.GetLoggerFromCtx(ctx).Warn("stale transfer intents flagged for reconciliation", "count", count)
	}
	return count, nil
}

// resolveModule defaults an empty module to WOCADEMY and rejects unknown ones.
func resolveModule(module string) (domain.CreditModule, error) {
	if module == "" {
		return domain.ModuleWocademy, nil
	}
	m := domain.CreditModule(module)
	if !m.IsValid() {
		return "", apperrors.NewAppError(http.StatusBadRequest, apperrors.CodeValidation, "invalid module", apperrors.ErrValidation)
	}
	return m, nil
}
