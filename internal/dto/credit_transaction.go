package dto

import (
	"time"

	"github.com/shopspring/decimal"
	"github.com/wocademy/utility-backend/internal/core/domain"
)

// AssignCreditRequest is the body of POST /credit-transactions/assign-credit-to-corporate.
type AssignCreditRequest struct {
	TransferredToID string          `json:"transferredToId" binding:"required"`
	TransferredByID *string         `json:"transferredById,omitempty"`
	ActionBy        *string         `json:"actionBy,omitempty"`
	Module          string          `json:"module" binding:"omitempty,oneof=WOCADEMY MENTORSHIP"`
	Amount          decimal.Decimal `json:"amount" binding:"required"` // must be > 0, checked in service
	Remarks         string          `json:"remarks" binding:"omitempty,max=1000"`
}

// DeductCreditRequest is the body of POST /credit-transactions/deduct-credit-from-corporate.
type DeductCreditRequest struct {
	TransferredByID string          `json:"transferredById" binding:"required"`
	TransferredToID *string         `json:"transferredToId,omitempty"`
	ActionBy        *string         `json:"actionBy,omitempty"`
	Module          string          `json:"module" binding:"omitempty,oneof=WOCADEMY MENTORSHIP"`
	Amount          decimal.Decimal `json:"amount" binding:"required"` // must be > 0, checked in service
	Remarks         string          `json:"remarks" binding:"omitempty,max=1000"`
}

// TransferResponse is returned by both transfer endpoints.
type TransferResponse struct {
	StatusCode int    `json:"statusCode"`
	Message    string `json:"message"`
}

// UpdateCreditTransactionRequest is the body of PATCH /credit-transactions/:id.
// Balance snapshots are immutable history and cannot be patched.
type UpdateCreditTransactionRequest struct {
	ActionBy *string `json:"actionBy,omitempty"`
	Module   *string `json:"module,omitempty" binding:"omitempty,oneof=WOCADEMY MENTORSHIP"`
	Remarks  *string `json:"remarks,omitempty" binding:"omitempty,max=1000"`
}

// ListCreditTransactionsParams holds query parameters for the ledger listing.
type ListCreditTransactionsParams struct {
	Limit     int     `form:"limit"`
	NextToken *string `form:"nextToken"`
	Module    *string `form:"module"`
	UserID    *string `form:"userId"`
}

// CreditTransactionResponse is the public shape of a ledger row.
type CreditTransactionResponse struct {
	ID                   int64           `json:"id"`
	TransferredByID      *string         `json:"transferredById,omitempty"`
	TransferredToID      *string         `json:"transferredToId,omitempty"`
	ActionBy             *string         `json:"actionBy,omitempty"`
	Module               string          `json:"module"`
	Amount               decimal.Decimal `json:"amount"`
	BalanceTransferredBy decimal.Decimal `json:"balanceTransferredBy"`
	BalanceTransferredTo decimal.Decimal `json:"balanceTransferredTo"`
	Remarks              string          `json:"remarks"`
	CreatedAt            time.Time       `json:"createdAt"`
	UpdatedAt            time.Time       `json:"updatedAt"`
}

// ToCreditTransactionResponse converts a domain CreditTransaction to its response DTO
func ToCreditTransactionResponse(txn *domain.CreditTransaction) CreditTransactionResponse {
	return CreditTransactionResponse{
		ID:                   txn.ID,
		TransferredByID:      txn.TransferredByID,
		TransferredToID:      txn.TransferredToID,
		ActionBy:             txn.ActionBy,
		Module:               string(txn.Module),
		Amount:               txn.Amount,
		BalanceTransferredBy: txn.BalanceTransferredBy,
		BalanceTransferredTo: txn.BalanceTransferredTo,
		Remarks:              txn.Remarks,
		CreatedAt:            txn.CreatedAt,
		UpdatedAt:            txn.UpdatedAt,
	}
}

// ToCreditTransactionResponses converts a slice of domain transactions
func ToCreditTransactionResponses(txns []domain.CreditTransaction) []CreditTransactionResponse {
	res := make([]CreditTransactionResponse, len(txns))
	for i := range txns {
		res[i] = ToCreditTransactionResponse(&txns[i])
	}
	return res
}

// ListCreditTransactionsResponse wraps a ledger page with its pagination token.
type ListCreditTransactionsResponse struct {
	Transactions []CreditTransactionResponse `json:"transactions"`
	NextToken    *string                     `json:"nextToken,omitempty"`
}

// TransactionStatsResponse is returned by GET /credit-transactions/stats.
type TransactionStatsResponse struct {
	Count         int64           `json:"count"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	AverageAmount decimal.Decimal `json:"averageAmount"`
}

// ToTransactionStatsResponse converts domain stats to the response DTO
func ToTransactionStatsResponse(s *domain.TransactionStats) TransactionStatsResponse {
	return TransactionStatsResponse{
		Count:         s.Count,
		TotalAmount:   s.TotalAmount,
		AverageAmount: s.AverageAmount,
	}
}

// CorporateTotalResponse is returned by GET /credit-transactions/corporate/:userID/total.
type CorporateTotalResponse struct {
	UserID      string          `json:"userId"`
	Module      string          `json:"module,omitempty"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}

// TotalsByTransferredByRequest is the body of POST /credit-transactions/totals-by-transferred-by.
type TotalsByTransferredByRequest struct {
	TransferredByIDs []string `json:"transferredByIds" binding:"required,min=1,dive,required"`
}

// CorporateCreditTotalResponse is one payer's summed transfers.
type CorporateCreditTotalResponse struct {
	TransferredByID string          `json:"transferredById"`
	TotalAmount     decimal.Decimal `json:"totalAmount"`
}

// ToCorporateCreditTotalResponses converts domain totals to response DTOs
func ToCorporateCreditTotalResponses(totals []domain.CorporateCreditTotal) []CorporateCreditTotalResponse {
	res := make([]CorporateCreditTotalResponse, len(totals))
	for i, t := range totals {
		res[i] = CorporateCreditTotalResponse{
			TransferredByID: t.UserID,
			TotalAmount:     t.TotalAmount,
		}
	}
	return res
}

// CreditTransferResponse is the public shape of a transfer intent row.
type CreditTransferResponse struct {
	TransferID    string          `json:"transferId"`
	Direction     string          `json:"direction"`
	PayerID       *string         `json:"payerId,omitempty"`
	RecipientID   *string         `json:"recipientId,omitempty"`
	Module        string          `json:"module"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	FailureReason *string         `json:"failureReason,omitempty"`
	LedgerID      *int64          `json:"ledgerId,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ToCreditTransferResponses converts domain transfer intents to response DTOs
func ToCreditTransferResponses(transfers []domain.CreditTransfer) []CreditTransferResponse {
	res := make([]CreditTransferResponse, len(transfers))
	for i, tr := range transfers {
		res[i] = CreditTransferResponse{
			TransferID:    tr.TransferID,
			Direction:     string(tr.Direction),
			PayerID:       tr.PayerID,
			RecipientID:   tr.RecipientID,
			Module:        string(tr.Module),
			Amount:        tr.Amount,
			Status:        string(tr.Status),
			FailureReason: tr.FailureReason,
			LedgerID:      tr.LedgerID,
			CreatedAt:     tr.CreatedAt,
			UpdatedAt:     tr.UpdatedAt,
		}
	}
	return res
}
