package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreditTransaction maps one row of wit_wocademy_credit_transactions.
type CreditTransaction struct {
	ID                   int64           `json:"id"`
	TransferredByID      *string         `json:"transferredById"`
	TransferredToID      *string         `json:"transferredToId"`
	ActionBy             *string         `json:"actionBy"`
	Module               string          `json:"module"`
	Amount               decimal.Decimal `json:"amount"`
	BalanceTransferredBy decimal.Decimal `json:"balanceTransferredBy"`
	BalanceTransferredTo decimal.Decimal `json:"balanceTransferredTo"`
	Remarks              string          `json:"remarks"`
	AuditFields
}

// CreditTransfer maps one row of wit_credit_transfers (transfer intent).
type CreditTransfer struct {
	TransferID    string          `json:"transferId"`
	Direction     string          `json:"direction"`
	PayerID       *string         `json:"payerId"`
	RecipientID   *string         `json:"recipientId"`
	Module        string          `json:"module"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	FailureReason *string         `json:"failureReason"`
	LedgerID      *int64          `json:"ledgerId"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}
