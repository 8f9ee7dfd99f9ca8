package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransferDirection says which endpoint initiated the transfer.
type TransferDirection string

const (
	DirectionAssign TransferDirection = "ASSIGN"
	DirectionDeduct TransferDirection = "DEDUCT"
)

// TransferStatus is the lifecycle of a transfer intent.
//
// A transfer intent is written PENDING before the first remote balance call.
// It reaches exactly one terminal state: COMPLETED when both balance calls
// and the ledger write succeeded, FAILED when the first balance call failed
// (no balance was changed), COMPENSATED when the second call failed and the
// first was successfully reversed, and NEEDS_RECONCILIATION when the reversal
// itself failed or a crash left the intent pending past the staleness window.
type TransferStatus string

const (
	TransferPending             TransferStatus = "PENDING"
	TransferCompleted           TransferStatus = "COMPLETED"
	TransferFailed              TransferStatus = "FAILED"
	TransferCompensated         TransferStatus = "COMPENSATED"
	TransferNeedsReconciliation TransferStatus = "NEEDS_RECONCILIATION"
)

// IsValid reports whether s is a known transfer status.
func (s TransferStatus) IsValid() bool {
	switch s {
	case TransferPending, TransferCompleted, TransferFailed, TransferCompensated, TransferNeedsReconciliation:
		return true
	}
	return false
}

// CreditTransfer is the persisted intent record for one two-party balance
// change. It exists so a failure between the two remote calls is detectable
// and auditable instead of silently diverging the balances.
type CreditTransfer struct {
	TransferID    string            `json:"transferId"`
	Direction     TransferDirection `json:"direction"`
	PayerID       *string           `json:"payerId,omitempty"`
	RecipientID   *string           `json:"recipientId,omitempty"`
	Module        CreditModule      `json:"module"`
	Amount        decimal.Decimal   `json:"amount"`
	Status        TransferStatus    `json:"status"`
	FailureReason *string           `json:"failureReason,omitempty"`
	LedgerID      *int64            `json:"ledgerId,omitempty"`
	CreatedAt     time.Time         `json:"createdAt"`
	UpdatedAt     time.Time         `json:"updatedAt"`
}
