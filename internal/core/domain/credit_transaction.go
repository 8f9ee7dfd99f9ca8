package domain

import (
	"github.com/shopspring/decimal"
)

// CreditModule is the product domain the transferred credits apply to.
type CreditModule string

const (
	ModuleWocademy   CreditModule = "WOCADEMY"
	ModuleMentorship CreditModule = "MENTORSHIP"
)

// IsValid reports whether m is a known credit module.
func (m CreditModule) IsValid() bool {
	switch m {
	case ModuleWocademy, ModuleMentorship:
		return true
	}
	return false
}

// CreditTransaction is one immutable ledger row: the amount moved between two
// parties and the post-transaction balances the user service reported for
// each of them. Balances are snapshots captured at write time; the live
// balance stays with the user service.
type CreditTransaction struct {
	ID                   int64           `json:"id"`
	TransferredByID      *string         `json:"transferredById,omitempty"`
	TransferredToID      *string         `json:"transferredToId,omitempty"`
	ActionBy             *string         `json:"actionBy,omitempty"`
	Module               CreditModule    `json:"module"`
	Amount               decimal.Decimal `json:"amount"`
	BalanceTransferredBy decimal.Decimal `json:"balanceTransferredBy"`
	BalanceTransferredTo decimal.Decimal `json:"balanceTransferredTo"`
	Remarks              string          `json:"remarks"`
	AuditFields
}

// TransactionStats aggregates the ledger for reporting.
type TransactionStats struct {
	Count         int64           `json:"count"`
	TotalAmount   decimal.Decimal `json:"totalAmount"`
	AverageAmount decimal.Decimal `json:"averageAmount"`
}

// CorporateCreditTotal is one user's summed credit amount. Depending on the
// query it covers, the user is either the payer or the recipient of the rows.
type CorporateCreditTotal struct {
	UserID      string          `json:"userId"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
}
