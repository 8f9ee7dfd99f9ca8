package mapping

import (
	"github.com/wocademy/utility-backend/internal/core/domain"
	"github.com/wocademy/utility-backend/internal/models"
)

// ToModelCreditTransaction converts a domain CreditTransaction to its model
func ToModelCreditTransaction(d domain.CreditTransaction) models.CreditTransaction {
	return models.CreditTransaction{
		ID:                   d.ID,
		TransferredByID:      d.TransferredByID,
		TransferredToID:      d.TransferredToID,
		ActionBy:             d.ActionBy,
		Module:               string(d.Module),
		Amount:               d.Amount,
		BalanceTransferredBy: d.BalanceTransferredBy,
		BalanceTransferredTo: d.BalanceTransferredTo,
		Remarks:              d.Remarks,
		AuditFields:          ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCreditTransaction converts a model CreditTransaction to its domain form
func ToDomainCreditTransaction(m models.CreditTransaction) domain.CreditTransaction {
	return domain.CreditTransaction{
		ID:                   m.ID,
		TransferredByID:      m.TransferredByID,
		TransferredToID:      m.TransferredToID,
		ActionBy:             m.ActionBy,
		Module:               domain.CreditModule(m.Module),
		Amount:               m.Amount,
		BalanceTransferredBy: m.BalanceTransferredBy,
		BalanceTransferredTo: m.BalanceTransferredTo,
		Remarks:              m.Remarks,
		AuditFields:          ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCreditTransactionSlice converts a slice of models to domain values
func ToDomainCreditTransactionSlice(ms []models.CreditTransaction) []domain.CreditTransaction {
	res := make([]domain.CreditTransaction, len(ms))
	for i, m := range ms {
		res[i] = ToDomainCreditTransaction(m)
	}
	return res
}

// ToModelCreditTransfer converts a domain CreditTransfer to its model
func ToModelCreditTransfer(d domain.CreditTransfer) models.CreditTransfer {
	return models.CreditTransfer{
		TransferID:    d.TransferID,
		Direction:     string(d.Direction),
		PayerID:       d.PayerID,
		RecipientID:   d.RecipientID,
		Module:        string(d.Module),
		Amount:        d.Amount,
		Status:        string(d.Status),
		FailureReason: d.FailureReason,
		LedgerID:      d.LedgerID,
		CreatedAt:     d.CreatedAt,
		UpdatedAt:     d.UpdatedAt,
	}
}

// ToDomainCreditTransfer converts a model CreditTransfer to its domain form
func ToDomainCreditTransfer(m models.CreditTransfer) domain.CreditTransfer {
	return domain.CreditTransfer{
		TransferID:    m.TransferID,
		Direction:     domain.TransferDirection(m.Direction),
		PayerID:       m.PayerID,
		RecipientID:   m.RecipientID,
		Module:        domain.CreditModule(m.Module),
		Amount:        m.Amount,
		Status:        domain.TransferStatus(m.Status),
		FailureReason: m.FailureReason,
		LedgerID:      m.LedgerID,
		CreatedAt:     m.CreatedAt,
		UpdatedAt:     m.UpdatedAt,
	}
}

// ToDomainCreditTransferSlice converts a slice of models to domain values
func ToDomainCreditTransferSlice(ms []models.CreditTransfer) []domain.CreditTransfer {
	res := make([]domain.CreditTransfer, len(ms))
	for i, m := range ms {
		res[i] = ToDomainCreditTransfer(m)
	}
	return res
}
