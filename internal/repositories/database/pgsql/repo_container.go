package pgsql

import (
	"github.com/jackc/pgx/v5/pgxpool"
	portsrepo "github.com/wocademy/utility-backend/internal/core/ports/repositories"
)

// RepositoryContainer bundles all pgsql-backed repositories.
type RepositoryContainer struct {
	CreditTransaction portsrepo.CreditTransactionRepository
	CreditTransfer    portsrepo.CreditTransferRepository
	Coupon            portsrepo.CouponRepository
	Timezone          portsrepo.TimezoneRepository
}

// NewRepositoryContainer wires all repositories to the shared pool.
func NewRepositoryContainer(pool *pgxpool.Pool) *RepositoryContainer {
	return &RepositoryContainer{
		CreditTransaction: newPgxCreditTransactionRepository(pool),
		CreditTransfer:    newPgxCreditTransferRepository(pool),
		Coupon:            newPgxCouponRepository(pool),
		Timezone:          newPgxTimezoneRepository(pool),
	}
}
