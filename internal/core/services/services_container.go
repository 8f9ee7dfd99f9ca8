package services

import (
	portsrepo "github.com/wocademy/utility-backend/internal/core/ports/repositories"
	portssvc "github.com/wocademy/utility-backend/internal/core/ports/services"
	"github.com/wocademy/utility-backend/internal/repositories/database/pgsql"
	"github.com/wocademy/utility-backend/pkg/config"
)

// NewServiceContainer creates the service container with all dependencies wired.
func NewServiceContainer(
	cfg *config.Config,
	repos *pgsql.RepositoryContainer,
	userSvc portssvc.UserSvcFacade,
	timezoneCache portsrepo.TimezoneCache,
) *portssvc.ServiceContainer {
	return &portssvc.ServiceContainer{
		CreditTransaction: NewCreditTransactionService(
			repos.CreditTransaction,
			repos.CreditTransfer,
			userSvc,
			cfg.TransferStaleAfter,
		),
		Coupon:   NewCouponService(repos.Coupon),
		Timezone: NewTimezoneService(repos.Timezone, timezoneCache),
	}
}
