package services

// ServiceContainer bundles the service facades handed to route registration.
type ServiceContainer struct {
	CreditTransaction CreditTransactionSvcFacade
	Coupon            CouponSvcFacade
	Timezone          TimezoneSvcFacade
}
