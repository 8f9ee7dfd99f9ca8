package mapping

import (
	"github.com/wocademy/utility-backend/internal/core/domain"
	"github.com/wocademy/utility-backend/internal/models"
)

// ToModelCoupon converts a domain Coupon to its model
func ToModelCoupon(d domain.Coupon) models.Coupon {
	return models.Coupon{
		ID:            d.ID,
		Code:          d.Code,
		Label:         d.Label,
		Status:        d.Status,
		CouponType:    string(d.CouponType),
		DiscountType:  string(d.DiscountType),
		DiscountValue: d.DiscountValue,
		MaximumNumber: d.MaximumNumber,
		ExpiryDate:    d.ExpiryDate,
		CompanyDomain: d.CompanyDomain,
		AuditFields:   ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainCoupon converts a model Coupon to its domain form
func ToDomainCoupon(m models.Coupon) domain.Coupon {
	return domain.Coupon{
		ID:            m.ID,
		Code:          m.Code,
		Label:         m.Label,
		Status:        m.Status,
		CouponType:    domain.CouponType(m.CouponType),
		DiscountType:  domain.DiscountType(m.DiscountType),
		DiscountValue: m.DiscountValue,
		MaximumNumber: m.MaximumNumber,
		ExpiryDate:    m.ExpiryDate,
		CompanyDomain: m.CompanyDomain,
		AuditFields:   ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainCouponSlice converts a slice of models to domain values
func ToDomainCouponSlice(ms []models.Coupon) []domain.Coupon {
	res := make([]domain.Coupon, len(ms))
	for i, m := range ms {
		res[i] = ToDomainCoupon(m)
	}
	return res
}
