package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// CouponType restricts who may redeem a coupon.
type CouponType string

const (
	CouponIndividual CouponType = "INDIVIDUAL"
	CouponCorporate  CouponType = "CORPORATE"
	CouponAll        CouponType = "ALL"
)

// IsValid reports whether t is a known coupon type.
func (t CouponType) IsValid() bool {
	switch t {
	case CouponIndividual, CouponCorporate, CouponAll:
		return true
	}
	return false
}

// DiscountType says how DiscountValue is applied.
type DiscountType string

const (
	DiscountPercent DiscountType = "PERCENT"
	DiscountFlat    DiscountType = "FLAT"
)

// IsValid reports whether t is a known discount type.
func (t DiscountType) IsValid() bool {
	switch t {
	case DiscountPercent, DiscountFlat:
		return true
	}
	return false
}

// Coupon statuses. MaximumNumber is advisory metadata: validation never
// counts or decrements usage.
const (
	CouponInactive int16 = 0
	CouponActive   int16 = 1
)

type Coupon struct {
	ID            int64           `json:"id"`
	Code          string          `json:"code"`
	Label         string          `json:"label"`
	Status        int16           `json:"status"`
	CouponType    CouponType      `json:"couponType"`
	DiscountType  DiscountType    `json:"discountType"`
	DiscountValue decimal.Decimal `json:"discountValue"`
	MaximumNumber int             `json:"maximumNumber"`
	ExpiryDate    *time.Time      `json:"expiryDate,omitempty"`
	CompanyDomain *string         `json:"companyDomain,omitempty"`
	AuditFields
}

// CouponVerdict is the result of validating a coupon code. Validation never
// returns an error to its caller; failures collapse into Valid=false.
type CouponVerdict struct {
	Valid   bool    `json:"valid"`
	Message string  `json:"message"`
	Coupon  *Coupon `json:"coupon,omitempty"`
}
