package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Coupon maps one row of wit_coupons.
type Coupon struct {
	ID            int64           `json:"id"`
	Code          string          `json:"code"`
	Label         string          `json:"label"`
	Status        int16           `json:"status"`
	CouponType    string          `json:"couponType"`
	DiscountType  string          `json:"discountType"`
	DiscountValue decimal.Decimal `json:"discountValue"`
	MaximumNumber int             `json:"maximumNumber"`
	ExpiryDate    *time.Time      `json:"expiryDate"`
	CompanyDomain *string         `json:"companyDomain"`
	AuditFields
}
