package dto

import (
	"regexp"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
	"github.com/wocademy/utility-backend/internal/core/domain"
)

var couponCodePattern = regexp.MustCompile(`^[A-Z0-9]{8}$`)

// CouponCodeValidator backs the "couponcode" binding tag: exactly eight
// uppercase alphanumerics.
func CouponCodeValidator(fl validator.FieldLevel) bool {
	return couponCodePattern.MatchString(fl.Field().String())
}

// CreateCouponRequest defines the data needed to create a new coupon.
type CreateCouponRequest struct {
	Code          string          `json:"code" binding:"required,couponcode"`
	Label         string          `json:"label" binding:"required,min=1,max=20"`
	Status        *int16          `json:"status" binding:"omitempty,oneof=0 1"`
	CouponType    string          `json:"couponType" binding:"required,oneof=INDIVIDUAL CORPORATE ALL"`
	DiscountType  string          `json:"discountType" binding:"required,oneof=PERCENT FLAT"`
	DiscountValue decimal.Decimal `json:"discountValue" binding:"required"`
	MaximumNumber int             `json:"maximumNumber" binding:"omitempty,gte=0"`
	ExpiryDate    *time.Time      `json:"expiryDate,omitempty"` // must be strictly in the future, checked in service
	CompanyDomain *string         `json:"companyDomain,omitempty"`
}

// UpdateCouponRequest defines the patchable fields of a coupon.
type UpdateCouponRequest struct {
	Code          *string          `json:"code,omitempty" binding:"omitempty,couponcode"`
	Label         *string          `json:"label,omitempty" binding:"omitempty,min=1,max=20"`
	Status        *int16           `json:"status,omitempty" binding:"omitempty,oneof=0 1"`
	CouponType    *string          `json:"couponType,omitempty" binding:"omitempty,oneof=INDIVIDUAL CORPORATE ALL"`
	DiscountType  *string          `json:"discountType,omitempty" binding:"omitempty,oneof=PERCENT FLAT"`
	DiscountValue *decimal.Decimal `json:"discountValue,omitempty"`
	MaximumNumber *int             `json:"maximumNumber,omitempty" binding:"omitempty,gte=0"`
	ExpiryDate    *time.Time       `json:"expiryDate,omitempty"`
	CompanyDomain *string          `json:"companyDomain,omitempty"`
}

// CouponResponse is the public shape of a coupon.
type CouponResponse struct {
	ID            int64           `json:"id"`
	Code          string          `json:"code"`
	Label         string          `json:"label"`
	Status        int16           `json:"status"`
	CouponType    string          `json:"couponType"`
	DiscountType  string          `json:"discountType"`
	DiscountValue decimal.Decimal `json:"discountValue"`
	MaximumNumber int             `json:"maximumNumber"`
	ExpiryDate    *time.Time      `json:"expiryDate,omitempty"`
	CompanyDomain *string         `json:"companyDomain,omitempty"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// ToCouponResponse converts a domain Coupon to its response DTO
func ToCouponResponse(c *domain.Coupon) CouponResponse {
	return CouponResponse{
		ID:            c.ID,
		Code:          c.Code,
		Label:         c.Label,
		Status:        c.Status,
		CouponType:    string(c.CouponType),
		DiscountType:  string(c.DiscountType),
		DiscountValue: c.DiscountValue,
		MaximumNumber: c.MaximumNumber,
		ExpiryDate:    c.ExpiryDate,
		CompanyDomain: c.CompanyDomain,
		CreatedAt:     c.CreatedAt,
		UpdatedAt:     c.UpdatedAt,
	}
}

// ToCouponResponses converts a slice of domain coupons
func ToCouponResponses(coupons []domain.Coupon) []CouponResponse {
	res := make([]CouponResponse, len(coupons))
	for i := range coupons {
		res[i] = ToCouponResponse(&coupons[i])
	}
	return res
}

// ValidateCouponResponse is returned by GET /coupons/validate/:code.
// Validation never fails with an error status; problems collapse into valid=false.
type ValidateCouponResponse struct {
	Valid   bool            `json:"valid"`
	Message string          `json:"message"`
	Coupon  *CouponResponse `json:"coupon,omitempty"`
}

// ToValidateCouponResponse converts a domain verdict to its response DTO
func ToValidateCouponResponse(v *domain.CouponVerdict) ValidateCouponResponse {
	resp := ValidateCouponResponse{
		Valid:   v.Valid,
		Message: v.Message,
	}
	if v.Coupon != nil {
		couponResp := ToCouponResponse(v.Coupon)
		resp.Coupon = &couponResp
	}
	return resp
}
