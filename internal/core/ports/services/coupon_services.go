package services

import (
	"context"

	"github.com/wocademy/utility-backend/internal/core/domain"
	"github.com/wocademy/utility-backend/internal/dto"
)

// CouponSvcFacade serves coupon CRUD and the validation decision table.
type CouponSvcFacade interface {
	CreateCoupon(ctx context.Context, req dto.CreateCouponRequest) (*domain.Coupon, error)
	GetCouponByID(ctx context.Context, id int64) (*domain.Coupon, error)
	GetCouponByCode(ctx context.Context, code string) (*domain.Coupon, error)
	ListCoupons(ctx context.Context) ([]domain.Coupon, error)
	UpdateCoupon(ctx context.Context, id int64, req dto.UpdateCouponRequest) (*domain.Coupon, error)
	DeleteCoupon(ctx context.Context, id int64) error

	// ValidateCoupon never returns an error; lookup failures collapse into an
	// invalid verdict so checkout callers only ever see a verdict shape.
	ValidateCoupon(ctx context.Context, code string, userDomain string) *domain.CouponVerdict
}
