package repositories

import (
	"context"

	"github.com/wocademy/utility-backend/internal/core/domain"
)

// CouponRepository is the coupon store.
type CouponRepository interface {
	// SaveCoupon inserts a coupon and fills in the generated ID on the
	// returned value. Returns apperrors.ErrDuplicate on a code collision.
	SaveCoupon(ctx context.Context, coupon domain.Coupon) (*domain.Coupon, error)
	FindCouponByID(ctx context.Context, id int64) (*domain.Coupon, error)
	FindCouponByCode(ctx context.Context, code string) (*domain.Coupon, error)
	ListCoupons(ctx context.Context) ([]domain.Coupon, error)
	UpdateCoupon(ctx context.Context, coupon domain.Coupon) error
	DeleteCoupon(ctx context.Context, id int64) error
}
