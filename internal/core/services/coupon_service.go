package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/wocademy/utility-backend/internal/apperrors"
	"github.com/wocademy/utility-backend/internal/core/domain"
	portsrepo "github.com/wocademy/utility-backend/internal/core/ports/repositories"
	portssvc "github.com/wocademy/utility-backend/internal/core/ports/services"
	"github.com/wocademy/utility-backend/internal/dto"
	"github.com/wocademy/utility-backend/internal/middleware"
)

// CouponService serves coupon CRUD and the checkout-facing validation verdict.
type CouponService struct {
	couponRepo portsrepo.CouponRepository
}

// NewCouponService creates the coupon service.
func NewCouponService(couponRepo portsrepo.CouponRepository) *CouponService {
	return &CouponService{couponRepo: couponRepo}
}

var _ portssvc.CouponSvcFacade = (*CouponService)(nil)

// CreateCoupon creates a coupon. The expiry date, when given, must be
// strictly in the future.
func (s *CouponService) CreateCoupon(ctx context.Context, req dto.CreateCouponRequest) (*domain.Coupon, error) {
	if req.ExpiryDate != nil && !req.ExpiryDate.After(time.Now()) {
		return nil, apperrors.NewAppError(http.StatusBadRequest, apperrors.CodeValidation, "expiry date must be in the future", apperrors.ErrValidation)
	}

	status := domain.CouponActive
	if req.Status != nil {
		status = *req.Status
	}

	now := time.Now().UTC()
	coupon := domain.Coupon{
		Code:          req.Code,
		Label:         req.Label,
		Status:        status,
		CouponType:    domain.CouponType(req.CouponType),
		DiscountType:  domain.DiscountType(req.DiscountType),
		DiscountValue: req.DiscountValue,
		MaximumNumber: req.MaximumNumber,
		ExpiryDate:    req.ExpiryDate,
		CompanyDomain: req.CompanyDomain,
		AuditFields:   domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	saved, err := s.couponRepo.SaveCoupon(ctx, coupon)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewAppError(http.StatusConflict, apperrors.CodeDuplicate, "coupon code already exists", apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}
	return saved, nil
}

// GetCouponByID returns a single coupon.
func (s *CouponService) GetCouponByID(ctx context.Context, id int64) (*domain.Coupon, error) {
	coupon, err := s.couponRepo.FindCouponByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return coupon, nil
}

// GetCouponByCode returns a coupon by its unique code.
func (s *CouponService) GetCouponByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	coupon, err := s.couponRepo.FindCouponByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	return coupon, nil
}

// ListCoupons returns all coupons.
func (s *CouponService) ListCoupons(ctx context.Context) ([]domain.Coupon, error) {
	coupons, err := s.couponRepo.ListCoupons(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list coupons: %w", err)
	}
	if coupons == nil {
		return []domain.Coupon{}, nil
	}
	return coupons, nil
}

// UpdateCoupon merges the patchable fields into an existing coupon.
func (s *CouponService) UpdateCoupon(ctx context.Context, id int64, req dto.UpdateCouponRequest) (*domain.Coupon, error) {
	coupon, err := s.couponRepo.FindCouponByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Code != nil {
		coupon.Code = *req.Code
	}
	if req.Label != nil {
		coupon.Label = *req.Label
	}
	if req.Status != nil {
		coupon.Status = *req.Status
	}
	if req.CouponType != nil {
		coupon.CouponType = domain.CouponType(*req.CouponType)
	}
	if req.DiscountType != nil {
		coupon.DiscountType = domain.DiscountType(*req.DiscountType)
	}
	if req.DiscountValue != nil {
		coupon.DiscountValue = *req.DiscountValue
	}
	if req.MaximumNumber != nil {
		coupon.MaximumNumber = *req.MaximumNumber
	}
	if req.ExpiryDate != nil {
		if !req.ExpiryDate.After(time.Now()) {
			return nil, apperrors.NewAppError(http.StatusBadRequest, apperrors.CodeValidation, "expiry date must be in the future", apperrors.ErrValidation)
		}
		coupon.ExpiryDate = req.ExpiryDate
	}
	if req.CompanyDomain != nil {
		coupon.CompanyDomain = req.CompanyDomain
	}
	coupon.UpdatedAt = time.Now().UTC()

	if err := s.couponRepo.UpdateCoupon(ctx, *coupon); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewAppError(http.StatusConflict, apperrors.CodeDuplicate, "coupon code already exists", apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to update coupon %d: %w", id, err)
	}
	return coupon, nil
}

// DeleteCoupon removes a coupon.
func (s *CouponService) DeleteCoupon(ctx context.Context, id int64) error {
	if err := s.couponRepo.DeleteCoupon(ctx, id); err != nil {
		return err
	}
	return nil
}

// ValidateCoupon runs the redemption decision table. The first failing rule
// wins. It never returns an error: lookup failures collapse into an invalid
// verdict so checkout callers always get a verdict shape.
func (s *CouponService) ValidateCoupon(ctx context.Context, code string, userDomain string) *domain.CouponVerdict {
	trimmed := strings.TrimSpace(code)
	if trimmed == "" {
		return &domain.CouponVerdict{Valid: false, Message: "Coupon code is required."}
	}

	coupon, err := s.couponRepo.FindCouponByCode(ctx, trimmed)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return &domain.CouponVerdict{Valid: false, Message: "Invalid coupon code."}
		}
		middleware.GetLoggerFromCtx(ctx).Error("coupon lookup failed during validation", "code", trimmed, "error", err)
		return &domain.CouponVerdict{Valid: false, Message: "Error validating coupon"}
	}

	if coupon.Status == domain.CouponInactive {
		return &domain.CouponVerdict{Valid: false, Message: "Coupon is inactive."}
	}
	if coupon.ExpiryDate != nil && coupon.ExpiryDate.Before(time.Now()) {
		return &domain.CouponVerdict{Valid: false, Message: "Coupon has expired."}
	}

	if coupon.CouponType == domain.CouponCorporate {
		trimmedDomain := strings.TrimSpace(userDomain)
		if trimmedDomain == "" {
			return &domain.CouponVerdict{Valid: false, Message: "Corporate coupon requires company domain."}
		}
		companyDomain := ""
		if coupon.CompanyDomain != nil {
			companyDomain = *coupon.CompanyDomain
		}
		if !domainsMatch(companyDomain, trimmedDomain) {
			return &domain.CouponVerdict{Valid: false, Message: "Coupon is not valid for this company domain."}
		}
	}

	return &domain.CouponVerdict{Valid: true, Message: "Coupon is valid.", Coupon: coupon}
}

// domainsMatch accepts a match when either domain contains the other, so
// "acme.com" redeems a coupon registered for "mail.acme.com" and vice versa.
func domainsMatch(companyDomain, userDomain string) bool {
	a := strings.ToLower(companyDomain)
	b := strings.ToLower(userDomain)
	return strings.Contains(a, b) || strings.Contains(b, a)
}
