package pgsql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wocademy/utility-backend/internal/apperrors"
	"github.com/wocademy/utility-backend/internal/core/domain"
	portsrepo "github.com/wocademy/utility-backend/internal/core/ports/repositories"
	"github.com/wocademy/utility-backend/internal/models"
	"github.com/wocademy/utility-backend/internal/utils/mapping"
)

const couponColumns = `id, code, label, status, coupon_type, discount_type, discount_value,
	maximum_number, expiry_date, company_domain, created_at, updated_at`

type PgxCouponRepository struct {
	BaseRepository
}

// newPgxCouponRepository creates a new repository for coupon data.
func newPgxCouponRepository(pool *pgxpool.Pool) portsrepo.CouponRepository {
	return &PgxCouponRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.CouponRepository = (*PgxCouponRepository)(nil)

// SaveCoupon inserts a coupon. A unique violation on code maps to ErrDuplicate.
func (r *PgxCouponRepository) SaveCoupon(ctx context.Context, coupon domain.Coupon) (*domain.Coupon, error) {
	m := mapping.ToModelCoupon(coupon)
	query := `
		INSERT INTO wit_coupons (
			code, label, status, coupon_type, discount_type, discount_value,
			maximum_number, expiry_date, company_domain, created_at, updated_at
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		RETURNING id;
	`
	err := r.Pool.QueryRow(ctx, query,
		m.Code,
		m.Label,
		m.Status,
		m.CouponType,
		m.DiscountType,
		m.DiscountValue,
		m.MaximumNumber,
		m.ExpiryDate,
		m.CompanyDomain,
		m.CreatedAt,
		m.UpdatedAt,
	).Scan(&m.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrDuplicate
		}
		return nil, fmt.Errorf("failed to insert coupon %s: %w", m.Code, err)
	}

	saved := mapping.ToDomainCoupon(m)
	return &saved, nil
}

// FindCouponByID retrieves a coupon by its primary key.
func (r *PgxCouponRepository) FindCouponByID(ctx context.Context, id int64) (*domain.Coupon, error) {
	query := fmt.Sprintf(`SELECT %s FROM wit_coupons WHERE id = $1;`, couponColumns)

	m, err := scanCoupon(r.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find coupon %d: %w", id, err)
	}

	domainCoupon := mapping.ToDomainCoupon(*m)
	return &domainCoupon, nil
}

// FindCouponByCode retrieves a coupon by its unique code.
func (r *PgxCouponRepository) FindCouponByCode(ctx context.Context, code string) (*domain.Coupon, error) {
	query := fmt.Sprintf(`SELECT %s FROM wit_coupons WHERE code = $1;`, couponColumns)

	m, err := scanCoupon(r.Pool.QueryRow(ctx, query, code))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find coupon by code %s: %w", code, err)
	}

	domainCoupon := mapping.ToDomainCoupon(*m)
	return &domainCoupon, nil
}

// ListCoupons retrieves all coupons.
func (r *PgxCouponRepository) ListCoupons(ctx context.Context) ([]domain.Coupon, error) {
	query := fmt.Sprintf(`SELECT %s FROM wit_coupons ORDER BY id;`, couponColumns)

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query coupons: %w", err)
	}
	defer rows.Close()

	modelCoupons, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Coupon, error) {
		m, err := scanCoupon(row)
		if err != nil {
			return models.Coupon{}, err
		}
		return *m, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan coupons: %w", err)
	}

	return mapping.ToDomainCouponSlice(modelCoupons), nil
}

// UpdateCoupon rewrites a coupon row. A unique violation on code maps to ErrDuplicate.
func (r *PgxCouponRepository) UpdateCoupon(ctx context.Context, coupon domain.Coupon) error {
	m := mapping.ToModelCoupon(coupon)
	query := `
		UPDATE wit_coupons
		SET code = $1, label = $2, status = $3, coupon_type = $4, discount_type = $5,
			discount_value = $6, maximum_number = $7, expiry_date = $8,
			company_domain = $9, updated_at = $10
		WHERE id = $11;
	`
	tag, err := r.Pool.Exec(ctx, query,
		m.Code,
		m.Label,
		m.Status,
		m.CouponType,
		m.DiscountType,
		m.DiscountValue,
		m.MaximumNumber,
		m.ExpiryDate,
		m.CompanyDomain,
		m.UpdatedAt,
		m.ID,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to update coupon %d: %w", m.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteCoupon hard-deletes a coupon by id.
func (r *PgxCouponRepository) DeleteCoupon(ctx context.Context, id int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM wit_coupons WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete coupon %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanCoupon(row pgx.Row) (*models.Coupon, error) {
	var m models.Coupon
	err := row.Scan(
		&m.ID,
		&m.Code,
		&m.Label,
		&m.Status,
		&m.CouponType,
		&m.DiscountType,
		&m.DiscountValue,
		&m.MaximumNumber,
		&m.ExpiryDate,
		&m.CompanyDomain,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
