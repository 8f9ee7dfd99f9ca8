package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/wocademy/utility-backend/internal/apperrors"
	"github.com/wocademy/utility-backend/internal/core/domain"
	portsrepo "github.com/wocademy/utility-backend/internal/core/ports/repositories"
	portssvc "github.com/wocademy/utility-backend/internal/core/ports/services"
	"github.com/wocademy/utility-backend/internal/dto"
	"github.com/wocademy/utility-backend/internal/middleware"
)

// TimezoneService serves timezone master data through a read-through cache.
// Every admin write invalidates the cached list; the TTL on the cache key
// bounds staleness if an invalidation is lost.
type TimezoneService struct {
	timezoneRepo portsrepo.TimezoneRepository
	cache        portsrepo.TimezoneCache
}

// NewTimezoneService creates the timezone service.
func NewTimezoneService(timezoneRepo portsrepo.TimezoneRepository, cache portsrepo.TimezoneCache) *TimezoneService {
	return &TimezoneService{timezoneRepo: timezoneRepo, cache: cache}
}

var _ portssvc.TimezoneSvcFacade = (*TimezoneService)(nil)

// ListTimezones serves from the cache when populated, falling back to the
// database and repopulating the cache on a miss. Cache failures degrade to
// database reads rather than failing the request.
func (s *TimezoneService) ListTimezones(ctx context.Context) ([]domain.Timezone, error) {
	logger := middleware.GetLoggerFromCtx(ctx)

	cached, err := s.cache.GetTimezones(ctx)
	if err != nil {
		logger.Warn("timezone cache read failed, falling back to database", "error", err)
	} else if cached != nil {
		return cached, nil
	}

	tzs, err := s.timezoneRepo.ListTimezones(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list timezones: %w", err)
	}
	if tzs == nil {
		tzs = []domain.Timezone{}
	}

	if err := s.cache.SetTimezones(ctx, tzs); err != nil {
		logger.Warn("failed to repopulate timezone cache", "error", err)
	}
	return tzs, nil
}

// GetTimezoneByID returns a single timezone from the database.
func (s *TimezoneService) GetTimezoneByID(ctx context.Context, id int64) (*domain.Timezone, error) {
	tz, err := s.timezoneRepo.FindTimezoneByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return tz, nil
}

// CreateTimezone inserts a timezone and invalidates the cached list.
func (s *TimezoneService) CreateTimezone(ctx context.Context, req dto.CreateTimezoneRequest) (*domain.Timezone, error) {
	now := time.Now().UTC()
	tz := domain.Timezone{
		Name:         req.Name,
		Abbreviation: req.Abbreviation,
		UTCOffset:    req.UTCOffset,
		AuditFields:  domain.AuditFields{CreatedAt: now, UpdatedAt: now},
	}

	saved, err := s.timezoneRepo.SaveTimezone(ctx, tz)
	if err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewAppError(http.StatusConflict, apperrors.CodeDuplicate, "timezone name already exists", apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to create timezone: %w", err)
	}

	s.invalidateCache(ctx)
	return saved, nil
}

// UpdateTimezone merges the patchable fields and invalidates the cached list.
func (s *TimezoneService) UpdateTimezone(ctx context.Context, id int64, req dto.UpdateTimezoneRequest) (*domain.Timezone, error) {
	tz, err := s.timezoneRepo.FindTimezoneByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		tz.Name = *req.Name
	}
	if req.Abbreviation != nil {
		tz.Abbreviation = *req.Abbreviation
	}
	if req.UTCOffset != nil {
		tz.UTCOffset = *req.UTCOffset
	}
	tz.UpdatedAt = time.Now().UTC()

	if err := s.timezoneRepo.UpdateTimezone(ctx, *tz); err != nil {
		if errors.Is(err, apperrors.ErrDuplicate) {
			return nil, apperrors.NewAppError(http.StatusConflict, apperrors.CodeDuplicate, "timezone name already exists", apperrors.ErrDuplicate)
		}
		return nil, fmt.Errorf("failed to update timezone %d: %w", id, err)
	}

	s.invalidateCache(ctx)
	return tz, nil
}

// DeleteTimezone removes a timezone and invalidates the cached list.
func (s *TimezoneService) DeleteTimezone(ctx context.Context, id int64) error {
	if err := s.timezoneRepo.DeleteTimezone(ctx, id); err != nil {
		return err
	}
	s.invalidateCache(ctx)
	return nil
}

// invalidateCache drops the cached list after a write. Failure here only
// delays freshness until the TTL fires, so it is logged and not propagated.
func (s *TimezoneService) invalidateCache(ctx context.Context) {
	if err := s.cache.Invalidate(ctx); err != nil {
		middleware.GetLoggerFromCtx(ctx).Warn("failed to invalidate timezone cache", "error", err)
	}
}
