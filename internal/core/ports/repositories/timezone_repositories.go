package repositories

import (
	"context"

	"github.com/wocademy/utility-backend/internal/core/domain"
)

// TimezoneRepository is the timezone master data store.
type TimezoneRepository interface {
	SaveTimezone(ctx context.Context, tz domain.Timezone) (*domain.Timezone, error)
	FindTimezoneByID(ctx context.Context, id int64) (*domain.Timezone, error)
	ListTimezones(ctx context.Context) ([]domain.Timezone, error)
	UpdateTimezone(ctx context.Context, tz domain.Timezone) error
	DeleteTimezone(ctx context.Context, id int64) error
}

// TimezoneCache is the read-through cache in front of TimezoneRepository.
// Implementations must treat a miss as (nil, nil), not an error.
type TimezoneCache interface {
	GetTimezones(ctx context.Context) ([]domain.Timezone, error)
	SetTimezones(ctx context.Context, tzs []domain.Timezone) error
	Invalidate(ctx context.Context) error
}
