package services

import (
	"context"

	"github.com/wocademy/utility-backend/internal/core/domain"
	"github.com/wocademy/utility-backend/internal/dto"
)

// TimezoneSvcFacade serves timezone master data through a read-through cache.
type TimezoneSvcFacade interface {
	ListTimezones(ctx context.Context) ([]domain.Timezone, error)
	GetTimezoneByID(ctx context.Context, id int64) (*domain.Timezone, error)
	CreateTimezone(ctx context.Context, req dto.CreateTimezoneRequest) (*domain.Timezone, error)
	UpdateTimezone(ctx context.Context, id int64, req dto.UpdateTimezoneRequest) (*domain.Timezone, error)
	DeleteTimezone(ctx context.Context, id int64) error
}
