package dto

import (
	"time"

	"github.com/wocademy/utility-backend/internal/core/domain"
)

// CreateTimezoneRequest defines the data needed to create a timezone entry.
type CreateTimezoneRequest struct {
	Name         string `json:"name" binding:"required,max=100"`
	Abbreviation string `json:"abbreviation" binding:"required,max=10"`
	UTCOffset    string `json:"utcOffset" binding:"required,max=10"`
}

// UpdateTimezoneRequest defines the patchable fields of a timezone entry.
type UpdateTimezoneRequest struct {
	Name         *string `json:"name,omitempty" binding:"omitempty,max=100"`
	Abbreviation *string `json:"abbreviation,omitempty" binding:"omitempty,max=10"`
	UTCOffset    *string `json:"utcOffset,omitempty" binding:"omitempty,max=10"`
}

// TimezoneResponse is the public shape of a timezone entry.
type TimezoneResponse struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Abbreviation string    `json:"abbreviation"`
	UTCOffset    string    `json:"utcOffset"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// ToTimezoneResponse converts a domain Timezone to its response DTO
func ToTimezoneResponse(tz *domain.Timezone) TimezoneResponse {
	return TimezoneResponse{
		ID:           tz.ID,
		Name:         tz.Name,
		Abbreviation: tz.Abbreviation,
		UTCOffset:    tz.UTCOffset,
		CreatedAt:    tz.CreatedAt,
		UpdatedAt:    tz.UpdatedAt,
	}
}

// ToTimezoneResponses converts a slice of domain timezones
func ToTimezoneResponses(tzs []domain.Timezone) []TimezoneResponse {
	res := make([]TimezoneResponse, len(tzs))
	for i := range tzs {
		res[i] = ToTimezoneResponse(&tzs[i])
	}
	return res
}
