package mapping

import (
	"github.com/wocademy/utility-backend/internal/core/domain"
	"github.com/wocademy/utility-backend/internal/models"
)

// ToModelTimezone converts a domain Timezone to its model
func ToModelTimezone(d domain.Timezone) models.Timezone {
	return models.Timezone{
		ID:           d.ID,
		Name:         d.Name,
		Abbreviation: d.Abbreviation,
		UTCOffset:    d.UTCOffset,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainTimezone converts a model Timezone to its domain form
func ToDomainTimezone(m models.Timezone) domain.Timezone {
	return domain.Timezone{
		ID:           m.ID,
		Name:         m.Name,
		Abbreviation: m.Abbreviation,
		UTCOffset:    m.UTCOffset,
		AuditFields:  ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainTimezoneSlice converts a slice of models to domain values
func ToDomainTimezoneSlice(ms []models.Timezone) []domain.Timezone {
	res := make([]domain.Timezone, len(ms))
	for i, m := range ms {
		res[i] = ToDomainTimezone(m)
	}
	return res
}
