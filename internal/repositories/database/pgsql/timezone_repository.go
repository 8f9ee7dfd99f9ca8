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

const timezoneColumns = `id, name, abbreviation, utc_offset, created_at, updated_at`

type PgxTimezoneRepository struct {
	BaseRepository
}

// newPgxTimezoneRepository creates a new repository for timezone master data.
func newPgxTimezoneRepository(pool *pgxpool.Pool) portsrepo.TimezoneRepository {
	return &PgxTimezoneRepository{
		BaseRepository: BaseRepository{Pool: pool},
	}
}

var _ portsrepo.TimezoneRepository = (*PgxTimezoneRepository)(nil)

// SaveTimezone inserts a timezone row.
func (r *PgxTimezoneRepository) SaveTimezone(ctx context.Context, tz domain.Timezone) (*domain.Timezone, error) {
	m := mapping.ToModelTimezone(tz)
	query := `
		INSERT INTO wit_timezones (name, abbreviation, utc_offset, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id;
	`
	err := r.Pool.QueryRow(ctx, query,
		m.Name,
		m.Abbreviation,
		m.UTCOffset,
		m.CreatedAt,
		m.UpdatedAt,
	).Scan(&m.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return nil, apperrors.ErrDuplicate
		}
		return nil, fmt.Errorf("failed to insert timezone %s: %w", m.Name, err)
	}

	saved := mapping.ToDomainTimezone(m)
	return &saved, nil
}

// FindTimezoneByID retrieves a timezone by its primary key.
func (r *PgxTimezoneRepository) FindTimezoneByID(ctx context.Context, id int64) (*domain.Timezone, error) {
	query := fmt.Sprintf(`SELECT %s FROM wit_timezones WHERE id = $1;`, timezoneColumns)

	m, err := scanTimezone(r.Pool.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("failed to find timezone %d: %w", id, err)
	}

	domainTz := mapping.ToDomainTimezone(*m)
	return &domainTz, nil
}

// ListTimezones retrieves all timezones.
func (r *PgxTimezoneRepository) ListTimezones(ctx context.Context) ([]domain.Timezone, error) {
	query := fmt.Sprintf(`SELECT %s FROM wit_timezones ORDER BY name;`, timezoneColumns)

	rows, err := r.Pool.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query timezones: %w", err)
	}
	defer rows.Close()

	modelTzs, err := pgx.CollectRows(rows, func(row pgx.CollectableRow) (models.Timezone, error) {
		m, err := scanTimezone(row)
		if err != nil {
			return models.Timezone{}, err
		}
		return *m, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan timezones: %w", err)
	}

	return mapping.ToDomainTimezoneSlice(modelTzs), nil
}

// UpdateTimezone rewrites a timezone row.
func (r *PgxTimezoneRepository) UpdateTimezone(ctx context.Context, tz domain.Timezone) error {
	m := mapping.ToModelTimezone(tz)
	query := `
		UPDATE wit_timezones
		SET name = $1, abbreviation = $2, utc_offset = $3, updated_at = $4
		WHERE id = $5;
	`
	tag, err := r.Pool.Exec(ctx, query, m.Name, m.Abbreviation, m.UTCOffset, m.UpdatedAt, m.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.ErrDuplicate
		}
		return fmt.Errorf("failed to update timezone %d: %w", m.ID, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// DeleteTimezone removes a timezone row by id.
func (r *PgxTimezoneRepository) DeleteTimezone(ctx context.Context, id int64) error {
	tag, err := r.Pool.Exec(ctx, `DELETE FROM wit_timezones WHERE id = $1;`, id)
	if err != nil {
		return fmt.Errorf("failed to delete timezone %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

func scanTimezone(row pgx.Row) (*models.Timezone, error) {
	var m models.Timezone
	err := row.Scan(
		&m.ID,
		&m.Name,
		&m.Abbreviation,
		&m.UTCOffset,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &m, nil
}
