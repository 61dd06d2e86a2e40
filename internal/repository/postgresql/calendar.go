package postgresql

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/chronosecure/timeclock-backend-go/internal/domain/calendar"
	"github.com/chronosecure/timeclock-backend-go/internal/pkg/database"
)

type dayConfigRepository struct {
	db *database.DB
}

func NewDayConfigRepository(db *database.DB) calendar.DayConfigRepository {
	return &dayConfigRepository{db: db}
}

// GetByCompanyAndDate implements calendar.DayConfigRepository.
func (r *dayConfigRepository) GetByCompanyAndDate(ctx context.Context, companyID string, date time.Time) (*calendar.DayConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, calendar_date, day_type, pay_multiplier, description,
			   created_at, updated_at
		FROM company_calendars
		WHERE company_id = $1
		  AND calendar_date = $2
	`

	var cfg calendar.DayConfig
	err := q.QueryRow(ctx, query, companyID, date).Scan(
		&cfg.ID, &cfg.CompanyID, &cfg.Date, &cfg.DayType, &cfg.PayMultiplier,
		&cfg.Description, &cfg.CreatedAt, &cfg.UpdatedAt,
	)
	if err != nil {
		if err == pgx.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get calendar config: %w", err)
	}

	return &cfg, nil
}

// ListByCompanyBetween implements calendar.DayConfigRepository.
func (r *dayConfigRepository) ListByCompanyBetween(ctx context.Context, companyID string, start, end time.Time) ([]calendar.DayConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		SELECT id, company_id, calendar_date, day_type, pay_multiplier, description,
			   created_at, updated_at
		FROM company_calendars
		WHERE company_id = $1
		  AND calendar_date >= $2
		  AND calendar_date <= $3
		ORDER BY calendar_date ASC
	`

	rows, err := q.Query(ctx, query, companyID, start, end)
	if err != nil {
		return nil, fmt.Errorf("failed to list calendar configs: %w", err)
	}
	defer rows.Close()

	var configs []calendar.DayConfig
	for rows.Next() {
		var cfg calendar.DayConfig
		if err := rows.Scan(
			&cfg.ID, &cfg.CompanyID, &cfg.Date, &cfg.DayType, &cfg.PayMultiplier,
			&cfg.Description, &cfg.CreatedAt, &cfg.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("failed to scan calendar config: %w", err)
		}
		configs = append(configs, cfg)
	}

	return configs, rows.Err()
}

// Upsert implements calendar.DayConfigRepository. The unique constraint
// on (company_id, calendar_date) makes the replace atomic.
func (r *dayConfigRepository) Upsert(ctx context.Context, cfg calendar.DayConfig) (calendar.DayConfig, error) {
	q := GetQuerier(ctx, r.db)

	query := `
		INSERT INTO company_calendars (
			id, company_id, calendar_date, day_type, pay_multiplier, description,
			created_at, updated_at
		) VALUES (
			$1, $2, $3, $4, $5, $6, NOW(), NOW()
		)
		ON CONFLICT (company_id, calendar_date) DO UPDATE SET
			day_type = EXCLUDED.day_type,
			pay_multiplier = EXCLUDED.pay_multiplier,
			description = EXCLUDED.description,
			updated_at = NOW()
		RETURNING id, created_at, updated_at
	`

	err := q.QueryRow(ctx, query,
		cfg.ID, cfg.CompanyID, cfg.Date, cfg.DayType, cfg.PayMultiplier, cfg.Description,
	).Scan(&cfg.ID, &cfg.CreatedAt, &cfg.UpdatedAt)
	if err != nil {
		return calendar.DayConfig{}, fmt.Errorf("failed to upsert calendar config: %w", err)
	}

	return cfg, nil
}

type holidayRepository struct {
	db *database.DB
}

func NewHolidayRepository(db *database.DB) calendar.HolidayRepository {
	return &holidayRepository{db: db}
}

// Exists implements calendar.HolidayRepository.
func (r *holidayRepository) Exists(ctx context.Context, companyID string, date time.Time) (bool, error) {
	q := GetQuerier(ctx, r.db)

	var exists bool
	err := q.QueryRow(ctx,
		`SELECT EXISTS (
			SELECT 1 FROM public_holidays WHERE company_id = $1 AND holiday_date = $2
		)`,
		companyID, date,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check public holiday: %w", err)
	}

	return exists, nil
}
