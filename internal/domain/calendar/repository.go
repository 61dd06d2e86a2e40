package calendar

import (
	"context"
	"time"
)

// DayConfigRepository - interface for company_calendars table
type DayConfigRepository interface {
	// GetByCompanyAndDate returns the override row for the exact date,
	// or nil when none exists
	GetByCompanyAndDate(ctx context.Context, companyID string, date time.Time) (*DayConfig, error)

	// ListByCompanyBetween returns override rows in [start, end] inclusive
	ListByCompanyBetween(ctx context.Context, companyID string, start, end time.Time) ([]DayConfig, error)

	// Upsert inserts or replaces the single row for (company, date)
	Upsert(ctx context.Context, cfg DayConfig) (DayConfig, error)
}

// HolidayRepository - interface for the legacy public_holidays table
type HolidayRepository interface {
	// Exists reports whether the legacy list marks date as a holiday
	Exists(ctx context.Context, companyID string, date time.Time) (bool, error)
}
