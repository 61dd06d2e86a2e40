package cron

import (
	"context"
	"log/slog"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/chronosecure/timeclock-backend-go/internal/domain/employee"
	"github.com/chronosecure/timeclock-backend-go/internal/domain/hours"
)

// recalcWorkers bounds how many employees recompute in parallel. Units
// are independent: the single-writer lock only bites on the same
// (employee, date), which the sweep never produces twice.
const recalcWorkers = 8

type RecalculationJobs struct {
	employeeRepo employee.EmployeeRepository
	hoursService hours.HoursService
	loc          *time.Location
	now          func() time.Time
}

func NewRecalculationJobs(
	employeeRepo employee.EmployeeRepository,
	hoursService hours.HoursService,
	loc *time.Location,
) *RecalculationJobs {
	return &RecalculationJobs{
		employeeRepo: employeeRepo,
		hoursService: hoursService,
		loc:          loc,
		now:          func() time.Time { return time.Now().UTC() },
	}
}

func (j *RecalculationJobs) RegisterJobs(scheduler *Scheduler) {
	scheduler.AddJob("nightly_recalculation", 1*time.Hour, j.NightlyRecalculation)
}

// NightlyRecalculation recomputes yesterday's summary row for every
// active employee of every company. Late offline syncs and edge events
// around midnight land after the day closed; the sweep folds them in.
func (j *RecalculationJobs) NightlyRecalculation(ctx context.Context) error {
	// Only run in the first hour after local midnight.
	if j.now().In(j.loc).Hour() != 1 {
		return nil
	}
	return j.RecalculateYesterday(ctx)
}

// RecalculateYesterday is the sweep body, callable directly for a
// manual run.
func (j *RecalculationJobs) RecalculateYesterday(ctx context.Context) error {
	nowLocal := j.now().In(j.loc)
	yesterday := time.Date(nowLocal.Year(), nowLocal.Month(), nowLocal.Day(), 0, 0, 0, 0, time.UTC).AddDate(0, 0, -1)

	slog.Info("Cron: Starting nightly recalculation", "date", yesterday.Format("2006-01-02"))

	companyIDs, err := j.employeeRepo.ListCompanyIDs(ctx)
	if err != nil {
		return err
	}

	var recomputed, failed atomic.Int64
	for _, companyID := range companyIDs {
		employees, err := j.employeeRepo.ListActiveByCompany(ctx, companyID)
		if err != nil {
			slog.Error("Cron: Failed to list employees", "company_id", companyID, "error", err)
			failed.Add(1)
			continue
		}

		g, gCtx := errgroup.WithContext(ctx)
		g.SetLimit(recalcWorkers)
		for _, emp := range employees {
			emp := emp
			g.Go(func() error {
				if _, err := j.hoursService.CalculateHoursForDate(gCtx, companyID, emp.ID, yesterday); err != nil {
					// One employee failing must not sink the company sweep.
					slog.Error("Cron: Recalculation failed",
						"company_id", companyID, "employee_id", emp.ID, "error", err)
					failed.Add(1)
					return nil
				}
				recomputed.Add(1)
				return nil
			})
		}
		if err := g.Wait(); err != nil {
			return err
		}
	}

	slog.Info("Cron: Nightly recalculation finished",
		"recomputed", recomputed.Load(), "failed", failed.Load())
	return nil
}
