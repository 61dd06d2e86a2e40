package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/chronosecure/timeclock-backend-go/internal/config"
	appHTTP "github.com/chronosecure/timeclock-backend-go/internal/handler/http"
	"github.com/chronosecure/timeclock-backend-go/internal/pkg/cron"
	"github.com/chronosecure/timeclock-backend-go/internal/pkg/database"
	"github.com/chronosecure/timeclock-backend-go/internal/pkg/jwt"
	"github.com/chronosecure/timeclock-backend-go/internal/pkg/sse"
	"github.com/chronosecure/timeclock-backend-go/internal/repository/postgresql"
	calendarService "github.com/chronosecure/timeclock-backend-go/internal/service/calendar"
	dashboardService "github.com/chronosecure/timeclock-backend-go/internal/service/dashboard"
	eventService "github.com/chronosecure/timeclock-backend-go/internal/service/event"
	hoursService "github.com/chronosecure/timeclock-backend-go/internal/service/hours"
	timeoffService "github.com/chronosecure/timeclock-backend-go/internal/service/timeoff"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Println("Error loading config:", err)
		return
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		fmt.Println("Error connecting to database:", err)
		return
	}
	defer db.Close()

	loc := cfg.Location()

	eventRepo := postgresql.NewEventRepository(db)
	employeeRepo := postgresql.NewEmployeeRepository(db)
	dayConfigRepo := postgresql.NewDayConfigRepository(db)
	holidayRepo := postgresql.NewHolidayRepository(db)
	timeoffRepo := postgresql.NewTimeoffRepository(db)
	hoursRepo := postgresql.NewHoursRepository(db)
	dashboardRepo := postgresql.NewDashboardRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret)
	hub := sse.NewHub()

	calendarSvc := calendarService.NewCalendarService(dayConfigRepo, holidayRepo, eventRepo, timeoffRepo, loc)
	hoursSvc := hoursService.NewHoursService(hoursRepo, eventRepo, timeoffRepo, calendarSvc, loc)
	requestSvc := timeoffService.NewRequestService(timeoffRepo)
	dashboardSvc := dashboardService.NewDashboardService(dashboardRepo, timeoffRepo, loc)
	eventSvc := eventService.NewEventService(eventRepo, employeeRepo, requestSvc, hoursSvc, dashboardSvc, hub, loc)

	eventHandler := appHTTP.NewEventHandler(eventSvc)
	hoursHandler := appHTTP.NewHoursHandler(hoursSvc)
	calendarHandler := appHTTP.NewCalendarHandler(calendarSvc)
	timeoffHandler := appHTTP.NewTimeoffHandler(requestSvc)
	dashboardHandler := appHTTP.NewDashboardHandler(dashboardSvc, JWTService, hub)

	router := appHTTP.NewRouter(
		appHTTP.RouterConfig{
			Env:         cfg.App.Env,
			FrontendURL: cfg.App.FrontendURL,
		},
		JWTService,
		eventHandler,
		hoursHandler,
		calendarHandler,
		timeoffHandler,
		dashboardHandler,
	)

	scheduler := cron.NewScheduler()
	cron.NewRecalculationJobs(employeeRepo, hoursSvc, loc).RegisterJobs(scheduler)
	scheduler.Start()

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.App.Port),
		Handler: router,
	}

	go func() {
		fmt.Printf("Server running at http://localhost%s\n", server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			fmt.Println("Server error:", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	scheduler.Stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		fmt.Println("Server shutdown error:", err)
	}
}
