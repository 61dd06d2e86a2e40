package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"

	"github.com/chronosecure/timeclock-backend-go/internal/handler/http/middleware"
	"github.com/chronosecure/timeclock-backend-go/internal/pkg/jwt"
)

type RouterConfig struct {
	Env         string
	FrontendURL string
}

func NewRouter(
	cfg RouterConfig,
	jwtService jwt.Service,
	eventHandler EventHandler,
	hoursHandler HoursHandler,
	calendarHandler CalendarHandler,
	timeoffHandler TimeoffHandler,
	dashboardHandler DashboardHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "timeclock-backend"),
		slog.String("version", "v1.0.0"),
		slog.String("env", cfg.Env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{cfg.FrontendURL},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		MaxAge:           300,
	}))

	r.Use(httplog.RequestLogger(logger, &httplog.Options{
		Level:  slog.LevelDebug,
		Schema: httplog.SchemaECS,
	}))

	r.Use(chiMiddleware.AllowContentEncoding("application/json"))
	r.Use(chiMiddleware.CleanPath)
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Heartbeat("/"))

	r.Route("/api/v1", func(r chi.Router) {

		// SSE stream authenticates with its own short-lived query token.
		r.Get("/dashboard/stream", dashboardHandler.Stream)

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/events", func(r chi.Router) {
				r.Post("/", eventHandler.Record)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Get("/", eventHandler.List)
				})
			})

			r.Route("/employees/{employeeID}", func(r chi.Router) {
				r.Get("/next-event", eventHandler.NextExpected)
				r.Get("/hours", hoursHandler.ListRecords)
				r.Get("/reconstruction", hoursHandler.ReconstructDay)
				r.Get("/calendar", calendarHandler.EmployeeCalendar)
			})

			r.Route("/time-off", func(r chi.Router) {
				r.Post("/", timeoffHandler.Create)
				r.Get("/", timeoffHandler.List)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/{requestID}/approve", timeoffHandler.Approve)
					r.Post("/{requestID}/reject", timeoffHandler.Reject)
				})
			})

			r.Route("/calendar", func(r chi.Router) {
				r.Get("/", calendarHandler.ListRange)

				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/", calendarHandler.BulkUpsert)
				})
			})

			r.Route("/hours", func(r chi.Router) {
				// Admin only
				r.Group(func(r chi.Router) {
					r.Use(middleware.AdminOnly)
					r.Post("/recalculate", hoursHandler.Recalculate)
				})
			})

			r.Route("/dashboard", func(r chi.Router) {
				r.Get("/today", dashboardHandler.GetTodayStats)
				r.Post("/sse-token", dashboardHandler.GetSSEToken)
			})
		})
	})

	return r
}
