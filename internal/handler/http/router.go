package http

import (
	"log/slog"
	"os"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/rosterlab/shift-backend-go/internal/handler/http/middleware"
	"github.com/rosterlab/shift-backend-go/internal/pkg/jwt"
)

func NewRouter(
	jwtService jwt.Service,
	authHandler AuthHandler,
	scheduleHandler ScheduleHandler,
	overtimeHandler OvertimeHandler,
	attendanceHandler AttendanceHandler,
	compOffHandler CompOffHandler,
	calendarHandler CalendarHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "shift-backend"),
		slog.String("version", "v1.0.0"),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"http://localhost:3000"},
		AllowCredentials: true,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
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

		r.Route("/auth", func(r chi.Router) {
			r.Post("/login", authHandler.Login)
			r.Post("/refresh", authHandler.RefreshToken)
			r.Post("/logout", authHandler.Logout)
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/schedules", func(r chi.Router) {
				r.Get("/", scheduleHandler.List)
				r.Post("/", scheduleHandler.Propose)
				r.Post("/confirm", scheduleHandler.Confirm)
			})

			r.Route("/overtime", func(r chi.Router) {
				r.Route("/approvals", func(r chi.Router) {
					r.Get("/", overtimeHandler.Lookup)

					// Manager only
					r.Group(func(r chi.Router) {
						r.Use(middleware.RequireManager)
						r.Post("/", overtimeHandler.Approve)
					})
				})
				r.Get("/tracking", overtimeHandler.Tracking)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Get("/", attendanceHandler.ListMy)
				r.Get("/{recordID}", attendanceHandler.GetRecord)
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
			})

			r.Route("/comp-off", func(r chi.Router) {
				r.Post("/requests", compOffHandler.CreateRequest)
				r.Post("/use", compOffHandler.Use)
				r.Get("/balance", compOffHandler.Balance)
				r.Get("/monthly-breakdown", compOffHandler.MonthlyBreakdown)

				// Manager only
				r.Group(func(r chi.Router) {
					r.Use(middleware.RequireManager)
					r.Post("/requests/{requestID}/approve", compOffHandler.ApproveRequest)
					r.Post("/requests/{requestID}/reject", compOffHandler.RejectRequest)
				})
			})

			r.Route("/calendar", func(r chi.Router) {
				r.Get("/holidays", calendarHandler.Holidays)
				r.Get("/week-info", calendarHandler.WeekInfo)
				r.Get("/week-validation/{employeeID}", scheduleHandler.ValidateWeek)
			})
		})
	})
	return r
}
