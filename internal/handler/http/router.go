package http

import (
	"log/slog"
	"net/http"
	"os"

	"github.com/cleandash/scheduler-backend-go/internal/handler/http/middleware"
	"github.com/cleandash/scheduler-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

func NewRouter(
	appEnv string,
	jwtService jwt.Service,
	shiftHandler ShiftHandler,
	schedulerHandler SchedulerHandler,
	recurrenceHandler RecurrenceHandler,
	attendanceHandler AttendanceHandler,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "cleandash-scheduler"),
		slog.String("version", "v1.0.0"),
		slog.String("env", appEnv),
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

	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	r.Route("/api/v1", func(r chi.Router) {
		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(jwtService.JWTAuth()))
			r.Use(middleware.AuthRequired(jwtService.JWTAuth()))

			r.Route("/shifts", func(r chi.Router) {
				r.Get("/", shiftHandler.List)
				r.Post("/", shiftHandler.Create)
				r.Get("/availability", shiftHandler.Availability)

				r.Route("/{shiftID}", func(r chi.Router) {
					r.Put("/", shiftHandler.Update)
					r.Delete("/", shiftHandler.Delete)
					r.Post("/clock-in", attendanceHandler.ClockIn)
					r.Post("/clock-out", attendanceHandler.ClockOut)
					r.Post("/override", attendanceHandler.Override)
				})
			})

			r.Route("/scheduler", func(r chi.Router) {
				r.Get("/day", schedulerHandler.DayView)
				r.Get("/shifts", schedulerHandler.RangeView)
			})

			r.Route("/accounts/{accountID}/schedule", func(r chi.Router) {
				r.Post("/sync", recurrenceHandler.Resync)
				r.Post("/extend", recurrenceHandler.Extend)
			})
		})
	})
	return r
}
