package http

import (
	"log/slog"
	"os"

	"github.com/guardpost-hq/guardpost-backend-go/internal/handler/http/middleware"
	"github.com/guardpost-hq/guardpost-backend-go/internal/pkg/jwt"
	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httplog/v3"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	JWTService jwt.Service,
	authHandler AuthHandler,
	settingsHandler SettingsHandler,
	siteHandler SiteHandler,
	attendanceHandler AttendanceHandler,
	tourHandler TourHandler,
	frontendURL string,
	env string,
) *chi.Mux {
	r := chi.NewRouter()
	logFormat := httplog.SchemaECS.Concise(false)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{
		ReplaceAttr: logFormat.ReplaceAttr,
	})).With(
		slog.String("app", "guardpost"),
		slog.String("version", "v1.0.0"),
		slog.String("env", env),
	)

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{frontendURL},
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
		})

		// Requires authentication
		r.Group(func(r chi.Router) {
			r.Use(jwtauth.Verifier(JWTService.JWTAuth()))
			r.Use(middleware.AuthRequired(JWTService.JWTAuth()))

			r.Route("/settings", func(r chi.Router) {
				r.Get("/shifts", settingsHandler.GetShiftSettings)
			})

			r.Route("/sites", func(r chi.Router) {
				r.Get("/", siteHandler.List)
				r.Get("/assignments/my", siteHandler.MyAssignments)
				r.Get("/{siteID}", siteHandler.Get)
			})

			r.Route("/attendance", func(r chi.Router) {
				r.Post("/resolve", attendanceHandler.Resolve)
				r.Get("/context", attendanceHandler.Current)
				r.Get("/my", attendanceHandler.GetMyAttendance)
				r.Get("/history", attendanceHandler.History)
				r.Post("/check-in", attendanceHandler.CheckIn)
				r.Post("/check-out", attendanceHandler.CheckOut)
			})

			r.Route("/tours", func(r chi.Router) {
				r.Get("/gate", tourHandler.Gate)
			})
		})
	})
	return r
}
