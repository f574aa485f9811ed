package main

import (
	"fmt"
	"log"
	"net/http"

	"github.com/guardpost-hq/guardpost-backend-go/internal/config"
	appHTTP "github.com/guardpost-hq/guardpost-backend-go/internal/handler/http"
	"github.com/guardpost-hq/guardpost-backend-go/internal/pkg/database"
	"github.com/guardpost-hq/guardpost-backend-go/internal/pkg/jwt"
	"github.com/guardpost-hq/guardpost-backend-go/internal/repository/postgresql"
	attendanceService "github.com/guardpost-hq/guardpost-backend-go/internal/service/attendance"
	serviceAuth "github.com/guardpost-hq/guardpost-backend-go/internal/service/auth"
	"github.com/guardpost-hq/guardpost-backend-go/internal/service/resolution"
	"github.com/guardpost-hq/guardpost-backend-go/internal/service/shiftresolver"
	"github.com/guardpost-hq/guardpost-backend-go/internal/service/siteresolver"
	tourService "github.com/guardpost-hq/guardpost-backend-go/internal/service/tour"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load config: ", err)
	}

	dsn := cfg.DatabaseURL()
	db, err := database.NewPostgreSQLDB(dsn)
	if err != nil {
		log.Fatal("Failed to connect to database: ", err)
	}

	userRepo := postgresql.NewUserRepository(db)
	settingsRepo := postgresql.NewSettingsRepository(db)
	siteRepo := postgresql.NewSiteRepository(db)
	assignmentRepo := postgresql.NewAssignmentRepository(db)
	attendanceRepo := postgresql.NewAttendanceRepository(db)

	JWTService := jwt.NewJWTService(cfg.JWT.Secret, cfg.JWT.AccessExpiration)

	authSvc := serviceAuth.NewAuthService(userRepo, JWTService)
	siteResolver := siteresolver.NewSiteResolver(siteRepo, settingsRepo)
	shiftResolver := shiftresolver.NewShiftResolver(assignmentRepo, settingsRepo)
	attendanceSvc := attendanceService.NewAttendanceService(attendanceRepo, settingsRepo, nil)
	tourGate := tourService.NewTourGate(siteRepo, shiftResolver, attendanceSvc)
	// Clients post device coordinates with each resolve request, so no
	// server-side locator is configured.
	resolutionSvc := resolution.NewService(siteResolver, shiftResolver, attendanceSvc, nil, nil)

	authHandler := appHTTP.NewAuthHandler(authSvc)
	settingsHandler := appHTTP.NewSettingsHandler(settingsRepo)
	siteHandler := appHTTP.NewSiteHandler(siteRepo, assignmentRepo)
	attendanceHandler := appHTTP.NewAttendanceHandler(attendanceSvc, resolutionSvc)
	tourHandler := appHTTP.NewTourHandler(tourGate)

	router := appHTTP.NewRouter(
		JWTService,
		authHandler,
		settingsHandler,
		siteHandler,
		attendanceHandler,
		tourHandler,
		cfg.App.FrontendURL,
		cfg.App.Env,
	)

	port := fmt.Sprintf(":%d", cfg.App.Port)
	fmt.Printf("Server running at http://localhost%s\n", port)
	if err := http.ListenAndServe(port, router); err != nil {
		log.Fatal("Server error: ", err)
	}
}
