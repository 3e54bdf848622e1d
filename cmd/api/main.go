package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"github.com/cagnotte/cagnotte-api/internal/config"
	"github.com/cagnotte/cagnotte-api/internal/domain/auth"
	"github.com/cagnotte/cagnotte-api/internal/domain/cagnotte"
	"github.com/cagnotte/cagnotte-api/internal/domain/donation"
	"github.com/cagnotte/cagnotte-api/internal/domain/report"
	"github.com/cagnotte/cagnotte-api/internal/domain/user"
	"github.com/cagnotte/cagnotte-api/internal/middleware"
	"github.com/cagnotte/cagnotte-api/internal/pkg/database"
	"github.com/cagnotte/cagnotte-api/internal/pkg/jwt"
	"github.com/cagnotte/cagnotte-api/internal/pkg/logger"
	"github.com/cagnotte/cagnotte-api/internal/pkg/response"
)

func main() {
	cfg := config.Load()

	if err := logger.Init(logger.Config{
		Level:       cfg.LogLevel,
		Environment: cfg.Env,
		LogFile:     cfg.LogFile,
	}); err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize logger")
	}

	log.Info().
		Str("env", cfg.Env).
		Str("port", cfg.Port).
		Msg("Starting Cagnotte API")

	db, err := database.NewPostgres(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to PostgreSQL")
	}
	defer database.ClosePostgres(db)

	redisClient, err := database.NewRedis(cfg.RedisURL)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to connect to Redis")
	}
	defer database.CloseRedis(redisClient)

	jwtService := jwt.NewService(cfg.JWTSecret, cfg.JWTAccessTTL, cfg.JWTRefreshTTL)

	// ---------- Repositories ----------
	userRepo := user.NewRepository(db)
	refreshTokenRepo := auth.NewRefreshTokenRepository(db)
	cagnotteRepo := cagnotte.NewRepository(db)
	donationRepo := donation.NewRepository(db)
	reportRepo := report.NewRepository(db)

	// ---------- Services ----------
	authService := auth.NewService(userRepo, refreshTokenRepo, jwtService)
	cagnotteService := cagnotte.NewService(cagnotteRepo)
	donationService := donation.NewService(donationRepo, cagnotteRepo)
	reportService := report.NewService(reportRepo, cagnotteService, userRepo)

	// ---------- Handlers ----------
	authHandler := auth.NewHandler(authService)
	cagnotteHandler := cagnotte.NewHandler(cagnotteService)
	donationHandler := donation.NewHandler(donationService)
	reportHandler := report.NewHandler(reportService)

	// ---------- Middleware ----------
	authMiddleware := middleware.Auth(jwtService)
	optionalAuthMiddleware := middleware.OptionalAuth(jwtService)
	adminMiddleware := middleware.RequireAdmin()
	reportRateLimit := middleware.RateLimit(redisClient, cfg.ReportRateLimit, cfg.ReportRateWindow)
	loginRateLimit := middleware.RateLimit(redisClient, 10, time.Minute)

	// ---------- Router ----------
	r := chi.NewRouter()

	r.Use(chimw.RealIP)
	r.Use(middleware.RequestID)
	r.Use(middleware.Logger)
	r.Use(middleware.Recover)
	r.Use(middleware.CORSHandler(cfg.AllowedOrigins))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		response.OK(w, "", map[string]string{
			"status":  "ok",
			"version": "1.0.0",
		})
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Mount("/auth", authHandler.Routes(loginRateLimit))
		r.Mount("/cagnottes", cagnotteHandler.Routes(authMiddleware))
		r.Mount("/cagnottes/{id}/donations", donationHandler.Routes(optionalAuthMiddleware))
		r.Mount("/reports", reportHandler.PublicRoutes(reportRateLimit, optionalAuthMiddleware))
	})

	r.Route("/api/admin", func(r chi.Router) {
		r.Mount("/reports", reportHandler.AdminRoutes(authMiddleware, adminMiddleware))
		r.Mount("/cagnottes", cagnotteHandler.AdminRoutes(authMiddleware, adminMiddleware))
	})

	server := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      r,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		log.Info().Str("addr", server.Addr).Msg("HTTP server listening")
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("HTTP server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exited properly")
}
