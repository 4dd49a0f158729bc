package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/RahulAnswer/health-app/internal/config"
	"github.com/RahulAnswer/health-app/internal/domain/screening"
	"github.com/RahulAnswer/health-app/internal/platform/auth"
	"github.com/RahulAnswer/health-app/internal/platform/cdshooks"
	"github.com/RahulAnswer/health-app/internal/platform/metrics"
	"github.com/RahulAnswer/health-app/internal/platform/middleware"
)

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the screening API server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer()
		},
	}
}

func runServer() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := newLogger(cfg, os.Stdout)
	if err := cfg.Validate(); err != nil {
		logger.Error().Err(err).Msg("invalid configuration")
		return err
	}
	if cfg.ResolvedAuthMode() == config.AuthModeDevelopment {
		logger.Warn().Msg("development auth is active: every request is treated as admin; set AUTH_MODE=token outside development")
	}

	e, err := buildServer(cfg, logger)
	if err != nil {
		return err
	}

	// Graceful shutdown
	go func() {
		addr := ":" + cfg.Port
		logger.Info().Str("addr", addr).Strs("modules", cfg.ModuleIDs()).Msg("starting server")
		if err := e.Start(addr); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal().Err(err).Msg("server error")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info().Msg("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		return fmt.Errorf("server shutdown failed: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}

// buildServer wires the HTTP surface from a validated config.
func buildServer(cfg *config.Config, logger zerolog.Logger) (*echo.Echo, error) {
	var (
		recorder screening.Recorder
		m        *metrics.Metrics
	)
	if cfg.MetricsEnabled {
		m = metrics.New()
		recorder = m
	}

	svc, err := screening.NewService(screening.DefaultRegistry(), cfg.ModuleIDs(), recorder, logger)
	if err != nil {
		return nil, fmt.Errorf("modules: %w", err)
	}

	e := echo.New()
	e.HideBanner = true
	e.HidePort = true

	// Global middleware
	e.Use(middleware.Recovery(logger))
	e.Use(middleware.RequestID())
	e.Use(middleware.Logger(logger))
	if m != nil {
		e.Use(m.Middleware())
	}
	e.Use(middleware.SecurityHeaders())
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.CORSOrigins,
		AllowMethods: []string{http.MethodGet, http.MethodPost},
		AllowHeaders: []string{"Authorization", "Content-Type", middleware.RequestIDHeader},
	}))
	e.Use(middleware.BodyLimit(cfg.BodyLimit))
	e.Use(middleware.RateLimit(middleware.RateLimitConfig{
		RequestsPerSecond: cfg.RateLimitRPS,
		BurstSize:         cfg.RateLimitBurst,
		Skipper:           auth.AuthSkipper,
	}))
	e.Use(middleware.RequestTimeout(cfg.RequestTimeout))

	// Auth middleware
	switch cfg.ResolvedAuthMode() {
	case config.AuthModeToken:
		e.Use(auth.JWTMiddleware(auth.JWTConfig{
			Issuer:     cfg.AuthIssuer,
			Audience:   cfg.AuthAudience,
			SigningKey: []byte(cfg.AuthSigningKey),
			Skipper:    auth.AuthSkipper,
		}))
	default:
		e.Use(auth.DevAuthMiddleware())
	}

	e.GET("/health", func(c echo.Context) error {
		return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
	})
	if m != nil {
		e.GET("/metrics", echo.WrapHandler(m.Handler()))
	}

	apiV1 := e.Group("/api/v1")
	screening.NewHandler(svc).RegisterRoutes(apiV1)

	cds := cdshooks.NewHandler(logger)
	if err := screening.RegisterCDSServices(cds, svc); err != nil {
		return nil, fmt.Errorf("cds services: %w", err)
	}
	cds.RegisterRoutes(e, auth.RequireRole("clinician"))

	return e, nil
}
