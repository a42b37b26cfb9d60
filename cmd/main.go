package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/opencourt/courtplay/config"
	"github.com/opencourt/courtplay/db"
	"github.com/opencourt/courtplay/handlers"
	"github.com/opencourt/courtplay/repositories"
	api "github.com/opencourt/courtplay/routes"
	"github.com/opencourt/courtplay/rotation"
	"github.com/opencourt/courtplay/services"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))
	slog.SetDefault(logger)

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		} else {
			logger.Info("database connection closed")
		}
	}()
	logger.Info("database connection established")

	wsHub := rotation.NewHub(logger)
	go wsHub.Run()
	logger.Info("websocket hub started")

	playerRepo := repositories.NewPostgresPlayerRepository(dbConn)
	sessionRepo := repositories.NewPostgresSessionRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	gameRepo := repositories.NewPostgresGameRepository(dbConn)
	groupRepo := repositories.NewPostgresGroupRepository(dbConn)
	logger.Info("repositories initialized")

	playerService := services.NewPlayerService(playerRepo)
	sessionService := services.NewSessionService(
		dbConn,
		sessionRepo,
		playerRepo,
		teamRepo,
		gameRepo,
		groupRepo,
		wsHub,
	)
	roundService := services.NewRoundService(
		dbConn,
		sessionRepo,
		playerRepo,
		teamRepo,
		gameRepo,
		wsHub,
		logger,
	)
	logger.Info("services initialized")

	playerHandler := handlers.NewPlayerHandler(playerService)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	roundHandler := handlers.NewRoundHandler(roundService)
	webSocketHandler := handlers.NewWebSocketHandler(wsHub, logger)
	logger.Info("HTTP handlers initialized")

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		playerHandler,
		sessionHandler,
		roundHandler,
		webSocketHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
		logger.Info("server stopped gracefully")
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		logger.Info("shutting down server", slog.Duration("timeout", 15*time.Second))
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
	logger.Info("application exited")
}
