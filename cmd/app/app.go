package app

import (
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"hypefeed/internal/config"
	"hypefeed/internal/database"
	handlers "hypefeed/internal/handler"
	"hypefeed/internal/middleware"
	"hypefeed/internal/repository"
	"hypefeed/internal/service"
)

// App connects the database and builds the service layer on top of it.
func App(cfg *config.Config) (*database.DB, *service.Service, error) {
	db, err := database.ConnectDB(cfg)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	repo := repository.NewRepository(db.DB)

	services, err := service.NewService(repo, cfg)
	if err != nil {
		db.CloseDB()
		return nil, nil, err
	}

	return db, services, nil
}

// Handler returns the routed API wrapped in the standard middleware stack.
func Handler(db database.MethodsDB, services *service.Service, cfg *config.Config) http.Handler {
	h := handlers.NewHandlers(services, db, cfg)

	return middleware.Chain(
		handlers.NewRouter(h),
		middleware.RecoveryMiddleware,
		middleware.RequestIDMiddleware,
		middleware.LoggingMiddleware,
		middleware.CORSMiddleware,
	)
}

// NewLogger builds the process logger from LOG_LEVEL and LOG_FORMAT.
func NewLogger(cfg config.Log, w io.Writer) *slog.Logger {
	opts := &slog.HandlerOptions{Level: cfg.SlogLevel()}

	if strings.EqualFold(cfg.Format, "json") {
		return slog.New(slog.NewJSONHandler(w, opts))
	}
	return slog.New(slog.NewTextHandler(w, opts))
}
