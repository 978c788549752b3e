package rest

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/playgrid/tictactoe-engine/internal/entity"
)

type statsUseCase interface {
	GetPlayerStats(ctx context.Context, playerID string) (*entity.PlayerStats, error)
}

type Server struct {
	logger *slog.Logger
	stats  statsUseCase
}

func New(logger *slog.Logger, stats statsUseCase) *Server {
	return &Server{
		logger: logger.With("component", "rest_server"),
		stats:  stats,
	}
}

// Router - the HTTP routes of the service.
func (that *Server) Router() http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Get("/ping", that.handlePing)
	router.Get("/stats/{playerID}", that.handlePlayerStats)

	return router
}

// Start - starts the REST server.
func (that *Server) Start(port string) error {
	srv := &http.Server{
		Addr:         ":" + port,
		Handler:      that.Router(),
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  30 * time.Second,
	}

	if err := srv.ListenAndServe(); err != nil {
		return fmt.Errorf("failed to start server: %w", err)
	}

	return nil
}
