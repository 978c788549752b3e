package rest

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/playgrid/tictactoe-engine/internal/repository"
)

func (that *Server) handlePing(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("pong")); err != nil {
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}
}

func (that *Server) handlePlayerStats(w http.ResponseWriter, r *http.Request) {
	log := that.logger.With("method", "handlePlayerStats")

	playerID := chi.URLParam(r, "playerID")

	stats, err := that.stats.GetPlayerStats(r.Context(), playerID)
	if errors.Is(err, repository.ErrPlayerStatsNotFound) {
		http.Error(w, "player stats not found", http.StatusNotFound)
		return
	}

	if err != nil {
		log.Error("failed to get player stats", "player_id", playerID, "error", err)
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	if err = json.NewEncoder(w).Encode(stats); err != nil {
		log.Error("failed to encode player stats", "error", err)
	}
}
