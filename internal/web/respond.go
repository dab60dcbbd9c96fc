package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/oriolpb/songuess/internal/game"
)

func respondJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func respondError(w http.ResponseWriter, status int, message string) {
	respondJSON(w, status, map[string]string{"error": message})
}

// respondGameError maps the game error taxonomy to a transport status.
// Unexpected errors collapse to a generic 500 without detail.
func respondGameError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, game.ErrUnauthorized):
		respondError(w, http.StatusUnauthorized, "token required")
	case errors.Is(err, game.ErrNotFound):
		respondError(w, http.StatusNotFound, "level not available")
	case errors.Is(err, game.ErrForbidden):
		respondError(w, http.StatusForbidden, "no spotify connection available")
	case errors.Is(err, game.ErrConflict):
		respondError(w, http.StatusBadRequest, "level already played")
	case errors.Is(err, game.ErrBadRequest):
		respondError(w, http.StatusBadRequest, "invalid level id")
	default:
		respondError(w, http.StatusInternalServerError, "internal error")
	}
}
