package web

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/oriolpb/songuess/internal/auth"
	"github.com/oriolpb/songuess/internal/db"
)

type contextKey string

const playerKey contextKey = "player"

// RequireAuth rejects requests without a valid bearer token and loads the
// authenticated player into the request context.
func (h *Handlers) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		player, err := h.playerFromRequest(r)
		if err != nil {
			respondError(w, http.StatusUnauthorized, "token required")
			return
		}
		next.ServeHTTP(w, r.WithContext(
			context.WithValue(r.Context(), playerKey, player)))
	})
}

// playerFromContext returns the player loaded by RequireAuth.
func playerFromContext(ctx context.Context) *db.Player {
	player, _ := ctx.Value(playerKey).(*db.Player)
	return player
}

// playerFromRequest authenticates the bearer token on a request and loads
// the corresponding player. Used directly by handlers where
// authentication is optional.
func (h *Handlers) playerFromRequest(r *http.Request) (*db.Player, error) {
	header := r.Header.Get("Authorization")
	if header == "" {
		return nil, auth.ErrTokenInvalid
	}

	token, ok := strings.CutPrefix(header, "Bearer ")
	if !ok {
		token, ok = strings.CutPrefix(header, "bearer ")
	}
	if !ok || token == "" {
		return nil, auth.ErrTokenInvalid
	}

	claims, err := h.tokens.Verify(token)
	if err != nil {
		return nil, err
	}

	player, err := h.players.GetByUsername(r.Context(), claims.Username)
	if errors.Is(err, db.ErrNotFound) {
		return nil, auth.ErrTokenInvalid
	}
	return player, err
}
