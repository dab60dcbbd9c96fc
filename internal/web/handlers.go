package web

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog"

	"github.com/oriolpb/songuess/internal/auth"
	"github.com/oriolpb/songuess/internal/db"
	"github.com/oriolpb/songuess/internal/game"
	"github.com/oriolpb/songuess/internal/spotify"
)

// validate checks inbound request payloads against their struct tags.
var validate = validator.New()

// Handlers contains the HTTP handlers for the API.
type Handlers struct {
	tokens    *auth.TokenManager
	players   *db.PlayerRepository
	resolver  *game.Resolver
	validator *game.Validator
	tracker   *game.Tracker
	spotify   *spotify.Client
	logger    zerolog.Logger
}

// NewHandlers creates a Handlers instance.
func NewHandlers(cfg ServerConfig) *Handlers {
	return &Handlers{
		tokens:    cfg.Tokens,
		players:   cfg.Players,
		resolver:  cfg.Resolver,
		validator: cfg.Validator,
		tracker:   cfg.Tracker,
		spotify:   cfg.Spotify,
		logger:    cfg.Logger.With().Str("component", "handlers").Logger(),
	}
}

// publicPlayer is the outbound projection of an account, without
// credentials or provider tokens.
type publicPlayer struct {
	Username       string `json:"username"`
	Email          string `json:"email"`
	TotalScore     int    `json:"total_score"`
	GamesPlayed    int    `json:"games_played"`
	DailyCompleted bool   `json:"daily_completed"`
}

func (h *Handlers) publicView(p *db.Player) publicPlayer {
	return publicPlayer{
		Username:       p.Username,
		Email:          p.Email,
		TotalScore:     p.TotalScore,
		GamesPlayed:    p.GamesPlayed,
		DailyCompleted: h.tracker.DailyCompletedToday(p),
	}
}

// ============================================================================
// Auth
// ============================================================================

type registerRequest struct {
	Username            string `json:"username" validate:"required,min=3"`
	Email               string `json:"email" validate:"required,email"`
	Password            string `json:"pwd1" validate:"required,min=6"`
	PasswordConfirm     string `json:"pwd2" validate:"required,eqfield=Password"`
	SpotifyClientID     string `json:"spotify_client_id" validate:"required"`
	SpotifyClientSecret string `json:"spotify_client_secret" validate:"required"`
}

// Register creates a new account and returns a bearer token (POST
// /api/v1/auth/register).
func (h *Handlers) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Username = strings.TrimSpace(req.Username)
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid registration data")
		return
	}

	ctx := r.Context()
	if _, err := h.players.GetByUsername(ctx, req.Username); !errors.Is(err, db.ErrNotFound) {
		respondError(w, http.StatusBadRequest, "username already exists")
		return
	}
	if _, err := h.players.GetByEmail(ctx, req.Email); !errors.Is(err, db.ErrNotFound) {
		respondError(w, http.StatusBadRequest, "email already registered")
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	player := &db.Player{
		Username:            req.Username,
		Email:               req.Email,
		PasswordHash:        hash,
		SpotifyClientID:     req.SpotifyClientID,
		SpotifyClientSecret: req.SpotifyClientSecret,
	}
	if err := h.players.Create(ctx, player); err != nil {
		h.logger.Error().Err(err).Msg("creating player")
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	token, err := h.tokens.Issue(player.Username, player.Email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusCreated, map[string]any{
		"message":      "player created",
		"access_token": token,
		"token_type":   "bearer",
		"user":         h.publicView(player),
	})
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// Login authenticates by email and password (POST /api/v1/auth/login).
func (h *Handlers) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))

	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "email and password required")
		return
	}

	player, err := h.players.GetByEmail(r.Context(), req.Email)
	if err != nil || !auth.CheckPassword(player.PasswordHash, req.Password) {
		// Same response for unknown email and wrong password.
		respondError(w, http.StatusUnauthorized, "invalid credentials")
		return
	}

	token, err := h.tokens.Issue(player.Username, player.Email)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":      "login successful",
		"access_token": token,
		"token_type":   "bearer",
		"user":         h.publicView(player),
	})
}

// CurrentPlayer returns the authenticated account (GET /api/v1/auth/me).
func (h *Handlers) CurrentPlayer(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.publicView(playerFromContext(r.Context())))
}

type updateProfileRequest struct {
	Username string `json:"username" validate:"omitempty,min=3"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

// UpdateProfile changes username and/or password (PUT
// /api/v1/auth/update-profile). A renamed account gets a fresh token.
func (h *Handlers) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	player := playerFromContext(r.Context())

	var req updateProfileRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	req.Username = strings.TrimSpace(req.Username)

	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid profile data")
		return
	}
	if req.Username == "" && req.Password == "" {
		respondError(w, http.StatusBadRequest, "nothing to update")
		return
	}

	ctx := r.Context()
	if req.Username != "" && req.Username != player.Username {
		if _, err := h.players.GetByUsername(ctx, req.Username); !errors.Is(err, db.ErrNotFound) {
			respondError(w, http.StatusBadRequest, "username already in use")
			return
		}
	}

	var hash string
	if req.Password != "" {
		var err error
		if hash, err = auth.HashPassword(req.Password); err != nil {
			respondError(w, http.StatusInternalServerError, "internal error")
			return
		}
	}

	if err := h.players.UpdateProfile(ctx, player.Username, req.Username, hash); err != nil {
		h.logger.Error().Err(err).Msg("updating profile")
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	username := player.Username
	if req.Username != "" {
		username = req.Username
	}
	updated, err := h.players.GetByUsername(ctx, username)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	response := map[string]any{
		"message": "profile updated",
		"user":    h.publicView(updated),
	}
	if req.Username != "" {
		token, err := h.tokens.Issue(updated.Username, updated.Email)
		if err != nil {
			respondError(w, http.StatusInternalServerError, "internal error")
			return
		}
		response["access_token"] = token
		response["token_type"] = "bearer"
	}

	respondJSON(w, http.StatusOK, response)
}

// ============================================================================
// Game
// ============================================================================

// LevelSong serves the song for a level (GET /api/v1/songs/{levelID}).
// Local levels are open to guests; Spotify-backed levels require a token.
// The payload is the hint projection unless ?reveal=true, which also
// records the attempt for authenticated players.
func (h *Handlers) LevelSong(w http.ResponseWriter, r *http.Request) {
	ref, err := game.ParseLevel(chi.URLParam(r, "levelID"))
	if err != nil {
		respondGameError(w, err)
		return
	}

	// Optional authentication: a guest simply has no username.
	username := ""
	player, err := h.playerFromRequest(r)
	if err == nil {
		username = player.Username
	} else if ref.Source != game.SourceLocal {
		respondError(w, http.StatusUnauthorized, "token required")
		return
	}

	song, err := h.resolver.ResolveLevelSong(r.Context(), ref, username)
	if err != nil {
		respondGameError(w, err)
		return
	}

	view := game.HintView(song)
	if r.URL.Query().Get("reveal") == "true" {
		view = game.FullView(song)
		if player != nil {
			if err := h.tracker.MarkPlayed(r.Context(), player, ref.String()); err != nil {
				h.logger.Warn().Err(err).Msg("recording reveal")
			}
		}
	}

	source := "spotify"
	if ref.Source == game.SourceLocal {
		source = "local"
	}
	respondJSON(w, http.StatusOK, map[string]any{"song": view, "source": source})
}

type validateRequest struct {
	LevelID string `json:"level_id"`
	Answer  string `json:"answer"`
}

// ValidateAnswer checks a guess (POST /api/v1/game/validate). The response
// is always 200 with a verdict; an unknown level is indistinguishable
// from a wrong guess.
func (h *Handlers) ValidateAnswer(w http.ResponseWriter, r *http.Request) {
	var req validateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	correct := h.validator.Validate(r.Context(), req.LevelID, req.Answer)
	respondJSON(w, http.StatusOK, map[string]bool{"correct": correct})
}

type submitScoreRequest struct {
	LevelID string `json:"level_id"`
	Score   *int   `json:"score" validate:"required"`
}

// SubmitScore records a completed level (POST /api/v1/game/submit-score).
func (h *Handlers) SubmitScore(w http.ResponseWriter, r *http.Request) {
	player := playerFromContext(r.Context())

	var req submitScoreRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "score required")
		return
	}

	total, err := h.tracker.SubmitScore(r.Context(), player, req.LevelID, *req.Score)
	if err != nil {
		respondGameError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"message":     "score updated",
		"total_score": total,
	})
}

type markPlayedRequest struct {
	LevelID string `json:"level_id" validate:"required"`
}

// MarkLevelPlayed records an attempt without score (POST
// /api/v1/game/mark-level-played).
func (h *Handlers) MarkLevelPlayed(w http.ResponseWriter, r *http.Request) {
	player := playerFromContext(r.Context())

	var req markPlayedRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, http.StatusBadRequest, "level required")
		return
	}

	if err := h.tracker.MarkPlayed(r.Context(), player, req.LevelID); err != nil {
		respondGameError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "level marked as played"})
}

// CompleteDaily stamps today's daily completion (POST
// /api/v1/game/daily/complete).
func (h *Handlers) CompleteDaily(w http.ResponseWriter, r *http.Request) {
	player := playerFromContext(r.Context())

	if err := h.tracker.CompleteDaily(r.Context(), player); err != nil {
		respondGameError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "daily challenge completed"})
}

// Ranking returns the leaderboard (GET /api/v1/ranking?limit=10).
func (h *Handlers) Ranking(w http.ResponseWriter, r *http.Request) {
	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 1 {
			respondError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	ranking, err := h.tracker.Ranking(r.Context(), limit)
	if err != nil {
		h.logger.Error().Err(err).Msg("loading ranking")
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{"ranking": ranking})
}

// ============================================================================
// Spotify linkage
// ============================================================================

// SpotifyClientID returns the Spotify client id registered for an email
// (GET /api/v1/spoti/getClientId?email=...), used by the frontend to build
// the authorize URL.
func (h *Handlers) SpotifyClientID(w http.ResponseWriter, r *http.Request) {
	email := strings.ToLower(strings.TrimSpace(r.URL.Query().Get("email")))
	if email == "" {
		respondError(w, http.StatusBadRequest, "email required")
		return
	}

	player, err := h.players.GetByEmail(r.Context(), email)
	if err != nil || player.SpotifyClientID == "" {
		respondError(w, http.StatusBadRequest, "no spotify credentials configured")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"clientId": player.SpotifyClientID})
}

// SpotifyAuthorizationToken exchanges an authorization code for tokens and
// persists them (GET /api/v1/spoti/getAuthorizationToken?code=...&clientId=...).
func (h *Handlers) SpotifyAuthorizationToken(w http.ResponseWriter, r *http.Request) {
	code := r.URL.Query().Get("code")
	clientID := r.URL.Query().Get("clientId")
	if code == "" || clientID == "" {
		respondError(w, http.StatusBadRequest, "missing required parameters")
		return
	}

	ctx := r.Context()
	player, err := h.players.GetByClientID(ctx, clientID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "unknown client id")
		return
	}

	creds := spotify.Credentials{
		ClientID:     player.SpotifyClientID,
		ClientSecret: player.SpotifyClientSecret,
	}
	token, err := h.spotify.ExchangeCode(ctx, creds, code)
	if err != nil {
		h.logger.Warn().Err(err).Str("player", player.Username).Msg("code exchange failed")
		respondError(w, http.StatusBadRequest, "error getting authorization token")
		return
	}

	err = h.players.SaveSpotifyTokens(ctx, player.Username, token.AccessToken, token.RefreshToken, token.Expiry)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]any{
		"access_token": token.AccessToken,
		"token_type":   token.TokenType,
		"expires_in":   int(time.Until(token.Expiry).Seconds()),
	})
}

// SpotifyRefresh renews the player's access token from the stored refresh
// token (POST /api/v1/spoti/refresh).
func (h *Handlers) SpotifyRefresh(w http.ResponseWriter, r *http.Request) {
	player := playerFromContext(r.Context())

	if player.SpotifyRefreshToken == nil || *player.SpotifyRefreshToken == "" {
		respondError(w, http.StatusBadRequest, "no refresh token on file")
		return
	}

	creds := spotify.Credentials{
		ClientID:     player.SpotifyClientID,
		ClientSecret: player.SpotifyClientSecret,
	}
	token, err := h.spotify.Refresh(r.Context(), creds, *player.SpotifyRefreshToken)
	if err != nil {
		h.logger.Warn().Err(err).Str("player", player.Username).Msg("token refresh failed")
		respondError(w, http.StatusBadRequest, "error refreshing token")
		return
	}

	err = h.players.SaveSpotifyTokens(r.Context(), player.Username, token.AccessToken, token.RefreshToken, token.Expiry)
	if err != nil {
		respondError(w, http.StatusInternalServerError, "internal error")
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"message": "token refreshed"})
}
