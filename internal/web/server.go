// Package web provides the HTTP server and JSON API for the song-guessing
// backend.
package web

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/oriolpb/songuess/internal/auth"
	"github.com/oriolpb/songuess/internal/db"
	"github.com/oriolpb/songuess/internal/game"
	"github.com/oriolpb/songuess/internal/spotify"
)

// ServerConfig holds server configuration and dependencies.
type ServerConfig struct {
	Addr           string
	AllowedOrigins []string

	Tokens    *auth.TokenManager
	Players   *db.PlayerRepository
	Resolver  *game.Resolver
	Validator *game.Validator
	Tracker   *game.Tracker
	Spotify   *spotify.Client
	Logger    zerolog.Logger
}

// Server is the HTTP server for the API.
type Server struct {
	router   chi.Router
	server   *http.Server
	handlers *Handlers
	logger   zerolog.Logger
}

// NewServer creates a new API server.
func NewServer(cfg ServerConfig) *Server {
	handlers := NewHandlers(cfg)
	router := chi.NewRouter()

	s := &Server{
		router:   router,
		handlers: handlers,
		logger:   cfg.Logger.With().Str("component", "web").Logger(),
	}

	s.setupMiddleware(cfg.AllowedOrigins)
	s.setupRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware for the router.
func (s *Server) setupMiddleware(origins []string) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins: origins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Authorization", "Content-Type"},
		MaxAge:         300,
	}))
}

// setupRoutes configures the API routes.
func (s *Server) setupRoutes() {
	h := s.handlers

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.Register)
			r.Post("/login", h.Login)
			r.With(h.RequireAuth).Get("/me", h.CurrentPlayer)
			r.With(h.RequireAuth).Put("/update-profile", h.UpdateProfile)
		})

		r.Get("/songs/{levelID}", h.LevelSong)
		r.Get("/ranking", h.Ranking)

		r.Route("/game", func(r chi.Router) {
			r.Post("/validate", h.ValidateAnswer)
			r.With(h.RequireAuth).Post("/submit-score", h.SubmitScore)
			r.With(h.RequireAuth).Post("/mark-level-played", h.MarkLevelPlayed)
			r.With(h.RequireAuth).Post("/daily/complete", h.CompleteDaily)
		})

		r.Route("/spoti", func(r chi.Router) {
			r.Get("/getClientId", h.SpotifyClientID)
			r.Get("/getAuthorizationToken", h.SpotifyAuthorizationToken)
			r.With(h.RequireAuth).Post("/refresh", h.SpotifyRefresh)
		})
	})
}

// Start starts the HTTP server.
func (s *Server) Start() error {
	s.logger.Info().Str("addr", s.server.Addr).Msg("starting server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Run starts the server and handles graceful shutdown on interrupt.
func (s *Server) Run() error {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)

	errCh := make(chan error, 1)
	go func() {
		if err := s.Start(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-stop:
		s.logger.Info().Msg("shutting down server")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	return s.Shutdown(ctx)
}
