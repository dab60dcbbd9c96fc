// Command songuess runs the song-guessing game backend.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/oriolpb/songuess/internal/auth"
	"github.com/oriolpb/songuess/internal/catalog"
	"github.com/oriolpb/songuess/internal/config"
	"github.com/oriolpb/songuess/internal/db"
	"github.com/oriolpb/songuess/internal/game"
	"github.com/oriolpb/songuess/internal/spotify"
	"github.com/oriolpb/songuess/internal/web"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Missing .env is fine, the environment may be set directly.
	_ = godotenv.Load()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if os.Getenv("PRETTY_LOGS") == "true" {
		logger = logger.Output(zerolog.ConsoleWriter{Out: os.Stdout, TimeFormat: time.Kitchen})
	}

	ctx := context.Background()

	database, err := db.Open(ctx, cfg.DatabaseURL)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	if err := database.Init(ctx); err != nil {
		return fmt.Errorf("initializing schema: %w", err)
	}

	songs := database.Songs()
	players := database.Players()

	if err := seedCatalog(ctx, songs); err != nil {
		return err
	}

	pool, err := catalog.DailyPool()
	if err != nil {
		return fmt.Errorf("loading daily pool: %w", err)
	}
	rotator := game.NewRotator(songs, pool, logger)
	trackID, err := rotator.Rotate(ctx)
	if err != nil {
		return fmt.Errorf("rotating daily challenge: %w", err)
	}
	logger.Info().Str("track_id", trackID).Msg("daily challenge selected")

	spotifyClient := spotify.New(cfg.SpotifyRedirectURL, logger)
	resolver := game.NewResolver(songs, players, spotifyClient, logger)

	server := web.NewServer(web.ServerConfig{
		Addr:           cfg.Addr,
		AllowedOrigins: cfg.AllowedOrigins,
		Tokens:         auth.NewTokenManager([]byte(cfg.JWTSecret), cfg.TokenTTL),
		Players:        players,
		Resolver:       resolver,
		Validator:      game.NewValidator(resolver, logger),
		Tracker:        game.NewTracker(players, logger),
		Spotify:        spotifyClient,
		Logger:         logger,
	})

	return server.Run()
}

// seedCatalog loads the bundled song data into the database. Seeding is
// idempotent, existing rows keep their cached metadata.
func seedCatalog(ctx context.Context, songs *db.SongRepository) error {
	local, err := catalog.LocalSongs()
	if err != nil {
		return fmt.Errorf("loading local catalog: %w", err)
	}
	if err := songs.SeedLocal(ctx, local); err != nil {
		return fmt.Errorf("seeding local songs: %w", err)
	}

	levels, err := catalog.SpotifyLevels()
	if err != nil {
		return fmt.Errorf("loading spotify levels: %w", err)
	}
	if err := songs.SeedSpotifyLevels(ctx, levels); err != nil {
		return fmt.Errorf("seeding spotify levels: %w", err)
	}
	return nil
}
