package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/oriolpb/songuess/internal/db"
)

// SongStore is the storage surface the resolver needs.
type SongStore interface {
	LocalByLevel(ctx context.Context, level int) (*db.Song, error)
	SpotifyByLevel(ctx context.Context, level int) (*db.Song, error)
	TitleByLevel(ctx context.Context, level int) (string, error)
	UpsertSpotify(ctx context.Context, song *db.Song) error
	DeleteDaily(ctx context.Context) error
	InsertDailyPlaceholder(ctx context.Context, trackID string) error
}

// TokenSource yields a player's unexpired Spotify access token, or
// db.ErrNoSpotifyToken when none is on file.
type TokenSource interface {
	SpotifyAccessToken(ctx context.Context, username string) (string, error)
}

// TrackInfo is the display metadata fetched from Spotify for one track.
type TrackInfo struct {
	Title      string
	Artists    string // comma-joined
	Album      string
	Year       int
	Genre      string
	PreviewURL string // best-effort, may be empty
	ImageURL   string
}

// TrackFetcher retrieves track metadata from the music provider.
type TrackFetcher interface {
	TrackInfo(ctx context.Context, trackID, accessToken string) (*TrackInfo, error)
}

// Resolver maps a parsed level reference to its canonical song, picking
// the backing source and filling the Spotify cache on demand.
type Resolver struct {
	songs    SongStore
	tokens   TokenSource
	provider TrackFetcher
	logger   zerolog.Logger
}

// NewResolver creates a Resolver.
func NewResolver(songs SongStore, tokens TokenSource, provider TrackFetcher, logger zerolog.Logger) *Resolver {
	return &Resolver{
		songs:    songs,
		tokens:   tokens,
		provider: provider,
		logger:   logger.With().Str("component", "resolver").Logger(),
	}
}

// ResolveLevelSong returns the canonical song for a level. An empty
// username means a guest, who may only reach the local catalog. For a
// Spotify-backed placeholder row it performs the cache-fill: look up the
// player's access token (ErrForbidden without one), fetch display
// metadata, write it back keyed by level, and return the completed song.
// Two concurrent fills of one level are tolerated as last-writer-wins.
func (r *Resolver) ResolveLevelSong(ctx context.Context, ref LevelRef, username string) (*db.Song, error) {
	if ref.Source == SourceLocal {
		song, err := r.songs.LocalByLevel(ctx, ref.Index)
		if errors.Is(err, db.ErrNotFound) {
			return nil, fmt.Errorf("%w: local level %d", ErrNotFound, ref.Index)
		}
		if err != nil {
			return nil, err
		}
		return song, nil
	}

	if username == "" {
		return nil, ErrUnauthorized
	}

	song, err := r.songs.SpotifyByLevel(ctx, ref.Index)
	if errors.Is(err, db.ErrNotFound) {
		return nil, fmt.Errorf("%w: level %d", ErrNotFound, ref.Index)
	}
	if err != nil {
		return nil, err
	}

	if song.Complete() {
		return song, nil
	}

	return r.fillFromSpotify(ctx, ref, song, username)
}

// fillFromSpotify completes a placeholder row with metadata fetched from
// Spotify and persists it.
func (r *Resolver) fillFromSpotify(ctx context.Context, ref LevelRef, song *db.Song, username string) (*db.Song, error) {
	token, err := r.tokens.SpotifyAccessToken(ctx, username)
	if err != nil {
		if errors.Is(err, db.ErrNoSpotifyToken) {
			return nil, fmt.Errorf("%w: %s", ErrForbidden, username)
		}
		return nil, err
	}

	info, err := r.provider.TrackInfo(ctx, song.ID, token)
	if err != nil {
		r.logger.Warn().Err(err).Str("track", song.ID).Int("level", ref.Index).
			Msg("spotify fetch failed")
		return nil, fmt.Errorf("%w: level %d", ErrNotFound, ref.Index)
	}

	song.Title = info.Title
	song.Artists = info.Artists
	song.Album = info.Album
	song.Year = info.Year
	song.Genre = info.Genre
	song.Audio = info.PreviewURL
	song.ImageURL = info.ImageURL
	song.LevelID = ref.Index

	if err := r.songs.UpsertSpotify(ctx, song); err != nil {
		return nil, fmt.Errorf("caching song for level %d: %w", ref.Index, err)
	}

	r.logger.Info().Str("track", song.ID).Int("level", ref.Index).Msg("cache-filled song")
	return song, nil
}

// LevelTitle resolves only the canonical title of a level. It reads
// whatever storage holds and never triggers a cache-fill; a placeholder
// Spotify row yields ErrNotFound.
func (r *Resolver) LevelTitle(ctx context.Context, ref LevelRef) (string, error) {
	if ref.Source == SourceLocal {
		song, err := r.songs.LocalByLevel(ctx, ref.Index)
		if errors.Is(err, db.ErrNotFound) {
			return "", ErrNotFound
		}
		if err != nil {
			return "", err
		}
		return song.Title, nil
	}

	title, err := r.songs.TitleByLevel(ctx, ref.Index)
	if errors.Is(err, db.ErrNotFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", err
	}
	return title, nil
}
