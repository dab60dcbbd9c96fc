package db

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// SongRepository handles song database operations for both backing
// sources: the seeded local catalog and the Spotify-backed catalog.
type SongRepository struct {
	pool *pgxpool.Pool
}

// SeedLocal inserts the bundled local songs. Existing rows are left
// untouched; the local catalog is immutable after seeding.
func (r *SongRepository) SeedLocal(ctx context.Context, songs []Song) error {
	query := `
		INSERT INTO local_songs (id, title, artists, album, year, genre, audio, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		ON CONFLICT (id) DO NOTHING
	`
	for _, s := range songs {
		id, err := strconv.Atoi(s.ID)
		if err != nil {
			return fmt.Errorf("local song id %q: %w", s.ID, err)
		}
		_, err = r.pool.Exec(ctx, query,
			id, s.Title, s.Artists, s.Album, s.Year, s.Genre, s.Audio, s.ImageURL)
		if err != nil {
			return fmt.Errorf("seeding local song %s: %w", s.ID, err)
		}
	}
	return nil
}

// LocalByLevel retrieves a local song; the level number doubles as its id.
func (r *SongRepository) LocalByLevel(ctx context.Context, level int) (*Song, error) {
	query := `
		SELECT id, title, artists, album, COALESCE(year, 0), COALESCE(genre, ''), audio, image_url
		FROM local_songs
		WHERE id = $1
	`
	var (
		song Song
		id   int
	)
	err := r.pool.QueryRow(ctx, query, level).Scan(
		&id, &song.Title, &song.Artists, &song.Album,
		&song.Year, &song.Genre, &song.Audio, &song.ImageURL,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying local song: %w", err)
	}
	song.ID = strconv.Itoa(id)
	song.LevelID = id
	return &song, nil
}

// SeedSpotifyLevels installs placeholder rows binding Spotify track ids to
// levels. Existing bindings are kept so already-filled metadata survives a
// restart.
func (r *SongRepository) SeedSpotifyLevels(ctx context.Context, levels map[int]string) error {
	query := `
		INSERT INTO spotify_songs (spotify_id, level_id)
		VALUES ($1, $2)
		ON CONFLICT (spotify_id) DO NOTHING
	`
	for level, trackID := range levels {
		if _, err := r.pool.Exec(ctx, query, trackID, level); err != nil {
			return fmt.Errorf("seeding spotify level %d: %w", level, err)
		}
	}
	return nil
}

// SpotifyByLevel retrieves the Spotify-backed song bound to a level. The
// row may be a placeholder with empty metadata.
func (r *SongRepository) SpotifyByLevel(ctx context.Context, level int) (*Song, error) {
	query := `
		SELECT spotify_id, COALESCE(title, ''), COALESCE(artists, ''), COALESCE(album, ''),
		       COALESCE(year, 0), COALESCE(genre, ''), COALESCE(audio, ''), COALESCE(image_url, ''),
		       level_id
		FROM spotify_songs
		WHERE level_id = $1
		LIMIT 1
	`
	var song Song
	err := r.pool.QueryRow(ctx, query, level).Scan(
		&song.ID, &song.Title, &song.Artists, &song.Album,
		&song.Year, &song.Genre, &song.Audio, &song.ImageURL,
		&song.LevelID,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying spotify song: %w", err)
	}
	return &song, nil
}

// TitleByLevel returns the stored title of the Spotify-backed song at a
// level. It never triggers a fetch; a placeholder row yields ErrNotFound.
func (r *SongRepository) TitleByLevel(ctx context.Context, level int) (string, error) {
	query := `
		SELECT title
		FROM spotify_songs
		WHERE level_id = $1 AND title IS NOT NULL AND title <> ''
		LIMIT 1
	`
	var title string
	err := r.pool.QueryRow(ctx, query, level).Scan(&title)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("querying song title: %w", err)
	}
	return title, nil
}

// UpsertSpotify writes a fully-fetched song back into storage (cache-fill).
// Concurrent fills of the same level are last-writer-wins; the fetched
// metadata is idempotent per track id.
func (r *SongRepository) UpsertSpotify(ctx context.Context, song *Song) error {
	query := `
		INSERT INTO spotify_songs (spotify_id, title, artists, album, year, genre, audio, image_url, level_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (spotify_id) DO UPDATE SET
			title = EXCLUDED.title,
			artists = EXCLUDED.artists,
			album = EXCLUDED.album,
			year = EXCLUDED.year,
			genre = EXCLUDED.genre,
			audio = EXCLUDED.audio,
			image_url = EXCLUDED.image_url,
			level_id = EXCLUDED.level_id
	`
	_, err := r.pool.Exec(ctx, query,
		song.ID, song.Title, song.Artists, song.Album,
		song.Year, song.Genre, song.Audio, song.ImageURL,
		song.LevelID,
	)
	if err != nil {
		return fmt.Errorf("upserting spotify song: %w", err)
	}
	return nil
}

// DeleteDaily removes whatever song currently occupies the daily level.
func (r *SongRepository) DeleteDaily(ctx context.Context) error {
	if _, err := r.pool.Exec(ctx, `DELETE FROM spotify_songs WHERE level_id = 0`); err != nil {
		return fmt.Errorf("deleting daily songs: %w", err)
	}
	return nil
}

// InsertDailyPlaceholder installs a fresh placeholder at the daily level.
// Any stale metadata under the same track id is cleared so the first
// request of the day performs a clean cache-fill.
func (r *SongRepository) InsertDailyPlaceholder(ctx context.Context, trackID string) error {
	query := `
		INSERT INTO spotify_songs (spotify_id, level_id)
		VALUES ($1, 0)
		ON CONFLICT (spotify_id) DO UPDATE SET
			level_id = 0,
			title = NULL, artists = NULL, album = NULL,
			year = NULL, genre = NULL, audio = NULL, image_url = NULL
	`
	if _, err := r.pool.Exec(ctx, query, trackID); err != nil {
		return fmt.Errorf("inserting daily placeholder: %w", err)
	}
	return nil
}
