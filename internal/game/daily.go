package game

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/rs/zerolog"
)

// fallbackDailyTrack keeps the daily challenge alive when the candidate
// pool cannot be loaded at startup.
const fallbackDailyTrack = "4blQLWBwNYjL3Z0x8ctMBq"

// Rotator installs a new song under the reserved daily level. After a
// rotation, level 0 behaves like any other Spotify-backed level through
// the Resolver: a placeholder row that cache-fills on first access.
type Rotator struct {
	songs  SongStore
	pool   []string
	pick   func(n int) int
	logger zerolog.Logger
}

// NewRotator creates a Rotator over a candidate pool of Spotify track ids.
// An empty pool degrades to a single hard-coded track instead of failing
// startup.
func NewRotator(songs SongStore, pool []string, logger zerolog.Logger) *Rotator {
	log := logger.With().Str("component", "daily").Logger()
	if len(pool) == 0 {
		log.Warn().Msg("empty daily pool, falling back to default track")
		pool = []string{fallbackDailyTrack}
	}
	return &Rotator{
		songs:  songs,
		pool:   pool,
		pick:   rand.Intn,
		logger: log,
	}
}

// Rotate picks one candidate uniformly at random, deletes whatever song
// occupies the daily level and installs a fresh placeholder for the pick.
// It returns the chosen track id.
func (r *Rotator) Rotate(ctx context.Context) (string, error) {
	trackID := r.pool[r.pick(len(r.pool))]

	if err := r.songs.DeleteDaily(ctx); err != nil {
		return "", fmt.Errorf("clearing daily level: %w", err)
	}
	if err := r.songs.InsertDailyPlaceholder(ctx, trackID); err != nil {
		return "", fmt.Errorf("installing daily song: %w", err)
	}

	r.logger.Info().Str("track", trackID).Msg("daily song rotated")
	return trackID, nil
}
