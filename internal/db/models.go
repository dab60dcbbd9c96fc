package db

import (
	"slices"
	"strings"
	"time"
)

// Song is one catalog entry. Local songs carry a numeric id equal to their
// level; Spotify songs carry the Spotify track id and start as placeholder
// rows (id + level only) that are completed in place on first access.
type Song struct {
	ID       string
	Title    string
	Artists  string // display string, comma-joined
	Album    string
	Year     int // 0 when unknown
	Genre    string
	Audio    string // preview URL, or base64 payload for local songs
	ImageURL string
	LevelID  int
}

// Complete reports whether all display fields are populated, i.e. the row
// no longer needs a Spotify fetch.
func (s *Song) Complete() bool {
	return s.Title != "" && s.Artists != "" && s.Album != "" &&
		s.Year != 0 && s.Genre != "" && s.Audio != "" && s.ImageURL != ""
}

// Player is a registered account. Level-id sets are real string slices
// here; their comma-joined form exists only at the storage boundary.
type Player struct {
	Username     string
	Email        string
	PasswordHash string
	CreatedAt    time.Time
	IsActive     bool
	TotalScore   int
	GamesPlayed  int

	CompletedLevels []string
	PlayedLevels    []string

	// LastDailyCompleted is a "dd-mm-yyyy" date, empty if the player has
	// never completed the daily challenge.
	LastDailyCompleted string

	// Per-player Spotify app credentials, required at registration.
	SpotifyClientID     string
	SpotifyClientSecret string

	// Populated after the authorization-code exchange.
	SpotifyAccessToken  *string
	SpotifyRefreshToken *string
	SpotifyTokenExpiry  *time.Time
}

// HasPlayed reports whether the player has already attempted the level.
func (p *Player) HasPlayed(levelID string) bool {
	return slices.Contains(p.PlayedLevels, levelID)
}

// HasCompleted reports whether the player has completed the level.
func (p *Player) HasCompleted(levelID string) bool {
	return slices.Contains(p.CompletedLevels, levelID)
}

// joinLevels serializes a level-id set for a TEXT column.
func joinLevels(levels []string) string {
	return strings.Join(levels, ",")
}

// splitLevels parses a comma-joined level-id set. An empty column yields a
// nil slice, not [""].
func splitLevels(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, ",")
}
