// Package catalog bundles the seed data shipped with the backend: the
// local guest catalog, the Spotify level bindings and the daily-challenge
// candidate pool.
package catalog

import (
	"embed"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/oriolpb/songuess/internal/db"
)

//go:embed seed/*.json
var seedFS embed.FS

type localSeed struct {
	Songs []struct {
		ID       int    `json:"id"`
		Title    string `json:"title"`
		Artists  string `json:"artists"`
		Album    string `json:"album"`
		Year     int    `json:"year"`
		Genre    string `json:"genre"`
		Audio    string `json:"audio"`
		ImageURL string `json:"image_url"`
	} `json:"songs"`
}

type spotifySeed struct {
	Levels []struct {
		SpotifyID string `json:"spotify_id"`
		LevelID   int    `json:"level_id"`
	} `json:"levels"`
}

type dailySeed struct {
	TrackIDs []string `json:"track_ids"`
}

// LocalSongs returns the bundled guest catalog. The song id doubles as the
// level number.
func LocalSongs() ([]db.Song, error) {
	data, err := seedFS.ReadFile("seed/local_songs.json")
	if err != nil {
		return nil, fmt.Errorf("reading local songs seed: %w", err)
	}

	var seed localSeed
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing local songs seed: %w", err)
	}

	songs := make([]db.Song, len(seed.Songs))
	for i, s := range seed.Songs {
		songs[i] = db.Song{
			ID:       strconv.Itoa(s.ID),
			Title:    s.Title,
			Artists:  s.Artists,
			Album:    s.Album,
			Year:     s.Year,
			Genre:    s.Genre,
			Audio:    s.Audio,
			ImageURL: s.ImageURL,
			LevelID:  s.ID,
		}
	}
	return songs, nil
}

// SpotifyLevels returns the level→track-id bindings used to seed
// placeholder rows for authenticated play.
func SpotifyLevels() (map[int]string, error) {
	data, err := seedFS.ReadFile("seed/spotify_levels.json")
	if err != nil {
		return nil, fmt.Errorf("reading spotify levels seed: %w", err)
	}

	var seed spotifySeed
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing spotify levels seed: %w", err)
	}

	levels := make(map[int]string, len(seed.Levels))
	for _, l := range seed.Levels {
		levels[l.LevelID] = l.SpotifyID
	}
	return levels, nil
}

// DailyPool returns the candidate track ids for the daily challenge.
func DailyPool() ([]string, error) {
	data, err := seedFS.ReadFile("seed/daily_pool.json")
	if err != nil {
		return nil, fmt.Errorf("reading daily pool seed: %w", err)
	}

	var seed dailySeed
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("parsing daily pool seed: %w", err)
	}
	return seed.TrackIDs, nil
}
