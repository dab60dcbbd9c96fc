// Package spotify fetches track metadata from the Spotify Web API on
// behalf of players, using each player's own access token.
package spotify

import (
	"context"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/zmb3/spotify/v2"
	"golang.org/x/oauth2"

	"github.com/oriolpb/songuess/internal/game"
)

const (
	authURL  = "https://accounts.spotify.com/authorize"
	tokenURL = "https://accounts.spotify.com/api/token"
	embedURL = "https://open.spotify.com/embed/track/"
)

// unknownGenre is stored when the artist lookup yields no genre.
const unknownGenre = "Unknown"

// Client talks to the Spotify Web API. It holds no account credentials of
// its own; every call runs under a player-supplied token, and the OAuth
// exchange runs under per-player client credentials.
type Client struct {
	httpClient  *http.Client
	redirectURL string
	authURL     string
	tokenURL    string
	embedURL    string
	logger      zerolog.Logger
}

// New creates a Client. redirectURL must match the players' Spotify app
// configuration.
func New(redirectURL string, logger zerolog.Logger) *Client {
	return &Client{
		httpClient:  &http.Client{Timeout: 10 * time.Second},
		redirectURL: redirectURL,
		authURL:     authURL,
		tokenURL:    tokenURL,
		embedURL:    embedURL,
		logger:      logger.With().Str("component", "spotify").Logger(),
	}
}

// TrackInfo fetches display metadata for a track: the track itself, a
// best-effort genre from a secondary artist lookup, a best-effort preview
// URL, and the cover image.
func (c *Client) TrackInfo(ctx context.Context, trackID, accessToken string) (*game.TrackInfo, error) {
	api := c.api(ctx, accessToken)

	track, err := api.GetTrack(ctx, spotify.ID(trackID))
	if err != nil {
		return nil, fmt.Errorf("fetching track %s: %w", trackID, err)
	}

	genre := unknownGenre
	if len(track.Artists) > 0 {
		if g, err := c.artistGenre(ctx, api, track.Artists[0].ID); err != nil {
			c.logger.Debug().Err(err).Str("track", trackID).Msg("artist genre lookup failed")
		} else if g != "" {
			genre = g
		}
	}

	// Previews are not guaranteed; a missing one is not an error.
	preview, err := c.PreviewURL(ctx, trackID)
	if err != nil {
		c.logger.Debug().Err(err).Str("track", trackID).Msg("preview lookup failed")
	}

	return convertTrack(track, genre, preview), nil
}

// artistGenre returns the first genre of an artist, or "" if none.
func (c *Client) artistGenre(ctx context.Context, api *spotify.Client, artistID spotify.ID) (string, error) {
	artist, err := api.GetArtist(ctx, artistID)
	if err != nil {
		return "", fmt.Errorf("fetching artist %s: %w", artistID, err)
	}
	if len(artist.Genres) == 0 {
		return "", nil
	}
	return artist.Genres[0], nil
}

// api builds a Web API client authenticated with the given access token.
func (c *Client) api(ctx context.Context, accessToken string) *spotify.Client {
	token := &oauth2.Token{AccessToken: accessToken, TokenType: "Bearer"}
	return spotify.New(oauth2.NewClient(ctx, oauth2.StaticTokenSource(token)))
}

// convertTrack maps a Spotify track to the resolver's metadata shape.
func convertTrack(track *spotify.FullTrack, genre, preview string) *game.TrackInfo {
	artists := make([]string, len(track.Artists))
	for i, a := range track.Artists {
		artists[i] = a.Name
	}

	year := 0
	if len(track.Album.ReleaseDate) >= 4 {
		year, _ = strconv.Atoi(track.Album.ReleaseDate[:4])
	}

	imageURL := ""
	if len(track.Album.Images) > 0 {
		imageURL = track.Album.Images[0].URL
	}

	return &game.TrackInfo{
		Title:      track.Name,
		Artists:    strings.Join(artists, ", "),
		Album:      track.Album.Name,
		Year:       year,
		Genre:      genre,
		PreviewURL: preview,
		ImageURL:   imageURL,
	}
}
