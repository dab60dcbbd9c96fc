// Package game implements the song-guessing core: level resolution,
// answer validation, the daily challenge and player progress tracking.
package game

import "errors"

// Sentinel errors returned by game operations. The web layer maps each
// one to a transport status; expected conditions are never panics.
var (
	// ErrUnauthorized is returned when an operation requires an
	// authenticated player and none was provided.
	ErrUnauthorized = errors.New("authentication required")

	// ErrNotFound is returned when a level, song or player does not exist.
	ErrNotFound = errors.New("not found")

	// ErrForbidden is returned when the player is authenticated but has no
	// usable Spotify access token on file.
	ErrForbidden = errors.New("no spotify connection available")

	// ErrConflict is returned when a level has already been played.
	ErrConflict = errors.New("level already played")

	// ErrBadRequest is returned for malformed input, such as a level
	// identifier with a non-numeric fragment.
	ErrBadRequest = errors.New("invalid request")
)
