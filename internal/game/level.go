package game

import (
	"fmt"
	"strconv"
	"strings"
)

// localSuffix marks a level that is served from the bundled local catalog
// and playable without an account.
const localSuffix = "_local"

// DailyLevel is the level identifier reserved for the rotating daily
// challenge. It behaves like any other Spotify-backed level through the
// resolver; only its song rotates.
const DailyLevel = 0

// LevelSource identifies which backing source holds a level's song.
type LevelSource int

const (
	// SourceLocal is the immutable seeded catalog, open to guests.
	SourceLocal LevelSource = iota
	// SourceSpotify is the lazily-populated Spotify-backed catalog,
	// available to authenticated players only.
	SourceSpotify
)

// LevelRef is a parsed level identifier. Identifiers arrive on the wire as
// "<n>_local" (guest/local), "<n>" (Spotify-backed) or "0" (daily); parsing
// happens once at the boundary so the rest of the call chain never repeats
// suffix checks.
type LevelRef struct {
	Source LevelSource
	Index  int
}

// Daily reports whether the reference points at the daily challenge level.
func (r LevelRef) Daily() bool {
	return r.Source == SourceSpotify && r.Index == DailyLevel
}

// String renders the reference back into its wire form.
func (r LevelRef) String() string {
	if r.Source == SourceLocal {
		return strconv.Itoa(r.Index) + localSuffix
	}
	return strconv.Itoa(r.Index)
}

// ParseLevel parses a wire-format level identifier. It returns ErrBadRequest
// for empty input or a non-numeric level fragment.
func ParseLevel(levelID string) (LevelRef, error) {
	raw := levelID
	source := SourceSpotify
	if rest, ok := strings.CutSuffix(levelID, localSuffix); ok {
		source = SourceLocal
		raw = rest
	}

	n, err := strconv.Atoi(raw)
	if err != nil {
		return LevelRef{}, fmt.Errorf("%w: level id %q", ErrBadRequest, levelID)
	}
	return LevelRef{Source: source, Index: n}, nil
}
