package game

import (
	"context"

	"github.com/rs/zerolog"
)

// TitleResolver resolves the canonical title of a level.
type TitleResolver interface {
	LevelTitle(ctx context.Context, ref LevelRef) (string, error)
}

// Validator decides whether a free-text guess matches a level's song.
type Validator struct {
	titles TitleResolver
	logger zerolog.Logger
}

// NewValidator creates a Validator.
func NewValidator(titles TitleResolver, logger zerolog.Logger) *Validator {
	return &Validator{
		titles: titles,
		logger: logger.With().Str("component", "validator").Logger(),
	}
}

// Validate returns true iff the guess matches the canonical title of the
// level. It fails closed: an unknown level, a malformed identifier or a
// missing title all yield false, indistinguishable from a wrong guess, so
// catalog existence never leaks through this path.
func (v *Validator) Validate(ctx context.Context, levelID, guess string) bool {
	ref, err := ParseLevel(levelID)
	if err != nil {
		return false
	}

	title, err := v.titles.LevelTitle(ctx, ref)
	if err != nil || title == "" {
		v.logger.Debug().Str("level", levelID).Msg("no resolvable title")
		return false
	}

	return TitlesMatch(NormalizeTitle(guess), NormalizeTitle(title))
}
