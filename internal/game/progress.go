package game

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/oriolpb/songuess/internal/db"
)

// dailyDateLayout is the calendar-day granularity of daily completion.
// Comparison is a string equality in server-local time.
const dailyDateLayout = "02-01-2006"

// dailyLevelToken is the daily level id as it appears in a player's level
// sets.
var dailyLevelToken = strconv.Itoa(DailyLevel)

// PlayerStore is the storage surface the progress tracker needs.
type PlayerStore interface {
	Save(ctx context.Context, p *db.Player) error
	TopByScore(ctx context.Context, limit int) ([]db.RankingRow, error)
}

// Tracker records score and level progress per player. Per (player, level)
// the state machine is Unplayed -> Played -> Completed; a level scores at
// most once.
type Tracker struct {
	players PlayerStore
	now     func() time.Time
	logger  zerolog.Logger
}

// NewTracker creates a Tracker.
func NewTracker(players PlayerStore, logger zerolog.Logger) *Tracker {
	return &Tracker{
		players: players,
		now:     time.Now,
		logger:  logger.With().Str("component", "progress").Logger(),
	}
}

// SubmitScore records a completed level and its score delta, returning the
// updated total. ErrConflict is raised before any mutation when the level
// was already played, which also guards against double submission. Deltas
// are accepted unchecked, negative or large; the caller is trusted.
// Submitting the daily level additionally stamps today's date.
func (t *Tracker) SubmitScore(ctx context.Context, p *db.Player, levelID string, delta int) (int, error) {
	if p.HasPlayed(levelID) {
		return p.TotalScore, fmt.Errorf("%w: %s", ErrConflict, levelID)
	}

	p.PlayedLevels = append(p.PlayedLevels, levelID)
	if !p.HasCompleted(levelID) {
		p.CompletedLevels = append(p.CompletedLevels, levelID)
	}
	p.TotalScore += delta
	p.GamesPlayed++

	if levelID == dailyLevelToken {
		p.LastDailyCompleted = t.today()
	}

	if err := t.players.Save(ctx, p); err != nil {
		return 0, fmt.Errorf("saving score: %w", err)
	}

	t.logger.Info().Str("player", p.Username).Str("level", levelID).
		Int("delta", delta).Int("total", p.TotalScore).Msg("score submitted")
	return p.TotalScore, nil
}

// MarkPlayed records an attempt without awarding score, e.g. after a
// reveal or a skip. It is idempotent.
func (t *Tracker) MarkPlayed(ctx context.Context, p *db.Player, levelID string) error {
	if p.HasPlayed(levelID) {
		return nil
	}
	p.PlayedLevels = append(p.PlayedLevels, levelID)
	if err := t.players.Save(ctx, p); err != nil {
		return fmt.Errorf("marking level played: %w", err)
	}
	return nil
}

// CompleteDaily stamps today's date as the player's last daily completion.
func (t *Tracker) CompleteDaily(ctx context.Context, p *db.Player) error {
	p.LastDailyCompleted = t.today()
	if err := t.players.Save(ctx, p); err != nil {
		return fmt.Errorf("completing daily: %w", err)
	}
	return nil
}

// DailyCompletedToday reports whether the player already finished today's
// daily challenge.
func (t *Tracker) DailyCompletedToday(p *db.Player) bool {
	return p.LastDailyCompleted != "" && p.LastDailyCompleted == t.today()
}

func (t *Tracker) today() string {
	return t.now().Format(dailyDateLayout)
}

// RankingEntry is one row of the public leaderboard. The completed-level
// set is projected to its count; the raw set stays internal.
type RankingEntry struct {
	Username        string `json:"username"`
	TotalScore      int    `json:"total_score"`
	LevelsCompleted int    `json:"levels_completed"`
}

// Ranking returns the top players by total score, descending.
func (t *Tracker) Ranking(ctx context.Context, limit int) ([]RankingEntry, error) {
	rows, err := t.players.TopByScore(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("loading ranking: %w", err)
	}

	ranking := make([]RankingEntry, len(rows))
	for i, row := range rows {
		ranking[i] = RankingEntry{
			Username:        row.Username,
			TotalScore:      row.TotalScore,
			LevelsCompleted: len(row.CompletedLevels),
		}
	}
	return ranking, nil
}
