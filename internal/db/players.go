package db

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNoSpotifyToken is returned when a player has no unexpired Spotify
// access token on file.
var ErrNoSpotifyToken = errors.New("no valid spotify token")

// PlayerRepository handles player database operations.
type PlayerRepository struct {
	pool *pgxpool.Pool
}

const playerColumns = `
	username, email, password_hash, created_at, is_active,
	total_score, games_played, completed_levels, played_levels,
	COALESCE(last_daily_completed, ''),
	COALESCE(spotify_client_id, ''), COALESCE(spotify_client_secret, ''),
	spotify_access_token, spotify_refresh_token, spotify_token_expiry
`

// Create inserts a new player.
func (r *PlayerRepository) Create(ctx context.Context, p *Player) error {
	query := `
		INSERT INTO players (username, email, password_hash, spotify_client_id, spotify_client_secret)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at
	`
	err := r.pool.QueryRow(ctx, query,
		p.Username, p.Email, p.PasswordHash,
		p.SpotifyClientID, p.SpotifyClientSecret,
	).Scan(&p.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting player: %w", err)
	}
	p.IsActive = true
	return nil
}

// GetByUsername retrieves a player by username.
func (r *PlayerRepository) GetByUsername(ctx context.Context, username string) (*Player, error) {
	return r.getBy(ctx, "username", username)
}

// GetByEmail retrieves a player by email.
func (r *PlayerRepository) GetByEmail(ctx context.Context, email string) (*Player, error) {
	return r.getBy(ctx, "email", email)
}

// GetByClientID retrieves the player registered with a Spotify client id.
func (r *PlayerRepository) GetByClientID(ctx context.Context, clientID string) (*Player, error) {
	return r.getBy(ctx, "spotify_client_id", clientID)
}

func (r *PlayerRepository) getBy(ctx context.Context, column, value string) (*Player, error) {
	query := `SELECT ` + playerColumns + ` FROM players WHERE ` + column + ` = $1 LIMIT 1`

	var (
		p         Player
		completed string
		played    string
	)
	err := r.pool.QueryRow(ctx, query, value).Scan(
		&p.Username, &p.Email, &p.PasswordHash, &p.CreatedAt, &p.IsActive,
		&p.TotalScore, &p.GamesPlayed, &completed, &played,
		&p.LastDailyCompleted,
		&p.SpotifyClientID, &p.SpotifyClientSecret,
		&p.SpotifyAccessToken, &p.SpotifyRefreshToken, &p.SpotifyTokenExpiry,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("querying player by %s: %w", column, err)
	}
	p.CompletedLevels = splitLevels(completed)
	p.PlayedLevels = splitLevels(played)
	return &p, nil
}

// Save persists the full mutable state of a player record.
func (r *PlayerRepository) Save(ctx context.Context, p *Player) error {
	query := `
		UPDATE players SET
			email = $2, password_hash = $3, is_active = $4,
			total_score = $5, games_played = $6,
			completed_levels = $7, played_levels = $8,
			last_daily_completed = NULLIF($9, ''),
			spotify_client_id = NULLIF($10, ''), spotify_client_secret = NULLIF($11, ''),
			spotify_access_token = $12, spotify_refresh_token = $13, spotify_token_expiry = $14
		WHERE username = $1
	`
	result, err := r.pool.Exec(ctx, query,
		p.Username, p.Email, p.PasswordHash, p.IsActive,
		p.TotalScore, p.GamesPlayed,
		joinLevels(p.CompletedLevels), joinLevels(p.PlayedLevels),
		p.LastDailyCompleted,
		p.SpotifyClientID, p.SpotifyClientSecret,
		p.SpotifyAccessToken, p.SpotifyRefreshToken, p.SpotifyTokenExpiry,
	)
	if err != nil {
		return fmt.Errorf("saving player: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// UpdateProfile changes a player's username and/or password hash. Empty
// arguments leave the corresponding field untouched.
func (r *PlayerRepository) UpdateProfile(ctx context.Context, username, newUsername, newPasswordHash string) error {
	query := `
		UPDATE players SET
			username = COALESCE(NULLIF($2, ''), username),
			password_hash = COALESCE(NULLIF($3, ''), password_hash)
		WHERE username = $1
	`
	result, err := r.pool.Exec(ctx, query, username, newUsername, newPasswordHash)
	if err != nil {
		return fmt.Errorf("updating profile: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

// RankingRow is one entry of the score ranking.
type RankingRow struct {
	Username        string
	TotalScore      int
	CompletedLevels []string
}

// TopByScore returns the highest-scoring active players, ordered
// descending.
func (r *PlayerRepository) TopByScore(ctx context.Context, limit int) ([]RankingRow, error) {
	query := `
		SELECT username, total_score, completed_levels
		FROM players
		WHERE is_active
		ORDER BY total_score DESC
		LIMIT $1
	`
	rows, err := r.pool.Query(ctx, query, limit)
	if err != nil {
		return nil, fmt.Errorf("querying ranking: %w", err)
	}
	defer rows.Close()

	var ranking []RankingRow
	for rows.Next() {
		var (
			row       RankingRow
			completed string
		)
		if err := rows.Scan(&row.Username, &row.TotalScore, &completed); err != nil {
			return nil, fmt.Errorf("scanning ranking row: %w", err)
		}
		row.CompletedLevels = splitLevels(completed)
		ranking = append(ranking, row)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating ranking: %w", err)
	}
	return ranking, nil
}

// SpotifyAccessToken returns the player's Spotify access token if one is
// on file and not expired. ErrNoSpotifyToken means the player has to go
// through (or redo) the authorization flow first.
func (r *PlayerRepository) SpotifyAccessToken(ctx context.Context, username string) (string, error) {
	query := `
		SELECT spotify_access_token, spotify_token_expiry
		FROM players
		WHERE username = $1
	`
	var (
		token  *string
		expiry *time.Time
	)
	err := r.pool.QueryRow(ctx, query, username).Scan(&token, &expiry)
	if errors.Is(err, pgx.ErrNoRows) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("querying spotify token: %w", err)
	}
	if token == nil || expiry == nil || !expiry.After(time.Now()) {
		return "", ErrNoSpotifyToken
	}
	return *token, nil
}

// SaveSpotifyTokens stores the tokens obtained from an authorization or
// refresh exchange.
func (r *PlayerRepository) SaveSpotifyTokens(ctx context.Context, username, accessToken, refreshToken string, expiry time.Time) error {
	query := `
		UPDATE players SET
			spotify_access_token = $2,
			spotify_refresh_token = $3,
			spotify_token_expiry = $4
		WHERE username = $1
	`
	result, err := r.pool.Exec(ctx, query, username, accessToken, refreshToken, expiry)
	if err != nil {
		return fmt.Errorf("saving spotify tokens: %w", err)
	}
	if result.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
