package stats

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/robalobadob/hangman-bot/internal/game"
)

// ErrDisabled is returned by Nop queries.
var ErrDisabled = errors.New("stats ledger is disabled")

// DefaultLeaderboardLimit applies when the caller passes a non-positive limit.
const DefaultLeaderboardLimit = 20

// Round is one finished round. Only guessers are credited; the host sets the
// word and does not play.
type Round struct {
	RoomCode   string
	Secret     string
	Won        bool
	Fails      int
	MaxFails   int
	Guessers   []game.Player
	FinishedAt time.Time
}

// Totals are a player's lifetime counters.
type Totals struct {
	UserID int64  `json:"userId"`
	Name   string `json:"name"`
	Games  int    `json:"games"`
	Wins   int    `json:"wins"`
	Losses int    `json:"losses"`
}

// Ledger records finished rounds and answers totals queries.
type Ledger interface {
	Enabled() bool
	RecordRound(ctx context.Context, r Round) error
	// PlayerStats returns ok=false for a player with no finished rounds.
	PlayerStats(ctx context.Context, id game.UserID) (t Totals, ok bool, err error)
	Leaderboard(ctx context.Context, limit int) ([]Totals, error)
}

// Store is the SQLite Ledger.
type Store struct{ db *sql.DB }

func NewStore(db *sql.DB) *Store { return &Store{db: db} }

func (s *Store) Enabled() bool { return true }

// RecordRound inserts the round and bumps every guesser's totals in one
// transaction.
func (s *Store) RecordRound(ctx context.Context, r Round) error {
	if r.FinishedAt.IsZero() {
		r.FinishedAt = time.Now()
	}
	at := r.FinishedAt.UTC().Format(time.RFC3339)
	won := boolInt(r.Won)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO rounds(room_code, secret, won, fails, max_fails, guessers, finished_at)
		 VALUES(?,?,?,?,?,?,?)`,
		r.RoomCode, r.Secret, won, r.Fails, r.MaxFails, len(r.Guessers), at,
	); err != nil {
		return fmt.Errorf("insert round: %w", err)
	}

	for _, p := range r.Guessers {
		if _, err := tx.ExecContext(ctx, `
			INSERT INTO players(user_id, name, games, wins, losses, updated_at)
			VALUES(?, ?, 1, ?, ?, ?)
			ON CONFLICT(user_id) DO UPDATE SET
				name       = excluded.name,
				games      = players.games + 1,
				wins       = players.wins + excluded.wins,
				losses     = players.losses + excluded.losses,
				updated_at = excluded.updated_at`,
			int64(p.ID), p.Name, won, 1-won, at,
		); err != nil {
			return fmt.Errorf("upsert player %d: %w", p.ID, err)
		}
	}
	return tx.Commit()
}

func (s *Store) PlayerStats(ctx context.Context, id game.UserID) (Totals, bool, error) {
	var t Totals
	err := s.db.QueryRowContext(ctx,
		`SELECT user_id, name, games, wins, losses FROM players WHERE user_id=?`, int64(id),
	).Scan(&t.UserID, &t.Name, &t.Games, &t.Wins, &t.Losses)
	if errors.Is(err, sql.ErrNoRows) {
		return Totals{}, false, nil
	}
	if err != nil {
		return Totals{}, false, err
	}
	return t, true, nil
}

// Leaderboard lists players by wins, then fewer games, then id.
func (s *Store) Leaderboard(ctx context.Context, limit int) ([]Totals, error) {
	if limit <= 0 {
		limit = DefaultLeaderboardLimit
	}
	rows, err := s.db.QueryContext(ctx, `
		SELECT user_id, name, games, wins, losses
		FROM players
		ORDER BY wins DESC, games ASC, user_id ASC
		LIMIT ?`, limit,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]Totals, 0, limit)
	for rows.Next() {
		var t Totals
		if err := rows.Scan(&t.UserID, &t.Name, &t.Games, &t.Wins, &t.Losses); err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// Nop is the Ledger used when no database is configured.
type Nop struct{}

func (Nop) Enabled() bool                            { return false }
func (Nop) RecordRound(context.Context, Round) error { return nil }

func (Nop) Leaderboard(context.Context, int) ([]Totals, error) { return nil, ErrDisabled }
func (Nop) PlayerStats(context.Context, game.UserID) (Totals, bool, error) {
	return Totals{}, false, ErrDisabled
}

func boolInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
