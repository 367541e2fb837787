package stats

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/hangman-bot/assets"
	"github.com/robalobadob/hangman-bot/internal/game"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "data", "stats.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })
	require.NoError(t, Migrate(db, assets.Migrations()))
	return NewStore(db)
}

func TestMigrateIsIdempotent(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "stats.db"))
	require.NoError(t, err)
	defer db.Close()

	require.NoError(t, Migrate(db, assets.Migrations()))
	require.NoError(t, Migrate(db, assets.Migrations()))

	var n int
	require.NoError(t, db.QueryRow(`SELECT COUNT(*) FROM _migrations`).Scan(&n))
	assert.Equal(t, 1, n)
}

func TestMigrateRollsBackBrokenScript(t *testing.T) {
	db, err := Open(filepath.Join(t.TempDir(), "stats.db"))
	require.NoError(t, err)
	defer db.Close()

	fsys := fstest.MapFS{
		"001_ok.sql":     {Data: []byte(`CREATE TABLE a (x INTEGER);`)},
		"002_broken.sql": {Data: []byte(`CREATE TABLE b (x INTEGER); NOT SQL;`)},
		"readme.txt":     {Data: []byte(`ignored`)},
	}
	err = Migrate(db, fsys)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "002_broken.sql")

	var names []string
	rows, err := db.Query(`SELECT name FROM _migrations ORDER BY name`)
	require.NoError(t, err)
	defer rows.Close()
	for rows.Next() {
		var s string
		require.NoError(t, rows.Scan(&s))
		names = append(names, s)
	}
	assert.Equal(t, []string{"001_ok.sql"}, names)
}

func TestRecordRoundAndTotals(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	at := time.Date(2026, 10, 1, 12, 0, 0, 0, time.UTC)

	alice := game.Player{ID: 2, Name: "Алиса"}
	bob := game.Player{ID: 3, Name: "Борис"}

	require.NoError(t, s.RecordRound(ctx, Round{
		RoomCode: "ABCDE", Secret: "кот", Won: true, Fails: 1, MaxFails: 6,
		Guessers: []game.Player{alice, bob}, FinishedAt: at,
	}))
	require.NoError(t, s.RecordRound(ctx, Round{
		RoomCode: "ABCDE", Secret: "да", Won: false, Fails: 2, MaxFails: 2,
		Guessers: []game.Player{{ID: 3, Name: "Боря"}}, FinishedAt: at,
	}))

	got, ok, err := s.PlayerStats(ctx, 3)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, Totals{UserID: 3, Name: "Боря", Games: 2, Wins: 1, Losses: 1}, got)

	_, ok, err = s.PlayerStats(ctx, 99)
	require.NoError(t, err)
	assert.False(t, ok)

	var rounds int
	require.NoError(t, s.db.QueryRow(`SELECT COUNT(*) FROM rounds`).Scan(&rounds))
	assert.Equal(t, 2, rounds)

	top, err := s.Leaderboard(ctx, 0)
	require.NoError(t, err)
	require.Len(t, top, 2)
	assert.Equal(t, int64(2), top[0].UserID, "same wins, fewer games first")
	assert.Equal(t, int64(3), top[1].UserID)

	top, err = s.Leaderboard(ctx, 1)
	require.NoError(t, err)
	assert.Len(t, top, 1)
}

func TestRecordRoundWithoutGuessers(t *testing.T) {
	s := openTestStore(t)
	require.NoError(t, s.RecordRound(context.Background(), Round{RoomCode: "ABCDE", Secret: "кот"}))
	top, err := s.Leaderboard(context.Background(), 10)
	require.NoError(t, err)
	assert.Empty(t, top)
}

func TestNop(t *testing.T) {
	var l Ledger = Nop{}
	assert.False(t, l.Enabled())
	assert.NoError(t, l.RecordRound(context.Background(), Round{}))
	_, err := l.Leaderboard(context.Background(), 5)
	assert.ErrorIs(t, err, ErrDisabled)
	_, _, err = l.PlayerStats(context.Background(), 1)
	assert.ErrorIs(t, err, ErrDisabled)
}
