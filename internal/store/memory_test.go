package store

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/hangman-bot/internal/game"
)

func TestRandomCode(t *testing.T) {
	for i := 0; i < 100; i++ {
		c, err := RandomCode(DefaultCodeLength)
		require.NoError(t, err)
		require.Len(t, c, DefaultCodeLength)
		for _, ch := range c {
			assert.True(t, strings.ContainsRune(CodeAlphabet, ch), "%q", ch)
		}
	}
}

func TestNormalizeCode(t *testing.T) {
	assert.Equal(t, "AB12C", NormalizeCode("  ab12c\n"))
}

func TestCreateAndJoin(t *testing.T) {
	reg := NewRegistry(5, 6)

	room, err := reg.Create(1, "host")
	require.NoError(t, err)
	assert.Len(t, room.Code(), 5)

	_, err = reg.Create(1, "host")
	assert.ErrorIs(t, err, ErrAlreadyInRoom)

	joined, err := reg.Join(strings.ToLower(room.Code()), 2, "alice")
	require.NoError(t, err)
	assert.Same(t, room, joined)
	assert.Equal(t, []game.UserID{2}, room.Guessers())

	_, err = reg.Join(room.Code(), 2, "alice")
	assert.ErrorIs(t, err, ErrAlreadyInRoom)

	_, err = reg.Join("ZZZZZ", 3, "bob")
	assert.ErrorIs(t, err, ErrRoomNotFound)
	assert.Equal(t, game.KindNotFound, game.KindOf(err))

	got, ok := reg.Resolve(2)
	assert.True(t, ok)
	assert.Same(t, room, got)
	_, ok = reg.Resolve(3)
	assert.False(t, ok)

	rooms, players := reg.Stats()
	assert.Equal(t, 1, rooms)
	assert.Equal(t, 2, players)
}

func TestCodeCollisionRegenerates(t *testing.T) {
	reg := NewRegistry(5, 6)
	seq := []string{"AAAAA", "AAAAA", "BBBBB"}
	reg.newCode = func(int) (string, error) {
		c := seq[0]
		seq = seq[1:]
		return c, nil
	}

	a, err := reg.Create(1, "a")
	require.NoError(t, err)
	b, err := reg.Create(2, "b")
	require.NoError(t, err)
	assert.Equal(t, "AAAAA", a.Code())
	assert.Equal(t, "BBBBB", b.Code())
}

func TestCodeSpaceExhausted(t *testing.T) {
	reg := NewRegistry(5, 6)
	reg.newCode = func(int) (string, error) { return "AAAAA", nil }

	_, err := reg.Create(1, "a")
	require.NoError(t, err)
	_, err = reg.Create(2, "b")
	assert.ErrorIs(t, err, ErrCodeSpaceExhausted)
	_, ok := reg.Resolve(2)
	assert.False(t, ok)
}

func TestGuesserLeave(t *testing.T) {
	reg := NewRegistry(5, 6)
	room, err := reg.Create(1, "host")
	require.NoError(t, err)
	_, err = reg.Join(room.Code(), 2, "alice")
	require.NoError(t, err)

	d, err := reg.Leave(2)
	require.NoError(t, err)
	assert.False(t, d.Destroyed)
	assert.True(t, d.Removal.Removed)
	assert.Empty(t, d.Evicted)
	assert.False(t, room.Has(2))

	_, err = reg.Leave(2)
	assert.ErrorIs(t, err, ErrNotInRoom)
}

func TestHostDepartureMidGame(t *testing.T) {
	reg := NewRegistry(5, 6)
	room, err := reg.Create(1, "host")
	require.NoError(t, err)
	for _, id := range []game.UserID{2, 3} {
		_, err := reg.Join(room.Code(), id, "g")
		require.NoError(t, err)
	}
	require.NoError(t, room.SetWord(1, "кот"))
	require.NoError(t, room.Start(1))

	d, err := reg.Leave(1)
	require.NoError(t, err)
	assert.True(t, d.Destroyed)
	assert.True(t, d.Removal.WasHost)
	assert.ElementsMatch(t, []game.UserID{2, 3}, d.Evicted)

	_, err = reg.Join(room.Code(), 9, "late")
	assert.ErrorIs(t, err, ErrRoomNotFound)
	for _, id := range []game.UserID{1, 2, 3} {
		_, ok := reg.Resolve(id)
		assert.False(t, ok, "user %d must be evicted", id)
	}
	rooms, players := reg.Stats()
	assert.Zero(t, rooms)
	assert.Zero(t, players)

	_, err = reg.Join(room.Code(), 2, "g")
	assert.ErrorIs(t, err, ErrRoomNotFound)
}

func TestClose(t *testing.T) {
	reg := NewRegistry(5, 6)
	room, err := reg.Create(1, "host")
	require.NoError(t, err)
	_, err = reg.Join(room.Code(), 2, "alice")
	require.NoError(t, err)

	_, err = reg.Close(2)
	assert.ErrorIs(t, err, game.ErrNotHost)

	d, err := reg.Close(1)
	require.NoError(t, err)
	assert.True(t, d.Destroyed)
	assert.Equal(t, []game.UserID{2}, d.Evicted)

	// both may open new rooms afterwards
	_, err = reg.Create(2, "alice")
	assert.NoError(t, err)
}

func TestKickClearsAssociation(t *testing.T) {
	reg := NewRegistry(5, 6)
	room, err := reg.Create(1, "host")
	require.NoError(t, err)
	_, err = reg.Join(room.Code(), 2, "alice")
	require.NoError(t, err)

	_, _, err = reg.Kick(2, 1)
	assert.ErrorIs(t, err, game.ErrNotHost)

	_, rm, err := reg.Kick(1, 2)
	require.NoError(t, err)
	assert.True(t, rm.Removed)
	_, ok := reg.Resolve(2)
	assert.False(t, ok)

	_, err = reg.Join(room.Code(), 2, "alice")
	assert.NoError(t, err, "kicked user may rejoin")
}

func TestTransferredHostLeavingDestroysRoom(t *testing.T) {
	reg := NewRegistry(5, 6)
	room, err := reg.Create(1, "host")
	require.NoError(t, err)
	_, err = reg.Join(room.Code(), 2, "alice")
	require.NoError(t, err)
	require.NoError(t, room.TransferHost(1, 2))

	d, err := reg.Leave(1)
	require.NoError(t, err)
	assert.False(t, d.Destroyed, "old host is a guesser now")

	d, err = reg.Leave(2)
	require.NoError(t, err)
	assert.True(t, d.Destroyed)
}

func TestStatsConcurrentWithMutations(t *testing.T) {
	reg := NewRegistry(5, 6)
	var wg sync.WaitGroup
	wg.Add(2)
	go func() {
		defer wg.Done()
		for i := game.UserID(1); i <= 200; i++ {
			_, _ = reg.Create(i, "h")
			_, _ = reg.Leave(i)
		}
	}()
	go func() {
		defer wg.Done()
		for i := 0; i < 200; i++ {
			reg.Stats()
		}
	}()
	wg.Wait()
	rooms, players := reg.Stats()
	assert.Zero(t, rooms)
	assert.Zero(t, players)
}
